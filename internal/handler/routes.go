package handler

import (
	"github.com/dafibh/tally/tally-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers bundles every API handler registered under /api/v1
type Handlers struct {
	Customers *CustomerHandler
	Loans     *LoanHandler
	Ledger    *LedgerHandler
	Reports   *ReportHandler
	Settings  *SettingsHandler
	Operators *OperatorHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, authz *middleware.Authorizer, rateLimiter *middleware.RateLimiter, apiBaseURL string, h Handlers) {
	e.GET("/swagger/openapi.json", ServeOpenAPI3Spec(apiBaseURL))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/ws", h.WebSocket.HandleWS)

	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	read := func(resource string) echo.MiddlewareFunc { return authz.RequirePermission(resource, middleware.ActionRead) }
	write := func(resource string) echo.MiddlewareFunc { return authz.RequirePermission(resource, middleware.ActionWrite) }

	// Settings
	settings := api.Group("/settings")
	settings.GET("", h.Settings.GetSettings, read(middleware.ResourceSettings))
	settings.PUT("", h.Settings.UpdateSettings, write(middleware.ResourceSettings))

	// Customers
	customers := api.Group("/customers")
	customers.GET("", h.Customers.ListCustomers, read(middleware.ResourceCustomers))
	customers.POST("", h.Customers.CreateCustomer, write(middleware.ResourceCustomers))
	customers.GET("/:id", h.Customers.GetCustomer, read(middleware.ResourceCustomers))
	customers.PUT("/:id", h.Customers.UpdateCustomer, write(middleware.ResourceCustomers))
	customers.DELETE("/:id", h.Customers.DeleteCustomer, write(middleware.ResourceCustomers))
	customers.GET("/:id/balance", h.Customers.GetCustomerBalance, read(middleware.ResourceCustomers))

	// Loans
	loans := api.Group("/loans")
	loans.GET("", h.Loans.ListLoans, read(middleware.ResourceLoans))
	loans.POST("", h.Loans.CreateLoan, write(middleware.ResourceLoans))
	loans.GET("/calendar", h.Loans.GetCalendar, read(middleware.ResourceLoans))
	loans.GET("/:id", h.Loans.GetLoan, read(middleware.ResourceLoans))
	loans.DELETE("/:id", h.Loans.DeleteLoan, write(middleware.ResourceLoans))
	loans.PUT("/:id/schedule", h.Loans.RegenerateSchedule, write(middleware.ResourceSchedules))
	loans.GET("/:id/balance", h.Loans.GetLoanBalance, read(middleware.ResourceLoans))
	loans.GET("/:id/payments", h.Ledger.ListPayments, read(middleware.ResourceLoans))
	loans.POST("/:id/payments", h.Ledger.ApplyGenericPayment, write(middleware.ResourceLoans))
	loans.GET("/:id/notifications", h.Ledger.ListNotifications, read(middleware.ResourceLoans))

	// Installments
	installments := api.Group("/installments")
	installments.POST("/:id/settle", h.Ledger.SettleInstallment, write(middleware.ResourceInstallments))
	installments.PUT("/:id/penalty", h.Ledger.SetManualPenalty, write(middleware.ResourceInstallments))
	installments.PUT("/:id/due-date", h.Loans.RescheduleInstallment, write(middleware.ResourceInstallments))

	// Reports (manager/admin)
	reports := api.Group("/reports", read(middleware.ResourceReports))
	reports.GET("/kpis", h.Reports.GetKPIs)
	reports.GET("/companies", h.Reports.GetCompanyKPIs)
	reports.GET("/overdue", h.Reports.GetOverdue)
	reports.GET("/dashboard", h.Reports.GetDashboard)

	// Operators
	operators := api.Group("/operators")
	operators.GET("/me", h.Operators.GetMe)
	operators.GET("", h.Operators.ListOperators, read(middleware.ResourceOperators))
	operators.POST("", h.Operators.CreateOperator, write(middleware.ResourceOperators))
	operators.PUT("/:id", h.Operators.UpdateOperator, write(middleware.ResourceOperators))
	operators.DELETE("/:id", h.Operators.DeleteOperator, write(middleware.ResourceOperators))
}
