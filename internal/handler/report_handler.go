package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// ReportHandler handles KPI and dashboard HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetKPIs handles GET /api/v1/reports/kpis
// @Summary Tenant-wide collection KPIs
// @Tags reports
// @Produce json
// @Success 200 {object} KPIsResponse
// @Failure 403 {object} ProblemDetails
// @Router /reports/kpis [get]
func (h *ReportHandler) GetKPIs(c echo.Context) error {
	tenant := tenantID(c)
	if tenant == 0 {
		return NewUnauthorizedError(c, "Operator required")
	}

	kpis, err := h.reportService.KPIs(c.Request().Context(), tenant)
	if err != nil {
		return respondError(c, err, "Failed to get KPIs")
	}

	return c.JSON(http.StatusOK, toKPIsResponse(kpis))
}

// GetCompanyKPIs handles GET /api/v1/reports/companies
// @Summary Customer count and outstanding total per company
// @Tags reports
// @Produce json
// @Success 200 {array} CompanyKPIResponse
// @Failure 403 {object} ProblemDetails
// @Router /reports/companies [get]
func (h *ReportHandler) GetCompanyKPIs(c echo.Context) error {
	tenant := tenantID(c)
	if tenant == 0 {
		return NewUnauthorizedError(c, "Operator required")
	}

	rows, err := h.reportService.CompanyKPIs(c.Request().Context(), tenant)
	if err != nil {
		return respondError(c, err, "Failed to get company KPIs")
	}

	return c.JSON(http.StatusOK, toCompanyKPIResponses(rows))
}

// GetOverdue handles GET /api/v1/reports/overdue
// @Summary Customers in arrears with their balances
// @Tags reports
// @Produce json
// @Param asOf query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} CustomerWithBalanceResponse
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Router /reports/overdue [get]
func (h *ReportHandler) GetOverdue(c echo.Context) error {
	tenant := tenantID(c)
	if tenant == 0 {
		return NewUnauthorizedError(c, "Operator required")
	}

	asOf := time.Now()
	if raw := c.QueryParam("asOf"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return NewValidationError(c, "Invalid asOf date", []ValidationError{
				{Field: "asOf", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		asOf = parsed
	}

	customers, err := h.reportService.ListOverdue(c.Request().Context(), tenant, asOf)
	if err != nil {
		return respondError(c, err, "Failed to list overdue customers")
	}

	return c.JSON(http.StatusOK, toCustomerWithBalanceResponses(customers))
}

// GetDashboard handles GET /api/v1/reports/dashboard
// @Summary KPIs, company figures, open loans and arrears in one response
// @Tags reports
// @Produce json
// @Success 200 {object} DashboardResponse
// @Failure 403 {object} ProblemDetails
// @Router /reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c echo.Context) error {
	tenant := tenantID(c)
	if tenant == 0 {
		return NewUnauthorizedError(c, "Operator required")
	}

	dashboard, err := h.reportService.Dashboard(c.Request().Context(), tenant)
	if err != nil {
		return respondError(c, err, "Failed to get dashboard")
	}

	return c.JSON(http.StatusOK, toDashboardResponse(dashboard))
}
