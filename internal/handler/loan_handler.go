package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan and schedule HTTP requests
type LoanHandler struct {
	loanService    *service.LoanService
	balanceService *service.BalanceService
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService *service.LoanService, balanceService *service.BalanceService) *LoanHandler {
	return &LoanHandler{loanService: loanService, balanceService: balanceService}
}

// CreateLoanRequest represents the create loan request body
type CreateLoanRequest struct {
	CustomerID  int32  `json:"customerId" validate:"required"`
	Description string `json:"description" validate:"max=500"`
	Principal   string `json:"principal" validate:"required"`
	RateTier    int32  `json:"rateTier" validate:"required"`
	StartDate   string `json:"startDate" validate:"required,datetime=2006-01-02"`
}

// RegenerateScheduleRequest represents the edit loan request body
type RegenerateScheduleRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Principal   string  `json:"principal" validate:"required"`
	RateTier    int32   `json:"rateTier" validate:"required"`
	StartDate   string  `json:"startDate" validate:"required,datetime=2006-01-02"`
}

// RescheduleInstallmentRequest represents the installment due date request body
type RescheduleInstallmentRequest struct {
	DueDate string `json:"dueDate" validate:"required,datetime=2006-01-02"`
}

// CalendarEventResponse is one loan due date entry of the calendar feed
type CalendarEventResponse struct {
	Title      string `json:"title"`
	Start      string `json:"start"`
	LoanID     int32  `json:"loanId"`
	CustomerID int32  `json:"customerId"`
}

func parsePrincipal(c echo.Context, raw string) (decimal.Decimal, bool, error) {
	principal, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, NewValidationError(c, "Invalid principal", []ValidationError{
			{Field: "principal", Message: "Must be a valid decimal number"},
		})
	}
	return principal, true, nil
}

func parseStartDate(c echo.Context, raw string) (time.Time, bool, error) {
	date, err := parseDate(raw)
	if err != nil {
		return time.Time{}, false, NewValidationError(c, "Invalid start date", []ValidationError{
			{Field: "startDate", Message: "Must be in YYYY-MM-DD format"},
		})
	}
	return date, true, nil
}

// CreateLoan handles POST /api/v1/loans
// @Summary Create a loan and generate its installment schedule
// @Tags loans
// @Accept json
// @Produce json
// @Param loan body CreateLoanRequest true "Loan"
// @Success 201 {object} LoanDetailResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /loans [post]
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	var req CreateLoanRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}
	principal, ok, err := parsePrincipal(c, req.Principal)
	if !ok {
		return err
	}
	start, ok, err := parseStartDate(c, req.StartDate)
	if !ok {
		return err
	}

	detail, err := h.loanService.CreateLoan(c.Request().Context(), actor, service.CreateLoanInput{
		CustomerID:  req.CustomerID,
		Description: req.Description,
		Principal:   principal,
		RateTier:    domain.RateTier(req.RateTier),
		StartDate:   start,
	})
	if err != nil {
		return respondError(c, err, "Failed to create loan")
	}

	log.Info().Int32("tenant_id", actor.TenantID).Int32("loan_id", detail.Loan.ID).Int32("customer_id", detail.Loan.CustomerID).Str("total_due", detail.Loan.TotalDue.StringFixed(2)).Msg("Loan created")

	return c.JSON(http.StatusCreated, toLoanDetailResponse(detail))
}

// ListLoans handles GET /api/v1/loans
// @Summary List loans with balances, ordered by due date
// @Tags loans
// @Produce json
// @Param status query string false "pending, paid or all"
// @Param overdue query bool false "Only pending loans past their due date"
// @Param customerId query int false "Customer ID"
// @Success 200 {array} LoanSummaryResponse
// @Router /loans [get]
func (h *LoanHandler) ListLoans(c echo.Context) error {
	tenant := tenantID(c)
	if tenant == 0 {
		return NewUnauthorizedError(c, "Operator required")
	}

	input := service.ListLoansInput{Overdue: c.QueryParam("overdue") == "true"}
	switch status := c.QueryParam("status"); status {
	case "", "all":
	case string(domain.LoanStatusPending), string(domain.LoanStatusPaid):
		s := domain.LoanStatus(status)
		input.Status = &s
	default:
		return NewValidationError(c, "Invalid status filter", []ValidationError{
			{Field: "status", Message: "Must be one of: pending paid all"},
		})
	}
	if c.QueryParam("customerId") != "" {
		id, ok := parseQueryID(c, "customerId")
		if !ok {
			return NewValidationError(c, "Invalid customer ID", nil)
		}
		input.CustomerID = &id
	}

	loans, err := h.loanService.ListLoans(c.Request().Context(), tenant, input)
	if err != nil {
		return respondError(c, err, "Failed to list loans")
	}

	response := make([]LoanSummaryResponse, len(loans))
	for i, loan := range loans {
		response[i] = LoanSummaryResponse{
			LoanResponse: toLoanResponse(loan.Loan),
			Balance:      formatMoney(loan.Balance),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetLoan handles GET /api/v1/loans/:id
// @Summary Get a loan with installments, balance and advisory accrual
// @Tags loans
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} LoanDetailResponse
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id} [get]
func (h *LoanHandler) GetLoan(c echo.Context) error {
	tenant := tenantID(c)
	if tenant == 0 {
		return NewUnauthorizedError(c, "Operator required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	detail, err := h.loanService.GetLoan(c.Request().Context(), tenant, id)
	if err != nil {
		return respondError(c, err, "Failed to get loan")
	}

	return c.JSON(http.StatusOK, toLoanDetailResponse(detail))
}

// RegenerateSchedule handles PUT /api/v1/loans/:id/schedule
// @Summary Edit a loan and regenerate its schedule
// @Description Replaces every installment and drops the loan's payment history. Manager or admin only.
// @Tags loans
// @Accept json
// @Produce json
// @Param id path int true "Loan ID"
// @Param loan body RegenerateScheduleRequest true "New loan terms"
// @Success 200 {object} LoanDetailResponse
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id}/schedule [put]
func (h *LoanHandler) RegenerateSchedule(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	var req RegenerateScheduleRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}
	principal, ok, err := parsePrincipal(c, req.Principal)
	if !ok {
		return err
	}
	start, ok, err := parseStartDate(c, req.StartDate)
	if !ok {
		return err
	}

	detail, err := h.loanService.RegenerateSchedule(c.Request().Context(), actor, id, service.RegenerateScheduleInput{
		Description: req.Description,
		Principal:   principal,
		RateTier:    domain.RateTier(req.RateTier),
		StartDate:   start,
	})
	if err != nil {
		return respondError(c, err, "Failed to regenerate schedule")
	}

	log.Info().Int32("tenant_id", actor.TenantID).Int32("loan_id", id).Int32("installments", detail.Loan.InstallmentCount).Msg("Loan schedule regenerated")

	return c.JSON(http.StatusOK, toLoanDetailResponse(detail))
}

// DeleteLoan handles DELETE /api/v1/loans/:id
// @Summary Delete a loan with its installments, payments and history
// @Tags loans
// @Param id path int true "Loan ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id} [delete]
func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	if err := h.loanService.DeleteLoan(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err, "Failed to delete loan")
	}

	log.Info().Int32("tenant_id", actor.TenantID).Int32("loan_id", id).Msg("Loan deleted")

	return c.NoContent(http.StatusNoContent)
}

// GetLoanBalance handles GET /api/v1/loans/:id/balance
// @Summary Outstanding balance of a loan
// @Tags loans
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} BalanceResponse
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id}/balance [get]
func (h *LoanHandler) GetLoanBalance(c echo.Context) error {
	tenant := tenantID(c)
	if tenant == 0 {
		return NewUnauthorizedError(c, "Operator required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	balance, err := h.balanceService.ComputeBalance(c.Request().Context(), tenant, id)
	if err != nil {
		return respondError(c, err, "Failed to get loan balance")
	}

	return c.JSON(http.StatusOK, BalanceResponse{Balance: formatMoney(balance)})
}

// GetCalendar handles GET /api/v1/loans/calendar
// @Summary Loan due dates as calendar events
// @Tags loans
// @Produce json
// @Success 200 {array} CalendarEventResponse
// @Router /loans/calendar [get]
func (h *LoanHandler) GetCalendar(c echo.Context) error {
	tenant := tenantID(c)
	if tenant == 0 {
		return NewUnauthorizedError(c, "Operator required")
	}

	events, err := h.loanService.CalendarEvents(c.Request().Context(), tenant)
	if err != nil {
		return respondError(c, err, "Failed to get calendar")
	}

	response := make([]CalendarEventResponse, len(events))
	for i, event := range events {
		response[i] = CalendarEventResponse{
			Title:      event.Title,
			Start:      event.Start,
			LoanID:     event.LoanID,
			CustomerID: event.CustomerID,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// RescheduleInstallment handles PUT /api/v1/installments/:id/due-date
// @Summary Move a pending installment to another due date
// @Tags installments
// @Accept json
// @Produce json
// @Param id path int true "Installment ID"
// @Param body body RescheduleInstallmentRequest true "New due date"
// @Success 200 {object} InstallmentResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /installments/{id}/due-date [put]
func (h *LoanHandler) RescheduleInstallment(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid installment ID", nil)
	}

	var req RescheduleInstallmentRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return NewValidationError(c, "Invalid due date", []ValidationError{
			{Field: "dueDate", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	inst, err := h.loanService.RescheduleInstallment(c.Request().Context(), actor, id, dueDate)
	if err != nil {
		return respondError(c, err, "Failed to reschedule installment")
	}

	log.Info().Int32("tenant_id", actor.TenantID).Int32("installment_id", id).Str("due_date", formatDate(inst.DueDate)).Msg("Installment rescheduled")

	return c.JSON(http.StatusOK, toInstallmentResponse(inst, inst.IsOverdue(time.Now())))
}
