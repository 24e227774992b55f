package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// LedgerHandler handles payment, settlement and penalty HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// GenericPaymentRequest represents a free-form payment against a loan
type GenericPaymentRequest struct {
	Amount string `json:"amount" validate:"required"`
	Note   string `json:"note" validate:"max=500"`
	Method string `json:"method" validate:"omitempty,oneof=cash pix transfer card"`
}

// SettleInstallmentRequest represents the optional settlement body
type SettleInstallmentRequest struct {
	Method string `json:"method" validate:"omitempty,oneof=cash pix transfer card"`
}

// ManualPenaltyRequest sets or clears an installment's manual penalty
type ManualPenaltyRequest struct {
	ManualPenalty *string `json:"manualPenalty"`
}

// ApplyGenericPayment handles POST /api/v1/loans/:id/payments
// @Summary Record a generic payment against a loan
// @Description Grows the loan's paid amount without settling any installment or closing the loan.
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path int true "Loan ID"
// @Param payment body GenericPaymentRequest true "Payment"
// @Success 201 {object} GenericPaymentResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id}/payments [post]
func (h *LedgerHandler) ApplyGenericPayment(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	loanID, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	var req GenericPaymentRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	result, err := h.ledgerService.ApplyGenericPayment(c.Request().Context(), actor, loanID, service.GenericPaymentRequest{
		Amount: amount,
		Note:   req.Note,
		Method: req.Method,
	})
	if err != nil {
		return respondError(c, err, "Failed to apply payment")
	}

	log.Info().Int32("tenant_id", actor.TenantID).Int32("loan_id", loanID).Int32("payment_id", result.Payment.ID).Str("amount", formatMoney(result.Payment.Amount)).Msg("Payment applied")

	return c.JSON(http.StatusCreated, GenericPaymentResponse{
		Loan:    toLoanResponse(result.Loan),
		Payment: toPaymentResponse(result.Payment),
		History: toHistoryResponse(result.History, ""),
	})
}

// ListPayments handles GET /api/v1/loans/:id/payments
// @Summary List a loan's payments, newest first
// @Tags ledger
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {array} PaymentResponse
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id}/payments [get]
func (h *LedgerHandler) ListPayments(c echo.Context) error {
	tenant := tenantID(c)
	if tenant == 0 {
		return NewUnauthorizedError(c, "Operator required")
	}

	loanID, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	payments, err := h.ledgerService.ListPayments(c.Request().Context(), tenant, loanID)
	if err != nil {
		return respondError(c, err, "Failed to list payments")
	}

	response := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		response[i] = toPaymentResponse(p)
	}
	return c.JSON(http.StatusOK, response)
}

// ListNotifications handles GET /api/v1/loans/:id/notifications
// @Summary List the notifications written for a loan, newest first
// @Tags ledger
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {array} NotificationResponse
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id}/notifications [get]
func (h *LedgerHandler) ListNotifications(c echo.Context) error {
	tenant := tenantID(c)
	if tenant == 0 {
		return NewUnauthorizedError(c, "Operator required")
	}

	loanID, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	notifications, err := h.ledgerService.ListNotifications(c.Request().Context(), tenant, loanID)
	if err != nil {
		return respondError(c, err, "Failed to list notifications")
	}

	response := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		response[i] = toNotificationResponse(n)
	}
	return c.JSON(http.StatusOK, response)
}

// SettleInstallment handles POST /api/v1/installments/:id/settle
// @Summary Settle an installment in full
// @Description Marks the installment paid, adds its amount to the loan and closes the loan once fully paid.
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path int true "Installment ID"
// @Param body body SettleInstallmentRequest false "Payment method"
// @Success 200 {object} SettlementResponse
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /installments/{id}/settle [post]
func (h *LedgerHandler) SettleInstallment(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid installment ID", nil)
	}

	var req SettleInstallmentRequest
	if c.Request().ContentLength > 0 {
		if ok, err := bindRequest(c, &req); !ok {
			return err
		}
	}

	result, err := h.ledgerService.SettleInstallment(c.Request().Context(), actor, id, req.Method)
	if err != nil {
		return respondError(c, err, "Failed to settle installment")
	}

	log.Info().Int32("tenant_id", actor.TenantID).Int32("installment_id", id).Int32("loan_id", result.Loan.ID).Bool("loan_closed", result.LoanClosed).Msg("Installment settled")

	return c.JSON(http.StatusOK, SettlementResponse{
		Installment: toInstallmentResponse(result.Installment, false),
		Loan:        toLoanResponse(result.Loan),
		History:     toHistoryResponse(result.History, result.Loan.Description),
		LoanClosed:  result.LoanClosed,
	})
}

// SetManualPenalty handles PUT /api/v1/installments/:id/penalty
// @Summary Set or clear an installment's manual penalty
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path int true "Installment ID"
// @Param body body ManualPenaltyRequest true "Penalty, null to clear"
// @Success 200 {object} InstallmentResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /installments/{id}/penalty [put]
func (h *LedgerHandler) SetManualPenalty(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid installment ID", nil)
	}

	var req ManualPenaltyRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}
	penalty, err := parseOptionalDecimal(req.ManualPenalty)
	if err != nil {
		return NewValidationError(c, "Invalid penalty", []ValidationError{
			{Field: "manualPenalty", Message: "Must be a valid decimal number"},
		})
	}

	inst, err := h.ledgerService.SetManualPenalty(c.Request().Context(), actor, id, penalty)
	if err != nil {
		return respondError(c, err, "Failed to set penalty")
	}

	log.Info().Int32("tenant_id", actor.TenantID).Int32("installment_id", id).Msg("Installment penalty updated")

	return c.JSON(http.StatusOK, toInstallmentResponse(inst, inst.IsOverdue(time.Now())))
}
