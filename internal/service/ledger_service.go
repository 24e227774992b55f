package service

import (
	"context"
	"strings"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// LedgerService applies payments, settlements and manual penalties
type LedgerService struct {
	ledgerRepo      domain.LedgerRepository
	installmentRepo domain.InstallmentRepository
	paymentRepo     domain.PaymentRepository
	loanRepo        domain.LoanRepository
	notifications   domain.NotificationRepository
	eventPublisher  websocket.EventPublisher
	now             func() time.Time
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledgerRepo domain.LedgerRepository, installmentRepo domain.InstallmentRepository, paymentRepo domain.PaymentRepository, loanRepo domain.LoanRepository, notifications domain.NotificationRepository) *LedgerService {
	return &LedgerService{
		ledgerRepo:      ledgerRepo,
		installmentRepo: installmentRepo,
		paymentRepo:     paymentRepo,
		loanRepo:        loanRepo,
		notifications:   notifications,
		now:             time.Now,
	}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *LedgerService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *LedgerService) publishEvent(tenantID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(tenantID, event)
	}
}

// GenericPaymentRequest is a free-form payment entered by an operator
type GenericPaymentRequest struct {
	Amount decimal.Decimal
	Note   string
	Method string
}

// ApplyGenericPayment records a payment against the loan and grows its paid amount.
// Installment statuses and loan status are left alone.
func (s *LedgerService) ApplyGenericPayment(ctx context.Context, actor domain.Actor, loanID int32, req GenericPaymentRequest) (*domain.GenericPaymentResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	method, err := domain.ParsePaymentMethod(req.Method)
	if err != nil {
		return nil, err
	}
	var note *string
	if trimmed := strings.TrimSpace(req.Note); trimmed != "" {
		if len(trimmed) > domain.MaxDescriptionLength {
			return nil, domain.ErrPaymentNoteTooLong
		}
		note = &trimmed
	}

	result, err := s.ledgerRepo.ApplyGenericPayment(ctx, actor.TenantID, loanID, domain.GenericPaymentInput{
		Amount: req.Amount,
		Note:   note,
		Method: method,
		PaidOn: domain.DateOnly(s.now()),
		Actor:  actor,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int32("tenant_id", actor.TenantID).
		Int32("loan_id", loanID).
		Str("amount", req.Amount.String()).
		Msg("Generic payment applied")
	s.publishEvent(actor.TenantID, websocket.PaymentCreated(result))
	return result, nil
}

// SettleInstallment marks the installment paid in full and closes the loan once
// its paid amount reaches the total due. A second settlement yields ErrAlreadySettled.
func (s *LedgerService) SettleInstallment(ctx context.Context, actor domain.Actor, installmentID int32, method string) (*domain.SettlementResult, error) {
	paymentMethod, err := domain.ParsePaymentMethod(method)
	if err != nil {
		return nil, err
	}

	result, err := s.ledgerRepo.SettleInstallment(ctx, actor.TenantID, installmentID, domain.SettlementInput{
		Method: paymentMethod,
		PaidOn: domain.DateOnly(s.now()),
		Actor:  actor,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int32("tenant_id", actor.TenantID).
		Int32("installment_id", installmentID).
		Bool("loan_closed", result.LoanClosed).
		Msg("Installment settled")
	s.publishEvent(actor.TenantID, websocket.InstallmentSettled(result))
	if result.LoanClosed {
		s.publishEvent(actor.TenantID, websocket.LoanPaid(result.Loan))
	}
	return result, nil
}

// SetManualPenalty overrides the installment's penalty; nil clears it.
// No money moves and no paid amount changes.
func (s *LedgerService) SetManualPenalty(ctx context.Context, actor domain.Actor, installmentID int32, penalty *decimal.Decimal) (*domain.Installment, error) {
	if err := domain.ValidateManualPenalty(penalty); err != nil {
		return nil, err
	}
	inst, err := s.installmentRepo.UpdateManualPenalty(ctx, actor.TenantID, installmentID, penalty)
	if err != nil {
		return nil, err
	}
	s.publishEvent(actor.TenantID, websocket.InstallmentUpdated(inst))
	return inst, nil
}

// ListPayments returns the loan's payments, newest first
func (s *LedgerService) ListPayments(ctx context.Context, tenantID int32, loanID int32) ([]*domain.Payment, error) {
	if _, err := s.loanRepo.GetByID(ctx, tenantID, loanID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByLoan(ctx, tenantID, loanID)
}

// ListNotifications returns the notifications written for the loan, newest first
func (s *LedgerService) ListNotifications(ctx context.Context, tenantID int32, loanID int32) ([]*domain.Notification, error) {
	if _, err := s.loanRepo.GetByID(ctx, tenantID, loanID); err != nil {
		return nil, err
	}
	return s.notifications.ListByLoan(ctx, tenantID, loanID)
}
