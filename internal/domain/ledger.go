package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GenericPaymentInput is a free-form payment against a loan
type GenericPaymentInput struct {
	Amount decimal.Decimal
	Note   *string
	Method PaymentMethod
	PaidOn time.Time
	Actor  Actor
}

// GenericPaymentResult holds the rows written by a generic payment
type GenericPaymentResult struct {
	Loan    *Loan           `json:"loan"`
	Payment *Payment        `json:"payment"`
	History *PaymentHistory `json:"history"`
}

// SettlementInput settles one installment in full
type SettlementInput struct {
	Method PaymentMethod
	PaidOn time.Time
	Actor  Actor
}

// SettlementResult holds the rows written by a settlement
type SettlementResult struct {
	Installment  *Installment    `json:"installment"`
	Loan         *Loan           `json:"loan"`
	History      *PaymentHistory `json:"history"`
	LoanClosed   bool            `json:"loanClosed"`
	Notification *Notification   `json:"notification,omitempty"`
}

// LedgerRepository applies money movements atomically: either every touched row commits or none does
type LedgerRepository interface {
	ApplyGenericPayment(ctx context.Context, tenantID int32, loanID int32, input GenericPaymentInput) (*GenericPaymentResult, error)
	SettleInstallment(ctx context.Context, tenantID int32, installmentID int32, input SettlementInput) (*SettlementResult, error)
}

// RecordPayment adds amount to the loan's paid total. It never touches status.
func (l *Loan) RecordPayment(amount decimal.Decimal) {
	l.PaidAmount = l.PaidAmount.Add(amount)
}

// CloseIfSettled transitions a pending loan to paid once PaidAmount reaches TotalDue.
// It reports whether the transition happened; a paid loan is never reopened.
func (l *Loan) CloseIfSettled(today time.Time) bool {
	if l.Status != LoanStatusPending || l.PaidAmount.LessThan(l.TotalDue) {
		return false
	}
	l.Status = LoanStatusPaid
	paid := DateOnly(today)
	l.PaidDate = &paid
	return true
}

// Settle marks the installment paid in full on the given day
func (i *Installment) Settle(on time.Time, method PaymentMethod) error {
	if i.IsPaid() {
		return ErrAlreadySettled
	}
	paid := DateOnly(on)
	i.Status = InstallmentStatusPaid
	i.PaidAmount = i.Amount
	i.PaidDate = &paid
	i.PaymentMethod = &method
	return nil
}

// ValidateManualPenalty accepts nil (clear) or any non-negative value
func ValidateManualPenalty(penalty *decimal.Decimal) error {
	if penalty != nil && penalty.IsNegative() {
		return ErrNegativePenalty
	}
	return nil
}

// NewGenericPaymentRecords builds the payment and history rows for a generic payment
func NewGenericPaymentRecords(loan *Loan, input GenericPaymentInput) (*Payment, *PaymentHistory) {
	operatorID := operatorRef(input.Actor.OperatorID)
	payment := &Payment{
		TenantID:   loan.TenantID,
		LoanID:     loan.ID,
		Amount:     input.Amount,
		PaidOn:     input.PaidOn,
		Method:     input.Method,
		Note:       input.Note,
		OperatorID: operatorID,
	}
	history := &PaymentHistory{
		TenantID:   loan.TenantID,
		LoanID:     loan.ID,
		CustomerID: loan.CustomerID,
		Amount:     input.Amount,
		PaidOn:     input.PaidOn,
		Method:     input.Method,
		Note:       input.Note,
		OperatorID: operatorID,
	}
	return payment, history
}

// NewSettlementHistory builds the history row for a settled installment
func NewSettlementHistory(loan *Loan, inst *Installment, input SettlementInput) *PaymentHistory {
	note := fmt.Sprintf("Installment %d payment", inst.SequenceNumber)
	id := inst.ID
	return &PaymentHistory{
		TenantID:      loan.TenantID,
		LoanID:        loan.ID,
		CustomerID:    loan.CustomerID,
		InstallmentID: &id,
		Amount:        inst.Amount,
		PaidOn:        input.PaidOn,
		Method:        input.Method,
		Note:          &note,
		OperatorID:    operatorRef(input.Actor.OperatorID),
	}
}

// NewLoanPaidNotification builds the notification written when a loan closes
func NewLoanPaidNotification(loan *Loan, at time.Time) *Notification {
	return &Notification{
		TenantID: loan.TenantID,
		LoanID:   loan.ID,
		Kind:     NotificationKindLoanPaid,
		Message:  fmt.Sprintf("Loan %d paid off (%s)", loan.ID, loan.TotalDue.StringFixed(2)),
		Status:   NotificationStatusSent,
		SentAt:   at,
	}
}

func operatorRef(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
