package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInstallmentNotFound = NewError(ErrNotFound, "installment not found")
	ErrAlreadySettled      = NewError(ErrConflict, "installment is already paid")
	ErrNegativePenalty     = NewError(ErrValidation, "manual penalty cannot be negative")
)

// InstallmentStatus is the payment state of one installment
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPaid    InstallmentStatus = "paid"
)

// Installment is one scheduled share of a loan's total due.
// Amount and DueDate are frozen once the installment is paid.
type Installment struct {
	ID             int32             `json:"id"`
	TenantID       int32             `json:"tenantId"`
	LoanID         int32             `json:"loanId"`
	SequenceNumber int32             `json:"sequenceNumber"`
	Amount         decimal.Decimal   `json:"amount"`
	DueDate        time.Time         `json:"dueDate"`
	Status         InstallmentStatus `json:"status"`
	ManualPenalty  *decimal.Decimal  `json:"manualPenalty,omitempty"`
	PaidAmount     decimal.Decimal   `json:"paidAmount"`
	PaidDate       *time.Time        `json:"paidDate,omitempty"`
	PaymentMethod  *PaymentMethod    `json:"paymentMethod,omitempty"`
	Notes          *string           `json:"notes,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// IsPaid reports whether the installment has been settled
func (i *Installment) IsPaid() bool {
	return i.Status == InstallmentStatusPaid
}

// IsOverdue reports whether the installment is pending with its due date before asOf
func (i *Installment) IsOverdue(asOf time.Time) bool {
	return i.Status == InstallmentStatusPending && DateOnly(i.DueDate).Before(DateOnly(asOf))
}

// PenaltyOrZero returns the manual penalty clamped at zero
func (i *Installment) PenaltyOrZero() decimal.Decimal {
	if i.ManualPenalty == nil || i.ManualPenalty.IsNegative() {
		return decimal.Zero
	}
	return *i.ManualPenalty
}

// UpdatedAmount is the installment amount plus its manual penalty
func (i *Installment) UpdatedAmount() decimal.Decimal {
	return i.Amount.Add(i.PenaltyOrZero())
}

// OutstandingFilter selects the pending installments of pending loans
type OutstandingFilter struct {
	CustomerID *int32
	Company    *string
}

// OutstandingInstallment is a pending installment tagged with its owner
type OutstandingInstallment struct {
	*Installment
	CustomerID int32
	Company    *string
}

// Installments unwraps the tagged rows
func Installments(rows []*OutstandingInstallment) []*Installment {
	out := make([]*Installment, len(rows))
	for i, row := range rows {
		out[i] = row.Installment
	}
	return out
}

// InstallmentRepository defines persistence operations for installments.
// Every method is scoped to a tenant.
type InstallmentRepository interface {
	GetByID(ctx context.Context, tenantID int32, id int32) (*Installment, error)
	ListByLoan(ctx context.Context, tenantID int32, loanID int32) ([]*Installment, error)
	// ListOutstanding returns pending installments that belong to pending loans
	ListOutstanding(ctx context.Context, tenantID int32, filter OutstandingFilter) ([]*OutstandingInstallment, error)
	UpdateManualPenalty(ctx context.Context, tenantID int32, id int32, penalty *decimal.Decimal) (*Installment, error)
	// UpdateDueDate moves a pending installment; paid installments yield ErrAlreadySettled
	UpdateDueDate(ctx context.Context, tenantID int32, id int32, dueDate time.Time) (*Installment, error)
}
