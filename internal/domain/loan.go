package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrLoanNotFound           = NewError(ErrNotFound, "loan not found")
	ErrLoanDescriptionTooLong = NewError(ErrValidation, "description must be 500 characters or less")
	ErrLoanCustomerInvalid    = NewError(ErrValidation, "customer is required")
	ErrInvalidRateTier        = NewError(ErrValidation, "rate tier must be 30 or 60")
)

// LoanStatus is the lifecycle state of a loan
type LoanStatus string

const (
	LoanStatusPending LoanStatus = "pending"
	LoanStatusPaid    LoanStatus = "paid"
)

// ChargeTypeInstallments is the only charge type: a loan split into daily installments
const ChargeTypeInstallments = "installments"

// RateTier is the flat interest percentage applied to a loan's principal
type RateTier int32

const (
	RateTier30 RateTier = 30
	RateTier60 RateTier = 60
)

// InstallmentCount returns the number of installments a tier is split into
func (t RateTier) InstallmentCount() (int, error) {
	switch t {
	case RateTier30:
		return 10, nil
	case RateTier60:
		return 15, nil
	}
	return 0, ErrInvalidRateTier
}

// Rate returns the tier as a percentage
func (t RateTier) Rate() decimal.Decimal {
	return decimal.NewFromInt32(int32(t))
}

// Loan is a debt owed by a customer, split into installments.
// PaidAmount only grows, and Status moves to paid once PaidAmount reaches TotalDue.
type Loan struct {
	ID               int32           `json:"id"`
	TenantID         int32           `json:"tenantId"`
	CustomerID       int32           `json:"customerId"`
	Description      string          `json:"description"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	RateTier         RateTier        `json:"rateTier"`
	TotalDue         decimal.Decimal `json:"totalDue"`
	PaidAmount       decimal.Decimal `json:"paidAmount"`
	Discount         decimal.Decimal `json:"discount"`
	Status           LoanStatus      `json:"status"`
	DueDate          time.Time       `json:"dueDate"`
	PaidDate         *time.Time      `json:"paidDate,omitempty"`
	InstallmentCount int32           `json:"installmentCount"`
	ChargeType       string          `json:"chargeType"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// IsSettled reports whether the loan has been closed
func (l *Loan) IsSettled() bool {
	return l.Status == LoanStatusPaid
}

// IsOverdue reports whether the loan is pending with its due date before asOf
func (l *Loan) IsOverdue(asOf time.Time) bool {
	return l.Status == LoanStatusPending && DateOnly(l.DueDate).Before(DateOnly(asOf))
}

// LoanFilter narrows loan listings
type LoanFilter struct {
	Status      *LoanStatus
	CustomerID  *int32
	OverdueAsOf *time.Time
	Limit       int
}

// LoanRepository defines persistence operations for loans.
// Every method is scoped to a tenant. Schedule writes are atomic.
type LoanRepository interface {
	// CreateWithSchedule inserts the loan and all its installments in one transaction
	CreateWithSchedule(ctx context.Context, loan *Loan, installments []*Installment) (*Loan, []*Installment, error)
	// RegenerateSchedule replaces the installments, drops the loan's payment history
	// and rewrites the loan row in one transaction
	RegenerateSchedule(ctx context.Context, loan *Loan, installments []*Installment) (*Loan, []*Installment, error)
	GetByID(ctx context.Context, tenantID int32, id int32) (*Loan, error)
	List(ctx context.Context, tenantID int32, filter LoanFilter) ([]*Loan, error)
	Count(ctx context.Context, tenantID int32, filter LoanFilter) (int64, error)
	// Delete removes the loan with its installments, payments, notifications and history
	Delete(ctx context.Context, tenantID int32, id int32) error
}
