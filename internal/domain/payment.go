package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how money was received
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodPix      PaymentMethod = "pix"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCard     PaymentMethod = "card"
)

var (
	ErrPaymentMethodInvalid = NewError(ErrValidation, "payment method must be cash, pix, transfer or card")
	ErrPaymentNoteTooLong   = NewError(ErrValidation, "note must be 500 characters or less")
)

// ParsePaymentMethod maps empty input to cash and rejects unknown methods
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case "":
		return PaymentMethodCash, nil
	case PaymentMethodCash, PaymentMethodPix, PaymentMethodTransfer, PaymentMethodCard:
		return m, nil
	}
	return "", ErrPaymentMethodInvalid
}

// Payment is an append-only record of money received against a loan
type Payment struct {
	ID         int32           `json:"id"`
	TenantID   int32           `json:"tenantId"`
	LoanID     int32           `json:"loanId"`
	Amount     decimal.Decimal `json:"amount"`
	PaidOn     time.Time       `json:"paidOn"`
	Method     PaymentMethod   `json:"method"`
	Note       *string         `json:"note,omitempty"`
	OperatorID *uuid.UUID      `json:"operatorId,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// PaymentHistory is the customer-scoped audit trail. Every ledger action writes one entry.
type PaymentHistory struct {
	ID            int32           `json:"id"`
	TenantID      int32           `json:"tenantId"`
	LoanID        int32           `json:"loanId"`
	CustomerID    int32           `json:"customerId"`
	InstallmentID *int32          `json:"installmentId,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaidOn        time.Time       `json:"paidOn"`
	Method        PaymentMethod   `json:"method"`
	Note          *string         `json:"note,omitempty"`
	OperatorID    *uuid.UUID      `json:"operatorId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PaymentHistoryEntry is a history row with the description of its loan
type PaymentHistoryEntry struct {
	PaymentHistory
	LoanDescription string `json:"loanDescription"`
}

// PaymentRepository reads payments. Writes go through LedgerRepository.
type PaymentRepository interface {
	ListByLoan(ctx context.Context, tenantID int32, loanID int32) ([]*Payment, error)
	SumReceivedSince(ctx context.Context, tenantID int32, since time.Time) (decimal.Decimal, error)
}

// PaymentHistoryRepository reads the audit trail
type PaymentHistoryRepository interface {
	ListByCustomer(ctx context.Context, tenantID int32, customerID int32) ([]*PaymentHistoryEntry, error)
}
