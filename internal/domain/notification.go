package domain

import (
	"context"
	"time"
)

// NotificationKind classifies a notification
type NotificationKind string

const NotificationKindLoanPaid NotificationKind = "loan_paid"

// NotificationStatusSent marks notifications already delivered to the tenant feed
const NotificationStatusSent = "sent"

// Notification is a message tied to a loan, deleted with it
type Notification struct {
	ID        int32            `json:"id"`
	TenantID  int32            `json:"tenantId"`
	LoanID    int32            `json:"loanId"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	Status    string           `json:"status"`
	SentAt    time.Time        `json:"sentAt"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NotificationRepository reads notifications. They are written inside ledger transactions.
type NotificationRepository interface {
	ListByLoan(ctx context.Context, tenantID int32, loanID int32) ([]*Notification, error)
}
