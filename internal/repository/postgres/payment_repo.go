package postgres

import (
	"context"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	paymentColumns = `id, tenant_id, loan_id, amount, paid_on, method, note, operator_id, created_at`
	historyColumns = `h.id, h.tenant_id, h.loan_id, h.customer_id, h.installment_id, h.amount, h.paid_on,
	h.method, h.note, h.operator_id, h.created_at`
)

// PaymentRepository implements domain.PaymentRepository using PostgreSQL
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// ListByLoan lists a loan's payments, newest first
func (r *PaymentRepository) ListByLoan(ctx context.Context, tenantID int32, loanID int32) ([]*domain.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments
		 WHERE tenant_id = $1 AND loan_id = $2
		 ORDER BY paid_on DESC, id DESC`, tenantID, loanID)
	if err != nil {
		return nil, translate("list payments", err, nil)
	}
	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Payment, error) {
		return scanPayment(row)
	})
	if err != nil {
		return nil, translate("list payments", err, nil)
	}
	return payments, nil
}

// SumReceivedSince totals the payments received on or after since
func (r *PaymentRepository) SumReceivedSince(ctx context.Context, tenantID int32, since time.Time) (decimal.Decimal, error) {
	var total pgtype.Numeric
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE tenant_id = $1 AND paid_on >= $2`,
		tenantID, pgDate(since)).Scan(&total)
	if err != nil {
		return decimal.Zero, translate("sum payments", err, nil)
	}
	return pgNumericToDecimal(total), nil
}

// PaymentHistoryRepository implements domain.PaymentHistoryRepository using PostgreSQL
type PaymentHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentHistoryRepository creates a new PaymentHistoryRepository
func NewPaymentHistoryRepository(pool *pgxpool.Pool) *PaymentHistoryRepository {
	return &PaymentHistoryRepository{pool: pool}
}

// ListByCustomer returns a customer's audit trail, newest first
func (r *PaymentHistoryRepository) ListByCustomer(ctx context.Context, tenantID int32, customerID int32) ([]*domain.PaymentHistoryEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+historyColumns+`, l.description
		 FROM payment_history h
		 JOIN loans l ON l.id = h.loan_id AND l.tenant_id = h.tenant_id
		 WHERE h.tenant_id = $1 AND h.customer_id = $2
		 ORDER BY h.paid_on DESC, h.id DESC`, tenantID, customerID)
	if err != nil {
		return nil, translate("list payment history", err, nil)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.PaymentHistoryEntry, error) {
		var entry domain.PaymentHistoryEntry
		h, err := scanHistory(row, &entry.LoanDescription)
		if err != nil {
			return nil, err
		}
		entry.PaymentHistory = *h
		return &entry, nil
	})
	if err != nil {
		return nil, translate("list payment history", err, nil)
	}
	return entries, nil
}

// NotificationRepository implements domain.NotificationRepository using PostgreSQL
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

const notificationColumns = `id, tenant_id, loan_id, kind, message, status, sent_at, created_at`

// ListByLoan lists a loan's notifications, newest first
func (r *NotificationRepository) ListByLoan(ctx context.Context, tenantID int32, loanID int32) ([]*domain.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE tenant_id = $1 AND loan_id = $2
		 ORDER BY sent_at DESC, id DESC`, tenantID, loanID)
	if err != nil {
		return nil, translate("list notifications", err, nil)
	}
	notifications, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Notification, error) {
		return scanNotification(row)
	})
	if err != nil {
		return nil, translate("list notifications", err, nil)
	}
	return notifications, nil
}

func insertPayment(ctx context.Context, q dbtx, p *domain.Payment) (*domain.Payment, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO payments (tenant_id, loan_id, amount, paid_on, method, note, operator_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+paymentColumns,
		p.TenantID, p.LoanID, numeric(p.Amount), pgDate(p.PaidOn), string(p.Method), p.Note, nullableUUID(p.OperatorID))
	created, err := scanPayment(row)
	if err != nil {
		return nil, translate("create payment", err, nil)
	}
	return created, nil
}

func insertHistory(ctx context.Context, q dbtx, h *domain.PaymentHistory) (*domain.PaymentHistory, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO payment_history AS h (tenant_id, loan_id, customer_id, installment_id, amount, paid_on,
			method, note, operator_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+historyColumns,
		h.TenantID, h.LoanID, h.CustomerID, h.InstallmentID, numeric(h.Amount), pgDate(h.PaidOn),
		string(h.Method), h.Note, nullableUUID(h.OperatorID))
	created, err := scanHistory(row)
	if err != nil {
		return nil, translate("create payment history", err, nil)
	}
	return created, nil
}

func insertNotification(ctx context.Context, q dbtx, n *domain.Notification) (*domain.Notification, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO notifications (tenant_id, loan_id, kind, message, status, sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+notificationColumns,
		n.TenantID, n.LoanID, string(n.Kind), n.Message, n.Status, n.SentAt)
	created, err := scanNotification(row)
	if err != nil {
		return nil, translate("create notification", err, nil)
	}
	return created, nil
}

func scanPayment(row scanner) (*domain.Payment, error) {
	var (
		p        domain.Payment
		amount   pgtype.Numeric
		paidOn   pgtype.Date
		method   string
		operator pgtype.UUID
	)
	if err := row.Scan(&p.ID, &p.TenantID, &p.LoanID, &amount, &paidOn, &method, &p.Note, &operator, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Amount = pgNumericToDecimal(amount)
	p.PaidOn = dateFromPg(paidOn)
	p.Method = domain.PaymentMethod(method)
	p.OperatorID = uuidFromPgPtr(operator)
	return &p, nil
}

func scanHistory(row scanner, extra ...any) (*domain.PaymentHistory, error) {
	var (
		h        domain.PaymentHistory
		amount   pgtype.Numeric
		paidOn   pgtype.Date
		method   string
		operator pgtype.UUID
	)
	dest := []any{&h.ID, &h.TenantID, &h.LoanID, &h.CustomerID, &h.InstallmentID, &amount, &paidOn,
		&method, &h.Note, &operator, &h.CreatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	h.Amount = pgNumericToDecimal(amount)
	h.PaidOn = dateFromPg(paidOn)
	h.Method = domain.PaymentMethod(method)
	h.OperatorID = uuidFromPgPtr(operator)
	return &h, nil
}

func scanNotification(row scanner) (*domain.Notification, error) {
	var (
		n    domain.Notification
		kind string
	)
	if err := row.Scan(&n.ID, &n.TenantID, &n.LoanID, &kind, &n.Message, &n.Status, &n.SentAt, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.Kind = domain.NotificationKind(kind)
	return &n, nil
}
