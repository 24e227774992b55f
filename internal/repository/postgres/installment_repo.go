package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const installmentColumns = `i.id, i.tenant_id, i.loan_id, i.sequence_number, i.amount, i.due_date, i.status,
	i.manual_penalty, i.paid_amount, i.paid_date, i.payment_method, i.notes, i.created_at, i.updated_at`

// InstallmentRepository implements domain.InstallmentRepository using PostgreSQL
type InstallmentRepository struct {
	pool *pgxpool.Pool
}

// NewInstallmentRepository creates a new InstallmentRepository
func NewInstallmentRepository(pool *pgxpool.Pool) *InstallmentRepository {
	return &InstallmentRepository{pool: pool}
}

// GetByID retrieves an installment within a tenant
func (r *InstallmentRepository) GetByID(ctx context.Context, tenantID int32, id int32) (*domain.Installment, error) {
	return getInstallment(ctx, r.pool, tenantID, id, false)
}

// ListByLoan lists a loan's installments by sequence number
func (r *InstallmentRepository) ListByLoan(ctx context.Context, tenantID int32, loanID int32) ([]*domain.Installment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+installmentColumns+` FROM installments i
		 WHERE i.tenant_id = $1 AND i.loan_id = $2
		 ORDER BY i.sequence_number`, tenantID, loanID)
	if err != nil {
		return nil, translate("list installments", err, nil)
	}
	insts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Installment, error) {
		return scanInstallment(row)
	})
	if err != nil {
		return nil, translate("list installments", err, nil)
	}
	return insts, nil
}

// ListOutstanding returns pending installments of pending loans, tagged with customer and company
func (r *InstallmentRepository) ListOutstanding(ctx context.Context, tenantID int32, filter domain.OutstandingFilter) ([]*domain.OutstandingInstallment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+installmentColumns+`, l.customer_id, c.company
		 FROM installments i
		 JOIN loans l ON l.id = i.loan_id AND l.tenant_id = i.tenant_id
		 JOIN customers c ON c.id = l.customer_id AND c.tenant_id = l.tenant_id
		 WHERE i.tenant_id = $1 AND i.status = 'pending' AND l.status = 'pending'
		   AND ($2::int IS NULL OR l.customer_id = $2)
		   AND ($3::text IS NULL OR c.company = $3)
		 ORDER BY i.due_date, i.id`,
		tenantID, filter.CustomerID, filter.Company)
	if err != nil {
		return nil, translate("list outstanding installments", err, nil)
	}
	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.OutstandingInstallment, error) {
		var out domain.OutstandingInstallment
		inst, err := scanInstallment(row, &out.CustomerID, &out.Company)
		if err != nil {
			return nil, err
		}
		out.Installment = inst
		return &out, nil
	})
	if err != nil {
		return nil, translate("list outstanding installments", err, nil)
	}
	return result, nil
}

// UpdateManualPenalty sets or clears (nil) an installment's manual penalty
func (r *InstallmentRepository) UpdateManualPenalty(ctx context.Context, tenantID int32, id int32, penalty *decimal.Decimal) (*domain.Installment, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE installments AS i SET manual_penalty = $3, updated_at = NOW()
		 WHERE i.tenant_id = $1 AND i.id = $2
		 RETURNING `+installmentColumns,
		tenantID, id, nullableNumeric(penalty))
	inst, err := scanInstallment(row)
	if err != nil {
		return nil, translate("update manual penalty", err, domain.ErrInstallmentNotFound)
	}
	return inst, nil
}

// UpdateDueDate moves a pending installment. A paid installment is left untouched.
func (r *InstallmentRepository) UpdateDueDate(ctx context.Context, tenantID int32, id int32, dueDate time.Time) (*domain.Installment, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE installments AS i SET due_date = $3, updated_at = NOW()
		 WHERE i.tenant_id = $1 AND i.id = $2 AND i.status = 'pending'
		 RETURNING `+installmentColumns,
		tenantID, id, pgDate(dueDate))
	inst, err := scanInstallment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		// either missing or already paid
		if _, err := r.GetByID(ctx, tenantID, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrAlreadySettled
	}
	if err != nil {
		return nil, translate("update due date", err, nil)
	}
	return inst, nil
}

func getInstallment(ctx context.Context, q dbtx, tenantID int32, id int32, forUpdate bool) (*domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments i WHERE i.tenant_id = $1 AND i.id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	inst, err := scanInstallment(q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, translate("get installment", err, domain.ErrInstallmentNotFound)
	}
	return inst, nil
}

// insertInstallments writes a schedule for loan inside tx
func insertInstallments(ctx context.Context, tx pgx.Tx, loan *domain.Loan, installments []*domain.Installment) ([]*domain.Installment, error) {
	result := make([]*domain.Installment, 0, len(installments))
	for _, inst := range installments {
		var method *string
		if inst.PaymentMethod != nil {
			m := string(*inst.PaymentMethod)
			method = &m
		}
		row := tx.QueryRow(ctx,
			`INSERT INTO installments AS i (tenant_id, loan_id, sequence_number, amount, due_date, status,
				manual_penalty, paid_amount, paid_date, payment_method, notes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 RETURNING `+installmentColumns,
			loan.TenantID, loan.ID, inst.SequenceNumber, numeric(inst.Amount), pgDate(inst.DueDate),
			string(inst.Status), nullableNumeric(inst.ManualPenalty), numeric(inst.PaidAmount),
			nullableDate(inst.PaidDate), method, inst.Notes)
		created, err := scanInstallment(row)
		if err != nil {
			return nil, translate("create installment", err, nil)
		}
		result = append(result, created)
	}
	return result, nil
}

// scanInstallment reads installmentColumns followed by any extra destinations
func scanInstallment(row scanner, extra ...any) (*domain.Installment, error) {
	var (
		inst                        domain.Installment
		amount, penalty, paidAmount pgtype.Numeric
		dueDate, paidDate           pgtype.Date
		status                      string
		method                      *string
	)
	dest := []any{&inst.ID, &inst.TenantID, &inst.LoanID, &inst.SequenceNumber, &amount, &dueDate, &status,
		&penalty, &paidAmount, &paidDate, &method, &inst.Notes, &inst.CreatedAt, &inst.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	inst.Amount = pgNumericToDecimal(amount)
	inst.ManualPenalty = pgNumericToDecimalPtr(penalty)
	inst.PaidAmount = pgNumericToDecimal(paidAmount)
	inst.DueDate = dateFromPg(dueDate)
	inst.PaidDate = dateFromPgPtr(paidDate)
	inst.Status = domain.InstallmentStatus(status)
	if method != nil {
		m := domain.PaymentMethod(*method)
		inst.PaymentMethod = &m
	}
	return &inst, nil
}
