package postgres

import (
	"context"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const loanColumns = `id, tenant_id, customer_id, description, original_amount, rate_tier, total_due,
	paid_amount, discount, status, due_date, paid_date, installment_count, charge_type, created_at, updated_at`

// LoanRepository implements domain.LoanRepository using PostgreSQL
type LoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new LoanRepository
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

// CreateWithSchedule inserts the loan and its installments in a single transaction
func (r *LoanRepository) CreateWithSchedule(ctx context.Context, loan *domain.Loan, installments []*domain.Installment) (*domain.Loan, []*domain.Installment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, translate("begin create loan", err, nil)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`INSERT INTO loans (tenant_id, customer_id, description, original_amount, rate_tier, total_due,
			paid_amount, discount, status, due_date, paid_date, installment_count, charge_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+loanColumns,
		loan.TenantID, loan.CustomerID, loan.Description, numeric(loan.OriginalAmount), int32(loan.RateTier),
		numeric(loan.TotalDue), numeric(loan.PaidAmount), numeric(loan.Discount), string(loan.Status),
		pgDate(loan.DueDate), nullableDate(loan.PaidDate), loan.InstallmentCount, loan.ChargeType)
	created, err := scanLoan(row)
	if err != nil {
		return nil, nil, translate("create loan", err, nil)
	}

	insts, err := insertInstallments(ctx, tx, created, installments)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, translate("commit create loan", err, nil)
	}
	return created, insts, nil
}

// RegenerateSchedule deletes the loan's installments and payment history, rewrites the loan
// row and inserts the new installments, all in one transaction. Payments are kept.
func (r *LoanRepository) RegenerateSchedule(ctx context.Context, loan *domain.Loan, installments []*domain.Installment) (*domain.Loan, []*domain.Installment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, translate("begin regenerate schedule", err, nil)
	}
	defer tx.Rollback(ctx)

	if _, err := lockLoan(ctx, tx, loan.TenantID, loan.ID); err != nil {
		return nil, nil, err
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM installments WHERE tenant_id = $1 AND loan_id = $2`, loan.TenantID, loan.ID); err != nil {
		return nil, nil, translate("delete installments", err, nil)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM payment_history WHERE tenant_id = $1 AND loan_id = $2`, loan.TenantID, loan.ID); err != nil {
		return nil, nil, translate("delete payment history", err, nil)
	}

	updated, err := updateLoan(ctx, tx, loan)
	if err != nil {
		return nil, nil, err
	}
	insts, err := insertInstallments(ctx, tx, updated, installments)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, translate("commit regenerate schedule", err, nil)
	}
	return updated, insts, nil
}

// GetByID retrieves a loan by its ID within a tenant
func (r *LoanRepository) GetByID(ctx context.Context, tenantID int32, id int32) (*domain.Loan, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+loanColumns+` FROM loans WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	loan, err := scanLoan(row)
	if err != nil {
		return nil, translate("get loan", err, domain.ErrLoanNotFound)
	}
	return loan, nil
}

// List returns loans ordered by due date
func (r *LoanRepository) List(ctx context.Context, tenantID int32, filter domain.LoanFilter) ([]*domain.Loan, error) {
	var limit *int64
	if filter.Limit > 0 {
		l := int64(filter.Limit)
		limit = &l
	}
	where, args := loanFilterClause(tenantID, filter)
	args = append(args, limit)
	rows, err := r.pool.Query(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE `+where+` ORDER BY due_date, id LIMIT $5`, args...)
	if err != nil {
		return nil, translate("list loans", err, nil)
	}
	loans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Loan, error) {
		return scanLoan(row)
	})
	if err != nil {
		return nil, translate("list loans", err, nil)
	}
	return loans, nil
}

// Count counts loans matching the filter. Limit is ignored.
func (r *LoanRepository) Count(ctx context.Context, tenantID int32, filter domain.LoanFilter) (int64, error) {
	where, args := loanFilterClause(tenantID, filter)
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE `+where, args...).Scan(&n); err != nil {
		return 0, translate("count loans", err, nil)
	}
	return n, nil
}

// Delete removes the loan along with its installments, payments, notifications and history
func (r *LoanRepository) Delete(ctx context.Context, tenantID int32, id int32) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translate("begin delete loan", err, nil)
	}
	defer tx.Rollback(ctx)

	if _, err := lockLoan(ctx, tx, tenantID, id); err != nil {
		return err
	}
	for _, table := range []string{"installments", "payments", "notifications", "payment_history"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE tenant_id = $1 AND loan_id = $2`, tenantID, id); err != nil {
			return translate("delete "+table, err, nil)
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM loans WHERE tenant_id = $1 AND id = $2`, tenantID, id); err != nil {
		return translate("delete loan", err, nil)
	}

	if err := tx.Commit(ctx); err != nil {
		return translate("commit delete loan", err, nil)
	}
	return nil
}

// loanFilterClause renders the filter with four positional parameters
func loanFilterClause(tenantID int32, filter domain.LoanFilter) (string, []any) {
	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}
	where := `tenant_id = $1
		AND ($2::text IS NULL OR status = $2)
		AND ($3::int IS NULL OR customer_id = $3)
		AND ($4::date IS NULL OR (status = 'pending' AND due_date < $4))`
	return where, []any{tenantID, status, filter.CustomerID, nullableDate(filter.OverdueAsOf)}
}

// lockLoan reads the loan row with a row lock held until the transaction ends
func lockLoan(ctx context.Context, q dbtx, tenantID int32, id int32) (*domain.Loan, error) {
	row := q.QueryRow(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, tenantID, id)
	loan, err := scanLoan(row)
	if err != nil {
		return nil, translate("lock loan", err, domain.ErrLoanNotFound)
	}
	return loan, nil
}

func updateLoan(ctx context.Context, q dbtx, loan *domain.Loan) (*domain.Loan, error) {
	row := q.QueryRow(ctx,
		`UPDATE loans SET description = $3, original_amount = $4, rate_tier = $5, total_due = $6,
			paid_amount = $7, discount = $8, status = $9, due_date = $10, paid_date = $11,
			installment_count = $12, charge_type = $13, updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2
		 RETURNING `+loanColumns,
		loan.TenantID, loan.ID, loan.Description, numeric(loan.OriginalAmount), int32(loan.RateTier),
		numeric(loan.TotalDue), numeric(loan.PaidAmount), numeric(loan.Discount), string(loan.Status),
		pgDate(loan.DueDate), nullableDate(loan.PaidDate), loan.InstallmentCount, loan.ChargeType)
	updated, err := scanLoan(row)
	if err != nil {
		return nil, translate("update loan", err, domain.ErrLoanNotFound)
	}
	return updated, nil
}

func scanLoan(row scanner) (*domain.Loan, error) {
	var (
		l                                        domain.Loan
		original, totalDue, paidAmount, discount pgtype.Numeric
		rateTier                                 int32
		status                                   string
		dueDate, paidDate                        pgtype.Date
	)
	err := row.Scan(&l.ID, &l.TenantID, &l.CustomerID, &l.Description, &original, &rateTier, &totalDue,
		&paidAmount, &discount, &status, &dueDate, &paidDate, &l.InstallmentCount, &l.ChargeType,
		&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.OriginalAmount = pgNumericToDecimal(original)
	l.RateTier = domain.RateTier(rateTier)
	l.TotalDue = pgNumericToDecimal(totalDue)
	l.PaidAmount = pgNumericToDecimal(paidAmount)
	l.Discount = pgNumericToDecimal(discount)
	l.Status = domain.LoanStatus(status)
	l.DueDate = dateFromPg(dueDate)
	l.PaidDate = dateFromPgPtr(paidDate)
	return &l, nil
}
