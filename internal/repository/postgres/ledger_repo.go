package postgres

import (
	"context"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository implements domain.LedgerRepository using PostgreSQL.
// Locks are always taken loan first, then installment.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// ApplyGenericPayment records a free-form payment: it raises the loan's paid amount and
// writes a payment plus a history row. The loan status is never changed here.
func (r *LedgerRepository) ApplyGenericPayment(ctx context.Context, tenantID int32, loanID int32, input domain.GenericPaymentInput) (*domain.GenericPaymentResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, translate("begin generic payment", err, nil)
	}
	defer tx.Rollback(ctx)

	loan, err := lockLoan(ctx, tx, tenantID, loanID)
	if err != nil {
		return nil, err
	}
	payment, history := domain.NewGenericPaymentRecords(loan, input)
	loan.RecordPayment(input.Amount)

	if _, err := tx.Exec(ctx,
		`UPDATE loans SET paid_amount = $3, updated_at = NOW() WHERE tenant_id = $1 AND id = $2`,
		tenantID, loanID, numeric(loan.PaidAmount)); err != nil {
		return nil, translate("update loan paid amount", err, nil)
	}
	if payment, err = insertPayment(ctx, tx, payment); err != nil {
		return nil, err
	}
	if history, err = insertHistory(ctx, tx, history); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, translate("commit generic payment", err, nil)
	}
	return &domain.GenericPaymentResult{Loan: loan, Payment: payment, History: history}, nil
}

// SettleInstallment pays one installment in full. The status flip is a compare-and-set on
// status = 'pending', so of two concurrent settlements exactly one commits.
func (r *LedgerRepository) SettleInstallment(ctx context.Context, tenantID int32, installmentID int32, input domain.SettlementInput) (*domain.SettlementResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, translate("begin settlement", err, nil)
	}
	defer tx.Rollback(ctx)

	// unlocked read to find the owning loan
	inst, err := getInstallment(ctx, tx, tenantID, installmentID, false)
	if err != nil {
		return nil, err
	}
	loan, err := lockLoan(ctx, tx, tenantID, inst.LoanID)
	if err != nil {
		return nil, err
	}
	if inst, err = getInstallment(ctx, tx, tenantID, installmentID, true); err != nil {
		return nil, err
	}
	if err := inst.Settle(input.PaidOn, input.Method); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE installments SET status = 'paid', paid_amount = $3, paid_date = $4, payment_method = $5, updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2 AND status = 'pending'`,
		tenantID, installmentID, numeric(inst.PaidAmount), nullableDate(inst.PaidDate), string(input.Method))
	if err != nil {
		return nil, translate("settle installment", err, nil)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrAlreadySettled
	}

	loan.RecordPayment(inst.Amount)
	closed := loan.CloseIfSettled(input.PaidOn)
	if _, err := tx.Exec(ctx,
		`UPDATE loans SET paid_amount = $3, status = $4, paid_date = $5, updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2`,
		tenantID, loan.ID, numeric(loan.PaidAmount), string(loan.Status), nullableDate(loan.PaidDate)); err != nil {
		return nil, translate("update loan after settlement", err, nil)
	}

	history, err := insertHistory(ctx, tx, domain.NewSettlementHistory(loan, inst, input))
	if err != nil {
		return nil, err
	}
	result := &domain.SettlementResult{Installment: inst, Loan: loan, History: history, LoanClosed: closed}
	if closed {
		n, err := insertNotification(ctx, tx, domain.NewLoanPaidNotification(loan, time.Now()))
		if err != nil {
			return nil, err
		}
		result.Notification = n
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, translate("commit settlement", err, nil)
	}
	return result, nil
}
