package service

import (
	"context"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// BalanceService computes the amount owed from current installment state.
// Every read path that shows a balance goes through it.
type BalanceService struct {
	customerRepo    domain.CustomerRepository
	loanRepo        domain.LoanRepository
	installmentRepo domain.InstallmentRepository
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(customerRepo domain.CustomerRepository, loanRepo domain.LoanRepository, installmentRepo domain.InstallmentRepository) *BalanceService {
	return &BalanceService{
		customerRepo:    customerRepo,
		loanRepo:        loanRepo,
		installmentRepo: installmentRepo,
	}
}

// ComputeBalance returns the outstanding balance of one loan
func (s *BalanceService) ComputeBalance(ctx context.Context, tenantID int32, loanID int32) (decimal.Decimal, error) {
	loan, err := s.loanRepo.GetByID(ctx, tenantID, loanID)
	if err != nil {
		return decimal.Zero, err
	}
	installments, err := s.installmentRepo.ListByLoan(ctx, tenantID, loanID)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.OutstandingBalance(loan, installments), nil
}

// ComputeBalanceForCustomer returns the outstanding balance across a customer's pending loans.
// A customer outside tenantID is ErrCustomerNotFound.
func (s *BalanceService) ComputeBalanceForCustomer(ctx context.Context, tenantID int32, customerID int32) (decimal.Decimal, error) {
	if _, err := s.customerRepo.GetByID(ctx, tenantID, customerID); err != nil {
		return decimal.Zero, err
	}
	rows, err := s.installmentRepo.ListOutstanding(ctx, tenantID, domain.OutstandingFilter{CustomerID: &customerID})
	if err != nil {
		return decimal.Zero, err
	}
	return domain.SumOutstanding(domain.Installments(rows)), nil
}

// Outstanding returns pending installments of pending loans matching filter
func (s *BalanceService) Outstanding(ctx context.Context, tenantID int32, filter domain.OutstandingFilter) ([]*domain.OutstandingInstallment, error) {
	return s.installmentRepo.ListOutstanding(ctx, tenantID, filter)
}

// BalancesByCustomer sums the outstanding rows per customer
func BalancesByCustomer(rows []*domain.OutstandingInstallment) map[int32]decimal.Decimal {
	grouped := make(map[int32][]*domain.Installment)
	for _, row := range rows {
		grouped[row.CustomerID] = append(grouped[row.CustomerID], row.Installment)
	}
	out := make(map[int32]decimal.Decimal, len(grouped))
	for id, insts := range grouped {
		out[id] = domain.SumOutstanding(insts)
	}
	return out
}

// BalancesByLoan sums the outstanding rows per loan
func BalancesByLoan(rows []*domain.OutstandingInstallment) map[int32]decimal.Decimal {
	grouped := make(map[int32][]*domain.Installment)
	for _, row := range rows {
		grouped[row.LoanID] = append(grouped[row.LoanID], row.Installment)
	}
	out := make(map[int32]decimal.Decimal, len(grouped))
	for id, insts := range grouped {
		out[id] = domain.SumOutstanding(insts)
	}
	return out
}

// balanceOr returns the balance for id, or zero when nothing is outstanding
func balanceOr(balances map[int32]decimal.Decimal, id int32) decimal.Decimal {
	if b, ok := balances[id]; ok {
		return b
	}
	return decimal.Zero
}
