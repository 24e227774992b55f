package service

import (
	"context"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/util"
)

// DashboardOpenLoans is how many non-paid loans the dashboard lists
const DashboardOpenLoans = 20

// ReportService aggregates collection figures for a tenant
type ReportService struct {
	customerRepo    domain.CustomerRepository
	loanRepo        domain.LoanRepository
	installmentRepo domain.InstallmentRepository
	paymentRepo     domain.PaymentRepository
	now             func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(customerRepo domain.CustomerRepository, loanRepo domain.LoanRepository, installmentRepo domain.InstallmentRepository, paymentRepo domain.PaymentRepository) *ReportService {
	return &ReportService{
		customerRepo:    customerRepo,
		loanRepo:        loanRepo,
		installmentRepo: installmentRepo,
		paymentRepo:     paymentRepo,
		now:             time.Now,
	}
}

// KPIs returns tenant-wide counts and totals as of today
func (s *ReportService) KPIs(ctx context.Context, tenantID int32) (*domain.KPIs, error) {
	today := domain.DateOnly(s.now())
	pending := domain.LoanStatusPending
	paid := domain.LoanStatusPaid

	customers, err := s.customerRepo.Count(ctx, tenantID, nil)
	if err != nil {
		return nil, err
	}
	pendingLoans, err := s.loanRepo.Count(ctx, tenantID, domain.LoanFilter{Status: &pending})
	if err != nil {
		return nil, err
	}
	overdueLoans, err := s.loanRepo.Count(ctx, tenantID, domain.LoanFilter{OverdueAsOf: &today})
	if err != nil {
		return nil, err
	}
	paidLoans, err := s.loanRepo.Count(ctx, tenantID, domain.LoanFilter{Status: &paid})
	if err != nil {
		return nil, err
	}
	rows, err := s.installmentRepo.ListOutstanding(ctx, tenantID, domain.OutstandingFilter{})
	if err != nil {
		return nil, err
	}
	received, err := s.paymentRepo.SumReceivedSince(ctx, tenantID, util.MonthStart(today))
	if err != nil {
		return nil, err
	}

	return &domain.KPIs{
		CustomerCount:     customers,
		PendingLoans:      pendingLoans,
		OverdueLoans:      overdueLoans,
		PaidLoans:         paidLoans,
		OutstandingTotal:  domain.SumOutstanding(domain.Installments(rows)),
		ReceivedThisMonth: received,
	}, nil
}

// CompanyKPIs returns customer count and outstanding total for every company
func (s *ReportService) CompanyKPIs(ctx context.Context, tenantID int32) ([]domain.CompanyKPI, error) {
	rows, err := s.installmentRepo.ListOutstanding(ctx, tenantID, domain.OutstandingFilter{})
	if err != nil {
		return nil, err
	}
	byCompany := make(map[string][]*domain.Installment)
	for _, row := range rows {
		if row.Company != nil {
			byCompany[*row.Company] = append(byCompany[*row.Company], row.Installment)
		}
	}

	out := make([]domain.CompanyKPI, 0, len(domain.Companies))
	for _, company := range domain.Companies {
		company := company
		count, err := s.customerRepo.Count(ctx, tenantID, &company)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.CompanyKPI{
			Company:          company,
			CustomerCount:    count,
			OutstandingTotal: domain.SumOutstanding(byCompany[company]),
		})
	}
	return out, nil
}

// ListOverdue returns the customers in arrears as of asOf, by name, with balances
func (s *ReportService) ListOverdue(ctx context.Context, tenantID int32, asOf time.Time) ([]domain.CustomerWithBalance, error) {
	asOf = domain.DateOnly(asOf)
	return listWithBalances(ctx, s.customerRepo, s.installmentRepo, tenantID, domain.CustomerFilter{InArrearsAsOf: &asOf})
}

// Dashboard combines KPIs, company figures, the earliest open loans and the arrears list
func (s *ReportService) Dashboard(ctx context.Context, tenantID int32) (*domain.Dashboard, error) {
	today := domain.DateOnly(s.now())

	kpis, err := s.KPIs(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	companies, err := s.CompanyKPIs(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	pending := domain.LoanStatusPending
	loans, err := s.loanRepo.List(ctx, tenantID, domain.LoanFilter{Status: &pending, Limit: DashboardOpenLoans})
	if err != nil {
		return nil, err
	}
	rows, err := s.installmentRepo.ListOutstanding(ctx, tenantID, domain.OutstandingFilter{})
	if err != nil {
		return nil, err
	}
	balances := BalancesByLoan(rows)

	customers, err := s.customerRepo.List(ctx, tenantID, domain.CustomerFilter{})
	if err != nil {
		return nil, err
	}
	byID := make(map[int32]*domain.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	open := make([]domain.DashboardLoan, 0, len(loans))
	for _, loan := range loans {
		row := domain.DashboardLoan{
			Loan:    loan,
			Balance: balanceOr(balances, loan.ID),
		}
		if c, ok := byID[loan.CustomerID]; ok {
			row.CustomerName = c.Name
			row.Phone = c.Phone
		}
		if days := domain.DaysBetween(loan.DueDate, today); days > 0 {
			row.DaysLate = days
		}
		open = append(open, row)
	}

	arrears, err := s.ListOverdue(ctx, tenantID, today)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		KPIs:      *kpis,
		Companies: companies,
		OpenLoans: open,
		Arrears:   arrears,
	}, nil
}
