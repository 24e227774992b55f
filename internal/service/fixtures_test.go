package service

import (
	"context"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	tenantA int32 = 1
	tenantB int32 = 2
)

var testCtx = context.Background()

// testToday is a Thursday
var testToday = time.Date(2025, 3, 20, 15, 4, 5, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func actorFor(tenantID int32, role domain.Role) domain.Actor {
	return domain.Actor{TenantID: tenantID, OperatorID: uuid.New(), Role: role}
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

// services wires every service over one mock store
type services struct {
	store     *testutil.MockStore
	events    *testutil.MockEventPublisher
	loans     *LoanService
	ledger    *LedgerService
	customers *CustomerService
	reports   *ReportService
	balances  *BalanceService
}

func newServices() *services {
	store := testutil.NewMockStore()
	events := testutil.NewMockEventPublisher()

	loans := NewLoanService(store.Loans, store.Customers, store.Installments, store.Settings)
	loans.SetEventPublisher(events)
	loans.now = fixedClock(testToday)

	ledger := NewLedgerService(store.Ledger, store.Installments, store.Payments, store.Loans, store.Notifications)
	ledger.SetEventPublisher(events)
	ledger.now = fixedClock(testToday)

	customers := NewCustomerService(store.Customers, store.Loans, store.Installments, store.History, store.Settings)
	customers.SetEventPublisher(events)
	customers.now = fixedClock(testToday)

	reports := NewReportService(store.Customers, store.Loans, store.Installments, store.Payments)
	reports.now = fixedClock(testToday)

	return &services{
		store:     store,
		events:    events,
		loans:     loans,
		ledger:    ledger,
		customers: customers,
		reports:   reports,
		balances:  NewBalanceService(store.Customers, store.Loans, store.Installments),
	}
}

func (s *services) addCustomer(tenantID int32, name, taxID string, company *string) *domain.Customer {
	c := &domain.Customer{
		TenantID: tenantID,
		Name:     name,
		TaxID:    taxID,
		Phone:    "11999990000",
		Address:  "Rua A, 1",
		City:     "Sao Paulo",
		State:    "SP",
		Company:  company,
	}
	s.store.Customers.AddCustomer(c)
	return c
}

// createLoan books principal at tier 30 starting Monday 2025-03-03
func (s *services) createLoan(tenantID int32, customerID int32, principal string) *domain.LoanDetail {
	detail, err := s.loans.CreateLoan(testCtx, actorFor(tenantID, domain.RoleOperator), CreateLoanInput{
		CustomerID:  customerID,
		Description: "loan",
		Principal:   money(principal),
		RateTier:    domain.RateTier30,
		StartDate:   day(2025, 3, 3),
	})
	if err != nil {
		panic(err)
	}
	return detail
}
