package service

import (
	"testing"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerInput(name, taxID string) *domain.Customer {
	return &domain.Customer{
		Name:    name,
		TaxID:   taxID,
		Phone:   "11999990000",
		Address: "Rua A, 1",
		City:    "Sao Paulo",
		State:   "SP",
	}
}

func TestCreateCustomer_TaxIDUniquePerTenant(t *testing.T) {
	s := newServices()

	a, err := s.customers.CreateCustomer(testCtx, actorFor(tenantA, domain.RoleOperator), newCustomerInput("Ana", "123.456.789-01"))
	require.NoError(t, err)
	assert.Equal(t, "12345678901", a.TaxID)
	assert.Equal(t, tenantA, a.TenantID)

	// Same tax id in another tenant is fine
	b, err := s.customers.CreateCustomer(testCtx, actorFor(tenantB, domain.RoleOperator), newCustomerInput("Bia", "12345678901"))
	require.NoError(t, err)
	assert.Equal(t, tenantB, b.TenantID)

	_, err = s.customers.CreateCustomer(testCtx, actorFor(tenantA, domain.RoleOperator), newCustomerInput("Ana 2", "12345678901"))
	assert.ErrorIs(t, err, domain.ErrCustomerTaxIDTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)

	listA, err := s.customers.ListCustomers(testCtx, tenantA, ListCustomersInput{})
	require.NoError(t, err)
	require.Len(t, listA, 1)
	assert.Equal(t, "Ana", listA[0].Name)
}

func TestCreateCustomer_Validation(t *testing.T) {
	s := newServices()
	input := newCustomerInput("Ana", "123")

	_, err := s.customers.CreateCustomer(testCtx, actorFor(tenantA, domain.RoleOperator), input)
	assert.ErrorIs(t, err, domain.ErrCustomerTaxIDInvalid)
	assert.Empty(t, s.store.Customers.Customers)
}

func TestUpdateCustomer_OtherTenant(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)

	input := newCustomerInput("Ana", "12345678901")
	input.ID = c.ID
	_, err := s.customers.UpdateCustomer(testCtx, actorFor(tenantB, domain.RoleOperator), input)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	assert.Equal(t, tenantA, s.store.Customers.Customers[c.ID].TenantID)
}

func TestListCustomers_OverdueAndCompanyFilters(t *testing.T) {
	s := newServices()
	late := s.addCustomer(tenantA, "Ana", "12345678901", strPtr("FH1"))
	onTime := s.addCustomer(tenantA, "Bruno", "12345678902", strPtr("FH2"))
	s.createLoan(tenantA, late.ID, "1000")
	_, err := s.loans.CreateLoan(testCtx, actorFor(tenantA, domain.RoleOperator), CreateLoanInput{
		CustomerID: onTime.ID,
		Principal:  money("100"),
		RateTier:   domain.RateTier30,
		StartDate:  day(2025, 4, 1),
	})
	require.NoError(t, err)

	overdue, err := s.customers.ListCustomers(testCtx, tenantA, ListCustomersInput{Overdue: true})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, late.ID, overdue[0].ID)
	assert.True(t, overdue[0].Balance.Equal(money("1300")))

	fh2, err := s.customers.ListCustomers(testCtx, tenantA, ListCustomersInput{Company: strPtr("FH2")})
	require.NoError(t, err)
	require.Len(t, fh2, 1)
	assert.Equal(t, onTime.ID, fh2[0].ID)
	assert.True(t, fh2[0].Balance.Equal(money("130")))
}

func TestGetDetail(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)
	older := s.createLoan(tenantA, c.ID, "1000")
	newer, err := s.loans.CreateLoan(testCtx, actorFor(tenantA, domain.RoleOperator), CreateLoanInput{
		CustomerID:  c.ID,
		Description: "fridge",
		Principal:   money("100"),
		RateTier:    domain.RateTier30,
		StartDate:   day(2025, 4, 1),
	})
	require.NoError(t, err)

	actor := actorFor(tenantA, domain.RoleOperator)
	_, err = s.ledger.SettleInstallment(testCtx, actor, older.Installments[0].ID, "")
	require.NoError(t, err)
	_, err = s.ledger.ApplyGenericPayment(testCtx, actor, newer.Loan.ID, GenericPaymentRequest{Amount: money("5")})
	require.NoError(t, err)

	detail, err := s.customers.GetDetail(testCtx, tenantA, c.ID)
	require.NoError(t, err)

	require.Len(t, detail.Loans, 2)
	assert.Equal(t, newer.Loan.ID, detail.Loans[0].Loan.ID)
	assert.Equal(t, int32(1), detail.Loans[1].Installments[0].SequenceNumber)
	assert.True(t, detail.Loans[1].Balance.Equal(money("1170")))
	assert.True(t, detail.Balance.Equal(money("1300")), detail.Balance.String())

	require.Len(t, detail.History, 2)
	assert.Equal(t, newer.Loan.ID, detail.History[0].LoanID)
	assert.Equal(t, "fridge", detail.History[0].LoanDescription)
	assert.Equal(t, older.Loan.ID, detail.History[1].LoanID)
	assert.Equal(t, "loan", detail.History[1].LoanDescription)

	balance, err := s.balances.ComputeBalanceForCustomer(testCtx, tenantA, c.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(detail.Balance))
}

func TestDeleteCustomer_CascadesLoans(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)
	s.createLoan(tenantA, c.ID, "1000")

	assert.ErrorIs(t, s.customers.DeleteCustomer(testCtx, actorFor(tenantB, domain.RoleOperator), c.ID), domain.ErrCustomerNotFound)

	require.NoError(t, s.customers.DeleteCustomer(testCtx, actorFor(tenantA, domain.RoleOperator), c.ID))
	assert.Empty(t, s.store.Customers.Customers)
	assert.Empty(t, s.store.Loans.Loans)
	assert.Empty(t, s.store.Installments.Installments)
}
