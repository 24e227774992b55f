package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedReports books one late loan for a FH2 customer, one upcoming loan and
// one loan closed by settling every installment
func seedReports(t *testing.T, env *testEnv, op *domain.Operator) (late, upcoming, closed LoanDetailResponse) {
	t.Helper()
	fh2 := "FH2"
	ana := env.addCustomer(testTenant, "Ana", "11111111111")
	ana.Company = &fh2
	bia := env.addCustomer(testTenant, "Bia", "22222222222")
	caio := env.addCustomer(testTenant, "Caio", "33333333333")

	late = env.createLoan(t, op, ana.ID, "")
	upcoming = env.createLoan(t, op, bia.ID, fmt.Sprintf(`{"customerId": %d, "principal": "500", "rateTier": 60, "startDate": %q}`, bia.ID, futureDate()))
	closed = env.createLoan(t, op, caio.ID, fmt.Sprintf(`{"customerId": %d, "principal": "100", "rateTier": 30, "startDate": %q}`, caio.ID, futureDate()))
	for _, inst := range closed.Installments {
		id := fmt.Sprint(inst.ID)
		c, rec := env.newContext(http.MethodPost, "/api/v1/installments/"+id+"/settle", "", op, "id", id)
		require.NoError(t, env.handlers.Ledger.SettleInstallment(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	return late, upcoming, closed
}

func TestGetKPIs(t *testing.T) {
	env := newTestEnv()
	op := env.operator(testTenant, domain.RoleManager)
	late, _, _ := seedReports(t, env, op)

	id := fmt.Sprint(late.Loan.ID)
	c, rec := env.newContext(http.MethodPost, "/api/v1/loans/"+id+"/payments", `{"amount": "40"}`, op, "id", id)
	require.NoError(t, env.handlers.Ledger.ApplyGenericPayment(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = env.newContext(http.MethodGet, "/api/v1/reports/kpis", "", op)
	require.NoError(t, env.handlers.Reports.GetKPIs(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var kpis KPIsResponse
	decodeJSON(t, rec, &kpis)
	assert.Equal(t, int64(3), kpis.CustomerCount)
	assert.Equal(t, int64(2), kpis.PendingLoans)
	assert.Equal(t, int64(1), kpis.OverdueLoans)
	assert.Equal(t, int64(1), kpis.PaidLoans)
	// late 1300 + upcoming 800; the closed loan owes nothing
	assert.Equal(t, "2100.00", kpis.OutstandingTotal)
	assert.Equal(t, "40.00", kpis.ReceivedThisMonth)
}

func TestGetCompanyKPIs(t *testing.T) {
	env := newTestEnv()
	op := env.operator(testTenant, domain.RoleManager)
	seedReports(t, env, op)

	c, rec := env.newContext(http.MethodGet, "/api/v1/reports/companies", "", op)
	require.NoError(t, env.handlers.Reports.GetCompanyKPIs(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []CompanyKPIResponse
	decodeJSON(t, rec, &rows)
	require.Len(t, rows, len(domain.Companies))
	for _, row := range rows {
		if row.Company == "FH2" {
			assert.Equal(t, int64(1), row.CustomerCount)
			assert.Equal(t, "1300.00", row.OutstandingTotal)
			continue
		}
		assert.Equal(t, int64(0), row.CustomerCount, row.Company)
		assert.Equal(t, "0.00", row.OutstandingTotal, row.Company)
	}
}

func TestGetOverdue(t *testing.T) {
	env := newTestEnv()
	op := env.operator(testTenant, domain.RoleManager)
	late, _, _ := seedReports(t, env, op)

	c, rec := env.newContext(http.MethodGet, "/api/v1/reports/overdue", "", op)
	require.NoError(t, env.handlers.Reports.GetOverdue(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []CustomerWithBalanceResponse
	decodeJSON(t, rec, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, late.Loan.CustomerID, rows[0].ID)
	assert.Equal(t, "1300.00", rows[0].Balance)

	// On the first due date nothing is late yet
	c, rec = env.newContext(http.MethodGet, "/api/v1/reports/overdue?asOf="+late.Loan.DueDate, "", op)
	require.NoError(t, env.handlers.Reports.GetOverdue(c))
	require.Equal(t, http.StatusOK, rec.Code)
	rows = nil
	decodeJSON(t, rec, &rows)
	assert.Empty(t, rows)

	c, rec = env.newContext(http.MethodGet, "/api/v1/reports/overdue?asOf=yesterday", "", op)
	require.NoError(t, env.handlers.Reports.GetOverdue(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDashboard(t *testing.T) {
	env := newTestEnv()
	op := env.operator(testTenant, domain.RoleManager)
	late, upcoming, _ := seedReports(t, env, op)

	c, rec := env.newContext(http.MethodGet, "/api/v1/reports/dashboard", "", op)
	require.NoError(t, env.handlers.Reports.GetDashboard(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var dashboard DashboardResponse
	decodeJSON(t, rec, &dashboard)
	assert.Equal(t, int64(2), dashboard.KPIs.PendingLoans)
	assert.Len(t, dashboard.Companies, len(domain.Companies))

	require.Len(t, dashboard.OpenLoans, 2)
	assert.Equal(t, late.Loan.ID, dashboard.OpenLoans[0].Loan.ID)
	assert.Equal(t, "Ana", dashboard.OpenLoans[0].CustomerName)
	assert.Greater(t, dashboard.OpenLoans[0].DaysLate, 0)
	assert.Equal(t, upcoming.Loan.ID, dashboard.OpenLoans[1].Loan.ID)
	assert.Equal(t, 0, dashboard.OpenLoans[1].DaysLate)
	assert.Equal(t, "800.00", dashboard.OpenLoans[1].Balance)

	require.Len(t, dashboard.Arrears, 1)
	assert.Equal(t, "Ana", dashboard.Arrears[0].Name)
}

func TestReports_TenantIsolation(t *testing.T) {
	env := newTestEnv()
	seedReports(t, env, env.operator(testTenant, domain.RoleManager))
	outsider := env.operator(2, domain.RoleManager)

	c, rec := env.newContext(http.MethodGet, "/api/v1/reports/kpis", "", outsider)
	require.NoError(t, env.handlers.Reports.GetKPIs(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var kpis KPIsResponse
	decodeJSON(t, rec, &kpis)
	assert.Equal(t, int64(0), kpis.CustomerCount)
	assert.Equal(t, "0.00", kpis.OutstandingTotal)
}
