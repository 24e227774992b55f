package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLoan_GeneratesSchedule(t *testing.T) {
	env := newTestEnv()
	op := env.operator(testTenant, domain.RoleOperator)
	customer := env.addCustomer(testTenant, "Ana", "12345678901")

	detail := env.createLoan(t, op, customer.ID, fmt.Sprintf(`{"customerId": %d, "description": "Moto", "principal": "100", "rateTier": 60, "startDate": %q}`, customer.ID, futureDate()))

	assert.Equal(t, "Moto", detail.Loan.Description)
	assert.Equal(t, "100.00", detail.Loan.OriginalAmount)
	assert.Equal(t, "160.00", detail.Loan.TotalDue)
	assert.Equal(t, "0.00", detail.Loan.PaidAmount)
	assert.Equal(t, "pending", detail.Loan.Status)
	assert.Equal(t, int32(15), detail.Loan.InstallmentCount)
	require.Len(t, detail.Installments, 15)
	assert.Equal(t, "160.00", detail.Balance)
	assert.Equal(t, "0.00", detail.Accrual.Penalty)

	for i, inst := range detail.Installments {
		assert.Equal(t, int32(i+1), inst.SequenceNumber)
		due, err := time.Parse(domain.DateLayout, inst.DueDate)
		require.NoError(t, err)
		assert.NotEqual(t, time.Sunday, due.Weekday(), "installment %d", i+1)
		assert.False(t, inst.Overdue)
	}
	assert.Equal(t, detail.Installments[0].DueDate, detail.Loan.DueDate)
	assert.Contains(t, env.events.Types(testTenant), "loan.created")
}

func TestCreateLoan_Validation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{"unknown tier", `{"customerId": %d, "principal": "100", "rateTier": 45, "startDate": "2025-03-03"}`, http.StatusBadRequest, "rateTier"},
		{"sunday start", `{"customerId": %d, "principal": "100", "rateTier": 30, "startDate": "2025-03-02"}`, http.StatusBadRequest, "dueDate"},
		{"zero principal", `{"customerId": %d, "principal": "0", "rateTier": 30, "startDate": "2025-03-03"}`, http.StatusBadRequest, "amount"},
		{"bad principal", `{"customerId": %d, "principal": "ten", "rateTier": 30, "startDate": "2025-03-03"}`, http.StatusBadRequest, "principal"},
		{"bad date", `{"customerId": %d, "principal": "100", "rateTier": 30, "startDate": "03/03/2025"}`, http.StatusBadRequest, "startDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			op := env.operator(testTenant, domain.RoleOperator)
			customer := env.addCustomer(testTenant, "Ana", "12345678901")

			c, rec := env.newContext(http.MethodPost, "/api/v1/loans", fmt.Sprintf(tt.body, customer.ID), op)
			require.NoError(t, env.handlers.Loans.CreateLoan(c))
			assert.Equal(t, tt.status, rec.Code)

			problem := decodeProblem(t, rec)
			require.NotEmpty(t, problem.Errors, problem.Detail)
			assert.Equal(t, tt.field, problem.Errors[0].Field)
			assert.Empty(t, env.store.Loans.Loans)
		})
	}
}

func TestCreateLoan_CustomerOfAnotherTenant(t *testing.T) {
	env := newTestEnv()
	foreign := env.addCustomer(2, "Other", "12345678901")
	op := env.operator(testTenant, domain.RoleOperator)

	body := fmt.Sprintf(`{"customerId": %d, "principal": "100", "rateTier": 30, "startDate": "2025-03-03"}`, foreign.ID)
	c, rec := env.newContext(http.MethodPost, "/api/v1/loans", body, op)
	require.NoError(t, env.handlers.Loans.CreateLoan(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetLoan_ShowsAccrualWhenLate(t *testing.T) {
	env := newTestEnv()
	op := env.operator(testTenant, domain.RoleOperator)
	customer := env.addCustomer(testTenant, "Ana", "12345678901")
	created := env.createLoan(t, op, customer.ID, "")

	id := fmt.Sprint(created.Loan.ID)
	c, rec := env.newContext(http.MethodGet, "/api/v1/loans/"+id, "", op, "id", id)
	require.NoError(t, env.handlers.Loans.GetLoan(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var detail LoanDetailResponse
	decodeJSON(t, rec, &detail)
	assert.Equal(t, "1300.00", detail.Balance)
	assert.Equal(t, "100.00", detail.Accrual.Penalty)
	assert.Greater(t, detail.Accrual.DaysLate, 3)
	assert.True(t, detail.Installments[0].Overdue)
}

func TestListLoans_Filters(t *testing.T) {
	env := newTestEnv()
	op := env.operator(testTenant, domain.RoleOperator)
	ana := env.addCustomer(testTenant, "Ana", "11111111111")
	bia := env.addCustomer(testTenant, "Bia", "22222222222")
	late := env.createLoan(t, op, ana.ID, "")
	upcoming := env.createLoan(t, op, bia.ID, fmt.Sprintf(`{"customerId": %d, "principal": "200", "rateTier": 30, "startDate": %q}`, bia.ID, futureDate()))

	list := func(query string) []LoanSummaryResponse {
		c, rec := env.newContext(http.MethodGet, "/api/v1/loans"+query, "", op)
		require.NoError(t, env.handlers.Loans.ListLoans(c))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var out []LoanSummaryResponse
		decodeJSON(t, rec, &out)
		return out
	}

	all := list("")
	require.Len(t, all, 2)
	assert.Equal(t, late.Loan.ID, all[0].ID, "ordered by due date")
	assert.Equal(t, upcoming.Loan.ID, all[1].ID)
	assert.Equal(t, "260.00", all[1].Balance)

	overdue := list("?overdue=true")
	require.Len(t, overdue, 1)
	assert.Equal(t, late.Loan.ID, overdue[0].ID)

	byCustomer := list(fmt.Sprintf("?customerId=%d", bia.ID))
	require.Len(t, byCustomer, 1)
	assert.Equal(t, upcoming.Loan.ID, byCustomer[0].ID)

	assert.Empty(t, list("?status=paid"))

	c, rec := env.newContext(http.MethodGet, "/api/v1/loans?status=closed", "", op)
	require.NoError(t, env.handlers.Loans.ListLoans(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegenerateSchedule(t *testing.T) {
	env := newTestEnv()
	operator := env.operator(testTenant, domain.RoleOperator)
	manager := env.operator(testTenant, domain.RoleManager)
	customer := env.addCustomer(testTenant, "Ana", "12345678901")
	created := env.createLoan(t, operator, customer.ID, "")

	id := fmt.Sprint(created.Loan.ID)
	body := `{"principal": "2000", "rateTier": 60, "startDate": "2025-04-07", "description": "Renegotiated"}`

	c, rec := env.newContext(http.MethodPut, "/api/v1/loans/"+id+"/schedule", body, operator, "id", id)
	require.NoError(t, env.handlers.Loans.RegenerateSchedule(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = env.newContext(http.MethodPut, "/api/v1/loans/"+id+"/schedule", body, manager, "id", id)
	require.NoError(t, env.handlers.Loans.RegenerateSchedule(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var detail LoanDetailResponse
	decodeJSON(t, rec, &detail)
	assert.Equal(t, "Renegotiated", detail.Loan.Description)
	assert.Equal(t, "3200.00", detail.Loan.TotalDue)
	assert.Equal(t, "0.00", detail.Loan.PaidAmount)
	assert.Len(t, detail.Installments, 15)
	assert.Equal(t, "2025-04-07", detail.Loan.DueDate)
	assert.Contains(t, env.events.Types(testTenant), "loan.regenerated")
}

func TestDeleteLoan(t *testing.T) {
	env := newTestEnv()
	op := env.operator(testTenant, domain.RoleOperator)
	customer := env.addCustomer(testTenant, "Ana", "12345678901")
	created := env.createLoan(t, op, customer.ID, "")

	id := fmt.Sprint(created.Loan.ID)
	c, rec := env.newContext(http.MethodDelete, "/api/v1/loans/"+id, "", op, "id", id)
	require.NoError(t, env.handlers.Loans.DeleteLoan(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = env.newContext(http.MethodGet, "/api/v1/loans/"+id, "", op, "id", id)
	require.NoError(t, env.handlers.Loans.GetLoan(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetLoanBalance(t *testing.T) {
	env := newTestEnv()
	op := env.operator(testTenant, domain.RoleOperator)
	customer := env.addCustomer(testTenant, "Ana", "12345678901")
	created := env.createLoan(t, op, customer.ID, "")

	id := fmt.Sprint(created.Loan.ID)
	c, rec := env.newContext(http.MethodGet, "/api/v1/loans/"+id+"/balance", "", op, "id", id)
	require.NoError(t, env.handlers.Loans.GetLoanBalance(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response BalanceResponse
	decodeJSON(t, rec, &response)
	assert.Equal(t, "1300.00", response.Balance)
}

func TestGetCalendar(t *testing.T) {
	env := newTestEnv()
	op := env.operator(testTenant, domain.RoleOperator)
	customer := env.addCustomer(testTenant, "Ana", "12345678901")
	created := env.createLoan(t, op, customer.ID, "")

	c, rec := env.newContext(http.MethodGet, "/api/v1/loans/calendar", "", op)
	require.NoError(t, env.handlers.Loans.GetCalendar(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var events []CalendarEventResponse
	decodeJSON(t, rec, &events)
	require.Len(t, events, 1)
	assert.Equal(t, "Ana - 1000.00", events[0].Title)
	assert.Equal(t, created.Loan.DueDate, events[0].Start)
	assert.Equal(t, created.Loan.ID, events[0].LoanID)
	assert.Equal(t, customer.ID, events[0].CustomerID)
}

func TestRescheduleInstallment(t *testing.T) {
	env := newTestEnv()
	op := env.operator(testTenant, domain.RoleOperator)
	customer := env.addCustomer(testTenant, "Ana", "12345678901")
	created := env.createLoan(t, op, customer.ID, "")
	inst := created.Installments[2]
	id := fmt.Sprint(inst.ID)

	c, rec := env.newContext(http.MethodPut, "/api/v1/installments/"+id+"/due-date", `{"dueDate": "2025-03-30"}`, op, "id", id)
	require.NoError(t, env.handlers.Loans.RescheduleInstallment(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "2025-03-30 is a Sunday")

	c, rec = env.newContext(http.MethodPut, "/api/v1/installments/"+id+"/due-date", `{"dueDate": "2025-03-31"}`, op, "id", id)
	require.NoError(t, env.handlers.Loans.RescheduleInstallment(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response InstallmentResponse
	decodeJSON(t, rec, &response)
	assert.Equal(t, "2025-03-31", response.DueDate)
	assert.Equal(t, created.Loan.DueDate, formatDate(env.store.Loans.Loans[created.Loan.ID].DueDate))
}
