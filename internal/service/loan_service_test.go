package service

import (
	"errors"
	"testing"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLoan_StoresScheduleAtomically(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)

	detail := s.createLoan(tenantA, c.ID, "1000")

	assert.True(t, detail.Loan.TotalDue.Equal(money("1300")))
	assert.Equal(t, domain.LoanStatusPending, detail.Loan.Status)
	assert.True(t, detail.Loan.PaidAmount.IsZero())
	assert.Equal(t, int32(10), detail.Loan.InstallmentCount)
	assert.Equal(t, day(2025, 3, 3), detail.Loan.DueDate)
	require.Len(t, detail.Installments, 10)
	assert.True(t, detail.Balance.Equal(money("1300")))

	stored, err := s.store.Installments.ListByLoan(testCtx, tenantA, detail.Loan.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 10)
	for _, inst := range stored {
		assert.Equal(t, tenantA, inst.TenantID)
		assert.NotEqual(t, domain.RestDay, inst.DueDate.Weekday())
	}
	assert.Equal(t, []string{"loan.created"}, s.events.Types(tenantA))
}

func TestCreateLoan_ValidationFailsBeforeWrite(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)
	actor := actorFor(tenantA, domain.RoleOperator)

	tests := []struct {
		name  string
		input CreateLoanInput
		want  error
	}{
		{"sunday start", CreateLoanInput{CustomerID: c.ID, Principal: money("100"), RateTier: domain.RateTier30, StartDate: day(2025, 3, 9)}, domain.ErrInvalidDueDate},
		{"unknown tier", CreateLoanInput{CustomerID: c.ID, Principal: money("100"), RateTier: 45, StartDate: day(2025, 3, 3)}, domain.ErrInvalidRateTier},
		{"zero principal", CreateLoanInput{CustomerID: c.ID, Principal: money("0"), RateTier: domain.RateTier30, StartDate: day(2025, 3, 3)}, domain.ErrInvalidAmount},
		{"no customer", CreateLoanInput{Principal: money("100"), RateTier: domain.RateTier30, StartDate: day(2025, 3, 3)}, domain.ErrLoanCustomerInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.loans.CreateLoan(testCtx, actor, tt.input)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Empty(t, s.store.Loans.Loans)
	assert.Empty(t, s.store.Installments.Installments)
}

func TestCreateLoan_CustomerOfOtherTenant(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantB, "Bia", "12345678901", nil)

	_, err := s.loans.CreateLoan(testCtx, actorFor(tenantA, domain.RoleOperator), CreateLoanInput{
		CustomerID: c.ID,
		Principal:  money("100"),
		RateTier:   domain.RateTier30,
		StartDate:  day(2025, 3, 3),
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateLoan_RepositoryFailure(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)
	s.store.Loans.CreateWithScheduleFn = func(loan *domain.Loan, insts []*domain.Installment) (*domain.Loan, []*domain.Installment, error) {
		return nil, nil, domain.NewError(domain.ErrPersistence, "commit failed")
	}

	_, err := s.loans.CreateLoan(testCtx, actorFor(tenantA, domain.RoleOperator), CreateLoanInput{
		CustomerID: c.ID,
		Principal:  money("100"),
		RateTier:   domain.RateTier30,
		StartDate:  day(2025, 3, 3),
	})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Empty(t, s.events.Types(tenantA))
}

func TestRegenerateSchedule_ResetsLoanAndHistory(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)
	detail := s.createLoan(tenantA, c.ID, "1000")
	operator := actorFor(tenantA, domain.RoleOperator)

	_, err := s.ledger.SettleInstallment(testCtx, operator, detail.Installments[0].ID, "")
	require.NoError(t, err)
	_, err = s.ledger.ApplyGenericPayment(testCtx, operator, detail.Loan.ID, GenericPaymentRequest{Amount: money("50")})
	require.NoError(t, err)
	require.Len(t, s.store.History.ForLoan(detail.Loan.ID), 2)

	regenerated, err := s.loans.RegenerateSchedule(testCtx, actorFor(tenantA, domain.RoleManager), detail.Loan.ID, RegenerateScheduleInput{
		Principal: money("2000"),
		RateTier:  domain.RateTier60,
		StartDate: day(2025, 3, 8),
	})
	require.NoError(t, err)

	assert.True(t, regenerated.Loan.TotalDue.Equal(money("3200")))
	assert.True(t, regenerated.Loan.PaidAmount.IsZero())
	assert.Equal(t, domain.LoanStatusPending, regenerated.Loan.Status)
	assert.Equal(t, int32(15), regenerated.Loan.InstallmentCount)
	assert.Equal(t, day(2025, 3, 8), regenerated.Loan.DueDate)
	require.Len(t, regenerated.Installments, 15)
	assert.Equal(t, day(2025, 3, 10), regenerated.Installments[1].DueDate)

	stored, _ := s.store.Installments.ListByLoan(testCtx, tenantA, detail.Loan.ID)
	assert.Len(t, stored, 15)
	for i, inst := range stored {
		assert.Equal(t, int32(i+1), inst.SequenceNumber)
		assert.Equal(t, domain.InstallmentStatusPending, inst.Status)
	}
	assert.Empty(t, s.store.History.ForLoan(detail.Loan.ID))
	assert.Contains(t, s.events.Types(tenantA), "loan.regenerated")
}

func TestRegenerateSchedule_RequiresElevatedRole(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)
	detail := s.createLoan(tenantA, c.ID, "1000")

	_, err := s.loans.RegenerateSchedule(testCtx, actorFor(tenantA, domain.RoleOperator), detail.Loan.ID, RegenerateScheduleInput{
		Principal: money("2000"),
		RateTier:  domain.RateTier30,
		StartDate: day(2025, 3, 3),
	})
	assert.ErrorIs(t, err, domain.ErrElevatedRole)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.True(t, s.store.Loans.Loans[detail.Loan.ID].TotalDue.Equal(money("1300")))
}

func TestRegenerateSchedule_Errors(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)
	detail := s.createLoan(tenantA, c.ID, "1000")
	admin := actorFor(tenantA, domain.RoleAdmin)

	_, err := s.loans.RegenerateSchedule(testCtx, admin, detail.Loan.ID, RegenerateScheduleInput{Principal: money("-1"), RateTier: domain.RateTier30, StartDate: day(2025, 3, 3)})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = s.loans.RegenerateSchedule(testCtx, admin, detail.Loan.ID, RegenerateScheduleInput{Principal: money("10"), RateTier: 20, StartDate: day(2025, 3, 3)})
	assert.ErrorIs(t, err, domain.ErrInvalidRateTier)

	_, err = s.loans.RegenerateSchedule(testCtx, actorFor(tenantB, domain.RoleAdmin), detail.Loan.ID, RegenerateScheduleInput{Principal: money("10"), RateTier: domain.RateTier30, StartDate: day(2025, 3, 3)})
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestGetLoan_BalanceAndAccrualStaySeparate(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)
	detail := s.createLoan(tenantA, c.ID, "1000")

	penalty := money("20")
	_, err := s.ledger.SetManualPenalty(testCtx, actorFor(tenantA, domain.RoleOperator), detail.Installments[0].ID, &penalty)
	require.NoError(t, err)

	got, err := s.loans.GetLoan(testCtx, tenantA, detail.Loan.ID)
	require.NoError(t, err)

	// 1300 owed plus the manual penalty
	assert.True(t, got.Balance.Equal(money("1320")), got.Balance.String())
	assert.True(t, got.Installments[0].UpdatedAmount.Equal(money("150")))
	assert.True(t, got.Installments[0].Overdue)

	// 17 days late on the loan due date: penalty 100, interest 1000*2%*17/30
	assert.Equal(t, 17, got.Accrual.DaysLate)
	assert.True(t, got.Accrual.Penalty.Equal(money("100")))
	assert.True(t, got.Accrual.Interest.Equal(money("11.33")), got.Accrual.Interest.String())
	assert.True(t, got.Accrual.TotalDue.Equal(money("1111.33")), got.Accrual.TotalDue.String())
}

func TestGetLoan_AccrualUsesCurrentSettings(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)
	detail := s.createLoan(tenantA, c.ID, "1000")

	s.store.Settings.Values[tenantA] = map[string]string{domain.SettingToleranceDays: "30"}
	got, err := s.loans.GetLoan(testCtx, tenantA, detail.Loan.ID)
	require.NoError(t, err)
	assert.True(t, got.Accrual.Penalty.IsZero())

	s.store.Settings.Values[tenantA] = map[string]string{domain.SettingToleranceDays: "3"}
	got, err = s.loans.GetLoan(testCtx, tenantA, detail.Loan.ID)
	require.NoError(t, err)
	assert.True(t, got.Accrual.Penalty.Equal(money("100")))
}

func TestGetLoan_TenantIsolation(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)
	detail := s.createLoan(tenantA, c.ID, "1000")

	_, err := s.loans.GetLoan(testCtx, tenantB, detail.Loan.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListLoans_Filters(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)
	overdue := s.createLoan(tenantA, c.ID, "1000")

	_, err := s.loans.CreateLoan(testCtx, actorFor(tenantA, domain.RoleOperator), CreateLoanInput{
		CustomerID: c.ID,
		Principal:  money("100"),
		RateTier:   domain.RateTier30,
		StartDate:  day(2025, 4, 1),
	})
	require.NoError(t, err)

	all, err := s.loans.ListLoans(testCtx, tenantA, ListLoansInput{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, overdue.Loan.ID, all[0].ID)
	assert.True(t, all[1].Balance.Equal(money("130")))

	late, err := s.loans.ListLoans(testCtx, tenantA, ListLoansInput{Overdue: true})
	require.NoError(t, err)
	require.Len(t, late, 1)
	assert.Equal(t, overdue.Loan.ID, late[0].ID)

	paid := domain.LoanStatusPaid
	none, err := s.loans.ListLoans(testCtx, tenantA, ListLoansInput{Status: &paid})
	require.NoError(t, err)
	assert.Empty(t, none)

	other, err := s.loans.ListLoans(testCtx, tenantB, ListLoansInput{})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDeleteLoan_Cascades(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)
	detail := s.createLoan(tenantA, c.ID, "1000")
	actor := actorFor(tenantA, domain.RoleOperator)

	_, err := s.ledger.ApplyGenericPayment(testCtx, actor, detail.Loan.ID, GenericPaymentRequest{Amount: money("10")})
	require.NoError(t, err)

	require.NoError(t, s.loans.DeleteLoan(testCtx, actor, detail.Loan.ID))
	assert.Empty(t, s.store.Loans.Loans)
	assert.Empty(t, s.store.Installments.Installments)
	assert.Empty(t, s.store.Payments.Payments)
	assert.Empty(t, s.store.History.Entries)

	assert.ErrorIs(t, s.loans.DeleteLoan(testCtx, actor, detail.Loan.ID), domain.ErrLoanNotFound)
}

func TestRescheduleInstallment(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)
	detail := s.createLoan(tenantA, c.ID, "1000")
	actor := actorFor(tenantA, domain.RoleOperator)
	first := detail.Installments[0].ID

	_, err := s.loans.RescheduleInstallment(testCtx, actor, first, day(2025, 3, 9))
	assert.ErrorIs(t, err, domain.ErrInvalidDueDate)

	inst, err := s.loans.RescheduleInstallment(testCtx, actor, first, day(2025, 3, 25))
	require.NoError(t, err)
	assert.Equal(t, day(2025, 3, 25), inst.DueDate)
	assert.Equal(t, day(2025, 3, 3), s.store.Loans.Loans[detail.Loan.ID].DueDate)

	_, err = s.ledger.SettleInstallment(testCtx, actor, first, "pix")
	require.NoError(t, err)
	_, err = s.loans.RescheduleInstallment(testCtx, actor, first, day(2025, 3, 26))
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)
}

func TestCalendarEvents(t *testing.T) {
	s := newServices()
	c := s.addCustomer(tenantA, "Ana", "12345678901", nil)
	detail := s.createLoan(tenantA, c.ID, "1000.5")

	events, err := s.loans.CalendarEvents(testCtx, tenantA)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Ana - 1000.50", events[0].Title)
	assert.Equal(t, "2025-03-03", events[0].Start)
	assert.Equal(t, detail.Loan.ID, events[0].LoanID)
	assert.Equal(t, c.ID, events[0].CustomerID)
}
