package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallmentSettle(t *testing.T) {
	inst := &Installment{ID: 7, SequenceNumber: 3, Amount: decimal.NewFromInt(130), Status: InstallmentStatusPending}
	on := time.Date(2024, 6, 4, 15, 30, 0, 0, time.UTC)

	require.NoError(t, inst.Settle(on, PaymentMethodPix))
	assert.Equal(t, InstallmentStatusPaid, inst.Status)
	assert.True(t, inst.PaidAmount.Equal(decimal.NewFromInt(130)))
	require.NotNil(t, inst.PaidDate)
	assert.Equal(t, date(2024, 6, 4), *inst.PaidDate)
	assert.Equal(t, PaymentMethodPix, *inst.PaymentMethod)
}

func TestInstallmentSettle_AlreadyPaid(t *testing.T) {
	paidOn := date(2024, 6, 1)
	inst := &Installment{Amount: decimal.NewFromInt(100), Status: InstallmentStatusPaid, PaidAmount: decimal.NewFromInt(100), PaidDate: &paidOn}

	err := inst.Settle(date(2024, 6, 5), PaymentMethodCash)
	assert.ErrorIs(t, err, ErrAlreadySettled)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, paidOn, *inst.PaidDate)
	assert.True(t, inst.PaidAmount.Equal(decimal.NewFromInt(100)))
}

func TestLoanCloseIfSettled(t *testing.T) {
	tests := []struct {
		name       string
		status     LoanStatus
		paid       string
		wantClosed bool
		wantStatus LoanStatus
	}{
		{"below total stays pending", LoanStatusPending, "999.99", false, LoanStatusPending},
		{"exactly total closes", LoanStatusPending, "1000.00", true, LoanStatusPaid},
		{"overpaid closes", LoanStatusPending, "1200", true, LoanStatusPaid},
		{"already paid is not reclosed", LoanStatusPaid, "1000", false, LoanStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := &Loan{TotalDue: decimal.NewFromInt(1000), Status: tt.status, PaidAmount: decimal.RequireFromString(tt.paid)}
			closed := loan.CloseIfSettled(date(2024, 6, 10))
			assert.Equal(t, tt.wantClosed, closed)
			assert.Equal(t, tt.wantStatus, loan.Status)
			if tt.wantClosed {
				require.NotNil(t, loan.PaidDate)
				assert.Equal(t, date(2024, 6, 10), *loan.PaidDate)
			}
		})
	}
}

func TestLoanCloseIfSettled_NeverReopens(t *testing.T) {
	loan := &Loan{TotalDue: decimal.NewFromInt(1000), Status: LoanStatusPaid, PaidAmount: decimal.NewFromInt(10)}
	assert.False(t, loan.CloseIfSettled(date(2024, 6, 10)))
	assert.Equal(t, LoanStatusPaid, loan.Status)
}

func TestValidateManualPenalty(t *testing.T) {
	neg := decimal.NewFromInt(-1)
	zero := decimal.Zero
	pos := decimal.NewFromFloat(12.5)

	assert.NoError(t, ValidateManualPenalty(nil))
	assert.NoError(t, ValidateManualPenalty(&zero))
	assert.NoError(t, ValidateManualPenalty(&pos))
	assert.ErrorIs(t, ValidateManualPenalty(&neg), ErrNegativePenalty)
	assert.ErrorIs(t, ValidateManualPenalty(&neg), ErrValidation)
}

func TestNewSettlementHistory(t *testing.T) {
	loan := &Loan{ID: 4, TenantID: 2, CustomerID: 9}
	inst := &Installment{ID: 40, SequenceNumber: 5, Amount: decimal.NewFromInt(130)}
	opID := uuid.New()

	h := NewSettlementHistory(loan, inst, SettlementInput{Method: PaymentMethodCash, PaidOn: date(2024, 6, 4), Actor: Actor{TenantID: 2, OperatorID: opID}})

	assert.Equal(t, int32(9), h.CustomerID)
	require.NotNil(t, h.InstallmentID)
	assert.Equal(t, int32(40), *h.InstallmentID)
	require.NotNil(t, h.Note)
	assert.Equal(t, "Installment 5 payment", *h.Note)
	require.NotNil(t, h.OperatorID)
	assert.Equal(t, opID, *h.OperatorID)
}

func TestNewGenericPaymentRecords_NoOperator(t *testing.T) {
	loan := &Loan{ID: 4, TenantID: 2, CustomerID: 9}
	p, h := NewGenericPaymentRecords(loan, GenericPaymentInput{Amount: decimal.NewFromInt(50), Method: PaymentMethodCash})

	assert.Nil(t, p.OperatorID)
	assert.Nil(t, h.OperatorID)
	assert.Nil(t, h.InstallmentID)
	assert.True(t, p.Amount.Equal(h.Amount))
}
