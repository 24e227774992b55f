package service

import (
	"testing"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func pendingSubject(amount int64, due time.Time) AccrualSubject {
	return AccrualSubject{OriginalAmount: decimal.NewFromInt(amount), DueDate: &due}
}

func TestComputeAccrual_Example(t *testing.T) {
	due := day(2024, 1, 1)
	asOf := due.AddDate(0, 0, 33)

	got := ComputeAccrual(pendingSubject(1000, due), asOf, domain.DefaultSettings())

	assert.Equal(t, "100.00", got.Penalty.StringFixed(2))
	assert.Equal(t, "22.00", got.Interest.StringFixed(2))
	assert.Equal(t, "1122.00", got.TotalDue.StringFixed(2))
	assert.Equal(t, 33, got.DaysLate)
}

func TestComputeAccrual_GraceBoundary(t *testing.T) {
	due := day(2024, 1, 1)
	settings := domain.DefaultSettings()

	atTolerance := ComputeAccrual(pendingSubject(1000, due), due.AddDate(0, 0, 3), settings)
	assert.True(t, atTolerance.Penalty.IsZero())
	assert.True(t, atTolerance.Interest.IsZero())
	assert.Equal(t, "1000.00", atTolerance.TotalDue.StringFixed(2))

	pastTolerance := ComputeAccrual(pendingSubject(1000, due), due.AddDate(0, 0, 4), settings)
	// 4 days: penalty 100, interest 1000 * 0.02 * 4/30 = 2.666.. -> 2.67
	assert.Equal(t, "100.00", pastTolerance.Penalty.StringFixed(2))
	assert.Equal(t, "2.67", pastTolerance.Interest.StringFixed(2))
	assert.Equal(t, "1102.67", pastTolerance.TotalDue.StringFixed(2))
	assert.Equal(t, 4, pastTolerance.DaysLate)
}

func TestComputeAccrual_NoAccrual(t *testing.T) {
	due := day(2024, 1, 10)
	settings := domain.DefaultSettings()

	tests := []struct {
		name    string
		subject AccrualSubject
		asOf    time.Time
	}{
		{"settled", AccrualSubject{Settled: true, OriginalAmount: decimal.NewFromInt(500), DueDate: &due}, due.AddDate(0, 2, 0)},
		{"no due date", AccrualSubject{OriginalAmount: decimal.NewFromInt(500)}, due.AddDate(0, 2, 0)},
		{"before due", pendingSubject(500, due), due.AddDate(0, 0, -1)},
		{"on due date", pendingSubject(500, due), due},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAccrual(tt.subject, tt.asOf, settings)
			assert.True(t, got.Penalty.IsZero())
			assert.True(t, got.Interest.IsZero())
			assert.Equal(t, 0, got.DaysLate)
			assert.Equal(t, "500.00", got.TotalDue.StringFixed(2))
		})
	}
}

func TestComputeAccrual_DiscountAndCustomRates(t *testing.T) {
	due := day(2024, 1, 1)
	subject := AccrualSubject{OriginalAmount: decimal.NewFromInt(1000), Discount: decimal.NewFromInt(50), DueDate: &due}
	settings := domain.Settings{ToleranceDays: 0, PenaltyRate: decimal.NewFromInt(5), MonthlyInterestRate: decimal.NewFromInt(3)}

	got := ComputeAccrual(subject, due.AddDate(0, 0, 60), settings)

	// penalty 50, interest 1000 * 0.03 * 2 = 60, total 1000 + 50 + 60 - 50
	assert.Equal(t, "50.00", got.Penalty.StringFixed(2))
	assert.Equal(t, "60.00", got.Interest.StringFixed(2))
	assert.Equal(t, "1060.00", got.TotalDue.StringFixed(2))
}

func TestComputeAccrual_ReadsSettingsPerCall(t *testing.T) {
	due := day(2024, 1, 1)
	asOf := due.AddDate(0, 0, 5)

	lenient := domain.DefaultSettings()
	lenient.ToleranceDays = 10
	assert.True(t, ComputeAccrual(pendingSubject(1000, due), asOf, lenient).Penalty.IsZero())
	assert.False(t, ComputeAccrual(pendingSubject(1000, due), asOf, domain.DefaultSettings()).Penalty.IsZero())
}

func TestInstallmentAccrualSubject(t *testing.T) {
	inst := &domain.Installment{Amount: decimal.NewFromInt(130), DueDate: day(2024, 1, 1), Status: domain.InstallmentStatusPending}
	got := ComputeAccrual(InstallmentAccrualSubject(inst), day(2024, 1, 31), domain.DefaultSettings())

	// 30 days: penalty 13, interest 130 * 0.02 * 1 = 2.60
	assert.Equal(t, "13.00", got.Penalty.StringFixed(2))
	assert.Equal(t, "2.60", got.Interest.StringFixed(2))
}
