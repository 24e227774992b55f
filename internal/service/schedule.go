package service

import (
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places kept for computed amounts.
// Installment shares are rounded up at this scale so a fully settled schedule
// always reaches the loan's total due.
const AmountScale = 8

// Schedule is the result of splitting a loan into installments
type Schedule struct {
	TotalDue          decimal.Decimal
	InstallmentAmount decimal.Decimal
	Installments      []*domain.Installment
}

// CalculateTotalDue returns principal * (1 + tier/100)
func CalculateTotalDue(principal decimal.Decimal, tier domain.RateTier) decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Add(tier.Rate().Div(decimal.NewFromInt(100)))
	return principal.Mul(multiplier)
}

// GenerateSchedule splits principal into the tier's installment count with
// daily due dates starting at start. Sundays are skipped and the next day
// counts from the date actually assigned.
func GenerateSchedule(principal decimal.Decimal, tier domain.RateTier, start time.Time) (*Schedule, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	count, err := tier.InstallmentCount()
	if err != nil {
		return nil, err
	}
	start = domain.DateOnly(start)
	if !domain.IsAllowedDueDate(start) {
		return nil, domain.ErrInvalidDueDate
	}

	totalDue := CalculateTotalDue(principal, tier)
	amount := totalDue.Div(decimal.NewFromInt(int64(count))).RoundCeil(AmountScale)

	installments := make([]*domain.Installment, count)
	due := start
	for i := 0; i < count; i++ {
		due = domain.NextAllowedDueDate(due)
		installments[i] = &domain.Installment{
			SequenceNumber: int32(i + 1),
			Amount:         amount,
			DueDate:        due,
			Status:         domain.InstallmentStatusPending,
			PaidAmount:     decimal.Zero,
		}
		due = due.AddDate(0, 0, 1)
	}

	return &Schedule{
		TotalDue:          totalDue,
		InstallmentAmount: amount,
		Installments:      installments,
	}, nil
}
