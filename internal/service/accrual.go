package service

import (
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// daysPerMonth converts days late into fractional months of interest
var daysPerMonth = decimal.NewFromInt(30)

// AccrualSubject is anything that can fall overdue: a loan or a single installment
type AccrualSubject struct {
	Settled        bool
	DueDate        *time.Time
	OriginalAmount decimal.Decimal
	Discount       decimal.Decimal
}

// LoanAccrualSubject adapts a loan to the accrual calculator
func LoanAccrualSubject(loan *domain.Loan) AccrualSubject {
	due := loan.DueDate
	subject := AccrualSubject{
		Settled:        loan.IsSettled(),
		OriginalAmount: loan.OriginalAmount,
		Discount:       loan.Discount,
	}
	if !due.IsZero() {
		subject.DueDate = &due
	}
	return subject
}

// InstallmentAccrualSubject adapts an installment to the accrual calculator
func InstallmentAccrualSubject(inst *domain.Installment) AccrualSubject {
	due := inst.DueDate
	subject := AccrualSubject{
		Settled:        inst.IsPaid(),
		OriginalAmount: inst.Amount,
	}
	if !due.IsZero() {
		subject.DueDate = &due
	}
	return subject
}

// ComputeAccrual returns the penalty and interest owed on subject as of asOf.
// Nothing accrues until the days late exceed the tolerance. Penalty is a flat
// share of the original amount; interest grows with fractional 30-day months.
// This figure is advisory and independent from installment manual penalties.
func ComputeAccrual(subject AccrualSubject, asOf time.Time, settings domain.Settings) domain.Accrual {
	base := subject.OriginalAmount.Sub(subject.Discount)
	none := domain.Accrual{
		Penalty:  decimal.Zero,
		Interest: decimal.Zero,
		TotalDue: base,
	}

	if subject.Settled || subject.DueDate == nil {
		return none
	}
	daysLate := domain.DaysBetween(*subject.DueDate, asOf)
	if daysLate <= 0 || daysLate <= settings.ToleranceDays {
		return none
	}

	hundred := decimal.NewFromInt(100)
	penalty := subject.OriginalAmount.Mul(settings.PenaltyRate.Div(hundred))
	monthsLate := decimal.NewFromInt(int64(daysLate)).Div(daysPerMonth)
	interest := subject.OriginalAmount.Mul(settings.MonthlyInterestRate.Div(hundred)).Mul(monthsLate)

	return domain.Accrual{
		Penalty:  penalty.Round(2),
		Interest: interest.Round(2),
		TotalDue: subject.OriginalAmount.Add(penalty).Add(interest).Sub(subject.Discount).Round(2),
		DaysLate: daysLate,
	}
}
