package domain

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
)

// Setting keys
const (
	SettingToleranceDays       = "tolerance_days"
	SettingPenaltyRate         = "penalty_rate"
	SettingMonthlyInterestRate = "monthly_interest_rate"
)

var (
	ErrSettingUnknown       = NewError(ErrValidation, "unknown setting")
	ErrToleranceDaysInvalid = NewError(ErrValidation, "tolerance days must be a non-negative integer")
	ErrRateInvalid          = NewError(ErrValidation, "rates must be non-negative numbers")
)

// Settings are the tenant's accrual parameters
type Settings struct {
	ToleranceDays       int             `json:"toleranceDays"`
	PenaltyRate         decimal.Decimal `json:"penaltyRate"`
	MonthlyInterestRate decimal.Decimal `json:"monthlyInterestRate"`
}

// DefaultSettings applies when a tenant has not stored a key
func DefaultSettings() Settings {
	return Settings{
		ToleranceDays:       3,
		PenaltyRate:         decimal.NewFromInt(10),
		MonthlyInterestRate: decimal.NewFromInt(2),
	}
}

// ParseSettings builds Settings from stored key/value rows, falling back to defaults per missing key
func ParseSettings(values map[string]string) (Settings, error) {
	s := DefaultSettings()
	for key, raw := range values {
		switch key {
		case SettingToleranceDays:
			days, err := strconv.Atoi(raw)
			if err != nil || days < 0 {
				return s, ErrToleranceDaysInvalid
			}
			s.ToleranceDays = days
		case SettingPenaltyRate, SettingMonthlyInterestRate:
			rate, err := decimal.NewFromString(raw)
			if err != nil || rate.IsNegative() {
				return s, ErrRateInvalid
			}
			if key == SettingPenaltyRate {
				s.PenaltyRate = rate
			} else {
				s.MonthlyInterestRate = rate
			}
		}
	}
	return s, nil
}

// Values renders settings as key/value rows
func (s Settings) Values() map[string]string {
	return map[string]string{
		SettingToleranceDays:       strconv.Itoa(s.ToleranceDays),
		SettingPenaltyRate:         s.PenaltyRate.String(),
		SettingMonthlyInterestRate: s.MonthlyInterestRate.String(),
	}
}

// Validate rejects negative tolerance days and negative rates
func (s Settings) Validate() error {
	if s.ToleranceDays < 0 {
		return ErrToleranceDaysInvalid
	}
	if s.PenaltyRate.IsNegative() || s.MonthlyInterestRate.IsNegative() {
		return ErrRateInvalid
	}
	return nil
}

// SettingsRepository stores per-tenant key/value settings
type SettingsRepository interface {
	Get(ctx context.Context, tenantID int32) (map[string]string, error)
	// Upsert writes every key in one transaction
	Upsert(ctx context.Context, tenantID int32, values map[string]string) error
}
