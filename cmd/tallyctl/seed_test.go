package main

import (
	"testing"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeedFile(t *testing.T) {
	raw := []byte(`
tenant:
  name: Acme Collections
  plan: pro
admin:
  auth0_id: auth0|admin
  name: Admin
  email: admin@acme.test
settings:
  tolerance_days: 5
  penalty_rate: "0.15"
`)

	input, err := parseSeedFile(raw)
	require.NoError(t, err)

	assert.Equal(t, "Acme Collections", input.Name)
	assert.Equal(t, "pro", input.Plan)
	assert.Equal(t, "auth0|admin", input.Admin.Auth0ID)
	assert.Equal(t, domain.RoleAdmin, input.Admin.Role)
	require.NotNil(t, input.Settings)
	assert.Equal(t, 5, input.Settings.ToleranceDays)
	assert.Equal(t, "0.15", input.Settings.PenaltyRate.String())
	assert.True(t, input.Settings.MonthlyInterestRate.Equal(domain.DefaultSettings().MonthlyInterestRate))
}

func TestParseSeedFile_WithoutSettings(t *testing.T) {
	input, err := parseSeedFile([]byte("tenant:\n  name: Acme\nadmin:\n  auth0_id: auth0|a\n  name: A\n  email: a@acme.test\n"))
	require.NoError(t, err)
	assert.Nil(t, input.Settings)
}

func TestParseSeedFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown key", "tenant:\n  name: Acme\n  owner: someone\n"},
		{"bad rate", "tenant:\n  name: Acme\nsettings:\n  penalty_rate: ten\n"},
		{"bad interest", "tenant:\n  name: Acme\nsettings:\n  monthly_interest_rate: 2%\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSeedFile([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}
