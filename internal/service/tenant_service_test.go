package service

import (
	"testing"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantService_BootstrapIsIdempotent(t *testing.T) {
	store := testutil.NewMockStore()
	svc := NewTenantService(store.Tenants, store.Operators, store.Settings)
	settings := domain.Settings{ToleranceDays: 2, PenaltyRate: money("10"), MonthlyInterestRate: money("2")}
	input := BootstrapInput{
		Name:     "Acme",
		Admin:    OperatorInput{Auth0ID: "auth0|root", Name: "Root", Email: "root@acme.test"},
		Settings: &settings,
	}

	first, err := svc.Bootstrap(testCtx, input)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, domain.DefaultPlan, first.Tenant.Plan)
	assert.Equal(t, domain.RoleAdmin, first.Admin.Role)
	assert.Equal(t, "2", store.Settings.Values[first.Tenant.ID][domain.SettingToleranceDays])

	second, err := svc.Bootstrap(testCtx, input)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Tenant.ID, second.Tenant.ID)
	assert.Equal(t, first.Admin.ID, second.Admin.ID)
	assert.Len(t, store.Tenants.Tenants, 1)
	assert.Len(t, store.Operators.Operators, 1)
}

func TestTenantService_BootstrapRejectsForeignAdmin(t *testing.T) {
	store := testutil.NewMockStore()
	svc := NewTenantService(store.Tenants, store.Operators, store.Settings)

	_, err := svc.Bootstrap(testCtx, BootstrapInput{Name: "Acme", Admin: OperatorInput{Auth0ID: "auth0|root", Name: "Root", Email: "root@acme.test"}})
	require.NoError(t, err)

	_, err = svc.Bootstrap(testCtx, BootstrapInput{Name: "Other", Admin: OperatorInput{Auth0ID: "auth0|root", Name: "Root", Email: "root@other.test"}})
	assert.ErrorIs(t, err, domain.ErrOperatorAuth0IDTaken)
}

func TestTenantService_BootstrapValidation(t *testing.T) {
	store := testutil.NewMockStore()
	svc := NewTenantService(store.Tenants, store.Operators, store.Settings)

	_, err := svc.Bootstrap(testCtx, BootstrapInput{Name: " "})
	assert.ErrorIs(t, err, domain.ErrNameRequired)
	assert.Empty(t, store.Tenants.Tenants)
}
