package service

import (
	"errors"
	"testing"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_GetDefaults(t *testing.T) {
	repo := testutil.NewMockSettingsRepository()
	svc := NewSettingsService(repo)

	settings, err := svc.Get(testCtx, tenantA)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestSettingsService_ReadsFreshEveryCall(t *testing.T) {
	repo := testutil.NewMockSettingsRepository()
	svc := NewSettingsService(repo)

	_, err := svc.Get(testCtx, tenantA)
	require.NoError(t, err)
	repo.Values[tenantA] = map[string]string{domain.SettingPenaltyRate: "15"}
	settings, err := svc.Get(testCtx, tenantA)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.GetCalls)
	assert.True(t, settings.PenaltyRate.Equal(money("15")))
}

func TestSettingsService_Update(t *testing.T) {
	repo := testutil.NewMockSettingsRepository()
	events := testutil.NewMockEventPublisher()
	svc := NewSettingsService(repo)
	svc.SetEventPublisher(events)

	next := domain.Settings{ToleranceDays: 5, PenaltyRate: money("12"), MonthlyInterestRate: money("1.5")}

	_, err := svc.Update(testCtx, actorFor(tenantA, domain.RoleOperator), next)
	assert.ErrorIs(t, err, domain.ErrElevatedRole)
	assert.Empty(t, repo.Values)

	bad := next
	bad.ToleranceDays = -1
	_, err = svc.Update(testCtx, actorFor(tenantA, domain.RoleManager), bad)
	assert.ErrorIs(t, err, domain.ErrToleranceDaysInvalid)

	_, err = svc.Update(testCtx, actorFor(tenantA, domain.RoleManager), next)
	require.NoError(t, err)
	assert.Equal(t, "5", repo.Values[tenantA][domain.SettingToleranceDays])
	assert.Equal(t, []string{"settings.updated"}, events.Types(tenantA))

	got, err := svc.Get(testCtx, tenantA)
	require.NoError(t, err)
	assert.Equal(t, 5, got.ToleranceDays)
	assert.True(t, got.MonthlyInterestRate.Equal(money("1.5")))

	other, err := svc.Get(testCtx, tenantB)
	require.NoError(t, err)
	assert.Equal(t, 3, other.ToleranceDays)
}

func TestSettingsService_StoreFailure(t *testing.T) {
	repo := testutil.NewMockSettingsRepository()
	repo.GetFn = func(tenantID int32) (map[string]string, error) {
		return nil, domain.NewError(domain.ErrPersistence, "connection reset")
	}
	svc := NewSettingsService(repo)

	_, err := svc.Get(testCtx, tenantA)
	assert.True(t, errors.Is(err, domain.ErrPersistence))
}
