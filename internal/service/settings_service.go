package service

import (
	"context"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/websocket"
)

// SettingsService reads and updates tenant accrual settings
type SettingsService struct {
	settingsRepo   domain.SettingsRepository
	eventPublisher websocket.EventPublisher
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo domain.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *SettingsService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// Get returns the tenant's settings with defaults for missing keys.
// It always reads the store so changes apply on the next computation.
func (s *SettingsService) Get(ctx context.Context, tenantID int32) (domain.Settings, error) {
	return loadSettings(ctx, s.settingsRepo, tenantID)
}

// Update replaces every setting. Only elevated roles may change configuration.
func (s *SettingsService) Update(ctx context.Context, actor domain.Actor, settings domain.Settings) (domain.Settings, error) {
	if !actor.Role.IsElevated() {
		return domain.Settings{}, domain.ErrElevatedRole
	}
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	if err := s.settingsRepo.Upsert(ctx, actor.TenantID, settings.Values()); err != nil {
		return domain.Settings{}, err
	}
	s.publishEvent(actor.TenantID, websocket.SettingsUpdated(settings))
	return settings, nil
}

func (s *SettingsService) publishEvent(tenantID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(tenantID, event)
	}
}

func loadSettings(ctx context.Context, repo domain.SettingsRepository, tenantID int32) (domain.Settings, error) {
	values, err := repo.Get(ctx, tenantID)
	if err != nil {
		return domain.Settings{}, err
	}
	return domain.ParseSettings(values)
}
