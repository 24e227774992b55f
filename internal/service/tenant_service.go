package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// TenantService provisions tenants
type TenantService struct {
	tenantRepo   domain.TenantRepository
	operatorRepo domain.OperatorRepository
	settingsRepo domain.SettingsRepository
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo domain.TenantRepository, operatorRepo domain.OperatorRepository, settingsRepo domain.SettingsRepository) *TenantService {
	return &TenantService{
		tenantRepo:   tenantRepo,
		operatorRepo: operatorRepo,
		settingsRepo: settingsRepo,
	}
}

// BootstrapInput describes a tenant with its first admin
type BootstrapInput struct {
	Name     string
	Plan     string
	Admin    OperatorInput
	Settings *domain.Settings
}

// BootstrapResult holds the provisioned records
type BootstrapResult struct {
	Tenant  *domain.Tenant
	Admin   *domain.Operator
	Created bool
}

// Bootstrap creates the tenant and its admin operator when missing and stores
// the given settings. Running it twice leaves a single tenant and admin.
func (s *TenantService) Bootstrap(ctx context.Context, input BootstrapInput) (*BootstrapResult, error) {
	tenant := &domain.Tenant{Name: strings.TrimSpace(input.Name), Plan: input.Plan}
	if tenant.Plan == "" {
		tenant.Plan = domain.DefaultPlan
	}
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if input.Settings != nil {
		if err := input.Settings.Validate(); err != nil {
			return nil, err
		}
	}

	admin, err := s.operatorRepo.GetByAuth0ID(ctx, input.Admin.Auth0ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	existing, err := s.tenantRepo.GetByName(ctx, tenant.Name)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	// The admin identity may only be reused for the tenant it already belongs to
	if admin != nil && (existing == nil || admin.TenantID != existing.ID) {
		return nil, domain.ErrOperatorAuth0IDTaken
	}

	candidate := &domain.Operator{
		Auth0ID: input.Admin.Auth0ID,
		Name:    input.Admin.Name,
		Email:   input.Admin.Email,
		Role:    domain.RoleAdmin,
	}
	if admin == nil {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}
	}

	result := &BootstrapResult{Tenant: existing, Admin: admin}
	if existing == nil {
		if result.Tenant, err = s.tenantRepo.Create(ctx, tenant); err != nil {
			return nil, err
		}
		result.Created = true
	}
	if admin == nil {
		candidate.TenantID = result.Tenant.ID
		if result.Admin, err = s.operatorRepo.Create(ctx, candidate); err != nil {
			return nil, err
		}
	}

	if input.Settings != nil {
		if err := s.settingsRepo.Upsert(ctx, result.Tenant.ID, input.Settings.Values()); err != nil {
			return nil, err
		}
	}

	log.Info().
		Int32("tenant_id", result.Tenant.ID).
		Bool("created", result.Created).
		Msg("Tenant bootstrapped")
	return result, nil
}
