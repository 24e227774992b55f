package service

import (
	"context"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// OperatorService resolves authenticated identities and manages a tenant's operators
type OperatorService struct {
	operatorRepo domain.OperatorRepository
}

// NewOperatorService creates a new OperatorService
func NewOperatorService(operatorRepo domain.OperatorRepository) *OperatorService {
	return &OperatorService{operatorRepo: operatorRepo}
}

// OperatorInput carries the editable operator fields
type OperatorInput struct {
	Auth0ID string
	Name    string
	Email   string
	Role    domain.Role
}

// GetByAuth0ID resolves the operator behind a token subject
func (s *OperatorService) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.Operator, error) {
	return s.operatorRepo.GetByAuth0ID(ctx, auth0ID)
}

// TenantIDForAuth0ID returns the tenant the subject operates in
func (s *OperatorService) TenantIDForAuth0ID(ctx context.Context, auth0ID string) (int32, error) {
	op, err := s.operatorRepo.GetByAuth0ID(ctx, auth0ID)
	if err != nil {
		return 0, err
	}
	return op.TenantID, nil
}

// Me returns the acting operator
func (s *OperatorService) Me(ctx context.Context, actor domain.Actor) (*domain.Operator, error) {
	return s.operatorRepo.GetByID(ctx, actor.TenantID, actor.OperatorID)
}

// ListOperators returns the tenant's operators. Admin only.
func (s *OperatorService) ListOperators(ctx context.Context, actor domain.Actor) ([]*domain.Operator, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrAdminRole
	}
	return s.operatorRepo.ListByTenant(ctx, actor.TenantID)
}

// CreateOperator adds an operator to the actor's tenant. Admin only.
func (s *OperatorService) CreateOperator(ctx context.Context, actor domain.Actor, input OperatorInput) (*domain.Operator, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrAdminRole
	}
	op := &domain.Operator{
		TenantID: actor.TenantID,
		Auth0ID:  input.Auth0ID,
		Name:     input.Name,
		Email:    input.Email,
		Role:     input.Role,
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}
	created, err := s.operatorRepo.Create(ctx, op)
	if err != nil {
		return nil, err
	}
	log.Info().Int32("tenant_id", actor.TenantID).Str("operator_id", created.ID.String()).Msg("Operator created")
	return created, nil
}

// UpdateOperator edits an operator of the actor's tenant. Admin only.
func (s *OperatorService) UpdateOperator(ctx context.Context, actor domain.Actor, id uuid.UUID, input OperatorInput) (*domain.Operator, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrAdminRole
	}
	existing, err := s.operatorRepo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	updated := *existing
	updated.Name = input.Name
	updated.Email = input.Email
	updated.Role = input.Role
	if input.Auth0ID != "" {
		updated.Auth0ID = input.Auth0ID
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	return s.operatorRepo.Update(ctx, &updated)
}

// DeleteOperator removes an operator. Admin only, and never the actor themselves.
func (s *OperatorService) DeleteOperator(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrAdminRole
	}
	if id == actor.OperatorID {
		return domain.ErrOperatorSelfDelete
	}
	return s.operatorRepo.Delete(ctx, actor.TenantID, id)
}
