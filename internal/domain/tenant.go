package domain

import (
	"context"
	"time"
)

// Tenant is the isolation boundary: every other record belongs to exactly one tenant
type Tenant struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultPlan is assigned when a tenant is seeded without a plan
const DefaultPlan = "basic"

func (t *Tenant) Validate() error {
	if t.Name == "" {
		return ErrNameRequired
	}
	if len(t.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// TenantRepository defines persistence operations for tenants
type TenantRepository interface {
	GetByID(ctx context.Context, id int32) (*Tenant, error)
	GetByName(ctx context.Context, name string) (*Tenant, error)
	Create(ctx context.Context, tenant *Tenant) (*Tenant, error)
}
