package postgres

import (
	"context"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tenantColumns = `id, name, plan, created_at, updated_at`

// TenantRepository implements domain.TenantRepository using PostgreSQL
type TenantRepository struct {
	pool *pgxpool.Pool
}

// NewTenantRepository creates a new TenantRepository
func NewTenantRepository(pool *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{pool: pool}
}

// GetByID retrieves a tenant by its ID
func (r *TenantRepository) GetByID(ctx context.Context, id int32) (*domain.Tenant, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	tenant, err := scanTenant(row)
	if err != nil {
		return nil, translate("get tenant", err, domain.ErrTenantNotFound)
	}
	return tenant, nil
}

// GetByName retrieves a tenant by its unique name
func (r *TenantRepository) GetByName(ctx context.Context, name string) (*domain.Tenant, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE name = $1`, name)
	tenant, err := scanTenant(row)
	if err != nil {
		return nil, translate("get tenant by name", err, domain.ErrTenantNotFound)
	}
	return tenant, nil
}

// Create creates a new tenant
func (r *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO tenants (name, plan) VALUES ($1, $2) RETURNING `+tenantColumns,
		tenant.Name, tenant.Plan)
	created, err := scanTenant(row)
	if err != nil {
		return nil, translate("create tenant", err, nil)
	}
	return created, nil
}

func scanTenant(row scanner) (*domain.Tenant, error) {
	var t domain.Tenant
	if err := row.Scan(&t.ID, &t.Name, &t.Plan, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
