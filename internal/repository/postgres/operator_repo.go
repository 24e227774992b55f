package postgres

import (
	"context"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const operatorColumns = `id, tenant_id, auth0_id, name, email, role, created_at, updated_at`

// OperatorRepository implements domain.OperatorRepository using PostgreSQL
type OperatorRepository struct {
	pool *pgxpool.Pool
}

// NewOperatorRepository creates a new OperatorRepository
func NewOperatorRepository(pool *pgxpool.Pool) *OperatorRepository {
	return &OperatorRepository{pool: pool}
}

// GetByAuth0ID retrieves an operator by identity subject. Subjects are globally unique.
func (r *OperatorRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.Operator, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+operatorColumns+` FROM operators WHERE auth0_id = $1`, auth0ID)
	op, err := scanOperator(row)
	if err != nil {
		return nil, translate("get operator by auth0 id", err, domain.ErrOperatorNotFound)
	}
	return op, nil
}

// GetByID retrieves an operator within a tenant
func (r *OperatorRepository) GetByID(ctx context.Context, tenantID int32, id uuid.UUID) (*domain.Operator, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+operatorColumns+` FROM operators WHERE tenant_id = $1 AND id = $2`,
		tenantID, pgUUID(id))
	op, err := scanOperator(row)
	if err != nil {
		return nil, translate("get operator", err, domain.ErrOperatorNotFound)
	}
	return op, nil
}

// ListByTenant lists a tenant's operators ordered by name
func (r *OperatorRepository) ListByTenant(ctx context.Context, tenantID int32) ([]*domain.Operator, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+operatorColumns+` FROM operators WHERE tenant_id = $1 ORDER BY name, id`, tenantID)
	if err != nil {
		return nil, translate("list operators", err, nil)
	}
	defer rows.Close()

	var result []*domain.Operator
	for rows.Next() {
		op, err := scanOperator(rows)
		if err != nil {
			return nil, translate("scan operator", err, nil)
		}
		result = append(result, op)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list operators", err, nil)
	}
	return result, nil
}

// Create inserts an operator, assigning an ID when none is set
func (r *OperatorRepository) Create(ctx context.Context, operator *domain.Operator) (*domain.Operator, error) {
	id := operator.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO operators (id, tenant_id, auth0_id, name, email, role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+operatorColumns,
		pgUUID(id), operator.TenantID, operator.Auth0ID, operator.Name, operator.Email, string(operator.Role))
	created, err := scanOperator(row)
	if err != nil {
		return nil, translate("create operator", err, nil)
	}
	return created, nil
}

// Update rewrites an operator's name, email and role
func (r *OperatorRepository) Update(ctx context.Context, operator *domain.Operator) (*domain.Operator, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE operators SET name = $3, email = $4, role = $5, updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2
		 RETURNING `+operatorColumns,
		operator.TenantID, pgUUID(operator.ID), operator.Name, operator.Email, string(operator.Role))
	updated, err := scanOperator(row)
	if err != nil {
		return nil, translate("update operator", err, domain.ErrOperatorNotFound)
	}
	return updated, nil
}

// Delete removes an operator from a tenant
func (r *OperatorRepository) Delete(ctx context.Context, tenantID int32, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM operators WHERE tenant_id = $1 AND id = $2`, tenantID, pgUUID(id))
	if err != nil {
		return translate("delete operator", err, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOperatorNotFound
	}
	return nil
}

func scanOperator(row scanner) (*domain.Operator, error) {
	var (
		op   domain.Operator
		id   pgtype.UUID
		role string
	)
	if err := row.Scan(&id, &op.TenantID, &op.Auth0ID, &op.Name, &op.Email, &role, &op.CreatedAt, &op.UpdatedAt); err != nil {
		return nil, err
	}
	op.ID = uuid.UUID(id.Bytes)
	op.Role = domain.Role(role)
	return &op, nil
}
