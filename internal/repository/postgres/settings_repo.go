package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepository implements domain.SettingsRepository using PostgreSQL
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get returns every stored key for a tenant. Missing keys are absent from the map.
func (r *SettingsRepository) Get(ctx context.Context, tenantID int32) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value FROM settings WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return nil, translate("get settings", err, nil)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, translate("scan setting", err, nil)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, translate("get settings", err, nil)
	}
	return values, nil
}

// Upsert writes every key in one transaction
func (r *SettingsRepository) Upsert(ctx context.Context, tenantID int32, values map[string]string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translate("begin upsert settings", err, nil)
	}
	defer tx.Rollback(ctx)

	for key, value := range values {
		_, err := tx.Exec(ctx,
			`INSERT INTO settings (tenant_id, key, value) VALUES ($1, $2, $3)
			 ON CONFLICT (tenant_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
			tenantID, key, value)
		if err != nil {
			return translate("upsert setting", err, nil)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return translate("commit upsert settings", err, nil)
	}
	return nil
}
