package postgres

import (
	"context"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const customerColumns = `c.id, c.tenant_id, c.name, c.tax_id, c.rg, c.email, c.phone, c.phone_alt, c.pix_key,
	c.address, c.city, c.state, c.zip_code, c.reference_name, c.reference_phone, c.reference_address,
	c.notes, c.company, c.created_at, c.updated_at`

// CustomerRepository implements domain.CustomerRepository using PostgreSQL
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create inserts a customer
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO customers AS c (tenant_id, name, tax_id, rg, email, phone, phone_alt, pix_key,
			address, city, state, zip_code, reference_name, reference_phone, reference_address, notes, company)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING `+customerColumns,
		customer.TenantID, customer.Name, customer.TaxID, customer.RG, customer.Email, customer.Phone,
		customer.PhoneAlt, customer.PixKey, customer.Address, customer.City, customer.State, customer.ZipCode,
		customer.ReferenceName, customer.ReferencePhone, customer.ReferenceAddress, customer.Notes, customer.Company)
	created, err := scanCustomer(row)
	if err != nil {
		return nil, translate("create customer", err, nil)
	}
	return created, nil
}

// GetByID retrieves a customer within a tenant
func (r *CustomerRepository) GetByID(ctx context.Context, tenantID int32, id int32) (*domain.Customer, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers c WHERE c.tenant_id = $1 AND c.id = $2`, tenantID, id)
	customer, err := scanCustomer(row)
	if err != nil {
		return nil, translate("get customer", err, domain.ErrCustomerNotFound)
	}
	return customer, nil
}

// List returns a tenant's customers ordered by name.
// InArrearsAsOf keeps customers owning a pending installment due before that day, whatever its loan's status.
func (r *CustomerRepository) List(ctx context.Context, tenantID int32, filter domain.CustomerFilter) ([]*domain.Customer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+customerColumns+` FROM customers c
		 WHERE c.tenant_id = $1
		   AND ($2::text IS NULL OR c.company = $2)
		   AND ($3::date IS NULL OR EXISTS (
				SELECT 1 FROM installments i
				JOIN loans l ON l.id = i.loan_id AND l.tenant_id = i.tenant_id
				WHERE l.tenant_id = c.tenant_id AND l.customer_id = c.id
				  AND i.status = 'pending' AND i.due_date < $3))
		 ORDER BY c.name, c.id`,
		tenantID, filter.Company, nullableDate(filter.InArrearsAsOf))
	if err != nil {
		return nil, translate("list customers", err, nil)
	}
	customers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Customer, error) {
		return scanCustomer(row)
	})
	if err != nil {
		return nil, translate("list customers", err, nil)
	}
	return customers, nil
}

// Update rewrites every editable customer field
func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE customers AS c SET name = $3, tax_id = $4, rg = $5, email = $6, phone = $7, phone_alt = $8,
			pix_key = $9, address = $10, city = $11, state = $12, zip_code = $13, reference_name = $14,
			reference_phone = $15, reference_address = $16, notes = $17, company = $18, updated_at = NOW()
		 WHERE c.tenant_id = $1 AND c.id = $2
		 RETURNING `+customerColumns,
		customer.TenantID, customer.ID, customer.Name, customer.TaxID, customer.RG, customer.Email, customer.Phone,
		customer.PhoneAlt, customer.PixKey, customer.Address, customer.City, customer.State, customer.ZipCode,
		customer.ReferenceName, customer.ReferencePhone, customer.ReferenceAddress, customer.Notes, customer.Company)
	updated, err := scanCustomer(row)
	if err != nil {
		return nil, translate("update customer", err, domain.ErrCustomerNotFound)
	}
	return updated, nil
}

// Delete removes the customer with every loan it owns and their dependent rows
func (r *CustomerRepository) Delete(ctx context.Context, tenantID int32, id int32) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translate("begin delete customer", err, nil)
	}
	defer tx.Rollback(ctx)

	var locked int32
	err = tx.QueryRow(ctx,
		`SELECT id FROM customers WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, tenantID, id).Scan(&locked)
	if err != nil {
		return translate("lock customer", err, domain.ErrCustomerNotFound)
	}

	owned := `SELECT id FROM loans WHERE tenant_id = $1 AND customer_id = $2`
	statements := []string{
		`DELETE FROM installments WHERE tenant_id = $1 AND loan_id IN (` + owned + `)`,
		`DELETE FROM payments WHERE tenant_id = $1 AND loan_id IN (` + owned + `)`,
		`DELETE FROM notifications WHERE tenant_id = $1 AND loan_id IN (` + owned + `)`,
		`DELETE FROM payment_history WHERE tenant_id = $1 AND customer_id = $2`,
		`DELETE FROM payment_history WHERE tenant_id = $1 AND loan_id IN (` + owned + `)`,
		`DELETE FROM loans WHERE tenant_id = $1 AND customer_id = $2`,
		`DELETE FROM customers WHERE tenant_id = $1 AND id = $2`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, tenantID, id); err != nil {
			return translate("delete customer", err, nil)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return translate("commit delete customer", err, nil)
	}
	return nil
}

// Count counts a tenant's customers, optionally within one company
func (r *CustomerRepository) Count(ctx context.Context, tenantID int32, company *string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM customers WHERE tenant_id = $1 AND ($2::text IS NULL OR company = $2)`,
		tenantID, company).Scan(&n)
	if err != nil {
		return 0, translate("count customers", err, nil)
	}
	return n, nil
}

func scanCustomer(row scanner) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.TaxID, &c.RG, &c.Email, &c.Phone, &c.PhoneAlt, &c.PixKey,
		&c.Address, &c.City, &c.State, &c.ZipCode, &c.ReferenceName, &c.ReferencePhone, &c.ReferenceAddress,
		&c.Notes, &c.Company, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
