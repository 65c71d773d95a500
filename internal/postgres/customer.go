package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/vikasavn/dukaan/internal/domain"
)

const customerColumns = `id, company_id, name, email, phone, address, city, state,
	pincode, gstin, customer_type, created_at, updated_at`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City,
		&c.State, &c.Pincode, &c.GSTIN, &c.CustomerType, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCustomer fetches one customer row.
func (q *Queries) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	row := q.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	return scanCustomer(row)
}

// GetCustomerByName fetches a customer by its (company, name) identity.
func (q *Queries) GetCustomerByName(ctx context.Context, companyID int64, name string) (*domain.Customer, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE company_id = $1 AND name = $2`, companyID, name)
	return scanCustomer(row)
}

// UpsertCustomer creates a customer row, or returns the existing row when a
// concurrent writer already claimed the (company, name) identity. The no-op
// DO UPDATE makes RETURNING yield the winner's row instead of aborting the
// transaction on the unique index.
func (q *Queries) UpsertCustomer(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO customers (company_id, name, email, phone, address, city, state,
			pincode, gstin, customer_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (company_id, name) DO UPDATE SET updated_at = now()
		RETURNING `+customerColumns,
		c.CompanyID, c.Name, c.Email, c.Phone, c.Address, c.City, c.State,
		c.Pincode, c.GSTIN, c.CustomerType,
	)
	return scanCustomer(row)
}

// ListCustomers fetches customers for a company ordered by name.
func (q *Queries) ListCustomers(ctx context.Context, companyID int64) ([]domain.Customer, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE company_id = $1
		ORDER BY name`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}
