package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/vikasavn/dukaan/internal/domain"
)

// StoreService implements domain.StoreService using PostgreSQL.
type StoreService struct {
	q *Queries
}

// Compile-time check that StoreService implements domain.StoreService.
var _ domain.StoreService = (*StoreService)(nil)

// NewStoreService creates a new PostgreSQL-backed store service.
func NewStoreService(q *Queries) *StoreService {
	return &StoreService{q: q}
}

// GetStore retrieves a store by ID.
func (s *StoreService) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	store, err := s.q.GetStore(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, domain.Internal(err, "store.get", "failed to get store")
	}
	return store, nil
}

// ListStores returns all active stores for a company.
func (s *StoreService) ListStores(ctx context.Context, companyID int64) ([]domain.Store, error) {
	stores, err := s.q.ListStores(ctx, companyID)
	if err != nil {
		return nil, domain.Internal(err, "store.list", "failed to list stores")
	}
	return stores, nil
}

// CreateStore creates a store under a company.
func (s *StoreService) CreateStore(ctx context.Context, params domain.CreateStoreParams) (*domain.Store, error) {
	if params.Name == "" {
		return nil, domain.NewValidationError("store.create", "name", "name is required")
	}
	if params.InvoiceLayoutPreference == "" {
		params.InvoiceLayoutPreference = domain.LayoutTraditional
	}

	if _, err := s.q.GetCompany(ctx, params.CompanyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, domain.Internal(err, "store.create", "failed to verify company")
	}

	store, err := s.q.InsertStore(ctx, params)
	if err != nil {
		return nil, domain.Internal(err, "store.create", "failed to create store")
	}
	return store, nil
}

const storeColumns = `id, company_id, name, description, address, city, state, pincode,
	phone, email, invoice_layout_preference, is_active, created_at, updated_at`

func scanStore(row pgx.Row) (*domain.Store, error) {
	var s domain.Store
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Description, &s.Address, &s.City, &s.State,
		&s.Pincode, &s.Phone, &s.Email, &s.InvoiceLayoutPreference,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetStore fetches one store row.
func (q *Queries) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	row := q.db.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id)
	return scanStore(row)
}

// GetStoreForUpdate locks the store row for the rest of the transaction.
// Invoice numbering serializes on this lock so two concurrent creations for
// the same store cannot reserve the same number.
func (q *Queries) GetStoreForUpdate(ctx context.Context, id int64) (*domain.Store, error) {
	row := q.db.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1 FOR UPDATE`, id)
	return scanStore(row)
}

// ListStores fetches all active stores for a company.
func (q *Queries) ListStores(ctx context.Context, companyID int64) ([]domain.Store, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+storeColumns+`
		FROM stores
		WHERE company_id = $1 AND is_active
		ORDER BY name`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, *s)
	}
	return stores, rows.Err()
}

// InsertStore creates a store row.
func (q *Queries) InsertStore(ctx context.Context, params domain.CreateStoreParams) (*domain.Store, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO stores (company_id, name, description, address, city, state, pincode,
			phone, email, invoice_layout_preference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+storeColumns,
		params.CompanyID, params.Name, params.Description, params.Address, params.City,
		params.State, params.Pincode, params.Phone, params.Email,
		params.InvoiceLayoutPreference,
	)
	return scanStore(row)
}
