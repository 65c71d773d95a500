package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vikasavn/dukaan/internal/domain"
)

// ItemService implements domain.ItemService using PostgreSQL.
type ItemService struct {
	q *Queries
}

// Compile-time check that ItemService implements domain.ItemService.
var _ domain.ItemService = (*ItemService)(nil)

// NewItemService creates a new PostgreSQL-backed item service.
func NewItemService(q *Queries) *ItemService {
	return &ItemService{q: q}
}

// GetItem retrieves an item by ID with its company associations.
func (s *ItemService) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.q.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, domain.Internal(err, "item.get", "failed to get item")
	}
	return item, nil
}

// GetItemBySKU retrieves an item by its globally-unique SKU.
func (s *ItemService) GetItemBySKU(ctx context.Context, sku string) (*domain.Item, error) {
	item, err := s.q.GetItemBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, domain.Internal(err, "item.get_by_sku", "failed to get item")
	}
	return item, nil
}

// ListItems returns the active catalog for a company.
func (s *ItemService) ListItems(ctx context.Context, companyID int64) ([]domain.Item, error) {
	items, err := s.q.ListItems(ctx, companyID)
	if err != nil {
		return nil, domain.Internal(err, "item.list", "failed to list items")
	}
	return items, nil
}

// CreateItem creates a catalog item and links it to its companies.
func (s *ItemService) CreateItem(ctx context.Context, params domain.CreateItemParams) (*domain.Item, error) {
	if params.SKU == "" {
		return nil, domain.NewValidationError("item.create", "sku", "sku is required")
	}
	if params.Name == "" {
		return nil, domain.NewValidationError("item.create", "name", "name is required")
	}
	if len(params.CompanyIDs) == 0 {
		return nil, domain.NewValidationError("item.create", "company_ids", "item must belong to at least one company")
	}
	if params.Unit == "" {
		params.Unit = domain.UnitPiece
	}

	item, err := s.q.InsertItem(ctx, params)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateSKU
		}
		return nil, domain.Internal(err, "item.create", "failed to create item")
	}
	return item, nil
}

const itemColumns = `i.id, i.name, i.description, i.sku, i.hsn_code, i.unit, i.price,
	i.tax_rate, i.is_active, i.created_at, i.updated_at`

func scanItem(row pgx.Row) (*domain.Item, error) {
	var it domain.Item
	err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.SKU, &it.HSNCode, &it.Unit,
		&it.Price, &it.TaxRate, &it.IsActive, &it.CreatedAt, &it.UpdatedAt,
		&it.CompanyIDs,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetItem fetches one item with aggregated company IDs.
func (q *Queries) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+itemColumns+`,
			COALESCE(array_agg(ic.company_id) FILTER (WHERE ic.company_id IS NOT NULL), '{}') AS company_ids
		FROM items i
		LEFT JOIN item_companies ic ON ic.item_id = i.id
		WHERE i.id = $1
		GROUP BY i.id`, id)
	return scanItem(row)
}

// GetItemBySKU fetches one item by SKU with aggregated company IDs.
func (q *Queries) GetItemBySKU(ctx context.Context, sku string) (*domain.Item, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+itemColumns+`,
			COALESCE(array_agg(ic.company_id) FILTER (WHERE ic.company_id IS NOT NULL), '{}') AS company_ids
		FROM items i
		LEFT JOIN item_companies ic ON ic.item_id = i.id
		WHERE i.sku = $1
		GROUP BY i.id`, sku)
	return scanItem(row)
}

// ListItems fetches all active items linked to a company.
func (q *Queries) ListItems(ctx context.Context, companyID int64) ([]domain.Item, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+itemColumns+`,
			COALESCE(array_agg(all_ic.company_id) FILTER (WHERE all_ic.company_id IS NOT NULL), '{}') AS company_ids
		FROM items i
		JOIN item_companies ic ON ic.item_id = i.id AND ic.company_id = $1
		LEFT JOIN item_companies all_ic ON all_ic.item_id = i.id
		WHERE i.is_active
		GROUP BY i.id
		ORDER BY i.name`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// InsertItem creates an item and its company links.
func (q *Queries) InsertItem(ctx context.Context, params domain.CreateItemParams) (*domain.Item, error) {
	var it domain.Item
	err := q.db.QueryRow(ctx, `
		INSERT INTO items (name, description, sku, hsn_code, unit, price, tax_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, description, sku, hsn_code, unit, price, tax_rate,
			is_active, created_at, updated_at`,
		params.Name, params.Description, params.SKU, params.HSNCode, params.Unit,
		params.Price, params.TaxRate,
	).Scan(
		&it.ID, &it.Name, &it.Description, &it.SKU, &it.HSNCode, &it.Unit,
		&it.Price, &it.TaxRate, &it.IsActive, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, companyID := range params.CompanyIDs {
		_, err := q.db.Exec(ctx, `
			INSERT INTO item_companies (item_id, company_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, it.ID, companyID)
		if err != nil {
			return nil, err
		}
	}
	it.CompanyIDs = params.CompanyIDs

	return &it, nil
}
