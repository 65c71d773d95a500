package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/vikasavn/dukaan/internal/domain"
)

const inventoryColumns = `id, item_id, store_id, company_id, quantity,
	min_stock_level, max_stock_level, last_updated`

func scanInventory(row pgx.Row) (*domain.StoreInventory, error) {
	var si domain.StoreInventory
	err := row.Scan(
		&si.ID, &si.ItemID, &si.StoreID, &si.CompanyID, &si.Quantity,
		&si.MinStockLevel, &si.MaxStockLevel, &si.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &si, nil
}

// GetInventory fetches one inventory row without locking.
func (q *Queries) GetInventory(ctx context.Context, itemID, storeID, companyID int64) (*domain.StoreInventory, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+inventoryColumns+`
		FROM store_inventories
		WHERE item_id = $1 AND store_id = $2 AND company_id = $3`,
		itemID, storeID, companyID)
	return scanInventory(row)
}

// GetInventoryForUpdate fetches one inventory row with a row-level write
// lock, serializing concurrent mutations against the same stock.
func (q *Queries) GetInventoryForUpdate(ctx context.Context, itemID, storeID, companyID int64) (*domain.StoreInventory, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+inventoryColumns+`
		FROM store_inventories
		WHERE item_id = $1 AND store_id = $2 AND company_id = $3
		FOR UPDATE`,
		itemID, storeID, companyID)
	return scanInventory(row)
}

// UpsertInventoryForUpdate fetches the inventory row with a write lock,
// creating it with zero stock levels when absent. Used by stocking actions
// that lazily materialize the row.
func (q *Queries) UpsertInventoryForUpdate(ctx context.Context, itemID, storeID, companyID int64) (*domain.StoreInventory, error) {
	// The no-op update on conflict makes INSERT ... RETURNING yield the row
	// either way; the following FOR UPDATE select takes the lock.
	_, err := q.db.Exec(ctx, `
		INSERT INTO store_inventories (item_id, store_id, company_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_id, store_id, company_id) DO NOTHING`,
		itemID, storeID, companyID)
	if err != nil {
		return nil, err
	}
	return q.GetInventoryForUpdate(ctx, itemID, storeID, companyID)
}

// SetInventoryQuantity writes the new on-hand quantity.
func (q *Queries) SetInventoryQuantity(ctx context.Context, inventoryID int64, quantity decimal.Decimal) error {
	_, err := q.db.Exec(ctx, `
		UPDATE store_inventories
		SET quantity = $2, last_updated = now()
		WHERE id = $1`, inventoryID, quantity)
	return err
}

// SetInventoryLevels writes min/max stock levels.
func (q *Queries) SetInventoryLevels(ctx context.Context, inventoryID int64, minLevel, maxLevel *decimal.Decimal) error {
	_, err := q.db.Exec(ctx, `
		UPDATE store_inventories
		SET min_stock_level = COALESCE($2, min_stock_level),
			max_stock_level = COALESCE($3, max_stock_level),
			last_updated = now()
		WHERE id = $1`, inventoryID, minLevel, maxLevel)
	return err
}

// InsertTransaction appends one immutable ledger entry.
func (q *Queries) InsertTransaction(ctx context.Context, inventoryID int64, txType string, quantity decimal.Decimal, notes string) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO inventory_transactions (inventory_id, transaction_type, quantity, notes)
		VALUES ($1, $2, $3, $4)`,
		inventoryID, txType, quantity, notes)
	return err
}

// ListStoreInventory fetches all inventory rows at a store with item detail.
func (q *Queries) ListStoreInventory(ctx context.Context, storeID int64) ([]domain.InventoryItem, error) {
	return q.listInventory(ctx, `
		SELECT si.id, si.item_id, si.store_id, si.company_id, si.quantity,
			si.min_stock_level, si.max_stock_level, si.last_updated,
			i.name, i.sku, i.unit
		FROM store_inventories si
		JOIN items i ON i.id = si.item_id
		WHERE si.store_id = $1
		ORDER BY i.name`, storeID)
}

// ListLowStock fetches inventory rows at or below their minimum level.
func (q *Queries) ListLowStock(ctx context.Context, storeID int64) ([]domain.InventoryItem, error) {
	return q.listInventory(ctx, `
		SELECT si.id, si.item_id, si.store_id, si.company_id, si.quantity,
			si.min_stock_level, si.max_stock_level, si.last_updated,
			i.name, i.sku, i.unit
		FROM store_inventories si
		JOIN items i ON i.id = si.item_id
		WHERE si.store_id = $1 AND si.quantity <= si.min_stock_level
		ORDER BY i.name`, storeID)
}

func (q *Queries) listInventory(ctx context.Context, sql string, args ...any) ([]domain.InventoryItem, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var ii domain.InventoryItem
		err := rows.Scan(
			&ii.ID, &ii.ItemID, &ii.StoreID, &ii.CompanyID, &ii.Quantity,
			&ii.MinStockLevel, &ii.MaxStockLevel, &ii.LastUpdated,
			&ii.ItemName, &ii.ItemSKU, &ii.ItemUnit,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, ii)
	}
	return items, rows.Err()
}

// ListTransactions fetches the newest ledger entries for an inventory row.
func (q *Queries) ListTransactions(ctx context.Context, inventoryID int64, limit int32) ([]domain.InventoryTransaction, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, inventory_id, transaction_type, quantity, notes, created_at
		FROM inventory_transactions
		WHERE inventory_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, inventoryID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.InventoryTransaction
	for rows.Next() {
		var t domain.InventoryTransaction
		err := rows.Scan(&t.ID, &t.InventoryID, &t.TransactionType, &t.Quantity, &t.Notes, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
