package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Inventory transaction types. Transactions are append-only audit records;
// they are never mutated after creation.
const (
	TxTypeAdd        = "add"
	TxTypeRemove     = "remove"
	TxTypeTransfer   = "transfer"
	TxTypeSale       = "sale"
	TxTypeAdjustment = "adjustment"
)

// Inventory-related domain errors.
var (
	ErrInventoryNotFound = &Error{Code: ENOTFOUND, Message: "No inventory record for this item at this store"}
	ErrNegativeQuantity  = &Error{Code: EINVALID, Message: "Quantity must be positive"}
)

// StoreInventory is the mutable stock ledger head for one
// (item, store, company) triple. Rows are created lazily on the first
// stocking action and mutated thereafter.
type StoreInventory struct {
	ID            int64           `json:"id"`
	ItemID        int64           `json:"item_id"`
	StoreID       int64           `json:"store_id"`
	CompanyID     int64           `json:"company_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	MaxStockLevel decimal.Decimal `json:"max_stock_level"`
	LastUpdated   time.Time       `json:"last_updated"`
}

// IsLowStock reports whether on-hand quantity has fallen to or below the
// configured minimum.
func (si *StoreInventory) IsLowStock() bool {
	return si.Quantity.LessThanOrEqual(si.MinStockLevel)
}

// InventoryTransaction is one append-only ledger entry. Quantity is signed:
// negative for deductions, positive for additions.
type InventoryTransaction struct {
	ID              int64           `json:"id"`
	InventoryID     int64           `json:"inventory_id"`
	TransactionType string          `json:"transaction_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
}

// InventoryService is the authoritative per-(item, store, company) stock
// ledger. Every mutation commits together with its transaction record, and
// concurrent deductions against one row are serialized so committed quantity
// never goes negative.
type InventoryService interface {
	// AddStock increments on-hand quantity, creating the inventory row if
	// absent.
	AddStock(ctx context.Context, params AddStockParams) (*StoreInventory, error)

	// SetStock sets the absolute quantity, recording the signed delta as a
	// single add/remove/adjustment transaction. A zero delta writes no
	// transaction.
	SetStock(ctx context.Context, params SetStockParams) (*StoreInventory, error)

	// GetInventory returns the inventory row for one (item, store, company).
	GetInventory(ctx context.Context, itemID, storeID, companyID int64) (*StoreInventory, error)

	// ListStoreInventory returns all inventory rows at a store.
	ListStoreInventory(ctx context.Context, storeID int64) ([]InventoryItem, error)

	// ListLowStock returns inventory rows at or below their minimum level.
	ListLowStock(ctx context.Context, storeID int64) ([]InventoryItem, error)

	// ListTransactions returns the transaction history for an inventory row,
	// newest first.
	ListTransactions(ctx context.Context, inventoryID int64, limit int32) ([]InventoryTransaction, error)
}

// AddStockParams contains parameters for adding stock.
type AddStockParams struct {
	ItemID    int64
	StoreID   int64
	CompanyID int64
	Quantity  decimal.Decimal
	Notes     string
}

// SetStockParams contains parameters for setting absolute stock.
type SetStockParams struct {
	ItemID        int64
	StoreID       int64
	CompanyID     int64
	Quantity      decimal.Decimal
	MinStockLevel *decimal.Decimal
	MaxStockLevel *decimal.Decimal
	Notes         string
}

// InventoryItem is an inventory row joined with its item for listings.
type InventoryItem struct {
	StoreInventory
	ItemName string `json:"item_name"`
	ItemSKU  string `json:"item_sku"`
	ItemUnit string `json:"item_unit"`
}
