package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Units of measure for catalog items.
const (
	UnitKilogram   = "kg"
	UnitGram       = "g"
	UnitPiece      = "piece"
	UnitLitre      = "litre"
	UnitMillilitre = "ml"
	UnitMeter      = "meter"
	UnitCentimeter = "cm"
	UnitBox        = "box"
	UnitDozen      = "dozen"
)

// Item-related domain errors.
var (
	ErrItemNotFound     = &Error{Code: ENOTFOUND, Message: "Item not found"}
	ErrDuplicateSKU     = &Error{Code: ECONFLICT, Message: "An item with this SKU already exists"}
	ErrItemNotInCompany = &Error{Code: EINVALID, Message: "Item does not belong to the given company"}
)

// Item is a catalog entry. The same SKU can be sold under several companies
// sharing one catalog entry (many-to-many).
type Item struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	SKU         string          `json:"sku"`
	HSNCode     string          `json:"hsn_code"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`

	// CompanyIDs lists the companies this item belongs to.
	CompanyIDs []int64 `json:"company_ids"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BelongsTo reports whether the item is associated with the given company.
func (i *Item) BelongsTo(companyID int64) bool {
	for _, id := range i.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

// ItemService manages the shared item catalog.
type ItemService interface {
	GetItem(ctx context.Context, id int64) (*Item, error)
	GetItemBySKU(ctx context.Context, sku string) (*Item, error)
	ListItems(ctx context.Context, companyID int64) ([]Item, error)
	CreateItem(ctx context.Context, params CreateItemParams) (*Item, error)
}

// CreateItemParams contains parameters for creating an item.
type CreateItemParams struct {
	Name        string
	Description string
	SKU         string
	HSNCode     string
	Unit        string
	Price       decimal.Decimal
	TaxRate     decimal.Decimal
	CompanyIDs  []int64
}
