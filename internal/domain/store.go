package domain

import (
	"context"
	"time"
)

// Invoice PDF layout preferences.
const (
	LayoutClassic     = "classic"
	LayoutTraditional = "traditional"
)

// Store-related domain errors.
var (
	ErrStoreNotFound = &Error{Code: ENOTFOUND, Message: "Store not found"}
	ErrSameStore     = &Error{Code: EINVALID, Message: "Source and destination stores must be different"}
)

// Store belongs to one company and holds per-company item inventories.
type Store struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"company_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`

	// InvoiceLayoutPreference selects the PDF layout for invoices raised
	// from this store.
	InvoiceLayoutPreference string `json:"invoice_layout_preference"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreService manages stores.
type StoreService interface {
	GetStore(ctx context.Context, id int64) (*Store, error)
	ListStores(ctx context.Context, companyID int64) ([]Store, error)
	CreateStore(ctx context.Context, params CreateStoreParams) (*Store, error)
}

// CreateStoreParams contains parameters for creating a store.
type CreateStoreParams struct {
	CompanyID               int64
	Name                    string
	Description             string
	Address                 string
	City                    string
	State                   string
	Pincode                 string
	Phone                   string
	Email                   string
	InvoiceLayoutPreference string
}
