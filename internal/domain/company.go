package domain

import (
	"context"
	"time"
)

// Company-related domain errors.
var (
	ErrCompanyNotFound = &Error{Code: ENOTFOUND, Message: "Company not found"}
	ErrDuplicateGSTIN  = &Error{Code: ECONFLICT, Message: "A company with this GSTIN already exists"}
)

// Company is the tenant-owning entity. Stores, customers, and invoices all
// hang off a company; items are shared across companies via a many-to-many
// relationship.
type Company struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	GSTIN       string `json:"gstin"`
	PAN         string `json:"pan"`
	StateCode   string `json:"state_code"`

	// Banking details printed on invoices.
	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
	BankIFSC          string `json:"bank_ifsc"`
	BankBranch        string `json:"bank_branch"`

	OwnerID   int64     `json:"owner_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyService manages companies.
type CompanyService interface {
	GetCompany(ctx context.Context, id int64) (*Company, error)
	ListCompanies(ctx context.Context, ownerID int64) ([]Company, error)
	CreateCompany(ctx context.Context, params CreateCompanyParams) (*Company, error)
}

// CreateCompanyParams contains parameters for creating a company.
type CreateCompanyParams struct {
	Name        string
	Description string
	Address     string
	City        string
	State       string
	Pincode     string
	Phone       string
	Email       string
	GSTIN       string
	PAN         string
	StateCode   string
	OwnerID     int64
}
