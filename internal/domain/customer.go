package domain

import "time"

// Customer types.
const (
	CustomerTypeRetail    = "retail"
	CustomerTypeWholesale = "wholesale"
)

// Walk-in defaults applied when an invoice is raised without customer detail.
const (
	WalkInCustomerName = "Walk-in Customer"
	WalkInPhone        = "0000000000"
	WalkInAddress      = "N/A"
	WalkInCity         = "Unknown"
	WalkInPincode      = "000000"
)

// Customer-related domain errors.
var (
	ErrCustomerNotFound = &Error{Code: ENOTFOUND, Message: "Customer not found"}
)

// Customer belongs to one company. Customers are deduplicated on
// (company, name): invoicing the same name twice reuses the record.
type Customer struct {
	ID           int64     `json:"id"`
	CompanyID    int64     `json:"company_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Pincode      string    `json:"pincode"`
	GSTIN        string    `json:"gstin"`
	CustomerType string    `json:"customer_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
