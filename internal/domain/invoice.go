package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice lifecycle statuses.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// DefaultTerms is printed on invoices when the creator has not configured
// their own terms and conditions.
const DefaultTerms = "1. Goods once sold will not be taken back.\n" +
	"2. Interest @ 18% p.a. will be charged on delayed payments.\n" +
	"3. Subject to jurisdiction only.\n" +
	"4. All disputes subject to arbitration only."

// Invoice-related domain errors.
var (
	ErrInvoiceNotFound        = &Error{Code: ENOTFOUND, Message: "Invoice not found"}
	ErrDuplicateInvoiceNumber = &Error{Code: ECONFLICT, Message: "Invoice number already exists"}
	ErrInvalidInvoiceStatus   = &Error{Code: EINVALID, Message: "Invalid invoice status"}
	ErrNoInvoiceItems         = &Error{Code: EINVALID, Message: "Invoice must contain at least one item"}
)

// Invoice is a finalized tax document. All money fields are derived at
// creation time and never recalculated; the billing address is a snapshot of
// the request, not a live reference to the customer record.
type Invoice struct {
	ID            int64  `json:"id"`
	InvoiceNumber string `json:"invoice_number"`
	CompanyID     int64  `json:"company_id"`
	StoreID       int64  `json:"store_id"`
	CustomerID    int64  `json:"customer_id"`
	CreatedBy     int64  `json:"created_by"`

	InvoiceDate   time.Time  `json:"invoice_date"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Status        string     `json:"status"`
	PlaceOfSupply string     `json:"place_of_supply"`
	IsInterState  bool       `json:"is_inter_state"`

	// Billing address snapshot taken at creation time.
	BillingAddress string `json:"billing_address"`
	BillingCity    string `json:"billing_city"`
	BillingState   string `json:"billing_state"`
	BillingPincode string `json:"billing_pincode"`

	// Logistics detail.
	TransportMode  string     `json:"transport_mode"`
	VehicleNumber  string     `json:"vehicle_number"`
	LRNumber       string     `json:"lr_number"`
	EwayBillNumber string     `json:"eway_bill_number"`
	PONumber       string     `json:"po_number"`
	DeliveryDate   *time.Time `json:"delivery_date,omitempty"`

	// Derived money fields.
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	CGSTAmount    decimal.Decimal `json:"cgst_amount"`
	SGSTAmount    decimal.Decimal `json:"sgst_amount"`
	IGSTAmount    decimal.Decimal `json:"igst_amount"`
	CessAmount    decimal.Decimal `json:"cess_amount"`
	TCSAmount     decimal.Decimal `json:"tcs_amount"`
	RoundOff      decimal.Decimal `json:"round_off"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AmountInWords string          `json:"amount_in_words"`

	Notes     string    `json:"notes"`
	Terms     string    `json:"terms"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceItem is one invoice line. It snapshots quantity, unit price, and
// every tax rate and amount as computed at creation; catalog changes to the
// underlying item never flow back into issued invoices.
type InvoiceItem struct {
	ID        int64 `json:"id"`
	InvoiceID int64 `json:"invoice_id"`
	ItemID    int64 `json:"item_id"`
	CompanyID int64 `json:"company_id"`

	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`

	TaxRate    decimal.Decimal `json:"tax_rate"`
	CGSTRate   decimal.Decimal `json:"cgst_rate"`
	SGSTRate   decimal.Decimal `json:"sgst_rate"`
	IGSTRate   decimal.Decimal `json:"igst_rate"`
	CGSTAmount decimal.Decimal `json:"cgst_amount"`
	SGSTAmount decimal.Decimal `json:"sgst_amount"`
	IGSTAmount decimal.Decimal `json:"igst_amount"`
	CessRate   decimal.Decimal `json:"cess_rate"`
	CessAmount decimal.Decimal `json:"cess_amount"`

	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// InvoiceService creates and reads invoices. Creation is a single atomic
// unit: customer resolution, number reservation, stock deduction, tax
// computation, and totals either all commit or none do.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, params CreateInvoiceParams) (*InvoiceDetail, error)
	GetInvoice(ctx context.Context, id int64) (*InvoiceDetail, error)
	GetInvoiceByNumber(ctx context.Context, invoiceNumber string) (*InvoiceDetail, error)
	ListInvoices(ctx context.Context, companyID int64, limit, offset int32) ([]InvoiceSummary, error)
	UpdateInvoiceStatus(ctx context.Context, id int64, status string) error
}

// CreateInvoiceParams contains parameters for creating an invoice.
// Customer fields are optional; absent values fall back to walk-in defaults
// and the company's state.
type CreateInvoiceParams struct {
	CompanyID int64
	StoreID   int64
	CreatedBy int64

	InvoiceDate *time.Time
	DueDate     *time.Time

	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	CustomerCity    string
	CustomerState   string
	CustomerPincode string
	CustomerGSTIN   string

	PlaceOfSupply  string
	TransportMode  string
	VehicleNumber  string
	LRNumber       string
	EwayBillNumber string
	PONumber       string
	DeliveryDate   *time.Time

	// Invoice-level levies entered independently, not derived from lines.
	CessAmount decimal.Decimal
	TCSAmount  decimal.Decimal

	Notes string
	Terms string

	Items []CreateInvoiceItemParams
}

// CreateInvoiceItemParams is one requested invoice line. UnitPrice defaults
// to the item's catalog price when zero or absent; the tax rate always comes
// from the catalog. CompanyID falls back to the invoice's company.
type CreateInvoiceItemParams struct {
	ItemID    int64
	CompanyID int64
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal
	CessRate  decimal.Decimal
}

// InvoiceDetail aggregates an invoice with its items.
type InvoiceDetail struct {
	Invoice Invoice       `json:"invoice"`
	Items   []InvoiceItem `json:"items"`
}

// InvoiceSummary is a lightweight invoice representation for lists.
type InvoiceSummary struct {
	ID            int64           `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	StoreID       int64           `json:"store_id"`
	Status        string          `json:"status"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
}
