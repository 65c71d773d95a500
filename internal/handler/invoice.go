package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/vikasavn/dukaan/internal/domain"
)

// InvoiceLineRequest is one line of an invoice creation request.
type InvoiceLineRequest struct {
	ItemID    int64            `json:"item_id" validate:"required"`
	CompanyID int64            `json:"company_id"`
	Quantity  decimal.Decimal  `json:"quantity" validate:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	CessRate  decimal.Decimal  `json:"cess_rate"`
}

// CreateInvoiceRequest is the payload for POST /invoices.
type CreateInvoiceRequest struct {
	CompanyID int64 `json:"company_id" validate:"required"`
	StoreID   int64 `json:"store_id" validate:"required"`
	CreatedBy int64 `json:"created_by" validate:"required"`

	InvoiceDate *time.Time `json:"invoice_date"`
	DueDate     *time.Time `json:"due_date"`

	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`
	CustomerCity    string `json:"customer_city"`
	CustomerState   string `json:"customer_state"`
	CustomerPincode string `json:"customer_pincode"`
	CustomerGSTIN   string `json:"customer_gstin"`

	PlaceOfSupply  string     `json:"place_of_supply"`
	TransportMode  string     `json:"transport_mode"`
	VehicleNumber  string     `json:"vehicle_number"`
	LRNumber       string     `json:"lr_number"`
	EwayBillNumber string     `json:"eway_bill_number"`
	PONumber       string     `json:"po_number"`
	DeliveryDate   *time.Time `json:"delivery_date"`

	CessAmount decimal.Decimal `json:"cess_amount"`
	TCSAmount  decimal.Decimal `json:"tcs_amount"`

	Notes string `json:"notes"`
	Terms string `json:"terms"`

	Items []InvoiceLineRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateInvoice handles POST /api/v1/invoices.
func (h *Handler) CreateInvoice(c echo.Context) error {
	var req CreateInvoiceRequest
	if err := h.bind(c, &req); err != nil {
		return h.errorResponse(c, err)
	}

	items := make([]domain.CreateInvoiceItemParams, len(req.Items))
	for i, line := range req.Items {
		items[i] = domain.CreateInvoiceItemParams{
			ItemID:    line.ItemID,
			CompanyID: line.CompanyID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			CessRate:  line.CessRate,
		}
	}

	detail, err := h.invoice.CreateInvoice(c.Request().Context(), domain.CreateInvoiceParams{
		CompanyID: req.CompanyID,
		StoreID:   req.StoreID,
		CreatedBy: req.CreatedBy,

		InvoiceDate: req.InvoiceDate,
		DueDate:     req.DueDate,

		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		CustomerCity:    req.CustomerCity,
		CustomerState:   req.CustomerState,
		CustomerPincode: req.CustomerPincode,
		CustomerGSTIN:   req.CustomerGSTIN,

		PlaceOfSupply:  req.PlaceOfSupply,
		TransportMode:  req.TransportMode,
		VehicleNumber:  req.VehicleNumber,
		LRNumber:       req.LRNumber,
		EwayBillNumber: req.EwayBillNumber,
		PONumber:       req.PONumber,
		DeliveryDate:   req.DeliveryDate,

		CessAmount: req.CessAmount,
		TCSAmount:  req.TCSAmount,

		Notes: req.Notes,
		Terms: req.Terms,

		Items: items,
	})
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, detail)
}

// GetInvoice handles GET /api/v1/invoices/:id.
func (h *Handler) GetInvoice(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}
	detail, err := h.invoice.GetInvoice(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// GetInvoiceByNumber handles GET /api/v1/invoices/number/:number.
func (h *Handler) GetInvoiceByNumber(c echo.Context) error {
	number := c.Param("number")
	if number == "" {
		return h.errorResponse(c, domain.Invalid("invoice.get_by_number", "invoice number is required"))
	}
	detail, err := h.invoice.GetInvoiceByNumber(c.Request().Context(), number)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// ListInvoices handles GET /api/v1/companies/:id/invoices.
func (h *Handler) ListInvoices(c echo.Context) error {
	companyID, err := pathID(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 32)
	offset, _ := strconv.ParseInt(c.QueryParam("offset"), 10, 32)

	summaries, err := h.invoice.ListInvoices(c.Request().Context(), companyID, int32(limit), int32(offset))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"invoices": summaries})
}

// UpdateInvoiceStatusRequest is the payload for PATCH /invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateInvoiceStatus handles PATCH /api/v1/invoices/:id/status.
func (h *Handler) UpdateInvoiceStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}

	var req UpdateInvoiceStatusRequest
	if err := h.bind(c, &req); err != nil {
		return h.errorResponse(c, err)
	}

	if err := h.invoice.UpdateInvoiceStatus(c.Request().Context(), id, req.Status); err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": req.Status})
}
