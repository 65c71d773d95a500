package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/vikasavn/dukaan/internal/domain"
)

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("request.path", "invalid "+name)
	}
	return id, nil
}

// CreateCompanyRequest is the payload for POST /companies.
type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state" validate:"required"`
	Pincode     string `json:"pincode"`
	Phone       string `json:"phone"`
	Email       string `json:"email" validate:"omitempty,email"`
	GSTIN       string `json:"gstin" validate:"required,len=15"`
	PAN         string `json:"pan"`
	StateCode   string `json:"state_code"`
	OwnerID     int64  `json:"owner_id" validate:"required"`
}

// CreateCompany handles POST /api/v1/companies.
func (h *Handler) CreateCompany(c echo.Context) error {
	var req CreateCompanyRequest
	if err := h.bind(c, &req); err != nil {
		return h.errorResponse(c, err)
	}

	company, err := h.company.CreateCompany(c.Request().Context(), domain.CreateCompanyParams{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Pincode:     req.Pincode,
		Phone:       req.Phone,
		Email:       req.Email,
		GSTIN:       req.GSTIN,
		PAN:         req.PAN,
		StateCode:   req.StateCode,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, company)
}

// GetCompany handles GET /api/v1/companies/:id.
func (h *Handler) GetCompany(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}
	company, err := h.company.GetCompany(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, company)
}

// ListCompanies handles GET /api/v1/companies?owner_id=N.
func (h *Handler) ListCompanies(c echo.Context) error {
	ownerID, err := strconv.ParseInt(c.QueryParam("owner_id"), 10, 64)
	if err != nil || ownerID <= 0 {
		return h.errorResponse(c, domain.Invalid("company.list", "owner_id query parameter is required"))
	}
	companies, err := h.company.ListCompanies(c.Request().Context(), ownerID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"companies": companies})
}

// CreateStoreRequest is the payload for POST /stores.
type CreateStoreRequest struct {
	CompanyID               int64  `json:"company_id" validate:"required"`
	Name                    string `json:"name" validate:"required"`
	Description             string `json:"description"`
	Address                 string `json:"address"`
	City                    string `json:"city"`
	State                   string `json:"state"`
	Pincode                 string `json:"pincode"`
	Phone                   string `json:"phone"`
	Email                   string `json:"email" validate:"omitempty,email"`
	InvoiceLayoutPreference string `json:"invoice_layout_preference" validate:"omitempty,oneof=classic traditional"`
}

// CreateStore handles POST /api/v1/stores.
func (h *Handler) CreateStore(c echo.Context) error {
	var req CreateStoreRequest
	if err := h.bind(c, &req); err != nil {
		return h.errorResponse(c, err)
	}

	store, err := h.store.CreateStore(c.Request().Context(), domain.CreateStoreParams{
		CompanyID:               req.CompanyID,
		Name:                    req.Name,
		Description:             req.Description,
		Address:                 req.Address,
		City:                    req.City,
		State:                   req.State,
		Pincode:                 req.Pincode,
		Phone:                   req.Phone,
		Email:                   req.Email,
		InvoiceLayoutPreference: req.InvoiceLayoutPreference,
	})
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, store)
}

// GetStore handles GET /api/v1/stores/:id.
func (h *Handler) GetStore(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}
	store, err := h.store.GetStore(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, store)
}

// ListStores handles GET /api/v1/companies/:id/stores.
func (h *Handler) ListStores(c echo.Context) error {
	companyID, err := pathID(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}
	stores, err := h.store.ListStores(c.Request().Context(), companyID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"stores": stores})
}

// CreateItemRequest is the payload for POST /items.
type CreateItemRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	SKU         string          `json:"sku" validate:"required"`
	HSNCode     string          `json:"hsn_code"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	CompanyIDs  []int64         `json:"company_ids" validate:"required,min=1"`
}

// CreateItem handles POST /api/v1/items.
func (h *Handler) CreateItem(c echo.Context) error {
	var req CreateItemRequest
	if err := h.bind(c, &req); err != nil {
		return h.errorResponse(c, err)
	}

	item, err := h.item.CreateItem(c.Request().Context(), domain.CreateItemParams{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		HSNCode:     req.HSNCode,
		Unit:        req.Unit,
		Price:       req.Price,
		TaxRate:     req.TaxRate,
		CompanyIDs:  req.CompanyIDs,
	})
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// GetItem handles GET /api/v1/items/:id.
func (h *Handler) GetItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}
	item, err := h.item.GetItem(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// GetItemBySKU handles GET /api/v1/items/sku/:sku.
func (h *Handler) GetItemBySKU(c echo.Context) error {
	sku := c.Param("sku")
	if sku == "" {
		return h.errorResponse(c, domain.Invalid("item.get_by_sku", "sku is required"))
	}
	item, err := h.item.GetItemBySKU(c.Request().Context(), sku)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// ListItems handles GET /api/v1/companies/:id/items.
func (h *Handler) ListItems(c echo.Context) error {
	companyID, err := pathID(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}
	items, err := h.item.ListItems(c.Request().Context(), companyID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}
