package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/vikasavn/dukaan/internal/domain"
)

// AddStockRequest is the payload for POST /inventory/add.
type AddStockRequest struct {
	ItemID    int64           `json:"item_id" validate:"required"`
	StoreID   int64           `json:"store_id" validate:"required"`
	CompanyID int64           `json:"company_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	Notes     string          `json:"notes"`
}

// AddStock handles POST /api/v1/inventory/add.
func (h *Handler) AddStock(c echo.Context) error {
	var req AddStockRequest
	if err := h.bind(c, &req); err != nil {
		return h.errorResponse(c, err)
	}

	inv, err := h.inventory.AddStock(c.Request().Context(), domain.AddStockParams{
		ItemID:    req.ItemID,
		StoreID:   req.StoreID,
		CompanyID: req.CompanyID,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
	})
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

// SetStockRequest is the payload for POST /inventory/set.
type SetStockRequest struct {
	ItemID        int64            `json:"item_id" validate:"required"`
	StoreID       int64            `json:"store_id" validate:"required"`
	CompanyID     int64            `json:"company_id" validate:"required"`
	Quantity      decimal.Decimal  `json:"quantity"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level"`
	MaxStockLevel *decimal.Decimal `json:"max_stock_level"`
	Notes         string           `json:"notes"`
}

// SetStock handles POST /api/v1/inventory/set.
func (h *Handler) SetStock(c echo.Context) error {
	var req SetStockRequest
	if err := h.bind(c, &req); err != nil {
		return h.errorResponse(c, err)
	}

	inv, err := h.inventory.SetStock(c.Request().Context(), domain.SetStockParams{
		ItemID:        req.ItemID,
		StoreID:       req.StoreID,
		CompanyID:     req.CompanyID,
		Quantity:      req.Quantity,
		MinStockLevel: req.MinStockLevel,
		MaxStockLevel: req.MaxStockLevel,
		Notes:         req.Notes,
	})
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

// GetInventory handles GET /api/v1/inventory?item_id=&store_id=&company_id=.
func (h *Handler) GetInventory(c echo.Context) error {
	itemID, err1 := strconv.ParseInt(c.QueryParam("item_id"), 10, 64)
	storeID, err2 := strconv.ParseInt(c.QueryParam("store_id"), 10, 64)
	companyID, err3 := strconv.ParseInt(c.QueryParam("company_id"), 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return h.errorResponse(c, domain.Invalid("inventory.get",
			"item_id, store_id, and company_id query parameters are required"))
	}

	inv, err := h.inventory.GetInventory(c.Request().Context(), itemID, storeID, companyID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

// ListStoreInventory handles GET /api/v1/stores/:id/inventory.
func (h *Handler) ListStoreInventory(c echo.Context) error {
	storeID, err := pathID(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}
	items, err := h.inventory.ListStoreInventory(c.Request().Context(), storeID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"inventory": items})
}

// ListLowStock handles GET /api/v1/stores/:id/inventory/low-stock.
func (h *Handler) ListLowStock(c echo.Context) error {
	storeID, err := pathID(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}
	items, err := h.inventory.ListLowStock(c.Request().Context(), storeID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"inventory": items})
}

// ListTransactions handles GET /api/v1/inventory/:id/transactions.
func (h *Handler) ListTransactions(c echo.Context) error {
	inventoryID, err := pathID(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 32)

	txs, err := h.inventory.ListTransactions(c.Request().Context(), inventoryID, int32(limit))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"transactions": txs})
}
