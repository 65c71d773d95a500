package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/vikasavn/dukaan/internal/domain"
)

// CreateTransferRequest is the payload for POST /transfers.
type CreateTransferRequest struct {
	ItemID      int64           `json:"item_id" validate:"required"`
	CompanyID   int64           `json:"company_id" validate:"required"`
	FromStoreID int64           `json:"from_store_id" validate:"required"`
	ToStoreID   int64           `json:"to_store_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Notes       string          `json:"notes"`
	InitiatedBy int64           `json:"initiated_by" validate:"required"`
}

// CreateTransfer handles POST /api/v1/transfers.
func (h *Handler) CreateTransfer(c echo.Context) error {
	var req CreateTransferRequest
	if err := h.bind(c, &req); err != nil {
		return h.errorResponse(c, err)
	}

	transfer, err := h.transfer.CreateTransfer(c.Request().Context(), domain.CreateTransferParams{
		ItemID:      req.ItemID,
		CompanyID:   req.CompanyID,
		FromStoreID: req.FromStoreID,
		ToStoreID:   req.ToStoreID,
		Quantity:    req.Quantity,
		Notes:       req.Notes,
		InitiatedBy: req.InitiatedBy,
	})
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, transfer)
}

// BatchLineRequest is one line of a batch transfer request.
type BatchLineRequest struct {
	ItemID    int64           `json:"item_id" validate:"required"`
	CompanyID int64           `json:"company_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// CreateBatchTransferRequest is the payload for POST /transfers/batch.
type CreateBatchTransferRequest struct {
	FromStoreID int64              `json:"from_store_id" validate:"required"`
	ToStoreID   int64              `json:"to_store_id" validate:"required"`
	Items       []BatchLineRequest `json:"items" validate:"required,min=1,dive"`
	Notes       string             `json:"notes"`
	InitiatedBy int64              `json:"initiated_by" validate:"required"`
}

// CreateBatchTransfer handles POST /api/v1/transfers/batch.
func (h *Handler) CreateBatchTransfer(c echo.Context) error {
	var req CreateBatchTransferRequest
	if err := h.bind(c, &req); err != nil {
		return h.errorResponse(c, err)
	}

	lines := make([]domain.BatchLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = domain.BatchLine{
			ItemID:    item.ItemID,
			CompanyID: item.CompanyID,
			Quantity:  item.Quantity,
		}
	}

	result, err := h.transfer.CreateBatchTransfer(c.Request().Context(), domain.CreateBatchParams{
		FromStoreID: req.FromStoreID,
		ToStoreID:   req.ToStoreID,
		Items:       lines,
		Notes:       req.Notes,
		InitiatedBy: req.InitiatedBy,
	})
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message":        fmt.Sprintf("%d items transferred successfully", result.TransferCount),
		"batch_id":       result.BatchID,
		"transfer_count": result.TransferCount,
		"total_items":    result.TotalItems,
	})
}

// ListTransfers handles GET /api/v1/stores/:id/transfers.
func (h *Handler) ListTransfers(c echo.Context) error {
	storeID, err := pathID(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 32)

	transfers, err := h.transfer.ListTransfers(c.Request().Context(), storeID, int32(limit))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"transfers": transfers})
}

// GetBatch handles GET /api/v1/transfers/batch/:batchId.
func (h *Handler) GetBatch(c echo.Context) error {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		return h.errorResponse(c, domain.Invalid("transfer.get_batch", "invalid batch id"))
	}

	batch, transfers, err := h.transfer.GetBatch(c.Request().Context(), batchID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"batch":     batch,
		"transfers": transfers,
	})
}
