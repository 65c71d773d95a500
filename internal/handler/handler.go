// Package handler exposes the HTTP API over echo.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vikasavn/dukaan/internal/domain"
)

// Handler bundles the services behind the HTTP API.
type Handler struct {
	company   domain.CompanyService
	store     domain.StoreService
	item      domain.ItemService
	inventory domain.InventoryService
	transfer  domain.TransferService
	invoice   domain.InvoiceService
	logger    *slog.Logger
	validate  *validator.Validate
}

// New creates the API handler.
func New(
	company domain.CompanyService,
	store domain.StoreService,
	item domain.ItemService,
	inventory domain.InventoryService,
	transfer domain.TransferService,
	invoice domain.InvoiceService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		company:   company,
		store:     store,
		item:      item,
		inventory: inventory,
		transfer:  transfer,
		invoice:   invoice,
		logger:    logger,
		validate:  validator.New(),
	}
}

// Register mounts all routes.
func (h *Handler) Register(e *echo.Echo) {
	e.Use(requestContext)

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")

	v1.POST("/companies", h.CreateCompany)
	v1.GET("/companies", h.ListCompanies)
	v1.GET("/companies/:id", h.GetCompany)
	v1.GET("/companies/:id/stores", h.ListStores)
	v1.GET("/companies/:id/items", h.ListItems)
	v1.GET("/companies/:id/invoices", h.ListInvoices)

	v1.POST("/stores", h.CreateStore)
	v1.GET("/stores/:id", h.GetStore)
	v1.GET("/stores/:id/inventory", h.ListStoreInventory)
	v1.GET("/stores/:id/inventory/low-stock", h.ListLowStock)
	v1.GET("/stores/:id/transfers", h.ListTransfers)

	v1.POST("/items", h.CreateItem)
	v1.GET("/items/:id", h.GetItem)
	v1.GET("/items/sku/:sku", h.GetItemBySKU)

	v1.GET("/inventory", h.GetInventory)
	v1.POST("/inventory/add", h.AddStock)
	v1.POST("/inventory/set", h.SetStock)
	v1.GET("/inventory/:id/transactions", h.ListTransactions)

	v1.POST("/transfers", h.CreateTransfer)
	v1.POST("/transfers/batch", h.CreateBatchTransfer)
	v1.GET("/transfers/batch/:batchId", h.GetBatch)

	v1.POST("/invoices", h.CreateInvoice)
	v1.GET("/invoices/:id", h.GetInvoice)
	v1.GET("/invoices/number/:number", h.GetInvoiceByNumber)
	v1.PATCH("/invoices/:id/status", h.UpdateInvoiceStatus)
}

// requestContext copies the echo request ID into the request context so
// services and the error log can reference it.
func requestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		if rid == "" {
			rid = c.Request().Header.Get(echo.HeaderXRequestID)
		}
		if rid != "" {
			ctx := domain.WithRequestID(c.Request().Context(), rid)
			c.SetRequest(c.Request().WithContext(ctx))
		}
		return next(c)
	}
}

// Health reports service liveness.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// bind decodes and validates a request payload.
func (h *Handler) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Invalid("request.bind", "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = "failed validation on '" + fe.Tag() + "'"
			}
			return &domain.ValidationError{Op: "request.validate", Fields: fields}
		}
		return domain.Invalid("request.validate", "invalid request")
	}
	return nil
}

// errorResponse maps domain errors to HTTP responses.
func (h *Handler) errorResponse(c echo.Context, err error) error {
	var se *domain.StockError
	if errors.As(err, &se) {
		return c.JSON(http.StatusConflict, map[string]any{
			"error": "insufficient_inventory",
			"detail": map[string]any{
				"item_id":            se.ItemID,
				"item_name":          se.ItemName,
				"available_quantity": se.Available,
				"requested_quantity": se.Requested,
				"shortage":           se.Shortage(),
			},
			"message": se.Message(),
		})
	}

	var bve *domain.BatchValidationError
	if errors.As(err, &bve) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":       "batch_validation_failed",
			"errors":      bve.Lines,
			"total_items": bve.TotalItems,
		})
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "validation_failed",
			"fields": ve.Fields,
		})
	}

	code := domain.ErrorCode(err)
	status := http.StatusInternalServerError
	switch code {
	case domain.EINVALID:
		status = http.StatusBadRequest
	case domain.ENOTFOUND:
		status = http.StatusNotFound
	case domain.ECONFLICT, domain.EINSUFFICIENT:
		status = http.StatusConflict
	case domain.EUNAUTHORIZED:
		status = http.StatusUnauthorized
	case domain.EFORBIDDEN:
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			"op", domain.ErrorOp(err),
			"request_id", domain.RequestIDFromContext(c.Request().Context()),
			"error", err,
		)
	}

	return c.JSON(status, map[string]any{
		"error":   code,
		"message": domain.ErrorMessage(err),
	})
}
