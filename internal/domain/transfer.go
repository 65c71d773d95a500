package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer and batch lifecycle statuses.
const (
	TransferStatusPending   = "pending"
	TransferStatusCompleted = "completed"
	TransferStatusCancelled = "cancelled"
)

// Transfer-related domain errors.
var (
	ErrTransferNotFound = &Error{Code: ENOTFOUND, Message: "Transfer not found"}
	ErrBatchNotFound    = &Error{Code: ENOTFOUND, Message: "Transfer batch not found"}
	ErrEmptyBatch       = &Error{Code: EINVALID, Message: "Batch must contain at least one item"}
)

// InventoryTransfer is a single item movement between two distinct stores
// for one company. Transfers optionally belong to a batch.
type InventoryTransfer struct {
	ID          int64           `json:"id"`
	BatchID     *int64          `json:"batch_id,omitempty"`
	ItemID      int64           `json:"item_id"`
	CompanyID   int64           `json:"company_id"`
	FromStoreID int64           `json:"from_store_id"`
	ToStoreID   int64           `json:"to_store_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
	InitiatedBy int64           `json:"initiated_by"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// TransferBatch groups transfers created together between one store pair.
type TransferBatch struct {
	ID          int64      `json:"id"`
	BatchID     uuid.UUID  `json:"batch_id"`
	FromStoreID int64      `json:"from_store_id"`
	ToStoreID   int64      `json:"to_store_id"`
	Notes       string     `json:"notes"`
	Status      string     `json:"status"`
	InitiatedBy int64      `json:"initiated_by"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TransferService moves stock between stores.
//
// The single-transfer path is all-or-nothing: any failure rolls the whole
// movement back and the transfer is recorded as cancelled. The batch path
// pre-validates every line before touching anything, then attempts each line
// independently; a line that fails the execution-time re-check is cancelled
// on its own while the rest of the batch proceeds.
type TransferService interface {
	// CreateTransfer executes a single atomic stock movement.
	CreateTransfer(ctx context.Context, params CreateTransferParams) (*InventoryTransfer, error)

	// CreateBatchTransfer validates and executes a multi-line movement under
	// one batch.
	CreateBatchTransfer(ctx context.Context, params CreateBatchParams) (*BatchResult, error)

	// ListTransfers returns transfers where the store is source or
	// destination, newest first.
	ListTransfers(ctx context.Context, storeID int64, limit int32) ([]InventoryTransfer, error)

	// GetBatch returns a batch with its transfers.
	GetBatch(ctx context.Context, batchID uuid.UUID) (*TransferBatch, []InventoryTransfer, error)
}

// CreateTransferParams contains parameters for a single transfer.
type CreateTransferParams struct {
	ItemID      int64
	CompanyID   int64
	FromStoreID int64
	ToStoreID   int64
	Quantity    decimal.Decimal
	Notes       string
	InitiatedBy int64
}

// CreateBatchParams contains parameters for a batch transfer.
type CreateBatchParams struct {
	FromStoreID int64
	ToStoreID   int64
	Items       []BatchLine
	Notes       string
	InitiatedBy int64
}

// BatchLine is one requested movement within a batch.
type BatchLine struct {
	ItemID    int64
	CompanyID int64
	Quantity  decimal.Decimal
}

// BatchLineError describes why one batch line was rejected during
// pre-validation.
type BatchLineError struct {
	ItemIndex int             `json:"item_index"`
	ItemID    int64           `json:"item_id"`
	ItemName  string          `json:"item_name,omitempty"`
	Error     string          `json:"error"`
	Available decimal.Decimal `json:"available_quantity,omitempty"`
	Requested decimal.Decimal `json:"requested_quantity,omitempty"`
}

// BatchValidationError rejects an entire batch before any mutation.
type BatchValidationError struct {
	Lines      []BatchLineError
	TotalItems int
}

// Error implements the error interface.
func (e *BatchValidationError) Error() string {
	return "batch transfer validation failed"
}

// BatchResult reports the outcome of an executed batch. TransferCount may be
// lower than TotalItems when individual lines were cancelled at execution
// time.
type BatchResult struct {
	BatchID       uuid.UUID `json:"batch_id"`
	TransferCount int       `json:"transfer_count"`
	TotalItems    int       `json:"total_items"`
}
