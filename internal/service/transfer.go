package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/vikasavn/dukaan/internal/domain"
	"github.com/vikasavn/dukaan/internal/telemetry"
)

// TransferService implements domain.TransferService.
type TransferService struct {
	db     txBeginner
	store  Store
	logger *slog.Logger
}

// Compile-time check that TransferService implements domain.TransferService.
var _ domain.TransferService = (*TransferService)(nil)

// NewTransferService creates the stock transfer service.
func NewTransferService(db txBeginner, store Store, logger *slog.Logger) *TransferService {
	return &TransferService{db: db, store: store, logger: logger}
}

// CreateTransfer executes a single atomic stock movement between two stores.
// Any failure rolls the movement back; a failed attempt caused by missing or
// insufficient stock is still recorded as a cancelled transfer.
func (s *TransferService) CreateTransfer(ctx context.Context, params domain.CreateTransferParams) (*domain.InventoryTransfer, error) {
	if !params.Quantity.IsPositive() {
		return nil, domain.ErrNegativeQuantity
	}
	if params.FromStoreID == params.ToStoreID {
		return nil, domain.ErrSameStore
	}

	fromStore, toStore, item, err := s.loadTransferRefs(ctx, params.FromStoreID, params.ToStoreID, params.ItemID, params.CompanyID)
	if err != nil {
		return nil, err
	}

	var transfer *domain.InventoryTransfer
	err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		q := s.store.WithTx(tx)

		t, err := q.InsertTransfer(ctx, params, nil)
		if err != nil {
			return err
		}

		err = s.moveStock(ctx, q, moveStockParams{
			itemID:      params.ItemID,
			itemName:    item.Name,
			companyID:   params.CompanyID,
			fromStoreID: params.FromStoreID,
			toStoreID:   params.ToStoreID,
			quantity:    params.Quantity,
			sourceNotes: fmt.Sprintf("Transfer to %s: %s", toStore.Name, params.Notes),
			destNotes:   fmt.Sprintf("Transfer from %s: %s", fromStore.Name, params.Notes),
		})
		if err != nil {
			return err
		}

		if err := q.SetTransferStatus(ctx, t.ID, domain.TransferStatusCompleted); err != nil {
			return err
		}
		t.Status = domain.TransferStatusCompleted
		transfer = t
		return nil
	})
	if err != nil {
		if domain.IsInsufficientStock(err) {
			// The transaction rolled back, so record the failed attempt
			// separately for the audit trail.
			s.recordCancelled(ctx, params, nil)
			if m := telemetry.Business; m != nil {
				m.TransfersCancelled.WithLabelValues(strconv.FormatInt(params.CompanyID, 10)).Inc()
				m.InsufficientStock.WithLabelValues(
					strconv.FormatInt(params.CompanyID, 10),
					strconv.FormatInt(params.FromStoreID, 10),
				).Inc()
			}
			return nil, err
		}
		return nil, domain.Internal(err, "transfer.create", "failed to execute transfer")
	}

	if m := telemetry.Business; m != nil {
		m.TransfersCompleted.WithLabelValues(strconv.FormatInt(params.CompanyID, 10)).Inc()
	}

	s.logger.Info("transfer completed",
		"transfer_id", transfer.ID,
		"item_id", params.ItemID,
		"from_store_id", params.FromStoreID,
		"to_store_id", params.ToStoreID,
		"quantity", params.Quantity.String(),
	)
	return transfer, nil
}

// CreateBatchTransfer moves multiple items between one store pair.
//
// Validation is two-phase: every line is checked against current stock before
// anything is written, and a single invalid line rejects the whole batch. At
// execution time each line runs in its own transaction; a line that fails the
// re-check is cancelled on its own and the remaining lines proceed.
func (s *TransferService) CreateBatchTransfer(ctx context.Context, params domain.CreateBatchParams) (*domain.BatchResult, error) {
	if len(params.Items) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if params.FromStoreID == params.ToStoreID {
		return nil, domain.ErrSameStore
	}

	fromStore, err := s.getStore(ctx, params.FromStoreID)
	if err != nil {
		return nil, err
	}
	toStore, err := s.getStore(ctx, params.ToStoreID)
	if err != nil {
		return nil, err
	}

	itemNames := make(map[int64]string, len(params.Items))
	var lineErrors []domain.BatchLineError
	for idx, line := range params.Items {
		if lineErr := s.validateBatchLine(ctx, idx, line, params.FromStoreID, itemNames); lineErr != nil {
			lineErrors = append(lineErrors, *lineErr)
		}
	}
	if len(lineErrors) > 0 {
		if m := telemetry.Business; m != nil {
			m.BatchesRejected.WithLabelValues(
				strconv.FormatInt(params.FromStoreID, 10),
				strconv.FormatInt(params.ToStoreID, 10),
			).Inc()
		}
		return nil, &domain.BatchValidationError{Lines: lineErrors, TotalItems: len(params.Items)}
	}

	batch, err := s.store.InsertTransferBatch(ctx, params.FromStoreID, params.ToStoreID, params.InitiatedBy, params.Notes)
	if err != nil {
		return nil, domain.Internal(err, "transfer.batch", "failed to create batch")
	}

	sourceNotes := fmt.Sprintf("Batch transfer to %s: %s", toStore.Name, params.Notes)
	destNotes := fmt.Sprintf("Batch transfer from %s: %s", fromStore.Name, params.Notes)

	completed := 0
	for _, line := range params.Items {
		lineParams := domain.CreateTransferParams{
			ItemID:      line.ItemID,
			CompanyID:   line.CompanyID,
			FromStoreID: params.FromStoreID,
			ToStoreID:   params.ToStoreID,
			Quantity:    line.Quantity,
			Notes:       params.Notes,
			InitiatedBy: params.InitiatedBy,
		}

		err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
			q := s.store.WithTx(tx)

			t, err := q.InsertTransfer(ctx, lineParams, &batch.ID)
			if err != nil {
				return err
			}

			err = s.moveStock(ctx, q, moveStockParams{
				itemID:      line.ItemID,
				itemName:    itemNames[line.ItemID],
				companyID:   line.CompanyID,
				fromStoreID: params.FromStoreID,
				toStoreID:   params.ToStoreID,
				quantity:    line.Quantity,
				sourceNotes: sourceNotes,
				destNotes:   destNotes,
			})
			if err != nil {
				return err
			}

			return q.SetTransferStatus(ctx, t.ID, domain.TransferStatusCompleted)
		})
		if err != nil {
			// Stock changed between validation and execution. Cancel this
			// line only and keep going.
			s.logger.Warn("batch line failed at execution, cancelling line",
				"batch_id", batch.BatchID,
				"item_id", line.ItemID,
				"error", err,
			)
			s.recordCancelled(ctx, lineParams, &batch.ID)
			if m := telemetry.Business; m != nil {
				m.TransfersCancelled.WithLabelValues(strconv.FormatInt(line.CompanyID, 10)).Inc()
			}
			continue
		}

		completed++
		if m := telemetry.Business; m != nil {
			m.TransfersCompleted.WithLabelValues(strconv.FormatInt(line.CompanyID, 10)).Inc()
		}
	}

	if err := s.store.SetBatchStatus(ctx, batch.ID, domain.TransferStatusCompleted); err != nil {
		return nil, domain.Internal(err, "transfer.batch", "failed to complete batch")
	}

	if m := telemetry.Business; m != nil {
		m.BatchesCreated.WithLabelValues(
			strconv.FormatInt(params.FromStoreID, 10),
			strconv.FormatInt(params.ToStoreID, 10),
		).Inc()
	}

	s.logger.Info("batch transfer executed",
		"batch_id", batch.BatchID,
		"total_items", len(params.Items),
		"transfer_count", completed,
	)
	return &domain.BatchResult{
		BatchID:       batch.BatchID,
		TransferCount: completed,
		TotalItems:    len(params.Items),
	}, nil
}

// ListTransfers returns transfers touching a store, newest first.
func (s *TransferService) ListTransfers(ctx context.Context, storeID int64, limit int32) ([]domain.InventoryTransfer, error) {
	if limit <= 0 {
		limit = 50
	}
	transfers, err := s.store.ListTransfersByStore(ctx, storeID, limit)
	if err != nil {
		return nil, domain.Internal(err, "transfer.list", "failed to list transfers")
	}
	return transfers, nil
}

// GetBatch returns a batch with its transfers.
func (s *TransferService) GetBatch(ctx context.Context, batchID uuid.UUID) (*domain.TransferBatch, []domain.InventoryTransfer, error) {
	batch, err := s.store.GetBatchByUUID(ctx, batchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domain.ErrBatchNotFound
		}
		return nil, nil, domain.Internal(err, "transfer.get_batch", "failed to get batch")
	}

	transfers, err := s.store.ListTransfersByBatch(ctx, batch.ID)
	if err != nil {
		return nil, nil, domain.Internal(err, "transfer.get_batch", "failed to list batch transfers")
	}
	return batch, transfers, nil
}

type moveStockParams struct {
	itemID      int64
	itemName    string
	companyID   int64
	fromStoreID int64
	toStoreID   int64
	quantity    decimal.Decimal
	sourceNotes string
	destNotes   string
}

// moveStock deducts from the source row and adds to the destination row with
// paired ledger entries. The source row is locked before the availability
// check so concurrent movements cannot oversell it.
func (s *TransferService) moveStock(ctx context.Context, q Store, p moveStockParams) error {
	src, err := q.GetInventoryForUpdate(ctx, p.itemID, p.fromStoreID, p.companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.StockError{
				ItemID:    p.itemID,
				ItemName:  p.itemName,
				Requested: p.quantity,
			}
		}
		return err
	}

	if src.Quantity.LessThan(p.quantity) {
		return &domain.StockError{
			ItemID:    p.itemID,
			ItemName:  p.itemName,
			Available: src.Quantity,
			Requested: p.quantity,
		}
	}

	if err := q.SetInventoryQuantity(ctx, src.ID, src.Quantity.Sub(p.quantity)); err != nil {
		return err
	}
	if err := q.InsertTransaction(ctx, src.ID, domain.TxTypeTransfer, p.quantity.Neg(), p.sourceNotes); err != nil {
		return err
	}

	dest, err := q.UpsertInventoryForUpdate(ctx, p.itemID, p.toStoreID, p.companyID)
	if err != nil {
		return err
	}
	if err := q.SetInventoryQuantity(ctx, dest.ID, dest.Quantity.Add(p.quantity)); err != nil {
		return err
	}
	return q.InsertTransaction(ctx, dest.ID, domain.TxTypeTransfer, p.quantity, p.destNotes)
}

// validateBatchLine checks one requested line against current stock without
// writing anything. Returns nil when the line is executable right now.
func (s *TransferService) validateBatchLine(ctx context.Context, idx int, line domain.BatchLine, fromStoreID int64, itemNames map[int64]string) *domain.BatchLineError {
	if !line.Quantity.IsPositive() {
		return &domain.BatchLineError{
			ItemIndex: idx,
			ItemID:    line.ItemID,
			Error:     "Quantity must be positive",
			Requested: line.Quantity,
		}
	}

	item, err := s.store.GetItem(ctx, line.ItemID)
	if err != nil {
		return &domain.BatchLineError{
			ItemIndex: idx,
			ItemID:    line.ItemID,
			Error:     "Item not found",
			Requested: line.Quantity,
		}
	}
	itemNames[line.ItemID] = item.Name

	inv, err := s.store.GetInventory(ctx, line.ItemID, fromStoreID, line.CompanyID)
	if err != nil {
		return &domain.BatchLineError{
			ItemIndex: idx,
			ItemID:    line.ItemID,
			ItemName:  item.Name,
			Error:     "No inventory record at source store",
			Requested: line.Quantity,
		}
	}
	if inv.Quantity.LessThan(line.Quantity) {
		return &domain.BatchLineError{
			ItemIndex: idx,
			ItemID:    line.ItemID,
			ItemName:  item.Name,
			Error:     "Insufficient stock",
			Available: inv.Quantity,
			Requested: line.Quantity,
		}
	}
	return nil
}

// recordCancelled writes a cancelled transfer row after a rolled-back
// movement so the attempt stays visible. Best effort only.
func (s *TransferService) recordCancelled(ctx context.Context, params domain.CreateTransferParams, batchID *int64) {
	t, err := s.store.InsertTransfer(ctx, params, batchID)
	if err == nil {
		err = s.store.SetTransferStatus(ctx, t.ID, domain.TransferStatusCancelled)
	}
	if err != nil {
		s.logger.Error("failed to record cancelled transfer",
			"item_id", params.ItemID,
			"from_store_id", params.FromStoreID,
			"error", err,
		)
	}
}

func (s *TransferService) getStore(ctx context.Context, id int64) (*domain.Store, error) {
	store, err := s.store.GetStore(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, domain.Internal(err, "transfer.store", "failed to load store")
	}
	return store, nil
}

// loadTransferRefs resolves both stores and the item, checking company
// membership.
func (s *TransferService) loadTransferRefs(ctx context.Context, fromStoreID, toStoreID, itemID, companyID int64) (*domain.Store, *domain.Store, *domain.Item, error) {
	fromStore, err := s.getStore(ctx, fromStoreID)
	if err != nil {
		return nil, nil, nil, err
	}
	toStore, err := s.getStore(ctx, toStoreID)
	if err != nil {
		return nil, nil, nil, err
	}

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil, domain.ErrItemNotFound
		}
		return nil, nil, nil, domain.Internal(err, "transfer.item", "failed to load item")
	}
	if !item.BelongsTo(companyID) {
		return nil, nil, nil, domain.ErrItemNotInCompany
	}
	return fromStore, toStore, item, nil
}
