// Package service implements the transactional business operations on top of
// the postgres storage layer. Each mutating operation runs inside a single
// database transaction so ledger entries, stock levels, and derived records
// commit together or not at all.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/vikasavn/dukaan/internal/domain"
	"github.com/vikasavn/dukaan/internal/telemetry"
)

// InventoryService implements domain.InventoryService.
type InventoryService struct {
	db     txBeginner
	store  Store
	logger *slog.Logger
}

// Compile-time check that InventoryService implements domain.InventoryService.
var _ domain.InventoryService = (*InventoryService)(nil)

// NewInventoryService creates the stock ledger service.
func NewInventoryService(db txBeginner, store Store, logger *slog.Logger) *InventoryService {
	return &InventoryService{db: db, store: store, logger: logger}
}

// AddStock increments on-hand quantity, creating the inventory row lazily.
func (s *InventoryService) AddStock(ctx context.Context, params domain.AddStockParams) (*domain.StoreInventory, error) {
	if !params.Quantity.IsPositive() {
		return nil, domain.ErrNegativeQuantity
	}

	item, err := s.store.GetItem(ctx, params.ItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, domain.Internal(err, "inventory.add", "failed to load item")
	}
	if !item.BelongsTo(params.CompanyID) {
		return nil, domain.ErrItemNotInCompany
	}

	var result *domain.StoreInventory
	err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		q := s.store.WithTx(tx)

		inv, err := q.UpsertInventoryForUpdate(ctx, params.ItemID, params.StoreID, params.CompanyID)
		if err != nil {
			return err
		}

		inv.Quantity = inv.Quantity.Add(params.Quantity)
		if err := q.SetInventoryQuantity(ctx, inv.ID, inv.Quantity); err != nil {
			return err
		}
		if err := q.InsertTransaction(ctx, inv.ID, domain.TxTypeAdd, params.Quantity, params.Notes); err != nil {
			return err
		}

		result = inv
		return nil
	})
	if err != nil {
		return nil, domain.Internal(err, "inventory.add", "failed to add stock")
	}

	if m := telemetry.Business; m != nil {
		m.StockAdditions.WithLabelValues(
			strconv.FormatInt(params.CompanyID, 10),
			strconv.FormatInt(params.StoreID, 10),
		).Inc()
	}

	s.logger.Info("stock added",
		"item_id", params.ItemID,
		"store_id", params.StoreID,
		"company_id", params.CompanyID,
		"quantity", params.Quantity.String(),
	)
	return result, nil
}

// SetStock writes the absolute on-hand quantity and records the signed delta
// as a single transaction. A zero delta leaves the ledger untouched.
func (s *InventoryService) SetStock(ctx context.Context, params domain.SetStockParams) (*domain.StoreInventory, error) {
	if params.Quantity.IsNegative() {
		return nil, domain.ErrNegativeQuantity
	}

	item, err := s.store.GetItem(ctx, params.ItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, domain.Internal(err, "inventory.set", "failed to load item")
	}
	if !item.BelongsTo(params.CompanyID) {
		return nil, domain.ErrItemNotInCompany
	}

	var result *domain.StoreInventory
	var delta = params.Quantity
	err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		q := s.store.WithTx(tx)

		inv, err := q.UpsertInventoryForUpdate(ctx, params.ItemID, params.StoreID, params.CompanyID)
		if err != nil {
			return err
		}

		delta = params.Quantity.Sub(inv.Quantity)
		if !delta.IsZero() {
			txType := domain.TxTypeAdd
			if delta.IsNegative() {
				txType = domain.TxTypeRemove
			}
			notes := fmt.Sprintf("%s (Old: %s, New: %s)",
				params.Notes, inv.Quantity.String(), params.Quantity.String())
			if err := q.InsertTransaction(ctx, inv.ID, txType, delta, notes); err != nil {
				return err
			}
			if err := q.SetInventoryQuantity(ctx, inv.ID, params.Quantity); err != nil {
				return err
			}
			inv.Quantity = params.Quantity
		}

		if params.MinStockLevel != nil || params.MaxStockLevel != nil {
			if err := q.SetInventoryLevels(ctx, inv.ID, params.MinStockLevel, params.MaxStockLevel); err != nil {
				return err
			}
			if params.MinStockLevel != nil {
				inv.MinStockLevel = *params.MinStockLevel
			}
			if params.MaxStockLevel != nil {
				inv.MaxStockLevel = *params.MaxStockLevel
			}
		}

		result = inv
		return nil
	})
	if err != nil {
		return nil, domain.Internal(err, "inventory.set", "failed to set stock")
	}

	if m := telemetry.Business; m != nil && !delta.IsZero() {
		direction := "increase"
		if delta.IsNegative() {
			direction = "decrease"
		}
		m.StockAdjustments.WithLabelValues(
			strconv.FormatInt(params.CompanyID, 10),
			strconv.FormatInt(params.StoreID, 10),
			direction,
		).Inc()
	}

	s.logger.Info("stock set",
		"item_id", params.ItemID,
		"store_id", params.StoreID,
		"company_id", params.CompanyID,
		"quantity", params.Quantity.String(),
		"delta", delta.String(),
	)
	return result, nil
}

// GetInventory returns the inventory row for one (item, store, company).
func (s *InventoryService) GetInventory(ctx context.Context, itemID, storeID, companyID int64) (*domain.StoreInventory, error) {
	inv, err := s.store.GetInventory(ctx, itemID, storeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInventoryNotFound
		}
		return nil, domain.Internal(err, "inventory.get", "failed to get inventory")
	}
	return inv, nil
}

// ListStoreInventory returns all inventory rows at a store with item detail.
func (s *InventoryService) ListStoreInventory(ctx context.Context, storeID int64) ([]domain.InventoryItem, error) {
	items, err := s.store.ListStoreInventory(ctx, storeID)
	if err != nil {
		return nil, domain.Internal(err, "inventory.list", "failed to list inventory")
	}
	return items, nil
}

// ListLowStock returns inventory rows at or below their minimum level.
func (s *InventoryService) ListLowStock(ctx context.Context, storeID int64) ([]domain.InventoryItem, error) {
	items, err := s.store.ListLowStock(ctx, storeID)
	if err != nil {
		return nil, domain.Internal(err, "inventory.low_stock", "failed to list low stock")
	}
	return items, nil
}

// ListTransactions returns the newest ledger entries for an inventory row.
func (s *InventoryService) ListTransactions(ctx context.Context, inventoryID int64, limit int32) ([]domain.InventoryTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	txs, err := s.store.ListTransactions(ctx, inventoryID, limit)
	if err != nil {
		return nil, domain.Internal(err, "inventory.transactions", "failed to list transactions")
	}
	return txs, nil
}
