package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/vikasavn/dukaan/internal/domain"
	"github.com/vikasavn/dukaan/internal/postgres"
)

// txBeginner starts transactions. Satisfied by *pgxpool.Pool.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is the slice of the storage layer the services operate on. It mirrors
// *postgres.Queries so tests can substitute an in-memory double; NewStore
// adapts the real thing.
type Store interface {
	// WithTx binds the store to an open transaction.
	WithTx(tx pgx.Tx) Store

	GetCompany(ctx context.Context, id int64) (*domain.Company, error)
	GetStore(ctx context.Context, id int64) (*domain.Store, error)
	GetStoreForUpdate(ctx context.Context, id int64) (*domain.Store, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)

	GetCustomerByName(ctx context.Context, companyID int64, name string) (*domain.Customer, error)
	UpsertCustomer(ctx context.Context, c domain.Customer) (*domain.Customer, error)

	GetInventory(ctx context.Context, itemID, storeID, companyID int64) (*domain.StoreInventory, error)
	GetInventoryForUpdate(ctx context.Context, itemID, storeID, companyID int64) (*domain.StoreInventory, error)
	UpsertInventoryForUpdate(ctx context.Context, itemID, storeID, companyID int64) (*domain.StoreInventory, error)
	SetInventoryQuantity(ctx context.Context, inventoryID int64, quantity decimal.Decimal) error
	SetInventoryLevels(ctx context.Context, inventoryID int64, minLevel, maxLevel *decimal.Decimal) error
	InsertTransaction(ctx context.Context, inventoryID int64, txType string, quantity decimal.Decimal, notes string) error
	ListStoreInventory(ctx context.Context, storeID int64) ([]domain.InventoryItem, error)
	ListLowStock(ctx context.Context, storeID int64) ([]domain.InventoryItem, error)
	ListTransactions(ctx context.Context, inventoryID int64, limit int32) ([]domain.InventoryTransaction, error)

	InsertTransfer(ctx context.Context, params domain.CreateTransferParams, batchID *int64) (*domain.InventoryTransfer, error)
	SetTransferStatus(ctx context.Context, transferID int64, status string) error
	InsertTransferBatch(ctx context.Context, fromStoreID, toStoreID, initiatedBy int64, notes string) (*domain.TransferBatch, error)
	SetBatchStatus(ctx context.Context, id int64, status string) error
	GetBatchByUUID(ctx context.Context, batchID uuid.UUID) (*domain.TransferBatch, error)
	ListTransfersByBatch(ctx context.Context, batchRowID int64) ([]domain.InventoryTransfer, error)
	ListTransfersByStore(ctx context.Context, storeID int64, limit int32) ([]domain.InventoryTransfer, error)

	InsertInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	InsertInvoiceItem(ctx context.Context, item *domain.InvoiceItem) (*domain.InvoiceItem, error)
	GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error)
	GetInvoiceByNumber(ctx context.Context, number string) (*domain.Invoice, error)
	ListInvoiceItems(ctx context.Context, invoiceID int64) ([]domain.InvoiceItem, error)
	ListInvoices(ctx context.Context, companyID int64, limit, offset int32) ([]domain.InvoiceSummary, error)
	SetInvoiceStatus(ctx context.Context, id int64, status string) (bool, error)
	RecentInvoiceNumbers(ctx context.Context, storeID int64, from, to time.Time, limit int32) ([]string, error)
	InvoiceNumberExists(ctx context.Context, number string) (bool, error)

	EnqueueJob(ctx context.Context, params domain.EnqueueJobParams) (*domain.Job, error)
}

// pgStore adapts *postgres.Queries to Store.
type pgStore struct {
	*postgres.Queries
}

var _ Store = pgStore{}

// NewStore wraps the postgres query layer for use by the services.
func NewStore(q *postgres.Queries) Store {
	return pgStore{q}
}

func (s pgStore) WithTx(tx pgx.Tx) Store {
	return pgStore{s.Queries.WithTx(tx)}
}
