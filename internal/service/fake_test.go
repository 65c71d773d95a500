package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/vikasavn/dukaan/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fakeStore is an in-memory Store and transaction beginner. Begin snapshots
// the state and Rollback restores it, so the services' all-or-nothing
// semantics can be observed without a database.
type fakeStore struct {
	state fakeState
	saved []fakeState

	// storeLocks counts GetStoreForUpdate calls.
	storeLocks int

	// beforeInventoryLock runs before GetInventoryForUpdate reads its row,
	// modeling a concurrent writer committing between validation and
	// execution.
	beforeInventoryLock func(itemID int64)

	// beforeUpsertCustomer runs once before UpsertCustomer, modeling a
	// concurrent writer claiming the (company, name) identity first.
	beforeUpsertCustomer func()
}

type fakeState struct {
	companies    map[int64]domain.Company
	stores       map[int64]domain.Store
	users        map[int64]domain.User
	items        map[int64]domain.Item
	customers    map[int64]domain.Customer
	inventories  map[int64]domain.StoreInventory
	ledger       []domain.InventoryTransaction
	transfers    map[int64]domain.InventoryTransfer
	batches      map[int64]domain.TransferBatch
	invoices     map[int64]domain.Invoice
	invoiceItems []domain.InvoiceItem
	jobs         []domain.EnqueueJobParams
	lastID       int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{state: fakeState{
		companies:   map[int64]domain.Company{},
		stores:      map[int64]domain.Store{},
		users:       map[int64]domain.User{},
		items:       map[int64]domain.Item{},
		customers:   map[int64]domain.Customer{},
		inventories: map[int64]domain.StoreInventory{},
		transfers:   map[int64]domain.InventoryTransfer{},
		batches:     map[int64]domain.TransferBatch{},
		invoices:    map[int64]domain.Invoice{},
	}}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func (st fakeState) clone() fakeState {
	c := st
	c.companies = copyMap(st.companies)
	c.stores = copyMap(st.stores)
	c.users = copyMap(st.users)
	c.items = copyMap(st.items)
	c.customers = copyMap(st.customers)
	c.inventories = copyMap(st.inventories)
	c.transfers = copyMap(st.transfers)
	c.batches = copyMap(st.batches)
	c.invoices = copyMap(st.invoices)
	c.ledger = append([]domain.InventoryTransaction(nil), st.ledger...)
	c.invoiceItems = append([]domain.InvoiceItem(nil), st.invoiceItems...)
	c.jobs = append([]domain.EnqueueJobParams(nil), st.jobs...)
	return c
}

func (fs *fakeStore) nextID() int64 {
	fs.state.lastID++
	return fs.state.lastID
}

// seedInventory creates an inventory row with the given on-hand quantity.
func (fs *fakeStore) seedInventory(itemID, storeID, companyID int64, quantity string) {
	id := fs.nextID()
	fs.state.inventories[id] = domain.StoreInventory{
		ID: id, ItemID: itemID, StoreID: storeID, CompanyID: companyID,
		Quantity: dec(quantity),
	}
}

func (fs *fakeStore) findInventory(itemID, storeID, companyID int64) (domain.StoreInventory, bool) {
	for _, inv := range fs.state.inventories {
		if inv.ItemID == itemID && inv.StoreID == storeID && inv.CompanyID == companyID {
			return inv, true
		}
	}
	return domain.StoreInventory{}, false
}

// drainStock models another committed transaction emptying the row. The
// change must survive the current transaction's rollback, so saved snapshots
// are updated too.
func (fs *fakeStore) drainStock(itemID, storeID, companyID int64) {
	apply := func(st *fakeState) {
		for id, inv := range st.inventories {
			if inv.ItemID == itemID && inv.StoreID == storeID && inv.CompanyID == companyID {
				inv.Quantity = decimal.Zero
				st.inventories[id] = inv
			}
		}
	}
	apply(&fs.state)
	for i := range fs.saved {
		apply(&fs.saved[i])
	}
}

// Begin snapshots the state; fakeTx.Rollback restores it.
func (fs *fakeStore) Begin(ctx context.Context) (pgx.Tx, error) {
	fs.saved = append(fs.saved, fs.state.clone())
	return fakeTx{fs: fs}, nil
}

func (fs *fakeStore) commit() {
	if n := len(fs.saved); n > 0 {
		fs.saved = fs.saved[:n-1]
	}
}

func (fs *fakeStore) rollback() {
	if n := len(fs.saved); n > 0 {
		fs.state = fs.saved[n-1]
		fs.saved = fs.saved[:n-1]
	}
}

type fakeTx struct {
	pgx.Tx
	fs *fakeStore
}

func (t fakeTx) Commit(ctx context.Context) error   { t.fs.commit(); return nil }
func (t fakeTx) Rollback(ctx context.Context) error { t.fs.rollback(); return nil }

var _ Store = (*fakeStore)(nil)

func (fs *fakeStore) WithTx(tx pgx.Tx) Store { return fs }

func (fs *fakeStore) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	c, ok := fs.state.companies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (fs *fakeStore) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	s, ok := fs.state.stores[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &s, nil
}

func (fs *fakeStore) GetStoreForUpdate(ctx context.Context, id int64) (*domain.Store, error) {
	fs.storeLocks++
	return fs.GetStore(ctx, id)
}

func (fs *fakeStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := fs.state.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (fs *fakeStore) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	i, ok := fs.state.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &i, nil
}

func (fs *fakeStore) GetCustomerByName(ctx context.Context, companyID int64, name string) (*domain.Customer, error) {
	for _, c := range fs.state.customers {
		if c.CompanyID == companyID && c.Name == name {
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (fs *fakeStore) UpsertCustomer(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	if fs.beforeUpsertCustomer != nil {
		hook := fs.beforeUpsertCustomer
		fs.beforeUpsertCustomer = nil
		hook()
	}
	for _, existing := range fs.state.customers {
		if existing.CompanyID == c.CompanyID && existing.Name == c.Name {
			return &existing, nil
		}
	}
	c.ID = fs.nextID()
	fs.state.customers[c.ID] = c
	return &c, nil
}

func (fs *fakeStore) GetInventory(ctx context.Context, itemID, storeID, companyID int64) (*domain.StoreInventory, error) {
	inv, ok := fs.findInventory(itemID, storeID, companyID)
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &inv, nil
}

func (fs *fakeStore) GetInventoryForUpdate(ctx context.Context, itemID, storeID, companyID int64) (*domain.StoreInventory, error) {
	if fs.beforeInventoryLock != nil {
		fs.beforeInventoryLock(itemID)
	}
	return fs.GetInventory(ctx, itemID, storeID, companyID)
}

func (fs *fakeStore) UpsertInventoryForUpdate(ctx context.Context, itemID, storeID, companyID int64) (*domain.StoreInventory, error) {
	if inv, ok := fs.findInventory(itemID, storeID, companyID); ok {
		return &inv, nil
	}
	id := fs.nextID()
	inv := domain.StoreInventory{ID: id, ItemID: itemID, StoreID: storeID, CompanyID: companyID}
	fs.state.inventories[id] = inv
	return &inv, nil
}

func (fs *fakeStore) SetInventoryQuantity(ctx context.Context, inventoryID int64, quantity decimal.Decimal) error {
	inv, ok := fs.state.inventories[inventoryID]
	if !ok {
		return pgx.ErrNoRows
	}
	if quantity.IsNegative() {
		// store_inventories carries CHECK (quantity >= 0).
		return &pgconn.PgError{Code: "23514", ConstraintName: "store_inventories_quantity_check"}
	}
	inv.Quantity = quantity
	fs.state.inventories[inventoryID] = inv
	return nil
}

func (fs *fakeStore) SetInventoryLevels(ctx context.Context, inventoryID int64, minLevel, maxLevel *decimal.Decimal) error {
	inv, ok := fs.state.inventories[inventoryID]
	if !ok {
		return pgx.ErrNoRows
	}
	if minLevel != nil {
		inv.MinStockLevel = *minLevel
	}
	if maxLevel != nil {
		inv.MaxStockLevel = *maxLevel
	}
	fs.state.inventories[inventoryID] = inv
	return nil
}

func (fs *fakeStore) InsertTransaction(ctx context.Context, inventoryID int64, txType string, quantity decimal.Decimal, notes string) error {
	fs.state.ledger = append(fs.state.ledger, domain.InventoryTransaction{
		ID: fs.nextID(), InventoryID: inventoryID, TransactionType: txType,
		Quantity: quantity, Notes: notes,
	})
	return nil
}

func (fs *fakeStore) ListStoreInventory(ctx context.Context, storeID int64) ([]domain.InventoryItem, error) {
	var out []domain.InventoryItem
	for _, inv := range fs.state.inventories {
		if inv.StoreID != storeID {
			continue
		}
		item := fs.state.items[inv.ItemID]
		out = append(out, domain.InventoryItem{
			StoreInventory: inv, ItemName: item.Name, ItemSKU: item.SKU, ItemUnit: item.Unit,
		})
	}
	return out, nil
}

func (fs *fakeStore) ListLowStock(ctx context.Context, storeID int64) ([]domain.InventoryItem, error) {
	all, _ := fs.ListStoreInventory(ctx, storeID)
	var out []domain.InventoryItem
	for _, it := range all {
		if it.IsLowStock() {
			out = append(out, it)
		}
	}
	return out, nil
}

func (fs *fakeStore) ListTransactions(ctx context.Context, inventoryID int64, limit int32) ([]domain.InventoryTransaction, error) {
	var out []domain.InventoryTransaction
	for _, tx := range fs.state.ledger {
		if tx.InventoryID == inventoryID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (fs *fakeStore) InsertTransfer(ctx context.Context, params domain.CreateTransferParams, batchID *int64) (*domain.InventoryTransfer, error) {
	t := domain.InventoryTransfer{
		ID: fs.nextID(), BatchID: batchID, ItemID: params.ItemID,
		CompanyID: params.CompanyID, FromStoreID: params.FromStoreID,
		ToStoreID: params.ToStoreID, Quantity: params.Quantity,
		Status: domain.TransferStatusPending, Notes: params.Notes,
		InitiatedBy: params.InitiatedBy,
	}
	fs.state.transfers[t.ID] = t
	return &t, nil
}

func (fs *fakeStore) SetTransferStatus(ctx context.Context, transferID int64, status string) error {
	t, ok := fs.state.transfers[transferID]
	if !ok {
		return pgx.ErrNoRows
	}
	t.Status = status
	fs.state.transfers[transferID] = t
	return nil
}

func (fs *fakeStore) InsertTransferBatch(ctx context.Context, fromStoreID, toStoreID, initiatedBy int64, notes string) (*domain.TransferBatch, error) {
	b := domain.TransferBatch{
		ID: fs.nextID(), BatchID: uuid.New(), FromStoreID: fromStoreID,
		ToStoreID: toStoreID, Notes: notes, Status: domain.TransferStatusPending,
		InitiatedBy: initiatedBy,
	}
	fs.state.batches[b.ID] = b
	return &b, nil
}

func (fs *fakeStore) SetBatchStatus(ctx context.Context, id int64, status string) error {
	b, ok := fs.state.batches[id]
	if !ok {
		return pgx.ErrNoRows
	}
	b.Status = status
	fs.state.batches[id] = b
	return nil
}

func (fs *fakeStore) GetBatchByUUID(ctx context.Context, batchID uuid.UUID) (*domain.TransferBatch, error) {
	for _, b := range fs.state.batches {
		if b.BatchID == batchID {
			return &b, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (fs *fakeStore) ListTransfersByBatch(ctx context.Context, batchRowID int64) ([]domain.InventoryTransfer, error) {
	var out []domain.InventoryTransfer
	for _, t := range fs.state.transfers {
		if t.BatchID != nil && *t.BatchID == batchRowID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (fs *fakeStore) ListTransfersByStore(ctx context.Context, storeID int64, limit int32) ([]domain.InventoryTransfer, error) {
	var out []domain.InventoryTransfer
	for _, t := range fs.state.transfers {
		if t.FromStoreID == storeID || t.ToStoreID == storeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (fs *fakeStore) InsertInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	for _, existing := range fs.state.invoices {
		if existing.InvoiceNumber == inv.InvoiceNumber {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "invoices_invoice_number_key"}
		}
	}
	saved := *inv
	saved.ID = fs.nextID()
	fs.state.invoices[saved.ID] = saved
	return &saved, nil
}

func (fs *fakeStore) InsertInvoiceItem(ctx context.Context, item *domain.InvoiceItem) (*domain.InvoiceItem, error) {
	saved := *item
	saved.ID = fs.nextID()
	fs.state.invoiceItems = append(fs.state.invoiceItems, saved)
	return &saved, nil
}

func (fs *fakeStore) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, ok := fs.state.invoices[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &inv, nil
}

func (fs *fakeStore) GetInvoiceByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	for _, inv := range fs.state.invoices {
		if inv.InvoiceNumber == number {
			return &inv, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (fs *fakeStore) ListInvoiceItems(ctx context.Context, invoiceID int64) ([]domain.InvoiceItem, error) {
	var out []domain.InvoiceItem
	for _, it := range fs.state.invoiceItems {
		if it.InvoiceID == invoiceID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (fs *fakeStore) ListInvoices(ctx context.Context, companyID int64, limit, offset int32) ([]domain.InvoiceSummary, error) {
	var out []domain.InvoiceSummary
	for _, inv := range fs.state.invoices {
		if inv.CompanyID == companyID {
			out = append(out, domain.InvoiceSummary{
				ID: inv.ID, InvoiceNumber: inv.InvoiceNumber, StoreID: inv.StoreID,
			})
		}
	}
	return out, nil
}

func (fs *fakeStore) SetInvoiceStatus(ctx context.Context, id int64, status string) (bool, error) {
	inv, ok := fs.state.invoices[id]
	if !ok {
		return false, nil
	}
	inv.Status = status
	fs.state.invoices[id] = inv
	return true, nil
}

func (fs *fakeStore) RecentInvoiceNumbers(ctx context.Context, storeID int64, from, to time.Time, limit int32) ([]string, error) {
	var out []string
	for _, inv := range fs.state.invoices {
		if inv.StoreID != storeID {
			continue
		}
		if !from.IsZero() && !to.IsZero() &&
			(inv.InvoiceDate.Before(from) || inv.InvoiceDate.After(to)) {
			continue
		}
		out = append(out, inv.InvoiceNumber)
	}
	return out, nil
}

func (fs *fakeStore) InvoiceNumberExists(ctx context.Context, number string) (bool, error) {
	for _, inv := range fs.state.invoices {
		if inv.InvoiceNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (fs *fakeStore) EnqueueJob(ctx context.Context, params domain.EnqueueJobParams) (*domain.Job, error) {
	fs.state.jobs = append(fs.state.jobs, params)
	return &domain.Job{ID: fs.nextID(), JobID: uuid.New(), JobType: params.JobType}, nil
}

// newRetailFixture seeds one company with two stores, an owner account, and
// three catalog items.
func newRetailFixture() *fakeStore {
	fs := newFakeStore()
	fs.state.users[9] = domain.User{
		ID: 9, Email: "owner@example.com", Role: domain.RoleAdmin,
		DefaultPaymentTerms: 30,
	}
	fs.state.companies[1] = domain.Company{ID: 1, Name: "Sharma Traders", State: "Karnataka"}
	fs.state.stores[1] = domain.Store{ID: 1, CompanyID: 1, Name: "MG Road"}
	fs.state.stores[2] = domain.Store{ID: 2, CompanyID: 1, Name: "Whitefield"}
	fs.state.items[7] = domain.Item{
		ID: 7, Name: "Basmati Rice 5kg", SKU: "RICE-5KG", Unit: domain.UnitKilogram,
		Price: dec("450.00"), TaxRate: dec("5"), CompanyIDs: []int64{1},
	}
	fs.state.items[8] = domain.Item{
		ID: 8, Name: "Toor Dal 1kg", SKU: "DAL-1KG", Unit: domain.UnitKilogram,
		Price: dec("160.00"), TaxRate: dec("5"), CompanyIDs: []int64{1},
	}
	fs.state.items[9] = domain.Item{
		ID: 9, Name: "Sunflower Oil 1L", SKU: "OIL-1L", Unit: domain.UnitLitre,
		Price: dec("140.00"), TaxRate: dec("5"), CompanyIDs: []int64{1},
	}
	return fs
}
