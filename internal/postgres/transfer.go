package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vikasavn/dukaan/internal/domain"
)

const transferColumns = `id, batch_id, item_id, company_id, from_store_id, to_store_id,
	quantity, status, notes, initiated_by, created_at, completed_at`

func scanTransfer(row pgx.Row) (*domain.InventoryTransfer, error) {
	var t domain.InventoryTransfer
	var batchID pgtype.Int8
	var completedAt pgtype.Timestamptz
	err := row.Scan(
		&t.ID, &batchID, &t.ItemID, &t.CompanyID, &t.FromStoreID, &t.ToStoreID,
		&t.Quantity, &t.Status, &t.Notes, &t.InitiatedBy, &t.CreatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}
	if batchID.Valid {
		t.BatchID = &batchID.Int64
	}
	t.CompletedAt = timePtrFromTimestamptz(completedAt)
	return &t, nil
}

// InsertTransfer creates a transfer row in pending status.
func (q *Queries) InsertTransfer(ctx context.Context, params domain.CreateTransferParams, batchID *int64) (*domain.InventoryTransfer, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO inventory_transfers (batch_id, item_id, company_id, from_store_id,
			to_store_id, quantity, notes, initiated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+transferColumns,
		batchID, params.ItemID, params.CompanyID, params.FromStoreID,
		params.ToStoreID, params.Quantity, params.Notes, params.InitiatedBy,
	)
	return scanTransfer(row)
}

// SetTransferStatus updates a transfer's lifecycle status, stamping
// completed_at for terminal states.
func (q *Queries) SetTransferStatus(ctx context.Context, transferID int64, status string) error {
	_, err := q.db.Exec(ctx, `
		UPDATE inventory_transfers
		SET status = $2,
			completed_at = CASE WHEN $2 IN ('completed', 'cancelled') THEN now() ELSE completed_at END
		WHERE id = $1`, transferID, status)
	return err
}

// ListTransfersByStore fetches transfers touching a store as source or
// destination, newest first.
func (q *Queries) ListTransfersByStore(ctx context.Context, storeID int64, limit int32) ([]domain.InventoryTransfer, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+transferColumns+`
		FROM inventory_transfers
		WHERE from_store_id = $1 OR to_store_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, storeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []domain.InventoryTransfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, *t)
	}
	return transfers, rows.Err()
}

const batchColumns = `id, batch_id, from_store_id, to_store_id, notes, status,
	initiated_by, created_at, completed_at`

func scanBatch(row pgx.Row) (*domain.TransferBatch, error) {
	var b domain.TransferBatch
	var completedAt pgtype.Timestamptz
	err := row.Scan(
		&b.ID, &b.BatchID, &b.FromStoreID, &b.ToStoreID, &b.Notes, &b.Status,
		&b.InitiatedBy, &b.CreatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}
	b.CompletedAt = timePtrFromTimestamptz(completedAt)
	return &b, nil
}

// InsertTransferBatch creates a batch row in pending status.
func (q *Queries) InsertTransferBatch(ctx context.Context, fromStoreID, toStoreID, initiatedBy int64, notes string) (*domain.TransferBatch, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO transfer_batches (from_store_id, to_store_id, notes, initiated_by)
		VALUES ($1, $2, $3, $4)
		RETURNING `+batchColumns,
		fromStoreID, toStoreID, notes, initiatedBy,
	)
	return scanBatch(row)
}

// SetBatchStatus updates a batch's lifecycle status.
func (q *Queries) SetBatchStatus(ctx context.Context, id int64, status string) error {
	_, err := q.db.Exec(ctx, `
		UPDATE transfer_batches
		SET status = $2,
			completed_at = CASE WHEN $2 IN ('completed', 'cancelled') THEN now() ELSE completed_at END
		WHERE id = $1`, id, status)
	return err
}

// GetBatchByUUID fetches a batch by its public UUID.
func (q *Queries) GetBatchByUUID(ctx context.Context, batchID uuid.UUID) (*domain.TransferBatch, error) {
	row := q.db.QueryRow(ctx, `SELECT `+batchColumns+` FROM transfer_batches WHERE batch_id = $1`, batchID)
	return scanBatch(row)
}

// ListTransfersByBatch fetches all transfers in a batch in creation order.
func (q *Queries) ListTransfersByBatch(ctx context.Context, batchRowID int64) ([]domain.InventoryTransfer, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+transferColumns+`
		FROM inventory_transfers
		WHERE batch_id = $1
		ORDER BY id`, batchRowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []domain.InventoryTransfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, *t)
	}
	return transfers, rows.Err()
}
