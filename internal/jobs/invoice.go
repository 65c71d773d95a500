// Package jobs defines background job types, payloads, and enqueue helpers
// for the DB-backed queue.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vikasavn/dukaan/internal/domain"
)

// Job type constants.
const (
	JobTypeInvoiceEmail  = "invoice:send_email"
	JobTypeLowStockAlert = "inventory:low_stock_alert"
)

// Enqueuer persists jobs. Satisfied by *postgres.Queries, so enqueueing can
// run inside the transaction that produces the triggering event.
type Enqueuer interface {
	EnqueueJob(ctx context.Context, params domain.EnqueueJobParams) (*domain.Job, error)
}

// InvoiceEmailPayload represents the payload for sending an invoice by email.
// TotalDisplay carries the grand total pre-formatted with Indian digit
// grouping for the message body.
type InvoiceEmailPayload struct {
	InvoiceID     int64  `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
	TotalDisplay  string `json:"total_display"`
}

// LowStockAlertPayload represents the payload for a low-stock notification.
type LowStockAlertPayload struct {
	InventoryID int64           `json:"inventory_id"`
	ItemID      int64           `json:"item_id"`
	StoreID     int64           `json:"store_id"`
	CompanyID   int64           `json:"company_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinLevel    decimal.Decimal `json:"min_level"`
}

// EnqueueInvoiceEmail enqueues a job to email an issued invoice.
func EnqueueInvoiceEmail(ctx context.Context, q Enqueuer, payload InvoiceEmailPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.EnqueueJob(ctx, domain.EnqueueJobParams{
		JobType:        JobTypeInvoiceEmail,
		Queue:          "invoicing",
		Payload:        payloadJSON,
		Priority:       100,
		MaxRetries:     3,
		TimeoutSeconds: 60,
		ScheduledAt:    time.Now(),
	})
	return err
}

// EnqueueLowStockAlert enqueues a notification for stock that has fallen to
// or below its minimum level.
func EnqueueLowStockAlert(ctx context.Context, q Enqueuer, payload LowStockAlertPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.EnqueueJob(ctx, domain.EnqueueJobParams{
		JobType:        JobTypeLowStockAlert,
		Queue:          "alerts",
		Payload:        payloadJSON,
		Priority:       50,
		MaxRetries:     3,
		TimeoutSeconds: 30,
		ScheduledAt:    time.Now(),
	})
	return err
}
