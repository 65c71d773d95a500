// Package worker polls the DB-backed job queue and processes claimed jobs.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vikasavn/dukaan/internal/domain"
	"github.com/vikasavn/dukaan/internal/jobs"
	"github.com/vikasavn/dukaan/internal/postgres"
	"github.com/vikasavn/dukaan/internal/telemetry"
)

// Config holds worker configuration
type Config struct {
	// WorkerID uniquely identifies this worker instance
	WorkerID string

	// PollInterval is how often to check for new jobs
	PollInterval time.Duration

	// MaxConcurrency is the maximum number of jobs to process concurrently
	MaxConcurrency int

	// Queue name to process (empty string = all queues)
	Queue string
}

// Notifier delivers job-driven notifications.
type Notifier interface {
	SendInvoiceEmail(ctx context.Context, payload jobs.InvoiceEmailPayload) error
	SendLowStockAlert(ctx context.Context, payload jobs.LowStockAlertPayload) error
}

// Worker processes background jobs
type Worker struct {
	config   Config
	queries  *postgres.Queries
	notifier Notifier
	logger   *slog.Logger

	wg sync.WaitGroup
}

// NewWorker creates a new background job worker
func NewWorker(queries *postgres.Queries, notifier Notifier, config Config, logger *slog.Logger) *Worker {
	if config.WorkerID == "" {
		config.WorkerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}
	if config.PollInterval == 0 {
		config.PollInterval = 1 * time.Second
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 5
	}

	return &Worker{
		config:   config,
		queries:  queries,
		notifier: notifier,
		logger:   logger,
	}
}

// Start begins processing jobs until the context is cancelled
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("worker starting",
		"worker_id", w.config.WorkerID,
		"queue", w.config.Queue,
		"poll_interval", w.config.PollInterval,
		"max_concurrency", w.config.MaxConcurrency,
	)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	// Semaphore for concurrency control
	sem := make(chan struct{}, w.config.MaxConcurrency)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker shutting down", "worker_id", w.config.WorkerID)
			w.wg.Wait()
			return ctx.Err()

		case <-ticker.C:
			select {
			case sem <- struct{}{}:
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }()
					w.claimAndProcess(ctx)
				}()
			default:
				// At max concurrency, skip this poll
			}
		}
	}
}

// claimAndProcess claims and processes a single job
func (w *Worker) claimAndProcess(ctx context.Context) {
	job, err := w.queries.ClaimNextJob(ctx, w.config.WorkerID, w.config.Queue)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			w.logger.Error("failed to claim job", "error", err)
		}
		return
	}

	w.logger.Info("processing job",
		"job_id", job.JobID,
		"job_type", job.JobType,
		"retry_count", job.RetryCount,
	)

	start := time.Now()
	err = w.processJob(ctx, job)
	if m := telemetry.Business; m != nil {
		m.JobDuration.WithLabelValues(job.JobType).Observe(time.Since(start).Seconds())
	}

	if err != nil {
		w.logger.Error("job failed",
			"job_id", job.JobID,
			"job_type", job.JobType,
			"retry_count", job.RetryCount,
			"error", err,
		)
		if m := telemetry.Business; m != nil {
			m.JobsFailed.WithLabelValues(job.JobType).Inc()
		}
		if _, ferr := w.queries.FailJob(ctx, job.ID, err.Error()); ferr != nil {
			w.logger.Error("failed to record job failure", "job_id", job.JobID, "error", ferr)
		}
		return
	}

	w.logger.Info("job completed",
		"job_id", job.JobID,
		"job_type", job.JobType,
	)
	if m := telemetry.Business; m != nil {
		m.JobsProcessed.WithLabelValues(job.JobType).Inc()
	}

	if err := w.queries.CompleteJob(ctx, job.ID); err != nil {
		w.logger.Error("failed to mark job complete", "job_id", job.JobID, "error", err)
	}
}

// processJob dispatches a single job under its configured timeout
func (w *Worker) processJob(ctx context.Context, job *domain.Job) error {
	jobCtx, cancel := context.WithTimeout(ctx, time.Duration(job.TimeoutSeconds)*time.Second)
	defer cancel()

	switch job.JobType {
	case jobs.JobTypeInvoiceEmail:
		var payload jobs.InvoiceEmailPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal invoice email payload: %w", err)
		}
		if payload.CustomerEmail == "" {
			// Walk-in sales have no address to send to.
			w.logger.Info("skipping invoice email, customer has no email address",
				"invoice_number", payload.InvoiceNumber)
			return nil
		}
		return w.notifier.SendInvoiceEmail(jobCtx, payload)

	case jobs.JobTypeLowStockAlert:
		var payload jobs.LowStockAlertPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal low stock payload: %w", err)
		}
		return w.notifier.SendLowStockAlert(jobCtx, payload)

	default:
		return fmt.Errorf("unknown job type: %s", job.JobType)
	}
}

// LogNotifier writes notifications to the log. Stands in until an outbound
// email integration is configured.
type LogNotifier struct {
	Logger *slog.Logger
}

// SendInvoiceEmail logs the invoice email that would be sent.
func (n *LogNotifier) SendInvoiceEmail(ctx context.Context, payload jobs.InvoiceEmailPayload) error {
	n.Logger.Info("invoice email notification",
		"invoice_id", payload.InvoiceID,
		"invoice_number", payload.InvoiceNumber,
		"customer_email", payload.CustomerEmail,
		"total", payload.TotalDisplay,
	)
	return nil
}

// SendLowStockAlert logs the low-stock alert that would be sent.
func (n *LogNotifier) SendLowStockAlert(ctx context.Context, payload jobs.LowStockAlertPayload) error {
	n.Logger.Warn("low stock alert",
		"item_id", payload.ItemID,
		"store_id", payload.StoreID,
		"company_id", payload.CompanyID,
		"quantity", payload.Quantity.String(),
		"min_level", payload.MinLevel.String(),
	)
	return nil
}
