package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
// All metrics include a company_id label for per-tenant dashboard
// segmentation.
type BusinessMetrics struct {
	// Invoicing
	InvoicesCreated *prometheus.CounterVec
	InvoiceValue    *prometheus.HistogramVec
	InvoiceLines    *prometheus.HistogramVec

	// Stock movements
	StockAdditions    *prometheus.CounterVec
	StockAdjustments  *prometheus.CounterVec
	StockDeductions   *prometheus.CounterVec
	InsufficientStock *prometheus.CounterVec

	// Transfers
	TransfersCompleted *prometheus.CounterVec
	TransfersCancelled *prometheus.CounterVec
	BatchesCreated     *prometheus.CounterVec
	BatchesRejected    *prometheus.CounterVec

	// Background jobs
	JobsEnqueued  *prometheus.CounterVec
	JobsProcessed *prometheus.CounterVec
	JobsFailed    *prometheus.CounterVec
	JobDuration   *prometheus.HistogramVec
}

// NewBusinessMetrics creates and registers all business metrics
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "dukaan"
	}

	subsystem := "business"

	m := &BusinessMetrics{
		InvoicesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "invoices_created_total",
				Help:      "Total invoices created",
			},
			[]string{"company_id", "store_id", "inter_state"},
		),
		InvoiceValue: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "invoice_value_rupees",
				Help:      "Invoice total amount in rupees",
				Buckets:   []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
			},
			[]string{"company_id"},
		),
		InvoiceLines: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "invoice_line_count",
				Help:      "Number of line items per invoice",
				Buckets:   []float64{1, 2, 5, 10, 20, 50},
			},
			[]string{"company_id"},
		),

		StockAdditions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stock_additions_total",
				Help:      "Total stock addition operations",
			},
			[]string{"company_id", "store_id"},
		),
		StockAdjustments: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stock_adjustments_total",
				Help:      "Total absolute stock set operations",
			},
			[]string{"company_id", "store_id", "direction"},
		),
		StockDeductions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stock_deductions_total",
				Help:      "Total sale-driven stock deductions",
			},
			[]string{"company_id", "store_id"},
		),
		InsufficientStock: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "insufficient_stock_total",
				Help:      "Total operations rejected for insufficient stock",
			},
			[]string{"company_id", "store_id"},
		),

		TransfersCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transfers_completed_total",
				Help:      "Total completed stock transfers",
			},
			[]string{"company_id"},
		),
		TransfersCancelled: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transfers_cancelled_total",
				Help:      "Total cancelled stock transfers",
			},
			[]string{"company_id"},
		),
		BatchesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transfer_batches_created_total",
				Help:      "Total executed transfer batches",
			},
			[]string{"from_store_id", "to_store_id"},
		),
		BatchesRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transfer_batches_rejected_total",
				Help:      "Total batches rejected during pre-validation",
			},
			[]string{"from_store_id", "to_store_id"},
		),

		JobsEnqueued: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "jobs_enqueued_total",
				Help:      "Total background jobs enqueued",
			},
			[]string{"job_type"},
		),
		JobsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "jobs_processed_total",
				Help:      "Total background jobs processed successfully",
			},
			[]string{"job_type"},
		),
		JobsFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "jobs_failed_total",
				Help:      "Total background job failures",
			},
			[]string{"job_type"},
		),
		JobDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "job_duration_seconds",
				Help:      "Background job processing duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"job_type"},
		),
	}

	return m
}

// Global instance for easy access from services and the worker
var Business *BusinessMetrics

// InitBusinessMetrics initializes the global business metrics instance
func InitBusinessMetrics(namespace string) *BusinessMetrics {
	Business = NewBusinessMetrics(namespace)
	return Business
}
