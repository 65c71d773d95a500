// Package numbering derives sequential, human-readable invoice numbers per
// store under a configurable prefix/separator/padding/reset scheme.
package numbering

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vikasavn/dukaan/internal/domain"
	"github.com/vikasavn/dukaan/internal/gst"
)

// maxAttempts bounds the collision-retry loop before falling back to a
// timestamp sequence.
const maxAttempts = 10

// recentScanLimit caps how many existing numbers are scanned for the highest
// sequence value.
const recentScanLimit = 100

// Source provides visibility into already-issued invoice numbers. The
// caller passes a transaction-bound implementation so reservation
// participates in the surrounding invoice-creation transaction.
type Source interface {
	// RecentInvoiceNumbers returns up to limit invoice numbers for the
	// store, newest first, restricted to invoice dates within [from, to]
	// when both are non-zero.
	RecentInvoiceNumbers(ctx context.Context, storeID int64, from, to time.Time, limit int32) ([]string, error)

	// InvoiceNumberExists reports whether the exact number is already taken.
	InvoiceNumberExists(ctx context.Context, number string) (bool, error)
}

// Generator produces the next invoice number for a store.
type Generator struct {
	logger *slog.Logger
	now    func() time.Time
}

// New creates a generator.
func New(logger *slog.Logger) *Generator {
	return &Generator{
		logger: logger,
		now:    time.Now,
	}
}

// Next reserves the next invoice number for the store on the given invoice
// date. The sequence restarts per financial year or calendar month according
// to the config; "never" keeps one running sequence per store.
//
// Concurrent writers racing on the same store are handled by a bounded
// retry against exact-match existence checks. When all attempts collide the
// generator falls back to a unix-timestamp sequence so invoice creation
// never fails on numbering contention. Uniqueness still depends on the
// caller holding the store's number space inside its transaction (the
// invoices table carries a unique index as the final arbiter).
func (g *Generator) Next(ctx context.Context, src Source, cfg domain.NumberingConfig, storeID int64, invoiceDate time.Time) (string, error) {
	cfg = cfg.Normalize()

	storeCode := fmt.Sprintf("S%02d", storeID)

	var dateComponent string
	var from, to time.Time
	switch cfg.ResetFrequency {
	case domain.ResetYearly:
		dateComponent = gst.FinancialYear(invoiceDate)
		from, to = gst.FinancialYearRange(invoiceDate)
	case domain.ResetMonthly:
		dateComponent = invoiceDate.Format("200601")
		from = time.Date(invoiceDate.Year(), invoiceDate.Month(), 1, 0, 0, 0, 0, invoiceDate.Location())
		to = from.AddDate(0, 1, -1)
	}

	recent, err := src.RecentInvoiceNumbers(ctx, storeID, from, to, recentScanLimit)
	if err != nil {
		return "", domain.Internal(err, "numbering.next", "failed to scan existing invoice numbers")
	}

	pattern := buildPattern(cfg, storeCode, dateComponent)
	sequence := maxSequence(pattern, recent) + 1

	for attempt := 0; attempt < maxAttempts; attempt++ {
		number := format(cfg, storeCode, dateComponent, fmt.Sprintf("%0*d", cfg.SequencePadding, sequence))

		exists, err := src.InvoiceNumberExists(ctx, number)
		if err != nil {
			return "", domain.Internal(err, "numbering.next", "failed to check invoice number")
		}
		if !exists {
			return number, nil
		}

		sequence++
	}

	// Circuit breaker: give up on strict sequencing and take a timestamp
	// sequence so the invoice can still be issued.
	number := format(cfg, storeCode, dateComponent, strconv.FormatInt(g.now().Unix(), 10))
	g.logger.Warn("invoice numbering collision retries exhausted, using timestamp sequence",
		"store_id", storeID,
		"invoice_number", number,
	)
	return number, nil
}

// buildPattern compiles the regexp that extracts the sequence part from an
// existing invoice number under the given scheme.
func buildPattern(cfg domain.NumberingConfig, storeCode, dateComponent string) *regexp.Regexp {
	parts := []string{regexp.QuoteMeta(cfg.Prefix), regexp.QuoteMeta(storeCode)}
	if dateComponent != "" {
		parts = append(parts, regexp.QuoteMeta(dateComponent))
	}
	parts = append(parts, `(\d+)`)

	return regexp.MustCompile("^" + strings.Join(parts, regexp.QuoteMeta(cfg.Separator)) + "$")
}

// maxSequence returns the highest sequence value among numbers matching the
// pattern, or 0 when none match.
func maxSequence(pattern *regexp.Regexp, numbers []string) int64 {
	var max int64
	for _, n := range numbers {
		m := pattern.FindStringSubmatch(n)
		if m == nil {
			continue
		}
		seq, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max
}

func format(cfg domain.NumberingConfig, storeCode, dateComponent, sequence string) string {
	parts := []string{cfg.Prefix, storeCode}
	if dateComponent != "" {
		parts = append(parts, dateComponent)
	}
	parts = append(parts, sequence)
	return strings.Join(parts, cfg.Separator)
}
