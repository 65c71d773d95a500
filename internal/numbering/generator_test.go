package numbering_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikasavn/dukaan/internal/domain"
	"github.com/vikasavn/dukaan/internal/numbering"
)

// fakeSource serves canned invoice numbers and records existence checks.
type fakeSource struct {
	recent   []string
	existing map[string]bool

	scanFrom time.Time
	scanTo   time.Time
	checked  []string
}

func (f *fakeSource) RecentInvoiceNumbers(ctx context.Context, storeID int64, from, to time.Time, limit int32) ([]string, error) {
	f.scanFrom, f.scanTo = from, to
	return f.recent, nil
}

func (f *fakeSource) InvoiceNumberExists(ctx context.Context, number string) (bool, error) {
	f.checked = append(f.checked, number)
	return f.existing[number], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_Generator_DefaultYearlyScheme(t *testing.T) {
	gen := numbering.New(testLogger())
	date := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("first invoice of the year", func(t *testing.T) {
		src := &fakeSource{existing: map[string]bool{}}

		number, err := gen.Next(context.Background(), src, domain.NumberingConfig{}, 1, date)

		require.NoError(t, err)
		assert.Equal(t, "INV/S01/2025-26/0001", number, "empty config falls back to INV / yearly / padding 4")
	})

	t.Run("continues from highest existing sequence", func(t *testing.T) {
		src := &fakeSource{
			recent: []string{
				"INV/S01/2025-26/0007",
				"INV/S01/2025-26/0003",
				"INV/S01/2024-25/0042", // previous FY, different date component
				"BILL/S01/2025-26/0099", // different prefix
			},
			existing: map[string]bool{},
		}

		number, err := gen.Next(context.Background(), src, domain.NumberingConfig{}, 1, date)

		require.NoError(t, err)
		assert.Equal(t, "INV/S01/2025-26/0008", number, "only numbers matching the current scheme count")
	})

	t.Run("scan window covers the financial year", func(t *testing.T) {
		src := &fakeSource{existing: map[string]bool{}}

		_, err := gen.Next(context.Background(), src, domain.NumberingConfig{}, 1, date)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), src.scanFrom)
		assert.Equal(t, time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), src.scanTo)
	})
}

func Test_Generator_CustomSchemes(t *testing.T) {
	gen := numbering.New(testLogger())

	tests := []struct {
		name        string
		cfg         domain.NumberingConfig
		storeID     int64
		date        time.Time
		expected    string
		explanation string
	}{
		{
			name: "monthly reset",
			cfg: domain.NumberingConfig{
				Prefix: "BILL", Separator: "-", SequencePadding: 3, ResetFrequency: domain.ResetMonthly,
			},
			storeID:     7,
			date:        time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
			expected:    "BILL-S07-202501-001",
			explanation: "Monthly scheme uses YYYYMM date component",
		},
		{
			name: "never reset drops the date component",
			cfg: domain.NumberingConfig{
				Prefix: "TXN", Separator: "_", SequencePadding: 6, ResetFrequency: domain.ResetNever,
			},
			storeID:     12,
			date:        time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
			expected:    "TXN_S12_000001",
			explanation: "Never-reset numbers have no FY or month part",
		},
		{
			name: "wide store id keeps two digit minimum",
			cfg: domain.NumberingConfig{
				Prefix: "INV", Separator: "/", SequencePadding: 4, ResetFrequency: domain.ResetYearly,
			},
			storeID:     104,
			date:        time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
			expected:    "INV/S104/2025-26/0001",
			explanation: "Store codes pad to two digits but grow as needed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{existing: map[string]bool{}}

			number, err := gen.Next(context.Background(), src, tt.cfg, tt.storeID, tt.date)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, number, tt.explanation)
		})
	}
}

func Test_Generator_CollisionRetry(t *testing.T) {
	gen := numbering.New(testLogger())
	date := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("steps past a concurrent writer", func(t *testing.T) {
		// A concurrent transaction took 0001 and 0002 after our scan.
		src := &fakeSource{
			existing: map[string]bool{
				"INV/S01/2025-26/0001": true,
				"INV/S01/2025-26/0002": true,
			},
		}

		number, err := gen.Next(context.Background(), src, domain.NumberingConfig{}, 1, date)

		require.NoError(t, err)
		assert.Equal(t, "INV/S01/2025-26/0003", number)
		assert.Len(t, src.checked, 3, "two collisions then success")
	})

	t.Run("exhausted retries fall back to timestamp", func(t *testing.T) {
		src := &fakeSource{existing: map[string]bool{}}
		// Every candidate collides.
		for i := 1; i <= 10; i++ {
			src.existing["INV/S01/2025-26/"+padded(i)] = true
		}

		number, err := gen.Next(context.Background(), src, domain.NumberingConfig{}, 1, date)

		require.NoError(t, err, "numbering contention must never fail invoice creation")
		assert.Regexp(t, `^INV/S01/2025-26/\d{10}$`, number, "sequence part becomes a unix timestamp")
		assert.Len(t, src.checked, 10)
	})
}

func padded(n int) string {
	digits := []byte{'0', '0', '0', '0'}
	for i := 3; i >= 0 && n > 0; i-- {
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits)
}
