package gst_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikasavn/dukaan/internal/gst"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Ten units at 100 rupees with 18% GST is the canonical worked example:
// intra-state splits into 90 CGST + 90 SGST, inter-state allocates the full
// 180 to IGST.
func Test_CalculateLine_EighteenPercentSplit(t *testing.T) {
	t.Run("intra-state", func(t *testing.T) {
		lt := gst.CalculateLine(dec("10"), dec("100"), dec("18"), decimal.Zero, false)

		assert.True(t, dec("1000.00").Equal(lt.Subtotal), "subtotal = 10 * 100")
		assert.True(t, dec("9").Equal(lt.CGSTRate), "half of 18")
		assert.True(t, dec("9").Equal(lt.SGSTRate), "half of 18")
		assert.True(t, lt.IGSTRate.IsZero())
		assert.True(t, dec("90.00").Equal(lt.CGSTAmount), "1000 * 9%")
		assert.True(t, dec("90.00").Equal(lt.SGSTAmount), "1000 * 9%")
		assert.True(t, lt.IGSTAmount.IsZero())
		assert.True(t, dec("180.00").Equal(lt.TaxAmount))
		assert.True(t, dec("1180.00").Equal(lt.TotalAmount))
	})

	t.Run("inter-state", func(t *testing.T) {
		lt := gst.CalculateLine(dec("10"), dec("100"), dec("18"), decimal.Zero, true)

		assert.True(t, dec("1000.00").Equal(lt.Subtotal))
		assert.True(t, lt.CGSTRate.IsZero())
		assert.True(t, lt.SGSTRate.IsZero())
		assert.True(t, dec("18").Equal(lt.IGSTRate), "full rate goes to IGST")
		assert.True(t, lt.CGSTAmount.IsZero())
		assert.True(t, lt.SGSTAmount.IsZero())
		assert.True(t, dec("180.00").Equal(lt.IGSTAmount))
		assert.True(t, dec("180.00").Equal(lt.TaxAmount))
		assert.True(t, dec("1180.00").Equal(lt.TotalAmount))
	})
}

func Test_CalculateLine_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		quantity    string
		unitPrice   string
		taxRate     string
		cessRate    string
		interState  bool
		subtotal    string
		cgst        string
		sgst        string
		igst        string
		cess        string
		total       string
		explanation string
	}{
		{
			name:     "zero tax rate",
			quantity: "5", unitPrice: "40", taxRate: "0", cessRate: "0",
			subtotal: "200.00", cgst: "0", sgst: "0", igst: "0", cess: "0", total: "200.00",
			explanation: "Exempt goods carry no tax",
		},
		{
			name:     "five percent intra-state",
			quantity: "3", unitPrice: "99.50", taxRate: "5", cessRate: "0",
			subtotal: "298.50", cgst: "7.46", sgst: "7.46", igst: "0", cess: "0", total: "313.42",
			explanation: "298.50 * 2.5% = 7.4625, rounds to 7.46 per half",
		},
		{
			name:     "twelve percent inter-state",
			quantity: "2", unitPrice: "450", taxRate: "12", cessRate: "0", interState: true,
			subtotal: "900.00", cgst: "0", sgst: "0", igst: "108.00", cess: "0", total: "1008.00",
			explanation: "900 * 12% = 108 all IGST",
		},
		{
			name:     "cess on top of gst",
			quantity: "1", unitPrice: "1000", taxRate: "28", cessRate: "12",
			subtotal: "1000.00", cgst: "140.00", sgst: "140.00", igst: "0", cess: "120.00", total: "1400.00",
			explanation: "Luxury slab 28% plus 12% cess on the taxable value",
		},
		{
			name:     "fractional quantity",
			quantity: "2.5", unitPrice: "18.40", taxRate: "18", cessRate: "0",
			subtotal: "46.00", cgst: "4.14", sgst: "4.14", igst: "0", cess: "0", total: "54.28",
			explanation: "Weighed goods sell in fractional units",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lt := gst.CalculateLine(dec(tt.quantity), dec(tt.unitPrice), dec(tt.taxRate), dec(tt.cessRate), tt.interState)

			assert.True(t, dec(tt.subtotal).Equal(lt.Subtotal), "subtotal: %s", tt.explanation)
			assert.True(t, dec(tt.cgst).Equal(lt.CGSTAmount), "cgst: %s", tt.explanation)
			assert.True(t, dec(tt.sgst).Equal(lt.SGSTAmount), "sgst: %s", tt.explanation)
			assert.True(t, dec(tt.igst).Equal(lt.IGSTAmount), "igst: %s", tt.explanation)
			assert.True(t, dec(tt.cess).Equal(lt.CessAmount), "cess: %s", tt.explanation)
			assert.True(t, dec(tt.total).Equal(lt.TotalAmount), "total: %s", tt.explanation)
		})
	}
}

func Test_CalculateTotals_RollupAndRounding(t *testing.T) {
	lines := []gst.LineTax{
		gst.CalculateLine(dec("10"), dec("100"), dec("18"), decimal.Zero, false),
		gst.CalculateLine(dec("3"), dec("99.50"), dec("5"), decimal.Zero, false),
	}

	totals := gst.CalculateTotals(lines, decimal.Zero, decimal.Zero)

	require.True(t, dec("1298.50").Equal(totals.Subtotal), "1000 + 298.50")
	assert.True(t, dec("194.92").Equal(totals.TotalTax), "180 + 14.92")
	assert.True(t, dec("97.46").Equal(totals.CGSTAmount))
	assert.True(t, dec("97.46").Equal(totals.SGSTAmount))
	assert.True(t, totals.IGSTAmount.IsZero())

	// 1493.42 rounds down to 1493, round-off is -0.42.
	assert.True(t, dec("1493").Equal(totals.TotalAmount))
	assert.True(t, dec("-0.42").Equal(totals.RoundOff))
	assert.Equal(t, "One Thousand Four Hundred Ninety Three Rupees Only", totals.AmountInWords)
}

func Test_CalculateTotals_RoundingInvariant(t *testing.T) {
	tests := []struct {
		name        string
		gross       string
		total       string
		roundOff    string
		explanation string
	}{
		{
			name:  "already whole",
			gross: "1180.00", total: "1180", roundOff: "0.00",
			explanation: "Whole rupee amounts need no adjustment",
		},
		{
			name:  "rounds down",
			gross: "999.40", total: "999", roundOff: "-0.40",
			explanation: "Below the midpoint rounds down",
		},
		{
			name:  "rounds up",
			gross: "999.60", total: "1000", roundOff: "0.40",
			explanation: "Above the midpoint rounds up",
		},
		{
			name:  "half rounds to even below",
			gross: "100.50", total: "100", roundOff: "-0.50",
			explanation: "Banker's rounding: 100.50 goes to the even 100",
		},
		{
			name:  "half rounds to even above",
			gross: "101.50", total: "102", roundOff: "0.50",
			explanation: "Banker's rounding: 101.50 goes to the even 102",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []gst.LineTax{{Subtotal: dec(tt.gross)}}
			totals := gst.CalculateTotals(lines, decimal.Zero, decimal.Zero)

			assert.True(t, dec(tt.total).Equal(totals.TotalAmount), tt.explanation)
			assert.True(t, dec(tt.roundOff).Equal(totals.RoundOff), tt.explanation)
			assert.True(t, totals.RoundOff.Abs().LessThan(dec("1.00")), "round-off magnitude stays under one rupee")
			assert.True(t, totals.TotalAmount.Equal(totals.GrossTotal.Add(totals.RoundOff)), "total = gross + round-off")
		})
	}
}

func Test_CalculateTotals_InvoiceLevelCessAndTCS(t *testing.T) {
	lines := []gst.LineTax{
		gst.CalculateLine(dec("10"), dec("100"), dec("18"), decimal.Zero, false),
	}

	totals := gst.CalculateTotals(lines, dec("20.00"), dec("11.80"))

	// 1000 + 180 + 20 + 11.80 = 1211.80, rounds to 1212.
	assert.True(t, dec("1211.80").Equal(totals.GrossTotal))
	assert.True(t, dec("1212").Equal(totals.TotalAmount))
	assert.True(t, dec("0.20").Equal(totals.RoundOff))
}

func Test_CalculateTotals_EmptyLines(t *testing.T) {
	totals := gst.CalculateTotals(nil, decimal.Zero, decimal.Zero)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TotalAmount.IsZero())
	assert.Equal(t, "Zero Rupees Only", totals.AmountInWords)
}
