package gst

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// LineTax holds the computed tax breakdown for one invoice line. All fields
// are exact decimals; amounts carry 2 fractional digits.
type LineTax struct {
	Subtotal decimal.Decimal

	CGSTRate decimal.Decimal
	SGSTRate decimal.Decimal
	IGSTRate decimal.Decimal

	CGSTAmount decimal.Decimal
	SGSTAmount decimal.Decimal
	IGSTAmount decimal.Decimal
	CessAmount decimal.Decimal

	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// CalculateLine computes the GST breakdown for one line.
//
// Inter-state sales allocate the whole rate to IGST; intra-state sales split
// it evenly between CGST and SGST. Cess is charged on the taxable value at
// its own rate.
func CalculateLine(quantity, unitPrice, taxRate, cessRate decimal.Decimal, interState bool) LineTax {
	subtotal := quantity.Mul(unitPrice).Round(2)

	var lt LineTax
	lt.Subtotal = subtotal

	if interState {
		lt.IGSTRate = taxRate
		lt.CGSTRate = decimal.Zero
		lt.SGSTRate = decimal.Zero
	} else {
		half := taxRate.Div(decimal.NewFromInt(2))
		lt.CGSTRate = half
		lt.SGSTRate = half
		lt.IGSTRate = decimal.Zero
	}

	lt.CGSTAmount = subtotal.Mul(lt.CGSTRate).Div(hundred).Round(2)
	lt.SGSTAmount = subtotal.Mul(lt.SGSTRate).Div(hundred).Round(2)
	lt.IGSTAmount = subtotal.Mul(lt.IGSTRate).Div(hundred).Round(2)
	lt.CessAmount = subtotal.Mul(cessRate).Div(hundred).Round(2)

	lt.TaxAmount = lt.CGSTAmount.Add(lt.SGSTAmount).Add(lt.IGSTAmount).Add(lt.CessAmount)
	lt.TotalAmount = subtotal.Add(lt.TaxAmount)

	return lt
}

// Totals holds the invoice-level rollup of line taxes.
type Totals struct {
	Subtotal   decimal.Decimal
	TotalTax   decimal.Decimal
	CGSTAmount decimal.Decimal
	SGSTAmount decimal.Decimal
	IGSTAmount decimal.Decimal

	// GrossTotal is the unrounded sum including invoice-level cess and TCS.
	GrossTotal decimal.Decimal

	// RoundOff is the signed adjustment taking the gross total to the
	// nearest whole rupee, banker's rounding. Always |RoundOff| < 1.
	RoundOff decimal.Decimal

	// TotalAmount is the rounded payable amount.
	TotalAmount decimal.Decimal

	AmountInWords string
}

// CalculateTotals rolls line taxes up to invoice level. Cess and TCS are
// invoice-level levies entered independently of the lines.
func CalculateTotals(lines []LineTax, cessAmount, tcsAmount decimal.Decimal) Totals {
	var t Totals
	t.Subtotal = decimal.Zero
	t.TotalTax = decimal.Zero
	t.CGSTAmount = decimal.Zero
	t.SGSTAmount = decimal.Zero
	t.IGSTAmount = decimal.Zero

	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.Subtotal)
		t.TotalTax = t.TotalTax.Add(l.TaxAmount)
		t.CGSTAmount = t.CGSTAmount.Add(l.CGSTAmount)
		t.SGSTAmount = t.SGSTAmount.Add(l.SGSTAmount)
		t.IGSTAmount = t.IGSTAmount.Add(l.IGSTAmount)
	}

	t.GrossTotal = t.Subtotal.Add(t.TotalTax).Add(cessAmount).Add(tcsAmount)
	t.TotalAmount = t.GrossTotal.RoundBank(0)
	t.RoundOff = t.TotalAmount.Sub(t.GrossTotal)
	t.AmountInWords = AmountInWords(t.TotalAmount.IntPart())

	return t
}
