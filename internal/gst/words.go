package gst

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var wordOnes = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen"}

var wordTens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty",
	"Seventy", "Eighty", "Ninety"}

// hundredsInWords renders 0-999 as words, or "" for zero.
func hundredsInWords(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, wordOnes[n/100], "Hundred")
		n %= 100
	}
	if n >= 20 {
		parts = append(parts, wordTens[n/10])
		n %= 10
	}
	if n > 0 {
		parts = append(parts, wordOnes[n])
	}
	return strings.Join(parts, " ")
}

// AmountInWords renders a whole-rupee amount in the Indian numbering system
// (ones, tens, hundred, thousand, lakh, crore), suffixed "Rupees Only".
// Zero renders as "Zero Rupees Only".
func AmountInWords(amount int64) string {
	if amount == 0 {
		return "Zero Rupees Only"
	}

	groups := []struct {
		value int64
		name  string
	}{
		{amount / 10000000, "Crore"},
		{(amount % 10000000) / 100000, "Lakh"},
		{(amount % 100000) / 1000, "Thousand"},
		{amount % 1000, ""},
	}

	var parts []string
	for _, g := range groups {
		if g.value == 0 {
			continue
		}
		parts = append(parts, hundredsInWords(g.value))
		if g.name != "" {
			parts = append(parts, g.name)
		}
	}
	parts = append(parts, "Rupees Only")

	return strings.Join(parts, " ")
}

// FormatIndianCurrency formats an amount with Indian digit grouping: the
// last three digits stand alone, then commas every two digits.
// 1234567.89 renders as "12,34,567.89".
func FormatIndianCurrency(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	abs := amount.Abs()

	intPart := abs.IntPart()
	fracPart := strings.SplitN(abs.StringFixed(2), ".", 2)[1]

	intStr := fmt.Sprintf("%d", intPart)
	var grouped string
	if len(intStr) <= 3 {
		grouped = intStr
	} else {
		lastThree := intStr[len(intStr)-3:]
		remaining := intStr[:len(intStr)-3]
		for len(remaining) > 2 {
			lastThree = remaining[len(remaining)-2:] + "," + lastThree
			remaining = remaining[:len(remaining)-2]
		}
		grouped = remaining + "," + lastThree
	}

	result := grouped + "." + fracPart
	if negative {
		result = "-" + result
	}
	return result
}
