package gst

import (
	"fmt"
	"time"
)

// FinancialYear returns the Indian financial year label for a date, in the
// form "2024-25". The financial year runs April 1 through March 31.
func FinancialYear(date time.Time) string {
	startYear := date.Year()
	if date.Month() < time.April {
		startYear--
	}
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// FinancialYearRange returns the first and last day of the financial year
// containing the given date.
func FinancialYearRange(date time.Time) (start, end time.Time) {
	startYear := date.Year()
	if date.Month() < time.April {
		startYear--
	}
	start = time.Date(startYear, time.April, 1, 0, 0, 0, 0, date.Location())
	end = time.Date(startYear+1, time.March, 31, 0, 0, 0, 0, date.Location())
	return start, end
}
