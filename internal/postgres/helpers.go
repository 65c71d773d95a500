package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// pgTextFromString returns a pgtype.Text, invalid for empty strings so they
// store as NULL.
func pgTextFromString(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

// pgDateFromPtr converts an optional time into a pgtype.Date.
func pgDateFromPtr(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *t, Valid: true}
}

// timePtrFromDate converts a nullable date column back to *time.Time.
func timePtrFromDate(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

// timePtrFromTimestamptz converts a nullable timestamp column to *time.Time.
func timePtrFromTimestamptz(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}
