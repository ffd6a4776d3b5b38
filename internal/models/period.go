package models

import "time"

// FiscalPeriod is the persistence model for one fiscal year row.
type FiscalPeriod struct {
	Year     int        `db:"year"`
	ClosedAt *time.Time `db:"closed_at"`
	ClosedBy string     `db:"closed_by"`
}
