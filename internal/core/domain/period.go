package domain

import "time"

// FiscalPeriod represents one fiscal year. Once closed, no entry dated inside
// the year may be created, locked, or reversed, and closing is irreversible.
type FiscalPeriod struct {
	Year     int        `json:"year"`
	ClosedAt *time.Time `json:"closedAt,omitempty"`
	ClosedBy string     `json:"closedBy,omitempty"` // UserID reference
}

// IsClosed reports whether the period has been closed.
func (p *FiscalPeriod) IsClosed() bool {
	return p.ClosedAt != nil
}
