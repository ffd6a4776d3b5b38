package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the persistence model for one booking row.
// storno_of_entry_id carries a UNIQUE index; that index is what guarantees
// at-most-one storno per entry under concurrent reversal attempts.
type LedgerEntry struct {
	EntryID         string          `db:"entry_id"`
	EntryNumber     int64           `db:"entry_number"`
	DocumentNo      string          `db:"document_no"`
	BookingDate     time.Time       `db:"booking_date"`
	DebitAcct       string          `db:"debit_account"`
	CreditAcct      string          `db:"credit_account"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	SourceType      string          `db:"source_type"`
	SourceID        string          `db:"source_id"`
	Reference       string          `db:"reference"`
	Locked          bool            `db:"locked"`
	IsStorno        bool            `db:"is_storno"`
	StornoOfEntryID *string         `db:"storno_of_entry_id"`
	// Joined from the referencing storno row when reading; not a column on this row.
	ReversedByEntryID *string `db:"reversed_by_entry_id"`
	AuditFields
}
