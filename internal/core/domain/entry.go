package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceType tags the business origin of a ledger entry.
type SourceType string

const (
	SourceCommission    SourceType = "COMMISSION"
	SourceExpense       SourceType = "EXPENSE"
	SourceTravelExpense SourceType = "TRAVEL_EXPENSE"
	SourcePayroll       SourceType = "PAYROLL"
	SourceProcurement   SourceType = "PROCUREMENT"
	SourceInfluencer    SourceType = "INFLUENCER"
	SourceVehicle       SourceType = "VEHICLE"
	SourceManual        SourceType = "MANUAL"
)

// EntryState is the lifecycle state of a ledger entry.
// OPEN -> LOCKED -> REVERSED; no transition ever goes back.
type EntryState string

const (
	EntryOpen     EntryState = "OPEN"
	EntryLocked   EntryState = "LOCKED"
	EntryReversed EntryState = "REVERSED"
)

// LedgerEntry is a single double-entry booking: one debit account, one credit
// account, one positive amount. Entries are append-only; a locked entry's
// business fields never change, and corrections happen through a compensating
// storno entry, never through mutation or deletion.
type LedgerEntry struct {
	EntryID     string          `json:"entryID"`     // Primary key (UUID)
	EntryNumber int64           `json:"entryNumber"` // Sequential booking number, assigned at insert
	DocumentNo  string          `json:"documentNo"`  // Human-facing number, e.g. BEL-2024-000001
	BookingDate time.Time       `json:"bookingDate"`
	DebitAcct   string          `json:"debitAccount"`  // Account number (Soll)
	CreditAcct  string          `json:"creditAccount"` // Account number (Haben)
	Amount      decimal.Decimal `json:"amount"`        // Always > 0
	Description string          `json:"description"`
	SourceType  SourceType      `json:"sourceType"`
	SourceID    string          `json:"sourceID,omitempty"`  // Optional link to the originating business object
	Reference   string          `json:"reference,omitempty"` // e.g. STORNO-BEL-2024-000001
	Locked      bool            `json:"locked"`
	IsStorno    bool            `json:"isStorno"`
	// StornoOfEntryID points from a storno entry to the entry it cancels.
	StornoOfEntryID *string `json:"stornoOfEntryID,omitempty"`
	// ReversedByEntryID is derived at read time: the ID of the storno entry
	// referencing this one, if any. It is never stored on the row itself.
	ReversedByEntryID *string `json:"reversedByEntryID,omitempty"`
	AuditFields
}

// State derives the lifecycle state from the persisted fields.
func (e *LedgerEntry) State() EntryState {
	switch {
	case e.ReversedByEntryID != nil:
		return EntryReversed
	case e.Locked:
		return EntryLocked
	default:
		return EntryOpen
	}
}

// IsReversed reports whether a storno entry referencing this entry exists.
func (e *LedgerEntry) IsReversed() bool {
	return e.ReversedByEntryID != nil
}
