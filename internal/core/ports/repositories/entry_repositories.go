package repositories

import (
	"context"
	"time"

	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
)

// EntryListFilter carries the optional filters for listing ledger entries.
type EntryListFilter struct {
	FiscalYear    *int
	AccountNumber *string
	SourceType    *domain.SourceType
	SourceID      *string
	DateFrom      *time.Time
	DateTo        *time.Time
	Search        *string
	// IsStorno filters on the storno flag itself: nil means both kinds.
	IsStorno *bool
	// IncludeStorno=false hides storno entries and the originals they reverse.
	IncludeStorno bool
}

// EntryReader defines read operations for ledger entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific entry by its unique identifier,
	// including the ID of the entry that reversed it, if any.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindEntryByNumber retrieves an entry by its sequential entry number.
	FindEntryByNumber(ctx context.Context, entryNumber int64) (*domain.LedgerEntry, error)

	// ListEntries retrieves a paginated list of entries using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, filter EntryListFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// CountUnlockedEntriesInYear returns how many entries of the fiscal year are not yet locked.
	CountUnlockedEntriesInYear(ctx context.Context, year int) (int64, error)
}

// EntryWriter defines write operations for ledger entry data
type EntryWriter interface {
	// SaveEntry persists a new entry, assigning its entry number and document
	// number from the ledger sequence, and records the audit trail atomically.
	SaveEntry(ctx context.Context, entry *domain.LedgerEntry) error

	// SaveStorno persists a reversal entry linked to its original. The original
	// must not have been reversed before; a second reversal attempt fails.
	SaveStorno(ctx context.Context, storno *domain.LedgerEntry, originalEntryID string) error

	// LockEntry marks an entry immutable. Locking an already locked entry fails.
	LockEntry(ctx context.Context, entryID string, userID string, now time.Time) error
}

// AuditReader defines read operations for the entry audit trail
type AuditReader interface {
	// FindAuditLogsByEntryID retrieves the audit records of an entry, oldest first.
	FindAuditLogsByEntryID(ctx context.Context, entryID string) ([]domain.AuditLog, error)
}

// EntryRepositoryFacade combines all entry-related repository interfaces
// This is a facade for clients that need access to all operations
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
	AuditReader
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
