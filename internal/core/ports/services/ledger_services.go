package services

import (
	"context"

	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	"github.com/reifenmarkt/accounting_ledger_app/internal/dto"
)

// LedgerReaderSvc defines read operations for ledger entry data
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a specific entry by its ID.
	GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a paginated list of entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// GetAuditTrail retrieves the audit records of an entry, oldest first.
	GetAuditTrail(ctx context.Context, entryID string) ([]domain.AuditLog, error)
}

// LedgerWriterSvc defines write operations for ledger entry data
type LedgerWriterSvc interface {
	// PostEntry validates and persists a new ledger entry.
	PostEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error)

	// LockEntry marks an entry immutable.
	LockEntry(ctx context.Context, entryID string, userID string) (*domain.LedgerEntry, error)

	// ReverseEntry creates a compensating storno entry for a locked entry.
	ReverseEntry(ctx context.Context, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
