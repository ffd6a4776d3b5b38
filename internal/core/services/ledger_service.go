package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/reifenmarkt/accounting_ledger_app/internal/apperrors"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	portsrepo "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/dto"
	"github.com/reifenmarkt/accounting_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownAccount       = errors.New("entry references an unknown account")
	ErrInactiveAccount      = errors.New("entry references an inactive account")
	ErrSelfReferencingEntry = errors.New("debit and credit account must differ")
	ErrInvalidAmount        = errors.New("entry amount must be positive")
	ErrMissingDescription   = errors.New("entry description is required")
	ErrPeriodClosed         = errors.New("fiscal period is closed")
	ErrAlreadyLocked        = errors.New("entry is already locked")
	ErrEntryNotLocked       = errors.New("entry must be locked before it can be reversed")
	ErrStornoOfStorno       = errors.New("a storno entry cannot be reversed")
	ErrAlreadyReversed      = errors.New("entry has already been reversed")
	ErrInvalidReason        = errors.New("storno reason must be at least 3 characters")
)

// minStornoReasonLen is the shortest accepted storno reason after trimming.
const minStornoReasonLen = 3

// ledgerService provides the core booking, locking and reversal operations.
type ledgerService struct {
	entryRepo   portsrepo.EntryRepositoryFacade
	accountRepo portsrepo.AccountReader
	periodRepo  portsrepo.PeriodReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(entryRepo portsrepo.EntryRepositoryFacade, accountRepo portsrepo.AccountReader, periodRepo portsrepo.PeriodReader) portssvc.LedgerSvcFacade {
	return &ledgerService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateAccounts checks that both sides of an entry reference known, active accounts.
func (s *ledgerService) validateAccounts(ctx context.Context, debitAcct, creditAcct string) error {
	accounts, err := s.accountRepo.FindAccountsByNumbers(ctx, []string{debitAcct, creditAcct})
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, number := range []string{debitAcct, creditAcct} {
		acc, found := accounts[number]
		if !found {
			return fmt.Errorf("%w: %s", ErrUnknownAccount, number)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: %s", ErrInactiveAccount, number)
		}
	}
	return nil
}

// checkPeriodOpen rejects bookings into a closed fiscal year. The repository
// repeats this check inside the write transaction; this early check just
// produces the friendlier error without burning an entry number.
func (s *ledgerService) checkPeriodOpen(ctx context.Context, bookingDate time.Time) error {
	period, err := s.periodRepo.FindPeriodByYear(ctx, bookingDate.Year())
	if err != nil {
		return fmt.Errorf("failed to check fiscal period: %w", err)
	}
	if period.IsClosed() {
		return fmt.Errorf("%w: fiscal year %d", ErrPeriodClosed, bookingDate.Year())
	}
	return nil
}

// PostEntry validates and persists a new ledger entry.
func (s *ledgerService) PostEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateAccounts(ctx, req.DebitAcct, req.CreditAcct); err != nil {
		return nil, err
	}
	if req.DebitAcct == req.CreditAcct {
		return nil, fmt.Errorf("%w: %s", ErrSelfReferencingEntry, req.DebitAcct)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, req.Amount.String())
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrMissingDescription
	}
	if err := s.checkPeriodOpen(ctx, req.BookingDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		BookingDate: req.BookingDate,
		DebitAcct:   req.DebitAcct,
		CreditAcct:  req.CreditAcct,
		Amount:      req.Amount,
		Description: req.Description,
		SourceType:  req.SourceType,
		SourceID:    req.SourceID,
		Reference:   req.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, &entry); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// The period was closed between the early check and the write.
			return nil, fmt.Errorf("%w: fiscal year %d", ErrPeriodClosed, req.BookingDate.Year())
		}
		logger.Error("Failed to save entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("document_no", entry.DocumentNo),
		slog.String("amount", entry.Amount.String()))
	return &entry, nil
}

// LockEntry marks an entry immutable.
func (s *ledgerService) LockEntry(ctx context.Context, entryID string, userID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.entryRepo.LockEntry(ctx, entryID, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyLocked, entryID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to lock entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload entry %s after lock: %w", entryID, err)
	}

	logger.Info("Entry locked", slog.String("entry_id", entryID), slog.String("document_no", entry.DocumentNo))
	return entry, nil
}

// ReverseEntry creates a compensating storno entry for a locked entry. The
// original row is never modified; the correction is a new entry with debit
// and credit swapped, linked through StornoOfEntryID.
func (s *ledgerService) ReverseEntry(ctx context.Context, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch entry for reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	if !original.Locked {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotLocked, entryID)
	}
	if original.IsStorno {
		return nil, fmt.Errorf("%w: %s", ErrStornoOfStorno, entryID)
	}
	if original.IsReversed() {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyReversed, entryID)
	}
	reason := strings.TrimSpace(req.Reason)
	if utf8.RuneCountInString(reason) < minStornoReasonLen {
		return nil, ErrInvalidReason
	}

	// Both the original entry's period and the posting period must be open.
	// A correction of a closed year takes a new-year correcting entry instead.
	if err := s.checkPeriodOpen(ctx, original.BookingDate); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	bookingDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := s.checkPeriodOpen(ctx, bookingDate); err != nil {
		return nil, err
	}

	// Storno entries are born locked: they are pure compensations and must
	// never be edited or reversed again.
	storno := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		BookingDate:     bookingDate,
		DebitAcct:       original.CreditAcct,
		CreditAcct:      original.DebitAcct,
		Amount:          original.Amount,
		Description:     fmt.Sprintf("STORNO: %s (Grund: %s)", original.Description, reason),
		SourceType:      original.SourceType,
		SourceID:        original.SourceID,
		Reference:       fmt.Sprintf("STORNO-%s", original.DocumentNo),
		Locked:          true,
		IsStorno:        true,
		StornoOfEntryID: &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.entryRepo.SaveStorno(ctx, &storno, original.EntryID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			// A concurrent reversal won the race on the unique storno link.
			return nil, fmt.Errorf("%w: %s", ErrAlreadyReversed, entryID)
		case errors.Is(err, apperrors.ErrConflict):
			return nil, fmt.Errorf("%w: fiscal year %d", ErrPeriodClosed, bookingDate.Year())
		case errors.Is(err, apperrors.ErrValidation):
			return nil, fmt.Errorf("%w: %s", ErrEntryNotLocked, entryID)
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, err
		}
		logger.Error("Failed to save storno entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save storno entry: %w", err)
	}

	logger.Info("Entry reversed",
		slog.String("entry_id", entryID),
		slog.String("storno_entry_id", storno.EntryID),
		slog.String("storno_document_no", storno.DocumentNo))
	return &storno, nil
}

// GetEntryByID retrieves a specific entry by its ID.
func (s *ledgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// ListEntries retrieves a paginated list of entries.
func (s *ledgerService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.EntryListFilter{
		FiscalYear:    params.FiscalYear,
		AccountNumber: params.AccountNumber,
		SourceType:    params.SourceType,
		SourceID:      params.SourceID,
		DateFrom:      params.DateFrom,
		DateTo:        params.DateTo,
		Search:        params.Search,
		IsStorno:      params.IsStorno,
		IncludeStorno: params.IncludeStorno,
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// GetAuditTrail retrieves the audit records of an entry, oldest first.
func (s *ledgerService) GetAuditTrail(ctx context.Context, entryID string) ([]domain.AuditLog, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Verify the entry exists so a bogus ID yields NotFound, not an empty trail.
	if _, err := s.entryRepo.FindEntryByID(ctx, entryID); err != nil {
		return nil, err
	}

	logs, err := s.entryRepo.FindAuditLogsByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch audit trail", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve audit trail: %w", err)
	}
	return logs, nil
}
