package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/reifenmarkt/accounting_ledger_app/internal/apperrors"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	portsrepo "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/middleware"
)

var (
	ErrPeriodAlreadyClosed  = errors.New("fiscal period is already closed")
	ErrPeriodHasOpenEntries = errors.New("fiscal period still contains unlocked entries")
	ErrInvalidFiscalYear    = errors.New("invalid fiscal year")
)

// periodService manages the fiscal year close lifecycle.
type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
	entryRepo  portsrepo.EntryReader
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, entryRepo portsrepo.EntryReader) portssvc.PeriodSvcFacade {
	return &periodService{
		periodRepo: periodRepo,
		entryRepo:  entryRepo,
	}
}

// Ensure periodService implements the portssvc.PeriodSvcFacade interface
var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// GetPeriod retrieves the fiscal period record for a year. Years without a
// close record come back as open periods.
func (s *periodService) GetPeriod(ctx context.Context, year int) (*domain.FiscalPeriod, error) {
	if year <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFiscalYear, year)
	}
	period, err := s.periodRepo.FindPeriodByYear(ctx, year)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no fiscal period record for year %d", year))
		}
		return nil, err
	}
	return period, nil
}

// ListPeriods retrieves all known fiscal periods, newest first.
func (s *periodService) ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	periods, err := s.periodRepo.ListPeriods(ctx)
	if err != nil {
		logger.Error("Failed to list fiscal periods", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve fiscal periods: %w", err)
	}
	if periods == nil {
		periods = []domain.FiscalPeriod{}
	}
	return periods, nil
}

// IsPeriodOpen reports whether entries may still be posted to the year.
func (s *periodService) IsPeriodOpen(ctx context.Context, year int) (bool, error) {
	period, err := s.GetPeriod(ctx, year)
	if err != nil {
		return false, err
	}
	return !period.IsClosed(), nil
}

// ClosePeriod closes a fiscal year for posting. Closing requires every entry
// dated in the year to be locked, and it is irreversible.
func (s *periodService) ClosePeriod(ctx context.Context, year int, userID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if year <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFiscalYear, year)
	}

	// Early check for a friendlier error; the repository recounts under the
	// settings lock so a concurrent posting cannot slip past the close.
	openCount, err := s.entryRepo.CountUnlockedEntriesInYear(ctx, year)
	if err != nil {
		logger.Error("Failed to count unlocked entries", slog.String("error", err.Error()), slog.Int("year", year))
		return nil, fmt.Errorf("failed to count unlocked entries: %w", err)
	}
	if openCount > 0 {
		return nil, fmt.Errorf("%w: %d unlocked entries in %d", ErrPeriodHasOpenEntries, openCount, year)
	}

	now := time.Now().UTC()
	if err := s.periodRepo.ClosePeriod(ctx, year, userID, now); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			return nil, fmt.Errorf("%w: %d", ErrPeriodAlreadyClosed, year)
		case errors.Is(err, apperrors.ErrValidation):
			return nil, fmt.Errorf("%w: year %d", ErrPeriodHasOpenEntries, year)
		}
		logger.Error("Failed to close fiscal period", slog.String("error", err.Error()), slog.Int("year", year))
		return nil, fmt.Errorf("failed to close fiscal period %d: %w", year, err)
	}

	logger.Info("Fiscal period closed", slog.Int("year", year), slog.String("closed_by", userID))
	return &domain.FiscalPeriod{
		Year:     year,
		ClosedAt: &now,
		ClosedBy: userID,
	}, nil
}
