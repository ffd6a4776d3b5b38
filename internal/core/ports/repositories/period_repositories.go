package repositories

import (
	"context"
	"time"

	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
)

// PeriodReader defines read operations for fiscal period data
type PeriodReader interface {
	// FindPeriodByYear retrieves the fiscal period record for a year.
	// A year with no record is an open period.
	FindPeriodByYear(ctx context.Context, year int) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves all known fiscal periods, newest first.
	ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error)
}

// PeriodWriter defines write operations for fiscal period data
type PeriodWriter interface {
	// ClosePeriod marks a fiscal year closed. Closing an already closed year fails.
	// The close is serialized against concurrent entry posting.
	ClosePeriod(ctx context.Context, year int, userID string, now time.Time) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}

// PeriodRepositoryWithTx extends PeriodRepositoryFacade with transaction capabilities
type PeriodRepositoryWithTx interface {
	PeriodRepositoryFacade
	TransactionManager
}
