package services

import (
	"context"

	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
)

// PeriodReaderSvc defines read operations for fiscal period data
type PeriodReaderSvc interface {
	// GetPeriod retrieves the fiscal period record for a year.
	GetPeriod(ctx context.Context, year int) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves all known fiscal periods, newest first.
	ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error)

	// IsPeriodOpen reports whether entries may still be posted to the year.
	IsPeriodOpen(ctx context.Context, year int) (bool, error)
}

// PeriodWriterSvc defines write operations for fiscal period data
type PeriodWriterSvc interface {
	// ClosePeriod closes a fiscal year for posting.
	ClosePeriod(ctx context.Context, year int, userID string) (*domain.FiscalPeriod, error)
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}
