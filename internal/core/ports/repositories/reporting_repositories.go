package repositories

import (
	"context"
	"time"

	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetTrialBalanceData retrieves per-account debit and credit totals up to
	// and including the given booking date.
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
