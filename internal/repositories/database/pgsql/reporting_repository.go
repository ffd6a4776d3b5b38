package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	portsrepo "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/repositories"
	"github.com/reifenmarkt/accounting_ledger_app/internal/utils/accounting"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetTrialBalanceData retrieves per-account debit and credit totals up to and
// including the given booking date. Storno pairs cancel out arithmetically, so
// no filtering on reversal state is needed.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_number,
			a.name AS account_name,
			a.account_type,
			COALESCE(SUM(CASE WHEN e.debit_account = a.account_number THEN e.amount ELSE 0 END), 0) AS total_debit,
			COALESCE(SUM(CASE WHEN e.credit_account = a.account_number THEN e.amount ELSE 0 END), 0) AS total_credit
		FROM accounts a
		JOIN ledger_entries e
			ON (e.debit_account = a.account_number OR e.credit_account = a.account_number)
			AND e.booking_date <= $1
		GROUP BY a.account_number, a.name, a.account_type
		ORDER BY a.account_number;
	`

	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountNumber,
			&row.AccountName,
			&accountType,
			&row.TotalDebit,
			&row.TotalCredit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		row.Balance = accounting.NaturalBalance(row.AccountType, row.TotalDebit, row.TotalCredit)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.TrialBalanceRow{}, nil
	}

	return result, nil
}
