package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reifenmarkt/accounting_ledger_app/internal/apperrors"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	portsrepo "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/repositories"
	"github.com/reifenmarkt/accounting_ledger_app/internal/models"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for fiscal period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryWithTx {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodRepositoryWithTx
var _ portsrepo.PeriodRepositoryWithTx = (*PgxPeriodRepository)(nil)

// FindPeriodByYear retrieves the period record for a year. A year without a
// record has never been closed and is returned as an open period.
func (r *PgxPeriodRepository) FindPeriodByYear(ctx context.Context, year int) (*domain.FiscalPeriod, error) {
	query := `SELECT year, closed_at, closed_by FROM fiscal_periods WHERE year = $1;`

	var m models.FiscalPeriod
	err := r.Pool.QueryRow(ctx, query, year).Scan(&m.Year, &m.ClosedAt, &m.ClosedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.FiscalPeriod{Year: year}, nil
		}
		return nil, fmt.Errorf("failed to find fiscal period %d: %w", year, err)
	}

	return &domain.FiscalPeriod{Year: m.Year, ClosedAt: m.ClosedAt, ClosedBy: m.ClosedBy}, nil
}

// ListPeriods retrieves all closed fiscal periods, newest first.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	query := `SELECT year, closed_at, closed_by FROM fiscal_periods ORDER BY year DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal periods: %w", err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		var m models.FiscalPeriod
		if err := rows.Scan(&m.Year, &m.ClosedAt, &m.ClosedBy); err != nil {
			return nil, fmt.Errorf("failed to scan fiscal period row: %w", err)
		}
		periods = append(periods, domain.FiscalPeriod{Year: m.Year, ClosedAt: m.ClosedAt, ClosedBy: m.ClosedBy})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal period rows: %w", err)
	}

	return periods, nil
}

// ClosePeriod closes a fiscal year within a DB transaction. It runs under the
// settings row lock, so no entry can be posted into the year between the open
// entry check and the close becoming visible.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, year int, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := lockSettingsRow(ctx, tx); err != nil {
		return err
	}

	var unlocked int64
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM ledger_entries
		WHERE EXTRACT(YEAR FROM booking_date) = $1 AND locked = FALSE;
	`, year).Scan(&unlocked)
	if err != nil {
		return fmt.Errorf("failed to count unlocked entries for year %d: %w", year, err)
	}
	if unlocked > 0 {
		return fmt.Errorf("%w: fiscal year %d has %d unlocked entries", apperrors.ErrValidation, year, unlocked)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO fiscal_periods (year, closed_at, closed_by)
		VALUES ($1, $2, $3);
	`, year, now, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fiscal year %d is already closed", apperrors.ErrConflict, year)
		}
		return fmt.Errorf("failed to close fiscal period %d: %w", year, err)
	}

	return r.Commit(ctx, tx)
}
