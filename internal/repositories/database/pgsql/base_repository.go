package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reifenmarkt/accounting_ledger_app/internal/apperrors"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// lockSettingsRow takes the row lock on the singleton ledger settings row and
// returns the next entry number. Every writer that must be serialized against
// entry numbering or period closing goes through this lock.
func lockSettingsRow(ctx context.Context, tx pgx.Tx) (int64, error) {
	var nextEntryNumber int64
	err := tx.QueryRow(ctx, `
		SELECT next_entry_number
		FROM accounting_settings
		WHERE settings_id = 'default'
		FOR UPDATE;
	`).Scan(&nextEntryNumber)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to lock accounting settings row", err)
	}
	return nextEntryNumber, nil
}
