package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reifenmarkt/accounting_ledger_app/internal/apperrors"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	portsrepo "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/repositories"
	"github.com/reifenmarkt/accounting_ledger_app/internal/models"
	"github.com/reifenmarkt/accounting_ledger_app/internal/utils/mapping"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_number, name, account_type, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

// SaveAccount inserts a new account row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		modelAcc.AccountNumber,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.Description,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, modelAcc.AccountNumber)
			}
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountNumber, err)
	}
	return nil
}

// FindAccountByNumber retrieves an account by its chart number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_number = $1;
	`
	var modelAcc models.Account
	err := r.pool.QueryRow(ctx, query, accountNumber).Scan(
		&modelAcc.AccountNumber,
		&modelAcc.Name,
		&modelAcc.AccountType,
		&modelAcc.Description,
		&modelAcc.IsActive,
		&modelAcc.CreatedAt,
		&modelAcc.CreatedBy,
		&modelAcc.LastUpdatedAt,
		&modelAcc.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountNumber, err)
	}

	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

// FindAccountsByNumbers retrieves multiple accounts keyed by chart number.
func (r *PgxAccountRepository) FindAccountsByNumbers(ctx context.Context, accountNumbers []string) (map[string]domain.Account, error) {
	if len(accountNumbers) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_number = ANY($1);
	`
	rows, err := r.pool.Query(ctx, query, accountNumbers)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountNumbers))
	for rows.Next() {
		var modelAcc models.Account
		err := rows.Scan(
			&modelAcc.AccountNumber,
			&modelAcc.Name,
			&modelAcc.AccountType,
			&modelAcc.Description,
			&modelAcc.IsActive,
			&modelAcc.CreatedAt,
			&modelAcc.CreatedBy,
			&modelAcc.LastUpdatedAt,
			&modelAcc.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[modelAcc.AccountNumber] = mapping.ToDomainAccount(modelAcc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return accounts, nil
}

// ListAccounts retrieves a paginated list of accounts ordered by chart number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, accountType *domain.AccountType, activeOnly bool, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE 1=1
	`
	args := []interface{}{}
	if accountType != nil {
		args = append(args, string(*accountType))
		query += ` AND account_type = $` + strconv.Itoa(len(args))
	}
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	args = append(args, limit)
	query += ` ORDER BY account_number LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	modelAccounts := []models.Account{}
	for rows.Next() {
		var modelAcc models.Account
		err := rows.Scan(
			&modelAcc.AccountNumber,
			&modelAcc.Name,
			&modelAcc.AccountType,
			&modelAcc.Description,
			&modelAcc.IsActive,
			&modelAcc.CreatedAt,
			&modelAcc.CreatedBy,
			&modelAcc.LastUpdatedAt,
			&modelAcc.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		modelAccounts = append(modelAccounts, modelAcc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

// CountEntriesForAccount returns how many ledger entries reference the account
// on either side of the booking.
func (r *PgxAccountRepository) CountEntriesForAccount(ctx context.Context, accountNumber string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM ledger_entries
		WHERE debit_account = $1 OR credit_account = $1;
	`
	var count int64
	if err := r.pool.QueryRow(ctx, query, accountNumber).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries for account %s: %w", accountNumber, err)
	}
	return count, nil
}

// UpdateAccount updates an existing account's name and description.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_number = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		modelAcc.AccountNumber,
		modelAcc.Name,
		modelAcc.Description,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", modelAcc.AccountNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account inactive so no new entries can use it.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountNumber string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_number = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, accountNumber, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account row. The foreign keys from ledger_entries
// are RESTRICT, so an account that has bookings cannot be removed.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountNumber string) error {
	query := `DELETE FROM accounts WHERE account_number = $1;`
	cmdTag, err := r.pool.Exec(ctx, query, accountNumber)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23503" { // Foreign key violation
				return fmt.Errorf("%w: account %s is referenced by ledger entries", apperrors.ErrConflict, accountNumber)
			}
		}
		return fmt.Errorf("failed to delete account %s: %w", accountNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
