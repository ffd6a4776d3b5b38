package repositories

import (
	"context"
	"time"

	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByNumber retrieves a specific account by its chart number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountsByNumbers retrieves multiple accounts by their chart numbers.
	FindAccountsByNumbers(ctx context.Context, accountNumbers []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts, optionally filtered by type and active flag.
	ListAccounts(ctx context.Context, accountType *domain.AccountType, activeOnly bool, limit int, offset int) ([]domain.Account, error)

	// CountEntriesForAccount returns how many ledger entries reference the account on either side.
	CountEntriesForAccount(ctx context.Context, accountNumber string) (int64, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountNumber string, userID string, now time.Time) error

	// DeleteAccount removes an account that no ledger entry references.
	DeleteAccount(ctx context.Context, accountNumber string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
