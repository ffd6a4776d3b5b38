package services

import (
	"context"

	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	"github.com/reifenmarkt/accounting_ledger_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByNumber retrieves a specific account by its chart number.
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount registers a new account in the chart of accounts.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's name and description.
	UpdateAccount(ctx context.Context, accountNumber string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive so no new entries can use it.
	DeactivateAccount(ctx context.Context, accountNumber string, userID string) error

	// DeleteAccount removes an account that no ledger entry references.
	DeleteAccount(ctx context.Context, accountNumber string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
