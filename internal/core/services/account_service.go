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
	"github.com/reifenmarkt/accounting_ledger_app/internal/dto"
	"github.com/reifenmarkt/accounting_ledger_app/internal/middleware"
	"github.com/reifenmarkt/accounting_ledger_app/internal/utils/accounting"
)

var (
	ErrDuplicateAccount     = errors.New("account number is already registered")
	ErrInvalidAccountNumber = errors.New("account number does not fit the chart of accounts")
	ErrAccountInUse         = errors.New("account is referenced by ledger entries")
)

// accountService manages the chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account in the chart of accounts.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := accounting.ValidateAccountNumber(req.AccountNumber, req.AccountType); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAccountNumber, err.Error())
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountNumber: req.AccountNumber,
		Name:          req.Name,
		AccountType:   req.AccountType,
		Description:   req.Description,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, req.AccountNumber)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_number", req.AccountNumber))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_number", account.AccountNumber), slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByNumber retrieves an account by its chart number.
func (s *accountService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account", slog.String("error", err.Error()), slog.String("account_number", accountNumber))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccounts(ctx, params.AccountType, params.ActiveOnly, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount updates an account's name and description.
func (s *accountService) UpdateAccount(ctx context.Context, accountNumber string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if !updated {
		return account, nil
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_number", accountNumber))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_number", accountNumber))
	return account, nil
}

// DeactivateAccount marks an account inactive so no new entries can use it.
// Existing entries keep referencing it.
func (s *accountService) DeactivateAccount(ctx context.Context, accountNumber string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.accountRepo.DeactivateAccount(ctx, accountNumber, userID, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_number", accountNumber))
		}
		return err
	}

	logger.Info("Account deactivated", slog.String("account_number", accountNumber))
	return nil
}

// DeleteAccount removes an account that no ledger entry references.
func (s *accountService) DeleteAccount(ctx context.Context, accountNumber string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	count, err := s.accountRepo.CountEntriesForAccount(ctx, accountNumber)
	if err != nil {
		logger.Error("Failed to count entries for account", slog.String("error", err.Error()), slog.String("account_number", accountNumber))
		return fmt.Errorf("failed to check account usage: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: account %s has %d entries", ErrAccountInUse, accountNumber, count)
	}

	// The delete can still race a concurrent posting; the RESTRICT foreign key
	// turns that into a conflict from the repository.
	if err := s.accountRepo.DeleteAccount(ctx, accountNumber); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("%w: %s", ErrAccountInUse, accountNumber)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_number", accountNumber))
		}
		return err
	}

	logger.Info("Account deleted", slog.String("account_number", accountNumber), slog.String("deleted_by", userID))
	return nil
}
