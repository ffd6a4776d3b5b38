package services

import (
	"context"

	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	"github.com/reifenmarkt/accounting_ledger_app/internal/dto"
)

// AutoBookingSvcFacade defines the preconfigured booking templates that post
// ledger entries against fixed chart accounts for recurring business events.
type AutoBookingSvcFacade interface {
	// BookCommissionReceived books a marketplace commission credited to the bank account.
	BookCommissionReceived(ctx context.Context, req dto.CommissionBookingRequest, userID string) (*domain.LedgerEntry, error)

	// BookCommissionPaid books a commission paid out from the bank account.
	BookCommissionPaid(ctx context.Context, req dto.CommissionBookingRequest, userID string) (*domain.LedgerEntry, error)

	// BookInfluencerPayment books an influencer payout from the bank account.
	BookInfluencerPayment(ctx context.Context, req dto.CommissionBookingRequest, userID string) (*domain.LedgerEntry, error)

	// BookTravelExpense books a travel expense against payables.
	BookTravelExpense(ctx context.Context, req dto.ExpenseBookingRequest, userID string) (*domain.LedgerEntry, error)

	// BookGeneralExpense books an office expense against payables.
	BookGeneralExpense(ctx context.Context, req dto.ExpenseBookingRequest, userID string) (*domain.LedgerEntry, error)

	// BookExpensePaid settles an open payable from the bank account.
	BookExpensePaid(ctx context.Context, req dto.ExpenseBookingRequest, userID string) (*domain.LedgerEntry, error)

	// BookVehicleCost books a vehicle cost, either paid directly or on account.
	BookVehicleCost(ctx context.Context, req dto.VehicleCostBookingRequest, userID string) (*domain.LedgerEntry, error)

	// BookPayroll books a salary run as a wage expense plus the owner draw payout.
	BookPayroll(ctx context.Context, req dto.PayrollBookingRequest, userID string) ([]domain.LedgerEntry, error)
}
