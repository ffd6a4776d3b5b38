package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	portssvc "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/dto"
	"github.com/reifenmarkt/accounting_ledger_app/internal/middleware"
)

// Fixed SKR04-style account numbers the booking templates post against.
// They must exist in the accounts table; the seed migration creates them.
const (
	AcctBank              = "1200" // Bank
	AcctPayables          = "3300" // Verbindlichkeiten aus Lieferungen und Leistungen
	AcctOwnerDraw         = "3100" // Privatentnahmen
	AcctCommissionExpense = "4650" // Provisionsaufwand
	AcctTravelExpense     = "4670" // Reisekosten
	AcctWages             = "4120" // Loehne und Gehaelter
	AcctVehicleCosts      = "6300" // Kfz-Kosten
	AcctOfficeSupplies    = "6520" // Buerobedarf
	AcctCommissionRevenue = "8400" // Provisionserloese
)

// autoBookingService wraps the ledger service with preconfigured booking
// templates, so recurring business events always hit the same accounts.
type autoBookingService struct {
	ledgerSvc portssvc.LedgerWriterSvc
}

// NewAutoBookingService creates a new AutoBookingService.
func NewAutoBookingService(ledgerSvc portssvc.LedgerWriterSvc) portssvc.AutoBookingSvcFacade {
	return &autoBookingService{ledgerSvc: ledgerSvc}
}

// Ensure autoBookingService implements the portssvc.AutoBookingSvcFacade interface
var _ portssvc.AutoBookingSvcFacade = (*autoBookingService)(nil)

func (s *autoBookingService) post(ctx context.Context, req dto.CreateEntryRequest, userID string, template string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.ledgerSvc.PostEntry(ctx, req, userID)
	if err != nil {
		return nil, fmt.Errorf("auto booking %s failed: %w", template, err)
	}

	logger.Info("Auto booking posted",
		slog.String("template", template),
		slog.String("entry_id", entry.EntryID),
		slog.String("document_no", entry.DocumentNo))
	return entry, nil
}

// BookCommissionReceived books a marketplace commission credited to the bank account.
// Bank an Provisionserloese.
func (s *autoBookingService) BookCommissionReceived(ctx context.Context, req dto.CommissionBookingRequest, userID string) (*domain.LedgerEntry, error) {
	return s.post(ctx, dto.CreateEntryRequest{
		BookingDate: req.BookingDate,
		DebitAcct:   AcctBank,
		CreditAcct:  AcctCommissionRevenue,
		Amount:      req.Amount,
		Description: req.Description,
		SourceType:  domain.SourceCommission,
		SourceID:    req.OrderID,
		Reference:   req.Reference,
	}, userID, "commission_received")
}

// BookCommissionPaid books a commission paid out from the bank account.
// Provisionsaufwand an Bank.
func (s *autoBookingService) BookCommissionPaid(ctx context.Context, req dto.CommissionBookingRequest, userID string) (*domain.LedgerEntry, error) {
	return s.post(ctx, dto.CreateEntryRequest{
		BookingDate: req.BookingDate,
		DebitAcct:   AcctCommissionExpense,
		CreditAcct:  AcctBank,
		Amount:      req.Amount,
		Description: req.Description,
		SourceType:  domain.SourceCommission,
		SourceID:    req.OrderID,
		Reference:   req.Reference,
	}, userID, "commission_paid")
}

// BookInfluencerPayment books an influencer payout from the bank account.
func (s *autoBookingService) BookInfluencerPayment(ctx context.Context, req dto.CommissionBookingRequest, userID string) (*domain.LedgerEntry, error) {
	return s.post(ctx, dto.CreateEntryRequest{
		BookingDate: req.BookingDate,
		DebitAcct:   AcctCommissionExpense,
		CreditAcct:  AcctBank,
		Amount:      req.Amount,
		Description: req.Description,
		SourceType:  domain.SourceInfluencer,
		SourceID:    req.OrderID,
		Reference:   req.Reference,
	}, userID, "influencer_payment")
}

// BookTravelExpense books a travel expense against payables.
// Reisekosten an Verbindlichkeiten.
func (s *autoBookingService) BookTravelExpense(ctx context.Context, req dto.ExpenseBookingRequest, userID string) (*domain.LedgerEntry, error) {
	return s.post(ctx, dto.CreateEntryRequest{
		BookingDate: req.BookingDate,
		DebitAcct:   AcctTravelExpense,
		CreditAcct:  AcctPayables,
		Amount:      req.Amount,
		Description: req.Description,
		SourceType:  domain.SourceTravelExpense,
		Reference:   req.Reference,
	}, userID, "travel_expense")
}

// BookGeneralExpense books an office expense against payables.
// Buerobedarf an Verbindlichkeiten.
func (s *autoBookingService) BookGeneralExpense(ctx context.Context, req dto.ExpenseBookingRequest, userID string) (*domain.LedgerEntry, error) {
	return s.post(ctx, dto.CreateEntryRequest{
		BookingDate: req.BookingDate,
		DebitAcct:   AcctOfficeSupplies,
		CreditAcct:  AcctPayables,
		Amount:      req.Amount,
		Description: req.Description,
		SourceType:  domain.SourceExpense,
		Reference:   req.Reference,
	}, userID, "general_expense")
}

// BookExpensePaid settles an open payable from the bank account.
// Verbindlichkeiten an Bank.
func (s *autoBookingService) BookExpensePaid(ctx context.Context, req dto.ExpenseBookingRequest, userID string) (*domain.LedgerEntry, error) {
	return s.post(ctx, dto.CreateEntryRequest{
		BookingDate: req.BookingDate,
		DebitAcct:   AcctPayables,
		CreditAcct:  AcctBank,
		Amount:      req.Amount,
		Description: req.Description,
		SourceType:  domain.SourceExpense,
		Reference:   req.Reference,
	}, userID, "expense_paid")
}

// BookVehicleCost books a vehicle cost, either paid directly from the bank
// account or on account against payables.
func (s *autoBookingService) BookVehicleCost(ctx context.Context, req dto.VehicleCostBookingRequest, userID string) (*domain.LedgerEntry, error) {
	creditAcct := AcctPayables
	if req.PaidFromBank {
		creditAcct = AcctBank
	}
	return s.post(ctx, dto.CreateEntryRequest{
		BookingDate: req.BookingDate,
		DebitAcct:   AcctVehicleCosts,
		CreditAcct:  creditAcct,
		Amount:      req.Amount,
		Description: req.Description,
		SourceType:  domain.SourceVehicle,
		Reference:   req.Reference,
	}, userID, "vehicle_cost")
}

// BookPayroll books a salary run as two entries: the wage expense against the
// owner draw account, then the payout from the bank account. If the second
// posting fails the first stays on the books and must be stornoed by hand.
func (s *autoBookingService) BookPayroll(ctx context.Context, req dto.PayrollBookingRequest, userID string) ([]domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.post(ctx, dto.CreateEntryRequest{
		BookingDate: req.BookingDate,
		DebitAcct:   AcctWages,
		CreditAcct:  AcctOwnerDraw,
		Amount:      req.Amount,
		Description: req.Description,
		SourceType:  domain.SourcePayroll,
		Reference:   req.Reference,
	}, userID, "payroll_expense")
	if err != nil {
		return nil, err
	}

	payout, err := s.post(ctx, dto.CreateEntryRequest{
		BookingDate: req.BookingDate,
		DebitAcct:   AcctOwnerDraw,
		CreditAcct:  AcctBank,
		Amount:      req.Amount,
		Description: fmt.Sprintf("Auszahlung: %s", req.Description),
		SourceType:  domain.SourcePayroll,
		Reference:   req.Reference,
	}, userID, "payroll_payout")
	if err != nil {
		logger.Error("Payroll payout booking failed after expense booking",
			slog.String("error", err.Error()),
			slog.String("expense_entry_id", expense.EntryID))
		return nil, err
	}

	return []domain.LedgerEntry{*expense, *payout}, nil
}
