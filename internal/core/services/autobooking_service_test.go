package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock LedgerWriterSvc ---
type MockLedgerWriter struct {
	mock.Mock
}

func (m *MockLedgerWriter) PostEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerWriter) LockEntry(ctx context.Context, entryID string, userID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerWriter) ReverseEntry(ctx context.Context, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func echoEntry(m *MockLedgerWriter) {
	m.On("PostEntry", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest"), mock.Anything).
		Return(&domain.LedgerEntry{EntryID: uuid.NewString()}, nil)
}

func postedRequests(m *MockLedgerWriter) []dto.CreateEntryRequest {
	var reqs []dto.CreateEntryRequest
	for _, call := range m.Calls {
		if call.Method == "PostEntry" {
			reqs = append(reqs, call.Arguments.Get(1).(dto.CreateEntryRequest))
		}
	}
	return reqs
}

func TestAutoBookingTemplates_AccountMapping(t *testing.T) {
	bookingDate := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	amount := decimal.NewFromFloat(99.50)
	userID := uuid.NewString()

	t.Run("commission received", func(t *testing.T) {
		m := new(MockLedgerWriter)
		echoEntry(m)
		svc := services.NewAutoBookingService(m)

		_, err := svc.BookCommissionReceived(context.Background(), dto.CommissionBookingRequest{
			BookingDate: bookingDate, Amount: amount, Description: "Provision", OrderID: "order-1",
		}, userID)

		require.NoError(t, err)
		reqs := postedRequests(m)
		require.Len(t, reqs, 1)
		assert.Equal(t, services.AcctBank, reqs[0].DebitAcct)
		assert.Equal(t, services.AcctCommissionRevenue, reqs[0].CreditAcct)
		assert.Equal(t, domain.SourceCommission, reqs[0].SourceType)
		assert.Equal(t, "order-1", reqs[0].SourceID)
	})

	t.Run("commission paid", func(t *testing.T) {
		m := new(MockLedgerWriter)
		echoEntry(m)
		svc := services.NewAutoBookingService(m)

		_, err := svc.BookCommissionPaid(context.Background(), dto.CommissionBookingRequest{
			BookingDate: bookingDate, Amount: amount, Description: "Provision Auszahlung",
		}, userID)

		require.NoError(t, err)
		reqs := postedRequests(m)
		require.Len(t, reqs, 1)
		assert.Equal(t, services.AcctCommissionExpense, reqs[0].DebitAcct)
		assert.Equal(t, services.AcctBank, reqs[0].CreditAcct)
	})

	t.Run("influencer payment", func(t *testing.T) {
		m := new(MockLedgerWriter)
		echoEntry(m)
		svc := services.NewAutoBookingService(m)

		_, err := svc.BookInfluencerPayment(context.Background(), dto.CommissionBookingRequest{
			BookingDate: bookingDate, Amount: amount, Description: "Influencer Kampagne Mai",
		}, userID)

		require.NoError(t, err)
		reqs := postedRequests(m)
		require.Len(t, reqs, 1)
		assert.Equal(t, services.AcctCommissionExpense, reqs[0].DebitAcct)
		assert.Equal(t, services.AcctBank, reqs[0].CreditAcct)
		assert.Equal(t, domain.SourceInfluencer, reqs[0].SourceType)
	})

	t.Run("travel expense", func(t *testing.T) {
		m := new(MockLedgerWriter)
		echoEntry(m)
		svc := services.NewAutoBookingService(m)

		_, err := svc.BookTravelExpense(context.Background(), dto.ExpenseBookingRequest{
			BookingDate: bookingDate, Amount: amount, Description: "Messe Essen",
		}, userID)

		require.NoError(t, err)
		reqs := postedRequests(m)
		require.Len(t, reqs, 1)
		assert.Equal(t, services.AcctTravelExpense, reqs[0].DebitAcct)
		assert.Equal(t, services.AcctPayables, reqs[0].CreditAcct)
		assert.Equal(t, domain.SourceTravelExpense, reqs[0].SourceType)
	})

	t.Run("vehicle cost on account", func(t *testing.T) {
		m := new(MockLedgerWriter)
		echoEntry(m)
		svc := services.NewAutoBookingService(m)

		_, err := svc.BookVehicleCost(context.Background(), dto.VehicleCostBookingRequest{
			BookingDate: bookingDate, Amount: amount, Description: "Werkstattwagen Inspektion",
		}, userID)

		require.NoError(t, err)
		reqs := postedRequests(m)
		require.Len(t, reqs, 1)
		assert.Equal(t, services.AcctVehicleCosts, reqs[0].DebitAcct)
		assert.Equal(t, services.AcctPayables, reqs[0].CreditAcct)
	})

	t.Run("vehicle cost paid from bank", func(t *testing.T) {
		m := new(MockLedgerWriter)
		echoEntry(m)
		svc := services.NewAutoBookingService(m)

		_, err := svc.BookVehicleCost(context.Background(), dto.VehicleCostBookingRequest{
			BookingDate: bookingDate, Amount: amount, Description: "Tanken", PaidFromBank: true,
		}, userID)

		require.NoError(t, err)
		reqs := postedRequests(m)
		require.Len(t, reqs, 1)
		assert.Equal(t, services.AcctVehicleCosts, reqs[0].DebitAcct)
		assert.Equal(t, services.AcctBank, reqs[0].CreditAcct)
	})
}

func TestBookPayroll_PostsTwoEntries(t *testing.T) {
	m := new(MockLedgerWriter)
	echoEntry(m)
	svc := services.NewAutoBookingService(m)

	entries, err := svc.BookPayroll(context.Background(), dto.PayrollBookingRequest{
		BookingDate: time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(3200),
		Description: "Gehalt Mai 2026",
	}, uuid.NewString())

	require.NoError(t, err)
	require.Len(t, entries, 2)

	reqs := postedRequests(m)
	require.Len(t, reqs, 2)

	assert.Equal(t, services.AcctWages, reqs[0].DebitAcct)
	assert.Equal(t, services.AcctOwnerDraw, reqs[0].CreditAcct)
	assert.Equal(t, domain.SourcePayroll, reqs[0].SourceType)

	assert.Equal(t, services.AcctOwnerDraw, reqs[1].DebitAcct)
	assert.Equal(t, services.AcctBank, reqs[1].CreditAcct)
	assert.Equal(t, "Auszahlung: Gehalt Mai 2026", reqs[1].Description)
}

func TestBookPayroll_StopsAfterFirstFailure(t *testing.T) {
	m := new(MockLedgerWriter)
	m.On("PostEntry", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest"), mock.Anything).
		Return(nil, services.ErrPeriodClosed).Once()
	svc := services.NewAutoBookingService(m)

	entries, err := svc.BookPayroll(context.Background(), dto.PayrollBookingRequest{
		BookingDate: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(3200),
		Description: "Gehalt Dezember 2024",
	}, uuid.NewString())

	require.Error(t, err)
	assert.Nil(t, entries)
	assert.ErrorIs(t, err, services.ErrPeriodClosed)
	m.AssertNumberOfCalls(t, "PostEntry", 1)
}
