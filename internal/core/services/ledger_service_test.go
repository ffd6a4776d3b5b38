package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/reifenmarkt/accounting_ledger_app/internal/apperrors"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	portsrepo "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

// Ensure MockEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntryByNumber(ctx context.Context, entryNumber int64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, filter portsrepo.EntryListFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockEntryRepository) CountUnlockedEntriesInYear(ctx context.Context, year int) (int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) SaveStorno(ctx context.Context, storno *domain.LedgerEntry, originalEntryID string) error {
	args := m.Called(ctx, storno, originalEntryID)
	return args.Error(0)
}

func (m *MockEntryRepository) LockEntry(ctx context.Context, entryID string, userID string, now time.Time) error {
	args := m.Called(ctx, entryID, userID, now)
	return args.Error(0)
}

func (m *MockEntryRepository) FindAuditLogsByEntryID(ctx context.Context, entryID string) ([]domain.AuditLog, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByNumbers(ctx context.Context, accountNumbers []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, accountType *domain.AccountType, activeOnly bool, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, accountType, activeOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountEntriesForAccount(ctx context.Context, accountNumber string) (int64, error) {
	args := m.Called(ctx, accountNumber)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountNumber string, userID string, now time.Time) error {
	args := m.Called(ctx, accountNumber, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountNumber string) error {
	args := m.Called(ctx, accountNumber)
	return args.Error(0)
}

// --- Mock PeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

// Ensure MockPeriodRepository implements portsrepo.PeriodRepositoryFacade
var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindPeriodByYear(ctx context.Context, year int) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ClosePeriod(ctx context.Context, year int, userID string, now time.Time) error {
	args := m.Called(ctx, year, userID, now)
	return args.Error(0)
}

// --- Test Suite ---

type LedgerServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockEntryRepository
	mockAccountRepo *MockAccountRepository
	mockPeriodRepo  *MockPeriodRepository
	service         portssvc.LedgerSvcFacade

	userID      string
	bankAccount domain.Account
	revAccount  domain.Account
	inactive    domain.Account
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockEntryRepo = new(MockEntryRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockPeriodRepo = new(MockPeriodRepository)
	s.service = services.NewLedgerService(s.mockEntryRepo, s.mockAccountRepo, s.mockPeriodRepo)

	s.userID = uuid.NewString()
	s.bankAccount = domain.Account{AccountNumber: "1200", Name: "Bank", AccountType: domain.Asset, IsActive: true}
	s.revAccount = domain.Account{AccountNumber: "8400", Name: "Provisionserloese", AccountType: domain.Revenue, IsActive: true}
	s.inactive = domain.Account{AccountNumber: "6520", Name: "Buerobedarf", AccountType: domain.Expense, IsActive: false}
}

func (s *LedgerServiceTestSuite) validCreateRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		BookingDate: time.Date(time.Now().Year(), 3, 15, 0, 0, 0, 0, time.UTC),
		DebitAcct:   "1200",
		CreditAcct:  "8400",
		Amount:      decimal.NewFromFloat(119.90),
		Description: "Provision Bestellung 4711",
		SourceType:  domain.SourceCommission,
		SourceID:    "order-4711",
	}
}

func (s *LedgerServiceTestSuite) expectAccounts(accounts ...domain.Account) {
	accountMap := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		accountMap[a.AccountNumber] = a
	}
	s.mockAccountRepo.On("FindAccountsByNumbers", mock.Anything, mock.Anything).Return(accountMap, nil).Once()
}

func (s *LedgerServiceTestSuite) expectOpenPeriod(year int) {
	s.mockPeriodRepo.On("FindPeriodByYear", mock.Anything, year).Return(&domain.FiscalPeriod{Year: year}, nil).Once()
}

func (s *LedgerServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	req := s.validCreateRequest()

	s.expectAccounts(s.bankAccount, s.revAccount)
	s.expectOpenPeriod(req.BookingDate.Year())
	s.mockEntryRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("*domain.LedgerEntry")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(*domain.LedgerEntry)
			entry.EntryNumber = 42
			entry.DocumentNo = "BEL-2026-000042"
		}).
		Return(nil).Once()

	entry, err := s.service.PostEntry(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.NotEmpty(entry.EntryID)
	s.Equal("BEL-2026-000042", entry.DocumentNo)
	s.Equal(req.DebitAcct, entry.DebitAcct)
	s.Equal(req.CreditAcct, entry.CreditAcct)
	s.True(entry.Amount.Equal(req.Amount))
	s.Equal(s.userID, entry.CreatedBy)
	s.False(entry.Locked)
	s.False(entry.IsStorno)
	s.Equal(domain.EntryOpen, entry.State())
	s.mockEntryRepo.AssertExpectations(s.T())
	s.mockAccountRepo.AssertExpectations(s.T())
	s.mockPeriodRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestPostEntry_UnknownAccount() {
	ctx := context.Background()
	req := s.validCreateRequest()
	req.CreditAcct = "9999"

	s.expectAccounts(s.bankAccount) // 9999 missing

	entry, err := s.service.PostEntry(ctx, req, s.userID)

	s.Require().Error(err)
	s.Nil(entry)
	s.ErrorIs(err, services.ErrUnknownAccount)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestPostEntry_InactiveAccount() {
	ctx := context.Background()
	req := s.validCreateRequest()
	req.DebitAcct = s.inactive.AccountNumber

	s.expectAccounts(s.inactive, s.revAccount)

	entry, err := s.service.PostEntry(ctx, req, s.userID)

	s.Require().Error(err)
	s.Nil(entry)
	s.ErrorIs(err, services.ErrInactiveAccount)
}

func (s *LedgerServiceTestSuite) TestPostEntry_SameAccountBothSides() {
	ctx := context.Background()
	req := s.validCreateRequest()
	req.CreditAcct = req.DebitAcct

	s.expectAccounts(s.bankAccount)

	entry, err := s.service.PostEntry(ctx, req, s.userID)

	s.Require().Error(err)
	s.Nil(entry)
	s.ErrorIs(err, services.ErrSelfReferencingEntry)
}

func (s *LedgerServiceTestSuite) TestPostEntry_NonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
		req := s.validCreateRequest()
		req.Amount = amount

		s.expectAccounts(s.bankAccount, s.revAccount)

		entry, err := s.service.PostEntry(ctx, req, s.userID)

		s.Require().Error(err)
		s.Nil(entry)
		s.ErrorIs(err, services.ErrInvalidAmount)
	}
}

func (s *LedgerServiceTestSuite) TestPostEntry_ClosedPeriod() {
	ctx := context.Background()
	req := s.validCreateRequest()
	closedAt := time.Now().UTC()

	s.expectAccounts(s.bankAccount, s.revAccount)
	s.mockPeriodRepo.On("FindPeriodByYear", mock.Anything, req.BookingDate.Year()).
		Return(&domain.FiscalPeriod{Year: req.BookingDate.Year(), ClosedAt: &closedAt}, nil).Once()

	entry, err := s.service.PostEntry(ctx, req, s.userID)

	s.Require().Error(err)
	s.Nil(entry)
	s.ErrorIs(err, services.ErrPeriodClosed)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestPostEntry_PeriodClosedDuringWrite() {
	ctx := context.Background()
	req := s.validCreateRequest()

	s.expectAccounts(s.bankAccount, s.revAccount)
	s.expectOpenPeriod(req.BookingDate.Year())
	s.mockEntryRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("*domain.LedgerEntry")).
		Return(apperrors.ErrConflict).Once()

	entry, err := s.service.PostEntry(ctx, req, s.userID)

	s.Require().Error(err)
	s.Nil(entry)
	s.ErrorIs(err, services.ErrPeriodClosed)
}

func (s *LedgerServiceTestSuite) TestLockEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	locked := &domain.LedgerEntry{EntryID: entryID, DocumentNo: "BEL-2026-000007", Locked: true}

	s.mockEntryRepo.On("LockEntry", mock.Anything, entryID, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, entryID).Return(locked, nil).Once()

	entry, err := s.service.LockEntry(ctx, entryID, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.True(entry.Locked)
	s.Equal(domain.EntryLocked, entry.State())
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestLockEntry_AlreadyLocked() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockEntryRepo.On("LockEntry", mock.Anything, entryID, s.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict).Once()

	entry, err := s.service.LockEntry(ctx, entryID, s.userID)

	s.Require().Error(err)
	s.Nil(entry)
	s.ErrorIs(err, services.ErrAlreadyLocked)
}

func (s *LedgerServiceTestSuite) TestLockEntry_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockEntryRepo.On("LockEntry", mock.Anything, entryID, s.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrNotFound).Once()

	entry, err := s.service.LockEntry(ctx, entryID, s.userID)

	s.Require().Error(err)
	s.Nil(entry)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) lockedOriginal() *domain.LedgerEntry {
	return &domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: 42,
		DocumentNo:  "BEL-2026-000042",
		BookingDate: time.Date(time.Now().Year(), 3, 15, 0, 0, 0, 0, time.UTC),
		DebitAcct:   "1200",
		CreditAcct:  "8400",
		Amount:      decimal.NewFromFloat(119.90),
		Description: "Provision Bestellung 4711",
		SourceType:  domain.SourceCommission,
		SourceID:    "order-4711",
		Locked:      true,
	}
}

func (s *LedgerServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	original := s.lockedOriginal()
	req := dto.ReverseEntryRequest{Reason: "Falscher Betrag gebucht"}

	s.mockEntryRepo.On("FindEntryByID", mock.Anything, original.EntryID).Return(original, nil).Once()
	// The original's period and the posting period are both checked.
	s.expectOpenPeriod(original.BookingDate.Year())
	s.expectOpenPeriod(time.Now().UTC().Year())
	s.mockEntryRepo.On("SaveStorno", mock.Anything, mock.AnythingOfType("*domain.LedgerEntry"), original.EntryID).
		Run(func(args mock.Arguments) {
			storno := args.Get(1).(*domain.LedgerEntry)
			storno.EntryNumber = 43
			storno.DocumentNo = "BEL-2026-000043"
		}).
		Return(nil).Once()

	storno, err := s.service.ReverseEntry(ctx, original.EntryID, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(storno)
	s.Equal(original.CreditAcct, storno.DebitAcct)
	s.Equal(original.DebitAcct, storno.CreditAcct)
	s.True(storno.Amount.Equal(original.Amount))
	s.Equal("STORNO: Provision Bestellung 4711 (Grund: Falscher Betrag gebucht)", storno.Description)
	s.Equal("STORNO-BEL-2026-000042", storno.Reference)
	s.True(storno.IsStorno)
	s.True(storno.Locked)
	s.Require().NotNil(storno.StornoOfEntryID)
	s.Equal(original.EntryID, *storno.StornoOfEntryID)
	s.Equal(original.SourceType, storno.SourceType)
	s.Equal(original.SourceID, storno.SourceID)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestReverseEntry_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockEntryRepo.On("FindEntryByID", mock.Anything, entryID).Return(nil, apperrors.ErrNotFound).Once()

	storno, err := s.service.ReverseEntry(ctx, entryID, dto.ReverseEntryRequest{Reason: "Testgrund"}, s.userID)

	s.Require().Error(err)
	s.Nil(storno)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestReverseEntry_NotLocked() {
	ctx := context.Background()
	original := s.lockedOriginal()
	original.Locked = false

	s.mockEntryRepo.On("FindEntryByID", mock.Anything, original.EntryID).Return(original, nil).Once()

	storno, err := s.service.ReverseEntry(ctx, original.EntryID, dto.ReverseEntryRequest{Reason: "Testgrund"}, s.userID)

	s.Require().Error(err)
	s.Nil(storno)
	s.ErrorIs(err, services.ErrEntryNotLocked)
}

func (s *LedgerServiceTestSuite) TestReverseEntry_StornoOfStorno() {
	ctx := context.Background()
	original := s.lockedOriginal()
	originalID := uuid.NewString()
	original.IsStorno = true
	original.StornoOfEntryID = &originalID

	s.mockEntryRepo.On("FindEntryByID", mock.Anything, original.EntryID).Return(original, nil).Once()

	storno, err := s.service.ReverseEntry(ctx, original.EntryID, dto.ReverseEntryRequest{Reason: "Testgrund"}, s.userID)

	s.Require().Error(err)
	s.Nil(storno)
	s.ErrorIs(err, services.ErrStornoOfStorno)
}

func (s *LedgerServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	original := s.lockedOriginal()
	stornoID := uuid.NewString()
	original.ReversedByEntryID = &stornoID

	s.mockEntryRepo.On("FindEntryByID", mock.Anything, original.EntryID).Return(original, nil).Once()

	storno, err := s.service.ReverseEntry(ctx, original.EntryID, dto.ReverseEntryRequest{Reason: "Testgrund"}, s.userID)

	s.Require().Error(err)
	s.Nil(storno)
	s.ErrorIs(err, services.ErrAlreadyReversed)
}

func (s *LedgerServiceTestSuite) TestReverseEntry_ReasonTooShort() {
	ctx := context.Background()
	original := s.lockedOriginal()

	s.mockEntryRepo.On("FindEntryByID", mock.Anything, original.EntryID).Return(original, nil).Once()

	storno, err := s.service.ReverseEntry(ctx, original.EntryID, dto.ReverseEntryRequest{Reason: "  x "}, s.userID)

	s.Require().Error(err)
	s.Nil(storno)
	s.ErrorIs(err, services.ErrInvalidReason)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveStorno", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestReverseEntry_ReasonLengthCountsRunes() {
	ctx := context.Background()
	original := s.lockedOriginal()

	s.mockEntryRepo.On("FindEntryByID", mock.Anything, original.EntryID).Return(original, nil).Once()

	// Two characters, three bytes. Umlauts must not inflate the length.
	storno, err := s.service.ReverseEntry(ctx, original.EntryID, dto.ReverseEntryRequest{Reason: "äb"}, s.userID)

	s.Require().Error(err)
	s.Nil(storno)
	s.ErrorIs(err, services.ErrInvalidReason)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveStorno", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestReverseEntry_OriginalPeriodClosed() {
	ctx := context.Background()
	original := s.lockedOriginal()
	lastYear := time.Now().UTC().Year() - 1
	original.BookingDate = time.Date(lastYear, 11, 20, 0, 0, 0, 0, time.UTC)
	closedAt := time.Now().UTC()

	s.mockEntryRepo.On("FindEntryByID", mock.Anything, original.EntryID).Return(original, nil).Once()
	s.mockPeriodRepo.On("FindPeriodByYear", mock.Anything, lastYear).
		Return(&domain.FiscalPeriod{Year: lastYear, ClosedAt: &closedAt}, nil).Once()

	storno, err := s.service.ReverseEntry(ctx, original.EntryID, dto.ReverseEntryRequest{Reason: "Testgrund"}, s.userID)

	s.Require().Error(err)
	s.Nil(storno)
	s.ErrorIs(err, services.ErrPeriodClosed)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveStorno", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestReverseEntry_CurrentPeriodClosed() {
	ctx := context.Background()
	original := s.lockedOriginal()
	closedAt := time.Now().UTC()
	year := time.Now().UTC().Year()

	s.mockEntryRepo.On("FindEntryByID", mock.Anything, original.EntryID).Return(original, nil).Once()
	s.mockPeriodRepo.On("FindPeriodByYear", mock.Anything, year).
		Return(&domain.FiscalPeriod{Year: year, ClosedAt: &closedAt}, nil).Once()

	storno, err := s.service.ReverseEntry(ctx, original.EntryID, dto.ReverseEntryRequest{Reason: "Testgrund"}, s.userID)

	s.Require().Error(err)
	s.Nil(storno)
	s.ErrorIs(err, services.ErrPeriodClosed)
}

func (s *LedgerServiceTestSuite) TestReverseEntry_ConcurrentReversal() {
	ctx := context.Background()
	original := s.lockedOriginal()

	s.mockEntryRepo.On("FindEntryByID", mock.Anything, original.EntryID).Return(original, nil).Once()
	s.expectOpenPeriod(original.BookingDate.Year())
	s.expectOpenPeriod(time.Now().UTC().Year())
	s.mockEntryRepo.On("SaveStorno", mock.Anything, mock.AnythingOfType("*domain.LedgerEntry"), original.EntryID).
		Return(apperrors.ErrDuplicate).Once()

	storno, err := s.service.ReverseEntry(ctx, original.EntryID, dto.ReverseEntryRequest{Reason: "Testgrund"}, s.userID)

	s.Require().Error(err)
	s.Nil(storno)
	s.ErrorIs(err, services.ErrAlreadyReversed)
}

func (s *LedgerServiceTestSuite) TestListEntries_PassesFilter() {
	ctx := context.Background()
	year := 2026
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	search := "Provision"
	entries := []domain.LedgerEntry{*s.lockedOriginal()}

	expectedFilter := portsrepo.EntryListFilter{
		FiscalYear:    &year,
		DateFrom:      &from,
		DateTo:        &to,
		Search:        &search,
		IncludeStorno: true,
	}
	s.mockEntryRepo.On("ListEntries", mock.Anything, expectedFilter, 20, (*string)(nil)).
		Return(entries, "next-page-token", nil).Once()

	resp, err := s.service.ListEntries(ctx, dto.ListEntriesParams{
		FiscalYear:    &year,
		DateFrom:      &from,
		DateTo:        &to,
		Search:        &search,
		IncludeStorno: true,
		Limit:         20,
	})

	s.Require().NoError(err)
	s.Require().NotNil(resp)
	s.Len(resp.Entries, 1)
	s.Require().NotNil(resp.NextToken)
	s.Equal("next-page-token", *resp.NextToken)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestGetAuditTrail_UnknownEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockEntryRepo.On("FindEntryByID", mock.Anything, entryID).Return(nil, apperrors.ErrNotFound).Once()

	logs, err := s.service.GetAuditTrail(ctx, entryID)

	s.Require().Error(err)
	s.Nil(logs)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockEntryRepo.AssertNotCalled(s.T(), "FindAuditLogsByEntryID", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestGetAuditTrail_Success() {
	ctx := context.Background()
	original := s.lockedOriginal()
	logs := []domain.AuditLog{
		{AuditID: uuid.NewString(), EntryID: original.EntryID, Action: domain.AuditCreated, UserID: s.userID},
		{AuditID: uuid.NewString(), EntryID: original.EntryID, Action: domain.AuditLocked, UserID: s.userID},
	}

	s.mockEntryRepo.On("FindEntryByID", mock.Anything, original.EntryID).Return(original, nil).Once()
	s.mockEntryRepo.On("FindAuditLogsByEntryID", mock.Anything, original.EntryID).Return(logs, nil).Once()

	got, err := s.service.GetAuditTrail(ctx, original.EntryID)

	s.Require().NoError(err)
	s.Len(got, 2)
	s.Equal(domain.AuditCreated, got[0].Action)
	s.Equal(domain.AuditLocked, got[1].Action)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func TestReverseEntry_DescriptionComposition(t *testing.T) {
	// Storno description and reference keep the original wording so the
	// journal reads naturally for the accountants.
	mockEntryRepo := new(MockEntryRepository)
	mockAccountRepo := new(MockAccountRepository)
	mockPeriodRepo := new(MockPeriodRepository)
	svc := services.NewLedgerService(mockEntryRepo, mockAccountRepo, mockPeriodRepo)

	original := &domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		DocumentNo:  "BEL-2025-000317",
		BookingDate: time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
		DebitAcct:   "4670",
		CreditAcct:  "3300",
		Amount:      decimal.NewFromFloat(250.00),
		Description: "Reisekosten Messe Essen",
		SourceType:  domain.SourceExpense,
		Locked:      true,
	}

	mockEntryRepo.On("FindEntryByID", mock.Anything, original.EntryID).Return(original, nil).Once()
	// The original's year and the posting year are both checked for openness.
	mockPeriodRepo.On("FindPeriodByYear", mock.Anything, original.BookingDate.Year()).
		Return(&domain.FiscalPeriod{Year: original.BookingDate.Year()}, nil).Once()
	mockPeriodRepo.On("FindPeriodByYear", mock.Anything, time.Now().UTC().Year()).
		Return(&domain.FiscalPeriod{Year: time.Now().UTC().Year()}, nil)
	mockEntryRepo.On("SaveStorno", mock.Anything, mock.AnythingOfType("*domain.LedgerEntry"), original.EntryID).Return(nil).Once()

	storno, err := svc.ReverseEntry(context.Background(), original.EntryID, dto.ReverseEntryRequest{Reason: "Doppelt erfasst"}, uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, "STORNO: Reisekosten Messe Essen (Grund: Doppelt erfasst)", storno.Description)
	assert.Equal(t, "STORNO-BEL-2025-000317", storno.Reference)
	assert.Equal(t, "3300", storno.DebitAcct)
	assert.Equal(t, "4670", storno.CreditAcct)
}
