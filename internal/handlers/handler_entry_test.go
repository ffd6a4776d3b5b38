package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reifenmarkt/accounting_ledger_app/internal/apperrors"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	portssvc "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/dto"
	"github.com/reifenmarkt/accounting_ledger_app/internal/handlers"
	"github.com/reifenmarkt/accounting_ledger_app/internal/platform/config"
	"github.com/reifenmarkt/accounting_ledger_app/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) PostEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) LockEntry(ctx context.Context, entryID string, userID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ReverseEntry(ctx context.Context, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockLedgerService) GetAuditTrail(ctx context.Context, entryID string) ([]domain.AuditLog, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type EntryHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockLedgerService = new(MockLedgerService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger route registration
	}
	container := &portssvc.ServiceContainer{
		Ledger: suite.mockLedgerService,
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

// generateTestToken creates a signed JWT carrying the given role.
func (suite *EntryHandlerTestSuite) generateTestToken(userID string, role domain.UserRole) string {
	token, err := utils.GenerateJWT(userID, string(role), suite.jwtSecret, time.Hour, "ledger-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *EntryHandlerTestSuite) doRequest(method, url string, body any, userID string, role domain.UserRole) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, url, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, role))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sampleEntry(creatorUserID string) *domain.LedgerEntry {
	now := time.Now()
	return &domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: 7,
		DocumentNo:  "BEL-2026-000007",
		BookingDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		DebitAcct:   "1200",
		CreditAcct:  "8400",
		Amount:      decimal.NewFromInt(250),
		Description: "Provision Bestellung 1042",
		SourceType:  domain.SourceManual,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
}

// --- Test Cases ---

func (suite *EntryHandlerTestSuite) TestPostEntry_Success() {
	userID := uuid.NewString()
	expected := sampleEntry(userID)

	suite.mockLedgerService.On("PostEntry",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
			return req.DebitAcct == "1200" && req.CreditAcct == "8400"
		}),
		userID,
	).Return(expected, nil).Once()

	body := dto.CreateEntryRequest{
		BookingDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		DebitAcct:   "1200",
		CreditAcct:  "8400",
		Amount:      decimal.NewFromInt(250),
		Description: "Provision Bestellung 1042",
		SourceType:  domain.SourceManual,
	}
	w := suite.doRequest(http.MethodPost, "/api/v1/entries", body, userID, domain.RoleAccountant)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.EntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.EntryID, resp.EntryID)
	suite.Equal("BEL-2026-000007", resp.DocumentNo)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestPostEntry_ClosedPeriodConflict() {
	userID := uuid.NewString()

	suite.mockLedgerService.On("PostEntry", mock.Anything, mock.Anything, userID).
		Return(nil, services.ErrPeriodClosed).Once()

	body := dto.CreateEntryRequest{
		BookingDate: time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC),
		DebitAcct:   "4670",
		CreditAcct:  "3300",
		Amount:      decimal.NewFromInt(80),
		Description: "Reisekosten",
		SourceType:  domain.SourceManual,
	}
	w := suite.doRequest(http.MethodPost, "/api/v1/entries", body, userID, domain.RoleAccountant)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestPostEntry_ValidationError() {
	userID := uuid.NewString()

	suite.mockLedgerService.On("PostEntry", mock.Anything, mock.Anything, userID).
		Return(nil, services.ErrUnknownAccount).Once()

	body := dto.CreateEntryRequest{
		BookingDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		DebitAcct:   "9999",
		CreditAcct:  "8400",
		Amount:      decimal.NewFromInt(10),
		Description: "Unbekanntes Konto",
		SourceType:  domain.SourceManual,
	}
	w := suite.doRequest(http.MethodPost, "/api/v1/entries", body, userID, domain.RoleAccountant)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetEntry_NotFound() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockLedgerService.On("GetEntryByID", mock.Anything, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/entries/"+entryID, nil, userID, domain.RoleAccountant)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestLockEntry_AlreadyLockedConflict() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockLedgerService.On("LockEntry", mock.Anything, entryID, userID).
		Return(nil, services.ErrAlreadyLocked).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/entries/%s/lock", entryID), nil, userID, domain.RoleAccountant)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestReverseEntry_AdminSuccess() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	storno := sampleEntry(userID)
	storno.IsStorno = true
	storno.Locked = true
	storno.StornoOfEntryID = &entryID

	suite.mockLedgerService.On("ReverseEntry",
		mock.Anything,
		entryID,
		dto.ReverseEntryRequest{Reason: "Doppelt erfasst"},
		userID,
	).Return(storno, nil).Once()

	body := dto.ReverseEntryRequest{Reason: "Doppelt erfasst"}
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/entries/%s/reverse", entryID), body, userID, domain.RoleAdmin)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.EntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.IsStorno)
	suite.True(resp.Locked)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestReverseEntry_AccountantForbidden() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	body := dto.ReverseEntryRequest{Reason: "Doppelt erfasst"}
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/entries/%s/reverse", entryID), body, userID, domain.RoleAccountant)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "ReverseEntry")
}

func (suite *EntryHandlerTestSuite) TestReverseEntry_AlreadyReversedConflict() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockLedgerService.On("ReverseEntry", mock.Anything, entryID, mock.Anything, userID).
		Return(nil, services.ErrAlreadyReversed).Once()

	body := dto.ReverseEntryRequest{Reason: "Betrag falsch"}
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/entries/%s/reverse", entryID), body, userID, domain.RoleAdmin)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestListEntries_PassesQueryParams() {
	userID := uuid.NewString()

	suite.mockLedgerService.On("ListEntries",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListEntriesParams) bool {
			return p.FiscalYear != nil && *p.FiscalYear == 2026 && p.Limit == 10
		}),
	).Return(&dto.ListEntriesResponse{Entries: []dto.EntryResponse{}}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/entries?year=2026&limit=10", nil, userID, domain.RoleAccountant)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestEntryHandler(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
