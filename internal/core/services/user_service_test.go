package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/reifenmarkt/accounting_ledger_app/internal/apperrors"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/dto"
	"github.com/reifenmarkt/accounting_ledger_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

func TestCreateUser_DefaultsToAccountant(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := services.NewUserService(mockRepo)

	var saved domain.User
	mockRepo.On("SaveUser", mock.Anything, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).
		Return(nil).Once()

	user, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "mmueller",
		Password: "ganz-geheim-123",
		Name:     "M. Mueller",
	})

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, domain.RoleAccountant, saved.Role)
	assert.Equal(t, domain.ProviderLocal, saved.AuthProvider)
	assert.NotEqual(t, "ganz-geheim-123", saved.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("ganz-geheim-123", saved.PasswordHash))
}

func TestCreateUser_UsernameTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := services.NewUserService(mockRepo)

	mockRepo.On("SaveUser", mock.Anything, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	user, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "mmueller",
		Password: "ganz-geheim-123",
		Name:     "M. Mueller",
	})

	require.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
}

func TestAuthenticateUser(t *testing.T) {
	hash, err := utils.HashPassword("richtig-und-lang")
	require.NoError(t, err)

	stored := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "mmueller",
		Role:         domain.RoleAdmin,
		AuthProvider: domain.ProviderLocal,
		PasswordHash: hash,
	}

	t.Run("valid credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := services.NewUserService(mockRepo)
		mockRepo.On("FindUserByUsername", mock.Anything, "mmueller").Return(stored, nil).Once()

		user, err := svc.AuthenticateUser(context.Background(), "mmueller", "richtig-und-lang")

		require.NoError(t, err)
		assert.Equal(t, stored.UserID, user.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := services.NewUserService(mockRepo)
		mockRepo.On("FindUserByUsername", mock.Anything, "mmueller").Return(stored, nil).Once()

		user, err := svc.AuthenticateUser(context.Background(), "mmueller", "falsch")

		require.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := services.NewUserService(mockRepo)
		mockRepo.On("FindUserByUsername", mock.Anything, "niemand").Return(nil, apperrors.ErrNotFound).Once()

		user, err := svc.AuthenticateUser(context.Background(), "niemand", "egal")

		require.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})
}

func TestFindOrCreateGoogleUser(t *testing.T) {
	info := domain.GoogleUserInfo{
		ID:            "google-sub-123",
		Email:         "m.mueller@example.com",
		VerifiedEmail: true,
		Name:          "M. Mueller",
	}

	t.Run("existing user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := services.NewUserService(mockRepo)
		existing := &domain.User{UserID: uuid.NewString(), AuthProvider: domain.ProviderGoogle, ProviderUserID: info.ID}
		mockRepo.On("FindUserByProviderID", mock.Anything, domain.ProviderGoogle, info.ID).Return(existing, nil).Once()

		user, err := svc.FindOrCreateGoogleUser(context.Background(), info)

		require.NoError(t, err)
		assert.Equal(t, existing.UserID, user.UserID)
		mockRepo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
	})

	t.Run("first sign-in creates user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := services.NewUserService(mockRepo)
		mockRepo.On("FindUserByProviderID", mock.Anything, domain.ProviderGoogle, info.ID).Return(nil, apperrors.ErrNotFound).Once()

		var saved domain.User
		mockRepo.On("SaveUser", mock.Anything, mock.AnythingOfType("domain.User")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).
			Return(nil).Once()

		user, err := svc.FindOrCreateGoogleUser(context.Background(), info)

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, info.Email, saved.Username)
		assert.Equal(t, domain.ProviderGoogle, saved.AuthProvider)
		assert.Equal(t, info.ID, saved.ProviderUserID)
		assert.Empty(t, saved.PasswordHash)
	})
}
