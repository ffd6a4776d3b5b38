package domain

import "time"

// UserRole controls what back-office operations a user may perform.
// Only admins may reverse entries, close periods, or manage the chart of accounts.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleAccountant UserRole = "ACCOUNTANT"
)

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a back-office user.
type User struct {
	UserID         string       `json:"userID"` // Primary key (UUID)
	Username       string       `json:"username"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Role           UserRole     `json:"role"`
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID string       `json:"providerUserID,omitempty"` // Google's 'sub' claim for OAuth users
	EmailVerified  bool         `json:"emailVerified"`
	PasswordHash   string       `json:"-"` // Empty for OAuth-only users
	// Refresh token state; only the SHA-256 hash of the token is stored.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete
}

// GoogleUserInfo mirrors the fields returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
