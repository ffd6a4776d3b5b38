package models

import "time"

// User is the persistence model for a back-office user.
type User struct {
	UserID                 string     `db:"user_id"`
	Username               string     `db:"username"`
	Name                   string     `db:"name"`
	Email                  string     `db:"email"`
	Role                   string     `db:"role"`
	AuthProvider           string     `db:"auth_provider"`
	ProviderUserID         string     `db:"provider_user_id"`
	EmailVerified          bool       `db:"email_verified"`
	PasswordHash           string     `db:"password_hash"`
	RefreshTokenHash       string     `db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time `db:"refresh_token_expiry_time"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
