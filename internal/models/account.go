package models

// AccountType is the DB representation of an account class.
type AccountType string

// Account is the persistence model for one chart-of-accounts row.
type Account struct {
	AccountNumber string      `db:"account_number"`
	Name          string      `db:"name"`
	AccountType   AccountType `db:"account_type"`
	Description   string      `db:"description"`
	IsActive      bool        `db:"is_active"`
	AuditFields
}
