package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents one entry of the chart of accounts (SKR04 style numbering).
// The account number is the business key; every ledger entry references two of
// these by number.
type Account struct {
	AccountNumber string      `json:"accountNumber"` // e.g. "1200" (Bank)
	Name          string      `json:"name"`
	AccountType   AccountType `json:"accountType"`
	Description   string      `json:"description"`
	IsActive      bool        `json:"isActive"` // Inactive accounts reject new postings
	AuditFields
}
