package domain

import "github.com/shopspring/decimal"

// TrialBalanceRow represents a single account line in a trial balance report.
type TrialBalanceRow struct {
	AccountNumber string
	AccountName   string
	AccountType   AccountType
	TotalDebit    decimal.Decimal
	TotalCredit   decimal.Decimal
	Balance       decimal.Decimal
}

// TrialBalanceReport aggregates the per-account rows with the report totals.
// A ledger where every entry is balanced yields TotalDebit == TotalCredit.
type TrialBalanceReport struct {
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}
