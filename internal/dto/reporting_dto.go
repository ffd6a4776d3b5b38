package dto

import (
	"time"

	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts a domain trial balance report to a DTO response
func ToTrialBalanceResponse(report *domain.TrialBalanceReport, asOf time.Time) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf: asOf.Format("2006-01-02"),
		Rows: make([]TrialBalanceRowResponse, len(report.Rows)),
	}

	for i, row := range report.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountNumber: row.AccountNumber,
			AccountName:   row.AccountName,
			AccountType:   string(row.AccountType),
			Debit:         row.TotalDebit,
			Credit:        row.TotalCredit,
			Balance:       row.Balance,
		}
	}

	response.Totals.Debit = report.TotalDebit
	response.Totals.Credit = report.TotalCredit

	return response
}
