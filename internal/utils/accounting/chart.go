package accounting

import (
	"fmt"

	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Account numbers follow the SKR04-style scheme the back office uses: exactly
// four digits, with the leading digit encoding the account class. The ranges
// below cover the accounts the platform actually books against (Bank 1200,
// Verbindlichkeiten 3300, Aufwand 4xxx-6xxx, Erlöse 8xxx).
var classDigits = map[domain.AccountType][]byte{
	domain.Asset:     {'0', '1'},
	domain.Liability: {'3'},
	domain.Expense:   {'4', '5', '6', '7'},
	domain.Revenue:   {'8'},
}

// ValidateAccountNumber checks the chart-of-accounts format rules for a new
// account: four digits, and a leading digit permitted for the account type.
func ValidateAccountNumber(number string, accountType domain.AccountType) error {
	if len(number) != 4 {
		return fmt.Errorf("account number %q must be exactly 4 digits", number)
	}
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return fmt.Errorf("account number %q must be numeric", number)
		}
	}

	digits, ok := classDigits[accountType]
	if !ok {
		return fmt.Errorf("unknown account type %q", accountType)
	}
	for _, d := range digits {
		if number[0] == d {
			return nil
		}
	}
	return fmt.Errorf("account number %q is outside the %s class range", number, accountType)
}

// SignedAmount applies the accounting sign convention to one side of an entry:
// a debit increases ASSET/EXPENSE accounts and decreases LIABILITY/REVENUE
// accounts; a credit does the opposite. Used by the trial balance report.
func SignedAmount(amount decimal.Decimal, accountType domain.AccountType, isDebit bool) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			return amount.Neg(), nil
		}
	case domain.Liability, domain.Revenue:
		if isDebit {
			return amount.Neg(), nil
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
	return amount, nil
}

// NaturalBalance folds debit and credit totals into a balance expressed in the
// account's natural direction: debit-normal for ASSET/EXPENSE, credit-normal
// for LIABILITY/REVENUE.
func NaturalBalance(accountType domain.AccountType, totalDebit, totalCredit decimal.Decimal) decimal.Decimal {
	switch accountType {
	case domain.Liability, domain.Revenue:
		return totalCredit.Sub(totalDebit)
	default:
		return totalDebit.Sub(totalCredit)
	}
}
