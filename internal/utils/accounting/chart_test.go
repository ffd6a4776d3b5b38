package accounting_test

import (
	"testing"

	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	"github.com/reifenmarkt/accounting_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAccountNumber(t *testing.T) {
	tests := []struct {
		name        string
		number      string
		accountType domain.AccountType
		wantErr     bool
	}{
		{"bank account in asset class", "1200", domain.Asset, false},
		{"cash account in asset class", "0100", domain.Asset, false},
		{"liabilities account", "3300", domain.Liability, false},
		{"expense account 4xxx", "4650", domain.Expense, false},
		{"expense account 6xxx", "6520", domain.Expense, false},
		{"revenue account", "8400", domain.Revenue, false},
		{"expense number declared as revenue", "4650", domain.Revenue, true},
		{"revenue number declared as asset", "8400", domain.Asset, true},
		{"too short", "120", domain.Asset, true},
		{"too long", "12000", domain.Asset, true},
		{"non numeric", "12a0", domain.Asset, true},
		{"empty", "", domain.Asset, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateAccountNumber(tt.number, tt.accountType)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromFloat(119.00)

	tests := []struct {
		name        string
		accountType domain.AccountType
		isDebit     bool
		want        decimal.Decimal
	}{
		{"debit to asset is positive", domain.Asset, true, amount},
		{"credit to asset is negative", domain.Asset, false, amount.Neg()},
		{"debit to expense is positive", domain.Expense, true, amount},
		{"credit to liability is positive", domain.Liability, false, amount},
		{"debit to liability is negative", domain.Liability, true, amount.Neg()},
		{"credit to revenue is positive", domain.Revenue, false, amount},
		{"debit to revenue is negative", domain.Revenue, true, amount.Neg()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(amount, tt.accountType, tt.isDebit)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}

	t.Run("unknown account type", func(t *testing.T) {
		_, err := accounting.SignedAmount(amount, domain.AccountType("EQUITY"), true)
		assert.Error(t, err)
	})
}
