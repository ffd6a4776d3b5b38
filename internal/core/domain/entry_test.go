package domain_test

import (
	"testing"

	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestLedgerEntry_State(t *testing.T) {
	reversedBy := "e-storno-1"

	tests := []struct {
		name  string
		entry domain.LedgerEntry
		want  domain.EntryState
	}{
		{
			name:  "freshly posted entry is open",
			entry: domain.LedgerEntry{Locked: false},
			want:  domain.EntryOpen,
		},
		{
			name:  "locked entry without storno is locked",
			entry: domain.LedgerEntry{Locked: true},
			want:  domain.EntryLocked,
		},
		{
			name:  "locked entry with a referencing storno is reversed",
			entry: domain.LedgerEntry{Locked: true, ReversedByEntryID: &reversedBy},
			want:  domain.EntryReversed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.State())
		})
	}
}

func TestLedgerEntry_IsReversed(t *testing.T) {
	var entry domain.LedgerEntry
	assert.False(t, entry.IsReversed())

	id := "e-1"
	entry.ReversedByEntryID = &id
	assert.True(t, entry.IsReversed())
}
