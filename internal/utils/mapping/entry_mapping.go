package mapping

import (
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	"github.com/reifenmarkt/accounting_ledger_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:           d.EntryID,
		EntryNumber:       d.EntryNumber,
		DocumentNo:        d.DocumentNo,
		BookingDate:       d.BookingDate,
		DebitAcct:         d.DebitAcct,
		CreditAcct:        d.CreditAcct,
		Amount:            d.Amount,
		Description:       d.Description,
		SourceType:        string(d.SourceType),
		SourceID:          d.SourceID,
		Reference:         d.Reference,
		Locked:            d.Locked,
		IsStorno:          d.IsStorno,
		StornoOfEntryID:   d.StornoOfEntryID,
		ReversedByEntryID: d.ReversedByEntryID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:           m.EntryID,
		EntryNumber:       m.EntryNumber,
		DocumentNo:        m.DocumentNo,
		BookingDate:       m.BookingDate,
		DebitAcct:         m.DebitAcct,
		CreditAcct:        m.CreditAcct,
		Amount:            m.Amount,
		Description:       m.Description,
		SourceType:        domain.SourceType(m.SourceType),
		SourceID:          m.SourceID,
		Reference:         m.Reference,
		Locked:            m.Locked,
		IsStorno:          m.IsStorno,
		StornoOfEntryID:   m.StornoOfEntryID,
		ReversedByEntryID: m.ReversedByEntryID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLog
func ToDomainAuditLog(m models.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		AuditID:   m.AuditID,
		EntryID:   m.EntryID,
		Action:    domain.AuditAction(m.Action),
		UserID:    m.UserID,
		Changes:   m.Changes,
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainAuditLogSlice converts a slice of model AuditLogs to domain AuditLogs
func ToDomainAuditLogSlice(ms []models.AuditLog) []domain.AuditLog {
	ds := make([]domain.AuditLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditLog(m)
	}
	return ds
}
