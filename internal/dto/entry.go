package dto

import (
	"time"

	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines the data needed to post a new ledger entry.
type CreateEntryRequest struct {
	BookingDate time.Time         `json:"bookingDate" binding:"required"`
	DebitAcct   string            `json:"debitAcct" binding:"required,len=4,numeric"`
	CreditAcct  string            `json:"creditAcct" binding:"required,len=4,numeric"`
	Amount      decimal.Decimal   `json:"amount" binding:"required"`
	Description string            `json:"description" binding:"required"`
	SourceType  domain.SourceType `json:"sourceType" binding:"required,oneof=COMMISSION EXPENSE TRAVEL_EXPENSE PAYROLL PROCUREMENT INFLUENCER VEHICLE MANUAL"`
	SourceID    string            `json:"sourceID"`  // Optional, links back to the originating record
	Reference   string            `json:"reference"` // Optional, external document reference
}

// ReverseEntryRequest defines the data needed to reverse (storno) an entry.
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"required,min=3"`
}

// EntryResponse defines the data returned for a ledger entry.
// Mirrors domain.LedgerEntry.
type EntryResponse struct {
	EntryID           string            `json:"entryID"`
	EntryNumber       int64             `json:"entryNumber"`
	DocumentNo        string            `json:"documentNo"`
	BookingDate       time.Time         `json:"bookingDate"`
	DebitAcct         string            `json:"debitAcct"`
	CreditAcct        string            `json:"creditAcct"`
	Amount            decimal.Decimal   `json:"amount"`
	Description       string            `json:"description"`
	SourceType        domain.SourceType `json:"sourceType"`
	SourceID          string            `json:"sourceID,omitempty"`
	Reference         string            `json:"reference,omitempty"`
	State             domain.EntryState `json:"state"`
	Locked            bool              `json:"locked"`
	IsStorno          bool              `json:"isStorno"`
	StornoOfEntryID   *string           `json:"stornoOfEntryID,omitempty"`
	ReversedByEntryID *string           `json:"reversedByEntryID,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	CreatedBy         string            `json:"createdBy"`
}

// ToEntryResponse converts a domain.LedgerEntry to EntryResponse DTO
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:           e.EntryID,
		EntryNumber:       e.EntryNumber,
		DocumentNo:        e.DocumentNo,
		BookingDate:       e.BookingDate,
		DebitAcct:         e.DebitAcct,
		CreditAcct:        e.CreditAcct,
		Amount:            e.Amount,
		Description:       e.Description,
		SourceType:        e.SourceType,
		SourceID:          e.SourceID,
		Reference:         e.Reference,
		State:             e.State(),
		Locked:            e.Locked,
		IsStorno:          e.IsStorno,
		StornoOfEntryID:   e.StornoOfEntryID,
		ReversedByEntryID: e.ReversedByEntryID,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of domain.LedgerEntry to []EntryResponse.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToEntryResponse(&e)
	}
	return responses
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	FiscalYear    *int               `form:"year"`
	AccountNumber *string            `form:"accountNumber" binding:"omitempty,len=4,numeric"`
	SourceType    *domain.SourceType `form:"sourceType" binding:"omitempty,oneof=COMMISSION EXPENSE TRAVEL_EXPENSE PAYROLL PROCUREMENT INFLUENCER VEHICLE MANUAL"`
	SourceID      *string            `form:"sourceID"`
	DateFrom      *time.Time         `form:"dateFrom" time_format:"2006-01-02"`
	DateTo        *time.Time         `form:"dateTo" time_format:"2006-01-02"`
	Search        *string            `form:"search"`
	IsStorno      *bool              `form:"isStorno"`
	IncludeStorno bool               `form:"includeStorno,default=true"`
	Limit         int                `form:"limit,default=20"`
	NextToken     *string            `form:"nextToken"`
}

// ListEntriesResponse wraps the list of entries with the pagination token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// AuditLogResponse defines the data returned for an audit trail record.
type AuditLogResponse struct {
	AuditID   string             `json:"auditID"`
	EntryID   string             `json:"entryID"`
	Action    domain.AuditAction `json:"action"`
	UserID    string             `json:"userID"`
	Changes   map[string]any     `json:"changes,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

// ToAuditLogResponses converts a slice of domain.AuditLog to []AuditLogResponse.
func ToAuditLogResponses(logs []domain.AuditLog) []AuditLogResponse {
	responses := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		responses[i] = AuditLogResponse{
			AuditID:   l.AuditID,
			EntryID:   l.EntryID,
			Action:    l.Action,
			UserID:    l.UserID,
			Changes:   l.Changes,
			CreatedAt: l.CreatedAt,
		}
	}
	return responses
}
