package domain

import "time"

// AuditAction enumerates the recorded ledger mutations.
// Action names mirror the journal the accountants see, hence STORNIERT.
type AuditAction string

const (
	AuditCreated   AuditAction = "CREATED"
	AuditLocked    AuditAction = "LOCKED"
	AuditStorniert AuditAction = "STORNIERT"
)

// AuditLog is one row of the compliance trail. It is written in the same
// database transaction as the entry mutation it describes; an entry mutation
// without its audit record cannot exist.
type AuditLog struct {
	AuditID   string         `json:"auditID"`
	EntryID   string         `json:"entryID"`
	Action    AuditAction    `json:"action"`
	UserID    string         `json:"userID"`
	Changes   map[string]any `json:"changes"`
	CreatedAt time.Time      `json:"createdAt"`
}
