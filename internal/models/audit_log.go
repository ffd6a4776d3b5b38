package models

import "time"

// AuditLog is the persistence model for the compliance trail.
// Changes is stored as JSONB.
type AuditLog struct {
	AuditID   string         `db:"audit_id"`
	EntryID   string         `db:"entry_id"`
	Action    string         `db:"action"`
	UserID    string         `db:"user_id"`
	Changes   map[string]any `db:"changes"`
	CreatedAt time.Time      `db:"created_at"`
}
