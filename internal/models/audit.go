package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogEntry is one row of the request audit trail. Before, After and
// Body hold JSON-encoded, redacted snapshots.
type AuditLogEntry struct {
	ID          uuid.UUID  `json:"id"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	IP          string     `json:"ip"`
	UserAgent   string     `json:"user_agent"`
	Method      string     `json:"method"`
	Action      string     `json:"action"`
	Description string     `json:"description"`
	Before      string     `json:"before,omitempty"`
	After       string     `json:"after,omitempty"`
	Body        string     `json:"body,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
