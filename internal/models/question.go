package models

import (
	"time"

	"github.com/google/uuid"
)

// Question is one entry in a maintenance Q&A thread. A nil ParentID means
// it opens a thread; a non-nil ParentID means it answers that entry.
type Question struct {
	ID            uuid.UUID  `json:"id"`
	MaintenanceID uuid.UUID  `json:"maintenance_id"`
	ParentID      *uuid.UUID `json:"parent_id,omitempty"`
	Body          string     `json:"body"`
	AttachmentURL *string    `json:"attachment_url,omitempty"`
	CreatedBy     uuid.UUID  `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
}
