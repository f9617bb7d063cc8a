package models

import (
	"time"

	"github.com/google/uuid"
)

// Maintenance statuses
const (
	MaintenanceStatusOpen       = "open"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusDone       = "done"
)

type Maintenance struct {
	ID          uuid.UUID  `json:"id"`
	BuildingID  uuid.UUID  `json:"building_id"`
	Title       string     `json:"title"`
	Detail      *string    `json:"detail,omitempty"`
	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func IsValidMaintenanceStatus(s string) bool {
	switch s {
	case MaintenanceStatusOpen, MaintenanceStatusInProgress, MaintenanceStatusDone:
		return true
	}
	return false
}
