package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BuildingStatusActive   = "active"
	BuildingStatusArchived = "archived"
)

type Building struct {
	ID         uuid.UUID `json:"id"`
	BusinessID uuid.UUID `json:"business_id"`
	Name       string    `json:"name"`
	Address    *string   `json:"address,omitempty"`
	Floors     *int      `json:"floors,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
