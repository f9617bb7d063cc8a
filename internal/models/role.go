package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleStatusActive   = "active"
	RoleStatusDisabled = "disabled"
)

// PermissionMap maps a resource category to the CRUD verbs a role grants,
// e.g. {"building": {"read": true, "update": false}}. Stored as JSONB.
type PermissionMap map[string]map[string]bool

// Allows reports whether the map grants verb on category. Missing keys at
// either level resolve to false.
func (p PermissionMap) Allows(category, verb string) bool {
	verbs, ok := p[category]
	if !ok {
		return false
	}
	return verbs[verb]
}

type Role struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Permissions PermissionMap `json:"permissions"`
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// RoleAssignment grants a user a role within a business, or system-wide
// when BusinessID is nil. Created on association, deleted on
// disassociation, never updated in place.
type RoleAssignment struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	RoleID     uuid.UUID  `json:"role_id"`
	BusinessID *uuid.UUID `json:"business_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
