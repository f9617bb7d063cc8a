package rbac

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/models"
)

// CRUD verbs
const (
	VerbCreate = "create"
	VerbRead   = "read"
	VerbUpdate = "update"
	VerbDelete = "delete"
)

// Permission categories
const (
	CategoryBusiness    = "business"
	CategoryBuilding    = "building"
	CategoryMaintenance = "maintenance"
	CategoryQuestion    = "question"
	CategoryLog         = "log"
	CategoryRole        = "role"
	CategoryUser        = "user"
)

// AssignmentSource looks up role assignments and roles. FindAssignment
// returns (nil, nil) when no assignment exists for the key; a non-nil
// error means the store itself failed.
type AssignmentSource interface {
	FindAssignment(ctx context.Context, userID uuid.UUID, businessID *uuid.UUID) (*models.RoleAssignment, error)
	GetRole(ctx context.Context, roleID uuid.UUID) (*models.Role, error)
}

// Resolver answers "may this actor perform verb on category within this
// business". It never returns an error: absence of data, a disabled role
// or a store failure all resolve to false.
type Resolver struct {
	src AssignmentSource
	log *zap.Logger
}

func NewResolver(src AssignmentSource, log *zap.Logger) *Resolver {
	return &Resolver{src: src, log: log}
}

// CheckPermission evaluates the business-scoped assignment first and, if
// that denies and a business was given, falls back to the actor's
// system-wide (nil business) assignment. Exactly one fallback level: only
// the two scopes exist.
func (r *Resolver) CheckPermission(ctx context.Context, userID *uuid.UUID, category, verb string, businessID *uuid.UUID) bool {
	if userID == nil {
		return false
	}
	if r.allowed(ctx, *userID, category, verb, businessID) {
		return true
	}
	if businessID == nil {
		return false
	}
	return r.allowed(ctx, *userID, category, verb, nil)
}

func (r *Resolver) allowed(ctx context.Context, userID uuid.UUID, category, verb string, businessID *uuid.UUID) bool {
	assignment, err := r.src.FindAssignment(ctx, userID, businessID)
	if err != nil {
		r.log.Warn("role assignment lookup failed", zap.Error(err), zap.String("user_id", userID.String()))
		return false
	}
	if assignment == nil {
		return false
	}

	role, err := r.src.GetRole(ctx, assignment.RoleID)
	if err != nil {
		r.log.Warn("role lookup failed", zap.Error(err), zap.String("role_id", assignment.RoleID.String()))
		return false
	}
	if role == nil || role.Status != models.RoleStatusActive {
		return false
	}
	return role.Permissions.Allows(category, verb)
}
