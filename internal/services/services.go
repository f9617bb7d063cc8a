package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/propmaint/backend/internal/query"
)

var (
	// ErrUnauthorized means the permission resolver denied the actor.
	// The HTTP layer maps it to 401 (the surface predates the 401/403
	// distinction and existing clients depend on it).
	ErrUnauthorized = errors.New("permission denied")

	ErrNotFound = errors.New("not found")

	// ErrConflict signals a duplicate (user, business) role assignment.
	ErrConflict = errors.New("assignment already exists")
)

// ValidationError aggregates every field-level violation of one request.
type ValidationError struct {
	Fields query.FieldErrors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

// ListResult is the paginated outcome of a list operation.
type ListResult struct {
	Items any
	Total int
	Limit int
	Page  int
}

// PermissionChecker gates every operation. Implemented by rbac.Resolver.
type PermissionChecker interface {
	CheckPermission(ctx context.Context, userID *uuid.UUID, category, verb string, businessID *uuid.UUID) bool
}

// scopeParam pulls the first occurrence of an entity-scoping id out of the
// raw params. A present but unparseable value is reported as
// [validation.exists]: a malformed id references no row.
func scopeParam(params []query.Param, key string, errs query.FieldErrors) *uuid.UUID {
	for _, p := range params {
		if p.Key != key {
			continue
		}
		id, err := uuid.Parse(p.Value)
		if err != nil {
			errs.Add(key, query.CodeExists)
			return nil
		}
		return &id
	}
	return nil
}
