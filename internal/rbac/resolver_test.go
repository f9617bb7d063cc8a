package rbac

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/models"
)

type fakeSource struct {
	// keyed by "userID|businessID" with "-" for the system scope
	assignments map[string]*models.RoleAssignment
	roles       map[uuid.UUID]*models.Role
	err         error
}

func scopeKey(userID uuid.UUID, businessID *uuid.UUID) string {
	if businessID == nil {
		return userID.String() + "|-"
	}
	return userID.String() + "|" + businessID.String()
}

func (f *fakeSource) FindAssignment(_ context.Context, userID uuid.UUID, businessID *uuid.UUID) (*models.RoleAssignment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.assignments[scopeKey(userID, businessID)], nil
}

func (f *fakeSource) GetRole(_ context.Context, roleID uuid.UUID) (*models.Role, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.roles[roleID], nil
}

func activeRole(perms models.PermissionMap) *models.Role {
	return &models.Role{ID: uuid.New(), Name: "test", Permissions: perms, Status: models.RoleStatusActive}
}

func TestCheckPermissionScoped(t *testing.T) {
	userID := uuid.New()
	b1 := uuid.New()
	b2 := uuid.New()

	viewer := activeRole(models.PermissionMap{"building": {"read": true}})
	src := &fakeSource{
		assignments: map[string]*models.RoleAssignment{
			scopeKey(userID, &b1): {UserID: userID, RoleID: viewer.ID, BusinessID: &b1},
		},
		roles: map[uuid.UUID]*models.Role{viewer.ID: viewer},
	}
	r := NewResolver(src, zap.NewNop())

	tests := []struct {
		name       string
		category   string
		verb       string
		businessID *uuid.UUID
		want       bool
	}{
		{"granted in assigned business", "building", "read", &b1, true},
		{"denied in other business", "building", "read", &b2, false},
		{"verb not granted", "building", "update", &b1, false},
		{"category not granted", "maintenance", "read", &b1, false},
		{"no system-wide assignment", "building", "read", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.CheckPermission(context.Background(), &userID, tt.category, tt.verb, tt.businessID)
			if got != tt.want {
				t.Errorf("CheckPermission = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckPermissionSystemFallback(t *testing.T) {
	userID := uuid.New()
	b1 := uuid.New()

	admin := activeRole(models.PermissionMap{"building": {"read": true, "update": true}})
	src := &fakeSource{
		assignments: map[string]*models.RoleAssignment{
			scopeKey(userID, nil): {UserID: userID, RoleID: admin.ID},
		},
		roles: map[uuid.UUID]*models.Role{admin.ID: admin},
	}
	r := NewResolver(src, zap.NewNop())

	// No scoped assignment for b1: the system-wide role must answer.
	if !r.CheckPermission(context.Background(), &userID, "building", "update", &b1) {
		t.Error("system-wide role should grant scoped request via fallback")
	}
	if !r.CheckPermission(context.Background(), &userID, "building", "read", nil) {
		t.Error("system-wide role should grant system-scope request directly")
	}
	if r.CheckPermission(context.Background(), &userID, "user", "read", &b1) {
		t.Error("system-wide role should not grant an unlisted category")
	}
}

func TestCheckPermissionScopedDenyDoesNotMaskFallback(t *testing.T) {
	// A scoped role without the verb still falls through to the system
	// role, which has it.
	userID := uuid.New()
	b1 := uuid.New()

	viewer := activeRole(models.PermissionMap{"building": {"read": true}})
	admin := activeRole(models.PermissionMap{"building": {"read": true, "update": true}})
	src := &fakeSource{
		assignments: map[string]*models.RoleAssignment{
			scopeKey(userID, &b1): {UserID: userID, RoleID: viewer.ID, BusinessID: &b1},
			scopeKey(userID, nil): {UserID: userID, RoleID: admin.ID},
		},
		roles: map[uuid.UUID]*models.Role{viewer.ID: viewer, admin.ID: admin},
	}
	r := NewResolver(src, zap.NewNop())

	if !r.CheckPermission(context.Background(), &userID, "building", "update", &b1) {
		t.Error("fallback to system role should grant update")
	}
}

func TestCheckPermissionEdges(t *testing.T) {
	userID := uuid.New()
	b1 := uuid.New()

	disabled := &models.Role{ID: uuid.New(), Status: models.RoleStatusDisabled,
		Permissions: models.PermissionMap{"building": {"read": true}}}
	src := &fakeSource{
		assignments: map[string]*models.RoleAssignment{
			scopeKey(userID, &b1): {UserID: userID, RoleID: disabled.ID, BusinessID: &b1},
		},
		roles: map[uuid.UUID]*models.Role{disabled.ID: disabled},
	}
	r := NewResolver(src, zap.NewNop())

	if r.CheckPermission(context.Background(), nil, "building", "read", &b1) {
		t.Error("nil actor must resolve to false")
	}
	if r.CheckPermission(context.Background(), &userID, "building", "read", &b1) {
		t.Error("disabled role must resolve to false")
	}

	src.err = errors.New("connection refused")
	if r.CheckPermission(context.Background(), &userID, "building", "read", &b1) {
		t.Error("store failure must resolve to false, not error")
	}
}

func TestPermissionMapAllows(t *testing.T) {
	p := models.PermissionMap{"maintenance": {"read": true, "create": false}}

	tests := []struct {
		category string
		verb     string
		want     bool
	}{
		{"maintenance", "read", true},
		{"maintenance", "create", false},
		{"maintenance", "delete", false},
		{"building", "read", false},
	}
	for _, tt := range tests {
		if got := p.Allows(tt.category, tt.verb); got != tt.want {
			t.Errorf("Allows(%q, %q) = %v, want %v", tt.category, tt.verb, got, tt.want)
		}
	}
}
