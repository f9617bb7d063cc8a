package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
)

type fakeRoleStore struct {
	roles       map[uuid.UUID]*models.Role
	assignments []*models.RoleAssignment
}

func (f *fakeRoleStore) Create(_ context.Context, role *models.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	if f.roles == nil {
		f.roles = map[uuid.UUID]*models.Role{}
	}
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRoleStore) Update(_ context.Context, role *models.Role) error {
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRoleStore) GetByID(_ context.Context, id uuid.UUID) (*models.Role, error) {
	r, ok := f.roles[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return r, nil
}

func (f *fakeRoleStore) List(_ context.Context, _ *query.ListSpec) ([]models.Role, int, error) {
	return nil, 0, nil
}

func (f *fakeRoleStore) FindAssignment(_ context.Context, userID uuid.UUID, businessID *uuid.UUID) (*models.RoleAssignment, error) {
	for _, a := range f.assignments {
		if a.UserID != userID {
			continue
		}
		if (a.BusinessID == nil) != (businessID == nil) {
			continue
		}
		if a.BusinessID == nil || *a.BusinessID == *businessID {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeRoleStore) CreateAssignment(_ context.Context, a *models.RoleAssignment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.assignments = append(f.assignments, a)
	return nil
}

func (f *fakeRoleStore) ListAssignmentsByUser(_ context.Context, userID uuid.UUID) ([]models.RoleAssignment, error) {
	var out []models.RoleAssignment
	for _, a := range f.assignments {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeRoleStore) DeleteAssignment(_ context.Context, id uuid.UUID) error {
	for i, a := range f.assignments {
		if a.ID == id {
			f.assignments = append(f.assignments[:i], f.assignments[i+1:]...)
			return nil
		}
	}
	return errors.New("no rows")
}

type fakeUserLookup struct {
	existing map[uuid.UUID]bool
}

func (f *fakeUserLookup) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.existing[id], nil
}

func TestAssociateOnePerScope(t *testing.T) {
	userID := uuid.New()
	b1 := uuid.New()
	b2 := uuid.New()

	store := &fakeRoleStore{}
	role := &models.Role{Name: "manager", Permissions: models.PermissionMap{}}
	if err := store.Create(context.Background(), role); err != nil {
		t.Fatal(err)
	}

	svc := NewRoleService(store,
		&fakeUserLookup{existing: map[uuid.UUID]bool{userID: true}},
		&fakeBusinessLookup{existing: map[uuid.UUID]bool{b1: true, b2: true}},
		allowAll{}, zap.NewNop())

	actor := uuid.New()
	if _, err := svc.Associate(context.Background(), &actor, userID, role.ID, &b1); err != nil {
		t.Fatalf("first association failed: %v", err)
	}

	// Same (user, business) again: conflict.
	_, err := svc.Associate(context.Background(), &actor, userID, role.ID, &b1)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}

	// Different business and system scope are distinct keys.
	if _, err := svc.Associate(context.Background(), &actor, userID, role.ID, &b2); err != nil {
		t.Errorf("association in second business failed: %v", err)
	}
	if _, err := svc.Associate(context.Background(), &actor, userID, role.ID, nil); err != nil {
		t.Errorf("system-wide association failed: %v", err)
	}

	// System scope now occupied.
	_, err = svc.Associate(context.Background(), &actor, userID, role.ID, nil)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict for duplicate system assignment", err)
	}
}

func TestAssociateValidatesReferences(t *testing.T) {
	store := &fakeRoleStore{}
	svc := NewRoleService(store, &fakeUserLookup{}, &fakeBusinessLookup{}, allowAll{}, zap.NewNop())

	actor := uuid.New()
	missingBusiness := uuid.New()
	_, err := svc.Associate(context.Background(), &actor, uuid.New(), uuid.New(), &missingBusiness)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	for _, field := range []string{"user", "role", "business"} {
		if len(verr.Fields[field]) == 0 {
			t.Errorf("missing violation for %s: %v", field, verr.Fields)
		}
	}
}

func TestDisassociate(t *testing.T) {
	userID := uuid.New()
	store := &fakeRoleStore{}
	role := &models.Role{Name: "manager"}
	_ = store.Create(context.Background(), role)

	svc := NewRoleService(store,
		&fakeUserLookup{existing: map[uuid.UUID]bool{userID: true}},
		&fakeBusinessLookup{}, allowAll{}, zap.NewNop())

	actor := uuid.New()
	a, err := svc.Associate(context.Background(), &actor, userID, role.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Disassociate(context.Background(), &actor, a.ID); err != nil {
		t.Fatalf("disassociate failed: %v", err)
	}

	// Scope is free again.
	if _, err := svc.Associate(context.Background(), &actor, userID, role.ID, nil); err != nil {
		t.Errorf("re-association after removal failed: %v", err)
	}

	if err := svc.Disassociate(context.Background(), &actor, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	deniedSvc := NewRoleService(store, &fakeUserLookup{}, &fakeBusinessLookup{}, denyAll{}, zap.NewNop())
	if err := deniedSvc.Disassociate(context.Background(), &actor, a.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}
