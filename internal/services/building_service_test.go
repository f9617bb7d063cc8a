package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
)

type fakeBuildingStore struct {
	buildings map[uuid.UUID]*models.Building
	listed    []models.Building
	lastSpec  *query.ListSpec
	lastScope *uuid.UUID
}

func (f *fakeBuildingStore) Create(_ context.Context, b *models.Building) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if f.buildings == nil {
		f.buildings = map[uuid.UUID]*models.Building{}
	}
	f.buildings[b.ID] = b
	return nil
}

func (f *fakeBuildingStore) Update(_ context.Context, b *models.Building) error {
	f.buildings[b.ID] = b
	return nil
}

func (f *fakeBuildingStore) GetByID(_ context.Context, id uuid.UUID) (*models.Building, error) {
	b, ok := f.buildings[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return b, nil
}

func (f *fakeBuildingStore) List(_ context.Context, spec *query.ListSpec, businessID *uuid.UUID) ([]models.Building, int, error) {
	f.lastSpec = spec
	f.lastScope = businessID
	return f.listed, len(f.listed), nil
}

type fakeBusinessLookup struct {
	existing map[uuid.UUID]bool
}

func (f *fakeBusinessLookup) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.existing[id], nil
}

type allowAll struct{}

func (allowAll) CheckPermission(context.Context, *uuid.UUID, string, string, *uuid.UUID) bool {
	return true
}

type denyAll struct{}

func (denyAll) CheckPermission(context.Context, *uuid.UUID, string, string, *uuid.UUID) bool {
	return false
}

func TestBuildingListUnauthorized(t *testing.T) {
	svc := NewBuildingService(&fakeBuildingStore{}, &fakeBusinessLookup{}, denyAll{}, zap.NewNop())

	actor := uuid.New()
	_, err := svc.List(context.Background(), &actor, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestBuildingListCollectsAllViolations(t *testing.T) {
	svc := NewBuildingService(&fakeBuildingStore{}, &fakeBusinessLookup{}, allowAll{}, zap.NewNop())

	actor := uuid.New()
	missing := uuid.New()
	_, err := svc.List(context.Background(), &actor, []query.Param{
		{Key: "limit", Value: "10000"},
		{Key: "name", Value: "sideways"},
		{Key: "business", Value: missing.String()},
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	want := query.FieldErrors{
		"limit":    {query.CodeLimit},
		"name":     {query.CodeOrder},
		"business": {query.CodeExists},
	}
	if !reflect.DeepEqual(verr.Fields, want) {
		t.Errorf("fields = %v, want %v", verr.Fields, want)
	}
}

func TestBuildingListScopedFetch(t *testing.T) {
	businessID := uuid.New()
	store := &fakeBuildingStore{listed: []models.Building{{ID: uuid.New(), BusinessID: businessID}}}
	lookup := &fakeBusinessLookup{existing: map[uuid.UUID]bool{businessID: true}}
	svc := NewBuildingService(store, lookup, allowAll{}, zap.NewNop())

	actor := uuid.New()
	result, err := svc.List(context.Background(), &actor, []query.Param{
		{Key: "business", Value: businessID.String()},
		{Key: "name", Value: "asc"},
		{Key: "created_at", Value: "desc"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 1 {
		t.Errorf("total = %d, want 1", result.Total)
	}
	if store.lastScope == nil || *store.lastScope != businessID {
		t.Errorf("scope = %v, want %s", store.lastScope, businessID)
	}
	if got := store.lastSpec.OrderClause(); got != "name ASC, created_at DESC" {
		t.Errorf("order clause = %q, want %q", got, "name ASC, created_at DESC")
	}
}

func TestBuildingListMalformedScopeParam(t *testing.T) {
	svc := NewBuildingService(&fakeBuildingStore{}, &fakeBusinessLookup{}, allowAll{}, zap.NewNop())

	actor := uuid.New()
	_, err := svc.List(context.Background(), &actor, []query.Param{
		{Key: "business", Value: "not-a-uuid"},
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !reflect.DeepEqual(verr.Fields["business"], []string{query.CodeExists}) {
		t.Errorf("business codes = %v, want [%s]", verr.Fields["business"], query.CodeExists)
	}
}

func TestBuildingCreate(t *testing.T) {
	businessID := uuid.New()
	store := &fakeBuildingStore{}
	lookup := &fakeBusinessLookup{existing: map[uuid.UUID]bool{businessID: true}}
	svc := NewBuildingService(store, lookup, allowAll{}, zap.NewNop())

	actor := uuid.New()
	b := &models.Building{BusinessID: businessID, Name: "North Tower"}
	if err := svc.Create(context.Background(), &actor, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != models.BuildingStatusActive {
		t.Errorf("status = %q, want defaulted to active", b.Status)
	}

	// Missing name and unknown business: both violations reported.
	bad := &models.Building{BusinessID: uuid.New()}
	err := svc.Create(context.Background(), &actor, bad)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(verr.Fields) != 2 {
		t.Errorf("fields = %v, want name and business violations", verr.Fields)
	}
}

func TestBuildingUpdateReturnsPreviousState(t *testing.T) {
	businessID := uuid.New()
	id := uuid.New()
	store := &fakeBuildingStore{buildings: map[uuid.UUID]*models.Building{
		id: {ID: id, BusinessID: businessID, Name: "Old Name", Status: models.BuildingStatusActive},
	}}
	svc := NewBuildingService(store, &fakeBusinessLookup{}, allowAll{}, zap.NewNop())

	actor := uuid.New()
	previous, err := svc.Update(context.Background(), &actor, &models.Building{ID: id, Name: "New Name"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if previous.Name != "Old Name" {
		t.Errorf("previous name = %q, want %q", previous.Name, "Old Name")
	}
	if store.buildings[id].Name != "New Name" {
		t.Errorf("stored name = %q, want %q", store.buildings[id].Name, "New Name")
	}
	if store.buildings[id].BusinessID != businessID {
		t.Error("update must not move the building to another business")
	}

	_, err = svc.Update(context.Background(), &actor, &models.Building{ID: uuid.New(), Name: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
