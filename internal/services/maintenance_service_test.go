package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/events"
	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
	"github.com/propmaint/backend/internal/repositories"
)

type fakeMaintenanceStore struct {
	items map[uuid.UUID]*models.Maintenance
}

func (f *fakeMaintenanceStore) Create(_ context.Context, m *models.Maintenance) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if f.items == nil {
		f.items = map[uuid.UUID]*models.Maintenance{}
	}
	f.items[m.ID] = m
	return nil
}

func (f *fakeMaintenanceStore) Update(_ context.Context, m *models.Maintenance) error {
	f.items[m.ID] = m
	return nil
}

func (f *fakeMaintenanceStore) GetByID(_ context.Context, id uuid.UUID) (*models.Maintenance, error) {
	m, ok := f.items[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return m, nil
}

func (f *fakeMaintenanceStore) List(_ context.Context, _ *query.ListSpec, _ repositories.MaintenanceFilter) ([]models.Maintenance, int, error) {
	return nil, 0, nil
}

type fakeBuildingLookup struct {
	buildings map[uuid.UUID]*models.Building
}

func (f *fakeBuildingLookup) GetByID(_ context.Context, id uuid.UUID) (*models.Building, error) {
	b, ok := f.buildings[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return b, nil
}

func (f *fakeBuildingLookup) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.buildings[id]
	return ok, nil
}

type fakePublisher struct {
	streams []string
	events  []events.Event
}

func (f *fakePublisher) Publish(_ context.Context, stream string, event events.Event) error {
	f.streams = append(f.streams, stream)
	f.events = append(f.events, event)
	return nil
}

func TestMaintenanceUpdatePublishesStatusChange(t *testing.T) {
	businessID := uuid.New()
	buildingID := uuid.New()
	id := uuid.New()

	store := &fakeMaintenanceStore{items: map[uuid.UUID]*models.Maintenance{
		id: {ID: id, BuildingID: buildingID, Title: "Boiler inspection", Status: models.MaintenanceStatusOpen},
	}}
	buildings := &fakeBuildingLookup{buildings: map[uuid.UUID]*models.Building{
		buildingID: {ID: buildingID, BusinessID: businessID},
	}}
	pub := &fakePublisher{}
	svc := NewMaintenanceService(store, buildings, &fakeBusinessLookup{}, pub, allowAll{}, zap.NewNop())

	actor := uuid.New()
	_, err := svc.Update(context.Background(), &actor, &models.Maintenance{
		ID: id, Title: "Boiler inspection", Status: models.MaintenanceStatusDone,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pub.events) != 1 {
		t.Fatalf("events published = %d, want 1", len(pub.events))
	}
	if pub.streams[0] != events.StreamMaintenance {
		t.Errorf("stream = %q, want %q", pub.streams[0], events.StreamMaintenance)
	}
	e := pub.events[0]
	if e.Type != events.EventMaintenanceStatus {
		t.Errorf("event type = %q, want %q", e.Type, events.EventMaintenanceStatus)
	}
	if e.Payload["maintenance_id"] != id.String() {
		t.Errorf("payload maintenance_id = %v, want %s", e.Payload["maintenance_id"], id)
	}
	if e.Payload["status"] != models.MaintenanceStatusDone {
		t.Errorf("payload status = %v, want %s", e.Payload["status"], models.MaintenanceStatusDone)
	}

	// An update that keeps the status publishes nothing.
	_, err = svc.Update(context.Background(), &actor, &models.Maintenance{
		ID: id, Title: "Boiler inspection",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.events) != 1 {
		t.Errorf("events published = %d, want still 1 after no-change update", len(pub.events))
	}
}
