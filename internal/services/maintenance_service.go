package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/events"
	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
	"github.com/propmaint/backend/internal/rbac"
	"github.com/propmaint/backend/internal/repositories"
)

type MaintenanceStore interface {
	Create(ctx context.Context, m *models.Maintenance) error
	Update(ctx context.Context, m *models.Maintenance) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Maintenance, error)
	List(ctx context.Context, spec *query.ListSpec, f repositories.MaintenanceFilter) ([]models.Maintenance, int, error)
}

type BuildingLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

var maintenanceList = query.Definition{
	Table:       "maintenances",
	Reserved:    []string{"business", "building"},
	DefaultSort: query.SortKey{Column: "created_at", Direction: query.DirectionDesc},
}

type MaintenanceService struct {
	maintenances MaintenanceStore
	buildings    BuildingLookup
	businesses   BusinessLookup
	publisher    events.Publisher
	perms        PermissionChecker
	log          *zap.Logger
}

func NewMaintenanceService(
	maintenances MaintenanceStore,
	buildings BuildingLookup,
	businesses BusinessLookup,
	publisher events.Publisher,
	perms PermissionChecker,
	log *zap.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		maintenances: maintenances,
		buildings:    buildings,
		businesses:   businesses,
		publisher:    publisher,
		perms:        perms,
		log:          log,
	}
}

func (s *MaintenanceService) List(ctx context.Context, actorID *uuid.UUID, params []query.Param) (*ListResult, error) {
	errs := query.FieldErrors{}
	businessID := scopeParam(params, "business", errs)
	buildingID := scopeParam(params, "building", errs)

	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryMaintenance, rbac.VerbRead, businessID) {
		return nil, ErrUnauthorized
	}

	spec, specErrs := maintenanceList.Build(params)
	errs.Merge(specErrs)
	if businessID != nil {
		ok, err := s.businesses.Exists(ctx, *businessID)
		if err != nil {
			return nil, err
		}
		if !ok {
			errs.Add("business", query.CodeExists)
		}
	}
	if buildingID != nil {
		ok, err := s.buildings.Exists(ctx, *buildingID)
		if err != nil {
			return nil, err
		}
		if !ok {
			errs.Add("building", query.CodeExists)
		}
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	items, total, err := s.maintenances.List(ctx, spec, repositories.MaintenanceFilter{
		BusinessID: businessID,
		BuildingID: buildingID,
	})
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, Limit: spec.Limit, Page: spec.Page}, nil
}

func (s *MaintenanceService) Get(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) (*models.Maintenance, error) {
	m, err := s.maintenances.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	businessID, err := s.businessOf(ctx, m.BuildingID)
	if err != nil {
		return nil, err
	}
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryMaintenance, rbac.VerbRead, businessID) {
		return nil, ErrUnauthorized
	}
	return m, nil
}

func (s *MaintenanceService) Create(ctx context.Context, actorID *uuid.UUID, m *models.Maintenance) error {
	errs := query.FieldErrors{}
	building, err := s.buildings.GetByID(ctx, m.BuildingID)
	if err != nil {
		errs.Add("building", query.CodeExists)
	}

	var businessID *uuid.UUID
	if building != nil {
		businessID = &building.BusinessID
	}
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryMaintenance, rbac.VerbCreate, businessID) {
		return ErrUnauthorized
	}

	if m.Title == "" {
		errs.Add("title", "[validation.required]")
	}
	if m.Status != "" && !models.IsValidMaintenanceStatus(m.Status) {
		errs.Add("status", "[validation.status]")
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	if m.Status == "" {
		m.Status = models.MaintenanceStatusOpen
	}
	if actorID != nil {
		m.CreatedBy = *actorID
	}
	return s.maintenances.Create(ctx, m)
}

func (s *MaintenanceService) Update(ctx context.Context, actorID *uuid.UUID, m *models.Maintenance) (*models.Maintenance, error) {
	existing, err := s.maintenances.GetByID(ctx, m.ID)
	if err != nil {
		return nil, ErrNotFound
	}
	businessID, err := s.businessOf(ctx, existing.BuildingID)
	if err != nil {
		return nil, err
	}
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryMaintenance, rbac.VerbUpdate, businessID) {
		return nil, ErrUnauthorized
	}

	errs := query.FieldErrors{}
	if m.Title == "" {
		errs.Add("title", "[validation.required]")
	}
	if m.Status != "" && !models.IsValidMaintenanceStatus(m.Status) {
		errs.Add("status", "[validation.status]")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	m.BuildingID = existing.BuildingID
	if m.Status == "" {
		m.Status = existing.Status
	}
	if err := s.maintenances.Update(ctx, m); err != nil {
		return nil, err
	}

	if m.Status != existing.Status {
		if err := s.publisher.Publish(ctx, events.StreamMaintenance, events.Event{
			Type: events.EventMaintenanceStatus,
			Payload: map[string]any{
				"maintenance_id": m.ID.String(),
				"status":         m.Status,
			},
		}); err != nil {
			s.log.Warn("maintenance event publish failed", zap.Error(err))
		}
	}
	return existing, nil
}

func (s *MaintenanceService) businessOf(ctx context.Context, buildingID uuid.UUID) (*uuid.UUID, error) {
	building, err := s.buildings.GetByID(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	return &building.BusinessID, nil
}
