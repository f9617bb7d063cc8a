package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
	"github.com/propmaint/backend/internal/rbac"
)

type BuildingStore interface {
	Create(ctx context.Context, b *models.Building) error
	Update(ctx context.Context, b *models.Building) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error)
	List(ctx context.Context, spec *query.ListSpec, businessID *uuid.UUID) ([]models.Building, int, error)
}

type BusinessLookup interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

var buildingList = query.Definition{
	Table:       "buildings",
	Reserved:    []string{"business"},
	DefaultSort: query.SortKey{Column: "name", Direction: query.DirectionDesc},
}

type BuildingService struct {
	buildings  BuildingStore
	businesses BusinessLookup
	perms      PermissionChecker
	log        *zap.Logger
}

func NewBuildingService(buildings BuildingStore, businesses BusinessLookup, perms PermissionChecker, log *zap.Logger) *BuildingService {
	return &BuildingService{buildings: buildings, businesses: businesses, perms: perms, log: log}
}

// List runs the full list pipeline: authorize (scoped to the business
// param when present), validate params, build the spec, fetch.
func (s *BuildingService) List(ctx context.Context, actorID *uuid.UUID, params []query.Param) (*ListResult, error) {
	errs := query.FieldErrors{}
	businessID := scopeParam(params, "business", errs)

	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryBuilding, rbac.VerbRead, businessID) {
		return nil, ErrUnauthorized
	}

	spec, specErrs := buildingList.Build(params)
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
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	items, total, err := s.buildings.List(ctx, spec, businessID)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, Limit: spec.Limit, Page: spec.Page}, nil
}

func (s *BuildingService) Get(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) (*models.Building, error) {
	b, err := s.buildings.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryBuilding, rbac.VerbRead, &b.BusinessID) {
		return nil, ErrUnauthorized
	}
	return b, nil
}

func (s *BuildingService) Create(ctx context.Context, actorID *uuid.UUID, b *models.Building) error {
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryBuilding, rbac.VerbCreate, &b.BusinessID) {
		return ErrUnauthorized
	}

	errs := query.FieldErrors{}
	if b.Name == "" {
		errs.Add("name", "[validation.required]")
	}
	ok, err := s.businesses.Exists(ctx, b.BusinessID)
	if err != nil {
		return err
	}
	if !ok {
		errs.Add("business", query.CodeExists)
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	if b.Status == "" {
		b.Status = models.BuildingStatusActive
	}
	return s.buildings.Create(ctx, b)
}

// Update returns the pre-update state so the caller can audit it.
func (s *BuildingService) Update(ctx context.Context, actorID *uuid.UUID, b *models.Building) (*models.Building, error) {
	existing, err := s.buildings.GetByID(ctx, b.ID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryBuilding, rbac.VerbUpdate, &existing.BusinessID) {
		return nil, ErrUnauthorized
	}

	errs := query.FieldErrors{}
	if b.Name == "" {
		errs.Add("name", "[validation.required]")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	b.BusinessID = existing.BusinessID
	if b.Status == "" {
		b.Status = existing.Status
	}
	if err := s.buildings.Update(ctx, b); err != nil {
		return nil, err
	}
	return existing, nil
}
