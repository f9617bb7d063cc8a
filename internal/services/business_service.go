package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
	"github.com/propmaint/backend/internal/rbac"
)

type BusinessStore interface {
	Create(ctx context.Context, b *models.Business) error
	Update(ctx context.Context, b *models.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error)
	List(ctx context.Context, spec *query.ListSpec) ([]models.Business, int, error)
}

var businessList = query.Definition{
	Table:       "businesses",
	DefaultSort: query.SortKey{Column: "name", Direction: query.DirectionDesc},
}

type BusinessService struct {
	businesses BusinessStore
	perms      PermissionChecker
	log        *zap.Logger
}

func NewBusinessService(businesses BusinessStore, perms PermissionChecker, log *zap.Logger) *BusinessService {
	return &BusinessService{businesses: businesses, perms: perms, log: log}
}

func (s *BusinessService) List(ctx context.Context, actorID *uuid.UUID, params []query.Param) (*ListResult, error) {
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryBusiness, rbac.VerbRead, nil) {
		return nil, ErrUnauthorized
	}

	spec, errs := businessList.Build(params)
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	items, total, err := s.businesses.List(ctx, spec)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, Limit: spec.Limit, Page: spec.Page}, nil
}

func (s *BusinessService) Get(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) (*models.Business, error) {
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryBusiness, rbac.VerbRead, &id) {
		return nil, ErrUnauthorized
	}
	b, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *BusinessService) Create(ctx context.Context, actorID *uuid.UUID, b *models.Business) error {
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryBusiness, rbac.VerbCreate, nil) {
		return ErrUnauthorized
	}

	if b.Name == "" {
		errs := query.FieldErrors{}
		errs.Add("name", "[validation.required]")
		return &ValidationError{Fields: errs}
	}

	if b.Status == "" {
		b.Status = models.BusinessStatusActive
	}
	return s.businesses.Create(ctx, b)
}

func (s *BusinessService) Update(ctx context.Context, actorID *uuid.UUID, b *models.Business) (*models.Business, error) {
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryBusiness, rbac.VerbUpdate, &b.ID) {
		return nil, ErrUnauthorized
	}

	existing, err := s.businesses.GetByID(ctx, b.ID)
	if err != nil {
		return nil, ErrNotFound
	}

	if b.Name == "" {
		errs := query.FieldErrors{}
		errs.Add("name", "[validation.required]")
		return nil, &ValidationError{Fields: errs}
	}

	if b.Status == "" {
		b.Status = existing.Status
	}
	if err := s.businesses.Update(ctx, b); err != nil {
		return nil, err
	}
	return existing, nil
}
