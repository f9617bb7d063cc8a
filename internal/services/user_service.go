package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/auth"
	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
	"github.com/propmaint/backend/internal/rbac"
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, spec *query.ListSpec) ([]models.User, int, error)
}

var userList = query.Definition{
	Table:       "users",
	DefaultSort: query.SortKey{Column: "created_at", Direction: query.DirectionDesc},
}

type UserService struct {
	users UserStore
	perms PermissionChecker
	log   *zap.Logger
}

func NewUserService(users UserStore, perms PermissionChecker, log *zap.Logger) *UserService {
	return &UserService{users: users, perms: perms, log: log}
}

func (s *UserService) List(ctx context.Context, actorID *uuid.UUID, params []query.Param) (*ListResult, error) {
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryUser, rbac.VerbRead, nil) {
		return nil, ErrUnauthorized
	}

	spec, errs := userList.Build(params)
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	items, total, err := s.users.List(ctx, spec)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, Limit: spec.Limit, Page: spec.Page}, nil
}

func (s *UserService) Create(ctx context.Context, actorID *uuid.UUID, u *models.User, password string) error {
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryUser, rbac.VerbCreate, nil) {
		return ErrUnauthorized
	}

	errs := query.FieldErrors{}
	if u.Email == "" {
		errs.Add("email", "[validation.required]")
	}
	if password == "" {
		errs.Add("password", "[validation.required]")
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	if u.Status == "" {
		u.Status = models.UserStatusActive
	}
	return s.users.Create(ctx, u)
}
