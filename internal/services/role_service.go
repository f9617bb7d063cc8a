package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
	"github.com/propmaint/backend/internal/rbac"
)

type RoleStore interface {
	Create(ctx context.Context, role *models.Role) error
	Update(ctx context.Context, role *models.Role) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error)
	List(ctx context.Context, spec *query.ListSpec) ([]models.Role, int, error)
	FindAssignment(ctx context.Context, userID uuid.UUID, businessID *uuid.UUID) (*models.RoleAssignment, error)
	CreateAssignment(ctx context.Context, a *models.RoleAssignment) error
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
	ListAssignmentsByUser(ctx context.Context, userID uuid.UUID) ([]models.RoleAssignment, error)
}

type UserLookup interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

var roleList = query.Definition{
	Table:       "roles",
	DefaultSort: query.SortKey{Column: "name", Direction: query.DirectionDesc},
}

// RoleService manages roles and their user assignments. Role
// administration is always a system-wide permission.
type RoleService struct {
	roles      RoleStore
	users      UserLookup
	businesses BusinessLookup
	perms      PermissionChecker
	log        *zap.Logger
}

func NewRoleService(roles RoleStore, users UserLookup, businesses BusinessLookup, perms PermissionChecker, log *zap.Logger) *RoleService {
	return &RoleService{roles: roles, users: users, businesses: businesses, perms: perms, log: log}
}

func (s *RoleService) List(ctx context.Context, actorID *uuid.UUID, params []query.Param) (*ListResult, error) {
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryRole, rbac.VerbRead, nil) {
		return nil, ErrUnauthorized
	}

	spec, errs := roleList.Build(params)
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	items, total, err := s.roles.List(ctx, spec)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, Limit: spec.Limit, Page: spec.Page}, nil
}

func (s *RoleService) Create(ctx context.Context, actorID *uuid.UUID, role *models.Role) error {
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryRole, rbac.VerbCreate, nil) {
		return ErrUnauthorized
	}

	errs := query.FieldErrors{}
	if role.Name == "" {
		errs.Add("name", "[validation.required]")
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	if role.Permissions == nil {
		role.Permissions = models.PermissionMap{}
	}
	if role.Status == "" {
		role.Status = models.RoleStatusActive
	}
	return s.roles.Create(ctx, role)
}

func (s *RoleService) Update(ctx context.Context, actorID *uuid.UUID, role *models.Role) (*models.Role, error) {
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryRole, rbac.VerbUpdate, nil) {
		return nil, ErrUnauthorized
	}

	existing, err := s.roles.GetByID(ctx, role.ID)
	if err != nil {
		return nil, ErrNotFound
	}

	if role.Name == "" {
		role.Name = existing.Name
	}
	if role.Permissions == nil {
		role.Permissions = existing.Permissions
	}
	if role.Status == "" {
		role.Status = existing.Status
	}
	if err := s.roles.Update(ctx, role); err != nil {
		return nil, err
	}
	return existing, nil
}

// Associate grants userID the role within businessID (system-wide when
// nil). At most one assignment may exist per (user, business); the data
// layer carries no such constraint, so it is enforced here.
func (s *RoleService) Associate(ctx context.Context, actorID *uuid.UUID, userID, roleID uuid.UUID, businessID *uuid.UUID) (*models.RoleAssignment, error) {
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryRole, rbac.VerbCreate, nil) {
		return nil, ErrUnauthorized
	}

	errs := query.FieldErrors{}
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		errs.Add("user", query.CodeExists)
	}
	if _, err := s.roles.GetByID(ctx, roleID); err != nil {
		errs.Add("role", query.CodeExists)
	}
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

	existing, err := s.roles.FindAssignment(ctx, userID, businessID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	a := &models.RoleAssignment{UserID: userID, RoleID: roleID, BusinessID: businessID}
	if err := s.roles.CreateAssignment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// AssignmentsFor lists every role assignment a user holds, across all
// scopes.
func (s *RoleService) AssignmentsFor(ctx context.Context, actorID *uuid.UUID, userID uuid.UUID) ([]models.RoleAssignment, error) {
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryRole, rbac.VerbRead, nil) {
		return nil, ErrUnauthorized
	}
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.roles.ListAssignmentsByUser(ctx, userID)
}

func (s *RoleService) Disassociate(ctx context.Context, actorID *uuid.UUID, assignmentID uuid.UUID) error {
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryRole, rbac.VerbDelete, nil) {
		return ErrUnauthorized
	}
	if err := s.roles.DeleteAssignment(ctx, assignmentID); err != nil {
		return ErrNotFound
	}
	return nil
}
