package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
	"github.com/propmaint/backend/internal/rbac"
)

type AuditLogStore interface {
	List(ctx context.Context, spec *query.ListSpec) ([]models.AuditLogEntry, int, error)
}

var logList = query.Definition{
	Table:       "audit_logs",
	DefaultSort: query.SortKey{Column: "created_at", Direction: query.DirectionDesc},
}

// LogService exposes the audit trail read-only. Log access is a
// system-wide permission: audit rows are not business-scoped.
type LogService struct {
	logs  AuditLogStore
	perms PermissionChecker
	log   *zap.Logger
}

func NewLogService(logs AuditLogStore, perms PermissionChecker, log *zap.Logger) *LogService {
	return &LogService{logs: logs, perms: perms, log: log}
}

func (s *LogService) List(ctx context.Context, actorID *uuid.UUID, params []query.Param) (*ListResult, error) {
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryLog, rbac.VerbRead, nil) {
		return nil, ErrUnauthorized
	}

	spec, errs := logList.Build(params)
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	items, total, err := s.logs.List(ctx, spec)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, Limit: spec.Limit, Page: spec.Page}, nil
}
