package services

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/events"
	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
	"github.com/propmaint/backend/internal/rbac"
	"github.com/propmaint/backend/internal/repositories"
	"github.com/propmaint/backend/internal/storage"
)

type QuestionStore interface {
	Create(ctx context.Context, q *models.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error)
	List(ctx context.Context, spec *query.ListSpec, f repositories.QuestionFilter) ([]models.Question, int, error)
}

type MaintenanceLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Maintenance, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

var questionList = query.Definition{
	Table:       "questions",
	Reserved:    []string{"business", "maintenance"},
	DefaultSort: query.SortKey{Column: "created_at", Direction: query.DirectionDesc},
}

// Attachment is an uploaded file accompanying a question.
type Attachment struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type QuestionService struct {
	questions    QuestionStore
	maintenances MaintenanceLookup
	buildings    BuildingLookup
	businesses   BusinessLookup
	blobs        storage.BlobStore
	publisher    events.Publisher
	perms        PermissionChecker
	log          *zap.Logger
}

func NewQuestionService(
	questions QuestionStore,
	maintenances MaintenanceLookup,
	buildings BuildingLookup,
	businesses BusinessLookup,
	blobs storage.BlobStore,
	publisher events.Publisher,
	perms PermissionChecker,
	log *zap.Logger,
) *QuestionService {
	return &QuestionService{
		questions:    questions,
		maintenances: maintenances,
		buildings:    buildings,
		businesses:   businesses,
		blobs:        blobs,
		publisher:    publisher,
		perms:        perms,
		log:          log,
	}
}

func (s *QuestionService) List(ctx context.Context, actorID *uuid.UUID, params []query.Param) (*ListResult, error) {
	errs := query.FieldErrors{}
	businessID := scopeParam(params, "business", errs)
	maintenanceID := scopeParam(params, "maintenance", errs)

	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryQuestion, rbac.VerbRead, businessID) {
		return nil, ErrUnauthorized
	}

	spec, specErrs := questionList.Build(params)
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
	if maintenanceID != nil {
		ok, err := s.maintenances.Exists(ctx, *maintenanceID)
		if err != nil {
			return nil, err
		}
		if !ok {
			errs.Add("maintenance", query.CodeExists)
		}
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	items, total, err := s.questions.List(ctx, spec, repositories.QuestionFilter{
		BusinessID:    businessID,
		MaintenanceID: maintenanceID,
	})
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, Limit: spec.Limit, Page: spec.Page}, nil
}

func (s *QuestionService) Get(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) (*models.Question, error) {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	businessID, err := s.businessOf(ctx, q.MaintenanceID)
	if err != nil {
		return nil, err
	}
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryQuestion, rbac.VerbRead, businessID) {
		return nil, ErrUnauthorized
	}
	return q, nil
}

// Create posts a thread entry, uploading the attachment first when one is
// given, and fans the event out to connected watchers.
func (s *QuestionService) Create(ctx context.Context, actorID *uuid.UUID, q *models.Question, att *Attachment) error {
	errs := query.FieldErrors{}
	maintenance, err := s.maintenances.GetByID(ctx, q.MaintenanceID)
	if err != nil {
		errs.Add("maintenance", query.CodeExists)
	}

	var businessID *uuid.UUID
	if maintenance != nil {
		businessID, err = s.businessOf(ctx, maintenance.ID)
		if err != nil {
			businessID = nil
		}
	}
	if !s.perms.CheckPermission(ctx, actorID, rbac.CategoryQuestion, rbac.VerbCreate, businessID) {
		return ErrUnauthorized
	}

	if q.Body == "" {
		errs.Add("body", "[validation.required]")
	}
	if q.ParentID != nil {
		parent, err := s.questions.GetByID(ctx, *q.ParentID)
		if err != nil || parent.MaintenanceID != q.MaintenanceID {
			errs.Add("parent", query.CodeExists)
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	if att != nil {
		key := fmt.Sprintf("questions/%s/%s%s", q.MaintenanceID, uuid.New(), path.Ext(att.Filename))
		url, err := s.blobs.Put(ctx, key, att.Body, att.ContentType)
		if err != nil {
			return fmt.Errorf("store attachment: %w", err)
		}
		q.AttachmentURL = &url
	}

	if actorID != nil {
		q.CreatedBy = *actorID
	}
	if err := s.questions.Create(ctx, q); err != nil {
		return err
	}

	eventType := events.EventQuestionPosted
	if q.ParentID != nil {
		eventType = events.EventAnswerPosted
	}
	if err := s.publisher.Publish(ctx, events.StreamQuestions, events.Event{
		Type: eventType,
		Payload: map[string]any{
			"question_id":    q.ID.String(),
			"maintenance_id": q.MaintenanceID.String(),
		},
	}); err != nil {
		s.log.Warn("question event publish failed", zap.Error(err))
	}
	return nil
}

func (s *QuestionService) businessOf(ctx context.Context, maintenanceID uuid.UUID) (*uuid.UUID, error) {
	maintenance, err := s.maintenances.GetByID(ctx, maintenanceID)
	if err != nil {
		return nil, err
	}
	building, err := s.buildings.GetByID(ctx, maintenance.BuildingID)
	if err != nil {
		return nil, err
	}
	return &building.BusinessID, nil
}
