package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/audit"
	"github.com/propmaint/backend/internal/http/dto"
	"github.com/propmaint/backend/internal/middleware"
	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/services"
)

type QuestionHandler struct {
	questionService *services.QuestionService
	auditStore      audit.Store
	log             *zap.Logger
}

func NewQuestionHandler(questionService *services.QuestionService, auditStore audit.Store, log *zap.Logger) *QuestionHandler {
	return &QuestionHandler{questionService: questionService, auditStore: auditStore, log: log}
}

func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	rec.SetBody(c.OriginalURL())

	result, err := h.questionService.List(c.UserContext(), middleware.ActorID(c), orderedParams(c))
	if err != nil {
		return respondError(c, rec, h.log, err)
	}
	return respondList(c, rec, "questions listed", result)
}

func (h *QuestionHandler) GetQuestion(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, rec, h.log, services.ErrNotFound)
	}

	q, err := h.questionService.Get(c.UserContext(), middleware.ActorID(c), id)
	if err != nil {
		return respondError(c, rec, h.log, err)
	}

	resp := dto.ItemResponse{Message: "question fetched", Data: q}
	rec.SetDescription(resp.Message)
	rec.SetAfter(resp)
	return c.JSON(resp)
}

// CreateQuestion accepts a multipart form: maintenance_id, body, optional
// parent_id, plus an optional "attachment" file.
func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		rec.SetDescription("invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request"})
	}
	rec.SetBody(req)

	maintenanceID, err := uuid.Parse(req.MaintenanceID)
	if err != nil {
		rec.SetDescription("invalid maintenance id")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid maintenance id"})
	}

	q := &models.Question{MaintenanceID: maintenanceID, Body: req.Body}
	if req.ParentID != nil {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			rec.SetDescription("invalid parent id")
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid parent id"})
		}
		q.ParentID = &parentID
	}

	var att *services.Attachment
	if fh, err := c.FormFile("attachment"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			rec.SetDescription("unreadable attachment")
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "unreadable attachment"})
		}
		defer f.Close()
		att = &services.Attachment{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		}
	}

	if err := h.questionService.Create(c.UserContext(), middleware.ActorID(c), q, att); err != nil {
		return respondError(c, rec, h.log, err)
	}

	resp := dto.ItemResponse{Message: "question posted", Data: q}
	rec.SetDescription(resp.Message)
	rec.SetAfter(resp)
	return c.Status(fiber.StatusCreated).JSON(resp)
}
