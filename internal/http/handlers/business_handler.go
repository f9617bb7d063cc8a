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

type BusinessHandler struct {
	businessService *services.BusinessService
	auditStore      audit.Store
	log             *zap.Logger
}

func NewBusinessHandler(businessService *services.BusinessService, auditStore audit.Store, log *zap.Logger) *BusinessHandler {
	return &BusinessHandler{businessService: businessService, auditStore: auditStore, log: log}
}

func (h *BusinessHandler) ListBusinesses(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	rec.SetBody(c.OriginalURL())

	result, err := h.businessService.List(c.UserContext(), middleware.ActorID(c), orderedParams(c))
	if err != nil {
		return respondError(c, rec, h.log, err)
	}
	return respondList(c, rec, "businesses listed", result)
}

func (h *BusinessHandler) GetBusiness(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, rec, h.log, services.ErrNotFound)
	}

	b, err := h.businessService.Get(c.UserContext(), middleware.ActorID(c), id)
	if err != nil {
		return respondError(c, rec, h.log, err)
	}

	resp := dto.ItemResponse{Message: "business fetched", Data: b}
	rec.SetDescription(resp.Message)
	rec.SetAfter(resp)
	return c.JSON(resp)
}

func (h *BusinessHandler) CreateBusiness(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	var req dto.CreateBusinessRequest
	if err := c.BodyParser(&req); err != nil {
		rec.SetDescription("invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request"})
	}
	rec.SetBody(req)

	b := &models.Business{Name: req.Name, Address: req.Address, Phone: req.Phone}
	if err := h.businessService.Create(c.UserContext(), middleware.ActorID(c), b); err != nil {
		return respondError(c, rec, h.log, err)
	}

	resp := dto.ItemResponse{Message: "business created", Data: b}
	rec.SetDescription(resp.Message)
	rec.SetAfter(resp)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *BusinessHandler) UpdateBusiness(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		rec.SetDescription("invalid business id")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid business id"})
	}

	var req dto.UpdateBusinessRequest
	if err := c.BodyParser(&req); err != nil {
		rec.SetDescription("invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request"})
	}
	rec.SetBody(req)

	b := &models.Business{ID: id, Name: req.Name, Address: req.Address, Phone: req.Phone, Status: req.Status}
	previous, err := h.businessService.Update(c.UserContext(), middleware.ActorID(c), b)
	if err != nil {
		return respondError(c, rec, h.log, err)
	}
	rec.SetBefore(previous)

	resp := dto.ItemResponse{Message: "business updated", Data: b}
	rec.SetDescription(resp.Message)
	rec.SetAfter(resp)
	return c.JSON(resp)
}
