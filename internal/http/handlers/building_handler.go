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

type BuildingHandler struct {
	buildingService *services.BuildingService
	auditStore      audit.Store
	log             *zap.Logger
}

func NewBuildingHandler(buildingService *services.BuildingService, auditStore audit.Store, log *zap.Logger) *BuildingHandler {
	return &BuildingHandler{buildingService: buildingService, auditStore: auditStore, log: log}
}

func (h *BuildingHandler) ListBuildings(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	params := orderedParams(c)
	rec.SetBody(c.OriginalURL())

	result, err := h.buildingService.List(c.UserContext(), middleware.ActorID(c), params)
	if err != nil {
		return respondError(c, rec, h.log, err)
	}
	return respondList(c, rec, "buildings listed", result)
}

func (h *BuildingHandler) GetBuilding(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, rec, h.log, services.ErrNotFound)
	}

	b, err := h.buildingService.Get(c.UserContext(), middleware.ActorID(c), id)
	if err != nil {
		return respondError(c, rec, h.log, err)
	}

	resp := dto.ItemResponse{Message: "building fetched", Data: b}
	rec.SetDescription(resp.Message)
	rec.SetAfter(resp)
	return c.JSON(resp)
}

func (h *BuildingHandler) CreateBuilding(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	var req dto.CreateBuildingRequest
	if err := c.BodyParser(&req); err != nil {
		rec.SetDescription("invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request"})
	}
	rec.SetBody(req)

	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		rec.SetDescription("invalid business id")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid business id"})
	}

	b := &models.Building{
		BusinessID: businessID,
		Name:       req.Name,
		Address:    req.Address,
		Floors:     req.Floors,
	}
	if err := h.buildingService.Create(c.UserContext(), middleware.ActorID(c), b); err != nil {
		return respondError(c, rec, h.log, err)
	}

	resp := dto.ItemResponse{Message: "building created", Data: b}
	rec.SetDescription(resp.Message)
	rec.SetAfter(resp)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *BuildingHandler) UpdateBuilding(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		rec.SetDescription("invalid building id")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid building id"})
	}

	var req dto.UpdateBuildingRequest
	if err := c.BodyParser(&req); err != nil {
		rec.SetDescription("invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request"})
	}
	rec.SetBody(req)

	b := &models.Building{
		ID:      id,
		Name:    req.Name,
		Address: req.Address,
		Floors:  req.Floors,
		Status:  req.Status,
	}
	previous, err := h.buildingService.Update(c.UserContext(), middleware.ActorID(c), b)
	if err != nil {
		return respondError(c, rec, h.log, err)
	}
	rec.SetBefore(previous)

	resp := dto.ItemResponse{Message: "building updated", Data: b}
	rec.SetDescription(resp.Message)
	rec.SetAfter(resp)
	return c.JSON(resp)
}
