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

type MaintenanceHandler struct {
	maintenanceService *services.MaintenanceService
	auditStore         audit.Store
	log                *zap.Logger
}

func NewMaintenanceHandler(maintenanceService *services.MaintenanceService, auditStore audit.Store, log *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService, auditStore: auditStore, log: log}
}

func (h *MaintenanceHandler) ListMaintenances(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	rec.SetBody(c.OriginalURL())

	result, err := h.maintenanceService.List(c.UserContext(), middleware.ActorID(c), orderedParams(c))
	if err != nil {
		return respondError(c, rec, h.log, err)
	}
	return respondList(c, rec, "maintenances listed", result)
}

func (h *MaintenanceHandler) GetMaintenance(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, rec, h.log, services.ErrNotFound)
	}

	m, err := h.maintenanceService.Get(c.UserContext(), middleware.ActorID(c), id)
	if err != nil {
		return respondError(c, rec, h.log, err)
	}

	resp := dto.ItemResponse{Message: "maintenance fetched", Data: m}
	rec.SetDescription(resp.Message)
	rec.SetAfter(resp)
	return c.JSON(resp)
}

func (h *MaintenanceHandler) CreateMaintenance(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	var req dto.CreateMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		rec.SetDescription("invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request"})
	}
	rec.SetBody(req)

	buildingID, err := uuid.Parse(req.BuildingID)
	if err != nil {
		rec.SetDescription("invalid building id")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid building id"})
	}

	m := &models.Maintenance{
		BuildingID:  buildingID,
		Title:       req.Title,
		Detail:      req.Detail,
		Status:      req.Status,
		ScheduledAt: req.ScheduledAt,
	}
	if err := h.maintenanceService.Create(c.UserContext(), middleware.ActorID(c), m); err != nil {
		return respondError(c, rec, h.log, err)
	}

	resp := dto.ItemResponse{Message: "maintenance created", Data: m}
	rec.SetDescription(resp.Message)
	rec.SetAfter(resp)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *MaintenanceHandler) UpdateMaintenance(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		rec.SetDescription("invalid maintenance id")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid maintenance id"})
	}

	var req dto.UpdateMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		rec.SetDescription("invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request"})
	}
	rec.SetBody(req)

	m := &models.Maintenance{
		ID:          id,
		Title:       req.Title,
		Detail:      req.Detail,
		Status:      req.Status,
		ScheduledAt: req.ScheduledAt,
	}
	previous, err := h.maintenanceService.Update(c.UserContext(), middleware.ActorID(c), m)
	if err != nil {
		return respondError(c, rec, h.log, err)
	}
	rec.SetBefore(previous)

	resp := dto.ItemResponse{Message: "maintenance updated", Data: m}
	rec.SetDescription(resp.Message)
	rec.SetAfter(resp)
	return c.JSON(resp)
}
