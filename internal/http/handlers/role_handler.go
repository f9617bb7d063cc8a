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

type RoleHandler struct {
	roleService *services.RoleService
	auditStore  audit.Store
	log         *zap.Logger
}

func NewRoleHandler(roleService *services.RoleService, auditStore audit.Store, log *zap.Logger) *RoleHandler {
	return &RoleHandler{roleService: roleService, auditStore: auditStore, log: log}
}

func (h *RoleHandler) ListRoles(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	rec.SetBody(c.OriginalURL())

	result, err := h.roleService.List(c.UserContext(), middleware.ActorID(c), orderedParams(c))
	if err != nil {
		return respondError(c, rec, h.log, err)
	}
	return respondList(c, rec, "roles listed", result)
}

func (h *RoleHandler) CreateRole(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	var req dto.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		rec.SetDescription("invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request"})
	}
	rec.SetBody(req)

	role := &models.Role{Name: req.Name, Permissions: req.Permissions}
	if err := h.roleService.Create(c.UserContext(), middleware.ActorID(c), role); err != nil {
		return respondError(c, rec, h.log, err)
	}

	resp := dto.ItemResponse{Message: "role created", Data: role}
	rec.SetDescription(resp.Message)
	rec.SetAfter(resp)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *RoleHandler) UpdateRole(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		rec.SetDescription("invalid role id")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid role id"})
	}

	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		rec.SetDescription("invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request"})
	}
	rec.SetBody(req)

	role := &models.Role{ID: id, Name: req.Name, Permissions: req.Permissions, Status: req.Status}
	previous, err := h.roleService.Update(c.UserContext(), middleware.ActorID(c), role)
	if err != nil {
		return respondError(c, rec, h.log, err)
	}
	rec.SetBefore(previous)

	resp := dto.ItemResponse{Message: "role updated", Data: role}
	rec.SetDescription(resp.Message)
	rec.SetAfter(resp)
	return c.JSON(resp)
}

// AssociateRole binds a role to the user in the URL, optionally scoped to
// one business.
func (h *RoleHandler) AssociateRole(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		rec.SetDescription("invalid user id")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid user id"})
	}

	var req dto.AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		rec.SetDescription("invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request"})
	}
	rec.SetBody(req)

	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		rec.SetDescription("invalid role id")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid role id"})
	}
	var businessID *uuid.UUID
	if req.BusinessID != nil {
		parsed, err := uuid.Parse(*req.BusinessID)
		if err != nil {
			rec.SetDescription("invalid business id")
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid business id"})
		}
		businessID = &parsed
	}

	assignment, err := h.roleService.Associate(c.UserContext(), middleware.ActorID(c), userID, roleID, businessID)
	if err != nil {
		return respondError(c, rec, h.log, err)
	}

	resp := dto.ItemResponse{Message: "role assigned", Data: assignment}
	rec.SetDescription(resp.Message)
	rec.SetAfter(resp)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *RoleHandler) ListUserRoles(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, rec, h.log, services.ErrNotFound)
	}

	assignments, err := h.roleService.AssignmentsFor(c.UserContext(), middleware.ActorID(c), userID)
	if err != nil {
		return respondError(c, rec, h.log, err)
	}

	resp := dto.ItemResponse{Message: "role assignments listed", Data: assignments}
	rec.SetDescription(resp.Message)
	rec.SetAfter(resp)
	return c.JSON(resp)
}

func (h *RoleHandler) DisassociateRole(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	assignmentID, err := uuid.Parse(c.Params("assignmentId"))
	if err != nil {
		rec.SetDescription("invalid assignment id")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid assignment id"})
	}

	if err := h.roleService.Disassociate(c.UserContext(), middleware.ActorID(c), assignmentID); err != nil {
		return respondError(c, rec, h.log, err)
	}

	rec.SetDescription("role assignment removed")
	return c.JSON(dto.ItemResponse{Message: "role assignment removed"})
}
