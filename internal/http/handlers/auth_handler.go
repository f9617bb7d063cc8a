package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/audit"
	"github.com/propmaint/backend/internal/http/dto"
	"github.com/propmaint/backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	auditStore  audit.Store
	log         *zap.Logger
}

func NewAuthHandler(authService *services.AuthService, auditStore audit.Store, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, auditStore: auditStore, log: log}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		rec.SetDescription("invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request"})
	}
	rec.SetBody(req)

	user, token, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, rec, h.log, err)
	}
	rec.SetActor(user.ID)

	resp := dto.AuthResponse{Token: token, User: user}
	rec.SetDescription("login succeeded")
	rec.SetAfter(fiber.Map{"user_id": user.ID})
	return c.JSON(resp)
}
