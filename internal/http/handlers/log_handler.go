package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/audit"
	"github.com/propmaint/backend/internal/middleware"
	"github.com/propmaint/backend/internal/services"
)

type LogHandler struct {
	logService *services.LogService
	auditStore audit.Store
	log        *zap.Logger
}

func NewLogHandler(logService *services.LogService, auditStore audit.Store, log *zap.Logger) *LogHandler {
	return &LogHandler{logService: logService, auditStore: auditStore, log: log}
}

func (h *LogHandler) ListLogs(c *fiber.Ctx) error {
	rec := beginAudit(c, h.auditStore, h.log)
	defer rec.Finalize(c.UserContext())

	rec.SetBody(c.OriginalURL())

	result, err := h.logService.List(c.UserContext(), middleware.ActorID(c), orderedParams(c))
	if err != nil {
		return respondError(c, rec, h.log, err)
	}
	return respondList(c, rec, "logs listed", result)
}
