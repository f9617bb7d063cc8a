package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/audit"
	"github.com/propmaint/backend/internal/http/dto"
	"github.com/propmaint/backend/internal/middleware"
	"github.com/propmaint/backend/internal/query"
	"github.com/propmaint/backend/internal/services"
)

// beginAudit opens the request's audit recorder. Handlers defer its
// Finalize so every exit path, including failures, writes exactly one
// audit row.
func beginAudit(c *fiber.Ctx, store audit.Store, log *zap.Logger) *audit.Recorder {
	return audit.Begin(store, log,
		middleware.ActorID(c),
		c.IP(),
		c.Get("User-Agent"),
		c.Method(),
		c.OriginalURL(),
	)
}

// orderedParams collects the raw query string in arrival order; sort key
// order determines ORDER BY precedence, so a map will not do.
func orderedParams(c *fiber.Ctx) []query.Param {
	var params []query.Param
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		params = append(params, query.Param{Key: string(k), Value: string(v)})
	})
	return params
}

// respondError maps a service failure to its status code and records the
// outcome on the audit entry. Internal error detail never reaches the
// response or the audited after-snapshot.
func respondError(c *fiber.Ctx, rec *audit.Recorder, log *zap.Logger, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		rec.SetDescription("authorization failed")
		resp := dto.ErrorResponse{Message: "unauthorized"}
		rec.SetAfter(resp)
		return c.Status(fiber.StatusUnauthorized).JSON(resp)
	case errors.As(err, &verr):
		rec.SetDescription("validation failed: " + verr.Error())
		resp := dto.ValidationErrorResponse{Message: verr.Fields}
		rec.SetAfter(resp)
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	case errors.Is(err, services.ErrNotFound):
		rec.SetDescription("not found")
		resp := dto.ErrorResponse{Message: "not found"}
		rec.SetAfter(resp)
		return c.Status(fiber.StatusNotFound).JSON(resp)
	case errors.Is(err, services.ErrConflict):
		rec.SetDescription("conflict")
		resp := dto.ErrorResponse{Message: err.Error()}
		rec.SetAfter(resp)
		return c.Status(fiber.StatusConflict).JSON(resp)
	default:
		log.Error("request failed", zap.Error(err), zap.String("path", c.Path()))
		rec.SetDescription("internal error")
		resp := dto.ErrorResponse{Message: "internal error"}
		rec.SetAfter(resp)
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
}

func respondList(c *fiber.Ctx, rec *audit.Recorder, message string, result *services.ListResult) error {
	resp := dto.ListResponse{
		Message: message,
		Data: dto.ListData{
			Items:      result.Items,
			Pagination: dto.NewPagination(result.Total, result.Page, result.Limit),
		},
	}
	rec.SetDescription(message)
	rec.SetAfter(resp)
	return c.JSON(resp)
}
