package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/config"
	"github.com/propmaint/backend/internal/http/handlers"
	"github.com/propmaint/backend/internal/middleware"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	businessHandler *handlers.BusinessHandler,
	buildingHandler *handlers.BuildingHandler,
	maintenanceHandler *handlers.MaintenanceHandler,
	questionHandler *handlers.QuestionHandler,
	logHandler *handlers.LogHandler,
	roleHandler *handlers.RoleHandler,
	userHandler *handlers.UserHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/login", authHandler.Login)

	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Businesses
	protected.Get("/businesses", businessHandler.ListBusinesses)
	protected.Post("/businesses", businessHandler.CreateBusiness)
	protected.Get("/businesses/:id", businessHandler.GetBusiness)
	protected.Put("/businesses/:id", businessHandler.UpdateBusiness)

	// Buildings
	protected.Get("/buildings", buildingHandler.ListBuildings)
	protected.Post("/buildings", buildingHandler.CreateBuilding)
	protected.Get("/buildings/:id", buildingHandler.GetBuilding)
	protected.Put("/buildings/:id", buildingHandler.UpdateBuilding)

	// Maintenances
	protected.Get("/maintenances", maintenanceHandler.ListMaintenances)
	protected.Post("/maintenances", maintenanceHandler.CreateMaintenance)
	protected.Get("/maintenances/:id", maintenanceHandler.GetMaintenance)
	protected.Put("/maintenances/:id", maintenanceHandler.UpdateMaintenance)

	// Questions and answers
	protected.Get("/questions", questionHandler.ListQuestions)
	protected.Post("/questions", questionHandler.CreateQuestion)
	protected.Get("/questions/:id", questionHandler.GetQuestion)

	// Audit logs
	protected.Get("/logs", logHandler.ListLogs)

	// Roles
	protected.Get("/roles", roleHandler.ListRoles)
	protected.Post("/roles", roleHandler.CreateRole)
	protected.Put("/roles/:id", roleHandler.UpdateRole)

	// Users
	protected.Get("/users", userHandler.ListUsers)
	protected.Post("/users", userHandler.CreateUser)
	protected.Get("/users/:id/roles", roleHandler.ListUserRoles)
	protected.Post("/users/:id/roles", roleHandler.AssociateRole)
	protected.Delete("/users/:id/roles/:assignmentId", roleHandler.DisassociateRole)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
