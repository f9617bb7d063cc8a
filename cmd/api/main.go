package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/config"
	"github.com/propmaint/backend/internal/db"
	"github.com/propmaint/backend/internal/events"
	apphttp "github.com/propmaint/backend/internal/http"
	"github.com/propmaint/backend/internal/http/handlers"
	"github.com/propmaint/backend/internal/rbac"
	"github.com/propmaint/backend/internal/repositories"
	"github.com/propmaint/backend/internal/services"
	"github.com/propmaint/backend/internal/storage"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Attachment storage
	blobs, err := storage.NewS3Store(ctx, storage.S3Config{
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		BaseURL:   cfg.S3BaseURL,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize blob storage", zap.Error(err))
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	businessRepo := repositories.NewBusinessRepo(pool)
	buildingRepo := repositories.NewBuildingRepo(pool)
	maintenanceRepo := repositories.NewMaintenanceRepo(pool)
	questionRepo := repositories.NewQuestionRepo(pool)
	roleRepo := repositories.NewRoleRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Permission resolution
	resolver := rbac.NewResolver(roleRepo, log)

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration, log)
	businessService := services.NewBusinessService(businessRepo, resolver, log)
	buildingService := services.NewBuildingService(buildingRepo, businessRepo, resolver, log)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, buildingRepo, businessRepo, publisher, resolver, log)
	questionService := services.NewQuestionService(questionRepo, maintenanceRepo, buildingRepo, businessRepo, blobs, publisher, resolver, log)
	logService := services.NewLogService(auditRepo, resolver, log)
	roleService := services.NewRoleService(roleRepo, userRepo, businessRepo, resolver, log)
	userService := services.NewUserService(userRepo, resolver, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, auditRepo, log)
	businessHandler := handlers.NewBusinessHandler(businessService, auditRepo, log)
	buildingHandler := handlers.NewBuildingHandler(buildingService, auditRepo, log)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService, auditRepo, log)
	questionHandler := handlers.NewQuestionHandler(questionService, auditRepo, log)
	logHandler := handlers.NewLogHandler(logService, auditRepo, log)
	roleHandler := handlers.NewRoleHandler(roleService, auditRepo, log)
	userHandler := handlers.NewUserHandler(userService, auditRepo, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb,
		authHandler, businessHandler, buildingHandler, maintenanceHandler,
		questionHandler, logHandler, roleHandler, userHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
