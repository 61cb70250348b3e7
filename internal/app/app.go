package app

import (
	"context"
	"fmt"
	"time"

	"gymtrack_backend/database"
	"gymtrack_backend/internal/auth"
	"gymtrack_backend/internal/config"
	"gymtrack_backend/internal/email"
	"gymtrack_backend/internal/handlers"
	"gymtrack_backend/internal/logger"
	"gymtrack_backend/internal/middleware"
	"gymtrack_backend/internal/models"
	"gymtrack_backend/internal/mpesa"
	"gymtrack_backend/internal/routes"
	"gymtrack_backend/internal/services"
	"gymtrack_backend/internal/validator"
	"gymtrack_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter, serviceContainer := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := workers.NewSubscriptionWorker(serviceContainer.SubscriptionService, time.Hour)
	go worker.Run(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full application graph and returns the configured
// gin engine alongside the service container, so callers (and tests) can
// reach services directly.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer) {
	mailer, err := email.NewSender(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize email sender", "error", err)
	}

	gateway := mpesa.NewClient(cfg.Mpesa)

	serviceContainer := services.NewServiceContainer(gormDB, cfg, gateway, mailer)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, serviceContainer
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

// seedFirstAdmin creates the bootstrap admin account when configured and
// missing. Without it a fresh deployment has no one able to create staff.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.FirstAdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("First admin user seeded", "email", cfg.FirstAdminEmail)
	return nil
}
