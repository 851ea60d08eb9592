package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/example/purnachandra/internal/config"
	"github.com/example/purnachandra/internal/database"
	"github.com/example/purnachandra/internal/logging"
	"github.com/example/purnachandra/internal/middleware"
	"github.com/example/purnachandra/internal/routes"
	"github.com/example/purnachandra/internal/services"
	"github.com/example/purnachandra/internal/settings"
)

func main() {
	cfg := config.Load()

	zlog, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg.DatabaseURL, cfg.LogLevel)
	if err != nil {
		zlog.Fatal("database init failed", zap.Error(err))
	}

	if created, err := database.EnsureAdminAccount(db, cfg.AdminEmail, cfg.AdminPassword, []string{cfg.AdminRole}); err != nil {
		zlog.Error("seed admin account failed", zap.Error(err))
	} else if created {
		zlog.Info("seed admin account created", zap.String("email", cfg.AdminEmail))
	}

	store := settings.NewStore(db, zlog.Named("settings"))
	store.Load(context.Background())

	media := services.NewMediaService(services.MediaConfig{
		BaseURL:   cfg.MediaBaseURL,
		CloudName: cfg.MediaCloudName,
		APIKey:    cfg.MediaAPIKey,
		APISecret: cfg.MediaAPISecret,
		Folder:    cfg.MediaFolder,
	})
	if !media.Configured() {
		zlog.Warn("media storage not configured, upload endpoints will return 503")
	}
	telegram := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat, zlog.Named("telegram"))

	app := fiber.New(fiber.Config{
		AppName:      "Purna Chandra Diagnostic API",
		ErrorHandler: middleware.ErrorHandler(zlog),
		BodyLimit:    10 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	routes.Register(app, routes.Dependencies{
		DB:       db,
		Config:   cfg,
		Log:      zlog,
		Settings: store,
		Media:    media,
		Telegram: telegram,
	})

	zlog.Info("starting server", zap.String("port", cfg.AppPort))
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		zlog.Fatal("fiber.Listen error", zap.Error(err))
	}
}
