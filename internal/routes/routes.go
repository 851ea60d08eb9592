package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/purnachandra/internal/config"
	"github.com/example/purnachandra/internal/handlers"
	"github.com/example/purnachandra/internal/middleware"
	"github.com/example/purnachandra/internal/services"
	"github.com/example/purnachandra/internal/settings"
)

// Dependencies are the long-lived collaborators shared by the handlers.
type Dependencies struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Settings *settings.Store
	Media    *services.MediaService
	Telegram *services.TelegramService
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, deps Dependencies) {
	db, cfg, log := deps.DB, deps.Config, deps.Log

	authHandler := handlers.NewAuthHandler(db, cfg, log)
	settingsHandler := handlers.NewSettingsHandler(deps.Settings)
	serviceHandler := handlers.NewServiceHandler(db, deps.Media, log)
	staffHandler := handlers.NewStaffHandler(db, deps.Media, log)
	galleryHandler := handlers.NewGalleryHandler(db, deps.Media, log)
	appointmentHandler := handlers.NewAppointmentHandler(db, deps.Telegram, log)
	contactHandler := handlers.NewContactHandler(db, deps.Telegram, log)
	dashboardHandler := handlers.NewDashboardHandler(db, cfg.ActivityWindow, cfg.ActivityFeedLimit)
	mediaHandler := handlers.NewMediaHandler(deps.Media)

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "status": "ok"})
	})

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Public routes
	api.Get("/settings", settingsHandler.GetSettings)
	api.Get("/settings/view", settingsHandler.GetPublicView)
	api.Get("/service", serviceHandler.ListPublicServices)
	api.Get("/doctors", staffHandler.ListDoctors)
	api.Get("/staffs", staffHandler.ListStaffs)
	api.Get("/gallery", galleryHandler.ListPublicImages)
	api.Post("/appointments", appointmentHandler.RequestAppointment)
	api.Post("/contact", contactHandler.SubmitContact)

	// Admin routes
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.RequireRole(cfg.AdminRole))

	admin.Get("/dashboard/stats", dashboardHandler.Stats)
	admin.Get("/dashboard/activity", dashboardHandler.RecentActivity)

	admin.Get("/settings", settingsHandler.GetAdminSettings)
	admin.Put("/settings", settingsHandler.UpdateSettings)
	admin.Post("/settings/reload", settingsHandler.ReloadSettings)

	svc := admin.Group("/services")
	svc.Get("/", serviceHandler.ListServices)
	svc.Post("/", serviceHandler.CreateService)
	svc.Get("/:id", serviceHandler.GetService)
	svc.Put("/:id", serviceHandler.UpdateService)
	svc.Delete("/:id", serviceHandler.DeleteService)

	staff := admin.Group("/staffs")
	staff.Get("/", staffHandler.ListStaffMembers)
	staff.Post("/", staffHandler.CreateStaffMember)
	staff.Get("/:id", staffHandler.GetStaffMember)
	staff.Put("/:id", staffHandler.UpdateStaffMember)
	staff.Delete("/:id", staffHandler.DeleteStaffMember)

	gallery := admin.Group("/gallery")
	gallery.Get("/", galleryHandler.ListImages)
	gallery.Post("/", galleryHandler.CreateImage)
	gallery.Get("/:id", galleryHandler.GetImage)
	gallery.Put("/:id", galleryHandler.UpdateImage)
	gallery.Delete("/:id", galleryHandler.DeleteImage)

	appointments := admin.Group("/appointments")
	appointments.Get("/", appointmentHandler.ListAppointments)
	appointments.Post("/", appointmentHandler.CreateAppointment)
	appointments.Get("/:id", appointmentHandler.GetAppointment)
	appointments.Put("/:id", appointmentHandler.UpdateAppointment)
	appointments.Delete("/:id", appointmentHandler.DeleteAppointment)

	messages := admin.Group("/messages")
	messages.Get("/", contactHandler.ListMessages)
	messages.Put("/:id", contactHandler.MarkMessage)
	messages.Delete("/:id", contactHandler.DeleteMessage)

	media := admin.Group("/media")
	media.Get("/", mediaHandler.List)
	media.Post("/upload", mediaHandler.Upload)
	media.Post("/rename", mediaHandler.Rename)
	media.Put("/metadata", mediaHandler.SetMetadata)
	media.Delete("/*", mediaHandler.Delete)
}
