package routes

import (
	"github.com/mvonombogho/blood-bank-system/internal/adapters/http/handlers"
	"github.com/mvonombogho/blood-bank-system/internal/adapters/http/middleware"
	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"
	"github.com/mvonombogho/blood-bank-system/internal/config"
	"github.com/mvonombogho/blood-bank-system/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	masterRepo := repositories.NewMasterRepository(db)
	donorRepo := repositories.NewDonorRepository(db)
	deferralRepo := repositories.NewDeferralRepository(db)
	healthRepo := repositories.NewHealthRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	unitRepo := repositories.NewBloodUnitRepository(db)
	recipientRepo := repositories.NewRecipientRepository(db)
	storageRepo := repositories.NewStorageRepository(db)
	scheduleRepo := repositories.NewScheduleRepository(db)

	// Initialize services
	mailer := services.NewMailerService(cfg.Mail)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, mailer, cfg)
	adminService := services.NewAdminService(userRepo, mailer)
	userService := services.NewUserService(userRepo, masterRepo)
	donorService := services.NewDonorService(donorRepo, deferralRepo, healthRepo, scheduleRepo, cfg)
	contactService := services.NewContactService(contactRepo, donorRepo, mailer)
	inventoryService := services.NewInventoryService(unitRepo, donorRepo, cfg)
	recipientService := services.NewRecipientService(recipientRepo, unitRepo, inventoryService)
	storageService := services.NewStorageService(storageRepo)
	dashboardService := services.NewDashboardService(db, cfg)
	notificationService := services.NewNotificationService(unitRepo, donorRepo, cfg)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	adminHandler := handlers.NewAdminHandler(adminService, userService)
	donorHandler := handlers.NewDonorHandler(donorService, contactService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	recipientHandler := handlers.NewRecipientHandler(recipientService)
	storageHandler := handlers.NewStorageHandler(storageService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, notificationService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, cfg)
	setupAdminRoutes(apiV1.Group("/admin"), adminHandler, cfg)
	setupUserRoutes(apiV1.Group("/users"), adminHandler, cfg)
	setupMasterRoutes(apiV1.Group("/master"), adminHandler, inventoryHandler)
	setupDonorRoutes(apiV1.Group("/donors"), donorHandler, cfg)
	setupInventoryRoutes(apiV1.Group("/inventory"), inventoryHandler, cfg)
	setupRecipientRoutes(apiV1, recipientHandler, cfg)
	setupStorageRoutes(apiV1.Group("/storage"), storageHandler, cfg)
	setupDashboardRoutes(apiV1.Group("/dashboard"), dashboardHandler, cfg)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, rate limited against brute force
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/register-admin", middleware.StrictRateLimiter(), handler.RegisterAdmin)
	router.Get("/verify-email", handler.VerifyEmail)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)
	router.Post("/forgot-password", middleware.StrictRateLimiter(), handler.ForgotPassword)
	router.Post("/reset-password", middleware.StrictRateLimiter(), handler.ResetPassword)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupAdminRoutes configures admin approval routes (super admin only)
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))
	router.Use(middleware.SuperAdminOnly())

	router.Get("/admins", handler.ListAdmins)
	router.Post("/admins/:id/approve", handler.ApproveAdmin)
	router.Post("/admins/:id/reject", handler.RejectAdmin)
}

// setupUserRoutes configures profile routes (authenticated users)
func setupUserRoutes(router fiber.Router, handler *handlers.AdminHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	router.Get("/profile", handler.GetProfile)
	router.Put("/profile", handler.UpdateProfile)
	router.Post("/change-password", handler.ChangePassword)
	router.Post("/archive", handler.ArchiveAccount)
}

// setupMasterRoutes configures public master data routes
func setupMasterRoutes(router fiber.Router, adminHandler *handlers.AdminHandler, inventoryHandler *handlers.InventoryHandler) {
	router.Use(middleware.MasterDataCache())

	router.Get("/departments", adminHandler.ListDepartments)
	router.Get("/compatibility", inventoryHandler.GetCompatibility)
}

// setupDonorRoutes configures donor management routes
func setupDonorRoutes(router fiber.Router, handler *handlers.DonorHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	router.Post("/", handler.CreateDonor)
	router.Get("/", handler.ListDonors)

	// Appointment calendar. Registered before the /:id routes so the
	// static segment wins the match.
	router.Get("/schedule", handler.GetSchedule)
	router.Post("/schedule", handler.BookAppointment)
	router.Put("/schedule/:scheduleId/status", handler.UpdateAppointmentStatus)

	router.Get("/:id", handler.GetDonor)
	router.Put("/:id", handler.UpdateDonor)
	router.Delete("/:id", middleware.AdminOrSuperAdmin(), handler.DeleteDonor)

	// Donations and eligibility
	router.Post("/:id/donations", handler.AddDonation)
	router.Get("/:id/donations", handler.ListDonations)
	router.Get("/:id/eligibility", handler.CheckEligibility)
	router.Get("/:id/status", handler.GetDonorStatus)

	// Deferrals
	router.Post("/:id/deferrals", handler.CreateDeferral)
	router.Get("/:id/deferrals", handler.ListDeferrals)
	router.Post("/:id/deferrals/:deferralId/end", handler.EndDeferral)

	// Health screening
	router.Post("/:id/health", handler.AddHealthRecord)
	router.Get("/:id/health", handler.ListHealthRecords)

	// Contact preferences and communications
	router.Get("/:id/contact", handler.GetContact)
	router.Put("/:id/contact/preferences", handler.UpdateContactPreferences)
	router.Post("/:id/contact/communications", handler.SendCommunication)
	router.Post("/:id/contact/quiet-periods", handler.AddQuietPeriod)
	router.Delete("/:id/contact/quiet-periods/:periodId", handler.RemoveQuietPeriod)
}

// setupInventoryRoutes configures blood unit inventory routes
func setupInventoryRoutes(router fiber.Router, handler *handlers.InventoryHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	router.Post("/units", handler.CreateUnit)
	router.Get("/units", handler.ListUnits)
	router.Get("/units/:id", handler.GetUnit)
	router.Put("/units/:id/status", handler.UpdateUnitStatus)
	router.Post("/units/:id/temperature", handler.LogUnitTemperature)

	router.Get("/availability", handler.GetAvailability)
	router.Get("/fulfillment", handler.CheckFulfillment)
	router.Post("/reserve", handler.ReserveUnits)
}

// setupRecipientRoutes configures recipient, request and transfusion routes
func setupRecipientRoutes(router fiber.Router, handler *handlers.RecipientHandler, cfg *config.Config) {
	recipients := router.Group("/recipients")
	recipients.Use(middleware.AuthMiddleware(cfg))

	recipients.Post("/", handler.CreateRecipient)
	recipients.Get("/", handler.ListRecipients)
	recipients.Get("/:id", handler.GetRecipient)
	recipients.Put("/:id", handler.UpdateRecipient)
	recipients.Delete("/:id", middleware.AdminOrSuperAdmin(), handler.DeactivateRecipient)

	recipients.Post("/:id/requests", handler.CreateRequest)
	recipients.Post("/:id/transfusions", handler.RecordTransfusion)
	recipients.Get("/:id/transfusions", handler.ListTransfusions)

	requests := router.Group("/requests")
	requests.Use(middleware.AuthMiddleware(cfg))

	requests.Get("/", handler.ListRequests)
	requests.Put("/:id/status", handler.UpdateRequestStatus)
}

// setupStorageRoutes configures storage telemetry routes
func setupStorageRoutes(router fiber.Router, handler *handlers.StorageHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	router.Post("/temperature", handler.RecordTemperature)
	router.Post("/maintenance", handler.RecordMaintenance)
	router.Get("/logs", handler.ListLogs)
	router.Post("/logs/:id/resolve", handler.ResolveAlert)
	router.Get("/stats", handler.GetStats)
	router.Get("/history", handler.GetHistory)
	router.Get("/refrigerators", handler.ListRefrigerators)
}

// setupDashboardRoutes configures dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	router.Get("/stats", handler.GetStats)
	router.Get("/notifications", handler.GetNotifications)
	router.Get("/search", handler.Search)
}
