package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/http/middleware"
	"github.com/mvonombogho/blood-bank-system/internal/adapters/http/routes"
	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"
	"github.com/mvonombogho/blood-bank-system/internal/config"
	"github.com/mvonombogho/blood-bank-system/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "github.com/mvonombogho/blood-bank-system/docs" // Swagger docs
)

// @title Blood Bank System API
// @version 1.0
// @description Blood bank management API covering donors, inventory, recipients and storage monitoring.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@bloodbank.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.bloodbank.local
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed super admin and master data
	if err := config.NewSeeder(db, cfg).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed database: %v", err)
	}

	// Start background sweeper for expired units and stale reservations
	sweeper := services.NewSweeperService(repositories.NewBloodUnitRepository(db))
	if err := sweeper.Start(); err != nil {
		log.Fatalf("❌ Failed to start sweeper: %v", err)
	}
	defer sweeper.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Blood Bank System API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
