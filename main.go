package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/doanpham16112005-crypto/EC312-sub000/database"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/config"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/handlers"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/jobs"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/observability"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/routes"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/services"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/storage"
)

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("⚠️  No .env file found - checking environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if cfg.VerifyToken == "" {
		log.Println("⚠️  MESSENGER_VERIFY_TOKEN not set - webhook handshake will be rejected")
	}
	if cfg.PageAccessToken == "" {
		log.Println("⚠️  PAGE_ACCESS_TOKEN not set - outbound messages will fail")
	}

	// Initialize storage
	var store storage.Store

	if cfg.UseMemoryStore {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect(cfg)

		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.Product{},
			&models.ProductVariant{},
			&models.PhoneModel{},
			&models.Order{},
			&models.OrderItem{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}
	storage.SetStore(store)

	// Initialize services
	messengerService := services.NewMessengerService(cfg)
	catalogCache := services.NewCatalogCache(store, cfg.CatalogTTL)
	sessionStore := services.NewMemorySessionStore(cfg.SessionIdleTimeout)
	observability.RegisterActiveSessions(sessionStore.ActiveCount)

	deliveryJob := jobs.NewDeliveryJob(cfg.AdminWebhookURL)
	deliveryJob.Start()

	orderService := services.NewOrderService(store, catalogCache, deliveryJob.Enqueue)
	engine := services.NewConversationEngine(sessionStore, catalogCache, orderService, store, messengerService)

	webhookHandler := handlers.NewWebhookHandler(cfg.VerifyToken, engine)
	healthHandler := handlers.NewHealthHandler("1.0.0")

	log.Println("✅ All services initialized")

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "CaseFone Shop Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	routes.SetupRoutes(app, cfg, webhookHandler, healthHandler)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		log.Println("⏹️  Stopping webhook delivery worker...")
		deliveryJob.Stop()
		sessionStore.Stop()
		log.Println("⏹️  Shutting down server...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 CaseFone Shop Backend starting on port %s", cfg.Port)
	log.Printf("📊 Storage: %s", storageType(cfg))
	log.Printf("📱 Messenger: %s", messengerStatus(cfg))
	log.Printf("🔔 Admin webhook: %s", adminWebhookStatus(cfg))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + cfg.Port))
}

func storageType(cfg *config.Config) string {
	if cfg.UseMemoryStore {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func messengerStatus(cfg *config.Config) string {
	if cfg.PageAccessToken == "" {
		return "Not configured"
	}
	return "Configured"
}

func adminWebhookStatus(cfg *config.Config) string {
	if cfg.AdminWebhookURL == "" {
		return "Not configured"
	}
	return "Configured"
}
