package routes

import (
	"log"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/config"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/handlers"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/middleware"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/observability"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, cfg *config.Config, webhook *handlers.WebhookHandler, health *handlers.HealthHandler) {

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to CaseFone Shop Backend!",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"health":  "/health",
				"webhook": "/webhook",
				"metrics": "/metrics",
			},
		})
	})

	app.Get("/health", health.Check)
	app.Get("/metrics", adaptor.HTTPHandler(observability.Handler()))

	// ========== MESSENGER WEBHOOK ==========
	app.Get("/webhook", webhook.HandleVerification)

	if cfg.AppSecret != "" {
		// Production: validate the platform signature on every delivery
		app.Post("/webhook", middleware.VerifySignature(cfg.AppSecret), webhook.HandleEvent)
	} else {
		log.Println("⚠️  MESSENGER_APP_SECRET not set - webhook signature validation DISABLED")
		app.Post("/webhook", webhook.HandleEvent)
	}
}
