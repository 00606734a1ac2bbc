package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/observability"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/services"
)

// WebhookHandler ingests Messenger webhook traffic: the GET verification
// handshake and POST event deliveries.
type WebhookHandler struct {
	verifyToken string
	engine      *services.ConversationEngine

	// dispatch decouples the transport acknowledgment from conversation
	// processing. Defaults to a goroutine; tests swap in a synchronous one.
	dispatch func(fn func())
}

// NewWebhookHandler creates a webhook handler around the engine.
func NewWebhookHandler(verifyToken string, engine *services.ConversationEngine) *WebhookHandler {
	return &WebhookHandler{
		verifyToken: verifyToken,
		engine:      engine,
		dispatch:    func(fn func()) { go fn() },
	}
}

// HandleVerification answers the platform's subscription handshake.
func (h *WebhookHandler) HandleVerification(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && h.verifyToken != "" && token == h.verifyToken {
		log.Println("✅ Webhook verified")
		return c.SendString(challenge)
	}

	log.Printf("❌ Webhook verification failed (mode=%s)", mode)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Verification failed",
	})
}

// HandleEvent acknowledges the transport first, then processes each event
// asynchronously. The platform retries on slow responses, so processing
// errors are contained here and never surfaced to it.
func (h *WebhookHandler) HandleEvent(c *fiber.Ctx) error {
	var payload models.WebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook payload: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	var events []services.IncomingEvent
	for _, entry := range payload.Entry {
		for _, raw := range entry.Messaging {
			if ev, ok := services.DecodeMessagingEvent(raw); ok {
				events = append(events, ev)
			}
		}
	}

	if len(events) > 0 {
		observability.EventsReceived.Add(float64(len(events)))
		h.dispatch(func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("❌ Panic while processing webhook events: %v", r)
				}
			}()
			// Events stay in array order within one delivery.
			for _, ev := range events {
				h.engine.HandleEvent(ev)
			}
		})
	}

	return c.SendString("EVENT_RECEIVED")
}
