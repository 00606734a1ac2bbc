package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/config"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/observability"
)

// Sender is the outbound chat surface the conversation engine talks through.
type Sender interface {
	SendText(recipientID, text string) error
	SendQuickReplies(recipientID, text string, replies []models.QuickReply) error
}

// MessengerService sends messages through the Facebook Graph send API.
type MessengerService struct {
	client      *http.Client
	baseURL     string
	accessToken string
}

// NewMessengerService creates a Messenger send-API client with a bounded
// request timeout.
func NewMessengerService(cfg *config.Config) *MessengerService {
	return &MessengerService{
		client:      &http.Client{Timeout: 5 * time.Second},
		baseURL:     cfg.GraphAPIBaseURL,
		accessToken: cfg.PageAccessToken,
	}
}

// SendText sends a plain text message.
func (m *MessengerService) SendText(recipientID, text string) error {
	return m.send(models.SendRequest{
		Recipient: models.Participant{ID: recipientID},
		Message:   models.SendMessage{Text: text},
	})
}

// SendQuickReplies sends a text message with suggested-reply chips.
func (m *MessengerService) SendQuickReplies(recipientID, text string, replies []models.QuickReply) error {
	return m.send(models.SendRequest{
		Recipient: models.Participant{ID: recipientID},
		Message:   models.SendMessage{Text: text, QuickReplies: replies},
	})
}

// send posts one message. Failures are logged here and returned to the
// caller, which decides whether to abort the visible flow.
func (m *MessengerService) send(req models.SendRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/me/messages?access_token=%s", m.baseURL, url.QueryEscape(m.accessToken))
	resp, err := m.client.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		observability.MessagesSent.WithLabelValues("error").Inc()
		log.Printf("❌ Failed to send Messenger message to %s: %v", req.Recipient.ID, err)
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		observability.MessagesSent.WithLabelValues("error").Inc()
		log.Printf("❌ Messenger send API returned %d for %s: %s", resp.StatusCode, req.Recipient.ID, detail)
		return fmt.Errorf("send message: platform returned %d", resp.StatusCode)
	}

	observability.MessagesSent.WithLabelValues("ok").Inc()
	return nil
}
