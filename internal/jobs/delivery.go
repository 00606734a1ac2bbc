package jobs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/observability"
)

// DeliveryJob redelivers order-created webhooks to the configured admin
// endpoint. Payloads are queued so a slow endpoint never blocks the order
// commit path; the worker retries each payload with a fixed delay and
// swallows the failure once attempts are exhausted, since the order is
// already durably persisted.
type DeliveryJob struct {
	url    string
	client *http.Client
	queue  chan models.OrderWebhookPayload
	stop   chan struct{}
	done   chan struct{}

	attempts  int
	retryWait time.Duration
}

// NewDeliveryJob creates a delivery worker for the given admin URL. An
// empty URL turns every enqueue into a logged no-op.
func NewDeliveryJob(url string) *DeliveryJob {
	return &DeliveryJob{
		url:       url,
		client:    &http.Client{Timeout: 5 * time.Second},
		queue:     make(chan models.OrderWebhookPayload, 64),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		attempts:  3,
		retryWait: 2 * time.Second,
	}
}

// Start launches the delivery worker.
func (j *DeliveryJob) Start() {
	log.Println("Starting order webhook delivery worker...")
	go j.run()
}

// Stop halts the worker after any in-flight delivery finishes.
func (j *DeliveryJob) Stop() {
	close(j.stop)
	<-j.done
}

func (j *DeliveryJob) run() {
	defer close(j.done)
	for {
		select {
		case <-j.stop:
			return
		case payload := <-j.queue:
			j.Deliver(payload)
		}
	}
}

// Enqueue hands a payload to the worker without blocking the caller.
func (j *DeliveryJob) Enqueue(payload models.OrderWebhookPayload) {
	if j.url == "" {
		log.Printf("⚠️  ADMIN_WEBHOOK_URL not configured - skipping order webhook for %s", payload.OrderID)
		observability.WebhookDeliveries.WithLabelValues("skipped").Inc()
		return
	}
	select {
	case j.queue <- payload:
	default:
		log.Printf("⚠️  Order webhook queue full - dropping payload for %s", payload.OrderID)
		observability.WebhookDeliveries.WithLabelValues("dropped").Inc()
	}
}

// Deliver posts the payload, retrying up to the attempt budget.
func (j *DeliveryJob) Deliver(payload models.OrderWebhookPayload) {
	if j.url == "" {
		log.Printf("⚠️  ADMIN_WEBHOOK_URL not configured - skipping order webhook for %s", payload.OrderID)
		observability.WebhookDeliveries.WithLabelValues("skipped").Inc()
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("❌ Failed to marshal order webhook payload for %s: %v", payload.OrderID, err)
		return
	}

	var lastErr error
	for attempt := 1; attempt <= j.attempts; attempt++ {
		if attempt > 1 {
			time.Sleep(j.retryWait)
		}
		lastErr = j.post(body)
		if lastErr == nil {
			log.Printf("✅ Order webhook delivered for %s (attempt %d)", payload.OrderID, attempt)
			observability.WebhookDeliveries.WithLabelValues("delivered").Inc()
			return
		}
		log.Printf("⚠️  Order webhook attempt %d/%d failed for %s: %v", attempt, j.attempts, payload.OrderID, lastErr)
	}

	log.Printf("❌ Order webhook delivery failed after %d attempts for %s: %v", j.attempts, payload.OrderID, lastErr)
	observability.WebhookDeliveries.WithLabelValues("failed").Inc()
}

func (j *DeliveryJob) post(body []byte) error {
	resp, err := j.client.Post(j.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 512))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("admin endpoint returned %d", resp.StatusCode)
	}
	return nil
}
