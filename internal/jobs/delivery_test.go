package jobs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
)

func testPayload() models.OrderWebhookPayload {
	return models.OrderWebhookPayload{
		CustomerName:   "Nguyen Van A",
		Phone:          "0912345678",
		Address:        "123 Lê Lợi, Quận 1, TP.HCM",
		Product:        "Ốp lưng trong suốt",
		Quantity:       2,
		Color:          "Đỏ",
		TotalPrice:     300000,
		FacebookUserID: "U100",
		OrderID:        "ORD20260828ABCD1234",
		CreatedAt:      time.Now().Format(time.RFC3339),
	}
}

func TestDeliverPostsPayloadJSON(t *testing.T) {
	var received models.OrderWebhookPayload
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	job := NewDeliveryJob(server.URL)
	job.retryWait = time.Millisecond

	job.Deliver(testPayload())

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "ORD20260828ABCD1234", received.OrderID)
	assert.Equal(t, "Nguyen Van A", received.CustomerName)
	assert.Equal(t, float64(300000), received.TotalPrice)
}

func TestDeliverRetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	job := NewDeliveryJob(server.URL)
	job.retryWait = time.Millisecond

	job.Deliver(testPayload())

	assert.Equal(t, int32(3), calls.Load())
}

func TestDeliverGivesUpAfterAttemptBudget(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	job := NewDeliveryJob(server.URL)
	job.retryWait = time.Millisecond

	// Must return instead of retrying forever; the order is already persisted.
	job.Deliver(testPayload())

	assert.Equal(t, int32(3), calls.Load())
}

func TestEnqueueWithoutURLIsNoOp(t *testing.T) {
	job := NewDeliveryJob("")
	job.Enqueue(testPayload())
	assert.Empty(t, job.queue)
}

func TestWorkerDeliversQueuedPayloads(t *testing.T) {
	delivered := make(chan string, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p models.OrderWebhookPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		delivered <- p.OrderID
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	job := NewDeliveryJob(server.URL)
	job.retryWait = time.Millisecond
	job.Start()
	defer job.Stop()

	first := testPayload()
	second := testPayload()
	second.OrderID = "ORD20260828EFGH5678"
	job.Enqueue(first)
	job.Enqueue(second)

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case id := <-delivered:
			got[id] = true
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for webhook delivery")
		}
	}
	assert.True(t, got["ORD20260828ABCD1234"])
	assert.True(t, got["ORD20260828EFGH5678"])
}

func TestStopWaitsForWorkerExit(t *testing.T) {
	job := NewDeliveryJob("")
	job.Start()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after worker shut down")
	}
}
