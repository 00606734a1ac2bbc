package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "caseshop"

// Prometheus instruments for the ordering engine.
var (
	EventsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_events_total",
		Help:      "Messaging events received through the webhook.",
	})
	OrdersCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_committed_total",
		Help:      "Orders committed from completed chat sessions.",
	})
	MessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Outbound Messenger sends by result.",
	}, []string{"result"})
	WebhookDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_webhook_deliveries_total",
		Help:      "Admin order webhook deliveries by result.",
	}, []string{"result"})
	CatalogRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_refreshes_total",
		Help:      "Catalog cache refreshes by result.",
	}, []string{"result"})
)

// RegisterActiveSessions exposes the number of senders currently
// mid-conversation as a gauge scraped on demand.
func RegisterActiveSessions(fn func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Chat sessions currently mid-conversation.",
	}, func() float64 { return float64(fn()) })
}

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
