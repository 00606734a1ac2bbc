package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/observability"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/storage"
)

// ErrIncompleteSession is returned when a commit is attempted on a session
// missing required order fields.
var ErrIncompleteSession = errors.New("session is missing required order fields")

// OrderService validates a completed session and commits the order.
type OrderService struct {
	store   storage.Store
	catalog *CatalogCache
	deliver func(models.OrderWebhookPayload) // enqueues the admin order webhook
}

// NewOrderService creates the order commit service. deliver may be nil when
// no admin webhook is wired (tests, local runs).
func NewOrderService(store storage.Store, catalog *CatalogCache, deliver func(models.OrderWebhookPayload)) *OrderService {
	return &OrderService{
		store:   store,
		catalog: catalog,
		deliver: deliver,
	}
}

// GenerateOrderNumber returns a human-legible order number: a timestamp
// token plus a random suffix. Collisions are negligible, not formally
// impossible.
func GenerateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD%s%s", time.Now().Format("20060102150405"), suffix)
}

// CommitOrder persists the order built from the session, invalidates the
// catalog cache and hands the admin notification to the delivery queue.
// The session itself is not mutated; the engine resets it on success.
func (s *OrderService) CommitOrder(session *models.ChatSession) (*models.Order, error) {
	if session.SelectedProduct == nil || session.CustomerName == "" ||
		session.Phone == "" || session.Address == "" {
		return nil, ErrIncompleteSession
	}

	product := session.SelectedProduct
	quantity := session.Quantity
	if quantity < 1 {
		quantity = 1
	}

	var phoneModelLabel string
	if session.SelectedPhoneModel != nil {
		phoneModelLabel = session.SelectedPhoneModel.Label()
	}

	order := &models.Order{
		OrderNumber:    GenerateOrderNumber(),
		FacebookUserID: session.SenderID,
		CustomerName:   session.CustomerName,
		Phone:          session.Phone,
		Address:        session.Address,
		TotalPrice:     product.Price * float64(quantity),
		Status:         models.OrderStatusPending,
		Items: []models.OrderItem{{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    quantity,
			UnitPrice:   product.Price,
			Color:       session.Color,
			PhoneModel:  phoneModelLabel,
		}},
	}

	if err := s.store.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Displayed stock changed; force the next catalog read to refetch.
	s.catalog.Invalidate()
	observability.OrdersCommitted.Inc()
	log.Printf("✅ Order %s committed for %s (total %s)", order.OrderNumber, session.SenderID, FormatVND(order.TotalPrice))

	if s.deliver != nil {
		s.deliver(webhookPayloadFor(order))
	}
	return order, nil
}

func webhookPayloadFor(order *models.Order) models.OrderWebhookPayload {
	item := order.Items[0]
	createdAt := order.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return models.OrderWebhookPayload{
		CustomerName:   order.CustomerName,
		Phone:          order.Phone,
		Address:        order.Address,
		Product:        item.ProductName,
		Quantity:       item.Quantity,
		Color:          item.Color,
		TotalPrice:     order.TotalPrice,
		FacebookUserID: order.FacebookUserID,
		OrderID:        order.OrderNumber,
		CreatedAt:      createdAt.Format(time.RFC3339),
	}
}
