package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/storage"
)

func TestGenerateOrderNumberUniqueness(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		number := GenerateOrderNumber()
		require.False(t, seen[number], "duplicate order number %s", number)
		seen[number] = true
	}
}

func TestGenerateOrderNumberShape(t *testing.T) {
	number := GenerateOrderNumber()
	assert.Len(t, number, 3+14+8)
	assert.Equal(t, "ORD", number[:3])
}

func completedSession(product *models.Product) *models.ChatSession {
	return &models.ChatSession{
		SenderID:        "S1",
		State:           models.StateWaitingConfirm,
		SelectedProduct: product,
		SelectedPhoneModel: &models.PhoneModel{
			Brand: "Apple",
			Name:  "iPhone 15",
		},
		Quantity:     3,
		Color:        "Đỏ",
		CustomerName: "Nguyen Van A",
		Phone:        "0912345678",
		Address:      "123 Lê Lợi, Quận 1, TP.HCM",
	}
}

func TestCommitOrderRejectsIncompleteSession(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewOrderService(store, NewCatalogCache(store, 5*time.Minute), nil)

	product := store.AddProduct(&models.Product{Name: "Ốp lưng", Price: 150000, IsActive: true})

	for _, corrupt := range []func(*models.ChatSession){
		func(s *models.ChatSession) { s.SelectedProduct = nil },
		func(s *models.ChatSession) { s.CustomerName = "" },
		func(s *models.ChatSession) { s.Phone = "" },
		func(s *models.ChatSession) { s.Address = "" },
	} {
		session := completedSession(product)
		corrupt(session)
		_, err := svc.CommitOrder(session)
		assert.ErrorIs(t, err, ErrIncompleteSession)
	}
}

func TestCommitOrderPersistsAndDecrementsStock(t *testing.T) {
	store := storage.NewMemoryStore()
	cache := NewCatalogCache(store, 5*time.Minute)

	var delivered []models.OrderWebhookPayload
	svc := NewOrderService(store, cache, func(p models.OrderWebhookPayload) {
		delivered = append(delivered, p)
	})

	product := store.AddProduct(&models.Product{
		Name: "Ốp lưng trong suốt", Price: 150000, IsActive: true,
		Variants: []models.ProductVariant{{Color: "Đỏ", Stock: 10}},
	})

	order, err := svc.CommitOrder(completedSession(product))
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, float64(450000), order.TotalPrice)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.Equal(t, "Apple iPhone 15", order.Items[0].PhoneModel)

	// Stock decremented atomically in the store.
	products, err := store.GetActiveProducts()
	require.NoError(t, err)
	assert.Equal(t, 7, products[0].Variants[0].Stock)

	// Admin webhook enqueued with the committed values.
	require.Len(t, delivered, 1)
	assert.Equal(t, "Nguyen Van A", delivered[0].CustomerName)
	assert.Equal(t, "0912345678", delivered[0].Phone)
	assert.Equal(t, "Ốp lưng trong suốt", delivered[0].Product)
	assert.Equal(t, 3, delivered[0].Quantity)
	assert.Equal(t, "Đỏ", delivered[0].Color)
	assert.Equal(t, float64(450000), delivered[0].TotalPrice)
	assert.Equal(t, "S1", delivered[0].FacebookUserID)
	assert.Equal(t, order.OrderNumber, delivered[0].OrderID)
}

func TestCommitOrderInsufficientStock(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewOrderService(store, NewCatalogCache(store, 5*time.Minute), nil)

	product := store.AddProduct(&models.Product{
		Name: "Ốp lưng", Price: 150000, IsActive: true,
		Variants: []models.ProductVariant{{Color: "Đỏ", Stock: 1}},
	})

	_, err := svc.CommitOrder(completedSession(product))
	assert.ErrorIs(t, err, storage.ErrInsufficientStock)

	// Nothing persisted.
	orders, err := store.GetOrdersByFacebookUser("S1")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCommitOrderInvalidatesCatalogCache(t *testing.T) {
	store := storage.NewMemoryStore()
	cache := NewCatalogCache(store, 5*time.Minute)
	svc := NewOrderService(store, cache, nil)

	product := store.AddProduct(&models.Product{
		Name: "Ốp lưng", Price: 150000, IsActive: true,
		Variants: []models.ProductVariant{{Color: "Đỏ", Stock: 10}},
	})

	// Warm the cache, commit, then verify the next read sees new stock.
	_, err := cache.GetProducts()
	require.NoError(t, err)

	_, err = svc.CommitOrder(completedSession(product))
	require.NoError(t, err)

	products, err := cache.GetProducts()
	require.NoError(t, err)
	assert.Equal(t, 7, products[0].Variants[0].Stock)
}
