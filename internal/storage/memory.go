package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
)

// MemoryStore holds all data in memory for tests and local development.
type MemoryStore struct {
	mu          sync.RWMutex
	products    map[uint]*models.Product
	phoneModels map[uint]*models.PhoneModel
	orders      map[uint]*models.Order

	// Counters for ID generation
	productCounter uint
	modelCounter   uint
	variantCounter uint
	orderCounter   uint
	itemCounter    uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:    make(map[uint]*models.Product),
		phoneModels: make(map[uint]*models.PhoneModel),
		orders:      make(map[uint]*models.Order),
	}
}

// AddProduct seeds a product, assigning IDs to it and its variants.
func (m *MemoryStore) AddProduct(p *models.Product) *models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.productCounter++
	p.ID = m.productCounter
	for i := range p.Variants {
		m.variantCounter++
		p.Variants[i].ID = m.variantCounter
		p.Variants[i].ProductID = p.ID
	}
	m.products[p.ID] = p
	return p
}

// AddPhoneModel seeds a phone model, assigning it an ID.
func (m *MemoryStore) AddPhoneModel(pm *models.PhoneModel) *models.PhoneModel {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.modelCounter++
	pm.ID = m.modelCounter
	m.phoneModels[pm.ID] = pm
	return pm
}

func (m *MemoryStore) GetActiveProducts() ([]*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var products []*models.Product
	for _, p := range m.products {
		if p.IsActive {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (m *MemoryStore) GetActivePhoneModels() ([]*models.PhoneModel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var phoneModels []*models.PhoneModel
	for _, pm := range m.phoneModels {
		if pm.IsActive {
			phoneModels = append(phoneModels, pm)
		}
	}
	sort.Slice(phoneModels, func(i, j int) bool { return phoneModels[i].ID < phoneModels[j].ID })
	return phoneModels, nil
}

// CreateOrder persists the order and decrements variant stock. The whole
// operation runs under one lock, so concurrent committers cannot both read
// the same pre-decrement value.
func (m *MemoryStore) CreateOrder(order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Check stock for every item before writing anything.
	for _, item := range order.Items {
		if item.Color == "" {
			continue // product without color variants, no stock tracking
		}
		variant := m.findVariant(item.ProductID, item.Color)
		if variant == nil || variant.Stock < item.Quantity {
			return ErrInsufficientStock
		}
	}

	m.orderCounter++
	order.ID = m.orderCounter
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		m.itemCounter++
		order.Items[i].ID = m.itemCounter
		order.Items[i].OrderID = order.ID
		order.Items[i].CreatedAt = now
	}

	for _, item := range order.Items {
		if item.Color == "" {
			continue
		}
		m.findVariant(item.ProductID, item.Color).Stock -= item.Quantity
	}

	m.orders[order.ID] = order
	return nil
}

func (m *MemoryStore) GetOrdersByFacebookUser(facebookUserID string) ([]*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var orders []*models.Order
	for _, o := range m.orders {
		if o.FacebookUserID == facebookUserID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

// findVariant must be called with the lock held.
func (m *MemoryStore) findVariant(productID uint, color string) *models.ProductVariant {
	p, exists := m.products[productID]
	if !exists {
		return nil
	}
	for i := range p.Variants {
		if p.Variants[i].Color == color {
			return &p.Variants[i]
		}
	}
	return nil
}
