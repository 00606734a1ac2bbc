package storage

import (
	"errors"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
)

// ErrInsufficientStock is returned when an order asks for more units than
// the selected variant currently has.
var ErrInsufficientStock = errors.New("insufficient stock")

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the persistence operations the ordering engine needs.
// The catalog side feeds the cache; the order side is exercised by the
// commit service and the order-history command.
type Store interface {
	// Catalog operations
	GetActiveProducts() ([]*models.Product, error)
	GetActivePhoneModels() ([]*models.PhoneModel, error)

	// Order operations. CreateOrder persists the order header, its line
	// items and the stock decrement as one atomic unit; it fails with
	// ErrInsufficientStock when a variant cannot cover the quantity.
	CreateOrder(order *models.Order) error
	GetOrdersByFacebookUser(facebookUserID string) ([]*models.Order, error)
}
