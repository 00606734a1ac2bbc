package storage

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
)

// DatabaseStore implements Store on top of PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a new database storage
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (d *DatabaseStore) GetActiveProducts() ([]*models.Product, error) {
	var products []*models.Product
	err := d.db.Preload("Variants").
		Where("is_active = ?", true).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("fetch active products: %w", err)
	}
	return products, nil
}

func (d *DatabaseStore) GetActivePhoneModels() ([]*models.PhoneModel, error) {
	var phoneModels []*models.PhoneModel
	err := d.db.Where("is_active = ?", true).
		Order("brand, id").
		Find(&phoneModels).Error
	if err != nil {
		return nil, fmt.Errorf("fetch active phone models: %w", err)
	}
	return phoneModels, nil
}

// CreateOrder writes the order header, its items and the stock decrement in
// one transaction. The decrement is a single guarded UPDATE, so two
// concurrent orders for the same variant cannot both consume the last unit;
// any failure rolls the whole order back.
func (d *DatabaseStore) CreateOrder(order *models.Order) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, item := range order.Items {
			if item.Color == "" {
				continue // product without color variants, no stock tracking
			}
			res := tx.Model(&models.ProductVariant{}).
				Where("product_id = ? AND color = ? AND stock >= ?", item.ProductID, item.Color, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("decrement stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}
		return nil
	})
}

func (d *DatabaseStore) GetOrdersByFacebookUser(facebookUserID string) ([]*models.Order, error) {
	var orders []*models.Order
	err := d.db.Preload("Items").
		Where("facebook_user_id = ?", facebookUserID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	return orders, nil
}
