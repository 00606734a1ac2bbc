package models

import "gorm.io/gorm"

// Order is a committed purchase created from a completed chat session.
type Order struct {
	gorm.Model
	OrderNumber    string  `json:"order_number" gorm:"uniqueIndex"`
	FacebookUserID string  `json:"facebook_user_id" gorm:"index"`
	CustomerName   string  `json:"customer_name"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	TotalPrice     float64 `json:"total_price"`
	Status         string  `json:"status"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem is one ordered line with the product details frozen at commit time.
type OrderItem struct {
	gorm.Model
	OrderID     uint    `json:"order_id" gorm:"index"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Color       string  `json:"color"`
	PhoneModel  string  `json:"phone_model"`
}

// Order status constants
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderWebhookPayload is the JSON body posted to the admin order webhook.
type OrderWebhookPayload struct {
	CustomerName   string  `json:"customer_name"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	Product        string  `json:"product"`
	Quantity       int     `json:"quantity"`
	Color          string  `json:"color,omitempty"`
	TotalPrice     float64 `json:"total_price"`
	FacebookUserID string  `json:"facebook_user_id"`
	OrderID        string  `json:"order_id,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
