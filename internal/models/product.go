package models

import "gorm.io/gorm"

// Product is a catalog item that can be ordered through the chat flow.
type Product struct {
	gorm.Model
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Emoji    string  `json:"emoji"` // category tag shown in chat lists
	IsActive bool    `json:"is_active" gorm:"default:true"`

	Variants []ProductVariant `json:"variants" gorm:"foreignKey:ProductID"`
}

// ProductVariant is one color option of a product with its own stock.
type ProductVariant struct {
	gorm.Model
	ProductID uint   `json:"product_id" gorm:"index"`
	Color     string `json:"color"`
	Stock     int    `json:"stock"`
}

// ColorOptions returns the product's colors in variant order, deduplicated.
func (p *Product) ColorOptions() []string {
	seen := make(map[string]bool)
	var colors []string
	for _, v := range p.Variants {
		if v.Color == "" || seen[v.Color] {
			continue
		}
		seen[v.Color] = true
		colors = append(colors, v.Color)
	}
	return colors
}

// TotalStock sums the stock across all variants.
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}
