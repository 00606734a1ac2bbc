package models

import "gorm.io/gorm"

// PhoneModel is a supported device model, grouped by brand in the chat flow.
type PhoneModel struct {
	gorm.Model
	Brand     string `json:"brand" gorm:"index"`
	Name      string `json:"name"`
	IsPopular bool   `json:"is_popular"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
}

// Label is the display form used in order summaries, e.g. "Apple iPhone 15".
func (m *PhoneModel) Label() string {
	if m.Brand == "" {
		return m.Name
	}
	return m.Brand + " " + m.Name
}
