package models

import "time"

// SessionState identifies where a sender is in the ordering conversation.
type SessionState string

const (
	StateIdle              SessionState = "IDLE"
	StateWaitingProduct    SessionState = "WAITING_PRODUCT"
	StateWaitingPhoneModel SessionState = "WAITING_PHONE_MODEL"
	StateWaitingColor      SessionState = "WAITING_COLOR"
	StateWaitingQuantity   SessionState = "WAITING_QUANTITY"
	StateWaitingName       SessionState = "WAITING_NAME"
	StateWaitingPhone      SessionState = "WAITING_PHONE"
	StateWaitingAddress    SessionState = "WAITING_ADDRESS"
	StateWaitingConfirm    SessionState = "WAITING_CONFIRM"
)

// ChatSession stores the conversation state for one Messenger sender.
// An IDLE session carries no partial-order fields.
type ChatSession struct {
	SenderID           string       `json:"sender_id"`
	State              SessionState `json:"state"`
	SelectedProduct    *Product     `json:"selected_product,omitempty"`
	SelectedPhoneModel *PhoneModel  `json:"selected_phone_model,omitempty"`
	Quantity           int          `json:"quantity,omitempty"`
	Color              string       `json:"color,omitempty"`
	CustomerName       string       `json:"customer_name,omitempty"`
	Phone              string       `json:"phone,omitempty"`
	Address            string       `json:"address,omitempty"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// Reset clears all partial-order fields and returns the session to IDLE.
func (s *ChatSession) Reset() {
	s.State = StateIdle
	s.SelectedProduct = nil
	s.SelectedPhoneModel = nil
	s.Quantity = 0
	s.Color = ""
	s.CustomerName = ""
	s.Phone = ""
	s.Address = ""
}

// ClearSelection drops everything collected after product selection. Used
// when the shopper picks a new product mid-flow.
func (s *ChatSession) ClearSelection() {
	s.SelectedPhoneModel = nil
	s.Quantity = 0
	s.Color = ""
}
