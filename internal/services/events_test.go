package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
)

func TestParseButtonAction(t *testing.T) {
	tests := []struct {
		payload string
		want    ButtonAction
	}{
		{"CONFIRM_ORDER", ButtonAction{Type: ActionConfirmOrder}},
		{"CANCEL_ORDER", ButtonAction{Type: ActionCancelOrder}},
		{"MENU_PRODUCTS", ButtonAction{Type: ActionShowProducts}},
		{"VIEW_ORDERS", ButtonAction{Type: ActionViewOrders}},
		{"CONTACT_SUPPORT", ButtonAction{Type: ActionContactSupport}},
		{"MENU", ButtonAction{Type: ActionShowMenu}},
		{"PRODUCT_12", ButtonAction{Type: ActionSelectProduct, ID: 12}},
		{"BRAND_Apple", ButtonAction{Type: ActionSelectBrand, Value: "Apple"}},
		{"PHONEMODEL_5", ButtonAction{Type: ActionSelectPhoneModel, ID: 5}},
		{"COLOR_Đỏ", ButtonAction{Type: ActionSelectColor, Value: "Đỏ"}},
		{"PRODUCT_abc", ButtonAction{Type: ActionUnknown}},
		{"PRODUCT_", ButtonAction{Type: ActionUnknown}},
		{"BRAND_", ButtonAction{Type: ActionUnknown}},
		{"SOMETHING_ELSE", ButtonAction{Type: ActionUnknown}},
		{"", ButtonAction{Type: ActionUnknown}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseButtonAction(tt.payload), "payload %q", tt.payload)
	}
}

func TestParseButtonActionRoundTrip(t *testing.T) {
	assert.Equal(t, ButtonAction{Type: ActionSelectProduct, ID: 7}, ParseButtonAction(ProductPayload(7)))
	assert.Equal(t, ButtonAction{Type: ActionSelectBrand, Value: "Samsung"}, ParseButtonAction(BrandPayload("Samsung")))
	assert.Equal(t, ButtonAction{Type: ActionSelectPhoneModel, ID: 3}, ParseButtonAction(PhoneModelPayload(3)))
	assert.Equal(t, ButtonAction{Type: ActionSelectColor, Value: "Xanh"}, ParseButtonAction(ColorPayload("Xanh")))
}

func TestDecodeMessagingEvent(t *testing.T) {
	text, ok := DecodeMessagingEvent(models.MessagingEvent{
		Sender:  models.Participant{ID: "S1"},
		Message: &models.Message{MID: "m1", Text: "hello"},
	})
	assert.True(t, ok)
	assert.Equal(t, EventText, text.Kind)
	assert.Equal(t, "S1", text.SenderID)
	assert.Equal(t, "hello", text.Text)

	postback, ok := DecodeMessagingEvent(models.MessagingEvent{
		Sender:   models.Participant{ID: "S1"},
		Postback: &models.Postback{Title: "Menu", Payload: "MENU"},
	})
	assert.True(t, ok)
	assert.Equal(t, EventPostback, postback.Kind)
	assert.Equal(t, "MENU", postback.Payload)

	quick, ok := DecodeMessagingEvent(models.MessagingEvent{
		Sender: models.Participant{ID: "S1"},
		Message: &models.Message{
			Text:       "✅ Xác nhận",
			QuickReply: &models.QuickReplyAnswer{Payload: "CONFIRM_ORDER"},
		},
	})
	assert.True(t, ok)
	assert.Equal(t, EventQuickReply, quick.Kind)
	assert.Equal(t, "CONFIRM_ORDER", quick.Payload)

	// Echoes and empty events are skipped.
	_, ok = DecodeMessagingEvent(models.MessagingEvent{
		Sender:  models.Participant{ID: "S1"},
		Message: &models.Message{Text: "hi", IsEcho: true},
	})
	assert.False(t, ok)

	_, ok = DecodeMessagingEvent(models.MessagingEvent{Sender: models.Participant{ID: "S1"}})
	assert.False(t, ok)

	_, ok = DecodeMessagingEvent(models.MessagingEvent{Message: &models.Message{Text: "hi"}})
	assert.False(t, ok)
}
