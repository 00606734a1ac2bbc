package services

import (
	"strconv"
	"strings"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
)

// EventKind classifies a decoded inbound event.
type EventKind string

const (
	EventText       EventKind = "text"
	EventPostback   EventKind = "postback"
	EventQuickReply EventKind = "quick_reply"
)

// IncomingEvent is one messaging event after gateway decoding.
type IncomingEvent struct {
	SenderID  string
	Kind      EventKind
	Text      string
	Payload   string
	Timestamp int64
}

// DecodeMessagingEvent flattens a raw platform event into an IncomingEvent.
// ok is false for events the engine does not handle (echoes, delivery
// receipts, attachments without text).
func DecodeMessagingEvent(ev models.MessagingEvent) (IncomingEvent, bool) {
	if ev.Sender.ID == "" {
		return IncomingEvent{}, false
	}
	out := IncomingEvent{SenderID: ev.Sender.ID, Timestamp: ev.Timestamp}

	switch {
	case ev.Postback != nil:
		out.Kind = EventPostback
		out.Payload = ev.Postback.Payload
	case ev.Message != nil && ev.Message.IsEcho:
		return IncomingEvent{}, false
	case ev.Message != nil && ev.Message.QuickReply != nil:
		out.Kind = EventQuickReply
		out.Payload = ev.Message.QuickReply.Payload
		out.Text = ev.Message.Text
	case ev.Message != nil && ev.Message.Text != "":
		out.Kind = EventText
		out.Text = ev.Message.Text
	default:
		return IncomingEvent{}, false
	}
	return out, true
}

// Button payload vocabulary. Prefixed payloads carry an id or value after
// the underscore.
const (
	PayloadConfirmOrder   = "CONFIRM_ORDER"
	PayloadCancelOrder    = "CANCEL_ORDER"
	PayloadMenuProducts   = "MENU_PRODUCTS"
	PayloadViewOrders     = "VIEW_ORDERS"
	PayloadContactSupport = "CONTACT_SUPPORT"
	PayloadMenu           = "MENU"

	prefixProduct    = "PRODUCT_"
	prefixBrand      = "BRAND_"
	prefixPhoneModel = "PHONEMODEL_"
	prefixColor      = "COLOR_"
)

// ActionType discriminates decoded button actions.
type ActionType int

const (
	ActionUnknown ActionType = iota
	ActionShowMenu
	ActionShowProducts
	ActionViewOrders
	ActionContactSupport
	ActionSelectProduct
	ActionSelectBrand
	ActionSelectPhoneModel
	ActionSelectColor
	ActionConfirmOrder
	ActionCancelOrder
)

// ButtonAction is a button payload decoded once at the gateway boundary.
type ButtonAction struct {
	Type  ActionType
	ID    uint   // product or phone model id
	Value string // brand name or color
}

// ParseButtonAction decodes a raw payload string into a tagged action.
// Malformed payloads decode to ActionUnknown.
func ParseButtonAction(payload string) ButtonAction {
	payload = strings.TrimSpace(payload)

	switch payload {
	case PayloadConfirmOrder:
		return ButtonAction{Type: ActionConfirmOrder}
	case PayloadCancelOrder:
		return ButtonAction{Type: ActionCancelOrder}
	case PayloadMenuProducts:
		return ButtonAction{Type: ActionShowProducts}
	case PayloadViewOrders:
		return ButtonAction{Type: ActionViewOrders}
	case PayloadContactSupport:
		return ButtonAction{Type: ActionContactSupport}
	case PayloadMenu:
		return ButtonAction{Type: ActionShowMenu}
	}

	switch {
	case strings.HasPrefix(payload, prefixProduct):
		if id, ok := parseID(payload[len(prefixProduct):]); ok {
			return ButtonAction{Type: ActionSelectProduct, ID: id}
		}
	case strings.HasPrefix(payload, prefixBrand):
		if value := payload[len(prefixBrand):]; value != "" {
			return ButtonAction{Type: ActionSelectBrand, Value: value}
		}
	case strings.HasPrefix(payload, prefixPhoneModel):
		if id, ok := parseID(payload[len(prefixPhoneModel):]); ok {
			return ButtonAction{Type: ActionSelectPhoneModel, ID: id}
		}
	case strings.HasPrefix(payload, prefixColor):
		if value := payload[len(prefixColor):]; value != "" {
			return ButtonAction{Type: ActionSelectColor, Value: value}
		}
	}
	return ButtonAction{Type: ActionUnknown}
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ProductPayload builds the payload for a product chip.
func ProductPayload(id uint) string {
	return prefixProduct + strconv.FormatUint(uint64(id), 10)
}

// BrandPayload builds the payload for a brand chip.
func BrandPayload(brand string) string {
	return prefixBrand + brand
}

// PhoneModelPayload builds the payload for a phone model chip.
func PhoneModelPayload(id uint) string {
	return prefixPhoneModel + strconv.FormatUint(uint64(id), 10)
}

// ColorPayload builds the payload for a color chip.
func ColorPayload(color string) string {
	return prefixColor + color
}
