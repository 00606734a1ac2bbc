package services

import (
	"errors"
	"log"
	"strings"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
	"github.com/doanpham16112005-crypto/EC312-sub000/internal/storage"
)

// ConversationEngine drives the per-sender ordering conversation. All
// session mutation happens inside SessionStore.Update, so each sender is
// effectively single-writer even under platform redelivery.
type ConversationEngine struct {
	sessions SessionStore
	catalog  *CatalogCache
	orders   *OrderService
	store    storage.Store
	sender   Sender
}

// NewConversationEngine wires the engine to its collaborators.
func NewConversationEngine(sessions SessionStore, catalog *CatalogCache, orders *OrderService, store storage.Store, sender Sender) *ConversationEngine {
	return &ConversationEngine{
		sessions: sessions,
		catalog:  catalog,
		orders:   orders,
		store:    store,
		sender:   sender,
	}
}

// HandleEvent processes one decoded webhook event end to end. Event
// classification order: global commands, button payloads, then the free-text
// parser owned by the current state.
func (e *ConversationEngine) HandleEvent(ev IncomingEvent) {
	switch ev.Kind {
	case EventPostback, EventQuickReply:
		e.sessions.Update(ev.SenderID, func(s *models.ChatSession) {
			e.handleAction(s, ParseButtonAction(ev.Payload))
		})
	case EventText:
		if cmd, ok := matchGlobalCommand(ev.Text); ok {
			e.sessions.Update(ev.SenderID, func(s *models.ChatSession) {
				e.handleGlobalCommand(s, cmd)
			})
			return
		}
		e.sessions.Update(ev.SenderID, func(s *models.ChatSession) {
			e.handleText(s, ev.Text)
		})
	}
}

// Global command vocabulary. These fire regardless of the current state and
// always discard any partial order first.

type globalCommand int

const (
	cmdMenu globalCommand = iota
	cmdProducts
	cmdOrders
	cmdSupport
	cmdCancel
)

var globalCommands = map[string]globalCommand{
	"menu": cmdMenu, "hi": cmdMenu, "hello": cmdMenu, "start": cmdMenu,
	"chào": cmdMenu, "chao": cmdMenu, "xin chào": cmdMenu, "xin chao": cmdMenu,
	"bắt đầu": cmdMenu, "bat dau": cmdMenu,

	"products": cmdProducts, "shop": cmdProducts,
	"sản phẩm": cmdProducts, "san pham": cmdProducts,
	"mua hàng": cmdProducts, "mua hang": cmdProducts,

	"orders": cmdOrders, "đơn hàng": cmdOrders, "don hang": cmdOrders,
	"lịch sử": cmdOrders, "lich su": cmdOrders,

	"support": cmdSupport, "hỗ trợ": cmdSupport, "ho tro": cmdSupport,
	"liên hệ": cmdSupport, "lien he": cmdSupport,

	"cancel": cmdCancel, "hủy": cmdCancel, "huy": cmdCancel,
	"thoát": cmdCancel, "thoat": cmdCancel,
}

func matchGlobalCommand(text string) (globalCommand, bool) {
	cmd, ok := globalCommands[strings.ToLower(strings.TrimSpace(text))]
	return cmd, ok
}

func (e *ConversationEngine) handleGlobalCommand(s *models.ChatSession, cmd globalCommand) {
	s.Reset()
	switch cmd {
	case cmdMenu:
		e.sendWelcome(s)
	case cmdProducts:
		e.sendProductList(s)
	case cmdOrders:
		e.sendOrderHistory(s)
	case cmdSupport:
		e.send(s, SupportMessage())
	case cmdCancel:
		text, replies := OrderCancelledMessage()
		e.sendReplies(s, text, replies)
	}
}

// handleAction dispatches a decoded button action. Selection actions work
// from any state; sessions are long-lived and buttons can arrive late.
func (e *ConversationEngine) handleAction(s *models.ChatSession, action ButtonAction) {
	switch action.Type {
	case ActionShowMenu:
		s.Reset()
		e.sendWelcome(s)
	case ActionShowProducts:
		s.Reset()
		e.sendProductList(s)
	case ActionViewOrders:
		s.Reset()
		e.sendOrderHistory(s)
	case ActionContactSupport:
		e.send(s, SupportMessage())
	case ActionSelectProduct:
		e.selectProduct(s, action.ID)
	case ActionSelectBrand:
		e.selectBrand(s, action.Value)
	case ActionSelectPhoneModel:
		e.selectPhoneModel(s, action.ID)
	case ActionSelectColor:
		e.selectColor(s, action.Value)
	case ActionConfirmOrder:
		e.confirmOrder(s)
	case ActionCancelOrder:
		s.Reset()
		text, replies := OrderCancelledMessage()
		e.sendReplies(s, text, replies)
	default:
		e.sendWelcome(s)
	}
}

// handleText routes free text through the parser owned by the current state.
// Invalid input re-prompts without a state transition and is never logged
// as an error.
func (e *ConversationEngine) handleText(s *models.ChatSession, text string) {
	switch s.State {
	case models.StateIdle:
		e.sendWelcome(s)

	case models.StateWaitingProduct:
		e.sendProductList(s)

	case models.StateWaitingPhoneModel:
		brands, err := e.catalog.Brands()
		if err != nil {
			e.send(s, CatalogUnavailableMessage())
			return
		}
		msg, replies := BrandListMessage(brands)
		e.sendReplies(s, msg, replies)

	case models.StateWaitingColor:
		if s.SelectedProduct != nil && matchColorOption(s.SelectedProduct, text) != "" {
			e.selectColor(s, matchColorOption(s.SelectedProduct, text))
			return
		}
		if s.SelectedProduct != nil {
			msg, replies := ColorListMessage(s.SelectedProduct)
			e.sendReplies(s, msg, replies)
			return
		}
		e.sendProductList(s)

	case models.StateWaitingQuantity:
		qty, ok := ParseQuantity(text)
		if !ok {
			e.send(s, InvalidQuantityMessage())
			return
		}
		s.Quantity = qty
		s.State = models.StateWaitingName
		e.send(s, NamePrompt())

	case models.StateWaitingName:
		name, ok := ParseName(text)
		if !ok {
			e.send(s, InvalidNameMessage())
			return
		}
		s.CustomerName = name
		s.State = models.StateWaitingPhone
		e.send(s, PhonePrompt())

	case models.StateWaitingPhone:
		phone, ok := NormalizePhone(text)
		if !ok {
			e.send(s, InvalidPhoneMessage())
			return
		}
		s.Phone = phone
		s.State = models.StateWaitingAddress
		e.send(s, AddressPrompt())

	case models.StateWaitingAddress:
		address, ok := ParseAddress(text)
		if !ok {
			e.send(s, InvalidAddressMessage())
			return
		}
		s.Address = address
		s.State = models.StateWaitingConfirm
		msg, replies := OrderSummaryMessage(s)
		e.sendReplies(s, msg, replies)

	case models.StateWaitingConfirm:
		confirmed, matched := MatchConfirmWord(text)
		if !matched {
			msg, replies := OrderSummaryMessage(s)
			e.sendReplies(s, msg, replies)
			return
		}
		if confirmed {
			e.confirmOrder(s)
			return
		}
		s.Reset()
		msg, replies := OrderCancelledMessage()
		e.sendReplies(s, msg, replies)

	default:
		// Unknown state in a long-lived session; recover to the menu.
		s.Reset()
		e.sendWelcome(s)
	}
}

func (e *ConversationEngine) selectProduct(s *models.ChatSession, productID uint) {
	products, err := e.catalog.GetProducts()
	if err != nil {
		e.send(s, CatalogUnavailableMessage())
		return
	}

	var product *models.Product
	for _, p := range products {
		if p.ID == productID {
			product = p
			break
		}
	}
	if product == nil {
		e.send(s, ProductGoneMessage())
		e.sendProductList(s)
		return
	}

	s.SelectedProduct = product
	s.ClearSelection()

	brands, err := e.catalog.Brands()
	if err == nil && len(brands) > 0 {
		s.State = models.StateWaitingPhoneModel
		msg, replies := BrandListMessage(brands)
		e.sendReplies(s, msg, replies)
		return
	}

	// No device catalog: degrade gracefully and skip model selection.
	e.advanceToColorOrQuantity(s)
}

func (e *ConversationEngine) selectBrand(s *models.ChatSession, brand string) {
	byBrand, err := e.catalog.ModelsByBrand()
	if err != nil {
		e.send(s, CatalogUnavailableMessage())
		return
	}

	phoneModels := byBrand[brand]
	if len(phoneModels) == 0 {
		brands, berr := e.catalog.Brands()
		if berr != nil {
			e.send(s, CatalogUnavailableMessage())
			return
		}
		s.State = models.StateWaitingPhoneModel
		msg, replies := BrandEmptyMessage(brand, brands)
		e.sendReplies(s, msg, replies)
		return
	}

	s.State = models.StateWaitingPhoneModel
	msg, replies := PhoneModelListMessage(brand, phoneModels)
	e.sendReplies(s, msg, replies)
}

func (e *ConversationEngine) selectPhoneModel(s *models.ChatSession, modelID uint) {
	if s.SelectedProduct == nil {
		// Late button from a reset session.
		e.sendProductList(s)
		return
	}

	phoneModels, err := e.catalog.GetPhoneModels()
	if err != nil {
		e.send(s, CatalogUnavailableMessage())
		return
	}

	var phoneModel *models.PhoneModel
	for _, pm := range phoneModels {
		if pm.ID == modelID {
			phoneModel = pm
			break
		}
	}
	if phoneModel == nil {
		brands, berr := e.catalog.Brands()
		if berr != nil {
			e.send(s, CatalogUnavailableMessage())
			return
		}
		s.State = models.StateWaitingPhoneModel
		msg, replies := BrandListMessage(brands)
		e.sendReplies(s, msg, replies)
		return
	}

	s.SelectedPhoneModel = phoneModel
	e.advanceToColorOrQuantity(s)
}

func (e *ConversationEngine) selectColor(s *models.ChatSession, color string) {
	if s.SelectedProduct == nil {
		e.sendProductList(s)
		return
	}
	s.Color = color
	s.State = models.StateWaitingQuantity
	e.send(s, QuantityPrompt())
}

// advanceToColorOrQuantity moves past model selection: products without
// color variants skip straight to the quantity prompt.
func (e *ConversationEngine) advanceToColorOrQuantity(s *models.ChatSession) {
	if len(s.SelectedProduct.ColorOptions()) > 0 {
		s.State = models.StateWaitingColor
		msg, replies := ColorListMessage(s.SelectedProduct)
		e.sendReplies(s, msg, replies)
		return
	}
	s.State = models.StateWaitingQuantity
	e.send(s, QuantityPrompt())
}

// confirmOrder validates the session and delegates to the commit service.
// Sessions are long-lived and can be corrupted by out-of-order events, so
// missing fields abort back to product selection instead of failing hard.
func (e *ConversationEngine) confirmOrder(s *models.ChatSession) {
	if s.SelectedProduct == nil || s.CustomerName == "" || s.Phone == "" || s.Address == "" {
		s.Reset()
		s.State = models.StateWaitingProduct
		e.send(s, IncompleteOrderMessage())
		e.sendProductList(s)
		return
	}

	order, err := e.orders.CommitOrder(s)
	if err != nil {
		log.Printf("❌ Order commit failed for %s (state=%s, product=%v): %v",
			s.SenderID, s.State, s.SelectedProduct.ID, err)
		if errors.Is(err, storage.ErrInsufficientStock) {
			s.Reset()
			msg, replies := OutOfStockMessage()
			e.sendReplies(s, msg, replies)
			return
		}
		// Keep the session so the shopper can retry the confirmation.
		e.send(s, OrderFailureMessage())
		return
	}

	s.Reset()
	msg, replies := OrderSuccessMessage(order)
	e.sendReplies(s, msg, replies)
}

func (e *ConversationEngine) sendWelcome(s *models.ChatSession) {
	msg, replies := WelcomeMessage()
	e.sendReplies(s, msg, replies)
}

func (e *ConversationEngine) sendProductList(s *models.ChatSession) {
	products, err := e.catalog.GetProducts()
	if err != nil {
		e.send(s, CatalogUnavailableMessage())
		return
	}
	if s.State == models.StateIdle && len(products) > 0 {
		s.State = models.StateWaitingProduct
	}
	msg, replies := ProductListMessage(products)
	e.sendReplies(s, msg, replies)
}

func (e *ConversationEngine) sendOrderHistory(s *models.ChatSession) {
	orders, err := e.store.GetOrdersByFacebookUser(s.SenderID)
	if err != nil {
		log.Printf("❌ Order history lookup failed for %s: %v", s.SenderID, err)
		e.send(s, OrderFailureMessage())
		return
	}
	e.sendReplies(s, OrderHistoryMessage(orders), MainMenuReplies())
}

func (e *ConversationEngine) send(s *models.ChatSession, text string) {
	if err := e.sender.SendText(s.SenderID, text); err != nil {
		log.Printf("❌ Failed to reply to %s (state=%s): %v", s.SenderID, s.State, err)
	}
}

func (e *ConversationEngine) sendReplies(s *models.ChatSession, text string, replies []models.QuickReply) {
	if err := e.sender.SendQuickReplies(s.SenderID, text, replies); err != nil {
		log.Printf("❌ Failed to reply to %s (state=%s): %v", s.SenderID, s.State, err)
	}
}

func matchColorOption(product *models.Product, text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, color := range product.ColorOptions() {
		if strings.ToLower(color) == t {
			return color
		}
	}
	return ""
}
