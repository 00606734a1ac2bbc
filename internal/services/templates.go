package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
)

// All shopper-facing texts live here so the tone stays consistent.
// Messages are Vietnamese; payload vocabulary stays English.

// MainMenuReplies is the quick-reply set attached to the welcome message
// and to most recovery messages.
func MainMenuReplies() []models.QuickReply {
	return []models.QuickReply{
		models.TextQuickReply("🛍 Xem sản phẩm", PayloadMenuProducts),
		models.TextQuickReply("📦 Đơn hàng của tôi", PayloadViewOrders),
		models.TextQuickReply("💬 Hỗ trợ", PayloadContactSupport),
	}
}

// WelcomeMessage greets the shopper and shows the main menu.
func WelcomeMessage() (string, []models.QuickReply) {
	text := "👋 Chào mừng bạn đến với CaseFone!\n\n" +
		"Shop chuyên ốp lưng và phụ kiện điện thoại chính hãng.\n\n" +
		"Bạn muốn làm gì hôm nay?"
	return text, MainMenuReplies()
}

// ProductListMessage renders the catalog as tappable product chips.
func ProductListMessage(products []*models.Product) (string, []models.QuickReply) {
	if len(products) == 0 {
		return "😔 Shop tạm hết hàng, bạn quay lại sau nhé!", MainMenuReplies()
	}

	var b strings.Builder
	b.WriteString("🛍 *Sản phẩm đang có:*\n\n")
	var replies []models.QuickReply
	for _, p := range products {
		fmt.Fprintf(&b, "%s %s — %s\n", p.Emoji, p.Name, FormatVND(p.Price))
		title := p.Name
		if p.Emoji != "" {
			title = p.Emoji + " " + p.Name
		}
		replies = append(replies, models.TextQuickReply(title, ProductPayload(p.ID)))
	}
	b.WriteString("\n👇 Chọn sản phẩm bạn thích:")
	return b.String(), replies
}

// BrandListMessage asks the shopper which device brand they use.
func BrandListMessage(brands []string) (string, []models.QuickReply) {
	var replies []models.QuickReply
	for _, brand := range brands {
		replies = append(replies, models.TextQuickReply(brand, BrandPayload(brand)))
	}
	return "📱 Bạn đang dùng điện thoại hãng nào?", replies
}

// BrandEmptyMessage re-prompts when the chosen brand has no models.
func BrandEmptyMessage(brand string, brands []string) (string, []models.QuickReply) {
	_, replies := BrandListMessage(brands)
	return fmt.Sprintf("😔 Hãng %s hiện chưa có mẫu nào, bạn chọn hãng khác nhé:", brand), replies
}

// PhoneModelListMessage lists the models of one brand.
func PhoneModelListMessage(brand string, phoneModels []*models.PhoneModel) (string, []models.QuickReply) {
	var replies []models.QuickReply
	for _, pm := range phoneModels {
		title := pm.Name
		if pm.IsPopular {
			title = "🔥 " + title
		}
		replies = append(replies, models.TextQuickReply(title, PhoneModelPayload(pm.ID)))
	}
	return fmt.Sprintf("📱 Chọn dòng máy %s của bạn:", brand), replies
}

// ColorListMessage lists the color options of the selected product.
func ColorListMessage(product *models.Product) (string, []models.QuickReply) {
	var replies []models.QuickReply
	for _, color := range product.ColorOptions() {
		replies = append(replies, models.TextQuickReply(color, ColorPayload(color)))
	}
	return fmt.Sprintf("🎨 *%s* có các màu sau, bạn chọn màu nhé:", product.Name), replies
}

// QuantityPrompt asks for the order quantity.
func QuantityPrompt() string {
	return "🔢 Bạn muốn mua bao nhiêu cái? (nhập số từ 1 đến 99)"
}

// InvalidQuantityMessage re-prompts after a bad quantity.
func InvalidQuantityMessage() string {
	return "❌ Số lượng không hợp lệ. Vui lòng nhập một số từ 1 đến 99."
}

// NamePrompt asks for the shopper's name.
func NamePrompt() string {
	return "📝 Bạn cho shop xin tên người nhận nhé:"
}

// InvalidNameMessage re-prompts after a bad name.
func InvalidNameMessage() string {
	return "❌ Tên chưa hợp lệ (2-100 ký tự). Bạn nhập lại giúp shop nhé:"
}

// PhonePrompt asks for the contact number.
func PhonePrompt() string {
	return "📞 Số điện thoại liên hệ của bạn là gì?"
}

// InvalidPhoneMessage re-prompts after a bad phone number.
func InvalidPhoneMessage() string {
	return "❌ Số điện thoại chưa đúng. Bạn nhập số di động Việt Nam nhé (VD: 0912345678):"
}

// AddressPrompt asks for the shipping address.
func AddressPrompt() string {
	return "🏠 Bạn cho shop xin địa chỉ giao hàng đầy đủ nhé:"
}

// InvalidAddressMessage re-prompts after a bad address.
func InvalidAddressMessage() string {
	return "❌ Địa chỉ quá ngắn (tối thiểu 10 ký tự). Bạn nhập địa chỉ đầy đủ giúp shop nhé:"
}

// OrderSummaryMessage shows the confirmation summary with confirm/cancel chips.
func OrderSummaryMessage(s *models.ChatSession) (string, []models.QuickReply) {
	var b strings.Builder
	b.WriteString("🧾 *Xác nhận đơn hàng*\n\n")
	if s.SelectedProduct != nil {
		fmt.Fprintf(&b, "%s Sản phẩm: %s\n", s.SelectedProduct.Emoji, s.SelectedProduct.Name)
		if s.SelectedPhoneModel != nil {
			fmt.Fprintf(&b, "📱 Dòng máy: %s\n", s.SelectedPhoneModel.Label())
		}
		if s.Color != "" {
			fmt.Fprintf(&b, "🎨 Màu: %s\n", s.Color)
		}
		fmt.Fprintf(&b, "🔢 Số lượng: %d\n", s.Quantity)
		fmt.Fprintf(&b, "💰 Tổng tiền: %s\n", FormatVND(s.SelectedProduct.Price*float64(s.Quantity)))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "👤 Người nhận: %s\n", s.CustomerName)
	fmt.Fprintf(&b, "📞 SĐT: %s\n", s.Phone)
	fmt.Fprintf(&b, "🏠 Địa chỉ: %s\n\n", s.Address)
	b.WriteString("Bạn xác nhận đặt hàng chứ?")

	replies := []models.QuickReply{
		models.TextQuickReply("✅ Xác nhận", PayloadConfirmOrder),
		models.TextQuickReply("❌ Hủy", PayloadCancelOrder),
	}
	return b.String(), replies
}

// OrderSuccessMessage confirms the committed order and shows the
// post-purchase menu.
func OrderSuccessMessage(order *models.Order) (string, []models.QuickReply) {
	text := fmt.Sprintf("🎉 Đặt hàng thành công!\n\n"+
		"Mã đơn hàng: *%s*\n"+
		"Tổng tiền: %s\n\n"+
		"Shop sẽ liên hệ bạn sớm để xác nhận giao hàng. Cảm ơn bạn đã ủng hộ! 💛",
		order.OrderNumber, FormatVND(order.TotalPrice))
	return text, MainMenuReplies()
}

// OrderFailureMessage is the generic commit-failure reply. The session is
// kept so the shopper can retry the confirmation.
func OrderFailureMessage() string {
	return "😥 Rất tiếc, hệ thống đang gặp sự cố nên chưa ghi nhận được đơn hàng.\n\n" +
		"Bạn thử bấm Xác nhận lại sau ít phút, hoặc nhắn \"hỗ trợ\" để shop xử lý trực tiếp nhé."
}

// OutOfStockMessage is shown when the stock ran out between selection and
// confirmation.
func OutOfStockMessage() (string, []models.QuickReply) {
	return "😔 Rất tiếc, sản phẩm vừa hết hàng trong lúc bạn đặt. Bạn chọn sản phẩm khác nhé!", MainMenuReplies()
}

// OrderCancelledMessage acknowledges a cancellation.
func OrderCancelledMessage() (string, []models.QuickReply) {
	return "🗑 Đã hủy đơn hàng đang đặt. Bạn cần gì cứ nhắn shop nhé!", MainMenuReplies()
}

// IncompleteOrderMessage explains the defensive abort back to product
// selection when a confirm arrives with missing fields.
func IncompleteOrderMessage() string {
	return "⚠️ Đơn hàng của bạn bị thiếu thông tin nên shop chưa thể xác nhận.\nMình bắt đầu lại từ bước chọn sản phẩm nhé:"
}

// SupportMessage returns the support contact info.
func SupportMessage() string {
	return "💬 *Hỗ trợ khách hàng*\n\n" +
		"📞 Hotline: 0901 234 567 (8h-21h)\n" +
		"📧 Email: hotro@casefone.vn\n\n" +
		"Bạn cũng có thể nhắn tin trực tiếp tại đây, shop sẽ trả lời sớm nhất!"
}

// OrderHistoryMessage renders the shopper's past orders, newest first.
func OrderHistoryMessage(orders []*models.Order) string {
	if len(orders) == 0 {
		return "📦 Bạn chưa có đơn hàng nào. Nhắn \"sản phẩm\" để xem shop có gì nhé!"
	}

	var b strings.Builder
	b.WriteString("📦 *Đơn hàng của bạn:*\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "\n🧾 %s — %s\n", o.OrderNumber, FormatVND(o.TotalPrice))
		for _, item := range o.Items {
			fmt.Fprintf(&b, "   • %s x%d", item.ProductName, item.Quantity)
			if item.Color != "" {
				fmt.Fprintf(&b, " (%s)", item.Color)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "   Trạng thái: %s\n", orderStatusLabel(o.Status))
	}
	return b.String()
}

// CatalogUnavailableMessage is the friendly reply when no catalog snapshot
// exists and the repository is down.
func CatalogUnavailableMessage() string {
	return "😥 Shop đang gặp chút trục trặc, bạn vui lòng thử lại sau vài phút nhé!"
}

// ProductGoneMessage is shown when a tapped product is no longer in the
// catalog.
func ProductGoneMessage() string {
	return "😔 Sản phẩm này hiện không còn bán. Bạn xem các sản phẩm khác nhé:"
}

func orderStatusLabel(status string) string {
	switch status {
	case models.OrderStatusPending:
		return "⏳ Chờ xác nhận"
	case models.OrderStatusConfirmed:
		return "✅ Đã xác nhận"
	case models.OrderStatusShipped:
		return "🚚 Đang giao"
	case models.OrderStatusDelivered:
		return "📬 Đã giao"
	case models.OrderStatusCancelled:
		return "🗑 Đã hủy"
	default:
		return status
	}
}

// FormatVND renders a price with dot thousand separators, e.g. "150.000đ".
func FormatVND(amount float64) string {
	digits := strconv.FormatInt(int64(amount), 10)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := b.String() + "đ"
	if negative {
		out = "-" + out
	}
	return out
}
