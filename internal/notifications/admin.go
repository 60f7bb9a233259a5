package notifications

import (
	"fmt"
	"strings"
)

// NoItemsText replaces the item list when an order has no items.
const NoItemsText = "- ไม่มีรายการ -"

const unspecified = "ไม่ระบุ"

var paymentLabels = map[PaymentMethod]string{
	PaymentOnline: "โอนเงิน / ชำระออนไลน์",
	PaymentCash:   "เงินสด (ชำระหน้าร้าน)",
}

// sizeLabels maps item sizes to display text. The default size is not shown.
var sizeLabels = map[string]string{
	"special": "พิเศษ",
	"large":   "พิเศษ",
	"small":   "เล็ก",
}

func isDefaultSize(size string) bool {
	switch strings.ToLower(strings.TrimSpace(size)) {
	case "", "normal", "regular", "ธรรมดา":
		return true
	}
	return false
}

// PaymentLabel returns the display text for a payment method.
func PaymentLabel(m PaymentMethod) string {
	if label, ok := paymentLabels[m]; ok {
		return label
	}
	if m == "" {
		return unspecified
	}
	return string(m)
}

// FormatAdminOrder renders the new-order summary sent to the shop admin.
func FormatAdminOrder(req AdminOrderRequest) string {
	var b strings.Builder

	b.WriteString("🛎️ มีออเดอร์ใหม่!\n")
	fmt.Fprintf(&b, "🧾 เลขที่ออเดอร์: %s\n", req.OrderID)
	if name := strings.TrimSpace(req.CustomerName); name != "" {
		fmt.Fprintf(&b, "👤 ลูกค้า: %s\n", name)
	}
	phone := strings.TrimSpace(req.CustomerPhone)
	if phone == "" {
		phone = unspecified
	}
	fmt.Fprintf(&b, "📞 เบอร์โทร: %s\n", phone)
	fmt.Fprintf(&b, "💰 ยอดรวม: %s฿\n", req.TotalAmount)
	fmt.Fprintf(&b, "💳 การชำระเงิน: %s\n", PaymentLabel(req.PaymentMethod))

	b.WriteString("\n📋 รายการอาหาร:\n")
	if len(req.Items) == 0 {
		b.WriteString(NoItemsText)
	} else {
		for i, item := range req.Items {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(formatItem(i+1, item))
		}
	}

	if note := strings.TrimSpace(req.OrderNote); note != "" {
		fmt.Fprintf(&b, "\n\n📝 หมายเหตุ: %s", note)
	}
	if slip := strings.TrimSpace(req.SlipURL); slip != "" {
		fmt.Fprintf(&b, "\n\n🧾 สลิปการโอน: %s", slip)
	}

	return b.String()
}

func formatItem(index int, item OrderItem) string {
	line := fmt.Sprintf("%d. %s x%d", index, item.Name, item.Quantity)
	if !isDefaultSize(item.Size) {
		label, ok := sizeLabels[strings.ToLower(strings.TrimSpace(item.Size))]
		if !ok {
			label = strings.TrimSpace(item.Size)
		}
		line += fmt.Sprintf(" (%s)", label)
	}
	if item.AddEgg {
		line += " (เพิ่มไข่ดาว)"
	}
	if note := strings.TrimSpace(item.Note); note != "" {
		line += fmt.Sprintf(" (หมายเหตุ: %s)", note)
	}
	return line
}
