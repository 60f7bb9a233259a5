package shop

import "fmt"

// Reply texts sent back to customers in the chat.
const (
	ClosedText      = "ตอนนี้ร้านปิดแล้วค่ะ 🛑\nโปรดกลับมาสั่งอีกครั้งเมื่อร้านเปิดนะคะ 😊"
	StatusErrorText = "⚠️ ขออภัยค่ะ ไม่สามารถตรวจสอบสถานะร้านได้ในขณะนี้\nกรุณาลองใหม่อีกครั้งภายหลังนะคะ"

	orderLinkFormat  = "กดที่ลิงก์นี้เพื่อสั่งอาหาร 🍛\n👉 %s"
	openStatusFormat = "✅ ตอนนี้ร้านเปิดอยู่ค่ะ\nพิมพ์ '%s' เพื่อสั่งอาหารได้เลย 😊"
)

// OrderLinkText renders the reply carrying the customer's order link.
func OrderLinkText(link string) string {
	return fmt.Sprintf(orderLinkFormat, link)
}

// OpenStatusText renders the status-only reply for an open shop.
func OpenStatusText(orderTrigger string) string {
	return fmt.Sprintf(openStatusFormat, orderTrigger)
}
