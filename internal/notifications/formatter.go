package notifications

import "fmt"

// Order status codes. Each status has a Thai-shop token and an English synonym.
const (
	StatusAccepted  = "accepted"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
	StatusDeclined  = "declined"
	StatusPreparing = "preparing"
	StatusCooking   = "cooking"
	StatusReady     = "ready"
)

// FormatOrderStatus renders the customer-facing message for a status change.
// Unknown codes are echoed back with the total.
func FormatOrderStatus(status, orderNumber string, total Amount) string {
	switch status {
	case StatusAccepted, StatusConfirmed:
		return fmt.Sprintf("✅ ออเดอร์ #%s ได้รับการยืนยันแล้ว!\n💰 ยอดรวม: %s฿", orderNumber, total)
	case StatusRejected, StatusDeclined:
		return fmt.Sprintf("❌ ออเดอร์ #%s ถูกปฏิเสธ\nขออภัยในความไม่สะดวกค่ะ 🙏", orderNumber)
	case StatusPreparing, StatusCooking:
		return fmt.Sprintf("👨‍🍳 ออเดอร์ #%s กำลังเตรียมอาหาร", orderNumber)
	case StatusReady:
		return fmt.Sprintf("🎉 ออเดอร์ #%s พร้อมแล้ว! มารับได้เลยค่ะ 🍱\n💰 ยอดรวม: %s฿", orderNumber, total)
	default:
		return fmt.Sprintf("📋 สถานะออเดอร์ #%s: %s\n💰 ยอดรวม: %s฿", orderNumber, status, total)
	}
}
