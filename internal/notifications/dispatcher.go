package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ziadkadry99/shop-relay/internal/messaging"
)

// TestNotificationText is pushed by the test endpoint.
const TestNotificationText = "🔔 ทดสอบการแจ้งเตือนจากร้าน\nหากได้รับข้อความนี้ แสดงว่าระบบแจ้งเตือนพร้อมใช้งานแล้วค่ะ ✅"

// Notifier formats order notifications and pushes them to LINE users.
// It makes exactly one delivery attempt per call.
type Notifier struct {
	gateway     messaging.Gateway
	adminUserID string
	logger      *slog.Logger
}

// NewNotifier creates a Notifier. adminUserID may be empty, in which case
// admin notifications fail with ErrNotConfigured.
func NewNotifier(gateway messaging.Gateway, adminUserID string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		gateway:     gateway,
		adminUserID: strings.TrimSpace(adminUserID),
		logger:      logger,
	}
}

// NotifyOrderStatus pushes a status update to the order's customer.
func (n *Notifier) NotifyOrderStatus(ctx context.Context, req OrderStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	text := FormatOrderStatus(req.Status, string(req.OrderNumber), req.OrderTotal)
	if err := n.push(ctx, req.LineUserID, text); err != nil {
		return err
	}
	n.logger.InfoContext(ctx, "order status notification sent",
		slog.String("user_id", req.LineUserID),
		slog.String("order_number", string(req.OrderNumber)),
		slog.String("status", req.Status))
	return nil
}

// NotifyAdminOrder pushes a new-order summary to the configured admin.
func (n *Notifier) NotifyAdminOrder(ctx context.Context, req AdminOrderRequest) error {
	if n.adminUserID == "" {
		return fmt.Errorf("%w: admin LINE user ID", ErrNotConfigured)
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := n.push(ctx, n.adminUserID, FormatAdminOrder(req)); err != nil {
		return err
	}
	n.logger.InfoContext(ctx, "admin order notification sent",
		slog.String("order_id", string(req.OrderID)),
		slog.Int("items", len(req.Items)))
	return nil
}

// SendTest pushes a fixed test message to userID.
func (n *Notifier) SendTest(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: LINE User ID is required", ErrValidation)
	}
	return n.push(ctx, userID, TestNotificationText)
}

func (n *Notifier) push(ctx context.Context, userID, text string) error {
	if err := n.gateway.Send(ctx, messaging.Push(userID, text)); err != nil {
		n.logger.ErrorContext(ctx, "push notification failed",
			slog.String("user_id", userID),
			slog.Any("error", err))
		return err
	}
	return nil
}
