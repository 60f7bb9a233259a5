package bots

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ziadkadry99/shop-relay/internal/messaging"
	"github.com/ziadkadry99/shop-relay/internal/shop"
)

const helpFormat = "พิมพ์คำว่า '%s' เพื่อเข้าสู่หน้าเว็บไซต์ หรือ '%s' เพื่อเช็คว่าร้านเปิดอยู่ไหมครับ 😊"

// HelpText renders the fallback reply listing the recognized commands.
func HelpText(c Commands) string {
	return fmt.Sprintf(helpFormat, c.Order, c.Status)
}

// Commands holds the exact-match trigger phrases.
type Commands struct {
	Order  string
	Status string
}

// StatusResponder renders status-dependent replies.
type StatusResponder interface {
	Respond(ctx context.Context, mode shop.Mode, userID string) string
}

// Router dispatches inbound text events to a reply and sends it.
type Router struct {
	commands  Commands
	responder StatusResponder
	gateway   messaging.Gateway
	logger    *slog.Logger
}

// NewRouter creates a Router.
func NewRouter(commands Commands, responder StatusResponder, gateway messaging.Gateway, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		commands:  commands,
		responder: responder,
		gateway:   gateway,
		logger:    logger,
	}
}

// Reply returns the reply for ev. It reports false for events that get no
// reply (anything that is not a text message).
//
// Intent is decided on the trimmed text:
//   - order trigger -> order link, or closed notice
//   - status trigger -> open/closed/error notice
//   - anything else -> help text
func (r *Router) Reply(ctx context.Context, ev InboundEvent) (messaging.OutboundMessage, bool) {
	if !ev.IsText() {
		return messaging.OutboundMessage{}, false
	}

	var text string
	switch strings.TrimSpace(ev.Text) {
	case r.commands.Order:
		text = r.responder.Respond(ctx, shop.ModeOrderOrRedirect, ev.SourceUserID)
	case r.commands.Status:
		text = r.responder.Respond(ctx, shop.ModeStatusOnly, ev.SourceUserID)
	default:
		text = HelpText(r.commands)
	}
	return messaging.Reply(ev.ReplyToken, text), true
}

// Dispatch processes the delivery's events sequentially, in order. Each
// event runs behind its own recovery boundary: a failed or panicking event
// is logged and the next one still runs. It returns the number of replies
// delivered.
func (r *Router) Dispatch(ctx context.Context, d Delivery) int {
	logger := r.logger.With(slog.String("delivery_id", d.ID))
	if d.Dropped > 0 {
		logger.WarnContext(ctx, "dropped malformed webhook events", slog.Int("dropped", d.Dropped))
	}

	sent := 0
	for i, ev := range d.Events {
		if r.process(ctx, logger.With(slog.Int("event_index", i)), ev) {
			sent++
		}
	}
	return sent
}

func (r *Router) process(ctx context.Context, logger *slog.Logger, ev InboundEvent) (ok bool) {
	defer func() {
		if p := recover(); p != nil {
			logger.ErrorContext(ctx, "webhook event panicked", slog.Any("panic", p))
			ok = false
		}
	}()

	msg, reply := r.Reply(ctx, ev)
	if !reply {
		logger.DebugContext(ctx, "ignoring webhook event",
			slog.String("type", ev.Type),
			slog.String("message_type", ev.MessageType))
		return false
	}

	if err := r.gateway.Send(ctx, msg); err != nil {
		logger.ErrorContext(ctx, "reply delivery failed",
			slog.String("user_id", ev.SourceUserID),
			slog.Any("error", err))
		return false
	}

	logger.InfoContext(ctx, "reply sent",
		slog.String("user_id", ev.SourceUserID),
		slog.String("text", strings.TrimSpace(ev.Text)))
	return true
}
