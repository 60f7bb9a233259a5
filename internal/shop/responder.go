package shop

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
)

// Mode selects how a status lookup is turned into a reply.
type Mode int

const (
	// ModeOrderOrRedirect replies with the order link when open. A failed
	// lookup is treated as closed so a customer never gets a broken link.
	ModeOrderOrRedirect Mode = iota
	// ModeStatusOnly reports the status. A failed lookup gets its own
	// error reply instead of the closed text.
	ModeStatusOnly
)

func (m Mode) String() string {
	switch m {
	case ModeOrderOrRedirect:
		return "order-or-redirect"
	case ModeStatusOnly:
		return "status-only"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Responder renders status-dependent replies.
type Responder struct {
	store        Store
	orderURL     string
	orderTrigger string
	logger       *slog.Logger
}

// NewResponder creates a Responder. orderURL is the customer order page;
// orderTrigger is quoted back in the status-only open reply.
func NewResponder(store Store, orderURL, orderTrigger string, logger *slog.Logger) *Responder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Responder{
		store:        store,
		orderURL:     orderURL,
		orderTrigger: orderTrigger,
		logger:       logger,
	}
}

// Check fetches the current status. Any store failure is wrapped in
// ErrStoreUnavailable.
func (r *Responder) Check(ctx context.Context) (Status, error) {
	st, err := r.store.Status(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return st, nil
}

// Respond returns the reply text for userID in the given mode. It never
// fails; lookup errors are logged and degraded per mode.
func (r *Responder) Respond(ctx context.Context, mode Mode, userID string) string {
	st, err := r.Check(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "shop status lookup failed",
			slog.String("mode", mode.String()),
			slog.Any("error", err))
	}

	switch mode {
	case ModeStatusOnly:
		switch {
		case err != nil:
			return StatusErrorText
		case st.IsOpen:
			return OpenStatusText(r.orderTrigger)
		default:
			return ClosedText
		}
	default:
		if err != nil || !st.IsOpen {
			return ClosedText
		}
		return OrderLinkText(OrderLink(r.orderURL, userID))
	}
}

// OrderLink appends the customer's LINE user ID to the order page URL.
func OrderLink(baseURL, userID string) string {
	return baseURL + "?lineUserId=" + url.QueryEscape(userID)
}
