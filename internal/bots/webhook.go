package bots

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

// SignatureHeader carries the base64 HMAC-SHA256 of the body.
const SignatureHeader = "X-Line-Signature"

// maxBodyBytes bounds a webhook body read.
const maxBodyBytes = 1 << 20

// VerifySignature rejects requests whose body does not match the channel
// secret's signature. The body is restored for the next handler. An empty
// secret disables the check.
func VerifySignature(channelSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if channelSecret == "" {
				next.ServeHTTP(w, r)
				return
			}
			body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
			r.Body.Close()
			if err != nil {
				http.Error(w, "failed to read body", http.StatusBadRequest)
				return
			}
			if !webhook.ValidateSignature(channelSecret, r.Header.Get(SignatureHeader), body) {
				http.Error(w, "invalid signature", http.StatusUnauthorized)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

// WebhookHandler turns LINE webhook deliveries into replies.
type WebhookHandler struct {
	router *Router
	logger *slog.Logger
}

// NewWebhookHandler creates a webhook handler dispatching to router.
func NewWebhookHandler(router *Router, logger *slog.Logger) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandler{router: router, logger: logger}
}

// HandleWebhook processes every event in the delivery and answers 200 with
// an empty body regardless of what happened downstream; the platform
// treats any other status as an unhealthy endpoint.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	h.process(r)
	w.WriteHeader(http.StatusOK)
}

func (h *WebhookHandler) process(r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.WarnContext(r.Context(), "reading webhook body", slog.Any("error", err))
		return
	}

	delivery := ParseDelivery(body)
	if len(delivery.Events) == 0 && delivery.Dropped == 0 {
		return
	}

	sent := h.router.Dispatch(r.Context(), delivery)
	h.logger.InfoContext(r.Context(), "webhook delivery processed",
		slog.String("delivery_id", delivery.ID),
		slog.Int("events", len(delivery.Events)),
		slog.Int("replies", sent))
}
