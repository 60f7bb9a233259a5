package bots

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the LINE webhook endpoint on the given router.
func RegisterRoutes(r chi.Router, channelSecret string, handler *WebhookHandler) {
	r.With(VerifySignature(channelSecret)).Post("/webhook", handler.HandleWebhook)
}
