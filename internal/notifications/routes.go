package notifications

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the order notification endpoints on the given router.
func RegisterRoutes(r chi.Router, notifier *Notifier) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/notify-order-status", handleOrderStatus(notifier))
		r.Post("/notify-admin-order", handleAdminOrder(notifier))
		r.Post("/test-notification", handleTestNotification(notifier))
	})
}

// response is the JSON envelope of every notification endpoint.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

func handleOrderStatus(notifier *Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OrderStatusRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := req.Validate(); err != nil {
			writeJSON(w, http.StatusBadRequest, response{Error: "LINE User ID is required"})
			return
		}
		if err := notifier.NotifyOrderStatus(r.Context(), req); err != nil {
			writeDeliveryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, response{Success: true})
	}
}

func handleAdminOrder(notifier *Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminOrderRequest
		if !decodeBody(w, r, &req) {
			return
		}
		err := notifier.NotifyAdminOrder(r.Context(), req)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, response{Success: true})
		case errors.Is(err, ErrNotConfigured):
			writeJSON(w, http.StatusInternalServerError, response{Error: "Admin LINE user ID is not configured"})
		case errors.Is(err, ErrValidation):
			writeJSON(w, http.StatusBadRequest, response{Error: "Order ID is required"})
		default:
			writeDeliveryError(w, err)
		}
	}
}

func handleTestNotification(notifier *Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			LineUserID string `json:"lineUserId"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		err := notifier.SendTest(r.Context(), req.LineUserID)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, response{Success: true, Message: "Test notification sent"})
		case errors.Is(err, ErrValidation):
			writeJSON(w, http.StatusBadRequest, response{Error: "LINE User ID is required"})
		default:
			writeJSON(w, http.StatusInternalServerError, response{Error: err.Error()})
		}
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Error: "invalid JSON body", Details: err.Error()})
		return false
	}
	return true
}

func writeDeliveryError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, response{Error: "Failed to send notification", Details: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
