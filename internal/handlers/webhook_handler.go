package handlers

import (
	"io"
	"net/http"

	"github.com/IsraelAraujo70/shopping-list/internal/observability"
)

// WebhookHandler accepts billing provider callbacks. Events are
// acknowledged but not acted on; billing state lives with the provider.
type WebhookHandler struct{}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler() *WebhookHandler {
	return &WebhookHandler{}
}

// StripeWebhook acknowledges a Stripe event
// @Summary Stripe webhook
// @Description Accepts Stripe webhook events
// @Tags webhooks
// @Accept json
// @Success 200 "Event acknowledged"
// @Router /api/webhook/stripe [post]
func (h *WebhookHandler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	// Drain the body so the connection can be reused
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	observability.WithField("bytes", len(body)).Debug("Stripe webhook event received")
	w.WriteHeader(http.StatusOK)
}
