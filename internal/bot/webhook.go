// internal/bot/webhook.go
package bot

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/Nikkeen22/fitness-bot/internal/payment"
)

// HandleStripeWebhook verifies and processes Stripe events. Only completed
// checkout sessions matter; everything else is acknowledged and ignored.
func (t *TelegramBot) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	if t.stripeClient == nil {
		http.Error(w, "stripe is not configured", http.StatusServiceUnavailable)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		t.logger.Errorf("read webhook body: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	event, err := t.stripeClient.VerifyWebhookSignature(body, r.Header.Get("Stripe-Signature"), t.stripeClient.GetWebhookSecret())
	if err != nil {
		t.logger.Warnf("webhook signature verification failed: %v", err)
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	if event.Type == "checkout.session.completed" {
		userID, err := payment.UserIDFromEvent(event)
		if err != nil {
			t.logger.Errorf("webhook event %s: %v", event.ID, err)
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			t.CompleteStripePayment(ctx, userID)
		}
	}

	w.WriteHeader(http.StatusOK)
}
