package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v79"
)

func stripeEvent(t *testing.T, id, eventType string, payload any) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return stripe.Event{
		ID:   id,
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestFromStripeEventInvoicePaymentSucceeded(t *testing.T) {
	ev := stripeEvent(t, "evt_1", "invoice.payment_succeeded", map[string]any{
		"billing_reason": "subscription_cycle",
		"period_start":   1735689600,
		"subscription":   map[string]any{"id": "sub_123"},
		"payment_intent": map[string]any{"id": "pi_123"},
		"customer":       map[string]any{"id": "cus_123"},
	})

	parsed, err := FromStripeEvent(ev)
	assert.NoError(t, err)

	invoice, ok := parsed.(*InvoicePaymentSucceeded)
	if assert.True(t, ok) {
		assert.Equal(t, "evt_1", invoice.EventId())
		assert.Equal(t, "subscription_cycle", invoice.BillingReason)
		assert.Equal(t, "sub_123", invoice.SubscriptionId)
		assert.Equal(t, "pi_123", invoice.PaymentIntentId)
		assert.Equal(t, "cus_123", invoice.CustomerId)
		assert.Equal(t, int64(1735689600), invoice.PeriodStart.Unix())
	}
}

func TestFromStripeEventSubscriptionUpdated(t *testing.T) {
	ev := stripeEvent(t, "evt_2", "customer.subscription.updated", map[string]any{
		"id":                   "sub_123",
		"status":               "past_due",
		"current_period_start": 1735689600,
		"current_period_end":   1738368000,
		"cancel_at_period_end": true,
		"customer":             map[string]any{"id": "cus_123"},
	})

	parsed, err := FromStripeEvent(ev)
	assert.NoError(t, err)

	updated, ok := parsed.(*SubscriptionUpdated)
	if assert.True(t, ok) {
		assert.Equal(t, "sub_123", updated.Subscription.SubscriptionId)
		assert.Equal(t, "past_due", updated.Subscription.Status)
		assert.True(t, updated.Subscription.CancelAtPeriodEnd)
	}
}

func TestFromStripeEventCheckoutSessionCompleted(t *testing.T) {
	ev := stripeEvent(t, "evt_3", "checkout.session.completed", map[string]any{
		"id":             "cs_123",
		"payment_intent": map[string]any{"id": "pi_456"},
	})

	parsed, err := FromStripeEvent(ev)
	assert.NoError(t, err)

	completed, ok := parsed.(*CheckoutSessionCompleted)
	if assert.True(t, ok) {
		assert.Equal(t, "pi_456", completed.PaymentIntentId)
	}
}

func TestFromStripeEventUnknownType(t *testing.T) {
	ev := stripeEvent(t, "evt_4", "charge.refunded", map[string]any{"id": "ch_1"})

	parsed, err := FromStripeEvent(ev)
	assert.NoError(t, err)

	_, ok := parsed.(*UnknownEvent)
	assert.True(t, ok)
	assert.Equal(t, "charge.refunded", parsed.EventType())
}
