// FILE: pkg/gateway/webhook.go
package gateway

import (
	"encoding/json"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

// Event is the tagged union of webhook payloads the settlement flow handles.
// Each variant carries only the fields the services consume, decoded once at
// the boundary instead of re-parsing raw JSON downstream.
type Event interface {
	EventId() string
	EventType() string
}

type baseEvent struct {
	id        string
	eventType string
}

func (e baseEvent) EventId() string   { return e.id }
func (e baseEvent) EventType() string { return e.eventType }

type SubscriptionState struct {
	SubscriptionId    string
	CustomerId        string
	Status            string
	PeriodStart       time.Time
	PeriodEnd         time.Time
	CancelAtPeriodEnd bool
}

type SubscriptionCreated struct {
	baseEvent
	Subscription SubscriptionState
}

type SubscriptionUpdated struct {
	baseEvent
	Subscription SubscriptionState
}

type SubscriptionDeleted struct {
	baseEvent
	SubscriptionId string
}

type InvoicePaymentSucceeded struct {
	baseEvent
	BillingReason   string
	SubscriptionId  string
	PaymentIntentId string
	CustomerId      string
	PeriodStart     time.Time
}

type InvoicePaymentFailed struct {
	baseEvent
	SubscriptionId string
	CustomerId     string
}

type CheckoutSessionCompleted struct {
	baseEvent
	PaymentIntentId string
}

type PaymentIntentFailed struct {
	baseEvent
	PaymentIntentId string
}

// UnknownEvent covers types the settlement flow ignores on purpose.
type UnknownEvent struct {
	baseEvent
}

// ParseEvent verifies the webhook signature and decodes the payload into a
// typed variant.
func ParseEvent(payload []byte, signature, secret string) (Event, error) {
	stripeEvent, err := webhook.ConstructEvent(payload, signature, secret)
	if err != nil {
		return nil, err
	}
	return FromStripeEvent(stripeEvent)
}

// FromStripeEvent maps a verified provider event to the typed union. Exposed
// separately from ParseEvent so tests can feed events without a signature.
func FromStripeEvent(event stripe.Event) (Event, error) {
	base := baseEvent{id: event.ID, eventType: string(event.Type)}

	switch string(event.Type) {
	case "customer.subscription.created":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, err
		}
		return &SubscriptionCreated{baseEvent: base, Subscription: subscriptionState(&sub)}, nil

	case "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, err
		}
		return &SubscriptionUpdated{baseEvent: base, Subscription: subscriptionState(&sub)}, nil

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, err
		}
		return &SubscriptionDeleted{baseEvent: base, SubscriptionId: sub.ID}, nil

	case "invoice.payment_succeeded":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return nil, err
		}
		out := &InvoicePaymentSucceeded{
			baseEvent:     base,
			BillingReason: string(inv.BillingReason),
			PeriodStart:   time.Unix(inv.PeriodStart, 0),
		}
		if inv.Subscription != nil {
			out.SubscriptionId = inv.Subscription.ID
		}
		if inv.PaymentIntent != nil {
			out.PaymentIntentId = inv.PaymentIntent.ID
		}
		if inv.Customer != nil {
			out.CustomerId = inv.Customer.ID
		}
		return out, nil

	case "invoice.payment_failed":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return nil, err
		}
		out := &InvoicePaymentFailed{baseEvent: base}
		if inv.Subscription != nil {
			out.SubscriptionId = inv.Subscription.ID
		}
		if inv.Customer != nil {
			out.CustomerId = inv.Customer.ID
		}
		return out, nil

	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, err
		}
		out := &CheckoutSessionCompleted{baseEvent: base}
		if session.PaymentIntent != nil {
			out.PaymentIntentId = session.PaymentIntent.ID
		}
		return out, nil

	case "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, err
		}
		return &PaymentIntentFailed{baseEvent: base, PaymentIntentId: pi.ID}, nil

	default:
		return &UnknownEvent{baseEvent: base}, nil
	}
}

func subscriptionState(sub *stripe.Subscription) SubscriptionState {
	state := SubscriptionState{
		SubscriptionId:    sub.ID,
		Status:            string(sub.Status),
		PeriodStart:       time.Unix(sub.CurrentPeriodStart, 0),
		PeriodEnd:         time.Unix(sub.CurrentPeriodEnd, 0),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}
	if sub.Customer != nil {
		state.CustomerId = sub.Customer.ID
	}
	return state
}
