// FILE: internal/entity/subscription_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive     SubscriptionStatus = "active"
	SubscriptionStatusPastDue    SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled   SubscriptionStatus = "canceled"
	SubscriptionStatusIncomplete SubscriptionStatus = "incomplete"
)

// Subscription is a recurring credit grant tied to a gateway subscription.
// Each billing cycle allocates CreditAmount credits exactly once, driven by
// the webhook settlement flow.
type Subscription struct {
	Id                   uuid.UUID
	UserId               uuid.UUID
	StripeSubscriptionId string
	StripeCustomerId     string

	CreditAmount  int64
	PricePerCycle int64
	Currency      string

	Status             SubscriptionStatus
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CancelAtPeriodEnd  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StripeEvent records a processed gateway webhook event. Its unique event id
// is what makes webhook delivery idempotent.
type StripeEvent struct {
	Id          uuid.UUID
	EventId     string
	EventType   string
	ProcessedAt time.Time
}
