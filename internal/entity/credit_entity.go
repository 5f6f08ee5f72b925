// FILE: internal/entity/credit_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type CreditDirection string
type CreditReason string
type PurchaseStatus string

const (
	CreditDirectionSpend  CreditDirection = "spend"
	CreditDirectionCredit CreditDirection = "credit"

	CreditReasonBooking           CreditReason = "booking"
	CreditReasonRefund            CreditReason = "refund"
	CreditReasonGift              CreditReason = "gift"
	CreditReasonSubscriptionGrant CreditReason = "subscription_grant"
	CreditReasonPurchase          CreditReason = "purchase"

	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
	PurchaseStatusFailed    PurchaseStatus = "failed"
)

// CreditTransaction is an immutable ledger entry. The signed sum of a user's
// entries always equals the cached balance on the user row.
type CreditTransaction struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Amount    int64
	Direction CreditDirection
	Reason    CreditReason
	Note      string

	RelatedBookingId      *uuid.UUID
	RelatedSubscriptionId *uuid.UUID
	// PeriodStart keys subscription grants to a billing cycle so a cycle is
	// never granted twice.
	PeriodStart *time.Time

	StripePaymentIntentId *string

	CreatedAt time.Time
}

// Signed returns the amount with the direction applied.
func (t *CreditTransaction) Signed() int64 {
	if t.Direction == CreditDirectionSpend {
		return -t.Amount
	}
	return t.Amount
}

// CreditPurchase is a one-time credit top-up settled through the payment
// gateway. It stays pending until the gateway confirms the payment intent.
type CreditPurchase struct {
	Id                    uuid.UUID
	UserId                uuid.UUID
	Credits               int64
	AmountPaid            int64
	Currency              string
	StripePaymentIntentId string
	Status                PurchaseStatus
	// ExpiresAt bounds how long an abandoned payment sheet may hold the
	// pending row before it can be voided.
	ExpiresAt   time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
