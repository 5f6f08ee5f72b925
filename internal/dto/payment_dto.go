package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCreditPurchaseRequest struct {
	Credits  int64  `json:"credits" validate:"required,gt=0"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"required,len=3"`
}

type CreateCreditPurchaseResponse struct {
	PurchaseId   uuid.UUID `json:"purchase_id"`
	ClientSecret string    `json:"client_secret"`
	EphemeralKey string    `json:"ephemeral_key,omitempty"`
	CustomerId   string    `json:"customer_id,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type CancelCreditPurchaseRequest struct {
	PurchaseId uuid.UUID `json:"purchase_id" validate:"required"`
}

type SubscriptionResponse struct {
	Id                 uuid.UUID `json:"id"`
	Status             string    `json:"status"`
	CreditAmount       int64     `json:"credit_amount"`
	PricePerCycle      int64     `json:"price_per_cycle"`
	Currency           string    `json:"currency"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	CancelAtPeriodEnd  bool      `json:"cancel_at_period_end"`
}
