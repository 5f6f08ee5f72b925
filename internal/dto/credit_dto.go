package dto

import (
	"time"

	"fitbook-be/internal/entity"

	"github.com/google/uuid"
)

type CreditBalanceResponse struct {
	Balance int64 `json:"balance"`
}

type CreditTransactionResponse struct {
	Id        uuid.UUID              `json:"id"`
	Amount    int64                  `json:"amount"`
	Direction entity.CreditDirection `json:"direction"`
	Reason    entity.CreditReason    `json:"reason"`
	Note      string                 `json:"note,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// CreditMutationResponse reports the ledger entry a spend or grant wrote and
// the balance it left behind, so callers never need a follow-up read.
type CreditMutationResponse struct {
	TransactionId uuid.UUID `json:"transaction_id"`
	Amount        int64     `json:"amount"`
	Balance       int64     `json:"balance"`
}

type GiftCreditsRequest struct {
	UserId uuid.UUID `json:"user_id" validate:"required"`
	Amount int64     `json:"amount" validate:"required,gt=0"`
	Note   string    `json:"note"`
}
