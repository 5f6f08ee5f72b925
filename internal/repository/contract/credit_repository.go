// FILE: internal/repository/contract/credit_repository.go
package contract

import (
	"context"

	"fitbook-be/internal/entity"
	"fitbook-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CreditRepository interface {
	// Transactions (append-only ledger)
	CreateTransaction(ctx context.Context, tx *entity.CreditTransaction) error
	FindOneTransaction(ctx context.Context, specs ...specification.Specification) (*entity.CreditTransaction, error)
	FindAllTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error)

	// SumForUser returns the signed sum of all ledger entries for a user,
	// used to verify the cached balance.
	SumForUser(ctx context.Context, userId uuid.UUID) (int64, error)

	// Purchases
	CreatePurchase(ctx context.Context, purchase *entity.CreditPurchase) error
	UpdatePurchase(ctx context.Context, purchase *entity.CreditPurchase) error
	FindOnePurchase(ctx context.Context, specs ...specification.Specification) (*entity.CreditPurchase, error)
}
