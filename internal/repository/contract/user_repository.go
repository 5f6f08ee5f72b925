// FILE: internal/repository/contract/user_repository.go
package contract

import (
	"context"

	"fitbook-be/internal/entity"
	"fitbook-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context) (int64, error)

	// DebitCredits atomically subtracts amount from the cached balance,
	// guarded by balance >= amount. Returns false when the guard fails, so
	// concurrent spends can never overdraw.
	DebitCredits(ctx context.Context, userId uuid.UUID, amount int64) (bool, error)

	// AddCredits atomically adds amount to the cached balance.
	AddCredits(ctx context.Context, userId uuid.UUID, amount int64) error
}
