// FILE: internal/repository/contract/subscription_repository.go
package contract

import (
	"context"

	"fitbook-be/internal/entity"
	"fitbook-be/internal/repository/specification"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	Update(ctx context.Context, subscription *entity.Subscription) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error)
}

type WebhookEventRepository interface {
	// Exists reports whether the gateway event id was already processed.
	Exists(ctx context.Context, eventId string) (bool, error)

	// Record stores a processed event id. A duplicate id must fail with the
	// store's unique-constraint error, making insert-then-process safe.
	Record(ctx context.Context, eventId, eventType string) error
}
