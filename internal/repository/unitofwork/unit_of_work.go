package unitofwork

import (
	"context"

	"fitbook-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	BusinessRepository() contract.BusinessRepository
	ClassRepository() contract.ClassRepository
	BookingRepository() contract.BookingRepository
	CreditRepository() contract.CreditRepository
	SubscriptionRepository() contract.SubscriptionRepository
	WebhookEventRepository() contract.WebhookEventRepository
}
