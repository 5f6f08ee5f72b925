// FILE: internal/service/credit_ledger.go
package service

import (
	"context"
	"time"

	"fitbook-be/internal/apperr"
	"fitbook-be/internal/entity"
	"fitbook-be/internal/repository/specification"
	"fitbook-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// creditLedger holds the balance-mutation primitives. Every method takes the
// caller's unit of work so a booking debit, the booking insert and the
// counter bump commit or roll back together. Only this code touches the
// cached balance column.
type creditLedger struct{}

type grantOptions struct {
	relatedBookingId      *uuid.UUID
	relatedSubscriptionId *uuid.UUID
	periodStart           *time.Time
	paymentIntentId       *string
}

// spend writes one debit ledger entry and decrements the cached balance.
// The balance check and the decrement are a single conditional UPDATE, so
// two concurrent spends can never both succeed on one amount's worth of
// credit.
func (creditLedger) spend(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, amount int64, reason entity.CreditReason, note string, relatedBookingId *uuid.UUID) (*entity.CreditTransaction, error) {
	ok, err := uow.UserRepository().DebitCredits(ctx, userId, amount)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.InsufficientCredits()
	}

	tx := &entity.CreditTransaction{
		Id:               uuid.New(),
		UserId:           userId,
		Amount:           amount,
		Direction:        entity.CreditDirectionSpend,
		Reason:           reason,
		Note:             note,
		RelatedBookingId: relatedBookingId,
		CreatedAt:        time.Now(),
	}
	if err := uow.CreditRepository().CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// grant writes one credit ledger entry and increments the cached balance.
func (creditLedger) grant(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, amount int64, reason entity.CreditReason, note string, opts grantOptions) (*entity.CreditTransaction, error) {
	if amount < 0 {
		return nil, apperr.Validation("amount", "grant amount must not be negative")
	}

	if err := uow.UserRepository().AddCredits(ctx, userId, amount); err != nil {
		return nil, err
	}

	tx := &entity.CreditTransaction{
		Id:                    uuid.New(),
		UserId:                userId,
		Amount:                amount,
		Direction:             entity.CreditDirectionCredit,
		Reason:                reason,
		Note:                  note,
		RelatedBookingId:      opts.relatedBookingId,
		RelatedSubscriptionId: opts.relatedSubscriptionId,
		PeriodStart:           opts.periodStart,
		StripePaymentIntentId: opts.paymentIntentId,
		CreatedAt:             time.Now(),
	}
	if err := uow.CreditRepository().CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// completePurchase finalizes a pending one-time purchase matched by the
// gateway payment-intent id. A second call for the same id is a no-op: the
// row is already completed, so nothing is granted twice. A pending row whose
// quote has expired is marked failed instead of granting on stale pricing.
func (l creditLedger) completePurchase(ctx context.Context, uow unitofwork.UnitOfWork, paymentIntentId string) (*entity.CreditPurchase, error) {
	purchase, err := uow.CreditRepository().FindOnePurchase(ctx,
		specification.Filter("stripe_payment_intent_id", paymentIntentId),
	)
	if err != nil {
		return nil, err
	}
	if purchase == nil || purchase.Status != entity.PurchaseStatusPending {
		return nil, nil
	}

	now := time.Now()
	if !purchase.ExpiresAt.IsZero() && now.After(purchase.ExpiresAt) {
		purchase.Status = entity.PurchaseStatusFailed
		if err := uow.CreditRepository().UpdatePurchase(ctx, purchase); err != nil {
			return nil, err
		}
		return nil, nil
	}

	purchase.Status = entity.PurchaseStatusCompleted
	purchase.CompletedAt = &now
	if err := uow.CreditRepository().UpdatePurchase(ctx, purchase); err != nil {
		return nil, err
	}

	pi := purchase.StripePaymentIntentId
	_, err = l.grant(ctx, uow, purchase.UserId, purchase.Credits, entity.CreditReasonPurchase, "credit pack purchase", grantOptions{
		paymentIntentId: &pi,
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}
