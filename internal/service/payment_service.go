// FILE: internal/service/payment_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"fitbook-be/internal/apperr"
	"fitbook-be/internal/dto"
	"fitbook-be/internal/entity"
	"fitbook-be/internal/repository/specification"
	"fitbook-be/internal/repository/unitofwork"
	"fitbook-be/pkg/events"
	"fitbook-be/pkg/gateway"
	pktNats "fitbook-be/pkg/nats"

	"github.com/google/uuid"
)

// pendingPurchaseTTL bounds how long an abandoned payment sheet may hold a
// pending purchase row.
const pendingPurchaseTTL = 30 * time.Minute

type IPaymentService interface {
	CreateCreditPurchase(ctx context.Context, userId uuid.UUID, req *dto.CreateCreditPurchaseRequest) (*dto.CreateCreditPurchaseResponse, error)
	CancelCreditPurchase(ctx context.Context, userId uuid.UUID, purchaseId uuid.UUID) error
	SubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	HandleEvent(ctx context.Context, event gateway.Event) error
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	ledger         creditLedger
	gateway        gateway.Gateway
	webhookSecret  string
	eventPublisher *pktNats.Publisher
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	gw gateway.Gateway,
	webhookSecret string,
	eventPublisher *pktNats.Publisher,
) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		gateway:        gw,
		webhookSecret:  webhookSecret,
		eventPublisher: eventPublisher,
	}
}

func (s *paymentService) CreateCreditPurchase(ctx context.Context, userId uuid.UUID, req *dto.CreateCreditPurchaseRequest) (*dto.CreateCreditPurchaseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}

	if user.StripeCustomerId == nil {
		customer, err := s.gateway.CreateCustomer(ctx, user.Email, user.FullName)
		if err != nil {
			return nil, err
		}
		user.StripeCustomerId = &customer.Id
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	}

	purchaseId := uuid.New()
	intent, err := s.gateway.CreatePaymentIntent(ctx, *user.StripeCustomerId, req.Amount, req.Currency, map[string]string{
		"purchase_id": purchaseId.String(),
		"user_id":     userId.String(),
	})
	if err != nil {
		return nil, err
	}

	ephemeralKey, err := s.gateway.CreateEphemeralKey(ctx, *user.StripeCustomerId)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(pendingPurchaseTTL)
	purchase := &entity.CreditPurchase{
		Id:                    purchaseId,
		UserId:                userId,
		Credits:               req.Credits,
		AmountPaid:            req.Amount,
		Currency:              req.Currency,
		StripePaymentIntentId: intent.Id,
		Status:                entity.PurchaseStatusPending,
		ExpiresAt:             expiresAt,
		CreatedAt:             time.Now(),
	}
	if err := uow.CreditRepository().CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}

	return &dto.CreateCreditPurchaseResponse{
		PurchaseId:   purchase.Id,
		ClientSecret: intent.ClientSecret,
		EphemeralKey: ephemeralKey,
		CustomerId:   *user.StripeCustomerId,
		ExpiresAt:    expiresAt,
	}, nil
}

// CancelCreditPurchase voids an abandoned checkout: both the gateway intent
// and the internal pending row, so no capacity or balance is held by a
// payment sheet nobody finished.
func (s *paymentService) CancelCreditPurchase(ctx context.Context, userId uuid.UUID, purchaseId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	purchase, err := uow.CreditRepository().FindOnePurchase(ctx,
		specification.ByID{ID: purchaseId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if purchase == nil {
		return apperr.NotFound("credit_purchase")
	}
	if purchase.Status != entity.PurchaseStatusPending {
		return apperr.ActionNotAllowed("purchase is no longer pending")
	}

	if err := s.gateway.CancelPaymentIntent(ctx, purchase.StripePaymentIntentId); err != nil {
		return err
	}

	purchase.Status = entity.PurchaseStatusCancelled
	return uow.CreditRepository().UpdatePurchase(ctx, purchase)
}

// SubscriptionStatus returns the member's most recent subscription.
func (s *paymentService) SubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperr.NotFound("subscription")
	}

	return &dto.SubscriptionResponse{
		Id:                 sub.Id,
		Status:             string(sub.Status),
		CreditAmount:       sub.CreditAmount,
		PricePerCycle:      sub.PricePerCycle,
		Currency:           sub.Currency,
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
	}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := gateway.ParseEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return apperr.Unauthorized("invalid webhook signature")
	}
	return s.HandleEvent(ctx, event)
}

// HandleEvent settles one gateway event. The processed-event record and all
// state changes commit in the same transaction, so a redelivered event is a
// silent no-op and a crashed delivery is retried cleanly by the gateway.
func (s *paymentService) HandleEvent(ctx context.Context, event gateway.Event) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	seen, err := uow.WebhookEventRepository().Exists(ctx, event.EventId())
	if err != nil {
		return err
	}
	if seen {
		return nil
	}
	if err := uow.WebhookEventRepository().Record(ctx, event.EventId(), event.EventType()); err != nil {
		return err
	}

	switch ev := event.(type) {
	case *gateway.InvoicePaymentSucceeded:
		err = s.settleInvoicePaid(ctx, uow, ev)
	case *gateway.InvoicePaymentFailed:
		err = s.settleInvoiceFailed(ctx, uow, ev)
	case *gateway.SubscriptionCreated:
		err = s.settleSubscriptionCreated(ctx, uow, ev)
	case *gateway.SubscriptionUpdated:
		err = s.syncSubscription(ctx, uow, ev.Subscription)
	case *gateway.SubscriptionDeleted:
		err = s.settleSubscriptionDeleted(ctx, uow, ev)
	case *gateway.CheckoutSessionCompleted:
		_, err = s.ledger.completePurchase(ctx, uow, ev.PaymentIntentId)
	case *gateway.PaymentIntentFailed:
		err = s.settlePaymentFailed(ctx, uow, ev)
	case *gateway.UnknownEvent:
		// Recorded and skipped on purpose.
	default:
		err = fmt.Errorf("unhandled gateway event type %T", event)
	}
	if err != nil {
		return err
	}

	return uow.Commit()
}

// settleInvoicePaid allocates the per-cycle subscription grant. Only
// subscription_cycle renewals and the first-time subscription_create invoice
// allocate; proration and update invoices never do, the synchronous update
// path already granted those credits.
func (s *paymentService) settleInvoicePaid(ctx context.Context, uow unitofwork.UnitOfWork, ev *gateway.InvoicePaymentSucceeded) error {
	if ev.SubscriptionId == "" {
		return nil
	}

	sub, err := uow.SubscriptionRepository().FindOne(ctx,
		specification.Filter("stripe_subscription_id", ev.SubscriptionId),
	)
	if err != nil {
		return err
	}
	if sub == nil {
		fmt.Printf("[WARN] Invoice %s references unknown subscription %s\n", ev.EventId(), ev.SubscriptionId)
		return nil
	}

	switch ev.BillingReason {
	case "subscription_cycle":
		// renewals always allocate
	case "subscription_create":
		// first invoice only: skip if this cycle was already granted
		existing, err := uow.CreditRepository().FindOneTransaction(ctx,
			specification.Filter("related_subscription_id", sub.Id),
			specification.Filter("period_start", ev.PeriodStart),
		)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
	default:
		return nil
	}

	periodStart := ev.PeriodStart
	_, err = s.ledger.grant(ctx, uow, sub.UserId, sub.CreditAmount, entity.CreditReasonSubscriptionGrant,
		"subscription billing cycle", grantOptions{
			relatedSubscriptionId: &sub.Id,
			periodStart:           &periodStart,
		})
	if err != nil {
		return err
	}

	sub.Status = entity.SubscriptionStatusActive
	sub.CurrentPeriodStart = ev.PeriodStart
	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		evt := events.NewCreditsGranted(map[string]interface{}{
			"user_id": sub.UserId,
			"amount":  sub.CreditAmount,
			"reason":  string(entity.CreditReasonSubscriptionGrant),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish CREDITS_GRANTED event: %v\n", err)
		}
	}
	return nil
}

func (s *paymentService) settleInvoiceFailed(ctx context.Context, uow unitofwork.UnitOfWork, ev *gateway.InvoicePaymentFailed) error {
	if ev.SubscriptionId == "" {
		return nil
	}

	sub, err := uow.SubscriptionRepository().FindOne(ctx,
		specification.Filter("stripe_subscription_id", ev.SubscriptionId),
	)
	if err != nil {
		return err
	}
	if sub == nil {
		return nil
	}

	sub.Status = entity.SubscriptionStatusPastDue
	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		evt := events.NewPaymentFailed(map[string]interface{}{
			"user_id":         sub.UserId,
			"subscription_id": sub.Id,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish PAYMENT_FAILED event: %v\n", err)
		}
	}
	return nil
}

// settleSubscriptionCreated backfills the subscription row when the
// synchronous checkout path has not written it yet, matched to a user by the
// gateway customer id. The credit amount per cycle is set by the checkout
// path; a backfilled row starts at zero until that write lands.
func (s *paymentService) settleSubscriptionCreated(ctx context.Context, uow unitofwork.UnitOfWork, ev *gateway.SubscriptionCreated) error {
	existing, err := uow.SubscriptionRepository().FindOne(ctx,
		specification.Filter("stripe_subscription_id", ev.Subscription.SubscriptionId),
	)
	if err != nil {
		return err
	}
	if existing != nil {
		return s.syncSubscription(ctx, uow, ev.Subscription)
	}

	user, err := uow.UserRepository().FindOne(ctx,
		specification.Filter("stripe_customer_id", ev.Subscription.CustomerId),
	)
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Printf("[WARN] Subscription %s created for unknown customer %s\n",
			ev.Subscription.SubscriptionId, ev.Subscription.CustomerId)
		return nil
	}

	sub := &entity.Subscription{
		Id:                   uuid.New(),
		UserId:               user.Id,
		StripeSubscriptionId: ev.Subscription.SubscriptionId,
		StripeCustomerId:     ev.Subscription.CustomerId,
		Status:               entity.SubscriptionStatus(ev.Subscription.Status),
		CurrentPeriodStart:   ev.Subscription.PeriodStart,
		CurrentPeriodEnd:     ev.Subscription.PeriodEnd,
		CancelAtPeriodEnd:    ev.Subscription.CancelAtPeriodEnd,
		CreatedAt:            time.Now(),
	}
	return uow.SubscriptionRepository().Create(ctx, sub)
}

// syncSubscription mirrors gateway-side subscription state. Rows are created
// by the synchronous checkout path; the webhook only reconciles drift.
func (s *paymentService) syncSubscription(ctx context.Context, uow unitofwork.UnitOfWork, state gateway.SubscriptionState) error {
	sub, err := uow.SubscriptionRepository().FindOne(ctx,
		specification.Filter("stripe_subscription_id", state.SubscriptionId),
	)
	if err != nil {
		return err
	}
	if sub == nil {
		fmt.Printf("[WARN] Gateway event for unknown subscription %s\n", state.SubscriptionId)
		return nil
	}

	sub.Status = entity.SubscriptionStatus(state.Status)
	sub.CurrentPeriodStart = state.PeriodStart
	sub.CurrentPeriodEnd = state.PeriodEnd
	sub.CancelAtPeriodEnd = state.CancelAtPeriodEnd
	return uow.SubscriptionRepository().Update(ctx, sub)
}

func (s *paymentService) settleSubscriptionDeleted(ctx context.Context, uow unitofwork.UnitOfWork, ev *gateway.SubscriptionDeleted) error {
	sub, err := uow.SubscriptionRepository().FindOne(ctx,
		specification.Filter("stripe_subscription_id", ev.SubscriptionId),
	)
	if err != nil {
		return err
	}
	if sub == nil {
		return nil
	}

	sub.Status = entity.SubscriptionStatusCanceled
	return uow.SubscriptionRepository().Update(ctx, sub)
}

func (s *paymentService) settlePaymentFailed(ctx context.Context, uow unitofwork.UnitOfWork, ev *gateway.PaymentIntentFailed) error {
	purchase, err := uow.CreditRepository().FindOnePurchase(ctx,
		specification.Filter("stripe_payment_intent_id", ev.PaymentIntentId),
	)
	if err != nil {
		return err
	}
	if purchase == nil || purchase.Status != entity.PurchaseStatusPending {
		return nil
	}

	purchase.Status = entity.PurchaseStatusFailed
	return uow.CreditRepository().UpdatePurchase(ctx, purchase)
}
