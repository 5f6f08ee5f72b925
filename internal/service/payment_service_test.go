package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fitbook-be/internal/entity"
	"fitbook-be/internal/model"
	"fitbook-be/internal/repository/unitofwork"
	"fitbook-be/pkg/gateway"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"gorm.io/gorm"
)

func gatewayEvent(t *testing.T, id, eventType, payload string) gateway.Event {
	t.Helper()
	ev, err := gateway.FromStripeEvent(stripe.Event{
		ID:   id,
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: json.RawMessage(payload)},
	})
	require.NoError(t, err)
	return ev
}

func seedSubscription(t *testing.T, db *gorm.DB, userId uuid.UUID, stripeId string, creditAmount int64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&model.Subscription{
		Id:                   id,
		UserId:               userId,
		StripeSubscriptionId: stripeId,
		StripeCustomerId:     "cus_sub_test",
		CreditAmount:         creditAmount,
		PricePerCycle:        2900,
		Currency:             "usd",
		Status:               string(entity.SubscriptionStatusPastDue),
		CurrentPeriodStart:   time.Now().AddDate(0, -1, 0),
		CurrentPeriodEnd:     time.Now(),
	}).Error)
	return id
}

func TestInvoicePaidGrantsCycleCreditsExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPaymentService(unitofwork.NewRepositoryFactory(db), &fakeGateway{}, "whsec_test", nil)

	userId := seedUser(t, db, 0)
	seedSubscription(t, db, userId, "sub_1", 500)

	payload := `{"billing_reason":"subscription_cycle","period_start":1766000000,"subscription":{"id":"sub_1"},"payment_intent":{"id":"pi_inv_1"},"customer":{"id":"cus_sub_test"}}`
	ev := gatewayEvent(t, "evt_inv_1", "invoice.payment_succeeded", payload)

	require.NoError(t, svc.HandleEvent(ctx, ev))
	assert.Equal(t, int64(500), userCredits(t, db, userId))

	// The gateway redelivers; the recorded event id makes this a no-op.
	require.NoError(t, svc.HandleEvent(ctx, ev))
	assert.Equal(t, int64(500), userCredits(t, db, userId))
	assert.Equal(t, int64(500), ledgerSum(t, db, userId))

	var eventCount int64
	require.NoError(t, db.Model(&model.StripeEvent{}).Where("event_id = ?", "evt_inv_1").Count(&eventCount).Error)
	assert.Equal(t, int64(1), eventCount)

	var sub model.Subscription
	require.NoError(t, db.First(&sub, "stripe_subscription_id = ?", "sub_1").Error)
	assert.Equal(t, string(entity.SubscriptionStatusActive), sub.Status)
	assert.Equal(t, int64(1766000000), sub.CurrentPeriodStart.Unix())
}

func TestInvoicePaidIgnoresNonGrantingBillingReasons(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPaymentService(unitofwork.NewRepositoryFactory(db), &fakeGateway{}, "whsec_test", nil)

	userId := seedUser(t, db, 0)
	seedSubscription(t, db, userId, "sub_1", 500)

	payload := `{"billing_reason":"subscription_update","period_start":1766000000,"subscription":{"id":"sub_1"}}`
	ev := gatewayEvent(t, "evt_upd_1", "invoice.payment_succeeded", payload)

	require.NoError(t, svc.HandleEvent(ctx, ev))
	assert.Equal(t, int64(0), userCredits(t, db, userId))

	// Recorded even though nothing was granted.
	var eventCount int64
	require.NoError(t, db.Model(&model.StripeEvent{}).Where("event_id = ?", "evt_upd_1").Count(&eventCount).Error)
	assert.Equal(t, int64(1), eventCount)
}

func TestFirstInvoiceGrantsCycleOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPaymentService(unitofwork.NewRepositoryFactory(db), &fakeGateway{}, "whsec_test", nil)

	userId := seedUser(t, db, 0)
	seedSubscription(t, db, userId, "sub_1", 500)

	payload := `{"billing_reason":"subscription_create","period_start":1766000000,"subscription":{"id":"sub_1"}}`

	// Two distinct deliveries covering the same billing cycle.
	require.NoError(t, svc.HandleEvent(ctx, gatewayEvent(t, "evt_create_a", "invoice.payment_succeeded", payload)))
	require.NoError(t, svc.HandleEvent(ctx, gatewayEvent(t, "evt_create_b", "invoice.payment_succeeded", payload)))

	assert.Equal(t, int64(500), userCredits(t, db, userId))
	assert.Equal(t, int64(500), ledgerSum(t, db, userId))
}

func TestInvoiceFailedMarksSubscriptionPastDue(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPaymentService(unitofwork.NewRepositoryFactory(db), &fakeGateway{}, "whsec_test", nil)

	userId := seedUser(t, db, 0)
	subId := seedSubscription(t, db, userId, "sub_1", 500)
	require.NoError(t, db.Model(&model.Subscription{}).Where("id = ?", subId).
		Update("status", string(entity.SubscriptionStatusActive)).Error)

	ev := gatewayEvent(t, "evt_fail_1", "invoice.payment_failed", `{"subscription":{"id":"sub_1"}}`)
	require.NoError(t, svc.HandleEvent(ctx, ev))

	var sub model.Subscription
	require.NoError(t, db.First(&sub, "id = ?", subId).Error)
	assert.Equal(t, string(entity.SubscriptionStatusPastDue), sub.Status)
	assert.Equal(t, int64(0), userCredits(t, db, userId))
}

func TestCheckoutCompletedSettlesPurchaseExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPaymentService(unitofwork.NewRepositoryFactory(db), &fakeGateway{}, "whsec_test", nil)

	userId := seedUser(t, db, 0)
	require.NoError(t, db.Create(&model.CreditPurchase{
		Id:                    uuid.New(),
		UserId:                userId,
		Credits:               300,
		AmountPaid:            599,
		Currency:              "usd",
		StripePaymentIntentId: "pi_pack_1",
		Status:                string(entity.PurchaseStatusPending),
		ExpiresAt:             time.Now().Add(30 * time.Minute),
	}).Error)

	payload := `{"payment_intent":{"id":"pi_pack_1"}}`
	require.NoError(t, svc.HandleEvent(ctx, gatewayEvent(t, "evt_co_a", "checkout.session.completed", payload)))
	assert.Equal(t, int64(300), userCredits(t, db, userId))

	// A second, distinct event for the same intent finds the purchase
	// already completed.
	require.NoError(t, svc.HandleEvent(ctx, gatewayEvent(t, "evt_co_b", "checkout.session.completed", payload)))
	assert.Equal(t, int64(300), userCredits(t, db, userId))
	assert.Equal(t, int64(300), ledgerSum(t, db, userId))
}

func TestSubscriptionDeletedCancelsLocally(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPaymentService(unitofwork.NewRepositoryFactory(db), &fakeGateway{}, "whsec_test", nil)

	userId := seedUser(t, db, 0)
	subId := seedSubscription(t, db, userId, "sub_1", 500)

	ev := gatewayEvent(t, "evt_del_1", "customer.subscription.deleted", `{"id":"sub_1","status":"canceled"}`)
	require.NoError(t, svc.HandleEvent(ctx, ev))

	var sub model.Subscription
	require.NoError(t, db.First(&sub, "id = ?", subId).Error)
	assert.Equal(t, string(entity.SubscriptionStatusCanceled), sub.Status)
}

func TestPaymentIntentFailedMarksPurchaseFailed(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPaymentService(unitofwork.NewRepositoryFactory(db), &fakeGateway{}, "whsec_test", nil)

	userId := seedUser(t, db, 0)
	purchaseId := uuid.New()
	require.NoError(t, db.Create(&model.CreditPurchase{
		Id:                    purchaseId,
		UserId:                userId,
		Credits:               300,
		AmountPaid:            599,
		Currency:              "usd",
		StripePaymentIntentId: "pi_pack_1",
		Status:                string(entity.PurchaseStatusPending),
		ExpiresAt:             time.Now().Add(30 * time.Minute),
	}).Error)

	ev := gatewayEvent(t, "evt_pif_1", "payment_intent.payment_failed", `{"id":"pi_pack_1"}`)
	require.NoError(t, svc.HandleEvent(ctx, ev))

	var purchase model.CreditPurchase
	require.NoError(t, db.First(&purchase, "id = ?", purchaseId).Error)
	assert.Equal(t, string(entity.PurchaseStatusFailed), purchase.Status)
	assert.Equal(t, int64(0), userCredits(t, db, userId))
}

func TestUnknownEventIsRecordedAndSkipped(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPaymentService(unitofwork.NewRepositoryFactory(db), &fakeGateway{}, "whsec_test", nil)

	ev := gatewayEvent(t, "evt_misc_1", "charge.refund.updated", `{}`)
	require.NoError(t, svc.HandleEvent(ctx, ev))

	var eventCount int64
	require.NoError(t, db.Model(&model.StripeEvent{}).Where("event_id = ?", "evt_misc_1").Count(&eventCount).Error)
	assert.Equal(t, int64(1), eventCount)
}
