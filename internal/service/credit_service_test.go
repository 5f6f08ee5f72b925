package service

import (
	"context"
	"testing"
	"time"

	"fitbook-be/internal/apperr"
	"fitbook-be/internal/entity"
	"fitbook-be/internal/model"
	"fitbook-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerStaysConsistentAcrossSpendsAndGrants(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewCreditService(unitofwork.NewRepositoryFactory(db), nil)

	userId := seedUser(t, db, 1000)

	_, err := svc.SpendCredits(ctx, userId, 300, "mat rental")
	require.NoError(t, err)
	_, err = svc.AddCredits(ctx, userId, 150, entity.CreditReasonRefund, "partial refund")
	require.NoError(t, err)
	_, err = svc.SpendCredits(ctx, userId, 50, "towel")
	require.NoError(t, err)

	balance, err := svc.Balance(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, int64(800), balance.Balance)
	assert.Equal(t, balance.Balance, ledgerSum(t, db, userId))
}

func TestSpendCreditsRejectsOverdraft(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewCreditService(unitofwork.NewRepositoryFactory(db), nil)

	userId := seedUser(t, db, 200)

	_, err := svc.SpendCredits(ctx, userId, 201, "too much")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInsufficientCredits, apperr.CodeOf(err))

	// Balance and ledger untouched.
	assert.Equal(t, int64(200), userCredits(t, db, userId))
	assert.Equal(t, int64(200), ledgerSum(t, db, userId))

	// Spending the exact balance is allowed.
	_, err = svc.SpendCredits(ctx, userId, 200, "all in")
	require.NoError(t, err)
	assert.Equal(t, int64(0), userCredits(t, db, userId))
}

func TestSpendCreditsRejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewCreditService(unitofwork.NewRepositoryFactory(db), nil)

	userId := seedUser(t, db, 100)

	_, err := svc.SpendCredits(ctx, userId, 0, "nothing")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	_, err = svc.SpendCredits(ctx, userId, -10, "negative")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestHistoryReturnsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewCreditService(unitofwork.NewRepositoryFactory(db), nil)

	userId := seedUser(t, db, 1000)
	_, err := svc.SpendCredits(ctx, userId, 100, "first spend")
	require.NoError(t, err)
	_, err = svc.AddCredits(ctx, userId, 25, entity.CreditReasonGift, "second grant")
	require.NoError(t, err)

	history, err := svc.History(ctx, userId, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "second grant", history[0].Note)
	assert.Equal(t, "first spend", history[1].Note)
	assert.Equal(t, "seed balance", history[2].Note)
}

func TestSpendAndGrantReturnNewBalance(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewCreditService(unitofwork.NewRepositoryFactory(db), nil)

	userId := seedUser(t, db, 1000)

	spent, err := svc.SpendCredits(ctx, userId, 300, "mat rental")
	require.NoError(t, err)
	assert.Equal(t, int64(300), spent.Amount)
	assert.Equal(t, int64(700), spent.Balance)
	assert.NotEqual(t, uuid.Nil, spent.TransactionId)

	granted, err := svc.AddCredits(ctx, userId, 50, entity.CreditReasonGift, "loyalty")
	require.NoError(t, err)
	assert.Equal(t, int64(750), granted.Balance)
	assert.Equal(t, granted.Balance, userCredits(t, db, userId))
}

func TestCompleteCreditPurchaseGrantsOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewCreditService(unitofwork.NewRepositoryFactory(db), nil)

	userId := seedUser(t, db, 0)
	purchaseId := uuid.New()
	require.NoError(t, db.Create(&model.CreditPurchase{
		Id:                    purchaseId,
		UserId:                userId,
		Credits:               500,
		AmountPaid:            999,
		Currency:              "usd",
		StripePaymentIntentId: "pi_purchase_1",
		Status:                string(entity.PurchaseStatusPending),
	}).Error)

	require.NoError(t, svc.CompleteCreditPurchase(ctx, "pi_purchase_1"))
	assert.Equal(t, int64(500), userCredits(t, db, userId))

	var purchase model.CreditPurchase
	require.NoError(t, db.First(&purchase, "id = ?", purchaseId).Error)
	assert.Equal(t, string(entity.PurchaseStatusCompleted), purchase.Status)
	assert.NotNil(t, purchase.CompletedAt)

	// A repeated completion is a no-op.
	require.NoError(t, svc.CompleteCreditPurchase(ctx, "pi_purchase_1"))
	assert.Equal(t, int64(500), userCredits(t, db, userId))
	assert.Equal(t, int64(500), ledgerSum(t, db, userId))
}

func TestCompleteCreditPurchaseExpiredGrantsNothing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewCreditService(unitofwork.NewRepositoryFactory(db), nil)

	userId := seedUser(t, db, 0)
	purchaseId := uuid.New()
	require.NoError(t, db.Create(&model.CreditPurchase{
		Id:                    purchaseId,
		UserId:                userId,
		Credits:               500,
		AmountPaid:            999,
		Currency:              "usd",
		StripePaymentIntentId: "pi_expired",
		Status:                string(entity.PurchaseStatusPending),
		ExpiresAt:             time.Now().Add(-2 * time.Hour),
	}).Error)

	require.NoError(t, svc.CompleteCreditPurchase(ctx, "pi_expired"))

	assert.Equal(t, int64(0), userCredits(t, db, userId))
	assert.Equal(t, int64(0), ledgerSum(t, db, userId))

	var purchase model.CreditPurchase
	require.NoError(t, db.First(&purchase, "id = ?", purchaseId).Error)
	assert.Equal(t, string(entity.PurchaseStatusFailed), purchase.Status)
	assert.Nil(t, purchase.CompletedAt)
}
