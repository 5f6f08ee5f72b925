// FILE: internal/mapper/credit_mapper.go
package mapper

import (
	"fitbook-be/internal/entity"
	"fitbook-be/internal/model"
)

type CreditMapper struct{}

func NewCreditMapper() *CreditMapper {
	return &CreditMapper{}
}

func (m *CreditMapper) TransactionToEntity(t *model.CreditTransaction) *entity.CreditTransaction {
	if t == nil {
		return nil
	}
	return &entity.CreditTransaction{
		Id:                    t.Id,
		UserId:                t.UserId,
		Amount:                t.Amount,
		Direction:             entity.CreditDirection(t.Direction),
		Reason:                entity.CreditReason(t.Reason),
		Note:                  t.Note,
		RelatedBookingId:      t.RelatedBookingId,
		RelatedSubscriptionId: t.RelatedSubscriptionId,
		PeriodStart:           t.PeriodStart,
		StripePaymentIntentId: t.StripePaymentIntentId,
		CreatedAt:             t.CreatedAt,
	}
}

func (m *CreditMapper) TransactionToModel(t *entity.CreditTransaction) *model.CreditTransaction {
	if t == nil {
		return nil
	}
	return &model.CreditTransaction{
		Id:                    t.Id,
		UserId:                t.UserId,
		Amount:                t.Amount,
		Direction:             string(t.Direction),
		Reason:                string(t.Reason),
		Note:                  t.Note,
		RelatedBookingId:      t.RelatedBookingId,
		RelatedSubscriptionId: t.RelatedSubscriptionId,
		PeriodStart:           t.PeriodStart,
		StripePaymentIntentId: t.StripePaymentIntentId,
		CreatedAt:             t.CreatedAt,
	}
}

func (m *CreditMapper) PurchaseToEntity(p *model.CreditPurchase) *entity.CreditPurchase {
	if p == nil {
		return nil
	}
	return &entity.CreditPurchase{
		Id:                    p.Id,
		UserId:                p.UserId,
		Credits:               p.Credits,
		AmountPaid:            p.AmountPaid,
		Currency:              p.Currency,
		StripePaymentIntentId: p.StripePaymentIntentId,
		Status:                entity.PurchaseStatus(p.Status),
		ExpiresAt:             p.ExpiresAt,
		CompletedAt:           p.CompletedAt,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func (m *CreditMapper) PurchaseToModel(p *entity.CreditPurchase) *model.CreditPurchase {
	if p == nil {
		return nil
	}
	return &model.CreditPurchase{
		Id:                    p.Id,
		UserId:                p.UserId,
		Credits:               p.Credits,
		AmountPaid:            p.AmountPaid,
		Currency:              p.Currency,
		StripePaymentIntentId: p.StripePaymentIntentId,
		Status:                string(p.Status),
		ExpiresAt:             p.ExpiresAt,
		CompletedAt:           p.CompletedAt,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}
