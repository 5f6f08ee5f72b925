// FILE: internal/mapper/booking_mapper.go
package mapper

import (
	"encoding/json"

	"fitbook-be/internal/entity"
	"fitbook-be/internal/model"

	"gorm.io/datatypes"
)

type BookingMapper struct{}

func NewBookingMapper() *BookingMapper {
	return &BookingMapper{}
}

func (m *BookingMapper) ToEntity(b *model.Booking) *entity.Booking {
	if b == nil {
		return nil
	}
	var applied *entity.AppliedDiscount
	if len(b.AppliedDiscount) > 0 {
		var d entity.AppliedDiscount
		if err := json.Unmarshal(b.AppliedDiscount, &d); err == nil {
			applied = &d
		}
	}
	var snapshot entity.ScheduleSnapshot
	if len(b.Snapshot) > 0 {
		_ = json.Unmarshal(b.Snapshot, &snapshot)
	}
	return &entity.Booking{
		Id:                    b.Id,
		UserId:                b.UserId,
		ClassInstanceId:       b.ClassInstanceId,
		BusinessId:            b.BusinessId,
		Status:                entity.BookingStatus(b.Status),
		OriginalPrice:         b.OriginalPrice,
		FinalPrice:            b.FinalPrice,
		CreditsUsed:           b.CreditsUsed,
		CreditTransactionId:   b.CreditTransactionId,
		AppliedDiscount:       applied,
		HasFreeCancel:         b.HasFreeCancel,
		FreeCancelExpiresAt:   b.FreeCancelExpiresAt,
		PaidAmount:            b.PaidAmount,
		StripePaymentIntentId: b.StripePaymentIntentId,
		Snapshot:              snapshot,
		CancelledAt:           b.CancelledAt,
		CompletedAt:           b.CompletedAt,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
}

func (m *BookingMapper) ToModel(b *entity.Booking) *model.Booking {
	if b == nil {
		return nil
	}
	var applied datatypes.JSON
	if b.AppliedDiscount != nil {
		raw, _ := json.Marshal(b.AppliedDiscount)
		applied = datatypes.JSON(raw)
	}
	snapshotRaw, _ := json.Marshal(b.Snapshot)
	return &model.Booking{
		Id:                    b.Id,
		UserId:                b.UserId,
		ClassInstanceId:       b.ClassInstanceId,
		BusinessId:            b.BusinessId,
		Status:                string(b.Status),
		OriginalPrice:         b.OriginalPrice,
		FinalPrice:            b.FinalPrice,
		CreditsUsed:           b.CreditsUsed,
		CreditTransactionId:   b.CreditTransactionId,
		AppliedDiscount:       applied,
		HasFreeCancel:         b.HasFreeCancel,
		FreeCancelExpiresAt:   b.FreeCancelExpiresAt,
		PaidAmount:            b.PaidAmount,
		StripePaymentIntentId: b.StripePaymentIntentId,
		Snapshot:              datatypes.JSON(snapshotRaw),
		CancelledAt:           b.CancelledAt,
		CompletedAt:           b.CompletedAt,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
}
