package dto

import (
	"time"

	"fitbook-be/internal/entity"

	"github.com/google/uuid"
)

type BookClassRequest struct {
	ClassInstanceId uuid.UUID `json:"class_instance_id" validate:"required"`
}

type BookClassResponse struct {
	Id              uuid.UUID               `json:"id"`
	Status          entity.BookingStatus    `json:"status"`
	OriginalPrice   int64                   `json:"original_price"`
	FinalPrice      int64                   `json:"final_price"`
	CreditsUsed     int64                   `json:"credits_used"`
	AppliedDiscount *entity.AppliedDiscount `json:"applied_discount"`
}

type CancelBookingResponse struct {
	Id           uuid.UUID `json:"id"`
	RefundAmount int64     `json:"refund_amount"`
	Fee          int64     `json:"fee"`
}

type BookingResponse struct {
	Id              uuid.UUID               `json:"id"`
	ClassInstanceId uuid.UUID               `json:"class_instance_id"`
	Status          entity.BookingStatus    `json:"status"`
	OriginalPrice   int64                   `json:"original_price"`
	FinalPrice      int64                   `json:"final_price"`
	CreditsUsed     int64                   `json:"credits_used"`
	AppliedDiscount *entity.AppliedDiscount `json:"applied_discount"`
	HasFreeCancel   bool                    `json:"has_free_cancel"`
	StartTime       time.Time               `json:"start_time"`
	EndTime         time.Time               `json:"end_time"`
	CreatedAt       time.Time               `json:"created_at"`
}
