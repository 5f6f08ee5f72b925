package dto

import (
	"time"

	"fitbook-be/internal/entity"

	"github.com/google/uuid"
)

type CreateClassTemplateRequest struct {
	VenueId          uuid.UUID             `json:"venue_id" validate:"required"`
	Name             string                `json:"name" validate:"required"`
	Description      string                `json:"description"`
	BasePrice        int64                 `json:"base_price" validate:"gte=0"`
	DurationMinutes  int                   `json:"duration_minutes" validate:"gt=0"`
	RequiresApproval bool                  `json:"requires_approval"`
	DiscountRules    []entity.DiscountRule `json:"discount_rules"`
}

type CreateClassInstanceRequest struct {
	TemplateId uuid.UUID `json:"template_id" validate:"required"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" validate:"required"`
	Capacity   int       `json:"capacity" validate:"gte=0"`
}

type UpdateClassInstanceRequest struct {
	Id uuid.UUID

	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Name      *string    `json:"name"`
	Capacity  *int       `json:"capacity" validate:"omitempty,gt=0"`

	PriceOverride *int64                `json:"price_override" validate:"omitempty,gte=0"`
	DiscountRules []entity.DiscountRule `json:"discount_rules"`

	// ApplyToSimilar extends the change to future instances sharing the same
	// name, weekday and time slot.
	ApplyToSimilar bool `json:"apply_to_similar"`
}

type UpdateClassInstanceResponse struct {
	Id               uuid.UUID `json:"id"`
	Rescheduled      bool      `json:"rescheduled"`
	BookingsNotified int       `json:"bookings_notified"`
	SimilarUpdated   int       `json:"similar_updated"`
}

type ClassInstanceResponse struct {
	Id          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	StartTime   time.Time          `json:"start_time"`
	EndTime     time.Time          `json:"end_time"`
	TimePattern string             `json:"time_pattern"`
	DayOfWeek   string             `json:"day_of_week"`
	Capacity    int                `json:"capacity"`
	BookedCount int                `json:"booked_count"`
	Status      entity.ClassStatus `json:"status"`
	Price       int64              `json:"price"`
}
