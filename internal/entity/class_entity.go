// FILE: internal/entity/class_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type ClassStatus string
type DiscountKind string

const (
	ClassStatusScheduled ClassStatus = "scheduled"
	ClassStatusCancelled ClassStatus = "cancelled"
	ClassStatusCompleted ClassStatus = "completed"

	DiscountFixedAmount DiscountKind = "fixed_amount"
	DiscountPercentage  DiscountKind = "percentage"
)

// DiscountRule is an early-bird style rule: it applies when the booking is
// made at least MinHoursBefore hours before the class starts.
type DiscountRule struct {
	Name string       `json:"name"`
	Kind DiscountKind `json:"kind"`
	// Amount is minor units for fixed_amount, whole percent points (0-100)
	// for percentage.
	Amount         int64   `json:"amount"`
	MinHoursBefore float64 `json:"min_hours_before"`
}

type ClassTemplate struct {
	Id          uuid.UUID
	BusinessId  uuid.UUID
	VenueId     uuid.UUID
	Name        string
	Description string
	// BasePrice in minor units; a class instance may override it.
	BasePrice       int64
	DurationMinutes int
	// RequiresApproval puts new bookings into awaiting_approval until the
	// business approves or rejects them.
	RequiresApproval bool
	DiscountRules    []DiscountRule
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ClassInstance is one scheduled occurrence of a class template.
type ClassInstance struct {
	Id         uuid.UUID
	BusinessId uuid.UUID
	VenueId    uuid.UUID
	TemplateId uuid.UUID
	Name       string

	StartTime time.Time
	EndTime   time.Time
	// TimePattern ("18:00-19:00") and DayOfWeek are derived from the times
	// and recomputed whenever the schedule changes.
	TimePattern string
	DayOfWeek   string

	Capacity    int
	BookedCount int

	// Booking window: a booking must be made between MinHoursBefore and
	// MaxHoursBefore hours before the start. MaxHoursBefore == 0 means no
	// upper bound.
	MinHoursBefore          float64
	MaxHoursBefore          float64
	CancellationWindowHours float64

	// PriceOverride replaces the template base price when set.
	PriceOverride *int64
	DiscountRules []DiscountRule

	Status    ClassStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// EffectivePrice resolves the instance override against the template base.
func (ci *ClassInstance) EffectivePrice(t *ClassTemplate) int64 {
	if ci.PriceOverride != nil {
		return *ci.PriceOverride
	}
	if t == nil {
		return 0
	}
	return t.BasePrice
}

// EffectiveCapacity falls back to the venue capacity when the instance has
// none of its own.
func (ci *ClassInstance) EffectiveCapacity(v *Venue) int {
	if ci.Capacity > 0 {
		return ci.Capacity
	}
	if v != nil {
		return v.Capacity
	}
	return 0
}

// TimePatternFor formats the display pattern for a start/end pair.
func TimePatternFor(start, end time.Time) string {
	return start.Format("15:04") + "-" + end.Format("15:04")
}
