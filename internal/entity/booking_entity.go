// FILE: internal/entity/booking_entity.go
package entity

import (
	"time"

	"fitbook-be/internal/apperr"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending          BookingStatus = "pending"
	BookingStatusAwaitingApproval BookingStatus = "awaiting_approval"
	BookingStatusCompleted        BookingStatus = "completed"
	BookingStatusCancelled        BookingStatus = "cancelled"
	BookingStatusNoShow           BookingStatus = "no_show"
)

// AppliedDiscount is the snapshot of the rule a booking was priced with.
type AppliedDiscount struct {
	Name   string       `json:"name"`
	Kind   DiscountKind `json:"kind"`
	Amount int64        `json:"amount"`
}

// ScheduleSnapshot is the point-in-time copy of the class schedule a booking
// was made against. It is refreshed when the business reschedules the class.
type ScheduleSnapshot struct {
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	TimePattern string    `json:"time_pattern"`
	DayOfWeek   string    `json:"day_of_week"`
}

type Booking struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	ClassInstanceId uuid.UUID
	BusinessId      uuid.UUID

	Status BookingStatus

	// Prices in minor units.
	OriginalPrice int64
	FinalPrice    int64
	CreditsUsed   int64

	CreditTransactionId *uuid.UUID
	AppliedDiscount     *AppliedDiscount

	// Granted when the business reschedules the class; lets the member
	// cancel penalty-free until the expiry.
	HasFreeCancel       bool
	FreeCancelExpiresAt *time.Time

	// Direct-payment bookings settle through the gateway instead of credits.
	PaidAmount            int64
	StripePaymentIntentId *string

	Snapshot ScheduleSnapshot

	CancelledAt *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTerminal reports whether the booking reached a final state.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// FreeCancelActive reports whether the reschedule-granted free cancellation
// is still usable at the given time.
func (b *Booking) FreeCancelActive(now time.Time) bool {
	return b.HasFreeCancel && b.FreeCancelExpiresAt != nil && now.Before(*b.FreeCancelExpiresAt)
}

// Cancel moves the booking to cancelled. Only pending and awaiting_approval
// bookings can be cancelled.
func (b *Booking) Cancel(now time.Time) error {
	if b.Status != BookingStatusPending && b.Status != BookingStatusAwaitingApproval {
		return apperr.ActionNotAllowed("only pending bookings can be cancelled")
	}
	b.Status = BookingStatusCancelled
	b.CancelledAt = &now
	return nil
}

// Complete moves a pending booking to completed.
func (b *Booking) Complete(now time.Time) error {
	if b.Status != BookingStatusPending {
		return apperr.ActionNotAllowed("only pending bookings can be completed")
	}
	b.Status = BookingStatusCompleted
	b.CompletedAt = &now
	return nil
}

// MarkNoShow flags a pending booking whose member never turned up. No ledger
// effect: the credits stay spent.
func (b *Booking) MarkNoShow() error {
	if b.Status != BookingStatusPending {
		return apperr.ActionNotAllowed("only pending bookings can be marked no-show")
	}
	b.Status = BookingStatusNoShow
	return nil
}

// Approve moves an awaiting_approval booking into the regular pending flow.
func (b *Booking) Approve() error {
	if b.Status != BookingStatusAwaitingApproval {
		return apperr.ActionNotAllowed("booking is not awaiting approval")
	}
	b.Status = BookingStatusPending
	return nil
}
