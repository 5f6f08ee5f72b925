package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "BOOKING_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation published on the bus.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by the booking and settlement flows.
const (
	TypeBookingCreated     = "BOOKING_CREATED"
	TypeBookingCancelled   = "BOOKING_CANCELLED"
	TypeBookingRescheduled = "BOOKING_RESCHEDULED"
	TypeCreditsGranted     = "CREDITS_GRANTED"
	TypePaymentFailed      = "PAYMENT_FAILED"
)

// NewBookingCreated builds the event published after a booking commits.
func NewBookingCreated(data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: TypeBookingCreated, Data: data, OccurredAt: time.Now()}
}

func NewBookingCancelled(data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: TypeBookingCancelled, Data: data, OccurredAt: time.Now()}
}

func NewBookingRescheduled(data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: TypeBookingRescheduled, Data: data, OccurredAt: time.Now()}
}

func NewCreditsGranted(data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: TypeCreditsGranted, Data: data, OccurredAt: time.Now()}
}

func NewPaymentFailed(data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: TypePaymentFailed, Data: data, OccurredAt: time.Now()}
}
