package events

import "time"

// Event types emitted on the bus.
const (
	TypeBookingCreated   = "BOOKING_CREATED"
	TypeBookingCancelled = "BOOKING_CANCELLED"
	TypeBookingCompleted = "BOOKING_COMPLETED"
	TypePaymentSucceeded = "PAYMENT_SUCCEEDED"
	TypeRefundRequested  = "REFUND_REQUESTED"
	TypeLawyerApproved   = "LAWYER_APPROVED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "BOOKING_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used across services.
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

// NewEvent builds a BaseEvent stamped with the current time.
func NewEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
