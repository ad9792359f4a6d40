package domain

import "time"

// Event is recorded by an entity mutation and drained by the caller after a
// successful persist, so side effects never fire on a failed transaction.
type Event struct {
	Name       string            `json:"name"`
	OccurredAt time.Time         `json:"occurred_at"`
	Attributes map[string]string `json:"attributes"`
}

const (
	EventRoomStatusChanged      = "ROOM_STATUS_CHANGED"
	EventRoomAssigned           = "ROOM_ASSIGNED"
	EventRoomVacated            = "ROOM_VACATED"
	EventBoarderCreated         = "BOARDER_CREATED"
	EventBoarderDeactivated     = "BOARDER_DEACTIVATED"
	EventBoarderReactivated     = "BOARDER_REACTIVATED"
	EventPaymentPaid            = "PAYMENT_PAID"
	EventPaymentCancelled       = "PAYMENT_CANCELLED"
	EventPaymentOverdue         = "PAYMENT_OVERDUE"
	EventUtilityReadingRecorded = "UTILITY_READING_RECORDED"
)

// recorder accumulates events on an aggregate between mutations and persist.
type recorder struct {
	events []Event
}

func (r *recorder) record(name string, attrs map[string]string) {
	r.events = append(r.events, Event{
		Name:       name,
		OccurredAt: time.Now(),
		Attributes: attrs,
	})
}

// Events returns the events recorded since the last drain.
func (r *recorder) Events() []Event { return r.events }

// DrainEvents returns the recorded events and clears the accumulator.
func (r *recorder) DrainEvents() []Event {
	evs := r.events
	r.events = nil
	return evs
}
