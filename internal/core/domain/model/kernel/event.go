package kernel

import "time"

// DomainEvent is the notification handed to outside collaborators whenever a
// parcel status or a shop balance changes. Delivery is fire-and-forget.
type DomainEvent struct {
	Name       string
	SubjectID  UUID
	Attribute  string
	OldValue   string
	NewValue   string
	OccurredAt time.Time
}

// EventRecorder is embedded by aggregates that emit DomainEvents. Events are
// buffered until the unit of work pulls them after a successful commit.
type EventRecorder struct {
	events []DomainEvent
}

func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// PullEvents returns the buffered events and clears the buffer.
func (r *EventRecorder) PullEvents() []DomainEvent {
	events := r.events
	r.events = nil
	return events
}

// Aggregate is implemented by every aggregate root a unit of work can track.
type Aggregate interface {
	PullEvents() []DomainEvent
}
