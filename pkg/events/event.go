package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "LEAD_CAPTURED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the standard Event implementation.
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

// LeadCaptured is published when a visitor leaves contact details with the
// receptionist so downstream tooling can pick the lead up.
func LeadCaptured(sessionKey, name, contact string) BaseEvent {
	return BaseEvent{
		Type: "LEAD_CAPTURED",
		Data: map[string]interface{}{
			"session_key": sessionKey,
			"name":        name,
			"contact":     contact,
		},
		OccurredAt: time.Now(),
	}
}
