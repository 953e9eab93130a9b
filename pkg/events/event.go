package events

import "time"

// Event types published on the bus. The subject is "events.<type>".
const (
	TranscriptProcessed = "transcript.processed"
	DocumentsGenerated  = "documents.generated"
	UserRoleChanged     = "user.role_changed"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "documents.generated").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

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

// Subject is the bus subject for an event type.
func Subject(eventType string) string {
	return "events." + eventType
}
