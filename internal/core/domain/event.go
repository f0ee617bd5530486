package domain

import "time"

const (
	EventActivityRecorded = "ActivityRecorded"
	eventVersion          = 1
)

// ActivityEvent is the envelope announced downstream for every committed
// activity entry.
type ActivityEvent struct {
	EventID      string      `json:"event_id"`
	EventType    string      `json:"event_type"`
	EventVersion int         `json:"event_version"`
	OccurredAt   time.Time   `json:"occurred_at"`
	Producer     string      `json:"producer"`
	Payload      ActivityLog `json:"payload"`
}

func NewActivityEvent(producer string, entry ActivityLog) ActivityEvent {
	return ActivityEvent{
		EventID:      NewID(),
		EventType:    EventActivityRecorded,
		EventVersion: eventVersion,
		OccurredAt:   entry.CreatedAt,
		Producer:     producer,
		Payload:      entry,
	}
}
