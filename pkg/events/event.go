package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "PERIOD_OPENED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type codes emitted across the portal. Kept in one place so the
// notification matcher and the consumers agree on spelling.
const (
	TypeQuestionnaireSubmitted = "QUESTIONNAIRE_SUBMITTED"
	TypeRankingSubmitted       = "RANKING_SUBMITTED"
	TypePeriodOpened           = "PERIOD_OPENED"
	TypePeriodClosed           = "PERIOD_CLOSED"
	TypeTopicPublished         = "TOPIC_PUBLISHED"
	TypeMatchingExported       = "MATCHING_EXPORTED"
)

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
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
