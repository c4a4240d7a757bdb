package events

import (
	"time"

	"github.com/spec-kit/telecom-triage/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventConversationRecorded   EventType = "conversation_recorded"
	EventQueryRecorded          EventType = "query_recorded"
	EventGrievanceOpened        EventType = "grievance_opened"
	EventGrievanceStatusChanged EventType = "grievance_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	ConversationID int64       `json:"conversation_id,omitempty"`
	RecordID       int64       `json:"record_id,omitempty"`
	UserID         string      `json:"user_id"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload"`
}

// ConversationRecordedPayload payload.
type ConversationRecordedPayload struct {
	PrimaryIntent string          `json:"primary_intent"`
	Category      domain.Category `json:"category"`
	Routing       string          `json:"routing"`
}

// QueryRecordedPayload payload.
type QueryRecordedPayload struct {
	Type       string `json:"type"`
	Department string `json:"department"`
}

// GrievanceOpenedPayload payload.
type GrievanceOpenedPayload struct {
	Type       string          `json:"type"`
	Department string          `json:"department"`
	Severity   domain.Severity `json:"severity"`
}

// GrievanceStatusChangedPayload payload.
type GrievanceStatusChangedPayload struct {
	OldStatus domain.GrievanceStatus `json:"old_status"`
	NewStatus domain.GrievanceStatus `json:"new_status"`
}
