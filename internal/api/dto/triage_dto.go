package dto

import (
	"time"

	"github.com/spec-kit/telecom-triage/internal/classifier"
	"github.com/spec-kit/telecom-triage/internal/domain"
)

// ClassifyRequest is a dry-run classification payload; nothing is persisted.
type ClassifyRequest struct {
	Query string `json:"query"`
}

// ClassificationResponse mirrors the classifier output.
type ClassificationResponse struct {
	PrimaryIntent string               `json:"primary_intent"`
	Intents       []domain.IntentScore `json:"intents"`
	Entities      domain.EntityBag     `json:"entities"`
	Category      domain.Category      `json:"category"`
	Type          string               `json:"type"`
	TypeName      string               `json:"type_name"`
	Department    string               `json:"department"`
	Severity      domain.Severity      `json:"severity"`
	Confidence    float64              `json:"confidence"`
	Tags          []string             `json:"tags"`
	Routing       string               `json:"routing"`
	RoutingDept   string               `json:"routing_department"`
}

// NewClassificationResponse maps the domain result.
func NewClassificationResponse(result *domain.Classification) ClassificationResponse {
	return ClassificationResponse{
		PrimaryIntent: result.PrimaryIntent,
		Intents:       result.Intents,
		Entities:      result.Entities,
		Category:      result.Category,
		Type:          result.Type,
		TypeName:      result.TypeName,
		Department:    result.Department,
		Severity:      result.Severity,
		Confidence:    result.Confidence,
		Tags:          result.Tags,
		Routing:       result.Routing,
		RoutingDept:   classifier.DepartmentForRoute(result.Routing),
	}
}

// RecordInteractionRequest persists a classified turn plus its lifecycle
// record.
type RecordInteractionRequest struct {
	Query    string `json:"query"`
	Response string `json:"response"`
}

// InteractionResponse reports what was stored.
type InteractionResponse struct {
	ConversationID int64                  `json:"conversation_id"`
	RecordID       int64                  `json:"record_id"`
	Classification ClassificationResponse `json:"classification"`
}

// ConversationResponse is one stored turn.
type ConversationResponse struct {
	ID            int64                `json:"id"`
	QueryText     string               `json:"query_text"`
	ResponseText  string               `json:"response_text"`
	PrimaryIntent string               `json:"primary_intent"`
	IntentTags    []domain.IntentScore `json:"intent_tags"`
	Entities      domain.EntityBag     `json:"entities"`
	Category      domain.Category      `json:"category"`
	Routing       string               `json:"routing"`
	RoutingDept   string               `json:"routing_department"`
	CreatedAt     time.Time            `json:"created_at"`
}

// NewConversationResponse maps a domain conversation.
func NewConversationResponse(conv domain.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:            conv.ID,
		QueryText:     conv.QueryText,
		ResponseText:  conv.ResponseText,
		PrimaryIntent: conv.PrimaryIntent,
		IntentTags:    conv.IntentTags,
		Entities:      conv.Entities,
		Category:      conv.Category,
		Routing:       conv.Routing,
		RoutingDept:   classifier.DepartmentForRoute(conv.Routing),
		CreatedAt:     conv.CreatedAt,
	}
}
