package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/telecom-triage/internal/classifier"
	"github.com/spec-kit/telecom-triage/internal/domain"
	"github.com/spec-kit/telecom-triage/internal/events"
	"github.com/spec-kit/telecom-triage/internal/observability"
	"github.com/spec-kit/telecom-triage/internal/repository"
	apperrors "github.com/spec-kit/telecom-triage/pkg/util"
)

// TriageService runs the classification pipeline and the ticket lifecycle
// store: one conversation per user turn, plus exactly one query or grievance
// record determined by the classified category.
type TriageService struct {
	classifier    *classifier.Classifier
	conversations repository.ConversationRepository
	queries       repository.QueryRepository
	grievances    repository.GrievanceRepository
	dispatcher    events.Dispatcher
	metrics       *observability.Metrics
	cache         *StatsCache
}

// TriageDependencies bundles collaborators for the triage service.
type TriageDependencies struct {
	Classifier       *classifier.Classifier
	ConversationRepo repository.ConversationRepository
	QueryRepo        repository.QueryRepository
	GrievanceRepo    repository.GrievanceRepository
	Dispatcher       events.Dispatcher
	Metrics          *observability.Metrics
	Cache            *StatsCache
}

// RecordInteractionInput describes one completed user turn.
type RecordInteractionInput struct {
	UserID   string
	Phone    string
	Query    string
	Response string
}

// InteractionResult reports what was persisted for a turn.
type InteractionResult struct {
	ConversationID int64
	RecordID       int64
	Classification *domain.Classification
}

// NewTriageService constructs the service.
func NewTriageService(deps TriageDependencies) *TriageService {
	return &TriageService{
		classifier:    deps.Classifier,
		conversations: deps.ConversationRepo,
		queries:       deps.QueryRepo,
		grievances:    deps.GrievanceRepo,
		dispatcher:    deps.Dispatcher,
		metrics:       deps.Metrics,
		cache:         deps.Cache,
	}
}

// Classify runs the classification pipeline without persisting anything.
func (s *TriageService) Classify(ctx context.Context, query string) (*domain.Classification, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("query required", nil)
	}
	result, err := s.classifier.Classify(ctx, query)
	if err != nil {
		return nil, apperrors.NewUnavailable("classification", err)
	}
	s.metrics.RecordClassification(string(result.Category), result.Routing)
	return result, nil
}

// SaveConversation inserts one conversation row carrying the classification
// metadata. One transaction; storage errors propagate to the caller.
func (s *TriageService) SaveConversation(ctx context.Context, userID, phone, query, response string, result *domain.Classification) (int64, error) {
	conversation := &domain.Conversation{
		UserID:        userID,
		Phone:         phone,
		QueryText:     query,
		ResponseText:  response,
		PrimaryIntent: result.PrimaryIntent,
		IntentTags:    result.Intents,
		Entities:      result.Entities,
		Category:      result.Category,
		Routing:       result.Routing,
	}
	if err := s.conversations.Create(ctx, conversation); err != nil {
		return 0, err
	}

	s.publishEvent(ctx, events.Event{
		Type:           events.EventConversationRecorded,
		ConversationID: conversation.ID,
		UserID:         userID,
		Payload: events.ConversationRecordedPayload{
			PrimaryIntent: result.PrimaryIntent,
			Category:      result.Category,
			Routing:       result.Routing,
		},
	})
	return conversation.ID, nil
}

// CreateRecord creates the query or grievance record for a conversation. The
// branch is decided once, by the classified category: queries start resolved,
// grievances start open. Every classified interaction yields a record.
func (s *TriageService) CreateRecord(ctx context.Context, conversationID int64, userID, phone string, result *domain.Classification) (int64, error) {
	var recordID int64

	switch result.Category {
	case domain.CategoryGrievance:
		record := &domain.GrievanceRecord{
			ConversationID: conversationID,
			UserID:         userID,
			Phone:          phone,
			Type:           result.TypeName,
			Department:     result.Department,
			Description:    result.OriginalQuery,
			Entities:       result.Entities,
			Severity:       severityOrDefault(result.Severity),
			Status:         domain.GrievanceStatusOpen,
		}
		if err := s.grievances.Create(ctx, record); err != nil {
			return 0, err
		}
		recordID = record.ID
		s.publishEvent(ctx, events.Event{
			Type:           events.EventGrievanceOpened,
			ConversationID: conversationID,
			RecordID:       recordID,
			UserID:         userID,
			Payload: events.GrievanceOpenedPayload{
				Type:       record.Type,
				Department: record.Department,
				Severity:   record.Severity,
			},
		})
	default:
		record := &domain.QueryRecord{
			ConversationID: conversationID,
			UserID:         userID,
			Phone:          phone,
			Type:           result.TypeName,
			Department:     result.Department,
			Description:    result.OriginalQuery,
			Entities:       result.Entities,
			Status:         domain.QueryStatusResolved,
		}
		if err := s.queries.Create(ctx, record); err != nil {
			return 0, err
		}
		recordID = record.ID
		s.publishEvent(ctx, events.Event{
			Type:           events.EventQueryRecorded,
			ConversationID: conversationID,
			RecordID:       recordID,
			UserID:         userID,
			Payload: events.QueryRecordedPayload{
				Type:       record.Type,
				Department: record.Department,
			},
		})
	}

	s.cache.Invalidate(ctx)
	return recordID, nil
}

// RecordInteraction classifies a turn and persists conversation plus record.
// The two inserts are separate transactions: a failure between them leaves an
// orphaned conversation, which is accepted.
func (s *TriageService) RecordInteraction(ctx context.Context, input RecordInteractionInput) (*InteractionResult, error) {
	result, err := s.Classify(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	conversationID, err := s.SaveConversation(ctx, input.UserID, input.Phone, input.Query, input.Response, result)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	recordID, err := s.CreateRecord(ctx, conversationID, input.UserID, input.Phone, result)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &InteractionResult{
		ConversationID: conversationID,
		RecordID:       recordID,
		Classification: result,
	}, nil
}

// ListConversations returns a user's recent conversations.
func (s *TriageService) ListConversations(ctx context.Context, userID string, limit, offset int) ([]domain.Conversation, error) {
	return s.conversations.ListByUser(ctx, userID, limit, offset)
}

// GetConversation returns one stored turn. Conversations belonging to other
// users read as not found rather than forbidden, so ids stay unguessable.
func (s *TriageService) GetConversation(ctx context.Context, userID string, id int64) (*domain.Conversation, error) {
	conversation, err := s.conversations.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("conversation", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if conversation.UserID != userID {
		return nil, apperrors.NewNotFound("conversation", map[string]any{"id": id})
	}
	return conversation, nil
}

func severityOrDefault(severity domain.Severity) domain.Severity {
	if severity == "" {
		return domain.SeverityMedium
	}
	return severity
}

func (s *TriageService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
