package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/telecom-triage/internal/classifier"
	"github.com/spec-kit/telecom-triage/internal/config"
	"github.com/spec-kit/telecom-triage/internal/domain"
	"github.com/spec-kit/telecom-triage/internal/events"
	"github.com/spec-kit/telecom-triage/internal/observability"
	"github.com/spec-kit/telecom-triage/internal/repository"
	apperrors "github.com/spec-kit/telecom-triage/pkg/util"
)

type stubProvider struct {
	vectors map[string][]float32
}

func (p *stubProvider) Embed(_ context.Context, text string) ([]float32, error) {
	v, ok := p.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no stub vector for %q", text)
	}
	out := make([]float32, len(v))
	copy(out, v)
	return out, nil
}

func (p *stubProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		v, err := p.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func pgxNoRows() error { return pgx.ErrNoRows }

type fakeConversationRepo struct {
	created []*domain.Conversation
	nextID  int64
}

func (r *fakeConversationRepo) Create(_ context.Context, conversation *domain.Conversation) error {
	r.nextID++
	conversation.ID = r.nextID
	conversation.CreatedAt = time.Now()
	r.created = append(r.created, conversation)
	return nil
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id int64) (*domain.Conversation, error) {
	for _, conv := range r.created {
		if conv.ID == id {
			return conv, nil
		}
	}
	return nil, pgxNoRows()
}

func (r *fakeConversationRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]domain.Conversation, error) {
	var out []domain.Conversation
	for _, conv := range r.created {
		if conv.UserID == userID {
			out = append(out, *conv)
		}
	}
	return out, nil
}

type fakeQueryRepo struct {
	created []*domain.QueryRecord
	nextID  int64
}

func (r *fakeQueryRepo) Create(_ context.Context, record *domain.QueryRecord) error {
	r.nextID++
	record.ID = r.nextID
	record.CreatedAt = time.Now()
	r.created = append(r.created, record)
	return nil
}

func (r *fakeQueryRepo) ListWithFilter(_ context.Context, _ repository.RecordFilter) ([]domain.QueryRecord, error) {
	out := make([]domain.QueryRecord, 0, len(r.created))
	for _, record := range r.created {
		out = append(out, *record)
	}
	return out, nil
}

func (r *fakeQueryRepo) Stats(_ context.Context, _ repository.RecordFilter) (*domain.QueryStats, error) {
	stats := &domain.QueryStats{}
	for _, record := range r.created {
		stats.Total++
		if record.Status == domain.QueryStatusPending {
			stats.Pending++
		} else {
			stats.Resolved++
		}
	}
	return stats, nil
}

func (r *fakeQueryRepo) UpdateStatus(_ context.Context, id int64, status domain.QueryStatus) error {
	for _, record := range r.created {
		if record.ID == id {
			record.Status = status
			return nil
		}
	}
	return pgxNoRows()
}

type fakeGrievanceRepo struct {
	created []*domain.GrievanceRecord
	nextID  int64
}

func (r *fakeGrievanceRepo) Create(_ context.Context, record *domain.GrievanceRecord) error {
	r.nextID++
	record.ID = r.nextID
	record.CreatedAt = time.Now()
	r.created = append(r.created, record)
	return nil
}

func (r *fakeGrievanceRepo) GetByID(_ context.Context, id int64) (*domain.GrievanceRecord, error) {
	for _, record := range r.created {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, pgxNoRows()
}

func (r *fakeGrievanceRepo) ListWithFilter(_ context.Context, _ repository.RecordFilter) ([]domain.GrievanceRecord, error) {
	out := make([]domain.GrievanceRecord, 0, len(r.created))
	for _, record := range r.created {
		out = append(out, *record)
	}
	return out, nil
}

func (r *fakeGrievanceRepo) Stats(_ context.Context, _ repository.RecordFilter) (*domain.GrievanceStats, error) {
	stats := &domain.GrievanceStats{}
	for _, record := range r.created {
		stats.Total++
		switch record.Status {
		case domain.GrievanceStatusOpen:
			stats.Open++
		case domain.GrievanceStatusInProgress:
			stats.InProgress++
		case domain.GrievanceStatusResolved:
			stats.Resolved++
		case domain.GrievanceStatusClosed:
			stats.Closed++
		}
	}
	return stats, nil
}

func (r *fakeGrievanceRepo) DepartmentCounts(_ context.Context, _ repository.RecordFilter) ([]domain.DepartmentCount, error) {
	counts := map[string]int64{}
	for _, record := range r.created {
		counts[record.Department]++
	}
	out := make([]domain.DepartmentCount, 0, len(counts))
	for dept, count := range counts {
		out = append(out, domain.DepartmentCount{Department: dept, Count: count})
	}
	return out, nil
}

func (r *fakeGrievanceRepo) UpdateStatus(_ context.Context, id int64, status domain.GrievanceStatus) error {
	for _, record := range r.created {
		if record.ID == id {
			record.Status = status
			if status == domain.GrievanceStatusResolved && record.ResolvedAt == nil {
				now := time.Now()
				record.ResolvedAt = &now
			}
			return nil
		}
	}
	return pgxNoRows()
}

var triageTestIntents = []domain.IntentLabel{
	{Key: "BALANCE_QUERY", Description: "balance intent"},
	{Key: "NETWORK_ISSUE", Description: "network intent"},
}

var triageTestTypes = []domain.TicketType{
	{
		Key:         "BALANCE_CHECK",
		Name:        "Balance Check",
		Description: "balance type",
		Department:  "Customer Support",
		Category:    domain.CategoryQuery,
	},
	{
		Key:         "NETWORK_CONNECTIVITY",
		Name:        "Network Connectivity",
		Description: "network type",
		Department:  "Network Operations",
		Category:    domain.CategoryGrievance,
	},
}

type triageFixture struct {
	service       *TriageService
	conversations *fakeConversationRepo
	queries       *fakeQueryRepo
	grievances    *fakeGrievanceRepo
	metrics       *observability.Metrics
	captured      *[]events.Event
}

func newTriageFixture(t *testing.T) *triageFixture {
	t.Helper()

	provider := &stubProvider{vectors: map[string][]float32{
		"balance intent": {1, 0, 0},
		"network intent": {0, 1, 0},
		classifier.EmbeddingText(triageTestTypes[0]): {1, 0, 0},
		classifier.EmbeddingText(triageTestTypes[1]): {0, 1, 0},
		"balance kitna hai":  {0.9, 0.1, 0},
		"net nahi chal raha": {0.1, 0.9, 0},
	}}

	index, err := classifier.BuildIndex(context.Background(), provider, triageTestIntents, triageTestTypes, zap.NewNop())
	require.NoError(t, err)
	engine := classifier.New(provider, index, config.ClassifierConfig{}, zap.NewNop())

	conversations := &fakeConversationRepo{}
	queries := &fakeQueryRepo{}
	grievances := &fakeGrievanceRepo{}
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	captured := &[]events.Event{}
	capture := func(_ context.Context, event events.Event) error {
		*captured = append(*captured, event)
		return nil
	}
	dispatcher.Subscribe(events.EventConversationRecorded, capture)
	dispatcher.Subscribe(events.EventQueryRecorded, capture)
	dispatcher.Subscribe(events.EventGrievanceOpened, capture)

	svc := NewTriageService(TriageDependencies{
		Classifier:       engine,
		ConversationRepo: conversations,
		QueryRepo:        queries,
		GrievanceRepo:    grievances,
		Dispatcher:       dispatcher,
		Metrics:          metrics,
	})
	return &triageFixture{
		service:       svc,
		conversations: conversations,
		queries:       queries,
		grievances:    grievances,
		metrics:       metrics,
		captured:      captured,
	}
}

func TestRecordInteractionQuery(t *testing.T) {
	f := newTriageFixture(t)

	result, err := f.service.RecordInteraction(context.Background(), RecordInteractionInput{
		UserID:   "user-1",
		Phone:    "9876543210",
		Query:    "balance kitna hai",
		Response: "Your balance is 1.5 GB",
	})
	require.NoError(t, err)
	require.Equal(t, domain.CategoryQuery, result.Classification.Category)

	require.Len(t, f.conversations.created, 1)
	conv := f.conversations.created[0]
	require.Equal(t, result.ConversationID, conv.ID)
	require.Equal(t, "BALANCE_QUERY", conv.PrimaryIntent)
	require.NotEmpty(t, conv.IntentTags)

	require.Len(t, f.queries.created, 1)
	require.Empty(t, f.grievances.created)
	record := f.queries.created[0]
	require.Equal(t, result.RecordID, record.ID)
	require.Equal(t, conv.ID, record.ConversationID)
	require.Equal(t, domain.QueryStatusResolved, record.Status)
	require.Equal(t, "Balance Check", record.Type)
	require.Equal(t, "Customer Support", record.Department)
	require.Equal(t, "balance kitna hai", record.Description)

	eventTypes := make([]events.EventType, 0, len(*f.captured))
	for _, event := range *f.captured {
		eventTypes = append(eventTypes, event.Type)
	}
	require.Equal(t, []events.EventType{events.EventConversationRecorded, events.EventQueryRecorded}, eventTypes)

	snap := f.metrics.Snapshot()
	require.Equal(t, int64(1), snap.Classifications["QUERY|"+result.Classification.Routing])
}

func TestRecordInteractionGrievance(t *testing.T) {
	f := newTriageFixture(t)

	result, err := f.service.RecordInteraction(context.Background(), RecordInteractionInput{
		UserID: "user-2",
		Phone:  "9876500000",
		Query:  "net nahi chal raha",
	})
	require.NoError(t, err)
	require.Equal(t, domain.CategoryGrievance, result.Classification.Category)

	require.Len(t, f.grievances.created, 1)
	require.Empty(t, f.queries.created)
	record := f.grievances.created[0]
	require.Equal(t, domain.GrievanceStatusOpen, record.Status)
	require.Equal(t, "Network Operations", record.Department)
	// Catalog entry carries no severity grade, so the record falls back to
	// medium.
	require.Equal(t, domain.SeverityMedium, record.Severity)
	require.Nil(t, record.ResolvedAt)

	eventTypes := make([]events.EventType, 0, len(*f.captured))
	for _, event := range *f.captured {
		eventTypes = append(eventTypes, event.Type)
	}
	require.Equal(t, []events.EventType{events.EventConversationRecorded, events.EventGrievanceOpened}, eventTypes)
}

func TestCreateRecordKeepsSeverity(t *testing.T) {
	f := newTriageFixture(t)

	result := &domain.Classification{
		Category:      domain.CategoryGrievance,
		TypeName:      "Call Drops",
		Department:    "Network Operations",
		Severity:      domain.SeverityHigh,
		OriginalQuery: "call baar baar kat rahi hai",
	}
	_, err := f.service.CreateRecord(context.Background(), 7, "user-3", "9999999999", result)
	require.NoError(t, err)

	require.Len(t, f.grievances.created, 1)
	require.Equal(t, domain.SeverityHigh, f.grievances.created[0].Severity)
	require.Equal(t, int64(7), f.grievances.created[0].ConversationID)
}

func TestRecordInteractionEmptyQuery(t *testing.T) {
	f := newTriageFixture(t)

	_, err := f.service.RecordInteraction(context.Background(), RecordInteractionInput{
		UserID: "user-1",
		Query:  "   ",
	})
	require.Error(t, err)
	require.Empty(t, f.conversations.created)
	require.Empty(t, f.queries.created)
	require.Empty(t, f.grievances.created)
}

func TestListConversations(t *testing.T) {
	f := newTriageFixture(t)

	_, err := f.service.RecordInteraction(context.Background(), RecordInteractionInput{
		UserID: "user-1",
		Phone:  "9876543210",
		Query:  "balance kitna hai",
	})
	require.NoError(t, err)

	conversations, err := f.service.ListConversations(context.Background(), "user-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, conversations, 1)

	other, err := f.service.ListConversations(context.Background(), "user-9", 10, 0)
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestGetConversation(t *testing.T) {
	f := newTriageFixture(t)

	result, err := f.service.RecordInteraction(context.Background(), RecordInteractionInput{
		UserID: "user-1",
		Phone:  "9876543210",
		Query:  "balance kitna hai",
	})
	require.NoError(t, err)

	conversation, err := f.service.GetConversation(context.Background(), "user-1", result.ConversationID)
	require.NoError(t, err)
	require.Equal(t, "balance kitna hai", conversation.QueryText)

	// Another user's id reads as not found, not forbidden.
	_, err = f.service.GetConversation(context.Background(), "user-9", result.ConversationID)
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	_, err = f.service.GetConversation(context.Background(), "user-1", 404)
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
