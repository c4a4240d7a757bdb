package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/telecom-triage/internal/domain"
	"github.com/spec-kit/telecom-triage/internal/events"
	"github.com/spec-kit/telecom-triage/internal/repository"
	apperrors "github.com/spec-kit/telecom-triage/pkg/util"
)

// ReportService serves the dashboard and executive-summary reads over query
// and grievance records, plus operator status updates.
type ReportService struct {
	queries    repository.QueryRepository
	grievances repository.GrievanceRepository
	dispatcher events.Dispatcher
	cache      *StatsCache
}

// ReportDependencies bundles collaborators.
type ReportDependencies struct {
	QueryRepo     repository.QueryRepository
	GrievanceRepo repository.GrievanceRepository
	Dispatcher    events.Dispatcher
	Cache         *StatsCache
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		queries:    deps.QueryRepo,
		grievances: deps.GrievanceRepo,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
	}
}

// ListQueries returns filtered query records, newest first.
func (s *ReportService) ListQueries(ctx context.Context, filter repository.RecordFilter) ([]domain.QueryRecord, error) {
	records, err := s.queries.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}

// ListGrievances returns filtered grievance records, newest first, joined
// with the customer name for the reporting contract.
func (s *ReportService) ListGrievances(ctx context.Context, filter repository.RecordFilter) ([]domain.GrievanceRecord, error) {
	records, err := s.grievances.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}

// GetGrievance fetches one grievance row.
func (s *ReportService) GetGrievance(ctx context.Context, id int64) (*domain.GrievanceRecord, error) {
	record, err := s.grievances.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("grievance", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return record, nil
}

// QueryStats aggregates query counts by status, served from cache when fresh.
func (s *ReportService) QueryStats(ctx context.Context, filter repository.RecordFilter) (*domain.QueryStats, error) {
	cacheKey := "queries:" + filter.CacheKey()
	var cached domain.QueryStats
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	stats, err := s.queries.Stats(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Set(ctx, cacheKey, stats)
	return stats, nil
}

// GrievanceStats aggregates grievance counts by status, served from cache
// when fresh.
func (s *ReportService) GrievanceStats(ctx context.Context, filter repository.RecordFilter) (*domain.GrievanceStats, error) {
	cacheKey := "grievances:" + filter.CacheKey()
	var cached domain.GrievanceStats
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	stats, err := s.grievances.Stats(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Set(ctx, cacheKey, stats)
	return stats, nil
}

// DepartmentCounts groups grievances by owning department.
func (s *ReportService) DepartmentCounts(ctx context.Context, filter repository.RecordFilter) ([]domain.DepartmentCount, error) {
	counts, err := s.grievances.DepartmentCounts(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return counts, nil
}

// UpdateQueryStatus flips a query record between pending and resolved.
func (s *ReportService) UpdateQueryStatus(ctx context.Context, id int64, status domain.QueryStatus) error {
	if status != domain.QueryStatusPending && status != domain.QueryStatusResolved {
		return apperrors.NewValidationError("invalid query status", map[string]any{"status": status})
	}
	if err := s.queries.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("query", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx)
	return nil
}

// UpdateGrievanceStatus advances a grievance along its lifecycle, recording
// resolved_at when it reaches resolved.
func (s *ReportService) UpdateGrievanceStatus(ctx context.Context, id int64, newStatus domain.GrievanceStatus) (*domain.GrievanceRecord, error) {
	record, err := s.GetGrievance(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isValidGrievanceTransition(record.Status, newStatus) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": record.Status,
			"to":   newStatus,
		})
	}

	if err := s.grievances.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx)

	oldStatus := record.Status
	record.Status = newStatus
	if newStatus == domain.GrievanceStatusResolved && record.ResolvedAt == nil {
		now := time.Now()
		record.ResolvedAt = &now
	}

	s.publishStatusEvent(ctx, record, oldStatus, newStatus)
	return record, nil
}

var allowedGrievanceTransitions = map[domain.GrievanceStatus][]domain.GrievanceStatus{
	domain.GrievanceStatusOpen:       {domain.GrievanceStatusInProgress, domain.GrievanceStatusResolved, domain.GrievanceStatusClosed},
	domain.GrievanceStatusInProgress: {domain.GrievanceStatusOpen, domain.GrievanceStatusResolved, domain.GrievanceStatusClosed},
	domain.GrievanceStatusResolved:   {domain.GrievanceStatusClosed, domain.GrievanceStatusInProgress},
	domain.GrievanceStatusClosed:     {},
}

func isValidGrievanceTransition(current, next domain.GrievanceStatus) bool {
	for _, candidate := range allowedGrievanceTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

func (s *ReportService) publishStatusEvent(ctx context.Context, record *domain.GrievanceRecord, oldStatus, newStatus domain.GrievanceStatus) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:             uuid.NewString(),
		Type:           events.EventGrievanceStatusChanged,
		ConversationID: record.ConversationID,
		RecordID:       record.ID,
		UserID:         record.UserID,
		Timestamp:      time.Now(),
		Payload: events.GrievanceStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
}
