package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/telecom-triage/internal/domain"
	"github.com/spec-kit/telecom-triage/internal/repository"
)

func TestStatsCacheDisabledWithoutClient(t *testing.T) {
	cache := NewStatsCache(nil, time.Minute, zap.NewNop())

	var out domain.QueryStats
	require.False(t, cache.Get(context.Background(), "queries:all", &out))

	// Writes and invalidations are no-ops, not panics.
	cache.Set(context.Background(), "queries:all", &domain.QueryStats{Total: 3})
	cache.Invalidate(context.Background())
	require.False(t, cache.Get(context.Background(), "queries:all", &out))
}

func TestStatsCacheNilReceiver(t *testing.T) {
	var cache *StatsCache

	var out domain.QueryStats
	require.False(t, cache.Get(context.Background(), "queries:all", &out))
	cache.Set(context.Background(), "queries:all", &domain.QueryStats{})
	cache.Invalidate(context.Background())
}

func TestReportServiceRecomputesWithoutCache(t *testing.T) {
	svc, queries, _, _ := newReportFixture(t)
	require.NoError(t, queries.Create(context.Background(), &domain.QueryRecord{Status: domain.QueryStatusResolved}))

	first, err := svc.QueryStats(context.Background(), repository.RecordFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), first.Total)

	require.NoError(t, queries.Create(context.Background(), &domain.QueryRecord{Status: domain.QueryStatusPending}))

	second, err := svc.QueryStats(context.Background(), repository.RecordFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(2), second.Total)
	require.Equal(t, int64(1), second.Pending)
}
