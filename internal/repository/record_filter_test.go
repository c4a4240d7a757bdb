package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWhereClauseEmpty(t *testing.T) {
	clause, args := RecordFilter{}.whereClause("")
	require.Equal(t, "1=1", clause)
	require.Empty(t, args)
}

func TestWhereClauseAllFilters(t *testing.T) {
	dept := "Billing Department"
	status := "open"
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	filter := RecordFilter{
		Department: &dept,
		Status:     &status,
		StartDate:  &start,
		EndDate:    &end,
	}
	clause, args := filter.whereClause("g.")
	require.Equal(t, "1=1 AND g.department=$1 AND g.status=$2 AND g.created_at >= $3 AND g.created_at <= $4", clause)
	require.Equal(t, []any{dept, status, start, end}, args)
}

func TestWhereClausePartial(t *testing.T) {
	status := "pending"
	clause, args := RecordFilter{Status: &status}.whereClause("")
	require.Equal(t, "1=1 AND status=$1", clause)
	require.Equal(t, []any{status}, args)
}

func TestCacheKey(t *testing.T) {
	require.Equal(t, "all", RecordFilter{}.CacheKey())

	dept := "Sales"
	status := "resolved"
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	filter := RecordFilter{Department: &dept, Status: &status, StartDate: &start}
	require.Equal(t, "dept=Sales|status=resolved|from=2024-06-01T00:00:00Z", filter.CacheKey())

	// Equal filters must render equal keys.
	other := RecordFilter{Department: &dept, Status: &status, StartDate: &start}
	require.Equal(t, filter.CacheKey(), other.CacheKey())
}
