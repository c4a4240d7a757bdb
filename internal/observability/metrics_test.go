package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetricsSnapshot(t *testing.T) {
	metrics := NewMetrics()
	metrics.RecordRequest("/classify", "POST", 200, 5*time.Millisecond)
	metrics.RecordRequest("/classify", "POST", 200, 7*time.Millisecond)
	metrics.RecordError("/classify", "POST", "VALIDATION_FAILED")
	metrics.RecordClassification("QUERY", "automated_system")

	snap := metrics.Snapshot()
	require.Equal(t, int64(2), snap.Requests["/classify|POST|200"])
	require.Equal(t, int64(1), snap.Errors["/classify|POST|VALIDATION_FAILED"])
	require.Equal(t, int64(1), snap.Classifications["QUERY|automated_system"])

	// The snapshot is a copy; mutating it must not touch the live counters.
	snap.Classifications["QUERY|automated_system"] = 99
	require.Equal(t, int64(1), metrics.Snapshot().Classifications["QUERY|automated_system"])
}

func TestMetricsNilReceiver(t *testing.T) {
	var metrics *Metrics
	metrics.RecordRequest("/x", "GET", 200, 0)
	metrics.RecordError("/x", "GET", "INTERNAL_ERROR")
	metrics.RecordClassification("QUERY", "general_support")

	snap := metrics.Snapshot()
	require.Empty(t, snap.Requests)
	require.Empty(t, snap.Errors)
	require.Empty(t, snap.Classifications)
}
