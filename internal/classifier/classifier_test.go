package classifier

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/telecom-triage/internal/config"
	"github.com/spec-kit/telecom-triage/internal/domain"
)

// stubProvider returns fixed vectors per exact text, standing in for the
// embedding endpoint.
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

var testIntents = []domain.IntentLabel{
	{Key: "BALANCE_QUERY", Description: "balance intent"},
	{Key: "NETWORK_ISSUE", Description: "network intent"},
}

var testTypes = []domain.TicketType{
	{
		Key:         "BALANCE_CHECK",
		Name:        "Balance Check",
		Description: "balance type",
		Department:  DeptCustomerSupport,
		Category:    domain.CategoryQuery,
	},
	{
		Key:         "NETWORK_CONNECTIVITY",
		Name:        "Network Connectivity",
		Description: "network type",
		Department:  DeptNetworkOps,
		Category:    domain.CategoryGrievance,
		Severity:    domain.SeverityHigh,
	},
}

func newTestClassifier(t *testing.T, cfg config.ClassifierConfig, queryVectors map[string][]float32) *Classifier {
	t.Helper()

	vectors := map[string][]float32{
		"balance intent":            {1, 0, 0},
		"network intent":            {0, 1, 0},
		EmbeddingText(testTypes[0]): {1, 0, 0},
		EmbeddingText(testTypes[1]): {0, 1, 0},
	}
	for text, v := range queryVectors {
		vectors[text] = v
	}

	provider := &stubProvider{vectors: vectors}
	index, err := BuildIndex(context.Background(), provider, testIntents, testTypes, zap.NewNop())
	require.NoError(t, err)
	return New(provider, index, cfg, zap.NewNop())
}

func TestClassifyMultiLabelSorted(t *testing.T) {
	c := newTestClassifier(t, config.ClassifierConfig{}, map[string][]float32{
		"balance kitna hai": {0.9, 0.3, 0},
	})

	result, err := c.Classify(context.Background(), "balance kitna hai")
	require.NoError(t, err)

	require.Len(t, result.Intents, 2)
	require.Equal(t, "BALANCE_QUERY", result.Intents[0].Label)
	require.Equal(t, "NETWORK_ISSUE", result.Intents[1].Label)
	require.Greater(t, result.Intents[0].Confidence, result.Intents[1].Confidence)

	require.Equal(t, "BALANCE_QUERY", result.PrimaryIntent)
	require.Equal(t, []string{"BALANCE_QUERY", "NETWORK_ISSUE"}, result.Tags)
	require.Equal(t, RouteAutomatedSystem, result.Routing)

	require.Equal(t, domain.CategoryQuery, result.Category)
	require.Equal(t, "BALANCE_CHECK", result.Type)
	require.Equal(t, DeptCustomerSupport, result.Department)
	require.Equal(t, "balance kitna hai", result.OriginalQuery)
}

func TestClassifyBelowThresholdYieldsUnknown(t *testing.T) {
	c := newTestClassifier(t, config.ClassifierConfig{}, map[string][]float32{
		"kuch bhi": {0.1, 0.2, 0.97},
	})

	result, err := c.Classify(context.Background(), "kuch bhi")
	require.NoError(t, err)

	require.Empty(t, result.Intents)
	require.Equal(t, domain.PrimaryIntentUnknown, result.PrimaryIntent)
	require.Equal(t, RouteGeneralSupport, result.Routing)

	// Type resolution is arg-max even when no intent clears the threshold.
	require.Equal(t, "NETWORK_CONNECTIVITY", result.Type)
	require.Equal(t, domain.CategoryGrievance, result.Category)
}

func TestClassifyGrievanceType(t *testing.T) {
	c := newTestClassifier(t, config.ClassifierConfig{}, map[string][]float32{
		"net nahi chal raha": {0.2, 0.95, 0},
	})

	result, err := c.Classify(context.Background(), "net nahi chal raha")
	require.NoError(t, err)

	require.Equal(t, domain.CategoryGrievance, result.Category)
	require.Equal(t, "NETWORK_CONNECTIVITY", result.Type)
	require.Equal(t, DeptNetworkOps, result.Department)
	require.Equal(t, domain.SeverityHigh, result.Severity)
	require.Equal(t, "NETWORK_ISSUE", result.PrimaryIntent)
	require.Equal(t, RouteTechnicalSupport, result.Routing)
}

func TestClassifyTypeConfidenceFloor(t *testing.T) {
	c := newTestClassifier(t, config.ClassifierConfig{MinTypeConfidence: 0.9}, map[string][]float32{
		"kuch bhi": {0.3, 0.3, 0.9},
	})

	result, err := c.Classify(context.Background(), "kuch bhi")
	require.NoError(t, err)

	require.Equal(t, "UNCLASSIFIED", result.Type)
	require.Equal(t, domain.CategoryQuery, result.Category)
	require.Equal(t, DeptCustomerSupport, result.Department)
}

func TestClassifyTieKeepsCatalogOrder(t *testing.T) {
	c := newTestClassifier(t, config.ClassifierConfig{}, map[string][]float32{
		"dono barabar": {0.5, 0.5, 0},
	})

	result, err := c.Classify(context.Background(), "dono barabar")
	require.NoError(t, err)

	require.Len(t, result.Intents, 2)
	require.Equal(t, "BALANCE_QUERY", result.Intents[0].Label)
	require.Equal(t, result.Intents[0].Confidence, result.Intents[1].Confidence)
}

func TestClassifyDeterministic(t *testing.T) {
	c := newTestClassifier(t, config.ClassifierConfig{}, map[string][]float32{
		"balance kitna hai": {0.9, 0.3, 0},
	})

	first, err := c.Classify(context.Background(), "balance kitna hai")
	require.NoError(t, err)
	second, err := c.Classify(context.Background(), "balance kitna hai")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestClassifyEmptyQuery(t *testing.T) {
	c := newTestClassifier(t, config.ClassifierConfig{}, nil)

	_, err := c.Classify(context.Background(), "")
	require.Error(t, err)
}

func TestBuildIndexEmbedFailure(t *testing.T) {
	provider := &stubProvider{vectors: map[string][]float32{}}
	_, err := BuildIndex(context.Background(), provider, testIntents, testTypes, zap.NewNop())
	require.Error(t, err)
}
