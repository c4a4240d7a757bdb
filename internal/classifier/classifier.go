// Package classifier implements zero-shot multi-label classification and
// triage of telecom support utterances via embedding similarity.
package classifier

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/spec-kit/telecom-triage/internal/config"
	"github.com/spec-kit/telecom-triage/internal/domain"
	"github.com/spec-kit/telecom-triage/internal/embedding"
)

// Classifier combines intent detection, type resolution, entity extraction
// and routing into one classification per utterance. Stateless after
// construction; safe for concurrent use.
type Classifier struct {
	provider        embedding.Provider
	index           *Index
	intentThreshold float64
	minTypeScore    float64
	logger          *zap.Logger
}

// New builds a classifier around a prebuilt catalog index.
func New(provider embedding.Provider, index *Index, cfg config.ClassifierConfig, logger *zap.Logger) *Classifier {
	threshold := cfg.IntentThreshold
	if threshold <= 0 {
		threshold = 0.25
	}
	return &Classifier{
		provider:        provider,
		index:           index,
		intentThreshold: threshold,
		minTypeScore:    cfg.MinTypeConfidence,
		logger:          logger.Named("classifier"),
	}
}

// Classify produces one classification for the utterance. Deterministic for
// a given query and catalog; no side effects beyond the embedding call.
func (c *Classifier) Classify(ctx context.Context, query string) (*domain.Classification, error) {
	if query == "" {
		return nil, fmt.Errorf("empty query")
	}

	vector, err := c.provider.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	queryVec := embedding.Normalize(vector)

	intents := c.detectIntents(queryVec)
	entities := ExtractEntities(query)
	best, confidence := c.resolveType(queryVec)

	primaryIntent := domain.PrimaryIntentUnknown
	if len(intents) > 0 {
		primaryIntent = intents[0].Label
	}

	tags := make([]string, 0, len(intents))
	for _, intent := range intents {
		tags = append(tags, intent.Label)
	}

	result := &domain.Classification{
		Intents:       intents,
		Entities:      entities,
		Category:      best.Category,
		Type:          best.Key,
		TypeName:      best.Name,
		Department:    best.Department,
		Severity:      best.Severity,
		Confidence:    confidence,
		Tags:          tags,
		Routing:       RouteForIntent(primaryIntent),
		PrimaryIntent: primaryIntent,
		OriginalQuery: query,
	}

	c.logger.Debug("classified utterance",
		zap.String("category", string(result.Category)),
		zap.String("type", result.Type),
		zap.String("primary_intent", result.PrimaryIntent),
		zap.Float64("confidence", result.Confidence))
	return result, nil
}

// detectIntents keeps every catalog intent whose similarity clears the
// threshold, sorted by confidence descending. The stable sort preserves
// catalog declaration order for ties.
func (c *Classifier) detectIntents(queryVec []float32) []domain.IntentScore {
	scores := make([]domain.IntentScore, 0, len(c.index.intents))
	for _, entry := range c.index.intents {
		similarity := embedding.Cosine(queryVec, entry.vector)
		if similarity >= c.intentThreshold {
			scores = append(scores, domain.IntentScore{
				Label:      entry.label.Key,
				Confidence: round2(similarity),
			})
		}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Confidence > scores[j].Confidence
	})
	return scores
}

// resolveType is an arg-max over the type catalog. With no configured floor
// every query lands on some type regardless of absolute similarity; with a
// floor, below-floor queries fall back to the generic unclassified type.
func (c *Classifier) resolveType(queryVec []float32) (domain.TicketType, float64) {
	var best domain.TicketType
	bestScore := math.Inf(-1)
	for _, entry := range c.index.types {
		if similarity := embedding.Cosine(queryVec, entry.vector); similarity > bestScore {
			bestScore = similarity
			best = entry.ticketType
		}
	}
	if c.minTypeScore > 0 && bestScore < c.minTypeScore {
		return UnclassifiedType(), round2(bestScore)
	}
	return best, round2(bestScore)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
