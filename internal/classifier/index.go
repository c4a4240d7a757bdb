package classifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/telecom-triage/internal/domain"
	"github.com/spec-kit/telecom-triage/internal/embedding"
)

type indexedIntent struct {
	label  domain.IntentLabel
	vector []float32
}

type indexedType struct {
	ticketType domain.TicketType
	vector     []float32
}

// Index holds the precomputed, unit-normalized catalog embeddings. It is
// built once at startup and read-only afterwards, so it is safe to share
// across concurrent classification calls.
type Index struct {
	intents []indexedIntent
	types   []indexedType
}

// BuildIndex embeds every catalog entry. Any failure here is fatal for the
// classifier: callers should treat it as the classifier being unavailable.
func BuildIndex(ctx context.Context, provider embedding.Provider, intents []domain.IntentLabel, types []domain.TicketType, logger *zap.Logger) (*Index, error) {
	texts := make([]string, 0, len(intents)+len(types))
	for _, intent := range intents {
		texts = append(texts, intent.Description)
	}
	for _, t := range types {
		texts = append(texts, EmbeddingText(t))
	}

	vectors, err := provider.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed catalogs: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embed catalogs: expected %d vectors, got %d", len(texts), len(vectors))
	}

	idx := &Index{
		intents: make([]indexedIntent, 0, len(intents)),
		types:   make([]indexedType, 0, len(types)),
	}
	for i, intent := range intents {
		idx.intents = append(idx.intents, indexedIntent{
			label:  intent,
			vector: embedding.Normalize(vectors[i]),
		})
	}
	for i, t := range types {
		idx.types = append(idx.types, indexedType{
			ticketType: t,
			vector:     embedding.Normalize(vectors[len(intents)+i]),
		})
	}

	logger.Info("catalog index built",
		zap.Int("intents", len(idx.intents)),
		zap.Int("types", len(idx.types)))
	return idx, nil
}
