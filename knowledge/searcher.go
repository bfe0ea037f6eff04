package knowledge

import (
	"context"
	"log/slog"

	"github.com/harborview/signals/capability"
	"github.com/harborview/signals/core"
	"github.com/harborview/signals/storage"
)

// DefaultMinSimilarity is the similarity floor for search hits.
const DefaultMinSimilarity = 0.60

// Searcher answers semantic queries over stored knowledge chunks.
type Searcher struct {
	knowledge     storage.KnowledgeRepository
	embedder      capability.Embedder
	minSimilarity float32
	logger        *slog.Logger
}

// SearcherOption configures a Searcher.
type SearcherOption func(*Searcher) error

// WithMinSimilarity overrides the similarity floor.
func WithMinSimilarity(min float32) SearcherOption {
	return func(s *Searcher) error {
		s.minSimilarity = min
		return nil
	}
}

// NewSearcher creates a knowledge searcher.
func NewSearcher(knowledge storage.KnowledgeRepository, embedder capability.Embedder, opts ...SearcherOption) (*Searcher, error) {
	if knowledge == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		knowledge:     knowledge,
		embedder:      embedder,
		minSimilarity: DefaultMinSimilarity,
		logger:        slog.Default().With("component", "knowledge-searcher"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Search embeds the query and returns the most similar chunks. An
// empty slug searches across every company.
func (s *Searcher) Search(ctx context.Context, slug, query string, maxHits int) ([]*core.ChunkMatch, error) {
	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error embedding query", "query", query, "err", err)
		return nil, err
	}

	matches, err := s.knowledge.FindSimilar(ctx, slug, vector, s.minSimilarity, maxHits)
	if err != nil {
		s.logger.Error("error querying similar chunks", "err", err)
		return nil, err
	}
	return matches, nil
}
