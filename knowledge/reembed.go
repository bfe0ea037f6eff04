// Copyright 2026 Harborview Analytics
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/harborview/signals/capability"
	"github.com/harborview/signals/core"
	"github.com/harborview/signals/storage"
)

// ReembedConfig holds configuration for a reembedding run.
type ReembedConfig struct {
	// MaxRetries is the maximum number of attempts per chunk set.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration
}

// DefaultReembedConfig returns a ReembedConfig with sensible defaults.
func DefaultReembedConfig() *ReembedConfig {
	return &ReembedConfig{
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
	}
}

// ReembedReport summarizes a completed reembedding run.
type ReembedReport struct {
	Companies int
	ChunkSets int
	Chunks    int
	Elapsed   time.Duration
}

// Reembedder recomputes the vectors of every stored knowledge chunk
// with the current embedder. Chunk text and source digests are left
// untouched, so a later Index call still skips unchanged corpora.
// Run this after switching embedding models.
type Reembedder struct {
	profiles  storage.ProfileRepository
	knowledge storage.KnowledgeRepository
	embedder  capability.Embedder
	config    *ReembedConfig
	logger    *slog.Logger
}

// NewReembedder creates a reembedder. A nil config uses defaults.
func NewReembedder(profiles storage.ProfileRepository, knowledge storage.KnowledgeRepository, embedder capability.Embedder, config *ReembedConfig) (*Reembedder, error) {
	if profiles == nil || knowledge == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultReembedConfig()
	}

	return &Reembedder{
		profiles:  profiles,
		knowledge: knowledge,
		embedder:  embedder,
		config:    config,
		logger:    slog.Default().With("component", "reembed"),
	}, nil
}

// Run reembeds every chunk set of every stored company.
func (r *Reembedder) Run(ctx context.Context) (*ReembedReport, error) {
	start := time.Now()

	profiles, err := r.profiles.ListProfiles(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	report := &ReembedReport{Companies: len(profiles)}
	sources := []core.ChunkSource{core.SourceWeb, core.SourceDocument}

	for _, profile := range profiles {
		for _, source := range sources {
			count, err := r.reembedSet(ctx, profile.Slug, source)
			if err != nil {
				return nil, fmt.Errorf("reembedding %s/%s: %w", profile.Slug, source, err)
			}
			if count > 0 {
				report.ChunkSets++
				report.Chunks += count
				r.logger.Info("chunk set reembedded", "slug", profile.Slug, "source", source, "chunks", count)
			}
		}
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

// reembedSet recomputes vectors for one (slug, source) chunk set.
// Returns the number of chunks rewritten; zero when nothing is stored.
func (r *Reembedder) reembedSet(ctx context.Context, slug string, source core.ChunkSource) (int, error) {
	chunks, err := r.knowledge.GetChunks(ctx, slug, source)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	var vectors [][]float32
	err = RetryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = r.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return 0, err
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("%w: %d texts, %d vectors", ErrVectorCountMismatch, len(chunks), len(vectors))
	}

	digest, err := r.knowledge.SourceDigest(ctx, slug, source)
	if err != nil {
		return 0, err
	}

	for i, chunk := range chunks {
		chunk.Vector = vectors[i]
	}
	if err := r.knowledge.ReplaceChunks(ctx, slug, source, digest, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// RetryWithBackoff retries an operation with exponential backoff,
// doubling the delay after each failed attempt. Returns the error
// from the last attempt if every attempt fails.
func RetryWithBackoff(ctx context.Context, operation func() error, maxAttempts int, baseDelay time.Duration) error {
	if maxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	var lastErr error
	delay := baseDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}

	return lastErr
}
