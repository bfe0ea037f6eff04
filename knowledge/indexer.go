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
	"log/slog"
	"runtime"

	"github.com/harborview/signals/capability"
	"github.com/harborview/signals/core"
	"github.com/harborview/signals/storage"
	"github.com/panjf2000/ants/v2"
)

// Indexer chunks, embeds and stores corpus text. Embedding work runs
// on a shared worker pool so concurrent pipeline runs cannot saturate
// the embedding provider.
type Indexer struct {
	knowledge storage.KnowledgeRepository
	embedder  capability.Embedder
	pool      *ants.Pool
	chunkSize int
	logger    *slog.Logger
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer) error

// WithPoolSize sets the worker pool size for embedding work.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) IndexerOption {
	return func(ix *Indexer) error {
		if size < 1 {
			size = 1
		}
		if ix.pool != nil {
			ix.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		ix.pool = pool
		return nil
	}
}

// WithChunkSize overrides the chunk character budget.
func WithChunkSize(size int) IndexerOption {
	return func(ix *Indexer) error {
		if size > 0 {
			ix.chunkSize = size
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) IndexerOption {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndexer creates a knowledge indexer.
func NewIndexer(knowledge storage.KnowledgeRepository, embedder capability.Embedder, opts ...IndexerOption) (*Indexer, error) {
	if knowledge == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ix := &Indexer{
		knowledge: knowledge,
		embedder:  embedder,
		pool:      pool,
		chunkSize: DefaultChunkSize,
		logger:    slog.Default().With("component", "knowledge-indexer"),
	}
	for _, opt := range opts {
		if optErr := opt(ix); optErr != nil {
			ix.Release()
			return nil, optErr
		}
	}
	return ix, nil
}

// Index chunks and embeds text for one (slug, source) pair and replaces
// that pair's stored chunk set. An unchanged corpus (same content
// digest as last time) is skipped without touching the embedder.
func (ix *Indexer) Index(ctx context.Context, slug string, source core.ChunkSource, text string) error {
	if text == "" {
		return nil
	}

	digest := core.DigestFromContent(text)
	stored, err := ix.knowledge.SourceDigest(ctx, slug, source)
	if err != nil {
		return err
	}
	if stored == digest {
		ix.logger.Debug("corpus unchanged, skipping re-index", "slug", slug, "source", source)
		return nil
	}

	done := make(chan error, 1)
	if err := ix.pool.Submit(func() {
		done <- ix.index(ctx, slug, source, digest, text)
	}); err != nil {
		return err
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (ix *Indexer) index(ctx context.Context, slug string, source core.ChunkSource, digest core.Digest, text string) error {
	texts := Chunk(text, ix.chunkSize)
	if len(texts) == 0 {
		return nil
	}

	vectors, err := ix.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(texts) {
		return ErrVectorCountMismatch
	}

	chunks := make([]*core.KnowledgeChunk, len(texts))
	for i, chunkText := range texts {
		chunks[i] = &core.KnowledgeChunk{
			Slug:   slug,
			Source: source,
			Index:  i,
			Text:   chunkText,
			Vector: vectors[i],
		}
	}

	if err := ix.knowledge.ReplaceChunks(ctx, slug, source, digest, chunks); err != nil {
		return err
	}
	ix.logger.Info("indexed corpus", "slug", slug, "source", source, "chunks", len(chunks))
	return nil
}

// Release releases the worker pool. The indexer should not be used
// after calling Release.
func (ix *Indexer) Release() {
	if ix.pool != nil {
		ix.pool.Release()
	}
}
