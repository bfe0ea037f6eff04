package badger

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/harborview/signals/core"
	"github.com/harborview/signals/storage"
)

// KnowledgeRepository implements storage.KnowledgeRepository for
// BadgerDB. Vector search is a brute-force cosine scan over the chunk
// collection; with normalized embeddings the dot product is the cosine
// similarity.
type KnowledgeRepository struct {
	backend *Backend
}

var _ storage.KnowledgeRepository = (*KnowledgeRepository)(nil)

// NewKnowledgeRepository creates a new KnowledgeRepository.
func NewKnowledgeRepository(backend *Backend) *KnowledgeRepository {
	return &KnowledgeRepository{backend: backend}
}

// Close is a no-op; the repository holds no resources of its own.
func (r *KnowledgeRepository) Close() error {
	return nil
}

// ReplaceChunks atomically deletes every existing chunk for
// (slug, source) and inserts the new set. Delete-then-insert within a
// single transaction: a failed replace leaves the prior set intact.
func (r *KnowledgeRepository) ReplaceChunks(ctx context.Context, slug string, source core.ChunkSource, digest core.Digest, chunks []*core.KnowledgeChunk) error {
	if slug == "" {
		return core.ErrEmptySlug
	}
	if err := core.ValidateChunkSource(source); err != nil {
		return err
	}
	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return err
		}
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		// Collect stale keys first; deleting while iterating is unsafe.
		var stale [][]byte
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkPrefix(slug, source)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			stale = append(stale, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range stale {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}

		for _, chunk := range chunks {
			key := makeChunkKey(slug, source, chunk.Index)
			if err := tx.Set(key, storage.MarshalChunk(chunk)); err != nil {
				return err
			}
		}

		if err := tx.Set(makeDigestKey(slug, source), storage.MarshalDigest(digest)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetChunks returns the chunks for (slug, source) ordered by index.
func (r *KnowledgeRepository) GetChunks(ctx context.Context, slug string, source core.ChunkSource) ([]*core.KnowledgeChunk, error) {
	var chunks []*core.KnowledgeChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkPrefix(slug, source)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.KnowledgeChunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			chunks = append(chunks, chunk)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// CountChunks returns the number of chunks stored for (slug, source).
func (r *KnowledgeRepository) CountChunks(ctx context.Context, slug string, source core.ChunkSource) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkPrefix(slug, source)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SourceDigest returns the corpus fingerprint recorded by the last
// ReplaceChunks for (slug, source), or zero when nothing is indexed.
func (r *KnowledgeRepository) SourceDigest(ctx context.Context, slug string, source core.ChunkSource) (core.Digest, error) {
	var digest core.Digest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDigestKey(slug, source))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			digest, err = storage.UnmarshalDigest(val)
			return err
		})
	}, false)
	if err != nil {
		return 0, err
	}
	return digest, nil
}

// FindSimilar finds chunks similar to the given vector. When slug is
// non-empty, only that company's chunks are scanned.
func (r *KnowledgeRepository) FindSimilar(ctx context.Context, slug string, vector []float32, minSimilarity float32, limit int) ([]*core.ChunkMatch, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	prefix := []byte(chunkPrefix + ":")
	if slug != "" {
		prefix = []byte(chunkPrefix + ":" + slug + ":")
	}

	var matches []*core.ChunkMatch
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.KnowledgeChunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if chunk == nil || len(chunk.Vector) == 0 {
				continue
			}

			similarity := dotProduct(vector, chunk.Vector)
			if similarity >= minSimilarity {
				matches = append(matches, &core.ChunkMatch{
					Chunk: chunk,
					Score: similarity,
				})
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(matches, func(a, b *core.ChunkMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
