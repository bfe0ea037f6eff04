package knowledge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/signals/capability/mock"
	"github.com/harborview/signals/core"
	badgerstore "github.com/harborview/signals/storage/badger"
)

func setupReembedder(t *testing.T, embedder *mock.Embedder) (*Reembedder, *badgerstore.Repositories) {
	t.Helper()

	repos, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	reembedder, err := NewReembedder(repos.Profiles, repos.Knowledge, embedder, nil)
	require.NoError(t, err)
	return reembedder, repos
}

func seedChunkSet(t *testing.T, repos *badgerstore.Repositories, slug string, source core.ChunkSource, texts []string, dim int) {
	t.Helper()
	ctx := context.Background()

	_, err := repos.Profiles.UpsertProfile(ctx, &core.CompanyProfile{Slug: slug, Name: slug})
	require.NoError(t, err)

	chunks := make([]*core.KnowledgeChunk, len(texts))
	for i, text := range texts {
		chunks[i] = &core.KnowledgeChunk{
			Slug:   slug,
			Source: source,
			Index:  i,
			Text:   text,
			Vector: mock.DeterministicVector(text, dim),
		}
	}
	digest := core.DigestFromContent(texts[0])
	require.NoError(t, repos.Knowledge.ReplaceChunks(ctx, slug, source, digest, chunks))
}

func TestReembedderRun(t *testing.T) {
	embedder := mock.NewEmbedder()
	embedder.Dim = 16
	reembedder, repos := setupReembedder(t, embedder)
	ctx := context.Background()

	// existing vectors are 8-dimensional, the new embedder emits 16
	seedChunkSet(t, repos, "acme-corp", core.SourceWeb, []string{"chunk one", "chunk two"}, 8)
	seedChunkSet(t, repos, "acme-corp", core.SourceDocument, []string{"doc chunk"}, 8)
	seedChunkSet(t, repos, "globex", core.SourceWeb, []string{"globex text"}, 8)

	wantDigest, err := repos.Knowledge.SourceDigest(ctx, "acme-corp", core.SourceWeb)
	require.NoError(t, err)

	report, err := reembedder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Companies)
	assert.Equal(t, 3, report.ChunkSets)
	assert.Equal(t, 4, report.Chunks)

	chunks, err := repos.Knowledge.GetChunks(ctx, "acme-corp", core.SourceWeb)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	for _, chunk := range chunks {
		assert.Len(t, chunk.Vector, 16)
	}
	assert.Equal(t, "chunk one", chunks[0].Text, "text is untouched")

	gotDigest, err := repos.Knowledge.SourceDigest(ctx, "acme-corp", core.SourceWeb)
	require.NoError(t, err)
	assert.Equal(t, wantDigest, gotDigest, "digest is preserved")
}

func TestReembedderEmptyDatabase(t *testing.T) {
	reembedder, _ := setupReembedder(t, mock.NewEmbedder())

	report, err := reembedder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Companies)
	assert.Equal(t, 0, report.ChunkSets)
}

func TestReembedderRetries(t *testing.T) {
	embedder := mock.NewEmbedder()
	calls := 0
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient")
		}
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			vectors[i] = mock.DeterministicVector(text, 8)
		}
		return vectors, nil
	}

	reembedder, repos := setupReembedder(t, embedder)
	reembedder.config.RetryDelay = time.Millisecond
	seedChunkSet(t, repos, "acme-corp", core.SourceWeb, []string{"chunk one"}, 8)

	report, err := reembedder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.ChunkSets)
	assert.Equal(t, 2, calls)
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return nil
		}, 3, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		wantErr := errors.New("always fails")
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return wantErr
		}, 3, time.Millisecond)
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("invalid attempts", func(t *testing.T) {
		err := RetryWithBackoff(ctx, func() error { return nil }, 0, time.Millisecond)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := RetryWithBackoff(cancelled, func() error { return errors.New("nope") }, 3, time.Millisecond)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
