package knowledge

import (
	"context"
	"testing"

	"github.com/harborview/signals/capability/mock"
	"github.com/harborview/signals/core"
	badgerstore "github.com/harborview/signals/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIndexer(t *testing.T) (*Indexer, *mock.Embedder, *badgerstore.Repositories) {
	t.Helper()
	repos, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	embedder := mock.NewEmbedder()
	indexer, err := NewIndexer(repos.Knowledge, embedder, WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(indexer.Release)

	return indexer, embedder, repos
}

func TestIndexStoresChunks(t *testing.T) {
	indexer, _, repos := setupIndexer(t)
	ctx := context.Background()

	err := indexer.Index(ctx, "acme-corp", core.SourceWeb, "homepage text\n\nmore text")
	require.NoError(t, err)

	chunks, err := repos.Knowledge.GetChunks(ctx, "acme-corp", core.SourceWeb)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	assert.Equal(t, 0, chunks[0].Index)
	assert.NotEmpty(t, chunks[0].Vector)
}

func TestIndexEmptyTextNoop(t *testing.T) {
	indexer, embedder, repos := setupIndexer(t)
	ctx := context.Background()

	require.NoError(t, indexer.Index(ctx, "acme-corp", core.SourceWeb, ""))

	count, err := repos.Knowledge.CountChunks(ctx, "acme-corp", core.SourceWeb)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, embedder.CallCount())
}

func TestIndexSkipsUnchangedCorpus(t *testing.T) {
	indexer, embedder, _ := setupIndexer(t)
	ctx := context.Background()

	require.NoError(t, indexer.Index(ctx, "acme-corp", core.SourceWeb, "same corpus"))
	callsAfterFirst := embedder.CallCount()

	require.NoError(t, indexer.Index(ctx, "acme-corp", core.SourceWeb, "same corpus"))
	assert.Equal(t, callsAfterFirst, embedder.CallCount(), "unchanged corpus must not re-embed")
}

func TestIndexReplacesChunkSet(t *testing.T) {
	indexer, _, repos := setupIndexer(t)
	ctx := context.Background()

	longCorpus := ""
	for i := 0; i < 10; i++ {
		longCorpus += "paragraph with enough text to matter in chunk budget accounting here\n\n"
	}
	require.NoError(t, indexer.Index(ctx, "acme-corp", core.SourceWeb, longCorpus))

	firstCount, err := repos.Knowledge.CountChunks(ctx, "acme-corp", core.SourceWeb)
	require.NoError(t, err)

	require.NoError(t, indexer.Index(ctx, "acme-corp", core.SourceWeb, "tiny corpus"))

	secondCount, err := repos.Knowledge.CountChunks(ctx, "acme-corp", core.SourceWeb)
	require.NoError(t, err)
	assert.Equal(t, 1, secondCount)
	assert.Less(t, secondCount, firstCount)
}

func TestNewIndexerValidation(t *testing.T) {
	repos, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = NewIndexer(nil, mock.NewEmbedder())
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewIndexer(repos.Knowledge, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestSearcherFindsIndexedChunks(t *testing.T) {
	indexer, embedder, repos := setupIndexer(t)
	ctx := context.Background()

	require.NoError(t, indexer.Index(ctx, "acme-corp", core.SourceWeb, "anvil logistics corpus"))

	searcher, err := NewSearcher(repos.Knowledge, embedder, WithMinSimilarity(-1000))
	require.NoError(t, err)

	// The mock embedder is deterministic, so querying with the exact
	// chunk text yields the identical vector and a top hit.
	matches, err := searcher.Search(ctx, "acme-corp", "anvil logistics corpus", 5)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, "anvil logistics corpus", matches[0].Chunk.Text)
}
