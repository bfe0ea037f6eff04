package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/harborview/signals/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChunks(slug string, source core.ChunkSource, count int, seed float32) []*core.KnowledgeChunk {
	chunks := make([]*core.KnowledgeChunk, count)
	for i := range count {
		chunks[i] = &core.KnowledgeChunk{
			Slug:   slug,
			Source: source,
			Index:  i,
			Text:   fmt.Sprintf("chunk %d", i),
			Vector: []float32{seed, float32(i)},
		}
	}
	return chunks
}

func TestReplaceChunksInsertAndRead(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	chunks := testChunks("acme-corp", core.SourceWeb, 3, 1.0)
	digest := core.DigestFromContent("corpus v1")
	require.NoError(t, repos.Knowledge.ReplaceChunks(ctx, "acme-corp", core.SourceWeb, digest, chunks))

	got, err := repos.Knowledge.GetChunks(ctx, "acme-corp", core.SourceWeb)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, chunk := range got {
		assert.Equal(t, i, chunk.Index, "chunks come back in index order")
	}

	count, err := repos.Knowledge.CountChunks(ctx, "acme-corp", core.SourceWeb)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestReplaceChunksReplacesWholeSet(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	first := testChunks("acme-corp", core.SourceWeb, 5, 1.0)
	require.NoError(t, repos.Knowledge.ReplaceChunks(ctx, "acme-corp", core.SourceWeb,
		core.DigestFromContent("v1"), first))

	second := testChunks("acme-corp", core.SourceWeb, 2, 2.0)
	require.NoError(t, repos.Knowledge.ReplaceChunks(ctx, "acme-corp", core.SourceWeb,
		core.DigestFromContent("v2"), second))

	count, err := repos.Knowledge.CountChunks(ctx, "acme-corp", core.SourceWeb)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "stale chunks from the first run must be gone")

	got, err := repos.Knowledge.GetChunks(ctx, "acme-corp", core.SourceWeb)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, float32(2.0), got[0].Vector[0])
}

func TestReplaceChunksSourcesIndependent(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.Knowledge.ReplaceChunks(ctx, "acme-corp", core.SourceWeb,
		core.DigestFromContent("web"), testChunks("acme-corp", core.SourceWeb, 3, 1.0)))
	require.NoError(t, repos.Knowledge.ReplaceChunks(ctx, "acme-corp", core.SourceDocument,
		core.DigestFromContent("doc"), testChunks("acme-corp", core.SourceDocument, 4, 1.0)))

	// Re-indexing the web source must not touch document chunks.
	require.NoError(t, repos.Knowledge.ReplaceChunks(ctx, "acme-corp", core.SourceWeb,
		core.DigestFromContent("web2"), testChunks("acme-corp", core.SourceWeb, 1, 1.0)))

	docCount, err := repos.Knowledge.CountChunks(ctx, "acme-corp", core.SourceDocument)
	require.NoError(t, err)
	assert.Equal(t, 4, docCount)

	webCount, err := repos.Knowledge.CountChunks(ctx, "acme-corp", core.SourceWeb)
	require.NoError(t, err)
	assert.Equal(t, 1, webCount)
}

func TestSourceDigest(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	missing, err := repos.Knowledge.SourceDigest(ctx, "acme-corp", core.SourceWeb)
	require.NoError(t, err)
	assert.Equal(t, core.Digest(0), missing)

	digest := core.DigestFromContent("corpus")
	require.NoError(t, repos.Knowledge.ReplaceChunks(ctx, "acme-corp", core.SourceWeb,
		digest, testChunks("acme-corp", core.SourceWeb, 1, 1.0)))

	got, err := repos.Knowledge.SourceDigest(ctx, "acme-corp", core.SourceWeb)
	require.NoError(t, err)
	assert.Equal(t, digest, got)
}

func TestFindSimilarOrdering(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	chunks := []*core.KnowledgeChunk{
		{Slug: "acme-corp", Source: core.SourceWeb, Index: 0, Text: "weak", Vector: []float32{0.1, 0.0}},
		{Slug: "acme-corp", Source: core.SourceWeb, Index: 1, Text: "strong", Vector: []float32{1.0, 0.0}},
		{Slug: "acme-corp", Source: core.SourceWeb, Index: 2, Text: "medium", Vector: []float32{0.5, 0.0}},
	}
	require.NoError(t, repos.Knowledge.ReplaceChunks(ctx, "acme-corp", core.SourceWeb,
		core.DigestFromContent("x"), chunks))

	matches, err := repos.Knowledge.FindSimilar(ctx, "acme-corp", []float32{1.0, 0.0}, 0.0, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "strong", matches[0].Chunk.Text)
	assert.Equal(t, "medium", matches[1].Chunk.Text)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestFindSimilarSlugFilterAndThreshold(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.Knowledge.ReplaceChunks(ctx, "acme-corp", core.SourceWeb,
		core.DigestFromContent("a"), []*core.KnowledgeChunk{
			{Slug: "acme-corp", Source: core.SourceWeb, Index: 0, Text: "acme", Vector: []float32{1.0, 0.0}},
		}))
	require.NoError(t, repos.Knowledge.ReplaceChunks(ctx, "other-co", core.SourceWeb,
		core.DigestFromContent("b"), []*core.KnowledgeChunk{
			{Slug: "other-co", Source: core.SourceWeb, Index: 0, Text: "other", Vector: []float32{1.0, 0.0}},
		}))

	scoped, err := repos.Knowledge.FindSimilar(ctx, "acme-corp", []float32{1.0, 0.0}, 0.0, 10)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "acme", scoped[0].Chunk.Text)

	global, err := repos.Knowledge.FindSimilar(ctx, "", []float32{1.0, 0.0}, 0.0, 10)
	require.NoError(t, err)
	assert.Len(t, global, 2)

	none, err := repos.Knowledge.FindSimilar(ctx, "acme-corp", []float32{1.0, 0.0}, 5.0, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
