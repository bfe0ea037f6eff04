package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkEmpty(t *testing.T) {
	assert.Nil(t, Chunk("", DefaultChunkSize))
	assert.Empty(t, Chunk("\n\n\n\n", DefaultChunkSize))
}

func TestChunkSingleParagraph(t *testing.T) {
	chunks := Chunk("one short paragraph", DefaultChunkSize)
	require.Len(t, chunks, 1)
	assert.Equal(t, "one short paragraph", chunks[0])
}

func TestChunkGreedyAccumulation(t *testing.T) {
	// Three paragraphs of ~80 chars fit one 500-char chunk together.
	p := strings.Repeat("word ", 16)
	text := p + "\n\n" + p + "\n\n" + p

	chunks := Chunk(text, DefaultChunkSize)
	assert.Len(t, chunks, 1)
}

func TestChunkSplitsAtBudget(t *testing.T) {
	big := strings.Repeat("a", 300)
	text := big + "\n\n" + big + "\n\n" + big

	chunks := Chunk(text, DefaultChunkSize)
	require.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.Equal(t, big, chunk)
	}
}

func TestChunkOversizedParagraph(t *testing.T) {
	huge := strings.Repeat("b", 900)
	chunks := Chunk(huge, DefaultChunkSize)
	require.Len(t, chunks, 1)
	assert.Equal(t, huge, chunks[0])
}

func TestChunkDeterministic(t *testing.T) {
	text := strings.Repeat("alpha beta gamma. ", 100) + "\n\n" + strings.Repeat("delta. ", 50)

	first := Chunk(text, DefaultChunkSize)
	second := Chunk(text, DefaultChunkSize)
	assert.Equal(t, first, second)
}
