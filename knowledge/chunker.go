package knowledge

import "strings"

// DefaultChunkSize is the character budget for one knowledge chunk.
const DefaultChunkSize = 500

// Chunk splits text into chunks for embedding. Paragraphs (blank-line
// separated) are accumulated greedily while the running chunk stays
// under the budget; a paragraph longer than the budget becomes its own
// chunk. The split is deterministic: same text, same budget, same
// ordered chunks.
func Chunk(text string, budget int) []string {
	if text == "" {
		return nil
	}
	if budget <= 0 {
		budget = DefaultChunkSize
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		current.Reset()
	}

	for _, paragraph := range strings.Split(text, "\n\n") {
		if current.Len()+len(paragraph) >= budget {
			flush()
		}
		current.WriteString(paragraph)
		current.WriteString("\n\n")
	}
	flush()

	return chunks
}
