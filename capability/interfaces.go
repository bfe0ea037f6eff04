package capability

import (
	"context"
	"time"
)

// Crawler gathers public web intelligence for a company.
// Implementations must be thread-safe for concurrent use.
type Crawler interface {
	// ResolveWebsite finds the official website URL for a company name
	// using web search. Returns ErrNoResults when nothing plausible is found.
	ResolveWebsite(ctx context.Context, name string) (string, error)

	// Crawl fetches the homepage, recent news and market context for a
	// resolved URL, in parallel. Individual sub-fetch failures degrade to
	// empty sections; Crawl only errors when every section failed.
	Crawl(ctx context.Context, url string) (*CrawlResult, error)
}

// DeepDiver runs an agentic research mission and returns structured JSON.
// Implementations may run the mission as an async job and poll internally;
// callers see a single awaitable call bounded by ctx.
type DeepDiver interface {
	// DeepDive executes a natural-language mission constrained to produce
	// JSON matching the given schema, scoped to one company.
	DeepDive(ctx context.Context, company, prompt string, schema map[string]any) (map[string]any, error)
}

// DocumentParser extracts plain text from an uploaded document.
// Implementations must be thread-safe for concurrent use.
type DocumentParser interface {
	// ParseDocument extracts text from document bytes. filename is used
	// for format detection and upstream bookkeeping.
	// A parse failure is returned loudly, never silently swallowed here;
	// degrading is the caller's decision.
	ParseDocument(ctx context.Context, filename string, data []byte) (*ParsedDocument, error)
}

// Completer generates LLM completions.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// CompleteJSON sends system and user prompts and requires a JSON object
	// response. The raw response text is returned; parsing and repair are
	// the caller's concern.
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// CompleteStream sends system and user prompts and streams response
	// tokens to onToken as they arrive. Returns the full response text.
	CompleteStream(ctx context.Context, systemPrompt, userPrompt string, onToken func(string)) (string, error)
}

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// DiscussionSearcher finds public forum discussions about a company.
type DiscussionSearcher interface {
	// SearchDiscussions returns discussions matching the query created
	// within the given window, most relevant first.
	SearchDiscussions(ctx context.Context, query string, since time.Time, limit int) ([]*Discussion, error)

	// TopComments fetches up to limit top-level comments for a discussion.
	TopComments(ctx context.Context, discussionID string, limit int) ([]string, error)
}

// AlertSender delivers notification emails. Fire-and-forget: callers log
// failures but never fail their own operation on a send error.
type AlertSender interface {
	SendAlert(ctx context.Context, recipient, subject, htmlBody string) error
}
