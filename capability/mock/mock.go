// Package mock provides deterministic test doubles for the capability
// contracts. Behavior is injectable via function fields; defaults are
// deterministic so pipeline tests are repeatable.
package mock

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/harborview/signals/capability"
)

// Crawler is a test double for capability.Crawler.
type Crawler struct {
	ResolveWebsiteFunc func(ctx context.Context, name string) (string, error)
	CrawlFunc          func(ctx context.Context, url string) (*capability.CrawlResult, error)

	callCount int
}

var _ capability.Crawler = (*Crawler)(nil)

func NewCrawler() *Crawler {
	return &Crawler{}
}

func (m *Crawler) ResolveWebsite(ctx context.Context, name string) (string, error) {
	m.callCount++
	if m.ResolveWebsiteFunc != nil {
		return m.ResolveWebsiteFunc(ctx, name)
	}
	return "https://example.com", nil
}

func (m *Crawler) Crawl(ctx context.Context, url string) (*capability.CrawlResult, error) {
	m.callCount++
	if m.CrawlFunc != nil {
		return m.CrawlFunc(ctx, url)
	}
	return &capability.CrawlResult{
		ResolvedURL: url,
		Homepage:    "homepage text",
	}, nil
}

// CallCount returns the number of times any method was called.
func (m *Crawler) CallCount() int {
	return m.callCount
}

// DeepDiver is a test double for capability.DeepDiver.
type DeepDiver struct {
	DeepDiveFunc func(ctx context.Context, company, prompt string, schema map[string]any) (map[string]any, error)

	callCount int
}

var _ capability.DeepDiver = (*DeepDiver)(nil)

func NewDeepDiver() *DeepDiver {
	return &DeepDiver{}
}

func (m *DeepDiver) DeepDive(ctx context.Context, company, prompt string, schema map[string]any) (map[string]any, error) {
	m.callCount++
	if m.DeepDiveFunc != nil {
		return m.DeepDiveFunc(ctx, company, prompt, schema)
	}
	return map[string]any{}, nil
}

func (m *DeepDiver) CallCount() int {
	return m.callCount
}

// DocumentParser is a test double for capability.DocumentParser.
type DocumentParser struct {
	ParseDocumentFunc func(ctx context.Context, filename string, data []byte) (*capability.ParsedDocument, error)

	callCount int
}

var _ capability.DocumentParser = (*DocumentParser)(nil)

func NewDocumentParser() *DocumentParser {
	return &DocumentParser{}
}

func (m *DocumentParser) ParseDocument(ctx context.Context, filename string, data []byte) (*capability.ParsedDocument, error) {
	m.callCount++
	if m.ParseDocumentFunc != nil {
		return m.ParseDocumentFunc(ctx, filename, data)
	}
	return &capability.ParsedDocument{
		Filename: filename,
		Text:     string(data),
		Pages:    1,
	}, nil
}

func (m *DocumentParser) CallCount() int {
	return m.callCount
}

// Completer is a test double for capability.Completer.
type Completer struct {
	CompleteJSONFunc   func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	CompleteStreamFunc func(ctx context.Context, systemPrompt, userPrompt string, onToken func(string)) (string, error)

	callCount int
}

var _ capability.Completer = (*Completer)(nil)

func NewCompleter() *Completer {
	return &Completer{}
}

func (m *Completer) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.callCount++
	if m.CompleteJSONFunc != nil {
		return m.CompleteJSONFunc(ctx, systemPrompt, userPrompt)
	}
	return "{}", nil
}

func (m *Completer) CompleteStream(ctx context.Context, systemPrompt, userPrompt string, onToken func(string)) (string, error) {
	m.callCount++
	if m.CompleteStreamFunc != nil {
		return m.CompleteStreamFunc(ctx, systemPrompt, userPrompt, onToken)
	}
	if onToken != nil {
		onToken("ok")
	}
	return "ok", nil
}

func (m *Completer) CallCount() int {
	return m.callCount
}

// Embedder is a test double for capability.Embedder. The default
// behavior hashes the text into a deterministic unit-ish vector.
type Embedder struct {
	EmbedTextFunc  func(ctx context.Context, text string) ([]float32, error)
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// Dim is the vector dimension for default embeddings. Zero means 8.
	Dim int

	callCount int
}

var _ capability.Embedder = (*Embedder)(nil)

func NewEmbedder() *Embedder {
	return &Embedder{}
}

func (m *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++
	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return DeterministicVector(text, m.dim()), nil
}

func (m *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++
	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = DeterministicVector(text, m.dim())
	}
	return vectors, nil
}

func (m *Embedder) CallCount() int {
	return m.callCount
}

func (m *Embedder) dim() int {
	if m.Dim > 0 {
		return m.Dim
	}
	return 8
}

// DiscussionSearcher is a test double for capability.DiscussionSearcher.
type DiscussionSearcher struct {
	SearchDiscussionsFunc func(ctx context.Context, query string, since time.Time, limit int) ([]*capability.Discussion, error)
	TopCommentsFunc       func(ctx context.Context, discussionID string, limit int) ([]string, error)
}

var _ capability.DiscussionSearcher = (*DiscussionSearcher)(nil)

func NewDiscussionSearcher() *DiscussionSearcher {
	return &DiscussionSearcher{}
}

func (m *DiscussionSearcher) SearchDiscussions(ctx context.Context, query string, since time.Time, limit int) ([]*capability.Discussion, error) {
	if m.SearchDiscussionsFunc != nil {
		return m.SearchDiscussionsFunc(ctx, query, since, limit)
	}
	return nil, nil
}

func (m *DiscussionSearcher) TopComments(ctx context.Context, discussionID string, limit int) ([]string, error) {
	if m.TopCommentsFunc != nil {
		return m.TopCommentsFunc(ctx, discussionID, limit)
	}
	return nil, nil
}

// AlertSender is a test double for capability.AlertSender. It records
// every send for assertion.
type AlertSender struct {
	SendAlertFunc func(ctx context.Context, recipient, subject, htmlBody string) error

	Sent []SentAlert
}

// SentAlert is one recorded SendAlert call.
type SentAlert struct {
	Recipient string
	Subject   string
	HTMLBody  string
}

var _ capability.AlertSender = (*AlertSender)(nil)

func NewAlertSender() *AlertSender {
	return &AlertSender{}
}

func (m *AlertSender) SendAlert(ctx context.Context, recipient, subject, htmlBody string) error {
	m.Sent = append(m.Sent, SentAlert{Recipient: recipient, Subject: subject, HTMLBody: htmlBody})
	if m.SendAlertFunc != nil {
		return m.SendAlertFunc(ctx, recipient, subject, htmlBody)
	}
	return nil
}

// DeterministicVector creates a repeatable embedding vector from text.
// The same text always produces the same vector.
func DeterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		seed = seed*1664525 + 1013904223
		vector[i] = float32(seed%1000) / 1000.0
	}
	return vector
}

// JSONDeepDive returns a DeepDiveFunc that always answers with the
// given result, useful for scripted missions.
func JSONDeepDive(result map[string]any) func(context.Context, string, string, map[string]any) (map[string]any, error) {
	return func(context.Context, string, string, map[string]any) (map[string]any, error) {
		return result, nil
	}
}

// FailingDeepDive returns a DeepDiveFunc that always fails.
func FailingDeepDive(reason string) func(context.Context, string, string, map[string]any) (map[string]any, error) {
	return func(context.Context, string, string, map[string]any) (map[string]any, error) {
		return nil, fmt.Errorf("%w: %s", capability.ErrJobFailed, reason)
	}
}
