// Package embed implements the Embedder capability via an
// OpenAI-compatible embedding API.
package embed

import (
	"context"
	"log/slog"

	"github.com/harborview/signals/capability"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements capability.Embedder using langchaingo embeddings.
type Embedder struct {
	embedder embeddings.Embedder
	logger   *slog.Logger
}

var _ capability.Embedder = (*Embedder)(nil)

// NewEmbedder creates an embedder from the capability configuration.
// Uses "none" as the token for local servers that skip authentication.
//
// Returns capability.Embedder to enforce abstraction.
func NewEmbedder(config *capability.Config) (capability.Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	token := config.EmbeddingKey
	if token == "" {
		token = "none"
	}
	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken(token),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		logger:   slog.Default().With("component", "embed"),
	}, nil
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}
	if len(vectors) == 0 {
		e.logger.Warn("embedder returned empty result")
		return []float32{}, nil
	}
	return vectors[0], nil
}

// EmbedTexts generates vector embeddings for multiple text strings in a batch.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings", "count", len(texts))

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}
	return vectors, nil
}
