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


package capability

import (
	"errors"
	"strings"
)

// Config holds connection settings for the external capability providers.
type Config struct {
	// CrawlerHost is the base URL of the web search/crawl API.
	CrawlerHost string

	// CrawlerKey is the API key for the crawl provider.
	CrawlerKey string

	// ParserHost is the base URL of the remote document-parse API.
	ParserHost string

	// ParserKey is the API key for the parse provider.
	ParserKey string

	// LLMHost is the base URL of the OpenAI-compatible completion API.
	// Example: "https://openrouter.ai/api/v1"
	LLMHost string

	// LLMKey is the API key for the completion provider.
	LLMKey string

	// LLMModel is the completion model identifier.
	// Example: "google/gemini-2.5-flash"
	LLMModel string

	// EmbeddingHost is the base URL of the embedding API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server
	EmbeddingHost string

	// EmbeddingKey is the API key for the embedding provider.
	EmbeddingKey string

	// EmbeddingModel is the embedding model identifier.
	EmbeddingModel string

	// MailKey is the API key for the email-delivery provider.
	MailKey string

	// MailFrom is the sender address for alert emails.
	MailFrom string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithCrawler sets the crawl provider host and API key.
func WithCrawler(host, key string) ConfigOption {
	return func(c *Config) {
		c.CrawlerHost = host
		c.CrawlerKey = key
	}
}

// WithParser sets the document-parse provider host and API key.
func WithParser(host, key string) ConfigOption {
	return func(c *Config) {
		c.ParserHost = host
		c.ParserKey = key
	}
}

// WithLLM sets the completion provider host, API key and model.
func WithLLM(host, key, model string) ConfigOption {
	return func(c *Config) {
		c.LLMHost = host
		c.LLMKey = key
		c.LLMModel = model
	}
}

// WithEmbedding sets the embedding provider host, API key and model.
func WithEmbedding(host, key, model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.EmbeddingKey = key
		c.EmbeddingModel = model
	}
}

// WithMail sets the email provider API key and sender address.
func WithMail(key, from string) ConfigOption {
	return func(c *Config) {
		c.MailKey = key
		c.MailFrom = from
	}
}

// DefaultConfig returns a Config with defaults for local development:
// hosted crawl and parse providers, OpenRouter for completion, and a local
// OpenAI-compatible server for embeddings.
func DefaultConfig() *Config {
	return &Config{
		CrawlerHost:    "https://api.firecrawl.dev",
		ParserHost:     "https://platform.reducto.ai",
		LLMHost:        "https://openrouter.ai/api/v1",
		LLMModel:       "google/gemini-2.5-flash",
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: "embeddinggemma",
		MailFrom:       "signals@harborview.example",
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Hosts lose their trailing slash; the embedding and LLM hosts gain the
// /v1 suffix required by OpenAI-compatible APIs when it is missing.
func (c *Config) Normalize() {
	c.CrawlerHost = strings.TrimSuffix(c.CrawlerHost, "/")
	c.ParserHost = strings.TrimSuffix(c.ParserHost, "/")

	if c.LLMHost != "" && !strings.HasSuffix(c.LLMHost, "/v1") {
		c.LLMHost = strings.TrimSuffix(c.LLMHost, "/") + "/v1"
	}
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/") + "/v1"
	}
}

// Validate checks that the configuration is complete enough to build
// every provider. It normalizes the configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	if c.CrawlerHost == "" {
		return errors.New("capability config: CrawlerHost is required")
	}
	if c.ParserHost == "" {
		return errors.New("capability config: ParserHost is required")
	}
	if c.LLMHost == "" {
		return errors.New("capability config: LLMHost is required")
	}
	if c.LLMModel == "" {
		return errors.New("capability config: LLMModel is required")
	}
	if c.EmbeddingHost == "" {
		return errors.New("capability config: EmbeddingHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("capability config: EmbeddingModel is required")
	}
	return nil
}
