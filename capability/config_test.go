package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "https://api.firecrawl.dev", cfg.CrawlerHost)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.LLMHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "https://api.firecrawl.dev", cfg.CrawlerHost)
		assert.Empty(t, cfg.CrawlerKey)
	})

	t.Run("with crawler credentials", func(t *testing.T) {
		cfg := NewConfig(WithCrawler("https://crawl.example", "fc-key"))

		assert.Equal(t, "https://crawl.example", cfg.CrawlerHost)
		assert.Equal(t, "fc-key", cfg.CrawlerKey)
	})

	t.Run("with llm provider", func(t *testing.T) {
		cfg := NewConfig(WithLLM("http://llm:8080/v1", "sk-test", "custom-model"))

		assert.Equal(t, "http://llm:8080/v1", cfg.LLMHost)
		assert.Equal(t, "sk-test", cfg.LLMKey)
		assert.Equal(t, "custom-model", cfg.LLMModel)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbedding("http://embed:8080/v1", "", "text-embedding-3-small"),
			WithMail("re-key", "alerts@example.com"),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "re-key", cfg.MailKey)
		assert.Equal(t, "alerts@example.com", cfg.MailFrom)
	})
}

func TestNormalize(t *testing.T) {
	cfg := NewConfig(
		WithCrawler("https://crawl.example/", "k"),
		WithLLM("https://llm.example", "k", "m"),
		WithEmbedding("http://embed:8080", "", "m"),
	)
	cfg.Normalize()

	assert.Equal(t, "https://crawl.example", cfg.CrawlerHost)
	assert.Equal(t, "https://llm.example/v1", cfg.LLMHost)
	assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	t.Run("missing llm model", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LLMModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing embedding host", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.EmbeddingHost = ""
		assert.Error(t, cfg.Validate())
	})
}
