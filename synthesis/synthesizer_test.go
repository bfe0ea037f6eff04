package synthesis

import (
	"context"
	"errors"
	"testing"

	"github.com/harborview/signals/capability/mock"
	"github.com/harborview/signals/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeParsesResponse(t *testing.T) {
	completer := mock.NewCompleter()
	completer.CompleteJSONFunc = func(ctx context.Context, system, user string) (string, error) {
		assert.Contains(t, user, "Acme Corp")
		assert.Contains(t, user, "homepage text")
		return `{
			"name": "Acme Corp",
			"summary": "Anvil logistics at rocket speed.",
			"metrics": {"sentiment": "Bullish", "signal_strength": 82, "pmf_score": 7},
			"competitors": ["Wile E. Supplies"],
			"strengths": ["Fast delivery"],
			"red_flags": [],
			"funding": "$10M raised",
			"website": "https://acme.example"
		}`, nil
	}

	analysis := NewSynthesizer(completer).Synthesize(context.Background(), &Input{
		Name:      "Acme Corp",
		WebCorpus: "homepage text",
	})

	require.NotNil(t, analysis)
	assert.Equal(t, "Acme Corp", analysis.Name)
	assert.Equal(t, core.SentimentBullish, analysis.Metrics.Sentiment)
	assert.Equal(t, 82, analysis.Metrics.SignalStrength)
	assert.Equal(t, 7, analysis.Metrics.PMFScore)
	assert.Equal(t, []string{"Wile E. Supplies"}, analysis.Competitors)
	assert.Empty(t, analysis.Error)
}

func TestSynthesizeClampsScores(t *testing.T) {
	completer := mock.NewCompleter()
	completer.CompleteJSONFunc = func(ctx context.Context, system, user string) (string, error) {
		return `{"name":"Acme Corp","summary":"x","metrics":{"sentiment":"Bullish","signal_strength":150,"pmf_score":0}}`, nil
	}

	analysis := NewSynthesizer(completer).Synthesize(context.Background(), &Input{Name: "Acme Corp"})

	assert.Equal(t, 100, analysis.Metrics.SignalStrength)
	assert.Equal(t, 1, analysis.Metrics.PMFScore)
}

func TestSynthesizeStripsFences(t *testing.T) {
	completer := mock.NewCompleter()
	completer.CompleteJSONFunc = func(ctx context.Context, system, user string) (string, error) {
		return "```json\n{\"name\":\"Acme\",\"summary\":\"s\",\"metrics\":{\"sentiment\":\"Neutral\",\"signal_strength\":10,\"pmf_score\":5}}\n```", nil
	}

	analysis := NewSynthesizer(completer).Synthesize(context.Background(), &Input{Name: "Acme"})

	assert.Equal(t, "Acme", analysis.Name)
	assert.Equal(t, 10, analysis.Metrics.SignalStrength)
	assert.Empty(t, analysis.Error)
}

func TestSynthesizeFallbackOnCallError(t *testing.T) {
	completer := mock.NewCompleter()
	completer.CompleteJSONFunc = func(ctx context.Context, system, user string) (string, error) {
		return "", errors.New("model unavailable")
	}

	analysis := NewSynthesizer(completer).Synthesize(context.Background(), &Input{Name: "Acme Corp"})

	require.NotNil(t, analysis)
	assert.Equal(t, "Acme Corp", analysis.Name)
	assert.Equal(t, "Analysis failed", analysis.Summary)
	assert.Equal(t, core.SentimentNeutral, analysis.Metrics.Sentiment)
	assert.Equal(t, 0, analysis.Metrics.SignalStrength)
	assert.Contains(t, analysis.Error, "model unavailable")
}

func TestSynthesizeFallbackOnGarbage(t *testing.T) {
	completer := mock.NewCompleter()
	completer.CompleteJSONFunc = func(ctx context.Context, system, user string) (string, error) {
		return "I'm sorry, I cannot produce JSON today.", nil
	}

	analysis := NewSynthesizer(completer).Synthesize(context.Background(), &Input{URL: "https://acme.example"})

	assert.Equal(t, "https://acme.example", analysis.Name)
	assert.Equal(t, core.SentimentNeutral, analysis.Metrics.Sentiment)
	assert.NotEmpty(t, analysis.Error)
}

func TestSynthesizeUnknownSentiment(t *testing.T) {
	completer := mock.NewCompleter()
	completer.CompleteJSONFunc = func(ctx context.Context, system, user string) (string, error) {
		return `{"name":"Acme","summary":"s","metrics":{"sentiment":"Euphoric","signal_strength":50,"pmf_score":5}}`, nil
	}

	analysis := NewSynthesizer(completer).Synthesize(context.Background(), &Input{Name: "Acme"})
	assert.Equal(t, core.SentimentNeutral, analysis.Metrics.Sentiment)
}

func TestRepairJSON(t *testing.T) {
	broken := `{name": "Acme", summary": "s"}`
	assert.Equal(t, `{"name": "Acme", "summary": "s"}`, repairJSON(broken))

	valid := `{"name": "Acme"}`
	assert.Equal(t, valid, repairJSON(valid))
}

func TestBuildAnalysisPromptTruncation(t *testing.T) {
	longWeb := make([]byte, webBudget+5000)
	for i := range longWeb {
		longWeb[i] = 'w'
	}

	prompt := buildAnalysisPrompt(&Input{Name: "Acme", WebCorpus: string(longWeb)})
	assert.Less(t, len(prompt), webBudget+2000, "web corpus must be truncated to budget")

	empty := buildAnalysisPrompt(&Input{Name: "Acme"})
	assert.Contains(t, empty, "No data available.")
}
