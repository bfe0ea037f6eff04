package storage

import (
	"testing"
	"time"

	"github.com/harborview/signals/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	profile := &core.CompanyProfile{
		Slug:        "acme-corp",
		Name:        "Acme Corp",
		Website:     "https://acme.example.com",
		Description: "Rocket-powered anvils as a service.",
		Analysis: core.Analysis{
			Name:    "Acme Corp",
			Summary: "Strong anvil fundamentals.",
			Metrics: core.AnalysisMetrics{
				Sentiment:      core.SentimentBullish,
				SignalStrength: 87,
				PMFScore:       8,
			},
			Competitors: []string{"Wile E. Industries"},
			Strengths:   []string{"distribution", "brand"},
			RedFlags:    []string{"single customer"},
			Funding:     "$10M raised",
			Website:     "https://acme.example.com",
		},
		AgentMetrics: map[string]string{
			"hiring_velocity": `{"hiring_status":"Aggressive","open_roles_count":42}`,
		},
		Watchlist:  true,
		Monitoring: core.DefaultMonitoring(now),
		CrawledAt:  now,
		UpdatedAt:  now,
	}

	decoded, err := UnmarshalProfile(MarshalProfile(profile))
	require.NoError(t, err)

	assert.Equal(t, profile.Slug, decoded.Slug)
	assert.Equal(t, profile.Name, decoded.Name)
	assert.Equal(t, profile.Analysis, decoded.Analysis)
	assert.Equal(t, profile.AgentMetrics, decoded.AgentMetrics)
	assert.Equal(t, profile.Watchlist, decoded.Watchlist)
	assert.Equal(t, profile.Monitoring.IntervalHours, decoded.Monitoring.IntervalHours)
	assert.True(t, profile.UpdatedAt.Equal(decoded.UpdatedAt))
	assert.True(t, decoded.Monitoring.NextCheck.IsZero(), "zero time must survive the round trip")
}

func TestChunkRoundTrip(t *testing.T) {
	chunk := &core.KnowledgeChunk{
		Slug:   "acme-corp",
		Source: core.SourceWeb,
		Index:  3,
		Text:   "homepage text",
		Vector: []float32{0.1, -0.2, 0.3},
	}

	decoded, err := UnmarshalChunk(MarshalChunk(chunk))
	require.NoError(t, err)
	assert.Equal(t, chunk, decoded)
}

func TestUnmarshalProfileTruncated(t *testing.T) {
	profile := &core.CompanyProfile{Slug: "acme-corp", Name: "Acme Corp"}
	data := MarshalProfile(profile)

	_, err := UnmarshalProfile(data[:len(data)/2])
	assert.Error(t, err)
}
