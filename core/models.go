package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Digest is a content fingerprint for ingested text.
// Identical text always produces an identical digest.
type Digest uint64

// DigestFromContent computes a deterministic digest from text using BLAKE2b.
func DigestFromContent(text string) Digest {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Digest(binary.LittleEndian.Uint64(sum))
}

// Sentiment classifies the overall market signal for a company.
type Sentiment string

const (
	SentimentBullish Sentiment = "Bullish"
	SentimentBearish Sentiment = "Bearish"
	SentimentNeutral Sentiment = "Neutral"
)

// AnalysisMetrics holds the scored portion of an analysis.
// SignalStrength is always within [0,100] and PMFScore within [1,10];
// out-of-range upstream values are clamped at the synthesis boundary.
type AnalysisMetrics struct {
	Sentiment      Sentiment
	SignalStrength int
	PMFScore       int
}

// Analysis is the structured intelligence produced by the synthesizer.
// All fields are defaultable; Error is set when synthesis fell back to
// the neutral default instead of a real model response.
type Analysis struct {
	Name        string
	Summary     string
	Metrics     AnalysisMetrics
	Competitors []string
	Strengths   []string
	RedFlags    []string
	Funding     string
	Website     string
	Error       string
}

// Monitoring holds the recheck schedule for a company.
// It is written once at profile creation and owned by the scheduler
// afterwards; pipeline runs never modify it.
type Monitoring struct {
	Active        bool
	IntervalHours int
	LastChecked   time.Time
	NextCheck     time.Time
}

// DefaultMonitoring returns the monitoring config assigned to new profiles.
func DefaultMonitoring(now time.Time) Monitoring {
	return Monitoring{
		Active:        false,
		IntervalHours: 24,
		LastChecked:   now,
	}
}

// CompanyProfile is the single source of truth for one logical company,
// keyed by Slug. AgentMetrics maps a mission topic (e.g. "hiring_velocity")
// to that mission's raw JSON result; a missing key means the specialist
// failed or was skipped.
type CompanyProfile struct {
	Slug         string
	Name         string
	Website      string
	Description  string
	Analysis     Analysis
	AgentMetrics map[string]string
	Watchlist    bool
	Monitoring   Monitoring
	CrawledAt    time.Time
	UpdatedAt    time.Time
}

// Snapshot is an immutable point-in-time capture of a run's analysis
// output, kept for history and audit. Snapshots are append-only.
type Snapshot struct {
	Slug         string
	Analysis     Analysis
	AgentMetrics map[string]string
	Timestamp    time.Time
}

// MetricSample is one row of the per-company metric time series,
// written once per successful run when the analysis carried metrics.
type MetricSample struct {
	Slug           string
	Timestamp      time.Time
	Sentiment      Sentiment
	SignalStrength int
	PMFScore       int
	HiringStatus   string
	OpenRoles      int
	HasFreeTier    bool
}

// ChunkSource identifies which ingestion path produced a knowledge chunk.
type ChunkSource string

const (
	SourceWeb      ChunkSource = "web"
	SourceDocument ChunkSource = "document"
)

// KnowledgeChunk is a bounded-size slice of corpus text with its
// embedding vector. The chunk set for a (Slug, Source) pair is always
// replaced as a whole on re-indexing, never merged.
type KnowledgeChunk struct {
	Slug   string
	Source ChunkSource
	Index  int
	Text   string
	Vector []float32
}

// ChunkMatch is a knowledge chunk returned by vector similarity search.
type ChunkMatch struct {
	Chunk *KnowledgeChunk
	Score float32
}
