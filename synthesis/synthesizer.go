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


// Package synthesis turns a merged ingestion corpus into a structured
// company analysis via an LLM. Synthesize never returns an error: any
// failure degrades to a neutral fallback analysis carrying the error
// text, so the pipeline always has something to persist.
package synthesis

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/harborview/signals/capability"
	"github.com/harborview/signals/core"
)

// Input is the material available for one synthesis call.
type Input struct {
	// Name is the company name if the caller knows it.
	Name string

	// URL is the company website if the caller knows it.
	URL string

	// WebCorpus is the merged crawl text including any specialist
	// agent reports.
	WebCorpus string

	// DocumentText is the extracted text of an uploaded document.
	DocumentText string
}

// Identifier returns the best human label for the company.
func (in *Input) Identifier() string {
	if in.Name != "" {
		return in.Name
	}
	if in.URL != "" {
		return in.URL
	}
	return "Unknown Company"
}

// Synthesizer produces company analyses from ingestion corpora.
type Synthesizer struct {
	completer capability.Completer
	logger    *slog.Logger
}

// NewSynthesizer creates a synthesizer on top of a Completer.
func NewSynthesizer(completer capability.Completer) *Synthesizer {
	return &Synthesizer{
		completer: completer,
		logger:    slog.Default().With("component", "synthesis"),
	}
}

// wireAnalysis mirrors the JSON shape the model is asked to produce.
type wireAnalysis struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Metrics struct {
		Sentiment      string  `json:"sentiment"`
		SignalStrength float64 `json:"signal_strength"`
		PMFScore       float64 `json:"pmf_score"`
	} `json:"metrics"`
	Competitors []string `json:"competitors"`
	Strengths   []string `json:"strengths"`
	RedFlags    []string `json:"red_flags"`
	Funding     string   `json:"funding"`
	Website     string   `json:"website"`
}

// Synthesize runs the analysis prompt and parses the response. On any
// failure it returns the fallback analysis instead of an error.
func (s *Synthesizer) Synthesize(ctx context.Context, in *Input) *core.Analysis {
	prompt := buildAnalysisPrompt(in)

	response, err := s.completer.CompleteJSON(ctx, "", prompt)
	if err != nil {
		s.logger.Error("synthesis call failed", "company", in.Identifier(), "err", err)
		return Fallback(in.Identifier(), err.Error())
	}

	cleaned := repairJSON(stripFences(response))

	var wire wireAnalysis
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		s.logger.Error("synthesis response unparsable", "company", in.Identifier(), "err", err)
		return Fallback(in.Identifier(), "unparsable model response: "+err.Error())
	}

	analysis := &core.Analysis{
		Name:    wire.Name,
		Summary: wire.Summary,
		Metrics: core.AnalysisMetrics{
			Sentiment:      normalizeSentiment(wire.Metrics.Sentiment),
			SignalStrength: clamp(int(wire.Metrics.SignalStrength), 0, 100),
			PMFScore:       clamp(int(wire.Metrics.PMFScore), 1, 10),
		},
		Competitors: wire.Competitors,
		Strengths:   wire.Strengths,
		RedFlags:    wire.RedFlags,
		Funding:     wire.Funding,
		Website:     wire.Website,
	}
	if analysis.Name == "" {
		analysis.Name = in.Identifier()
	}
	return analysis
}

// Fallback is the analysis persisted when synthesis could not run.
// Sentiment is neutral, scores floor out, and Error records why.
func Fallback(identifier, reason string) *core.Analysis {
	return &core.Analysis{
		Name:    identifier,
		Summary: "Analysis failed",
		Metrics: core.AnalysisMetrics{
			Sentiment:      core.SentimentNeutral,
			SignalStrength: 0,
			PMFScore:       1,
		},
		Error: reason,
	}
}

// normalizeSentiment maps model output onto the known sentiment values,
// defaulting to neutral for anything unrecognized.
func normalizeSentiment(s string) core.Sentiment {
	switch core.Sentiment(s) {
	case core.SentimentBullish, core.SentimentBearish, core.SentimentNeutral:
		return core.Sentiment(s)
	}
	return core.SentimentNeutral
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
