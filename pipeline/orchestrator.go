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


package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/harborview/signals/capability"
	"github.com/harborview/signals/core"
	"github.com/harborview/signals/knowledge"
	"github.com/harborview/signals/storage"
	"github.com/harborview/signals/synthesis"
	"golang.org/x/sync/errgroup"
)

const (
	defaultIngestTimeout  = 240 * time.Second
	defaultProcessTimeout = 120 * time.Second
)

// Stores groups the repositories the orchestrator persists into.
type Stores struct {
	Profiles  storage.ProfileRepository
	Snapshots storage.SnapshotRepository
	Metrics   storage.MetricRepository
}

// Collaborators groups the external capabilities used during ingestion.
// Parser and DeepDiver may be nil when those inputs never occur.
type Collaborators struct {
	Crawler   capability.Crawler
	DeepDiver capability.DeepDiver
	Parser    capability.DocumentParser
}

// Orchestrator runs the two-stage intelligence pipeline: parallel
// ingestion (crawl, document parse, specialist agents), then parallel
// synthesis and indexing, then a single persistence step.
//
// Failure policy: every ingestion and processing sub-task failure is
// absorbed and degraded to an empty value. Only two things abort a
// run: a request with no identifier at all, and a storage failure at
// the persistence step.
type Orchestrator struct {
	stores      Stores
	collab      Collaborators
	synthesizer *synthesis.Synthesizer
	indexer     *knowledge.Indexer

	missions       []Mission
	ingestTimeout  time.Duration
	processTimeout time.Duration
	logger         *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithMissions replaces the default specialist roster.
func WithMissions(missions []Mission) Option {
	return func(o *Orchestrator) error {
		o.missions = missions
		return nil
	}
}

// WithTimeouts overrides the per-stage deadlines.
func WithTimeouts(ingest, process time.Duration) Option {
	return func(o *Orchestrator) error {
		if ingest > 0 {
			o.ingestTimeout = ingest
		}
		if process > 0 {
			o.processTimeout = process
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates a pipeline orchestrator.
func NewOrchestrator(stores Stores, collab Collaborators, synthesizer *synthesis.Synthesizer, indexer *knowledge.Indexer, opts ...Option) (*Orchestrator, error) {
	if stores.Profiles == nil {
		return nil, ErrProfilesRequired
	}
	if stores.Snapshots == nil {
		return nil, ErrSnapshotsRequired
	}
	if stores.Metrics == nil {
		return nil, ErrMetricsRequired
	}
	if synthesizer == nil {
		return nil, ErrSynthesizerRequired
	}
	if indexer == nil {
		return nil, ErrIndexerRequired
	}

	o := &Orchestrator{
		stores:         stores,
		collab:         collab,
		synthesizer:    synthesizer,
		indexer:        indexer,
		missions:       DefaultMissions(),
		ingestTimeout:  defaultIngestTimeout,
		processTimeout: defaultProcessTimeout,
		logger:         slog.Default().With("component", "pipeline"),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Request is one pipeline invocation. At least one of Name, URL or
// Document must be set.
type Request struct {
	Name         string
	URL          string
	Document     []byte
	DocumentName string
}

func (r *Request) hasIdentifier() bool {
	return r.Name != "" || r.URL != "" || len(r.Document) > 0
}

// RunResult is the outcome of one completed pipeline run.
type RunResult struct {
	Profile         *core.CompanyProfile
	Elapsed         time.Duration
	AgentsCompleted []string
}

// ingestion carries everything stage one gathered. Failed sub-tasks
// leave their slot empty rather than aborting the stage.
type ingestion struct {
	crawl        *capability.CrawlResult
	document     *capability.ParsedDocument
	agentResults map[string]map[string]any
}

// Run executes the full pipeline for one request.
func (o *Orchestrator) Run(ctx context.Context, req *Request) (*RunResult, error) {
	start := time.Now()

	if req == nil || !req.hasIdentifier() {
		return nil, ErrNoIdentifier
	}

	identifier := req.Name
	if identifier == "" {
		identifier = req.URL
	}
	if identifier == "" {
		identifier = "document"
	}
	o.logger.Info("starting pipeline run", "identifier", identifier)

	gathered := o.ingest(ctx, req)

	corpus, agentMetrics := o.merge(gathered)
	workingName := o.workingName(req, gathered)
	slug := core.Slugify(workingName)

	analysis := o.process(ctx, req, slug, corpus, gathered)

	profile, err := o.persist(ctx, req, slug, workingName, analysis, agentMetrics, gathered)
	if err != nil {
		return nil, err
	}

	topics := make([]string, 0, len(gathered.agentResults))
	for _, mission := range o.missions {
		if _, ok := gathered.agentResults[mission.Topic]; ok {
			topics = append(topics, mission.Topic)
		}
	}

	elapsed := time.Since(start)
	o.logger.Info("pipeline run done", "slug", slug, "elapsed", elapsed, "agents", len(topics))
	return &RunResult{
		Profile:         profile,
		Elapsed:         elapsed,
		AgentsCompleted: topics,
	}, nil
}

// Refresh resolves a stored profile and re-runs the pipeline with its
// identity.
func (o *Orchestrator) Refresh(ctx context.Context, slug string) (*RunResult, error) {
	existing, err := o.stores.Profiles.GetProfile(ctx, slug)
	if err != nil {
		return nil, err
	}

	o.logger.Info("refreshing company", "slug", slug, "name", existing.Name)
	return o.Run(ctx, &Request{
		Name: existing.Name,
		URL:  existing.Website,
	})
}

// ingest runs stage one: web crawl, document parse and the specialist
// swarm, all in parallel. Sub-task errors are logged and absorbed; the
// stage itself never fails.
func (o *Orchestrator) ingest(ctx context.Context, req *Request) *ingestion {
	ctx, cancel := context.WithTimeout(ctx, o.ingestTimeout)
	defer cancel()

	gathered := &ingestion{agentResults: make(map[string]map[string]any)}
	g, gctx := errgroup.WithContext(ctx)

	if (req.Name != "" || req.URL != "") && o.collab.Crawler != nil {
		g.Go(func() error {
			crawl, err := o.crawl(gctx, req)
			if err != nil {
				o.logger.Warn("web crawl failed", "err", err)
				return nil
			}
			gathered.crawl = crawl
			return nil
		})
	}

	if len(req.Document) > 0 && o.collab.Parser != nil {
		g.Go(func() error {
			doc, err := o.collab.Parser.ParseDocument(gctx, req.DocumentName, req.Document)
			if err != nil {
				o.logger.Warn("document parse failed", "filename", req.DocumentName, "err", err)
				return nil
			}
			gathered.document = doc
			return nil
		})
	}

	if req.Name != "" && o.collab.DeepDiver != nil {
		results := make([]map[string]any, len(o.missions))
		for i := range o.missions {
			mission := o.missions[i]
			idx := i
			g.Go(func() error {
				result, err := o.collab.DeepDiver.DeepDive(gctx, req.Name, mission.FullPrompt(req.Name), mission.Schema)
				if err != nil {
					o.logger.Warn("agent mission failed", "mission", mission.Name, "err", err)
					return nil
				}
				if len(result) == 0 {
					o.logger.Warn("agent mission returned empty", "mission", mission.Name)
					return nil
				}
				results[idx] = result
				return nil
			})
		}
		g.Wait()
		for i, mission := range o.missions {
			if results[i] != nil {
				gathered.agentResults[mission.Topic] = results[i]
			}
		}
		return gathered
	}

	g.Wait()
	return gathered
}

// crawl resolves the target URL if only a name is known, then crawls.
func (o *Orchestrator) crawl(ctx context.Context, req *Request) (*capability.CrawlResult, error) {
	target := req.URL
	if target == "" {
		resolved, err := o.collab.Crawler.ResolveWebsite(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		target = resolved
	}
	return o.collab.Crawler.Crawl(ctx, target)
}

// merge folds agent findings into the crawl corpus and renders the
// structured findings for storage. Agent reports are appended to the
// corpus so both synthesis and the knowledge index see them.
func (o *Orchestrator) merge(gathered *ingestion) (string, map[string]string) {
	var corpus strings.Builder
	if gathered.crawl != nil {
		corpus.WriteString(gathered.crawl.Corpus())
	}

	agentMetrics := make(map[string]string, len(gathered.agentResults))
	for _, mission := range o.missions {
		result, ok := gathered.agentResults[mission.Topic]
		if !ok {
			continue
		}
		rendered, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			o.logger.Warn("agent result not serializable", "topic", mission.Topic, "err", err)
			continue
		}
		corpus.WriteString("\n\n=== AGENT REPORT: ")
		corpus.WriteString(strings.ToUpper(mission.Topic))
		corpus.WriteString(" ===\n")
		corpus.Write(rendered)
		agentMetrics[mission.Topic] = string(rendered)
	}
	return corpus.String(), agentMetrics
}

// workingName picks the provisional company name the slug derives
// from: explicit name first, then the crawl target, then
// "uploaded-doc" for document-only requests, then "unknown".
func (o *Orchestrator) workingName(req *Request, gathered *ingestion) string {
	if req.Name != "" {
		return req.Name
	}
	if gathered.crawl != nil && gathered.crawl.ResolvedURL != "" {
		return gathered.crawl.ResolvedURL
	}
	if req.URL != "" {
		return req.URL
	}
	if len(req.Document) > 0 {
		return "uploaded-doc"
	}
	return "unknown"
}

// process runs stage two: synthesis and knowledge indexing in
// parallel. Indexing failures are absorbed; synthesis cannot fail by
// contract.
func (o *Orchestrator) process(ctx context.Context, req *Request, slug, corpus string, gathered *ingestion) *core.Analysis {
	ctx, cancel := context.WithTimeout(ctx, o.processTimeout)
	defer cancel()

	input := &synthesis.Input{
		Name:      req.Name,
		URL:       req.URL,
		WebCorpus: corpus,
	}
	if gathered.document != nil {
		input.DocumentText = gathered.document.Text
	}

	var analysis *core.Analysis
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		analysis = o.synthesizer.Synthesize(gctx, input)
		return nil
	})

	if corpus != "" {
		g.Go(func() error {
			if err := o.indexer.Index(gctx, slug, core.SourceWeb, corpus); err != nil {
				o.logger.Warn("web corpus indexing failed", "slug", slug, "err", err)
			}
			return nil
		})
	}
	if gathered.document != nil && gathered.document.Text != "" {
		g.Go(func() error {
			if err := o.indexer.Index(gctx, slug, core.SourceDocument, gathered.document.Text); err != nil {
				o.logger.Warn("document indexing failed", "slug", slug, "err", err)
			}
			return nil
		})
	}

	g.Wait()
	return analysis
}

// persist writes the profile, its snapshot and a metric sample in that
// order. This is the only stage whose errors propagate.
func (o *Orchestrator) persist(ctx context.Context, req *Request, slug, workingName string, analysis *core.Analysis, agentMetrics map[string]string, gathered *ingestion) (*core.CompanyProfile, error) {
	finalName := analysis.Name
	if finalName == "" {
		finalName = workingName
	}

	website := req.URL
	if website == "" {
		website = analysis.Website
	}
	if website == "" && gathered.crawl != nil {
		website = gathered.crawl.ResolvedURL
	}

	now := time.Now().UTC()
	profile := &core.CompanyProfile{
		Slug:         slug,
		Name:         finalName,
		Website:      website,
		Description:  analysis.Summary,
		Analysis:     *analysis,
		AgentMetrics: agentMetrics,
		Monitoring:   core.DefaultMonitoring(now),
		CrawledAt:    now,
		UpdatedAt:    now,
	}

	stored, err := o.stores.Profiles.UpsertProfile(ctx, profile)
	if err != nil {
		return nil, err
	}

	if err := o.stores.Snapshots.AddSnapshot(ctx, &core.Snapshot{
		Slug:         slug,
		Analysis:     *analysis,
		AgentMetrics: agentMetrics,
		Timestamp:    now,
	}); err != nil {
		return nil, err
	}

	if err := o.stores.Metrics.AddSample(ctx, o.buildSample(slug, now, analysis, gathered)); err != nil {
		return nil, err
	}

	return stored, nil
}

// buildSample flattens the analysis metrics plus agent-derived signals
// into one time-series row.
func (o *Orchestrator) buildSample(slug string, now time.Time, analysis *core.Analysis, gathered *ingestion) *core.MetricSample {
	sample := &core.MetricSample{
		Slug:           slug,
		Timestamp:      now,
		Sentiment:      analysis.Metrics.Sentiment,
		SignalStrength: analysis.Metrics.SignalStrength,
		PMFScore:       analysis.Metrics.PMFScore,
	}

	if hiring, ok := gathered.agentResults["hiring_velocity"]; ok {
		if status, ok := hiring["hiring_status"].(string); ok {
			sample.HiringStatus = status
		}
		if roles, ok := hiring["open_roles_count"].(float64); ok {
			sample.OpenRoles = int(roles)
		}
	}
	if pricing, ok := gathered.agentResults["pricing_model"]; ok {
		if freeTier, ok := pricing["has_free_tier"].(bool); ok {
			sample.HasFreeTier = freeTier
		}
	}
	return sample
}
