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


package signals

import (
	"log/slog"

	"github.com/harborview/signals/capability"
	"github.com/harborview/signals/capability/alert"
	"github.com/harborview/signals/capability/docparse"
	"github.com/harborview/signals/capability/embed"
	"github.com/harborview/signals/capability/firecrawl"
	"github.com/harborview/signals/capability/hn"
	"github.com/harborview/signals/capability/openrouter"
	"github.com/harborview/signals/capability/reducto"
	"github.com/harborview/signals/jobs"
	"github.com/harborview/signals/knowledge"
	"github.com/harborview/signals/pipeline"
	"github.com/harborview/signals/storage"
	"github.com/harborview/signals/storage/badger"
	"github.com/harborview/signals/synthesis"
)

// System wires the storage backend and external capabilities into one
// handle. Everything downstream (pipeline, searcher, jobs, API) is
// built from it.
type System struct {
	backend       *badger.Backend
	profileRepo   storage.ProfileRepository
	snapshotRepo  storage.SnapshotRepository
	metricRepo    storage.MetricRepository
	knowledgeRepo storage.KnowledgeRepository

	crawler     capability.Crawler
	deepDiver   capability.DeepDiver
	parser      capability.DocumentParser
	completer   capability.Completer
	embedder    capability.Embedder
	discussions capability.DiscussionSearcher
	alerts      capability.AlertSender

	logger *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	capConfig *capability.Config
	localPDF  bool
}

// WithCapabilityConfig sets the external service configuration.
// Default is capability.DefaultConfig().
func WithCapabilityConfig(config *capability.Config) SystemOption {
	return func(o *systemOptions) {
		o.capConfig = config
	}
}

// WithLocalPDFParser parses uploaded PDFs in-process instead of
// sending them to the hosted parsing service.
func WithLocalPDFParser() SystemOption {
	return func(o *systemOptions) {
		o.localPDF = true
	}
}

// NewSystem opens the database at filePath and connects every
// capability client. An empty filePath opens an in-memory database.
func NewSystem(filePath string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		capConfig: capability.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if err := options.capConfig.Validate(); err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(filePath, filePath == "")
	if err != nil {
		return nil, err
	}

	snapshotRepo, err := badger.NewSnapshotRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	metricRepo, err := badger.NewMetricRepository(backend)
	if err != nil {
		snapshotRepo.Close()
		backend.Close()
		return nil, err
	}

	crawler, err := firecrawl.NewClient(options.capConfig)
	if err != nil {
		metricRepo.Close()
		snapshotRepo.Close()
		backend.Close()
		return nil, err
	}

	completer, err := openrouter.NewCompleter(options.capConfig)
	if err != nil {
		metricRepo.Close()
		snapshotRepo.Close()
		backend.Close()
		return nil, err
	}

	embedder, err := embed.NewEmbedder(options.capConfig)
	if err != nil {
		metricRepo.Close()
		snapshotRepo.Close()
		backend.Close()
		return nil, err
	}

	var parser capability.DocumentParser
	if options.localPDF {
		parser = docparse.NewPDFParser()
	} else {
		parser, err = reducto.NewParser(options.capConfig)
		if err != nil {
			metricRepo.Close()
			snapshotRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &System{
		backend:       backend,
		profileRepo:   badger.NewProfileRepository(backend),
		snapshotRepo:  snapshotRepo,
		metricRepo:    metricRepo,
		knowledgeRepo: badger.NewKnowledgeRepository(backend),
		crawler:       crawler,
		deepDiver:     crawler,
		parser:        parser,
		completer:     completer,
		embedder:      embedder,
		discussions:   hn.NewClient(),
		alerts:        alert.NewMailer(options.capConfig),
		logger:        slog.Default(),
	}, nil
}

func (s *System) Close() error {
	if err := s.metricRepo.Close(); err != nil {
		s.logger.Error("error closing metric repository", "err", err)
		return err
	}
	if err := s.snapshotRepo.Close(); err != nil {
		s.logger.Error("error closing snapshot repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *System) ProfileRepository() storage.ProfileRepository {
	return s.profileRepo
}

func (s *System) SnapshotRepository() storage.SnapshotRepository {
	return s.snapshotRepo
}

func (s *System) MetricRepository() storage.MetricRepository {
	return s.metricRepo
}

func (s *System) KnowledgeRepository() storage.KnowledgeRepository {
	return s.knowledgeRepo
}

func (s *System) Discussions() capability.DiscussionSearcher {
	return s.discussions
}

func (s *System) Alerts() capability.AlertSender {
	return s.alerts
}

func (s *System) NewIndexer(opts ...knowledge.IndexerOption) (*knowledge.Indexer, error) {
	return knowledge.NewIndexer(s.knowledgeRepo, s.embedder, opts...)
}

func (s *System) NewSearcher(opts ...knowledge.SearcherOption) (*knowledge.Searcher, error) {
	return knowledge.NewSearcher(s.knowledgeRepo, s.embedder, opts...)
}

func (s *System) NewReembedder(config *knowledge.ReembedConfig) (*knowledge.Reembedder, error) {
	return knowledge.NewReembedder(s.profileRepo, s.knowledgeRepo, s.embedder, config)
}

func (s *System) NewOrchestrator(opts ...pipeline.Option) (*pipeline.Orchestrator, error) {
	indexer, err := s.NewIndexer()
	if err != nil {
		return nil, err
	}
	return pipeline.NewOrchestrator(
		pipeline.Stores{
			Profiles:  s.profileRepo,
			Snapshots: s.snapshotRepo,
			Metrics:   s.metricRepo,
		},
		pipeline.Collaborators{
			Crawler:   s.crawler,
			DeepDiver: s.deepDiver,
			Parser:    s.parser,
		},
		synthesis.NewSynthesizer(s.completer),
		indexer,
		opts...,
	)
}

func (s *System) NewJobRunner(opts ...jobs.RunnerOption) (*jobs.Runner, jobs.Store, error) {
	store := jobs.NewMemoryStore()
	runner, err := jobs.NewRunner(store, opts...)
	if err != nil {
		return nil, nil, err
	}
	return runner, store, nil
}
