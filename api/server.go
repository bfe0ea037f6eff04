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


package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/harborview/signals/capability"
	"github.com/harborview/signals/core"
	"github.com/harborview/signals/jobs"
	"github.com/harborview/signals/pipeline"
	"github.com/harborview/signals/storage"
)

// Runner is the pipeline surface the API drives.
type Runner interface {
	Run(ctx context.Context, req *pipeline.Request) (*pipeline.RunResult, error)
	Refresh(ctx context.Context, slug string) (*pipeline.RunResult, error)
}

// KnowledgeSearcher answers natural-language queries against the
// knowledge index.
type KnowledgeSearcher interface {
	Search(ctx context.Context, slug, query string, maxHits int) ([]*core.ChunkMatch, error)
}

// Server exposes the intelligence system over HTTP. Discussions and
// Alerts are optional; their endpoints return 404 when unset.
type Server struct {
	profiles  storage.ProfileRepository
	snapshots storage.SnapshotRepository
	metrics   storage.MetricRepository

	runner      Runner
	jobRunner   *jobs.Runner
	jobStore    jobs.Store
	searcher    KnowledgeSearcher
	discussions capability.DiscussionSearcher
	alerts      capability.AlertSender

	logger *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server) error

// WithDiscussions enables the community discussion endpoints.
func WithDiscussions(searcher capability.DiscussionSearcher) ServerOption {
	return func(s *Server) error {
		s.discussions = searcher
		return nil
	}
}

// WithAlerts enables the notification endpoint.
func WithAlerts(sender capability.AlertSender) ServerOption {
	return func(s *Server) error {
		s.alerts = sender
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewServer creates the HTTP API server.
func NewServer(
	profiles storage.ProfileRepository,
	snapshots storage.SnapshotRepository,
	metrics storage.MetricRepository,
	runner Runner,
	jobRunner *jobs.Runner,
	jobStore jobs.Store,
	searcher KnowledgeSearcher,
	opts ...ServerOption,
) (*Server, error) {
	if profiles == nil {
		return nil, ErrProfilesRequired
	}
	if snapshots == nil {
		return nil, ErrSnapshotsRequired
	}
	if metrics == nil {
		return nil, ErrMetricsRequired
	}
	if runner == nil {
		return nil, ErrRunnerRequired
	}
	if jobRunner == nil || jobStore == nil {
		return nil, ErrJobsRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	s := &Server{
		profiles:  profiles,
		snapshots: snapshots,
		metrics:   metrics,
		runner:    runner,
		jobRunner: jobRunner,
		jobStore:  jobStore,
		searcher:  searcher,
		logger:    slog.Default().With("component", "api"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Router builds the chi router with every endpoint mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/analyze", s.handleAnalyze)
		r.Get("/jobs/{id}", s.handleJobStatus)

		r.Route("/companies", func(r chi.Router) {
			r.Get("/", s.handleListCompanies)
			r.Get("/search", s.handleSearchCompanies)

			r.Route("/{slug}", func(r chi.Router) {
				r.Get("/", s.handleGetCompany)
				r.Delete("/", s.handleDeleteCompany)
				r.Get("/snapshots", s.handleSnapshots)
				r.Get("/metrics", s.handleMetrics)
				r.Post("/refresh", s.handleRefresh)
				r.Put("/watchlist", s.handleWatchlist)
				r.Get("/knowledge", s.handleKnowledgeSearch)
				r.Get("/discussions", s.handleDiscussions)
				r.Post("/notify", s.handleNotify)
			})
		})
	})
	return r
}

// Serve runs the HTTP server until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start),
		)
	})
}
