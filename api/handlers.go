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
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/harborview/signals/capability/alert"
	"github.com/harborview/signals/pipeline"
)

const (
	defaultSnapshotLimit   = 20
	defaultSearchLimit     = 20
	defaultKnowledgeHits   = 5
	defaultDiscussionDays  = 30
	defaultDiscussionLimit = 10
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze queues a pipeline run and returns the pending job.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	runReq := &pipeline.Request{
		Name:         req.Name,
		URL:          req.URL,
		Document:     req.Document,
		DocumentName: req.DocumentName,
	}
	if req.Name == "" && req.URL == "" && len(req.Document) == 0 {
		writeRepoError(w, pipeline.ErrNoIdentifier)
		return
	}

	job, err := s.jobRunner.Submit(r.Context(), "analyze", func(ctx context.Context) (string, error) {
		result, err := s.runner.Run(ctx, runReq)
		if err != nil {
			return "", err
		}
		return result.Profile.Slug, nil
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, toJobResponse(job))
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobStore.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJobResponse(job))
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	watchlistOnly := r.URL.Query().Get("watchlist") == "true"
	profiles, err := s.profiles.ListProfiles(r.Context(), watchlistOnly)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	listed := make([]*profileResponse, len(profiles))
	for i, p := range profiles {
		listed[i] = toProfileResponse(p)
	}
	writeJSON(w, http.StatusOK, listed)
}

func (s *Server) handleSearchCompanies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := queryInt(r, "limit", defaultSearchLimit)

	profiles, err := s.profiles.SearchProfiles(r.Context(), query, limit)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	listed := make([]*profileResponse, len(profiles))
	for i, p := range profiles {
		listed[i] = toProfileResponse(p)
	}
	writeJSON(w, http.StatusOK, listed)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profiles.GetProfile(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	if err := s.profiles.DeleteProfile(r.Context(), chi.URLParam(r, "slug")); err != nil {
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	limit := queryInt(r, "limit", defaultSnapshotLimit)

	snapshots, err := s.snapshots.GetSnapshots(r.Context(), slug, limit)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	listed := make([]*snapshotResponse, len(snapshots))
	for i, snap := range snapshots {
		listed[i] = toSnapshotResponse(snap)
	}
	writeJSON(w, http.StatusOK, listed)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	since := time.Time{}
	if days := queryInt(r, "days", 0); days > 0 {
		since = time.Now().UTC().AddDate(0, 0, -days)
	}

	samples, err := s.metrics.GetSamples(r.Context(), slug, since)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	listed := make([]*sampleResponse, len(samples))
	for i, sample := range samples {
		listed[i] = toSampleResponse(sample)
	}
	writeJSON(w, http.StatusOK, listed)
}

// handleRefresh queues a re-run for an existing company.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	// resolve now so unknown slugs fail the request, not the job
	if _, err := s.profiles.GetProfile(r.Context(), slug); err != nil {
		writeRepoError(w, err)
		return
	}

	job, err := s.jobRunner.Submit(r.Context(), "refresh", func(ctx context.Context) (string, error) {
		result, err := s.runner.Refresh(ctx, slug)
		if err != nil {
			return "", err
		}
		return result.Profile.Slug, nil
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, toJobResponse(job))
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	var req watchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	slug := chi.URLParam(r, "slug")
	if err := s.profiles.SetWatchlist(r.Context(), slug, req.Enabled); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slug": slug, "watchlist": req.Enabled})
}

func (s *Server) handleKnowledgeSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	limit := queryInt(r, "limit", defaultKnowledgeHits)

	matches, err := s.searcher.Search(r.Context(), chi.URLParam(r, "slug"), query, limit)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	listed := make([]*chunkMatchResponse, len(matches))
	for i, match := range matches {
		listed[i] = &chunkMatchResponse{
			Source: string(match.Chunk.Source),
			Text:   match.Chunk.Text,
			Score:  match.Score,
		}
	}
	writeJSON(w, http.StatusOK, listed)
}

// handleDiscussions surfaces recent community threads about a company.
func (s *Server) handleDiscussions(w http.ResponseWriter, r *http.Request) {
	if s.discussions == nil {
		writeError(w, http.StatusNotFound, "discussion search is not configured")
		return
	}

	profile, err := s.profiles.GetProfile(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeRepoError(w, err)
		return
	}

	days := queryInt(r, "days", defaultDiscussionDays)
	limit := queryInt(r, "limit", defaultDiscussionLimit)
	since := time.Now().UTC().AddDate(0, 0, -days)

	found, err := s.discussions.SearchDiscussions(r.Context(), profile.Name, since, limit)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	listed := make([]*discussionResponse, len(found))
	for i, d := range found {
		listed[i] = toDiscussionResponse(d)
	}
	writeJSON(w, http.StatusOK, listed)
}

// handleNotify emails the latest intelligence for a company.
func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	if s.alerts == nil {
		writeError(w, http.StatusNotFound, "alerts are not configured")
		return
	}

	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Recipient == "" {
		writeError(w, http.StatusBadRequest, "recipient is required")
		return
	}

	profile, err := s.profiles.GetProfile(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeRepoError(w, err)
		return
	}

	subject := "Intelligence Update: " + profile.Name
	body := alert.IntelligenceUpdateHTML(profile.Name, profile.Analysis.Summary, profile.Analysis.RedFlags)
	if err := s.alerts.SendAlert(r.Context(), req.Recipient, subject, body); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent", "recipient": req.Recipient})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
