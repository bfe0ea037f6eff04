package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/signals/capability/mock"
	"github.com/harborview/signals/core"
	"github.com/harborview/signals/jobs"
	"github.com/harborview/signals/pipeline"
	badgerstore "github.com/harborview/signals/storage/badger"
)

// stubRunner satisfies Runner with scripted behavior.
type stubRunner struct {
	RunFunc     func(ctx context.Context, req *pipeline.Request) (*pipeline.RunResult, error)
	RefreshFunc func(ctx context.Context, slug string) (*pipeline.RunResult, error)
}

func (s *stubRunner) Run(ctx context.Context, req *pipeline.Request) (*pipeline.RunResult, error) {
	if s.RunFunc != nil {
		return s.RunFunc(ctx, req)
	}
	return &pipeline.RunResult{Profile: &core.CompanyProfile{Slug: "acme-corp", Name: "Acme Corp"}}, nil
}

func (s *stubRunner) Refresh(ctx context.Context, slug string) (*pipeline.RunResult, error) {
	if s.RefreshFunc != nil {
		return s.RefreshFunc(ctx, slug)
	}
	return &pipeline.RunResult{Profile: &core.CompanyProfile{Slug: slug, Name: "Acme Corp"}}, nil
}

// stubSearcher satisfies KnowledgeSearcher.
type stubSearcher struct {
	matches []*core.ChunkMatch
	err     error
}

func (s *stubSearcher) Search(ctx context.Context, slug, query string, maxHits int) ([]*core.ChunkMatch, error) {
	return s.matches, s.err
}

type apiFixture struct {
	server    *Server
	repos     *badgerstore.Repositories
	runner    *stubRunner
	searcher  *stubSearcher
	jobRunner *jobs.Runner
	jobStore  *jobs.MemoryStore
	alerts    *mock.AlertSender
}

func setupServer(t *testing.T) *apiFixture {
	t.Helper()

	repos, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	jobStore := jobs.NewMemoryStore()
	jobRunner, err := jobs.NewRunner(jobStore, jobs.WithPoolSize(1))
	require.NoError(t, err)
	t.Cleanup(jobRunner.Release)

	f := &apiFixture{
		repos:     repos,
		runner:    &stubRunner{},
		searcher:  &stubSearcher{},
		jobRunner: jobRunner,
		jobStore:  jobStore,
		alerts:    mock.NewAlertSender(),
	}

	f.server, err = NewServer(
		repos.Profiles, repos.Snapshots, repos.Metrics,
		f.runner, jobRunner, jobStore, f.searcher,
		WithDiscussions(mock.NewDiscussionSearcher()),
		WithAlerts(f.alerts),
	)
	require.NoError(t, err)
	return f
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	f.server.Router().ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) seedProfile(t *testing.T, slug, name string) {
	t.Helper()
	_, err := f.repos.Profiles.UpsertProfile(context.Background(), &core.CompanyProfile{
		Slug: slug,
		Name: name,
		Analysis: core.Analysis{
			Summary: "A seeded company.",
			Metrics: core.AnalysisMetrics{Sentiment: core.SentimentBullish, SignalStrength: 70, PMFScore: 6},
		},
		Monitoring: core.DefaultMonitoring(time.Now().UTC()),
	})
	require.NoError(t, err)
}

func TestHealth(t *testing.T) {
	f := setupServer(t)
	rec := f.do(t, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestAnalyzeQueuesJob(t *testing.T) {
	f := setupServer(t)

	rec := f.do(t, http.MethodPost, "/api/v1/analyze", map[string]string{"name": "Acme Corp"})
	require.Equal(t, http.StatusAccepted, rec.Code)

	var job jobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "analyze", job.Kind)

	f.jobRunner.Wait()

	rec = f.do(t, http.MethodGet, "/api/v1/jobs/"+job.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var done jobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &done))
	assert.Equal(t, string(jobs.StatusCompleted), done.Status)
	assert.Equal(t, "acme-corp", done.Slug)
}

func TestAnalyzeRejectsEmptyRequest(t *testing.T) {
	f := setupServer(t)
	rec := f.do(t, http.MethodPost, "/api/v1/analyze", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeJobFailure(t *testing.T) {
	f := setupServer(t)
	f.runner.RunFunc = func(context.Context, *pipeline.Request) (*pipeline.RunResult, error) {
		return nil, errors.New("upstream down")
	}

	rec := f.do(t, http.MethodPost, "/api/v1/analyze", map[string]string{"name": "Acme Corp"})
	require.Equal(t, http.StatusAccepted, rec.Code)

	var job jobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))

	f.jobRunner.Wait()

	rec = f.do(t, http.MethodGet, "/api/v1/jobs/"+job.ID, nil)
	var done jobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &done))
	assert.Equal(t, string(jobs.StatusFailed), done.Status)
	assert.Equal(t, "upstream down", done.Error)
}

func TestJobNotFound(t *testing.T) {
	f := setupServer(t)
	rec := f.do(t, http.MethodGet, "/api/v1/jobs/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCompany(t *testing.T) {
	f := setupServer(t)
	f.seedProfile(t, "acme-corp", "Acme Corp")

	rec := f.do(t, http.MethodGet, "/api/v1/companies/acme-corp/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Acme Corp", profile.Name)
	assert.Equal(t, "Bullish", profile.Analysis.Metrics.Sentiment)
	assert.Equal(t, 24, profile.Monitoring.IntervalHours)
	assert.Contains(t, rec.Body.String(), `"monitoring"`)

	rec = f.do(t, http.MethodGet, "/api/v1/companies/nope/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAndSearchCompanies(t *testing.T) {
	f := setupServer(t)
	f.seedProfile(t, "acme-corp", "Acme Corp")
	f.seedProfile(t, "globex", "Globex")

	rec := f.do(t, http.MethodGet, "/api/v1/companies/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []*profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 2)

	rec = f.do(t, http.MethodGet, "/api/v1/companies/search?q=globex", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Globex", listed[0].Name)

	rec = f.do(t, http.MethodGet, "/api/v1/companies/search", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "blank query is rejected")
}

func TestWatchlistFlow(t *testing.T) {
	f := setupServer(t)
	f.seedProfile(t, "acme-corp", "Acme Corp")

	rec := f.do(t, http.MethodPut, "/api/v1/companies/acme-corp/watchlist", map[string]bool{"enabled": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/companies/?watchlist=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []*profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.True(t, listed[0].Watchlist)

	rec = f.do(t, http.MethodPut, "/api/v1/companies/nope/watchlist", map[string]bool{"enabled": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSnapshotsAndMetrics(t *testing.T) {
	f := setupServer(t)
	f.seedProfile(t, "acme-corp", "Acme Corp")
	ctx := context.Background()

	require.NoError(t, f.repos.Snapshots.AddSnapshot(ctx, &core.Snapshot{
		Slug:      "acme-corp",
		Analysis:  core.Analysis{Summary: "first"},
		Timestamp: time.Now().UTC(),
	}))
	require.NoError(t, f.repos.Metrics.AddSample(ctx, &core.MetricSample{
		Slug:      "acme-corp",
		Timestamp: time.Now().UTC(),
		Sentiment: core.SentimentBullish,
	}))

	rec := f.do(t, http.MethodGet, "/api/v1/companies/acme-corp/snapshots", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var snaps []*snapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snaps))
	require.Len(t, snaps, 1)
	assert.Equal(t, "first", snaps[0].Analysis.Summary)

	rec = f.do(t, http.MethodGet, "/api/v1/companies/acme-corp/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var samples []*sampleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &samples))
	require.Len(t, samples, 1)
	assert.Equal(t, "Bullish", samples[0].Sentiment)
}

func TestRefreshUnknownCompany(t *testing.T) {
	f := setupServer(t)
	rec := f.do(t, http.MethodPost, "/api/v1/companies/nope/refresh", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRefreshQueuesJob(t *testing.T) {
	f := setupServer(t)
	f.seedProfile(t, "acme-corp", "Acme Corp")

	rec := f.do(t, http.MethodPost, "/api/v1/companies/acme-corp/refresh", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var job jobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	assert.Equal(t, "refresh", job.Kind)

	f.jobRunner.Wait()

	stored, err := f.jobStore.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, jobs.StatusCompleted, stored.Status)
	assert.Equal(t, "acme-corp", stored.Slug)
}

func TestKnowledgeSearch(t *testing.T) {
	f := setupServer(t)
	f.searcher.matches = []*core.ChunkMatch{
		{Chunk: &core.KnowledgeChunk{Source: core.SourceWeb, Text: "Acme ships fast"}, Score: 0.91},
	}

	rec := f.do(t, http.MethodGet, "/api/v1/companies/acme-corp/knowledge?q=shipping", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var matches []*chunkMatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "web", matches[0].Source)
	assert.InDelta(t, 0.91, matches[0].Score, 0.001)

	rec = f.do(t, http.MethodGet, "/api/v1/companies/acme-corp/knowledge", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "query is required")
}

func TestNotify(t *testing.T) {
	f := setupServer(t)
	f.seedProfile(t, "acme-corp", "Acme Corp")

	rec := f.do(t, http.MethodPost, "/api/v1/companies/acme-corp/notify", map[string]string{"recipient": "vc@fund.example"})
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, f.alerts.Sent, 1)
	sent := f.alerts.Sent[0]
	assert.Equal(t, "vc@fund.example", sent.Recipient)
	assert.Contains(t, sent.Subject, "Acme Corp")
	assert.Contains(t, sent.HTMLBody, "A seeded company.")

	rec = f.do(t, http.MethodPost, "/api/v1/companies/acme-corp/notify", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteCompany(t *testing.T) {
	f := setupServer(t)
	f.seedProfile(t, "acme-corp", "Acme Corp")

	rec := f.do(t, http.MethodDelete, "/api/v1/companies/acme-corp/", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/v1/companies/acme-corp/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
