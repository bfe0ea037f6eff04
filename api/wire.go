package api

import (
	"time"

	"github.com/harborview/signals/capability"
	"github.com/harborview/signals/core"
	"github.com/harborview/signals/jobs"
)

// analyzeRequest is the POST /analyze body. Document is base64 in
// JSON per encoding/json []byte handling.
type analyzeRequest struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Document     []byte `json:"document"`
	DocumentName string `json:"document_name"`
}

type jobResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	Slug      string    `json:"slug,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toJobResponse(job *jobs.Job) *jobResponse {
	return &jobResponse{
		ID:        job.ID,
		Kind:      job.Kind,
		Status:    string(job.Status),
		Slug:      job.Slug,
		Error:     job.Error,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
}

type metricsPayload struct {
	Sentiment      string `json:"sentiment"`
	SignalStrength int    `json:"signal_strength"`
	PMFScore       int    `json:"pmf_score"`
}

type analysisPayload struct {
	Name        string         `json:"name"`
	Summary     string         `json:"summary"`
	Metrics     metricsPayload `json:"metrics"`
	Competitors []string       `json:"competitors"`
	Strengths   []string       `json:"strengths"`
	RedFlags    []string       `json:"red_flags"`
	Funding     string         `json:"funding,omitempty"`
	Website     string         `json:"website,omitempty"`
	Error       string         `json:"error,omitempty"`
}

func toAnalysisPayload(a *core.Analysis) analysisPayload {
	return analysisPayload{
		Name:    a.Name,
		Summary: a.Summary,
		Metrics: metricsPayload{
			Sentiment:      string(a.Metrics.Sentiment),
			SignalStrength: a.Metrics.SignalStrength,
			PMFScore:       a.Metrics.PMFScore,
		},
		Competitors: a.Competitors,
		Strengths:   a.Strengths,
		RedFlags:    a.RedFlags,
		Funding:     a.Funding,
		Website:     a.Website,
		Error:       a.Error,
	}
}

type monitoringPayload struct {
	Active        bool      `json:"active"`
	IntervalHours int       `json:"interval_hours"`
	LastChecked   time.Time `json:"last_checked"`
	NextCheck     time.Time `json:"next_check"`
}

type profileResponse struct {
	Slug         string            `json:"slug"`
	Name         string            `json:"name"`
	Website      string            `json:"website,omitempty"`
	Description  string            `json:"description,omitempty"`
	Analysis     analysisPayload   `json:"analysis"`
	AgentMetrics map[string]string `json:"agent_metrics"`
	Watchlist    bool              `json:"watchlist"`
	Monitoring   monitoringPayload `json:"monitoring"`
	CrawledAt    time.Time         `json:"crawled_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func toProfileResponse(p *core.CompanyProfile) *profileResponse {
	return &profileResponse{
		Slug:         p.Slug,
		Name:         p.Name,
		Website:      p.Website,
		Description:  p.Description,
		Analysis:     toAnalysisPayload(&p.Analysis),
		AgentMetrics: p.AgentMetrics,
		Watchlist:    p.Watchlist,
		Monitoring: monitoringPayload{
			Active:        p.Monitoring.Active,
			IntervalHours: p.Monitoring.IntervalHours,
			LastChecked:   p.Monitoring.LastChecked,
			NextCheck:     p.Monitoring.NextCheck,
		},
		CrawledAt:    p.CrawledAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type snapshotResponse struct {
	Slug         string            `json:"slug"`
	Analysis     analysisPayload   `json:"analysis"`
	AgentMetrics map[string]string `json:"agent_metrics"`
	Timestamp    time.Time         `json:"timestamp"`
}

func toSnapshotResponse(snap *core.Snapshot) *snapshotResponse {
	return &snapshotResponse{
		Slug:         snap.Slug,
		Analysis:     toAnalysisPayload(&snap.Analysis),
		AgentMetrics: snap.AgentMetrics,
		Timestamp:    snap.Timestamp,
	}
}

type sampleResponse struct {
	Timestamp      time.Time `json:"timestamp"`
	Sentiment      string    `json:"sentiment"`
	SignalStrength int       `json:"signal_strength"`
	PMFScore       int       `json:"pmf_score"`
	HiringStatus   string    `json:"hiring_status,omitempty"`
	OpenRoles      int       `json:"open_roles"`
	HasFreeTier    bool      `json:"has_free_tier"`
}

func toSampleResponse(sample *core.MetricSample) *sampleResponse {
	return &sampleResponse{
		Timestamp:      sample.Timestamp,
		Sentiment:      string(sample.Sentiment),
		SignalStrength: sample.SignalStrength,
		PMFScore:       sample.PMFScore,
		HiringStatus:   sample.HiringStatus,
		OpenRoles:      sample.OpenRoles,
		HasFreeTier:    sample.HasFreeTier,
	}
}

type chunkMatchResponse struct {
	Source string  `json:"source"`
	Text   string  `json:"text"`
	Score  float32 `json:"score"`
}

type discussionResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	Points       int       `json:"points"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func toDiscussionResponse(d *capability.Discussion) *discussionResponse {
	return &discussionResponse{
		ID:           d.ID,
		Title:        d.Title,
		URL:          d.URL,
		Points:       d.Points,
		CommentCount: d.CommentCount,
		CreatedAt:    d.CreatedAt,
	}
}

type watchlistRequest struct {
	Enabled bool `json:"enabled"`
}

type notifyRequest struct {
	Recipient string `json:"recipient"`
}
