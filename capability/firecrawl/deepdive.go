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


package firecrawl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harborview/signals/capability"
)

const (
	agentModel   = "spark-1-pro"
	maxPolls     = 30
	pollInterval = 2 * time.Second
	jobDeadline  = 180 * time.Second
)

// agentResponse covers both the synchronous and async shapes the v2
// agent endpoint returns. Data, Result and Output are alternates; the
// provider has used all three over time.
type agentResponse struct {
	Success bool           `json:"success"`
	ID      string         `json:"id"`
	Status  string         `json:"status"`
	Error   string         `json:"error"`
	Data    map[string]any `json:"data"`
	Result  map[string]any `json:"result"`
	Output  map[string]any `json:"output"`
}

// payload returns whichever result field the response carried.
func (r *agentResponse) payload() map[string]any {
	if len(r.Data) > 0 {
		return r.Data
	}
	if len(r.Result) > 0 {
		return r.Result
	}
	return r.Output
}

// DeepDive runs an agentic research mission via the v2 agent endpoint.
// The endpoint usually answers with a job ID which is then polled until
// the job completes, fails or the polling window runs out.
func (c *Client) DeepDive(ctx context.Context, company, prompt string, schema map[string]any) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, jobDeadline)
	defer cancel()

	c.logger.Info("starting agent mission", "company", company, "prompt", truncate(prompt, 80))

	payload := map[string]any{
		"prompt":                prompt,
		"model":                 agentModel,
		"strictConstrainToURLs": false,
	}
	if len(schema) > 0 {
		payload["schema"] = schema
	}

	var response agentResponse
	if err := c.postJSON(ctx, c.host+"/v2/agent", payload, &response); err != nil {
		return nil, err
	}

	// Synchronous answer: result attached directly.
	if result := response.payload(); len(result) > 0 {
		return result, nil
	}

	if !response.Success || response.ID == "" {
		return nil, fmt.Errorf("%w: agent gave neither a result nor a job id", capability.ErrJobFailed)
	}

	c.logger.Debug("agent job started", "company", company, "job", response.ID)
	return c.awaitJob(ctx, response.ID)
}

// awaitJob polls an agent job until it reaches a terminal state.
func (c *Client) awaitJob(ctx context.Context, jobID string) (map[string]any, error) {
	pollURL := fmt.Sprintf("%s/v2/agent/%s", c.host, jobID)

	for attempt := 1; attempt <= maxPolls; attempt++ {
		var response agentResponse
		if err := c.getJSON(ctx, pollURL, &response); err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %w", capability.ErrJobTimeout, ctx.Err())
			}
			c.logger.Warn("agent poll failed", "job", jobID, "attempt", attempt, "err", err)
		} else {
			switch strings.ToLower(response.Status) {
			case "completed":
				return response.payload(), nil
			case "failed", "error":
				return nil, fmt.Errorf("%w: %s", capability.ErrJobFailed, response.Error)
			}
			c.logger.Debug("agent job pending", "job", jobID, "status", response.Status, "attempt", attempt)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", capability.ErrJobTimeout, ctx.Err())
		case <-time.After(pollInterval):
		}
	}

	return nil, fmt.Errorf("%w: job %s still pending after %d polls", capability.ErrJobTimeout, jobID, maxPolls)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
