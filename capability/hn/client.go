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


// Package hn implements the DiscussionSearcher capability against the
// Hacker News Algolia API. The API is public; no authentication.
package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/harborview/signals/capability"
)

// DefaultHost is the public Algolia search endpoint for Hacker News.
const DefaultHost = "https://hn.algolia.com/api/v1"

// Client implements capability.DiscussionSearcher.
type Client struct {
	host       string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ capability.DiscussionSearcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHost overrides the Algolia endpoint, used by tests.
func WithHost(host string) Option {
	return func(c *Client) {
		c.host = host
	}
}

// NewClient creates a discussion search client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		host:       DefaultHost,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default().With("component", "hn"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// hit is one Algolia search result. Story and comment searches share
// the shape; unused fields stay empty.
type hit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Points      int    `json:"points"`
	NumComments int    `json:"num_comments"`
	CommentText string `json:"comment_text"`
	CreatedAtI  int64  `json:"created_at_i"`
}

// SearchDiscussions searches stories matching the query created after
// since, most relevant first.
func (c *Client) SearchDiscussions(ctx context.Context, query string, since time.Time, limit int) ([]*capability.Discussion, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("tags", "story")
	params.Set("numericFilters", "created_at_i>"+strconv.FormatInt(since.Unix(), 10))
	params.Set("hitsPerPage", strconv.Itoa(limit))

	hits, err := c.search(ctx, params)
	if err != nil {
		return nil, err
	}

	discussions := make([]*capability.Discussion, 0, len(hits))
	for _, h := range hits {
		discussions = append(discussions, &capability.Discussion{
			ID:           h.ObjectID,
			Title:        h.Title,
			URL:          "https://news.ycombinator.com/item?id=" + h.ObjectID,
			Points:       h.Points,
			CommentCount: h.NumComments,
			CreatedAt:    time.Unix(h.CreatedAtI, 0).UTC(),
		})
	}
	c.logger.Info("discussion search done", "query", query, "found", len(discussions))
	return discussions, nil
}

// TopComments fetches up to limit comments for one story.
func (c *Client) TopComments(ctx context.Context, discussionID string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("tags", "comment,story_"+discussionID)
	params.Set("hitsPerPage", strconv.Itoa(limit))

	hits, err := c.search(ctx, params)
	if err != nil {
		return nil, err
	}

	comments := make([]string, 0, len(hits))
	for _, h := range hits {
		if h.CommentText != "" {
			comments = append(comments, h.CommentText)
		}
	}
	return comments, nil
}

func (c *Client) search(ctx context.Context, params url.Values) ([]hit, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: search returned %d", capability.ErrRequestFailed, res.StatusCode)
	}

	var response struct {
		Hits []hit `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, err
	}
	return response.Hits, nil
}
