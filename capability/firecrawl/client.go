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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/harborview/signals/capability"
	"golang.org/x/sync/errgroup"
)

// Client talks to a Firecrawl-style crawl API. It implements both
// capability.Crawler (v1 search/scrape) and capability.DeepDiver
// (v2 async agent jobs).
type Client struct {
	host       string
	key        string
	httpClient *http.Client
	logger     *slog.Logger
}

var (
	_ capability.Crawler   = (*Client)(nil)
	_ capability.DeepDiver = (*Client)(nil)
)

// NewClient creates a crawl client from the capability configuration.
func NewClient(config *capability.Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		host:       config.CrawlerHost,
		key:        config.CrawlerKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     slog.Default().With("component", "firecrawl"),
	}, nil
}

// searchItem is one result from the v1 search endpoint.
type searchItem struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Markdown    string `json:"markdown"`
}

// ResolveWebsite finds the official website URL for a company name.
func (c *Client) ResolveWebsite(ctx context.Context, name string) (string, error) {
	items, err := c.search(ctx, fmt.Sprintf("%s official website home page", name), 1)
	if err != nil {
		return "", err
	}
	if len(items) == 0 || items[0].URL == "" {
		return "", fmt.Errorf("%w: no website found for %q", capability.ErrNoResults, name)
	}
	c.logger.Info("resolved company website", "name", name, "url", items[0].URL)
	return items[0].URL, nil
}

// Crawl fetches homepage, recent news and market context for a URL in
// parallel. A failed section degrades to empty text; Crawl errors only
// when all three sections came back empty.
func (c *Client) Crawl(ctx context.Context, url string) (*capability.CrawlResult, error) {
	result := &capability.CrawlResult{ResolvedURL: url}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := c.scrape(gctx, url)
		if err != nil {
			c.logger.Warn("homepage scrape failed", "url", url, "err", err)
			return nil
		}
		result.Homepage = text
		return nil
	})
	g.Go(func() error {
		text, err := c.searchSnippets(gctx, fmt.Sprintf("%s latest news funding", url), 5)
		if err != nil {
			c.logger.Warn("news search failed", "url", url, "err", err)
			return nil
		}
		result.News = text
		return nil
	})
	g.Go(func() error {
		text, err := c.searchSnippets(gctx, fmt.Sprintf("%s competitors and pricing", url), 5)
		if err != nil {
			c.logger.Warn("market search failed", "url", url, "err", err)
			return nil
		}
		result.Market = text
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if result.Homepage == "" && result.News == "" && result.Market == "" {
		return nil, fmt.Errorf("%w: all crawl sections empty for %s", capability.ErrNoResults, url)
	}
	return result, nil
}

// search runs a v1 search query and returns the raw result items.
func (c *Client) search(ctx context.Context, query string, limit int) ([]searchItem, error) {
	var response struct {
		Data []searchItem `json:"data"`
	}
	err := c.postJSON(ctx, c.host+"/v1/search", map[string]any{
		"query": query,
		"limit": limit,
	}, &response)
	if err != nil {
		return nil, err
	}
	return response.Data, nil
}

// searchSnippets runs a search and formats the items as one text block,
// one "title / description / url" stanza per result.
func (c *Client) searchSnippets(ctx context.Context, query string, limit int) (string, error) {
	items, err := c.search(ctx, query, limit)
	if err != nil {
		return "", err
	}

	var stanzas []string
	for _, item := range items {
		switch {
		case item.Title != "" || item.Description != "":
			stanzas = append(stanzas, fmt.Sprintf("**%s**\n%s\n%s", item.Title, item.Description, item.URL))
		case item.Markdown != "":
			stanzas = append(stanzas, item.Markdown)
		}
	}
	return strings.Join(stanzas, "\n---\n"), nil
}

// scrape fetches one URL as markdown text via the v1 scrape endpoint.
func (c *Client) scrape(ctx context.Context, url string) (string, error) {
	var response struct {
		Data struct {
			Markdown string `json:"markdown"`
		} `json:"data"`
	}
	err := c.postJSON(ctx, c.host+"/v1/scrape", map[string]any{
		"url":     url,
		"formats": []string{"markdown"},
	}, &response)
	if err != nil {
		return "", err
	}
	return response.Data.Markdown, nil
}

// postJSON posts a JSON payload and decodes a JSON response, translating
// non-2xx statuses into ErrRequestFailed.
func (c *Client) postJSON(ctx context.Context, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("%w: %s returned %d: %s", capability.ErrRequestFailed, url, res.StatusCode, snippet)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// getJSON fetches a URL and decodes a JSON response.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned %d", capability.ErrRequestFailed, url, res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
