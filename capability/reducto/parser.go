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


// Package reducto implements the DocumentParser capability against a
// hosted parse API. Parse failures are returned loudly; degrading to an
// empty document is the caller's decision, not this package's.
package reducto

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/harborview/signals/capability"
)

// Parser talks to the hosted document-parse endpoint.
type Parser struct {
	host       string
	key        string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ capability.DocumentParser = (*Parser)(nil)

// NewParser creates a parser from the capability configuration.
//
// Returns capability.DocumentParser to enforce abstraction.
func NewParser(config *capability.Config) (capability.DocumentParser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Parser{
		host:       config.ParserHost,
		key:        config.ParserKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     slog.Default().With("component", "reducto"),
	}, nil
}

// parseResponse is the shape of a successful parse answer. Text blocks
// are flattened into one body in document order.
type parseResponse struct {
	Result struct {
		Blocks []struct {
			Content string `json:"content"`
		} `json:"blocks"`
	} `json:"result"`
}

// ParseDocument sends the document bytes as a base64 data URL and
// returns the flattened block text.
func (p *Parser) ParseDocument(ctx context.Context, filename string, data []byte) (*capability.ParsedDocument, error) {
	p.logger.Info("parsing document", "filename", filename, "bytes", len(data))

	payload := map[string]string{
		"document_url": "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(data),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+"/parse", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.key)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", capability.ErrParseFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 200))
		return nil, fmt.Errorf("%w: parse endpoint returned %d: %s",
			capability.ErrParseFailed, res.StatusCode, snippet)
	}

	var parsed parseResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", capability.ErrParseFailed, err)
	}

	lines := make([]string, 0, len(parsed.Result.Blocks))
	for _, block := range parsed.Result.Blocks {
		lines = append(lines, block.Content)
	}
	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		return nil, fmt.Errorf("%w: %s", capability.ErrEmptyDocument, filename)
	}

	return &capability.ParsedDocument{
		Filename: filename,
		Text:     text,
	}, nil
}
