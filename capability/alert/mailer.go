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


// Package alert implements the AlertSender capability against a
// Resend-style transactional email API.
package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/harborview/signals/capability"
)

// DefaultHost is the hosted email API endpoint.
const DefaultHost = "https://api.resend.com"

// Mailer implements capability.AlertSender.
type Mailer struct {
	host       string
	key        string
	from       string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ capability.AlertSender = (*Mailer)(nil)

// Option configures a Mailer.
type Option func(*Mailer)

// WithHost overrides the email API endpoint, used by tests.
func WithHost(host string) Option {
	return func(m *Mailer) {
		m.host = host
	}
}

// NewMailer creates an alert mailer from the capability configuration.
func NewMailer(config *capability.Config, opts ...Option) *Mailer {
	m := &Mailer{
		host:       DefaultHost,
		key:        config.MailKey,
		from:       config.MailFrom,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default().With("component", "alert"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SendAlert delivers one HTML email. Callers treat failures as
// log-and-continue; this method still reports them honestly.
func (m *Mailer) SendAlert(ctx context.Context, recipient, subject, htmlBody string) error {
	payload := map[string]any{
		"from":    m.from,
		"to":      recipient,
		"subject": subject,
		"html":    htmlBody,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.host+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.key)
	req.Header.Set("Content-Type", "application/json")

	res, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 200))
		return fmt.Errorf("%w: email endpoint returned %d: %s",
			capability.ErrRequestFailed, res.StatusCode, snippet)
	}

	m.logger.Info("alert sent", "to", recipient, "subject", subject)
	return nil
}

// IntelligenceUpdateHTML renders the standard update email body for a
// company, with an optional list of observed changes.
func IntelligenceUpdateHTML(companyName, summary string, changes []string) string {
	var changesHTML string
	if len(changes) > 0 {
		var items strings.Builder
		for _, change := range changes {
			items.WriteString("<li>" + html.EscapeString(change) + "</li>")
		}
		changesHTML = "<h3>What Changed</h3><ul>" + items.String() + "</ul>"
	}

	return fmt.Sprintf(`<div style="font-family: system-ui, sans-serif; max-width: 600px;">
<h2>Intelligence Update: %s</h2>
<p>%s</p>
%s
<hr style="border: 1px solid #333; margin: 20px 0;" />
<p style="color: #888; font-size: 12px;">Sent by Harborview Signals</p>
</div>`, html.EscapeString(companyName), html.EscapeString(summary), changesHTML)
}
