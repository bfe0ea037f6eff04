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


// Package openrouter implements the Completer capability via an
// OpenAI-compatible chat API (OpenRouter, or any local server that
// speaks the same protocol).
package openrouter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/harborview/signals/capability"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Completer implements capability.Completer using langchaingo's
// OpenAI-compatible client.
type Completer struct {
	client llms.Model
	logger *slog.Logger
}

var _ capability.Completer = (*Completer)(nil)

// NewCompleter creates a completer from the capability configuration.
// Uses "none" as the token for local servers that skip authentication.
//
// Returns capability.Completer to enforce abstraction.
func NewCompleter(config *capability.Config) (capability.Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	token := config.LLMKey
	if token == "" {
		token = "none"
	}
	client, err := openai.New(
		openai.WithBaseURL(config.LLMHost),
		openai.WithToken(token),
		openai.WithModel(config.LLMModel),
	)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client: client,
		logger: slog.Default().With("component", "openrouter"),
	}, nil
}

// CompleteJSON sends the prompts at temperature zero with JSON mode on
// and returns the raw response text.
func (c *Completer) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	c.logger.Debug("requesting json completion", "systemLen", len(systemPrompt), "userLen", len(userPrompt))

	response, err := c.client.GenerateContent(ctx, buildMessages(systemPrompt, userPrompt),
		llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		c.logger.Error("completion failed", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", errors.New("model returned no choices")
	}
	return strings.TrimSpace(response.Choices[0].Content), nil
}

// CompleteStream sends the prompts and forwards tokens to onToken as
// they arrive. Returns the assembled response text.
func (c *Completer) CompleteStream(ctx context.Context, systemPrompt, userPrompt string, onToken func(string)) (string, error) {
	var full strings.Builder
	_, err := c.client.GenerateContent(ctx, buildMessages(systemPrompt, userPrompt),
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			full.Write(chunk)
			if onToken != nil {
				onToken(string(chunk))
			}
			return nil
		}))
	if err != nil {
		c.logger.Error("streaming completion failed", "err", err)
		return "", err
	}
	return full.String(), nil
}

// buildMessages assembles the chat turn; the system prompt is optional.
func buildMessages(systemPrompt, userPrompt string) []llms.MessageContent {
	var content []llms.MessageContent
	if systemPrompt != "" {
		content = append(content, llms.MessageContent{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		})
	}
	content = append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(userPrompt)},
	})
	return content
}
