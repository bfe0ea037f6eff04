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


package core

import "fmt"

// ValidateProfile validates a CompanyProfile according to domain rules.
//
// Validation rules:
//   - Slug must be non-empty and equal to its own normalization
//   - Name must not be empty
//   - Sentiment, when set, must be a known value
//
// NOT validated (populated or defaulted by the pipeline):
//   - Analysis sub-fields other than sentiment
//   - AgentMetrics (partial by design)
//   - Timestamps
func ValidateProfile(profile *CompanyProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	if profile.Slug == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrEmptySlug)
	}

	if Slugify(profile.Slug) != profile.Slug {
		return fmt.Errorf("%w: %w: %q", ErrInvalidProfile, ErrMalformedSlug, profile.Slug)
	}

	if profile.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrEmptyName)
	}

	if err := ValidateSentiment(profile.Analysis.Metrics.Sentiment); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	return nil
}

// ValidateSentiment checks that a Sentiment is one of the known values.
// The empty string is allowed: analysis fields are all defaultable.
func ValidateSentiment(s Sentiment) error {
	switch s {
	case "", SentimentBullish, SentimentBearish, SentimentNeutral:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSentiment, s)
	}
}

// ValidateChunkSource checks that a ChunkSource is one of the known values.
func ValidateChunkSource(s ChunkSource) error {
	switch s {
	case SourceWeb, SourceDocument:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidChunkSource, s)
	}
}

// ValidateChunk validates a KnowledgeChunk before storage.
func ValidateChunk(chunk *KnowledgeChunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Slug == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptySlug)
	}

	if err := ValidateChunkSource(chunk.Source); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkText)
	}

	return nil
}
