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

import "errors"

// Domain validation errors
var (
	// ErrInvalidProfile indicates a CompanyProfile failed validation.
	ErrInvalidProfile = errors.New("invalid company profile")

	// ErrInvalidChunk indicates a KnowledgeChunk failed validation.
	ErrInvalidChunk = errors.New("invalid knowledge chunk")

	// ErrEmptySlug indicates the Slug field is empty.
	ErrEmptySlug = errors.New("slug cannot be empty")

	// ErrMalformedSlug indicates the Slug field is not in normalized form.
	ErrMalformedSlug = errors.New("slug is not in normalized form")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidChunkSource indicates an unknown ChunkSource value.
	ErrInvalidChunkSource = errors.New("invalid chunk source")

	// ErrEmptyChunkText indicates the chunk Text field is empty.
	ErrEmptyChunkText = errors.New("chunk text cannot be empty")

	// ErrInvalidSentiment indicates an unknown Sentiment value.
	ErrInvalidSentiment = errors.New("invalid sentiment")
)
