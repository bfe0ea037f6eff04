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


package capability

import "errors"

var (
	// ErrNoResults indicates a search returned nothing usable.
	ErrNoResults = errors.New("no results")

	// ErrRequestFailed indicates a provider returned a non-success status.
	ErrRequestFailed = errors.New("provider request failed")

	// ErrJobFailed indicates an async provider job ended in a failed state.
	ErrJobFailed = errors.New("provider job failed")

	// ErrJobTimeout indicates an async provider job did not finish within
	// the polling window.
	ErrJobTimeout = errors.New("provider job timed out")

	// ErrParseFailed indicates a document could not be parsed.
	ErrParseFailed = errors.New("document parse failed")

	// ErrEmptyDocument indicates a parsed document produced no text.
	ErrEmptyDocument = errors.New("document produced no text")
)
