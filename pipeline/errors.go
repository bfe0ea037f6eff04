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


package pipeline

import "errors"

var (
	// ErrNoIdentifier indicates a run request carried neither a name,
	// a URL nor a document. Nothing is persisted.
	ErrNoIdentifier = errors.New("run request needs a name, url or document")

	// ErrProfilesRequired indicates a nil profile repository.
	ErrProfilesRequired = errors.New("profile repository is required")

	// ErrSnapshotsRequired indicates a nil snapshot repository.
	ErrSnapshotsRequired = errors.New("snapshot repository is required")

	// ErrMetricsRequired indicates a nil metric repository.
	ErrMetricsRequired = errors.New("metric repository is required")

	// ErrSynthesizerRequired indicates a nil synthesizer.
	ErrSynthesizerRequired = errors.New("synthesizer is required")

	// ErrIndexerRequired indicates a nil knowledge indexer.
	ErrIndexerRequired = errors.New("knowledge indexer is required")
)
