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


package api

import "errors"

var (
	ErrProfilesRequired  = errors.New("profile repository is required")
	ErrSnapshotsRequired = errors.New("snapshot repository is required")
	ErrMetricsRequired   = errors.New("metric repository is required")
	ErrRunnerRequired    = errors.New("pipeline runner is required")
	ErrJobsRequired      = errors.New("job runner and store are required")
	ErrSearcherRequired  = errors.New("knowledge searcher is required")
)
