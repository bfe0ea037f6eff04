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


package badger

// Repositories bundles every repository backed by one Backend.
type Repositories struct {
	Backend   *Backend
	Profiles  *ProfileRepository
	Snapshots *SnapshotRepository
	Metrics   *MetricRepository
	Knowledge *KnowledgeRepository
}

// Close closes the repositories and the backend.
func (r *Repositories) Close() error {
	r.Snapshots.Close()
	r.Metrics.Close()
	return r.Backend.Close()
}

// NewMemoryRepositories creates in-memory repositories for testing.
// Caller must Close the result when done.
func NewMemoryRepositories() (*Repositories, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	snapshots, err := NewSnapshotRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	metrics, err := NewMetricRepository(backend)
	if err != nil {
		snapshots.Close()
		backend.Close()
		return nil, err
	}

	return &Repositories{
		Backend:   backend,
		Profiles:  NewProfileRepository(backend),
		Snapshots: snapshots,
		Metrics:   metrics,
		Knowledge: NewKnowledgeRepository(backend),
	}, nil
}
