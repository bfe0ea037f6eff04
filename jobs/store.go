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


package jobs

import (
	"context"
	"sort"
	"sync"
)

// Store persists job records. Implementations must be thread-safe.
type Store interface {
	// Put inserts or replaces a job record.
	Put(ctx context.Context, job *Job) error

	// Get retrieves a job by ID.
	// Returns ErrJobNotFound if no job exists for the ID.
	Get(ctx context.Context, id string) (*Job, error)

	// List returns all jobs, most recently created first.
	List(ctx context.Context) ([]*Job, error)
}

// MemoryStore is an in-process Store. Job history does not survive a
// restart; callers that need durable history poll the profile and
// snapshot repositories instead.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-process job store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]*Job)}
}

func (s *MemoryStore) Put(ctx context.Context, job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *job
	s.jobs[job.ID] = &copied
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	listed := make([]*Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		copied := *job
		listed = append(listed, &copied)
	}
	sort.Slice(listed, func(i, j int) bool {
		return listed[i].CreatedAt.After(listed[j].CreatedAt)
	})
	return listed, nil
}
