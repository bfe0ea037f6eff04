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
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Task is one unit of background work. It returns the slug of the
// profile the run produced.
type Task func(ctx context.Context) (string, error)

// Runner executes tasks on a bounded worker pool, tracking each one as
// a Job in the store. Task panics and errors mark the job failed; they
// never escape the pool.
type Runner struct {
	store  Store
	pool   *ants.Pool
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) RunnerOption {
	return func(r *Runner) error {
		if size < 1 {
			size = 1
		}
		if r.pool != nil {
			r.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates a job runner backed by the given store.
func NewRunner(store Store, opts ...RunnerOption) (*Runner, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		store:  store,
		pool:   pool,
		logger: slog.Default().With("component", "jobs"),
	}
	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.pool.Release()
			return nil, optErr
		}
	}
	return r, nil
}

// Submit registers a pending job and schedules the task. The returned
// job reflects the pending state; poll the store for progress.
func (r *Runner) Submit(ctx context.Context, kind string, task Task) (*Job, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRunnerClosed
	}
	r.wg.Add(1)
	r.mu.Unlock()

	job := NewJob(kind)
	if err := r.store.Put(ctx, job); err != nil {
		r.wg.Done()
		return nil, err
	}

	submitted := *job
	err := r.pool.Submit(func() {
		defer r.wg.Done()
		r.execute(job, task)
	})
	if err != nil {
		r.wg.Done()
		job.transition(StatusFailed)
		job.Error = err.Error()
		r.store.Put(ctx, job)
		return nil, err
	}
	return &submitted, nil
}

// execute drives one job through its lifecycle. The task runs with a
// background context so it outlives the HTTP request that queued it.
func (r *Runner) execute(job *Job, task Task) {
	ctx := context.Background()

	if err := job.transition(StatusProcessing); err != nil {
		r.logger.Error("job cannot start", "id", job.ID, "err", err)
		return
	}
	r.store.Put(ctx, job)
	r.logger.Info("job started", "id", job.ID, "kind", job.Kind)

	defer func() {
		if rec := recover(); rec != nil {
			job.transition(StatusFailed)
			job.Error = "internal error"
			r.store.Put(ctx, job)
			r.logger.Error("job panicked", "id", job.ID, "panic", rec)
		}
	}()

	slug, err := task(ctx)
	if err != nil {
		job.transition(StatusFailed)
		job.Error = err.Error()
		r.store.Put(ctx, job)
		r.logger.Warn("job failed", "id", job.ID, "kind", job.Kind, "err", err)
		return
	}

	job.Slug = slug
	job.transition(StatusCompleted)
	r.store.Put(ctx, job)
	r.logger.Info("job completed", "id", job.ID, "kind", job.Kind, "slug", slug)
}

// Wait blocks until every submitted task has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Release stops accepting work and shuts down the pool.
// The runner should not be used after calling Release.
func (r *Runner) Release() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.wg.Wait()
	r.pool.Release()
}
