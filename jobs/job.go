package jobs

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a background job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job tracks one background pipeline run. Slug is set once the job
// completes and identifies the profile the run produced; Error is set
// when the job failed.
type Job struct {
	ID        string
	Kind      string
	Status    Status
	Slug      string
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewJob creates a pending job of the given kind.
func NewJob(kind string) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:        uuid.NewString(),
		Kind:      kind,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// transition moves the job to a new status, enforcing the lifecycle:
// pending may start processing or fail outright, processing may only
// finish, and terminal states never change.
func (j *Job) transition(to Status) error {
	valid := false
	switch j.Status {
	case StatusPending:
		valid = to == StatusProcessing || to == StatusFailed
	case StatusProcessing:
		valid = to == StatusCompleted || to == StatusFailed
	}
	if !valid {
		return &TransitionError{From: j.Status, To: to}
	}
	j.Status = to
	j.UpdatedAt = time.Now().UTC()
	return nil
}
