package storage

import (
	"context"
	"errors"
	"time"

	"github.com/kasuboski/gapz/pkg/catalog"
	"github.com/kasuboski/gapz/pkg/machine"
)

//go:generate mockgen -package mocks -destination mocks/mock_storage.go github.com/kasuboski/gapz/pkg/storage Storage

var ErrNotFound = errors.New("not found in storage")
var ErrJobAlreadyPending = errors.New("job of this type already pending")

type Storage interface {
	RunMigrations(ctx context.Context) error
	Close() error
	catalog.Store
	JobStorage
}

type JobState string

const (
	JobStateNew       JobState = ""
	JobStatePending   JobState = "pending"
	JobStateRunning   JobState = "running"
	JobStateError     JobState = "error"
	JobStateDone      JobState = "done"
	JobStateCancelled JobState = "cancelled"
)

// Job is a job record joined with its most recent state transition
type Job struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	State     JobState  `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Error     *string   `json:"error,omitempty"`
}

func (j Job) Machine() *machine.StateMachine[JobState] {
	return machine.New(j.State,
		machine.From(JobStateNew).To(JobStatePending),
		machine.From(JobStatePending).To(JobStateRunning, JobStateCancelled, JobStateError),
		machine.From(JobStateRunning).To(JobStateError, JobStateDone, JobStateCancelled),
	)
}

// JobFilter narrows job listings. Nil fields match everything.
type JobFilter struct {
	Type  *string
	State *JobState
}

type JobStorage interface {
	CreateJob(ctx context.Context, job Job, initialState JobState) (int64, error)
	GetJob(ctx context.Context, id int64) (*Job, error)
	// ListJobs returns jobs newest first. A limit of 0 returns every match.
	ListJobs(ctx context.Context, offset, limit int, filter JobFilter) ([]*Job, error)
	CountJobs(ctx context.Context, filter JobFilter) (int, error)
	UpdateJobState(ctx context.Context, id int64, state JobState, errorMsg *string) error
	// DeleteJobs removes jobs created before the cutoff except the ids in keep
	DeleteJobs(ctx context.Context, before time.Time, keep ...int64) (int64, error)
}
