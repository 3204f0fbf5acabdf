package manager

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/kasuboski/gapz/config"
	"github.com/kasuboski/gapz/pkg/cache"
	"github.com/kasuboski/gapz/pkg/logger"
	"github.com/kasuboski/gapz/pkg/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type JobType string

const (
	LibraryScan     JobType = "LibraryScan"
	SeriesReconcile JobType = "SeriesReconcile"
)

// jobTypes are scheduled in this order so a reconcile sees the latest physical files
var jobTypes = []JobType{LibraryScan, SeriesReconcile}

var (
	ErrInvalidJobType = errors.New("invalid job type")
	errNoExecutor     = errors.New("no executor found for job type")
)

const (
	pruneEvery    = time.Hour
	cancelTimeout = 30 * time.Second
	cancelPoll    = 100 * time.Millisecond
)

type JobExecutor func(ctx context.Context, jobID int64) error

// Scheduler queues library scans and reconcile passes on their intervals and runs queued jobs one
// at a time, oldest first.
type Scheduler struct {
	storage   storage.Storage
	config    config.Manager
	executors map[JobType]JobExecutor
	// runningJobs holds the cancel func of the job currently executing
	runningJobs *cache.Cache[int64, context.CancelFunc]
	pendingPoll time.Duration
}

func NewScheduler(store storage.Storage, cfg config.Manager, executors map[JobType]JobExecutor) *Scheduler {
	return &Scheduler{
		storage:     store,
		config:      cfg,
		executors:   executors,
		runningJobs: cache.New[int64, context.CancelFunc](),
		pendingPoll: 5 * time.Second,
	}
}

// Run queues, executes and prunes jobs until ctx is done. Running jobs are cancelled on the way out.
func (s *Scheduler) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		every(ctx, s.pendingPoll, s.runPending)
		return nil
	})

	g.Go(func() error {
		if s.config.Jobs.CleanupPeriod > 0 {
			every(ctx, pruneEvery, s.pruneOldJobs)
		}
		return nil
	})

	g.Go(func() error {
		interval := s.config.Jobs.JobScheduleInterval
		if interval <= 0 {
			interval = time.Minute
		}

		every(ctx, interval, func(ctx context.Context) {
			for _, jobType := range jobTypes {
				s.checkAndScheduleJob(ctx, jobType)
			}
		})

		s.cancelRunning(context.WithoutCancel(ctx))
		return nil
	})

	return g.Wait()
}

// every calls fn on each tick until ctx is done
func every(ctx context.Context, d time.Duration, fn func(context.Context)) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}

// runPending executes the queued jobs in the order they were created
func (s *Scheduler) runPending(ctx context.Context) {
	jobs, err := s.listPendingJobs(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warnw("couldn't list queued jobs", zap.Error(err))
		return
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		s.executeJob(ctx, job)
	}
}

// cancelRunning stops every executing job and waits for each to record its final state
func (s *Scheduler) cancelRunning(ctx context.Context) {
	log := logger.FromCtx(ctx)

	ids := s.runningJobs.Keys()
	if len(ids) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Go(func() {
			if err := s.CancelJob(ctx, id); err != nil {
				log.Warnw("couldn't cancel job on shutdown", "job_id", id, zap.Error(err))
			}
		})
	}
	wg.Wait()

	log.Infow("cancelled running jobs on shutdown", "count", len(ids))
}

// pruneOldJobs drops job history older than the cleanup period. The newest MinJobsToKeep jobs of
// each type are kept regardless of age.
func (s *Scheduler) pruneOldJobs(ctx context.Context) {
	log := logger.FromCtx(ctx)

	var keep []int64
	if n := s.config.Jobs.MinJobsToKeep; n > 0 {
		for _, jobType := range jobTypes {
			recent, err := s.recentJobs(ctx, jobType, n)
			if err != nil {
				log.Errorw("couldn't list recent jobs, pruning without keeping them", "job_type", jobType, zap.Error(err))
				continue
			}
			for _, job := range recent {
				keep = append(keep, job.ID)
			}
		}
	}

	cutoff := time.Now().Add(-s.config.Jobs.CleanupPeriod)
	deleted, err := s.storage.DeleteJobs(ctx, cutoff, keep...)
	if err != nil {
		log.Errorw("couldn't prune job history", zap.Error(err))
		return
	}

	log.Debugw("pruned job history", "deleted", deleted, "kept", keep, "cutoff", cutoff)
}

// checkAndScheduleJob queues a job once its interval has passed since the last job of the type
// was created. Nothing is queued while that job is still pending or running.
func (s *Scheduler) checkAndScheduleJob(ctx context.Context, jobType JobType) {
	interval := s.intervalFor(jobType)
	if interval <= 0 {
		return
	}

	log := logger.FromCtx(ctx, "job_type", jobType)

	last, err := s.recentJobs(ctx, jobType, 1)
	if err != nil {
		log.Errorw("couldn't look up the last job", zap.Error(err))
		return
	}

	if len(last) > 0 {
		job := last[0]
		switch job.State {
		case storage.JobStatePending, storage.JobStateRunning:
			log.Debugw("last job still active", "job_id", job.ID, "state", job.State)
			return
		}

		if wait := interval - time.Since(job.CreatedAt); wait > 0 {
			log.Debugw("not due yet", "last_job_id", job.ID, "due_in", wait)
			return
		}
	}

	if _, err := s.createPendingJob(ctx, jobType); err != nil && !errors.Is(err, storage.ErrJobAlreadyPending) {
		log.Errorw("couldn't queue job", zap.Error(err))
	}
}

// intervalFor returns how often the job type is queued. Zero disables it.
func (s *Scheduler) intervalFor(jobType JobType) time.Duration {
	switch jobType {
	case LibraryScan:
		return s.config.Jobs.LibraryScan
	case SeriesReconcile:
		return s.config.Jobs.SeriesReconcile
	}
	return 0
}

func (s *Scheduler) createPendingJob(ctx context.Context, jobType JobType) (int64, error) {
	if !isValidJobType(string(jobType)) {
		return 0, ErrInvalidJobType
	}

	id, err := s.storage.CreateJob(ctx, storage.Job{Type: string(jobType)}, storage.JobStatePending)
	if err != nil {
		return 0, err
	}

	logger.FromCtx(ctx).Debugw("queued job", "job_type", jobType, "job_id", id)
	return id, nil
}

// recentJobs returns up to limit jobs of the type, newest first
func (s *Scheduler) recentJobs(ctx context.Context, jobType JobType, limit int) ([]*storage.Job, error) {
	t := string(jobType)
	return s.storage.ListJobs(ctx, 0, limit, storage.JobFilter{Type: &t})
}

func (s *Scheduler) listPendingJobs(ctx context.Context) ([]*storage.Job, error) {
	return s.pendingJobs(ctx, storage.JobFilter{})
}

func (s *Scheduler) listPendingJobsByType(ctx context.Context, jobType JobType) ([]*storage.Job, error) {
	t := string(jobType)
	return s.pendingJobs(ctx, storage.JobFilter{Type: &t})
}

// pendingJobs lists queued jobs matching filter, oldest first
func (s *Scheduler) pendingJobs(ctx context.Context, filter storage.JobFilter) ([]*storage.Job, error) {
	state := storage.JobStatePending
	filter.State = &state

	jobs, err := s.storage.ListJobs(ctx, 0, 0, filter)
	if err != nil {
		return nil, err
	}

	slices.Reverse(jobs)
	return jobs, nil
}

func (s *Scheduler) executeJob(ctx context.Context, job *storage.Job) {
	log := logger.FromCtx(ctx, "job_id", job.ID, "job_type", job.Type)
	ctx = logger.WithCtx(ctx, log)

	// state writes must land even while the scheduler shuts down
	stateCtx := context.WithoutCancel(ctx)
	setState := func(state storage.JobState, msg *string) bool {
		if err := s.storage.UpdateJobState(stateCtx, job.ID, state, msg); err != nil {
			log.Errorw("couldn't record job state", "state", state, zap.Error(err))
			return false
		}
		return true
	}

	run, ok := s.executors[JobType(job.Type)]
	if !ok {
		msg := errNoExecutor.Error()
		log.Errorw(msg)
		setState(storage.JobStateError, &msg)
		return
	}

	if !setState(storage.JobStateRunning, nil) {
		return
	}

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.runningJobs.Set(job.ID, cancel)
	defer s.runningJobs.Delete(job.ID)

	start := time.Now()
	log.Debugw("job started")

	err := run(jobCtx, job.ID)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		if setState(storage.JobStateDone, nil) {
			log.Infow("job done", "elapsed", elapsed)
		}
	case jobCtx.Err() != nil:
		log.Infow("job cancelled", "elapsed", elapsed, zap.Error(err))
		setState(storage.JobStateCancelled, nil)
	default:
		msg := err.Error()
		log.Errorw("job failed", "elapsed", elapsed, zap.Error(err))
		setState(storage.JobStateError, &msg)
	}
}

// CancelJob cancels a queued job, or stops a running one and waits for it to wind down.
// Finished jobs are left untouched.
func (s *Scheduler) CancelJob(ctx context.Context, jobID int64) error {
	job, err := s.storage.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	log := logger.FromCtx(ctx, "job_id", jobID)

	switch job.State {
	case storage.JobStatePending:
		log.Debugw("cancelling queued job")
		return s.storage.UpdateJobState(ctx, jobID, storage.JobStateCancelled, nil)
	case storage.JobStateRunning:
		cancel, ok := s.runningJobs.Get(jobID)
		if !ok {
			log.Debugw("job is not executing in this process")
			return nil
		}

		log.Debugw("stopping running job")
		cancel()
		return s.waitStopped(ctx, jobID)
	}

	return nil
}

// waitStopped blocks until the job has left runningJobs. Giving up after cancelTimeout is logged,
// not returned.
func (s *Scheduler) waitStopped(ctx context.Context, jobID int64) error {
	deadline := time.After(cancelTimeout)
	ticker := time.NewTicker(cancelPoll)
	defer ticker.Stop()

	for {
		if _, running := s.runningJobs.Get(jobID); !running {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			logger.FromCtx(ctx).Warnw("job still running after cancel", "job_id", jobID, "waited", cancelTimeout)
			return nil
		case <-ticker.C:
		}
	}
}
