package manager

import (
	"context"
	"fmt"

	"github.com/kasuboski/gapz/pkg/logger"
	"github.com/kasuboski/gapz/pkg/storage"
	"go.uber.org/zap"
)

// TriggerJob queues a job of the requested type to run on the next scheduler poll
func (m *MediaManager) TriggerJob(ctx context.Context, req TriggerJobRequest) (JobResponse, error) {
	log := logger.FromCtx(ctx).With(zap.String("job_type", req.Type))

	id, err := m.scheduler.createPendingJob(ctx, JobType(req.Type))
	if err != nil {
		return JobResponse{}, fmt.Errorf("couldn't trigger %q job: %w", req.Type, err)
	}

	log.Infow("triggered job", zap.Int64("job_id", id))
	return m.GetJob(ctx, id)
}

// GetJob returns the job including the progress of a running reconcile
func (m *MediaManager) GetJob(ctx context.Context, id int64) (JobResponse, error) {
	job, err := m.storage.GetJob(ctx, id)
	if err != nil {
		return JobResponse{}, err
	}

	resp := toJobResponse(job)
	if job.State == storage.JobStateRunning {
		if p, ok := m.progress.Get(id); ok {
			resp.Progress = &p
		}
	}

	return resp, nil
}

// ListJobs returns jobs newest first along with the total matching the filter
func (m *MediaManager) ListJobs(ctx context.Context, offset, limit int, filter storage.JobFilter) (JobListResponse, error) {
	jobs, err := m.storage.ListJobs(ctx, offset, limit, filter)
	if err != nil {
		return JobListResponse{}, err
	}

	count, err := m.storage.CountJobs(ctx, filter)
	if err != nil {
		return JobListResponse{}, err
	}

	resp := JobListResponse{
		Jobs:  make([]JobResponse, 0, len(jobs)),
		Count: count,
	}
	for _, job := range jobs {
		r := toJobResponse(job)
		if p, ok := m.progress.Get(job.ID); ok && job.State == storage.JobStateRunning {
			r.Progress = &p
		}
		resp.Jobs = append(resp.Jobs, r)
	}

	return resp, nil
}

// CancelJob cancels a pending or running job and returns its resulting state
func (m *MediaManager) CancelJob(ctx context.Context, id int64) (JobResponse, error) {
	if err := m.scheduler.CancelJob(ctx, id); err != nil {
		return JobResponse{}, err
	}

	return m.GetJob(ctx, id)
}
