package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kasuboski/gapz/pkg/storage"
)

const jobSelect = `
	SELECT job.id, job.type, job_transition.to_state, job.created_at, job_transition.updated_at, job_transition.error
	FROM job
	INNER JOIN job_transition ON job_transition.job_id = job.id AND job_transition.most_recent = 1`

func jobWhere(filter storage.JobFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	if filter.Type != nil {
		conditions = append(conditions, "job.type = ?")
		args = append(args, *filter.Type)
	}
	if filter.State != nil {
		conditions = append(conditions, "job_transition.to_state = ?")
		args = append(args, string(*filter.State))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanJob(row rowScanner) (*storage.Job, error) {
	job := new(storage.Job)
	var errMsg sql.NullString

	err := row.Scan(&job.ID, &job.Type, &job.State, &job.CreatedAt, &job.UpdatedAt, &errMsg)
	if err != nil {
		return nil, mapError(err)
	}

	if errMsg.Valid {
		job.Error = &errMsg.String
	}

	return job, nil
}

// CreateJob stores a job and creates an initial state
func (s *SQLite) CreateJob(ctx context.Context, job storage.Job, initialState storage.JobState) (int64, error) {
	job.State = storage.JobStateNew
	if err := job.Machine().ToState(initialState); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var inserted int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if initialState == storage.JobStatePending {
			var pending int
			err := tx.QueryRowContext(ctx, `
				SELECT COUNT(*) FROM job_transition
				WHERE type = ? AND to_state = ? AND most_recent = 1`,
				job.Type, string(storage.JobStatePending),
			).Scan(&pending)
			if err != nil {
				return fmt.Errorf("failed to check pending jobs: %w", err)
			}
			if pending > 0 {
				return storage.ErrJobAlreadyPending
			}
		}

		now := time.Now().UTC()
		result, err := tx.ExecContext(ctx, `INSERT INTO job (type, created_at) VALUES (?, ?)`, job.Type, now)
		if err != nil {
			return fmt.Errorf("failed to insert job: %w", err)
		}

		inserted, err = result.LastInsertId()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO job_transition (job_id, type, from_state, to_state, most_recent, sort_key, error, created_at, updated_at)
			VALUES (?, ?, NULL, ?, 1, 1, NULL, ?, ?)`,
			inserted, job.Type, string(initialState), now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert job transition: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// GetJob retrieves a job by ID with its current state
func (s *SQLite) GetJob(ctx context.Context, id int64) (*storage.Job, error) {
	return getJob(ctx, s.db, id)
}

func getJob(ctx context.Context, q querier, id int64) (*storage.Job, error) {
	job, err := scanJob(q.QueryRowContext(ctx, jobSelect+` WHERE job.id = ?`, id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return job, nil
}

// CountJobs returns the number of jobs matching the filter
func (s *SQLite) CountJobs(ctx context.Context, filter storage.JobFilter) (int, error) {
	where, args := jobWhere(filter)

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(job.id) FROM job
		INNER JOIN job_transition ON job_transition.job_id = job.id AND job_transition.most_recent = 1`+where,
		args...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	return count, nil
}

// ListJobs lists jobs newest first with optional pagination.
// If limit is 0, returns all jobs without pagination
func (s *SQLite) ListJobs(ctx context.Context, offset, limit int, filter storage.JobFilter) ([]*storage.Job, error) {
	where, args := jobWhere(filter)

	query := jobSelect + where + ` ORDER BY job.id DESC`
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]*storage.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to list jobs: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

// UpdateJobState updates the state of a job, optionally setting an error message
func (s *SQLite) UpdateJobState(ctx context.Context, id int64, state storage.JobState, errorMsg *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		job, err := getJob(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := job.Machine().ToState(state); err != nil {
			return err
		}

		now := time.Now().UTC()

		var sortKey int
		err = tx.QueryRowContext(ctx, `
			UPDATE job_transition SET most_recent = 0, updated_at = ?
			WHERE job_id = ? AND most_recent = 1
			RETURNING sort_key`,
			now, id,
		).Scan(&sortKey)
		if err != nil {
			return fmt.Errorf("failed to update previous job transition: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO job_transition (job_id, type, from_state, to_state, most_recent, sort_key, error, created_at, updated_at)
			VALUES (?, ?, ?, ?, 1, ?, ?, ?, ?)`,
			id, job.Type, string(job.State), string(state), sortKey+1, errorMsg, now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert new job transition: %w", err)
		}

		return nil
	})
}

// DeleteJobs removes jobs created before the cutoff and their transitions, keeping the given ids
func (s *SQLite) DeleteJobs(ctx context.Context, before time.Time, keep ...int64) (int64, error) {
	where := ` WHERE created_at < ?`
	args := []any{before.UTC()}
	if len(keep) > 0 {
		where += ` AND id NOT IN (?` + strings.Repeat(`, ?`, len(keep)-1) + `)`
		for _, id := range keep {
			args = append(args, id)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM job_transition WHERE job_id IN (SELECT id FROM job`+where+`)`, args...)
		if err != nil {
			return fmt.Errorf("failed to delete job transitions: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM job`+where, args...)
		if err != nil {
			return fmt.Errorf("failed to delete jobs: %w", err)
		}

		deleted, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}
