package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vikasavn/dukaan/internal/domain"
)

const jobColumns = `id, job_id, job_type, queue, payload, status, priority,
	retry_count, max_retries, timeout_seconds, scheduled_at, worker_id,
	error_message, started_at, completed_at, created_at`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	var workerID, errorMessage pgtype.Text
	var startedAt, completedAt pgtype.Timestamptz
	err := row.Scan(
		&j.ID, &j.JobID, &j.JobType, &j.Queue, &j.Payload, &j.Status, &j.Priority,
		&j.RetryCount, &j.MaxRetries, &j.TimeoutSeconds, &j.ScheduledAt, &workerID,
		&errorMessage, &startedAt, &completedAt, &j.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	j.WorkerID = workerID.String
	j.ErrorMessage = errorMessage.String
	j.StartedAt = timePtrFromTimestamptz(startedAt)
	j.CompletedAt = timePtrFromTimestamptz(completedAt)
	return &j, nil
}

// EnqueueJob inserts a pending job.
func (q *Queries) EnqueueJob(ctx context.Context, params domain.EnqueueJobParams) (*domain.Job, error) {
	if params.Queue == "" {
		params.Queue = "default"
	}
	if params.MaxRetries == 0 {
		params.MaxRetries = 3
	}
	if params.TimeoutSeconds == 0 {
		params.TimeoutSeconds = 60
	}
	if params.ScheduledAt.IsZero() {
		params.ScheduledAt = time.Now()
	}
	if len(params.Payload) == 0 {
		params.Payload = []byte("{}")
	}

	row := q.db.QueryRow(ctx, `
		INSERT INTO jobs (job_type, queue, payload, priority, max_retries,
			timeout_seconds, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+jobColumns,
		params.JobType, params.Queue, params.Payload, params.Priority,
		params.MaxRetries, params.TimeoutSeconds, params.ScheduledAt,
	)
	return scanJob(row)
}

// ClaimNextJob atomically claims the highest-priority due job for a worker.
// SKIP LOCKED lets concurrent workers claim without blocking each other.
// Returns pgx.ErrNoRows when nothing is due.
func (q *Queries) ClaimNextJob(ctx context.Context, workerID, queue string) (*domain.Job, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE jobs
		SET status = 'processing', worker_id = $1, started_at = now()
		WHERE id = (
			SELECT id FROM jobs
			WHERE status = 'pending'
				AND scheduled_at <= now()
				AND ($2 = '' OR queue = $2)
			ORDER BY priority DESC, scheduled_at, id
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING `+jobColumns,
		workerID, queue,
	)
	return scanJob(row)
}

// CompleteJob marks a claimed job as done.
func (q *Queries) CompleteJob(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, `
		UPDATE jobs
		SET status = 'completed', completed_at = now(), error_message = NULL
		WHERE id = $1`, id)
	return err
}

// FailJob records a failure. Jobs with retries left go back to pending with
// exponential backoff; exhausted jobs are marked failed.
func (q *Queries) FailJob(ctx context.Context, id int64, errorMessage string) (*domain.Job, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE jobs
		SET retry_count = retry_count + 1,
			error_message = $2,
			worker_id = NULL,
			started_at = NULL,
			status = CASE WHEN retry_count + 1 >= max_retries THEN 'failed' ELSE 'pending' END,
			completed_at = CASE WHEN retry_count + 1 >= max_retries THEN now() ELSE NULL END,
			scheduled_at = CASE WHEN retry_count + 1 >= max_retries THEN scheduled_at
				ELSE now() + (interval '30 seconds' * power(2, retry_count)) END
		WHERE id = $1
		RETURNING `+jobColumns,
		id, errorMessage,
	)
	return scanJob(row)
}
