package domain

import (
	"time"

	"github.com/google/uuid"
)

// Job lifecycle statuses.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// Job is one unit of background work in the DB-backed queue.
type Job struct {
	ID             int64      `json:"id"`
	JobID          uuid.UUID  `json:"job_id"`
	JobType        string     `json:"job_type"`
	Queue          string     `json:"queue"`
	Payload        []byte     `json:"payload"`
	Status         string     `json:"status"`
	Priority       int32      `json:"priority"`
	RetryCount     int32      `json:"retry_count"`
	MaxRetries     int32      `json:"max_retries"`
	TimeoutSeconds int32      `json:"timeout_seconds"`
	ScheduledAt    time.Time  `json:"scheduled_at"`
	WorkerID       string     `json:"worker_id,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// EnqueueJobParams defines a job to enqueue.
type EnqueueJobParams struct {
	JobType        string
	Queue          string
	Payload        []byte
	Priority       int32
	MaxRetries     int32
	TimeoutSeconds int32
	ScheduledAt    time.Time
}
