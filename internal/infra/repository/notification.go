package repository

import (
	"context"
	"time"

	"tutorin/internal/infra"
	"tutorin/internal/infra/db"
	"tutorin/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

const createNotificationJobQuery = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, 'queued')`

// CreateJob enqueues an outbox row in the caller's transaction, so the job
// becomes visible only if the business change commits.
func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	if _, err := tx.Exec(ctx, createNotificationJobQuery, kind, topic, payload, pgconv.TimeToPgtype(runAt)); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

const updateNotificationJobStatusQuery = `
UPDATE notification_jobs SET
    status     = $2,
    last_error = $3,
    updated_at = now()
WHERE id = $1`

func (r *NotificationRepository) UpdateJobStatus(ctx context.Context, tx db.DBTX, jobID uuid.UUID, status string, lastError *string) error {
	if _, err := tx.Exec(ctx, updateNotificationJobStatusQuery,
		pgconv.UUIDToPgtype(jobID),
		status,
		pgconv.StringPtrToPgtype(lastError),
	); err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	return nil
}
