package repository

import (
	"context"

	"tutorin/internal/infra"
	"tutorin/internal/infra/db"
	"tutorin/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type TutorRepository struct {
	db db.DBTX
}

func NewTutorRepository(dbtx db.DBTX) *TutorRepository {
	return &TutorRepository{db: dbtx}
}

const incrementSessionCountQuery = `
UPDATE tutor_profiles SET
    total_sessions = total_sessions + 1,
    updated_at     = now()
WHERE user_id = $1`

// IncrementSessionCount runs exactly once per booking, in the same
// transaction as the completion that settles it.
func (r *TutorRepository) IncrementSessionCount(ctx context.Context, tx db.DBTX, tutorID uuid.UUID) error {
	tag, err := tx.Exec(ctx, incrementSessionCountQuery, pgconv.UUIDToPgtype(tutorID))
	if err != nil {
		return infra.WrapRepoErr("failed to increment session count", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("tutor profile not found", nil, infra.KindNotFound)
	}
	return nil
}
