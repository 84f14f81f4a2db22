package repository

import (
	"context"

	"tutorin/internal/infra"
	"tutorin/internal/infra/db"
	"tutorin/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type RatingStatsRepository struct {
	db db.DBTX
}

func NewRatingStatsRepository(dbtx db.DBTX) *RatingStatsRepository {
	return &RatingStatsRepository{db: dbtx}
}

// Full recompute from the reviews table. Average rounds to one decimal; a
// tutor with no reviews goes back to 0.0 / 0.
const recalcTutorRatingStatsQuery = `
UPDATE tutor_profiles SET
    rating_average = COALESCE(sub.avg_rating, 0),
    rating_count   = COALESCE(sub.cnt, 0),
    updated_at     = now()
FROM (
    SELECT ROUND(AVG(rating)::numeric, 1) AS avg_rating, COUNT(*) AS cnt
    FROM reviews
    WHERE tutor_id = $1
) AS sub
WHERE tutor_profiles.user_id = $1`

func (r *RatingStatsRepository) RecalcTutorRatingStats(ctx context.Context, tx db.DBTX, tutorID uuid.UUID) error {
	if _, err := tx.Exec(ctx, recalcTutorRatingStatsQuery, pgconv.UUIDToPgtype(tutorID)); err != nil {
		return infra.WrapRepoErr("failed to recalculate tutor rating stats", err)
	}
	return nil
}
