package repository

import (
	"context"

	"tutorin/internal/domain/review"
	"tutorin/internal/infra"
	"tutorin/internal/infra/db"
	"tutorin/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReviewRepository struct {
	db db.DBTX
}

func NewReviewRepository(dbtx db.DBTX) *ReviewRepository {
	return &ReviewRepository{db: dbtx}
}

const createReviewQuery = `
INSERT INTO reviews (
    id, booking_id, student_id, tutor_id, rating, comment
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

func (r *ReviewRepository) Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createReviewQuery,
		pgconv.UUIDToPgtype(rev.ID()),
		pgconv.UUIDToPgtype(rev.BookingID()),
		pgconv.UUIDToPgtype(rev.StudentID()),
		pgconv.UUIDToPgtype(rev.TutorID()),
		int32(rev.Rating().Value()),
		rev.Comment().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create review", err)
	}
	return id, nil
}

const updateReviewQuery = `
UPDATE reviews SET
    rating = $2,
    comment = $3,
    response = $4,
    responded_at = $5,
    updated_at = now()
WHERE id = $1`

func (r *ReviewRepository) Update(ctx context.Context, tx db.DBTX, rev *review.Review) error {
	tag, err := tx.Exec(ctx, updateReviewQuery,
		pgconv.UUIDToPgtype(rev.ID()),
		int32(rev.Rating().Value()),
		rev.Comment().String(),
		pgconv.StringPtrToPgtype(rev.Response()),
		pgconv.TimePtrToPgtype(rev.RespondedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update review", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return nil
}

const deleteReviewQuery = `DELETE FROM reviews WHERE id = $1`

func (r *ReviewRepository) Delete(ctx context.Context, tx db.DBTX, reviewID uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteReviewQuery, pgconv.UUIDToPgtype(reviewID))
	if err != nil {
		return infra.WrapRepoErr("failed to delete review", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return nil
}
