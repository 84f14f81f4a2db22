package readstore

import (
	"context"

	"tutorin/internal/infra"
	"tutorin/internal/infra/db"
	"tutorin/internal/pkg/pgconv"
	"tutorin/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(dbtx db.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: dbtx}
}

const findReviewByIDQuery = `
SELECT id, booking_id, student_id, tutor_id, rating, comment,
       response, responded_at, created_at, updated_at
FROM reviews
WHERE id = $1`

func (r *ReviewReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.ReviewSnapshot, error) {
	var (
		s                    shared.ReviewSnapshot
		rating               int32
		response             pgtype.Text
		respondedAt          pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, findReviewByIDQuery, pgconv.UUIDToPgtype(id)).Scan(
		&s.ID, &s.BookingID, &s.StudentID, &s.TutorID, &rating, &s.Comment,
		&response, &respondedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find review", err)
	}

	s.Rating = int(rating)
	s.Response = pgconv.StringPtrFromPgtype(response)
	s.RespondedAt = pgconv.TimePtrFromPgtype(respondedAt)
	s.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	s.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &s, nil
}
