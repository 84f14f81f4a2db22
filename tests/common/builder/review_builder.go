//go:build unit || e2e

package builder

import (
	"time"

	domreview "tutorin/internal/domain/review"
	reqdto "tutorin/internal/handler/dto/request"
	"tutorin/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	TutorID   uuid.UUID
	BookingID uuid.UUID
	Rating    int
	Comment   string
	Response  *string
	CreatedAt time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		ID:        uuid.New(),
		StudentID: uuid.New(),
		TutorID:   uuid.New(),
		BookingID: uuid.New(),
		Rating:    5,
		Comment:   "Great session, very patient tutor!",
		CreatedAt: BaseTime,
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

func (r *ReviewBuilder) WithStudentID(id uuid.UUID) *ReviewBuilder {
	r.StudentID = id
	return r
}

func (r *ReviewBuilder) WithTutorID(id uuid.UUID) *ReviewBuilder {
	r.TutorID = id
	return r
}

func (r *ReviewBuilder) WithBookingID(id uuid.UUID) *ReviewBuilder {
	r.BookingID = id
	return r
}

func (r *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	r.Rating = rating
	return r
}

func (r *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	r.Comment = comment
	return r
}

func (r *ReviewBuilder) WithResponse(text string) *ReviewBuilder {
	r.Response = &text
	return r
}

func (r *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	return domreview.NewReview(uuid.Nil, r.StudentID, r.TutorID, r.BookingID, r.Rating, r.Comment, r.CreatedAt)
}

func (r *ReviewBuilder) BuildSnapshot() *shared.ReviewSnapshot {
	return &shared.ReviewSnapshot{
		ID:        r.ID,
		StudentID: r.StudentID,
		TutorID:   r.TutorID,
		BookingID: r.BookingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Response:  r.Response,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.CreatedAt,
	}
}

func (r *ReviewBuilder) BuildCreateRequestDTO() reqdto.CreateReviewRequest {
	return reqdto.CreateReviewRequest{
		BookingID: r.BookingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}
