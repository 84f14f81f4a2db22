package review

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Review is booking-scoped: one per completed booking, written by the
// student, optionally answered once by the tutor.
type Review struct {
	id        uuid.UUID
	studentID uuid.UUID
	tutorID   uuid.UUID
	bookingID uuid.UUID
	rating    Rating
	comment   Comment

	response    *string
	respondedAt *time.Time

	createdAt time.Time
	updatedAt time.Time
}

func NewReview(id, studentID, tutorID, bookingID uuid.UUID, ratingValue int, commentText string, now time.Time) (*Review, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}

	comment, err := NewComment(commentText)
	if err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Review{
		id:        id,
		studentID: studentID,
		tutorID:   tutorID,
		bookingID: bookingID,
		rating:    rating,
		comment:   comment,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructReview(
	id, studentID, tutorID, bookingID uuid.UUID,
	rating Rating,
	comment Comment,
	response *string,
	respondedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Review {
	return &Review{
		id:          id,
		studentID:   studentID,
		tutorID:     tutorID,
		bookingID:   bookingID,
		rating:      rating,
		comment:     comment,
		response:    response,
		respondedAt: respondedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Respond records the tutor's single public answer to the review.
func (r *Review) Respond(text string, now time.Time) error {
	t := strings.TrimSpace(text)
	if t == "" {
		return ErrEmptyResponse
	}
	if len(t) > MaxResponseLength {
		return ErrResponseTooLong
	}
	if r.response != nil {
		return ErrAlreadyResponded
	}
	r.response = &t
	r.respondedAt = &now
	return nil
}

func (r *Review) ID() uuid.UUID           { return r.id }
func (r *Review) StudentID() uuid.UUID    { return r.studentID }
func (r *Review) TutorID() uuid.UUID      { return r.tutorID }
func (r *Review) BookingID() uuid.UUID    { return r.bookingID }
func (r *Review) Rating() Rating          { return r.rating }
func (r *Review) Comment() Comment        { return r.comment }
func (r *Review) Response() *string       { return r.response }
func (r *Review) RespondedAt() *time.Time { return r.respondedAt }
func (r *Review) CreatedAt() time.Time    { return r.createdAt }
func (r *Review) UpdatedAt() time.Time    { return r.updatedAt }
