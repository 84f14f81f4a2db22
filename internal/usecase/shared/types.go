package shared

import (
	"time"

	"tutorin/internal/domain/availability"
	"tutorin/internal/domain/booking"
	"tutorin/internal/domain/payment"
	"tutorin/internal/domain/review"
	"tutorin/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrTutorNotVisible hides unapproved and blocked tutors. Callers surface it
// as not-found, never as forbidden.
var ErrTutorNotVisible = errs.New("tutor not available for booking")

// Write-side snapshots prevent dependency on read-side query types.

type TutorSnapshot struct {
	ID            uuid.UUID
	Approved      bool
	Blocked       bool
	HourlyRate    int64
	Template      availability.Template
	TotalSessions int32
}

// Visible reports whether the tutor can be booked at all. Unapproved or
// blocked tutors are treated as not found, never as forbidden.
func (t TutorSnapshot) Visible() bool {
	return t.Approved && !t.Blocked
}

// AccountSnapshot carries the credential row the login flow verifies
// against. PasswordHash never leaves the usecase layer.
type AccountSnapshot struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         string
	PasswordHash string
	Blocked      bool
}

type BookingSnapshot struct {
	ID                 uuid.UUID
	StudentID          uuid.UUID
	TutorID            uuid.UUID
	Subject            string
	Subtopic           *string
	GradeLevel         int
	TeachingMethod     string
	Start              time.Time
	End                time.Time
	DurationHours      float64
	HourlyRate         int64
	TotalPrice         int64
	Status             string
	Location           *string
	MeetingURL         *string
	TutorCompleted     bool
	StudentCompleted   bool
	TutorCompletedAt   *time.Time
	StudentCompletedAt *time.Time
	CancellationReason *string
	CancelledBy        *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ToDomain rebuilds the aggregate so state transitions run through the
// domain guards rather than ad-hoc field checks.
func (s BookingSnapshot) ToDomain() (*booking.Booking, error) {
	subject, err := booking.NewSubject(s.Subject, s.Subtopic)
	if err != nil {
		return nil, err
	}
	grade, err := booking.NewGradeLevel(s.GradeLevel)
	if err != nil {
		return nil, err
	}
	slot, err := booking.NewTimeSlot(s.Start, s.End)
	if err != nil {
		return nil, err
	}
	duration, err := booking.NewDuration(s.DurationHours)
	if err != nil {
		return nil, err
	}
	rate, err := booking.NewMoney(s.HourlyRate)
	if err != nil {
		return nil, err
	}
	total, err := booking.NewMoney(s.TotalPrice)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		s.ID, s.StudentID, s.TutorID,
		subject, grade, booking.TeachingMethod(s.TeachingMethod),
		slot, duration, rate, total,
		booking.Status(s.Status),
		s.Location, s.MeetingURL,
		s.TutorCompleted, s.StudentCompleted,
		s.TutorCompletedAt, s.StudentCompletedAt,
		s.CancellationReason, s.CancelledBy,
		s.CreatedAt, s.UpdatedAt,
	), nil
}

type PaymentSnapshot struct {
	ID              uuid.UUID
	BookingID       uuid.UUID
	Amount          int64
	Method          string
	TransactionID   string
	Status          string
	Instructions    payment.Instructions
	ProofURL        *string
	PaidAt          *time.Time
	ExpiresAt       time.Time
	VerifiedBy      *uuid.UUID
	VerifiedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s PaymentSnapshot) ToDomain() *payment.Payment {
	return payment.ReconstructPayment(
		s.ID, s.BookingID,
		s.Amount, payment.Method(s.Method), s.TransactionID,
		payment.Status(s.Status), s.Instructions,
		s.ProofURL, s.PaidAt, s.ExpiresAt,
		s.VerifiedBy, s.VerifiedAt, s.RejectionReason,
		s.CreatedAt, s.UpdatedAt,
	)
}

type ReviewSnapshot struct {
	ID          uuid.UUID
	StudentID   uuid.UUID
	TutorID     uuid.UUID
	BookingID   uuid.UUID
	Rating      int
	Comment     string
	Response    *string
	RespondedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s ReviewSnapshot) ToDomain() (*review.Review, error) {
	rating, err := review.NewRating(s.Rating)
	if err != nil {
		return nil, err
	}
	comment, err := review.NewComment(s.Comment)
	if err != nil {
		return nil, err
	}
	return review.ReconstructReview(
		s.ID, s.StudentID, s.TutorID, s.BookingID,
		rating, comment,
		s.Response, s.RespondedAt,
		s.CreatedAt, s.UpdatedAt,
	), nil
}
