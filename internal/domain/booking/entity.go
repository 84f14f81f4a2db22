package booking

import (
	"errors"
	"time"

	"tutorin/internal/domain/user"
	"tutorin/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrNotBookingTutor     = errors.New("caller is not the tutor on this booking")
	ErrNotBookingStudent   = errors.New("caller is not the student on this booking")
	ErrNotBookingParty     = errors.New("caller is not a party to this booking")
	ErrNotPendingPayment   = errors.New("booking is not awaiting payment")
	ErrNotConfirmed        = errors.New("booking is not confirmed")
	ErrAlreadyTerminal     = errors.New("booking is already completed or cancelled")
	ErrSessionNotEnded     = errors.New("session has not ended yet")
	ErrAlreadyCompleted    = errors.New("completion already recorded for this party")
	ErrTutorMustGoFirst    = errors.New("tutor must confirm completion before the student")
	ErrEmptyCancelReason   = errors.New("cancellation reason is required")
	ErrInvalidTeachingMode = errors.New("teaching method must be online or offline")
)

type TutorSpec struct {
	ID         uuid.UUID
	HourlyRate Money
}

type Services struct {
	Clock    clock.Clock
	LeadTime time.Duration
}

type CreateParams struct {
	Subject        Subject
	GradeLevel     GradeLevel
	TeachingMethod TeachingMethod
	Start          time.Time
	Duration       Duration
	Location       *string
}

type Booking struct {
	id             uuid.UUID
	studentID      uuid.UUID
	tutorID        uuid.UUID
	subject        Subject
	gradeLevel     GradeLevel
	teachingMethod TeachingMethod
	timeSlot       TimeSlot
	duration       Duration
	hourlyRate     Money
	totalPrice     Money
	status         Status

	location   *string
	meetingURL *string

	tutorCompleted     bool
	studentCompleted   bool
	tutorCompletedAt   *time.Time
	studentCompletedAt *time.Time

	cancellationReason *string
	cancelledBy        *uuid.UUID

	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a pending-payment booking. The hourly rate is
// snapshotted from the tutor spec and never recalculated afterwards.
func NewBooking(services *Services, tutor TutorSpec, studentID uuid.UUID, p CreateParams) (*Booking, error) {
	if !p.TeachingMethod.IsValid() {
		return nil, ErrInvalidTeachingMode
	}
	if p.Location != nil && len(*p.Location) > MaxLocationLength {
		return nil, ErrLocationTooLong
	}

	slot, err := NewTimeSlot(p.Start, p.Start.Add(p.Duration.AsTimeDuration()))
	if err != nil {
		return nil, err
	}
	if err := slot.ValidateLeadTimeAt(services.Clock.Now(), services.LeadTime); err != nil {
		return nil, err
	}

	return &Booking{
		id:             uuid.New(),
		studentID:      studentID,
		tutorID:        tutor.ID,
		subject:        p.Subject,
		gradeLevel:     p.GradeLevel,
		teachingMethod: p.TeachingMethod,
		timeSlot:       slot,
		duration:       p.Duration,
		hourlyRate:     tutor.HourlyRate,
		totalPrice:     tutor.HourlyRate.MulHours(p.Duration),
		status:         StatusPendingPayment,
		location:       p.Location,
	}, nil
}

func ReconstructBooking(
	id, studentID, tutorID uuid.UUID,
	subject Subject,
	gradeLevel GradeLevel,
	teachingMethod TeachingMethod,
	timeSlot TimeSlot,
	duration Duration,
	hourlyRate, totalPrice Money,
	status Status,
	location, meetingURL *string,
	tutorCompleted, studentCompleted bool,
	tutorCompletedAt, studentCompletedAt *time.Time,
	cancellationReason *string,
	cancelledBy *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                 id,
		studentID:          studentID,
		tutorID:            tutorID,
		subject:            subject,
		gradeLevel:         gradeLevel,
		teachingMethod:     teachingMethod,
		timeSlot:           timeSlot,
		duration:           duration,
		hourlyRate:         hourlyRate,
		totalPrice:         totalPrice,
		status:             status,
		location:           location,
		meetingURL:         meetingURL,
		tutorCompleted:     tutorCompleted,
		studentCompleted:   studentCompleted,
		tutorCompletedAt:   tutorCompletedAt,
		studentCompletedAt: studentCompletedAt,
		cancellationReason: cancellationReason,
		cancelledBy:        cancelledBy,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// Confirm moves a pending-payment booking to confirmed. The canonical path
// runs through payment verification; calling it directly is reserved for
// offline/cash sessions.
func (b *Booking) Confirm(tutorID uuid.UUID, meetingURL *string) error {
	if b.tutorID != tutorID {
		return ErrNotBookingTutor
	}
	if b.status != StatusPendingPayment {
		return ErrNotPendingPayment
	}
	b.status = StatusConfirmed
	if meetingURL != nil {
		b.meetingURL = meetingURL
	}
	return nil
}

// ConfirmByPayment is the payment-verification cascade. It carries no caller
// check: the payment workflow has already authorized the tutor.
func (b *Booking) ConfirmByPayment() error {
	if b.status != StatusPendingPayment {
		return ErrNotPendingPayment
	}
	b.status = StatusConfirmed
	return nil
}

func (b *Booking) CompleteByTutor(tutorID uuid.UUID, now time.Time) error {
	if b.tutorID != tutorID {
		return ErrNotBookingTutor
	}
	if err := b.completionGuard(now); err != nil {
		return err
	}
	if b.tutorCompleted {
		return ErrAlreadyCompleted
	}
	b.tutorCompleted = true
	b.tutorCompletedAt = &now
	b.settleCompletion()
	return nil
}

// CompleteByStudent requires the tutor's attestation first.
func (b *Booking) CompleteByStudent(studentID uuid.UUID, now time.Time) error {
	if b.studentID != studentID {
		return ErrNotBookingStudent
	}
	if err := b.completionGuard(now); err != nil {
		return err
	}
	if b.studentCompleted {
		return ErrAlreadyCompleted
	}
	if !b.tutorCompleted {
		return ErrTutorMustGoFirst
	}
	b.studentCompleted = true
	b.studentCompletedAt = &now
	b.settleCompletion()
	return nil
}

func (b *Booking) completionGuard(now time.Time) error {
	if b.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	if now.Before(b.timeSlot.End()) {
		return ErrSessionNotEnded
	}
	return nil
}

func (b *Booking) settleCompletion() {
	if b.tutorCompleted && b.studentCompleted {
		b.status = StatusCompleted
	}
}

func (b *Booking) Cancel(actorID uuid.UUID, role user.Role, reason string) error {
	if role != user.RoleAdmin && actorID != b.studentID && actorID != b.tutorID {
		return ErrNotBookingParty
	}
	if b.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	if reason == "" {
		return ErrEmptyCancelReason
	}
	b.status = StatusCancelled
	b.cancellationReason = &reason
	b.cancelledBy = &actorID
	return nil
}

// CancelByPayment is the payment-rejection cascade.
func (b *Booking) CancelByPayment(tutorID uuid.UUID, reason string) error {
	if b.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	b.status = StatusCancelled
	b.cancellationReason = &reason
	b.cancelledBy = &tutorID
	return nil
}

func (b *Booking) IsParty(actorID uuid.UUID) bool {
	return actorID == b.studentID || actorID == b.tutorID
}

func (b *Booking) ID() uuid.UUID                  { return b.id }
func (b *Booking) StudentID() uuid.UUID           { return b.studentID }
func (b *Booking) TutorID() uuid.UUID             { return b.tutorID }
func (b *Booking) Subject() Subject               { return b.subject }
func (b *Booking) GradeLevel() GradeLevel         { return b.gradeLevel }
func (b *Booking) TeachingMethod() TeachingMethod { return b.teachingMethod }
func (b *Booking) TimeSlot() TimeSlot             { return b.timeSlot }
func (b *Booking) Duration() Duration             { return b.duration }
func (b *Booking) HourlyRate() Money              { return b.hourlyRate }
func (b *Booking) TotalPrice() Money              { return b.totalPrice }
func (b *Booking) Status() Status                 { return b.status }
func (b *Booking) Location() *string              { return b.location }
func (b *Booking) MeetingURL() *string            { return b.meetingURL }
func (b *Booking) TutorCompleted() bool           { return b.tutorCompleted }
func (b *Booking) StudentCompleted() bool         { return b.studentCompleted }
func (b *Booking) TutorCompletedAt() *time.Time   { return b.tutorCompletedAt }
func (b *Booking) StudentCompletedAt() *time.Time { return b.studentCompletedAt }
func (b *Booking) CancellationReason() *string    { return b.cancellationReason }
func (b *Booking) CancelledBy() *uuid.UUID        { return b.cancelledBy }
func (b *Booking) CreatedAt() time.Time           { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time           { return b.updatedAt }
