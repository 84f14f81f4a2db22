package commands

import (
	"context"
	"encoding/json"
	"time"

	"tutorin/internal/domain/booking"
	"tutorin/internal/domain/user"
	"tutorin/internal/infra"
	"tutorin/internal/pkg/clock"
	"tutorin/internal/pkg/errs"
	"tutorin/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrTutorNotFound           = errs.New("tutor not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingConflict         = errs.New("time slot already booked")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingRequest struct {
	TutorID        uuid.UUID
	Subject        string
	Subtopic       *string
	GradeLevel     int
	TeachingMethod string
	StartTime      time.Time
	DurationHours  float64
	Location       *string
}

type CreateBookingResult struct {
	BookingID uuid.UUID
}

type BookingCommands interface {
	Create(ctx context.Context, req CreateBookingRequest, studentID uuid.UUID) (*CreateBookingResult, error)
	Confirm(ctx context.Context, bookingID, tutorID uuid.UUID, meetingURL *string) error
	CompleteByTutor(ctx context.Context, bookingID, tutorID uuid.UUID) error
	CompleteByStudent(ctx context.Context, bookingID, studentID uuid.UUID) error
	Cancel(ctx context.Context, bookingID, actorID uuid.UUID, role user.Role, reason string) error
}

type bookingUseCaseImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	leadTime time.Duration
}

func NewBookingUseCase(uow shared.UnitOfWork, clk clock.Clock, leadTime time.Duration) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, clock: clk, leadTime: leadTime}
}

func (uc *bookingUseCaseImpl) Create(ctx context.Context, req CreateBookingRequest, studentID uuid.UUID) (*CreateBookingResult, error) {
	subject, err := booking.NewSubject(req.Subject, req.Subtopic)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	grade, err := booking.NewGradeLevel(req.GradeLevel)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	duration, err := booking.NewDuration(req.DurationHours)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	services := &booking.Services{Clock: uc.clock, LeadTime: uc.leadTime}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		tutor, derr := tx.Reads().TutorByID(ctx, req.TutorID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrTutorNotFound
			}
			return derr
		}
		if !tutor.Visible() {
			return errs.Mark(shared.ErrTutorNotVisible, ErrTutorNotFound)
		}

		rate, derr := booking.NewMoney(tutor.HourlyRate)
		if derr != nil {
			return errs.Mark(derr, ErrDomainValidation)
		}

		b, derr := booking.NewBooking(services, booking.TutorSpec{ID: tutor.ID, HourlyRate: rate}, studentID, booking.CreateParams{
			Subject:        subject,
			GradeLevel:     grade,
			TeachingMethod: booking.TeachingMethod(req.TeachingMethod),
			Start:          req.StartTime,
			Duration:       duration,
			Location:       req.Location,
		})
		if derr != nil {
			return errs.Mark(derr, ErrDomainValidation)
		}

		// Per-tutor advisory lock serializes the check-then-insert; the slot
		// exclusion constraint backstops it.
		if derr := tx.Bookings().LockTutor(ctx, tx.DB(), b.TutorID()); derr != nil {
			return derr
		}
		taken, derr := tx.Bookings().HasActiveOverlapping(ctx, tx.DB(), b.TutorID(), b.TimeSlot().Start(), b.TimeSlot().End())
		if derr != nil {
			return derr
		}
		if taken {
			return ErrBookingConflict
		}

		id, derr := tx.Bookings().Create(ctx, tx.DB(), b)
		if derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				return ErrBookingConflict
			}
			return derr
		}
		createdID = id

		return uc.notify(ctx, tx, "booking_created", map[string]any{
			"booking_id": id,
			"tutor_id":   b.TutorID(),
		})
	})
	if err != nil {
		return nil, err
	}
	return &CreateBookingResult{BookingID: createdID}, nil
}

func (uc *bookingUseCaseImpl) Confirm(ctx context.Context, bookingID, tutorID uuid.UUID, meetingURL *string) error {
	return uc.mutate(ctx, bookingID, "booking_confirmed", func(b *booking.Booking) error {
		return b.Confirm(tutorID, meetingURL)
	})
}

func (uc *bookingUseCaseImpl) CompleteByTutor(ctx context.Context, bookingID, tutorID uuid.UUID) error {
	return uc.mutate(ctx, bookingID, "booking_completion", func(b *booking.Booking) error {
		return b.CompleteByTutor(tutorID, uc.clock.Now())
	})
}

func (uc *bookingUseCaseImpl) CompleteByStudent(ctx context.Context, bookingID, studentID uuid.UUID) error {
	return uc.mutate(ctx, bookingID, "booking_completion", func(b *booking.Booking) error {
		return b.CompleteByStudent(studentID, uc.clock.Now())
	})
}

func (uc *bookingUseCaseImpl) Cancel(ctx context.Context, bookingID, actorID uuid.UUID, role user.Role, reason string) error {
	return uc.mutate(ctx, bookingID, "booking_cancelled", func(b *booking.Booking) error {
		return b.Cancel(actorID, role, reason)
	})
}

// mutate runs one state transition: load, apply, persist, notify. A
// completion that settles the booking also bumps the tutor's session counter
// in the same transaction, exactly once.
func (uc *bookingUseCaseImpl) mutate(ctx context.Context, bookingID uuid.UUID, topic string, transition func(b *booking.Booking) error) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		b, err := snap.ToDomain()
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		wasCompleted := b.Status() == booking.StatusCompleted
		if err := transition(b); err != nil {
			return err
		}

		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return err
		}

		if !wasCompleted && b.Status() == booking.StatusCompleted {
			if err := tx.Tutors().IncrementSessionCount(ctx, tx.DB(), b.TutorID()); err != nil {
				return err
			}
		}

		return uc.notify(ctx, tx, topic, map[string]any{
			"booking_id": b.ID(),
			"status":     b.Status().String(),
		})
	})
}

func (uc *bookingUseCaseImpl) notify(ctx context.Context, tx shared.Tx, topic string, payload map[string]any) error {
	return enqueueNotification(ctx, tx, uc.clock, topic, payload)
}

// enqueueNotification writes a fire-and-forget outbox job in the caller's
// transaction.
func enqueueNotification(ctx context.Context, tx shared.Tx, clk clock.Clock, topic string, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to encode notification payload")
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), "email", topic, data, clk.Now())
}
