//go:build unit || e2e

package builder

import (
	"time"

	"tutorin/internal/domain/booking"
	reqdto "tutorin/internal/handler/dto/request"
	"tutorin/internal/pkg/clock"
	"tutorin/internal/pkg/wib"
	"tutorin/internal/usecase/commands"
	"tutorin/internal/usecase/shared"

	"github.com/google/uuid"
)

// BaseTime is a Monday morning in WIB; tests derive all instants from it so
// lead-time and completion guards behave deterministically.
var BaseTime = time.Date(2025, time.June, 2, 8, 0, 0, 0, wib.Location())

type BookingBuilder struct {
	ID             uuid.UUID
	StudentID      uuid.UUID
	TutorID        uuid.UUID
	Subject        string
	Subtopic       *string
	GradeLevel     int
	TeachingMethod string
	Start          time.Time
	DurationHours  float64
	HourlyRate     int64
	Location       *string
	MeetingURL     *string
	Status         string

	TutorCompleted   bool
	StudentCompleted bool

	Now      time.Time
	LeadTime time.Duration
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:             uuid.New(),
		StudentID:      uuid.New(),
		TutorID:        uuid.New(),
		Subject:        "Mathematics",
		GradeLevel:     9,
		TeachingMethod: "online",
		Start:          BaseTime.Add(3 * time.Hour),
		DurationHours:  1,
		HourlyRate:     100_000,
		Status:         booking.StatusPendingPayment.String(),
		Now:            BaseTime,
		LeadTime:       2 * time.Hour,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStudentID(id uuid.UUID) *BookingBuilder {
	b.StudentID = id
	return b
}

func (b *BookingBuilder) WithTutorID(id uuid.UUID) *BookingBuilder {
	b.TutorID = id
	return b
}

func (b *BookingBuilder) WithSubject(subject string) *BookingBuilder {
	b.Subject = subject
	return b
}

func (b *BookingBuilder) WithGradeLevel(grade int) *BookingBuilder {
	b.GradeLevel = grade
	return b
}

func (b *BookingBuilder) WithTeachingMethod(method string) *BookingBuilder {
	b.TeachingMethod = method
	return b
}

func (b *BookingBuilder) WithStart(start time.Time) *BookingBuilder {
	b.Start = start
	return b
}

func (b *BookingBuilder) WithDurationHours(hours float64) *BookingBuilder {
	b.DurationHours = hours
	return b
}

func (b *BookingBuilder) WithHourlyRate(rate int64) *BookingBuilder {
	b.HourlyRate = rate
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status.String()
	return b
}

// AsEnded places the session entirely in the past relative to Now, in the
// confirmed state, so completion calls pass the end-of-session guard.
func (b *BookingBuilder) AsEnded() *BookingBuilder {
	b.Start = b.Now.Add(-3 * time.Hour)
	b.Status = booking.StatusConfirmed.String()
	return b
}

func (b *BookingBuilder) AsTutorCompleted() *BookingBuilder {
	b.TutorCompleted = true
	return b
}

func (b *BookingBuilder) End() time.Time {
	return b.Start.Add(time.Duration(b.DurationHours * float64(time.Hour)))
}

func (b *BookingBuilder) TotalPrice() int64 {
	return int64(float64(b.HourlyRate) * b.DurationHours)
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	subject, err := booking.NewSubject(b.Subject, b.Subtopic)
	if err != nil {
		return nil, err
	}
	grade, err := booking.NewGradeLevel(b.GradeLevel)
	if err != nil {
		return nil, err
	}
	duration, err := booking.NewDuration(b.DurationHours)
	if err != nil {
		return nil, err
	}
	rate, err := booking.NewMoney(b.HourlyRate)
	if err != nil {
		return nil, err
	}

	services := &booking.Services{
		Clock:    clock.NewMockClock(b.Now),
		LeadTime: b.LeadTime,
	}
	return booking.NewBooking(services, booking.TutorSpec{ID: b.TutorID, HourlyRate: rate}, b.StudentID, booking.CreateParams{
		Subject:        subject,
		GradeLevel:     grade,
		TeachingMethod: booking.TeachingMethod(b.TeachingMethod),
		Start:          b.Start,
		Duration:       duration,
		Location:       b.Location,
	})
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	var tutorCompletedAt *time.Time
	if b.TutorCompleted {
		t := b.End().Add(time.Minute)
		tutorCompletedAt = &t
	}
	return &shared.BookingSnapshot{
		ID:               b.ID,
		StudentID:        b.StudentID,
		TutorID:          b.TutorID,
		Subject:          b.Subject,
		Subtopic:         b.Subtopic,
		GradeLevel:       b.GradeLevel,
		TeachingMethod:   b.TeachingMethod,
		Start:            b.Start,
		End:              b.End(),
		DurationHours:    b.DurationHours,
		HourlyRate:       b.HourlyRate,
		TotalPrice:       b.TotalPrice(),
		Status:           b.Status,
		Location:         b.Location,
		MeetingURL:       b.MeetingURL,
		TutorCompleted:   b.TutorCompleted,
		StudentCompleted: b.StudentCompleted,
		TutorCompletedAt: tutorCompletedAt,
		CreatedAt:        b.Now,
		UpdatedAt:        b.Now,
	}
}

func (b *BookingBuilder) BuildCreateCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		TutorID:        b.TutorID,
		Subject:        b.Subject,
		Subtopic:       b.Subtopic,
		GradeLevel:     b.GradeLevel,
		TeachingMethod: b.TeachingMethod,
		StartTime:      b.Start,
		DurationHours:  b.DurationHours,
		Location:       b.Location,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		TutorID:        b.TutorID,
		Subject:        b.Subject,
		Subtopic:       b.Subtopic,
		GradeLevel:     b.GradeLevel,
		TeachingMethod: b.TeachingMethod,
		StartTime:      b.Start,
		DurationHours:  b.DurationHours,
		Location:       b.Location,
	}
}
