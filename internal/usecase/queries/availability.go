package queries

import (
	"context"
	"time"

	"tutorin/internal/domain/availability"
	"tutorin/internal/pkg/clock"
	"tutorin/internal/pkg/wib"
	"tutorin/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityQueries interface {
	// TutorSlots projects the tutor's weekly template onto one WIB calendar
	// date and subtracts active bookings.
	TutorSlots(ctx context.Context, tutorID uuid.UUID, date string) (*AvailabilityDayView, error)
}

// BusyIntervalRepo lists the occupied intervals of a tutor's day. Only
// pending-payment and confirmed bookings block a slot.
type BusyIntervalRepo interface {
	FindActiveIntervals(ctx context.Context, tutorID uuid.UUID, from, to time.Time) ([]availability.Busy, error)
}

type TutorSnapshotReader interface {
	FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.TutorSnapshot, error)
}

type availabilityQueriesImpl struct {
	tutors TutorSnapshotReader
	busy   BusyIntervalRepo
	clock  clock.Clock
}

func NewAvailabilityQueries(tutors TutorSnapshotReader, busy BusyIntervalRepo, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{tutors: tutors, busy: busy, clock: clk}
}

func (q *availabilityQueriesImpl) TutorSlots(ctx context.Context, tutorID uuid.UUID, date string) (*AvailabilityDayView, error) {
	day, err := wib.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	tutor, err := q.tutors.FindSnapshotByID(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	// Hidden tutors are indistinguishable from missing ones.
	if !tutor.Visible() {
		return nil, shared.ErrTutorNotVisible
	}

	from, to := wib.DayBounds(day)
	busy, err := q.busy.FindActiveIntervals(ctx, tutorID, from, to)
	if err != nil {
		return nil, err
	}

	slots := availability.Slots(tutor.Template, day, busy, q.clock.Now())

	view := &AvailabilityDayView{
		TutorID:   tutorID,
		Date:      wib.FormatDate(day),
		DayOfWeek: wib.DayName(day),
		Slots:     make([]SlotView, len(slots)),
	}
	for i, s := range slots {
		view.Slots[i] = SlotView{
			StartTime: wib.FormatClock(s.Start),
			EndTime:   wib.FormatClock(s.End),
		}
	}
	return view, nil
}
