//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"tutorin/internal/domain/availability"
	"tutorin/internal/infra"
	"tutorin/internal/pkg/clock"
	"tutorin/internal/pkg/wib"
	"tutorin/internal/usecase/queries"
	"tutorin/internal/usecase/shared"
	"tutorin/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTutorReader struct {
	tutors map[uuid.UUID]*shared.TutorSnapshot
}

func (s *stubTutorReader) FindSnapshotByID(_ context.Context, id uuid.UUID) (*shared.TutorSnapshot, error) {
	t, ok := s.tutors[id]
	if !ok {
		return nil, infra.WrapRepoErr("tutor not found", nil, infra.KindNotFound)
	}
	return t, nil
}

type stubBusyRepo struct {
	intervals []availability.Busy
}

func (s *stubBusyRepo) FindActiveIntervals(_ context.Context, _ uuid.UUID, from, to time.Time) ([]availability.Busy, error) {
	var out []availability.Busy
	for _, b := range s.intervals {
		if b.Start.Before(to) && from.Before(b.End) {
			out = append(out, b)
		}
	}
	return out, nil
}

func newQueries(tutor *shared.TutorSnapshot, busy []availability.Busy, now time.Time) queries.AvailabilityQueries {
	reader := &stubTutorReader{tutors: map[uuid.UUID]*shared.TutorSnapshot{}}
	if tutor != nil {
		reader.tutors[tutor.ID] = tutor
	}
	return queries.NewAvailabilityQueries(reader, &stubBusyRepo{intervals: busy}, clock.NewMockClock(now))
}

func TestTutorSlots(t *testing.T) {
	ctx := context.Background()
	// the default tutor template covers Monday 09:00-12:00 WIB
	const monday = "2025-06-02"
	now := builder.BaseTime.Add(-24 * time.Hour)

	t.Run("renders the free hours of the requested day", func(t *testing.T) {
		tutor := builder.NewTutorBuilder().BuildSnapshot()
		q := newQueries(tutor, nil, now)

		view, err := q.TutorSlots(ctx, tutor.ID, monday)
		require.NoError(t, err)

		assert.Equal(t, tutor.ID, view.TutorID)
		assert.Equal(t, monday, view.Date)
		assert.Equal(t, "monday", view.DayOfWeek)
		require.Len(t, view.Slots, 3)
		assert.Equal(t, queries.SlotView{StartTime: "09:00", EndTime: "10:00"}, view.Slots[0])
		assert.Equal(t, queries.SlotView{StartTime: "10:00", EndTime: "11:00"}, view.Slots[1])
		assert.Equal(t, queries.SlotView{StartTime: "11:00", EndTime: "12:00"}, view.Slots[2])
	})

	t.Run("active booking removes its hour", func(t *testing.T) {
		tutor := builder.NewTutorBuilder().BuildSnapshot()
		day, err := wib.ParseDate(monday)
		require.NoError(t, err)

		busy := []availability.Busy{{Start: wib.At(day, 10*60), End: wib.At(day, 11*60)}}
		q := newQueries(tutor, busy, now)

		view, err := q.TutorSlots(ctx, tutor.ID, monday)
		require.NoError(t, err)
		require.Len(t, view.Slots, 2)
		assert.Equal(t, "09:00", view.Slots[0].StartTime)
		assert.Equal(t, "11:00", view.Slots[1].StartTime)
	})

	t.Run("day off yields an empty list", func(t *testing.T) {
		tutor := builder.NewTutorBuilder().BuildSnapshot()
		q := newQueries(tutor, nil, now)

		view, err := q.TutorSlots(ctx, tutor.ID, "2025-06-03")
		require.NoError(t, err)
		assert.Equal(t, "tuesday", view.DayOfWeek)
		assert.Empty(t, view.Slots)
	})

	t.Run("malformed date", func(t *testing.T) {
		tutor := builder.NewTutorBuilder().BuildSnapshot()
		q := newQueries(tutor, nil, now)

		_, err := q.TutorSlots(ctx, tutor.ID, "02-06-2025")
		assert.ErrorIs(t, err, queries.ErrInvalidDate)
	})

	t.Run("unknown tutor propagates as not found", func(t *testing.T) {
		q := newQueries(nil, nil, now)
		_, err := q.TutorSlots(ctx, uuid.New(), monday)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("hidden tutors are not queryable", func(t *testing.T) {
		for name, tutor := range map[string]*shared.TutorSnapshot{
			"unapproved": builder.NewTutorBuilder().AsUnapproved().BuildSnapshot(),
			"blocked":    builder.NewTutorBuilder().AsBlocked().BuildSnapshot(),
		} {
			t.Run(name, func(t *testing.T) {
				q := newQueries(tutor, nil, now)
				_, err := q.TutorSlots(ctx, tutor.ID, monday)
				assert.ErrorIs(t, err, shared.ErrTutorNotVisible)
			})
		}
	})

	t.Run("lead time trims the current day", func(t *testing.T) {
		tutor := builder.NewTutorBuilder().BuildSnapshot()
		// 08:00 on the requested Monday; 09:00 falls inside the two-hour window
		q := newQueries(tutor, nil, builder.BaseTime)

		view, err := q.TutorSlots(ctx, tutor.ID, monday)
		require.NoError(t, err)
		require.Len(t, view.Slots, 2)
		assert.Equal(t, "10:00", view.Slots[0].StartTime)
	})
}
