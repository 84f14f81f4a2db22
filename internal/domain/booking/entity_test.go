//go:build unit

package booking_test

import (
	"testing"
	"time"

	"tutorin/internal/domain/booking"
	"tutorin/internal/domain/user"
	"tutorin/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithDurationHours(1.5).WithHourlyRate(100_000)
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusPendingPayment, actual.Status())
		assert.Equal(t, b.Start, actual.TimeSlot().Start())
		assert.Equal(t, b.Start.Add(90*time.Minute), actual.TimeSlot().End())
		assert.Equal(t, int64(100_000), actual.HourlyRate().Amount())
		assert.Equal(t, int64(150_000), actual.TotalPrice().Amount())
		assert.False(t, actual.TutorCompleted())
		assert.False(t, actual.StudentCompleted())
	})

	t.Run("grade level validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "minimum grade",
				mutate: func(b *builder.BookingBuilder) { b.WithGradeLevel(1) },
			},
			{
				name:   "maximum grade",
				mutate: func(b *builder.BookingBuilder) { b.WithGradeLevel(12) },
			},
			{
				name:   "below minimum",
				mutate: func(b *builder.BookingBuilder) { b.WithGradeLevel(0) },
				errIs:  booking.ErrInvalidGradeLevel,
			},
			{
				name:   "above maximum",
				mutate: func(b *builder.BookingBuilder) { b.WithGradeLevel(13) },
				errIs:  booking.ErrInvalidGradeLevel,
			},
		})
	})

	t.Run("duration validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "minimum duration",
				mutate: func(b *builder.BookingBuilder) { b.WithDurationHours(0.5) },
			},
			{
				name:   "maximum duration",
				mutate: func(b *builder.BookingBuilder) { b.WithDurationHours(8) },
			},
			{
				name:   "half-hour step",
				mutate: func(b *builder.BookingBuilder) { b.WithDurationHours(2.5) },
			},
			{
				name:   "below minimum",
				mutate: func(b *builder.BookingBuilder) { b.WithDurationHours(0.25) },
				errIs:  booking.ErrInvalidDuration,
			},
			{
				name:   "above maximum",
				mutate: func(b *builder.BookingBuilder) { b.WithDurationHours(8.5) },
				errIs:  booking.ErrInvalidDuration,
			},
			{
				name:   "not a half-hour step",
				mutate: func(b *builder.BookingBuilder) { b.WithDurationHours(1.75) },
				errIs:  booking.ErrInvalidDuration,
			},
		})
	})

	t.Run("lead time boundary", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "one minute short of lead time",
				mutate: func(b *builder.BookingBuilder) { b.WithStart(builder.BaseTime.Add(2*time.Hour - time.Minute)) },
				errIs:  booking.ErrInsufficientLead,
			},
			{
				name:   "exactly at lead time",
				mutate: func(b *builder.BookingBuilder) { b.WithStart(builder.BaseTime.Add(2 * time.Hour)) },
			},
			{
				name:   "one minute past lead time",
				mutate: func(b *builder.BookingBuilder) { b.WithStart(builder.BaseTime.Add(2*time.Hour + time.Minute)) },
			},
			{
				name:   "start in the past",
				mutate: func(b *builder.BookingBuilder) { b.WithStart(builder.BaseTime.Add(-time.Hour)) },
				errIs:  booking.ErrInsufficientLead,
			},
		})
	})

	t.Run("teaching method validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "online",
				mutate: func(b *builder.BookingBuilder) { b.WithTeachingMethod("online") },
			},
			{
				name:   "offline",
				mutate: func(b *builder.BookingBuilder) { b.WithTeachingMethod("offline") },
			},
			{
				name:   "unknown method",
				mutate: func(b *builder.BookingBuilder) { b.WithTeachingMethod("hybrid") },
				errIs:  booking.ErrInvalidTeachingMode,
			},
		})
	})

	t.Run("price is snapshotted per half hour", func(t *testing.T) {
		for _, tc := range []struct {
			hours float64
			rate  int64
			want  int64
		}{
			{0.5, 100_000, 50_000},
			{1, 100_000, 100_000},
			{2.5, 80_000, 200_000},
			{8, 75_000, 600_000},
		} {
			actual, err := builder.NewBookingBuilder().
				WithDurationHours(tc.hours).
				WithHourlyRate(tc.rate).
				BuildDomain()
			require.NoError(t, err)
			assert.Equal(t, tc.want, actual.TotalPrice().Amount())
		}
	})
}

func TestBookingConfirm(t *testing.T) {
	meetingURL := "https://meet.example.com/session"

	t.Run("tutor confirms pending booking", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b := mustDomain(t, bb)

		require.NoError(t, b.Confirm(bb.TutorID, &meetingURL))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		require.NotNil(t, b.MeetingURL())
		assert.Equal(t, meetingURL, *b.MeetingURL())
	})

	t.Run("wrong tutor is rejected", func(t *testing.T) {
		b := mustDomain(t, builder.NewBookingBuilder())
		assert.ErrorIs(t, b.Confirm(uuid.New(), nil), booking.ErrNotBookingTutor)
		assert.Equal(t, booking.StatusPendingPayment, b.Status())
	})

	t.Run("confirming twice fails", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b := mustDomain(t, bb)
		require.NoError(t, b.Confirm(bb.TutorID, nil))
		assert.ErrorIs(t, b.Confirm(bb.TutorID, nil), booking.ErrNotPendingPayment)
	})

	t.Run("payment cascade confirms without caller check", func(t *testing.T) {
		b := mustDomain(t, builder.NewBookingBuilder())
		require.NoError(t, b.ConfirmByPayment())
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.ErrorIs(t, b.ConfirmByPayment(), booking.ErrNotPendingPayment)
	})
}

func TestBookingDualCompletion(t *testing.T) {
	now := builder.BaseTime

	t.Run("tutor then student completes the booking", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsEnded()
		b := mustReconstruct(t, bb)

		require.NoError(t, b.CompleteByTutor(bb.TutorID, now))
		assert.True(t, b.TutorCompleted())
		assert.Equal(t, booking.StatusConfirmed, b.Status(), "one-sided completion must not settle the booking")

		require.NoError(t, b.CompleteByStudent(bb.StudentID, now))
		assert.True(t, b.StudentCompleted())
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("student cannot complete before tutor", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsEnded()
		b := mustReconstruct(t, bb)
		assert.ErrorIs(t, b.CompleteByStudent(bb.StudentID, now), booking.ErrTutorMustGoFirst)
	})

	t.Run("second tutor completion fails", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsEnded()
		b := mustReconstruct(t, bb)
		require.NoError(t, b.CompleteByTutor(bb.TutorID, now))
		assert.ErrorIs(t, b.CompleteByTutor(bb.TutorID, now), booking.ErrAlreadyCompleted)
	})

	t.Run("session must have ended", func(t *testing.T) {
		bb := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed)
		b := mustReconstruct(t, bb)
		assert.ErrorIs(t, b.CompleteByTutor(bb.TutorID, now), booking.ErrSessionNotEnded)
	})

	t.Run("completion requires confirmed status", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsEnded().WithStatus(booking.StatusPendingPayment)
		b := mustReconstruct(t, bb)
		assert.ErrorIs(t, b.CompleteByTutor(bb.TutorID, now), booking.ErrNotConfirmed)
	})

	t.Run("only the owning party may complete", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsEnded()
		b := mustReconstruct(t, bb)
		assert.ErrorIs(t, b.CompleteByTutor(uuid.New(), now), booking.ErrNotBookingTutor)
		assert.ErrorIs(t, b.CompleteByStudent(uuid.New(), now), booking.ErrNotBookingStudent)
	})
}

func TestBookingCancel(t *testing.T) {
	t.Run("student cancels with reason", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b := mustReconstruct(t, bb)

		require.NoError(t, b.Cancel(bb.StudentID, user.RoleStudent, "schedule clash"))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		require.NotNil(t, b.CancellationReason())
		assert.Equal(t, "schedule clash", *b.CancellationReason())
		require.NotNil(t, b.CancelledBy())
		assert.Equal(t, bb.StudentID, *b.CancelledBy())
	})

	t.Run("tutor and admin may cancel", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b := mustReconstruct(t, bb)
		require.NoError(t, b.Cancel(bb.TutorID, user.RoleTutor, "unavailable"))

		adminID := uuid.New()
		b2 := mustReconstruct(t, builder.NewBookingBuilder())
		require.NoError(t, b2.Cancel(adminID, user.RoleAdmin, "policy violation"))
		assert.Equal(t, adminID, *b2.CancelledBy())
	})

	t.Run("a stranger may not cancel", func(t *testing.T) {
		b := mustReconstruct(t, builder.NewBookingBuilder())
		assert.ErrorIs(t, b.Cancel(uuid.New(), user.RoleStudent, "nope"), booking.ErrNotBookingParty)
	})

	t.Run("reason is required", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b := mustReconstruct(t, bb)
		assert.ErrorIs(t, b.Cancel(bb.StudentID, user.RoleStudent, ""), booking.ErrEmptyCancelReason)
	})

	t.Run("terminal states are final", func(t *testing.T) {
		for _, status := range []booking.Status{booking.StatusCompleted, booking.StatusCancelled} {
			bb := builder.NewBookingBuilder().WithStatus(status)
			b := mustReconstruct(t, bb)
			assert.ErrorIs(t, b.Cancel(bb.StudentID, user.RoleStudent, "late"), booking.ErrAlreadyTerminal)
			assert.ErrorIs(t, b.CancelByPayment(bb.TutorID, "rejected"), booking.ErrAlreadyTerminal)
			assert.Equal(t, status, b.Status())
		}
	})
}

func TestTimeSlotOverlaps(t *testing.T) {
	at := func(h int) time.Time { return builder.BaseTime.Add(time.Duration(h) * time.Hour) }
	slot := func(from, to int) booking.TimeSlot {
		s, err := booking.NewTimeSlot(at(from), at(to))
		require.NoError(t, err)
		return s
	}

	cases := []struct {
		name string
		a, b booking.TimeSlot
		want bool
	}{
		{"identical", slot(1, 2), slot(1, 2), true},
		{"contained", slot(1, 4), slot(2, 3), true},
		{"partial left", slot(1, 3), slot(2, 4), true},
		{"partial right", slot(2, 4), slot(1, 3), true},
		{"touching edges do not overlap", slot(1, 2), slot(2, 3), false},
		{"disjoint", slot(1, 2), slot(3, 4), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}

func mustDomain(t *testing.T, bb *builder.BookingBuilder) *booking.Booking {
	t.Helper()
	b, err := bb.BuildDomain()
	require.NoError(t, err)
	return b
}

func mustReconstruct(t *testing.T, bb *builder.BookingBuilder) *booking.Booking {
	t.Helper()
	b, err := bb.BuildSnapshot().ToDomain()
	require.NoError(t, err)
	return b
}
