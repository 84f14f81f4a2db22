package repository

import (
	"context"
	"time"

	"tutorin/internal/domain/booking"
	"tutorin/internal/infra"
	"tutorin/internal/infra/db"
	"tutorin/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

// Advisory lock keyed on the tutor id so conflicting writers queue per tutor
// instead of per table. Released automatically at transaction end.
const lockTutorQuery = `SELECT pg_advisory_xact_lock(hashtext($1::text))`

func (r *BookingRepository) LockTutor(ctx context.Context, tx db.DBTX, tutorID uuid.UUID) error {
	if _, err := tx.Exec(ctx, lockTutorQuery, tutorID.String()); err != nil {
		return infra.WrapRepoErr("failed to acquire tutor lock", err)
	}
	return nil
}

const hasActiveOverlappingQuery = `
SELECT EXISTS (
    SELECT 1
    FROM bookings
    WHERE tutor_id = $1
      AND status IN ('pending_payment', 'confirmed')
      AND start_time < $3
      AND $2 < end_time
)`

func (r *BookingRepository) HasActiveOverlapping(ctx context.Context, tx db.DBTX, tutorID uuid.UUID, start, end time.Time) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, hasActiveOverlappingQuery,
		pgconv.UUIDToPgtype(tutorID),
		pgconv.TimeToPgtype(start),
		pgconv.TimeToPgtype(end),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check overlapping bookings", err)
	}
	return exists, nil
}

const createBookingQuery = `
INSERT INTO bookings (
    id, student_id, tutor_id,
    subject, subtopic, grade_level, teaching_method,
    start_time, end_time, duration_hours,
    hourly_rate, total_price, status, location
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingQuery,
		pgconv.UUIDToPgtype(b.ID()),
		pgconv.UUIDToPgtype(b.StudentID()),
		pgconv.UUIDToPgtype(b.TutorID()),
		b.Subject().Name(),
		pgconv.StringPtrToPgtype(b.Subject().Subtopic()),
		int32(b.GradeLevel().Int()),
		string(b.TeachingMethod()),
		pgconv.TimeToPgtype(b.TimeSlot().Start()),
		pgconv.TimeToPgtype(b.TimeSlot().End()),
		b.Duration().Hours(),
		b.HourlyRate().Amount(),
		b.TotalPrice().Amount(),
		string(b.Status()),
		pgconv.StringPtrToPgtype(b.Location()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

const updateBookingQuery = `
UPDATE bookings SET
    status = $2,
    meeting_url = $3,
    tutor_completed = $4,
    student_completed = $5,
    tutor_completed_at = $6,
    student_completed_at = $7,
    cancellation_reason = $8,
    cancelled_by = $9,
    updated_at = now()
WHERE id = $1`

// Update persists the mutable state-machine fields. Slot, parties and price
// are immutable after creation and never written back.
func (r *BookingRepository) Update(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	tag, err := tx.Exec(ctx, updateBookingQuery,
		pgconv.UUIDToPgtype(b.ID()),
		string(b.Status()),
		pgconv.StringPtrToPgtype(b.MeetingURL()),
		b.TutorCompleted(),
		b.StudentCompleted(),
		pgconv.TimePtrToPgtype(b.TutorCompletedAt()),
		pgconv.TimePtrToPgtype(b.StudentCompletedAt()),
		pgconv.StringPtrToPgtype(b.CancellationReason()),
		pgconv.UUIDPtrToPgtype(b.CancelledBy()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

const cancelWithExpiredPaymentsQuery = `
UPDATE bookings b SET
    status = 'cancelled',
    cancellation_reason = 'payment expired',
    updated_at = now()
WHERE b.status = 'pending_payment'
  AND EXISTS (
      SELECT 1 FROM payments p
      WHERE p.booking_id = b.id
        AND p.status = 'expired'
  )
  AND NOT EXISTS (
      SELECT 1 FROM payments p
      WHERE p.booking_id = b.id
        AND p.status <> 'expired'
  )`

// CancelWithExpiredPayments frees slots falsely held by bookings whose every
// payment attempt ran out. A booking with a live re-issued payment is left
// alone.
func (r *BookingRepository) CancelWithExpiredPayments(ctx context.Context, tx db.DBTX) (int64, error) {
	tag, err := tx.Exec(ctx, cancelWithExpiredPaymentsQuery)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to cancel bookings with expired payments", err)
	}
	return tag.RowsAffected(), nil
}
