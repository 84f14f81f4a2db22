package readstore

import (
	"context"
	"time"

	"tutorin/internal/domain/availability"
	"tutorin/internal/infra"
	"tutorin/internal/infra/db"
	"tutorin/internal/pkg/pgconv"
	"tutorin/internal/usecase/queries"
	"tutorin/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const findBookingByIDQuery = `
SELECT b.id, b.student_id, su.name, b.tutor_id, tu.name,
       b.subject, b.subtopic, b.grade_level, b.teaching_method,
       b.start_time, b.end_time, b.duration_hours,
       b.hourly_rate, b.total_price, b.status,
       b.location, b.meeting_url,
       b.tutor_completed, b.student_completed,
       b.tutor_completed_at, b.student_completed_at,
       b.cancellation_reason, b.cancelled_by,
       b.created_at, b.updated_at
FROM bookings b
JOIN users su ON su.id = b.student_id
JOIN users tu ON tu.id = b.tutor_id
WHERE b.id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		v                                    queries.BookingView
		subtopic, location, meetingURL       pgtype.Text
		cancellationReason                   pgtype.Text
		cancelledBy                          pgtype.UUID
		tutorCompletedAt, studentCompletedAt pgtype.Timestamptz
		startTime, endTime                   pgtype.Timestamptz
		createdAt, updatedAt                 pgtype.Timestamptz
		gradeLevel                           int32
	)

	err := r.db.QueryRow(ctx, findBookingByIDQuery, pgconv.UUIDToPgtype(id)).Scan(
		&v.ID, &v.StudentID, &v.StudentName, &v.TutorID, &v.TutorName,
		&v.Subject, &subtopic, &gradeLevel, &v.TeachingMethod,
		&startTime, &endTime, &v.DurationHours,
		&v.HourlyRate, &v.TotalPrice, &v.Status,
		&location, &meetingURL,
		&v.TutorCompleted, &v.StudentCompleted,
		&tutorCompletedAt, &studentCompletedAt,
		&cancellationReason, &cancelledBy,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	v.Subtopic = pgconv.StringPtrFromPgtype(subtopic)
	v.GradeLevel = int(gradeLevel)
	v.StartTime = pgconv.TimeFromPgtype(startTime)
	v.EndTime = pgconv.TimeFromPgtype(endTime)
	v.Location = pgconv.StringPtrFromPgtype(location)
	v.MeetingURL = pgconv.StringPtrFromPgtype(meetingURL)
	v.TutorCompletedAt = pgconv.TimePtrFromPgtype(tutorCompletedAt)
	v.StudentCompletedAt = pgconv.TimePtrFromPgtype(studentCompletedAt)
	v.CancellationReason = pgconv.StringPtrFromPgtype(cancellationReason)
	v.CancelledBy = pgconv.UUIDPtrFromPgtype(cancelledBy)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}

// Nullable filter params keep the statement static; NULL disables a clause.
const listBookingsQuery = `
SELECT b.id, su.name, tu.name,
       b.subject, b.grade_level, b.teaching_method,
       b.start_time, b.end_time, b.total_price, b.status, b.created_at
FROM bookings b
JOIN users su ON su.id = b.student_id
JOIN users tu ON tu.id = b.tutor_id
WHERE (b.student_id = $1 AND $2 = 'student' OR b.tutor_id = $1 AND $2 = 'tutor')
  AND ($3::text IS NULL OR b.status = $3)
  AND ($4::timestamptz IS NULL OR b.start_time >= $4)
  AND ($5::timestamptz IS NULL OR b.start_time < $5)
ORDER BY b.start_time DESC
LIMIT $6 OFFSET $7`

func (r *BookingReadStore) FindByStudentID(ctx context.Context, studentID uuid.UUID, filter queries.BookingFilter) ([]*queries.BookingListItem, error) {
	return r.list(ctx, studentID, "student", filter)
}

func (r *BookingReadStore) FindByTutorID(ctx context.Context, tutorID uuid.UUID, filter queries.BookingFilter) ([]*queries.BookingListItem, error) {
	return r.list(ctx, tutorID, "tutor", filter)
}

func (r *BookingReadStore) list(ctx context.Context, actorID uuid.UUID, side string, filter queries.BookingFilter) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, listBookingsQuery,
		pgconv.UUIDToPgtype(actorID),
		side,
		pgconv.StringPtrToPgtype(filter.Status),
		pgconv.TimePtrToPgtype(filter.DateFrom),
		pgconv.TimePtrToPgtype(filter.DateTo),
		filter.Limit,
		filter.Offset,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		var (
			item               queries.BookingListItem
			gradeLevel         int32
			startTime, endTime pgtype.Timestamptz
			createdAt          pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.StudentName, &item.TutorName,
			&item.Subject, &gradeLevel, &item.TeachingMethod,
			&startTime, &endTime, &item.TotalPrice, &item.Status, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.GradeLevel = int(gradeLevel)
		item.StartTime = pgconv.TimeFromPgtype(startTime)
		item.EndTime = pgconv.TimeFromPgtype(endTime)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return result, nil
}

const findActiveIntervalsQuery = `
SELECT start_time, end_time
FROM bookings
WHERE tutor_id = $1
  AND status IN ('pending_payment', 'confirmed')
  AND start_time < $3
  AND $2 < end_time
ORDER BY start_time`

// FindActiveIntervals returns the occupied intervals of a tutor within
// [from, to). Cancelled and completed bookings never block a slot.
func (r *BookingReadStore) FindActiveIntervals(ctx context.Context, tutorID uuid.UUID, from, to time.Time) ([]availability.Busy, error) {
	rows, err := r.db.Query(ctx, findActiveIntervalsQuery,
		pgconv.UUIDToPgtype(tutorID),
		pgconv.TimeToPgtype(from),
		pgconv.TimeToPgtype(to),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active intervals", err)
	}
	defer rows.Close()

	var busy []availability.Busy
	for rows.Next() {
		var start, end pgtype.Timestamptz
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan interval row", err)
		}
		busy = append(busy, availability.Busy{
			Start: pgconv.TimeFromPgtype(start),
			End:   pgconv.TimeFromPgtype(end),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read interval rows", err)
	}
	return busy, nil
}

const findBookingSnapshotQuery = `
SELECT id, student_id, tutor_id,
       subject, subtopic, grade_level, teaching_method,
       start_time, end_time, duration_hours,
       hourly_rate, total_price, status,
       location, meeting_url,
       tutor_completed, student_completed,
       tutor_completed_at, student_completed_at,
       cancellation_reason, cancelled_by,
       created_at, updated_at
FROM bookings
WHERE id = $1`

// FindSnapshotByID feeds the command side; no joins, write fields only.
func (r *BookingReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var (
		s                                    shared.BookingSnapshot
		subtopic, location, meetingURL       pgtype.Text
		cancellationReason                   pgtype.Text
		cancelledBy                          pgtype.UUID
		tutorCompletedAt, studentCompletedAt pgtype.Timestamptz
		startTime, endTime                   pgtype.Timestamptz
		createdAt, updatedAt                 pgtype.Timestamptz
		gradeLevel                           int32
	)

	err := r.db.QueryRow(ctx, findBookingSnapshotQuery, pgconv.UUIDToPgtype(id)).Scan(
		&s.ID, &s.StudentID, &s.TutorID,
		&s.Subject, &subtopic, &gradeLevel, &s.TeachingMethod,
		&startTime, &endTime, &s.DurationHours,
		&s.HourlyRate, &s.TotalPrice, &s.Status,
		&location, &meetingURL,
		&s.TutorCompleted, &s.StudentCompleted,
		&tutorCompletedAt, &studentCompletedAt,
		&cancellationReason, &cancelledBy,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking snapshot", err)
	}

	s.Subtopic = pgconv.StringPtrFromPgtype(subtopic)
	s.GradeLevel = int(gradeLevel)
	s.Start = pgconv.TimeFromPgtype(startTime)
	s.End = pgconv.TimeFromPgtype(endTime)
	s.Location = pgconv.StringPtrFromPgtype(location)
	s.MeetingURL = pgconv.StringPtrFromPgtype(meetingURL)
	s.TutorCompletedAt = pgconv.TimePtrFromPgtype(tutorCompletedAt)
	s.StudentCompletedAt = pgconv.TimePtrFromPgtype(studentCompletedAt)
	s.CancellationReason = pgconv.StringPtrFromPgtype(cancellationReason)
	s.CancelledBy = pgconv.UUIDPtrFromPgtype(cancelledBy)
	s.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	s.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &s, nil
}
