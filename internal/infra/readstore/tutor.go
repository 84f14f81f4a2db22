package readstore

import (
	"context"

	"tutorin/internal/domain/availability"
	"tutorin/internal/infra"
	"tutorin/internal/infra/db"
	"tutorin/internal/pkg/pgconv"
	"tutorin/internal/usecase/shared"

	"github.com/google/uuid"
)

type TutorReadStore struct {
	db db.DBTX
}

func NewTutorReadStore(dbtx db.DBTX) *TutorReadStore {
	return &TutorReadStore{db: dbtx}
}

const findTutorProfileQuery = `
SELECT user_id, approved, blocked, hourly_rate, total_sessions
FROM tutor_profiles
WHERE user_id = $1`

const findAvailabilityRangesQuery = `
SELECT day_of_week, start_minute, end_minute
FROM availability_ranges
WHERE tutor_id = $1
ORDER BY day_of_week, start_minute`

// FindSnapshotByID loads the tutor profile together with its weekly
// availability template.
func (r *TutorReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.TutorSnapshot, error) {
	var s shared.TutorSnapshot
	err := r.db.QueryRow(ctx, findTutorProfileQuery, pgconv.UUIDToPgtype(id)).Scan(
		&s.ID, &s.Approved, &s.Blocked, &s.HourlyRate, &s.TotalSessions,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("tutor not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find tutor profile", err)
	}

	rows, err := r.db.Query(ctx, findAvailabilityRangesQuery, pgconv.UUIDToPgtype(id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find availability ranges", err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday, startMinute, endMinute int32
		if err := rows.Scan(&weekday, &startMinute, &endMinute); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability range", err)
		}
		s.Template = append(s.Template, availability.Range{
			Weekday:     int(weekday),
			StartMinute: int(startMinute),
			EndMinute:   int(endMinute),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read availability ranges", err)
	}
	return &s, nil
}
