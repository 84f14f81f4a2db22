package queries

import (
	"context"

	"tutorin/internal/domain/user"

	"github.com/google/uuid"
)

const defaultListLimit = 20

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, role user.Role, id uuid.UUID) (*BookingView, error)
	// ListForActor scopes the list to the caller's side of the marketplace:
	// students see bookings they placed, tutors see bookings placed with them.
	ListForActor(ctx context.Context, actorID uuid.UUID, role user.Role, filter BookingFilter) ([]*BookingListItem, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByStudentID(ctx context.Context, studentID uuid.UUID, filter BookingFilter) ([]*BookingListItem, error)
	FindByTutorID(ctx context.Context, tutorID uuid.UUID, filter BookingFilter) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, role user.Role, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != user.RoleAdmin && actorID != view.StudentID && actorID != view.TutorID {
		return nil, ErrNotParty
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListForActor(ctx context.Context, actorID uuid.UUID, role user.Role, filter BookingFilter) ([]*BookingListItem, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	switch role {
	case user.RoleTutor:
		return q.repo.FindByTutorID(ctx, actorID, filter)
	default:
		return q.repo.FindByStudentID(ctx, actorID, filter)
	}
}
