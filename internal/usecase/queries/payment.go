package queries

import (
	"context"

	"tutorin/internal/domain/payment"
	"tutorin/internal/domain/user"

	"github.com/google/uuid"
)

type PaymentQueries interface {
	GetByBookingID(ctx context.Context, actorID uuid.UUID, role user.Role, bookingID uuid.UUID) (*PaymentView, error)
	// PendingVerifications lists proofs awaiting the tutor's review, oldest
	// upload first.
	PendingVerifications(ctx context.Context, tutorID uuid.UUID) ([]*PendingVerificationItem, error)
	Methods(ctx context.Context) []PaymentMethodView
}

type PaymentViewRepo interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*PaymentView, error)
	FindPendingVerificationsByTutorID(ctx context.Context, tutorID uuid.UUID) ([]*PendingVerificationItem, error)
}

// BookingPartyResolver answers who sits on each side of a booking, for
// access checks that the payment row alone cannot answer.
type BookingPartyResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
}

type paymentQueriesImpl struct {
	repo     PaymentViewRepo
	bookings BookingPartyResolver
}

func NewPaymentQueries(repo PaymentViewRepo, bookings BookingPartyResolver) PaymentQueries {
	return &paymentQueriesImpl{repo: repo, bookings: bookings}
}

func (q *paymentQueriesImpl) GetByBookingID(ctx context.Context, actorID uuid.UUID, role user.Role, bookingID uuid.UUID) (*PaymentView, error) {
	b, err := q.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if role != user.RoleAdmin && actorID != b.StudentID && actorID != b.TutorID {
		return nil, ErrNotParty
	}
	return q.repo.FindByBookingID(ctx, bookingID)
}

func (q *paymentQueriesImpl) PendingVerifications(ctx context.Context, tutorID uuid.UUID) ([]*PendingVerificationItem, error) {
	return q.repo.FindPendingVerificationsByTutorID(ctx, tutorID)
}

func (q *paymentQueriesImpl) Methods(_ context.Context) []PaymentMethodView {
	catalog := payment.Methods()
	out := make([]PaymentMethodView, len(catalog))
	for i, m := range catalog {
		out[i] = PaymentMethodView{
			Method:      m.ID.String(),
			Name:        m.Name,
			Type:        m.Type,
			Icon:        m.Icon,
			Description: m.Description,
		}
	}
	return out
}
