package shared

import (
	"context"
	"time"

	"tutorin/internal/domain/booking"
	"tutorin/internal/domain/payment"
	"tutorin/internal/domain/review"
	"tutorin/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Payments() PaymentRepository
	Reviews() ReviewRepository
	RatingStats() RatingStatsRepository
	Tutors() TutorRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type BookingRepository interface {
	// LockTutor serializes conflicting writers on a per-tutor advisory lock
	// held until the surrounding transaction ends.
	LockTutor(ctx context.Context, tx db.DBTX, tutorID uuid.UUID) error
	// HasActiveOverlapping runs the authoritative half-open interval conflict
	// check against the tutor's pending/confirmed bookings.
	HasActiveOverlapping(ctx context.Context, tx db.DBTX, tutorID uuid.UUID, start, end time.Time) (bool, error)
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	// CancelWithExpiredPayments releases slots held by pending-payment
	// bookings whose latest payment expired.
	CancelWithExpiredPayments(ctx context.Context, tx db.DBTX) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *payment.Payment) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, p *payment.Payment) error
	// ExpireOverdue flips every pending payment past its deadline to expired
	// and returns how many rows changed.
	ExpireOverdue(ctx context.Context, tx db.DBTX, now time.Time) (int64, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, rev *review.Review) error
	Delete(ctx context.Context, tx db.DBTX, reviewID uuid.UUID) error
}

type RatingStatsRepository interface {
	RecalcTutorRatingStats(ctx context.Context, tx db.DBTX, tutorID uuid.UUID) error
}

// TutorRepository is the command side of the tutor directory collaborator.
type TutorRepository interface {
	IncrementSessionCount(ctx context.Context, tx db.DBTX, tutorID uuid.UUID) error
}

// NotificationRepository enqueues fire-and-forget outbox jobs for the
// notification sink.
type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type CommandReads interface {
	TutorByID(ctx context.Context, id uuid.UUID) (*TutorSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	PaymentByID(ctx context.Context, id uuid.UUID) (*PaymentSnapshot, error)
	PaymentByBookingID(ctx context.Context, bookingID uuid.UUID) (*PaymentSnapshot, error)
	ReviewByID(ctx context.Context, id uuid.UUID) (*ReviewSnapshot, error)
}
