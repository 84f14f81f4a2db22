//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"tutorin/internal/domain/booking"
	"tutorin/internal/domain/payment"
	"tutorin/internal/domain/review"
	"tutorin/internal/infra"
	"tutorin/internal/infra/db"
	"tutorin/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the database. Per-tutor mutexes play
// the advisory-lock role: LockTutor blocks until the lock is free and the fake
// unit of work releases it when its "transaction" returns, so concurrent
// writers against the same tutor serialize exactly as they do in production.
type fakeStore struct {
	mu sync.Mutex

	tutors   map[uuid.UUID]shared.TutorSnapshot
	bookings map[uuid.UUID]shared.BookingSnapshot
	payments map[uuid.UUID]shared.PaymentSnapshot
	reviews  map[uuid.UUID]shared.ReviewSnapshot

	tutorLocks map[uuid.UUID]*sync.Mutex

	sessionIncrements map[uuid.UUID]int
	recalcCalls       map[uuid.UUID]int
	jobs              []enqueuedJob
	sweepCancels      int64

	// error injection for repository failure paths
	bookingCreateErr error
	paymentCreateErr error
}

type enqueuedJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tutors:            make(map[uuid.UUID]shared.TutorSnapshot),
		bookings:          make(map[uuid.UUID]shared.BookingSnapshot),
		payments:          make(map[uuid.UUID]shared.PaymentSnapshot),
		reviews:           make(map[uuid.UUID]shared.ReviewSnapshot),
		tutorLocks:        make(map[uuid.UUID]*sync.Mutex),
		sessionIncrements: make(map[uuid.UUID]int),
		recalcCalls:       make(map[uuid.UUID]int),
	}
}

func (s *fakeStore) putTutor(t *shared.TutorSnapshot)     { s.tutors[t.ID] = *t }
func (s *fakeStore) putBooking(b *shared.BookingSnapshot) { s.bookings[b.ID] = *b }
func (s *fakeStore) putPayment(p *shared.PaymentSnapshot) { s.payments[p.ID] = *p }
func (s *fakeStore) putReview(r *shared.ReviewSnapshot)   { s.reviews[r.ID] = *r }

func (s *fakeStore) tutorLock(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.tutorLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.tutorLocks[id] = l
	}
	return l
}

func (s *fakeStore) booking(id uuid.UUID) shared.BookingSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookings[id]
}

func (s *fakeStore) payment(id uuid.UUID) shared.PaymentSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payments[id]
}

func (s *fakeStore) jobTopics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	topics := make([]string, 0, len(s.jobs))
	for _, j := range s.jobs {
		topics = append(topics, j.Topic)
	}
	return topics
}

// fakeUOW satisfies shared.UnitOfWork without a database. There is no
// rollback: writes land immediately, which the tests account for.
type fakeUOW struct {
	store *fakeStore
}

func newFakeUOW(store *fakeStore) *fakeUOW {
	return &fakeUOW{store: store}
}

func (u *fakeUOW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := &fakeTx{store: u.store}
	err := fn(ctx, tx)
	tx.releaseLocks()
	return err
}

func (u *fakeUOW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUOW) CommandReads() shared.CommandReads {
	return &fakeReads{store: u.store}
}

type fakeTx struct {
	store *fakeStore
	held  []*sync.Mutex
}

func (t *fakeTx) releaseLocks() {
	for _, l := range t.held {
		l.Unlock()
	}
	t.held = nil
}

func (t *fakeTx) Bookings() shared.BookingRepository          { return &fakeBookingRepo{tx: t} }
func (t *fakeTx) Payments() shared.PaymentRepository          { return &fakePaymentRepo{tx: t} }
func (t *fakeTx) Reviews() shared.ReviewRepository            { return &fakeReviewRepo{tx: t} }
func (t *fakeTx) RatingStats() shared.RatingStatsRepository   { return &fakeRatingStatsRepo{tx: t} }
func (t *fakeTx) Tutors() shared.TutorRepository              { return &fakeTutorRepo{tx: t} }
func (t *fakeTx) Notifications() shared.NotificationRepository { return &fakeNotificationRepo{tx: t} }
func (t *fakeTx) Reads() shared.CommandReads                  { return &fakeReads{store: t.store} }
func (t *fakeTx) DB() db.DBTX                                 { return nil }

type fakeReads struct {
	store *fakeStore
}

func (r *fakeReads) TutorByID(_ context.Context, id uuid.UUID) (*shared.TutorSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tutors[id]
	if !ok {
		return nil, infra.WrapRepoErr("tutor not found", nil, infra.KindNotFound)
	}
	return &t, nil
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return &b, nil
}

func (r *fakeReads) PaymentByID(_ context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.payments[id]
	if !ok {
		return nil, infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return &p, nil
}

func (r *fakeReads) PaymentByBookingID(_ context.Context, bookingID uuid.UUID) (*shared.PaymentSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var latest *shared.PaymentSnapshot
	for id := range r.store.payments {
		p := r.store.payments[id]
		if p.BookingID != bookingID {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = &p
		}
	}
	if latest == nil {
		return nil, infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return latest, nil
}

func (r *fakeReads) ReviewByID(_ context.Context, id uuid.UUID) (*shared.ReviewSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rev, ok := r.store.reviews[id]
	if !ok {
		return nil, infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return &rev, nil
}

type fakeBookingRepo struct {
	tx *fakeTx
}

func (f *fakeBookingRepo) LockTutor(_ context.Context, _ db.DBTX, tutorID uuid.UUID) error {
	l := f.tx.store.tutorLock(tutorID)
	l.Lock()
	f.tx.held = append(f.tx.held, l)
	return nil
}

func (f *fakeBookingRepo) HasActiveOverlapping(_ context.Context, _ db.DBTX, tutorID uuid.UUID, start, end time.Time) (bool, error) {
	s := f.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.TutorID != tutorID || !booking.Status(b.Status).IsActive() {
			continue
		}
		if b.Start.Before(end) && start.Before(b.End) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	s := f.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bookingCreateErr != nil {
		return uuid.Nil, s.bookingCreateErr
	}
	snap := snapshotBooking(b)
	s.bookings[snap.ID] = snap
	return snap.ID, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	s := f.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID()] = snapshotBooking(b)
	return nil
}

func (f *fakeBookingRepo) CancelWithExpiredPayments(_ context.Context, _ db.DBTX) (int64, error) {
	s := f.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, b := range s.bookings {
		if b.Status != booking.StatusPendingPayment.String() {
			continue
		}
		for _, p := range s.payments {
			if p.BookingID == id && p.Status == payment.StatusExpired.String() {
				b.Status = booking.StatusCancelled.String()
				s.bookings[id] = b
				n++
				break
			}
		}
	}
	s.sweepCancels += n
	return n, nil
}

type fakePaymentRepo struct {
	tx *fakeTx
}

func (f *fakePaymentRepo) Create(_ context.Context, _ db.DBTX, p *payment.Payment) (uuid.UUID, error) {
	s := f.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paymentCreateErr != nil {
		return uuid.Nil, s.paymentCreateErr
	}
	// one live payment per booking, as the partial unique index enforces
	for _, existing := range s.payments {
		if existing.BookingID == p.BookingID() && isLivePaymentStatus(existing.Status) {
			return uuid.Nil, infra.WrapRepoErr("duplicate live payment", nil, infra.KindDuplicateKey)
		}
	}
	snap := snapshotPayment(p)
	s.payments[snap.ID] = snap
	return snap.ID, nil
}

func (f *fakePaymentRepo) Update(_ context.Context, _ db.DBTX, p *payment.Payment) error {
	s := f.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[p.ID()] = snapshotPayment(p)
	return nil
}

func (f *fakePaymentRepo) ExpireOverdue(_ context.Context, _ db.DBTX, now time.Time) (int64, error) {
	s := f.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, p := range s.payments {
		if p.Status == payment.StatusPending.String() && now.After(p.ExpiresAt) {
			p.Status = payment.StatusExpired.String()
			s.payments[id] = p
			n++
		}
	}
	return n, nil
}

func isLivePaymentStatus(status string) bool {
	switch payment.Status(status) {
	case payment.StatusPending, payment.StatusPendingVerification, payment.StatusVerified:
		return true
	}
	return false
}

type fakeReviewRepo struct {
	tx *fakeTx
}

func (f *fakeReviewRepo) Create(_ context.Context, _ db.DBTX, rev *review.Review) (uuid.UUID, error) {
	s := f.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.reviews {
		if existing.BookingID == rev.BookingID() {
			return uuid.Nil, infra.WrapRepoErr("duplicate review", nil, infra.KindDuplicateKey)
		}
	}
	snap := snapshotReview(rev)
	s.reviews[snap.ID] = snap
	return snap.ID, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, _ db.DBTX, rev *review.Review) error {
	s := f.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[rev.ID()] = snapshotReview(rev)
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, _ db.DBTX, reviewID uuid.UUID) error {
	s := f.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[reviewID]; !ok {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	delete(s.reviews, reviewID)
	return nil
}

type fakeRatingStatsRepo struct {
	tx *fakeTx
}

func (f *fakeRatingStatsRepo) RecalcTutorRatingStats(_ context.Context, _ db.DBTX, tutorID uuid.UUID) error {
	s := f.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recalcCalls[tutorID]++
	return nil
}

type fakeTutorRepo struct {
	tx *fakeTx
}

func (f *fakeTutorRepo) IncrementSessionCount(_ context.Context, _ db.DBTX, tutorID uuid.UUID) error {
	s := f.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionIncrements[tutorID]++
	return nil
}

type fakeNotificationRepo struct {
	tx *fakeTx
}

func (f *fakeNotificationRepo) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	s := f.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, enqueuedJob{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

func snapshotBooking(b *booking.Booking) shared.BookingSnapshot {
	return shared.BookingSnapshot{
		ID:                 b.ID(),
		StudentID:          b.StudentID(),
		TutorID:            b.TutorID(),
		Subject:            b.Subject().Name(),
		Subtopic:           b.Subject().Subtopic(),
		GradeLevel:         b.GradeLevel().Int(),
		TeachingMethod:     b.TeachingMethod().String(),
		Start:              b.TimeSlot().Start(),
		End:                b.TimeSlot().End(),
		DurationHours:      b.Duration().Hours(),
		HourlyRate:         b.HourlyRate().Amount(),
		TotalPrice:         b.TotalPrice().Amount(),
		Status:             b.Status().String(),
		Location:           b.Location(),
		MeetingURL:         b.MeetingURL(),
		TutorCompleted:     b.TutorCompleted(),
		StudentCompleted:   b.StudentCompleted(),
		TutorCompletedAt:   b.TutorCompletedAt(),
		StudentCompletedAt: b.StudentCompletedAt(),
		CancellationReason: b.CancellationReason(),
		CancelledBy:        b.CancelledBy(),
		CreatedAt:          b.CreatedAt(),
		UpdatedAt:          b.UpdatedAt(),
	}
}

func snapshotPayment(p *payment.Payment) shared.PaymentSnapshot {
	return shared.PaymentSnapshot{
		ID:              p.ID(),
		BookingID:       p.BookingID(),
		Amount:          p.Amount(),
		Method:          p.Method().String(),
		TransactionID:   p.TransactionID(),
		Status:          p.Status().String(),
		Instructions:    p.Instructions(),
		ProofURL:        p.ProofURL(),
		PaidAt:          p.PaidAt(),
		ExpiresAt:       p.ExpiresAt(),
		VerifiedBy:      p.VerifiedBy(),
		VerifiedAt:      p.VerifiedAt(),
		RejectionReason: p.RejectionReason(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
}

func snapshotReview(rev *review.Review) shared.ReviewSnapshot {
	return shared.ReviewSnapshot{
		ID:          rev.ID(),
		StudentID:   rev.StudentID(),
		TutorID:     rev.TutorID(),
		BookingID:   rev.BookingID(),
		Rating:      rev.Rating().Value(),
		Comment:     rev.Comment().String(),
		Response:    rev.Response(),
		RespondedAt: rev.RespondedAt(),
		CreatedAt:   rev.CreatedAt(),
		UpdatedAt:   rev.UpdatedAt(),
	}
}
