package commands

import (
	"context"
	"time"

	"tutorin/internal/domain/booking"
	"tutorin/internal/domain/payment"
	"tutorin/internal/infra"
	"tutorin/internal/pkg/clock"
	"tutorin/internal/pkg/errs"
	"tutorin/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound    = errs.New("payment not found")
	ErrNotPaymentOwner    = errs.New("caller does not own this payment")
	ErrNotPaymentReviewer = errs.New("caller is not the tutor on this payment")
	ErrBookingNotPayable  = errs.New("booking is not awaiting payment")
	ErrPaymentAlreadyLive = errs.New("booking already has an active payment")
	ErrPaymentExpired     = errs.New("payment has expired")
)

const rejectionCancelPrefix = "payment rejected"

type InitiatePaymentRequest struct {
	BookingID uuid.UUID
	Method    string
}

type InitiatePaymentResult struct {
	PaymentID     uuid.UUID
	TransactionID string
	Instructions  payment.Instructions
	ExpiresAt     time.Time
}

type PaymentCommands interface {
	Initiate(ctx context.Context, req InitiatePaymentRequest, studentID uuid.UUID) (*InitiatePaymentResult, error)
	UploadProof(ctx context.Context, paymentID, studentID uuid.UUID, proofURL string) error
	// Verify settles the payment and confirms the booking in one transaction.
	Verify(ctx context.Context, paymentID, tutorID uuid.UUID) error
	// Reject refuses the proof and cancels the booking in one transaction.
	Reject(ctx context.Context, paymentID, tutorID uuid.UUID, reason string) error
	// ExpireOverdue is the sweep entry point; it also releases the slots of
	// bookings whose only payment ran out.
	ExpireOverdue(ctx context.Context) (int64, error)
}

type paymentUseCaseImpl struct {
	uow          shared.UnitOfWork
	clock        clock.Clock
	expiryWindow time.Duration
}

func NewPaymentUseCase(uow shared.UnitOfWork, clk clock.Clock, expiryWindow time.Duration) PaymentCommands {
	return &paymentUseCaseImpl{uow: uow, clock: clk, expiryWindow: expiryWindow}
}

func (uc *paymentUseCaseImpl) Initiate(ctx context.Context, req InitiatePaymentRequest, studentID uuid.UUID) (*InitiatePaymentResult, error) {
	method := payment.Method(req.Method)
	if !method.IsValid() {
		return nil, errs.Mark(payment.ErrInvalidMethod, ErrDomainValidation)
	}

	var result *InitiatePaymentResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByID(ctx, req.BookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if b.StudentID != studentID {
			return ErrNotPaymentOwner
		}
		if b.Status != booking.StatusPendingPayment.String() {
			return ErrBookingNotPayable
		}

		now := uc.clock.Now()
		if err := uc.ensureNoLivePayment(ctx, tx, req.BookingID, now); err != nil {
			return err
		}

		p, err := payment.NewPayment(req.BookingID, b.TotalPrice, method, now, uc.expiryWindow)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		id, err := tx.Payments().Create(ctx, tx.DB(), p)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrPaymentAlreadyLive
			}
			return err
		}

		result = &InitiatePaymentResult{
			PaymentID:     id,
			TransactionID: p.TransactionID(),
			Instructions:  p.Instructions(),
			ExpiresAt:     p.ExpiresAt(),
		}
		return uc.notify(ctx, tx, "payment_initiated", map[string]any{
			"payment_id": id,
			"booking_id": req.BookingID,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ensureNoLivePayment allows re-issuing after an expired or rejected attempt.
// An overdue pending payment is lazily expired here first.
func (uc *paymentUseCaseImpl) ensureNoLivePayment(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, now time.Time) error {
	snap, err := tx.Reads().PaymentByBookingID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		return err
	}

	existing := snap.ToDomain()
	if existing.TouchExpiry(now) {
		return tx.Payments().Update(ctx, tx.DB(), existing)
	}
	if !existing.Status().IsTerminal() || existing.Status() == payment.StatusVerified {
		return ErrPaymentAlreadyLive
	}
	return nil
}

func (uc *paymentUseCaseImpl) UploadProof(ctx context.Context, paymentID, studentID uuid.UUID, proofURL string) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, b, err := uc.loadPair(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		if b.StudentID != studentID {
			return ErrNotPaymentOwner
		}

		now := uc.clock.Now()
		if p.TouchExpiry(now) {
			if err := tx.Payments().Update(ctx, tx.DB(), p); err != nil {
				return err
			}
			return ErrPaymentExpired
		}

		if err := p.AttachProof(proofURL, now); err != nil {
			return err
		}
		if err := tx.Payments().Update(ctx, tx.DB(), p); err != nil {
			return err
		}
		return uc.notify(ctx, tx, "payment_proof_uploaded", map[string]any{
			"payment_id": p.ID(),
			"booking_id": p.BookingID(),
			"tutor_id":   b.TutorID,
		})
	})
}

func (uc *paymentUseCaseImpl) Verify(ctx context.Context, paymentID, tutorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, bsnap, err := uc.loadPair(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		if bsnap.TutorID != tutorID {
			return ErrNotPaymentReviewer
		}

		now := uc.clock.Now()
		if p.TouchExpiry(now) {
			if err := tx.Payments().Update(ctx, tx.DB(), p); err != nil {
				return err
			}
			return ErrPaymentExpired
		}

		if err := p.Verify(tutorID, now); err != nil {
			return err
		}

		b, err := bsnap.ToDomain()
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := b.ConfirmByPayment(); err != nil {
			return err
		}

		if err := tx.Payments().Update(ctx, tx.DB(), p); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return err
		}
		return uc.notify(ctx, tx, "payment_verified", map[string]any{
			"payment_id": p.ID(),
			"booking_id": b.ID(),
			"student_id": b.StudentID(),
		})
	})
}

func (uc *paymentUseCaseImpl) Reject(ctx context.Context, paymentID, tutorID uuid.UUID, reason string) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, bsnap, err := uc.loadPair(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		if bsnap.TutorID != tutorID {
			return ErrNotPaymentReviewer
		}

		now := uc.clock.Now()
		if p.TouchExpiry(now) {
			if err := tx.Payments().Update(ctx, tx.DB(), p); err != nil {
				return err
			}
			return ErrPaymentExpired
		}

		if err := p.Reject(tutorID, reason, now); err != nil {
			return err
		}

		b, err := bsnap.ToDomain()
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := b.CancelByPayment(tutorID, rejectionCancelPrefix+": "+reason); err != nil {
			return err
		}

		if err := tx.Payments().Update(ctx, tx.DB(), p); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return err
		}
		return uc.notify(ctx, tx, "payment_rejected", map[string]any{
			"payment_id": p.ID(),
			"booking_id": b.ID(),
			"student_id": b.StudentID(),
			"reason":     reason,
		})
	})
}

func (uc *paymentUseCaseImpl) ExpireOverdue(ctx context.Context) (int64, error) {
	var expired int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Payments().ExpireOverdue(ctx, tx.DB(), uc.clock.Now())
		if err != nil {
			return err
		}
		expired = n
		if n == 0 {
			return nil
		}
		// Expired payments must not keep their slots blocked.
		_, err = tx.Bookings().CancelWithExpiredPayments(ctx, tx.DB())
		return err
	})
	if err != nil {
		return 0, err
	}
	return expired, nil
}

func (uc *paymentUseCaseImpl) loadPair(ctx context.Context, tx shared.Tx, paymentID uuid.UUID) (*payment.Payment, *shared.BookingSnapshot, error) {
	psnap, err := tx.Reads().PaymentByID(ctx, paymentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrPaymentNotFound
		}
		return nil, nil, err
	}
	bsnap, err := tx.Reads().BookingByID(ctx, psnap.BookingID)
	if err != nil {
		return nil, nil, err
	}
	return psnap.ToDomain(), bsnap, nil
}

func (uc *paymentUseCaseImpl) notify(ctx context.Context, tx shared.Tx, topic string, payload map[string]any) error {
	return enqueueNotification(ctx, tx, uc.clock, topic, payload)
}
