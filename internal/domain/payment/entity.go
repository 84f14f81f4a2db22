package payment

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Window a payment stays payable after issuance.
const ExpiryWindow = 24 * time.Hour

var (
	ErrInvalidMethod     = errors.New("invalid payment method")
	ErrNotPending        = errors.New("payment is not pending")
	ErrNotAwaitingReview = errors.New("payment is not awaiting verification")
	ErrExpired           = errors.New("payment has expired")
	ErrEmptyProof        = errors.New("payment proof reference is required")
	ErrEmptyRejectReason = errors.New("rejection reason is required")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
)

type Payment struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	amount        int64
	method        Method
	transactionID string
	status        Status
	instructions  Instructions

	proofURL *string
	paidAt   *time.Time

	expiresAt       time.Time
	verifiedBy      *uuid.UUID
	verifiedAt      *time.Time
	rejectionReason *string

	createdAt time.Time
	updatedAt time.Time
}

// NewPayment issues a payment intent for a booking. The transaction id, the
// instructions and the deadline are fixed here and immutable afterwards.
func NewPayment(bookingID uuid.UUID, amount int64, method Method, now time.Time, window time.Duration) (*Payment, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	if !method.IsValid() {
		return nil, ErrInvalidMethod
	}
	if window <= 0 {
		window = ExpiryWindow
	}

	transactionID := NewTransactionID(now)
	var vaNumber string
	if method == MethodVABCA || method == MethodVAMandiri || method == MethodVABNI {
		vaNumber = NewVANumber()
	}

	instructions, err := BuildInstructions(method, transactionID, vaNumber, amount)
	if err != nil {
		return nil, err
	}

	return &Payment{
		id:            uuid.New(),
		bookingID:     bookingID,
		amount:        amount,
		method:        method,
		transactionID: transactionID,
		status:        StatusPending,
		instructions:  instructions,
		expiresAt:     now.Add(window),
	}, nil
}

func ReconstructPayment(
	id, bookingID uuid.UUID,
	amount int64,
	method Method,
	transactionID string,
	status Status,
	instructions Instructions,
	proofURL *string,
	paidAt *time.Time,
	expiresAt time.Time,
	verifiedBy *uuid.UUID,
	verifiedAt *time.Time,
	rejectionReason *string,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:              id,
		bookingID:       bookingID,
		amount:          amount,
		method:          method,
		transactionID:   transactionID,
		status:          status,
		instructions:    instructions,
		proofURL:        proofURL,
		paidAt:          paidAt,
		expiresAt:       expiresAt,
		verifiedBy:      verifiedBy,
		verifiedAt:      verifiedAt,
		rejectionReason: rejectionReason,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// IsOverdue is the pure deadline predicate: past expiresAt while not yet
// settled. Expiry is evaluated on every touch, not by a live timer.
func (p *Payment) IsOverdue(now time.Time) bool {
	return !p.status.IsTerminal() && now.After(p.expiresAt)
}

// TouchExpiry lazily flips an overdue payment to expired. It reports whether
// the transition happened so the caller can persist it before surfacing an
// error.
func (p *Payment) TouchExpiry(now time.Time) bool {
	if p.IsOverdue(now) {
		p.status = StatusExpired
		return true
	}
	return false
}

// AttachProof records the student's proof upload and moves the payment to
// pending verification.
func (p *Payment) AttachProof(proofURL string, now time.Time) error {
	if strings.TrimSpace(proofURL) == "" {
		return ErrEmptyProof
	}
	if p.status == StatusExpired {
		return ErrExpired
	}
	if p.status != StatusPending {
		return ErrNotPending
	}
	p.proofURL = &proofURL
	p.paidAt = &now
	p.status = StatusPendingVerification
	return nil
}

// Verify settles the payment. The caller cascades the booking confirmation
// inside the same transaction.
func (p *Payment) Verify(tutorID uuid.UUID, now time.Time) error {
	if p.status != StatusPendingVerification {
		return ErrNotAwaitingReview
	}
	p.status = StatusVerified
	p.verifiedBy = &tutorID
	p.verifiedAt = &now
	return nil
}

// Reject refuses the uploaded proof. The caller cascades the booking
// cancellation inside the same transaction.
func (p *Payment) Reject(tutorID uuid.UUID, reason string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return ErrEmptyRejectReason
	}
	if p.status != StatusPendingVerification {
		return ErrNotAwaitingReview
	}
	p.status = StatusRejected
	p.rejectionReason = &reason
	p.verifiedBy = &tutorID
	p.verifiedAt = &now
	return nil
}

func (p *Payment) ID() uuid.UUID              { return p.id }
func (p *Payment) BookingID() uuid.UUID       { return p.bookingID }
func (p *Payment) Amount() int64              { return p.amount }
func (p *Payment) Method() Method             { return p.method }
func (p *Payment) TransactionID() string      { return p.transactionID }
func (p *Payment) Status() Status             { return p.status }
func (p *Payment) Instructions() Instructions { return p.instructions }
func (p *Payment) ProofURL() *string          { return p.proofURL }
func (p *Payment) PaidAt() *time.Time         { return p.paidAt }
func (p *Payment) ExpiresAt() time.Time       { return p.expiresAt }
func (p *Payment) VerifiedBy() *uuid.UUID     { return p.verifiedBy }
func (p *Payment) VerifiedAt() *time.Time     { return p.verifiedAt }
func (p *Payment) RejectionReason() *string   { return p.rejectionReason }
func (p *Payment) CreatedAt() time.Time       { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time       { return p.updatedAt }
