package readstore

import (
	"context"
	"encoding/json"

	"tutorin/internal/domain/payment"
	"tutorin/internal/infra"
	"tutorin/internal/infra/db"
	"tutorin/internal/pkg/pgconv"
	"tutorin/internal/usecase/queries"
	"tutorin/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PaymentReadStore struct {
	db db.DBTX
}

func NewPaymentReadStore(dbtx db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: dbtx}
}

const paymentColumns = `
    id, booking_id, amount, method, transaction_id,
    status, instructions, proof_url, paid_at, expires_at,
    verified_by, verified_at, rejection_reason,
    created_at, updated_at`

// Latest row wins: an expired payment may be superseded by a re-issue.
const findPaymentByBookingIDQuery = `
SELECT` + paymentColumns + `
FROM payments
WHERE booking_id = $1
ORDER BY created_at DESC
LIMIT 1`

func (r *PaymentReadStore) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*queries.PaymentView, error) {
	snap, err := r.scanSnapshot(ctx, findPaymentByBookingIDQuery, pgconv.UUIDToPgtype(bookingID))
	if err != nil {
		return nil, err
	}
	return snapshotToView(snap), nil
}

const findPaymentByIDQuery = `
SELECT` + paymentColumns + `
FROM payments
WHERE id = $1`

func (r *PaymentReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	return r.scanSnapshot(ctx, findPaymentByIDQuery, pgconv.UUIDToPgtype(id))
}

func (r *PaymentReadStore) FindSnapshotByBookingID(ctx context.Context, bookingID uuid.UUID) (*shared.PaymentSnapshot, error) {
	return r.scanSnapshot(ctx, findPaymentByBookingIDQuery, pgconv.UUIDToPgtype(bookingID))
}

func (r *PaymentReadStore) scanSnapshot(ctx context.Context, query string, arg any) (*shared.PaymentSnapshot, error) {
	var (
		s                    shared.PaymentSnapshot
		instructions         []byte
		proofURL             pgtype.Text
		rejectionReason      pgtype.Text
		verifiedBy           pgtype.UUID
		paidAt, verifiedAt   pgtype.Timestamptz
		expiresAt            pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.BookingID, &s.Amount, &s.Method, &s.TransactionID,
		&s.Status, &instructions, &proofURL, &paidAt, &expiresAt,
		&verifiedBy, &verifiedAt, &rejectionReason,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}

	if err := json.Unmarshal(instructions, &s.Instructions); err != nil {
		return nil, infra.WrapRepoErr("failed to decode payment instructions", err)
	}
	s.ProofURL = pgconv.StringPtrFromPgtype(proofURL)
	s.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	s.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)
	s.VerifiedBy = pgconv.UUIDPtrFromPgtype(verifiedBy)
	s.VerifiedAt = pgconv.TimePtrFromPgtype(verifiedAt)
	s.RejectionReason = pgconv.StringPtrFromPgtype(rejectionReason)
	s.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	s.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &s, nil
}

func snapshotToView(s *shared.PaymentSnapshot) *queries.PaymentView {
	return &queries.PaymentView{
		ID:              s.ID,
		BookingID:       s.BookingID,
		Amount:          s.Amount,
		AmountFormatted: payment.FormatIDR(s.Amount),
		Method:          s.Method,
		TransactionID:   s.TransactionID,
		Status:          s.Status,
		Instructions:    s.Instructions,
		ProofURL:        s.ProofURL,
		PaidAt:          s.PaidAt,
		ExpiresAt:       s.ExpiresAt,
		VerifiedBy:      s.VerifiedBy,
		VerifiedAt:      s.VerifiedAt,
		RejectionReason: s.RejectionReason,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

const findPendingVerificationsQuery = `
SELECT p.id, p.booking_id, su.name, b.subject, b.start_time,
       p.amount, p.method, p.transaction_id, p.proof_url, p.paid_at
FROM payments p
JOIN bookings b ON b.id = p.booking_id
JOIN users su ON su.id = b.student_id
WHERE b.tutor_id = $1
  AND p.status = 'pending_verification'
ORDER BY p.paid_at ASC`

// FindPendingVerificationsByTutorID returns the tutor's proof-review queue,
// oldest upload first.
func (r *PaymentReadStore) FindPendingVerificationsByTutorID(ctx context.Context, tutorID uuid.UUID) ([]*queries.PendingVerificationItem, error) {
	rows, err := r.db.Query(ctx, findPendingVerificationsQuery, pgconv.UUIDToPgtype(tutorID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pending verifications", err)
	}
	defer rows.Close()

	var result []*queries.PendingVerificationItem
	for rows.Next() {
		var (
			item      queries.PendingVerificationItem
			startTime pgtype.Timestamptz
			proofURL  pgtype.Text
			paidAt    pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.PaymentID, &item.BookingID, &item.StudentName, &item.Subject, &startTime,
			&item.Amount, &item.Method, &item.TransactionID, &proofURL, &paidAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan pending verification row", err)
		}
		item.StartTime = pgconv.TimeFromPgtype(startTime)
		item.ProofURL = pgconv.StringPtrFromPgtype(proofURL)
		item.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read pending verification rows", err)
	}
	return result, nil
}
