package repository

import (
	"context"
	"encoding/json"
	"time"

	"tutorin/internal/domain/payment"
	"tutorin/internal/infra"
	"tutorin/internal/infra/db"
	"tutorin/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx}
}

const createPaymentQuery = `
INSERT INTO payments (
    id, booking_id, amount, method, transaction_id,
    status, instructions, expires_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

func (r *PaymentRepository) Create(ctx context.Context, tx db.DBTX, p *payment.Payment) (uuid.UUID, error) {
	instructions, err := json.Marshal(p.Instructions())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode payment instructions", err)
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, createPaymentQuery,
		pgconv.UUIDToPgtype(p.ID()),
		pgconv.UUIDToPgtype(p.BookingID()),
		p.Amount(),
		string(p.Method()),
		p.TransactionID(),
		string(p.Status()),
		instructions,
		pgconv.TimeToPgtype(p.ExpiresAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create payment", err)
	}
	return id, nil
}

const updatePaymentQuery = `
UPDATE payments SET
    status = $2,
    proof_url = $3,
    paid_at = $4,
    verified_by = $5,
    verified_at = $6,
    rejection_reason = $7,
    updated_at = now()
WHERE id = $1`

func (r *PaymentRepository) Update(ctx context.Context, tx db.DBTX, p *payment.Payment) error {
	tag, err := tx.Exec(ctx, updatePaymentQuery,
		pgconv.UUIDToPgtype(p.ID()),
		string(p.Status()),
		pgconv.StringPtrToPgtype(p.ProofURL()),
		pgconv.TimePtrToPgtype(p.PaidAt()),
		pgconv.UUIDPtrToPgtype(p.VerifiedBy()),
		pgconv.TimePtrToPgtype(p.VerifiedAt()),
		pgconv.StringPtrToPgtype(p.RejectionReason()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return nil
}

// The sweep only touches payments still in the pending state: a proof under
// verification stops the clock.
const expireOverdueQuery = `
UPDATE payments SET
    status = 'expired',
    updated_at = now()
WHERE status = 'pending'
  AND expires_at < $1`

func (r *PaymentRepository) ExpireOverdue(ctx context.Context, tx db.DBTX, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, expireOverdueQuery, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire overdue payments", err)
	}
	return tag.RowsAffected(), nil
}
