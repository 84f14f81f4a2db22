//go:build unit

package payment_test

import (
	"testing"
	"time"

	"tutorin/internal/domain/payment"
	"tutorin/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		bb := builder.NewPaymentBuilder()
		p, err := bb.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, p)

		assert.NotEqual(t, uuid.Nil, p.ID())
		assert.Equal(t, bb.BookingID, p.BookingID())
		assert.Equal(t, bb.Amount, p.Amount())
		assert.Equal(t, payment.StatusPending, p.Status())
		assert.Equal(t, bb.Now.Add(payment.ExpiryWindow), p.ExpiresAt())
		assert.NotEmpty(t, p.TransactionID())
		assert.NotEmpty(t, p.Instructions().Steps)
		assert.Nil(t, p.ProofURL())
		assert.Nil(t, p.VerifiedBy())
	})

	t.Run("invalid method rejected", func(t *testing.T) {
		_, err := payment.NewPayment(uuid.New(), 100_000, payment.Method("cash"), builder.BaseTime, 0)
		assert.ErrorIs(t, err, payment.ErrInvalidMethod)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := payment.NewPayment(uuid.New(), -1, payment.MethodQRIS, builder.BaseTime, 0)
		assert.ErrorIs(t, err, payment.ErrNegativeAmount)
	})

	t.Run("zero window falls back to the default", func(t *testing.T) {
		p, err := payment.NewPayment(uuid.New(), 100_000, payment.MethodQRIS, builder.BaseTime, 0)
		require.NoError(t, err)
		assert.Equal(t, builder.BaseTime.Add(24*time.Hour), p.ExpiresAt())
	})
}

func TestPaymentExpiry(t *testing.T) {
	t.Run("deadline is exclusive", func(t *testing.T) {
		p, err := builder.NewPaymentBuilder().BuildDomain()
		require.NoError(t, err)

		deadline := p.ExpiresAt()
		assert.False(t, p.IsOverdue(deadline))
		assert.True(t, p.IsOverdue(deadline.Add(time.Second)))
	})

	t.Run("touch flips an overdue pending payment", func(t *testing.T) {
		p, err := builder.NewPaymentBuilder().BuildDomain()
		require.NoError(t, err)

		late := p.ExpiresAt().Add(time.Minute)
		assert.True(t, p.TouchExpiry(late))
		assert.Equal(t, payment.StatusExpired, p.Status())

		// second touch is a no-op
		assert.False(t, p.TouchExpiry(late))
	})

	t.Run("terminal payments never expire", func(t *testing.T) {
		bb := builder.NewPaymentBuilder().AsAwaitingVerification()
		p := bb.BuildSnapshot().ToDomain()
		require.NoError(t, p.Verify(uuid.New(), bb.Now))

		assert.False(t, p.TouchExpiry(p.ExpiresAt().Add(48*time.Hour)))
		assert.Equal(t, payment.StatusVerified, p.Status())
	})
}

func TestAttachProof(t *testing.T) {
	now := builder.BaseTime.Add(time.Hour)

	t.Run("moves pending payment to verification queue", func(t *testing.T) {
		p, err := builder.NewPaymentBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, p.AttachProof("https://uploads.example.com/proof.jpg", now))
		assert.Equal(t, payment.StatusPendingVerification, p.Status())
		require.NotNil(t, p.ProofURL())
		require.NotNil(t, p.PaidAt())
		assert.Equal(t, now, *p.PaidAt())
	})

	t.Run("empty proof rejected", func(t *testing.T) {
		p, err := builder.NewPaymentBuilder().BuildDomain()
		require.NoError(t, err)
		assert.ErrorIs(t, p.AttachProof("   ", now), payment.ErrEmptyProof)
	})

	t.Run("uploading twice fails", func(t *testing.T) {
		p, err := builder.NewPaymentBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, p.AttachProof("proof-1", now))
		assert.ErrorIs(t, p.AttachProof("proof-2", now), payment.ErrNotPending)
	})

	t.Run("expired payment refuses proof", func(t *testing.T) {
		p, err := builder.NewPaymentBuilder().BuildDomain()
		require.NoError(t, err)
		p.TouchExpiry(p.ExpiresAt().Add(time.Minute))
		assert.ErrorIs(t, p.AttachProof("proof", now), payment.ErrExpired)
	})
}

func TestVerifyAndReject(t *testing.T) {
	tutorID := uuid.New()
	now := builder.BaseTime.Add(2 * time.Hour)

	t.Run("verify settles the payment", func(t *testing.T) {
		p := builder.NewPaymentBuilder().AsAwaitingVerification().BuildSnapshot().ToDomain()

		require.NoError(t, p.Verify(tutorID, now))
		assert.Equal(t, payment.StatusVerified, p.Status())
		require.NotNil(t, p.VerifiedBy())
		assert.Equal(t, tutorID, *p.VerifiedBy())
		require.NotNil(t, p.VerifiedAt())
	})

	t.Run("reject records the reason", func(t *testing.T) {
		p := builder.NewPaymentBuilder().AsAwaitingVerification().BuildSnapshot().ToDomain()

		require.NoError(t, p.Reject(tutorID, "proof is unreadable", now))
		assert.Equal(t, payment.StatusRejected, p.Status())
		require.NotNil(t, p.RejectionReason())
		assert.Equal(t, "proof is unreadable", *p.RejectionReason())
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		p := builder.NewPaymentBuilder().AsAwaitingVerification().BuildSnapshot().ToDomain()
		assert.ErrorIs(t, p.Reject(tutorID, "  ", now), payment.ErrEmptyRejectReason)
	})

	t.Run("only uploaded proofs can be reviewed", func(t *testing.T) {
		p, err := builder.NewPaymentBuilder().BuildDomain()
		require.NoError(t, err)
		assert.ErrorIs(t, p.Verify(tutorID, now), payment.ErrNotAwaitingReview)
		assert.ErrorIs(t, p.Reject(tutorID, "bad", now), payment.ErrNotAwaitingReview)
	})

	t.Run("settled payments are immutable", func(t *testing.T) {
		verified := builder.NewPaymentBuilder().AsAwaitingVerification().BuildSnapshot().ToDomain()
		require.NoError(t, verified.Verify(tutorID, now))
		assert.ErrorIs(t, verified.Verify(tutorID, now), payment.ErrNotAwaitingReview)
		assert.ErrorIs(t, verified.Reject(tutorID, "late", now), payment.ErrNotAwaitingReview)

		rejected := builder.NewPaymentBuilder().AsAwaitingVerification().BuildSnapshot().ToDomain()
		require.NoError(t, rejected.Reject(tutorID, "mismatch", now))
		assert.ErrorIs(t, rejected.Verify(tutorID, now), payment.ErrNotAwaitingReview)
	})
}
