//go:build unit || e2e

package builder

import (
	"time"

	"tutorin/internal/domain/payment"
	"tutorin/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentBuilder struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	Amount    int64
	Method    payment.Method
	Status    payment.Status
	ProofURL  *string
	PaidAt    *time.Time
	Now       time.Time
	Window    time.Duration
}

func NewPaymentBuilder() *PaymentBuilder {
	return &PaymentBuilder{
		ID:        uuid.New(),
		BookingID: uuid.New(),
		Amount:    100_000,
		Method:    payment.MethodQRIS,
		Status:    payment.StatusPending,
		Now:       BaseTime,
		Window:    payment.ExpiryWindow,
	}
}

func (b *PaymentBuilder) With(mutate func(*PaymentBuilder)) *PaymentBuilder {
	mutate(b)
	return b
}

func (b *PaymentBuilder) WithBookingID(id uuid.UUID) *PaymentBuilder {
	b.BookingID = id
	return b
}

func (b *PaymentBuilder) WithAmount(amount int64) *PaymentBuilder {
	b.Amount = amount
	return b
}

func (b *PaymentBuilder) WithMethod(method payment.Method) *PaymentBuilder {
	b.Method = method
	return b
}

func (b *PaymentBuilder) WithStatus(status payment.Status) *PaymentBuilder {
	b.Status = status
	return b
}

// AsAwaitingVerification represents a payment whose proof has been uploaded
// and now sits in the tutor's review queue.
func (b *PaymentBuilder) AsAwaitingVerification() *PaymentBuilder {
	b.Status = payment.StatusPendingVerification
	proof := "https://uploads.example.com/proof.jpg"
	paid := b.Now.Add(time.Hour)
	b.ProofURL = &proof
	b.PaidAt = &paid
	return b
}

func (b *PaymentBuilder) BuildDomain() (*payment.Payment, error) {
	return payment.NewPayment(b.BookingID, b.Amount, b.Method, b.Now, b.Window)
}

func (b *PaymentBuilder) BuildSnapshot() *shared.PaymentSnapshot {
	instructions, _ := payment.BuildInstructions(b.Method, "TRX-1748822400000-abc123def", "8808123456789012", b.Amount)
	return &shared.PaymentSnapshot{
		ID:            b.ID,
		BookingID:     b.BookingID,
		Amount:        b.Amount,
		Method:        b.Method.String(),
		TransactionID: "TRX-1748822400000-abc123def",
		Status:        b.Status.String(),
		Instructions:  instructions,
		ProofURL:      b.ProofURL,
		PaidAt:        b.PaidAt,
		ExpiresAt:     b.Now.Add(b.Window),
		CreatedAt:     b.Now,
		UpdatedAt:     b.Now,
	}
}
