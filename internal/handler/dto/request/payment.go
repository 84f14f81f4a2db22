package request

import (
	"github.com/google/uuid"
)

type InitiatePaymentRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Method    string    `json:"method" binding:"required"`
}

type UploadProofRequest struct {
	ProofURL string `json:"proof_url" binding:"required"`
}

type RejectPaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}
