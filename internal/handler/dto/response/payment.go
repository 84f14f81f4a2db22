package response

import (
	"time"

	"tutorin/internal/domain/payment"
	"tutorin/internal/usecase/commands"
	"tutorin/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentResponse struct {
	ID              uuid.UUID            `json:"id"`
	BookingID       uuid.UUID            `json:"bookingId"`
	Amount          int64                `json:"amount"`
	AmountFormatted string               `json:"amountFormatted"`
	Method          string               `json:"method"`
	TransactionID   string               `json:"transactionId"`
	Status          string               `json:"status"`
	Instructions    payment.Instructions `json:"instructions"`
	ProofURL        *string              `json:"proofUrl,omitempty"`
	PaidAt          *time.Time           `json:"paidAt,omitempty"`
	ExpiresAt       time.Time            `json:"expiresAt"`
	VerifiedBy      *uuid.UUID           `json:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time           `json:"verifiedAt,omitempty"`
	RejectionReason *string              `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
}

type PaymentInitiatedResponse struct {
	ID            uuid.UUID            `json:"id"`
	TransactionID string               `json:"transactionId"`
	Instructions  payment.Instructions `json:"instructions"`
	ExpiresAt     time.Time            `json:"expiresAt"`
}

type PendingVerificationResponse struct {
	PaymentID     uuid.UUID  `json:"paymentId"`
	BookingID     uuid.UUID  `json:"bookingId"`
	StudentName   string     `json:"studentName"`
	Subject       string     `json:"subject"`
	StartTime     time.Time  `json:"startTime"`
	Amount        int64      `json:"amount"`
	Method        string     `json:"method"`
	TransactionID string     `json:"transactionId"`
	ProofURL      *string    `json:"proofUrl,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
}

type PaymentMethodResponse struct {
	Method      string `json:"method"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

func FromPaymentView(v *queries.PaymentView) *PaymentResponse {
	return &PaymentResponse{
		ID:              v.ID,
		BookingID:       v.BookingID,
		Amount:          v.Amount,
		AmountFormatted: v.AmountFormatted,
		Method:          v.Method,
		TransactionID:   v.TransactionID,
		Status:          v.Status,
		Instructions:    v.Instructions,
		ProofURL:        v.ProofURL,
		PaidAt:          v.PaidAt,
		ExpiresAt:       v.ExpiresAt,
		VerifiedBy:      v.VerifiedBy,
		VerifiedAt:      v.VerifiedAt,
		RejectionReason: v.RejectionReason,
		CreatedAt:       v.CreatedAt,
	}
}

func FromInitiateResult(r *commands.InitiatePaymentResult) *PaymentInitiatedResponse {
	return &PaymentInitiatedResponse{
		ID:            r.PaymentID,
		TransactionID: r.TransactionID,
		Instructions:  r.Instructions,
		ExpiresAt:     r.ExpiresAt,
	}
}

func FromPendingVerificationItem(v *queries.PendingVerificationItem) *PendingVerificationResponse {
	return &PendingVerificationResponse{
		PaymentID:     v.PaymentID,
		BookingID:     v.BookingID,
		StudentName:   v.StudentName,
		Subject:       v.Subject,
		StartTime:     v.StartTime,
		Amount:        v.Amount,
		Method:        v.Method,
		TransactionID: v.TransactionID,
		ProofURL:      v.ProofURL,
		PaidAt:        v.PaidAt,
	}
}

func FromPaymentMethodView(v queries.PaymentMethodView) PaymentMethodResponse {
	return PaymentMethodResponse{
		Method:      v.Method,
		Name:        v.Name,
		Type:        v.Type,
		Icon:        v.Icon,
		Description: v.Description,
	}
}
