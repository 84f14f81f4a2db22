package queries

import (
	"time"

	"tutorin/internal/domain/payment"
	"tutorin/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotParty      = errs.New("caller is not a party to this booking")
	ErrInvalidDate   = errs.New("date must be in YYYY-MM-DD format")
	ErrInvalidFilter = errs.New("invalid list filter")
)

// Read models (DTO for read side)

type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	StudentID          uuid.UUID  `json:"student_id"`
	StudentName        string     `json:"student_name"`
	TutorID            uuid.UUID  `json:"tutor_id"`
	TutorName          string     `json:"tutor_name"`
	Subject            string     `json:"subject"`
	Subtopic           *string    `json:"subtopic,omitempty"`
	GradeLevel         int        `json:"grade_level"`
	TeachingMethod     string     `json:"teaching_method"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            time.Time  `json:"end_time"`
	DurationHours      float64    `json:"duration_hours"`
	HourlyRate         int64      `json:"hourly_rate"`
	TotalPrice         int64      `json:"total_price"`
	Status             string     `json:"status"`
	Location           *string    `json:"location,omitempty"`
	MeetingURL         *string    `json:"meeting_url,omitempty"`
	TutorCompleted     bool       `json:"tutor_completed"`
	StudentCompleted   bool       `json:"student_completed"`
	TutorCompletedAt   *time.Time `json:"tutor_completed_at,omitempty"`
	StudentCompletedAt *time.Time `json:"student_completed_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledBy        *uuid.UUID `json:"cancelled_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID             uuid.UUID `json:"id"`
	StudentName    string    `json:"student_name"`
	TutorName      string    `json:"tutor_name"`
	Subject        string    `json:"subject"`
	GradeLevel     int       `json:"grade_level"`
	TeachingMethod string    `json:"teaching_method"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	TotalPrice     int64     `json:"total_price"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// BookingFilter narrows the caller's booking list. Zero values mean "any".
type BookingFilter struct {
	Status   *string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int32
	Offset   int32
}

type PaymentView struct {
	ID              uuid.UUID            `json:"id"`
	BookingID       uuid.UUID            `json:"booking_id"`
	Amount          int64                `json:"amount"`
	AmountFormatted string               `json:"amount_formatted"`
	Method          string               `json:"method"`
	TransactionID   string               `json:"transaction_id"`
	Status          string               `json:"status"`
	Instructions    payment.Instructions `json:"instructions"`
	ProofURL        *string              `json:"proof_url,omitempty"`
	PaidAt          *time.Time           `json:"paid_at,omitempty"`
	ExpiresAt       time.Time            `json:"expires_at"`
	VerifiedBy      *uuid.UUID           `json:"verified_by,omitempty"`
	VerifiedAt      *time.Time           `json:"verified_at,omitempty"`
	RejectionReason *string              `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// PendingVerificationItem is one row of a tutor's proof-review queue.
type PendingVerificationItem struct {
	PaymentID     uuid.UUID  `json:"payment_id"`
	BookingID     uuid.UUID  `json:"booking_id"`
	StudentName   string     `json:"student_name"`
	Subject       string     `json:"subject"`
	StartTime     time.Time  `json:"start_time"`
	Amount        int64      `json:"amount"`
	Method        string     `json:"method"`
	TransactionID string     `json:"transaction_id"`
	ProofURL      *string    `json:"proof_url,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

type PaymentMethodView struct {
	Method      string `json:"method"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type ReviewView struct {
	ID          uuid.UUID  `json:"id"`
	BookingID   uuid.UUID  `json:"booking_id"`
	StudentID   uuid.UUID  `json:"student_id"`
	StudentName string     `json:"student_name"`
	TutorID     uuid.UUID  `json:"tutor_id"`
	Rating      int        `json:"rating"`
	Comment     string     `json:"comment"`
	Response    *string    `json:"response,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// SlotView renders one bookable hour in WIB wall-clock form.
type SlotView struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AvailabilityDayView struct {
	TutorID   uuid.UUID  `json:"tutor_id"`
	Date      string     `json:"date"`
	DayOfWeek string     `json:"day_of_week"`
	Slots     []SlotView `json:"slots"`
}
