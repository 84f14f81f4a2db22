package request

import (
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment" binding:"required"`
}

type RespondToReviewRequest struct {
	Response string `json:"response" binding:"required"`
}
