package response

import (
	"github.com/google/uuid"
)

type ReviewCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}
