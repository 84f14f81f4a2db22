package response

import (
	"tutorin/internal/usecase/commands"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	UserID      uuid.UUID `json:"userId"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		AccessToken: r.AccessToken,
		UserID:      r.UserID,
		Name:        r.Name,
		Role:        r.Role.String(),
	}
}
