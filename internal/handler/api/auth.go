package api

import (
	"errors"
	"net/http"

	reqdto "tutorin/internal/handler/dto/request"
	resdto "tutorin/internal/handler/dto/response"
	"tutorin/internal/handler/httperr"
	"tutorin/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	commands commands.AuthCommands
}

func NewAuthHandler(cmd commands.AuthCommands) *AuthHandler {
	return &AuthHandler{commands: cmd}
}

// @Summary Login
// @Description Exchange email and password for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Credentials"
// @Success 200 {object} resdto.LoginResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.commands.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		case errors.Is(err, commands.ErrAccountBlocked):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is blocked", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}
