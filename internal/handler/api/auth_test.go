//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"tutorin/internal/domain/user"
	"tutorin/internal/handler/api"
	resdto "tutorin/internal/handler/dto/response"
	"tutorin/internal/usecase/commands"
	commonhttp "tutorin/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubAuthCommands struct {
	login func(ctx context.Context, email, plain string) (*commands.LoginResult, error)
}

func (s *stubAuthCommands) Login(ctx context.Context, email, plain string) (*commands.LoginResult, error) {
	return s.login(ctx, email, plain)
}

func authRouter(cmd commands.AuthCommands) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", api.NewAuthHandler(cmd).Login)
	return router
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("200 with token and identity", func(t *testing.T) {
		userID := uuid.New()
		cmd := &stubAuthCommands{
			login: func(_ context.Context, email, plain string) (*commands.LoginResult, error) {
				assert.Equal(t, "ani@example.com", email)
				assert.Equal(t, "s3cret-pass", plain)
				return &commands.LoginResult{
					AccessToken: "signed.jwt.token",
					UserID:      userID,
					Name:        "Ani",
					Role:        user.RoleStudent,
				}, nil
			},
		}

		w := commonhttp.PerformRequest(t, authRouter(cmd), http.MethodPost, "/auth/login",
			map[string]any{"email": "ani@example.com", "password": "s3cret-pass"}, "")

		var resp resdto.LoginResponse
		commonhttp.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		assert.Equal(t, "signed.jwt.token", resp.AccessToken)
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, user.RoleStudent.String(), resp.Role)
	})

	t.Run("401 on bad credentials", func(t *testing.T) {
		cmd := &stubAuthCommands{
			login: func(context.Context, string, string) (*commands.LoginResult, error) {
				return nil, commands.ErrInvalidCredentials
			},
		}

		w := commonhttp.PerformRequest(t, authRouter(cmd), http.MethodPost, "/auth/login",
			map[string]any{"email": "ani@example.com", "password": "wrong"}, "")
		commonhttp.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid email or password")
	})

	t.Run("403 for a blocked account", func(t *testing.T) {
		cmd := &stubAuthCommands{
			login: func(context.Context, string, string) (*commands.LoginResult, error) {
				return nil, commands.ErrAccountBlocked
			},
		}

		w := commonhttp.PerformRequest(t, authRouter(cmd), http.MethodPost, "/auth/login",
			map[string]any{"email": "ani@example.com", "password": "s3cret-pass"}, "")
		commonhttp.AssertErrorResponse(t, w, http.StatusForbidden, "Account is blocked")
	})

	t.Run("400 on a malformed body", func(t *testing.T) {
		w := commonhttp.PerformRequest(t, authRouter(&stubAuthCommands{}), http.MethodPost, "/auth/login",
			map[string]any{"email": "not-an-email"}, "")
		commonhttp.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid request format")
	})
}
