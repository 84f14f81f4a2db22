//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"tutorin/internal/domain/booking"
	"tutorin/internal/domain/user"
	"tutorin/internal/handler/api"
	resdto "tutorin/internal/handler/dto/response"
	"tutorin/internal/usecase/commands"
	"tutorin/internal/usecase/queries"
	"tutorin/tests/common/builder"
	commonhttp "tutorin/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBookingCommands routes each call to an overridable function so a test
// controls exactly one behavior at a time.
type stubBookingCommands struct {
	create   func(ctx context.Context, req commands.CreateBookingRequest, studentID uuid.UUID) (*commands.CreateBookingResult, error)
	confirm  func(ctx context.Context, bookingID, tutorID uuid.UUID, meetingURL *string) error
	complete func(ctx context.Context, bookingID, actorID uuid.UUID) error
	cancel   func(ctx context.Context, bookingID, actorID uuid.UUID, role user.Role, reason string) error
}

func (s *stubBookingCommands) Create(ctx context.Context, req commands.CreateBookingRequest, studentID uuid.UUID) (*commands.CreateBookingResult, error) {
	return s.create(ctx, req, studentID)
}

func (s *stubBookingCommands) Confirm(ctx context.Context, bookingID, tutorID uuid.UUID, meetingURL *string) error {
	return s.confirm(ctx, bookingID, tutorID, meetingURL)
}

func (s *stubBookingCommands) CompleteByTutor(ctx context.Context, bookingID, tutorID uuid.UUID) error {
	return s.complete(ctx, bookingID, tutorID)
}

func (s *stubBookingCommands) CompleteByStudent(ctx context.Context, bookingID, studentID uuid.UUID) error {
	return s.complete(ctx, bookingID, studentID)
}

func (s *stubBookingCommands) Cancel(ctx context.Context, bookingID, actorID uuid.UUID, role user.Role, reason string) error {
	return s.cancel(ctx, bookingID, actorID, role, reason)
}

type stubBookingQueries struct {
	getByID func(ctx context.Context, actorID uuid.UUID, role user.Role, id uuid.UUID) (*queries.BookingView, error)
	list    func(ctx context.Context, actorID uuid.UUID, role user.Role, filter queries.BookingFilter) ([]*queries.BookingListItem, error)
}

func (s *stubBookingQueries) GetByID(ctx context.Context, actorID uuid.UUID, role user.Role, id uuid.UUID) (*queries.BookingView, error) {
	return s.getByID(ctx, actorID, role, id)
}

func (s *stubBookingQueries) ListForActor(ctx context.Context, actorID uuid.UUID, role user.Role, filter queries.BookingFilter) ([]*queries.BookingListItem, error) {
	return s.list(ctx, actorID, role, filter)
}

// asUser injects the identity the auth middleware would have set.
func asUser(id uuid.UUID, role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id)
		c.Set("user_role", role)
		c.Next()
	}
}

func bookingRouter(cmd commands.BookingCommands, q queries.BookingQueries, actorID uuid.UUID, role user.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := api.NewBookingHandler(cmd, q)

	group := router.Group("/bookings", asUser(actorID, role))
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PATCH("/:id/confirm", h.Confirm)
	group.PATCH("/:id/complete/tutor", h.CompleteByTutor)
	group.PATCH("/:id/complete/student", h.CompleteByStudent)
	group.PATCH("/:id/cancel", h.Cancel)
	return router
}

func TestBookingCreateEndpoint(t *testing.T) {
	studentID := uuid.New()

	t.Run("201 with the new booking id", func(t *testing.T) {
		bookingID := uuid.New()
		bb := builder.NewBookingBuilder()
		cmd := &stubBookingCommands{
			create: func(_ context.Context, req commands.CreateBookingRequest, actor uuid.UUID) (*commands.CreateBookingResult, error) {
				assert.Equal(t, studentID, actor)
				assert.Equal(t, bb.TutorID, req.TutorID)
				return &commands.CreateBookingResult{BookingID: bookingID}, nil
			},
		}
		router := bookingRouter(cmd, nil, studentID, user.RoleStudent)

		w := commonhttp.PerformRequest(t, router, http.MethodPost, "/bookings", bb.BuildCreateRequestDTO(), "")

		var resp resdto.BookingCreatedResponse
		commonhttp.AssertSuccessResponse(t, w, http.StatusCreated, &resp)
		assert.Equal(t, bookingID, resp.ID)
	})

	t.Run("400 on malformed body", func(t *testing.T) {
		router := bookingRouter(&stubBookingCommands{}, nil, studentID, user.RoleStudent)

		w := commonhttp.PerformRequest(t, router, http.MethodPost, "/bookings", map[string]any{
			"tutor_id": "not-a-uuid",
		}, "")
		commonhttp.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid request format")
	})

	t.Run("error mapping", func(t *testing.T) {
		cases := []struct {
			name       string
			err        error
			wantStatus int
		}{
			{"unknown tutor", commands.ErrTutorNotFound, http.StatusNotFound},
			{"slot conflict", commands.ErrBookingConflict, http.StatusConflict},
			{"validation failure", commands.ErrDomainValidation, http.StatusBadRequest},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				cmd := &stubBookingCommands{
					create: func(context.Context, commands.CreateBookingRequest, uuid.UUID) (*commands.CreateBookingResult, error) {
						return nil, tc.err
					},
				}
				router := bookingRouter(cmd, nil, studentID, user.RoleStudent)

				w := commonhttp.PerformRequest(t, router, http.MethodPost, "/bookings",
					builder.NewBookingBuilder().BuildCreateRequestDTO(), "")
				commonhttp.AssertErrorResponse(t, w, tc.wantStatus, "")
			})
		}
	})
}

func TestBookingGetEndpoint(t *testing.T) {
	tutorID := uuid.New()
	bookingID := uuid.New()

	t.Run("200 for a party", func(t *testing.T) {
		q := &stubBookingQueries{
			getByID: func(_ context.Context, actorID uuid.UUID, role user.Role, id uuid.UUID) (*queries.BookingView, error) {
				assert.Equal(t, tutorID, actorID)
				assert.Equal(t, user.RoleTutor, role)
				return &queries.BookingView{ID: id, TutorID: tutorID, Status: booking.StatusConfirmed.String()}, nil
			},
		}
		router := bookingRouter(&stubBookingCommands{}, q, tutorID, user.RoleTutor)

		w := commonhttp.PerformRequest(t, router, http.MethodGet, "/bookings/"+bookingID.String(), nil, "")

		var resp resdto.BookingResponse
		commonhttp.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		assert.Equal(t, bookingID, resp.ID)
	})

	t.Run("403 for a stranger", func(t *testing.T) {
		q := &stubBookingQueries{
			getByID: func(context.Context, uuid.UUID, user.Role, uuid.UUID) (*queries.BookingView, error) {
				return nil, queries.ErrNotParty
			},
		}
		router := bookingRouter(&stubBookingCommands{}, q, uuid.New(), user.RoleStudent)

		w := commonhttp.PerformRequest(t, router, http.MethodGet, "/bookings/"+bookingID.String(), nil, "")
		commonhttp.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	t.Run("400 on a bad id", func(t *testing.T) {
		router := bookingRouter(&stubBookingCommands{}, &stubBookingQueries{}, uuid.New(), user.RoleStudent)

		w := commonhttp.PerformRequest(t, router, http.MethodGet, "/bookings/not-a-uuid", nil, "")
		commonhttp.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid booking ID")
	})
}

func TestBookingTransitionEndpoints(t *testing.T) {
	bookingID := uuid.New()
	tutorID := uuid.New()

	t.Run("confirm passes the meeting url through", func(t *testing.T) {
		var gotURL *string
		cmd := &stubBookingCommands{
			confirm: func(_ context.Context, id, actor uuid.UUID, meetingURL *string) error {
				assert.Equal(t, bookingID, id)
				assert.Equal(t, tutorID, actor)
				gotURL = meetingURL
				return nil
			},
		}
		router := bookingRouter(cmd, nil, tutorID, user.RoleTutor)

		w := commonhttp.PerformRequest(t, router, http.MethodPatch, "/bookings/"+bookingID.String()+"/confirm",
			map[string]any{"meeting_url": "https://meet.example.com/x"}, "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		require.NotNil(t, gotURL)
		assert.Equal(t, "https://meet.example.com/x", *gotURL)
	})

	t.Run("confirm in the wrong state is 422", func(t *testing.T) {
		cmd := &stubBookingCommands{
			confirm: func(context.Context, uuid.UUID, uuid.UUID, *string) error {
				return booking.ErrNotPendingPayment
			},
		}
		router := bookingRouter(cmd, nil, tutorID, user.RoleTutor)

		w := commonhttp.PerformRequest(t, router, http.MethodPatch, "/bookings/"+bookingID.String()+"/confirm", nil, "")
		commonhttp.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "")
	})

	t.Run("completion before session end is 422", func(t *testing.T) {
		cmd := &stubBookingCommands{
			complete: func(context.Context, uuid.UUID, uuid.UUID) error {
				return booking.ErrSessionNotEnded
			},
		}
		router := bookingRouter(cmd, nil, tutorID, user.RoleTutor)

		w := commonhttp.PerformRequest(t, router, http.MethodPatch, "/bookings/"+bookingID.String()+"/complete/tutor", nil, "")
		commonhttp.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "")
	})

	t.Run("student completion before the tutor is 422", func(t *testing.T) {
		cmd := &stubBookingCommands{
			complete: func(context.Context, uuid.UUID, uuid.UUID) error {
				return booking.ErrTutorMustGoFirst
			},
		}
		router := bookingRouter(cmd, nil, uuid.New(), user.RoleStudent)

		w := commonhttp.PerformRequest(t, router, http.MethodPatch, "/bookings/"+bookingID.String()+"/complete/student", nil, "")
		commonhttp.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "")
	})

	t.Run("cancel forwards the reason and role", func(t *testing.T) {
		studentID := uuid.New()
		cmd := &stubBookingCommands{
			cancel: func(_ context.Context, id, actor uuid.UUID, role user.Role, reason string) error {
				assert.Equal(t, bookingID, id)
				assert.Equal(t, studentID, actor)
				assert.Equal(t, user.RoleStudent, role)
				assert.Equal(t, "schedule clash", reason)
				return nil
			},
		}
		router := bookingRouter(cmd, nil, studentID, user.RoleStudent)

		w := commonhttp.PerformRequest(t, router, http.MethodPatch, "/bookings/"+bookingID.String()+"/cancel",
			map[string]any{"reason": "schedule clash"}, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("cancel without a reason is 400", func(t *testing.T) {
		router := bookingRouter(&stubBookingCommands{}, nil, uuid.New(), user.RoleStudent)

		w := commonhttp.PerformRequest(t, router, http.MethodPatch, "/bookings/"+bookingID.String()+"/cancel",
			map[string]any{}, "")
		commonhttp.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid request format")
	})
}
