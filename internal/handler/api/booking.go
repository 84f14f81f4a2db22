package api

import (
	"net/http"

	"tutorin/internal/domain/user"
	reqdto "tutorin/internal/handler/dto/request"
	resdto "tutorin/internal/handler/dto/response"
	"tutorin/internal/handler/httperr"
	"tutorin/internal/handler/middleware"
	"tutorin/internal/usecase/commands"
	"tutorin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(cmd commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{commands: cmd, queries: q}
}

// @Summary Create booking
// @Description Book a tutor for a time slot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingCreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	studentID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.commands.Create(c.Request.Context(), req.ToCommand(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.BookingCreatedResponse{ID: result.BookingID})
}

// @Summary Get booking
// @Description Booking detail, visible to its parties and admins
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actorID, role, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), actorID, role, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description Bookings on the caller's side of the marketplace
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param date_from query string false "WIB date, inclusive"
// @Param date_to query string false "WIB date, inclusive"
// @Success 200 {array} resdto.BookingListResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	role, _ := middleware.GetUserRole(c)

	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	filter, err := q.ToFilter()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date filter", nil)
		return
	}

	items, err := h.queries.ListForActor(c.Request.Context(), actorID, role, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromBookingListItem(item)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Confirm booking
// @Description Tutor confirms a pending booking (offline/cash sessions)
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ConfirmBookingRequest false "Optional meeting URL"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/confirm [patch]
func (h *BookingHandler) Confirm(c *gin.Context) {
	actorID, _, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	var req reqdto.ConfirmBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}

	if err := h.commands.Confirm(c.Request.Context(), id, actorID, req.MeetingURL); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Tutor completion
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Router /bookings/{id}/complete/tutor [patch]
func (h *BookingHandler) CompleteByTutor(c *gin.Context) {
	actorID, _, id, ok := h.actorAndID(c)
	if !ok {
		return
	}
	if err := h.commands.CompleteByTutor(c.Request.Context(), id, actorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Student completion
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Router /bookings/{id}/complete/student [patch]
func (h *BookingHandler) CompleteByStudent(c *gin.Context) {
	actorID, _, id, ok := h.actorAndID(c)
	if !ok {
		return
	}
	if err := h.commands.CompleteByStudent(c.Request.Context(), id, actorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel booking
// @Tags bookings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest true "Cancellation reason"
// @Success 204
// @Router /bookings/{id}/cancel [patch]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actorID, role, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	var req reqdto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.commands.Cancel(c.Request.Context(), id, actorID, role, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) actorAndID(c *gin.Context) (uuid.UUID, user.Role, uuid.UUID, bool) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return uuid.Nil, "", uuid.Nil, false
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return uuid.Nil, "", uuid.Nil, false
	}
	return actorID, role, id, true
}
