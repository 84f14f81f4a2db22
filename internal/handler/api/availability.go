package api

import (
	"net/http"

	resdto "tutorin/internal/handler/dto/response"
	"tutorin/internal/handler/httperr"
	"tutorin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	queries queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{queries: q}
}

// @Summary Available slots
// @Description Bookable one-hour slots for a tutor on a WIB calendar date
// @Tags tutors
// @Produce json
// @Param id path string true "Tutor ID"
// @Param date query string true "Date (YYYY-MM-DD, WIB)"
// @Success 200 {object} resdto.AvailableSlotsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /tutors/{id}/available-slots [get]
func (h *AvailabilityHandler) TutorSlots(c *gin.Context) {
	tutorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid tutor ID format", nil)
		return
	}

	view, err := h.queries.TutorSlots(c.Request.Context(), tutorID, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityDayView(view))
}
