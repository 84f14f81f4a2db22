package api

import (
	"net/http"

	reqdto "tutorin/internal/handler/dto/request"
	resdto "tutorin/internal/handler/dto/response"
	"tutorin/internal/handler/httperr"
	"tutorin/internal/handler/middleware"
	"tutorin/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	commands commands.ReviewCommands
}

func NewReviewHandler(cmd commands.ReviewCommands) *ReviewHandler {
	return &ReviewHandler{commands: cmd}
}

// @Summary Create review
// @Description Rate a completed booking, once
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReviewRequest true "Review"
// @Success 201 {object} resdto.ReviewCreatedResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	studentID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.commands.Create(c.Request.Context(), commands.CreateReviewRequest{
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.ReviewCreatedResponse{ID: result.ReviewID})
}

// @Summary Delete review
// @Description Author or admin removes a review; the tutor's rating is recomputed
// @Tags reviews
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid review ID format", nil)
		return
	}

	if err := h.commands.Delete(c.Request.Context(), id, actorID, role); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Respond to review
// @Description Tutor's single public answer to a review
// @Tags reviews
// @Accept json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body reqdto.RespondToReviewRequest true "Response text"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reviews/{id}/response [post]
func (h *ReviewHandler) Respond(c *gin.Context) {
	tutorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid review ID format", nil)
		return
	}

	var req reqdto.RespondToReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.commands.Respond(c.Request.Context(), id, tutorID, req.Response); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
