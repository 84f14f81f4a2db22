package api

import (
	"net/http"

	reqdto "tutorin/internal/handler/dto/request"
	resdto "tutorin/internal/handler/dto/response"
	"tutorin/internal/handler/httperr"
	"tutorin/internal/handler/middleware"
	"tutorin/internal/usecase/commands"
	"tutorin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	commands commands.PaymentCommands
	queries  queries.PaymentQueries
}

func NewPaymentHandler(cmd commands.PaymentCommands, q queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{commands: cmd, queries: q}
}

// @Summary Payment methods
// @Description Supported payment method catalog
// @Tags payments
// @Produce json
// @Success 200 {array} resdto.PaymentMethodResponse
// @Router /payments/methods [get]
func (h *PaymentHandler) Methods(c *gin.Context) {
	methods := h.queries.Methods(c.Request.Context())
	response := make([]resdto.PaymentMethodResponse, len(methods))
	for i, m := range methods {
		response[i] = resdto.FromPaymentMethodView(m)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Initiate payment
// @Description Issue payment instructions for a pending booking
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.InitiatePaymentRequest true "Payment request"
// @Success 201 {object} resdto.PaymentInitiatedResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /payments/initiate [post]
func (h *PaymentHandler) Initiate(c *gin.Context) {
	studentID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.commands.Initiate(c.Request.Context(), commands.InitiatePaymentRequest{
		BookingID: req.BookingID,
		Method:    req.Method,
	}, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromInitiateResult(result))
}

// @Summary Payment by booking
// @Description Latest payment attempt on a booking
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /payments/booking/{bookingId} [get]
func (h *PaymentHandler) GetByBooking(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	role, _ := middleware.GetUserRole(c)

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.queries.GetByBookingID(c.Request.Context(), actorID, role, bookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}

// @Summary Upload proof
// @Description Attach a transfer proof to a pending payment
// @Tags payments
// @Accept json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body reqdto.UploadProofRequest true "Proof URL"
// @Success 204
// @Failure 422 {object} httperr.Response
// @Router /payments/{id}/proof [post]
func (h *PaymentHandler) UploadProof(c *gin.Context) {
	studentID, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	var req reqdto.UploadProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.commands.UploadProof(c.Request.Context(), id, studentID, req.ProofURL); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Pending verifications
// @Description Proofs awaiting this tutor's review, oldest upload first
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.PendingVerificationResponse
// @Router /payments/pending-verifications [get]
func (h *PaymentHandler) PendingVerifications(c *gin.Context) {
	tutorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items, err := h.queries.PendingVerifications(c.Request.Context(), tutorID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]*resdto.PendingVerificationResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromPendingVerificationItem(item)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Verify payment
// @Description Accept the proof; confirms the booking in the same transaction
// @Tags payments
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /payments/{id}/verify [patch]
func (h *PaymentHandler) Verify(c *gin.Context) {
	tutorID, id, ok := h.actorAndID(c)
	if !ok {
		return
	}
	if err := h.commands.Verify(c.Request.Context(), id, tutorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reject payment
// @Description Refuse the proof; cancels the booking in the same transaction
// @Tags payments
// @Accept json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body reqdto.RejectPaymentRequest true "Rejection reason"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /payments/{id}/reject [patch]
func (h *PaymentHandler) Reject(c *gin.Context) {
	tutorID, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	var req reqdto.RejectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.commands.Reject(c.Request.Context(), id, tutorID, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PaymentHandler) actorAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid payment ID format", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return actorID, id, true
}
