package api

import (
	"errors"
	"net/http"

	"tutorin/internal/domain/booking"
	"tutorin/internal/domain/payment"
	"tutorin/internal/domain/review"
	"tutorin/internal/handler/httperr"
	"tutorin/internal/infra"
	"tutorin/internal/usecase/commands"
	"tutorin/internal/usecase/queries"
	"tutorin/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

// respondError maps usecase and domain sentinels onto the HTTP error
// taxonomy: 404 unknown, 403 not yours, 422 wrong state, 409 lost the race,
// 400 bad input.
func respondError(c *gin.Context, err error) {
	switch {
	case isNotFound(err):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
	case isForbidden(err):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed for this caller", nil)
	case isConflict(err):
		httperr.AbortWithError(c, http.StatusConflict, err, "Conflicting request", nil)
	case isInvalidState(err):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
	case isInvalidArgument(err):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, commands.ErrTutorNotFound) ||
		errors.Is(err, commands.ErrBookingNotFound) ||
		errors.Is(err, commands.ErrPaymentNotFound) ||
		errors.Is(err, commands.ErrReviewNotFound) ||
		errors.Is(err, shared.ErrTutorNotVisible) ||
		infra.IsKind(err, infra.KindNotFound)
}

func isForbidden(err error) bool {
	return errors.Is(err, queries.ErrNotParty) ||
		errors.Is(err, commands.ErrNotPaymentOwner) ||
		errors.Is(err, commands.ErrNotPaymentReviewer) ||
		errors.Is(err, commands.ErrReviewNotOwned) ||
		errors.Is(err, commands.ErrNotReviewTarget) ||
		errors.Is(err, booking.ErrNotBookingTutor) ||
		errors.Is(err, booking.ErrNotBookingStudent) ||
		errors.Is(err, booking.ErrNotBookingParty)
}

func isConflict(err error) bool {
	return errors.Is(err, commands.ErrBookingConflict) ||
		errors.Is(err, commands.ErrPaymentAlreadyLive) ||
		errors.Is(err, commands.ErrDuplicateReview) ||
		infra.IsKind(err, infra.KindConflict) ||
		infra.IsKind(err, infra.KindDuplicateKey)
}

func isInvalidState(err error) bool {
	return errors.Is(err, commands.ErrBookingNotPayable) ||
		errors.Is(err, commands.ErrPaymentExpired) ||
		errors.Is(err, commands.ErrBookingNotReviewable) ||
		errors.Is(err, booking.ErrNotPendingPayment) ||
		errors.Is(err, booking.ErrNotConfirmed) ||
		errors.Is(err, booking.ErrAlreadyTerminal) ||
		errors.Is(err, booking.ErrSessionNotEnded) ||
		errors.Is(err, booking.ErrAlreadyCompleted) ||
		errors.Is(err, booking.ErrTutorMustGoFirst) ||
		errors.Is(err, payment.ErrNotPending) ||
		errors.Is(err, payment.ErrNotAwaitingReview) ||
		errors.Is(err, payment.ErrExpired) ||
		errors.Is(err, review.ErrAlreadyResponded)
}

func isInvalidArgument(err error) bool {
	return errors.Is(err, commands.ErrDomainValidation) ||
		errors.Is(err, queries.ErrInvalidDate) ||
		errors.Is(err, booking.ErrEmptyCancelReason) ||
		errors.Is(err, payment.ErrEmptyProof) ||
		errors.Is(err, payment.ErrEmptyRejectReason) ||
		errors.Is(err, review.ErrEmptyResponse) ||
		errors.Is(err, review.ErrResponseTooLong)
}
