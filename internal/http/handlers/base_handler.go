// Package handlers maps HTTP requests onto module services.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pinkauto/internal/modules/auth"
	"pinkauto/internal/modules/booking"
	"pinkauto/internal/modules/fare"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

func writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrBadRequest),
		errors.Is(err, booking.ErrInsufficientDays),
		errors.Is(err, fare.ErrInvalidTime),
		errors.Is(err, fare.ErrInvalidDistance):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrForbidden):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, booking.ErrInvalidState):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrPaymentFailed):
		writeError(c, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, booking.ErrDistanceUnavailable):
		writeError(c, http.StatusBadGateway, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidPhone):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrOTPMismatch), errors.Is(err, auth.ErrOTPExpired):
		writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrTooManyRequests):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(c, http.StatusUnauthorized, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
