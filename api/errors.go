package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/cabinbooking/internal/cabin"
	"github.com/Domenick1991/cabinbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, cabin.ErrReservedZone):
		return http.StatusUnprocessableEntity
	case errors.Is(err, cabin.ErrInvalidSeat), errors.Is(err, domain.ErrInvalidPassenger):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyBooked):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotBooked):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
