package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arunkx/skyfare/internal/domain"
)

// writeError maps the domain error taxonomy onto HTTP statuses. Anything
// unrecognized is an internal error and its detail stays out of the response.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrNoFlightsFound),
		errors.Is(err, domain.ErrNoFareHistory):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSameCity),
		errors.Is(err, domain.ErrNoSeatsAvailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrBookingFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
