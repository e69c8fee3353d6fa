package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"segment-quantitation-service/internal/core/domain"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrSequenceNotFound),
		errors.Is(err, domain.ErrSegmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Conflict errors
	case errors.Is(err, domain.ErrSequenceNameConflict),
		errors.Is(err, domain.ErrSegmentNameConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidSequenceName),
		errors.Is(err, domain.ErrInvalidSegmentName),
		errors.Is(err, domain.ErrInvalidSegment),
		errors.Is(err, domain.ErrInvalidSample),
		errors.Is(err, domain.ErrInvalidSampleType),
		errors.Is(err, domain.ErrSampleIndexOutOfRange),
		errors.Is(err, domain.ErrInvalidSegmentEvent),
		errors.Is(err, domain.ErrMissingParameterGroup),
		errors.Is(err, domain.ErrInvalidParameter),
		errors.Is(err, domain.ErrInvalidCSV):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Calibration ran but at least one curve could not be fitted
	case errors.Is(err, domain.ErrCalibrationFailed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
