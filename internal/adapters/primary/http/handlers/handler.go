package handlers

import (
	"github.com/gin-gonic/gin"

	"segment-quantitation-service/internal/core/domain"
	"segment-quantitation-service/internal/core/services"
)

type Handler struct {
	sequenceSvc *services.SequenceService

	// defaults applied when a process request leaves them out
	defaultParams    domain.Parameters
	defaultFilenames domain.Filenames
}

func New(sequenceSvc *services.SequenceService, defaultParams domain.Parameters, defaultFilenames domain.Filenames) *Handler {
	if defaultParams == nil {
		defaultParams = domain.Parameters{}
	}
	return &Handler{
		sequenceSvc:      sequenceSvc,
		defaultParams:    defaultParams,
		defaultFilenames: defaultFilenames,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Sequences
	r.GET("/sequences", h.ListSequences)
	r.PUT("/sequences/:name", h.PutSequence)
	r.GET("/sequences/:name", h.GetSequence)
	r.DELETE("/sequences/:name", h.DeleteSequence)
	r.POST("/sequences/:name/standards_concentrations/import", h.ImportStandardsConcentrations)

	// Processing
	r.POST("/sequences/:name/process", h.ProcessSequence)
	r.POST("/sequences/:name/segments/:segment/process", h.ProcessSegment)
	r.GET("/sequences/:name/segments/:segment/workflow", h.GetSegmentWorkflow)

	// Calibration results
	r.GET("/sequences/:name/segments/:segment/calibrators", h.GetCalibrators)
	r.GET("/sequences/:name/segments/:segment/calibration_runs", h.ListCalibrationRuns)

	// Events
	r.GET("/workflows/:sample_type", h.GetDefaultWorkflow)
	r.POST("/events/validate", h.ValidateEvents)
}
