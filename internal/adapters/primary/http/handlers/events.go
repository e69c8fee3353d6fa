package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"segment-quantitation-service/internal/adapters/primary/http/dto"
	"segment-quantitation-service/internal/core/domain"
)

func (h *Handler) GetDefaultWorkflow(c *gin.Context) {
	sampleType, err := domain.ParseSampleType(c.Param("sample_type"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	events, err := domain.DefaultSegmentWorkflow(sampleType)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkflowResponse(sampleType, events))
}

func (h *Handler) ValidateEvents(c *gin.Context) {
	var req dto.ValidateEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	valid := domain.CheckSegmentEventNames(req.Events)
	invalid := domain.InvalidSegmentEventNames(req.Events)
	if invalid == nil {
		invalid = []string{}
	}
	c.JSON(http.StatusOK, dto.ValidateEventsResponse{Valid: valid, Invalid: invalid})
}
