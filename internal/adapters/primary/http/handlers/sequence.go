package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"segment-quantitation-service/internal/adapters/primary/http/dto"
	"segment-quantitation-service/internal/core/domain"
	"segment-quantitation-service/internal/core/services"
)

func (h *Handler) ListSequences(c *gin.Context) {
	sequences, err := h.sequenceSvc.List(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("failed to list sequences")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.SequenceSummary, 0, len(sequences))
	for _, s := range sequences {
		items = append(items, dto.ToSequenceSummary(s))
	}
	c.JSON(http.StatusOK, dto.ListSequencesResponse{Items: items, Total: len(items)})
}

// PutSequence uploads a sequence. The path name wins over the body name.
func (h *Handler) PutSequence(c *gin.Context) {
	var sequence domain.Sequence
	if err := c.ShouldBindJSON(&sequence); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sequence.Name = c.Param("name")
	// summarised before Create hands the sequence over to processing
	summary := dto.ToSequenceSummary(&sequence)

	if err := h.sequenceSvc.Create(c.Request.Context(), &sequence); err != nil {
		log.WithError(err).WithField("sequence", sequence.Name).Error("failed to create sequence")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

func (h *Handler) GetSequence(c *gin.Context) {
	sequence, err := h.sequenceSvc.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sequence)
}

func (h *Handler) DeleteSequence(c *gin.Context) {
	if err := h.sequenceSvc.Delete(c.Request.Context(), c.Param("name")); err != nil {
		mapDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ImportStandardsConcentrations(c *gin.Context) {
	var req dto.ImportStandardsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	path := req.Path
	if path == "" {
		path = h.defaultFilenames.StandardsConcentrationsCSVInput
	}
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "standards concentrations file is required"})
		return
	}

	n, err := h.sequenceSvc.ImportStandardsConcentrations(c.Request.Context(), c.Param("name"), path)
	if err != nil {
		log.WithError(err).WithField("path", path).Error("failed to import standards concentrations")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assigned": n})
}

func (h *Handler) ProcessSequence(c *gin.Context) {
	req, ok := h.bindProcessRequest(c)
	if !ok {
		return
	}
	name := c.Param("name")
	if err := h.sequenceSvc.ProcessSequence(c.Request.Context(), name, req); err != nil {
		log.WithError(err).WithField("sequence", name).Error("failed to process sequence")
		mapDomainError(c, err)
		return
	}
	h.respondSequence(c, name)
}

func (h *Handler) ProcessSegment(c *gin.Context) {
	req, ok := h.bindProcessRequest(c)
	if !ok {
		return
	}
	name, segment := c.Param("name"), c.Param("segment")
	if err := h.sequenceSvc.ProcessSegment(c.Request.Context(), name, segment, req); err != nil {
		log.WithError(err).WithFields(log.Fields{"sequence": name, "segment": segment}).Error("failed to process segment")
		mapDomainError(c, err)
		return
	}
	h.respondSequence(c, name)
}

func (h *Handler) GetSegmentWorkflow(c *gin.Context) {
	segment := c.Param("segment")
	events, err := h.sequenceSvc.SegmentEvents(c.Request.Context(), c.Param("name"), segment)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.String())
	}
	c.JSON(http.StatusOK, gin.H{"segment_name": segment, "events": names})
}

func (h *Handler) GetCalibrators(c *gin.Context) {
	name, segment := c.Param("name"), c.Param("segment")
	components, err := h.sequenceSvc.Calibrators(c.Request.Context(), name, segment)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CalibratorsResponse{Sequence: name, Segment: segment, Components: components})
}

func (h *Handler) ListCalibrationRuns(c *gin.Context) {
	runs, err := h.sequenceSvc.CalibrationRuns(c.Request.Context(), c.Param("name"), c.Param("segment"))
	if err != nil {
		log.WithError(err).Error("failed to list calibration runs")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CalibrationRunsResponse{Items: runs, Total: len(runs)})
}

// bindProcessRequest merges the request body over the handler defaults. An empty body runs the
// default workflow with the default parameters.
func (h *Handler) bindProcessRequest(c *gin.Context) (services.ProcessRequest, bool) {
	var body dto.ProcessRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return services.ProcessRequest{}, false
		}
	}

	req := services.ProcessRequest{
		Events:     body.Events,
		Parameters: h.defaultParams,
		Filenames:  h.defaultFilenames,
	}
	if body.Parameters != nil {
		req.Parameters = body.Parameters
	}
	if body.Filenames != nil {
		req.Filenames = *body.Filenames
	}
	return req, true
}

func (h *Handler) respondSequence(c *gin.Context, name string) {
	sequence, err := h.sequenceSvc.Get(c.Request.Context(), name)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSequenceSummary(sequence))
}
