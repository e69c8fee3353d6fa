package dto

import (
	"segment-quantitation-service/internal/core/domain"
)

// ============================================================================
// Request DTOs
// ============================================================================

// ProcessRequest selects the events to run and optionally overrides parameters and filenames
type ProcessRequest struct {
	Events     []string          `json:"events"`
	Parameters domain.Parameters `json:"parameters"`
	Filenames  *domain.Filenames `json:"filenames"`
}

// ValidateEventsRequest carries event names to validate
type ValidateEventsRequest struct {
	Events []string `json:"events" binding:"required"`
}

// ImportStandardsRequest points at a standards concentration file
type ImportStandardsRequest struct {
	Path string `json:"path"`
}

// ============================================================================
// Response DTOs
// ============================================================================

type SegmentSummary struct {
	Name                string `json:"name"`
	Samples             int    `json:"samples"`
	QuantitationMethods int    `json:"quantitation_methods"`
	CalibratedComponent int    `json:"calibrated_components"`
}

type SequenceSummary struct {
	Name     string           `json:"name"`
	Samples  int              `json:"samples"`
	Segments []SegmentSummary `json:"segments"`
}

type ListSequencesResponse struct {
	Items []SequenceSummary `json:"items"`
	Total int               `json:"total"`
}

type ValidateEventsResponse struct {
	Valid   bool     `json:"valid"`
	Invalid []string `json:"invalid"`
}

type WorkflowResponse struct {
	SampleType string   `json:"sample_type"`
	Events     []string `json:"events"`
}

type CalibratorsResponse struct {
	Sequence   string                                   `json:"sequence_name"`
	Segment    string                                   `json:"segment_name"`
	Components map[string][]domain.FeatureConcentration `json:"components"`
}

type CalibrationRunsResponse struct {
	Items []*domain.CalibrationRun `json:"items"`
	Total int                      `json:"total"`
}

// ============================================================================
// Converters
// ============================================================================

func ToSequenceSummary(s *domain.Sequence) SequenceSummary {
	segments := make([]SegmentSummary, 0, len(s.Segments))
	for _, seg := range s.Segments {
		if seg == nil {
			continue
		}
		segments = append(segments, SegmentSummary{
			Name:                seg.Name,
			Samples:             len(seg.SampleIndices),
			QuantitationMethods: len(seg.QuantitationMethods),
			CalibratedComponent: len(seg.ComponentsToConcentrations),
		})
	}
	return SequenceSummary{
		Name:     s.Name,
		Samples:  len(s.Samples),
		Segments: segments,
	}
}

func ToWorkflowResponse(sampleType domain.SampleType, events []domain.SegmentEvent) WorkflowResponse {
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.String())
	}
	return WorkflowResponse{SampleType: string(sampleType), Events: names}
}
