package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"segment-quantitation-service/internal/core/domain"
	"segment-quantitation-service/internal/core/ports/output"
)

// SegmentProcessor applies a single processing event to a sequence segment
type SegmentProcessor struct {
	calibration *CalibrationService
	methodStore ports.QuantitationMethodStore
}

// NewSegmentProcessor creates a segment processor
func NewSegmentProcessor(calibration *CalibrationService, methodStore ports.QuantitationMethodStore) *SegmentProcessor {
	return &SegmentProcessor{
		calibration: calibration,
		methodStore: methodStore,
	}
}

// ProcessSequenceSegment runs event against segment. Only calibration and quantitation method
// persistence are supported; any other event fails with domain.ErrInvalidSegmentEvent.
func (p *SegmentProcessor) ProcessSequenceSegment(
	ctx context.Context,
	segment *domain.SequenceSegment,
	sequence *domain.Sequence,
	event domain.SegmentEvent,
	params domain.Parameters,
	filenames domain.Filenames,
) error {
	switch event {
	case domain.CalculateCalibration:
		return p.calculateCalibration(segment, sequence, params)
	case domain.StoreQuantitationMethods:
		return p.storeQuantitationMethods(ctx, segment, filenames.QuantitationMethodsCSVOutput)
	case domain.LoadQuantitationMethods:
		return p.loadQuantitationMethods(ctx, segment, filenames.QuantitationMethodsCSVInput)
	default:
		return fmt.Errorf("%w: value %d (%s)", domain.ErrInvalidSegmentEvent, int(event), event)
	}
}

func (p *SegmentProcessor) calculateCalibration(segment *domain.SequenceSegment, sequence *domain.Sequence, params domain.Parameters) error {
	group, err := params.Group(domain.ParameterGroupAbsoluteQuantitation)
	if err != nil {
		return err
	}

	optimizeErr := p.calibration.OptimizeCalibrationCurves(segment, sequence, group)

	// Fan out only after the optimizer has fully returned so no sample sees a partial update.
	for _, index := range segment.SampleIndices {
		sample, err := sequence.Sample(index)
		if err != nil {
			return err
		}
		sample.RawData.QuantitationMethods = segment.QuantitationMethods
	}

	return optimizeErr
}

func (p *SegmentProcessor) storeQuantitationMethods(ctx context.Context, segment *domain.SequenceSegment, path string) error {
	if path == "" {
		log.WithField("segment", segment.Name).Warn("quantitation methods output filename is empty, nothing stored")
		return nil
	}
	log.WithFields(log.Fields{"segment": segment.Name, "path": path}).Debug("storing quantitation methods")
	return p.methodStore.StoreQuantitationMethods(ctx, segment.QuantitationMethods, path)
}

func (p *SegmentProcessor) loadQuantitationMethods(ctx context.Context, segment *domain.SequenceSegment, path string) error {
	if path == "" {
		log.WithField("segment", segment.Name).Warn("quantitation methods input filename is empty, nothing loaded")
		return nil
	}
	log.WithFields(log.Fields{"segment": segment.Name, "path": path}).Debug("loading quantitation methods")
	methods, err := p.methodStore.LoadQuantitationMethods(ctx, path)
	if err != nil {
		return err
	}
	segment.QuantitationMethods = methods
	return nil
}
