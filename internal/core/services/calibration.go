package services

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"segment-quantitation-service/internal/core/domain"
	"segment-quantitation-service/internal/core/ports/output"
)

// CalibrationService fits the calibration curves of a sequence segment
type CalibrationService struct {
	newOptimizer ports.OptimizerFactory
}

// NewCalibrationService creates a calibration service using optimizers from newOptimizer
func NewCalibrationService(newOptimizer ports.OptimizerFactory) *CalibrationService {
	return &CalibrationService{newOptimizer: newOptimizer}
}

// OptimizeCalibrationCurves fits a curve for every component of the segment that has calibration
// points among the segment's standards, then replaces the segment's concentration table and
// quantitation methods with the results.
//
// Segments without standards and empty parameter lists leave the segment untouched. A failing
// component does not stop the others; failures are returned as a
// *domain.CalibrationFailure after the results are stored.
func (s *CalibrationService) OptimizeCalibrationCurves(segment *domain.SequenceSegment, sequence *domain.Sequence, params []domain.Parameter) error {
	logger := log.WithField("segment", segment.Name)
	logger.Debug("START optimizeCalibrationCurves")
	defer logger.Debug("END optimizeCalibrationCurves")

	standardsIndices, err := SampleIndicesBySampleType(segment, sequence, domain.SampleTypeStandard)
	if err != nil {
		return err
	}
	if len(standardsIndices) == 0 {
		logger.Info("no standards in segment, skipping calibration")
		return nil
	}

	if len(params) == 0 {
		logger.Info("absolute quantitation parameters are empty, skipping calibration")
		return nil
	}

	table, err := BuildConcentrationTable(segment, sequence)
	if err != nil {
		return err
	}

	optimizer := s.newOptimizer()
	if err := optimizer.SetParameters(params); err != nil {
		return fmt.Errorf("set optimizer parameters: %w", err)
	}
	optimizer.SetQuantitationMethods(segment.QuantitationMethods)

	componentsToConcentrations := make(map[string][]domain.FeatureConcentration)
	failure := &domain.CalibrationFailure{}
	for _, method := range segment.QuantitationMethods {
		pruned, ok := table[method.ComponentName]
		if !ok {
			logger.WithField("component", method.ComponentName).Debug("no calibration points, keeping method unchanged")
			continue
		}

		if err := optimizer.OptimizeSingleCalibrationCurve(method.ComponentName, pruned); err != nil {
			logger.WithError(err).WithField("component", method.ComponentName).Warn("calibration curve optimization failed")
			failure.Add(method.ComponentName, err)
		}

		componentsToConcentrations[method.ComponentName] = pruned
	}

	segment.ComponentsToConcentrations = componentsToConcentrations
	segment.QuantitationMethods = domain.CloneQuantitationMethods(optimizer.QuantitationMethods())

	if len(failure.Errors) > 0 {
		return failure
	}
	return nil
}
