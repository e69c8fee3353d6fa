package ports

import "segment-quantitation-service/internal/core/domain"

// CalibrationOptimizer fits calibration curves for the components of one segment.
// An optimizer is stateful for the duration of a single optimization pass.
type CalibrationOptimizer interface {
	// SetParameters layers user overrides onto the optimizer defaults.
	SetParameters(params []domain.Parameter) error

	// SetQuantitationMethods seeds the method definitions to be optimized.
	SetQuantitationMethods(methods []domain.QuantitationMethod)

	// OptimizeSingleCalibrationCurve selects and fits the best curve for one component.
	OptimizeSingleCalibrationCurve(componentName string, points []domain.FeatureConcentration) error

	// QuantitationMethods returns the current (possibly optimized) method definitions.
	QuantitationMethods() []domain.QuantitationMethod
}

// OptimizerFactory returns a fresh optimizer for each optimization pass.
type OptimizerFactory func() CalibrationOptimizer
