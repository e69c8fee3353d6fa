package gonumfit

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"segment-quantitation-service/internal/core/domain"
	"segment-quantitation-service/internal/core/ports/output"
)

const defaultFeatureName = "peak_apex_int"

// Outlier detection strategies
const (
	OutlierIterJackknife = "iter_jackknife"
	OutlierIterResidual  = "iter_residual"
)

var errCriteriaNotMet = errors.New("no calibration curve met the bias and correlation criteria")

// Options control the iterative curve selection
type Options struct {
	MinPoints                 int
	MaxBias                   float64
	MinCorrelationCoefficient float64
	MaxIters                  int
	OutlierDetectionMethod    string
	UseChauvenet              bool
}

// DefaultOptions mirrors the defaults of the absolute quantitation parameter group.
func DefaultOptions() Options {
	return Options{
		MinPoints:                 4,
		MaxBias:                   30.0,
		MinCorrelationCoefficient: 0.9,
		MaxIters:                  100,
		OutlierDetectionMethod:    OutlierIterJackknife,
		UseChauvenet:              true,
	}
}

// Optimizer fits linear calibration curves with iterative outlier removal
type Optimizer struct {
	opts    Options
	methods []domain.QuantitationMethod
}

// New creates an optimizer with default options
func New() *Optimizer {
	return &Optimizer{opts: DefaultOptions()}
}

// NewFactory returns an OptimizerFactory producing default optimizers
func NewFactory() ports.OptimizerFactory {
	return func() ports.CalibrationOptimizer { return New() }
}

// Options returns the effective options.
func (o *Optimizer) Options() Options {
	return o.opts
}

func (o *Optimizer) SetParameters(params []domain.Parameter) error {
	for _, p := range params {
		var err error
		switch p.Name {
		case "min_points":
			o.opts.MinPoints, err = p.Int()
		case "max_bias":
			o.opts.MaxBias, err = p.Float()
		case "min_correlation_coefficient":
			o.opts.MinCorrelationCoefficient, err = p.Float()
		case "max_iters":
			o.opts.MaxIters, err = p.Int()
		case "outlier_detection_method", "optimization_method":
			method := p.String()
			if method != OutlierIterJackknife && method != OutlierIterResidual {
				return fmt.Errorf("%w: %s=%q", domain.ErrInvalidParameter, p.Name, p.Value)
			}
			o.opts.OutlierDetectionMethod = method
		case "use_chauvenet":
			o.opts.UseChauvenet, err = p.Bool()
		default:
			log.WithField("parameter", p.Name).Warn("unknown absolute quantitation parameter ignored")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (o *Optimizer) SetQuantitationMethods(methods []domain.QuantitationMethod) {
	o.methods = domain.CloneQuantitationMethods(methods)
}

func (o *Optimizer) QuantitationMethods() []domain.QuantitationMethod {
	return domain.CloneQuantitationMethods(o.methods)
}

// OptimizeSingleCalibrationCurve removes outliers one at a time until the fitted curve meets the
// bias and correlation criteria. The method is updated only on success.
func (o *Optimizer) OptimizeSingleCalibrationCurve(componentName string, points []domain.FeatureConcentration) error {
	idx := -1
	for i := range o.methods {
		if o.methods[i].ComponentName == componentName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", domain.ErrUnknownComponent, componentName)
	}
	method := &o.methods[idx]
	if method.TransformationModel != "" && method.TransformationModel != domain.TransformationModelLinear {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedModel, method.TransformationModel)
	}

	featureName := method.FeatureName
	if featureName == "" {
		featureName = defaultFeatureName
	}
	data, err := newCalibrationData(points, featureName)
	if err != nil {
		return err
	}

	for iter := 0; iter < o.opts.MaxIters; iter++ {
		if data.len() < o.opts.MinPoints {
			return fmt.Errorf("%w: %d < %d", domain.ErrInsufficientStandard, data.len(), o.opts.MinPoints)
		}

		fit := data.fit(method.TransformationParams.XWeight, method.TransformationParams.YWeight)
		biases := data.biases(fit)
		r := data.correlation(fit)
		if r >= o.opts.MinCorrelationCoefficient && maxOf(biases) <= o.opts.MaxBias {
			o.apply(method, data, fit, r)
			return nil
		}

		var outlier int
		switch o.opts.OutlierDetectionMethod {
		case OutlierIterResidual:
			outlier = argMax(biases)
		default:
			outlier = data.jackknifeOutlier(method.TransformationParams.XWeight, method.TransformationParams.YWeight)
		}
		if o.opts.UseChauvenet && !chauvenet(biases, outlier) {
			break
		}
		data = data.without(outlier)
	}
	return errCriteriaNotMet
}

func (o *Optimizer) apply(method *domain.QuantitationMethod, data calibrationData, fit linearFit, r float64) {
	method.TransformationModel = domain.TransformationModelLinear
	method.TransformationParams.Slope = fit.slope
	method.TransformationParams.Intercept = fit.intercept
	method.TransformationParams.XDatumMin, method.TransformationParams.XDatumMax = minMax(data.x)
	method.TransformationParams.YDatumMin, method.TransformationParams.YDatumMax = minMax(data.y)
	method.CorrelationCoefficient = r
	method.NPoints = data.len()
	method.LLOQ, method.ULOQ = minMax(data.actual)
}

// chauvenet reports whether the value at i is an outlier by Chauvenet's criterion.
func chauvenet(values []float64, i int) bool {
	if len(values) < 3 {
		return false
	}
	mean, sd := stat.MeanStdDev(values, nil)
	if sd == 0 || math.IsNaN(sd) {
		return false
	}
	prob := math.Erfc(math.Abs(values[i]-mean) / (sd * math.Sqrt2))
	return prob*float64(len(values)) < 0.5
}

func maxOf(values []float64) float64 {
	m := math.Inf(-1)
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

func argMax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
