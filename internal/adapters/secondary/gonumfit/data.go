package gonumfit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"segment-quantitation-service/internal/core/domain"
)

// calibrationData holds the regression inputs of one component.
// x is the concentration ratio, y the feature ratio.
type calibrationData struct {
	x      []float64
	y      []float64
	actual []float64
	scale  []float64 // converts a concentration ratio back to a concentration
}

type linearFit struct {
	slope     float64
	intercept float64
}

func newCalibrationData(points []domain.FeatureConcentration, featureName string) (calibrationData, error) {
	var d calibrationData
	for _, p := range points {
		y, ok := p.Feature.Value(featureName)
		if !ok {
			return d, fmt.Errorf("%w: feature %q has no %q", domain.ErrInvalidParameter, p.Feature.ComponentName, featureName)
		}
		scale := 1.0
		if p.ISFeature != nil && p.ISActualConcentration > 0 {
			isY, ok := p.ISFeature.Value(featureName)
			if ok && isY != 0 {
				y /= isY
				scale = p.ISActualConcentration
			}
		}
		if p.DilutionFactor > 0 {
			scale *= p.DilutionFactor
		}
		d.x = append(d.x, p.ActualConcentration/scale)
		d.y = append(d.y, y)
		d.actual = append(d.actual, p.ActualConcentration)
		d.scale = append(d.scale, scale)
	}
	return d, nil
}

func (d calibrationData) len() int {
	return len(d.x)
}

func (d calibrationData) without(i int) calibrationData {
	drop := func(s []float64) []float64 {
		out := make([]float64, 0, len(s)-1)
		out = append(out, s[:i]...)
		return append(out, s[i+1:]...)
	}
	return calibrationData{x: drop(d.x), y: drop(d.y), actual: drop(d.actual), scale: drop(d.scale)}
}

func (d calibrationData) weights(xWeight, yWeight string) []float64 {
	if weightFn(xWeight) == nil && weightFn(yWeight) == nil {
		return nil
	}
	w := make([]float64, d.len())
	for i := range w {
		w[i] = 1
		if fn := weightFn(xWeight); fn != nil {
			w[i] *= fn(d.x[i])
		}
		if fn := weightFn(yWeight); fn != nil {
			w[i] *= fn(d.y[i])
		}
	}
	return w
}

func weightFn(name string) func(float64) float64 {
	switch name {
	case "1/x", "1/y":
		return func(v float64) float64 { return 1 / v }
	case "1/x2", "1/y2":
		return func(v float64) float64 { return 1 / (v * v) }
	default:
		return nil
	}
}

func (d calibrationData) fit(xWeight, yWeight string) linearFit {
	intercept, slope := stat.LinearRegression(d.x, d.y, d.weights(xWeight, yWeight), false)
	return linearFit{slope: slope, intercept: intercept}
}

func (d calibrationData) calculated(fit linearFit) []float64 {
	out := make([]float64, d.len())
	for i := range out {
		if fit.slope == 0 {
			out[i] = math.Inf(1)
			continue
		}
		out[i] = (d.y[i] - fit.intercept) / fit.slope * d.scale[i]
	}
	return out
}

// biases returns the relative back-calculation error of every point in percent.
func (d calibrationData) biases(fit linearFit) []float64 {
	calc := d.calculated(fit)
	out := make([]float64, d.len())
	for i := range out {
		out[i] = math.Abs(calc[i]-d.actual[i]) / d.actual[i] * 100
	}
	return out
}

func (d calibrationData) correlation(fit linearFit) float64 {
	r := stat.Correlation(d.actual, d.calculated(fit), nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// jackknifeOutlier returns the point whose removal yields the best correlation.
func (d calibrationData) jackknifeOutlier(xWeight, yWeight string) int {
	best, bestR := 0, math.Inf(-1)
	for i := 0; i < d.len(); i++ {
		rest := d.without(i)
		r := rest.correlation(rest.fit(xWeight, yWeight))
		if r > bestR {
			best, bestR = i, r
		}
	}
	return best
}
