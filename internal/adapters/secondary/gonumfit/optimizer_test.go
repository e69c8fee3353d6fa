package gonumfit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segment-quantitation-service/internal/core/domain"
)

func points(xs, ys []float64) []domain.FeatureConcentration {
	out := make([]domain.FeatureConcentration, len(xs))
	for i := range xs {
		out[i] = domain.FeatureConcentration{
			Feature:             domain.Feature{ComponentName: "A", MetaValues: map[string]float64{"peak_apex_int": ys[i]}},
			ActualConcentration: xs[i],
			DilutionFactor:      1,
		}
	}
	return out
}

func seeded() *Optimizer {
	o := New()
	o.SetQuantitationMethods([]domain.QuantitationMethod{
		{ComponentName: "A", FeatureName: "peak_apex_int", TransformationModel: domain.TransformationModelLinear},
		{ComponentName: "B"},
	})
	return o
}

func TestOptimizer_SetParameters(t *testing.T) {
	o := New()
	err := o.SetParameters([]domain.Parameter{
		{Name: "min_points", Type: "int", Value: "3"},
		{Name: "max_bias", Type: "float", Value: "20"},
		{Name: "min_correlation_coefficient", Type: "float", Value: "0.95"},
		{Name: "max_iters", Type: "int", Value: "10"},
		{Name: "outlier_detection_method", Type: "string", Value: "iter_residual"},
		{Name: "use_chauvenet", Type: "bool", Value: "false"},
		{Name: "something_else", Type: "string", Value: "ignored"},
	})
	require.NoError(t, err)
	assert.Equal(t, Options{
		MinPoints:                 3,
		MaxBias:                   20,
		MinCorrelationCoefficient: 0.95,
		MaxIters:                  10,
		OutlierDetectionMethod:    OutlierIterResidual,
		UseChauvenet:              false,
	}, o.Options())

	assert.ErrorIs(t, o.SetParameters([]domain.Parameter{{Name: "min_points", Value: "x"}}), domain.ErrInvalidParameter)
	assert.ErrorIs(t, o.SetParameters([]domain.Parameter{{Name: "outlier_detection_method", Value: "magic"}}), domain.ErrInvalidParameter)
}

func TestOptimizer_PerfectLinearCurve(t *testing.T) {
	o := seeded()

	err := o.OptimizeSingleCalibrationCurve("A", points([]float64{1, 2, 3, 4}, []float64{100, 200, 300, 400}))
	require.NoError(t, err)

	m := o.QuantitationMethods()[0]
	assert.InDelta(t, 100.0, m.TransformationParams.Slope, 1e-9)
	assert.InDelta(t, 0.0, m.TransformationParams.Intercept, 1e-9)
	assert.InDelta(t, 1.0, m.CorrelationCoefficient, 1e-9)
	assert.Equal(t, 4, m.NPoints)
	assert.Equal(t, 1.0, m.LLOQ)
	assert.Equal(t, 4.0, m.ULOQ)
	assert.Equal(t, 0, o.QuantitationMethods()[1].NPoints)
}

func TestOptimizer_JackknifeRemovesOutlier(t *testing.T) {
	o := seeded()
	require.NoError(t, o.SetParameters([]domain.Parameter{{Name: "use_chauvenet", Value: "false"}}))

	err := o.OptimizeSingleCalibrationCurve("A", points([]float64{1, 2, 3, 4, 5}, []float64{100, 200, 600, 400, 500}))
	require.NoError(t, err)

	m := o.QuantitationMethods()[0]
	assert.Equal(t, 4, m.NPoints)
	assert.InDelta(t, 100.0, m.TransformationParams.Slope, 1e-6)
}

func TestOptimizer_ResidualRemovesOutlier(t *testing.T) {
	o := seeded()
	require.NoError(t, o.SetParameters([]domain.Parameter{
		{Name: "use_chauvenet", Value: "false"},
		{Name: "outlier_detection_method", Value: "iter_residual"},
	}))

	err := o.OptimizeSingleCalibrationCurve("A", points([]float64{1, 2, 3, 4, 5}, []float64{100, 200, 600, 400, 500}))
	require.NoError(t, err)
	assert.Equal(t, 4, o.QuantitationMethods()[0].NPoints)
}

func TestOptimizer_ChauvenetStopsRemoval(t *testing.T) {
	o := seeded()

	err := o.OptimizeSingleCalibrationCurve("A", points([]float64{1, 2, 3, 4, 5}, []float64{100, 200, 600, 400, 500}))
	require.Error(t, err)
	assert.Equal(t, 0, o.QuantitationMethods()[0].NPoints)
}

func TestOptimizer_InsufficientPoints(t *testing.T) {
	o := seeded()

	err := o.OptimizeSingleCalibrationCurve("A", points([]float64{1, 2}, []float64{100, 200}))
	assert.ErrorIs(t, err, domain.ErrInsufficientStandard)
}

func TestOptimizer_UnknownComponentAndModel(t *testing.T) {
	o := New()
	o.SetQuantitationMethods([]domain.QuantitationMethod{{ComponentName: "Q", TransformationModel: "quadratic"}})

	assert.ErrorIs(t, o.OptimizeSingleCalibrationCurve("A", nil), domain.ErrUnknownComponent)
	assert.ErrorIs(t, o.OptimizeSingleCalibrationCurve("Q", nil), domain.ErrUnsupportedModel)
}

func TestOptimizer_InternalStandardRatio(t *testing.T) {
	o := seeded()
	require.NoError(t, o.SetParameters([]domain.Parameter{{Name: "min_points", Value: "3"}}))

	is := domain.Feature{ComponentName: "IS", MetaValues: map[string]float64{"peak_apex_int": 50}}
	pts := points([]float64{1, 2, 4}, []float64{100, 200, 400})
	for i := range pts {
		pts[i].ISFeature = &is
		pts[i].ISActualConcentration = 2
	}

	require.NoError(t, o.OptimizeSingleCalibrationCurve("A", pts))
	m := o.QuantitationMethods()[0]
	// y = 2, 4, 8 against x = 0.5, 1, 2
	assert.InDelta(t, 4.0, m.TransformationParams.Slope, 1e-9)
	assert.InDelta(t, 0.5, m.TransformationParams.XDatumMin, 1e-9)
}

func TestOptimizer_WeightedFit(t *testing.T) {
	o := New()
	o.SetQuantitationMethods([]domain.QuantitationMethod{{
		ComponentName: "A",
		TransformationParams: domain.TransformationModelParams{XWeight: "1/x"},
	}})

	require.NoError(t, o.OptimizeSingleCalibrationCurve("A", points([]float64{1, 2, 3, 4}, []float64{100, 200, 300, 400})))
	assert.InDelta(t, 100.0, o.QuantitationMethods()[0].TransformationParams.Slope, 1e-9)
}

func TestChauvenet(t *testing.T) {
	assert.True(t, chauvenet([]float64{1, 1, 1, 1, 1, 1, 1, 50}, 7))
	assert.False(t, chauvenet([]float64{1, 2, 3, 4}, 0))
	assert.False(t, chauvenet([]float64{5, 5, 5}, 0))
	assert.False(t, chauvenet([]float64{1, 9}, 1))
}
