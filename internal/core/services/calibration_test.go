package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"segment-quantitation-service/internal/core/domain"
	"segment-quantitation-service/internal/core/ports/output"
	"segment-quantitation-service/internal/testutil"
)

func passthroughService(opt *testutil.PassthroughOptimizer) *CalibrationService {
	return NewCalibrationService(func() ports.CalibrationOptimizer { return opt })
}

func aqParams() []domain.Parameter {
	return testutil.AbsoluteQuantitationParameters()[domain.ParameterGroupAbsoluteQuantitation]
}

func TestOptimizeCalibrationCurves_PrunesNonPositiveConcentrations(t *testing.T) {
	seq := testutil.CalibrationSequence()
	seg := seq.Segments[0]
	opt := testutil.NewPassthroughOptimizer()

	err := passthroughService(opt).OptimizeCalibrationCurves(seg, seq, aqParams())
	require.NoError(t, err)

	require.Len(t, opt.Calls, 1)
	points := opt.Calls["A"]
	require.Len(t, points, 2)
	for _, p := range points {
		assert.Greater(t, p.ActualConcentration, 0.0)
	}
	assert.ElementsMatch(t, []float64{1.0, 2.0}, []float64{points[0].ActualConcentration, points[1].ActualConcentration})

	assert.Equal(t, points, seg.ComponentsToConcentrations["A"])
	require.Len(t, seg.QuantitationMethods, 1)
	assert.Equal(t, 2, seg.QuantitationMethods[0].NPoints)
}

func TestOptimizeCalibrationCurves_NoStandardsLeavesSegmentUntouched(t *testing.T) {
	seq := testutil.CalibrationSequence()
	seg := seq.Segments[0]
	seg.SampleIndices = []int{3}
	previous := map[string][]domain.FeatureConcentration{"A": {{ActualConcentration: 9}}}
	seg.ComponentsToConcentrations = previous
	methods := seg.QuantitationMethods

	opt := new(testutil.MockCalibrationOptimizer)
	svc := NewCalibrationService(func() ports.CalibrationOptimizer { return opt })

	err := svc.OptimizeCalibrationCurves(seg, seq, aqParams())
	require.NoError(t, err)
	assert.Equal(t, previous, seg.ComponentsToConcentrations)
	assert.Equal(t, methods, seg.QuantitationMethods)
	opt.AssertNotCalled(t, "SetParameters", mock.Anything)
}

func TestOptimizeCalibrationCurves_EmptyParametersIsNoop(t *testing.T) {
	seq := testutil.CalibrationSequence()
	seg := seq.Segments[0]

	opt := new(testutil.MockCalibrationOptimizer)
	svc := NewCalibrationService(func() ports.CalibrationOptimizer { return opt })

	err := svc.OptimizeCalibrationCurves(seg, seq, nil)
	require.NoError(t, err)
	assert.Empty(t, seg.ComponentsToConcentrations)
	opt.AssertNotCalled(t, "SetParameters", mock.Anything)
}

func TestOptimizeCalibrationCurves_SkippedComponentKeepsMethod(t *testing.T) {
	seq := testutil.CalibrationSequence()
	seg := seq.Segments[0]
	seg.QuantitationMethods = append(seg.QuantitationMethods, domain.QuantitationMethod{
		ComponentName: "B", CorrelationCoefficient: 0.97, NPoints: 6,
	})
	seg.ComponentsToConcentrations = map[string][]domain.FeatureConcentration{"B": {{ActualConcentration: 1}}}
	opt := testutil.NewPassthroughOptimizer()

	err := passthroughService(opt).OptimizeCalibrationCurves(seg, seq, aqParams())
	require.NoError(t, err)

	assert.NotContains(t, opt.Calls, "B")
	assert.NotContains(t, seg.ComponentsToConcentrations, "B")
	require.Len(t, seg.QuantitationMethods, 2)
	assert.Equal(t, "B", seg.QuantitationMethods[1].ComponentName)
	assert.Equal(t, 6, seg.QuantitationMethods[1].NPoints)
	assert.Equal(t, 0.97, seg.QuantitationMethods[1].CorrelationCoefficient)
}

func TestOptimizeCalibrationCurves_FailureDoesNotStopOtherComponents(t *testing.T) {
	seq := testutil.CalibrationSequence()
	seg := seq.Segments[0]
	seq.Samples[0].RawData.FeatureMap.Features = append(seq.Samples[0].RawData.FeatureMap.Features,
		domain.Feature{ComponentName: "B", MetaValues: map[string]float64{"peak_apex_int": 3}})
	seg.StandardsConcentrations = append(seg.StandardsConcentrations,
		domain.StandardConcentration{SampleName: "std1", ComponentName: "B", ActualConcentration: 4})
	seg.QuantitationMethods = []domain.QuantitationMethod{{ComponentName: "A"}, {ComponentName: "B"}}

	fitErr := errors.New("singular fit")
	opt := testutil.NewPassthroughOptimizer()
	opt.Fail["A"] = fitErr

	err := passthroughService(opt).OptimizeCalibrationCurves(seg, seq, aqParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCalibrationFailed)
	assert.ErrorIs(t, err, fitErr)
	var failure *domain.CalibrationFailure
	require.ErrorAs(t, err, &failure)
	assert.True(t, failure.Failed("A"))
	assert.False(t, failure.Failed("B"))

	assert.Contains(t, opt.Calls, "B")
	assert.Contains(t, seg.ComponentsToConcentrations, "A")
	assert.Contains(t, seg.ComponentsToConcentrations, "B")
}

func TestOptimizeCalibrationCurves_SetParametersError(t *testing.T) {
	seq := testutil.CalibrationSequence()
	seg := seq.Segments[0]

	opt := new(testutil.MockCalibrationOptimizer)
	opt.On("SetParameters", mock.Anything).Return(domain.ErrInvalidParameter)
	svc := NewCalibrationService(func() ports.CalibrationOptimizer { return opt })

	err := svc.OptimizeCalibrationCurves(seg, seq, aqParams())
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	assert.Empty(t, seg.ComponentsToConcentrations)
}

func TestOptimizeCalibrationCurves_SeedsOptimizerWithSegmentMethods(t *testing.T) {
	seq := testutil.CalibrationSequence()
	seg := seq.Segments[0]
	fitted := []domain.QuantitationMethod{{ComponentName: "A", CorrelationCoefficient: 0.99, NPoints: 2}}

	opt := new(testutil.MockCalibrationOptimizer)
	opt.On("SetParameters", aqParams()).Return(nil)
	opt.On("SetQuantitationMethods", seg.QuantitationMethods).Return()
	opt.On("OptimizeSingleCalibrationCurve", "A", mock.MatchedBy(func(p []domain.FeatureConcentration) bool {
		return len(p) == 2
	})).Return(nil).Once()
	opt.On("QuantitationMethods").Return(fitted)
	svc := NewCalibrationService(func() ports.CalibrationOptimizer { return opt })

	require.NoError(t, svc.OptimizeCalibrationCurves(seg, seq, aqParams()))
	assert.Equal(t, fitted, seg.QuantitationMethods)
	opt.AssertExpectations(t)
}
