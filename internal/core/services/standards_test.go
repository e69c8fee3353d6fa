package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segment-quantitation-service/internal/core/domain"
	"segment-quantitation-service/internal/testutil"
)

func TestComponentFeatureConcentrations(t *testing.T) {
	featureMaps := []domain.FeatureMap{
		{SampleName: "std1", Features: []domain.Feature{
			{ComponentName: "A", MetaValues: map[string]float64{"peak_apex_int": 10}},
			{ComponentName: "IS-A", MetaValues: map[string]float64{"peak_apex_int": 5}},
		}},
		{SampleName: "std2", Features: []domain.Feature{
			{ComponentName: "B", MetaValues: map[string]float64{"peak_apex_int": 7}},
		}},
	}
	standards := []domain.StandardConcentration{
		{SampleName: "std1", ComponentName: "A", ISComponentName: "IS-A", ActualConcentration: 1, ISActualConcentration: 2, DilutionFactor: 1},
		{SampleName: "std2", ComponentName: "A", ActualConcentration: 2},
		{SampleName: "std3", ComponentName: "A", ActualConcentration: 3},
		{SampleName: "std2", ComponentName: "B", ActualConcentration: 4},
	}

	points := ComponentFeatureConcentrations(standards, featureMaps, "A")
	require.Len(t, points, 1)
	assert.Equal(t, "A", points[0].Feature.ComponentName)
	require.NotNil(t, points[0].ISFeature)
	assert.Equal(t, "IS-A", points[0].ISFeature.ComponentName)
	assert.Equal(t, 1.0, points[0].ActualConcentration)
	assert.Equal(t, 2.0, points[0].ISActualConcentration)

	assert.Len(t, ComponentFeatureConcentrations(standards, featureMaps, "B"), 1)
	assert.Empty(t, ComponentFeatureConcentrations(standards, featureMaps, "C"))
}

func TestPruneFeatureConcentrations(t *testing.T) {
	points := []domain.FeatureConcentration{
		{ActualConcentration: 1.0},
		{ActualConcentration: 0.0},
		{ActualConcentration: -3.0},
		{ActualConcentration: 2.0},
	}

	pruned := PruneFeatureConcentrations(points)
	require.Len(t, pruned, 2)
	for _, p := range pruned {
		assert.Greater(t, p.ActualConcentration, 0.0)
	}
	assert.Empty(t, PruneFeatureConcentrations(nil))
}

func TestBuildConcentrationTable(t *testing.T) {
	seq := testutil.CalibrationSequence()
	seg := seq.Segments[0]
	seg.QuantitationMethods = append(seg.QuantitationMethods, domain.QuantitationMethod{ComponentName: "missing"})

	table, err := BuildConcentrationTable(seg, seq)
	require.NoError(t, err)
	require.Contains(t, table, "A")
	assert.Len(t, table["A"], 2)
	assert.NotContains(t, table, "missing")
}

func TestBuildConcentrationTable_NoStandards(t *testing.T) {
	seq := testutil.CalibrationSequence()
	seg := seq.Segments[0]
	seg.SampleIndices = []int{3}

	table, err := BuildConcentrationTable(seg, seq)
	require.NoError(t, err)
	assert.Empty(t, table)
}
