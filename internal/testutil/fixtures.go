package testutil

import (
	"fmt"

	"segment-quantitation-service/internal/core/domain"
)

// NewSample builds a sample whose feature map holds one feature per component with the given
// peak_apex_int.
func NewSample(name string, sampleType domain.SampleType, intensities map[string]float64) *domain.Sample {
	features := make([]domain.Feature, 0, len(intensities))
	for component, v := range intensities {
		features = append(features, domain.Feature{
			ComponentName: component,
			MetaValues:    map[string]float64{"peak_apex_int": v},
		})
	}
	return &domain.Sample{
		MetaData: domain.MetaData{SampleName: name, SampleType: sampleType},
		RawData:  domain.RawData{FeatureMap: domain.FeatureMap{SampleName: name, Features: features}},
	}
}

// CalibrationSequence builds a single-segment sequence with three standards and one unknown.
// Component "A" has concentrations 1.0, 2.0 and 0.0 in the three standards.
func CalibrationSequence() *domain.Sequence {
	samples := []*domain.Sample{
		NewSample("std1", domain.SampleTypeStandard, map[string]float64{"A": 100}),
		NewSample("std2", domain.SampleTypeStandard, map[string]float64{"A": 200}),
		NewSample("std3", domain.SampleTypeStandard, map[string]float64{"A": 5}),
		NewSample("unk1", domain.SampleTypeUnknown, map[string]float64{"A": 150}),
	}
	concentrations := []float64{1.0, 2.0, 0.0}
	standards := make([]domain.StandardConcentration, 0, len(concentrations))
	for i, c := range concentrations {
		standards = append(standards, domain.StandardConcentration{
			SampleName:            fmt.Sprintf("std%d", i+1),
			ComponentName:         "A",
			ActualConcentration:   c,
			ISActualConcentration: 1.0,
			ConcentrationUnits:    "uM",
			DilutionFactor:        1.0,
		})
	}
	segment := &domain.SequenceSegment{
		Name:          "seg1",
		SampleIndices: []int{0, 1, 2, 3},
		QuantitationMethods: []domain.QuantitationMethod{
			{ComponentName: "A", FeatureName: "peak_apex_int", ConcentrationUnits: "uM", TransformationModel: domain.TransformationModelLinear},
		},
		StandardsConcentrations:    standards,
		ComponentsToConcentrations: map[string][]domain.FeatureConcentration{},
	}
	return &domain.Sequence{
		Name:     "run1",
		Samples:  samples,
		Segments: []*domain.SequenceSegment{segment},
	}
}

// AbsoluteQuantitationParameters is a minimal non-empty parameter bundle.
func AbsoluteQuantitationParameters() domain.Parameters {
	return domain.Parameters{
		domain.ParameterGroupAbsoluteQuantitation: {
			{Function: domain.ParameterGroupAbsoluteQuantitation, Name: "min_points", Type: "int", Value: "2"},
		},
	}
}
