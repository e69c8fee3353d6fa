package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSequence() *Sequence {
	return &Sequence{
		Name: "run1",
		Samples: []*Sample{
			{MetaData: MetaData{SampleName: "s1", SampleType: SampleTypeStandard}},
			{MetaData: MetaData{SampleName: "s2", SampleType: SampleTypeUnknown}},
		},
		Segments: []*SequenceSegment{{Name: "seg1", SampleIndices: []int{0, 1}}},
	}
}

func TestSequence_Sample(t *testing.T) {
	s := newSequence()

	sample, err := s.Sample(1)
	require.NoError(t, err)
	assert.Equal(t, "s2", sample.MetaData.SampleName)

	_, err = s.Sample(2)
	assert.ErrorIs(t, err, ErrSampleIndexOutOfRange)
	_, err = s.Sample(-1)
	assert.ErrorIs(t, err, ErrSampleIndexOutOfRange)
}

func TestSequence_Validate(t *testing.T) {
	assert.NoError(t, newSequence().Validate())

	s := newSequence()
	s.Name = ""
	assert.ErrorIs(t, s.Validate(), ErrInvalidSequenceName)

	s = newSequence()
	s.Segments = append(s.Segments, &SequenceSegment{Name: "seg1"})
	assert.ErrorIs(t, s.Validate(), ErrSegmentNameConflict)

	s = newSequence()
	s.Segments[0].SampleIndices = []int{5}
	assert.ErrorIs(t, s.Validate(), ErrSampleIndexOutOfRange)

	s = newSequence()
	s.Samples[0].MetaData.SampleType = "Calibrant"
	assert.ErrorIs(t, s.Validate(), ErrInvalidSampleType)

	s = newSequence()
	s.Samples = append(s.Samples, nil)
	assert.ErrorIs(t, s.Validate(), ErrInvalidSample)
}

func TestSequence_Validate_NullEntries(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"null segment", `{"name":"x","samples":[],"segments":[null]}`, ErrInvalidSegment},
		{"null sample referenced by a segment", `{"name":"x","samples":[null],"segments":[{"name":"seg1","sample_indices":[0]}]}`, ErrInvalidSample},
		{"null sample only", `{"name":"x","samples":[null]}`, ErrInvalidSample},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Sequence
			require.NoError(t, json.Unmarshal([]byte(tt.body), &s))
			assert.NotPanics(t, func() {
				assert.ErrorIs(t, s.Validate(), tt.want)
			})
		})
	}
}

func TestSequence_Clone(t *testing.T) {
	s := newSequence()
	s.Samples[0].RawData.FeatureMap.Features = []Feature{{ComponentName: "A", MetaValues: map[string]float64{"peak_apex_int": 1}}}
	s.Segments[0].QuantitationMethods = []QuantitationMethod{{ComponentName: "A"}}
	s.Segments[0].ComponentsToConcentrations = map[string][]FeatureConcentration{
		"A": {{Feature: s.Samples[0].RawData.FeatureMap.Features[0], ActualConcentration: 1}},
	}
	s.Samples[0].RawData.QuantitationMethods = s.Segments[0].QuantitationMethods

	c := s.Clone()
	require.Equal(t, s, c)

	c.Segments[0].QuantitationMethods[0].NPoints = 9
	c.Samples[0].RawData.FeatureMap.Features[0].MetaValues["peak_apex_int"] = 42
	c.Segments[0].ComponentsToConcentrations["A"][0].Feature.MetaValues["peak_apex_int"] = 42
	c.Segments[0].SampleIndices[0] = 1

	assert.Equal(t, 0, s.Segments[0].QuantitationMethods[0].NPoints)
	assert.Equal(t, 1.0, s.Samples[0].RawData.FeatureMap.Features[0].MetaValues["peak_apex_int"])
	assert.Equal(t, 0, s.Segments[0].SampleIndices[0])
}

func TestParseSampleType(t *testing.T) {
	st, err := ParseSampleType(" double blank ")
	require.NoError(t, err)
	assert.Equal(t, SampleTypeDoubleBlank, st)

	_, err = ParseSampleType("reference")
	assert.ErrorIs(t, err, ErrInvalidSampleType)
}
