package domain

import (
	"fmt"
	"strings"
	"time"
)

// ============================================================================
// Value Objects
// ============================================================================

// SampleType is the role a sample plays in a sequence
type SampleType string

const (
	SampleTypeUnknown     SampleType = "Unknown"
	SampleTypeStandard    SampleType = "Standard"
	SampleTypeQC          SampleType = "QC"
	SampleTypeBlank       SampleType = "Blank"
	SampleTypeDoubleBlank SampleType = "Double Blank"
	SampleTypeSolvent     SampleType = "Solvent"
)

// SampleTypes lists every known sample type in sequence-file order.
var SampleTypes = []SampleType{
	SampleTypeUnknown,
	SampleTypeStandard,
	SampleTypeQC,
	SampleTypeBlank,
	SampleTypeDoubleBlank,
	SampleTypeSolvent,
}

// IsValid checks if the sample type is one of the known roles
func (t SampleType) IsValid() bool {
	for _, known := range SampleTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseSampleType resolves a sample type name, ignoring case and surrounding spaces.
func ParseSampleType(s string) (SampleType, error) {
	trimmed := strings.TrimSpace(s)
	for _, known := range SampleTypes {
		if strings.EqualFold(trimmed, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSampleType, s)
}

// ============================================================================
// Entities
// ============================================================================

// MetaData describes a single injection in the sequence
type MetaData struct {
	SampleName          string     `json:"sample_name"`
	SampleGroupName     string     `json:"sample_group_name"`
	SequenceSegmentName string     `json:"sequence_segment_name"`
	SampleType          SampleType `json:"sample_type"`
	Filename            string     `json:"original_filename"`
	AcquisitionDateTime time.Time  `json:"acq_date_time"`
	InjectionVolume     float64    `json:"inj_volume"`
	DilutionFactor      float64    `json:"dilution_factor"`
}

// Feature is the measured signal of one component in one sample
type Feature struct {
	ComponentName      string             `json:"component_name"`
	ComponentGroupName string             `json:"component_group_name"`
	MetaValues         map[string]float64 `json:"meta_values"`
}

// Value returns the named meta value of the feature (e.g. "peak_apex_int").
func (f Feature) Value(name string) (float64, bool) {
	v, ok := f.MetaValues[name]
	return v, ok
}

// FeatureMap holds the features extracted from one sample
type FeatureMap struct {
	SampleName string    `json:"sample_name"`
	Features   []Feature `json:"features"`
}

// FindComponent returns the feature measured for the given component.
func (m FeatureMap) FindComponent(componentName string) (Feature, bool) {
	for _, f := range m.Features {
		if f.ComponentName == componentName {
			return f, true
		}
	}
	return Feature{}, false
}

// RawData is the per-sample processing state
type RawData struct {
	FeatureMap FeatureMap `json:"feature_map"`

	// QuantitationMethods is shared with the owning segment after calibration;
	// it must be replaced, never mutated element-wise.
	QuantitationMethods []QuantitationMethod `json:"quantitation_methods"`
}

// Sample pairs an injection's metadata with its raw data
type Sample struct {
	MetaData MetaData `json:"meta_data"`
	RawData  RawData  `json:"raw_data"`
}
