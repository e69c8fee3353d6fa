package domain

import "fmt"

// SequenceSegment groups samples that share one calibration context
type SequenceSegment struct {
	Name                       string                            `json:"name"`
	SampleIndices              []int                             `json:"sample_indices"`
	QuantitationMethods        []QuantitationMethod              `json:"quantitation_methods"`
	StandardsConcentrations    []StandardConcentration           `json:"standards_concentrations"`
	ComponentsToConcentrations map[string][]FeatureConcentration `json:"components_to_concentrations"`
}

// Sequence is an ordered run of injections split into segments
type Sequence struct {
	Name     string             `json:"name"`
	Samples  []*Sample          `json:"samples"`
	Segments []*SequenceSegment `json:"segments"`
}

// Sample returns the sample at index.
func (s *Sequence) Sample(index int) (*Sample, error) {
	if index < 0 || index >= len(s.Samples) {
		return nil, fmt.Errorf("%w: %d (sequence has %d samples)", ErrSampleIndexOutOfRange, index, len(s.Samples))
	}
	return s.Samples[index], nil
}

// Segment returns the segment with the given name.
func (s *Sequence) Segment(name string) (*SequenceSegment, error) {
	for _, seg := range s.Segments {
		if seg.Name == name {
			return seg, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSegmentNotFound, name)
}

// Validate checks the sequence is internally consistent.
func (s *Sequence) Validate() error {
	if s.Name == "" {
		return ErrInvalidSequenceName
	}
	for i, sample := range s.Samples {
		if sample == nil {
			return fmt.Errorf("sample %d: %w", i, ErrInvalidSample)
		}
		if !sample.MetaData.SampleType.IsValid() {
			return fmt.Errorf("sample %q: %w: %q", sample.MetaData.SampleName, ErrInvalidSampleType, sample.MetaData.SampleType)
		}
	}
	seen := make(map[string]bool, len(s.Segments))
	for i, seg := range s.Segments {
		if seg == nil {
			return fmt.Errorf("segment %d: %w", i, ErrInvalidSegment)
		}
		if seg.Name == "" {
			return ErrInvalidSegmentName
		}
		if seen[seg.Name] {
			return fmt.Errorf("%w: %q", ErrSegmentNameConflict, seg.Name)
		}
		seen[seg.Name] = true
		for _, idx := range seg.SampleIndices {
			if _, err := s.Sample(idx); err != nil {
				return fmt.Errorf("segment %q: %w", seg.Name, err)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the sequence that shares no slices or maps with s.
func (s *Sequence) Clone() *Sequence {
	out := &Sequence{Name: s.Name}
	if s.Samples != nil {
		out.Samples = make([]*Sample, len(s.Samples))
		for i, sample := range s.Samples {
			if sample != nil {
				out.Samples[i] = sample.clone()
			}
		}
	}
	if s.Segments != nil {
		out.Segments = make([]*SequenceSegment, len(s.Segments))
		for i, seg := range s.Segments {
			if seg != nil {
				out.Segments[i] = seg.Clone()
			}
		}
	}
	return out
}

// Clone returns a deep copy of the segment.
func (seg *SequenceSegment) Clone() *SequenceSegment {
	out := &SequenceSegment{
		Name:                    seg.Name,
		SampleIndices:           append([]int(nil), seg.SampleIndices...),
		QuantitationMethods:     CloneQuantitationMethods(seg.QuantitationMethods),
		StandardsConcentrations: append([]StandardConcentration(nil), seg.StandardsConcentrations...),
	}
	if seg.ComponentsToConcentrations != nil {
		out.ComponentsToConcentrations = make(map[string][]FeatureConcentration, len(seg.ComponentsToConcentrations))
		for component, points := range seg.ComponentsToConcentrations {
			copied := make([]FeatureConcentration, len(points))
			for i, p := range points {
				copied[i] = p.clone()
			}
			out.ComponentsToConcentrations[component] = copied
		}
	}
	return out
}

func (s *Sample) clone() *Sample {
	features := make([]Feature, len(s.RawData.FeatureMap.Features))
	for i, f := range s.RawData.FeatureMap.Features {
		features[i] = f.clone()
	}
	if s.RawData.FeatureMap.Features == nil {
		features = nil
	}
	return &Sample{
		MetaData: s.MetaData,
		RawData: RawData{
			FeatureMap:          FeatureMap{SampleName: s.RawData.FeatureMap.SampleName, Features: features},
			QuantitationMethods: CloneQuantitationMethods(s.RawData.QuantitationMethods),
		},
	}
}

func (f Feature) clone() Feature {
	if f.MetaValues != nil {
		values := make(map[string]float64, len(f.MetaValues))
		for k, v := range f.MetaValues {
			values[k] = v
		}
		f.MetaValues = values
	}
	return f
}

func (p FeatureConcentration) clone() FeatureConcentration {
	p.Feature = p.Feature.clone()
	if p.ISFeature != nil {
		is := p.ISFeature.clone()
		p.ISFeature = &is
	}
	return p
}
