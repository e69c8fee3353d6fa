package services

import (
	"segment-quantitation-service/internal/core/domain"
)

// SampleIndicesBySampleType returns the segment indices whose sample has the given type,
// preserving segment order.
func SampleIndicesBySampleType(segment *domain.SequenceSegment, sequence *domain.Sequence, sampleType domain.SampleType) ([]int, error) {
	indices := []int{}
	for _, index := range segment.SampleIndices {
		sample, err := sequence.Sample(index)
		if err != nil {
			return nil, err
		}
		if sample.MetaData.SampleType == sampleType {
			indices = append(indices, index)
		}
	}
	return indices, nil
}
