package services

import (
	"segment-quantitation-service/internal/core/domain"
)

// standardsFeatureMaps collects the feature maps of the given standard samples.
// Feature maps without a sample name take the name from the sample metadata.
func standardsFeatureMaps(sequence *domain.Sequence, indices []int) ([]domain.FeatureMap, error) {
	featureMaps := make([]domain.FeatureMap, 0, len(indices))
	for _, index := range indices {
		sample, err := sequence.Sample(index)
		if err != nil {
			return nil, err
		}
		fm := sample.RawData.FeatureMap
		if fm.SampleName == "" {
			fm.SampleName = sample.MetaData.SampleName
		}
		featureMaps = append(featureMaps, fm)
	}
	return featureMaps, nil
}

// ComponentFeatureConcentrations matches the known standards concentrations of one component
// to the features measured in the standard samples. A row yields a pair only when its sample
// has a feature for the component; the internal standard feature is attached when present.
func ComponentFeatureConcentrations(
	standards []domain.StandardConcentration,
	featureMaps []domain.FeatureMap,
	componentName string,
) []domain.FeatureConcentration {
	points := []domain.FeatureConcentration{}
	for _, row := range standards {
		if row.ComponentName != componentName {
			continue
		}
		for _, fm := range featureMaps {
			if fm.SampleName != row.SampleName {
				continue
			}
			feature, ok := fm.FindComponent(row.ComponentName)
			if !ok {
				continue
			}
			point := domain.FeatureConcentration{
				Feature:               feature,
				ActualConcentration:   row.ActualConcentration,
				ISActualConcentration: row.ISActualConcentration,
				ConcentrationUnits:    row.ConcentrationUnits,
				DilutionFactor:        row.DilutionFactor,
			}
			if row.ISComponentName != "" {
				if isFeature, ok := fm.FindComponent(row.ISComponentName); ok {
					point.ISFeature = &isFeature
				}
			}
			points = append(points, point)
		}
	}
	return points
}

// PruneFeatureConcentrations drops points whose actual concentration is not strictly positive.
func PruneFeatureConcentrations(points []domain.FeatureConcentration) []domain.FeatureConcentration {
	pruned := make([]domain.FeatureConcentration, 0, len(points))
	for _, p := range points {
		if p.ActualConcentration > 0.0 {
			pruned = append(pruned, p)
		}
	}
	return pruned
}

// BuildConcentrationTable maps every component with a quantitation method on the segment to its
// pruned calibration points. Components without surviving points are left out. A segment
// without standards yields an empty table.
func BuildConcentrationTable(segment *domain.SequenceSegment, sequence *domain.Sequence) (map[string][]domain.FeatureConcentration, error) {
	indices, err := SampleIndicesBySampleType(segment, sequence, domain.SampleTypeStandard)
	if err != nil {
		return nil, err
	}
	table := make(map[string][]domain.FeatureConcentration)
	if len(indices) == 0 {
		return table, nil
	}

	featureMaps, err := standardsFeatureMaps(sequence, indices)
	if err != nil {
		return nil, err
	}

	for _, method := range segment.QuantitationMethods {
		pruned := PruneFeatureConcentrations(
			ComponentFeatureConcentrations(segment.StandardsConcentrations, featureMaps, method.ComponentName),
		)
		if len(pruned) == 0 {
			continue
		}
		table[method.ComponentName] = pruned
	}
	return table, nil
}
