package domain

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// SegmentEvent is a processing step applied to a whole sequence segment
type SegmentEvent int

const (
	CalculateCalibration SegmentEvent = iota
	CalculateCarryover
	CalculateVariability
	StoreQuantitationMethods
	LoadQuantitationMethods
	StoreComponentsToConcentrations
	PlotCalibrators
)

var segmentEventNames = map[SegmentEvent]string{
	CalculateCalibration:            "calculate_calibration",
	CalculateCarryover:              "calculate_carryover",
	CalculateVariability:            "calculate_variability",
	StoreQuantitationMethods:        "store_quantitation_methods",
	LoadQuantitationMethods:         "load_quantitation_methods",
	StoreComponentsToConcentrations: "store_components_to_concentrations",
	PlotCalibrators:                 "plot_calibrators",
}

func (e SegmentEvent) String() string {
	if name, ok := segmentEventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("SegmentEvent(%d)", int(e))
}

// ParseSegmentEvent resolves a lowercase event name.
func ParseSegmentEvent(name string) (SegmentEvent, error) {
	for e, n := range segmentEventNames {
		if n == name {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSegmentEvent, name)
}

// InvalidSegmentEventNames returns every name that is not a recognised event, in input order.
func InvalidSegmentEventNames(names []string) []string {
	var invalid []string
	for _, name := range names {
		if _, err := ParseSegmentEvent(name); err != nil {
			invalid = append(invalid, name)
		}
	}
	return invalid
}

// CheckSegmentEventNames reports each unrecognised name and returns false if there was any.
func CheckSegmentEventNames(names []string) bool {
	invalid := InvalidSegmentEventNames(names)
	for _, name := range invalid {
		log.WithField("event", name).Warn("sequence segment processing event is not valid")
	}
	return len(invalid) == 0
}

// DefaultSegmentWorkflow returns the events run for a segment containing samples of the given type.
func DefaultSegmentWorkflow(sampleType SampleType) ([]SegmentEvent, error) {
	switch sampleType {
	case SampleTypeUnknown, SampleTypeBlank, SampleTypeDoubleBlank:
		return []SegmentEvent{}, nil
	case SampleTypeStandard:
		return []SegmentEvent{CalculateCalibration}, nil
	case SampleTypeQC:
		// CalculateVariability once implemented
		return []SegmentEvent{}, nil
	case SampleTypeSolvent:
		// CalculateCarryover once implemented
		return []SegmentEvent{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnhandledSampleType, sampleType)
	}
}
