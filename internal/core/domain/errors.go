package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================================
// Lookup Errors
// ============================================================================

var (
	ErrSampleIndexOutOfRange = errors.New("sample index out of range")
	ErrSequenceNotFound      = errors.New("sequence not found")
	ErrSegmentNotFound       = errors.New("sequence segment not found")
)

// ============================================================================
// Validation Errors
// ============================================================================

var (
	ErrInvalidSequenceName   = errors.New("sequence name is required")
	ErrInvalidSegmentName    = errors.New("sequence segment name is required")
	ErrInvalidSample         = errors.New("sample is required")
	ErrInvalidSegment        = errors.New("sequence segment is required")
	ErrInvalidSampleType     = errors.New("invalid sample type")
	ErrInvalidSegmentEvent   = errors.New("sequence segment processing event was not recognized")
	ErrMissingParameterGroup = errors.New("parameter group is missing")
	ErrInvalidParameter      = errors.New("invalid parameter")
	ErrInvalidCSV            = errors.New("invalid csv file")
)

// Conflict errors
var (
	ErrSequenceNameConflict = errors.New("sequence with this name already exists")
	ErrSegmentNameConflict  = errors.New("segment with this name already exists in the sequence")
)

// ============================================================================
// Contract Violations
// ============================================================================

var (
	ErrUnhandledSampleType = errors.New("sample type case not handled")
)

// ============================================================================
// Calibration Errors
// ============================================================================

var (
	ErrCalibrationFailed    = errors.New("calibration curve optimization failed")
	ErrUnknownComponent     = errors.New("component has no quantitation method")
	ErrUnsupportedModel     = errors.New("unsupported transformation model")
	ErrInsufficientStandard = errors.New("not enough calibration points")
)

// ComponentError is the fitting error of one component
type ComponentError struct {
	Component string
	Err       error
}

// CalibrationFailure collects the components whose curve could not be fitted in one pass.
// It matches ErrCalibrationFailed and every component error with errors.Is.
type CalibrationFailure struct {
	Errors []ComponentError
}

func (f *CalibrationFailure) Add(component string, err error) {
	f.Errors = append(f.Errors, ComponentError{Component: component, Err: err})
}

// Failed reports whether the component's curve could not be fitted.
func (f *CalibrationFailure) Failed(component string) bool {
	for _, e := range f.Errors {
		if e.Component == component {
			return true
		}
	}
	return false
}

func (f *CalibrationFailure) Error() string {
	parts := make([]string, 0, len(f.Errors))
	for _, e := range f.Errors {
		parts = append(parts, fmt.Sprintf("component %q: %v", e.Component, e.Err))
	}
	return ErrCalibrationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (f *CalibrationFailure) Unwrap() []error {
	errs := make([]error, 0, len(f.Errors)+1)
	errs = append(errs, ErrCalibrationFailed)
	for _, e := range f.Errors {
		errs = append(errs, e.Err)
	}
	return errs
}
