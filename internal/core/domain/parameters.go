package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParameterGroupAbsoluteQuantitation names the parameter group consumed by calibration.
const ParameterGroupAbsoluteQuantitation = "AbsoluteQuantitation"

// Parameter is one user override for a processing function
type Parameter struct {
	Function string `json:"function" csv:"function"`
	Name     string `json:"name" csv:"name"`
	Type     string `json:"type" csv:"type"`
	Value    string `json:"value" csv:"value"`
}

// Parameters are keyed by parameter group (function) name
type Parameters map[string][]Parameter

// Group returns the overrides of one parameter group.
func (p Parameters) Group(name string) ([]Parameter, error) {
	group, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingParameterGroup, name)
	}
	return group, nil
}

// Int converts the value of an "int" parameter.
func (p Parameter) Int() (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(p.Value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an int", ErrInvalidParameter, p.Name, p.Value)
	}
	return v, nil
}

// Float converts the value of a "float" parameter.
func (p Parameter) Float() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a float", ErrInvalidParameter, p.Name, p.Value)
	}
	return v, nil
}

// Bool converts the value of a "bool" parameter.
func (p Parameter) Bool() (bool, error) {
	v, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(p.Value)))
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q is not a bool", ErrInvalidParameter, p.Name, p.Value)
	}
	return v, nil
}

// String returns the value with surrounding quotes removed.
func (p Parameter) String() string {
	return strings.Trim(strings.TrimSpace(p.Value), `"'`)
}

// Filenames holds the input and output paths used by file-backed events
type Filenames struct {
	QuantitationMethodsCSVInput     string `json:"quantitation_methods_csv_i"`
	QuantitationMethodsCSVOutput    string `json:"quantitation_methods_csv_o"`
	StandardsConcentrationsCSVInput string `json:"standards_concentrations_csv_i"`
	ParametersCSVInput              string `json:"parameters_csv_i"`
}
