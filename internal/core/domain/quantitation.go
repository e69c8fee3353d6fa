package domain

// TransformationModelLinear is the only calibration model the fitter supports.
const TransformationModelLinear = "linear"

// TransformationModelParams are the coefficients and fitting hints of a calibration curve
type TransformationModelParams struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	XWeight   string  `json:"x_weight"`
	YWeight   string  `json:"y_weight"`
	XDatumMin float64 `json:"x_datum_min"`
	XDatumMax float64 `json:"x_datum_max"`
	YDatumMin float64 `json:"y_datum_min"`
	YDatumMax float64 `json:"y_datum_max"`
}

// QuantitationMethod is the calibration model for one component
type QuantitationMethod struct {
	ComponentName          string                    `json:"component_name"`
	FeatureName            string                    `json:"feature_name"`
	ISName                 string                    `json:"IS_name"`
	ConcentrationUnits     string                    `json:"concentration_units"`
	LLOD                   float64                   `json:"llod"`
	ULOD                   float64                   `json:"ulod"`
	LLOQ                   float64                   `json:"lloq"`
	ULOQ                   float64                   `json:"uloq"`
	CorrelationCoefficient float64                   `json:"correlation_coefficient"`
	NPoints                int                       `json:"n_points"`
	TransformationModel    string                    `json:"transformation_model"`
	TransformationParams   TransformationModelParams `json:"transformation_model_params"`
}

// StandardConcentration is one row of the known standards concentration table
type StandardConcentration struct {
	SampleName            string  `json:"sample_name"`
	ComponentName         string  `json:"component_name"`
	ISComponentName       string  `json:"IS_component_name"`
	ActualConcentration   float64 `json:"actual_concentration"`
	ISActualConcentration float64 `json:"IS_actual_concentration"`
	ConcentrationUnits    string  `json:"concentration_units"`
	DilutionFactor        float64 `json:"dilution_factor"`
}

// FeatureConcentration ties a measured standard feature to its known concentration
type FeatureConcentration struct {
	Feature               Feature  `json:"feature"`
	ISFeature             *Feature `json:"IS_feature,omitempty"`
	ActualConcentration   float64  `json:"actual_concentration"`
	ISActualConcentration float64  `json:"IS_actual_concentration"`
	ConcentrationUnits    string   `json:"concentration_units"`
	DilutionFactor        float64  `json:"dilution_factor"`
}

// CloneQuantitationMethods returns a copy with its own backing array.
func CloneQuantitationMethods(methods []QuantitationMethod) []QuantitationMethod {
	if methods == nil {
		return nil
	}
	out := make([]QuantitationMethod, len(methods))
	copy(out, methods)
	return out
}
