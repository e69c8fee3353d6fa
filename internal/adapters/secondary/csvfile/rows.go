package csvfile

import "segment-quantitation-service/internal/core/domain"

type quantitationMethodRow struct {
	ISName                 string  `csv:"IS_name"`
	ComponentName          string  `csv:"component_name"`
	FeatureName            string  `csv:"feature_name"`
	ConcentrationUnits     string  `csv:"concentration_units"`
	LLOD                   float64 `csv:"llod"`
	ULOD                   float64 `csv:"ulod"`
	LLOQ                   float64 `csv:"lloq"`
	ULOQ                   float64 `csv:"uloq"`
	CorrelationCoefficient float64 `csv:"correlation_coefficient"`
	NPoints                int     `csv:"n_points"`
	TransformationModel    string  `csv:"transformation_model"`
	Slope                  float64 `csv:"transformation_model_param_slope"`
	Intercept              float64 `csv:"transformation_model_param_intercept"`
	XWeight                string  `csv:"transformation_model_param_x_weight"`
	YWeight                string  `csv:"transformation_model_param_y_weight"`
	XDatumMin              float64 `csv:"transformation_model_param_x_datum_min"`
	XDatumMax              float64 `csv:"transformation_model_param_x_datum_max"`
	YDatumMin              float64 `csv:"transformation_model_param_y_datum_min"`
	YDatumMax              float64 `csv:"transformation_model_param_y_datum_max"`
}

func toMethodRow(m domain.QuantitationMethod) *quantitationMethodRow {
	return &quantitationMethodRow{
		ISName:                 m.ISName,
		ComponentName:          m.ComponentName,
		FeatureName:            m.FeatureName,
		ConcentrationUnits:     m.ConcentrationUnits,
		LLOD:                   m.LLOD,
		ULOD:                   m.ULOD,
		LLOQ:                   m.LLOQ,
		ULOQ:                   m.ULOQ,
		CorrelationCoefficient: m.CorrelationCoefficient,
		NPoints:                m.NPoints,
		TransformationModel:    m.TransformationModel,
		Slope:                  m.TransformationParams.Slope,
		Intercept:              m.TransformationParams.Intercept,
		XWeight:                m.TransformationParams.XWeight,
		YWeight:                m.TransformationParams.YWeight,
		XDatumMin:              m.TransformationParams.XDatumMin,
		XDatumMax:              m.TransformationParams.XDatumMax,
		YDatumMin:              m.TransformationParams.YDatumMin,
		YDatumMax:              m.TransformationParams.YDatumMax,
	}
}

func (r *quantitationMethodRow) toDomain() domain.QuantitationMethod {
	return domain.QuantitationMethod{
		ComponentName:          r.ComponentName,
		FeatureName:            r.FeatureName,
		ISName:                 r.ISName,
		ConcentrationUnits:     r.ConcentrationUnits,
		LLOD:                   r.LLOD,
		ULOD:                   r.ULOD,
		LLOQ:                   r.LLOQ,
		ULOQ:                   r.ULOQ,
		CorrelationCoefficient: r.CorrelationCoefficient,
		NPoints:                r.NPoints,
		TransformationModel:    r.TransformationModel,
		TransformationParams: domain.TransformationModelParams{
			Slope:     r.Slope,
			Intercept: r.Intercept,
			XWeight:   r.XWeight,
			YWeight:   r.YWeight,
			XDatumMin: r.XDatumMin,
			XDatumMax: r.XDatumMax,
			YDatumMin: r.YDatumMin,
			YDatumMax: r.YDatumMax,
		},
	}
}

type standardConcentrationRow struct {
	SampleName            string  `csv:"sample_name"`
	ComponentName         string  `csv:"component_name"`
	ISComponentName       string  `csv:"IS_component_name"`
	ActualConcentration   float64 `csv:"actual_concentration"`
	ISActualConcentration float64 `csv:"IS_actual_concentration"`
	ConcentrationUnits    string  `csv:"concentration_units"`
	DilutionFactor        float64 `csv:"dilution_factor"`
}
