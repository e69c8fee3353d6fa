package domain

import (
	"time"

	"github.com/google/uuid"
)

// CalibrationRun records one fitted calibration curve
type CalibrationRun struct {
	ID                     uuid.UUID                 `json:"id"`
	CreatedAt              time.Time                 `json:"created_at"`
	SequenceName           string                    `json:"sequence_name"`
	SegmentName            string                    `json:"segment_name"`
	ComponentName          string                    `json:"component_name"`
	TransformationModel    string                    `json:"transformation_model"`
	TransformationParams   TransformationModelParams `json:"transformation_model_params"`
	CorrelationCoefficient float64                   `json:"correlation_coefficient"`
	NPoints                int                       `json:"n_points"`
	LLOQ                   float64                   `json:"lloq"`
	ULOQ                   float64                   `json:"uloq"`
}

// NewCalibrationRun snapshots a fitted method for the history table.
func NewCalibrationRun(sequenceName, segmentName string, method QuantitationMethod) *CalibrationRun {
	return &CalibrationRun{
		ID:                     uuid.New(),
		CreatedAt:              time.Now(),
		SequenceName:           sequenceName,
		SegmentName:            segmentName,
		ComponentName:          method.ComponentName,
		TransformationModel:    method.TransformationModel,
		TransformationParams:   method.TransformationParams,
		CorrelationCoefficient: method.CorrelationCoefficient,
		NPoints:                method.NPoints,
		LLOQ:                   method.LLOQ,
		ULOQ:                   method.ULOQ,
	}
}
