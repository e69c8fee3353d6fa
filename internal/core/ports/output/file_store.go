package ports

import (
	"context"

	"segment-quantitation-service/internal/core/domain"
)

// QuantitationMethodStore persists quantitation methods by path
type QuantitationMethodStore interface {
	StoreQuantitationMethods(ctx context.Context, methods []domain.QuantitationMethod, path string) error
	LoadQuantitationMethods(ctx context.Context, path string) ([]domain.QuantitationMethod, error)
}

// StandardsConcentrationLoader reads the known concentrations of calibration standards
type StandardsConcentrationLoader interface {
	LoadStandardsConcentrations(ctx context.Context, path string) ([]domain.StandardConcentration, error)
}

// ParametersLoader reads user parameter overrides grouped by function
type ParametersLoader interface {
	LoadParameters(ctx context.Context, path string) (domain.Parameters, error)
}
