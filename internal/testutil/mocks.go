package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"segment-quantitation-service/internal/core/domain"
)

// MockCalibrationOptimizer is a mock of ports.CalibrationOptimizer.
type MockCalibrationOptimizer struct {
	mock.Mock
}

func (m *MockCalibrationOptimizer) SetParameters(params []domain.Parameter) error {
	args := m.Called(params)
	return args.Error(0)
}

func (m *MockCalibrationOptimizer) SetQuantitationMethods(methods []domain.QuantitationMethod) {
	m.Called(methods)
}

func (m *MockCalibrationOptimizer) OptimizeSingleCalibrationCurve(componentName string, points []domain.FeatureConcentration) error {
	args := m.Called(componentName, points)
	return args.Error(0)
}

func (m *MockCalibrationOptimizer) QuantitationMethods() []domain.QuantitationMethod {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.QuantitationMethod)
}

// PassthroughOptimizer returns the seeded methods unchanged and records each optimize call.
type PassthroughOptimizer struct {
	Params  []domain.Parameter
	Methods []domain.QuantitationMethod
	Calls   map[string][]domain.FeatureConcentration
	Fail    map[string]error
}

func NewPassthroughOptimizer() *PassthroughOptimizer {
	return &PassthroughOptimizer{
		Calls: make(map[string][]domain.FeatureConcentration),
		Fail:  make(map[string]error),
	}
}

func (o *PassthroughOptimizer) SetParameters(params []domain.Parameter) error {
	o.Params = params
	return nil
}

func (o *PassthroughOptimizer) SetQuantitationMethods(methods []domain.QuantitationMethod) {
	o.Methods = domain.CloneQuantitationMethods(methods)
}

func (o *PassthroughOptimizer) OptimizeSingleCalibrationCurve(componentName string, points []domain.FeatureConcentration) error {
	o.Calls[componentName] = points
	for i := range o.Methods {
		if o.Methods[i].ComponentName == componentName {
			o.Methods[i].NPoints = len(points)
		}
	}
	return o.Fail[componentName]
}

func (o *PassthroughOptimizer) QuantitationMethods() []domain.QuantitationMethod {
	return o.Methods
}

// MockQuantitationMethodStore is a mock of ports.QuantitationMethodStore.
type MockQuantitationMethodStore struct {
	mock.Mock
}

func (m *MockQuantitationMethodStore) StoreQuantitationMethods(ctx context.Context, methods []domain.QuantitationMethod, path string) error {
	args := m.Called(ctx, methods, path)
	return args.Error(0)
}

func (m *MockQuantitationMethodStore) LoadQuantitationMethods(ctx context.Context, path string) ([]domain.QuantitationMethod, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuantitationMethod), args.Error(1)
}

// MockStandardsConcentrationLoader is a mock of ports.StandardsConcentrationLoader.
type MockStandardsConcentrationLoader struct {
	mock.Mock
}

func (m *MockStandardsConcentrationLoader) LoadStandardsConcentrations(ctx context.Context, path string) ([]domain.StandardConcentration, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StandardConcentration), args.Error(1)
}

// MockCalibrationRunRepo is a mock of ports.CalibrationRunRepository.
type MockCalibrationRunRepo struct {
	mock.Mock
}

func (m *MockCalibrationRunRepo) Create(ctx context.Context, run *domain.CalibrationRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockCalibrationRunRepo) ListBySegment(ctx context.Context, sequenceName, segmentName string) ([]*domain.CalibrationRun, error) {
	args := m.Called(ctx, sequenceName, segmentName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CalibrationRun), args.Error(1)
}
