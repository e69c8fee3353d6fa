package ports

import (
	"context"

	"segment-quantitation-service/internal/core/domain"
)

type SequenceRepository interface {
	Create(ctx context.Context, sequence *domain.Sequence) error
	Get(ctx context.Context, name string) (*domain.Sequence, error)
	Replace(ctx context.Context, sequence *domain.Sequence) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]*domain.Sequence, error)
}

type CalibrationRunRepository interface {
	Create(ctx context.Context, run *domain.CalibrationRun) error
	ListBySegment(ctx context.Context, sequenceName, segmentName string) ([]*domain.CalibrationRun, error)
}
