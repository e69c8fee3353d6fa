package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"segment-quantitation-service/internal/core/domain"
	"segment-quantitation-service/internal/core/ports/output"
)

const calibrationRunSchema = `
	CREATE TABLE IF NOT EXISTS calibration_run (
		id                      UUID PRIMARY KEY,
		created_at              TIMESTAMPTZ NOT NULL,
		sequence_name           TEXT NOT NULL,
		segment_name            TEXT NOT NULL,
		component_name          TEXT NOT NULL,
		transformation_model    TEXT NOT NULL,
		transformation_params   JSONB NOT NULL,
		correlation_coefficient DOUBLE PRECISION NOT NULL,
		n_points                INTEGER NOT NULL,
		lloq                    DOUBLE PRECISION NOT NULL,
		uloq                    DOUBLE PRECISION NOT NULL
	);
	CREATE INDEX IF NOT EXISTS calibration_run_segment_idx
		ON calibration_run (sequence_name, segment_name, created_at DESC);
`

type calibrationRunRepo struct {
	pool *pgxpool.Pool
}

func NewCalibrationRunRepository(pool *pgxpool.Pool) ports.CalibrationRunRepository {
	return &calibrationRunRepo{pool: pool}
}

// EnsureCalibrationRunSchema creates the calibration history table when missing.
func EnsureCalibrationRunSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, calibrationRunSchema); err != nil {
		return fmt.Errorf("create calibration_run schema: %w", err)
	}
	return nil
}

func (r *calibrationRunRepo) Create(ctx context.Context, run *domain.CalibrationRun) error {
	paramsJSON, err := json.Marshal(run.TransformationParams)
	if err != nil {
		return fmt.Errorf("marshal transformation params: %w", err)
	}

	query := `
		INSERT INTO calibration_run
			(id, created_at, sequence_name, segment_name, component_name,
			 transformation_model, transformation_params, correlation_coefficient,
			 n_points, lloq, uloq)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`
	_, err = r.pool.Exec(ctx, query,
		run.ID, run.CreatedAt, run.SequenceName, run.SegmentName, run.ComponentName,
		run.TransformationModel, paramsJSON, run.CorrelationCoefficient,
		run.NPoints, run.LLOQ, run.ULOQ,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("calibration run %s already recorded: %w", run.ID, err)
		}
		return fmt.Errorf("create calibration run: %w", err)
	}
	return nil
}

func (r *calibrationRunRepo) ListBySegment(ctx context.Context, sequenceName, segmentName string) ([]*domain.CalibrationRun, error) {
	query := `
		SELECT id, created_at, sequence_name, segment_name, component_name,
			   transformation_model, transformation_params, correlation_coefficient,
			   n_points, lloq, uloq
		FROM calibration_run
		WHERE sequence_name = $1 AND segment_name = $2
		ORDER BY created_at DESC, component_name
	`
	rows, err := r.pool.Query(ctx, query, sequenceName, segmentName)
	if err != nil {
		return nil, fmt.Errorf("list calibration runs: %w", err)
	}
	defer rows.Close()

	runs := []*domain.CalibrationRun{}
	for rows.Next() {
		run, err := scanCalibrationRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calibration run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calibration runs: %w", err)
	}
	return runs, nil
}

func scanCalibrationRun(row pgx.Row) (*domain.CalibrationRun, error) {
	var run domain.CalibrationRun
	var paramsJSON []byte
	err := row.Scan(
		&run.ID, &run.CreatedAt, &run.SequenceName, &run.SegmentName, &run.ComponentName,
		&run.TransformationModel, &paramsJSON, &run.CorrelationCoefficient,
		&run.NPoints, &run.LLOQ, &run.ULOQ,
	)
	if err != nil {
		return nil, err
	}
	if len(paramsJSON) > 0 {
		if err := json.Unmarshal(paramsJSON, &run.TransformationParams); err != nil {
			return nil, fmt.Errorf("unmarshal transformation params: %w", err)
		}
	}
	return &run, nil
}
