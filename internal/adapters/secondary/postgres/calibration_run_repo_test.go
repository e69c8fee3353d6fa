package postgres

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segment-quantitation-service/internal/core/domain"
)

type fakeRow struct {
	values []interface{}
	err    error
}

func (f fakeRow) Scan(dest ...interface{}) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = f.values[i].(uuid.UUID)
		case *time.Time:
			*p = f.values[i].(time.Time)
		case *string:
			*p = f.values[i].(string)
		case *[]byte:
			*p = f.values[i].([]byte)
		case *float64:
			*p = f.values[i].(float64)
		case *int:
			*p = f.values[i].(int)
		}
	}
	return nil
}

func TestScanCalibrationRun(t *testing.T) {
	id := uuid.New()
	now := time.Now()
	params := domain.TransformationModelParams{Slope: 2, Intercept: 0.5, XWeight: "1/x"}
	paramsJSON, err := json.Marshal(params)
	require.NoError(t, err)

	run, err := scanCalibrationRun(fakeRow{values: []interface{}{
		id, now, "run1", "seg1", "A", "linear", paramsJSON, 0.99, 6, 0.1, 20.0,
	}})
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "A", run.ComponentName)
	assert.Equal(t, params, run.TransformationParams)
	assert.Equal(t, 6, run.NPoints)
	assert.Equal(t, 20.0, run.ULOQ)
}

func TestScanCalibrationRun_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := scanCalibrationRun(fakeRow{err: boom})
	assert.ErrorIs(t, err, boom)
}
