package csvfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"segment-quantitation-service/internal/core/domain"
)

// Store reads and writes the CSV files of the quantitation workflow.
// Relative paths are resolved against the base directory.
type Store struct {
	baseDir string
}

// NewStore creates a CSV store rooted at baseDir
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) resolve(path string) string {
	if filepath.IsAbs(path) || s.baseDir == "" {
		return path
	}
	return filepath.Join(s.baseDir, path)
}

func (s *Store) StoreQuantitationMethods(ctx context.Context, methods []domain.QuantitationMethod, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rows := make([]*quantitationMethodRow, 0, len(methods))
	for _, m := range methods {
		rows = append(rows, toMethodRow(m))
	}

	full := s.resolve(path)
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("create quantitation methods file: %w", err)
	}
	if err := writeQuantitationMethods(f, rows); err != nil {
		return err
	}
	log.WithFields(log.Fields{"path": full, "methods": len(rows)}).Info("quantitation methods stored")
	return nil
}

// writeQuantitationMethods marshals rows into w and closes it. A failed close is an error.
func writeQuantitationMethods(w io.WriteCloser, rows []*quantitationMethodRow) error {
	if err := gocsv.Marshal(&rows, w); err != nil {
		_ = w.Close()
		return fmt.Errorf("write quantitation methods: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close quantitation methods file: %w", err)
	}
	return nil
}

func (s *Store) LoadQuantitationMethods(ctx context.Context, path string) ([]domain.QuantitationMethod, error) {
	rows := []*quantitationMethodRow{}
	if err := s.unmarshal(ctx, path, &rows); err != nil {
		return nil, err
	}
	methods := make([]domain.QuantitationMethod, 0, len(rows))
	for _, r := range rows {
		if r.ComponentName == "" {
			return nil, fmt.Errorf("%w: quantitation method without component_name", domain.ErrInvalidCSV)
		}
		methods = append(methods, r.toDomain())
	}
	return methods, nil
}

func (s *Store) LoadStandardsConcentrations(ctx context.Context, path string) ([]domain.StandardConcentration, error) {
	rows := []*standardConcentrationRow{}
	if err := s.unmarshal(ctx, path, &rows); err != nil {
		return nil, err
	}
	out := make([]domain.StandardConcentration, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.StandardConcentration{
			SampleName:            r.SampleName,
			ComponentName:         r.ComponentName,
			ISComponentName:       r.ISComponentName,
			ActualConcentration:   r.ActualConcentration,
			ISActualConcentration: r.ISActualConcentration,
			ConcentrationUnits:    r.ConcentrationUnits,
			DilutionFactor:        r.DilutionFactor,
		})
	}
	return out, nil
}

// LoadParameters reads a function,name,type,value parameter file grouped by function.
func (s *Store) LoadParameters(ctx context.Context, path string) (domain.Parameters, error) {
	rows := []*domain.Parameter{}
	if err := s.unmarshal(ctx, path, &rows); err != nil {
		return nil, err
	}
	params := make(domain.Parameters)
	for _, r := range rows {
		fn := strings.TrimSpace(r.Function)
		if fn == "" || strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("%w: parameter row without function or name", domain.ErrInvalidCSV)
		}
		params[fn] = append(params[fn], *r)
	}
	return params, nil
}

func (s *Store) unmarshal(ctx context.Context, path string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full := s.resolve(path)
	b, err := os.ReadFile(full)
	if err != nil {
		return fmt.Errorf("read %s: %w", full, err)
	}
	if err := gocsv.UnmarshalBytes(b, out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidCSV, full, err)
	}
	return nil
}
