package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"segment-quantitation-service/internal/core/domain"
	"segment-quantitation-service/internal/core/ports/output"
)

// SequenceService manages uploaded sequences and runs segment workflows on them
type SequenceService struct {
	// mu serialises processing against reads of the stored sequences.
	mu sync.RWMutex

	repo          ports.SequenceRepository
	runRepo       ports.CalibrationRunRepository
	standards     ports.StandardsConcentrationLoader
	processor     *SegmentProcessor
	maxConcurrent int
}

// NewSequenceService creates a sequence service. runRepo may be nil when calibration
// history is not recorded.
func NewSequenceService(
	repo ports.SequenceRepository,
	runRepo ports.CalibrationRunRepository,
	standards ports.StandardsConcentrationLoader,
	processor *SegmentProcessor,
	maxConcurrent int,
) *SequenceService {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &SequenceService{
		repo:          repo,
		runRepo:       runRepo,
		standards:     standards,
		processor:     processor,
		maxConcurrent: maxConcurrent,
	}
}

// ProcessRequest carries the caller's choices for one processing call
type ProcessRequest struct {
	// Events are event names; when empty each segment runs its default workflow.
	Events     []string
	Parameters domain.Parameters
	Filenames  domain.Filenames
}

func (s *SequenceService) Create(ctx context.Context, sequence *domain.Sequence) error {
	if err := sequence.Validate(); err != nil {
		return err
	}
	for _, seg := range sequence.Segments {
		if seg.ComponentsToConcentrations == nil {
			seg.ComponentsToConcentrations = make(map[string][]domain.FeatureConcentration)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Create(ctx, sequence)
}

// Get returns a snapshot of the stored sequence. Later processing does not affect it.
func (s *SequenceService) Get(ctx context.Context, name string) (*domain.Sequence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sequence, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return sequence.Clone(), nil
}

// List returns snapshots of every stored sequence.
func (s *SequenceService) List(ctx context.Context) ([]*domain.Sequence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sequences, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Sequence, 0, len(sequences))
	for _, sequence := range sequences {
		out = append(out, sequence.Clone())
	}
	return out, nil
}

func (s *SequenceService) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Delete(ctx, name)
}

// Calibrators returns the calibration points accepted for a segment, keyed by component.
func (s *SequenceService) Calibrators(ctx context.Context, sequenceName, segmentName string) (map[string][]domain.FeatureConcentration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	segment, _, err := s.lookup(ctx, sequenceName, segmentName)
	if err != nil {
		return nil, err
	}
	return segment.Clone().ComponentsToConcentrations, nil
}

// CalibrationRuns lists the recorded calibration history of a segment.
func (s *SequenceService) CalibrationRuns(ctx context.Context, sequenceName, segmentName string) ([]*domain.CalibrationRun, error) {
	if s.runRepo == nil {
		return []*domain.CalibrationRun{}, nil
	}
	return s.runRepo.ListBySegment(ctx, sequenceName, segmentName)
}

// ImportStandardsConcentrations loads a standards concentration file and assigns each row to the
// segments containing a sample with the row's sample name. Returns the number of rows assigned.
func (s *SequenceService) ImportStandardsConcentrations(ctx context.Context, sequenceName, path string) (int, error) {
	rows, err := s.standards.LoadStandardsConcentrations(ctx, path)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sequence, err := s.repo.Get(ctx, sequenceName)
	if err != nil {
		return 0, err
	}

	assigned := 0
	for _, seg := range sequence.Segments {
		names := make(map[string]bool, len(seg.SampleIndices))
		for _, idx := range seg.SampleIndices {
			sample, err := sequence.Sample(idx)
			if err != nil {
				return 0, err
			}
			names[sample.MetaData.SampleName] = true
		}
		var segRows []domain.StandardConcentration
		for _, row := range rows {
			if names[row.SampleName] {
				segRows = append(segRows, row)
			}
		}
		if len(segRows) > 0 {
			seg.StandardsConcentrations = segRows
			assigned += len(segRows)
		}
	}
	return assigned, s.repo.Replace(ctx, sequence)
}

// SegmentWorkflow returns the default events of a segment: the union of the default workflows
// of the sample types present, in order of first appearance.
func SegmentWorkflow(segment *domain.SequenceSegment, sequence *domain.Sequence) ([]domain.SegmentEvent, error) {
	events := []domain.SegmentEvent{}
	seen := make(map[domain.SegmentEvent]bool)
	for _, idx := range segment.SampleIndices {
		sample, err := sequence.Sample(idx)
		if err != nil {
			return nil, err
		}
		workflow, err := domain.DefaultSegmentWorkflow(sample.MetaData.SampleType)
		if err != nil {
			return nil, err
		}
		for _, e := range workflow {
			if !seen[e] {
				seen[e] = true
				events = append(events, e)
			}
		}
	}
	return events, nil
}

// SegmentEvents returns the default workflow of a stored segment.
func (s *SequenceService) SegmentEvents(ctx context.Context, sequenceName, segmentName string) ([]domain.SegmentEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	segment, sequence, err := s.lookup(ctx, sequenceName, segmentName)
	if err != nil {
		return nil, err
	}
	return SegmentWorkflow(segment, sequence)
}

// ProcessSegment runs the requested events on one segment of a stored sequence.
// A *domain.CalibrationFailure is returned after the whole workflow has run.
func (s *SequenceService) ProcessSegment(ctx context.Context, sequenceName, segmentName string, req ProcessRequest) error {
	events, err := parseEvents(req.Events)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	segment, sequence, err := s.lookup(ctx, sequenceName, segmentName)
	if err != nil {
		return err
	}
	runErr := s.runSegment(ctx, segment, sequence, events, req)
	if runErr != nil && !errors.Is(runErr, domain.ErrCalibrationFailed) {
		return runErr
	}
	if err := s.repo.Replace(ctx, sequence); err != nil {
		return err
	}
	return runErr
}

// ProcessSequence runs every segment of a stored sequence. Segments whose sample indices are
// disjoint run concurrently; otherwise they run one after another. Calibration failures do not
// cancel the other segments; they are returned together once every segment has run.
func (s *SequenceService) ProcessSequence(ctx context.Context, sequenceName string, req ProcessRequest) error {
	events, err := parseEvents(req.Events)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sequence, err := s.repo.Get(ctx, sequenceName)
	if err != nil {
		return err
	}

	limit := s.maxConcurrent
	if segmentsOverlap(sequence.Segments) {
		log.WithField("sequence", sequence.Name).Debug("segments share samples, processing sequentially")
		limit = 1
	}

	var (
		failuresMu sync.Mutex
		failures   []error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, segment := range sequence.Segments {
		segment := segment
		g.Go(func() error {
			err := s.runSegment(gctx, segment, sequence, events, req)
			if err == nil {
				return nil
			}
			err = fmt.Errorf("segment %q: %w", segment.Name, err)
			if errors.Is(err, domain.ErrCalibrationFailed) {
				failuresMu.Lock()
				failures = append(failures, err)
				failuresMu.Unlock()
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := s.repo.Replace(ctx, sequence); err != nil {
		return err
	}
	return errors.Join(failures...)
}

// runSegment runs events in order. A calibration failure is recorded and the remaining events
// still run; any other error stops the workflow.
func (s *SequenceService) runSegment(ctx context.Context, segment *domain.SequenceSegment, sequence *domain.Sequence, events []domain.SegmentEvent, req ProcessRequest) error {
	if events == nil {
		var err error
		events, err = SegmentWorkflow(segment, sequence)
		if err != nil {
			return err
		}
	}

	var failures []error
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.WithFields(log.Fields{"sequence": sequence.Name, "segment": segment.Name, "event": event.String()}).Info("processing sequence segment")

		var failure *domain.CalibrationFailure
		err := s.processor.ProcessSequenceSegment(ctx, segment, sequence, event, req.Parameters, req.Filenames)
		if err != nil {
			if !errors.As(err, &failure) {
				return err
			}
			failures = append(failures, err)
		}
		if event == domain.CalculateCalibration {
			s.recordCalibrationRuns(ctx, sequence.Name, segment, failure)
		}
	}
	return errors.Join(failures...)
}

// recordCalibrationRuns stores one history entry per component fitted in the last pass.
// Components listed in failure kept their previous method and are skipped.
func (s *SequenceService) recordCalibrationRuns(ctx context.Context, sequenceName string, segment *domain.SequenceSegment, failure *domain.CalibrationFailure) {
	if s.runRepo == nil {
		return
	}
	for _, method := range segment.QuantitationMethods {
		if _, ok := segment.ComponentsToConcentrations[method.ComponentName]; !ok {
			continue
		}
		if failure != nil && failure.Failed(method.ComponentName) {
			continue
		}
		run := domain.NewCalibrationRun(sequenceName, segment.Name, method)
		if err := s.runRepo.Create(ctx, run); err != nil {
			log.WithError(err).WithField("component", method.ComponentName).Warn("record calibration run failed")
		}
	}
}

func (s *SequenceService) lookup(ctx context.Context, sequenceName, segmentName string) (*domain.SequenceSegment, *domain.Sequence, error) {
	sequence, err := s.repo.Get(ctx, sequenceName)
	if err != nil {
		return nil, nil, err
	}
	segment, err := sequence.Segment(segmentName)
	if err != nil {
		return nil, nil, err
	}
	return segment, sequence, nil
}

// parseEvents validates every name before converting any. A nil result means "use defaults".
func parseEvents(names []string) ([]domain.SegmentEvent, error) {
	if len(names) == 0 {
		return nil, nil
	}
	if !domain.CheckSegmentEventNames(names) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidSegmentEvent, strings.Join(domain.InvalidSegmentEventNames(names), ", "))
	}
	events := make([]domain.SegmentEvent, 0, len(names))
	for _, name := range names {
		e, err := domain.ParseSegmentEvent(name)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func segmentsOverlap(segments []*domain.SequenceSegment) bool {
	owner := make(map[int]bool)
	for _, seg := range segments {
		local := make(map[int]bool, len(seg.SampleIndices))
		for _, idx := range seg.SampleIndices {
			if owner[idx] {
				return true
			}
			local[idx] = true
		}
		for idx := range local {
			owner[idx] = true
		}
	}
	return false
}
