package memory

import (
	"context"
	"sort"
	"sync"

	"segment-quantitation-service/internal/core/domain"
	"segment-quantitation-service/internal/core/ports/output"
)

type sequenceRepo struct {
	lock      sync.RWMutex
	sequences map[string]*domain.Sequence
}

// NewSequenceRepository returns a process-local sequence registry
func NewSequenceRepository() ports.SequenceRepository {
	return &sequenceRepo{sequences: make(map[string]*domain.Sequence)}
}

func (r *sequenceRepo) Create(ctx context.Context, sequence *domain.Sequence) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.sequences[sequence.Name]; ok {
		return domain.ErrSequenceNameConflict
	}
	r.sequences[sequence.Name] = sequence
	return nil
}

func (r *sequenceRepo) Get(ctx context.Context, name string) (*domain.Sequence, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	s, ok := r.sequences[name]
	if !ok {
		return nil, domain.ErrSequenceNotFound
	}
	return s, nil
}

func (r *sequenceRepo) Replace(ctx context.Context, sequence *domain.Sequence) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.sequences[sequence.Name]; !ok {
		return domain.ErrSequenceNotFound
	}
	r.sequences[sequence.Name] = sequence
	return nil
}

func (r *sequenceRepo) Delete(ctx context.Context, name string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.sequences[name]; !ok {
		return domain.ErrSequenceNotFound
	}
	delete(r.sequences, name)
	return nil
}

func (r *sequenceRepo) List(ctx context.Context) ([]*domain.Sequence, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]*domain.Sequence, 0, len(r.sequences))
	for _, s := range r.sequences {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
