package repository

import (
	"context"
	"sync"

	"github.com/okian/brokerlens/internal/domain/model"
	"github.com/okian/brokerlens/pkg/metrics"
)

// MemStore is an in-memory Store. Navigator order is preserved as loaded,
// since ranking ties fall back to input order.
type MemStore struct {
	mu    sync.RWMutex
	ds    model.Dataset
	index map[string]int
}

// NewMemStore returns a store holding a validated copy of ds.
func NewMemStore(ds model.Dataset) (*MemStore, error) {
	s := &MemStore{}
	if err := s.Replace(context.Background(), ds); err != nil {
		return nil, err
	}
	return s, nil
}

// Dataset returns a deep copy of the stored dataset.
func (s *MemStore) Dataset(ctx context.Context) (model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return model.Dataset{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDataset(s.ds), nil
}

// Navigator returns a copy of the navigator with the given id.
func (s *MemStore) Navigator(ctx context.Context, id string) (model.Navigator, error) {
	if err := ctx.Err(); err != nil {
		return model.Navigator{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		metrics.RecordLookupMiss()
		return model.Navigator{}, ErrNotFound
	}
	return cloneNavigator(s.ds.Navigators[i]), nil
}

// Replace validates ds and swaps it in. The previous dataset is kept on error.
func (s *MemStore) Replace(ctx context.Context, ds model.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := Validate(ds); err != nil {
		return err
	}
	next := cloneDataset(ds)
	index := make(map[string]int, len(next.Navigators))
	for i, n := range next.Navigators {
		index[n.ID] = i
	}

	s.mu.Lock()
	s.ds = next
	s.index = index
	s.mu.Unlock()

	metrics.UpdateDatasetSize(len(next.Navigators), len(next.Pilots))
	return nil
}

// Count returns the number of navigators.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ds.Navigators)
}
