// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/brokerlens/internal/adapters/cache"
	"github.com/okian/brokerlens/internal/adapters/repository"
	"github.com/okian/brokerlens/internal/domain/insight"
	"github.com/okian/brokerlens/internal/domain/model"
	"github.com/okian/brokerlens/internal/domain/types"
	"github.com/okian/brokerlens/internal/domain/valuemap"
	"github.com/okian/brokerlens/internal/render"
	"github.com/okian/brokerlens/pkg/logger"
	"github.com/okian/brokerlens/pkg/metrics"
)

// Dataset sources reported by GetStats.
const (
	sourceFile      = "file"
	sourceSynthetic = "synthetic"
	sourceStore     = "store"
)

// snapshot is one immutable build of every derived view. Readers load it
// without locking; Reload swaps in a new one.
type snapshot struct {
	generation uint64
	dataset    model.Dataset
	values     valuemap.Map
	byValue    []model.NavigatorValueEntry
	byRevenue  []model.NavigatorValueEntry
	summary    insight.Summary
	builtAt    time.Time
	buildTime  time.Duration
}

// Service implements the API dependencies for the value dashboard.
type Service struct {
	mu sync.Mutex

	// Core components
	store         repository.Store
	externalStore bool
	builder       *valuemap.Builder
	charts        cache.Cache

	// Configuration
	datasetPath    string
	seed           int64
	seedNavigators int
	seedPilots     int
	chartWidth     int
	chartHeight    int

	// State
	started     bool
	current     atomic.Pointer[snapshot]
	generations atomic.Uint64
	reloads     atomic.Int64

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		seed:           42,
		seedNavigators: 24,
		seedPilots:     120,
		chartWidth:     render.DefaultWidth,
		chartHeight:    render.DefaultHeight,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.builder == nil {
		s.builder = valuemap.New()
	}
	if s.charts == nil {
		s.charts = cache.NewInMemoryCache()
	}
	return s
}

// Start loads the dataset and builds the first snapshot.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting value service...", logger.String("source", s.source()))

	if !s.externalStore {
		ds, err := s.loadDataset(ctx)
		if err != nil {
			metrics.RecordDatasetReloadError()
			return err
		}
		store, err := repository.NewMemStore(ds)
		if err != nil {
			metrics.RecordDatasetReloadError()
			return err
		}
		s.store = store
	}

	if err := s.rebuild(ctx); err != nil {
		return err
	}
	metrics.RecordDatasetReload()

	s.started = true
	snap := s.current.Load()
	s.logger.Info(ctx, "value service started",
		logger.Int("navigators", len(snap.dataset.Navigators)),
		logger.Int("pilots", len(snap.dataset.Pilots)),
		logger.Duration("build", snap.buildTime),
	)
	return nil
}

// Stop releases cached charts and marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping value service...")
	s.charts.Purge(context.Background())
	s.current.Store(nil)
	s.started = false
	s.logger.Info(context.Background(), "value service stopped")
}

// Reload re-reads the dataset and atomically swaps the snapshot. On error the
// previous snapshot keeps serving.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}

	if !s.externalStore {
		ds, err := s.loadDataset(ctx)
		if err == nil {
			err = s.store.Replace(ctx, ds)
		}
		if err != nil {
			metrics.RecordDatasetReloadError()
			s.logger.Error(ctx, "dataset reload failed", logger.Error(err))
			return err
		}
	}

	if err := s.rebuild(ctx); err != nil {
		return err
	}
	s.reloads.Add(1)
	metrics.RecordDatasetReload()
	s.logger.Info(ctx, "dataset reloaded", logger.Int("navigators", s.store.Count(ctx)))
	return nil
}

// Leaderboard returns the top n entries ordered by value score or revenue.
// Row ranks are the global ranks of the chosen ordering.
func (s *Service) Leaderboard(ctx context.Context, by valuemap.Order, n int) ([]types.Entry, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}
	if !by.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrder, by)
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	ordered := snap.byValue
	if by == valuemap.ByRevenue {
		ordered = snap.byRevenue
	}
	if n > len(ordered) {
		n = len(ordered)
	}

	out := make([]types.Entry, n)
	for i, e := range ordered[:n] {
		rank := e.ValueRank
		if by == valuemap.ByRevenue {
			rank = e.RevenueRank
		}
		out[i] = types.FromValueEntry(e, rank)
	}
	return out, nil
}

// Entry returns the full value entry of one navigator.
// Returns repository.ErrNotFound for unknown ids.
func (s *Service) Entry(ctx context.Context, id string) (model.NavigatorValueEntry, error) {
	snap, err := s.snapshot()
	if err != nil {
		return model.NavigatorValueEntry{}, err
	}
	e, ok := snap.values[id]
	if !ok {
		metrics.RecordLookupMiss()
		return model.NavigatorValueEntry{}, repository.ErrNotFound
	}
	return e, nil
}

// Insight returns the harm insight summary of the current dataset.
func (s *Service) Insight(ctx context.Context) (insight.Summary, error) {
	snap, err := s.snapshot()
	if err != nil {
		return insight.Summary{}, err
	}
	return snap.summary, nil
}

// Dataset returns the dataset the current snapshot was built from.
// Callers must not modify it.
func (s *Service) Dataset(ctx context.Context) (model.Dataset, error) {
	snap, err := s.snapshot()
	if err != nil {
		return model.Dataset{}, err
	}
	return snap.dataset, nil
}

// TrendChart returns the revenue trend PNG of one navigator. Charts are cached
// per snapshot.
func (s *Service) TrendChart(ctx context.Context, id string) ([]byte, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	e, ok := snap.values[id]
	if !ok {
		metrics.RecordLookupMiss()
		return nil, repository.ErrNotFound
	}

	key := fmt.Sprintf("%d/%s", snap.generation, id)
	if img, ok := s.charts.Get(ctx, key); ok {
		metrics.RecordChartCacheHit()
		return img, nil
	}
	metrics.RecordChartCacheMiss()

	img, err := render.RevenueTrendPNG(e, s.chartWidth, s.chartHeight)
	if err != nil {
		metrics.RecordChartRenderError()
		return nil, err
	}
	metrics.RecordChartRender()
	s.charts.Put(ctx, key, img)
	return img, nil
}

// GetStats reports service state for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	stats := map[string]interface{}{
		"started": started,
		"source":  s.source(),
		"reloads": s.reloads.Load(),
	}

	snap := s.current.Load()
	if started && snap != nil {
		hits, misses := cache.Stats(s.charts)
		stats["navigators"] = len(snap.dataset.Navigators)
		stats["pilots"] = len(snap.dataset.Pilots)
		stats["generation"] = snap.generation
		stats["builtAt"] = snap.builtAt.UTC().Format(time.RFC3339)
		stats["buildMs"] = float64(snap.buildTime.Microseconds()) / 1000
		stats["chartCacheEntries"] = s.charts.Len()
		stats["chartCacheHits"] = hits
		stats["chartCacheMisses"] = misses
		stats["revenueLeader"] = snap.summary.RevenueLeader
	}
	return stats
}

func (s *Service) snapshot() (*snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotStarted
	}
	return snap, nil
}

func (s *Service) source() string {
	switch {
	case s.externalStore:
		return sourceStore
	case s.datasetPath != "":
		return sourceFile
	default:
		return sourceSynthetic
	}
}

func (s *Service) loadDataset(ctx context.Context) (model.Dataset, error) {
	if s.datasetPath != "" {
		ds, err := repository.LoadDataset(ctx, s.datasetPath)
		if err != nil {
			return model.Dataset{}, err
		}
		return ds, nil
	}
	return repository.Synthetic(
		repository.WithSeed(s.seed),
		repository.WithNavigatorCount(s.seedNavigators),
		repository.WithPilotCount(s.seedPilots),
	), nil
}

// rebuild derives every view from the store and publishes a new snapshot.
// Callers hold s.mu.
func (s *Service) rebuild(ctx context.Context) error {
	ds, err := s.store.Dataset(ctx)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}

	start := time.Now()
	values := s.builder.Build(ds.Navigators, ds.Pilots)
	snap := &snapshot{
		generation: s.generations.Add(1),
		dataset:    ds,
		values:     values,
		byValue:    values.Ordered(valuemap.ByValue),
		byRevenue:  values.Ordered(valuemap.ByRevenue),
		summary:    insight.Summarize(ds.Navigators, values),
		builtAt:    start,
	}
	snap.buildTime = time.Since(start)

	metrics.RecordValueMapBuild(float64(snap.buildTime.Microseconds()) / 1000)
	metrics.UpdateRevenueQuality(snap.summary.HighQualityRevenuePct, snap.summary.AtRiskRevenuePct)

	s.current.Store(snap)
	s.charts.Purge(ctx)
	return nil
}
