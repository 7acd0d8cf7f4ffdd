package service

import (
	"github.com/okian/brokerlens/internal/adapters/cache"
	"github.com/okian/brokerlens/internal/adapters/repository"
	"github.com/okian/brokerlens/internal/domain/valuemap"
	"github.com/okian/brokerlens/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore uses an existing store as the dataset source. Start and Reload
// read from it as-is instead of loading a file or generating data.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
			s.externalStore = true
		}
	}
}

// WithDatasetPath loads the dataset from a YAML or JSON fixture file.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		s.datasetPath = path
	}
}

// WithSeed sets the seed of the synthetic dataset.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithSeedSizes sets how many navigators and pilots are generated.
func WithSeedSizes(navigators, pilots int) Option {
	return func(s *Service) {
		if navigators > 0 {
			s.seedNavigators = navigators
		}
		if pilots >= 0 {
			s.seedPilots = pilots
		}
	}
}

// WithBuilder sets the value map builder, e.g. one with custom score weights.
func WithBuilder(b *valuemap.Builder) Option {
	return func(s *Service) {
		if b != nil {
			s.builder = b
		}
	}
}

// WithChartSize sets the trend chart size in pixels.
func WithChartSize(width, height int) Option {
	return func(s *Service) {
		if width > 0 && height > 0 {
			s.chartWidth = width
			s.chartHeight = height
		}
	}
}

// WithChartCache sets the cache for rendered trend charts.
func WithChartCache(c cache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.charts = c
		}
	}
}
