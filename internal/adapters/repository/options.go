package repository

// SyntheticOption applies a configuration option to the synthetic generator.
type SyntheticOption func(*synthetic)

// WithSeed sets the random seed. The same seed always yields the same dataset.
func WithSeed(seed int64) SyntheticOption {
	return func(s *synthetic) {
		s.seed = seed
	}
}

// WithNavigatorCount sets how many navigators are generated.
func WithNavigatorCount(n int) SyntheticOption {
	return func(s *synthetic) {
		if n > 0 {
			s.navigators = n
		}
	}
}

// WithPilotCount sets how many pilots are generated. Zero is allowed.
func WithPilotCount(n int) SyntheticOption {
	return func(s *synthetic) {
		if n >= 0 {
			s.pilots = n
		}
	}
}
