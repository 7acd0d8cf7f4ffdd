package valuecheck

import (
	"time"

	"github.com/okian/brokerlens/internal/domain/valuemap"
)

// Config holds configuration for a verification run.
type Config struct {
	BaseURL string        // Base URL of the service
	Top     int           // Number of leaderboard rows to verify
	Workers int           // Concurrent /rank requests
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log every mismatch

	// Builder recomputes the value map; it must be configured like the
	// service's. Nil means the default weights and tiers.
	Builder *valuemap.Builder
}

// Stats holds run statistics.
type Stats struct {
	Navigators        int
	Pilots            int
	RanksRetrieved    int
	LeaderboardRows   int
	Mismatches        int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
	RequestsPerSecond float64
}
