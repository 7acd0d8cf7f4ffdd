// Package valuecheck verifies a running service against a local rebuild of its value map.
package valuecheck

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/brokerlens/internal/domain/model"
	"github.com/okian/brokerlens/internal/domain/types"
	"github.com/okian/brokerlens/internal/domain/valuemap"
	"github.com/okian/brokerlens/pkg/logger"
)

// Run fetches the served views and verifies them against a local rebuild.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	log := logger.Get()
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting brokerlens value check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("top", config.Top),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := client.checkHealth(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Fetch the dataset the views were computed from
	ds, err := client.fetchDataset(ctx)
	if err != nil {
		return stats, fmt.Errorf("dataset retrieval failed: %w", err)
	}
	stats.Navigators = len(ds.Navigators)
	stats.Pilots = len(ds.Pilots)

	// Step 3: Fetch both leaderboards
	leaderboards, err := fetchLeaderboards(ctx, client, config.Top, stats)
	if err != nil {
		return stats, fmt.Errorf("leaderboard retrieval failed: %w", err)
	}

	// Step 4: Fetch every entry concurrently
	served, err := client.fetchEntries(ctx, navigatorIDs(ds), config.Workers)
	if err != nil {
		return stats, fmt.Errorf("ranking retrieval failed: %w", err)
	}
	stats.RanksRetrieved = len(served)

	// Step 5: Verify
	problems := Verify(config.Builder, ds, served, leaderboards)
	stats.Mismatches = len(problems)
	for i, p := range problems {
		if !config.Verbose && i > 0 {
			break
		}
		log.Warn(ctx, "mismatch", logger.Error(p))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	if secs := stats.Duration.Seconds(); secs > 0 {
		// dataset and two leaderboards plus one request per navigator
		stats.RequestsPerSecond = float64(stats.RanksRetrieved+3) / secs
	}
	displayFinalStats(ctx, stats)

	if len(problems) > 0 {
		return stats, fmt.Errorf("%w: %d mismatches", ErrVerification, len(problems))
	}
	log.Info(ctx, "value check passed")
	return stats, nil
}

func fetchLeaderboards(ctx context.Context, client *HTTPClient, top int, stats *Stats) (map[valuemap.Order][]types.Entry, error) {
	out := make(map[valuemap.Order][]types.Entry, 2)
	if top <= 0 || stats.Navigators == 0 {
		return out, nil
	}
	for _, by := range []valuemap.Order{valuemap.ByValue, valuemap.ByRevenue} {
		rows, err := client.fetchLeaderboard(ctx, string(by), top)
		if err != nil {
			return nil, err
		}
		out[by] = rows
		stats.LeaderboardRows += len(rows)
	}
	return out, nil
}

func navigatorIDs(ds model.Dataset) []string {
	ids := make([]string, len(ds.Navigators))
	for i, n := range ds.Navigators {
		ids[i] = n.ID
	}
	return ids
}

// displayFinalStats logs the run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.Int("navigators", stats.Navigators),
		logger.Int("pilots", stats.Pilots),
		logger.Int("ranksRetrieved", stats.RanksRetrieved),
		logger.Int("leaderboardRows", stats.LeaderboardRows),
		logger.Int("mismatches", stats.Mismatches),
		logger.Duration("duration", stats.Duration),
		logger.Float64("requestsPerSecond", stats.RequestsPerSecond))
}
