package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/brokerlens/internal/config"
	"github.com/okian/brokerlens/internal/domain/scoring"
	"github.com/okian/brokerlens/internal/domain/valuemap"
	"github.com/okian/brokerlens/internal/valuecheck"
	"github.com/okian/brokerlens/pkg/logger"
)

// Default configuration constants.
const (
	defaultTopN        = 50
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 10 * time.Minute
	defaultNavigators  = 200
	defaultPilots      = 1000
	exitCodeFailure    = 1
	exitCodeBadOptions = 2
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		topN       = flag.Int("top", defaultTopN, "Number of leaderboard rows to verify per ordering")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent /rank requests")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		generate   = flag.String("generate", "", "Write a random dataset with uuid ids to this path and exit")
		navigators = flag.Int("navigators", defaultNavigators, "Navigators in a generated dataset")
		pilots     = flag.Int("pilots", defaultPilots, "Pilots in a generated dataset")
		logFormat  = flag.String("log-format", logger.FormatText, "Log output format: text or json")
		verbose    = flag.Bool("verbose", false, "Log every mismatch and progress")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		valuecheck.ShowHelp()
		return
	}

	if err := valuecheck.SetupLogging(*logFormat, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(exitCodeBadOptions)
	}
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	if *generate != "" {
		if *navigators < 0 || *pilots < 0 {
			log.Error(ctx, "navigators and pilots must not be negative")
			os.Exit(exitCodeBadOptions)
		}
		ds := valuecheck.GenerateDataset(*navigators, *pilots)
		if err := valuecheck.WriteDataset(ctx, *generate, ds); err != nil {
			log.Error(ctx, "dataset generation failed", logger.Error(err))
			os.Exit(exitCodeFailure)
		}
		return
	}

	// Score with the same weights and tiers the service reads from its environment.
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, "failed to load config", logger.Error(err))
		os.Exit(exitCodeBadOptions)
	}
	calc := scoring.New(
		scoring.WithWeights(cfg.WeightRevenue, cfg.WeightQuality, cfg.WeightGrowth),
		scoring.WithTierThresholds(cfg.TierHigh, cfg.TierMedium),
	)

	runConfig := &valuecheck.Config{
		BaseURL: *baseURL,
		Top:     *topN,
		Workers: *workers,
		Timeout: *timeout,
		Verbose: *verbose,
		Builder: valuemap.New(valuemap.WithCalculator(calc)),
	}

	if _, err := valuecheck.Run(ctx, runConfig); err != nil {
		log.Error(ctx, "value check failed", logger.Error(err))
		os.Exit(exitCodeFailure)
	}
}
