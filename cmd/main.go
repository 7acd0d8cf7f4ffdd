package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/brokerlens/internal/adapters/cache"
	"github.com/okian/brokerlens/internal/adapters/http/api"
	"github.com/okian/brokerlens/internal/adapters/http/site"
	"github.com/okian/brokerlens/internal/adapters/http/swagger"
	app "github.com/okian/brokerlens/internal/app"
	"github.com/okian/brokerlens/internal/config"
	"github.com/okian/brokerlens/internal/domain/scoring"
	"github.com/okian/brokerlens/internal/domain/valuemap"
	"github.com/okian/brokerlens/pkg/logger"
	"github.com/okian/brokerlens/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
	chartCacheEntries         = 512
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.InitWithWriter(os.Stdout, cfg.LogFormat); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "brokerlens stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

// run starts the service and HTTP server and blocks until ctx is done.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	svc := newService(cfg, log)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, cfg, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info(gctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		startSystemMetricsUpdater(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info(gctx, "shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
			return err
		}
		log.Info(shutdownCtx, "server stopped")
		return nil
	})

	return g.Wait()
}

func newService(cfg *config.Config, log logger.Logger) *app.Service {
	calc := scoring.New(
		scoring.WithWeights(cfg.WeightRevenue, cfg.WeightQuality, cfg.WeightGrowth),
		scoring.WithTierThresholds(cfg.TierHigh, cfg.TierMedium),
	)
	return app.New(
		app.WithLogger(log),
		app.WithDatasetPath(cfg.DatasetPath),
		app.WithSeed(cfg.Seed),
		app.WithSeedSizes(cfg.SeedNavigators, cfg.SeedPilots),
		app.WithBuilder(valuemap.New(valuemap.WithCalculator(calc))),
		app.WithChartSize(cfg.ChartWidth, cfg.ChartHeight),
		app.WithChartCache(cache.NewInMemoryCache(cache.WithMaxEntries(chartCacheEntries))),
	)
}

func newMux(ctx context.Context, cfg *config.Config, svc *app.Service) *http.ServeMux {
	mux := http.NewServeMux()

	site.Register(ctx, mux)
	swagger.Register(ctx, mux)

	apiServer := api.NewServer(svc, svc, api.WithMaxLeaderboardLimit(cfg.MaxLeaderboardLimit))
	apiServer.Register(ctx, mux)
	return mux
}

// startSystemMetricsUpdater updates system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
