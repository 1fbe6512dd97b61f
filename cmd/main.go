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

	"github.com/okian/mergington/internal/adapters/http/api"
	"github.com/okian/mergington/internal/adapters/http/site"
	"github.com/okian/mergington/internal/adapters/http/swagger"
	repository "github.com/okian/mergington/internal/adapters/repository"
	app "github.com/okian/mergington/internal/app"
	"github.com/okian/mergington/internal/config"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
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
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging with defaults until the configured format is known.
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logs: " + err.Error() + "\n")
		}
	}()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Error(ctx, "server exited", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

// run loads configuration, starts the service and serves HTTP until ctx ends.
func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return err
	}
	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Rebuild the metrics registry before any handler captures it.
	m := metrics.Init(metricsOptions(cfg)...)
	loggerInstance.Info(ctx, "metrics configured",
		logger.Bool("enabled", m.Enabled()),
		logger.Duration("refresh_interval", m.RefreshInterval()))

	svc, err := newService(cfg, loggerInstance)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx, systemMetricsInterval)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc, loggerInstance),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case <-ctx.Done():
	case err, ok := <-errCh:
		if ok {
			return err
		}
	}
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	loggerInstance.Info(ctx, "server stopped")
	return nil
}

// metricsOptions maps the metrics_* configuration keys onto manager options.
func metricsOptions(cfg *config.Config) []metrics.Option {
	return []metrics.Option{
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithSubsystem(cfg.MetricsSubsystem),
		metrics.WithMetricPrefix(cfg.MetricsPrefix),
		metrics.WithHistogramBuckets(cfg.MetricsBuckets),
		metrics.WithCustomLabels(cfg.MetricsLabels),
		metrics.WithRefreshInterval(time.Duration(cfg.MetricsRefreshMS) * time.Millisecond),
	}
}

// newService builds the activities service from configuration.
func newService(cfg *config.Config, l logger.Logger) (*app.Service, error) {
	opts := []app.Option{
		app.WithLogger(l),
		app.WithCapacityEnforcement(cfg.EnforceCapacity),
	}
	if cfg.SeedFile != "" {
		seed, err := repository.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WithSeed(seed))
	}
	return app.New(opts...), nil
}

// newMux registers the docs, site and API routes.
func newMux(ctx context.Context, svc *app.Service, l logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)
	site.Register(ctx, mux)

	// Register business API routes with the service dependency.
	api.NewServer(svc, svc, api.WithLogger(l.Named("http"))).Register(ctx, mux)

	return mux
}

// startSystemMetricsUpdater refreshes runtime metrics until ctx ends.
func startSystemMetricsUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
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
		// Average GC pause time
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
