package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"rutcheck/internal/form/handler"
	formmetrics "rutcheck/internal/form/metrics"
	"rutcheck/internal/form/service"
	"rutcheck/internal/platform/config"
	"rutcheck/internal/platform/httpserver"
	"rutcheck/internal/platform/logger"
	"rutcheck/internal/platform/metrics"
	rlmetrics "rutcheck/internal/ratelimit/metrics"
	rlmiddleware "rutcheck/internal/ratelimit/middleware"
	rlmodels "rutcheck/internal/ratelimit/models"
	rlservice "rutcheck/internal/ratelimit/service"
	"rutcheck/internal/ratelimit/store/bucket"
	"rutcheck/internal/rut"
	httptransport "rutcheck/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Validation logic lives in the rut, phone and input
// packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.SelfTest {
		logSelfTest(log)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	buckets := bucket.NewInMemoryBucketStore()
	limiter, err := rlservice.New(buckets,
		rlservice.WithLogger(log),
		rlservice.WithConfig(&rlservice.Config{Policies: map[rlmodels.EndpointClass]rlmodels.Policy{
			rlmodels.ClassLive:   {Requests: cfg.RateLimit.LivePerMinute, Window: time.Minute},
			rlmodels.ClassSubmit: {Requests: cfg.RateLimit.SubmitPerMinute, Window: time.Minute},
		}}),
	)
	if err != nil {
		return fmt.Errorf("build rate limiter: %w", err)
	}
	rlMetrics := rlmetrics.New(reg)
	rateLimit := rlmiddleware.New(limiter, log,
		rlmiddleware.WithMetrics(rlMetrics),
		rlmiddleware.WithDisabled(!cfg.RateLimit.Enabled),
	)

	svc := service.New(
		service.WithLogger(log),
		service.WithMetrics(formmetrics.New(reg)),
	)
	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         log,
		Metrics:        metrics.New(reg),
		Gatherer:       reg,
		RequestTimeout: cfg.RequestTimeout,
		TrustedProxies: cfg.ProxyPrefixes,
	}, handler.New(svc, log, handler.WithRouteLimiter(rateLimit)))

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting rutcheck", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	if cfg.RateLimit.Enabled {
		g.Go(func() error {
			return buckets.RunSweeper(gctx, cfg.RateLimit.SweepInterval, rlMetrics.SetBuckets)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// logSelfTest runs the diagnostic RUT table. A failing row is logged, not
// fatal.
func logSelfTest(log *slog.Logger) {
	failed := 0
	for _, o := range rut.RunSelfTest() {
		level := slog.LevelDebug
		if !o.Passed() {
			level = slog.LevelError
			failed++
		}
		log.Log(context.Background(), level, "rut self-test",
			"input", o.Case.Input,
			"want_valid", o.Case.Valid,
			"want_reason", o.Case.Reason,
			"got_valid", o.Got.Valid,
			"got_reason", o.Got.Reason,
			"message", o.Got.Message,
		)
	}
	log.Info("rut self-test complete", "cases", len(rut.SelfTestCases), "failed", failed)
}
