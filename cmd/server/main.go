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

	hkidhandler "hkid-gateway/internal/hkid/handler"
	hkidmetrics "hkid-gateway/internal/hkid/metrics"
	hkidservice "hkid-gateway/internal/hkid/service"
	"hkid-gateway/internal/platform/config"
	"hkid-gateway/internal/platform/httpserver"
	"hkid-gateway/internal/platform/logger"
	"hkid-gateway/internal/platform/metrics"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hkid-gateway: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc, err := hkidservice.New(
		hkidservice.WithLogger(log),
		hkidservice.WithMetrics(hkidmetrics.New(registry)),
		hkidservice.WithMaxBatch(cfg.MaxBatch),
		hkidservice.WithRegulatedMode(cfg.RegulatedMode),
	)
	if err != nil {
		return fmt.Errorf("build hkid service: %w", err)
	}

	limits, err := buildRateLimiter(ctx, cfg, log, registry)
	if err != nil {
		return err
	}
	defer limits.Close()

	handler := hkidhandler.New(svc, log, limits.middleware)
	router := newRouter(handler, metrics.New(registry), limits.health)

	api := httpserver.New(cfg.Addr, router)
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsRouter(registry))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return serve(log, "api", api) })
	g.Go(func() error { return serve(log, "metrics", metricsSrv) })
	g.Go(func() error {
		limits.sweep(gctx, log, sweepInterval)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(api.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("stopped")
	return nil
}

func serve(log *slog.Logger, name string, srv *http.Server) error {
	log.Info("starting listener", "listener", name, "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}
