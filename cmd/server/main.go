package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/AngelCh415/adpulse/internal/config"
	"github.com/AngelCh415/adpulse/internal/httpx"
	"github.com/AngelCh415/adpulse/internal/metrics"
	"github.com/AngelCh415/adpulse/internal/simulator"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("config error", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	rnd, err := simulator.NewRandom(cfg.Seed)
	if err != nil {
		logger.Error("random source", slog.String("err", err.Error()))
		os.Exit(1)
	}
	sim := simulator.New(
		simulator.WithRandom(rnd),
		simulator.WithPeriod(cfg.TickInterval),
		simulator.WithLatencies(cfg.PlatformLatency, cfg.MetricsLatency),
		simulator.WithLogger(logger),
		simulator.WithRecorder(metrics.NewPrometheus(reg)),
	)
	mSvc := metrics.NewService(sim)

	r := httpx.NewRouter(logger, sim, mSvc, reg, cfg.StreamBuffer)

	// Cancelled on shutdown so open streams return and unsubscribe.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("port", cfg.Port), slog.Duration("tick", cfg.TickInterval))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("err", err.Error()))
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	cancelBase()
	shutCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Error("shutdown", slog.String("err", err.Error()))
	}
	logger.Info("stopped", slog.Int("observers", sim.Observers()))
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
