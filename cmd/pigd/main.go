package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/randomtoy/pig-go/internal/adapters/cache"
	"github.com/randomtoy/pig-go/internal/adapters/chart"
	httpadapter "github.com/randomtoy/pig-go/internal/adapters/http"
	"github.com/randomtoy/pig-go/internal/app"
	"github.com/randomtoy/pig-go/internal/config"
	"github.com/randomtoy/pig-go/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := telemetry.NewMetrics(reg)
	if err != nil {
		logger.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	scores, err := cache.NewLRU(cfg.CacheSize)
	if err != nil {
		logger.Error("failed to create score cache", "error", err)
		os.Exit(1)
	}

	svc := app.NewScoreService(scores, chart.NewPlotRenderer(), metrics, app.Limits{
		MaxTarget:      cfg.MaxTarget,
		MaxCurvePoints: cfg.MaxCurvePoints,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))
	e.Use(httpadapter.MetricsMiddleware(metrics))

	handler := httpadapter.NewHandler(svc, reg)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "max_target", cfg.MaxTarget)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
