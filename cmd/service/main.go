package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-lookup/internal/client"
	"github.com/kjstillabower/weather-lookup/internal/config"
	httphandler "github.com/kjstillabower/weather-lookup/internal/http"
	"github.com/kjstillabower/weather-lookup/internal/lifecycle"
	"github.com/kjstillabower/weather-lookup/internal/observability"
	"github.com/kjstillabower/weather-lookup/internal/service"
	"github.com/kjstillabower/weather-lookup/internal/session"
	"github.com/kjstillabower/weather-lookup/internal/traffic"
)

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	weatherClient, err := client.NewOpenWeatherClient(cfg.WeatherAPIKey, cfg.WeatherAPIURL, cfg.WeatherAPITimeout)
	if err != nil {
		logger.Fatal("weather client", zap.Error(err))
	}

	var store session.Store
	var memcacheCloser *session.MemcachedStore
	switch cfg.SessionBackend {
	case "memcached":
		mc, err := session.NewMemcachedStore(cfg.MemcachedAddrs, cfg.MemcachedTimeout, cfg.MemcachedMaxIdleConns)
		if err != nil {
			logger.Fatal("memcached session store", zap.Error(err))
		}
		memcacheCloser = mc
		store = mc
		logger.Info("session backend: memcached", zap.String("addrs", cfg.MemcachedAddrs))
	default:
		store = session.NewInMemoryStore()
		logger.Info("session backend: in_memory")
	}

	horizon := traffic.DefaultHorizon
	if cfg.HealthWindow > horizon {
		horizon = cfg.HealthWindow
	}
	outcomes := traffic.NewTracker(horizon)
	lookups := service.NewLookupService(weatherClient, store, cfg.SessionTTL, cfg.MapsURL, outcomes)

	healthConfig := &httphandler.HealthConfig{Window: cfg.HealthWindow}
	if memcacheCloser != nil {
		healthConfig.SessionPing = memcacheCloser.Ping
	}
	handler := httphandler.NewHandler(lookups, outcomes, healthConfig, logger, cfg.SessionTTL)

	router := mux.NewRouter()
	router.Use(httphandler.CorrelationIDMiddleware(logger))
	router.Use(httphandler.MetricsMiddleware)
	router.HandleFunc("/", handler.GetIndex).Methods("GET")
	router.HandleFunc("/", handler.PostIndex).Methods("POST")
	router.HandleFunc("/api/weather", handler.GetWeatherAPI).Methods("GET")
	router.HandleFunc("/health", handler.GetHealth).Methods("GET")
	router.Handle("/metrics", observability.MetricsHandler())
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	// No WriteTimeout: a submission waits on the upstream for as long as
	// weather_api.timeout allows, which defaults to unbounded.
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", ":"+cfg.ServerPort), zap.String("static_dir", cfg.StaticDir))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()
	stop()

	logger.Info("graceful shutdown triggered")
	lifecycle.SetShuttingDown(true)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	logger.Info("waiting for in-flight requests", zap.Int64("count", httphandler.InFlightCount()))
	waitCtx, waitCancel := context.WithTimeout(context.Background(), cfg.ShutdownInFlightTimeout)
	defer waitCancel()
	if err := httphandler.WaitForInFlight(waitCtx, cfg.ShutdownInFlightCheckInterval); err != nil {
		logger.Warn("in-flight requests not completed", zap.Error(err), zap.Int64("remaining", httphandler.InFlightCount()))
	}

	if err := observability.FlushTelemetry(context.Background(), logger); err != nil {
		logger.Error("telemetry flush", zap.Error(err))
	}

	if memcacheCloser != nil {
		if err := memcacheCloser.Close(); err != nil {
			logger.Error("memcached close", zap.Error(err))
		}
	}
	logger.Info("shutdown complete")
}
