package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/andrescamacho/haulplan/internal/adapters/geocoding"
	"github.com/andrescamacho/haulplan/internal/adapters/metrics"
	"github.com/andrescamacho/haulplan/internal/adapters/rest"
	"github.com/andrescamacho/haulplan/internal/adapters/routing"
	apptrip "github.com/andrescamacho/haulplan/internal/application/trip"
	"github.com/andrescamacho/haulplan/internal/domain/shared"
	"github.com/andrescamacho/haulplan/internal/infrastructure/config"
	"github.com/andrescamacho/haulplan/internal/infrastructure/pidfile"
	"github.com/andrescamacho/haulplan/pkg/logger"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to config file (default: search ., ./configs, /etc/haulplan)")
	flag.Parse()

	fmt.Println("Haulplan Server v0.1.0")
	fmt.Println("======================")

	// Load configuration
	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configPath) // Empty string = search default paths

	if err := run(cfg); err != nil {
		stdlog.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	// 1. Initialize logger
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	// 2. Claim the PID file (optional)
	if cfg.Server.PIDFile != "" {
		pf := pidfile.New(cfg.Server.PIDFile)
		if err := pf.Acquire(); err != nil {
			return fmt.Errorf("failed to acquire pid file: %w", err)
		}
		defer func() {
			if err := pf.Release(); err != nil {
				log.Warnw("failed to release pid file", "path", cfg.Server.PIDFile, "error", err)
			}
		}()
		log.Infow("pid file acquired", "path", cfg.Server.PIDFile)
	}

	// 3. Initialize metrics (optional)
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		httpCollector := metrics.NewHTTPMetricsCollector()
		if err := httpCollector.Register(); err != nil {
			return fmt.Errorf("failed to register http metrics: %w", err)
		}
		plannerCollector := metrics.NewPlannerMetricsCollector()
		if err := plannerCollector.Register(); err != nil {
			return fmt.Errorf("failed to register planner metrics: %w", err)
		}
		metrics.SetGlobalHTTPCollector(httpCollector)
		metrics.SetGlobalPlannerCollector(plannerCollector)

		metricsServer = metrics.NewHTTPServer(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
		go func() {
			log.Infow("metrics server listening", "addr", metricsServer.Addr, "path", cfg.Metrics.Path)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorw("metrics server failed", "error", err)
			}
		}()
	}

	// 4. Initialize upstream clients
	geocoder := geocoding.NewNominatimClientWithConfig(
		cfg.Geocoding.BaseURL,
		cfg.Geocoding.UserAgent,
		cfg.Geocoding.Timeout,
		cfg.Geocoding.RateInterval,
		log,
	)
	osrm := routing.NewOSRMClientWithConfig(cfg.Routing.BaseURL, cfg.Routing.Timeout, log)
	log.Infow("upstream clients initialized",
		"geocoding", cfg.Geocoding.BaseURL,
		"routing", cfg.Routing.BaseURL,
	)

	// 5. Initialize the planning service
	service := apptrip.NewService(geocoder, osrm, shared.NewRealClock(), cfg.Planning.StartHour, log)

	// 6. Initialize the HTTP server
	handler := rest.NewHandler(service, log)
	server := rest.NewServer(rest.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		CORSOrigins:     cfg.Server.CORSOrigins,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, handler, log)

	// 7. Serve until the listener fails or a shutdown signal arrives
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	log.Infow("shutdown signal received")
	if metricsServer != nil {
		if err := metricsServer.Shutdown(context.Background()); err != nil {
			log.Warnw("metrics server shutdown failed", "error", err)
		}
	}
	if err := server.Stop(context.Background()); err != nil {
		return err
	}

	log.Infow("server stopped")
	return nil
}
