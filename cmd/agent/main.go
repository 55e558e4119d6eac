package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/songphoh/temp-trackerV3/internal/config"
	"github.com/songphoh/temp-trackerV3/internal/interfaces/rest/middleware"
	"github.com/songphoh/temp-trackerV3/internal/offline"
	"github.com/songphoh/temp-trackerV3/internal/upstream"
	"github.com/songphoh/temp-trackerV3/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting offline edge agent",
		"port", cfg.Agent.Port,
		"upstream", cfg.Upstream.BaseURL,
		"data_dir", cfg.Agent.DataDir,
	)

	client, err := upstream.NewClient(cfg.Upstream)
	if err != nil {
		logger.Error("failed to build upstream client", "error", err)
		os.Exit(1)
	}

	queue, err := offline.OpenActionQueue(filepath.Join(cfg.Agent.DataDir, "queue"), logger)
	if err != nil {
		logger.Error("failed to open action queue", "error", err)
		os.Exit(1)
	}

	cacheDir := filepath.Join(cfg.Agent.DataDir, "cache")
	staticCache, err := offline.OpenResponseCache(cacheDir, "static-"+cfg.Agent.CacheVersion, 0, logger)
	if err != nil {
		logger.Error("failed to open static cache", "error", err)
		os.Exit(1)
	}
	apiCache, err := offline.OpenResponseCache(cacheDir, "api", cfg.Cache.APITTL, logger)
	if err != nil {
		logger.Error("failed to open api cache", "error", err)
		os.Exit(1)
	}

	engine := offline.NewSyncEngine(queue, client, &offline.LogNotifier{Logger: logger}, logger)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	monitor := offline.NewMonitor(client, cfg.Sync.ProbeInterval, func(online bool) {
		if online {
			go engine.Drain(workerCtx)
		}
	}, logger)

	router := offline.NewRouter(
		client,
		staticCache,
		apiCache,
		cfg.Cache.DedupTTL,
		&offline.Synthesizer{},
		logger,
	)
	if err := router.PrecacheOfflinePage(); err != nil {
		logger.Error("failed to precache offline page", "error", err)
	}

	recorder := offline.NewRecorder(client, queue, monitor, logger)
	admin := offline.NewAdmin(queue, engine, monitor, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/clock-in", recorder.Handle(offline.ActionClockIn))
	mux.HandleFunc("POST /api/clock-out", recorder.Handle(offline.ActionClockOut))
	admin.Routes(mux)
	mux.Handle("/", router)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Agent.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	syncWorker := worker.NewSyncWorker(engine, monitor, apiCache, cfg.Sync.Interval, logger)

	go monitor.Start(workerCtx)
	go syncWorker.Start(workerCtx)

	go func() {
		logger.Info("agent listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("agent server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down agent...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("agent forced to shutdown", "error", err)
	}

	logger.Info("agent exited")
}
