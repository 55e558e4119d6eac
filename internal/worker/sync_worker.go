package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/songphoh/temp-trackerV3/internal/offline"
)

// SyncWorker is the periodic wake-up that drains the offline action queue
// and sweeps expired API cache entries. The connectivity monitor's
// went-online transition triggers additional drains between ticks.
type SyncWorker struct {
	engine   *offline.SyncEngine
	monitor  *offline.Monitor
	apiCache *offline.ResponseCache
	interval time.Duration
	logger   *slog.Logger
}

func NewSyncWorker(
	engine *offline.SyncEngine,
	monitor *offline.Monitor,
	apiCache *offline.ResponseCache,
	interval time.Duration,
	logger *slog.Logger,
) *SyncWorker {
	return &SyncWorker{
		engine:   engine,
		monitor:  monitor,
		apiCache: apiCache,
		interval: interval,
		logger:   logger,
	}
}

func (w *SyncWorker) Start(ctx context.Context) {
	w.logger.Info("sync worker started", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("sync worker stopping")
			return
		case <-ticker.C:
			if w.monitor.Online() {
				w.engine.Drain(ctx)
			}
			w.apiCache.Sweep()
		}
	}
}
