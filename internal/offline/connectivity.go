package offline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/songphoh/temp-trackerV3/internal/upstream"
)

// Monitor tracks whether the upstream is currently reachable. It polls the
// health endpoint on an interval and reports transitions (went-online,
// went-offline) to an optional callback.
type Monitor struct {
	upstream *upstream.Client
	interval time.Duration
	onChange func(online bool)
	logger   *slog.Logger

	mu     sync.Mutex
	online bool
}

func NewMonitor(client *upstream.Client, interval time.Duration, onChange func(online bool), logger *slog.Logger) *Monitor {
	return &Monitor{
		upstream: client,
		interval: interval,
		onChange: onChange,
		logger:   logger,
		online:   true,
	}
}

// Online reports the last observed connectivity state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Probe performs one health check and updates the state, firing the
// transition callback when the state flips.
func (m *Monitor) Probe(ctx context.Context) bool {
	err := m.upstream.Health(ctx)
	online := err == nil

	m.mu.Lock()
	changed := online != m.online
	m.online = online
	m.mu.Unlock()

	if changed {
		if online {
			m.logger.Info("upstream reachable again")
		} else {
			m.logger.Warn("upstream unreachable", "error", err)
		}
		if m.onChange != nil {
			m.onChange(online)
		}
	}

	return online
}

// Start polls until the context is canceled.
func (m *Monitor) Start(ctx context.Context) {
	m.logger.Info("connectivity monitor started", "interval", m.interval)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Probe(ctx)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("connectivity monitor stopping")
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}
