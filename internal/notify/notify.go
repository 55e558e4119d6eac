// Package notify announces clock events to operators. Delivery transports
// (Telegram and the like) plug in behind the Notifier port; only the slog
// implementation ships here.
package notify

import (
	"context"
	"log/slog"

	"github.com/songphoh/temp-trackerV3/internal/domain"
)

type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) ClockEvent(ctx context.Context, employee *domain.Employee, entry *domain.TimeEntry) {
	n.logger.Info("clock notification",
		"employee", employee.FullName,
		"kind", entry.Kind,
		"recorded_at", entry.RecordedAt,
	)
}
