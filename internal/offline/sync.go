package offline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/songphoh/temp-trackerV3/internal/upstream"
)

// Notifier surfaces sync outcomes to the operator. Best effort: an
// implementation must never fail the drain.
type Notifier interface {
	ActionSynced(action *QueuedAction)
}

// LogNotifier reports synced actions through slog.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) ActionSynced(action *QueuedAction) {
	n.Logger.Info("queued action delivered",
		"id", action.ID,
		"kind", action.Kind,
		"queued_for", time.Since(action.EnqueuedAt).Round(time.Second),
	)
}

// DrainResult summarizes one drain pass.
type DrainResult struct {
	Attempted int       `json:"attempted"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	StartedAt time.Time `json:"startedAt"`
}

// SyncEngine replays the durable action queue against the upstream. At most
// one drain pass runs at a time; a trigger arriving while one is in flight
// is a no-op, not queued.
type SyncEngine struct {
	queue    *ActionQueue
	upstream *upstream.Client
	notifier Notifier
	logger   *slog.Logger

	mu       sync.Mutex
	draining bool
	last     *DrainResult
}

func NewSyncEngine(queue *ActionQueue, client *upstream.Client, notifier Notifier, logger *slog.Logger) *SyncEngine {
	return &SyncEngine{
		queue:    queue,
		upstream: client,
		notifier: notifier,
		logger:   logger,
	}
}

// LastResult returns the most recent completed drain summary, or nil if no
// drain has run yet.
func (e *SyncEngine) LastResult() *DrainResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return nil
	}
	result := *e.last
	return &result
}

// Drain replays every queued action in enqueue order. Entries whose replay
// succeeds are removed; failed entries stay queued for the next pass and do
// not abort the drain. The second return value is false when another drain
// was already in flight and nothing was done.
func (e *SyncEngine) Drain(ctx context.Context) (DrainResult, bool) {
	e.mu.Lock()
	if e.draining {
		e.mu.Unlock()
		return DrainResult{}, false
	}
	e.draining = true
	e.mu.Unlock()

	result := DrainResult{StartedAt: time.Now()}

	defer func() {
		e.mu.Lock()
		e.draining = false
		e.last = &result
		e.mu.Unlock()
	}()

	actions, err := e.queue.ListAll()
	if err != nil {
		e.logger.Error("list queued actions", "error", err)
		return result, true
	}

	for i := range actions {
		action := &actions[i]

		select {
		case <-ctx.Done():
			return result, true
		default:
		}

		result.Attempted++

		if err := e.replay(ctx, action); err != nil {
			result.Failed++
			e.logger.Warn("replay failed, action retained",
				"id", action.ID,
				"kind", action.Kind,
				"error", err,
			)
			continue
		}

		if err := e.queue.Delete(action.Kind, action.ID); err != nil {
			e.logger.Error("remove synced action", "id", action.ID, "error", err)
		}
		result.Succeeded++

		if e.notifier != nil {
			e.notifier.ActionSynced(action)
		}
	}

	if result.Attempted > 0 {
		e.logger.Info("drain pass complete",
			"attempted", result.Attempted,
			"succeeded", result.Succeeded,
			"failed", result.Failed,
		)
	}

	return result, true
}

type replayError struct {
	status int
}

func (e *replayError) Error() string {
	return fmt.Sprintf("upstream rejected replay: status %d", e.status)
}

func (e *SyncEngine) replay(ctx context.Context, action *QueuedAction) error {
	resp, err := e.upstream.Post(ctx, action.Kind.Path(), action.Payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return &replayError{status: resp.StatusCode}
	}
	return nil
}
