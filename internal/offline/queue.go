package offline

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ActionQueue is the durable store of not-yet-confirmed clock actions.
// Each action lives in its own JSON file under <dir>/<kind>/<id>.json so a
// crash mid-write can at worst lose the entry being written, never corrupt
// the rest of the queue. Entries survive process restarts.
type ActionQueue struct {
	dir    string
	logger *slog.Logger

	mu sync.Mutex
}

var ErrUnknownAction = errors.New("unknown queued action")

// OpenActionQueue prepares the queue directories under dir.
func OpenActionQueue(dir string, logger *slog.Logger) (*ActionQueue, error) {
	for _, kind := range []ActionKind{ActionClockIn, ActionClockOut} {
		if err := os.MkdirAll(filepath.Join(dir, string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("create queue dir: %w", err)
		}
	}
	return &ActionQueue{dir: dir, logger: logger}, nil
}

func (q *ActionQueue) path(kind ActionKind, id string) string {
	return filepath.Join(q.dir, string(kind), id+".json")
}

// Enqueue persists the action. The write goes through a temp file and a
// rename so readers never observe a half-written entry.
func (q *ActionQueue) Enqueue(action *QueuedAction) error {
	if !action.Kind.Valid() {
		return fmt.Errorf("enqueue: bad kind %q", action.Kind)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	data, err := json.Marshal(action)
	if err != nil {
		return fmt.Errorf("marshal queued action: %w", err)
	}

	target := q.path(action.Kind, action.ID)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write queued action: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("commit queued action: %w", err)
	}

	q.logger.Info("action queued", "id", action.ID, "kind", action.Kind)
	return nil
}

// List returns the pending actions of one kind in enqueue order.
func (q *ActionQueue) List(kind ActionKind) ([]QueuedAction, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.list(kind)
}

func (q *ActionQueue) list(kind ActionKind) ([]QueuedAction, error) {
	entries, err := os.ReadDir(filepath.Join(q.dir, string(kind)))
	if err != nil {
		return nil, fmt.Errorf("read queue dir: %w", err)
	}

	actions := []QueuedAction{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(q.dir, string(kind), entry.Name()))
		if err != nil {
			q.logger.Error("read queued action", "file", entry.Name(), "error", err)
			continue
		}
		var action QueuedAction
		if err := json.Unmarshal(data, &action); err != nil {
			q.logger.Error("decode queued action", "file", entry.Name(), "error", err)
			continue
		}
		actions = append(actions, action)
	}

	sort.Slice(actions, func(i, j int) bool {
		if actions[i].EnqueuedAt.Equal(actions[j].EnqueuedAt) {
			return actions[i].ID < actions[j].ID
		}
		return actions[i].EnqueuedAt.Before(actions[j].EnqueuedAt)
	})

	return actions, nil
}

// ListAll returns all pending actions of both kinds in enqueue order.
func (q *ActionQueue) ListAll() ([]QueuedAction, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	all := []QueuedAction{}
	for _, kind := range []ActionKind{ActionClockIn, ActionClockOut} {
		actions, err := q.list(kind)
		if err != nil {
			return nil, err
		}
		all = append(all, actions...)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].EnqueuedAt.Equal(all[j].EnqueuedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].EnqueuedAt.Before(all[j].EnqueuedAt)
	})

	return all, nil
}

// Delete removes a confirmed action from the queue.
func (q *ActionQueue) Delete(kind ActionKind, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	err := os.Remove(q.path(kind, id))
	if errors.Is(err, os.ErrNotExist) {
		return ErrUnknownAction
	}
	return err
}

// Len reports the number of pending actions across both kinds.
func (q *ActionQueue) Len() int {
	all, err := q.ListAll()
	if err != nil {
		q.logger.Error("queue length", "error", err)
		return 0
	}
	return len(all)
}
