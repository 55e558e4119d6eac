package offline

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/songphoh/temp-trackerV3/internal/interfaces/rest"
)

// Admin exposes the agent's local inspection endpoints, consumed by the
// tempctl CLI and curl-wielding operators.
type Admin struct {
	queue   *ActionQueue
	engine  *SyncEngine
	monitor *Monitor
	logger  *slog.Logger
}

func NewAdmin(queue *ActionQueue, engine *SyncEngine, monitor *Monitor, logger *slog.Logger) *Admin {
	return &Admin{
		queue:   queue,
		engine:  engine,
		monitor: monitor,
		logger:  logger,
	}
}

func (a *Admin) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /agent/status", a.Status)
	mux.HandleFunc("GET /agent/queue", a.Queue)
	mux.HandleFunc("POST /agent/sync", a.Sync)
}

type StatusResponse struct {
	Online     bool         `json:"online"`
	QueueDepth int          `json:"queueDepth"`
	LastDrain  *DrainResult `json:"lastDrain,omitempty"`
}

type QueueResponse struct {
	Actions []QueuedAction `json:"actions"`
}

type SyncTriggerResponse struct {
	Triggered bool        `json:"triggered"`
	Result    DrainResult `json:"result"`
}

func (a *Admin) Status(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, StatusResponse{
		Online:     a.monitor.Online(),
		QueueDepth: a.queue.Len(),
		LastDrain:  a.engine.LastResult(),
	})
}

func (a *Admin) Queue(w http.ResponseWriter, r *http.Request) {
	actions, err := a.queue.ListAll()
	if err != nil {
		a.logger.Error("list queue", "error", err)
		http.Error(w, "queue unavailable", http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, QueueResponse{Actions: actions})
}

// Sync triggers a drain pass. Runs synchronously so the caller sees the
// result; reports triggered=false when a pass was already in flight.
func (a *Admin) Sync(w http.ResponseWriter, r *http.Request) {
	result, ran := a.engine.Drain(context.WithoutCancel(r.Context()))
	rest.WriteJSON(w, http.StatusOK, SyncTriggerResponse{Triggered: ran, Result: result})
}
