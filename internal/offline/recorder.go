package offline

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/songphoh/temp-trackerV3/internal/upstream"
)

// Recorder owns the mutating path. Clock-in and clock-out requests bypass
// the Router: they are sent straight to the upstream, and only when the
// send fails while the Monitor reports no connectivity are they written to
// the durable queue and acknowledged with a soft success. The kiosk never
// sees a hard failure for a clock action performed offline.
type Recorder struct {
	upstream *upstream.Client
	queue    *ActionQueue
	monitor  *Monitor
	logger   *slog.Logger
}

func NewRecorder(client *upstream.Client, queue *ActionQueue, monitor *Monitor, logger *slog.Logger) *Recorder {
	return &Recorder{
		upstream: client,
		queue:    queue,
		monitor:  monitor,
		logger:   logger,
	}
}

type queuedResponse struct {
	Success bool   `json:"success"`
	Queued  bool   `json:"queued"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Handle returns the handler for one action kind.
func (rec *Recorder) Handle(kind ActionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "unreadable body", http.StatusBadRequest)
			return
		}

		resp, err := rec.upstream.Post(r.Context(), kind.Path(), body)
		if err == nil {
			defer resp.Body.Close()
			// Reachable upstream: relay the answer verbatim, including
			// rejections. Fallbacks are for availability, not validation.
			for k, vs := range resp.Header {
				for _, v := range vs {
					w.Header().Add(k, v)
				}
			}
			w.WriteHeader(resp.StatusCode)
			io.Copy(w, resp.Body)
			return
		}

		if rec.monitor.Online() {
			// Transport failed but the monitor still believes we are
			// online: surface the failure rather than queueing blind.
			rec.logger.Error("clock action failed while online", "kind", kind, "error", err)
			http.Error(w, "upstream unreachable", http.StatusBadGateway)
			return
		}

		action := &QueuedAction{
			ID:         NewActionID(time.Now()),
			Kind:       kind,
			Payload:    body,
			EnqueuedAt: time.Now(),
		}

		if err := rec.queue.Enqueue(action); err != nil {
			// Queue write failure is the one genuinely lossy path: there is
			// no further fallback for a mutating action.
			rec.logger.Error("enqueue failed, action lost", "kind", kind, "error", err)
			http.Error(w, "could not queue action", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(queuedResponse{
			Success: true,
			Queued:  true,
			ID:      action.ID,
			Message: "saved offline, will send when online",
		})
	}
}
