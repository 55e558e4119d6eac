// Package offline is the interception layer that keeps kiosk devices usable
// without connectivity: a request router with per-resource cache strategies,
// a durable queue of unsent clock actions, and a sync engine that replays
// the queue when the upstream becomes reachable again.
package offline

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"
)

// ActionKind discriminates the two queueable mutating actions.
type ActionKind string

const (
	ActionClockIn  ActionKind = "clock_in"
	ActionClockOut ActionKind = "clock_out"
)

// Path returns the upstream endpoint the action replays against.
func (k ActionKind) Path() string {
	if k == ActionClockOut {
		return "/api/clock-out"
	}
	return "/api/clock-in"
}

func (k ActionKind) Valid() bool {
	return k == ActionClockIn || k == ActionClockOut
}

// QueuedAction is a mutating request that could not be delivered and waits
// in the durable queue. Payload is the verbatim request body, so a replay
// sends exactly what the kiosk originally tried to send.
type QueuedAction struct {
	ID         string          `json:"id"`
	Kind       ActionKind      `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
}

// NewActionID builds a locally unique id: enqueue time in unix millis plus
// a random suffix to avoid collisions on the same millisecond.
func NewActionID(now time.Time) string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%013d-%08x", now.UnixMilli(), now.UnixNano()%1e8)
	}
	return fmt.Sprintf("%013d-%08x", now.UnixMilli(), b)
}
