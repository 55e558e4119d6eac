package offline

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/songphoh/temp-trackerV3/internal/domain"
)

// Synthesizer fabricates schema-compatible placeholder responses for the
// known read endpoints when neither network nor cache can answer. Bodies
// carry an explicit offline marker and zero values, so the kiosk UI renders
// an empty state instead of branching on transport errors. Responses are
// always 200 at the transport level; the failure semantics live in the body.
type Synthesizer struct{}

type OfflineRoster struct {
	Success   bool              `json:"success"`
	Offline   bool              `json:"offline"`
	Employees []domain.Employee `json:"employees"`
}

type OfflineSummary struct {
	Success bool                    `json:"success"`
	Offline bool                    `json:"offline"`
	Summary domain.DashboardSummary `json:"summary"`
}

type OfflineConfig struct {
	Success bool              `json:"success"`
	Offline bool              `json:"offline"`
	Config  OfflineConfigBody `json:"config"`
}

type OfflineConfigBody struct {
	AppID        string `json:"appId"`
	Announcement string `json:"announcement"`
}

// OfflineFailure is the generic envelope for endpoints outside the known set.
type OfflineFailure struct {
	Success bool   `json:"success"`
	Offline bool   `json:"offline"`
	Message string `json:"message"`
}

// Payload returns the synthetic body for the given request path.
func (s *Synthesizer) Payload(path string) any {
	switch {
	case strings.Contains(path, "/api/employees"):
		return OfflineRoster{Success: true, Offline: true, Employees: []domain.Employee{}}
	case strings.Contains(path, "/api/dashboard/summary"):
		return OfflineSummary{
			Success: true,
			Offline: true,
			Summary: domain.DashboardSummary{Entries: []domain.TimeEntry{}},
		}
	case strings.Contains(path, "/api/config"):
		return OfflineConfig{Success: true, Offline: true}
	default:
		return OfflineFailure{Success: false, Offline: true, Message: "no connectivity"}
	}
}

// Respond writes the synthetic response for path.
func (s *Synthesizer) Respond(w http.ResponseWriter, path string) {
	writeCached(w, s.Response(path), false)
}

// Response builds the synthetic response for path as a relayable value.
func (s *Synthesizer) Response(path string) *CachedResponse {
	body, _ := json.Marshal(s.Payload(path))
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("X-Served-From", "synthesizer")
	return &CachedResponse{
		Status:   http.StatusOK,
		Header:   header,
		Body:     body,
		StoredAt: time.Now(),
	}
}
