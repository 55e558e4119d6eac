package handlers

import (
	"net/http"
	"time"

	"github.com/songphoh/temp-trackerV3/internal/domain"
	"github.com/songphoh/temp-trackerV3/internal/interfaces/rest"
)

type SummaryResponse struct {
	Success bool                     `json:"success"`
	Summary *domain.DashboardSummary `json:"summary"`
}

type ConfigResponse struct {
	Success bool       `json:"success"`
	Config  ConfigBody `json:"config"`
}

type ConfigBody struct {
	AppID        string `json:"appId"`
	Announcement string `json:"announcement"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *Handlers) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.entries.SummaryForDay(r.Context(), time.Now(), 20)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	total, err := h.employees.CountActive(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	summary.TotalEmployees = total

	rest.WriteJSON(w, http.StatusOK, SummaryResponse{Success: true, Summary: summary})
}

func (h *Handlers) AppConfig(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, ConfigResponse{
		Success: true,
		Config: ConfigBody{
			AppID:        h.app.ID,
			Announcement: h.app.Announcement,
		},
	})
}
