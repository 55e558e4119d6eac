package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/songphoh/temp-trackerV3/internal/domain"
	"github.com/songphoh/temp-trackerV3/internal/interfaces/rest"
)

// ClockRequest is the body of POST /api/clock-in and /api/clock-out.
// DisplayName and AvatarURL are echoed client-side state the kiosk attaches
// so a queued action can still be rendered while offline.
type ClockRequest struct {
	EmployeeID  string     `json:"employeeId" validate:"required"`
	Note        string     `json:"note"`
	Latitude    *float64   `json:"lat"`
	Longitude   *float64   `json:"lng"`
	ClientTime  *time.Time `json:"clientTime"`
	DisplayName string     `json:"displayName"`
	AvatarURL   string     `json:"avatarUrl"`
}

type ClockResponse struct {
	Success          bool              `json:"success"`
	AlreadyClockedIn bool              `json:"alreadyClockedIn,omitempty"`
	Entry            *domain.TimeEntry `json:"entry,omitempty"`
}

func (h *Handlers) ClockIn(w http.ResponseWriter, r *http.Request) {
	h.handleClock(w, r, domain.KindClockIn)
}

func (h *Handlers) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.handleClock(w, r, domain.KindClockOut)
}

func (h *Handlers) handleClock(w http.ResponseWriter, r *http.Request, kind domain.EntryKind) {
	var req ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteJSON(w, http.StatusBadRequest, rest.ErrorResponse{
			Success: false,
			Error:   rest.ErrorDetail{Code: "INVALID_BODY", Message: "malformed request body"},
		})
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		rest.WriteError(w, domain.ErrMissingEmployeeID)
		return
	}

	employee, err := h.employees.FindByID(r.Context(), req.EmployeeID)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	if !employee.Active {
		rest.WriteError(w, domain.ErrEmployeeInactive)
		return
	}

	// A repeated clock-in on the same day is answered affirmatively without
	// recording a second entry. This is what makes offline replays of an
	// already-delivered clock-in self-correcting.
	if kind == domain.KindClockIn {
		last, err := h.entries.LastEntryOfDay(r.Context(), employee.ID, time.Now())
		if err != nil {
			rest.WriteError(w, err)
			return
		}
		if last != nil && last.Kind == domain.KindClockIn {
			rest.WriteJSON(w, http.StatusOK, ClockResponse{
				Success:          true,
				AlreadyClockedIn: true,
				Entry:            last,
			})
			return
		}
	}

	entry := &domain.TimeEntry{
		EmployeeID: employee.ID,
		Kind:       kind,
		Note:       req.Note,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		ClientTime: req.ClientTime,
		RecordedAt: time.Now(),
	}

	if err := h.entries.Insert(r.Context(), entry); err != nil {
		rest.WriteError(w, err)
		return
	}

	h.logger.Info("clock event recorded",
		"employee_id", employee.ID,
		"kind", entry.Kind,
		"entry_id", entry.ID,
	)

	go h.notifier.ClockEvent(context.WithoutCancel(r.Context()), employee, entry)

	rest.WriteJSON(w, http.StatusOK, ClockResponse{Success: true, Entry: entry})
}
