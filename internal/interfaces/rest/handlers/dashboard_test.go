package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/songphoh/temp-trackerV3/internal/domain"
	"github.com/songphoh/temp-trackerV3/internal/interfaces/rest/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_ReportsOK(t *testing.T) {
	fx := newFixture(t)

	w := fx.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestDashboardSummary_CountsCurrentlyClockedIn(t *testing.T) {
	fx := newFixture(t)
	a := fx.employees.add(&domain.Employee{EmpCode: "E001", FullName: "Somchai", Active: true})
	b := fx.employees.add(&domain.Employee{EmpCode: "E002", FullName: "Malee", Active: true})

	// a clocks in and out, b stays clocked in.
	require.Equal(t, http.StatusOK, fx.do(http.MethodPost, "/api/clock-in", `{"employeeId":"`+a.ID+`"}`, nil).Code)
	require.Equal(t, http.StatusOK, fx.do(http.MethodPost, "/api/clock-out", `{"employeeId":"`+a.ID+`"}`, nil).Code)
	require.Equal(t, http.StatusOK, fx.do(http.MethodPost, "/api/clock-in", `{"employeeId":"`+b.ID+`"}`, nil).Code)

	w := fx.do(http.MethodGet, "/api/dashboard/summary", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 2, resp.Summary.TotalEmployees)
	assert.Equal(t, 1, resp.Summary.ClockedIn, "clock-out must remove an employee from the clocked-in count")
	assert.Len(t, resp.Summary.Entries, 3)
}

func TestAppConfig_ServesClientConfiguration(t *testing.T) {
	fx := newFixture(t)

	w := fx.do(http.MethodGet, "/api/config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.ConfigResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "timeclock", resp.Config.AppID)
	assert.Equal(t, "hello", resp.Config.Announcement)
}
