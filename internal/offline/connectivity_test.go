package offline_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/songphoh/temp-trackerV3/internal/offline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor_FiresCallbackOnTransitionsOnly(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	var transitions []bool
	monitor := offline.NewMonitor(newTestClient(t, srv.URL), time.Minute, func(online bool) {
		transitions = append(transitions, online)
	}, testLogger())

	ctx := context.Background()

	// Healthy probe on an already-online monitor: no transition.
	require.True(t, monitor.Probe(ctx))
	assert.Empty(t, transitions)

	healthy.Store(false)
	require.False(t, monitor.Probe(ctx))
	require.False(t, monitor.Probe(ctx))
	assert.Equal(t, []bool{false}, transitions, "repeat failures must not re-fire the callback")

	healthy.Store(true)
	require.True(t, monitor.Probe(ctx))
	assert.Equal(t, []bool{false, true}, transitions)
	assert.True(t, monitor.Online())
}

func TestMonitor_NonOKHealthCountsAsOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "warming up", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	monitor := offline.NewMonitor(newTestClient(t, srv.URL), time.Minute, nil, testLogger())
	assert.False(t, monitor.Probe(context.Background()))
	assert.False(t, monitor.Online())
}
