package offline_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/songphoh/temp-trackerV3/internal/offline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enqueueAt(t *testing.T, q *offline.ActionQueue, kind offline.ActionKind, at time.Time, payload string) *offline.QueuedAction {
	t.Helper()
	action := &offline.QueuedAction{
		ID:         offline.NewActionID(at),
		Kind:       kind,
		Payload:    json.RawMessage(payload),
		EnqueuedAt: at,
	}
	require.NoError(t, q.Enqueue(action))
	return action
}

func TestActionQueue_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	logger := testLogger()

	q, err := offline.OpenActionQueue(dir, logger)
	require.NoError(t, err)

	now := time.Now()
	first := enqueueAt(t, q, offline.ActionClockIn, now, `{"employeeId":"e1"}`)
	second := enqueueAt(t, q, offline.ActionClockOut, now.Add(time.Second), `{"employeeId":"e1"}`)

	// Simulate an agent restart.
	reopened, err := offline.OpenActionQueue(dir, logger)
	require.NoError(t, err)

	actions, err := reopened.ListAll()
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, first.ID, actions[0].ID)
	assert.Equal(t, second.ID, actions[1].ID)
	assert.JSONEq(t, `{"employeeId":"e1"}`, string(actions[0].Payload))
}

func TestActionQueue_ListAllOrdersByEnqueueTimeAcrossKinds(t *testing.T) {
	q, err := offline.OpenActionQueue(t.TempDir(), testLogger())
	require.NoError(t, err)

	now := time.Now()
	third := enqueueAt(t, q, offline.ActionClockIn, now.Add(2*time.Second), `{"employeeId":"e3"}`)
	first := enqueueAt(t, q, offline.ActionClockOut, now, `{"employeeId":"e1"}`)
	second := enqueueAt(t, q, offline.ActionClockIn, now.Add(time.Second), `{"employeeId":"e2"}`)

	actions, err := q.ListAll()
	require.NoError(t, err)
	require.Len(t, actions, 3)
	assert.Equal(t, first.ID, actions[0].ID)
	assert.Equal(t, second.ID, actions[1].ID)
	assert.Equal(t, third.ID, actions[2].ID)
}

func TestActionQueue_ListFiltersByKind(t *testing.T) {
	q, err := offline.OpenActionQueue(t.TempDir(), testLogger())
	require.NoError(t, err)

	now := time.Now()
	in := enqueueAt(t, q, offline.ActionClockIn, now, `{"employeeId":"e1"}`)
	enqueueAt(t, q, offline.ActionClockOut, now.Add(time.Second), `{"employeeId":"e1"}`)

	actions, err := q.List(offline.ActionClockIn)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, in.ID, actions[0].ID)
}

func TestActionQueue_DeleteRemovesEntry(t *testing.T) {
	q, err := offline.OpenActionQueue(t.TempDir(), testLogger())
	require.NoError(t, err)

	action := enqueueAt(t, q, offline.ActionClockIn, time.Now(), `{"employeeId":"e1"}`)
	require.Equal(t, 1, q.Len())

	require.NoError(t, q.Delete(action.Kind, action.ID))
	assert.Equal(t, 0, q.Len())

	assert.ErrorIs(t, q.Delete(action.Kind, action.ID), offline.ErrUnknownAction)
}

func TestActionQueue_RejectsUnknownKind(t *testing.T) {
	q, err := offline.OpenActionQueue(t.TempDir(), testLogger())
	require.NoError(t, err)

	err = q.Enqueue(&offline.QueuedAction{
		ID:         offline.NewActionID(time.Now()),
		Kind:       offline.ActionKind("lunch-break"),
		Payload:    json.RawMessage(`{}`),
		EnqueuedAt: time.Now(),
	})
	assert.Error(t, err)
}

func TestNewActionID_SortsByCreationTime(t *testing.T) {
	earlier := offline.NewActionID(time.Now())
	later := offline.NewActionID(time.Now().Add(time.Second))
	assert.Less(t, earlier, later)
}
