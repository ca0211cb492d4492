package runlog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRecorder_RecordsPerRun(t *testing.T) {
	recorder := NewMemoryRecorder()
	runA := uuid.New()
	runB := uuid.New()

	recorder.Record(Event{RunID: runA, Type: EventRunStarted})
	recorder.Record(Event{RunID: runA, Type: EventProductPlanned, ProductID: "SKU001"})
	recorder.Record(Event{RunID: runB, Type: EventRunStarted})
	recorder.Record(Event{RunID: runA, Type: EventRunCompleted})

	eventsA := recorder.Events(runA)
	require.Len(t, eventsA, 3)
	assert.Equal(t, EventRunStarted, eventsA[0].Type)
	assert.Equal(t, EventRunCompleted, eventsA[2].Type)

	assert.Len(t, recorder.Events(runB), 1)
	assert.Empty(t, recorder.Events(uuid.New()))

	runs := recorder.Runs()
	require.Len(t, runs, 2)
	assert.Equal(t, runA, runs[0])
	assert.Equal(t, runB, runs[1])
}

func TestMemoryRecorder_DefaultsTimestamp(t *testing.T) {
	recorder := NewMemoryRecorder()
	runID := uuid.New()

	recorder.Record(Event{RunID: runID, Type: EventRunStarted})

	events := recorder.Events(runID)
	require.Len(t, events, 1)
	assert.False(t, events[0].OccurredAt.IsZero())
}

func TestMemoryRecorder_Skipped(t *testing.T) {
	recorder := NewMemoryRecorder()
	runID := uuid.New()

	recorder.Record(Event{RunID: runID, Type: EventRunStarted})
	recorder.Record(Event{RunID: runID, Type: EventProductSkipped, ProductID: "SKU001", Reason: "bad data"})
	recorder.Record(Event{RunID: runID, Type: EventProductPlanned, ProductID: "SKU002"})

	skipped := recorder.Skipped(runID)
	require.Len(t, skipped, 1)
	assert.EqualValues(t, "SKU001", skipped[0])
}
