package runlog

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

// Event types recorded during a planning run
const (
	EventRunStarted     = "run_started"
	EventRunCompleted   = "run_completed"
	EventProductPlanned = "product_planned"
	EventProductSkipped = "product_skipped"
)

// Event is one audit record of a planning run
type Event struct {
	RunID      uuid.UUID
	Type       string
	ProductID  entities.ProductID
	Reason     string
	OccurredAt time.Time
}

// Recorder records planning run events
type Recorder interface {
	Record(event Event)
	Events(runID uuid.UUID) []Event
}

// MemoryRecorder is an in-memory, per-run append-only event log
type MemoryRecorder struct {
	mutex  sync.RWMutex
	byRun  map[uuid.UUID][]Event
	allIDs []uuid.UUID
}

// NewMemoryRecorder creates an empty in-memory recorder
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{
		byRun: make(map[uuid.UUID][]Event),
	}
}

// Verify interface compliance
var _ Recorder = (*MemoryRecorder)(nil)

// Record appends an event to its run's stream
func (r *MemoryRecorder) Record(event Event) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	if _, exists := r.byRun[event.RunID]; !exists {
		r.allIDs = append(r.allIDs, event.RunID)
	}
	r.byRun[event.RunID] = append(r.byRun[event.RunID], event)
}

// Events returns the recorded events of one run in append order
func (r *MemoryRecorder) Events(runID uuid.UUID) []Event {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	events := r.byRun[runID]
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// Runs returns every recorded run ID in first-seen order
func (r *MemoryRecorder) Runs() []uuid.UUID {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]uuid.UUID, len(r.allIDs))
	copy(out, r.allIDs)
	return out
}

// Skipped returns the product IDs skipped during a run
func (r *MemoryRecorder) Skipped(runID uuid.UUID) []entities.ProductID {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var skipped []entities.ProductID
	for _, event := range r.byRun[runID] {
		if event.Type == EventProductSkipped {
			skipped = append(skipped, event.ProductID)
		}
	}
	return skipped
}
