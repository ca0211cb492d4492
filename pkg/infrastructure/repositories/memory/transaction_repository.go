package memory

import (
	"sort"
	"time"

	"github.com/solvex/demandplan/pkg/domain/entities"
	"github.com/solvex/demandplan/pkg/domain/repositories"
)

// TransactionRepository provides in-memory transaction log storage
type TransactionRepository struct {
	events     []entities.TransactionEvent
	byProduct  map[entities.ProductID][]int
	byCustomer map[entities.CustomerID][]int
}

// NewTransactionRepository creates a new in-memory transaction repository
func NewTransactionRepository(expectedEvents int) *TransactionRepository {
	return &TransactionRepository{
		events:     make([]entities.TransactionEvent, 0, expectedEvents),
		byProduct:  make(map[entities.ProductID][]int),
		byCustomer: make(map[entities.CustomerID][]int),
	}
}

// Verify interface compliance
var _ repositories.TransactionRepository = (*TransactionRepository)(nil)

// LoadEvents loads events into the repository
func (r *TransactionRepository) LoadEvents(events []*entities.TransactionEvent) error {
	for _, event := range events {
		r.AddEvent(*event)
	}
	return nil
}

// AddEvent appends an event to the log
func (r *TransactionRepository) AddEvent(event entities.TransactionEvent) {
	index := len(r.events)
	r.events = append(r.events, event)
	r.byProduct[event.ProductID] = append(r.byProduct[event.ProductID], index)
	if event.CustomerID != "" {
		r.byCustomer[event.CustomerID] = append(r.byCustomer[event.CustomerID], index)
	}
}

// GetProductEvents returns a product's events at or after the cutoff, oldest
// first
func (r *TransactionRepository) GetProductEvents(
	productID entities.ProductID,
	since time.Time,
) ([]*entities.TransactionEvent, error) {
	return r.collect(r.byProduct[productID], since), nil
}

// GetCustomerEvents returns a customer's events at or after the cutoff,
// oldest first
func (r *TransactionRepository) GetCustomerEvents(
	customerID entities.CustomerID,
	since time.Time,
) ([]*entities.TransactionEvent, error) {
	return r.collect(r.byCustomer[customerID], since), nil
}

// GetAllEvents returns every event at or after the cutoff, oldest first
func (r *TransactionRepository) GetAllEvents(since time.Time) ([]*entities.TransactionEvent, error) {
	indices := make([]int, len(r.events))
	for i := range r.events {
		indices[i] = i
	}
	return r.collect(indices, since), nil
}

func (r *TransactionRepository) collect(indices []int, since time.Time) []*entities.TransactionEvent {
	var events []*entities.TransactionEvent
	for _, i := range indices {
		if r.events[i].OccurredAt.Before(since) {
			continue
		}
		events = append(events, &r.events[i])
	}
	sort.Slice(events, func(a, b int) bool {
		return events[a].OccurredAt.Before(events[b].OccurredAt)
	})
	return events
}
