package memory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

func testEvent(t *testing.T, productID, customerID string, occurredAt time.Time) *entities.TransactionEvent {
	t.Helper()
	event, err := entities.NewTransactionEvent(
		entities.ProductID(productID), entities.Sale, 2,
		decimal.NewFromInt(100), entities.CustomerID(customerID), occurredAt, 0)
	require.NoError(t, err)
	return event
}

func TestTransactionRepository_ProductAndCustomerIndexes(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := NewTransactionRepository(4)

	err := repo.LoadEvents([]*entities.TransactionEvent{
		testEvent(t, "SKU001", "C1", base.AddDate(0, 0, 2)),
		testEvent(t, "SKU002", "C1", base.AddDate(0, 0, 1)),
		testEvent(t, "SKU001", "C2", base),
		testEvent(t, "SKU001", "", base.AddDate(0, 0, 3)),
	})
	require.NoError(t, err)

	productEvents, err := repo.GetProductEvents("SKU001", time.Time{})
	require.NoError(t, err)
	require.Len(t, productEvents, 3)
	// Oldest first regardless of insertion order.
	assert.True(t, productEvents[0].OccurredAt.Equal(base))

	customerEvents, err := repo.GetCustomerEvents("C1", time.Time{})
	require.NoError(t, err)
	assert.Len(t, customerEvents, 2)

	// Anonymous events are not indexed by customer.
	anonymous, err := repo.GetCustomerEvents("", time.Time{})
	require.NoError(t, err)
	assert.Empty(t, anonymous)

	all, err := repo.GetAllEvents(time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestTransactionRepository_SinceCutoff(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := NewTransactionRepository(3)

	require.NoError(t, repo.LoadEvents([]*entities.TransactionEvent{
		testEvent(t, "SKU001", "C1", base.AddDate(0, 0, -40)),
		testEvent(t, "SKU001", "C1", base.AddDate(0, 0, -10)),
		testEvent(t, "SKU001", "C1", base),
	}))

	events, err := repo.GetProductEvents("SKU001", base.AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].OccurredAt.Equal(base.AddDate(0, 0, -10)))

	// The cutoff is inclusive.
	events, err = repo.GetProductEvents("SKU001", base)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestTransactionRepository_UnknownProduct(t *testing.T) {
	repo := NewTransactionRepository(0)

	events, err := repo.GetProductEvents("MISSING", time.Time{})
	require.NoError(t, err)
	assert.Empty(t, events)
}
