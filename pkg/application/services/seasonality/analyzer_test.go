package seasonality

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

func sale(t *testing.T, quantity int64, occurredAt time.Time) *entities.TransactionEvent {
	t.Helper()
	event, err := entities.NewTransactionEvent(
		"SKU001", entities.Sale, entities.Quantity(quantity),
		decimal.NewFromInt(100), "C1", occurredAt, 0)
	require.NoError(t, err)
	return event
}

func TestAnalyze_DefaultsWithoutSales(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	profile := NewAnalyzer().Analyze("SKU001", nil, asOf)

	assert.Equal(t, entities.ProductID("SKU001"), profile.ProductID)
	assert.InDelta(t, 1.0, profile.Factor, 1e-9)
	assert.Equal(t, time.January, profile.PeakMonth)
	assert.Empty(t, profile.MonthlyTotals)
}

func TestAnalyze_FindsPeakMonth(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	events := []*entities.TransactionEvent{
		sale(t, 10, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
		sale(t, 30, time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)),
		sale(t, 20, time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)),
	}

	profile := NewAnalyzer().Analyze("SKU001", events, asOf)

	assert.Equal(t, time.May, profile.PeakMonth)
	// Peak 50 over an average of 30 across the two observed months.
	assert.InDelta(t, 50.0/30.0, profile.Factor, 1e-6)
	assert.InDelta(t, 50.0, profile.MonthlyTotals[time.May], 1e-9)
	assert.InDelta(t, 10.0, profile.MonthlyTotals[time.March], 1e-9)
}

func TestAnalyze_IgnoresNonSalesAndOldEvents(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	purchase, err := entities.NewTransactionEvent(
		"SKU001", entities.Purchase, 100, decimal.NewFromInt(80), "", asOf.AddDate(0, 0, -10), 100)
	require.NoError(t, err)

	events := []*entities.TransactionEvent{
		purchase,
		sale(t, 10, asOf.AddDate(0, 0, -400)),
	}

	profile := NewAnalyzer().Analyze("SKU001", events, asOf)
	assert.InDelta(t, 1.0, profile.Factor, 1e-9)
	assert.Empty(t, profile.MonthlyTotals)
}
