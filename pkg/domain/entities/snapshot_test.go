package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductSnapshot_Validation(t *testing.T) {
	snapshot, err := NewProductSnapshot(
		"SKU001", "Widget", 100, 20, decimal.NewFromInt(800), decimal.NewFromInt(1200))
	require.NoError(t, err)
	assert.Equal(t, Quantity(100), snapshot.CurrentStock)

	_, err = NewProductSnapshot("", "Widget", 100, 20, decimal.Zero, decimal.Zero)
	require.Error(t, err)

	_, err = NewProductSnapshot("SKU001", "Widget", 100, -1, decimal.Zero, decimal.Zero)
	require.Error(t, err)
}

func TestProductSnapshot_StockMath(t *testing.T) {
	snapshot, err := NewProductSnapshot(
		"SKU001", "Widget", 100, 20, decimal.NewFromInt(800), decimal.NewFromInt(1200))
	require.NoError(t, err)

	snapshot.OpenPurchases = []OpenPurchaseLine{
		{Quantity: 30, State: PODraft},
		{Quantity: 20, State: POConfirmed},
		{Quantity: 15, State: POReceived},
		{Quantity: 10, State: POCancelled},
	}
	snapshot.OpenSales = []OpenSalesLine{
		{Quantity: 25, State: SOProcessing},
		{Quantity: 40, State: SODelivered},
		{Quantity: 5, State: SOCancelled},
	}

	assert.Equal(t, Quantity(50), snapshot.InTransitStock())
	assert.Equal(t, Quantity(25), snapshot.CommittedStock())
	assert.Equal(t, Quantity(125), snapshot.AvailableStock())
}

func TestProductSnapshot_PreferredSupplier(t *testing.T) {
	snapshot, err := NewProductSnapshot(
		"SKU001", "Widget", 100, 20, decimal.NewFromInt(800), decimal.NewFromInt(1200))
	require.NoError(t, err)

	assert.Nil(t, snapshot.PreferredSupplier())

	snapshot.Suppliers = []SupplierOffer{
		{SupplierID: "SUP01", Preferred: false},
		{SupplierID: "SUP02", Preferred: true},
	}
	preferred := snapshot.PreferredSupplier()
	require.NotNil(t, preferred)
	assert.Equal(t, SupplierID("SUP02"), preferred.SupplierID)
}

func TestPriority_Ordering(t *testing.T) {
	assert.True(t, PriorityCritica > PriorityAlta)
	assert.True(t, PriorityAlta > PriorityMedia)
	assert.True(t, PriorityMedia > PriorityBaja)

	assert.Equal(t, "critica", PriorityCritica.String())
	assert.Equal(t, "baja", PriorityBaja.String())
}

func TestNewForecastResult(t *testing.T) {
	generatedAt := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	result, err := NewForecastResult("SKU001", 30, -5, ModelLinear, 0.8, 1.1, generatedAt)
	require.NoError(t, err)
	// Negative predictions clamp to zero.
	assert.Equal(t, Quantity(0), result.PredictedQuantity)

	_, err = NewForecastResult("", 30, 5, ModelLinear, 0.8, 1.0, generatedAt)
	require.Error(t, err)

	_, err = NewForecastResult("SKU001", 0, 5, ModelLinear, 0.8, 1.0, generatedAt)
	require.Error(t, err)

	_, err = NewForecastResult("SKU001", 30, 5, ModelLinear, 1.2, 1.0, generatedAt)
	require.Error(t, err)
}

func TestNewReplenishmentRecommendation(t *testing.T) {
	generatedAt := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	rec, err := NewReplenishmentRecommendation(
		"SKU001", PriorityAlta, 120, 30, 50, 4.5, "SUP01",
		decimal.NewFromInt(96000), "stock bajo", generatedAt)
	require.NoError(t, err)
	assert.Equal(t, Quantity(120), rec.SuggestedQuantity)

	_, err = NewReplenishmentRecommendation(
		"", PriorityAlta, 120, 30, 50, 4.5, "", decimal.Zero, "", generatedAt)
	require.Error(t, err)

	_, err = NewReplenishmentRecommendation(
		"SKU001", PriorityAlta, -1, 30, 50, 4.5, "", decimal.Zero, "", generatedAt)
	require.Error(t, err)

	_, err = NewReplenishmentRecommendation(
		"SKU001", PriorityAlta, 120, 30, 50, -0.5, "", decimal.Zero, "", generatedAt)
	require.Error(t, err)
}
