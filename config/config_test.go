package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	thresholds := Default()

	assert.Equal(t, 365, thresholds.LookbackDays)
	assert.Equal(t, 10, thresholds.MinObservations)
	assert.True(t, thresholds.VIPTotalValue.Equal(decimal.NewFromInt(5_000_000)))
	assert.Equal(t, 180, thresholds.InactiveRecencyDays)
	assert.InDelta(t, 0.5, thresholds.CriticalStockRatio, 1e-9)
	assert.InDelta(t, 0.2, thresholds.SafetyStockFactor, 1e-9)
	assert.True(t, thresholds.OrderingCost.Equal(decimal.NewFromInt(50_000)))
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PLAN_LOOKBACK_DAYS", "180")
	t.Setenv("PLAN_CRITICAL_STOCK_RATIO", "0.3")
	t.Setenv("PLAN_ORDERING_COST", "75000")
	t.Setenv("PLAN_HOLDING_RATE", "not-a-number")

	thresholds := Load()

	assert.Equal(t, 180, thresholds.LookbackDays)
	assert.InDelta(t, 0.3, thresholds.CriticalStockRatio, 1e-9)
	assert.True(t, thresholds.OrderingCost.Equal(decimal.NewFromInt(75_000)))
	// Malformed values keep the default.
	assert.InDelta(t, 0.25, thresholds.HoldingRate, 1e-9)
}
