package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

func TestForecaster_EmptySeriesReportsNoData(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	forecaster := NewForecaster()

	_, err := forecaster.ForecastHorizons(nil, 1.0, asOf, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrNoData)

	_, err = forecaster.ForecastHorizons(&entities.DailySeries{}, 1.0, asOf, nil)
	assert.ErrorIs(t, err, entities.ErrNoData)
}

func TestForecaster_ShortSeriesFallsBackToStatistical(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	series := constantSeries(5, 3, asOf)

	forecasts, err := NewForecaster().ForecastHorizons(series, 1.2, asOf, nil)
	require.NoError(t, err)
	require.Len(t, forecasts, len(entities.ForecastHorizons))

	for i, forecast := range forecasts {
		assert.Equal(t, entities.ModelStatistical, forecast.ModelUsed)
		assert.Equal(t, entities.ForecastHorizons[i], forecast.HorizonDays)
		assert.GreaterOrEqual(t, forecast.PredictedQuantity, entities.Quantity(0))
		assert.GreaterOrEqual(t, forecast.ConfidenceScore, 0.1)
		assert.LessOrEqual(t, forecast.ConfidenceScore, 0.9)
		assert.InDelta(t, 1.2, forecast.SeasonalityFactor, 1e-9)
	}
}

func TestForecaster_LongSeriesUsesSelectedModel(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	series := constantSeries(90, 4, asOf)

	forecasts, err := NewForecaster().ForecastHorizons(series, 1.0, asOf, []int{7, 30})
	require.NoError(t, err)
	require.Len(t, forecasts, 2)

	for _, forecast := range forecasts {
		assert.NotEqual(t, entities.ModelStatistical, forecast.ModelUsed)
		assert.GreaterOrEqual(t, forecast.PredictedQuantity, entities.Quantity(0))
		assert.GreaterOrEqual(t, forecast.ConfidenceScore, 0.1)
		assert.LessOrEqual(t, forecast.ConfidenceScore, 1.0)
	}

	// Constant demand at 4 per day should forecast close to the level.
	weekly := forecasts[0]
	assert.InDelta(t, 28, float64(weekly.PredictedQuantity), 8)
}

func TestForecaster_RaisedMinimumDegradesToStatistical(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	series := constantSeries(90, 4, asOf)

	selector := NewSelectorWithMinObservations(200)
	forecasts, err := NewForecasterWithSelector(selector).ForecastHorizons(series, 1.0, asOf, []int{7})
	require.NoError(t, err)
	require.Len(t, forecasts, 1)
	assert.Equal(t, entities.ModelStatistical, forecasts[0].ModelUsed)
}

func TestForecaster_CustomHorizonsPreserveOrder(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	series := constantSeries(20, 2, asOf)

	horizons := []int{60, 7, 15}
	forecasts, err := NewForecaster().ForecastHorizons(series, 1.0, asOf, horizons)
	require.NoError(t, err)
	require.Len(t, forecasts, 3)

	for i, forecast := range forecasts {
		assert.Equal(t, horizons[i], forecast.HorizonDays)
		assert.Equal(t, entities.ProductID("SKU001"), forecast.ProductID)
	}
}
