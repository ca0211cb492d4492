package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

// seriesFromQuantities builds a dense daily series ending at asOf with the
// given quantities and the calendar-derived features filled in
func seriesFromQuantities(quantities []float64, asOf time.Time) *entities.DailySeries {
	n := len(quantities)
	start := asOf.AddDate(0, 0, -(n - 1))
	series := &entities.DailySeries{
		ProductID: "SKU001",
		Start:     start,
		End:       asOf,
		Points:    make([]entities.DailyPoint, 0, n),
	}

	var sum7, sum30 float64
	for i, quantity := range quantities {
		date := start.AddDate(0, 0, i)
		point := entities.DailyPoint{
			Date:          date,
			Quantity:      quantity,
			DayOfWeek:     int(date.Weekday()),
			Month:         int(date.Month()),
			DayOfMonth:    date.Day(),
			Weekend:       date.Weekday() == time.Saturday || date.Weekday() == time.Sunday,
			RelativePrice: 1.0,
			StartOfMonth:  date.Day() <= 5,
			EndOfMonth:    date.Day() >= 25,
		}

		sum7 += quantity
		sum30 += quantity
		if i >= 7 {
			sum7 -= quantities[i-7]
		}
		if i >= 30 {
			sum30 -= quantities[i-30]
		}
		window7, window30 := i+1, i+1
		if window7 > 7 {
			window7 = 7
		}
		if window30 > 30 {
			window30 = 30
		}
		point.Rolling7 = sum7 / float64(window7)
		point.Rolling30 = sum30 / float64(window30)

		if i >= 7 && quantities[i-7] != 0 {
			point.Trend7 = (quantity - quantities[i-7]) / quantities[i-7]
		}

		series.Points = append(series.Points, point)
	}

	return series
}

func constantSeries(days int, level float64, asOf time.Time) *entities.DailySeries {
	quantities := make([]float64, days)
	for i := range quantities {
		quantities[i] = level
	}
	return seriesFromQuantities(quantities, asOf)
}

func TestStatistical_EstimateConstantDemand(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	series := constantSeries(14, 2, asOf)

	estimator := NewStatistical()
	predicted, confidence := estimator.Estimate(series, 7, asOf)

	assert.Equal(t, entities.Quantity(14), predicted)
	// Zero variance pins the confidence at the 0.9 ceiling.
	assert.InDelta(t, 0.9, confidence, 1e-9)
}

func TestStatistical_EstimateEmptySeries(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	estimator := NewStatistical()

	predicted, confidence := estimator.Estimate(&entities.DailySeries{}, 30, asOf)
	assert.Equal(t, entities.Quantity(0), predicted)
	assert.InDelta(t, 0.1, confidence, 1e-9)

	predicted, confidence = estimator.Estimate(nil, 30, asOf)
	assert.Equal(t, entities.Quantity(0), predicted)
	assert.InDelta(t, 0.1, confidence, 1e-9)
}

func TestStatistical_TrendFactor(t *testing.T) {
	estimator := NewStatistical()

	testCases := []struct {
		name       string
		quantities []float64
		expected   float64
	}{
		{"short history has no trend", make([]float64, 30), 1.0},
		{"flat long history", repeat(1, 80), 1.0},
		{"growing history", append(repeat(1, 40), repeat(2, 40)...), 2.0},
		{"zero first half", append(repeat(0, 40), repeat(2, 40)...), 1.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, estimator.trendFactor(tc.quantities), 1e-9)
		})
	}
}

func TestStatistical_TrendRaisesEstimate(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	flat := constantSeries(80, 2, asOf)
	growing := seriesFromQuantities(append(repeat(1, 40), repeat(3, 40)...), asOf)

	estimator := NewStatistical()
	flatPredicted, _ := estimator.Estimate(flat, 30, asOf)
	growingPredicted, _ := estimator.Estimate(growing, 30, asOf)

	require.Greater(t, growingPredicted, flatPredicted)
}

func TestStatistical_MedianDaily(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	estimator := NewStatistical()

	odd := seriesFromQuantities([]float64{5, 1, 3}, asOf)
	assert.InDelta(t, 3.0, estimator.MedianDaily(odd), 1e-9)

	even := seriesFromQuantities([]float64{4, 1, 3, 2}, asOf)
	assert.InDelta(t, 2.5, estimator.MedianDaily(even), 1e-9)

	assert.Zero(t, estimator.MedianDaily(nil))
}

func repeat(value float64, count int) []float64 {
	values := make([]float64, count)
	for i := range values {
		values[i] = value
	}
	return values
}
