package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

// Forecaster produces point demand forecasts over the standard horizons,
// selecting among the regression strategies and degrading to the statistical
// estimator when the series is too short for ML fitting.
type Forecaster struct {
	selector *Selector
	fallback *Statistical
}

// NewForecaster creates a forecaster with the default strategy set
func NewForecaster() *Forecaster {
	return &Forecaster{
		selector: NewSelector(),
		fallback: NewStatistical(),
	}
}

// NewForecasterWithSelector creates a forecaster with a custom selector
func NewForecasterWithSelector(selector *Selector) *Forecaster {
	return &Forecaster{
		selector: selector,
		fallback: NewStatistical(),
	}
}

// ForecastHorizons forecasts the given horizons for one product series.
// A nil or empty series reports entities.ErrNoData so the outermost caller
// can distinguish "no forecast possible" from a zero forecast. Low-volume
// series never fail; they degrade to the statistical estimator.
func (f *Forecaster) ForecastHorizons(
	series *entities.DailySeries,
	seasonality float64,
	asOf time.Time,
	horizons []int,
) ([]*entities.ForecastResult, error) {
	if series.Len() == 0 {
		return nil, fmt.Errorf("%w: empty series", entities.ErrNoData)
	}
	if len(horizons) == 0 {
		horizons = entities.ForecastHorizons
	}

	selection, err := f.selector.Select(series)
	if err != nil && !errors.Is(err, entities.ErrInsufficientData) {
		return nil, fmt.Errorf("model selection failed for %s: %w", series.ProductID, err)
	}

	results := make([]*entities.ForecastResult, 0, len(horizons))
	for _, horizon := range horizons {
		var predicted entities.Quantity
		var kind entities.ModelKind
		var confidence float64

		if selection != nil {
			predicted = f.predictWithModel(selection, series, asOf, horizon)
			kind = selection.Kind
			confidence = selection.Confidence()
		} else {
			predicted, confidence = f.fallback.Estimate(series, horizon, asOf)
			kind = entities.ModelStatistical
		}

		result, err := entities.NewForecastResult(
			series.ProductID,
			horizon,
			predicted,
			kind,
			confidence,
			seasonality,
			asOf,
		)
		if err != nil {
			return nil, fmt.Errorf("invalid forecast for %s horizon %d: %w", series.ProductID, horizon, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// predictWithModel sums per-day model predictions across the horizon, using
// future feature vectors scaled with the training scaler, floored at zero
func (f *Forecaster) predictWithModel(
	selection *Selection,
	series *entities.DailySeries,
	asOf time.Time,
	horizonDays int,
) entities.Quantity {
	last := series.Last()
	total := 0.0
	for d := 1; d <= horizonDays; d++ {
		features := entities.FutureFeatures(asOf.AddDate(0, 0, d), last)
		daily := selection.Model.Predict(selection.Scaler.Transform(features))
		if daily > 0 {
			total += daily
		}
	}

	predicted := entities.Quantity(math.Round(total))
	if predicted < 0 {
		predicted = 0
	}
	return predicted
}
