package entities

import (
	"fmt"
	"time"
)

// ModelKind identifies the forecasting strategy that produced a prediction
type ModelKind int

const (
	ModelLinear ModelKind = iota
	ModelRandomForest
	ModelGradientBoosting
	ModelStatistical
)

// String method for ModelKind enum
func (m ModelKind) String() string {
	switch m {
	case ModelLinear:
		return "linear"
	case ModelRandomForest:
		return "random_forest"
	case ModelGradientBoosting:
		return "gradient_boosting"
	case ModelStatistical:
		return "statistical"
	default:
		return "unknown"
	}
}

// ForecastHorizons lists the supported prediction horizons in days
var ForecastHorizons = []int{7, 15, 30, 60, 90}

// ForecastResult is a point demand forecast for one product and horizon.
// Created fresh each run; later runs supersede rather than mutate it.
type ForecastResult struct {
	ProductID         ProductID
	HorizonDays       int
	PredictedQuantity Quantity
	ModelUsed         ModelKind
	ConfidenceScore   float64
	SeasonalityFactor float64
	GeneratedAt       time.Time
}

// NewForecastResult creates a validated ForecastResult. Predicted quantities
// are clamped at zero and confidence must already be within [0, 1].
func NewForecastResult(
	productID ProductID,
	horizonDays int,
	predicted Quantity,
	model ModelKind,
	confidence float64,
	seasonality float64,
	generatedAt time.Time,
) (*ForecastResult, error) {
	if string(productID) == "" {
		return nil, fmt.Errorf("product ID cannot be empty")
	}
	if horizonDays <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizonDays)
	}
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("confidence must be within [0,1], got %f", confidence)
	}
	if predicted < 0 {
		predicted = 0
	}

	return &ForecastResult{
		ProductID:         productID,
		HorizonDays:       horizonDays,
		PredictedQuantity: predicted,
		ModelUsed:         model,
		ConfidenceScore:   confidence,
		SeasonalityFactor: seasonality,
		GeneratedAt:       generatedAt,
	}, nil
}

// SeasonalityProfile is the monthly seasonality summary for a product
type SeasonalityProfile struct {
	ProductID     ProductID
	Factor        float64 // peak month quantity / average monthly quantity
	PeakMonth     time.Month
	MonthlyTotals map[time.Month]float64
}
