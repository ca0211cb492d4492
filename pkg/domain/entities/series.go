package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyPoint is one calendar day of a dense product sales series with the
// engineered features used by the regression strategies.
type DailyPoint struct {
	Date          time.Time
	Quantity      float64
	AvgPrice      decimal.Decimal
	DayOfWeek     int // 0 = Sunday .. 6 = Saturday
	Month         int // 1..12
	DayOfMonth    int
	Weekend       bool
	Rolling7      float64 // trailing 7-day mean, shorter at the series head
	Rolling30     float64 // trailing 30-day mean, shorter at the series head
	Trend7        float64 // percent change vs the observation 7 days earlier, 0 when undefined
	RelativePrice float64 // day price / mean price over the window, 1.0 for zero-sale days
	StartOfMonth  bool    // day of month <= 5
	EndOfMonth    bool    // day of month >= 25
}

// DailySeries is a dense, zero-filled daily sales series for one product.
// Derived on demand from the transaction log, never persisted independently.
type DailySeries struct {
	ProductID ProductID
	Start     time.Time
	End       time.Time
	MeanPrice decimal.Decimal
	Points    []DailyPoint
}

// Len returns the number of daily observations
func (s *DailySeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// Quantities returns the daily quantities as a flat slice
func (s *DailySeries) Quantities() []float64 {
	qs := make([]float64, len(s.Points))
	for i, p := range s.Points {
		qs[i] = p.Quantity
	}
	return qs
}

// Last returns the most recent point, or nil when the series is empty
func (s *DailySeries) Last() *DailyPoint {
	if s.Len() == 0 {
		return nil
	}
	return &s.Points[len(s.Points)-1]
}

// FeatureNames lists the model features in vector order
var FeatureNames = []string{
	"day_of_week",
	"month",
	"day_of_month",
	"weekend",
	"rolling_7",
	"rolling_30",
	"trend_7",
	"relative_price",
	"start_of_month",
	"end_of_month",
}

// Features returns the point's model feature vector in FeatureNames order
func (p *DailyPoint) Features() []float64 {
	return []float64{
		float64(p.DayOfWeek),
		float64(p.Month),
		float64(p.DayOfMonth),
		boolToFloat(p.Weekend),
		p.Rolling7,
		p.Rolling30,
		p.Trend7,
		p.RelativePrice,
		boolToFloat(p.StartOfMonth),
		boolToFloat(p.EndOfMonth),
	}
}

// FutureFeatures builds the feature vector for a future date. True rolling
// values and prices are unknown, so the most recent rolling averages stand in,
// the trend term defaults to 0, and the relative price defaults to 1.0.
func FutureFeatures(date time.Time, last *DailyPoint) []float64 {
	day := date.Day()
	weekday := int(date.Weekday())
	rolling7, rolling30 := 0.0, 0.0
	if last != nil {
		rolling7 = last.Rolling7
		rolling30 = last.Rolling30
	}
	return []float64{
		float64(weekday),
		float64(date.Month()),
		float64(day),
		boolToFloat(weekday == 0 || weekday == 6),
		rolling7,
		rolling30,
		0.0,
		1.0,
		boolToFloat(day <= 5),
		boolToFloat(day >= 25),
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
