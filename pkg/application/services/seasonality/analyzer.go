package seasonality

import (
	"time"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

// epsilon guards the peak/average division on degenerate histories
const epsilon = 1e-9

// Analyzer computes monthly seasonality factors from up to a year of sales
type Analyzer struct {
	WindowDays int
}

// NewAnalyzer creates a seasonality analyzer with a one-year window
func NewAnalyzer() *Analyzer {
	return &Analyzer{WindowDays: 365}
}

// Analyze totals sale quantities by calendar month, finds the peak month and
// derives factor = peak / average monthly quantity. A product with no sales
// in the window gets factor 1.0 and peak month January.
func (a *Analyzer) Analyze(
	productID entities.ProductID,
	events []*entities.TransactionEvent,
	asOf time.Time,
) entities.SeasonalityProfile {
	profile := entities.SeasonalityProfile{
		ProductID:     productID,
		Factor:        1.0,
		PeakMonth:     time.January,
		MonthlyTotals: make(map[time.Month]float64),
	}

	windowStart := asOf.AddDate(0, 0, -a.WindowDays)
	for _, ev := range events {
		if ev.EventType != entities.Sale {
			continue
		}
		if ev.OccurredAt.Before(windowStart) || ev.OccurredAt.After(asOf) {
			continue
		}
		profile.MonthlyTotals[ev.OccurredAt.Month()] += float64(ev.Quantity)
	}

	if len(profile.MonthlyTotals) == 0 {
		return profile
	}

	total := 0.0
	peak := time.January
	peakQuantity := 0.0
	for month := time.January; month <= time.December; month++ {
		quantity := profile.MonthlyTotals[month]
		total += quantity
		if quantity > peakQuantity {
			peakQuantity = quantity
			peak = month
		}
	}

	average := total / float64(len(profile.MonthlyTotals))
	if average > epsilon {
		profile.Factor = peakQuantity / average
	}
	profile.PeakMonth = peak

	return profile
}
