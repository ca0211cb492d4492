package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

// trendWindowDays is the minimum history span before the statistical
// estimator applies a half-over-half trend factor
const trendWindowDays = 60

// Statistical is the pure-statistics fallback estimator used when the series
// is too short for ML fitting. It carries no training state.
type Statistical struct{}

// NewStatistical creates the fallback estimator
func NewStatistical() *Statistical {
	return &Statistical{}
}

// Kind returns the model kind for the fallback estimator
func (s *Statistical) Kind() entities.ModelKind {
	return entities.ModelStatistical
}

// Estimate predicts horizon demand by summing per-weekday average demand,
// scaled by a second-half-over-first-half trend factor. It returns the
// predicted quantity and the estimator's confidence.
func (s *Statistical) Estimate(
	series *entities.DailySeries,
	horizonDays int,
	asOf time.Time,
) (entities.Quantity, float64) {
	if series.Len() == 0 || horizonDays <= 0 {
		return 0, 0.1
	}

	quantities := series.Quantities()
	overallMean := mean(quantities)

	// Per-weekday averages; days of the week never observed fall back to the
	// overall daily average.
	var weekdaySum [7]float64
	var weekdayCount [7]int
	for _, p := range series.Points {
		weekdaySum[p.DayOfWeek] += p.Quantity
		weekdayCount[p.DayOfWeek]++
	}

	trend := s.trendFactor(quantities)

	total := 0.0
	for d := 1; d <= horizonDays; d++ {
		weekday := int(asOf.AddDate(0, 0, d).Weekday())
		daily := overallMean
		if weekdayCount[weekday] > 0 {
			daily = weekdaySum[weekday] / float64(weekdayCount[weekday])
		}
		total += daily * trend
	}

	predicted := entities.Quantity(math.Round(total))
	if predicted < 0 {
		predicted = 0
	}
	return predicted, s.confidence(quantities, overallMean)
}

// MedianDaily returns the median daily demand of the series
func (s *Statistical) MedianDaily(series *entities.DailySeries) float64 {
	if series.Len() == 0 {
		return 0
	}
	quantities := append([]float64(nil), series.Quantities()...)
	sort.Float64s(quantities)
	mid := len(quantities) / 2
	if len(quantities)%2 == 0 {
		return (quantities[mid-1] + quantities[mid]) / 2
	}
	return quantities[mid]
}

// trendFactor is the ratio of second-half to first-half average demand,
// applied only with at least 60 days of history
func (s *Statistical) trendFactor(quantities []float64) float64 {
	if len(quantities) < trendWindowDays {
		return 1.0
	}
	half := len(quantities) / 2
	firstHalf := mean(quantities[:half])
	secondHalf := mean(quantities[half:])
	if firstHalf <= 0 {
		return 1.0
	}
	return secondHalf / firstHalf
}

// confidence is 1 minus the coefficient of variation of daily demand,
// clamped into [0.1, 0.9]
func (s *Statistical) confidence(quantities []float64, overallMean float64) float64 {
	if overallMean <= 0 {
		return 0.1
	}
	cv := stddev(quantities, overallMean) / overallMean
	return clamp(1-cv, 0.1, 0.9)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}
	return math.Sqrt(sum / float64(len(values)))
}
