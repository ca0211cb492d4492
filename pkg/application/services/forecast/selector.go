package forecast

import (
	"fmt"
	"math"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

// MinObservations is the default minimum daily sample size for ML fitting;
// below it, selection reports entities.ErrInsufficientData and the caller
// falls back to the statistical estimator.
const MinObservations = 10

const defaultFolds = 3

// Selection is the outcome of cross-validated model selection: the winning
// model refit on the full series, its scaler, and its scores
type Selection struct {
	Model  Model
	Scaler *StandardScaler
	Kind   entities.ModelKind
	R2     float64
	MAE    float64
}

// Confidence converts the cross-validated R² into the forecast confidence
// score, clamped into [0.1, 1] so low-data fits keep the documented floor
func (s *Selection) Confidence() float64 {
	return clamp(s.R2, 0.1, 1.0)
}

// Selector evaluates the candidate strategies by k-fold cross-validation and
// picks the highest R², breaking ties on lower mean absolute error
type Selector struct {
	strategies      []Strategy
	folds           int
	minObservations int
}

// NewSelector creates a selector over the fixed strategy set
func NewSelector() *Selector {
	return &Selector{
		strategies:      Strategies(),
		folds:           defaultFolds,
		minObservations: MinObservations,
	}
}

// NewSelectorWithMinObservations creates a selector over the fixed strategy
// set with a custom minimum sample size for fitting
func NewSelectorWithMinObservations(minObservations int) *Selector {
	s := NewSelector()
	if minObservations > 0 {
		s.minObservations = minObservations
	}
	return s
}

// NewSelectorWithStrategies creates a selector over a custom strategy set
func NewSelectorWithStrategies(strategies []Strategy, folds int) *Selector {
	if folds < 2 {
		folds = defaultFolds
	}
	return &Selector{strategies: strategies, folds: folds, minObservations: MinObservations}
}

// Select cross-validates every candidate on the series and returns the
// winner refit on all observations
func (s *Selector) Select(series *entities.DailySeries) (*Selection, error) {
	n := series.Len()
	if n < s.minObservations {
		return nil, fmt.Errorf("%w: %d observations, need %d", entities.ErrInsufficientData, n, s.minObservations)
	}

	features := make([][]float64, n)
	targets := make([]float64, n)
	for i := range series.Points {
		features[i] = series.Points[i].Features()
		targets[i] = series.Points[i].Quantity
	}

	var best *Selection
	for _, strategy := range s.strategies {
		r2, mae, err := s.crossValidate(strategy, features, targets)
		if err != nil {
			// A strategy that cannot fit this series is skipped, not fatal.
			continue
		}

		better := best == nil ||
			r2 > best.R2+1e-9 ||
			(math.Abs(r2-best.R2) <= 1e-9 && mae < best.MAE)
		if better {
			best = &Selection{Kind: strategy.Kind(), R2: r2, MAE: mae}
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: no candidate strategy could be fitted", entities.ErrInsufficientData)
	}

	// Refit the winner on the full series.
	scaler := FitScaler(features)
	scaled := scaler.TransformAll(features)
	for _, strategy := range s.strategies {
		if strategy.Kind() != best.Kind {
			continue
		}
		model, err := strategy.Fit(scaled, targets)
		if err != nil {
			return nil, fmt.Errorf("failed to refit selected %s model: %w", best.Kind, err)
		}
		best.Model = model
		best.Scaler = scaler
		break
	}

	return best, nil
}

// crossValidate returns the mean R² and MAE over contiguous k folds
func (s *Selector) crossValidate(
	strategy Strategy,
	features [][]float64,
	targets []float64,
) (float64, float64, error) {
	n := len(features)
	folds := s.folds
	if folds > n {
		folds = n
	}

	var r2Sum, maeSum float64
	scored := 0
	for fold := 0; fold < folds; fold++ {
		testStart := fold * n / folds
		testEnd := (fold + 1) * n / folds
		if testEnd <= testStart {
			continue
		}

		var trainX [][]float64
		var trainY []float64
		for i := 0; i < n; i++ {
			if i < testStart || i >= testEnd {
				trainX = append(trainX, features[i])
				trainY = append(trainY, targets[i])
			}
		}
		if len(trainX) == 0 {
			continue
		}

		scaler := FitScaler(trainX)
		model, err := strategy.Fit(scaler.TransformAll(trainX), trainY)
		if err != nil {
			return 0, 0, err
		}

		var predictions, actuals []float64
		for i := testStart; i < testEnd; i++ {
			predictions = append(predictions, model.Predict(scaler.Transform(features[i])))
			actuals = append(actuals, targets[i])
		}

		r2Sum += rSquared(actuals, predictions)
		maeSum += meanAbsoluteError(actuals, predictions)
		scored++
	}

	if scored == 0 {
		return 0, 0, fmt.Errorf("no scorable folds for %d observations", n)
	}
	return r2Sum / float64(scored), maeSum / float64(scored), nil
}

// rSquared computes the coefficient of determination; a constant test fold
// scores 0 rather than dividing by zero
func rSquared(actuals, predictions []float64) float64 {
	mean := 0.0
	for _, a := range actuals {
		mean += a
	}
	mean /= float64(len(actuals))

	var ssRes, ssTot float64
	for i, a := range actuals {
		ssRes += (a - predictions[i]) * (a - predictions[i])
		ssTot += (a - mean) * (a - mean)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

func meanAbsoluteError(actuals, predictions []float64) float64 {
	sum := 0.0
	for i, a := range actuals {
		sum += math.Abs(a - predictions[i])
	}
	return sum / float64(len(actuals))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
