package forecast

import "github.com/solvex/demandplan/pkg/domain/entities"

// Strategy is a candidate regression strategy. Fit never mutates the
// strategy; it returns an immutable trained Model.
type Strategy interface {
	Kind() entities.ModelKind
	Fit(features [][]float64, targets []float64) (Model, error)
}

// Model is a trained, immutable regression model handle
type Model interface {
	Kind() entities.ModelKind
	Predict(features []float64) float64
}

// Strategies returns the fixed candidate set evaluated during model
// selection: a linear model, a tree ensemble, and gradient boosting.
func Strategies() []Strategy {
	return []Strategy{
		NewLinearStrategy(),
		NewForestStrategy(),
		NewBoostingStrategy(),
	}
}
