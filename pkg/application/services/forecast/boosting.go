package forecast

import (
	"fmt"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

// BoostingStrategy fits shallow regression trees to successive residuals
type BoostingStrategy struct {
	Estimators     int
	LearningRate   float64
	MaxDepth       int
	MinSamplesLeaf int
}

// NewBoostingStrategy creates the gradient-boosting strategy with default
// hyperparameters
func NewBoostingStrategy() *BoostingStrategy {
	return &BoostingStrategy{
		Estimators:     100,
		LearningRate:   0.1,
		MaxDepth:       3,
		MinSamplesLeaf: 2,
	}
}

// Kind returns the model kind for this strategy
func (s *BoostingStrategy) Kind() entities.ModelKind {
	return entities.ModelGradientBoosting
}

// Fit boosts on squared-error residuals starting from the target mean
func (s *BoostingStrategy) Fit(features [][]float64, targets []float64) (Model, error) {
	n := len(features)
	if n == 0 || n != len(targets) {
		return nil, fmt.Errorf("boosting fit requires matching samples, got %d features and %d targets", n, len(targets))
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	base := meanAt(targets, indices)
	residuals := make([]float64, n)
	current := make([]float64, n)
	for i := range targets {
		current[i] = base
		residuals[i] = targets[i] - base
	}

	params := treeParams{
		maxDepth:       s.MaxDepth,
		minSamplesLeaf: s.MinSamplesLeaf,
	}

	trees := make([]*regressionTree, 0, s.Estimators)
	for t := 0; t < s.Estimators; t++ {
		tree := growTree(features, residuals, indices, params)
		trees = append(trees, tree)

		converged := true
		for i := range current {
			step := s.LearningRate * tree.predict(features[i])
			current[i] += step
			residuals[i] = targets[i] - current[i]
			if residuals[i] > 1e-9 || residuals[i] < -1e-9 {
				converged = false
			}
		}
		if converged {
			break
		}
	}

	return &boostingModel{
		base:         base,
		learningRate: s.LearningRate,
		trees:        trees,
	}, nil
}

type boostingModel struct {
	base         float64
	learningRate float64
	trees        []*regressionTree
}

func (m *boostingModel) Kind() entities.ModelKind {
	return entities.ModelGradientBoosting
}

func (m *boostingModel) Predict(features []float64) float64 {
	prediction := m.base
	for _, t := range m.trees {
		prediction += m.learningRate * t.predict(features)
	}
	return prediction
}
