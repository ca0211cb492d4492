package forecast

import (
	"fmt"
	"math"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

// ForestStrategy fits a bagged ensemble of regression trees with per-split
// feature subsampling
type ForestStrategy struct {
	Trees          int
	MaxDepth       int
	MinSamplesLeaf int
	Seed           uint64
}

// NewForestStrategy creates the tree-ensemble strategy with default
// hyperparameters
func NewForestStrategy() *ForestStrategy {
	return &ForestStrategy{
		Trees:          50,
		MaxDepth:       8,
		MinSamplesLeaf: 2,
		Seed:           1,
	}
}

// Kind returns the model kind for this strategy
func (s *ForestStrategy) Kind() entities.ModelKind {
	return entities.ModelRandomForest
}

// Fit grows Trees bootstrap-sampled regression trees and returns an immutable
// averaging model
func (s *ForestStrategy) Fit(features [][]float64, targets []float64) (Model, error) {
	n := len(features)
	if n == 0 || n != len(targets) {
		return nil, fmt.Errorf("forest fit requires matching samples, got %d features and %d targets", n, len(targets))
	}

	dims := len(features[0])
	subset := int(math.Max(1, math.Round(math.Sqrt(float64(dims)))))
	rng := newSplitRand(s.Seed)

	trees := make([]*regressionTree, 0, s.Trees)
	for t := 0; t < s.Trees; t++ {
		indices := make([]int, n)
		for i := range indices {
			indices[i] = rng.intn(n)
		}
		params := treeParams{
			maxDepth:       s.MaxDepth,
			minSamplesLeaf: s.MinSamplesLeaf,
			featureSubset:  subset,
			rng:            rng,
		}
		trees = append(trees, growTree(features, targets, indices, params))
	}

	return &forestModel{trees: trees}, nil
}

type forestModel struct {
	trees []*regressionTree
}

func (m *forestModel) Kind() entities.ModelKind {
	return entities.ModelRandomForest
}

func (m *forestModel) Predict(features []float64) float64 {
	if len(m.trees) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range m.trees {
		sum += t.predict(features)
	}
	return sum / float64(len(m.trees))
}
