package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

func TestLinearStrategy_FitsExactRelation(t *testing.T) {
	// y = 2*x0 + 3*x1 + 1
	features := [][]float64{
		{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 1}, {1, 2},
	}
	targets := make([]float64, len(features))
	for i, f := range features {
		targets[i] = 2*f[0] + 3*f[1] + 1
	}

	strategy := &LinearStrategy{}
	model, err := strategy.Fit(features, targets)
	require.NoError(t, err)
	assert.Equal(t, entities.ModelLinear, model.Kind())

	for i, f := range features {
		assert.InDeltaf(t, targets[i], model.Predict(f), 1e-6, "sample %d", i)
	}
	assert.InDelta(t, 2*3+3*2+1, model.Predict([]float64{3, 2}), 1e-6)
}

func TestLinearStrategy_RejectsEmptyInput(t *testing.T) {
	strategy := &LinearStrategy{}
	_, err := strategy.Fit(nil, nil)
	require.Error(t, err)
}

func TestSolveLinearSystem(t *testing.T) {
	// 2x + y = 5, x + 3y = 10 -> x = 1, y = 3
	solution, err := solveLinearSystem(
		[][]float64{{2, 1}, {1, 3}},
		[]float64{5, 10},
	)
	require.NoError(t, err)
	require.Len(t, solution, 2)
	assert.InDelta(t, 1.0, solution[0], 1e-9)
	assert.InDelta(t, 3.0, solution[1], 1e-9)
}

func TestForestStrategy_Deterministic(t *testing.T) {
	quantities := repeat(3, 40)
	for i := 0; i < len(quantities); i += 5 {
		quantities[i] = 8
	}

	features := make([][]float64, len(quantities))
	targets := make([]float64, len(quantities))
	for i := range quantities {
		features[i] = []float64{float64(i % 7), float64(i % 5)}
		targets[i] = quantities[i]
	}

	strategy := NewForestStrategy()
	first, err := strategy.Fit(features, targets)
	require.NoError(t, err)
	second, err := NewForestStrategy().Fit(features, targets)
	require.NoError(t, err)

	assert.Equal(t, entities.ModelRandomForest, first.Kind())
	probe := []float64{3, 2}
	assert.InDelta(t, first.Predict(probe), second.Predict(probe), 1e-9,
		"a fixed seed must reproduce the same forest")
}

func TestBoostingStrategy_ImprovesOnMean(t *testing.T) {
	features := make([][]float64, 60)
	targets := make([]float64, 60)
	total := 0.0
	for i := range features {
		features[i] = []float64{float64(i % 7)}
		targets[i] = float64(2 * (i % 7))
		total += targets[i]
	}
	mean := total / float64(len(targets))

	strategy := NewBoostingStrategy()
	model, err := strategy.Fit(features, targets)
	require.NoError(t, err)
	assert.Equal(t, entities.ModelGradientBoosting, model.Kind())

	var modelErr, meanErr float64
	for i := range features {
		modelErr += abs(targets[i] - model.Predict(features[i]))
		meanErr += abs(targets[i] - mean)
	}
	assert.Less(t, modelErr, meanErr)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
