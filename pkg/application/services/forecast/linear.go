package forecast

import (
	"fmt"
	"math"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

// ridgeLambda is a small L2 term that keeps the normal equations solvable
// when features are collinear (weekend vs day-of-week, flags on short series)
const ridgeLambda = 1e-6

// LinearStrategy fits an ordinary least squares model with an intercept
type LinearStrategy struct{}

// NewLinearStrategy creates the linear regression strategy
func NewLinearStrategy() *LinearStrategy {
	return &LinearStrategy{}
}

// Kind returns the model kind for this strategy
func (s *LinearStrategy) Kind() entities.ModelKind {
	return entities.ModelLinear
}

// Fit solves the ridge-regularized normal equations for the coefficient
// vector and returns an immutable linear model
func (s *LinearStrategy) Fit(features [][]float64, targets []float64) (Model, error) {
	n := len(features)
	if n == 0 || n != len(targets) {
		return nil, fmt.Errorf("linear fit requires matching samples, got %d features and %d targets", n, len(targets))
	}
	dims := len(features[0]) + 1 // leading intercept column

	// Normal equations: (X'X + λI) w = X'y
	xtx := make([][]float64, dims)
	for i := range xtx {
		xtx[i] = make([]float64, dims)
	}
	xty := make([]float64, dims)

	row := make([]float64, dims)
	for i := 0; i < n; i++ {
		row[0] = 1
		copy(row[1:], features[i])
		for a := 0; a < dims; a++ {
			xty[a] += row[a] * targets[i]
			for b := 0; b < dims; b++ {
				xtx[a][b] += row[a] * row[b]
			}
		}
	}
	for a := 0; a < dims; a++ {
		xtx[a][a] += ridgeLambda
	}

	weights, err := solveLinearSystem(xtx, xty)
	if err != nil {
		return nil, fmt.Errorf("failed to solve normal equations: %w", err)
	}

	return &linearModel{weights: weights}, nil
}

type linearModel struct {
	weights []float64 // weights[0] is the intercept
}

func (m *linearModel) Kind() entities.ModelKind {
	return entities.ModelLinear
}

func (m *linearModel) Predict(features []float64) float64 {
	prediction := m.weights[0]
	for j, v := range features {
		if j+1 < len(m.weights) {
			prediction += m.weights[j+1] * v
		}
	}
	return prediction
}

// solveLinearSystem performs Gaussian elimination with partial pivoting
func solveLinearSystem(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	// Work on copies so the caller's matrices survive.
	m := make([][]float64, n)
	for i := range a {
		m[i] = append([]float64(nil), a[i]...)
		m[i] = append(m[i], b[i])
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("singular system at column %d", col)
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := col + 1; r < n; r++ {
			factor := m[r][col] / m[col][col]
			for c := col; c <= n; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}

	solution := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		sum := m[r][n]
		for c := r + 1; c < n; c++ {
			sum -= m[r][c] * solution[c]
		}
		solution[r] = sum / m[r][r]
	}
	return solution, nil
}
