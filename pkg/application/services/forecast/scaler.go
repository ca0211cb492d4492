package forecast

import "math"

// StandardScaler standardizes features to zero mean and unit variance.
// Fitted on training data and reused unchanged for prediction so future
// feature vectors scale consistently with training.
type StandardScaler struct {
	means []float64
	stds  []float64
}

// FitScaler computes per-feature means and standard deviations
func FitScaler(features [][]float64) *StandardScaler {
	if len(features) == 0 {
		return &StandardScaler{}
	}
	n := len(features)
	dims := len(features[0])
	means := make([]float64, dims)
	stds := make([]float64, dims)

	for _, row := range features {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= float64(n)
	}
	for _, row := range features {
		for j, v := range row {
			d := v - means[j]
			stds[j] += d * d
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / float64(n))
		if stds[j] == 0 {
			// Constant feature; leave it centered but unscaled.
			stds[j] = 1
		}
	}

	return &StandardScaler{means: means, stds: stds}
}

// Transform scales a single feature vector
func (s *StandardScaler) Transform(row []float64) []float64 {
	if len(s.means) == 0 {
		return row
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.means[j]) / s.stds[j]
	}
	return out
}

// TransformAll scales a feature matrix
func (s *StandardScaler) TransformAll(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = s.Transform(row)
	}
	return out
}
