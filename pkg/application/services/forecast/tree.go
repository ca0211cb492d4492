package forecast

import (
	"math"
	"sort"
)

// regressionTree is a CART-style regression tree used as the weak learner for
// both the forest and boosting strategies
type regressionTree struct {
	root *treeNode
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	leaf      bool
}

type treeParams struct {
	maxDepth       int
	minSamplesLeaf int
	// featureSubset limits the features considered per split; 0 means all
	featureSubset int
	rng           *splitRand
}

// splitRand is a tiny deterministic PRNG (xorshift64) so tree construction is
// reproducible without sharing math/rand state across goroutines or runs
type splitRand struct {
	state uint64
}

func newSplitRand(seed uint64) *splitRand {
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
	return &splitRand{state: seed}
}

func (r *splitRand) next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

func (r *splitRand) intn(n int) int {
	return int(r.next() % uint64(n))
}

func growTree(features [][]float64, targets []float64, indices []int, params treeParams) *regressionTree {
	return &regressionTree{root: growNode(features, targets, indices, 0, params)}
}

func growNode(features [][]float64, targets []float64, indices []int, depth int, params treeParams) *treeNode {
	mean := meanAt(targets, indices)
	if depth >= params.maxDepth || len(indices) < 2*params.minSamplesLeaf {
		return &treeNode{leaf: true, value: mean}
	}

	feature, threshold, ok := bestSplit(features, targets, indices, params)
	if !ok {
		return &treeNode{leaf: true, value: mean}
	}

	var left, right []int
	for _, i := range indices {
		if features[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < params.minSamplesLeaf || len(right) < params.minSamplesLeaf {
		return &treeNode{leaf: true, value: mean}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      growNode(features, targets, left, depth+1, params),
		right:     growNode(features, targets, right, depth+1, params),
	}
}

// bestSplit finds the feature/threshold pair minimizing the weighted sum of
// squared errors of the two children
func bestSplit(features [][]float64, targets []float64, indices []int, params treeParams) (int, float64, bool) {
	dims := len(features[indices[0]])

	candidates := make([]int, 0, dims)
	if params.featureSubset > 0 && params.featureSubset < dims {
		seen := make(map[int]bool, params.featureSubset)
		for len(candidates) < params.featureSubset {
			f := params.rng.intn(dims)
			if !seen[f] {
				seen[f] = true
				candidates = append(candidates, f)
			}
		}
		sort.Ints(candidates)
	} else {
		for f := 0; f < dims; f++ {
			candidates = append(candidates, f)
		}
	}

	bestSSE := math.Inf(1)
	bestFeature, bestThreshold := -1, 0.0

	sorted := make([]int, len(indices))
	for _, feature := range candidates {
		copy(sorted, indices)
		f := feature
		sort.Slice(sorted, func(a, b int) bool {
			return features[sorted[a]][f] < features[sorted[b]][f]
		})

		// Prefix sums over the sorted order allow O(1) SSE per split point.
		n := len(sorted)
		prefixSum := make([]float64, n+1)
		prefixSq := make([]float64, n+1)
		for i, idx := range sorted {
			prefixSum[i+1] = prefixSum[i] + targets[idx]
			prefixSq[i+1] = prefixSq[i] + targets[idx]*targets[idx]
		}

		for i := params.minSamplesLeaf; i <= n-params.minSamplesLeaf; i++ {
			lo := features[sorted[i-1]][f]
			hi := features[sorted[i]][f]
			if lo == hi {
				continue
			}

			nl, nr := float64(i), float64(n-i)
			sseLeft := prefixSq[i] - prefixSum[i]*prefixSum[i]/nl
			sumRight := prefixSum[n] - prefixSum[i]
			sseRight := (prefixSq[n] - prefixSq[i]) - sumRight*sumRight/nr

			if sse := sseLeft + sseRight; sse < bestSSE {
				bestSSE = sse
				bestFeature = f
				bestThreshold = (lo + hi) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func (t *regressionTree) predict(features []float64) float64 {
	node := t.root
	for !node.leaf {
		if features[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

func meanAt(values []float64, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range indices {
		sum += values[i]
	}
	return sum / float64(len(indices))
}
