package stats

import "math"

// WeightedMean returns the expectation of values under the given weights.
// Weights are expected to be normalized; the slices must have equal length.
func WeightedMean(values, weights []float64) float64 {
	if len(values) == 0 || len(values) != len(weights) {
		return 0
	}

	var mean float64
	for i, v := range values {
		mean += v * weights[i]
	}
	return mean
}

// WeightedVariance returns the population variance of values under the given
// (normalized) weights.
func WeightedVariance(values, weights []float64) float64 {
	if len(values) == 0 || len(values) != len(weights) {
		return 0
	}

	mean := WeightedMean(values, weights)
	var acc float64
	for i, v := range values {
		d := v - mean
		acc += weights[i] * d * d
	}
	return acc
}

// WeightedStdDev is the square root of WeightedVariance.
func WeightedStdDev(values, weights []float64) float64 {
	return math.Sqrt(WeightedVariance(values, weights))
}

// Normalize rescales weights so they sum to exactly 1 within rounding.
// It returns false when the weights cannot be normalized (empty, non-finite or
// non-positive total).
func Normalize(weights []float64) ([]float64, bool) {
	if len(weights) == 0 {
		return nil, false
	}

	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, false
	}

	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = w / total
	}
	return out, true
}
