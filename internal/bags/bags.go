// Package bags holds immutable, normalized bag definitions: discrete weighted
// distributions over non-negative integer rewards.
package bags

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"bagcalc/internal/stats"
)

var ErrInvalidBag = errors.New("invalid bag definition")

// Item is one possible outcome of a single draw.
type Item struct {
	Value       int     `json:"value" yaml:"value"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// Definition is a normalized bag. The zero value is an empty bag and is not
// usable by the engine; build definitions with New.
type Definition struct {
	name  string
	items []Item
}

// New validates items, merges duplicate values and renormalizes probabilities
// so they sum to 1. Items are kept sorted by value.
func New(name string, items []Item) (Definition, error) {
	if len(items) == 0 {
		return Definition{}, fmt.Errorf("%w: %q has no items", ErrInvalidBag, name)
	}

	merged := make(map[int]float64, len(items))
	for _, it := range items {
		if it.Value < 0 {
			return Definition{}, fmt.Errorf("%w: %q has negative value %d", ErrInvalidBag, name, it.Value)
		}
		p := it.Probability
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 || p > 1 {
			return Definition{}, fmt.Errorf("%w: %q value %d has probability %v outside (0,1]", ErrInvalidBag, name, it.Value, p)
		}
		merged[it.Value] += p
	}

	values := make([]int, 0, len(merged))
	for v := range merged {
		values = append(values, v)
	}
	sort.Ints(values)

	weights := make([]float64, len(values))
	for i, v := range values {
		weights[i] = merged[v]
	}
	norm, ok := stats.Normalize(weights)
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q probabilities cannot be normalized", ErrInvalidBag, name)
	}

	out := make([]Item, len(values))
	for i, v := range values {
		out[i] = Item{Value: v, Probability: norm[i]}
	}
	return Definition{name: name, items: out}, nil
}

// MustNew is New for static definitions; it panics on error.
func MustNew(name string, items []Item) Definition {
	d, err := New(name, items)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Definition) Name() string { return d.name }

// Len reports the number of distinct values.
func (d Definition) Len() int { return len(d.items) }

// Items returns a copy of the normalized items, sorted by value.
func (d Definition) Items() []Item {
	out := make([]Item, len(d.items))
	copy(out, d.items)
	return out
}

// MinValue and MaxValue bound a single draw. Both are 0 for an empty bag.
func (d Definition) MinValue() int {
	if len(d.items) == 0 {
		return 0
	}
	return d.items[0].Value
}

func (d Definition) MaxValue() int {
	if len(d.items) == 0 {
		return 0
	}
	return d.items[len(d.items)-1].Value
}

func (d Definition) split() ([]float64, []float64) {
	values := make([]float64, len(d.items))
	weights := make([]float64, len(d.items))
	for i, it := range d.items {
		values[i] = float64(it.Value)
		weights[i] = it.Probability
	}
	return values, weights
}

// Mean is E[v] for a single draw.
func (d Definition) Mean() float64 {
	return stats.WeightedMean(d.split())
}

// Variance is Var[v] for a single draw.
func (d Definition) Variance() float64 {
	return stats.WeightedVariance(d.split())
}

func (d Definition) StdDev() float64 {
	return math.Sqrt(d.Variance())
}
