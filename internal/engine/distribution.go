package engine

import (
	"context"
	"fmt"

	"bagcalc/internal/bags"
)

// Distribution maps achievable totals to probability mass. It is stored densely
// from its smallest representable total, so iteration order (and therefore
// floating-point accumulation order) is fixed.
type Distribution struct {
	offset int
	mass   []float64
}

// Outcome is one total and its probability mass.
type Outcome struct {
	Sum         int     `json:"sum"`
	Probability float64 `json:"probability"`
}

// PointMass is the distribution of a total known with certainty.
func PointMass(sum int) Distribution {
	return Distribution{offset: sum, mass: []float64{1}}
}

// IsEmpty reports whether the distribution holds no totals at all.
func (d Distribution) IsEmpty() bool { return len(d.mass) == 0 }

// Min and Max bound the representable totals.
func (d Distribution) Min() int { return d.offset }

func (d Distribution) Max() int { return d.offset + len(d.mass) - 1 }

// Width is the number of representable totals, zero-mass gaps included.
func (d Distribution) Width() int { return len(d.mass) }

// Prob returns the mass at sum, 0 outside the support.
func (d Distribution) Prob(sum int) float64 {
	i := sum - d.offset
	if i < 0 || i >= len(d.mass) {
		return 0
	}
	return d.mass[i]
}

// Total is the sum of all mass; 1 within rounding for a computed distribution.
func (d Distribution) Total() float64 {
	var total float64
	for _, p := range d.mass {
		total += p
	}
	return total
}

// AtLeast returns P(total >= target) as a fraction.
func (d Distribution) AtLeast(target int) float64 {
	start := target - d.offset
	if start < 0 {
		start = 0
	}
	var acc float64
	for i := start; i < len(d.mass); i++ {
		acc += d.mass[i]
	}
	return acc
}

// Outcomes lists totals with non-zero mass in ascending order.
func (d Distribution) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(d.mass))
	for i, p := range d.mass {
		if p > 0 {
			out = append(out, Outcome{Sum: d.offset + i, Probability: p})
		}
	}
	return out
}

// ComputeDistribution returns the exact distribution of the total of draws
// independent draws from bag. Zero draws yield PointMass(0).
//
// ctx is checked once per draw, after the draw's convolution completes.
func ComputeDistribution(ctx context.Context, bag bags.Definition, draws int) (Distribution, error) {
	if draws < 0 {
		return Distribution{}, fmt.Errorf("%w: negative draw count %d for %q", ErrInvalidInput, draws, bag.Name())
	}
	if draws > 0 && bag.Len() == 0 {
		return Distribution{}, fmt.Errorf("%w: bag %q is empty", ErrInvalidInput, bag.Name())
	}

	items := bag.Items()
	lo := bag.MinValue()
	span := bag.MaxValue() - lo

	cur := PointMass(0)
	for n := 0; n < draws; n++ {
		next := make([]float64, len(cur.mass)+span)
		for s, prev := range cur.mass {
			if prev == 0 {
				continue
			}
			for _, it := range items {
				next[s+it.Value-lo] += prev * it.Probability
			}
		}
		cur = Distribution{offset: cur.offset + lo, mass: next}

		if err := ctx.Err(); err != nil {
			return Distribution{}, err
		}
	}
	return cur, nil
}

// Combine convolves two independent distributions into the distribution of
// their sum. ctx is checked after each outer step over a.
func Combine(ctx context.Context, a, b Distribution) (Distribution, error) {
	if a.IsEmpty() || b.IsEmpty() {
		return Distribution{}, fmt.Errorf("%w: cannot combine an empty distribution", ErrInvalidInput)
	}

	out := make([]float64, len(a.mass)+len(b.mass)-1)
	for i, pa := range a.mass {
		if pa != 0 {
			for j, pb := range b.mass {
				out[i+j] += pa * pb
			}
		}
		if err := ctx.Err(); err != nil {
			return Distribution{}, err
		}
	}
	return Distribution{offset: a.offset + b.offset, mass: out}, nil
}
