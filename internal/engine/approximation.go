package engine

import (
	"fmt"
	"math"

	"bagcalc/internal/bags"
	"bagcalc/internal/stats"
)

// Moments describes the total of draws1 draws from bag1 plus draws2 draws from
// bag2, assuming independent draws.
type Moments struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
	// MinTotal and MaxTotal bound the achievable totals.
	MinTotal int `json:"min_total"`
	MaxTotal int `json:"max_total"`
}

// TotalMoments scales each bag's single-draw moments by its draw count and sums them.
func TotalMoments(bag1 bags.Definition, draws1 int, bag2 bags.Definition, draws2 int) Moments {
	mean := bag1.Mean()*float64(draws1) + bag2.Mean()*float64(draws2)
	variance := bag1.Variance()*float64(draws1) + bag2.Variance()*float64(draws2)
	return Moments{
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		MinTotal: bag1.MinValue()*draws1 + bag2.MinValue()*draws2,
		MaxTotal: bag1.MaxValue()*draws1 + bag2.MaxValue()*draws2,
	}
}

// MaxDraws caps each draw count accepted by Request.Validate.
const MaxDraws = 1_000_000_000

// CheckTotalRange reports ErrInvalidInput when the largest achievable total
// does not fit in an int. TotalMoments assumes it does.
func CheckTotalRange(bag1 bags.Definition, draws1 int, bag2 bags.Definition, draws2 int) error {
	total, ok := addMul(0, bag1.MaxValue(), draws1)
	if ok {
		_, ok = addMul(total, bag2.MaxValue(), draws2)
	}
	if !ok {
		return fmt.Errorf("%w: totals of %d x %q plus %d x %q overflow", ErrInvalidInput, draws1, bag1.Name(), draws2, bag2.Name())
	}
	return nil
}

// addMul returns acc + v*n for non-negative operands, false on int overflow.
func addMul(acc, v, n int) (int, bool) {
	if v != 0 && n > (math.MaxInt-acc)/v {
		return 0, false
	}
	return acc + v*n, true
}

// NormalApproximation estimates P(total >= target) and P(total == target), in
// percent, with a continuity-corrected normal distribution. Targets outside the
// achievable range are answered exactly.
func NormalApproximation(normal stats.StandardNormal, bag1 bags.Definition, draws1 int, bag2 bags.Definition, draws2 int, target int) (probAtLeast, probExact float64, err error) {
	if normal == nil {
		return 0, 0, fmt.Errorf("%w: no standard normal backend", ErrUnsupported)
	}
	if draws1 < 0 || draws2 < 0 || target < 0 {
		return 0, 0, fmt.Errorf("%w: draws (%d, %d) and target %d must be non-negative", ErrInvalidInput, draws1, draws2, target)
	}
	if err := CheckTotalRange(bag1, draws1, bag2, draws2); err != nil {
		return 0, 0, err
	}

	m := TotalMoments(bag1, draws1, bag2, draws2)

	switch {
	case target <= m.MinTotal:
		exact := 0.0
		if target == m.MinTotal {
			exact = approxExact(normal, m, target)
		}
		return 100, exact, nil
	case target > m.MaxTotal:
		return 0, 0, nil
	}

	// Deterministic total.
	if m.StdDev == 0 {
		t := float64(target)
		if t <= m.Mean {
			probAtLeast = 100
		}
		if t == m.Mean {
			probExact = 100
		}
		return probAtLeast, probExact, nil
	}

	z := (float64(target) - 0.5 - m.Mean) / m.StdDev
	probAtLeast = clampPercent(normal.Survival(z) * 100)
	probExact = math.Min(approxExact(normal, m, target), probAtLeast)
	return probAtLeast, probExact, nil
}

func approxExact(normal stats.StandardNormal, m Moments, target int) float64 {
	if m.StdDev == 0 {
		if float64(target) == m.Mean {
			return 100
		}
		return 0
	}
	lower := (float64(target) - 0.5 - m.Mean) / m.StdDev
	upper := (float64(target) + 0.5 - m.Mean) / m.StdDev
	return clampPercent((normal.CDF(upper) - normal.CDF(lower)) * 100)
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0 || math.IsNaN(p):
		return 0
	case p > 100:
		return 100
	}
	return p
}
