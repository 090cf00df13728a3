package engine

import (
	"errors"
	"math"
	"testing"

	"bagcalc/internal/bags"
	"bagcalc/internal/stats"
)

func TestTotalMoments(t *testing.T) {
	m := TotalMoments(coin, 4, bags.Defaults().Bag2, 0)
	if m.Mean != 6 {
		t.Errorf("mean = %v, want 6", m.Mean)
	}
	if math.Abs(m.Variance-1) > 1e-12 {
		t.Errorf("variance = %v, want 1", m.Variance)
	}
	if m.MinTotal != 4 || m.MaxTotal != 8 {
		t.Errorf("range = [%d,%d], want [4,8]", m.MinTotal, m.MaxTotal)
	}
}

func TestNormalApproximation(t *testing.T) {
	normal := stats.NewGonumNormal()
	pair := bags.Defaults()

	t.Run("ContinuityCorrectionAtMean", func(t *testing.T) {
		// 400 coin draws: mean 600, sd 10. Target 600 sits on the mean so the
		// corrected z is -0.05.
		atLeast, exact, err := NormalApproximation(normal, coin, 400, pair.Bag2, 0, 600)
		if err != nil {
			t.Fatal(err)
		}
		wantAtLeast := 100 * (1 - normal.CDF(-0.05))
		if math.Abs(atLeast-wantAtLeast) > 1e-9 {
			t.Errorf("probAtLeast = %v, want %v", atLeast, wantAtLeast)
		}
		wantExact := 100 * (normal.CDF(0.05) - normal.CDF(-0.05))
		if math.Abs(exact-wantExact) > 1e-9 {
			t.Errorf("probExact = %v, want %v", exact, wantExact)
		}
	})

	t.Run("OutsideAchievableRange", func(t *testing.T) {
		atLeast, exact, err := NormalApproximation(normal, coin, 400, pair.Bag2, 0, 0)
		if err != nil || atLeast != 100 || exact != 0 {
			t.Errorf("target 0: got (%v, %v, %v), want (100, 0, nil)", atLeast, exact, err)
		}
		atLeast, exact, err = NormalApproximation(normal, coin, 400, pair.Bag2, 0, 801)
		if err != nil || atLeast != 0 || exact != 0 {
			t.Errorf("target above max: got (%v, %v, %v), want (0, 0, nil)", atLeast, exact, err)
		}
	})

	t.Run("DeterministicTotal", func(t *testing.T) {
		fixed := bags.MustNew("fixed", []bags.Item{{Value: 5, Probability: 1}})
		atLeast, exact, err := NormalApproximation(normal, fixed, 1000, fixed, 0, 5000)
		if err != nil || atLeast != 100 || exact != 100 {
			t.Errorf("target == total: got (%v, %v, %v)", atLeast, exact, err)
		}
		atLeast, exact, _ = NormalApproximation(normal, fixed, 1000, fixed, 0, 5001)
		if atLeast != 0 || exact != 0 {
			t.Errorf("target above total: got (%v, %v)", atLeast, exact)
		}
	})

	t.Run("ExactNeverExceedsAtLeast", func(t *testing.T) {
		for target := 0; target <= 4000; target += 37 {
			atLeast, exact, err := NormalApproximation(normal, pair.Bag1, 500, pair.Bag2, 120, target)
			if err != nil {
				t.Fatal(err)
			}
			if exact > atLeast || atLeast < 0 || atLeast > 100 {
				t.Fatalf("target %d: exact %v, atLeast %v", target, exact, atLeast)
			}
		}
	})

	t.Run("BackendIndependent", func(t *testing.T) {
		for _, target := range []int{2000, 2500, 3100} {
			a, ea, _ := NormalApproximation(normal, pair.Bag1, 500, pair.Bag2, 120, target)
			b, eb, _ := NormalApproximation(stats.ErfcNormal{}, pair.Bag1, 500, pair.Bag2, 120, target)
			if math.Abs(a-b) > 1e-9 || math.Abs(ea-eb) > 1e-9 {
				t.Errorf("target %d: backends disagree (%v,%v) vs (%v,%v)", target, a, ea, b, eb)
			}
		}
	})

	t.Run("Rejects", func(t *testing.T) {
		if _, _, err := NormalApproximation(nil, coin, 10, coin, 10, 5); !errors.Is(err, ErrUnsupported) {
			t.Errorf("nil backend: expected ErrUnsupported, got %v", err)
		}
		if _, _, err := NormalApproximation(normal, coin, 10, coin, 10, -5); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("negative target: expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("OverflowingTotalsRejected", func(t *testing.T) {
		// 1e17 Bag II draws put the maximum total past MaxInt; the mean is
		// far above the target, so a wrapped bound would answer 0% for a ~100% event.
		atLeast, exact, err := NormalApproximation(normal, pair.Bag1, 0, pair.Bag2, 100_000_000_000_000_000, 1_500_000_000_000_000_000)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got (%v, %v, %v)", atLeast, exact, err)
		}
	})
}

func TestCheckTotalRange(t *testing.T) {
	pair := bags.Defaults()
	huge := bags.MustNew("huge", []bags.Item{{Value: math.MaxInt / 2, Probability: 1}})

	tests := []struct {
		name   string
		bag1   bags.Definition
		draws1 int
		bag2   bags.Definition
		draws2 int
		ok     bool
	}{
		{"Defaults", pair.Bag1, 1000, pair.Bag2, 1000, true},
		{"AtLimit", huge, 2, pair.Bag2, 0, true},
		{"SingleBagOverflow", huge, 3, pair.Bag2, 0, false},
		{"SumOverflow", huge, 2, pair.Bag2, 1, false},
		{"ZeroDrawsOfHugeBag", pair.Bag1, 5, huge, 0, true},
		{"WrapsNegative", pair.Bag1, 0, pair.Bag2, 100_000_000_000_000_000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTotalRange(tt.bag1, tt.draws1, tt.bag2, tt.draws2)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
