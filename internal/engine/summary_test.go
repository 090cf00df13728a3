package engine

import (
	"context"
	"testing"

	"bagcalc/internal/bags"
)

func distFrom(t *testing.T, bag bags.Definition, draws int) Distribution {
	t.Helper()
	d, err := ComputeDistribution(context.Background(), bag, draws)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestSummarize_TwoCoins(t *testing.T) {
	d := distFrom(t, coin, 2)

	tests := []struct {
		target  int
		atLeast float64
		exact   float64
	}{
		{0, 100, 0},
		{2, 100, 25},
		{3, 75, 50},
		{4, 25, 25},
		{5, 0, 0},
	}
	for _, tt := range tests {
		s := Summarize(d, tt.target, 0.001)
		if s.ProbAtLeast != tt.atLeast || s.ProbExact != tt.exact {
			t.Errorf("target %d: got (%v, %v), want (%v, %v)", tt.target, s.ProbAtLeast, s.ProbExact, tt.atLeast, tt.exact)
		}
	}
}

func TestRankTopSums(t *testing.T) {
	t.Run("TiesBrokenByLargerSum", func(t *testing.T) {
		top := RankTopSums(distFrom(t, coin, 2), 0.001)
		want := []Outcome{{3, 0.5}, {4, 0.25}, {2, 0.25}}
		if top.Status != TopSumsRanked {
			t.Errorf("status = %s, want ranked", top.Status)
		}
		if len(top.Entries) != len(want) {
			t.Fatalf("entries = %+v", top.Entries)
		}
		for i := range want {
			if top.Entries[i] != want[i] {
				t.Errorf("entry %d = %+v, want %+v", i, top.Entries[i], want[i])
			}
		}
	})

	t.Run("Indistinct", func(t *testing.T) {
		// Three equally likely totals.
		die := bags.MustNew("d3", []bags.Item{{Value: 1, Probability: 1}, {Value: 2, Probability: 1}, {Value: 3, Probability: 1}})
		top := RankTopSums(distFrom(t, die, 1), 0.001)
		if top.Status != TopSumsIndistinct {
			t.Errorf("status = %s, want indistinct", top.Status)
		}
		if len(top.Entries) != 3 || top.Entries[0].Sum != 3 {
			t.Errorf("entries = %+v", top.Entries)
		}
	})

	t.Run("PartialIsNamedNotPadded", func(t *testing.T) {
		top := RankTopSums(distFrom(t, coin, 1), 0.001)
		if top.Status != TopSumsPartial {
			t.Errorf("status = %s, want partial", top.Status)
		}
		if len(top.Entries) != 2 {
			t.Errorf("entries = %+v, want exactly two", top.Entries)
		}
		for _, e := range top.Entries {
			if e.Probability == 0 {
				t.Errorf("zero-probability entry %+v", e)
			}
		}
	})

	t.Run("ZeroMassGapsSkipped", func(t *testing.T) {
		gappy := bags.MustNew("gappy", []bags.Item{{Value: 0, Probability: 0.5}, {Value: 10, Probability: 0.5}})
		top := RankTopSums(distFrom(t, gappy, 1), 0)
		if top.Status != TopSumsPartial || len(top.Entries) != 2 {
			t.Errorf("got %s %+v", top.Status, top.Entries)
		}
	})

	t.Run("TinyMassStillListed", func(t *testing.T) {
		rare := bags.MustNew("rare", []bags.Item{{Value: 0, Probability: 1}, {Value: 1, Probability: 1e-12}})
		top := RankTopSums(distFrom(t, rare, 1), 0.001)
		if top.Status != TopSumsPartial || len(top.Entries) != 2 {
			t.Fatalf("got %s %+v", top.Status, top.Entries)
		}
		if e := top.Entries[1]; e.Sum != 1 || e.Probability <= 0 || e.Probability > 1e-11 {
			t.Errorf("rare outcome = %+v", e)
		}
	})

	t.Run("MatchesFullSort", func(t *testing.T) {
		d := distFrom(t, bags.Defaults().Bag1, 12)
		top := RankTopSums(d, 0)

		outcomes := d.Outcomes()
		for _, e := range top.Entries {
			for _, o := range outcomes {
				if ranksBefore(o, e) && !contains(top.Entries, o) {
					t.Fatalf("%+v outranks listed entry %+v", o, e)
				}
			}
		}
	})
}

func contains(list []Outcome, o Outcome) bool {
	for _, e := range list {
		if e == o {
			return true
		}
	}
	return false
}
