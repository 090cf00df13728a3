package visuals

import (
	"context"
	"strings"
	"testing"

	"bagcalc/internal/bags"
	"bagcalc/internal/engine"
)

func dist(t *testing.T, bag bags.Definition, draws int) engine.Distribution {
	t.Helper()
	d, err := engine.ComputeDistribution(context.Background(), bag, draws)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestGenerateDistributionChart_Small(t *testing.T) {
	coin := bags.MustNew("coin", []bags.Item{{Value: 1, Probability: 0.5}, {Value: 2, Probability: 0.5}})
	chart := GenerateDistributionChart(dist(t, coin, 2), `Two "coins"`)

	for _, want := range []string{
		"```mermaid\nxychart-beta\n",
		`title "Two 'coins'"`,
		`x-axis ["2", "3", "4"]`,
		"bar [25.00, 50.00, 25.00]",
	} {
		if !strings.Contains(chart, want) {
			t.Errorf("chart missing %q:\n%s", want, chart)
		}
	}
}

func TestGenerateDistributionChart_Buckets(t *testing.T) {
	d := dist(t, bags.Defaults().Bag1, 80)
	buckets := bucketize(d)
	if len(buckets) == 0 || len(buckets) > maxBars {
		t.Fatalf("got %d buckets", len(buckets))
	}

	total := 0.0
	for i, b := range buckets {
		total += b.mass
		if i > 0 && b.from != buckets[i-1].to+1 {
			t.Errorf("bucket %d does not follow %d", i, i-1)
		}
	}
	if total < 1-2*tailMass-1e-9 {
		t.Errorf("buckets cover %v of the mass", total)
	}
}

func TestGenerateCharts_Empty(t *testing.T) {
	if GenerateDistributionChart(engine.Distribution{}, "x") != "" {
		t.Error("empty distribution should give no chart")
	}
	if GenerateAtLeastChart(engine.Distribution{}, 3) != "" {
		t.Error("empty distribution should give no chart")
	}
}

func TestGenerateAtLeastChart(t *testing.T) {
	coin := bags.MustNew("coin", []bags.Item{{Value: 1, Probability: 0.5}, {Value: 2, Probability: 0.5}})
	chart := GenerateAtLeastChart(dist(t, coin, 2), 3)
	if !strings.Contains(chart, "line [100.00, 75.00, 25.00]") {
		t.Errorf("unexpected survival line:\n%s", chart)
	}
	if !strings.Contains(chart, "line [75.00, 75.00, 75.00]") {
		t.Errorf("unexpected target line:\n%s", chart)
	}
}
