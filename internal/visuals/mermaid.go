package visuals

import (
	"fmt"
	"math"
	"strings"

	"bagcalc/internal/engine"
)

const (
	maxBars  = 40
	tailMass = 0.001
)

// bucket is a run of adjacent totals plotted as one bar.
type bucket struct {
	from, to int
	mass     float64
}

// GenerateDistributionChart creates a Mermaid bar chart of the combined total
// distribution, trimmed to the central region and grouped into at most maxBars bars.
func GenerateDistributionChart(dist engine.Distribution, title string) string {
	buckets := bucketize(dist)
	if len(buckets) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0.0
	for _, b := range buckets {
		labels = append(labels, fmt.Sprintf("\"%s\"", b.label()))
		pct := b.mass * 100
		values = append(values, fmt.Sprintf("%.2f", pct))
		maxVal = math.Max(maxVal, pct)
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"%s\"\n", escape(title)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Probability (%%)\" 0 --> %d\n", int(math.Ceil(maxVal*1.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateAtLeastChart creates a Mermaid line chart of P(total >= x) over the
// same region as GenerateDistributionChart, with the requested target marked.
func GenerateAtLeastChart(dist engine.Distribution, target int) string {
	buckets := bucketize(dist)
	if len(buckets) == 0 {
		return ""
	}

	var labels []string
	var values []string
	var targets []string
	targetPct := dist.AtLeast(target) * 100
	for _, b := range buckets {
		labels = append(labels, fmt.Sprintf("\"%d\"", b.from))
		values = append(values, fmt.Sprintf("%.2f", dist.AtLeast(b.from)*100))
		targets = append(targets, fmt.Sprintf("%.2f", targetPct))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Chance of reaching at least x (target %d)\"\n", target))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Probability (%)\" 0 --> 100\n")
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(targets, ", ")))
	sb.WriteString("```")
	return sb.String()
}

func bucketize(dist engine.Distribution) []bucket {
	if dist.IsEmpty() {
		return nil
	}

	lo, hi := centralRange(dist)
	size := int(math.Ceil(float64(hi-lo+1) / maxBars))
	if size < 1 {
		size = 1
	}

	var out []bucket
	for from := lo; from <= hi; from += size {
		to := min(from+size-1, hi)
		b := bucket{from: from, to: to}
		for s := from; s <= to; s++ {
			b.mass += dist.Prob(s)
		}
		out = append(out, b)
	}
	return out
}

// centralRange drops up to tailMass of probability from each end.
func centralRange(dist engine.Distribution) (int, int) {
	lo, hi := dist.Min(), dist.Max()

	acc := 0.0
	for lo < hi && acc+dist.Prob(lo) <= tailMass {
		acc += dist.Prob(lo)
		lo++
	}
	acc = 0
	for hi > lo && acc+dist.Prob(hi) <= tailMass {
		acc += dist.Prob(hi)
		hi--
	}
	return lo, hi
}

func (b bucket) label() string {
	if b.from == b.to {
		return fmt.Sprintf("%d", b.from)
	}
	return fmt.Sprintf("%d-%d", b.from, b.to)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
