package visuals

import (
	"fmt"
	"strings"

	"bagcalc/internal/bags"
	"bagcalc/internal/engine"
)

// ReportInput is everything a probability report shows.
type ReportInput struct {
	Bag1      bags.Definition
	Draws1    int
	Bag2      bags.Definition
	Draws2    int
	Target    int
	Result    engine.Result
	Proximity float64
	Charts    bool
}

// RenderProbabilityReport formats a calculation as Markdown.
func RenderProbabilityReport(in ReportInput) string {
	res := in.Result

	var sb strings.Builder
	sb.WriteString("## Soulstone Probability Results\n\n")

	sb.WriteString("### Input Parameters\n")
	sb.WriteString(fmt.Sprintf("- %s draws: %d\n", in.Bag1.Name(), in.Draws1))
	sb.WriteString(fmt.Sprintf("- %s draws: %d\n", in.Bag2.Name(), in.Draws2))
	sb.WriteString(fmt.Sprintf("- Target (at least): %d\n\n", in.Target))

	sb.WriteString("### Expected Average\n")
	sb.WriteString(fmt.Sprintf("Expected total: %.2f (std dev %.2f)\n\n", res.ExpectedTotal, res.StdDev))

	sb.WriteString("### Probability Result\n")
	sb.WriteString(fmt.Sprintf("- At least %d: %.4f%%\n", in.Target, res.ProbAtLeast))
	sb.WriteString(fmt.Sprintf("- Exactly %d: %.4f%%\n", in.Target, res.ProbExact))
	switch res.Method {
	case engine.MethodExact:
		sb.WriteString("\n_Result is exact._\n")
	case engine.MethodNormalApproximation:
		sb.WriteString("\n_Result is an approximation based on the normal distribution._\n")
	}

	if res.Method == engine.MethodExact {
		sb.WriteString("\n### Top 3 Most Likely Totals\n")
		sb.WriteString(RenderTopSums(res.TopSums, in.Proximity))
	}

	if in.Charts && !res.Distribution.IsEmpty() {
		sb.WriteString("\n")
		sb.WriteString(GenerateDistributionChart(res.Distribution, "Distribution of total soulstones"))
		sb.WriteString("\n\n")
		sb.WriteString(GenerateAtLeastChart(res.Distribution, in.Target))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderTopSums formats top sums as a numbered list, or explains why there is none.
func RenderTopSums(top engine.TopSums, proximity float64) string {
	switch top.Status {
	case engine.TopSumsIndistinct:
		return fmt.Sprintf("Top sums are too close in probability (difference between 1st and 3rd < %.2f%%) to be meaningfully distinct.\n", proximity*100)
	case engine.TopSumsNotEnumerated:
		return "Not available for approximated results.\n"
	}
	if len(top.Entries) == 0 {
		return "No prominent sums found.\n"
	}

	var sb strings.Builder
	for i, e := range top.Entries {
		sb.WriteString(fmt.Sprintf("%d. Total: %d, chance: %.4f%%\n", i+1, e.Sum, e.Probability*100))
	}
	return sb.String()
}

// RenderBagInfo lists the normalized contents and moments of each bag.
func RenderBagInfo(defs ...bags.Definition) string {
	var sb strings.Builder
	sb.WriteString("## Bag Information\n")
	for _, d := range defs {
		sb.WriteString(fmt.Sprintf("\n### %s (avg %.2f, std dev %.2f)\n", d.Name(), d.Mean(), d.StdDev()))
		for _, it := range d.Items() {
			sb.WriteString(fmt.Sprintf("- %d: %.2f%%\n", it.Value, it.Probability*100))
		}
	}
	return sb.String()
}
