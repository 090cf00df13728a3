package engine

// TopSumsStatus says how a top-sums list should be read.
type TopSumsStatus string

const (
	// TopSumsRanked holds three outcomes whose ranking is meaningful.
	TopSumsRanked TopSumsStatus = "ranked"
	// TopSumsIndistinct holds three outcomes whose 1st/3rd gap is below the
	// proximity threshold; the order carries no information.
	TopSumsIndistinct TopSumsStatus = "indistinct"
	// TopSumsPartial means fewer than three outcomes have non-zero mass.
	TopSumsPartial TopSumsStatus = "partial"
	// TopSumsNotEnumerated is used by the normal approximation, which has no
	// discrete outcomes to rank.
	TopSumsNotEnumerated TopSumsStatus = "not_enumerated"
)

const topSumsLimit = 3

// TopSums are the most probable totals, probability descending and ties broken
// by the larger total. Probabilities are fractions, not percentages.
type TopSums struct {
	Status  TopSumsStatus `json:"status"`
	Entries []Outcome     `json:"entries"`
}

// Summary is what the presentation layer needs from a distribution.
type Summary struct {
	ProbAtLeast float64 `json:"prob_at_least"`
	ProbExact   float64 `json:"prob_exact"`
	TopSums     TopSums `json:"top_sums"`
}

// Summarize derives percentages and top sums from an exact distribution.
func Summarize(d Distribution, target int, proximity float64) Summary {
	var atLeast float64
	switch {
	case d.IsEmpty() || target > d.Max():
		atLeast = 0
	case target <= d.Min():
		atLeast = 100
	default:
		atLeast = clampPercent(d.AtLeast(target) * 100)
	}

	return Summary{
		ProbAtLeast: atLeast,
		ProbExact:   clampPercent(d.Prob(target) * 100),
		TopSums:     RankTopSums(d, proximity),
	}
}

// RankTopSums picks up to three outcomes with non-zero mass.
func RankTopSums(d Distribution, proximity float64) TopSums {
	top := make([]Outcome, 0, topSumsLimit)
	for _, o := range d.Outcomes() {
		pos := len(top)
		for pos > 0 && ranksBefore(o, top[pos-1]) {
			pos--
		}
		if pos >= topSumsLimit {
			continue
		}
		if len(top) < topSumsLimit {
			top = append(top, Outcome{})
		}
		copy(top[pos+1:], top[pos:len(top)-1])
		top[pos] = o
	}

	status := TopSumsRanked
	switch {
	case len(top) < topSumsLimit:
		status = TopSumsPartial
	case top[0].Probability-top[topSumsLimit-1].Probability < proximity:
		status = TopSumsIndistinct
	}
	return TopSums{Status: status, Entries: top}
}

func ranksBefore(a, b Outcome) bool {
	if a.Probability != b.Probability {
		return a.Probability > b.Probability
	}
	return a.Sum > b.Sum
}
