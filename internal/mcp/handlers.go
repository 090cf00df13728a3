package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bagcalc/internal/bags"
	"bagcalc/internal/engine"
	"bagcalc/internal/visuals"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// ProbabilityInput represents the MCP tool input for a calculation.
type ProbabilityInput struct {
	Bag1Draws int `json:"bag1_draws" jsonschema:"number of Bag I draws"`
	Bag2Draws int `json:"bag2_draws" jsonschema:"number of Bag II draws"`
	Target    int `json:"target" jsonschema:"target soulstones (at least)"`
}

// TopSum is one of the most likely totals.
type TopSum struct {
	Total  int     `json:"total" jsonschema:"total soulstones"`
	Chance float64 `json:"chance" jsonschema:"probability of this exact total, in percent"`
}

// ProbabilityResult represents the MCP tool output for a calculation.
type ProbabilityResult struct {
	Bag1Draws     int      `json:"bag1_draws" jsonschema:"number of Bag I draws"`
	Bag2Draws     int      `json:"bag2_draws" jsonschema:"number of Bag II draws"`
	Target        int      `json:"target" jsonschema:"target soulstones"`
	ProbAtLeast   float64  `json:"prob_at_least" jsonschema:"chance that the total is at least target, in percent"`
	ProbExact     float64  `json:"prob_exact" jsonschema:"chance that the total equals target, in percent"`
	Method        string   `json:"method" jsonschema:"exact or normal_approximation"`
	ExpectedTotal float64  `json:"expected_total" jsonschema:"expected total soulstones"`
	StdDev        float64  `json:"std_dev" jsonschema:"standard deviation of the total"`
	TopSumsStatus string   `json:"top_sums_status" jsonschema:"ranked, indistinct, partial or not_enumerated"`
	TopSums       []TopSum `json:"top_sums" jsonschema:"up to three most likely totals"`
}

// BagInfoInput is empty; bag_info takes no arguments.
type BagInfoInput struct{}

// BagItem is one value in a bag.
type BagItem struct {
	Value  int     `json:"value" jsonschema:"soulstones"`
	Chance float64 `json:"chance" jsonschema:"chance per draw, in percent"`
}

// BagSummary describes one bag.
type BagSummary struct {
	Name   string    `json:"name" jsonschema:"bag name"`
	Mean   float64   `json:"mean" jsonschema:"expected soulstones per draw"`
	StdDev float64   `json:"std_dev" jsonschema:"standard deviation per draw"`
	Items  []BagItem `json:"items" jsonschema:"normalized contents"`
}

// BagInfoResult represents the MCP tool output for bag_info.
type BagInfoResult struct {
	Bags []BagSummary `json:"bags" jsonschema:"Bag I then Bag II"`
}

func (s *Server) probabilityHandler() mcp.ToolHandlerFor[ProbabilityInput, ProbabilityResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProbabilityInput) (*mcp.CallToolResult, ProbabilityResult, error) {
		logger := log.With().
			Int("bag1", input.Bag1Draws).
			Int("bag2", input.Bag2Draws).
			Int("target", input.Target).
			Logger()
		logger.Info().Msg("bags_probability called")

		if input.Bag1Draws < 0 || input.Bag2Draws < 0 || input.Target < 0 {
			logger.Warn().Msg("Rejected negative input")
			return nil, ProbabilityResult{}, errors.New(invalidInputMessage)
		}

		pair := s.cfg.Bags
		start := time.Now()
		res, err := s.engine.Calculate(ctx, engine.Request{
			Bag1:   pair.Bag1,
			Draws1: input.Bag1Draws,
			Bag2:   pair.Bag2,
			Draws2: input.Bag2Draws,
			Target: input.Target,
		})
		if err != nil {
			logger.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("Calculation failed")
			return nil, ProbabilityResult{}, errors.New(s.userMessage(err))
		}
		logger.Info().Str("method", res.Method.String()).Dur("elapsed", time.Since(start)).Msg("Calculation successful")

		out := ProbabilityResult{
			Bag1Draws:     input.Bag1Draws,
			Bag2Draws:     input.Bag2Draws,
			Target:        input.Target,
			ProbAtLeast:   res.ProbAtLeast,
			ProbExact:     res.ProbExact,
			Method:        res.Method.String(),
			ExpectedTotal: res.ExpectedTotal,
			StdDev:        res.StdDev,
			TopSumsStatus: string(res.TopSums.Status),
			TopSums:       make([]TopSum, 0, len(res.TopSums.Entries)),
		}
		for _, e := range res.TopSums.Entries {
			out.TopSums = append(out.TopSums, TopSum{Total: e.Sum, Chance: e.Probability * 100})
		}

		report := visuals.RenderProbabilityReport(visuals.ReportInput{
			Bag1:      pair.Bag1,
			Draws1:    input.Bag1Draws,
			Bag2:      pair.Bag2,
			Draws2:    input.Bag2Draws,
			Target:    input.Target,
			Result:    res,
			Proximity: s.engine.Config().TopSumsProximity,
			Charts:    s.cfg.EnableMermaidCharts,
		})
		return textResult(report), out, nil
	}
}

func (s *Server) bagInfoHandler() mcp.ToolHandlerFor[BagInfoInput, BagInfoResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ BagInfoInput) (*mcp.CallToolResult, BagInfoResult, error) {
		pair := s.cfg.Bags
		out := BagInfoResult{Bags: []BagSummary{summarizeBag(pair.Bag1), summarizeBag(pair.Bag2)}}
		return textResult(visuals.RenderBagInfo(pair.Bag1, pair.Bag2)), out, nil
	}
}

func summarizeBag(d bags.Definition) BagSummary {
	items := d.Items()
	out := BagSummary{Name: d.Name(), Mean: d.Mean(), StdDev: d.StdDev(), Items: make([]BagItem, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, BagItem{Value: it.Value, Chance: it.Probability * 100})
	}
	return out
}

const invalidInputMessage = "Invalid input: numbers of bags and soulstones goal must be non-negative integers, and the largest possible total must fit the calculator's range."

// userMessage maps engine errors to the text shown to the caller.
func (s *Server) userMessage(err error) string {
	cfg := s.engine.Config()
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		return invalidInputMessage
	case errors.Is(err, engine.ErrTimeout):
		return fmt.Sprintf("Calculation timeout: the calculation took too long (more than %s) and was cancelled. Please try with smaller bag numbers.", cfg.Timeout)
	case errors.Is(err, engine.ErrUnsupported):
		return fmt.Sprintf("Inputs too large: exact calculation is limited to %d Bag I and %d Bag II draws and no approximation is available.",
			cfg.ExactThreshold1, cfg.ExactThreshold2)
	case errors.Is(err, context.Canceled):
		return "Calculation cancelled."
	default:
		return fmt.Sprintf("An unexpected error occurred during calculation: %v", err)
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}
