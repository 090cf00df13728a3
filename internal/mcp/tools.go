package mcp

import (
	"bagcalc/internal/engine"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProbabilityTool defines the MCP tool schema for the soulstone calculation.
func ProbabilityTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "bags_probability",
		Description: "Calculate the probability that the total soulstones from a number of Bag I and Bag II draws reaches a target. " +
			"Returns the chance of at least and exactly the target, the expected total, the calculation method and, for exact results, the three most likely totals.\n\n" +
			"STRICT GUARDRAIL: DO NOT estimate probabilities yourself if the tool fails. Report the error text to the user instead.\n" +
			"Results marked as normal approximation are estimates; say so when quoting them.",
		InputSchema: probabilityInputSchema(),
	}
}

// BagInfoTool defines the MCP tool schema for bag contents.
func BagInfoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "bag_info",
		Description: "List the contents of Bag I and Bag II with the chance of each value, the average and the standard deviation per draw.",
		InputSchema: &jsonschema.Schema{Type: "object", Properties: map[string]*jsonschema.Schema{}},
	}
}

func probabilityInputSchema() *jsonschema.Schema {
	draws := func(desc string) *jsonschema.Schema {
		return &jsonschema.Schema{Type: "integer", Minimum: ptr(0.0), Maximum: ptr(float64(engine.MaxDraws)), Description: desc}
	}
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"bag1_draws": draws("Number of Bag I draws"),
			"bag2_draws": draws("Number of Bag II draws"),
			"target":     {Type: "integer", Minimum: ptr(0.0), Description: "Target soulstones (at least)"},
		},
		Required: []string{"bag1_draws", "bag2_draws", "target"},
	}
}

func ptr[T any](v T) *T { return &v }
