package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"bagcalc/internal/engine"
	"bagcalc/internal/visuals"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	calcJSON   bool
	calcCharts bool
)

var calcCmd = &cobra.Command{
	Use:   "calc <bag1-draws> <bag2-draws> <target>",
	Short: "Calculate the chance of reaching a soulstone target",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var nums [3]int
		for i, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil || n < 0 {
				return fmt.Errorf("numbers of bags and soulstones goal must be non-negative integers, got %q", a)
			}
			nums[i] = n
		}

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		res, err := eng.Calculate(ctx, engine.Request{
			Bag1:   cfg.Bags.Bag1,
			Draws1: nums[0],
			Bag2:   cfg.Bags.Bag2,
			Draws2: nums[1],
			Target: nums[2],
		})
		if err != nil {
			return err
		}
		log.Debug().Str("method", res.Method.String()).Msg("calc finished")

		out := cmd.OutOrStdout()
		if calcJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		report := visuals.RenderProbabilityReport(visuals.ReportInput{
			Bag1:      cfg.Bags.Bag1,
			Draws1:    nums[0],
			Bag2:      cfg.Bags.Bag2,
			Draws2:    nums[1],
			Target:    nums[2],
			Result:    res,
			Proximity: cfg.Engine.TopSumsProximity,
			Charts:    calcCharts || cfg.EnableMermaidCharts,
		})
		_, err = fmt.Fprint(out, report)
		return err
	},
}

func init() {
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "print the result as JSON")
	calcCmd.Flags().BoolVar(&calcCharts, "charts", false, "append Mermaid charts of the distribution")
}
