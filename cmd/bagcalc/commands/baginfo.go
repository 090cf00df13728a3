package commands

import (
	"fmt"

	"bagcalc/internal/visuals"

	"github.com/spf13/cobra"
)

var bagInfoCmd = &cobra.Command{
	Use:   "baginfo",
	Short: "Show the contents of both bags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), visuals.RenderBagInfo(cfg.Bags.Bag1, cfg.Bags.Bag2))
		return err
	},
}
