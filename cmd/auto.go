package cmd

import (
	"github.com/spf13/cobra"
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Ask the store to complete tasks up to 50% of the weight",
	Long: `Triggers the store's auto-target operation. Which tasks it completes is
decided by the store; the refreshed dashboard is printed afterwards.`,
	Args: cobra.NoArgs,
	RunE: runAuto,
}

func init() {
	rootCmd.AddCommand(autoCmd)
}

func runAuto(cmd *cobra.Command, _ []string) error {
	c, err := connect(cmd)
	if err != nil {
		return err
	}
	defer c.cancel()

	c.loop.RunAutoTarget(c.ctx)
	return c.done()
}
