package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weightboard/internal/task"
)

var doneCmd = &cobra.Command{
	Use:     "done ID",
	Aliases: []string{"toggle", "undo"},
	Short:   "Toggle a task between done and open",
	Args:    cobra.ExactArgs(1),
	RunE:    runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	id, err := task.ParseID(args[0])
	if err != nil {
		return err
	}

	c, err := connect(cmd)
	if err != nil {
		return err
	}
	defer c.cancel()

	c.loop.ToggleComplete(c.ctx, id)
	return c.done()
}
