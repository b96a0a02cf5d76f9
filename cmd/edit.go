package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weightboard/internal/clierr"
	"github.com/twiced-technology-gmbh/weightboard/internal/session"
	"github.com/twiced-technology-gmbh/weightboard/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a task",
	Long: `Loads the task into an edit session, applies the given flags and sends
the update. Fields without a flag keep their current value.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("due", "", "new due date (today, tomorrow, this-week)")
	editCmd.Flags().String("weight", "", "new weight")
	editCmd.Flags().SetNormalizeFunc(normalizeFormFlag)
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := task.ParseID(args[0])
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("due") && !cmd.Flags().Changed("weight") {
		return clierr.New(clierr.InvalidInput, "nothing to change; pass --title, --due or --weight")
	}

	c, err := connect(cmd)
	if err != nil {
		return err
	}
	defer c.cancel()

	snap, err := c.snapshot()
	if err != nil {
		return err
	}
	t, ok := snap.Find(id)
	if !ok {
		return task.NotFound(id)
	}

	sess, form := session.Begin(t)
	applyFormFlags(cmd, &form)
	if err := checkTitle(form); err != nil {
		return err
	}

	c.loop.SubmitTask(c.ctx, sess, form)
	return c.done()
}
