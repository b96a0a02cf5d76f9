package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/weightboard/internal/clierr"
	"github.com/twiced-technology-gmbh/weightboard/internal/dashboard"
	"github.com/twiced-technology-gmbh/weightboard/internal/task"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long:    `Deletes a task from the store. Prompts for confirmation in interactive mode.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := task.ParseID(args[0])
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && !term.IsTerminal(int(os.Stdin.Fd())) {
		return clierr.New(clierr.ConfirmationReq,
			"cannot prompt for confirmation (not a terminal); use --yes")
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

	confirm := dashboard.ConfirmFunc(dashboard.Confirmed)
	if !yes {
		confirm = promptDelete(t)
	}

	if !c.loop.DeleteTask(c.ctx, id, confirm) {
		fmt.Fprintln(os.Stderr, "Canceled.")
		return nil
	}
	return c.done()
}

// promptDelete asks on stderr and reads the answer from stdin.
func promptDelete(t task.Task) dashboard.ConfirmFunc {
	return func(task.ID) bool {
		fmt.Fprintf(os.Stderr, "Delete task #%s %q? [y/N] ", t.ID, t.Title)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		return answer == "y" || answer == "yes"
	}
}
