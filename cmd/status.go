package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weightboard/internal/clierr"
	"github.com/twiced-technology-gmbh/weightboard/internal/output"
	"github.com/twiced-technology-gmbh/weightboard/internal/render"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"board", "ls"},
	Short:   "Show tasks and weighted progress",
	Long: `Fetches the current snapshot from the task store and prints the task list, progress and interpretation.
Filters narrow the task list only; progress always covers every task.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().Bool("open", false, "show only open tasks")
	statusCmd.Flags().Bool("done", false, "show only completed tasks")
	statusCmd.Flags().StringSlice("due", nil, "show only tasks due in these classes (today, tomorrow, week)")
	statusCmd.Flags().String("search", "", "case-insensitive title search")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	filter, err := statusFilter(cmd)
	if err != nil {
		return err
	}

	c, err := connect(cmd)
	if err != nil {
		return err
	}
	defer c.cancel()

	c.printer.Filter = filter
	c.loop.Load(c.ctx)
	return c.done()
}

func statusFilter(cmd *cobra.Command) (output.FilterOptions, error) {
	var opts output.FilterOptions

	open, _ := cmd.Flags().GetBool("open")
	done, _ := cmd.Flags().GetBool("done")
	if open && done {
		return opts, clierr.New(clierr.InvalidInput, "--open and --done are mutually exclusive")
	}
	if open || done {
		opts.Completed = &done
	}

	classes, _ := cmd.Flags().GetStringSlice("due")
	for _, c := range classes {
		switch dc := render.DateClass(c); dc {
		case render.ClassToday, render.ClassTomorrow, render.ClassWeek:
			opts.Classes = append(opts.Classes, dc)
		default:
			return opts, clierr.Newf(clierr.InvalidInput,
				"invalid --due class %q; allowed: today, tomorrow, week", c)
		}
	}

	opts.Search, _ = cmd.Flags().GetString("search")
	return opts, nil
}
