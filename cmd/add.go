package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/weightboard/internal/clierr"
	"github.com/twiced-technology-gmbh/weightboard/internal/date"
	"github.com/twiced-technology-gmbh/weightboard/internal/session"
)

var addCmd = &cobra.Command{
	Use:     "add TITLE",
	Aliases: []string{"create"},
	Short:   "Add a task",
	Long: `Creates a task in the store and prints the refreshed dashboard.
--due takes today, tomorrow, this-week or a date the store understands.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("due", "", "due date (today, tomorrow, this-week)")
	addCmd.Flags().String("weight", "", "task weight (default 1)")
	addCmd.Flags().SetNormalizeFunc(normalizeFormFlag)
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	form := session.DefaultForm()
	form.Title = strings.Join(args, " ")
	if err := checkTitle(form); err != nil {
		return err
	}
	applyFormFlags(cmd, &form)

	c, err := connect(cmd)
	if err != nil {
		return err
	}
	defer c.cancel()

	c.loop.SubmitTask(c.ctx, session.Edit{}, form)
	return c.done()
}

// checkTitle rejects an empty title. Whitespace is sent to the store as typed.
func checkTitle(form session.Form) error {
	if form.Title == "" {
		return clierr.New(clierr.EmptyTitle, "task title must not be empty")
	}
	return nil
}

// applyFormFlags overwrites form fields whose flags were given.
func applyFormFlags(cmd *cobra.Command, form *session.Form) {
	if cmd.Flags().Changed("title") {
		form.Title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("due") {
		form.Due, _ = cmd.Flags().GetString("due")
		warnUnusualDue(form.Due)
	}
	if cmd.Flags().Changed("weight") {
		form.Weight, _ = cmd.Flags().GetString("weight")
	}
}

// normalizeFormFlag accepts the store's field names as flag spellings.
func normalizeFormFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "due-date", "due_date":
		name = "due"
	case "name":
		name = "title"
	}
	return pflag.NormalizedName(name)
}

// warnUnusualDue flags a due value that is neither a due option nor an ISO
// date. It is still sent as typed.
func warnUnusualDue(due string) {
	if slices.Contains(session.DueOptions, due) {
		return
	}
	if _, err := date.Parse(due); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: due date %q is not one of %s or YYYY-MM-DD; sending as typed\n",
			due, strings.Join(session.DueOptions, ", "))
	}
}
