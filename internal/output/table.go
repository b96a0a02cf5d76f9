package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/weightboard/internal/render"
)

const (
	barWidth    = 30
	pieRadius   = 4
	maxTitle    = 48
	interpWidth = 72
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Strikethrough(true)
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	pillBase    = lipgloss.NewStyle().Padding(0, 1)

	noColor bool
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	barStyle = lipgloss.NewStyle()
	pillBase = lipgloss.NewStyle()
	noColor = true
	lipgloss.SetColorProfile(termenv.Ascii)
}

// PillColor maps a date class to an ANSI color code. An empty result
// leaves the pill unstyled.
type PillColor func(render.DateClass) string

// DashboardTable renders the display as a task table followed by the
// progress bar, the pie and the interpretation.
func DashboardTable(w io.Writer, d render.Display, pill PillColor) {
	if len(d.Entries) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
	} else {
		taskTable(w, d.Entries, pill)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Progress %s %s\n", barStyle.Render(ProgressBar(barWidth, d.Bar.Width)), d.Bar.Label)

	if d.Chart != nil {
		fmt.Fprintln(w)
		for _, line := range Pie(pieRadius, d.Chart.Filled()) {
			fmt.Fprintln(w, "  "+barStyle.Render(line))
		}
	}

	if d.Interpretation != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, Interpretation(d.Interpretation, interpWidth))
	}
}

func taskTable(w io.Writer, entries []render.Entry, pill PillColor) {
	const pad = 2
	idW, titleW, dueW := 4, 5, 5
	for _, e := range entries {
		idW = max(idW, len(e.ID.String())+pad)
		titleW = max(titleW, min(len(e.Title)+pad, maxTitle+pad))
		dueW = max(dueW, len(e.Due)+pad+pad)
	}

	header := fmt.Sprintf("%-*s %-6s %-*s %-*s %s",
		idW, "ID", "DONE", titleW, "TITLE", dueW, "DUE", "WEIGHT")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, e := range entries {
		done := dimStyle.Render("[ ]")
		title := truncate(e.Title, maxTitle)
		if e.Completed {
			done = "[x]"
			title = doneStyle.Render(title)
		}
		row := fmt.Sprintf("%-*s %s %s %s %s",
			idW, e.ID.String(),
			padRight(done, 6), //nolint:mnd // column width
			padRight(title, titleW),
			padRight(Pill(e, pill), dueW),
			e.WeightLabel())
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// Pill renders an entry's due date colored by its class.
func Pill(e render.Entry, pill PillColor) string {
	if pill == nil || noColor {
		return e.Due
	}
	c := pill(e.Class)
	if c == "" {
		return e.Due
	}
	return pillBase.Foreground(lipgloss.Color("0")).Background(lipgloss.Color(c)).Render(e.Due)
}

// Interpretation renders the store's interpretation text as markdown,
// falling back to the plain text when rendering fails.
func Interpretation(text string, width int) string {
	style := "dark"
	if noColor {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithColorProfile(lipgloss.ColorProfile()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text + "\n"
	}
	out, err := r.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	const ellipsis = "..."
	return string(r[:maxLen-len(ellipsis)]) + ellipsis
}
