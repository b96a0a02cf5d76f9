package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/weightboard/internal/output"
	"github.com/twiced-technology-gmbh/weightboard/internal/render"
	"github.com/twiced-technology-gmbh/weightboard/internal/session"
)

// Layout constants.
const (
	minListWidth = 40
	chartWidth   = 36
	pieRadius    = 6
	barWidth     = 28
)

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activePanelStyle = panelStyle.BorderForeground(lipgloss.Color("226"))

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	weightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	arcStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dialogPadY = 1
	dialogPadX = 2

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(dialogPadY, dialogPadX)
)

// View implements tea.Model.
func (d *Dashboard) View() string {
	if d.width == 0 {
		return "Loading..."
	}

	if d.view == viewConfirmDelete {
		return d.viewDeleteConfirm()
	}
	return d.viewDashboard()
}

func (d *Dashboard) viewDashboard() string {
	disp := d.renderer.Display()

	listWidth := max(minListWidth, d.width-chartWidth-4) //nolint:mnd // panel borders

	left := lipgloss.JoinVertical(lipgloss.Left,
		d.renderForm(listWidth),
		d.renderList(disp, listWidth),
	)
	right := d.renderChart(disp)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	header := titleStyle.Render("Weighted Progress")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, "", d.renderStatusBar())
}

func (d *Dashboard) renderForm(width int) string {
	ctrl := render.SubmitControl(d.sess)

	due := make([]string, 0, len(session.DueOptions))
	sel := d.form.DueOption()
	for i, opt := range session.DueOptions {
		if i == sel {
			due = append(due, cursorStyle.Render("["+opt+"]"))
		} else {
			due = append(due, dimStyle.Render(" "+opt+" "))
		}
	}

	lines := []string{
		d.fieldLabel("Title", focusTitle) + d.title.View(),
		d.fieldLabel("Due", focusDue) + strings.Join(due, " "),
		d.fieldLabel("Weight", focusWeight) + d.weight.View(),
		"",
		cursorStyle.Render("[ " + ctrl.Label + " ]"),
	}

	style := panelStyle
	if d.focus != focusList {
		style = activePanelStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (d *Dashboard) fieldLabel(name string, f focus) string {
	label := fmt.Sprintf("%-8s", name)
	if d.focus == f {
		return cursorStyle.Render(label)
	}
	return labelStyle.Render(label)
}

func (d *Dashboard) renderList(disp render.Display, width int) string {
	style := panelStyle
	if d.focus == focusList {
		style = activePanelStyle
	}

	if !disp.Painted {
		return style.Width(width).Render(dimStyle.Render("Fetching tasks..."))
	}
	if len(disp.Entries) == 0 {
		return style.Width(width).Render(dimStyle.Render("No tasks yet."))
	}

	lines := make([]string, 0, len(disp.Entries))
	for i, e := range disp.Entries {
		lines = append(lines, d.renderEntry(e, i == d.cursor && d.focus == focusList, width))
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (d *Dashboard) renderEntry(e render.Entry, active bool, width int) string {
	prefix := "  "
	if active {
		prefix = cursorStyle.Render("> ")
	}

	pill := d.pill(e)
	weight := weightStyle.Render(e.WeightLabel())
	toggle := dimStyle.Render("[" + e.ToggleLabel + "]")

	fixed := lipgloss.Width(prefix) + lipgloss.Width(pill) + lipgloss.Width(weight) + lipgloss.Width(toggle) + 3 //nolint:mnd // separators
	title := truncate(e.Title, max(4, width-fixed-2)) //nolint:mnd // panel padding
	if e.Completed {
		title = doneStyle.Render(title)
	}

	return prefix + title + " " + pill + " " + weight + " " + toggle
}

func (d *Dashboard) pill(e render.Entry) string {
	color := ""
	if d.cfg != nil {
		color = d.cfg.DateColor(string(e.Class))
	}
	if color == "" {
		return e.Due
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(color)).
		Padding(0, 1).
		Render(e.Due)
}

func (d *Dashboard) renderChart(disp render.Display) string {
	var lines []string

	if disp.Chart != nil {
		for _, l := range output.Pie(pieRadius, disp.Chart.Filled()) {
			lines = append(lines, arcStyle.Render(l))
		}
	} else {
		lines = append(lines, dimStyle.Render("No weight yet."))
	}

	lines = append(lines, "",
		arcStyle.Render(output.ProgressBar(barWidth, disp.Bar.Width))+" "+disp.Bar.Label)

	if disp.Interpretation != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(chartWidth-4).Render(disp.Interpretation)) //nolint:mnd // panel chrome
	}

	return panelStyle.Width(chartWidth).Render(strings.Join(lines, "\n"))
}

func (d *Dashboard) renderStatusBar() string {
	help := keys.listHelp()
	if d.focus != focusList {
		help = keys.formHelp()
	}
	return statusBarStyle.Render(truncate(" "+helpLine(help), d.width))
}

func (d *Dashboard) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("  #%s: %s", d.deleteID, d.deleteTitle) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	// Slice by runes to avoid breaking multi-byte UTF-8 characters.
	runes := []rune(s)
	target := maxLen - 3 //nolint:mnd // room for "..."
	if target > len(runes) {
		target = len(runes)
	}
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
