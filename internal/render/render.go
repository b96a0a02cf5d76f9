// Package render turns dashboard snapshots into display state: the task
// list, the progress bar and the pie chart arc. Drawing that state on a
// terminal or stdout is left to the tui and output packages.
package render

import (
	"strconv"
	"time"

	"github.com/twiced-technology-gmbh/weightboard/internal/date"
	"github.com/twiced-technology-gmbh/weightboard/internal/progress"
	"github.com/twiced-technology-gmbh/weightboard/internal/session"
	"github.com/twiced-technology-gmbh/weightboard/internal/task"
)

// Arc attributes. The arc is an SVG-style circle whose dash offset
// reveals a slice proportional to completion.
const (
	arcFill        = "transparent"
	arcStroke      = "#4ade80"
	arcStrokeWidth = 2 * progress.Radius
)

// Entry is one row of the task list with its affordances.
type Entry struct {
	ID          task.ID
	Title       string
	Due         string
	Class       DateClass
	Weight      float64
	Completed   bool
	ToggleLabel string // "Done" or "Undo"
}

// WeightLabel renders the weight pill text.
func (e Entry) WeightLabel() string {
	return "Weight: " + strconv.FormatFloat(e.Weight, 'f', -1, 64)
}

// Bar is the progress bar state.
type Bar struct {
	Width float64 // percent of the track, fractional
	Label string  // rounded percentage
}

// Arc is the single chart element. It is created on the first paint with a
// positive total weight; later paints only move DashOffset.
type Arc struct {
	R           int
	CX, CY      int
	Fill        string
	Stroke      string
	StrokeWidth int
	DashArray   string
	DashOffset  float64
}

// Filled returns the completed fraction the arc currently shows.
func (a *Arc) Filled() float64 {
	if a == nil {
		return 0
	}
	c := progress.Circumference()
	return 1 - a.DashOffset/c
}

// Display is everything a painter needs to draw the dashboard.
type Display struct {
	Entries        []Entry
	Bar            Bar
	Interpretation string
	Chart          *Arc
	Painted        bool // at least one snapshot has been painted
}

// Control is the submit button state.
type Control struct {
	Label  string
	Update bool
}

// SubmitControl returns the submit control for the given session.
func SubmitControl(e session.Edit) Control {
	if e.Active() {
		return Control{Label: "Update Task", Update: true}
	}
	return Control{Label: "Add Task"}
}

// Renderer keeps the current display state. It is not safe for concurrent
// use; paint from a single goroutine.
type Renderer struct {
	display Display
	last    *task.Snapshot
	now     func() time.Time
}

// New creates a Renderer. A nil clock defaults to time.Now.
func New(now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{now: now}
}

// Paint rebuilds the display from s.
func (r *Renderer) Paint(s task.Snapshot) {
	r.last = &s
	today := date.Today(r.now).String()

	entries := make([]Entry, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		label := "Done"
		if t.Completed {
			label = "Undo"
		}
		entries = append(entries, Entry{
			ID:          t.ID,
			Title:       t.Title,
			Due:         t.DueDate,
			Class:       Classify(t.DueDate, today),
			Weight:      t.Weight,
			Completed:   t.Completed,
			ToggleLabel: label,
		})
	}
	r.display.Entries = entries

	r.display.Bar = Bar{Width: s.Progress.Progress, Label: progress.Label(s.Progress)}
	r.display.Interpretation = s.Interpretation
	r.updateChart(s.Progress)
	r.display.Painted = true
}

// Repaint paints the last snapshot again, refreshing date classes.
func (r *Renderer) Repaint() {
	if r.last != nil {
		r.Paint(*r.last)
	}
}

func (r *Renderer) updateChart(p task.Progress) {
	g, ok := progress.Pie(p)
	if !ok {
		return
	}
	if r.display.Chart == nil {
		c := strconv.FormatFloat(g.Circumference, 'f', -1, 64)
		r.display.Chart = &Arc{
			R:           progress.Radius,
			CX:          progress.Radius,
			CY:          progress.Radius,
			Fill:        arcFill,
			Stroke:      arcStroke,
			StrokeWidth: arcStrokeWidth,
			DashArray:   c + " " + c,
		}
	}
	r.display.Chart.DashOffset = g.Offset
}

// Display returns a copy of the current display state.
func (r *Renderer) Display() Display {
	d := r.display
	d.Entries = append([]Entry(nil), r.display.Entries...)
	if r.display.Chart != nil {
		arc := *r.display.Chart
		d.Chart = &arc
	}
	return d
}

// Snapshot returns the last painted snapshot.
func (r *Renderer) Snapshot() (task.Snapshot, bool) {
	if r.last == nil {
		return task.Snapshot{}, false
	}
	return *r.last, true
}
