// Package tui implements the interactive weighted-progress dashboard.
package tui

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/weightboard/internal/config"
	"github.com/twiced-technology-gmbh/weightboard/internal/dashboard"
	"github.com/twiced-technology-gmbh/weightboard/internal/render"
	"github.com/twiced-technology-gmbh/weightboard/internal/session"
	"github.com/twiced-technology-gmbh/weightboard/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewDashboard view = iota
	viewConfirmDelete
)

// focus is the widget receiving keys on the dashboard view.
type focus int

const (
	focusList focus = iota
	focusTitle
	focusDue
	focusWeight
	focusCount
)

const requestTimeout = 10 * time.Second

// Connector builds a store for a (re)loaded config.
type Connector func(cfg *config.Config) (dashboard.Store, error)

// Options configures a Dashboard.
type Options struct {
	Config  *config.Config
	Store   dashboard.Store
	Connect Connector // used on ReloadMsg; nil keeps Store
	Logger  *log.Logger
	Now     func() time.Time
}

// Dashboard is the top-level bubbletea model.
type Dashboard struct {
	cfg      *config.Config
	store    dashboard.Store
	connect  Connector
	logger   *log.Logger
	renderer *render.Renderer

	sess   session.Edit
	form   session.Form
	title  textinput.Model
	weight textinput.Model
	focus  focus

	cursor int
	view   view
	width  int
	height int

	deleteID    task.ID
	deleteTitle string
}

// New creates a Dashboard. Nothing is fetched until Init runs.
func New(opts Options) *Dashboard {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200

	weight := textinput.New()
	weight.Placeholder = "1"
	weight.CharLimit = 16

	d := &Dashboard{
		cfg:      opts.Config,
		store:    opts.Store,
		connect:  opts.Connect,
		logger:   logger,
		renderer: render.New(opts.Now),
		title:    title,
		weight:   weight,
	}
	d.setForm(session.DefaultForm())
	return d
}

// --- Messages ---

// SnapshotMsg carries a freshly fetched snapshot. The latest one to arrive
// is painted, whatever operation produced it.
type SnapshotMsg struct {
	Snapshot task.Snapshot
}

// ReloadMsg is sent by the config watcher to reload config and refetch.
type ReloadMsg struct{}

// TickMsg is sent periodically to repaint date classes without refetching.
type TickMsg struct{}

// fetchFailedMsg reports an operation whose refetch failed. It leaves the
// screen as it was.
type fetchFailedMsg struct{}

func (d *Dashboard) tickCmd() tea.Cmd {
	interval := config.NewDefault().RefreshInterval()
	if d.cfg != nil {
		interval = d.cfg.RefreshInterval()
	}
	return tea.Tick(interval, func(time.Time) tea.Msg { return TickMsg{} })
}

// run executes op against a loop that captures the painted snapshot, and
// turns the outcome into a message for Update.
func (d *Dashboard) run(op func(ctx context.Context, l *dashboard.Loop)) tea.Cmd {
	store, logger := d.store, d.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var painted *task.Snapshot
		l := dashboard.New(store, dashboard.PainterFunc(func(s task.Snapshot) {
			painted = &s
		}), logger)
		op(ctx, l)

		if painted == nil {
			return fetchFailedMsg{}
		}
		return SnapshotMsg{Snapshot: *painted}
	}
}

func (d *Dashboard) loadCmd() tea.Cmd {
	return d.run(func(ctx context.Context, l *dashboard.Loop) { l.Load(ctx) })
}

// Init implements tea.Model.
func (d *Dashboard) Init() tea.Cmd {
	return tea.Batch(d.loadCmd(), d.tickCmd())
}

// Update implements tea.Model.
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return d.handleKey(msg)
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		return d, nil
	case SnapshotMsg:
		d.renderer.Paint(msg.Snapshot)
		d.clampCursor()
		return d, nil
	case fetchFailedMsg:
		return d, nil // already logged; the last paint stays up
	case TickMsg:
		d.renderer.Repaint()
		return d, d.tickCmd()
	case ReloadMsg:
		d.reloadConfig()
		return d, d.loadCmd()
	}
	return d, nil
}

// reloadConfig re-reads the config and reconnects. Failures are logged and
// the current config and store are kept.
func (d *Dashboard) reloadConfig() {
	if d.cfg == nil {
		return
	}
	cfg, err := config.Load(d.cfg.Dir())
	if err != nil {
		d.logger.Printf("reloading config: %v", err)
		return
	}
	d.cfg = cfg
	if d.connect == nil {
		return
	}
	store, err := d.connect(cfg)
	if err != nil {
		d.logger.Printf("connecting to %s: %v", cfg.API.BaseURL, err)
		return
	}
	d.store = store
}

func (d *Dashboard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return d, tea.Quit
	}

	if d.view == viewConfirmDelete {
		return d.handleDeleteKey(msg)
	}
	if d.focus == focusList {
		return d.handleListKey(msg)
	}
	return d.handleFormKey(msg)
}

func (d *Dashboard) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := d.renderer.Display().Entries

	switch {
	case key.Matches(msg, keys.Quit):
		return d, tea.Quit
	case key.Matches(msg, keys.Up):
		if d.cursor > 0 {
			d.cursor--
		}
	case key.Matches(msg, keys.Down):
		if d.cursor < len(entries)-1 {
			d.cursor++
		}
	case key.Matches(msg, keys.Toggle):
		if e, ok := d.selected(); ok {
			id := e.ID
			return d, d.run(func(ctx context.Context, l *dashboard.Loop) { l.ToggleComplete(ctx, id) })
		}
	case key.Matches(msg, keys.Edit):
		return d, d.beginEdit()
	case key.Matches(msg, keys.Delete):
		if e, ok := d.selected(); ok {
			d.deleteID = e.ID
			d.deleteTitle = e.Title
			d.view = viewConfirmDelete
		}
	case key.Matches(msg, keys.Auto):
		return d, d.run(func(ctx context.Context, l *dashboard.Loop) { l.RunAutoTarget(ctx) })
	case key.Matches(msg, keys.Refresh):
		return d, d.loadCmd()
	case key.Matches(msg, keys.New), key.Matches(msg, keys.NextField):
		return d, d.setFocus(focusTitle)
	case key.Matches(msg, keys.PrevField):
		return d, d.setFocus(focusWeight)
	}
	return d, nil
}

func (d *Dashboard) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		return d, d.submit()
	case key.Matches(msg, keys.Cancel):
		if d.sess.Active() {
			d.sess = d.sess.Cancel()
			d.setForm(session.DefaultForm())
		}
		return d, d.setFocus(focusList)
	case key.Matches(msg, keys.NextField):
		return d, d.setFocus((d.focus + 1) % focusCount)
	case key.Matches(msg, keys.PrevField):
		return d, d.setFocus((d.focus + focusCount - 1) % focusCount)
	}

	var cmd tea.Cmd
	switch d.focus {
	case focusTitle:
		d.title, cmd = d.title.Update(msg)
	case focusWeight:
		d.weight, cmd = d.weight.Update(msg)
	case focusDue:
		switch {
		case key.Matches(msg, keys.DuePrev):
			d.form = d.form.CycleDue(-1)
		case key.Matches(msg, keys.DueNext):
			d.form = d.form.CycleDue(1)
		}
	}
	return d, cmd
}

func (d *Dashboard) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		d.view = viewDashboard
		id := d.deleteID
		return d, d.run(func(ctx context.Context, l *dashboard.Loop) {
			l.DeleteTask(ctx, id, dashboard.Confirmed)
		})
	case key.Matches(msg, keys.Decline):
		d.view = viewDashboard
	}
	return d, nil
}

// submit plans the create or update synchronously so the session and form
// reset immediately; the request and refetch run as a command.
func (d *Dashboard) submit() tea.Cmd {
	form := d.currentForm()
	sub, next, nextForm, ok := dashboard.PlanSubmit(d.sess, form)
	if !ok {
		return nil
	}
	d.sess = next
	d.setForm(nextForm)
	return d.run(func(ctx context.Context, l *dashboard.Loop) { l.Send(ctx, sub) })
}

// beginEdit loads the selected task into the form.
func (d *Dashboard) beginEdit() tea.Cmd {
	e, ok := d.selected()
	if !ok {
		return nil
	}
	snap, ok := d.renderer.Snapshot()
	if !ok {
		return nil
	}
	t, ok := snap.Find(e.ID)
	if !ok {
		return nil
	}
	sess, form := session.Begin(t)
	d.sess = sess
	d.setForm(form)
	return d.setFocus(focusTitle)
}

func (d *Dashboard) currentForm() session.Form {
	return session.Form{
		Title:  d.title.Value(),
		Due:    d.form.Due,
		Weight: d.weight.Value(),
	}
}

func (d *Dashboard) setForm(f session.Form) {
	d.form = f
	d.title.SetValue(f.Title)
	d.weight.SetValue(f.Weight)
}

func (d *Dashboard) setFocus(f focus) tea.Cmd {
	d.focus = f
	d.title.Blur()
	d.weight.Blur()
	switch f {
	case focusTitle:
		return d.title.Focus()
	case focusWeight:
		return d.weight.Focus()
	}
	return nil
}

func (d *Dashboard) selected() (render.Entry, bool) {
	entries := d.renderer.Display().Entries
	if d.cursor < 0 || d.cursor >= len(entries) {
		return render.Entry{}, false
	}
	return entries[d.cursor], true
}

func (d *Dashboard) clampCursor() {
	n := len(d.renderer.Display().Entries)
	if d.cursor >= n {
		d.cursor = n - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

// Display returns the current display state.
func (d *Dashboard) Display() render.Display {
	return d.renderer.Display()
}

// Session returns the edit session and the form as currently typed.
func (d *Dashboard) Session() (session.Edit, session.Form) {
	return d.sess, d.currentForm()
}
