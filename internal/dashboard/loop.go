// Package dashboard implements the state sync loop: every action talks to
// the store and then refetches the whole snapshot, which is the only thing
// ever painted.
package dashboard

import (
	"context"
	"io"
	"log"

	"github.com/twiced-technology-gmbh/weightboard/internal/api"
	"github.com/twiced-technology-gmbh/weightboard/internal/session"
	"github.com/twiced-technology-gmbh/weightboard/internal/task"
)

// Store is the remote task store as the loop sees it. *api.Client
// implements it.
type Store interface {
	Tasks(ctx context.Context) (task.Snapshot, error)
	Add(ctx context.Context, r api.AddRequest) error
	Edit(ctx context.Context, r api.EditRequest) error
	Complete(ctx context.Context, id task.ID) error
	Delete(ctx context.Context, id task.ID) error
	AutoTarget(ctx context.Context) error
}

// Painter receives every successfully fetched snapshot.
type Painter interface {
	Paint(s task.Snapshot)
}

// PainterFunc adapts a function to Painter.
type PainterFunc func(task.Snapshot)

// Paint implements Painter.
func (f PainterFunc) Paint(s task.Snapshot) { f(s) }

// ConfirmFunc asks the user whether to delete id. It must block until the
// user answers.
type ConfirmFunc func(id task.ID) bool

// Confirmed is a ConfirmFunc for callers that already asked.
func Confirmed(task.ID) bool { return true }

// Loop wires a store to a painter. Operations may run concurrently; nothing
// orders their refetches, so the painter sees whichever snapshot arrives
// last.
type Loop struct {
	store   Store
	painter Painter
	logger  *log.Logger
}

// New creates a Loop. A nil logger discards log output.
func New(store Store, painter Painter, logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Loop{store: store, painter: painter, logger: logger}
}

// Load fetches the snapshot and paints it. A failed fetch is logged and
// leaves the previous paint as it was. It reports whether a paint happened.
func (l *Loop) Load(ctx context.Context) bool {
	s, err := l.store.Tasks(ctx)
	if err != nil {
		l.logger.Printf("failed to fetch state: %v", err)
		return false
	}
	l.painter.Paint(s)
	return true
}

// Submission is a planned create or edit request.
type Submission struct {
	Edit   bool
	TaskID task.ID // set when Edit
	Form   session.Form
}

// PlanSubmit decides what submitting form does under sess. ok is false for
// an empty title: nothing is sent and sess and form come back unchanged.
// Otherwise the returned session is Idle and the title is cleared.
func PlanSubmit(sess session.Edit, form session.Form) (sub Submission, next session.Edit, nextForm session.Form, ok bool) {
	if form.Title == "" {
		return Submission{}, sess, form, false
	}
	sub = Submission{Form: form}
	if id, editing := sess.TaskID(); editing {
		sub.Edit = true
		sub.TaskID = id
		sess = sess.Submit()
	}
	return sub, sess, form.ClearTitle(), true
}

// Send issues a planned submission and refetches. The request's own error
// is not observed.
func (l *Loop) Send(ctx context.Context, sub Submission) {
	if sub.Edit {
		_ = l.store.Edit(ctx, api.EditRequest{
			ID:      sub.TaskID,
			Title:   sub.Form.Title,
			DueDate: sub.Form.Due,
			Weight:  sub.Form.Weight,
		})
	} else {
		_ = l.store.Add(ctx, api.AddRequest{
			Title:   sub.Form.Title,
			DueDate: sub.Form.Due,
			Weight:  sub.Form.Weight,
		})
	}
	l.Load(ctx)
}

// SubmitTask creates a task, or edits the session's task when one is being
// edited, then refetches. An empty title is a no-op.
func (l *Loop) SubmitTask(ctx context.Context, sess session.Edit, form session.Form) (session.Edit, session.Form) {
	sub, next, nextForm, ok := PlanSubmit(sess, form)
	if !ok {
		return sess, form
	}
	l.Send(ctx, sub)
	return next, nextForm
}

// ToggleComplete flips a task's completion flag in the store and refetches.
func (l *Loop) ToggleComplete(ctx context.Context, id task.ID) {
	_ = l.store.Complete(ctx, id)
	l.Load(ctx)
}

// DeleteTask asks confirm first; when declined nothing is sent and nothing
// is refetched. It reports whether the delete was issued.
func (l *Loop) DeleteTask(ctx context.Context, id task.ID, confirm ConfirmFunc) bool {
	if confirm == nil || !confirm(id) {
		return false
	}
	_ = l.store.Delete(ctx, id)
	l.Load(ctx)
	return true
}

// RunAutoTarget triggers the store's auto-target operation and refetches.
func (l *Loop) RunAutoTarget(ctx context.Context) {
	_ = l.store.AutoTarget(ctx)
	l.Load(ctx)
}
