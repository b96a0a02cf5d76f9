// Package session tracks the single task being edited in the input form.
//
// An Edit is a value: operations return the next state instead of mutating
// shared state, so callers thread it through submit and render explicitly.
package session

import (
	"strconv"

	"github.com/twiced-technology-gmbh/weightboard/internal/task"
)

// DueOptions are the choices offered by the due-date selector.
var DueOptions = []string{"today", "tomorrow", "this-week"}

// Edit is either Idle (the zero value) or Editing one task.
type Edit struct {
	active bool
	taskID task.ID
}

// Form holds the input form values. Due and Weight are forwarded to the
// store as typed.
type Form struct {
	Title  string
	Due    string
	Weight string
}

// DefaultForm is the empty create form.
func DefaultForm() Form {
	return Form{Due: DueOptions[0], Weight: "1"}
}

// Begin moves to Editing(t.ID) and returns the form pre-filled from t.
// The due field receives the task's raw token, which may not be one of
// DueOptions (an ISO date, for instance).
func Begin(t task.Task) (Edit, Form) {
	return Edit{active: true, taskID: t.ID}, Form{
		Title:  t.Title,
		Due:    t.DueDate,
		Weight: strconv.FormatFloat(t.Weight, 'f', -1, 64),
	}
}

// Active reports whether a task is being edited.
func (e Edit) Active() bool { return e.active }

// TaskID returns the edited task's ID; ok is false when Idle.
func (e Edit) TaskID() (id task.ID, ok bool) {
	return e.taskID, e.active
}

// Submit returns the state after a non-empty form submission: Idle.
func (e Edit) Submit() Edit { return Edit{} }

// Cancel abandons the edit without sending anything.
func (e Edit) Cancel() Edit { return Edit{} }

// DueOption returns the selector index matching f.Due, or -1 when the
// value is not one of DueOptions.
func (f Form) DueOption() int {
	for i, o := range DueOptions {
		if o == f.Due {
			return i
		}
	}
	return -1
}

// CycleDue moves the selector by delta, wrapping around. An unmatched raw
// token is replaced by the first option.
func (f Form) CycleDue(delta int) Form {
	i := f.DueOption()
	if i < 0 {
		f.Due = DueOptions[0]
		return f
	}
	n := len(DueOptions)
	f.Due = DueOptions[((i+delta)%n+n)%n]
	return f
}

// ClearTitle empties the title field, keeping due and weight.
func (f Form) ClearTitle() Form {
	f.Title = ""
	return f
}
