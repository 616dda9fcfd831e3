// Package viewstate holds the in-memory task collection for one view
// session and keeps it consistent with confirmed server results.
//
// This is not an optimistic-UI component: every displayed mutation waits for
// server confirmation before the collection changes, so a failed operation
// leaves the collection exactly as it was.
package viewstate

import (
	"errors"

	"taskpad/internal/service"
	"taskpad/internal/transport"
)

// Phase is the view session state.
type Phase int

const (
	// Loading is the initial phase before the first list completes.
	Loading Phase = iota

	// Unauthenticated means no session could be resolved; terminal for
	// this view (the caller navigates to login).
	Unauthenticated

	// Ready means the collection reflects confirmed server state.
	Ready

	// Failed means the last operation failed; the collection is unchanged
	// and the message is surfaced for a manual retry.
	Failed
)

// String returns the phase name for logs and tests.
func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Unauthenticated:
		return "unauthenticated"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// View is the in-memory task collection for the active session, ordered
// newest-first. Methods are not safe for concurrent use; the view belongs to
// a single UI session.
type View struct {
	phase  Phase
	tasks  []service.Task
	errMsg string
}

// New creates a view in the Loading phase.
func New() *View {
	return &View{phase: Loading}
}

// Phase returns the current phase.
func (v *View) Phase() Phase { return v.phase }

// Err returns the surfaced error message, empty unless the phase is Failed.
func (v *View) Err() string { return v.errMsg }

// Len returns the number of tasks in the collection.
func (v *View) Len() int { return len(v.tasks) }

// Tasks returns a copy of the canonical ordered collection.
func (v *View) Tasks() []service.Task {
	out := make([]service.Task, len(v.tasks))
	copy(out, v.tasks)
	return out
}

// Pending returns the incomplete tasks, preserving collection order.
// Recomputed on every read.
func (v *View) Pending() []service.Task {
	return v.filter(false)
}

// Completed returns the completed tasks, preserving collection order.
// Recomputed on every read.
func (v *View) Completed() []service.Task {
	return v.filter(true)
}

func (v *View) filter(completed bool) []service.Task {
	var out []service.Task
	for _, t := range v.tasks {
		if t.Completed == completed {
			out = append(out, t)
		}
	}
	return out
}

// ApplyList replaces the collection with a confirmed list result and moves
// the view to Ready.
func (v *View) ApplyList(tasks []service.Task) {
	v.tasks = make([]service.Task, len(tasks))
	copy(v.tasks, tasks)
	v.ready()
}

// MarkUnauthenticated records that no session could be resolved.
func (v *View) MarkUnauthenticated() {
	v.phase = Unauthenticated
	v.errMsg = ""
}

// ApplyCreate prepends a confirmed new task (newest-first ordering).
func (v *View) ApplyCreate(t service.Task) {
	v.tasks = append([]service.Task{t}, v.tasks...)
	v.ready()
}

// ApplyUpdate replaces the task with a matching id in place. Position is
// unchanged; an absent id leaves the collection as is.
func (v *View) ApplyUpdate(t service.Task) {
	for i := range v.tasks {
		if v.tasks[i].ID == t.ID {
			v.tasks[i] = t
			break
		}
	}
	v.ready()
}

// ApplyDelete removes the task with a matching id. An absent id is a no-op,
// not an error.
func (v *View) ApplyDelete(taskID string) {
	for i := range v.tasks {
		if v.tasks[i].ID == taskID {
			v.tasks = append(v.tasks[:i], v.tasks[i+1:]...)
			break
		}
	}
	v.ready()
}

// Fail records a failed operation. The collection is left untouched; the
// next successful operation returns the view to Ready. A service error
// response surfaces its bare detail, without the transport's status wrapping.
func (v *View) Fail(err error) {
	v.phase = Failed
	var apiErr *transport.APIError
	switch {
	case err == nil:
		v.errMsg = "operation failed"
	case errors.As(err, &apiErr):
		v.errMsg = apiErr.Message
	default:
		v.errMsg = err.Error()
	}
}

func (v *View) ready() {
	v.phase = Ready
	v.errMsg = ""
}
