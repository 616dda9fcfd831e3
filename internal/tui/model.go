// Package tui implements the interactive dashboard: a terminal view over the
// task collection with confirm-then-mutate semantics. Every mutation goes to
// the server first; the displayed collection only changes once the server
// confirms, and a failed operation surfaces a banner with the collection
// untouched.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/service"
	"taskpad/internal/session"
	"taskpad/internal/viewstate"
)

// mode selects what the dashboard is showing.
type mode int

const (
	modeList mode = iota
	modeForm
)

// Messages emitted by store client commands.
type (
	tasksLoadedMsg struct{ tasks []service.Task }
	taskCreatedMsg struct{ task service.Task }
	taskUpdatedMsg struct{ task service.Task }
	taskDeletedMsg struct{ id string }
	opFailedMsg    struct{ err error }
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	ctx  context.Context
	sess session.Session
	svc  service.Service

	view   *viewstate.View
	cursor int
	busy   bool
	mode   mode

	// form state
	titleInput textinput.Model
	descInput  textinput.Model
	descFocus  bool
	editingID  string // empty when adding
	formErr    string

	spin     spinner.Model
	width    int
	quitting bool
}

// NewModel creates the dashboard model for one session.
func NewModel(ctx context.Context, sess session.Session, svc service.Service) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "title"
	ti.CharLimit = service.MaxTitleLen

	di := textinput.New()
	di.Placeholder = "description (optional)"
	di.CharLimit = service.MaxDescriptionLen

	return Model{
		ctx:        ctx,
		sess:       sess,
		svc:        svc,
		view:       viewstate.New(),
		titleInput: ti,
		descInput:  di,
		spin:       sp,
	}
}

// Run opens the dashboard and blocks until the user quits.
func Run(ctx context.Context, sess session.Session, svc service.Service) error {
	p := tea.NewProgram(NewModel(ctx, sess, svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadTasks())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tasksLoadedMsg:
		m.busy = false
		m.view.ApplyList(msg.tasks)
		m.clampCursor()
		return m, nil

	case taskCreatedMsg:
		m.busy = false
		m.view.ApplyCreate(msg.task)
		m.cursor = 0
		return m, nil

	case taskUpdatedMsg:
		m.busy = false
		m.view.ApplyUpdate(msg.task)
		return m, nil

	case taskDeletedMsg:
		m.busy = false
		m.view.ApplyDelete(msg.id)
		m.clampCursor()
		return m, nil

	case opFailedMsg:
		m.busy = false
		m.view.Fail(msg.err)
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

// updateList handles keys in list mode.
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < m.view.Len()-1 {
			m.cursor++
		}
		return m, nil

	case "r":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.loadTasks()

	case "a":
		if m.busy {
			return m, nil
		}
		return m.openForm(service.Task{}, false), textinput.Blink

	case "e":
		task, ok := m.selected()
		if !ok || m.busy {
			return m, nil
		}
		return m.openForm(task, true), textinput.Blink

	case " ", "enter":
		task, ok := m.selected()
		if !ok || m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.toggleTask(task.ID)

	case "d":
		task, ok := m.selected()
		if !ok || m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.deleteTask(task.ID)
	}

	return m, nil
}

// updateForm handles keys in the add/edit form.
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.mode = modeList
		m.formErr = ""
		return m, nil

	case "tab", "shift+tab":
		m.descFocus = !m.descFocus
		if m.descFocus {
			m.titleInput.Blur()
			return m, m.descInput.Focus()
		}
		m.descInput.Blur()
		return m, m.titleInput.Focus()

	case "enter":
		draft := service.TaskDraft{
			Title:       m.titleInput.Value(),
			Description: m.descInput.Value(),
		}
		// Same pre-flight check the store client applies, surfaced
		// inline so a bad draft never leaves the form.
		if err := service.ValidateDraft(draft); err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		m.mode = modeList
		m.formErr = ""
		m.busy = true
		if m.editingID != "" {
			return m, m.updateTask(m.editingID, draft)
		}
		return m, m.createTask(draft)
	}

	var cmd tea.Cmd
	if m.descFocus {
		m.descInput, cmd = m.descInput.Update(msg)
	} else {
		m.titleInput, cmd = m.titleInput.Update(msg)
	}
	return m, cmd
}

// openForm switches to form mode, prefilled from task when editing.
func (m Model) openForm(task service.Task, editing bool) Model {
	m.mode = modeForm
	m.formErr = ""
	m.descFocus = false
	m.editingID = ""
	if editing {
		m.editingID = task.ID
	}
	m.titleInput.SetValue(task.Title)
	m.descInput.SetValue(task.Description)
	m.titleInput.CursorEnd()
	m.descInput.Blur()
	m.titleInput.Focus()
	return m
}

// visible returns tasks in display order: pending first, then completed.
func (m Model) visible() []service.Task {
	return append(m.view.Pending(), m.view.Completed()...)
}

// selected returns the task under the cursor.
func (m Model) selected() (service.Task, bool) {
	tasks := m.visible()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return service.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := m.view.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Store client calls as bubbletea commands. Each runs a full
// request/response cycle; there is no cancellation once issued.

func (m Model) loadTasks() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.svc.List(m.ctx, m.sess.UserID)
		if err != nil {
			return opFailedMsg{err}
		}
		return tasksLoadedMsg{tasks}
	}
}

func (m Model) createTask(draft service.TaskDraft) tea.Cmd {
	return func() tea.Msg {
		task, err := m.svc.Create(m.ctx, m.sess.UserID, draft)
		if err != nil {
			return opFailedMsg{err}
		}
		return taskCreatedMsg{task}
	}
}

func (m Model) updateTask(taskID string, draft service.TaskDraft) tea.Cmd {
	return func() tea.Msg {
		task, err := m.svc.Update(m.ctx, m.sess.UserID, taskID, draft)
		if err != nil {
			return opFailedMsg{err}
		}
		return taskUpdatedMsg{task}
	}
}

func (m Model) toggleTask(taskID string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.svc.ToggleComplete(m.ctx, m.sess.UserID, taskID)
		if err != nil {
			return opFailedMsg{err}
		}
		return taskUpdatedMsg{task}
	}
}

func (m Model) deleteTask(taskID string) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.Delete(m.ctx, m.sess.UserID, taskID); err != nil {
			return opFailedMsg{err}
		}
		return taskDeletedMsg{taskID}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	header := titleStyle.Render("taskpad")
	who := m.sess.Email
	if who == "" {
		who = m.sess.UserID
	}
	b.WriteString(header + sessionStyle.Render(" "+who))
	b.WriteString("\n\n")

	if m.view.Phase() == viewstate.Loading {
		b.WriteString(m.spin.View() + " loading tasks...\n")
		return b.String()
	}

	if m.mode == modeForm {
		b.WriteString(m.viewForm())
		return b.String()
	}

	if msg := m.view.Err(); msg != "" {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n\n")
	}

	b.WriteString(m.viewTasks())
	b.WriteString("\n")

	status := "a add · e edit · space toggle · d delete · r refresh · q quit"
	if m.busy {
		status = m.spin.View() + " working..."
	}
	b.WriteString(helpStyle.Render(status))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewTasks() string {
	pending := m.view.Pending()
	completed := m.view.Completed()

	if len(pending) == 0 && len(completed) == 0 {
		return helpStyle.Render("no tasks yet, press 'a' to add one") + "\n"
	}

	var b strings.Builder
	row := 0

	writeTask := func(t service.Task, done bool) {
		cursor := "  "
		if row == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ] "
		style := pendingStyle
		if done {
			box = "[x] "
			style = completedStyle
		}
		b.WriteString(cursor + style.Render(box+t.Title) + "\n")
		row++
	}

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Pending (%d)", len(pending))) + "\n")
	for _, t := range pending {
		writeTask(t, false)
	}
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Completed (%d)", len(completed))) + "\n")
	for _, t := range completed {
		writeTask(t, true)
	}

	return b.String()
}

func (m Model) viewForm() string {
	var b strings.Builder

	label := "New task"
	if m.editingID != "" {
		label = "Edit task"
	}
	b.WriteString(sectionStyle.Render(label) + "\n\n")
	b.WriteString(formLabelStyle.Render("Title") + "\n")
	b.WriteString(m.titleInput.View() + "\n\n")
	b.WriteString(formLabelStyle.Render("Description") + "\n")
	b.WriteString(m.descInput.View() + "\n\n")

	if m.formErr != "" {
		b.WriteString(errorStyle.Render(m.formErr) + "\n\n")
	}

	b.WriteString(helpStyle.Render("enter save · tab switch field · esc cancel"))
	b.WriteString("\n")
	return b.String()
}
