package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/timefocus/internal/app"
	"github.com/sadopc/timefocus/internal/queue"
	"github.com/sadopc/timefocus/internal/schedule"
)

type taskForm int

const (
	formAdd taskForm = iota
	formEdit
	formImport
)

type tasksModel struct {
	app    *app.App
	width  int
	height int

	cursor        int
	favCursor     int
	showFavorites bool

	formActive bool
	form       *huh.Form
	formType   taskForm

	// Form field pointers (survive value copies)
	formDesc     *string
	formSessions *string
	formText     *string

	editingID string
}

func newTasksModel(a *app.App) tasksModel {
	desc, sessions, text := "", "1", ""
	return tasksModel{
		app:          a,
		formDesc:     &desc,
		formSessions: &sessions,
		formText:     &text,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// capturing reports whether the view wants every key, including the ones
// the root model would otherwise handle.
func (m tasksModel) capturing() bool {
	return m.formActive || m.showFavorites
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.showFavorites {
		return m.updateFavorites(km)
	}
	return m.updateList(km)
}

func (m tasksModel) updateList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	tasks := m.app.Tasks()
	m.cursor = clampCursor(m.cursor, len(tasks))

	switch {
	case key.Matches(msg, keys.New):
		return m.showTaskForm(formAdd, queue.Task{SessionCount: 1})
	case key.Matches(msg, keys.Import):
		return m.showImportForm()
	case key.Matches(msg, keys.Favorites):
		m.showFavorites = true
		m.favCursor = 0
		return m, nil
	}

	if len(tasks) == 0 {
		return m, nil
	}
	t := tasks[m.cursor]

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Edit):
		return m.showTaskForm(formEdit, t)
	case key.Matches(msg, keys.Done):
		updated, err := m.app.ToggleTask(t.ID)
		if err != nil {
			return m, func() tea.Msg { return errStatus(err) }
		}
		if updated.Completed {
			return m, status("Completed " + updated.Description)
		}
		return m, status("Reopened " + updated.Description)
	case key.Matches(msg, keys.Delete):
		if err := m.app.DeleteTask(t.ID); err != nil {
			return m, func() tea.Msg { return errStatus(err) }
		}
		m.cursor = clampCursor(m.cursor, len(tasks)-1)
		return m, status("Deleted " + t.Description)
	case key.Matches(msg, keys.Breakdown):
		parts, err := m.app.BreakdownTask(t.ID)
		if err != nil {
			return m, func() tea.Msg { return errStatus(err) }
		}
		return m, status(fmt.Sprintf("Split into %d parts", len(parts)))
	case key.Matches(msg, keys.Favorite):
		on, err := m.app.ToggleFavorite(t.Description)
		if err != nil {
			return m, func() tea.Msg { return errStatus(err) }
		}
		if on {
			return m, status("Added to favorites")
		}
		return m, status("Removed from favorites")
	case key.Matches(msg, keys.MoveUp):
		return m.move(t.ID, queue.Up, m.cursor-1, len(tasks))
	case key.Matches(msg, keys.MoveDown):
		return m.move(t.ID, queue.Down, m.cursor+1, len(tasks))
	case key.Matches(msg, keys.MoveTop):
		return m.move(t.ID, queue.Top, 0, len(tasks))
	case key.Matches(msg, keys.MoveEnd):
		return m.move(t.ID, queue.Bottom, len(tasks)-1, len(tasks))
	}
	return m, nil
}

// move reorders the task and keeps the cursor on it.
func (m tasksModel) move(id string, dir queue.Direction, to, n int) (tasksModel, tea.Cmd) {
	if err := m.app.MoveTask(id, dir); err != nil {
		return m, func() tea.Msg { return errStatus(err) }
	}
	m.cursor = clampCursor(to, n)
	return m, nil
}

func (m tasksModel) updateFavorites(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	favs := m.app.Favorites()
	m.favCursor = clampCursor(m.favCursor, len(favs))

	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Favorites):
		m.showFavorites = false
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.favCursor > 0 {
			m.favCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.favCursor < len(favs)-1 {
			m.favCursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(favs) == 0 {
			return m, nil
		}
		t, err := m.app.QueueFavorite(favs[m.favCursor])
		if err != nil {
			return m, func() tea.Msg { return errStatus(err) }
		}
		m.showFavorites = false
		return m, status("Queued " + t.Description)
	case key.Matches(msg, keys.Delete):
		if len(favs) == 0 {
			return m, nil
		}
		if err := m.app.RemoveFavorite(favs[m.favCursor]); err != nil {
			return m, func() tea.Msg { return errStatus(err) }
		}
		m.favCursor = clampCursor(m.favCursor, len(favs)-1)
	}
	return m, nil
}

func (m tasksModel) showTaskForm(kind taskForm, t queue.Task) (tasksModel, tea.Cmd) {
	*m.formDesc = t.Description
	*m.formSessions = strconv.Itoa(t.SessionCount)
	m.formType = kind
	m.editingID = t.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(m.formDesc).Validate(notBlank),
			huh.NewInput().
				Title(fmt.Sprintf("Sessions (%d-%d)", queue.MinSessions, queue.MaxSessions)).
				Value(m.formSessions).
				Validate(intInRange(queue.MinSessions, queue.MaxSessions)),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) showImportForm() (tasksModel, tea.Cmd) {
	*m.formText = ""
	m.formType = formImport

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Bulk Import").
				Description(`One task per line: "Task description [2]" or "2 Task description"`).
				Lines(8).
				Value(m.formText),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	// Check for escape to cancel form
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		m.formActive = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}
	m.formActive = false

	switch m.formType {
	case formImport:
		return m, m.importText(*m.formText)
	case formEdit:
		n, _ := strconv.Atoi(strings.TrimSpace(*m.formSessions))
		if err := m.app.EditTask(m.editingID, *m.formDesc, n); err != nil {
			return m, func() tea.Msg { return errStatus(err) }
		}
		return m, status("Task updated")
	default:
		n, _ := strconv.Atoi(strings.TrimSpace(*m.formSessions))
		t, err := m.app.AddTask(*m.formDesc, n)
		if err != nil {
			return m, func() tea.Msg { return errStatus(err) }
		}
		m.cursor = len(m.app.Tasks()) - 1
		return m, status("Added " + t.Description)
	}
}

func (m tasksModel) importText(text string) tea.Cmd {
	lines, added, err := m.app.ImportText(text)
	if err != nil {
		return func() tea.Msg { return errStatus(err) }
	}
	rejected := len(lines) - len(queue.Valid(lines))
	if len(added) == 0 {
		return func() tea.Msg { return statusMsg{text: "No valid tasks found", isError: true} }
	}
	msg := fmt.Sprintf("Imported %d tasks", len(added))
	if rejected > 0 {
		msg += fmt.Sprintf(", %d lines skipped", rejected)
	}
	return status(msg)
}

func (m tasksModel) view() string {
	w := m.width - 4
	if m.formActive && m.form != nil {
		title := "New Task"
		switch m.formType {
		case formEdit:
			title = "Edit Task"
		case formImport:
			title = "Import Tasks"
		}
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}
	if m.showFavorites {
		return m.renderFavorites()
	}
	return m.renderList()
}

func (m tasksModel) renderList() string {
	w := m.width - 4
	tasks := m.app.Tasks()
	title := titleStyle.Render("Tasks")

	if len(tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to add one or i to import a list."),
		)
		return panelStyle.Width(w).Render(content)
	}

	sched := m.app.Schedule()
	favs := m.app.Favorites()
	cursor := clampCursor(m.cursor, len(tasks))

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-40s %-8s %s", "", "Task", "Sessions", "Planned")))

	for i, t := range tasks {
		prefix := "  "
		style := normalItemStyle
		if i == cursor {
			prefix = "> "
			style = selectedItemStyle
		}
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
			if i != cursor {
				style = completedItemStyle
			}
		}
		span := ""
		if e, ok := sched.Entry(t.ID); ok {
			span = e.Span
		}
		row := style.Render(fmt.Sprintf("%s%s %-40s %-8d %s", prefix, mark, truncate(t.Description, 40), t.SessionCount, span))
		if favs.Contains(t.Description) {
			row += highlightStyle.Render(" ★")
		}
		rows = append(rows, row)
	}

	if sched.Totals != nil {
		rows = append(rows, "")
		rows = append(rows, subtitleStyle.Render(fmt.Sprintf("  %d active  %s total  done at %s",
			len(sched.Entries),
			schedule.FormatMinutes(sched.Totals.TotalMinutes),
			sched.Completion.Format("15:04"))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  x: done  d: delete  b: break down  f: favorite  F: favorites  K/J/g/G: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m tasksModel) renderFavorites() string {
	w := m.width - 4
	favs := m.app.Favorites()
	title := titleStyle.Render("Favorites")

	if len(favs) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No favorites. Press f on a task to add it."),
			"",
			mutedStyle.Render("  esc: back"),
		)
		return activePanelStyle.Width(w).Render(content)
	}

	cursor := clampCursor(m.favCursor, len(favs))
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range favs {
		prefix := "  "
		style := normalItemStyle
		if i == cursor {
			prefix = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(prefix+"★ "+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: add to queue  d: remove  esc: back"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func clampCursor(c, n int) int {
	if c >= n {
		c = n - 1
	}
	return max(c, 0)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func intInRange(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < lo || n > hi {
			return fmt.Errorf("enter a number from %d to %d", lo, hi)
		}
		return nil
	}
}
