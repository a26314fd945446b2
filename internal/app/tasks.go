package app

import (
	"slices"
	"strconv"
	"strings"

	"github.com/sadopc/timefocus/internal/apperr"
	"github.com/sadopc/timefocus/internal/queue"
)

// mutateTasks applies fn to the queue, stores the result and only then
// swaps it in. A failing fn or save leaves the queue unchanged.
func (a *App) mutateTasks(fn func([]queue.Task) ([]queue.Task, error)) error {
	a.mu.Lock()
	next, err := fn(a.queue)
	if err != nil {
		a.mu.Unlock()
		return err
	}
	if err := a.tasks.SaveTasks(next); err != nil {
		a.mu.Unlock()
		return err
	}
	a.queue = next
	a.mu.Unlock()

	a.emit(Event{Kind: TasksChanged}, Event{Kind: ScheduleChanged})
	return nil
}

// Tasks returns a copy of the whole queue.
func (a *App) Tasks() []queue.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.queue)
}

// Task looks up one task by id.
func (a *App) Task(id string) (queue.Task, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := queue.Index(a.queue, id)
	if i < 0 {
		return queue.Task{}, false
	}
	return a.queue[i], true
}

// FindTask resolves ref as a task id or, failing that, a 1-based queue
// position.
func (a *App) FindTask(ref string) (queue.Task, error) {
	ref = strings.TrimSpace(ref)
	a.mu.Lock()
	defer a.mu.Unlock()
	if i := queue.Index(a.queue, ref); i >= 0 {
		return a.queue[i], nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(a.queue) {
		return a.queue[n-1], nil
	}
	return queue.Task{}, apperr.NotFound("task", ref)
}

// ActiveCount counts open tasks.
func (a *App) ActiveCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return queue.ActiveCount(a.queue)
}

// CurrentTask is the first open task, the one the timer is working on.
func (a *App) CurrentTask() (queue.Task, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentTaskLocked()
}

func (a *App) currentTaskLocked() (queue.Task, bool) {
	for _, t := range a.queue {
		if !t.Completed {
			return t, true
		}
	}
	return queue.Task{}, false
}

func (a *App) AddTask(desc string, sessions int) (queue.Task, error) {
	var added queue.Task
	err := a.mutateTasks(func(ts []queue.Task) ([]queue.Task, error) {
		next, t, err := queue.Add(ts, desc, sessions)
		added = t
		return next, err
	})
	if err == nil {
		a.log.Debug("task added", "id", added.ID, "sessions", added.SessionCount)
	}
	return added, err
}

func (a *App) EditTask(id, desc string, sessions int) error {
	return a.mutateTasks(func(ts []queue.Task) ([]queue.Task, error) {
		return queue.Edit(ts, id, desc, sessions)
	})
}

func (a *App) DeleteTask(id string) error {
	return a.mutateTasks(func(ts []queue.Task) ([]queue.Task, error) {
		return queue.Delete(ts, id)
	})
}

// ToggleTask flips completion and returns the updated task.
func (a *App) ToggleTask(id string) (queue.Task, error) {
	var updated queue.Task
	err := a.mutateTasks(func(ts []queue.Task) ([]queue.Task, error) {
		next, err := queue.ToggleCompleted(ts, id)
		if err == nil {
			updated = next[queue.Index(next, id)]
		}
		return next, err
	})
	return updated, err
}

// BreakdownTask splits a multi-session task and returns the new parts.
func (a *App) BreakdownTask(id string) ([]queue.Task, error) {
	var parts []queue.Task
	err := a.mutateTasks(func(ts []queue.Task) ([]queue.Task, error) {
		i := queue.Index(ts, id)
		next, err := queue.Breakdown(ts, id)
		if err == nil {
			parts = slices.Clone(next[i : i+ts[i].SessionCount])
		}
		return next, err
	})
	return parts, err
}

func (a *App) MoveTask(id string, dir queue.Direction) error {
	return a.mutateTasks(func(ts []queue.Task) ([]queue.Task, error) {
		return queue.Move(ts, id, dir)
	})
}

// ImportText parses bulk text and appends every valid line as a task. All
// parsed lines come back, invalid ones with their diagnostics.
func (a *App) ImportText(text string) ([]queue.ParsedLine, []queue.Task, error) {
	lines := queue.ParseBulk(text)
	var added []queue.Task
	if len(queue.Valid(lines)) == 0 {
		return lines, nil, nil
	}
	err := a.mutateTasks(func(ts []queue.Task) ([]queue.Task, error) {
		next, imported, err := queue.Import(ts, lines)
		added = imported
		return next, err
	})
	if err != nil {
		return lines, nil, err
	}
	a.log.Info("tasks imported", "lines", len(lines), "imported", len(added))
	return lines, added, nil
}

// ClearCompleted drops every completed task.
func (a *App) ClearCompleted() (int, error) {
	removed := 0
	err := a.mutateTasks(func(ts []queue.Task) ([]queue.Task, error) {
		next := queue.Active(ts)
		removed = len(ts) - len(next)
		if next == nil {
			next = []queue.Task{}
		}
		return next, nil
	})
	return removed, err
}
