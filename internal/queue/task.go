// Package queue implements the ordered task queue. Every operation takes a
// task slice and returns a new one; inputs are never modified, so a failed
// operation leaves the caller's queue untouched.
package queue

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/sadopc/timefocus/internal/apperr"
)

const (
	MinSessions = 1
	MaxSessions = 10
)

type Task struct {
	ID                  string `json:"id"`
	Description         string `json:"description"`
	OriginalDescription string `json:"originalDescription"`
	SessionCount        int    `json:"sessionCount"`
	Completed           bool   `json:"completed"`
}

// NewID returns a fresh task identifier.
var NewID = uuid.NewString

// New validates its input and returns a fresh, uncompleted task.
func New(description string, sessions int) (Task, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return Task{}, apperr.Validation("description", "must not be empty")
	}
	if err := validateCount(sessions); err != nil {
		return Task{}, err
	}
	return Task{
		ID:                  NewID(),
		Description:         desc,
		OriginalDescription: desc,
		SessionCount:        sessions,
	}, nil
}

func validateCount(n int) error {
	if n < MinSessions || n > MaxSessions {
		return apperr.Validationf("sessionCount", "must be between %d and %d", MinSessions, MaxSessions)
	}
	return nil
}

// Active returns the tasks not marked completed, in queue order.
func Active(tasks []Task) []Task {
	var out []Task
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// ActiveCount counts uncompleted tasks.
func ActiveCount(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Index returns the position of the task with id, or -1.
func Index(tasks []Task, id string) int {
	return slices.IndexFunc(tasks, func(t Task) bool { return t.ID == id })
}

func find(tasks []Task, id string) (int, error) {
	i := Index(tasks, id)
	if i < 0 {
		return -1, apperr.NotFound("task", id)
	}
	return i, nil
}

// Add appends one task. A multi-session task stays a single entry.
func Add(tasks []Task, description string, sessions int) ([]Task, Task, error) {
	t, err := New(description, sessions)
	if err != nil {
		return tasks, Task{}, err
	}
	out := append(slices.Clone(tasks), t)
	return out, t, nil
}

// Edit changes a task's description and session count.
func Edit(tasks []Task, id, description string, sessions int) ([]Task, error) {
	i, err := find(tasks, id)
	if err != nil {
		return tasks, err
	}
	desc := strings.TrimSpace(description)
	if desc == "" {
		return tasks, apperr.Validation("description", "must not be empty")
	}
	if err := validateCount(sessions); err != nil {
		return tasks, err
	}
	out := slices.Clone(tasks)
	out[i].Description = desc
	out[i].SessionCount = sessions
	return out, nil
}

func Delete(tasks []Task, id string) ([]Task, error) {
	i, err := find(tasks, id)
	if err != nil {
		return tasks, err
	}
	return slices.Delete(slices.Clone(tasks), i, i+1), nil
}

// ToggleCompleted flips the completion flag of one task.
func ToggleCompleted(tasks []Task, id string) ([]Task, error) {
	i, err := find(tasks, id)
	if err != nil {
		return tasks, err
	}
	out := slices.Clone(tasks)
	out[i].Completed = !out[i].Completed
	return out, nil
}

// Breakdown replaces a multi-session task, in place, with one
// single-session task per session.
func Breakdown(tasks []Task, id string) ([]Task, error) {
	i, err := find(tasks, id)
	if err != nil {
		return tasks, err
	}
	src := tasks[i]
	if src.SessionCount <= 1 {
		return tasks, apperr.Validation("sessionCount", "task has a single session and cannot be broken down")
	}

	parts := make([]Task, src.SessionCount)
	for p := range parts {
		parts[p] = Task{
			ID:                  NewID(),
			Description:         fmt.Sprintf("%s (Part %d)", src.Description, p+1),
			OriginalDescription: src.OriginalDescription,
			SessionCount:        1,
		}
	}

	out := make([]Task, 0, len(tasks)-1+len(parts))
	out = append(out, tasks[:i]...)
	out = append(out, parts...)
	out = append(out, tasks[i+1:]...)
	return out, nil
}
