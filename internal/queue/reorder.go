package queue

import "slices"

// Direction names a reorder operation.
type Direction string

const (
	Up     Direction = "up"
	Down   Direction = "down"
	Top    Direction = "top"
	Bottom Direction = "bottom"
)

// ParseDirection accepts the names used on the command line.
func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(s); d {
	case Up, Down, Top, Bottom:
		return d, true
	}
	return "", false
}

// Move repositions the task with id. Moving past either end is a no-op.
func Move(tasks []Task, id string, dir Direction) ([]Task, error) {
	i, err := find(tasks, id)
	if err != nil {
		return tasks, err
	}
	switch dir {
	case Up:
		return MoveUp(tasks, i), nil
	case Down:
		return MoveDown(tasks, i), nil
	case Top:
		return MoveToTop(tasks, i), nil
	case Bottom:
		return MoveToBottom(tasks, i), nil
	}
	return tasks, nil
}

// MoveUp swaps the task at index i with its predecessor.
func MoveUp(tasks []Task, i int) []Task {
	if i <= 0 || i >= len(tasks) {
		return tasks
	}
	out := slices.Clone(tasks)
	out[i], out[i-1] = out[i-1], out[i]
	return out
}

// MoveDown swaps the task at index i with its successor.
func MoveDown(tasks []Task, i int) []Task {
	if i < 0 || i >= len(tasks)-1 {
		return tasks
	}
	out := slices.Clone(tasks)
	out[i], out[i+1] = out[i+1], out[i]
	return out
}

func MoveToTop(tasks []Task, i int) []Task {
	if i <= 0 || i >= len(tasks) {
		return tasks
	}
	t := tasks[i]
	out := make([]Task, 0, len(tasks))
	out = append(out, t)
	out = append(out, tasks[:i]...)
	out = append(out, tasks[i+1:]...)
	return out
}

func MoveToBottom(tasks []Task, i int) []Task {
	if i < 0 || i >= len(tasks)-1 {
		return tasks
	}
	t := tasks[i]
	out := make([]Task, 0, len(tasks))
	out = append(out, tasks[:i]...)
	out = append(out, tasks[i+1:]...)
	out = append(out, t)
	return out
}
