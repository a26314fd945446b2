package app

import "github.com/sadopc/timefocus/internal/timer"

// EventKind says which part of the state changed.
type EventKind int

const (
	TasksChanged EventKind = iota
	FavoritesChanged
	SettingsChanged
	ScheduleChanged
	TimerChanged
	// SessionCompleted carries the transition and the notice shown for it.
	SessionCompleted
)

func (k EventKind) String() string {
	switch k {
	case TasksChanged:
		return "tasks"
	case FavoritesChanged:
		return "favorites"
	case SettingsChanged:
		return "settings"
	case ScheduleChanged:
		return "schedule"
	case TimerChanged:
		return "timer"
	case SessionCompleted:
		return "session-completed"
	}
	return "unknown"
}

type Event struct {
	Kind       EventKind
	Transition *timer.Transition
	Notice     *timer.Notice
}
