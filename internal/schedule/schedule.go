// Package schedule projects a task queue onto the clock. Everything here is
// a pure function of its inputs: no state, no locks, no I/O.
package schedule

import (
	"fmt"
	"time"

	"github.com/sadopc/timefocus/internal/queue"
	"github.com/sadopc/timefocus/internal/settings"
)

// Entry is the projected span of one active task.
type Entry struct {
	TaskID        string    `json:"taskId" yaml:"taskId"`
	Description   string    `json:"description" yaml:"description"`
	Start         time.Time `json:"start" yaml:"start"`
	End           time.Time `json:"end" yaml:"end"`
	Span          string    `json:"span" yaml:"span"`
	TotalSessions int       `json:"totalSessions" yaml:"totalSessions"`
}

// Totals aggregates the work and break time of the active queue.
type Totals struct {
	WorkMinutes  int `json:"workMinutes" yaml:"workMinutes"`
	BreakMinutes int `json:"breakMinutes" yaml:"breakMinutes"`
	TotalMinutes int `json:"totalMinutes" yaml:"totalMinutes"`
	Sessions     int `json:"sessions" yaml:"sessions"`
	ShortBreaks  int `json:"shortBreaks" yaml:"shortBreaks"`
	LongBreaks   int `json:"longBreaks" yaml:"longBreaks"`
}

// Schedule is the full projection. Totals is nil when no task is active.
type Schedule struct {
	Start      time.Time `json:"start" yaml:"start"`
	Entries    []Entry   `json:"entries" yaml:"entries"`
	Totals     *Totals   `json:"totals,omitempty" yaml:"totals,omitempty"`
	Completion time.Time `json:"completion" yaml:"completion"`
}

// Entry returns the projected entry for a task, if it is active.
func (s Schedule) Entry(taskID string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.TaskID == taskID {
			return e, true
		}
	}
	return Entry{}, false
}

// Break is the n-th break of a run (1-based).
type Break struct {
	Index   int
	Long    bool
	Minutes int
}

// Breaks returns the breaks inserted between n consecutive active tasks.
// Both Project and Summarize count breaks through this routine.
func Breaks(n int, s settings.Settings) []Break {
	if n <= 1 {
		return nil
	}
	out := make([]Break, n-1)
	for i := range out {
		k := i + 1
		b := Break{Index: k, Minutes: s.ShortBreakDuration}
		if s.IsLongBreak(k) {
			b.Long = true
			b.Minutes = s.LongBreakDuration
		}
		out[i] = b
	}
	return out
}

// Summarize computes the aggregates without needing a start time.
// It returns nil when no task is active.
func Summarize(tasks []queue.Task, s settings.Settings) *Totals {
	active := queue.Active(tasks)
	if len(active) == 0 {
		return nil
	}
	t := &Totals{}
	for _, task := range active {
		t.Sessions += task.SessionCount
		t.WorkMinutes += task.SessionCount * s.WorkDuration
	}
	for _, b := range Breaks(len(active), s) {
		t.BreakMinutes += b.Minutes
		if b.Long {
			t.LongBreaks++
		} else {
			t.ShortBreaks++
		}
	}
	t.TotalMinutes = t.WorkMinutes + t.BreakMinutes
	return t
}

// Project lays the active tasks end to end starting at start, resolved
// against now.
func Project(tasks []queue.Task, s settings.Settings, start TimeOfDay, now time.Time) Schedule {
	begin := start.Resolve(now)
	sched := Schedule{Start: begin}

	active := queue.Active(tasks)
	if len(active) == 0 {
		return sched
	}
	breaks := Breaks(len(active), s)

	cursor := begin
	sched.Entries = make([]Entry, 0, len(active))
	for i, task := range active {
		from := cursor
		cursor = cursor.Add(time.Duration(task.SessionCount) * s.Work())
		sched.Entries = append(sched.Entries, Entry{
			TaskID:        task.ID,
			Description:   task.Description,
			Start:         from,
			End:           cursor,
			Span:          FormatSpan(from, cursor),
			TotalSessions: task.SessionCount,
		})
		if i < len(breaks) {
			cursor = cursor.Add(time.Duration(breaks[i].Minutes) * time.Minute)
		}
	}

	sched.Totals = Summarize(tasks, s)
	sched.Completion = begin.Add(time.Duration(sched.Totals.TotalMinutes) * time.Minute)
	return sched
}

// FormatSpan renders a 24-hour span such as "10:00–10:50".
func FormatSpan(from, to time.Time) string {
	return fmt.Sprintf("%s–%s", from.Format("15:04"), to.Format("15:04"))
}

// FormatMinutes renders a minute count as "1h 20m", "45m" or "2h".
func FormatMinutes(m int) string {
	h, rem := m/60, m%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", rem)
	case rem == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, rem)
}
