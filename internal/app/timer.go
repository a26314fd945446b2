package app

import (
	"time"

	"github.com/sadopc/timefocus/internal/store"
	"github.com/sadopc/timefocus/internal/timer"
)

// TimerStatus is a point-in-time view of the timer.
type TimerStatus struct {
	State             timer.State
	Session           timer.SessionType
	RemainingSeconds  int
	NominalSeconds    int
	CompletedSessions int
	Generation        uint64
	Progress          float64
	CurrentTask       string
	ActiveTasks       int
}

// bounds describes the session in progress, captured before an engine call
// that may complete it.
type bounds struct {
	session  timer.SessionType
	nominal  int
	started  time.Time
	finished time.Time
}

func (a *App) sessionBounds() bounds {
	b := bounds{session: a.engine.Session(), nominal: a.engine.NominalSeconds()}
	if anchor, ok := a.engine.Anchor(); ok {
		b.finished = anchor.Add(time.Duration(b.nominal) * time.Second)
		b.started = b.finished.Add(-time.Duration(b.nominal+a.engine.AccumulatedPausedSeconds()) * time.Second)
	}
	return b
}

func (a *App) statusLocked() TimerStatus {
	st := TimerStatus{
		State:             a.engine.State(),
		Session:           a.engine.Session(),
		RemainingSeconds:  a.engine.RemainingSeconds(),
		NominalSeconds:    a.engine.NominalSeconds(),
		CompletedSessions: a.engine.CompletedSessions(),
		Generation:        a.engine.Generation(),
		Progress:          a.engine.Progress(),
		ActiveTasks:       queueCounter{a}.ActiveCount(),
	}
	if t, ok := a.currentTaskLocked(); ok {
		st.CurrentTask = t.Description
	}
	return st
}

// TimerStatus recomputes the timer from the clock and reports it.
func (a *App) TimerStatus() TimerStatus {
	events := a.recompute()
	a.mu.Lock()
	st := a.statusLocked()
	a.mu.Unlock()
	a.emit(events...)
	return st
}

// TimerView reports the timer as of its last update without consulting the
// clock. Render paths use it so drawing never completes a session.
func (a *App) TimerView() TimerStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.statusLocked()
}

// Recompute brings the timer up to date with the clock. The TUI calls it
// when the terminal regains focus.
func (a *App) Recompute() *timer.Transition {
	events := a.recompute()
	a.emit(events...)
	for _, ev := range events {
		if ev.Kind == SessionCompleted {
			return ev.Transition
		}
	}
	return nil
}

func (a *App) recompute() []Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	prev := a.sessionBounds()
	if tr := a.engine.Recompute(a.now()); tr != nil {
		return a.finishSession(*tr, prev)
	}
	return nil
}

// StartTimer starts or resumes the timer and returns the generation ticks
// must carry.
func (a *App) StartTimer() uint64 {
	a.mu.Lock()
	gen := a.engine.Start(a.now())
	session := a.engine.Session()
	a.saveSnapshotLocked()
	a.mu.Unlock()

	a.log.Info("timer started", "session", session, "generation", gen)
	a.emit(Event{Kind: TimerChanged})
	return gen
}

// PauseTimer pauses a running timer. If the session had already run out it
// completes instead.
func (a *App) PauseTimer() *timer.Transition {
	a.mu.Lock()
	prev := a.sessionBounds()
	var events []Event
	var out *timer.Transition
	if tr := a.engine.Pause(a.now()); tr != nil {
		out = tr
		events = a.finishSession(*tr, prev)
	} else if a.engine.State() == timer.Paused {
		a.saveSnapshotLocked()
		events = []Event{{Kind: TimerChanged}}
	}
	a.mu.Unlock()

	a.emit(events...)
	return out
}

// ToggleTimer pauses a running timer and starts any other.
func (a *App) ToggleTimer() {
	a.mu.Lock()
	running := a.engine.State() == timer.Running
	a.mu.Unlock()
	if running {
		a.PauseTimer()
		return
	}
	a.StartTimer()
}

// ResetTimer stops the timer and refills the current session.
func (a *App) ResetTimer() {
	a.mu.Lock()
	a.engine.Reset()
	a.clearSnapshotLocked()
	a.mu.Unlock()

	a.emit(Event{Kind: TimerChanged})
}

// SwitchSession force-stops the timer and selects t.
func (a *App) SwitchSession(t timer.SessionType) error {
	a.mu.Lock()
	if err := a.engine.SwitchSession(t); err != nil {
		a.mu.Unlock()
		return err
	}
	a.clearSnapshotLocked()
	a.mu.Unlock()

	a.emit(Event{Kind: TimerChanged})
	return nil
}

// Tick is the periodic callback scheduled under gen. ok is false for a
// stale tick, which the driver must not reschedule.
func (a *App) Tick(gen uint64) (tr *timer.Transition, ok bool) {
	a.mu.Lock()
	prev := a.sessionBounds()
	tr, ok = a.engine.Tick(a.now(), gen)
	var events []Event
	if tr != nil {
		events = a.finishSession(*tr, prev)
	}
	a.mu.Unlock()

	a.emit(events...)
	return tr, ok
}

// AutoStart fires a pending automatic start scheduled under gen.
func (a *App) AutoStart(gen uint64) bool {
	a.mu.Lock()
	started := a.engine.AutoStart(a.now(), gen)
	if started {
		a.saveSnapshotLocked()
	}
	a.mu.Unlock()

	if started {
		a.emit(Event{Kind: TimerChanged})
	}
	return started
}

// finishSession logs the finished session, clears the snapshot and sends
// the notice. It returns the events to emit once the lock is released.
func (a *App) finishSession(tr timer.Transition, prev bounds) []Event {
	a.clearSnapshotLocked()

	if !prev.finished.IsZero() {
		rec := store.SessionRecord{
			SessionType:    string(tr.From),
			NominalSeconds: prev.nominal,
			StartedAt:      prev.started,
			FinishedAt:     prev.finished,
		}
		if tr.From == timer.Work {
			if t, ok := a.currentTaskLocked(); ok {
				rec.TaskDescription = t.Description
			}
		}
		if _, err := a.sessions.LogSession(rec); err != nil {
			a.log.Error("log session", "err", err)
		}
	}

	active := queueCounter{a}.ActiveCount()
	notice := timer.NoticeFor(tr, active)
	if a.settings.NotificationsEnabled {
		if err := a.notifier.Notify(notice.Title, notice.Body, !a.settings.SoundEnabled); err != nil {
			a.log.Warn("notify", "err", err)
		}
	}
	a.log.Info("session completed", "from", tr.From, "to", tr.To,
		"completed", tr.CompletedSessions, "autoStart", tr.AutoStart)

	return []Event{
		{Kind: SessionCompleted, Transition: &tr, Notice: &notice},
		{Kind: TimerChanged},
	}
}

func (a *App) saveSnapshotLocked() {
	if err := a.records.SaveSnapshot(a.engine.Snapshot()); err != nil {
		a.log.Error("save timer state", "err", err)
	}
}

func (a *App) clearSnapshotLocked() {
	if err := a.records.ClearSnapshot(); err != nil {
		a.log.Error("clear timer state", "err", err)
	}
}
