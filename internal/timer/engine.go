package timer

import (
	"time"

	"github.com/sadopc/timefocus/internal/apperr"
	"github.com/sadopc/timefocus/internal/settings"
)

// AutoStartDelay is how long the driver waits after a completion before
// starting the next session automatically.
const AutoStartDelay = time.Second

// TaskCounter reports how many tasks are still open. Auto-continue never
// fires when it returns zero.
type TaskCounter interface {
	ActiveCount() int
}

// Transition describes one session completion.
type Transition struct {
	From              SessionType
	To                SessionType
	CompletedSessions int
	// AutoStart is set when the next session should start by itself after
	// AutoStartDelay. Generation is the value to hand back to AutoStart.
	AutoStart  bool
	Generation uint64
}

// Engine is not safe for concurrent use; the owner serialises access.
type Engine struct {
	settings settings.Settings
	tasks    TaskCounter

	state     State
	session   SessionType
	completed int

	anchor    time.Time // zero when no anchor is held
	nominal   int       // seconds
	remaining int       // seconds

	pausedAt      time.Time
	pausedSeconds int

	generation uint64
}

// New returns an idle engine at the start of a work session.
func New(s settings.Settings, tasks TaskCounter) *Engine {
	e := &Engine{settings: s, tasks: tasks, session: Work}
	e.nominal = durationSeconds(s, Work)
	e.remaining = e.nominal
	return e
}

func (e *Engine) State() State                  { return e.state }
func (e *Engine) Session() SessionType          { return e.session }
func (e *Engine) CompletedSessions() int        { return e.completed }
func (e *Engine) RemainingSeconds() int         { return e.remaining }
func (e *Engine) NominalSeconds() int           { return e.nominal }
func (e *Engine) Generation() uint64            { return e.generation }
func (e *Engine) Settings() settings.Settings   { return e.settings }
func (e *Engine) Anchor() (time.Time, bool)     { return e.anchor, !e.anchor.IsZero() }
func (e *Engine) Remaining() time.Duration      { return time.Duration(e.remaining) * time.Second }
func (e *Engine) AccumulatedPausedSeconds() int { return e.pausedSeconds }

// Progress is the elapsed fraction of the current session, 0 to 1.
func (e *Engine) Progress() float64 {
	if e.nominal <= 0 {
		return 0
	}
	p := float64(e.nominal-e.remaining) / float64(e.nominal)
	return min(max(p, 0), 1)
}

// SetSettings replaces the settings. A session already under way keeps its
// nominal length; an idle one picks up the new length at once.
func (e *Engine) SetSettings(s settings.Settings) {
	e.settings = s
	if e.state == Idle {
		e.nominal = durationSeconds(s, e.session)
		e.remaining = e.nominal
	}
}

// Start begins or resumes the current session and returns the new
// generation. Starting a running timer is a no-op.
func (e *Engine) Start(now time.Time) uint64 {
	if e.state == Running {
		return e.generation
	}
	e.nominal = durationSeconds(e.settings, e.session)
	if e.state == Paused {
		e.remaining = min(max(e.remaining, 0), e.nominal)
		e.anchor = now.Add(-time.Duration(e.nominal-e.remaining) * time.Second)
		if !e.pausedAt.IsZero() {
			e.pausedSeconds += max(0, int(now.Sub(e.pausedAt)/time.Second))
		}
	} else {
		e.anchor = now
		e.remaining = e.nominal
		e.pausedSeconds = 0
	}
	e.pausedAt = time.Time{}
	e.state = Running
	e.generation++
	return e.generation
}

// Recompute derives the remaining time from the anchor. Calling it twice
// with the same now yields the same result. It returns a transition when
// the session ran out.
func (e *Engine) Recompute(now time.Time) *Transition {
	if e.state != Running || e.anchor.IsZero() {
		return nil
	}
	elapsed := max(0, int(now.Sub(e.anchor)/time.Second))
	e.remaining = max(0, e.nominal-elapsed)
	if e.remaining == 0 {
		t := e.complete()
		return &t
	}
	return nil
}

// Tick is Recompute for a periodic callback scheduled under gen. Stale
// ticks are ignored and report ok=false so the driver stops rescheduling.
func (e *Engine) Tick(now time.Time, gen uint64) (t *Transition, ok bool) {
	if gen != e.generation || e.state != Running {
		return nil, false
	}
	return e.Recompute(now), true
}

// Pause freezes the remaining time. It does nothing unless running. If the
// session ran out before the pause landed it completes instead, and the
// transition is returned.
func (e *Engine) Pause(now time.Time) *Transition {
	if e.state != Running {
		return nil
	}
	if t := e.Recompute(now); t != nil {
		return t
	}
	e.state = Paused
	e.pausedAt = now
	e.generation++
	return nil
}

// Reset stops the timer and refills the current session.
func (e *Engine) Reset() {
	e.stop()
	e.nominal = durationSeconds(e.settings, e.session)
	e.remaining = e.nominal
}

// SwitchSession force-stops the timer and selects t.
func (e *Engine) SwitchSession(t SessionType) error {
	if !t.Valid() {
		return apperr.Validationf("sessionType", "unknown session type %q", t)
	}
	e.stop()
	e.session = t
	e.nominal = durationSeconds(e.settings, t)
	e.remaining = e.nominal
	return nil
}

// AutoStart starts the next session if the completion scheduled under gen
// is still pending.
func (e *Engine) AutoStart(now time.Time, gen uint64) bool {
	if gen != e.generation || e.state != Completed {
		return false
	}
	e.Start(now)
	return true
}

func (e *Engine) stop() {
	e.state = Idle
	e.anchor = time.Time{}
	e.pausedAt = time.Time{}
	e.pausedSeconds = 0
	e.generation++
}

func (e *Engine) complete() Transition {
	from := e.session
	e.anchor = time.Time{}
	e.pausedAt = time.Time{}
	e.pausedSeconds = 0

	if from == Work {
		e.completed++
		if e.settings.IsLongBreak(e.completed) {
			e.session = LongBreak
		} else {
			e.session = ShortBreak
		}
	} else {
		e.session = Work
	}
	e.nominal = durationSeconds(e.settings, e.session)
	e.remaining = e.nominal

	auto := e.activeTasks() > 0 &&
		((from == Work && e.settings.AutoStartBreak) || (from.IsBreak() && e.settings.AutoStartWork))
	if auto {
		e.state = Completed
	} else {
		e.state = Idle
	}
	e.generation++

	return Transition{
		From:              from,
		To:                e.session,
		CompletedSessions: e.completed,
		AutoStart:         auto,
		Generation:        e.generation,
	}
}

func (e *Engine) activeTasks() int {
	if e.tasks == nil {
		return 0
	}
	return e.tasks.ActiveCount()
}
