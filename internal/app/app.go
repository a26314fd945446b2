// Package app owns the application state: the task queue, settings,
// favorites and the timer engine. Every mutation runs under one lock, is
// written through to storage, and then announced to subscribers.
package app

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/sadopc/timefocus/internal/persist"
	"github.com/sadopc/timefocus/internal/queue"
	"github.com/sadopc/timefocus/internal/schedule"
	"github.com/sadopc/timefocus/internal/settings"
	"github.com/sadopc/timefocus/internal/store"
	"github.com/sadopc/timefocus/internal/timer"
)

// TaskRepo stores the ordered task queue.
type TaskRepo interface {
	LoadTasks() ([]queue.Task, error)
	SaveTasks(tasks []queue.Task) error
}

// SessionLog records finished sessions and aggregates them.
type SessionLog interface {
	LogSession(r store.SessionRecord) (int64, error)
	GetWorkStats(from, to time.Time) (int, int64, error)
	GetDailySummary(from, to time.Time) ([]store.DailySummary, error)
}

// Backend is everything App persists to. *store.Store implements it.
type Backend interface {
	persist.KV
	TaskRepo
	SessionLog
}

type Options struct {
	Backend  Backend
	Logger   *slog.Logger
	Notifier Notifier
	// Now defaults to time.Now.
	Now func() time.Time
	// DefaultStart is used when no start time has been saved. Empty means
	// the current time.
	DefaultStart string
}

type App struct {
	mu sync.Mutex

	records  *persist.Records
	tasks    TaskRepo
	sessions SessionLog
	log      *slog.Logger
	notifier Notifier
	now      func() time.Time

	settings     settings.Settings
	queue        []queue.Task
	favorites    queue.Favorites
	start        schedule.TimeOfDay
	hasStart     bool
	defaultStart *schedule.TimeOfDay
	engine       *timer.Engine
	restored     timer.RestoreOutcome
	// pendingAuto is the generation of an automatic start that restore
	// found due, 0 when there is none.
	pendingAuto uint64

	subMu  sync.RWMutex
	subs   map[int]func(Event)
	nextID int
}

// queueCounter lets the engine see the queue. It is only called while the
// App lock is held.
type queueCounter struct{ a *App }

func (c queueCounter) ActiveCount() int { return queue.ActiveCount(c.a.queue) }

// Open loads all state from the backend and restores the timer.
func Open(opts Options) (*App, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("app: no backend")
	}
	a := &App{
		records:  persist.New(opts.Backend, opts.Logger),
		tasks:    opts.Backend,
		sessions: opts.Backend,
		log:      opts.Logger,
		notifier: opts.Notifier,
		now:      opts.Now,
		subs:     make(map[int]func(Event)),
	}
	if a.log == nil {
		a.log = slog.Default()
	}
	if a.notifier == nil {
		a.notifier = LogNotifier{Log: a.log}
	}
	if a.now == nil {
		a.now = time.Now
	}
	if opts.DefaultStart != "" {
		t, err := schedule.ParseTimeOfDay(opts.DefaultStart)
		if err != nil {
			return nil, err
		}
		a.defaultStart = &t
	}

	var err error
	if a.settings, err = a.records.Settings(); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if a.queue, err = a.tasks.LoadTasks(); err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if a.favorites, err = a.records.Favorites(); err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	if a.start, a.hasStart, err = a.records.StartTime(); err != nil {
		return nil, fmt.Errorf("load start time: %w", err)
	}

	a.engine = timer.New(a.settings, queueCounter{a})
	snap, ok, err := a.records.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("load timer state: %w", err)
	}
	if ok {
		a.restoreTimer(snap)
	}
	return a, nil
}

func (a *App) restoreTimer(snap timer.Snapshot) {
	var prev bounds
	if snap.AnchorStartEpochMs != nil {
		nominal := snap.NominalDurationSeconds
		prev.finished = time.UnixMilli(*snap.AnchorStartEpochMs).Add(time.Duration(nominal) * time.Second)
		prev.started = prev.finished.Add(-time.Duration(nominal+snap.AccumulatedPausedSeconds) * time.Second)
		prev.nominal = nominal
		prev.session = snap.SessionType
	}

	outcome, tr := a.engine.Restore(snap, a.now())
	a.restored = outcome
	a.log.Info("timer restored", "outcome", timer.RestoreMessage(outcome), "session", a.engine.Session())
	if tr != nil {
		a.finishSession(*tr, prev)
		if tr.AutoStart {
			a.pendingAuto = tr.Generation
		}
	}
}

// PendingAutoStart reports the automatic start that was due when Open
// completed a restored session, as long as nothing has superseded it. The
// driver hands gen to AutoStart after timer.AutoStartDelay.
func (a *App) PendingAutoStart() (gen uint64, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	gen = a.pendingAuto
	if gen == 0 || a.engine.State() != timer.Completed || a.engine.Generation() != gen {
		return 0, false
	}
	return gen, true
}

// StartPending fires the pending automatic start at once. One-shot commands
// use it since they exit before any delay could elapse.
func (a *App) StartPending() bool {
	gen, ok := a.PendingAutoStart()
	if !ok {
		return false
	}
	return a.AutoStart(gen)
}

// RestoreMessage describes what Open found in the saved timer state, or ""
// when there was nothing in progress.
func (a *App) RestoreMessage() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return timer.RestoreMessage(a.restored)
}

// Now reads the App's clock.
func (a *App) Now() time.Time { return a.now() }

// Subscribe registers fn to be called after every change. Callbacks run
// outside the lock, on the goroutine that made the change. The returned
// func unregisters fn.
func (a *App) Subscribe(fn func(Event)) func() {
	a.subMu.Lock()
	defer a.subMu.Unlock()
	id := a.nextID
	a.nextID++
	a.subs[id] = fn
	return func() {
		a.subMu.Lock()
		defer a.subMu.Unlock()
		delete(a.subs, id)
	}
}

func (a *App) emit(events ...Event) {
	a.subMu.RLock()
	fns := make([]func(Event), 0, len(a.subs))
	for _, fn := range a.subs {
		fns = append(fns, fn)
	}
	a.subMu.RUnlock()

	for _, ev := range events {
		for _, fn := range fns {
			fn(ev)
		}
	}
}

// ============================================================
// Settings
// ============================================================

func (a *App) Settings() settings.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// UpdateSettings validates and stores s. An idle timer picks up the new
// durations at once; a session in progress keeps its length.
func (a *App) UpdateSettings(s settings.Settings) error {
	a.mu.Lock()
	if err := a.records.SaveSettings(s); err != nil {
		a.mu.Unlock()
		return err
	}
	a.settings = s
	a.engine.SetSettings(s)
	a.mu.Unlock()

	a.log.Info("settings updated", "work", s.WorkDuration, "short", s.ShortBreakDuration,
		"long", s.LongBreakDuration, "interval", s.LongBreakInterval)
	a.emit(Event{Kind: SettingsChanged}, Event{Kind: TimerChanged})
	return nil
}

// ResetSettings restores the defaults.
func (a *App) ResetSettings() error {
	return a.UpdateSettings(settings.Default())
}

// ============================================================
// Schedule
// ============================================================

// StartTime is the saved schedule start, else the configured default, else
// the current time.
func (a *App) StartTime() schedule.TimeOfDay {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.startTimeLocked()
}

func (a *App) startTimeLocked() schedule.TimeOfDay {
	switch {
	case a.hasStart:
		return a.start
	case a.defaultStart != nil:
		return *a.defaultStart
	}
	return schedule.Of(a.now())
}

func (a *App) SetStartTime(t schedule.TimeOfDay) error {
	a.mu.Lock()
	if err := a.records.SaveStartTime(t); err != nil {
		a.mu.Unlock()
		return err
	}
	a.start, a.hasStart = t, true
	a.mu.Unlock()

	a.emit(Event{Kind: ScheduleChanged})
	return nil
}

// StartNow sets the schedule start to the current minute.
func (a *App) StartNow() (schedule.TimeOfDay, error) {
	t := schedule.Of(a.now())
	return t, a.SetStartTime(t)
}

// Schedule projects the active queue from the current start time.
func (a *App) Schedule() schedule.Schedule {
	a.mu.Lock()
	defer a.mu.Unlock()
	return schedule.Project(a.queue, a.settings, a.startTimeLocked(), a.now())
}

// ScheduleFrom projects the active queue from start instead of the saved
// start time.
func (a *App) ScheduleFrom(start schedule.TimeOfDay) schedule.Schedule {
	a.mu.Lock()
	defer a.mu.Unlock()
	return schedule.Project(a.queue, a.settings, start, a.now())
}

// ============================================================
// Stats
// ============================================================

// Stats summarises finished work sessions.
type Stats struct {
	TodaySessions    int
	TodayWorkSeconds int64
	WeekSessions     int
	WeekWorkSeconds  int64
	Daily            []store.DailySummary
}

// Stats reports today's and the last seven days' finished sessions.
func (a *App) Stats() (Stats, error) {
	now := a.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)
	weekAgo := today.AddDate(0, 0, -6)

	var st Stats
	var err error
	if st.TodaySessions, st.TodayWorkSeconds, err = a.sessions.GetWorkStats(today, tomorrow); err != nil {
		return st, err
	}
	if st.WeekSessions, st.WeekWorkSeconds, err = a.sessions.GetWorkStats(weekAgo, tomorrow); err != nil {
		return st, err
	}
	if st.Daily, err = a.sessions.GetDailySummary(weekAgo, tomorrow); err != nil {
		return st, err
	}
	return st, nil
}

// ============================================================
// Favorites
// ============================================================

func (a *App) Favorites() queue.Favorites {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.favorites)
}

// ToggleFavorite adds or removes desc and reports whether it is now a
// favorite.
func (a *App) ToggleFavorite(desc string) (bool, error) {
	a.mu.Lock()
	next, on, err := a.favorites.Toggle(desc)
	if err != nil {
		a.mu.Unlock()
		return false, err
	}
	if err := a.records.SaveFavorites(next); err != nil {
		a.mu.Unlock()
		return false, err
	}
	a.favorites = next
	a.mu.Unlock()

	a.emit(Event{Kind: FavoritesChanged})
	return on, nil
}

func (a *App) RemoveFavorite(desc string) error {
	a.mu.Lock()
	next := a.favorites.Remove(desc)
	if err := a.records.SaveFavorites(next); err != nil {
		a.mu.Unlock()
		return err
	}
	a.favorites = next
	a.mu.Unlock()

	a.emit(Event{Kind: FavoritesChanged})
	return nil
}

// QueueFavorite appends a favorite to the queue as a one-session task.
func (a *App) QueueFavorite(desc string) (queue.Task, error) {
	var added queue.Task
	err := a.mutateTasks(func(ts []queue.Task) ([]queue.Task, error) {
		next, t, err := queue.AddFavorite(ts, desc)
		added = t
		return next, err
	})
	return added, err
}
