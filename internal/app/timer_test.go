package app

import (
	"testing"
	"time"

	"github.com/sadopc/timefocus/internal/persist"
	"github.com/sadopc/timefocus/internal/settings"
	"github.com/sadopc/timefocus/internal/timer"
)

func TestStartPauseSnapshots(t *testing.T) {
	f := newFixture(t)
	f.app.AddTask("Focus", 1)

	f.app.StartTimer()
	raw, ok, _ := f.store.Get(persist.KeyTimerState)
	if !ok || raw == "" {
		t.Fatal("start should write a snapshot")
	}

	f.clock.Advance(10 * time.Minute)
	f.app.PauseTimer()
	st := f.app.TimerStatus()
	if st.State != timer.Paused || st.RemainingSeconds != 900 {
		t.Fatalf("unexpected status after pause %+v", st)
	}

	f.app.ResetTimer()
	if _, ok, _ := f.store.Get(persist.KeyTimerState); ok {
		t.Fatal("reset should clear the snapshot")
	}
}

func TestTickGeneration(t *testing.T) {
	f := newFixture(t)
	gen := f.app.StartTimer()
	f.clock.Advance(time.Second)
	if _, ok := f.app.Tick(gen); !ok {
		t.Fatal("current tick rejected")
	}
	f.app.PauseTimer()
	if _, ok := f.app.Tick(gen); ok {
		t.Fatal("tick after pause should be stale")
	}
}

func TestCompletionLogsAndNotifies(t *testing.T) {
	f := newFixture(t)
	f.app.AddTask("Write report", 2)
	start := f.clock.Now()

	var completed []Event
	f.app.Subscribe(func(ev Event) {
		if ev.Kind == SessionCompleted {
			completed = append(completed, ev)
		}
	})

	gen := f.app.StartTimer()
	f.clock.Advance(26 * time.Minute)
	tr, ok := f.app.Tick(gen)
	if !ok || tr == nil || tr.To != timer.ShortBreak {
		t.Fatalf("expected completion into a short break, got %+v %v", tr, ok)
	}

	if len(completed) != 1 || completed[0].Notice.Title != "Work Session Complete!" {
		t.Fatalf("expected one completion event, got %+v", completed)
	}
	if len(f.notify.titles) != 1 || f.notify.bodies[0] != "Time for a short break!" || f.notify.silent[0] {
		t.Fatalf("unexpected notifications %+v", f.notify)
	}
	if _, ok, _ := f.store.Get(persist.KeyTimerState); ok {
		t.Fatal("completion should clear the snapshot")
	}

	recs, err := f.store.ListSessions(start.Add(-time.Hour), start.Add(time.Hour), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].SessionType != "work" || recs[0].TaskDescription != "Write report" {
		t.Fatalf("unexpected session log %+v", recs)
	}
	if !recs[0].FinishedAt.Equal(start.Add(25 * time.Minute)) {
		t.Fatalf("finished at %v, want the nominal end", recs[0].FinishedAt)
	}

	stats, err := f.app.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TodaySessions != 1 || stats.TodayWorkSeconds != 1500 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestNotificationsDisabled(t *testing.T) {
	f := newFixture(t)
	s := settings.Default()
	s.NotificationsEnabled = false
	f.app.UpdateSettings(s)

	f.app.StartTimer()
	f.clock.Advance(30 * time.Minute)
	f.app.Recompute()
	if len(f.notify.titles) != 0 {
		t.Fatal("notifications should be suppressed")
	}
}

func TestAutoStartAfterCompletion(t *testing.T) {
	f := newFixture(t)
	s := settings.Default()
	s.AutoStartBreak = true
	f.app.UpdateSettings(s)
	f.app.AddTask("Task", 1)

	f.app.StartTimer()
	f.clock.Advance(25 * time.Minute)
	tr := f.app.Recompute()
	if tr == nil || !tr.AutoStart {
		t.Fatalf("expected auto-start transition, got %+v", tr)
	}
	f.clock.Advance(timer.AutoStartDelay)
	if !f.app.AutoStart(tr.Generation) {
		t.Fatal("auto-start did not fire")
	}
	st := f.app.TimerStatus()
	if st.State != timer.Running || st.Session != timer.ShortBreak {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestNoAutoStartWithoutTasks(t *testing.T) {
	f := newFixture(t)
	s := settings.Default()
	s.AutoStartBreak = true
	f.app.UpdateSettings(s)

	f.app.StartTimer()
	f.clock.Advance(25 * time.Minute)
	tr := f.app.Recompute()
	if tr == nil || tr.AutoStart {
		t.Fatalf("expected no auto-start, got %+v", tr)
	}
	if f.notify.bodies[0] != "All tasks completed! Add new tasks to continue." {
		t.Fatalf("unexpected body %q", f.notify.bodies[0])
	}
}

func TestRestoreAcrossReopen(t *testing.T) {
	f := newFixture(t)
	f.app.StartTimer()
	f.clock.Advance(5 * time.Minute)

	g := openWith(t, f.store, f.clock)
	st := g.app.TimerStatus()
	if st.State != timer.Running || st.RemainingSeconds != 1200 {
		t.Fatalf("expected running with 20m left, got %+v", st)
	}
	if g.app.RestoreMessage() != "Timer resumed from background" {
		t.Fatalf("unexpected restore message %q", g.app.RestoreMessage())
	}
}

func TestRestoreExpiredAcrossReopen(t *testing.T) {
	f := newFixture(t)
	f.app.AddTask("Task", 1)
	f.app.StartTimer()
	f.clock.Advance(3 * time.Hour)

	g := openWith(t, f.store, f.clock)
	st := g.app.TimerStatus()
	if st.State != timer.Idle || st.Session != timer.ShortBreak || st.CompletedSessions != 1 {
		t.Fatalf("expected completed work session, got %+v", st)
	}
	if len(g.notify.titles) != 1 {
		t.Fatal("expected the completion notice on restore")
	}
	if _, ok, _ := f.store.Get(persist.KeyTimerState); ok {
		t.Fatal("snapshot should be cleared after restore completion")
	}
}

func TestRestoreExpiredSchedulesAutoStart(t *testing.T) {
	f := newFixture(t)
	s := settings.Default()
	s.AutoStartBreak = true
	if err := f.app.UpdateSettings(s); err != nil {
		t.Fatal(err)
	}
	f.app.AddTask("Task", 2)
	f.app.StartTimer()
	f.clock.Advance(26 * time.Minute)

	g := openWith(t, f.store, f.clock)
	st := g.app.TimerView()
	if st.State != timer.Completed || st.Session != timer.ShortBreak {
		t.Fatalf("expected completed work session awaiting auto-start, got %+v", st)
	}
	gen, ok := g.app.PendingAutoStart()
	if !ok || gen != st.Generation {
		t.Fatalf("expected pending auto-start for generation %d, got %d %v", st.Generation, gen, ok)
	}

	f.clock.Advance(timer.AutoStartDelay)
	if !g.app.AutoStart(gen) {
		t.Fatal("pending auto-start should fire")
	}
	if st := g.app.TimerView(); st.State != timer.Running || st.Session != timer.ShortBreak {
		t.Fatalf("expected running short break, got %+v", st)
	}
	if _, ok := g.app.PendingAutoStart(); ok {
		t.Fatal("auto-start must not stay pending once fired")
	}
}

func TestStartPendingAfterRestore(t *testing.T) {
	f := newFixture(t)
	s := settings.Default()
	s.AutoStartBreak = true
	f.app.UpdateSettings(s)
	f.app.AddTask("Task", 2)
	f.app.StartTimer()
	f.clock.Advance(time.Hour)

	g := openWith(t, f.store, f.clock)
	if !g.app.StartPending() {
		t.Fatal("expected the pending auto-start to fire")
	}
	if st := g.app.TimerView(); st.State != timer.Running || st.Session != timer.ShortBreak {
		t.Fatalf("expected running short break, got %+v", st)
	}
	if _, ok, _ := f.store.Get(persist.KeyTimerState); !ok {
		t.Fatal("the started break should be snapshotted")
	}
	if g.app.StartPending() {
		t.Fatal("second StartPending must be a no-op")
	}
}

func TestPendingAutoStartSupersededByReset(t *testing.T) {
	f := newFixture(t)
	s := settings.Default()
	s.AutoStartBreak = true
	f.app.UpdateSettings(s)
	f.app.AddTask("Task", 2)
	f.app.StartTimer()
	f.clock.Advance(time.Hour)

	g := openWith(t, f.store, f.clock)
	g.app.ResetTimer()
	if _, ok := g.app.PendingAutoStart(); ok {
		t.Fatal("reset should cancel the pending auto-start")
	}
}

func TestRestorePausedAcrossReopen(t *testing.T) {
	f := newFixture(t)
	f.app.StartTimer()
	f.clock.Advance(7 * time.Minute)
	f.app.PauseTimer()
	f.clock.Advance(2 * time.Hour)

	g := openWith(t, f.store, f.clock)
	st := g.app.TimerStatus()
	if st.State != timer.Paused || st.RemainingSeconds != 18*60 {
		t.Fatalf("expected paused with 18m left, got %+v", st)
	}
}

func TestSwitchSessionClearsSnapshot(t *testing.T) {
	f := newFixture(t)
	f.app.StartTimer()
	if err := f.app.SwitchSession(timer.LongBreak); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := f.store.Get(persist.KeyTimerState); ok {
		t.Fatal("switch should clear the snapshot")
	}
	if st := f.app.TimerStatus(); st.State != timer.Idle || st.RemainingSeconds != 900 {
		t.Fatalf("unexpected status %+v", st)
	}
	if err := f.app.SwitchSession("coffee"); err == nil {
		t.Fatal("expected error for unknown session")
	}
}

func TestToggleTimer(t *testing.T) {
	f := newFixture(t)
	f.app.ToggleTimer()
	if f.app.TimerStatus().State != timer.Running {
		t.Fatal("toggle should start")
	}
	f.app.ToggleTimer()
	if f.app.TimerStatus().State != timer.Paused {
		t.Fatal("toggle should pause")
	}
}
