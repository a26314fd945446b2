package timer

import (
	"testing"
	"time"

	"github.com/sadopc/timefocus/internal/apperr"
	"github.com/sadopc/timefocus/internal/settings"
)

type openTasks int

func (n openTasks) ActiveCount() int { return int(n) }

var t0 = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func at(sec int) time.Time { return t0.Add(time.Duration(sec) * time.Second) }

func newEngine(tasks int) *Engine {
	return New(settings.Default(), openTasks(tasks))
}

// runOut starts the current session at sec and recomputes past its end.
func runOut(t *testing.T, e *Engine, sec int) (*Transition, int) {
	t.Helper()
	e.Start(at(sec))
	end := sec + e.NominalSeconds()
	tr := e.Recompute(at(end))
	if tr == nil {
		t.Fatalf("session %s did not complete", e.Session())
	}
	return tr, end
}

// ============================================================
// Start / Recompute
// ============================================================

func TestNewEngineIdleWork(t *testing.T) {
	e := newEngine(1)
	if e.State() != Idle || e.Session() != Work || e.RemainingSeconds() != 25*60 {
		t.Fatalf("unexpected initial state %v %v %d", e.State(), e.Session(), e.RemainingSeconds())
	}
	if _, ok := e.Anchor(); ok {
		t.Fatal("new engine should hold no anchor")
	}
}

func TestRecomputeFromRealTime(t *testing.T) {
	e := newEngine(1)
	e.Start(at(0))
	if e.State() != Running {
		t.Fatal("expected running")
	}

	e.Recompute(at(90))
	if e.RemainingSeconds() != 1500-90 {
		t.Fatalf("remaining = %d", e.RemainingSeconds())
	}

	// A long suspension is the same as ticking every second.
	e.Recompute(at(1200).Add(999 * time.Millisecond))
	if e.RemainingSeconds() != 300 {
		t.Fatalf("after suspension remaining = %d, want 300", e.RemainingSeconds())
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	e := newEngine(1)
	e.Start(at(0))
	now := at(437).Add(250 * time.Millisecond)
	e.Recompute(now)
	first := e.RemainingSeconds()
	e.Recompute(now)
	if e.RemainingSeconds() != first {
		t.Fatalf("recompute not idempotent: %d then %d", first, e.RemainingSeconds())
	}
}

func TestRecomputeClockBehindAnchor(t *testing.T) {
	e := newEngine(1)
	e.Start(at(100))
	e.Recompute(at(40))
	if e.RemainingSeconds() != 1500 {
		t.Fatalf("negative elapsed should clamp, remaining = %d", e.RemainingSeconds())
	}
}

func TestRecomputeIgnoredWhenNotRunning(t *testing.T) {
	e := newEngine(1)
	if e.Recompute(at(5000)) != nil || e.RemainingSeconds() != 1500 {
		t.Fatal("idle engine should ignore recompute")
	}
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	e := newEngine(1)
	gen := e.Start(at(0))
	if again := e.Start(at(30)); again != gen {
		t.Fatal("second start should not bump the generation")
	}
	anchor, _ := e.Anchor()
	if !anchor.Equal(at(0)) {
		t.Fatal("second start moved the anchor")
	}
}

// ============================================================
// Pause / resume
// ============================================================

func TestPauseResumeNoDrift(t *testing.T) {
	for _, k := range []int{1, 59, 600, 1499} {
		e := newEngine(1)
		e.Start(at(0))
		e.Recompute(at(k))
		e.Pause(at(k))
		if e.State() != Paused {
			t.Fatalf("k=%d: expected paused", k)
		}
		want := 1500 - k

		e.Start(at(k + 3600))
		e.Recompute(at(k + 3600))
		if e.RemainingSeconds() != want {
			t.Fatalf("k=%d: remaining after resume %d, want %d", k, e.RemainingSeconds(), want)
		}
	}
}

func TestPauseFreezesRemaining(t *testing.T) {
	e := newEngine(1)
	e.Start(at(0))
	e.Pause(at(200))
	e.Recompute(at(900))
	if e.RemainingSeconds() != 1300 {
		t.Fatalf("paused remaining moved: %d", e.RemainingSeconds())
	}
	if _, ok := e.Anchor(); !ok {
		t.Fatal("pause should keep the anchor")
	}
}

func TestPauseOnlyFromRunning(t *testing.T) {
	e := newEngine(1)
	gen := e.Generation()
	if e.Pause(at(10)) != nil || e.State() != Idle || e.Generation() != gen {
		t.Fatal("pause from idle should do nothing")
	}
}

func TestPauseAfterRunOutCompletes(t *testing.T) {
	e := newEngine(1)
	e.Start(at(0))
	tr := e.Pause(at(2000))
	if tr == nil || tr.From != Work {
		t.Fatal("expected the late pause to complete the session")
	}
	if e.State() == Paused {
		t.Fatal("completed session should not be paused")
	}
}

func TestAccumulatedPausedSeconds(t *testing.T) {
	e := newEngine(1)
	e.Start(at(0))
	e.Pause(at(100))
	e.Start(at(160))
	e.Pause(at(200))
	e.Start(at(230))
	if e.AccumulatedPausedSeconds() != 90 {
		t.Fatalf("paused seconds = %d, want 90", e.AccumulatedPausedSeconds())
	}
}

// ============================================================
// Completion cycle
// ============================================================

func TestLongBreakCadence(t *testing.T) {
	e := newEngine(3)
	sec := 0
	for n := 1; n <= 12; n++ {
		tr, end := runOut(t, e, sec)
		sec = end
		if tr.From != Work || tr.CompletedSessions != n {
			t.Fatalf("session %d: unexpected transition %+v", n, tr)
		}
		want := ShortBreak
		if n%4 == 0 {
			want = LongBreak
		}
		if tr.To != want {
			t.Fatalf("after work session %d got %s, want %s", n, tr.To, want)
		}
		if e.RemainingSeconds() != int(Duration(e.Settings(), want)/time.Second) {
			t.Fatalf("break %d has wrong nominal %d", n, e.RemainingSeconds())
		}

		tr, end = runOut(t, e, sec)
		sec = end
		if tr.To != Work || e.CompletedSessions() != n {
			t.Fatalf("break did not return to work: %+v", tr)
		}
	}
}

func TestCompletionClearsAnchor(t *testing.T) {
	e := newEngine(1)
	runOut(t, e, 0)
	if _, ok := e.Anchor(); ok {
		t.Fatal("completion should clear the anchor")
	}
	if e.State() != Idle {
		t.Fatalf("expected idle without auto-start, got %v", e.State())
	}
}

func TestAutoStartRules(t *testing.T) {
	tests := []struct {
		name       string
		tasks      int
		autoBreak  bool
		autoWork   bool
		afterWork  bool
		afterBreak bool
	}{
		{"off", 2, false, false, false, false},
		{"break only", 2, true, false, true, false},
		{"work only", 2, false, true, false, true},
		{"both", 2, true, true, true, true},
		{"no tasks", 0, true, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := settings.Default()
			s.AutoStartBreak = tt.autoBreak
			s.AutoStartWork = tt.autoWork
			e := New(s, openTasks(tt.tasks))

			tr, end := runOut(t, e, 0)
			if tr.AutoStart != tt.afterWork {
				t.Fatalf("after work auto=%v, want %v", tr.AutoStart, tt.afterWork)
			}
			if e.SwitchSession(ShortBreak) != nil {
				t.Fatal("switch failed")
			}
			tr, _ = runOut(t, e, end)
			if tr.AutoStart != tt.afterBreak {
				t.Fatalf("after break auto=%v, want %v", tr.AutoStart, tt.afterBreak)
			}
		})
	}
}

func TestAutoStartGeneration(t *testing.T) {
	s := settings.Default()
	s.AutoStartBreak = true
	e := New(s, openTasks(1))
	tr, end := runOut(t, e, 0)
	if e.State() != Completed {
		t.Fatalf("expected completed pending auto-start, got %v", e.State())
	}
	if e.AutoStart(at(end+1), tr.Generation+1) {
		t.Fatal("mismatched generation must not start")
	}
	if !e.AutoStart(at(end+1), tr.Generation) || e.State() != Running || e.Session() != ShortBreak {
		t.Fatal("pending auto-start did not fire")
	}

	// A reset during the delay cancels the pending start.
	e2 := New(s, openTasks(1))
	tr, end = runOut(t, e2, 0)
	e2.Reset()
	if e2.AutoStart(at(end+1), tr.Generation) {
		t.Fatal("auto-start fired after reset")
	}
}

// ============================================================
// Generation / stale ticks
// ============================================================

func TestStaleTicksDropped(t *testing.T) {
	e := newEngine(1)
	gen := e.Start(at(0))
	if _, ok := e.Tick(at(1), gen); !ok {
		t.Fatal("current tick rejected")
	}
	e.Pause(at(2))
	if _, ok := e.Tick(at(3), gen); ok {
		t.Fatal("tick after pause accepted")
	}
	gen2 := e.Start(at(10))
	e.Reset()
	if _, ok := e.Tick(at(11), gen2); ok {
		t.Fatal("tick after reset accepted")
	}
	if e.RemainingSeconds() != 1500 {
		t.Fatalf("stale tick changed remaining: %d", e.RemainingSeconds())
	}
}

// ============================================================
// Switch / reset / settings
// ============================================================

func TestSwitchSession(t *testing.T) {
	e := newEngine(1)
	e.Start(at(0))
	if err := e.SwitchSession(LongBreak); err != nil {
		t.Fatal(err)
	}
	if e.State() != Idle || e.Session() != LongBreak || e.RemainingSeconds() != 15*60 {
		t.Fatalf("unexpected state after switch: %v %v %d", e.State(), e.Session(), e.RemainingSeconds())
	}
	if _, ok := e.Anchor(); ok {
		t.Fatal("switch should clear the anchor")
	}
	if err := e.SwitchSession("nap"); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReset(t *testing.T) {
	e := newEngine(1)
	e.Start(at(0))
	e.Pause(at(300))
	e.Reset()
	if e.State() != Idle || e.RemainingSeconds() != 1500 {
		t.Fatalf("reset left %v %d", e.State(), e.RemainingSeconds())
	}
	e.Start(at(1000))
	anchor, _ := e.Anchor()
	if !anchor.Equal(at(1000)) {
		t.Fatal("start after reset should be fresh")
	}
}

func TestSetSettings(t *testing.T) {
	e := newEngine(1)
	s := settings.Default()
	s.WorkDuration = 50
	e.SetSettings(s)
	if e.RemainingSeconds() != 3000 {
		t.Fatalf("idle engine should adopt new length, got %d", e.RemainingSeconds())
	}
	e.Start(at(0))
	s.WorkDuration = 10
	e.SetSettings(s)
	e.Recompute(at(60))
	if e.RemainingSeconds() != 2940 {
		t.Fatalf("running session should keep its length, got %d", e.RemainingSeconds())
	}
}

func TestParseSessionType(t *testing.T) {
	for in, want := range map[string]SessionType{"work": Work, "short": ShortBreak, "long-break": LongBreak} {
		got, err := ParseSessionType(in)
		if err != nil || got != want {
			t.Errorf("ParseSessionType(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSessionType("lunch"); err == nil {
		t.Error("expected error")
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{1500, "25:00"},
		{-4, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.in); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProgress(t *testing.T) {
	e := newEngine(1)
	if e.Progress() != 0 {
		t.Fatal("fresh session should have no progress")
	}
	e.Start(at(0))
	e.Recompute(at(750))
	if e.Progress() != 0.5 {
		t.Fatalf("progress = %v", e.Progress())
	}
}
