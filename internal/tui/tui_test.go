package tui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/timefocus/internal/app"
	"github.com/sadopc/timefocus/internal/logging"
	"github.com/sadopc/timefocus/internal/schedule"
	"github.com/sadopc/timefocus/internal/settings"
	"github.com/sadopc/timefocus/internal/store"
	"github.com/sadopc/timefocus/internal/timer"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestApp(t *testing.T) (*app.App, *testClock) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	clock := &testClock{now: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
	a, err := app.Open(app.Options{
		Backend: s,
		Logger:  logging.Discard(),
		Now:     clock.Now,
	})
	if err != nil {
		t.Fatalf("open app: %v", err)
	}
	return a, clock
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(m App) App {
	model, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model.(App)
}

// ============================================================
// Ticker
// ============================================================

func TestTickerEnsure(t *testing.T) {
	a, _ := newTestApp(t)
	tk := &ticker{app: a}

	if cmd := tk.ensure(); cmd != nil {
		t.Fatal("idle timer should not start a tick chain")
	}

	gen := a.StartTimer()
	if cmd := tk.ensure(); cmd == nil {
		t.Fatal("running timer should start a tick chain")
	}
	if tk.gen != gen {
		t.Fatalf("expected chain for generation %d, got %d", gen, tk.gen)
	}
	if cmd := tk.ensure(); cmd != nil {
		t.Fatal("second ensure must not start another chain")
	}
}

func TestTickerReschedules(t *testing.T) {
	a, clock := newTestApp(t)
	tk := &ticker{app: a}
	gen := a.StartTimer()
	tk.ensure()

	clock.Advance(time.Minute)
	if cmd := tk.tick(tickMsg{gen: gen}); cmd == nil {
		t.Fatal("live tick should reschedule itself")
	}
	if got := a.TimerView().RemainingSeconds; got != 24*60 {
		t.Fatalf("expected 1440s remaining, got %d", got)
	}
}

func TestTickerStaleTick(t *testing.T) {
	a, _ := newTestApp(t)
	tk := &ticker{app: a}
	gen := a.StartTimer()
	tk.ensure()

	a.PauseTimer()
	if cmd := tk.tick(tickMsg{gen: gen}); cmd != nil {
		t.Fatal("stale tick must end its chain")
	}
	if tk.gen != 0 {
		t.Fatalf("chain should be cleared, got gen %d", tk.gen)
	}

	// Resuming starts a fresh chain.
	a.StartTimer()
	if cmd := tk.ensure(); cmd == nil {
		t.Fatal("resume should start a new chain")
	}
}

func TestTickerCompletionWithoutAutoStart(t *testing.T) {
	a, clock := newTestApp(t)
	tk := &ticker{app: a}
	if _, err := a.AddTask("Write", 1); err != nil {
		t.Fatal(err)
	}
	gen := a.StartTimer()
	tk.ensure()

	clock.Advance(25 * time.Minute)
	if cmd := tk.tick(tickMsg{gen: gen}); cmd != nil {
		t.Fatal("no follow-up expected without auto-start")
	}
	st := a.TimerView()
	if st.State != timer.Idle || st.Session != timer.ShortBreak {
		t.Fatalf("expected idle short break, got %v %v", st.State, st.Session)
	}
	if st.CompletedSessions != 1 {
		t.Fatalf("expected 1 completed session, got %d", st.CompletedSessions)
	}
}

func TestTickerAutoStart(t *testing.T) {
	a, clock := newTestApp(t)
	tk := &ticker{app: a}
	s := settings.Default()
	s.AutoStartBreak = true
	if err := a.UpdateSettings(s); err != nil {
		t.Fatal(err)
	}
	if _, err := a.AddTask("Write", 2); err != nil {
		t.Fatal(err)
	}
	gen := a.StartTimer()
	tk.ensure()

	clock.Advance(25 * time.Minute)
	if cmd := tk.tick(tickMsg{gen: gen}); cmd == nil {
		t.Fatal("completion should schedule the automatic start")
	}
	st := a.TimerView()
	if st.State != timer.Completed {
		t.Fatalf("expected completed state, got %v", st.State)
	}

	// An auto-start from an older run is ignored.
	if cmd := tk.autoStart(autoStartMsg{gen: gen}); cmd != nil {
		t.Fatal("stale auto-start must be ignored")
	}
	if cmd := tk.autoStart(autoStartMsg{gen: st.Generation}); cmd == nil {
		t.Fatal("auto-start should begin a tick chain")
	}
	st = a.TimerView()
	if st.State != timer.Running || st.Session != timer.ShortBreak {
		t.Fatalf("expected running short break, got %v %v", st.State, st.Session)
	}
}

func TestTickerRecompute(t *testing.T) {
	a, clock := newTestApp(t)
	tk := &ticker{app: a}
	a.StartTimer()
	tk.ensure()

	// The terminal was hidden past the end of the session.
	clock.Advance(40 * time.Minute)
	tk.recompute()
	st := a.TimerView()
	if st.State != timer.Idle || st.Session != timer.ShortBreak {
		t.Fatalf("expected completed work session, got %v %v", st.State, st.Session)
	}
	if tk.gen != 0 {
		t.Fatalf("chain should be cleared, got gen %d", tk.gen)
	}
}

func TestTickerPendingAfterRestore(t *testing.T) {
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	clock := &testClock{now: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
	open := func() *app.App {
		a, err := app.Open(app.Options{Backend: s, Logger: logging.Discard(), Now: clock.Now})
		if err != nil {
			t.Fatalf("open app: %v", err)
		}
		return a
	}

	a := open()
	cfg := settings.Default()
	cfg.AutoStartBreak = true
	if err := a.UpdateSettings(cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := a.AddTask("Write", 2); err != nil {
		t.Fatal(err)
	}
	a.StartTimer()
	clock.Advance(26 * time.Minute)

	b := open()
	tk := &ticker{app: b}
	if cmd := tk.pending(); cmd == nil {
		t.Fatal("restore completion should schedule the automatic start")
	}
	if cmd := NewApp(b).Init(); cmd == nil {
		t.Fatal("Init should return commands")
	}

	gen, _ := b.PendingAutoStart()
	clock.Advance(timer.AutoStartDelay)
	if cmd := tk.autoStart(autoStartMsg{gen: gen}); cmd == nil {
		t.Fatal("auto-start should begin a tick chain")
	}
	if st := b.TimerView(); st.State != timer.Running || st.Session != timer.ShortBreak {
		t.Fatalf("expected running short break, got %v %v", st.State, st.Session)
	}
	if cmd := tk.pending(); cmd != nil {
		t.Fatal("nothing should be pending once the break runs")
	}
}

// ============================================================
// Timer view
// ============================================================

func TestPomodoroToggle(t *testing.T) {
	a, _ := newTestApp(t)
	p := newPomodoroModel(a, &ticker{app: a})
	p.setSize(100, 30)

	p, cmd := p.update(tea.KeyMsg{Type: tea.KeySpace})
	if a.TimerView().State != timer.Running {
		t.Fatal("space should start the timer")
	}
	if cmd == nil {
		t.Fatal("start should return a tick command")
	}

	p, _ = p.update(tea.KeyMsg{Type: tea.KeySpace})
	if a.TimerView().State != timer.Paused {
		t.Fatal("space should pause a running timer")
	}
	if !strings.Contains(p.view(), "PAUSED") {
		t.Error("paused view should say so")
	}

	p.update(runeKey("r"))
	if st := a.TimerView(); st.State != timer.Idle || st.RemainingSeconds != 25*60 {
		t.Fatalf("reset should refill the session, got %v %d", st.State, st.RemainingSeconds)
	}
}

func TestPomodoroSwitch(t *testing.T) {
	a, _ := newTestApp(t)
	p := newPomodoroModel(a, &ticker{app: a})
	p.setSize(100, 30)

	p.update(runeKey("w"))
	if got := a.TimerView().Session; got != timer.ShortBreak {
		t.Fatalf("expected short break, got %v", got)
	}
	p.update(runeKey("w"))
	if got := a.TimerView().Session; got != timer.LongBreak {
		t.Fatalf("expected long break, got %v", got)
	}
	if v := p.view(); !strings.Contains(v, "15:00") || !strings.Contains(v, "LONG BREAK") {
		t.Errorf("unexpected view:\n%s", v)
	}
}

func TestPomodoroViewShowsTask(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.AddTask("Write report", 2); err != nil {
		t.Fatal(err)
	}
	p := newPomodoroModel(a, &ticker{app: a})
	p.setSize(100, 30)
	v := p.view()
	if !strings.Contains(v, "Write report") || !strings.Contains(v, "25:00") {
		t.Errorf("unexpected view:\n%s", v)
	}
}

func TestNextSession(t *testing.T) {
	tests := []struct {
		in   timer.SessionType
		want timer.SessionType
	}{
		{timer.Work, timer.ShortBreak},
		{timer.ShortBreak, timer.LongBreak},
		{timer.LongBreak, timer.Work},
		{timer.SessionType("nap"), timer.Work},
	}
	for _, tt := range tests {
		if got := nextSession(tt.in); got != tt.want {
			t.Errorf("nextSession(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSessionLabel(t *testing.T) {
	if got := sessionLabel(timer.ShortBreak); got != "Short Break" {
		t.Errorf("got %q", got)
	}
	if got := sessionLabel(timer.Work); got != "Work" {
		t.Errorf("got %q", got)
	}
}

func TestRenderCycle(t *testing.T) {
	tests := []struct {
		completed, every int
		filled           int
	}{
		{0, 4, 0},
		{1, 4, 1},
		{4, 4, 4},
		{5, 4, 1},
		{3, 0, 1},
	}
	for _, tt := range tests {
		out := renderCycle(tt.completed, tt.every)
		if got := strings.Count(out, "●"); got != tt.filled {
			t.Errorf("renderCycle(%d, %d) filled %d, want %d", tt.completed, tt.every, got, tt.filled)
		}
	}
}

func TestRenderPattern(t *testing.T) {
	out := renderPattern(schedule.Pattern(settings.Default(), 4))
	for _, want := range []string{"W25", "S5", "→"} {
		if !strings.Contains(out, want) {
			t.Errorf("pattern %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "L15") {
		t.Errorf("four sessions should not reach a long break: %q", out)
	}
}

// ============================================================
// Tasks view
// ============================================================

func TestTasksListKeys(t *testing.T) {
	a, _ := newTestApp(t)
	for _, d := range []string{"One", "Two", "Three"} {
		if _, err := a.AddTask(d, 1); err != nil {
			t.Fatal(err)
		}
	}
	m := newTasksModel(a)
	m.setSize(120, 30)

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.update(runeKey("g"))
	if got := a.Tasks()[0].Description; got != "Two" {
		t.Fatalf("expected Two on top, got %q", got)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor should follow the task, got %d", m.cursor)
	}

	m, _ = m.update(runeKey("x"))
	if !a.Tasks()[0].Completed {
		t.Fatal("x should complete the task")
	}

	m, _ = m.update(runeKey("G"))
	if got := a.Tasks()[2].Description; got != "Two" {
		t.Fatalf("expected Two at the bottom, got %q", got)
	}

	m, _ = m.update(runeKey("d"))
	if len(a.Tasks()) != 2 {
		t.Fatalf("expected 2 tasks after delete, got %d", len(a.Tasks()))
	}
	if m.cursor != 1 {
		t.Fatalf("cursor should clamp to the last task, got %d", m.cursor)
	}
}

func TestTasksBreakdownAndFavorite(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.AddTask("Draft", 3); err != nil {
		t.Fatal(err)
	}
	m := newTasksModel(a)
	m.setSize(120, 30)

	m, _ = m.update(runeKey("f"))
	if !a.Favorites().Contains("Draft") {
		t.Fatal("f should add a favorite")
	}
	m, _ = m.update(runeKey("b"))
	if len(a.Tasks()) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(a.Tasks()))
	}
	if !strings.Contains(m.view(), "Draft (Part 1)") {
		t.Errorf("view should list the parts:\n%s", m.view())
	}
}

func TestTasksFavoritesPanel(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.ToggleFavorite("Inbox zero"); err != nil {
		t.Fatal(err)
	}
	m := newTasksModel(a)
	m.setSize(120, 30)

	m, _ = m.update(runeKey("F"))
	if !m.capturing() {
		t.Fatal("favorites panel should capture keys")
	}
	if !strings.Contains(m.view(), "Inbox zero") {
		t.Errorf("panel should list favorites:\n%s", m.view())
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.showFavorites {
		t.Fatal("queueing should close the panel")
	}
	tasks := a.Tasks()
	if len(tasks) != 1 || tasks[0].Description != "Inbox zero" || tasks[0].SessionCount != 1 {
		t.Fatalf("unexpected queue %+v", tasks)
	}
}

func TestTasksFormCancel(t *testing.T) {
	a, _ := newTestApp(t)
	m := newTasksModel(a)
	m.setSize(120, 30)

	m, _ = m.update(runeKey("n"))
	if !m.formActive || !m.capturing() {
		t.Fatal("n should open the task form")
	}
	if !strings.Contains(m.view(), "New Task") {
		t.Errorf("form title missing:\n%s", m.view())
	}
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive {
		t.Fatal("esc should close the form")
	}
	if len(a.Tasks()) != 0 {
		t.Fatal("cancelled form must not add a task")
	}
}

func TestTasksImportText(t *testing.T) {
	a, _ := newTestApp(t)
	m := newTasksModel(a)

	msg := m.importText("Call client [2]\nReview PR 1\n--\n")()
	st, ok := msg.(statusMsg)
	if !ok || st.isError {
		t.Fatalf("unexpected message %#v", msg)
	}
	if !strings.Contains(st.text, "Imported 2 tasks") || !strings.Contains(st.text, "1 lines skipped") {
		t.Errorf("unexpected status %q", st.text)
	}

	msg = m.importText("--\n")()
	if st := msg.(statusMsg); !st.isError {
		t.Errorf("expected error status, got %q", st.text)
	}
}

func TestTasksEmptyView(t *testing.T) {
	a, _ := newTestApp(t)
	m := newTasksModel(a)
	m.setSize(120, 30)
	if !strings.Contains(m.view(), "No tasks yet") {
		t.Errorf("unexpected view:\n%s", m.view())
	}
}

// ============================================================
// Plan, reports and settings views
// ============================================================

func TestPlanView(t *testing.T) {
	a, _ := newTestApp(t)
	start, _ := schedule.ParseTimeOfDay("10:00")
	if err := a.SetStartTime(start); err != nil {
		t.Fatal(err)
	}
	if _, err := a.AddTask("A", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := a.AddTask("B", 1); err != nil {
		t.Fatal(err)
	}

	p := newPlanModel(a)
	p.setSize(120, 40)
	v := p.view()
	for _, want := range []string{"10:00–10:50", "10:55–11:20", "Done at 11:20", "W25"} {
		if !strings.Contains(v, want) {
			t.Errorf("plan view missing %q:\n%s", want, v)
		}
	}
}

func TestPlanStartForm(t *testing.T) {
	a, _ := newTestApp(t)
	p := newPlanModel(a)
	p.setSize(120, 40)

	p, _ = p.update(runeKey("t"))
	if !p.formActive {
		t.Fatal("t should open the start time form")
	}
	if *p.formStart != a.StartTime().String() {
		t.Errorf("form should be prefilled, got %q", *p.formStart)
	}
	p, _ = p.update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.formActive {
		t.Fatal("esc should close the form")
	}
}

func TestValidStart(t *testing.T) {
	for _, ok := range []string{"now", "NOW", "09:30", "23:59"} {
		if err := validStart(ok); err != nil {
			t.Errorf("validStart(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "9am", "25:00"} {
		if err := validStart(bad); err == nil {
			t.Errorf("validStart(%q) should fail", bad)
		}
	}
}

func TestReportsRefresh(t *testing.T) {
	a, clock := newTestApp(t)
	r := newReportsModel(a)
	r.setSize(120, 40)

	gen := a.StartTimer()
	clock.Advance(25 * time.Minute)
	a.Tick(gen)

	r, _ = r.update(r.refresh()())
	if r.err != nil {
		t.Fatal(r.err)
	}
	if r.stats.TodaySessions != 1 {
		t.Fatalf("expected 1 session today, got %d", r.stats.TodaySessions)
	}
	if v := r.view(); !strings.Contains(v, "0.4h") || !strings.Contains(v, "Work") {
		t.Errorf("unexpected report:\n%s", v)
	}
}

func TestSettingsView(t *testing.T) {
	a, _ := newTestApp(t)
	s := newSettingsModel(a)
	s.setSize(120, 40)

	v := s.view()
	for _, want := range []string{"25 min", "4 sessions", "W25", "L15"} {
		if !strings.Contains(v, want) {
			t.Errorf("settings view missing %q:\n%s", want, v)
		}
	}

	s, _ = s.update(tea.KeyMsg{Type: tea.KeyEnter})
	if !s.formActive {
		t.Fatal("enter should open the form")
	}
	if *s.work != "25" || !*s.notifications {
		t.Errorf("form should be prefilled, got %q %v", *s.work, *s.notifications)
	}
	*s.work = "50"
	*s.autoBreak = true
	got := s.formValues()
	if got.WorkDuration != 50 || !got.AutoStartBreak || got.LongBreakInterval != 4 {
		t.Errorf("unexpected form values %+v", got)
	}
}

func TestSettingsReset(t *testing.T) {
	a, _ := newTestApp(t)
	cur := a.Settings()
	cur.WorkDuration = 45
	if err := a.UpdateSettings(cur); err != nil {
		t.Fatal(err)
	}
	s := newSettingsModel(a)
	s, _ = s.update(runeKey("r"))
	if a.Settings().WorkDuration != 25 || s.current.WorkDuration != 25 {
		t.Fatal("r should restore the defaults")
	}
}

func TestIntInRange(t *testing.T) {
	v := intInRange(1, 10)
	for _, ok := range []string{"1", " 10 ", "5"} {
		if err := v(ok); err != nil {
			t.Errorf("%q: %v", ok, err)
		}
	}
	for _, bad := range []string{"0", "11", "x", ""} {
		if err := v(bad); err == nil {
			t.Errorf("%q should fail", bad)
		}
	}
}

// ============================================================
// Root model
// ============================================================

func TestNewApp(t *testing.T) {
	a, _ := newTestApp(t)
	m := NewApp(a)
	if m.activeView != viewTimer {
		t.Errorf("expected timer view, got %d", m.activeView)
	}
	if m.isFormActive() {
		t.Error("no form should be active")
	}
}

func TestAppLoadingState(t *testing.T) {
	a, _ := newTestApp(t)
	if v := NewApp(a).View(); v != "Loading..." {
		t.Errorf("expected loading view, got %q", v)
	}
}

func TestAppViewSwitching(t *testing.T) {
	a, _ := newTestApp(t)
	m := sized(NewApp(a))

	for i, k := range []string{"1", "2", "3", "4", "5"} {
		model, _ := m.Update(runeKey(k))
		m = model.(App)
		if m.activeView != viewState(i) {
			t.Errorf("key %s: expected view %d, got %d", k, i, m.activeView)
		}
	}
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.(App).activeView != viewTimer {
		t.Error("tab should wrap around to the timer view")
	}
}

func TestAppRenderHeader(t *testing.T) {
	a, _ := newTestApp(t)
	m := sized(NewApp(a))
	header := m.renderHeader()
	if !strings.Contains(header, "timefocus") {
		t.Error("header should contain the app name")
	}
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Errorf("header missing tab %q", name)
		}
	}
}

func TestAppFooterShowsRunningTimer(t *testing.T) {
	a, _ := newTestApp(t)
	m := sized(NewApp(a))
	a.StartTimer()
	if !strings.Contains(m.renderFooter(), "25:00") {
		t.Errorf("footer should show the countdown:\n%s", m.renderFooter())
	}
}

func TestAppStatusMessages(t *testing.T) {
	a, _ := newTestApp(t)
	m := sized(NewApp(a))

	model, _ := m.Update(statusMsg{text: "hello"})
	m = model.(App)
	if m.status != "hello" || m.isError {
		t.Fatalf("unexpected status %q %v", m.status, m.isError)
	}

	model, _ = m.Update(appEventMsg{event: app.Event{
		Kind:   app.SessionCompleted,
		Notice: &timer.Notice{Title: "Work Session Complete!", Body: "Time for a short break!"},
	}})
	m = model.(App)
	if !strings.Contains(m.status, "Time for a short break!") {
		t.Errorf("completion notice should reach the status line, got %q", m.status)
	}
}

func TestAppRestoreMessage(t *testing.T) {
	s, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	clock := &testClock{now: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
	open := func() *app.App {
		a, err := app.Open(app.Options{Backend: s, Logger: logging.Discard(), Now: clock.Now})
		if err != nil {
			t.Fatal(err)
		}
		return a
	}

	open().StartTimer()
	clock.Advance(time.Minute)
	m := NewApp(open())
	if m.status != "Timer resumed from background" {
		t.Errorf("unexpected status %q", m.status)
	}
	if cmd := m.Init(); cmd == nil {
		t.Error("Init should resume ticking")
	}
}

func TestAppExportPicker(t *testing.T) {
	a, _ := newTestApp(t)
	m := sized(NewApp(a))

	model, _ := m.Update(runeKey("E"))
	m = model.(App)
	if !m.exportPicking {
		t.Fatal("E should open the export picker")
	}
	if v := m.View(); !strings.Contains(v, "YAML") {
		t.Errorf("picker should list formats:\n%s", v)
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.(App).exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestViewNames(t *testing.T) {
	expected := []string{"Timer", "Tasks", "Plan", "Reports", "Settings"}
	if len(viewNames) != len(expected) {
		t.Fatalf("expected %d view names, got %d", len(expected), len(viewNames))
	}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Errorf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "0.0h"},
		{1500, "0.4h"},
		{3600, "1.0h"},
		{5400, "1.5h"},
	}
	for _, tt := range tests {
		if got := formatHours(tt.secs); got != tt.want {
			t.Errorf("formatHours(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestKeyMapHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp should not be empty")
	}
	for i, group := range keys.FullHelp() {
		if len(group) == 0 {
			t.Errorf("FullHelp group %d is empty", i)
		}
	}
}

func TestBellNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := BellNotifier{W: &buf}
	if err := n.Notify("t", "b", false); err != nil {
		t.Fatal(err)
	}
	if err := n.Notify("t", "b", true); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\a" {
		t.Errorf("expected a single bell, got %q", buf.String())
	}
}

func TestSessionColor(t *testing.T) {
	if sessionColor(timer.ShortBreak) != colorSuccess || sessionColor(timer.LongBreak) != colorHighlight {
		t.Error("breaks should use their own colors")
	}
	if sessionColor(timer.SessionType("nap")) != colorAccent {
		t.Error("unknown session should fall back to the work color")
	}
}
