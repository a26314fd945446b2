package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sadopc/timefocus/internal/app"
	"github.com/sadopc/timefocus/internal/schedule"
	"github.com/sadopc/timefocus/internal/timer"
)

var titleCaser = cases.Title(language.English)

// sessionLabel is the display form of t, e.g. "Short Break".
func sessionLabel(t timer.SessionType) string {
	return titleCaser.String(t.Label())
}

// pomodoroModel is the timer view. It holds no timer state of its own; the
// app's engine is the only source of truth.
type pomodoroModel struct {
	app    *app.App
	ticker *ticker
	width  int
	height int

	bar progress.Model
}

func newPomodoroModel(a *app.App, t *ticker) pomodoroModel {
	return pomodoroModel{
		app:    a,
		ticker: t,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (p *pomodoroModel) setSize(w, h int) {
	p.width = w
	p.height = h
	p.bar.Width = max(10, min(w-16, 60))
}

func (p pomodoroModel) update(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch {
	case key.Matches(km, keys.Start):
		p.app.StartTimer()
		return p, p.ticker.ensure()
	case key.Matches(km, keys.Pause):
		return p.toggle()
	case key.Matches(km, keys.Reset):
		p.app.ResetTimer()
		return p, status("Timer reset")
	case key.Matches(km, keys.Switch):
		next := nextSession(p.app.TimerView().Session)
		if err := p.app.SwitchSession(next); err != nil {
			return p, func() tea.Msg { return errStatus(err) }
		}
		return p, status("Switched to " + sessionLabel(next))
	}
	return p, nil
}

// toggle starts an idle or paused timer and pauses a running one. A pause
// that finds the session already over completes it instead.
func (p pomodoroModel) toggle() (pomodoroModel, tea.Cmd) {
	if p.app.TimerView().State == timer.Running {
		if tr := p.app.PauseTimer(); tr != nil {
			return p, p.ticker.followUp(tr)
		}
		return p, nil
	}
	p.app.StartTimer()
	return p, p.ticker.ensure()
}

func nextSession(t timer.SessionType) timer.SessionType {
	types := timer.SessionTypes
	for i, s := range types {
		if s == t {
			return types[(i+1)%len(types)]
		}
	}
	return timer.Work
}

func (p pomodoroModel) view() string {
	w := p.width - 4
	st := p.app.TimerView()
	s := p.app.Settings()

	title := titleStyle.Render("Pomodoro Timer")

	style := sessionStyle(st.Session).Bold(true)
	clock := timer.FormatClock(st.RemainingSeconds)

	var timeDisplay, indicator string
	switch st.State {
	case timer.Running:
		timeDisplay = style.Width(w - 6).Align(lipgloss.Center).Render(clock)
		indicator = successStyle.Render("●  RUNNING")
	case timer.Paused:
		timeDisplay = timerPausedStyle.Width(w - 6).Render(clock)
		indicator = warningStyle.Render("⏸  PAUSED")
	case timer.Completed:
		timeDisplay = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render("Done!")
		indicator = mutedStyle.Render("Starting next session…")
	default:
		timeDisplay = timerStyle.Width(w - 6).Render(clock)
		indicator = mutedStyle.Render("Press space to begin")
	}

	phaseLabel := style.Render(strings.ToUpper(sessionLabel(st.Session)))

	taskLine := mutedStyle.Render("No active tasks")
	if st.CurrentTask != "" {
		taskLine = highlightStyle.Render(st.CurrentTask)
		if st.Session.IsBreak() {
			taskLine = mutedStyle.Render("Up next: ") + taskLine
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		phaseLabel,
		timeDisplay,
		indicator,
		"",
		p.bar.ViewAs(st.Progress),
		"",
		renderCycle(st.CompletedSessions, s.LongBreakInterval),
		"",
		taskLine,
	)

	controls := mutedStyle.Render("space: start/pause  r: reset  w: switch session")
	if st.State == timer.Paused {
		controls = mutedStyle.Render("space: resume  r: reset  w: switch session")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

// renderCycle shows progress toward the next long break.
func renderCycle(completed, every int) string {
	if every < 1 {
		every = 1
	}
	done := completed % every
	if completed > 0 && done == 0 {
		done = every
	}
	var parts []string
	for i := 0; i < every; i++ {
		if i < done {
			parts = append(parts, successStyle.Render("●"))
		} else {
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  %d completed", completed))
	return strings.Join(parts, " ") + counter
}

// renderPattern previews the upcoming work and break slots.
func renderPattern(slots []schedule.Slot) string {
	var parts []string
	for _, sl := range slots {
		switch sl.Kind {
		case schedule.SlotWork:
			parts = append(parts, accentStyle.Render(sl.Label()))
		case schedule.SlotLongBreak:
			parts = append(parts, highlightStyle.Render(sl.Label()))
		default:
			parts = append(parts, successStyle.Render(sl.Label()))
		}
	}
	return strings.Join(parts, mutedStyle.Render(" → "))
}
