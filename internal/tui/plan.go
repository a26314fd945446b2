package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/timefocus/internal/app"
	"github.com/sadopc/timefocus/internal/schedule"
)

// planModel shows the queue projected onto the clock.
type planModel struct {
	app    *app.App
	width  int
	height int

	formActive bool
	form       *huh.Form
	formStart  *string
}

func newPlanModel(a *app.App) planModel {
	start := ""
	return planModel{app: a, formStart: &start}
}

func (p *planModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p planModel) update(msg tea.Msg) (planModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.StartNow) {
		return p.showStartForm()
	}
	return p, nil
}

func (p planModel) showStartForm() (planModel, tea.Cmd) {
	*p.formStart = p.app.StartTime().String()

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start time").
				Description(`HH:MM, or "now"`).
				Value(p.formStart).
				Validate(validStart),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func validStart(s string) error {
	if strings.EqualFold(strings.TrimSpace(s), "now") {
		return nil
	}
	_, err := schedule.ParseTimeOfDay(s)
	return err
}

func (p planModel) updateForm(msg tea.Msg) (planModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		p.formActive = false
		p.form = nil
		return p, nil
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}
	if p.form.State != huh.StateCompleted {
		return p, cmd
	}
	p.formActive = false

	var (
		start schedule.TimeOfDay
		err   error
	)
	if in := strings.TrimSpace(*p.formStart); strings.EqualFold(in, "now") {
		start, err = p.app.StartNow()
	} else if start, err = schedule.ParseTimeOfDay(in); err == nil {
		err = p.app.SetStartTime(start)
	}
	if err != nil {
		return p, func() tea.Msg { return errStatus(err) }
	}
	return p, status("Plan starts at " + start.String())
}

func (p planModel) view() string {
	w := p.width - 4
	title := titleStyle.Render("Plan")

	if p.formActive && p.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View()),
		)
	}

	sched := p.app.Schedule()
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		title, "  ", mutedStyle.Render("starting "+sched.Start.Format("15:04")))

	if len(sched.Entries) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No active tasks. Add some in the Tasks view."),
			"",
			mutedStyle.Render("  t: start time"),
		))
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-13s %-40s %s", "#", "When", "Task", "Sessions")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 68))))
	for i, e := range sched.Entries {
		rows = append(rows, fmt.Sprintf("  %-3d %s %-40s %d",
			i+1, highlightStyle.Render(fmt.Sprintf("%-13s", e.Span)), truncate(e.Description, 40), e.TotalSessions))
	}

	t := sched.Totals
	totals := fmt.Sprintf("  Work %s  Breaks %s  Total %s  %s",
		schedule.FormatMinutes(t.WorkMinutes),
		schedule.FormatMinutes(t.BreakMinutes),
		schedule.FormatMinutes(t.TotalMinutes),
		successStyle.Render("Done at "+sched.Completion.Format("15:04")))

	pattern := "  " + renderPattern(schedule.Pattern(p.app.Settings(), min(t.Sessions, schedule.PreviewSessions)))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		strings.Join(rows, "\n"),
		"",
		totals,
		"",
		p.renderChart(sched),
		"",
		pattern,
		"",
		mutedStyle.Render("  t: start time  E: export"),
	))
}

// renderChart draws each active task's work minutes.
func (p planModel) renderChart(sched schedule.Schedule) string {
	height := 8
	if p.height > 36 {
		height = 12
	}
	chart := barchart.New(max(20, p.width-8), height)

	work := p.app.Settings().WorkDuration
	bars := make([]barchart.BarData, 0, len(sched.Entries))
	for i, e := range sched.Entries {
		bars = append(bars, barchart.BarData{
			Label: fmt.Sprintf("#%d", i+1),
			Values: []barchart.BarValue{{
				Name:  e.Description,
				Value: float64(e.TotalSessions * work),
				Style: lipgloss.NewStyle().Foreground(colorAccent),
			}},
		})
	}
	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}
