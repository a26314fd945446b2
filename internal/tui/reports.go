package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/timefocus/internal/app"
	"github.com/sadopc/timefocus/internal/timer"
)

type reportsModel struct {
	app    *app.App
	width  int
	height int

	stats app.Stats
	err   error

	chart barchart.Model
}

func newReportsModel(a *app.App) reportsModel {
	return reportsModel{
		app:   a,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	r.buildChart()
}

type reportsDataMsg struct {
	stats app.Stats
	err   error
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		st, err := r.app.Stats()
		return reportsDataMsg{stats: st, err: err}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	if msg, ok := msg.(reportsDataMsg); ok {
		r.stats = msg.stats
		r.err = msg.err
		r.buildChart()
	}
	return r, nil
}

// days lists the seven days the report covers, oldest first, as the
// session log stores them.
func (r reportsModel) days() []time.Time {
	now := r.app.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, 7)
	for i := range out {
		out[i] = today.AddDate(0, 0, i-6)
	}
	return out
}

func (r *reportsModel) buildChart() {
	chartWidth := max(20, r.width-8)
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, d := range r.days() {
		date := d.Format("2006-01-02")

		var values []barchart.BarValue
		for _, s := range r.stats.Daily {
			if s.Date != date {
				continue
			}
			st := timer.SessionType(s.SessionType)
			values = append(values, barchart.BarValue{
				Name:  sessionLabel(st),
				Value: float64(s.TotalSeconds) / 60,
				Style: sessionStyle(st),
			})
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  d.Format("Mon 02"),
			Values: values,
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4
	days := r.days()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s to %s", days[0].Format("Jan 02"), days[len(days)-1].Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("Reports"), "  ", dateLabel)

	if r.err != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", errorStyle.Render("  "+r.err.Error())),
		)
	}

	summary := fmt.Sprintf("  Today: %s  (%d sessions)    Last 7 days: %s  (%d sessions)",
		highlightStyle.Render(formatHours(r.stats.TodayWorkSeconds)), r.stats.TodaySessions,
		highlightStyle.Render(formatHours(r.stats.WeekWorkSeconds)), r.stats.WeekSessions)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", summary, "", r.chart.View(), "", r.renderLegend(), "", r.renderSummaryTable(w),
		),
	)
}

func (r reportsModel) renderSummaryTable(w int) string {
	if len(r.stats.Daily) == 0 {
		return mutedStyle.Render("  No finished sessions in the last 7 days")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %-14s %10s %8s", "Date", "Session", "Minutes", "Count")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 48))))

	for _, s := range r.stats.Daily {
		st := timer.SessionType(s.SessionType)
		dot := sessionStyle(st).Render("●")
		rows = append(rows, fmt.Sprintf("  %-12s %s %-12s %10d %8d",
			s.Date, dot, sessionLabel(st), s.TotalSeconds/60, s.Count,
		))
	}
	return strings.Join(rows, "\n")
}

func (r reportsModel) renderLegend() string {
	var items []string
	for _, t := range timer.SessionTypes {
		dot := sessionStyle(t).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, sessionLabel(t)))
	}
	return "  " + strings.Join(items, "  ")
}
