package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/timefocus/internal/app"
	"github.com/sadopc/timefocus/internal/schedule"
	"github.com/sadopc/timefocus/internal/settings"
)

type settingsModel struct {
	app    *app.App
	width  int
	height int

	current    settings.Settings
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	work          *string
	shortBreak    *string
	longBreak     *string
	longEvery     *string
	notifications *bool
	sound         *bool
	autoWork      *bool
	autoBreak     *bool
}

func newSettingsModel(a *app.App) settingsModel {
	w, sb, lb, le := "", "", "", ""
	n, snd, aw, ab := false, false, false, false
	return settingsModel{
		app:           a,
		current:       a.Settings(),
		work:          &w,
		shortBreak:    &sb,
		longBreak:     &lb,
		longEvery:     &le,
		notifications: &n,
		sound:         &snd,
		autoWork:      &aw,
		autoBreak:     &ab,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

// load re-reads the settings unless the user is editing them.
func (s *settingsModel) load() {
	if !s.formActive {
		s.current = s.app.Settings()
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		case key.Matches(msg, keys.Reset):
			if err := s.app.ResetSettings(); err != nil {
				return s, func() tea.Msg { return errStatus(err) }
			}
			s.current = s.app.Settings()
			return s, status("Settings restored to defaults")
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	cur := s.app.Settings()
	*s.work = strconv.Itoa(cur.WorkDuration)
	*s.shortBreak = strconv.Itoa(cur.ShortBreakDuration)
	*s.longBreak = strconv.Itoa(cur.LongBreakDuration)
	*s.longEvery = strconv.Itoa(cur.LongBreakInterval)
	*s.notifications = cur.NotificationsEnabled
	*s.sound = cur.SoundEnabled
	*s.autoWork = cur.AutoStartWork
	*s.autoBreak = cur.AutoStartBreak

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(fmt.Sprintf("Work (min, %d-%d)", settings.MinWork, settings.MaxWork)).
				Value(s.work).Validate(intInRange(settings.MinWork, settings.MaxWork)),
			huh.NewInput().Title(fmt.Sprintf("Short break (min, %d-%d)", settings.MinShortBreak, settings.MaxShortBreak)).
				Value(s.shortBreak).Validate(intInRange(settings.MinShortBreak, settings.MaxShortBreak)),
			huh.NewInput().Title(fmt.Sprintf("Long break (min, %d-%d)", settings.MinLongBreak, settings.MaxLongBreak)).
				Value(s.longBreak).Validate(intInRange(settings.MinLongBreak, settings.MaxLongBreak)),
			huh.NewInput().Title(fmt.Sprintf("Long break every (%d-%d sessions)", settings.MinLongBreakEvery, settings.MaxLongBreakEvery)).
				Value(s.longEvery).Validate(intInRange(settings.MinLongBreakEvery, settings.MaxLongBreakEvery)),
		).Title("Durations"),
		huh.NewGroup(
			huh.NewConfirm().Title("Notifications").Value(s.notifications),
			huh.NewConfirm().Title("Sound").Value(s.sound),
			huh.NewConfirm().Title("Start work automatically after a break").Value(s.autoWork),
			huh.NewConfirm().Title("Start breaks automatically after work").Value(s.autoBreak),
		).Title("Behaviour"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		next := s.formValues()
		if err := s.app.UpdateSettings(next); err != nil {
			return s, func() tea.Msg { return errStatus(err) }
		}
		s.current = s.app.Settings()
		return s, status("Settings saved")
	}

	return s, cmd
}

func (s settingsModel) formValues() settings.Settings {
	atoi := func(p *string) int {
		n, _ := strconv.Atoi(strings.TrimSpace(*p))
		return n
	}
	return settings.Settings{
		WorkDuration:         atoi(s.work),
		ShortBreakDuration:   atoi(s.shortBreak),
		LongBreakDuration:    atoi(s.longBreak),
		LongBreakInterval:    atoi(s.longEvery),
		NotificationsEnabled: *s.notifications,
		SoundEnabled:         *s.sound,
		AutoStartWork:        *s.autoWork,
		AutoStartBreak:       *s.autoBreak,
	}
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	cur := s.current
	items := []struct{ label, value string }{
		{"Work", fmt.Sprintf("%d min", cur.WorkDuration)},
		{"Short break", fmt.Sprintf("%d min", cur.ShortBreakDuration)},
		{"Long break", fmt.Sprintf("%d min", cur.LongBreakDuration)},
		{"Long break every", fmt.Sprintf("%d sessions", cur.LongBreakInterval)},
		{"Notifications", onOff(cur.NotificationsEnabled)},
		{"Sound", onOff(cur.SoundEnabled)},
		{"Auto-start work", onOff(cur.AutoStartWork)},
		{"Auto-start breaks", onOff(cur.AutoStartBreak)},
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for _, it := range items {
		label := lipgloss.NewStyle().Width(24).Render(it.label)
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(it.value)))
	}
	rows = append(rows, "")
	rows = append(rows, subtitleStyle.Render("  Pattern"))
	rows = append(rows, "  "+renderPattern(schedule.Pattern(cur, schedule.PreviewSessions)))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit  r: restore defaults"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
