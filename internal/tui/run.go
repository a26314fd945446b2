package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/timefocus/internal/app"
)

// Run drives the interactive UI until the user quits.
func Run(a *app.App) error {
	p := tea.NewProgram(NewApp(a), tea.WithAltScreen(), tea.WithReportFocus())

	// Events may be published from inside Update; Send would block there.
	unsubscribe := a.Subscribe(func(ev app.Event) {
		go p.Send(appEventMsg{event: ev})
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}

// BellNotifier rings the terminal bell for a completion. The message itself
// reaches the status line through the app's events.
type BellNotifier struct {
	W io.Writer
}

func (n BellNotifier) Notify(_, _ string, silent bool) error {
	if silent {
		return nil
	}
	_, err := io.WriteString(n.W, "\a")
	return err
}
