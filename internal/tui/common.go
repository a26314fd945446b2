package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/timefocus/internal/app"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewTasks
	viewPlan
	viewReports
	viewSettings
)

var viewNames = []string{"Timer", "Tasks", "Plan", "Reports", "Settings"}

// --- Messages ---

// tickMsg drives the countdown. gen ties it to one run of the timer; a tick
// from an earlier run is dropped.
type tickMsg struct {
	gen uint64
	at  time.Time
}

// autoStartMsg fires the pending automatic start scheduled under gen.
type autoStartMsg struct {
	gen uint64
}

// appEventMsg forwards an app.Event into the program.
type appEventMsg struct {
	event app.Event
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatHours(secs int64) string {
	h := float64(secs) / 3600
	return fmt.Sprintf("%.1fh", h)
}

func errStatus(err error) statusMsg {
	return statusMsg{text: "Error: " + err.Error(), isError: true}
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}
