package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/timefocus/internal/app"
	"github.com/sadopc/timefocus/internal/timer"
)

// ticker keeps exactly one tick chain alive per timer run. The countdown is
// derived from the wall-clock anchor inside the app, so a late or dropped
// tick only delays the redraw.
type ticker struct {
	app *app.App
	// gen is the generation whose chain is in flight, 0 when none is.
	gen uint64
}

func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

func autoStartCmd(gen uint64) tea.Cmd {
	return tea.Tick(timer.AutoStartDelay, func(time.Time) tea.Msg {
		return autoStartMsg{gen: gen}
	})
}

// ensure starts a chain for the current run if the timer is running and
// none is in flight for it.
func (t *ticker) ensure() tea.Cmd {
	st := t.app.TimerView()
	if st.State != timer.Running || st.Generation == t.gen {
		return nil
	}
	t.gen = st.Generation
	return tickCmd(st.Generation)
}

// pending schedules the automatic start that was already due when the app
// restored an expired session.
func (t *ticker) pending() tea.Cmd {
	gen, ok := t.app.PendingAutoStart()
	if !ok {
		return nil
	}
	return autoStartCmd(gen)
}

// tick handles one tickMsg: it advances the timer, then either reschedules
// itself, schedules the automatic start, or lets the chain end.
func (t *ticker) tick(msg tickMsg) tea.Cmd {
	tr, ok := t.app.Tick(msg.gen)
	if !ok {
		if t.gen == msg.gen {
			t.gen = 0
		}
		return nil
	}
	if tr != nil {
		t.gen = 0
		return t.followUp(tr)
	}
	return tickCmd(msg.gen)
}

// followUp schedules the automatic start after a completion, if one is due.
func (t *ticker) followUp(tr *timer.Transition) tea.Cmd {
	if tr == nil || !tr.AutoStart {
		return nil
	}
	return autoStartCmd(tr.Generation)
}

func (t *ticker) autoStart(msg autoStartMsg) tea.Cmd {
	if !t.app.AutoStart(msg.gen) {
		return nil
	}
	return t.ensure()
}

// recompute brings the timer up to date after the terminal regains focus,
// which may complete the session that ran out while it was hidden.
func (t *ticker) recompute() tea.Cmd {
	tr := t.app.Recompute()
	if tr != nil {
		t.gen = 0
		return t.followUp(tr)
	}
	return t.ensure()
}
