// Package timer is the countdown state machine. Remaining time is always
// derived from a wall-clock anchor, never from counted ticks, so the engine
// gives the same answer after a suspension of any length.
package timer

import (
	"fmt"
	"time"

	"github.com/sadopc/timefocus/internal/apperr"
	"github.com/sadopc/timefocus/internal/settings"
)

// SessionType is the kind of session the timer is counting down.
type SessionType string

const (
	Work       SessionType = "work"
	ShortBreak SessionType = "short-break"
	LongBreak  SessionType = "long-break"
)

// SessionTypes lists every session type in display order.
var SessionTypes = []SessionType{Work, ShortBreak, LongBreak}

// ParseSessionType accepts the canonical names plus "short" and "long".
func ParseSessionType(s string) (SessionType, error) {
	switch s {
	case string(Work):
		return Work, nil
	case string(ShortBreak), "short":
		return ShortBreak, nil
	case string(LongBreak), "long":
		return LongBreak, nil
	}
	return "", apperr.Validationf("sessionType", "unknown session type %q", s)
}

func (t SessionType) Valid() bool {
	return t == Work || t == ShortBreak || t == LongBreak
}

func (t SessionType) IsBreak() bool {
	return t == ShortBreak || t == LongBreak
}

// Label is the human form, e.g. "short break".
func (t SessionType) Label() string {
	switch t {
	case ShortBreak:
		return "short break"
	case LongBreak:
		return "long break"
	}
	return "work"
}

// Duration returns the configured length of a session of type t.
func Duration(s settings.Settings, t SessionType) time.Duration {
	switch t {
	case ShortBreak:
		return s.ShortBreak()
	case LongBreak:
		return s.LongBreak()
	}
	return s.Work()
}

func durationSeconds(s settings.Settings, t SessionType) int {
	return int(Duration(s, t) / time.Second)
}

// State is the engine's run state.
type State int

const (
	Idle State = iota
	Running
	Paused
	// Completed is held only while an auto-start is pending.
	Completed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	}
	return "idle"
}

// FormatClock renders seconds as MM:SS. Sessions never exceed an hour, but
// longer values still print minutes in full.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
