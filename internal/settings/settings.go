// Package settings holds the timer settings record and its bounds.
package settings

import (
	"time"

	"github.com/sadopc/timefocus/internal/apperr"
)

// Bounds for each field, inclusive.
const (
	MinWork           = 1
	MaxWork           = 60
	MinShortBreak     = 1
	MaxShortBreak     = 30
	MinLongBreak      = 5
	MaxLongBreak      = 60
	MinLongBreakEvery = 2
	MaxLongBreakEvery = 10
)

// Settings is the process-wide settings record. Durations are minutes.
type Settings struct {
	WorkDuration         int  `json:"workDuration"`
	ShortBreakDuration   int  `json:"shortBreakDuration"`
	LongBreakDuration    int  `json:"longBreakDuration"`
	LongBreakInterval    int  `json:"longBreakInterval"`
	NotificationsEnabled bool `json:"notificationsEnabled"`
	SoundEnabled         bool `json:"soundEnabled"`
	AutoStartWork        bool `json:"autoStartWork"`
	AutoStartBreak       bool `json:"autoStartBreak"`
}

func Default() Settings {
	return Settings{
		WorkDuration:         25,
		ShortBreakDuration:   5,
		LongBreakDuration:    15,
		LongBreakInterval:    4,
		NotificationsEnabled: true,
		SoundEnabled:         true,
	}
}

// Validate checks every field against its bounds and returns the first
// violation as a validation error.
func (s Settings) Validate() error {
	switch {
	case s.WorkDuration < MinWork || s.WorkDuration > MaxWork:
		return apperr.Validationf("workDuration", "must be between %d and %d minutes", MinWork, MaxWork)
	case s.ShortBreakDuration < MinShortBreak || s.ShortBreakDuration > MaxShortBreak:
		return apperr.Validationf("shortBreakDuration", "must be between %d and %d minutes", MinShortBreak, MaxShortBreak)
	case s.LongBreakDuration < MinLongBreak || s.LongBreakDuration > MaxLongBreak:
		return apperr.Validationf("longBreakDuration", "must be between %d and %d minutes", MinLongBreak, MaxLongBreak)
	case s.LongBreakInterval < MinLongBreakEvery || s.LongBreakInterval > MaxLongBreakEvery:
		return apperr.Validationf("longBreakInterval", "must be between %d and %d", MinLongBreakEvery, MaxLongBreakEvery)
	}
	return nil
}

func (s Settings) Work() time.Duration       { return time.Duration(s.WorkDuration) * time.Minute }
func (s Settings) ShortBreak() time.Duration { return time.Duration(s.ShortBreakDuration) * time.Minute }
func (s Settings) LongBreak() time.Duration  { return time.Duration(s.LongBreakDuration) * time.Minute }

// IsLongBreak reports whether the n-th break (1-based, counted across the
// whole queue or session run) is a long one.
func (s Settings) IsLongBreak(n int) bool {
	return s.LongBreakInterval > 0 && n%s.LongBreakInterval == 0
}
