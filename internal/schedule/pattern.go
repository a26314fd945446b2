package schedule

import (
	"fmt"
	"strings"

	"github.com/sadopc/timefocus/internal/settings"
)

// PreviewSessions is the number of work sessions the settings preview shows.
const PreviewSessions = 8

// SlotKind is the type of one block in a session pattern.
type SlotKind string

const (
	SlotWork       SlotKind = "work"
	SlotShortBreak SlotKind = "short-break"
	SlotLongBreak  SlotKind = "long-break"
)

// Slot is one work session or break in a pattern.
type Slot struct {
	Kind    SlotKind
	Minutes int
}

// Label is the compact form used in previews: W25, S5, L15.
func (s Slot) Label() string {
	switch s.Kind {
	case SlotLongBreak:
		return fmt.Sprintf("L%d", s.Minutes)
	case SlotShortBreak:
		return fmt.Sprintf("S%d", s.Minutes)
	}
	return fmt.Sprintf("W%d", s.Minutes)
}

// Pattern interleaves sessions work blocks with the breaks between them.
func Pattern(s settings.Settings, sessions int) []Slot {
	if sessions <= 0 {
		return nil
	}
	breaks := Breaks(sessions, s)
	out := make([]Slot, 0, sessions+len(breaks))
	for i := 0; i < sessions; i++ {
		out = append(out, Slot{Kind: SlotWork, Minutes: s.WorkDuration})
		if i < len(breaks) {
			kind := SlotShortBreak
			if breaks[i].Long {
				kind = SlotLongBreak
			}
			out = append(out, Slot{Kind: kind, Minutes: breaks[i].Minutes})
		}
	}
	return out
}

// PatternString joins slot labels with spaces.
func PatternString(slots []Slot) string {
	labels := make([]string, len(slots))
	for i, sl := range slots {
		labels[i] = sl.Label()
	}
	return strings.Join(labels, " ")
}
