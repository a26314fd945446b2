// Package export writes a projected schedule as text, CSV, JSON or YAML.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sadopc/timefocus/internal/schedule"
)

// Format names an output format.
type Format string

const (
	Text Format = "text"
	CSV  Format = "csv"
	JSON Format = "json"
	YAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{Text, CSV, JSON, YAML}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, CSV, JSON, YAML:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, csv, json or yaml)", s)
}

// Write renders sched to w in format f. now stamps the JSON and YAML
// documents.
func Write(w io.Writer, f Format, sched schedule.Schedule, now time.Time) error {
	switch f {
	case Text:
		return WriteText(w, sched)
	case CSV:
		return WriteCSV(w, sched)
	case JSON:
		return WriteJSON(w, sched, now)
	case YAML:
		return WriteYAML(w, sched, now)
	}
	return fmt.Errorf("unknown format %q", f)
}

// ToFile renders sched into the file at path.
func ToFile(path string, f Format, sched schedule.Schedule, now time.Time) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s file: %w", f, err)
	}
	if err := Write(out, f, sched, now); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// WriteText renders a plain table for terminals.
func WriteText(w io.Writer, sched schedule.Schedule) error {
	if len(sched.Entries) == 0 {
		_, err := fmt.Fprintln(w, "No active tasks.")
		return err
	}
	for i, e := range sched.Entries {
		if _, err := fmt.Fprintf(w, "%2d. %s  %-40s %s\n", i+1, e.Span, e.Description, sessionsLabel(e.TotalSessions)); err != nil {
			return err
		}
	}
	t := sched.Totals
	_, err := fmt.Fprintf(w, "\nWork %s  Breaks %s  Total %s  Done at %s\n",
		schedule.FormatMinutes(t.WorkMinutes), schedule.FormatMinutes(t.BreakMinutes),
		schedule.FormatMinutes(t.TotalMinutes), sched.Completion.Format("15:04"))
	return err
}

func sessionsLabel(n int) string {
	if n == 1 {
		return "1 session"
	}
	return fmt.Sprintf("%d sessions", n)
}

// document is the JSON and YAML shape.
type document struct {
	ExportedAt   string          `json:"exported_at" yaml:"exported_at"`
	Start        string          `json:"start" yaml:"start"`
	Completion   string          `json:"completion,omitempty" yaml:"completion,omitempty"`
	Count        int             `json:"count" yaml:"count"`
	WorkMinutes  int             `json:"work_minutes" yaml:"work_minutes"`
	BreakMinutes int             `json:"break_minutes" yaml:"break_minutes"`
	TotalMinutes int             `json:"total_minutes" yaml:"total_minutes"`
	Entries      []documentEntry `json:"entries" yaml:"entries"`
}

type documentEntry struct {
	Position    int    `json:"position" yaml:"position"`
	TaskID      string `json:"task_id" yaml:"task_id"`
	Description string `json:"description" yaml:"description"`
	Start       string `json:"start" yaml:"start"`
	End         string `json:"end" yaml:"end"`
	Span        string `json:"span" yaml:"span"`
	Sessions    int    `json:"sessions" yaml:"sessions"`
}

func newDocument(sched schedule.Schedule, now time.Time) document {
	doc := document{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Start:      sched.Start.Format(time.RFC3339),
		Count:      len(sched.Entries),
		Entries:    make([]documentEntry, 0, len(sched.Entries)),
	}
	if sched.Totals != nil {
		doc.Completion = sched.Completion.Format(time.RFC3339)
		doc.WorkMinutes = sched.Totals.WorkMinutes
		doc.BreakMinutes = sched.Totals.BreakMinutes
		doc.TotalMinutes = sched.Totals.TotalMinutes
	}
	for i, e := range sched.Entries {
		doc.Entries = append(doc.Entries, documentEntry{
			Position:    i + 1,
			TaskID:      e.TaskID,
			Description: e.Description,
			Start:       e.Start.Format(time.RFC3339),
			End:         e.End.Format(time.RFC3339),
			Span:        e.Span,
			Sessions:    e.TotalSessions,
		})
	}
	return doc
}
