package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/sadopc/timefocus/internal/schedule"
)

// WriteCSV writes one row per scheduled task.
func WriteCSV(out io.Writer, sched schedule.Schedule) error {
	w := csv.NewWriter(out)

	// Header
	if err := w.Write([]string{"Position", "Task", "Start", "End", "Span", "Sessions", "Work (min)"}); err != nil {
		return err
	}

	for i, e := range sched.Entries {
		row := []string{
			fmt.Sprintf("%d", i+1),
			e.Description,
			e.Start.Format(time.RFC3339),
			e.End.Format(time.RFC3339),
			e.Span,
			fmt.Sprintf("%d", e.TotalSessions),
			fmt.Sprintf("%d", int(e.End.Sub(e.Start)/time.Minute)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
