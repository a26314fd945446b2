package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sadopc/timefocus/internal/schedule"
)

func WriteJSON(w io.Writer, sched schedule.Schedule, now time.Time) error {
	data, err := json.MarshalIndent(newDocument(sched, now), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
