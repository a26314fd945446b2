package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/timefocus/internal/export"
	"github.com/sadopc/timefocus/internal/schedule"
)

func newPlanCmd(e *env) *cobra.Command {
	var (
		start  string
		format string
		out    string
		save   bool
	)
	cmd := &cobra.Command{
		Use:     "plan",
		Aliases: []string{"schedule"},
		Short:   "Show when each active task will run",
		Long: `Project the active queue onto the clock: each task gets a start and end
time, with short breaks between sessions and a long break every
longBreakInterval sessions. A start time earlier than now means tomorrow.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			a, err := e.App(cmd)
			if err != nil {
				return err
			}

			sched := a.Schedule()
			if start != "" {
				var tod schedule.TimeOfDay
				if strings.EqualFold(start, "now") {
					tod = schedule.Of(a.Now())
				} else if tod, err = schedule.ParseTimeOfDay(start); err != nil {
					return err
				}
				if save {
					if err := a.SetStartTime(tod); err != nil {
						return err
					}
				}
				sched = a.ScheduleFrom(tod)
			}

			if out != "" {
				if err := export.ToFile(out, f, sched, a.Now()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", len(sched.Entries), out)
				return nil
			}
			return export.Write(cmd.OutOrStdout(), f, sched, a.Now())
		},
	}
	cmd.Flags().StringVarP(&start, "start", "s", "", `Start time HH:MM or "now" (default: saved start time)`)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, csv, json or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&save, "save", false, "Remember --start for later runs")
	return cmd
}
