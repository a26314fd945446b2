package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sadopc/timefocus/internal/app"
	"github.com/sadopc/timefocus/internal/schedule"
)

func newStatsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show finished sessions for today and the last 7 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, e, printStats)
		},
	}
}

func printStats(w io.Writer, a *app.App) error {
	st, err := a.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Today:   %s, %s focused\n", plural(st.TodaySessions, "session"), schedule.FormatMinutes(int(st.TodayWorkSeconds/60)))
	fmt.Fprintf(w, "7 days:  %s, %s focused\n", plural(st.WeekSessions, "session"), schedule.FormatMinutes(int(st.WeekWorkSeconds/60)))
	if len(st.Daily) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	for _, d := range st.Daily {
		fmt.Fprintf(w, "  %s  %-12s %3d  %s\n", d.Date, d.SessionType, d.Count, schedule.FormatMinutes(int(d.TotalSeconds/60)))
	}
	return nil
}
