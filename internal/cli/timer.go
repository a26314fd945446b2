package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sadopc/timefocus/internal/app"
	"github.com/sadopc/timefocus/internal/timer"
)

func newTimerCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Control the pomodoro timer",
		Long: `Control the pomodoro timer. The timer is anchored to the wall clock and
saved after every change, so it keeps counting between invocations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, e, printStatus)
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, e, printStatus)
		},
	}

	start := &cobra.Command{
		Use:   "start",
		Short: "Start or resume the timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, e, func(w io.Writer, a *app.App) error {
				a.StartTimer()
				return printStatus(w, a)
			})
		},
	}

	pause := &cobra.Command{
		Use:   "pause",
		Short: "Pause the timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, e, func(w io.Writer, a *app.App) error {
				a.PauseTimer()
				return printStatus(w, a)
			})
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Stop the timer and restore the full session length",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, e, func(w io.Writer, a *app.App) error {
				a.ResetTimer()
				return printStatus(w, a)
			})
		},
	}

	switchCmd := &cobra.Command{
		Use:   "switch <work|short|long>",
		Short: "Switch to another session type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := timer.ParseSessionType(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, e, func(w io.Writer, a *app.App) error {
				if err := a.SwitchSession(t); err != nil {
					return err
				}
				return printStatus(w, a)
			})
		},
	}

	cmd.AddCommand(status, start, pause, reset, switchCmd)
	return cmd
}

func withApp(cmd *cobra.Command, e *env, fn func(io.Writer, *app.App) error) error {
	a, err := e.App(cmd)
	if err != nil {
		return err
	}
	return fn(cmd.OutOrStdout(), a)
}

func printStatus(w io.Writer, a *app.App) error {
	if msg := a.RestoreMessage(); msg != "" {
		fmt.Fprintln(w, msg)
	}
	st := a.TimerStatus()
	fmt.Fprintf(w, "%-12s %s  %s  (%s done)\n",
		st.Session.Label(), timer.FormatClock(st.RemainingSeconds), st.State, plural(st.CompletedSessions, "session"))
	if st.CurrentTask != "" && !st.Session.IsBreak() {
		fmt.Fprintf(w, "Working on: %s\n", st.CurrentTask)
	}
	return nil
}
