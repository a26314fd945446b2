package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/timefocus/internal/queue"
)

func newTasksCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "Manage the task queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTasksList(cmd, e, false)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks in queue order",
		RunE: func(cmd *cobra.Command, args []string) error {
			active, _ := cmd.Flags().GetBool("active")
			return runTasksList(cmd, e, active)
		},
	}
	list.Flags().Bool("active", false, "Hide completed tasks")

	add := &cobra.Command{
		Use:   "add <description>",
		Short: "Append a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, _ := cmd.Flags().GetInt("sessions")
			a, err := e.App(cmd)
			if err != nil {
				return err
			}
			t, err := a.AddTask(strings.Join(args, " "), sessions)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", t.Description, plural(t.SessionCount, "session"))
			return nil
		},
	}
	add.Flags().IntP("sessions", "n", 1, "Pomodoro sessions (1-10)")

	imp := &cobra.Command{
		Use:   "import [file]",
		Short: "Import tasks, one per line, from a file or stdin",
		Long: `Import tasks, one per line. Each line is a description with an optional
session count: "Write report 2", "Write report [2]", "Write report (2)",
"Write report - 2" or "2 Write report". Lines without a count get one session.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTasksImport(cmd, e, args)
		},
	}

	edit := &cobra.Command{
		Use:   "edit <task> <description>",
		Short: "Change a task's description or session count",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.App(cmd)
			if err != nil {
				return err
			}
			t, err := a.FindTask(args[0])
			if err != nil {
				return err
			}
			desc := t.Description
			if len(args) > 1 {
				desc = strings.Join(args[1:], " ")
			}
			sessions := t.SessionCount
			if cmd.Flags().Changed("sessions") {
				sessions, _ = cmd.Flags().GetInt("sessions")
			}
			if err := a.EditTask(t.ID, desc, sessions); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %q\n", desc)
			return nil
		},
	}
	edit.Flags().IntP("sessions", "n", 1, "Pomodoro sessions (1-10)")

	done := &cobra.Command{
		Use:     "done <task>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a task's completed flag",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.App(cmd)
			if err != nil {
				return err
			}
			t, err := a.FindTask(args[0])
			if err != nil {
				return err
			}
			updated, err := a.ToggleTask(t.ID)
			if err != nil {
				return err
			}
			state := "reopened"
			if updated.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q %s\n", updated.Description, state)
			return nil
		},
	}

	del := &cobra.Command{
		Use:     "delete <task>",
		Aliases: []string{"rm"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.App(cmd)
			if err != nil {
				return err
			}
			t, err := a.FindTask(args[0])
			if err != nil {
				return err
			}
			if err := a.DeleteTask(t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", t.Description)
			return nil
		},
	}

	breakdown := &cobra.Command{
		Use:   "breakdown <task>",
		Short: "Split a multi-session task into one-session parts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.App(cmd)
			if err != nil {
				return err
			}
			t, err := a.FindTask(args[0])
			if err != nil {
				return err
			}
			parts, err := a.BreakdownTask(t.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Split %q into %d parts\n", t.Description, len(parts))
			return nil
		},
	}

	move := &cobra.Command{
		Use:   "move <task> <up|down|top|bottom>",
		Short: "Reorder a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, ok := queue.ParseDirection(args[1])
			if !ok {
				return fmt.Errorf("unknown direction %q (want up, down, top or bottom)", args[1])
			}
			a, err := e.App(cmd)
			if err != nil {
				return err
			}
			t, err := a.FindTask(args[0])
			if err != nil {
				return err
			}
			return a.MoveTask(t.ID, dir)
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Remove every completed task",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.App(cmd)
			if err != nil {
				return err
			}
			n, err := a.ClearCompleted()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", plural(n, "completed task"))
			return nil
		},
	}

	cmd.AddCommand(list, add, imp, edit, done, del, breakdown, move, clear)
	return cmd
}

func runTasksList(cmd *cobra.Command, e *env, activeOnly bool) error {
	a, err := e.App(cmd)
	if err != nil {
		return err
	}
	tasks := a.Tasks()
	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks. Add one with: timefocus tasks add <description>")
		return nil
	}
	favs := a.Favorites()
	for i, t := range tasks {
		if activeOnly && t.Completed {
			continue
		}
		mark := " "
		if t.Completed {
			mark = "x"
		}
		star := ""
		if favs.Contains(t.OriginalDescription) {
			star = " *"
		}
		fmt.Fprintf(out, "%2d. [%s] %-40s %s%s\n", i+1, mark, t.Description, plural(t.SessionCount, "session"), star)
	}
	return nil
}

func runTasksImport(cmd *cobra.Command, e *env, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	a, err := e.App(cmd)
	if err != nil {
		return err
	}
	lines, added, err := a.ImportText(string(data))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, l := range lines {
		if !l.Valid {
			fmt.Fprintf(out, "  line %d skipped: %s (%q)\n", l.LineNumber, l.Error, l.Original)
		}
	}
	if len(added) == 0 {
		return fmt.Errorf("no valid tasks found")
	}
	fmt.Fprintf(out, "Imported %s\n", plural(len(added), "task"))
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
