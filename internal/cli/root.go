// Package cli is the timefocus command line. With no subcommand it runs the
// terminal UI; the subcommands script the same operations.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sadopc/timefocus/internal/app"
	"github.com/sadopc/timefocus/internal/config"
	"github.com/sadopc/timefocus/internal/logging"
	"github.com/sadopc/timefocus/internal/store"
	"github.com/sadopc/timefocus/internal/tui"
)

// env carries the flags and the lazily opened application for one run.
type env struct {
	configPath string
	dbPath     string
	verbose    bool

	cfg      *config.Config
	log      *slog.Logger
	notifier app.Notifier
	app      *app.App
	closers  []io.Closer

	// logNotices leaves notices to the app's log notifier.
	logNotices bool
	// deferAutoStart leaves a pending automatic start to the TUI, which
	// fires it after the usual delay.
	deferAutoStart bool
}

// App loads config, logging and the database on first use.
func (e *env) App(cmd *cobra.Command) (*app.App, error) {
	if e.app != nil {
		return e.app, nil
	}
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if e.dbPath != "" {
		cfg.DBPath = e.dbPath
	}
	e.cfg = cfg

	if e.verbose {
		lvl, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		e.log = logging.New(cmd.ErrOrStderr(), lvl)
	} else {
		log, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		e.log = log
		e.closers = append(e.closers, closer)
	}

	s, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	e.closers = append(e.closers, s)

	notifier := e.notifier
	if notifier == nil && !e.logNotices {
		notifier = printNotifier{w: cmd.ErrOrStderr()}
	}
	a, err := app.Open(app.Options{
		Backend:      s,
		Logger:       e.log,
		Notifier:     notifier,
		DefaultStart: cfg.StartTime,
	})
	if err != nil {
		return nil, err
	}
	if !e.deferAutoStart && a.StartPending() {
		e.log.Info("started the session that was due on restore")
	}
	e.app = a
	e.log.Debug("opened", "db", cfg.DBPath, "tasks", len(a.Tasks()))
	return a, nil
}

func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
	e.closers = nil
}

// printNotifier prints session notices for one-shot commands.
type printNotifier struct{ w io.Writer }

func (n printNotifier) Notify(title, body string, silent bool) error {
	bell := "\a"
	if silent {
		bell = ""
	}
	_, err := fmt.Fprintf(n.w, "%s%s %s\n", bell, title, body)
	return err
}

// newRootCmd builds the command tree around e. The caller closes e.
func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "timefocus",
		Short: "Pomodoro task queue, day planner and timer",
		Long: `timefocus keeps an ordered queue of tasks measured in pomodoro sessions,
projects when each one will run, and times the sessions.

Run with no arguments for the terminal UI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, e)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&e.configPath, "config", "", "Config file (default ~/.config/timefocus/config.yaml)")
	root.PersistentFlags().StringVar(&e.dbPath, "db", "", "Database path (overrides config)")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "Log to stderr instead of the log file")

	root.AddCommand(newTasksCmd(e))
	root.AddCommand(newFavoritesCmd(e))
	root.AddCommand(newPlanCmd(e))
	root.AddCommand(newTimerCmd(e))
	root.AddCommand(newSettingsCmd(e))
	root.AddCommand(newStatsCmd(e))
	root.AddCommand(newMCPCmd(e))
	root.AddCommand(newConfigCmd(e))
	return root
}

// Execute runs the root command.
func Execute(version string) error {
	e := &env{}
	defer e.close()
	root := newRootCmd(e)
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func runTUI(cmd *cobra.Command, e *env) error {
	if e.verbose {
		return errors.New("--verbose cannot be used with the terminal UI")
	}
	e.notifier = tui.BellNotifier{W: cmd.ErrOrStderr()}
	e.deferAutoStart = true
	a, err := e.App(cmd)
	if err != nil {
		return err
	}
	return tui.Run(a)
}
