package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sadopc/timefocus/internal/app"
	"github.com/sadopc/timefocus/internal/settings"
)

// settingsView is the YAML shape printed by "settings show".
type settingsView struct {
	WorkMinutes          int  `yaml:"work_minutes"`
	ShortBreakMinutes    int  `yaml:"short_break_minutes"`
	LongBreakMinutes     int  `yaml:"long_break_minutes"`
	LongBreakInterval    int  `yaml:"long_break_interval"`
	NotificationsEnabled bool `yaml:"notifications"`
	SoundEnabled         bool `yaml:"sound"`
	AutoStartWork        bool `yaml:"auto_start_work"`
	AutoStartBreak       bool `yaml:"auto_start_break"`
}

func newSettingsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change timer settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, e, printSettings)
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, e, printSettings)
		},
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		Example: `  timefocus settings set --work 50 --short 10
  timefocus settings set --long-every 3 --auto-break`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, e, func(w io.Writer, a *app.App) error {
				s := a.Settings()
				f := cmd.Flags()
				if f.Changed("work") {
					s.WorkDuration, _ = f.GetInt("work")
				}
				if f.Changed("short") {
					s.ShortBreakDuration, _ = f.GetInt("short")
				}
				if f.Changed("long") {
					s.LongBreakDuration, _ = f.GetInt("long")
				}
				if f.Changed("long-every") {
					s.LongBreakInterval, _ = f.GetInt("long-every")
				}
				if f.Changed("notifications") {
					s.NotificationsEnabled, _ = f.GetBool("notifications")
				}
				if f.Changed("sound") {
					s.SoundEnabled, _ = f.GetBool("sound")
				}
				if f.Changed("auto-work") {
					s.AutoStartWork, _ = f.GetBool("auto-work")
				}
				if f.Changed("auto-break") {
					s.AutoStartBreak, _ = f.GetBool("auto-break")
				}
				if err := a.UpdateSettings(s); err != nil {
					return err
				}
				return printSettings(w, a)
			})
		},
	}
	def := settings.Default()
	set.Flags().Int("work", def.WorkDuration, fmt.Sprintf("Work minutes (%d-%d)", settings.MinWork, settings.MaxWork))
	set.Flags().Int("short", def.ShortBreakDuration, fmt.Sprintf("Short break minutes (%d-%d)", settings.MinShortBreak, settings.MaxShortBreak))
	set.Flags().Int("long", def.LongBreakDuration, fmt.Sprintf("Long break minutes (%d-%d)", settings.MinLongBreak, settings.MaxLongBreak))
	set.Flags().Int("long-every", def.LongBreakInterval, fmt.Sprintf("Long break after this many work sessions (%d-%d)", settings.MinLongBreakEvery, settings.MaxLongBreakEvery))
	set.Flags().Bool("notifications", def.NotificationsEnabled, "Show a notice when a session ends")
	set.Flags().Bool("sound", def.SoundEnabled, "Ring the bell with the notice")
	set.Flags().Bool("auto-work", def.AutoStartWork, "Start work sessions automatically after a break")
	set.Flags().Bool("auto-break", def.AutoStartBreak, "Start breaks automatically after work")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, e, func(w io.Writer, a *app.App) error {
				if err := a.ResetSettings(); err != nil {
					return err
				}
				return printSettings(w, a)
			})
		},
	}

	cmd.AddCommand(show, set, reset)
	return cmd
}

func printSettings(w io.Writer, a *app.App) error {
	s := a.Settings()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(settingsView{
		WorkMinutes:          s.WorkDuration,
		ShortBreakMinutes:    s.ShortBreakDuration,
		LongBreakMinutes:     s.LongBreakDuration,
		LongBreakInterval:    s.LongBreakInterval,
		NotificationsEnabled: s.NotificationsEnabled,
		SoundEnabled:         s.SoundEnabled,
		AutoStartWork:        s.AutoStartWork,
		AutoStartBreak:       s.AutoStartBreak,
	}); err != nil {
		return err
	}
	return enc.Close()
}
