// Package config loads process configuration: where the database and log
// file live, the log level, and the default schedule start time. Timer
// settings proper are stored in the database, not here.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/sadopc/timefocus/internal/schedule"
)

// EnvPrefix is prepended to every environment override, e.g. TIMEFOCUS_DB_PATH.
const EnvPrefix = "TIMEFOCUS"

type Config struct {
	DBPath   string `yaml:"db_path" mapstructure:"db_path"`
	LogFile  string `yaml:"log_file" mapstructure:"log_file"`
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// StartTime is the schedule start used when none has been saved, as
	// HH:MM. Empty means "now".
	StartTime string `yaml:"start_time" mapstructure:"start_time"`
}

// Dir returns ~/.config/timefocus.
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "timefocus"), nil
}

// DefaultPath returns the path of the config file.
func DefaultPath() string {
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Default returns the configuration used when no file or env var says otherwise.
func Default() *Config {
	dir, err := Dir()
	if err != nil {
		dir = "."
	}
	return &Config{
		DBPath:   filepath.Join(dir, "timefocus.db"),
		LogFile:  filepath.Join(dir, "timefocus.log"),
		LogLevel: "info",
	}
}

// Load reads path (or the default config file when path is empty) over the
// defaults, then applies TIMEFOCUS_* environment overrides. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("start_time", def.StartTime)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			switch {
			case errors.As(err, &notFound), !explicit && errors.Is(err, os.ErrNotExist):
			default:
				return def, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return def, err
	}
	if cfg.StartTime != "" {
		if _, err := schedule.ParseTimeOfDay(cfg.StartTime); err != nil {
			return def, err
		}
	}
	return cfg, nil
}
