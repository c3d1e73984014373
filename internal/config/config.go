// Package config loads the settings of the stopwatch command from flags,
// environment variables and an optional config file, in that order of
// precedence.
package config

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tsatke/stopwatch/internal/report"
)

// EnvPrefix prefixes all environment variables, STOPWATCH_LOG_LEVEL sets
// log.level.
const EnvPrefix = "STOPWATCH"

const (
	KeyTick         = "tick"
	KeyLogLevel     = "log.level"
	KeyLogFile      = "log.file"
	KeyExportPath   = "export.path"
	KeyExportFormat = "export.format"
)

type Config struct {
	// Tick is how often the display refreshes while running.
	Tick   time.Duration
	Log    Log
	Export Export
}

type Log struct {
	Level log.Level
	// File receives the log output. Logging is disabled if empty.
	File string
}

type Export struct {
	// Path is where the lap history is written on exit. No export happens if
	// empty.
	Path   string
	Format report.Format
}

// Loader reads a Config. Config files are read from fs.
type Loader struct {
	v *viper.Viper
}

func NewLoader(fs afero.Fs) *Loader {
	v := viper.New()
	v.SetFs(fs)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyTick, 10*time.Millisecond)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyExportPath, "")
	v.SetDefault(KeyExportFormat, report.FormatText.String())

	return &Loader{v: v}
}

// RegisterFlags adds a flag for every setting to flags and binds it, so that
// a flag that was set on the command line overrides all other sources.
func (l *Loader) RegisterFlags(flags *pflag.FlagSet) error {
	flags.Duration(KeyTick, 10*time.Millisecond, "display refresh interval while running")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "write logs to this file")
	flags.String("export", "", "write the lap history to this file on exit")
	flags.String("export-format", report.FormatText.String(), "lap history format (text, csv, json)")

	for key, flag := range map[string]string{
		KeyTick:         KeyTick,
		KeyLogLevel:     "log-level",
		KeyLogFile:      "log-file",
		KeyExportPath:   "export",
		KeyExportFormat: "export-format",
	} {
		if err := l.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return errors.Wrapf(err, "bind flag %s", flag)
		}
	}
	return nil
}

// Load reads the config file at path, if path is not empty, and returns the
// merged and validated settings.
func (l *Loader) Load(path string) (Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config

	cfg.Tick = l.v.GetDuration(KeyTick)
	if cfg.Tick <= 0 {
		return Config{}, errors.Newf("%s must be positive, got %s", KeyTick, l.v.GetString(KeyTick))
	}

	level, err := log.ParseLevel(l.v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s", KeyLogLevel)
	}
	cfg.Log = Log{
		Level: level,
		File:  l.v.GetString(KeyLogFile),
	}

	format, err := report.ParseFormat(l.v.GetString(KeyExportFormat))
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s", KeyExportFormat)
	}
	cfg.Export = Export{
		Path:   l.v.GetString(KeyExportPath),
		Format: format,
	}

	return cfg, nil
}
