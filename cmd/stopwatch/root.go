package main

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tsatke/stopwatch"
	"github.com/tsatke/stopwatch/internal/config"
	"github.com/tsatke/stopwatch/internal/report"
	"github.com/tsatke/stopwatch/internal/tui"
)

func newRootCmd(fs afero.Fs) *cobra.Command {
	loader := config.NewLoader(fs)
	var configFile string

	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "A stopwatch with laps for the terminal",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loader.Load(configFile)
			if err != nil {
				return err
			}
			return run(fs, cfg)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	if err := loader.RegisterFlags(cmd.Flags()); err != nil {
		// flags are registered right above, a failure is a programming error
		panic(err)
	}

	cmd.AddCommand(newFormatCmd(), newParseCmd())
	return cmd
}

func run(fs afero.Fs, cfg config.Config) error {
	logger, closeLog, err := newLogger(fs, cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	sw := stopwatch.New(
		stopwatch.WithTickInterval(cfg.Tick),
		stopwatch.WithLogger(logger),
	)

	p := tea.NewProgram(tui.New(sw), tea.WithAltScreen())
	sw.Subscribe(tui.Forward(p))

	logger.Info("session started", "tick", cfg.Tick)
	_, runErr := p.Run()
	sw.Close()

	snap := sw.Snapshot()
	logger.Info("session ended", "total", snap.TotalDisplay(), "laps", len(snap.Laps))

	if runErr != nil {
		return errors.Wrap(runErr, "run ui")
	}
	if cfg.Export.Path == "" {
		return nil
	}
	if err := report.Write(fs, cfg.Export.Path, cfg.Export.Format, snap); err != nil {
		return err
	}
	logger.Info("exported laps", "path", cfg.Export.Path, "format", cfg.Export.Format)
	return nil
}

// newLogger opens the log file, if one is configured. Without a file all log
// output is discarded, the terminal belongs to the UI.
func newLogger(fs afero.Fs, cfg config.Log) (*log.Logger, func() error, error) {
	var w io.Writer = io.Discard
	closeFn := func() error { return nil }

	if cfg.File != "" {
		f, err := fs.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open log file %s", cfg.File)
		}
		w = f
		closeFn = f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           cfg.Level,
		ReportTimestamp: true,
		Prefix:          AppName,
	})
	return logger, closeFn, nil
}
