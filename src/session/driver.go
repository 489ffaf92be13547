package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sofmeright/fortwasm/src/build"
	"github.com/sofmeright/fortwasm/src/config"
	"github.com/sofmeright/fortwasm/src/output"
)

// Driver runs one session end to end:
//
//	Prepare → InitLog → Invoke(build) → Summarize
//
// Any stage may fail; there is no way back to an earlier stage.
type Driver struct {
	Session *Session
	Config  *config.Config
	Console *output.Console
	Logger  *slog.Logger
}

// Run executes the session. It returns nil on success or the typed error of
// the stage that failed, after printing the operator message for it.
func (d *Driver) Run(ctx context.Context) error {
	s := d.Session
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := Prepare(s); err != nil {
		d.Console.Errorf("Error preparing directories: %v", err)
		return err
	}
	logger.Debug("directories ready", "build", s.BuildDir, "cache", s.CacheDir)

	log := NewLog(s.LogPath, func(err error) {
		d.Console.Warnf("Warning: Could not write to log file: %v", err)
	})
	if err := log.Init(); err != nil {
		var initErr *LogInitError
		if errors.As(err, &initErr) {
			d.Console.Errorf("Error creating log file: %v", initErr.Err)
		}
		return err
	}

	inv := s.Invocation(d.Config.Toolchain, d.Config.Build)
	invoker := build.NewInvoker(log, d.Console, logger)
	invoker.Timeout = d.Config.Build.Timeout.Std()

	s.Start = time.Now()
	d.Console.Start("Compiling project")

	if _, err := invoker.Invoke(ctx, inv); err != nil {
		d.reportFailure(err)
		return err
	}

	s.Elapsed = time.Since(s.Start)
	log.Append("\nCompilation completed in " + output.FormatMinutes(s.Elapsed))
	d.Console.Success(s.Elapsed, s.LogName())
	return nil
}

// reportFailure prints the operator message for an invocation error. Each
// class has its own wording so a missing runtime is never mistaken for a
// failed build.
func (d *Driver) reportFailure(err error) {
	var (
		exitErr     *build.ExitError
		notFoundErr *build.RuntimeNotFoundError
		unexpected  *build.UnexpectedError
	)
	switch {
	case errors.As(err, &exitErr):
		d.Console.Errorf("Error executing %s command (exit code: %d). See log file for details.",
			exitErr.Runtime.Display, exitErr.Code)
	case errors.As(err, &notFoundErr):
		d.Console.Errorf("Error: '%s' command not found. Is %s installed and in PATH?",
			notFoundErr.Runtime.Binary, notFoundErr.Runtime.Display)
	case errors.As(err, &unexpected):
		d.Console.Errorf("Unexpected error executing %s: %v", unexpected.Runtime.Display, unexpected.Err)
	default:
		d.Console.Errorf("Unexpected error: %v", err)
	}
}
