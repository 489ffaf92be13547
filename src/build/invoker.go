package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// waitDelay is how long a runtime gets to stop after SIGTERM before it is
// killed and its output pipes are closed.
const waitDelay = 5 * time.Second

// Recorder receives the durable log trail of an invocation.
type Recorder interface {
	Append(text string)
}

// Notifier receives operator-facing progress.
type Notifier interface {
	Progress(description string)
}

// Invoker runs an Invocation synchronously and records its output.
type Invoker struct {
	Log     Recorder
	Notify  Notifier      // optional
	Timeout time.Duration // zero means no limit
	Logger  *slog.Logger
}

// NewInvoker creates an Invoker writing its trail to log.
func NewInvoker(log Recorder, notify Notifier, logger *slog.Logger) *Invoker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Invoker{
		Log:    log,
		Notify: notify,
		Logger: logger,
	}
}

// Invoke executes inv once and blocks until it exits.
//
// Captured stdout and stderr are appended to the log whatever the outcome.
// A non-zero exit returns the Result together with an *ExitError; a missing
// runtime returns *RuntimeNotFoundError; anything else returns
// *UnexpectedError. Nothing is retried.
func (iv *Invoker) Invoke(ctx context.Context, inv Invocation) (*Result, error) {
	rt := inv.Runtime()

	iv.Log.Append(fmt.Sprintf("\n\n==== %s ====", inv.Description()))
	iv.Log.Append("Command: " + inv.String())

	if iv.Notify != nil {
		iv.Notify.Progress(inv.Description())
	}

	if iv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, iv.Timeout)
		defer cancel()
	}

	argv := inv.Argv()
	iv.Logger.Debug("exec", "runtime", rt.Name, "argv", argv)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// SIGTERM lets the runtime client forward the stop to its container.
	cmd.Cancel = func() error {
		if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
	cmd.WaitDelay = waitDelay

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		if isNotFound(runErr) {
			iv.Log.Append(fmt.Sprintf("\nERROR: %s not found on system", rt.Display))
			return nil, &RuntimeNotFoundError{Runtime: rt, Err: runErr}
		}
		iv.Log.Append(fmt.Sprintf("\nUNEXPECTED ERROR: %v", runErr))
		return nil, &UnexpectedError{Runtime: rt, Err: runErr}
	}

	result := &Result{
		ExitCode: exitCode(cmd.ProcessState),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: elapsed,
	}
	iv.record(result)

	iv.Logger.Debug("exited", "code", result.ExitCode, "elapsed", elapsed)

	// Attribute a stopped runtime to the deadline or signal, not the build.
	if ctxErr := ctx.Err(); ctxErr != nil && exitErr != nil {
		err := fmt.Errorf("run interrupted after %s: %w", elapsed.Round(time.Millisecond), ctxErr)
		iv.Log.Append(fmt.Sprintf("\nUNEXPECTED ERROR: %v", err))
		return result, &UnexpectedError{Runtime: rt, Err: err}
	}

	if result.ExitCode != 0 {
		iv.Log.Append(fmt.Sprintf("\nERROR: Command failed with exit code %d", result.ExitCode))
		return result, &ExitError{Runtime: rt, Code: result.ExitCode}
	}

	return result, nil
}

// record appends non-empty output streams to the log.
func (iv *Invoker) record(r *Result) {
	if r.Stdout != "" {
		iv.Log.Append("\nSTDOUT:")
		iv.Log.Append(r.Stdout)
	}
	if r.Stderr != "" {
		iv.Log.Append("\nSTDERR:")
		iv.Log.Append(r.Stderr)
	}
}

// isNotFound reports whether err means the runtime binary does not exist,
// either on PATH or at an explicit path.
func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// exitCode returns the process exit status, or the negated signal number
// when the process was killed by a signal.
func exitCode(ps *os.ProcessState) int {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return -int(ws.Signal())
	}
	return ps.ExitCode()
}
