package output

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Colors for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// Status prefixes. Harnesses match on these, so the emoji always comes first
// and is never wrapped in color codes.
const (
	IconStart    = "🔨"
	IconProgress = "🔄"
	IconSuccess  = "✅"
	IconError    = "❌"
	IconWarning  = "⚠️"
)

// Console writes operator-facing status lines.
type Console struct {
	Writer io.Writer
	Color  bool
}

// NewConsole creates a console writing to stdout with color auto-detection.
func NewConsole() *Console {
	return &Console{
		Writer: os.Stdout,
		Color:  UseColor(),
	}
}

// Start announces the build.
func (c *Console) Start(what string) {
	fmt.Fprintf(c.Writer, "%s %s...\n", IconStart, what)
}

// Progress announces a container step. Implements build.Notifier.
func (c *Console) Progress(description string) {
	fmt.Fprintf(c.Writer, "%s %s...\n", IconProgress, description)
}

// Success reports the total time and points at the log file.
func (c *Console) Success(elapsed time.Duration, logName string) {
	fmt.Fprintf(c.Writer, "\n%s %s\n", IconSuccess,
		c.colorize("Compilation completed in "+FormatMinutes(elapsed), colorGreen))
	fmt.Fprintf(c.Writer, "Check the log file (%s) for complete process details.\n",
		c.colorize(logName, colorGray))
}

// Errorf prints a failure line.
func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintf(c.Writer, "%s %s\n", IconError, c.colorize(fmt.Sprintf(format, args...), colorRed))
}

// Warnf prints a non-fatal degradation.
func (c *Console) Warnf(format string, args ...any) {
	fmt.Fprintf(c.Writer, "%s %s\n", IconWarning, c.colorize(fmt.Sprintf(format, args...), colorYellow))
}

func (c *Console) colorize(text, color string) string {
	if !c.Color {
		return text
	}
	return color + text + colorReset
}

// FormatMinutes renders a duration as "<m>min <s.ss>s", whole minutes
// followed by the remaining seconds.
func FormatMinutes(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int(d / time.Minute)
	secs := (d - time.Duration(mins)*time.Minute).Seconds()
	return fmt.Sprintf("%dmin %.2fs", mins, secs)
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// IsCI reports whether we are running inside a CI job.
func IsCI() bool {
	return os.Getenv("CI") == "true"
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal() || IsCI()
}
