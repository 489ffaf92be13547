package session

import (
	"fmt"
	"os"
	"time"
)

// headerTimeFormat matches the local wall-clock stamp in the log header.
const headerTimeFormat = "2006-01-02 15:04:05.000000"

// LogInitError reports that the compile log could not be created.
type LogInitError struct {
	Path string
	Err  error
}

func (e *LogInitError) Error() string {
	return fmt.Sprintf("creating log file %s: %v", e.Path, e.Err)
}

func (e *LogInitError) Unwrap() error { return e.Err }

// Log is the append-only compile log. The file is opened and closed on
// every write; no handle is held between entries.
type Log struct {
	Path string

	// Warn is called when an append fails. Appends never return errors.
	Warn func(err error)

	now func() time.Time
}

// NewLog returns a Log for path. warn may be nil.
func NewLog(path string, warn func(error)) *Log {
	return &Log{Path: path, Warn: warn, now: time.Now}
}

// Init creates or truncates the log and writes the creation header.
func (l *Log) Init() error {
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	header := fmt.Sprintf("# Compilation Log - %s\n\n", now().Format(headerTimeFormat))
	if err := os.WriteFile(l.Path, []byte(header), 0o644); err != nil {
		return &LogInitError{Path: l.Path, Err: err}
	}
	return nil
}

// Append writes text followed by a newline. Failures are reported through
// Warn and otherwise ignored.
func (l *Log) Append(text string) {
	if err := l.append(text); err != nil && l.Warn != nil {
		l.Warn(err)
	}
}

func (l *Log) append(text string) error {
	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(text + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
