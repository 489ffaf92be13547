package build

import "time"

// Result captures the outcome of a single container run.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Success reports whether the container exited zero.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0
}
