package build

import (
	"errors"
	"fmt"
)

var (
	ErrRuntimeNotFound = errors.New("container runtime not found")
	ErrCommandFailed   = errors.New("container command failed")
	ErrUnexpected      = errors.New("unexpected container error")
)

// RuntimeNotFoundError reports that the runtime binary could not be located.
type RuntimeNotFoundError struct {
	Runtime Runtime
	Err     error
}

func (e *RuntimeNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRuntimeNotFound, e.Runtime.Binary)
}

func (e *RuntimeNotFoundError) Unwrap() []error { return []error{ErrRuntimeNotFound, e.Err} }

// ExitError reports a container that ran and exited non-zero.
type ExitError struct {
	Runtime Runtime
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s with exit code %d", ErrCommandFailed, e.Code)
}

func (e *ExitError) Unwrap() error { return ErrCommandFailed }

// UnexpectedError wraps any other failure while invoking the runtime.
type UnexpectedError struct {
	Runtime Runtime
	Err     error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("%s: %v", ErrUnexpected, e.Err)
}

func (e *UnexpectedError) Unwrap() []error { return []error{ErrUnexpected, e.Err} }
