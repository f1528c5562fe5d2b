package git

import (
	"errors"
	"fmt"
)

var errInvalidUTF8 = errors.New("invalid UTF-8")

// LaunchError reports that git could not be started at all (missing binary, permissions).
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to run `%s`: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// CommandError reports that git started but exited with a non-zero status.
// HasExitCode is false when the process was terminated by a signal.
type CommandError struct {
	Command     string
	ExitCode    int
	HasExitCode bool
	Stderr      string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("`%s` reported non-zero exit-status", e.Command)
	if e.HasExitCode {
		msg += fmt.Sprintf(" (%d)", e.ExitCode)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// EncodingError reports output that is not valid text where text is required.
type EncodingError struct {
	Command string
	Err     error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to read `%s` output as UTF-8 string: %v", e.Command, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
