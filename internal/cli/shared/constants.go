// Package shared provides constants and types used across CLI subpackages.
package shared

import (
	"errors"
	"fmt"
)

// Exit codes for the devkit CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a command failed: a structural, validation,
	// sync, or preflight error
	ExitFailure = 1

	// ExitInvalidArguments indicates the command line itself could not be
	// parsed (unknown flag, wrong argument count)
	ExitInvalidArguments = 3
)

// Command group IDs for the root help output.
const (
	GroupRelease       = "release"
	GroupSync          = "sync"
	GroupConfiguration = "configuration"
	GroupInternal      = "internal"
)

// ExitError carries a process exit code through cobra's error return.
// A nil Err means the command already reported the failure itself.
type ExitError struct {
	Code int
	Err  error
}

// NewExitError returns a silent ExitError with the given code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// WithExitCode attaches an exit code to err.
func WithExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
