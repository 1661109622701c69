// Package errors defines the categorized errors devkit commands return and
// the hints printed alongside them.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory groups failures by what the user has to change.
type ErrorCategory int

const (
	// Argument means a positional argument or flag was malformed.
	Argument ErrorCategory = iota
	// Configuration means a config file or manifest failed to load.
	Configuration
	// Prerequisite means the project is not in the state a command needs.
	Prerequisite
	// Runtime means the command started but could not finish.
	Runtime
)

func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "argument"
	case Configuration:
		return "config"
	case Prerequisite:
		return "prerequisite"
	case Runtime:
		return "runtime"
	default:
		return "error"
	}
}

// CLIError is returned by commands for failures the user can act on.
// Hints are printed after the message, one per line.
type CLIError struct {
	Category ErrorCategory
	Message  string
	// Remediation lists the steps most likely to fix the failure.
	Remediation []string
	// Usage is the command line the user should have typed, if known.
	Usage string
	Cause error
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

// New returns a CLIError with no underlying cause.
func New(category ErrorCategory, message string, hints ...string) *CLIError {
	return &CLIError{Category: category, Message: message, Remediation: hints}
}

// Usage returns an argument error that prints usage as the expected
// command line.
func Usage(message, usage string, hints ...string) *CLIError {
	e := New(Argument, message, hints...)
	e.Usage = usage
	return e
}

// Wrap attaches a category to err. An empty message keeps err's text;
// otherwise the message is prefixed. Wrap returns nil for a nil err.
func Wrap(err error, category ErrorCategory, message string, hints ...string) *CLIError {
	if err == nil {
		return nil
	}
	e := New(category, err.Error(), hints...)
	if message != "" {
		e.Message = fmt.Sprintf("%s: %v", message, err)
	}
	e.Cause = err
	return e
}

// IsCLIError reports whether err's chain holds a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
