// Package errors provides structured CLI error types for tik.
//
// CLIError wraps errors with user-facing messages, hints, and exit codes
// to provide consistent, actionable error output across all commands.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes for CLI errors.
const (
	ExitSuccess = 0  // Successful execution
	ExitGeneral = 1  // General error
	ExitConfig  = 4  // Configuration error
	ExitUsage   = 64 // Command line usage error (BSD convention)
)

// CLIError represents a user-facing CLI error with actionable guidance.
type CLIError struct {
	// Message is the primary error message shown to the user.
	Message string

	// Hint provides actionable guidance on how to fix the error.
	Hint string

	// Cause is the underlying error, if any.
	Cause error

	// Code is the exit code for the CLI.
	Code int
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// New creates a new CLIError with the given message and exit code.
func New(code int, message string) *CLIError {
	return &CLIError{
		Message: message,
		Code:    code,
	}
}

// Wrap wraps an existing error with a CLIError.
func Wrap(code int, message string, cause error) *CLIError {
	return &CLIError{
		Message: message,
		Cause:   cause,
		Code:    code,
	}
}

// WithHint adds a hint to the error.
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// As is a convenience function for errors.As with CLIError.
func As(err error, target **CLIError) bool {
	return errors.As(err, target)
}

// --- Common error constructors ---

// UnknownInput returns an error for an argument that is neither a duration,
// a preset, nor a session name.
func UnknownInput(input string) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Unrecognized timer input: %s", input),
		Hint:    "Pass a duration like '25m' or '1h30m', or a preset or session name from 'tik config show'",
		Code:    ExitConfig,
	}
}

// InvalidDuration returns an error for a malformed or zero duration literal.
func InvalidDuration(input string, cause error) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Invalid duration: %s", input),
		Hint:    "Durations combine h, m, and s components, e.g. '25m', '1h30m', '90s'",
		Cause:   cause,
		Code:    ExitConfig,
	}
}

// ConfigFailed returns an error for configuration load or save failures.
func ConfigFailed(operation string, cause error) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Failed to %s", operation),
		Hint:    "Check your config file with 'tik config path' and verify it is valid TOML",
		Cause:   cause,
		Code:    ExitConfig,
	}
}

// InvalidSession returns an error for a session whose fields do not resolve.
func InvalidSession(name, field string, cause error) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Invalid session %q: bad %s", name, field),
		Hint:    "Session work/break fields must name a preset or a duration literal, and rounds must be at least 1",
		Cause:   cause,
		Code:    ExitConfig,
	}
}

// NotATerminal returns an error when a timer is started without a TTY.
func NotATerminal() *CLIError {
	return &CLIError{
		Message: "Timers need an interactive terminal",
		Hint:    "Run tik directly in a terminal, not behind a pipe or redirect",
		Code:    ExitConfig,
	}
}

// TerminalFailed returns an error when the terminal surface cannot be acquired.
func TerminalFailed(cause error) *CLIError {
	return &CLIError{
		Message: "Failed to take over the terminal",
		Hint:    "Your terminal may not support raw mode",
		Cause:   cause,
		Code:    ExitGeneral,
	}
}

// JournalFailed returns an error for journal read failures.
func JournalFailed(operation string, cause error) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Failed to %s the session journal", operation),
		Hint:    "Check file permissions with 'tik log --path'",
		Cause:   cause,
		Code:    ExitGeneral,
	}
}

// ConfigExists returns an error when 'config init' would overwrite a file.
func ConfigExists(path string) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Config file already exists: %s", path),
		Hint:    "Edit the existing file, or remove it first to regenerate defaults",
		Code:    ExitConfig,
	}
}
