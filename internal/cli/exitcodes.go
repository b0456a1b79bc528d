package cli

import "errors"

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	// Use for: Normal, successful command execution.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Storage errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Task not found, column not found,
	// or any case where a resource ID doesn't exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Invalid configuration, corrupted snapshots, or data that cannot be processed.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty task content, invalid priority values, malformed due dates,
	// or any case where input fails validation rules.
	ExitValidation = 5
)

// CommandError carries the process exit code for a failed command
type CommandError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns the exit code for err: ExitSuccess for nil, the carried
// code for a *CommandError, and ExitError otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}
	return ExitError
}
