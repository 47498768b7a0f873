// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found, ambiguous, validation).
	UserError = 1

	// ConfigError indicates an invalid config file or a corrupt state file.
	ConfigError = 2

	// StorageError indicates a failure reading or writing files.
	StorageError = 3
)
