// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task ID).
	UserError = 1

	// ConfigError indicates an invalid config file or environment.
	ConfigError = 2

	// StoreError indicates the tasks file could not be read or written.
	StoreError = 3
)
