// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task reference).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// FeedError indicates the feed could not be loaded. The command still
	// rendered the sample tasks.
	FeedError = 3
)
