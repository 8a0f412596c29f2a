package cli

// Exit codes for the changekit CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitBuildFailed indicates the changelog could not be built or rendered.
	ExitBuildFailed = 1

	// ExitInvalidArguments indicates invalid command arguments or configuration.
	ExitInvalidArguments = 3

	// ExitNotARepository indicates the target path is not a git repository.
	ExitNotARepository = 4
)
