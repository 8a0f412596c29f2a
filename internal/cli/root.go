// Package cli wires the changekit commands together with cobra.
package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/raveheart1/changekit/internal/errors"
	"github.com/raveheart1/changekit/internal/gitrepo"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "changekit",
	Short: "Generate a versioned changelog from git history",
	Long: `changekit turns the commit history of a git repository into a structured,
versioned changelog. It walks the commit graph from HEAD (merge-aware),
classifies each commit with a pluggable message convention, groups commits
into releases at tag boundaries, and computes the next release's semantic
version.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			gitrepo.SetDebugLogger(log.Printf)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to project config file (default: .changekit.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

// Execute runs the root command and returns the process exit code.
// Structured errors are rendered with their remediation steps; everything
// else gets the plain error prefix.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
		return exitCodeFor(cliErr.Category)
	}

	errors.PrintError(errors.Wrap(err, errors.Runtime))
	return ExitBuildFailed
}

// exitCodeFor maps an error category to the process exit code.
func exitCodeFor(category errors.ErrorCategory) int {
	switch category {
	case errors.Argument, errors.Configuration:
		return ExitInvalidArguments
	case errors.Repository:
		return ExitNotARepository
	default:
		return ExitBuildFailed
	}
}
