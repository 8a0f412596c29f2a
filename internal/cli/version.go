package cli

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set via ldflags during build.
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Run: func(cmd *cobra.Command, args []string) {
		if versionPlain {
			printPlainVersion()
			return
		}
		printVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
}

// printPlainVersion prints a simple version output for scripting.
func printPlainVersion() {
	fmt.Printf("changekit %s\n", Version)
	fmt.Printf("commit: %s\n", truncateCommit(Commit))
	fmt.Printf("built: %s\n", BuildDate)
	fmt.Printf("go: %s\n", runtime.Version())
	fmt.Printf("platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func printVersion() {
	name := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Printf("%s %s %s\n", name("changekit"), Version, dim("("+truncateCommit(Commit)+")"))
	fmt.Printf("%s\n", dim(fmt.Sprintf("built %s with %s for %s/%s",
		BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)))
}

// truncateCommit shortens the commit hash if it's too long.
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
