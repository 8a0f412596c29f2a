package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raveheart1/changekit/internal/changelog"
	"github.com/raveheart1/changekit/internal/config"
	"github.com/raveheart1/changekit/internal/convention"
	"github.com/raveheart1/changekit/internal/errors"
	"github.com/raveheart1/changekit/internal/gitrepo"
	"github.com/raveheart1/changekit/internal/render"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the changelog from the repository's commit history",
	Long: `Build the changelog for a git repository.

The commit graph is walked from HEAD, commits are classified with the
selected message convention, releases are cut at tag boundaries, and the
newest (untagged) release gets its version from the bump directive.

Examples:
  changekit build                          # markdown to stdout
  changekit build --output CHANGELOG.md    # write to a file
  changekit build --bump minor             # force a minor bump
  changekit build --bump 1.2.0             # explicit version
  changekit build --format terminal        # colored summary
  changekit build --tag-filter '^v'        # only v-prefixed release tags`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("repo", "r", "", "Path to the repository (default: current directory)")
	buildCmd.Flags().StringP("convention", "c", "", "Commit message convention: angular, conventional, basic")
	buildCmd.Flags().StringP("bump", "b", "", "Version bump: none, auto, major, minor, patch, or an explicit semver")
	buildCmd.Flags().StringP("format", "f", "", "Output format: markdown, yaml, json, terminal")
	buildCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	buildCmd.Flags().String("tag-filter", "", "Regexp restricting which tags count as releases")
	buildCmd.Flags().String("remote-url", "", "Repository URL for compare links (default: origin remote)")
	buildCmd.Flags().String("project", "", "Project name for document headers")
	buildCmd.Flags().Bool("plain", false, "Plain terminal output (no colors)")
}

// runBuild loads configuration, applies flag overrides, and writes the
// rendered changelog.
func runBuild(cmd *cobra.Command) error {
	cfg, err := loadConfigWithOverrides(cmd)
	if err != nil {
		return err
	}
	plain, _ := cmd.Flags().GetBool("plain")

	repo, err := gitrepo.Open(cfg.Repo)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Repository,
			fmt.Sprintf("opening repository at %q", cfg.Repo),
			"Run changekit inside a git repository, or pass --repo <path>")
	}

	log, err := buildChangelog(cmd, repo, cfg)
	if err != nil {
		return err
	}

	opts := render.Options{
		Project:   cfg.Project,
		RemoteURL: cfg.RemoteURL,
		Plain:     plain,
	}
	if opts.Project == "" {
		opts.Project = filepath.Base(repo.Root())
	}
	if opts.RemoteURL == "" {
		opts.RemoteURL = repo.RemoteURL()
	}

	renderer, err := render.ByFormat(cfg.Format)
	if err != nil {
		return errors.Wrap(err, errors.Argument)
	}

	return writeOutput(cfg.Output, func(w io.Writer) error {
		return renderer(log, opts, w)
	})
}

// buildChangelog runs the engine, showing a spinner on interactive terminals
// while the history is scanned.
func buildChangelog(cmd *cobra.Command, repo *gitrepo.Repository, cfg *config.Configuration) (*changelog.Changelog, error) {
	conv, err := convention.ByName(cfg.Convention)
	if err != nil {
		return nil, errors.Wrap(err, errors.Argument)
	}

	var filter *regexp.Regexp
	if cfg.TagFilter != "" {
		filter, err = regexp.Compile(cfg.TagFilter)
		if err != nil {
			return nil, errors.WrapWithMessage(err, errors.Argument, "invalid tag filter")
		}
	}

	spin := startSpinner("Scanning commit history...")
	log, err := changelog.Build(repo, changelog.BuildOptions{
		Convention: conv,
		Bump:       cfg.Bump,
		TagFilter:  filter,
	})
	stopSpinner(spin)
	if err != nil {
		return nil, errors.Wrap(err, errors.Runtime)
	}
	return log, nil
}

// loadConfigWithOverrides loads configuration and applies any build flags
// the user set explicitly.
func loadConfigWithOverrides(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.Configuration,
			"Check .changekit.yml for syntax errors")
	}

	overrides := map[string]*string{
		"repo":       &cfg.Repo,
		"convention": &cfg.Convention,
		"bump":       &cfg.Bump,
		"format":     &cfg.Format,
		"output":     &cfg.Output,
		"tag-filter": &cfg.TagFilter,
		"remote-url": &cfg.RemoteURL,
		"project":    &cfg.Project,
	}
	for flag, target := range overrides {
		if cmd.Flags().Changed(flag) {
			*target, _ = cmd.Flags().GetString(flag)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, errors.Wrap(err, errors.Argument)
	}
	return cfg, nil
}

// writeOutput writes via the render callback to the output file, or stdout
// when no file is configured.
func writeOutput(path string, renderTo func(io.Writer) error) error {
	if path == "" {
		return renderTo(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "creating output file")
	}
	defer f.Close()

	if err := renderTo(f); err != nil {
		return err
	}
	return f.Close()
}

// startSpinner starts a progress spinner on stderr when it is a terminal.
// Returns nil otherwise; stopSpinner tolerates nil.
func startSpinner(suffix string) *spinner.Spinner {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + suffix
	s.Start()
	return s
}

func stopSpinner(s *spinner.Spinner) {
	if s != nil {
		s.Stop()
	}
}
