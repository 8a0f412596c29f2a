package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// watchDebounce coalesces the burst of ref updates a single git operation
// produces into one rebuild.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the changelog whenever the repository changes",
	Long: `Watch the repository's .git directory and rebuild the changelog
whenever HEAD, refs or tags change.

Requires --output: each rebuild rewrites the output file in place.
Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("repo", "r", "", "Path to the repository (default: current directory)")
	watchCmd.Flags().StringP("convention", "c", "", "Commit message convention: angular, conventional, basic")
	watchCmd.Flags().StringP("bump", "b", "", "Version bump: none, auto, major, minor, patch, or an explicit semver")
	watchCmd.Flags().StringP("format", "f", "", "Output format: markdown, yaml, json, terminal")
	watchCmd.Flags().StringP("output", "o", "", "Output file (required)")
	watchCmd.Flags().String("tag-filter", "", "Regexp restricting which tags count as releases")
	watchCmd.Flags().String("remote-url", "", "Repository URL for compare links (default: origin remote)")
	watchCmd.Flags().String("project", "", "Project name for document headers")
	watchCmd.Flags().Bool("plain", false, "Plain terminal output (no colors)")
}

func runWatch(cmd *cobra.Command) error {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return fmt.Errorf("watch requires --output")
	}

	// Initial build also validates configuration and repository up front.
	if err := runBuild(cmd); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching repository; writing %s (Ctrl+C to stop)\n", output)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repoFlag, _ := cmd.Flags().GetString("repo")
	gitDir, err := findGitDir(repoFlag)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	// HEAD and packed-refs live in .git; branch and tag refs under refs/.
	// Watching the directories catches ref creation as well as updates.
	for _, dir := range watchDirs(gitDir) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	trigger := make(chan struct{}, 1)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return forwardEvents(ctx, watcher, trigger)
	})
	g.Go(func() error {
		return rebuildLoop(ctx, cmd, trigger)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// forwardEvents turns raw fsnotify events into rebuild triggers.
// The trigger channel has capacity one; extra events are dropped because a
// rebuild is already due.
func forwardEvents(ctx context.Context, watcher *fsnotify.Watcher, trigger chan<- struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			select {
			case trigger <- struct{}{}:
			default:
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching repository: %w", err)
		}
	}
}

// rebuildLoop debounces triggers and rebuilds the changelog.
func rebuildLoop(ctx context.Context, cmd *cobra.Command, trigger <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-trigger:
		}

		// Debounce: let the burst settle, absorbing anything that
		// arrives meanwhile.
		timer := time.NewTimer(watchDebounce)
	settle:
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-trigger:
			case <-timer.C:
				break settle
			}
		}

		if err := runBuild(cmd); err != nil {
			// A rebuild failure (e.g. mid-operation repository state)
			// should not kill the watch.
			fmt.Fprintf(cmd.ErrOrStderr(), "rebuild failed: %v\n", err)
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "changelog rebuilt at %s\n", time.Now().Format("15:04:05"))
	}
}

// findGitDir locates the .git directory for the watched repository.
func findGitDir(path string) (string, error) {
	if path == "" {
		path = "."
	}
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return gitDir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no .git directory found above %s", path)
		}
		dir = parent
	}
}

// watchDirs returns the directories inside .git whose changes signal new
// commits, branch moves or tags. Missing ones are skipped (fresh repos may
// not have refs/tags yet).
func watchDirs(gitDir string) []string {
	dirs := []string{gitDir}
	for _, sub := range []string{"refs", "refs/heads", "refs/tags"} {
		dir := filepath.Join(gitDir, sub)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
