// Package gitrepo reads commit history from a git repository using go-git,
// so no git CLI installation is required. It implements the changelog
// engine's HistoryProvider: one atomic snapshot of every commit reachable
// from HEAD, with parent ordering preserved (first parent = mainline), plus
// the tag associations the grouper partitions on.
package gitrepo

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/raveheart1/changekit/internal/changelog"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default it's a no-op.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for repository operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Repository wraps an opened git repository.
type Repository struct {
	repo *git.Repository
}

// Open opens the git repository at the given path, traversing up the
// directory tree to find the repository root. An empty path means the
// current working directory.
func Open(path string) (*Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[gitrepo] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return &Repository{repo: repo}, nil
}

// History returns the full commit graph snapshot reachable from HEAD.
// A repository with no commits yields an empty snapshot, not an error.
func (r *Repository) History() (*changelog.History, error) {
	head, err := r.repo.Head()
	if err == plumbing.ErrReferenceNotFound {
		logDebug("[gitrepo] no HEAD: empty repository")
		return &changelog.History{Tags: map[string][]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	commits, err := r.listCommits(head.Hash())
	if err != nil {
		return nil, err
	}

	tags, err := r.tags()
	if err != nil {
		return nil, err
	}

	logDebug("[gitrepo] snapshot: %d commits, %d tagged", len(commits), len(tags))

	return &changelog.History{
		Tip:     head.Hash().String(),
		Commits: commits,
		Tags:    tags,
	}, nil
}

// listCommits collects every commit reachable from the tip, each exactly
// once, by breadth-first traversal of parent links. Parent order is taken
// straight from the commit objects; the changelog walker depends on it.
func (r *Repository) listCommits(tip plumbing.Hash) ([]changelog.RawCommit, error) {
	var commits []changelog.RawCommit

	seen := map[plumbing.Hash]bool{tip: true}
	queue := []plumbing.Hash{tip}

	for len(queue) > 0 {
		hash := queue[0]
		queue = queue[1:]

		c, err := r.repo.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("reading commit %s: %w", hash, err)
		}

		parents := make([]string, len(c.ParentHashes))
		for i, parent := range c.ParentHashes {
			parents[i] = parent.String()
			if !seen[parent] {
				seen[parent] = true
				queue = append(queue, parent)
			}
		}

		commits = append(commits, changelog.RawCommit{
			Hash:       hash.String(),
			Parents:    parents,
			AuthorDate: c.Author.When,
			Message:    c.Message,
		})
	}

	return commits, nil
}

// tags maps commit hashes to the tag names pointing at them. Annotated tags
// are resolved to their target commit; lightweight tags point directly.
func (r *Repository) tags() (map[string][]string, error) {
	tags := map[string][]string{}

	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	err = iter.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if tagObj, err := r.repo.TagObject(ref.Hash()); err == nil {
			target = tagObj.Target
		} else if err != plumbing.ErrObjectNotFound {
			return fmt.Errorf("resolving tag %s: %w", ref.Name().Short(), err)
		}

		name := ref.Name().Short()
		tags[target.String()] = append(tags[target.String()], name)
		logDebug("[gitrepo] tag %s -> %s", name, target)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	return tags, nil
}

// Root returns the absolute path of the repository worktree root, or empty
// for a bare repository.
func (r *Repository) Root() string {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return ""
	}
	return worktree.Filesystem.Root()
}

// RemoteURL returns a browsable https URL for the "origin" remote, or empty
// when no remote is configured. SCP-style SSH URLs (git@host:owner/repo) are
// rewritten to https so renderers can emit compare links.
func (r *Repository) RemoteURL() string {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		return ""
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return normalizeRemoteURL(urls[0])
}

// normalizeRemoteURL converts common git remote URL shapes to https and
// strips a trailing ".git".
func normalizeRemoteURL(url string) string {
	url = strings.TrimSuffix(url, ".git")

	switch {
	case strings.HasPrefix(url, "git@"):
		// git@host:owner/repo -> https://host/owner/repo
		rest := strings.TrimPrefix(url, "git@")
		host, path, ok := strings.Cut(rest, ":")
		if !ok {
			return ""
		}
		return "https://" + host + "/" + path
	case strings.HasPrefix(url, "ssh://git@"):
		return "https://" + strings.TrimPrefix(url, "ssh://git@")
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return url
	default:
		return ""
	}
}
