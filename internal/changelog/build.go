package changelog

import (
	"fmt"
	"regexp"

	"github.com/raveheart1/changekit/internal/convention"
)

// BuildOptions configures one changelog construction run.
type BuildOptions struct {
	// Convention classifies commit messages. Required.
	Convention convention.Convention
	// Bump resolves the pending (untagged) version: "", "none", "auto",
	// "major", "minor", "patch", or an explicit semver string.
	Bump string
	// TagFilter, when set, restricts which tags count as release
	// boundaries. Tags that do not match are ignored entirely.
	TagFilter *regexp.Regexp
}

// Build runs the full construction pipeline: retrieve the history snapshot,
// walk the commit graph, partition at tag boundaries, and resolve the
// pending version. The result is immutable; rebuilding from an unchanged
// repository snapshot yields identical output.
//
// A repository with zero commits is not an error: it produces an empty
// version list.
func Build(provider HistoryProvider, opts BuildOptions) (*Changelog, error) {
	if opts.Convention == nil {
		return nil, fmt.Errorf("build: convention is required")
	}

	history, err := provider.History()
	if err != nil {
		return nil, fmt.Errorf("retrieving history: %w", err)
	}

	ordered := classify(walk(history.Tip, history.Commits), opts.Convention)

	versions, err := group(ordered, history.Tags, opts.TagFilter)
	if err != nil {
		return nil, err
	}

	if err := applyBump(versions, opts.Bump); err != nil {
		return nil, err
	}

	return &Changelog{Versions: versions}, nil
}

// classify attaches a Classification to every walked commit. Classification
// never fails: malformed messages degrade to an unrecognized classification,
// which the bumper treats as patch severity.
func classify(ordered []RawCommit, conv convention.Convention) []Commit {
	commits := make([]Commit, len(ordered))
	for i, raw := range ordered {
		commits[i] = Commit{
			Hash:           raw.Hash,
			Parents:        raw.Parents,
			AuthorDate:     raw.AuthorDate,
			Message:        raw.Message,
			Classification: conv.Classify(raw.Message),
		}
	}
	return commits
}
