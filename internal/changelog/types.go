// Package changelog builds a structured, versioned changelog from the commit
// history of a git repository. The engine walks the commit graph from the
// tip (merge-aware, deterministic order), partitions the walked sequence into
// releases at tag boundaries, and resolves the pending release's semantic
// version from the classifications of its commits.
package changelog

import (
	"time"

	"github.com/raveheart1/changekit/internal/convention"
)

// RawCommit is one commit record as supplied by a history provider.
// Parents are ordered: the first parent is the branch a merge lands on.
type RawCommit struct {
	Hash       string
	Parents    []string
	AuthorDate time.Time
	Message    string
}

// History is a snapshot of a repository's commit graph, retrieved in one
// atomic provider call before the walk begins.
type History struct {
	// Tip is the hash of the current HEAD commit. Empty for a repository
	// with no commits.
	Tip string
	// Commits holds every commit reachable from Tip, each exactly once,
	// in no particular order.
	Commits []RawCommit
	// Tags maps a commit hash to the tag names pointing at it.
	Tags map[string][]string
}

// HistoryProvider supplies the commit graph snapshot the engine consumes.
// Accurate first/second-parent ordering is load-bearing: the walker's output
// is silently corrupted without it.
type HistoryProvider interface {
	History() (*History, error)
}

// Commit is one classified commit in the assembled changelog.
// Constructed once per run, read-only afterwards.
type Commit struct {
	Hash           string
	Parents        []string
	AuthorDate     time.Time
	Message        string
	Classification convention.Classification
}

// Bump records how a version's tag was derived.
type Bump string

const (
	// BumpExisting marks a version taken from a real tag.
	BumpExisting Bump = "existing"
	// BumpExplicit marks a version set verbatim from an explicit semver string.
	BumpExplicit Bump = "explicit"
	// BumpMajor, BumpMinor and BumpPatch mark computed component bumps.
	BumpMajor Bump = "major"
	BumpMinor Bump = "minor"
	BumpPatch Bump = "patch"
	// BumpNone marks a pending version left unresolved ("unreleased").
	BumpNone Bump = "none"
)

// Version is one release bucket: a tag (existing, computed, or empty for an
// unresolved pending release) and the commits attributed to it,
// most-recent-first.
type Version struct {
	Tag     string
	Bump    Bump
	Commits []Commit
}

// Released reports whether this version comes from a real tag.
func (v *Version) Released() bool { return v.Bump == BumpExisting }

// Date returns the author date of the version's newest commit, which for a
// released version is the tagged commit itself. Zero for an empty version.
func (v *Version) Date() time.Time {
	if len(v.Commits) == 0 {
		return time.Time{}
	}
	return v.Commits[0].AuthorDate
}

// Changelog is the engine's sole output artifact: the ordered version list,
// most-recent-release-first. It is a snapshot of the repository's history at
// invocation time; no mutation occurs after assembly.
type Changelog struct {
	Versions []Version
}
