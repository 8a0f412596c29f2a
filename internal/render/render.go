// Package render turns an assembled changelog into an output document.
// The engine hands over its version list and nothing else; every format here
// (markdown, YAML, JSON, terminal) is a pure function of that list plus
// rendering options.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/raveheart1/changekit/internal/changelog"
)

// Options configures rendering. The zero value renders a plain document
// with no project title or compare links.
type Options struct {
	// Project is the project name used in document headers.
	Project string
	// RemoteURL, when set, enables version compare links in the footer
	// (e.g. https://github.com/owner/repo).
	RemoteURL string
	// Plain disables colors and icons in the terminal format.
	Plain bool
}

// Renderer writes a changelog to w in one output format.
type Renderer func(c *changelog.Changelog, opts Options, w io.Writer) error

// ByFormat returns the renderer registered under the given format name.
func ByFormat(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "markdown", "md":
		return Markdown, nil
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	case "terminal", "term":
		return Terminal, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (available: markdown, yaml, json, terminal)", format)
	}
}

// section is one rendered group of commits within a version.
type section struct {
	Title   string
	Commits []changelog.Commit
}

// sectionTitles maps classification types to rendered section titles.
var sectionTitles = map[string]string{
	"feat":     "Features",
	"add":      "Features",
	"fix":      "Bug Fixes",
	"perf":     "Performance Improvements",
	"revert":   "Reverts",
	"ref":      "Code Refactoring",
	"refactor": "Code Refactoring",
	"doc":      "Docs",
	"docs":     "Docs",
	"style":    "Style",
	"test":     "Tests",
	"tests":    "Tests",
	"build":    "Build",
	"deps":     "Dependencies",
	"ci":       "Continuous Integration",
	"chore":    "Chores",
	"change":   "Changes",
	"remove":   "Removals",
	"merge":    "Merges",
}

// sectionOrder fixes the order titles appear in; unknown titles sort after
// the known ones, alphabetically, and unrecognized commits come last.
var sectionOrder = []string{
	"Features", "Bug Fixes", "Performance Improvements", "Changes",
	"Removals", "Reverts", "Code Refactoring", "Docs", "Style", "Tests",
	"Build", "Dependencies", "Continuous Integration", "Chores", "Merges",
}

const otherSection = "Other"

// sections groups a version's commits by classification type, preserving
// the walked (most-recent-first) order within each group.
func sections(v *changelog.Version) []section {
	grouped := map[string][]changelog.Commit{}
	for _, c := range v.Commits {
		title := otherSection
		if c.Classification.Recognized {
			if t, ok := sectionTitles[c.Classification.Type]; ok {
				title = t
			} else {
				title = titleCase(c.Classification.Type)
			}
		}
		grouped[title] = append(grouped[title], c)
	}

	rank := map[string]int{}
	for i, title := range sectionOrder {
		rank[title] = i
	}

	titles := make([]string, 0, len(grouped))
	for title := range grouped {
		titles = append(titles, title)
	}
	sort.Slice(titles, func(i, j int) bool {
		ri, iKnown := rank[titles[i]]
		rj, jKnown := rank[titles[j]]
		switch {
		case titles[i] == otherSection:
			return false
		case titles[j] == otherSection:
			return true
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return titles[i] < titles[j]
		}
	})

	out := make([]section, len(titles))
	for i, title := range titles {
		out[i] = section{Title: title, Commits: grouped[title]}
	}
	return out
}

// breakingCommits returns the version's breaking commits, walked order.
func breakingCommits(v *changelog.Version) []changelog.Commit {
	var out []changelog.Commit
	for _, c := range v.Commits {
		if c.Classification.Breaking {
			out = append(out, c)
		}
	}
	return out
}

// versionLabel names a version for display: its tag, or "Unreleased" for a
// pending version with no resolved tag.
func versionLabel(v *changelog.Version) string {
	if v.Tag == "" {
		return "Unreleased"
	}
	return v.Tag
}

// subjectLine renders one commit as a list entry: optional bold scope,
// subject, short hash.
func subjectLine(c changelog.Commit) string {
	var b strings.Builder
	if c.Classification.Scope != "" {
		fmt.Fprintf(&b, "**%s:** ", c.Classification.Scope)
	}
	b.WriteString(c.Classification.Subject)
	fmt.Fprintf(&b, " (%s)", shortHash(c.Hash))
	return b.String()
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
