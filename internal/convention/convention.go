// Package convention classifies raw commit messages according to a
// commit-message convention. Conventions are pluggable: anything implementing
// the Convention interface can drive the changelog engine, so Angular-style,
// Conventional-Commits-style and loose "first word" conventions coexist
// without the engine knowing about any grammar.
package convention

import (
	"fmt"
	"sort"
	"strings"
)

// Classification is the result of parsing one commit message.
// It is constructed once per commit and never mutated afterwards.
type Classification struct {
	// Type is the convention's type tag (e.g. "feat", "fix"). Empty when
	// the message did not match the convention's grammar.
	Type string
	// Scope is the optional scope from the header (e.g. "parser" in
	// "fix(parser): ...").
	Scope string
	// Subject is the first line of the message, minus any recognized
	// type/scope prefix.
	Subject string
	// Body is everything after the first line, trimmed.
	Body string
	// Breaking reports whether the commit declares a breaking change.
	Breaking bool
	// Feature reports whether the commit's type denotes a new feature.
	Feature bool
	// Recognized reports whether the message matched the convention's
	// grammar. Unrecognized commits are still included in the changelog;
	// they count as patch-severity changes.
	Recognized bool
}

// Convention maps one raw commit message to a Classification.
// Implementations must be safe for reuse across commits.
type Convention interface {
	// Name returns the convention's registry name.
	Name() string
	// Classify parses a raw commit message. It never fails: messages that
	// do not match the grammar yield a Classification with Recognized=false.
	Classify(message string) Classification
}

// registry of built-in conventions, keyed by name.
var registry = map[string]Convention{
	"angular":      AngularConvention{},
	"conventional": ConventionalCommitConvention{},
	"basic":        BasicConvention{},
}

// ByName returns the built-in convention with the given name.
// Names are matched case-insensitively.
func ByName(name string) (Convention, error) {
	c, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown convention %q (available: %s)",
			name, strings.Join(Names(), ", "))
	}
	return c, nil
}

// Names returns the registry names of all built-in conventions, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// splitMessage splits a raw message into its header (first line) and body.
func splitMessage(message string) (header, body string) {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	header, body, _ = strings.Cut(message, "\n")
	return strings.TrimSpace(header), strings.TrimSpace(body)
}

// hasBreakingFooter reports whether a message body carries a
// "BREAKING CHANGE:" or "BREAKING-CHANGE:" footer.
func hasBreakingFooter(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "BREAKING CHANGE:") || strings.HasPrefix(line, "BREAKING-CHANGE:") {
			return true
		}
	}
	return false
}
