package convention

import (
	"regexp"
	"strings"
)

// headerPattern matches a "type(scope)!: subject" commit header.
// The scope and the breaking-change bang are optional.
var headerPattern = regexp.MustCompile(`^([A-Za-z-]+)(?:\(([^)]*)\))?(!)?:\s+(.+)$`)

// angularTypes is the closed set of types the Angular convention accepts.
var angularTypes = map[string]bool{
	"build":    true,
	"chore":    true,
	"ci":       true,
	"deps":     true,
	"doc":      true,
	"docs":     true,
	"feat":     true,
	"fix":      true,
	"perf":     true,
	"ref":      true,
	"refactor": true,
	"revert":   true,
	"style":    true,
	"test":     true,
	"tests":    true,
}

// AngularConvention implements the Angular commit-message convention:
// "type(scope): subject" with a fixed set of types. A breaking change is
// declared either with "!" before the colon or with a BREAKING CHANGE footer.
type AngularConvention struct{}

// Name implements Convention.
func (AngularConvention) Name() string { return "angular" }

// Classify implements Convention.
func (AngularConvention) Classify(message string) Classification {
	return classifyHeader(message, func(typ string) bool {
		return angularTypes[typ]
	})
}

// ConventionalCommitConvention implements the Conventional Commits
// specification: the same header grammar as Angular, but any type token is
// accepted. Only "feat" denotes a feature.
type ConventionalCommitConvention struct{}

// Name implements Convention.
func (ConventionalCommitConvention) Name() string { return "conventional" }

// Classify implements Convention.
func (ConventionalCommitConvention) Classify(message string) Classification {
	return classifyHeader(message, func(string) bool { return true })
}

// classifyHeader parses a "type(scope)!: subject" header, accepting the type
// only when typeOK approves it.
func classifyHeader(message string, typeOK func(string) bool) Classification {
	header, body := splitMessage(message)

	m := headerPattern.FindStringSubmatch(header)
	if m == nil || !typeOK(strings.ToLower(m[1])) {
		return Classification{
			Subject:  header,
			Body:     body,
			Breaking: hasBreakingFooter(body),
		}
	}

	typ := strings.ToLower(m[1])
	return Classification{
		Type:       typ,
		Scope:      m[2],
		Subject:    m[4],
		Body:       body,
		Breaking:   m[3] == "!" || hasBreakingFooter(body),
		Feature:    typ == "feat",
		Recognized: true,
	}
}
