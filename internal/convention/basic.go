package convention

import "strings"

// basicTypes maps the first word of a subject line to a loose type tag.
// This covers repositories that never adopted a structured convention.
var basicTypes = map[string]string{
	"add":     "add",
	"added":   "add",
	"change":  "change",
	"changed": "change",
	"doc":     "doc",
	"docs":    "doc",
	"fix":     "fix",
	"fixed":   "fix",
	"merge":   "merge",
	"merged":  "merge",
	"remove":  "remove",
	"removed": "remove",
}

// BasicConvention classifies commits by the first word of the subject line.
// "add"-style commits count as features; a BREAKING CHANGE footer still marks
// a breaking change.
type BasicConvention struct{}

// Name implements Convention.
func (BasicConvention) Name() string { return "basic" }

// Classify implements Convention.
func (BasicConvention) Classify(message string) Classification {
	header, body := splitMessage(message)

	first, _, _ := strings.Cut(header, " ")
	first = strings.ToLower(strings.TrimSuffix(first, ":"))

	typ, ok := basicTypes[first]
	if !ok {
		return Classification{
			Subject:  header,
			Body:     body,
			Breaking: hasBreakingFooter(body),
		}
	}

	return Classification{
		Type:       typ,
		Subject:    header,
		Body:       body,
		Breaking:   hasBreakingFooter(body),
		Feature:    typ == "add",
		Recognized: true,
	}
}
