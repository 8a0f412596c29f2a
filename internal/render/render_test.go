package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/raveheart1/changekit/internal/changelog"
	"github.com/raveheart1/changekit/internal/convention"
)

func testCommit(hash, typ, scope, subject string, breaking bool, day int) changelog.Commit {
	return changelog.Commit{
		Hash:       strings.Repeat(hash, 40),
		AuthorDate: time.Date(2026, 8, day, 10, 0, 0, 0, time.UTC),
		Message:    typ + ": " + subject,
		Classification: convention.Classification{
			Type:       typ,
			Scope:      scope,
			Subject:    subject,
			Breaking:   breaking,
			Feature:    typ == "feat",
			Recognized: true,
		},
	}
}

// testChangelog has one released version plus a pending one on top.
func testChangelog() *changelog.Changelog {
	return &changelog.Changelog{Versions: []changelog.Version{
		{
			Tag:  "1.1.0",
			Bump: changelog.BumpMinor,
			Commits: []changelog.Commit{
				testCommit("d", "feat", "parser", "support multiline input", false, 20),
				testCommit("c", "fix", "", "handle empty input", false, 19),
			},
		},
		{
			Tag:  "1.0.0",
			Bump: changelog.BumpExisting,
			Commits: []changelog.Commit{
				testCommit("b", "feat", "", "initial feature", true, 10),
				testCommit("a", "chore", "", "scaffold project", false, 9),
			},
		},
	}}
}

func render(t *testing.T, r Renderer, c *changelog.Changelog, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r(c, opts, &buf))
	return buf.String()
}

func TestByFormat(t *testing.T) {
	for _, name := range []string{"markdown", "md", "YAML", "yml", "json", "terminal", "term"} {
		r, err := ByFormat(name)
		require.NoError(t, err, name)
		assert.NotNil(t, r, name)
	}

	_, err := ByFormat("html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestMarkdown(t *testing.T) {
	out := render(t, Markdown, testChangelog(), Options{Project: "changekit"})

	assert.True(t, strings.HasPrefix(out, "# changekit Changelog\n"))
	assert.Contains(t, out, "## [1.1.0]")
	assert.Contains(t, out, "## [1.0.0] - 2026-08-10")
	assert.Contains(t, out, "### Features")
	assert.Contains(t, out, "### Bug Fixes")
	assert.Contains(t, out, "- **parser:** support multiline input ("+strings.Repeat("d", 7)+")")
	assert.Contains(t, out, "- handle empty input ("+strings.Repeat("c", 7)+")")

	// The computed version carries no date; only the tagged one does.
	assert.NotContains(t, out, "## [1.1.0] -")

	// Breaking changes lead the tagged version's sections.
	breakingAt := strings.Index(out, "### Breaking Changes")
	require.Greater(t, breakingAt, -1)
	assert.Less(t, breakingAt, strings.LastIndex(out, "### Features"))
}

func TestMarkdown_SectionOrdering(t *testing.T) {
	c := &changelog.Changelog{Versions: []changelog.Version{{
		Tag:  "0.1.0",
		Bump: changelog.BumpExisting,
		Commits: []changelog.Commit{
			{Hash: "1111111", Classification: convention.Classification{Subject: "mystery"}},
			testCommit("b", "chore", "", "tidy", false, 2),
			testCommit("a", "feat", "", "the feature", false, 1),
		},
	}}}

	out := render(t, Markdown, c, Options{})
	features := strings.Index(out, "### Features")
	chores := strings.Index(out, "### Chores")
	other := strings.Index(out, "### Other")
	require.True(t, features > 0 && chores > 0 && other > 0)
	assert.Less(t, features, chores)
	assert.Less(t, chores, other)
}

func TestMarkdown_CompareLinks(t *testing.T) {
	opts := Options{RemoteURL: "https://github.com/example/changekit"}
	out := render(t, Markdown, testChangelog(), opts)

	assert.Contains(t, out, "[1.1.0]: https://github.com/example/changekit/compare/1.0.0...HEAD")
	assert.Contains(t, out, "[1.0.0]: https://github.com/example/changekit/releases/tag/1.0.0")
}

func TestMarkdown_CompareLinks_Unreleased(t *testing.T) {
	c := testChangelog()
	c.Versions[0].Tag = ""
	c.Versions[0].Bump = changelog.BumpNone

	out := render(t, Markdown, c, Options{RemoteURL: "https://github.com/example/changekit"})
	assert.Contains(t, out, "## [Unreleased]")
	assert.Contains(t, out, "[Unreleased]: https://github.com/example/changekit/compare/1.0.0...HEAD")
}

func TestMarkdown_NoLinksWithoutRemote(t *testing.T) {
	out := render(t, Markdown, testChangelog(), Options{})
	assert.NotContains(t, out, "compare/")
	assert.NotContains(t, out, "releases/tag/")
}

func TestMarkdown_Idempotent(t *testing.T) {
	c := testChangelog()
	opts := Options{Project: "changekit", RemoteURL: "https://github.com/example/changekit"}
	first := render(t, Markdown, c, opts)
	second := render(t, Markdown, c, opts)
	assert.Equal(t, first, second)
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(testChangelog(), Options{Project: "changekit"})

	assert.Equal(t, "changekit", doc.Project)
	require.Len(t, doc.Versions, 2)

	assert.Equal(t, "1.1.0", doc.Versions[0].Version)
	assert.Equal(t, "minor", doc.Versions[0].Bump)
	assert.Equal(t, "2026-08-20", doc.Versions[0].Date)

	assert.Equal(t, "1.0.0", doc.Versions[1].Version)
	assert.Equal(t, "existing", doc.Versions[1].Bump)

	require.Len(t, doc.Versions[1].Commits, 2)
	commit := doc.Versions[1].Commits[0]
	assert.Equal(t, "feat", commit.Type)
	assert.Equal(t, "initial feature", commit.Subject)
	assert.True(t, commit.Breaking)
	assert.Equal(t, "2026-08-10", commit.Date)
}

func TestNewDocument_PendingVersion(t *testing.T) {
	c := testChangelog()
	c.Versions[0].Tag = ""
	c.Versions[0].Bump = changelog.BumpNone

	doc := NewDocument(c, Options{})
	assert.Equal(t, "unreleased", doc.Versions[0].Version)
	assert.Empty(t, doc.Versions[0].Bump)
}

func TestYAML(t *testing.T) {
	out := render(t, YAML, testChangelog(), Options{Project: "changekit"})

	var doc Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "changekit", doc.Project)
	require.Len(t, doc.Versions, 2)
	assert.Equal(t, "1.1.0", doc.Versions[0].Version)
}

func TestJSON(t *testing.T) {
	out := render(t, JSON, testChangelog(), Options{})

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Versions, 2)
	assert.Equal(t, "1.0.0", doc.Versions[1].Version)
	assert.Len(t, doc.Versions[1].Commits, 2)
}

func TestTerminal_Plain(t *testing.T) {
	out := render(t, Terminal, testChangelog(), Options{Plain: true})

	assert.Contains(t, out, "1.1.0  2026-08-20")
	assert.Contains(t, out, "  Features\n")
	assert.Contains(t, out, "    parser: support multiline input ("+strings.Repeat("d", 7)+")")
	assert.Contains(t, out, "  Breaking Changes\n")
	assert.NotContains(t, out, "\x1b[")
}

func TestTerminal_Empty(t *testing.T) {
	out := render(t, Terminal, &changelog.Changelog{}, Options{Plain: true})
	assert.Equal(t, "No commits found.\n", out)
}

func TestSubjectLine(t *testing.T) {
	tests := map[string]struct {
		commit   changelog.Commit
		expected string
	}{
		"with scope": {
			commit:   testCommit("a", "feat", "cli", "add flag", false, 1),
			expected: "**cli:** add flag (aaaaaaa)",
		},
		"no scope": {
			commit:   testCommit("b", "fix", "", "squash bug", false, 1),
			expected: "squash bug (bbbbbbb)",
		},
		"short hash kept": {
			commit:   changelog.Commit{Hash: "abc", Classification: convention.Classification{Subject: "s"}},
			expected: "s (abc)",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, subjectLine(tc.commit))
		})
	}
}
