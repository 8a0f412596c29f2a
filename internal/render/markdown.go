package render

import (
	"fmt"
	"io"

	"github.com/raveheart1/changekit/internal/changelog"
)

// Markdown renders the changelog as a markdown document: one section per
// version, commits grouped by classification type, breaking changes called
// out first, and compare links in the footer when a remote URL is known.
//
// The output is idempotent: the same changelog renders to identical bytes.
func Markdown(c *changelog.Changelog, opts Options, w io.Writer) error {
	if err := writeHeader(opts, w); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for i := range c.Versions {
		if err := writeVersion(&c.Versions[i], i > 0, w); err != nil {
			return fmt.Errorf("rendering version %s: %w", versionLabel(&c.Versions[i]), err)
		}
	}

	if err := writeCompareLinks(c, opts, w); err != nil {
		return fmt.Errorf("rendering footer links: %w", err)
	}

	return nil
}

func writeHeader(opts Options, w io.Writer) error {
	title := "Changelog"
	if opts.Project != "" {
		title = opts.Project + " Changelog"
	}
	_, err := fmt.Fprintf(w, "# %s\n\nAll notable changes to this project are documented in this file.\n", title)
	return err
}

func writeVersion(v *changelog.Version, spacer bool, w io.Writer) error {
	if spacer {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	header := "\n## [" + versionLabel(v) + "]"
	if v.Released() && !v.Date().IsZero() {
		header += " - " + v.Date().Format("2006-01-02")
	}
	if _, err := io.WriteString(w, header+"\n"); err != nil {
		return err
	}

	if breaking := breakingCommits(v); len(breaking) > 0 {
		if err := writeSection("Breaking Changes", breaking, w); err != nil {
			return err
		}
	}

	for _, sec := range sections(v) {
		if err := writeSection(sec.Title, sec.Commits, w); err != nil {
			return err
		}
	}

	return nil
}

func writeSection(title string, commits []changelog.Commit, w io.Writer) error {
	if _, err := io.WriteString(w, "\n### "+title+"\n"); err != nil {
		return err
	}
	for _, c := range commits {
		if _, err := io.WriteString(w, "- "+subjectLine(c)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// writeCompareLinks emits one reference link per version: a compare link
// against the next older version, or a release link for the oldest.
func writeCompareLinks(c *changelog.Changelog, opts Options, w io.Writer) error {
	if opts.RemoteURL == "" || len(c.Versions) == 0 {
		return nil
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	for i := range c.Versions {
		link := compareLink(c, i, opts.RemoteURL)
		if link == "" {
			continue
		}
		if _, err := io.WriteString(w, link+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func compareLink(c *changelog.Changelog, index int, repoURL string) string {
	v := &c.Versions[index]
	label := versionLabel(v)

	ref := "HEAD"
	if v.Released() {
		ref = v.Tag
	}

	if index+1 < len(c.Versions) {
		prev := &c.Versions[index+1]
		if !prev.Released() {
			return ""
		}
		return fmt.Sprintf("[%s]: %s/compare/%s...%s", label, repoURL, prev.Tag, ref)
	}
	if !v.Released() {
		return ""
	}
	return fmt.Sprintf("[%s]: %s/releases/tag/%s", label, repoURL, v.Tag)
}
