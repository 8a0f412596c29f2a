package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/raveheart1/changekit/internal/changelog"
)

var (
	versionStyle  = color.New(color.FgCyan, color.Bold).SprintFunc()
	dateStyle     = color.New(color.Faint).SprintFunc()
	sectionStyle  = color.New(color.FgYellow, color.Bold).SprintFunc()
	breakingStyle = color.New(color.FgRed, color.Bold).SprintFunc()
	scopeStyle    = color.New(color.Bold).SprintFunc()
	hashStyle     = color.New(color.Faint).SprintFunc()
)

// Terminal renders a compact colored summary for interactive use.
// Options.Plain drops colors and icons for scripting.
func Terminal(c *changelog.Changelog, opts Options, w io.Writer) error {
	if len(c.Versions) == 0 {
		_, err := fmt.Fprintln(w, "No commits found.")
		return err
	}

	width := terminalWidth()

	for i := range c.Versions {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeTerminalVersion(&c.Versions[i], opts, width, w); err != nil {
			return err
		}
	}
	return nil
}

func writeTerminalVersion(v *changelog.Version, opts Options, width int, w io.Writer) error {
	header := versionLabel(v)
	date := ""
	if !v.Date().IsZero() {
		date = v.Date().Format("2006-01-02")
	}

	if opts.Plain {
		if date != "" {
			header += "  " + date
		}
	} else {
		header = versionStyle(header)
		if date != "" {
			header += "  " + dateStyle(date)
		}
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	if breaking := breakingCommits(v); len(breaking) > 0 {
		title := "Breaking Changes"
		if !opts.Plain {
			title = breakingStyle(title)
		}
		if err := writeTerminalSection(title, breaking, opts, width, w); err != nil {
			return err
		}
	}

	for _, sec := range sections(v) {
		title := sec.Title
		if !opts.Plain {
			title = sectionStyle(title)
		}
		if err := writeTerminalSection(title, sec.Commits, opts, width, w); err != nil {
			return err
		}
	}
	return nil
}

func writeTerminalSection(title string, commits []changelog.Commit, opts Options, width int, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "  %s\n", title); err != nil {
		return err
	}
	for _, c := range commits {
		line := terminalCommitLine(c, opts)
		if opts.Plain && width > 8 && len(line) > width-4 {
			line = line[:width-7] + "..."
		}
		if _, err := fmt.Fprintf(w, "    %s\n", line); err != nil {
			return err
		}
	}
	return nil
}

func terminalCommitLine(c changelog.Commit, opts Options) string {
	var b strings.Builder
	if c.Classification.Scope != "" {
		if opts.Plain {
			b.WriteString(c.Classification.Scope + ": ")
		} else {
			b.WriteString(scopeStyle(c.Classification.Scope) + ": ")
		}
	}
	b.WriteString(c.Classification.Subject)
	if opts.Plain {
		b.WriteString(" (" + shortHash(c.Hash) + ")")
	} else {
		b.WriteString(" " + hashStyle(shortHash(c.Hash)))
	}
	return b.String()
}

// terminalWidth returns the stdout terminal width, or 0 when stdout is not
// a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
