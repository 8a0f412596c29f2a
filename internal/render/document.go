package render

import (
	"github.com/raveheart1/changekit/internal/changelog"
)

// Document is the serializable projection of a changelog used by the YAML
// and JSON formats. Field order is stable so repeated runs over an
// unchanged repository produce byte-identical output.
type Document struct {
	Project  string            `yaml:"project,omitempty" json:"project,omitempty"`
	Versions []VersionDocument `yaml:"versions" json:"versions"`
}

// VersionDocument is one version entry in a Document.
type VersionDocument struct {
	Version string           `yaml:"version" json:"version"`
	Date    string           `yaml:"date,omitempty" json:"date,omitempty"`
	Bump    string           `yaml:"bump,omitempty" json:"bump,omitempty"`
	Commits []CommitDocument `yaml:"commits" json:"commits"`
}

// CommitDocument is one commit entry in a VersionDocument.
type CommitDocument struct {
	Hash     string `yaml:"hash" json:"hash"`
	Type     string `yaml:"type,omitempty" json:"type,omitempty"`
	Scope    string `yaml:"scope,omitempty" json:"scope,omitempty"`
	Subject  string `yaml:"subject" json:"subject"`
	Breaking bool   `yaml:"breaking,omitempty" json:"breaking,omitempty"`
	Date     string `yaml:"date" json:"date"`
}

// NewDocument projects a changelog into its serializable form.
func NewDocument(c *changelog.Changelog, opts Options) Document {
	doc := Document{
		Project:  opts.Project,
		Versions: make([]VersionDocument, len(c.Versions)),
	}

	for i := range c.Versions {
		v := &c.Versions[i]

		vd := VersionDocument{
			Version: versionLabel(v),
			Bump:    string(v.Bump),
			Commits: make([]CommitDocument, len(v.Commits)),
		}
		if v.Tag == "" {
			vd.Version = "unreleased"
			vd.Bump = ""
		}
		if !v.Date().IsZero() {
			vd.Date = v.Date().Format("2006-01-02")
		}

		for j, commit := range v.Commits {
			vd.Commits[j] = CommitDocument{
				Hash:     commit.Hash,
				Type:     commit.Classification.Type,
				Scope:    commit.Classification.Scope,
				Subject:  commit.Classification.Subject,
				Breaking: commit.Classification.Breaking,
				Date:     commit.AuthorDate.Format("2006-01-02"),
			}
		}

		doc.Versions[i] = vd
	}

	return doc
}
