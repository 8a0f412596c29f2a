package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/raveheart1/changekit/internal/changelog"
)

// YAML renders the changelog as a CHANGELOG.yaml document.
func YAML(c *changelog.Changelog, opts Options, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()

	if err := enc.Encode(NewDocument(c, opts)); err != nil {
		return fmt.Errorf("encoding changelog YAML: %w", err)
	}
	return nil
}

// JSON renders the changelog as an indented JSON document.
func JSON(c *changelog.Changelog, opts Options, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(NewDocument(c, opts)); err != nil {
		return fmt.Errorf("encoding changelog JSON: %w", err)
	}
	return nil
}
