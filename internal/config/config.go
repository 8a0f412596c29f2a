// Package config provides hierarchical configuration management for
// changekit using koanf. Configuration is loaded with priority: environment
// variables > project config (.changekit.yml) > user config
// (~/.config/changekit/config.yml) > defaults. YAML is the primary format;
// JSON config files are accepted for compatibility.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/raveheart1/changekit/internal/convention"
	"github.com/raveheart1/changekit/internal/render"
)

// envPrefix is the prefix for environment variable overrides
// (e.g. CHANGEKIT_BUMP=minor).
const envPrefix = "CHANGEKIT_"

// Configuration holds every knob the changelog build reads.
type Configuration struct {
	// Repo is the path to the repository to read. Defaults to the current
	// directory; the repository root is discovered by walking up.
	Repo string `koanf:"repo"`

	// Convention selects the commit-message convention: "angular",
	// "conventional" or "basic".
	Convention string `koanf:"convention"`

	// Bump resolves the pending version: "none", "auto", "major", "minor",
	// "patch", or an explicit semver string.
	Bump string `koanf:"bump"`

	// Format selects the output format: "markdown", "yaml", "json" or
	// "terminal".
	Format string `koanf:"format"`

	// Output is the file the changelog is written to. Empty means stdout.
	Output string `koanf:"output"`

	// TagFilter is a regular expression restricting which tags count as
	// release boundaries. Empty means all tags.
	TagFilter string `koanf:"tag_filter"`

	// RemoteURL overrides the repository URL used for compare links.
	// When empty, the "origin" remote is used if one exists.
	RemoteURL string `koanf:"remote_url"`

	// Project is the project name used in rendered headers. Empty means
	// the repository directory name.
	Project string `koanf:"project"`
}

// defaults returns the built-in configuration values.
func defaults() map[string]any {
	return map[string]any{
		"repo":       ".",
		"convention": "angular",
		"bump":       "auto",
		"format":     "markdown",
		"output":     "",
		"tag_filter": "",
		"remote_url": "",
		"project":    "",
	}
}

// UserConfigPath returns the path to the user-level config file.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "changekit", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file,
// relative to the working directory.
func ProjectConfigPath() string {
	return ".changekit.yml"
}

// Load loads configuration from defaults, user config, project config and
// environment, in increasing priority. projectConfigPath overrides the
// project config location (mainly for tests); empty uses the default.
func Load(projectConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range defaults() {
		k.Set(key, value)
	}

	userPath, err := UserConfigPath()
	if err == nil {
		if err := loadFileConfig(k, userPath, "user"); err != nil {
			return nil, err
		}
	}

	projectPath := ProjectConfigPath()
	if projectConfigPath != "" {
		projectPath = projectConfigPath
	}
	if err := loadFileConfig(k, projectPath, "project"); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadFileConfig loads one config file if it exists, choosing the parser by
// extension (YAML default, JSON for .json files).
func loadFileConfig(k *koanf.Koanf, path, kind string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	var parser koanf.Parser = yaml.Parser()
	if strings.HasSuffix(path, ".json") {
		parser = json.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("loading %s config %s: %w", kind, path, err)
	}
	return nil
}

// envTransform maps CHANGEKIT_TAG_FILTER to tag_filter, etc.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// Validate checks that configuration values reference known conventions,
// formats and valid regular expressions. Bump strings are validated later
// by the engine, which distinguishes directives from semver literals.
func Validate(cfg *Configuration) error {
	if _, err := convention.ByName(cfg.Convention); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := render.ByFormat(cfg.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.TagFilter != "" {
		if _, err := regexp.Compile(cfg.TagFilter); err != nil {
			return fmt.Errorf("config: invalid tag_filter: %w", err)
		}
	}
	return nil
}
