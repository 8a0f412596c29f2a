package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nonexistentProjectConfig keeps a test insulated from a real .changekit.yml
// in the working directory.
func nonexistentProjectConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.yml")
}

func writeProjectConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nonexistentProjectConfig(t))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Repo)
	assert.Equal(t, "angular", cfg.Convention)
	assert.Equal(t, "auto", cfg.Bump)
	assert.Equal(t, "markdown", cfg.Format)
	assert.Empty(t, cfg.Output)
	assert.Empty(t, cfg.TagFilter)
	assert.Empty(t, cfg.RemoteURL)
	assert.Empty(t, cfg.Project)
}

func TestLoad_ProjectConfig(t *testing.T) {
	path := writeProjectConfig(t, ".changekit.yml", `
convention: basic
bump: minor
format: yaml
tag_filter: '^v'
project: example
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "basic", cfg.Convention)
	assert.Equal(t, "minor", cfg.Bump)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "^v", cfg.TagFilter)
	assert.Equal(t, "example", cfg.Project)
	// Untouched keys keep their defaults.
	assert.Equal(t, ".", cfg.Repo)
}

func TestLoad_JSONConfig(t *testing.T) {
	path := writeProjectConfig(t, "config.json", `{"convention": "conventional", "format": "json"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "conventional", cfg.Convention)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeProjectConfig(t, ".changekit.yml", "bump: minor\n")
	t.Setenv("CHANGEKIT_BUMP", "major")
	t.Setenv("CHANGEKIT_TAG_FILTER", `^\d`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "major", cfg.Bump)
	assert.Equal(t, `^\d`, cfg.TagFilter)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeProjectConfig(t, ".changekit.yml", "convention: [unclosed\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project config")
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		mutate  func(*Configuration)
		wantErr string
	}{
		"valid defaults": {
			mutate: func(*Configuration) {},
		},
		"unknown convention": {
			mutate:  func(c *Configuration) { c.Convention = "gitmoji" },
			wantErr: "unknown convention",
		},
		"unknown format": {
			mutate:  func(c *Configuration) { c.Format = "pdf" },
			wantErr: "unknown output format",
		},
		"bad tag filter": {
			mutate:  func(c *Configuration) { c.TagFilter = "(" },
			wantErr: "invalid tag_filter",
		},
		"explicit bump accepted": {
			mutate: func(c *Configuration) { c.Bump = "2.0.0" },
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := &Configuration{Convention: "angular", Bump: "auto", Format: "markdown"}
			tc.mutate(cfg)

			err := Validate(cfg)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestProjectConfigPath(t *testing.T) {
	assert.Equal(t, ".changekit.yml", ProjectConfigPath())
}

func TestUserConfigPath(t *testing.T) {
	path, err := UserConfigPath()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, filepath.Join("changekit", "config.yml")))
}
