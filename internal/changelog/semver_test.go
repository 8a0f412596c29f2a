package changelog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSemver(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected Semver
	}{
		"plain version": {
			input:    "1.2.3",
			expected: Semver{Major: 1, Minor: 2, Patch: 3},
		},
		"v prefix": {
			input:    "v0.6.0",
			expected: Semver{Minor: 6},
		},
		"prerelease": {
			input:    "1.0.0-rc.1",
			expected: Semver{Major: 1, Prerelease: "rc.1"},
		},
		"build metadata": {
			input:    "1.0.0+20260828",
			expected: Semver{Major: 1, Build: "20260828"},
		},
		"prerelease and build": {
			input:    "2.1.0-beta.2+exp.sha.5114f85",
			expected: Semver{Major: 2, Minor: 1, Prerelease: "beta.2", Build: "exp.sha.5114f85"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			parsed, err := ParseSemver(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, parsed)
		})
	}
}

func TestParseSemver_Invalid(t *testing.T) {
	for _, input := range []string{"", "1", "1.2", "1.2.x", "version one", "1.2.3.4", "-1.2.3"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSemver(input)
			require.Error(t, err)

			var invalid *InvalidVersionError
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestSemver_String(t *testing.T) {
	assert.Equal(t, "1.2.3", Semver{Major: 1, Minor: 2, Patch: 3}.String())
	assert.Equal(t, "1.0.0-rc.1+build.5", Semver{Major: 1, Prerelease: "rc.1", Build: "build.5"}.String())

	// A "v" prefix on input never survives to output.
	parsed, err := ParseSemver("v1.1.1")
	require.NoError(t, err)
	assert.Equal(t, "1.1.1", parsed.String())
}

func TestSemver_Bumped(t *testing.T) {
	base := Semver{Major: 1, Minor: 2, Patch: 3}

	tests := map[string]struct {
		kind     Bump
		expected string
	}{
		"patch": {kind: BumpPatch, expected: "1.2.4"},
		"minor": {kind: BumpMinor, expected: "1.3.0"},
		"major": {kind: BumpMajor, expected: "2.0.0"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, base.Bumped(tc.kind).String())
		})
	}
}

func TestSemver_Bumped_DropsPrerelease(t *testing.T) {
	base := Semver{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc.1", Build: "abc"}
	assert.Equal(t, "1.2.4", base.Bumped(BumpPatch).String())
}
