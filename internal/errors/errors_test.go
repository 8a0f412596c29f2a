package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	tests := map[string]struct {
		category ErrorCategory
		expected string
	}{
		"argument":      {category: Argument, expected: "Argument Error"},
		"configuration": {category: Configuration, expected: "Configuration Error"},
		"repository":    {category: Repository, expected: "Repository Error"},
		"runtime":       {category: Runtime, expected: "Runtime Error"},
		"unknown":       {category: ErrorCategory(99), expected: "Error"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.category.String())
		})
	}
}

func TestConstructors(t *testing.T) {
	err := NewArgumentError("missing repository path", "Pass a path with --repo")
	assert.Equal(t, Argument, err.Category)
	assert.Equal(t, "missing repository path", err.Error())
	assert.Equal(t, []string{"Pass a path with --repo"}, err.Remediation)

	assert.Equal(t, Configuration, NewConfigError("bad config").Category)
	assert.Equal(t, Repository, NewRepositoryError("not a repository").Category)
	assert.Equal(t, Runtime, NewRuntimeError("build failed").Category)
}

func TestWrap(t *testing.T) {
	underlying := stderrors.New("permission denied")

	err := Wrap(underlying, Repository, "Check directory permissions")
	require.NotNil(t, err)
	assert.Equal(t, "permission denied", err.Message)
	assert.True(t, stderrors.Is(err, underlying))

	assert.Nil(t, Wrap(nil, Runtime))
}

func TestWrapWithMessage(t *testing.T) {
	underlying := stderrors.New("no such file")

	err := WrapWithMessage(underlying, Configuration, "reading config")
	require.NotNil(t, err)
	assert.Equal(t, "reading config: no such file", err.Message)
	assert.True(t, stderrors.Is(err, underlying))

	assert.Nil(t, WrapWithMessage(nil, Configuration, "reading config"))
}

func TestAsCLIError(t *testing.T) {
	cliErr := NewRuntimeError("boom")
	assert.Equal(t, cliErr, AsCLIError(cliErr))
	assert.Nil(t, AsCLIError(stderrors.New("plain")))
	assert.Nil(t, AsCLIError(fmt.Errorf("wrapped: %w", cliErr)))
}

func TestFormatErrorPlain(t *testing.T) {
	err := NewArgumentError("unknown bump directive", "Use auto, major, minor, patch, none or a semver string")
	err.Usage = "changekit build --bump <directive>"

	out := FormatErrorPlain(err)
	assert.Contains(t, out, "Error [Argument Error]: unknown bump directive")
	assert.Contains(t, out, "Usage: changekit build --bump <directive>")
	assert.Contains(t, out, "To fix this:")
	assert.Contains(t, out, "Use auto, major, minor, patch, none or a semver string")

	assert.Empty(t, FormatErrorPlain(nil))
}
