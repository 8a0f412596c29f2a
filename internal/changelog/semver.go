package changelog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// semverPattern accepts standard semantic versions with an optional leading
// "v", which release tags commonly carry.
var semverPattern = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(?:-([a-zA-Z0-9.-]+))?(?:\+([a-zA-Z0-9.-]+))?$`)

// InvalidVersionError reports a string that does not parse as a semantic
// version.
type InvalidVersionError struct {
	Input string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid semantic version %q", e.Input)
}

// Semver is a parsed semantic version. The leading "v" of an input tag is
// not retained; String always renders the bare form.
type Semver struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Build      string
}

// ParseSemver parses a version string, accepting an optional "v" prefix and
// optional prerelease and build metadata suffixes.
func ParseSemver(s string) (Semver, error) {
	m := semverPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Semver{}, &InvalidVersionError{Input: s}
	}

	// The pattern only admits digit runs, so these cannot fail.
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])

	return Semver{
		Major:      major,
		Minor:      minor,
		Patch:      patch,
		Prerelease: m[4],
		Build:      m[5],
	}, nil
}

// IsSemver reports whether s parses as a semantic version.
func IsSemver(s string) bool {
	_, err := ParseSemver(s)
	return err == nil
}

func (v Semver) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		b.WriteString("-" + v.Prerelease)
	}
	if v.Build != "" {
		b.WriteString("+" + v.Build)
	}
	return b.String()
}

// Bumped returns the version with the given component incremented and the
// lower components reset. Prerelease and build metadata are dropped: a bump
// always lands on a release version.
func (v Semver) Bumped(kind Bump) Semver {
	switch kind {
	case BumpMajor:
		return Semver{Major: v.Major + 1}
	case BumpMinor:
		return Semver{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Semver{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}
