package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

// AmbiguousTagError is returned when a single commit carries two or more
// tags. Release attribution would be arbitrary, so the run fails instead of
// silently picking one. Narrowing the tag set with a tag filter resolves it.
type AmbiguousTagError struct {
	Hash string
	Tags []string
}

func (e *AmbiguousTagError) Error() string {
	return fmt.Sprintf("commit %s carries multiple tags (%s); use a tag filter to disambiguate",
		shortHash(e.Hash), strings.Join(e.Tags, ", "))
}

// group partitions the walked commit sequence into version buckets at tag
// boundaries. Walking newest to oldest, a tagged commit opens the bucket
// that carries its tag; the bucket collects the tagged commit and every
// older commit until the next tagged commit. Commits newer than the newest
// tag form the single pending bucket, left untagged for the bumper.
//
// Every commit lands in exactly one bucket: concatenating the buckets in
// order reproduces the walked sequence.
func group(ordered []Commit, tags map[string][]string, filter *regexp.Regexp) ([]Version, error) {
	var versions []Version
	current := -1

	for _, c := range ordered {
		names := matchingTags(tags[c.Hash], filter)
		if len(names) > 1 {
			return nil, &AmbiguousTagError{Hash: c.Hash, Tags: names}
		}

		if len(names) == 1 {
			versions = append(versions, Version{Tag: names[0], Bump: BumpExisting})
			current = len(versions) - 1
		} else if current < 0 {
			versions = append(versions, Version{Bump: BumpNone})
			current = len(versions) - 1
		}

		versions[current].Commits = append(versions[current].Commits, c)
	}

	return versions, nil
}

// matchingTags returns the tag names that pass the filter, or all names when
// no filter is configured.
func matchingTags(names []string, filter *regexp.Regexp) []string {
	if filter == nil {
		return names
	}
	var matched []string
	for _, name := range names {
		if filter.MatchString(name) {
			matched = append(matched, name)
		}
	}
	return matched
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
