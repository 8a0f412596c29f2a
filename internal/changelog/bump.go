package changelog

// baselineVersion is the tag given to the very first release of a
// repository with no prior tags. auto/major/minor/patch directives all
// resolve here: the first release is a pre-1.0 baseline, not a bump off
// 0.0.0.
const baselineVersion = "0.1.0"

// applyBump resolves the tag of the newest version when it is pending
// (untagged). All older versions keep their real tags; at most one bucket
// is ever bumped per run.
//
// Directives:
//   - "" or "none": leave the pending version unresolved.
//   - "auto": any breaking commit bumps major, else any feature commit
//     bumps minor, else patch. Unrecognized commits count as patch.
//   - "major", "minor", "patch": force that component bump off the previous
//     released version, ignoring classifications.
//   - anything else: must be a valid semver literal, used verbatim.
func applyBump(versions []Version, directive string) error {
	if len(versions) == 0 || versions[0].Released() {
		return nil
	}
	pending := &versions[0]

	switch directive {
	case "", "none":
		return nil
	case "auto":
		return bumpOffPrevious(pending, versions[1:], autoBumpKind(pending.Commits))
	case "major":
		return bumpOffPrevious(pending, versions[1:], BumpMajor)
	case "minor":
		return bumpOffPrevious(pending, versions[1:], BumpMinor)
	case "patch":
		return bumpOffPrevious(pending, versions[1:], BumpPatch)
	default:
		parsed, err := ParseSemver(directive)
		if err != nil {
			return err
		}
		pending.Tag = parsed.String()
		pending.Bump = BumpExplicit
		return nil
	}
}

// autoBumpKind derives the bump severity from the classifications of the
// pending bucket's commits.
func autoBumpKind(commits []Commit) Bump {
	kind := BumpPatch
	for _, c := range commits {
		if c.Classification.Breaking {
			return BumpMajor
		}
		if c.Classification.Feature {
			kind = BumpMinor
		}
	}
	return kind
}

// bumpOffPrevious applies a component bump off the most recent released
// version, falling back to the fixed baseline when no release exists yet.
func bumpOffPrevious(pending *Version, older []Version, kind Bump) error {
	previous, ok := previousSemver(older)
	if !ok {
		pending.Tag = baselineVersion
		pending.Bump = kind
		return nil
	}

	pending.Tag = previous.Bumped(kind).String()
	pending.Bump = kind
	return nil
}

// previousSemver finds the newest released version whose tag parses as a
// semantic version. Tags outside semver (e.g. "nightly") are passed over.
func previousSemver(older []Version) (Semver, bool) {
	for i := range older {
		if !older[i].Released() {
			continue
		}
		if parsed, err := ParseSemver(older[i].Tag); err == nil {
			return parsed, true
		}
	}
	return Semver{}, false
}
