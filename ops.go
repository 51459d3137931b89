package semver

import (
	"sort"
	"strings"
)

// Parse parses s into a Version, surfacing a typed error on failure (spec
// 7: constructors raise errors rather than degrading to a zero value).
func Parse(s string, opts Options) (*Version, error) {
	return ParseVersion(s, opts)
}

// Valid reports whether s parses as a Version under opts.
func Valid(s string, opts Options) bool {
	_, err := ParseVersion(s, opts)
	return err == nil
}

// Clean strips a leading "v"/"="/whitespace and returns the canonical
// "major.minor.patch[-pre][+build]" form, or ok=false if s does not parse.
func Clean(s string, opts Options) (string, bool) {
	o := opts
	o.Loose = true
	v, err := ParseVersion(s, o)
	if err != nil {
		return "", false
	}
	return v.String(), true
}

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater than
// b.
func Compare(a, b *Version) int {
	return a.Compare(b)
}

// Diff reports the release kind that separates a from b (e.g. "major",
// "preminor"), or "" if the two versions are identical. The more
// significant field that differs wins, with pre-release-vs-release
// treated as its own kind when the main triple is equal.
func Diff(a, b *Version) ReleaseKind {
	if a.Compare(b) == 0 {
		return ""
	}
	lo, hi := a, b
	if lo.CompareMain(hi) > 0 {
		lo, hi = hi, lo
	}

	hiPre := hi.IsPrerelease()
	loPre := lo.IsPrerelease()

	if lo.major != hi.major {
		if hiPre {
			return ReleasePremajor
		}
		return ReleaseMajor
	}
	if lo.minor != hi.minor {
		if hiPre {
			return ReleasePreminor
		}
		return ReleaseMinor
	}
	if lo.patch != hi.patch {
		if hiPre {
			return ReleasePrepatch
		}
		return ReleasePatch
	}
	if loPre != hiPre || loPre {
		return ReleasePrerelease
	}
	return ""
}

// Inc applies a release transition to the version string v and returns the
// resulting canonical string.
func Inc(v string, release ReleaseKind, opts Options, pre PreReleaseOptions) (string, error) {
	ver, err := ParseVersion(v, opts)
	if err != nil {
		return "", err
	}
	next, err := ver.Inc(release, pre)
	if err != nil {
		return "", err
	}
	return next.String(), nil
}

// Satisfies reports whether v satisfies the range expression r. Parse
// failures in either argument are swallowed to false, per spec 7's
// predicate policy.
func Satisfies(v string, r string, opts Options) bool {
	ver, err := ParseVersion(v, opts)
	if err != nil {
		return false
	}
	rng, err := ParseRange(r, opts)
	if err != nil {
		return false
	}
	return rng.Test(ver)
}

func parseAndFilter(versions []string, opts Options) []*Version {
	out := make([]*Version, 0, len(versions))
	for _, s := range versions {
		v, err := ParseVersion(s, opts)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// MaxSatisfying returns the highest version in versions that satisfies r,
// or ok=false if none does.
func MaxSatisfying(versions []string, r string, opts Options) (*Version, bool) {
	rng, err := ParseRange(r, opts)
	if err != nil {
		return nil, false
	}
	var best *Version
	for _, v := range parseAndFilter(versions, opts) {
		if !rng.Test(v) {
			continue
		}
		if best == nil || v.Compare(best) > 0 {
			best = v
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// MinSatisfying returns the lowest version in versions that satisfies r, or
// ok=false if none does.
func MinSatisfying(versions []string, r string, opts Options) (*Version, bool) {
	rng, err := ParseRange(r, opts)
	if err != nil {
		return nil, false
	}
	var best *Version
	for _, v := range parseAndFilter(versions, opts) {
		if !rng.Test(v) {
			continue
		}
		if best == nil || v.Compare(best) < 0 {
			best = v
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// Intersects reports whether some version could satisfy both range
// expressions a and b.
func Intersects(a, b string, opts Options) bool {
	ra, err := ParseRange(a, opts)
	if err != nil {
		return false
	}
	rb, err := ParseRange(b, opts)
	if err != nil {
		return false
	}
	return ra.Intersects(rb)
}

// Subset reports whether every version satisfying sub also satisfies sup.
func Subset(sub, sup string, opts Options) bool {
	rsub, err := ParseRange(sub, opts)
	if err != nil {
		return false
	}
	rsup, err := ParseRange(sup, opts)
	if err != nil {
		return false
	}
	return rsub.Subset(rsup)
}

// Gtr reports whether v is greater than every version r could satisfy.
func Gtr(v string, r string, opts Options) bool {
	ver, err := ParseVersion(v, opts)
	if err != nil {
		return false
	}
	rng, err := ParseRange(r, opts)
	if err != nil {
		return false
	}
	return rng.Gtr(ver)
}

// Ltr reports whether v is lower than every version r could satisfy.
func Ltr(v string, r string, opts Options) bool {
	ver, err := ParseVersion(v, opts)
	if err != nil {
		return false
	}
	rng, err := ParseRange(r, opts)
	if err != nil {
		return false
	}
	return rng.Ltr(ver)
}

// Simplify returns a shorter range expression equivalent to r over the
// given candidate versions (spec 6): the satisfying subset of versions,
// collapsed into contiguous runs. If r fails to parse, "" and false are
// returned; if no candidate satisfies r, r's own canonical form is
// returned unchanged.
func Simplify(versions []string, r string, opts Options) (string, bool) {
	rng, err := ParseRange(r, opts)
	if err != nil {
		return "", false
	}
	parsed := parseAndFilter(versions, opts)
	return simplifyVersions(parsed, rng), true
}

// Coerce attempts to extract a valid version from an arbitrary string,
// such as a tag or filename, by locating the first plausible
// major[.minor[.patch]] numeric run and defaulting missing components to
// zero.
func Coerce(s string, opts Options) (*Version, error) {
	s = strings.TrimSpace(s)
	if len(s) > maxLength {
		return nil, rangeErrorf("input exceeds max length %d", maxLength)
	}

	m := reCoerce.FindStringSubmatch(s)
	if m == nil {
		return nil, parseErrorf("no version could be coerced from %q", truncate(s))
	}

	major, err := parseNumericField(orZero(m[1]))
	if err != nil {
		return nil, err
	}
	minor, err := parseNumericField(orZero(m[2]))
	if err != nil {
		return nil, err
	}
	patch, err := parseNumericField(orZero(m[3]))
	if err != nil {
		return nil, err
	}
	v := &Version{major: major, minor: minor, patch: patch, options: opts}
	v.raw = v.String()
	return v, nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// Sort returns a new slice of the valid version strings in versions,
// ascending by Compare. Unparseable entries are dropped.
func Sort(versions []string, opts Options) []string {
	parsed := parseAndFilter(versions, opts)
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Compare(parsed[j]) < 0 })
	out := make([]string, len(parsed))
	for i, v := range parsed {
		out[i] = v.String()
	}
	return out
}

// RSort is Sort in descending order.
func RSort(versions []string, opts Options) []string {
	parsed := parseAndFilter(versions, opts)
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Compare(parsed[j]) > 0 })
	out := make([]string, len(parsed))
	for i, v := range parsed {
		out[i] = v.String()
	}
	return out
}
