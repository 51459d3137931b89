package semver

import (
	"strconv"
	"strings"
)

// Options controls the parsing and satisfaction dialect used throughout the
// package: Loose relaxes the grammar (leading "v", leading zeros, extra
// whitespace) and IncludePrerelease disables the pre-release containment
// gate described on Range.Test.
type Options struct {
	Loose             bool
	IncludePrerelease bool
}

type identKind uint8

const (
	identNumber identKind = iota
	identString
)

// ident is one dot-delimited pre-release or build identifier. Pre-release
// identifiers are tagged: a purely numeric identifier compares numerically
// and is always lower-precedence than a string identifier (spec 4.1).
type ident struct {
	kind identKind
	num  uint64
	str  string
}

func parseIdent(s string) ident {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil && isAllDigits(s) {
		return ident{kind: identNumber, num: n}
	}
	return ident{kind: identString, str: s}
}

func (i ident) String() string {
	if i.kind == identNumber {
		return strconv.FormatUint(i.num, 10)
	}
	return i.str
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func compareIdent(a, b ident) int {
	if a.kind == identNumber && b.kind == identNumber {
		return compareUint(a.num, b.num)
	}
	if a.kind == identNumber && b.kind == identString {
		return -1
	}
	if a.kind == identString && b.kind == identNumber {
		return 1
	}
	return compareString(a.str, b.str)
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	return strings.Compare(a, b)
}

// Version is a parsed semantic version: the major.minor.patch triple, an
// ordered pre-release identifier list, and an ordered build identifier
// list. Values are immutable once constructed; Inc returns a new Version
// rather than mutating the receiver.
type Version struct {
	major, minor, patch uint64
	prerelease          []ident
	build               []string
	raw                 string
	options             Options
}

// Major, Minor, and Patch return the three numeric fields.
func (v *Version) Major() uint64 { return v.major }
func (v *Version) Minor() uint64 { return v.minor }
func (v *Version) Patch() uint64 { return v.patch }

// Prerelease returns the dot-joined pre-release identifier list, or "" if
// the version is not a pre-release.
func (v *Version) Prerelease() string {
	if len(v.prerelease) == 0 {
		return ""
	}
	parts := make([]string, len(v.prerelease))
	for i, id := range v.prerelease {
		parts[i] = id.String()
	}
	return strings.Join(parts, ".")
}

// Build returns the dot-joined build-metadata identifier list, or "" if
// none was present.
func (v *Version) Build() string {
	return strings.Join(v.build, ".")
}

// IsPrerelease reports whether the version carries a non-empty pre-release
// identifier list.
func (v *Version) IsPrerelease() bool {
	return len(v.prerelease) > 0
}

// Raw returns the original input string the Version was parsed from (or,
// for a Version returned by Inc, the freshly formatted string for that
// increment).
func (v *Version) Raw() string { return v.raw }

// String returns the canonical "major.minor.patch[-pre][+build]"
// representation. Note this intentionally omits any leading "v": that is
// an input-side convenience, not part of the canonical form.
func (v *Version) String() string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(v.major, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(v.minor, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(v.patch, 10))
	if len(v.prerelease) > 0 {
		b.WriteByte('-')
		b.WriteString(v.Prerelease())
	}
	if len(v.build) > 0 {
		b.WriteByte('+')
		b.WriteString(v.Build())
	}
	return b.String()
}

func (v *Version) clone() *Version {
	nv := &Version{
		major:   v.major,
		minor:   v.minor,
		patch:   v.patch,
		raw:     v.raw,
		options: v.options,
	}
	if len(v.prerelease) > 0 {
		nv.prerelease = append([]ident(nil), v.prerelease...)
	}
	if len(v.build) > 0 {
		nv.build = append([]string(nil), v.build...)
	}
	return nv
}

// ParseVersion parses s into a Version. It always builds a fresh value: a
// plain constructor should never hand back a caller's own instance, even
// when it happens to already satisfy opts.
func ParseVersion(s string, opts Options) (*Version, error) {
	s = strings.TrimSpace(s)
	if len(s) > maxLength {
		return nil, rangeErrorf("version string %q exceeds max length %d", truncate(s), maxLength)
	}

	re := reFull
	if opts.Loose {
		re = reFullLoose
	}
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil, parseErrorf("invalid version %q", s)
	}

	major, err := parseNumericField(m[1])
	if err != nil {
		return nil, err
	}
	minor, err := parseNumericField(m[2])
	if err != nil {
		return nil, err
	}
	patch, err := parseNumericField(m[3])
	if err != nil {
		return nil, err
	}

	v := &Version{major: major, minor: minor, patch: patch, raw: s, options: opts}

	if m[4] != "" {
		for _, part := range strings.Split(m[4], ".") {
			id := parseIdent(part)
			if id.kind == identNumber && id.num > maxSafeInteger {
				return nil, rangeErrorf("pre-release identifier %q overflows safe integer range", part)
			}
			v.prerelease = append(v.prerelease, id)
		}
	}
	if m[5] != "" {
		v.build = strings.Split(m[5], ".")
	}

	return v, nil
}

func parseNumericField(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, rangeErrorf("numeric field %q does not fit in 64 bits", s)
	}
	if n > maxSafeInteger {
		return 0, rangeErrorf("numeric field %q exceeds safe integer cap", s)
	}
	return n, nil
}

func truncate(s string) string {
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}

// CompareMain compares only the major.minor.patch triple, lexicographically.
func (v *Version) CompareMain(o *Version) int {
	if c := compareUint(v.major, o.major); c != 0 {
		return c
	}
	if c := compareUint(v.minor, o.minor); c != 0 {
		return c
	}
	return compareUint(v.patch, o.patch)
}

// ComparePre compares the pre-release identifier lists. A version with no
// pre-release is greater than one that has a pre-release at the same
// major.minor.patch. Otherwise identifiers are compared pairwise; when one
// list runs out before the other, the longer list is greater.
func (v *Version) ComparePre(o *Version) int {
	vEmpty := len(v.prerelease) == 0
	oEmpty := len(o.prerelease) == 0
	switch {
	case vEmpty && oEmpty:
		return 0
	case vEmpty && !oEmpty:
		return 1
	case !vEmpty && oEmpty:
		return -1
	}

	n := len(v.prerelease)
	if len(o.prerelease) > n {
		n = len(o.prerelease)
	}
	for i := 0; i < n; i++ {
		switch {
		case i >= len(v.prerelease):
			return -1
		case i >= len(o.prerelease):
			return 1
		}
		if c := compareIdent(v.prerelease[i], o.prerelease[i]); c != 0 {
			return c
		}
	}
	return 0
}

// CompareBuild compares the build-metadata identifier lists. It has the
// same shape as ComparePre but treats every identifier as an opaque string
// (no numeric promotion), per spec 4.1. Build metadata never affects
// Compare; this exists purely as a deterministic tie-breaker for callers
// that want one (e.g. a stable Sort).
func (v *Version) CompareBuild(o *Version) int {
	vEmpty := len(v.build) == 0
	oEmpty := len(o.build) == 0
	switch {
	case vEmpty && oEmpty:
		return 0
	case vEmpty && !oEmpty:
		return 1
	case !vEmpty && oEmpty:
		return -1
	}

	n := len(v.build)
	if len(o.build) > n {
		n = len(o.build)
	}
	for i := 0; i < n; i++ {
		switch {
		case i >= len(v.build):
			return -1
		case i >= len(o.build):
			return 1
		}
		if c := compareString(v.build[i], o.build[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than
// o, per full SemVer precedence (main triple, then pre-release). Build
// metadata is ignored, per spec.
func (v *Version) Compare(o *Version) int {
	if c := v.CompareMain(o); c != 0 {
		return c
	}
	return v.ComparePre(o)
}

// ReleaseKind names an Inc transition.
type ReleaseKind string

const (
	ReleaseMajor      ReleaseKind = "major"
	ReleaseMinor      ReleaseKind = "minor"
	ReleasePatch      ReleaseKind = "patch"
	ReleasePremajor   ReleaseKind = "premajor"
	ReleasePreminor   ReleaseKind = "preminor"
	ReleasePrepatch   ReleaseKind = "prepatch"
	ReleasePrerelease ReleaseKind = "prerelease"
	ReleasePre        ReleaseKind = "pre"
	ReleaseRelease    ReleaseKind = "release"
)

// PreReleaseOptions parameterizes the "pre" transition: Identifier is the
// optional leading string identifier (e.g. "rc", "beta"); IdentifierBase
// selects whether the numeric tail starts at 0 or 1. nil and false are both
// falsy and yield a base of 0; only an explicit true yields 1.
type PreReleaseOptions struct {
	Identifier     string
	IdentifierBase *bool
}

func (o PreReleaseOptions) base() uint64 {
	if o.IdentifierBase != nil && *o.IdentifierBase {
		return 1
	}
	return 0
}

// isExplicitFalse reports whether IdentifierBase was set to false, as
// opposed to left unset (nil).
func (o PreReleaseOptions) isExplicitFalse() bool {
	return o.IdentifierBase != nil && !*o.IdentifierBase
}

// Inc returns a new Version produced by applying the named release
// transition, per the table in spec 4.1. It never mutates the receiver.
func (v *Version) Inc(release ReleaseKind, opts PreReleaseOptions) (*Version, error) {
	nv := v.clone()

	switch release {
	case ReleaseMajor:
		if nv.minor != 0 || nv.patch != 0 || len(nv.prerelease) == 0 {
			nv.major++
		}
		nv.minor, nv.patch, nv.prerelease = 0, 0, nil

	case ReleaseMinor:
		if nv.patch != 0 || len(nv.prerelease) == 0 {
			nv.minor++
		}
		nv.patch, nv.prerelease = 0, nil

	case ReleasePatch:
		if len(nv.prerelease) == 0 {
			nv.patch++
		}
		nv.prerelease = nil

	case ReleasePremajor:
		nv.patch, nv.prerelease = 0, nil
		nv.minor = 0
		nv.major++
		if err := nv.bumpPre(opts); err != nil {
			return nil, err
		}

	case ReleasePreminor:
		nv.patch, nv.prerelease = 0, nil
		nv.minor++
		if err := nv.bumpPre(opts); err != nil {
			return nil, err
		}

	case ReleasePrepatch:
		nv.prerelease = nil
		nv.patch++
		if err := nv.bumpPre(opts); err != nil {
			return nil, err
		}

	case ReleasePrerelease:
		if len(nv.prerelease) == 0 {
			nv.patch++
		}
		if err := nv.bumpPre(opts); err != nil {
			return nil, err
		}

	case ReleaseRelease:
		if len(nv.prerelease) == 0 {
			return nil, argErrorf("release: %q is not a pre-release", v.raw)
		}
		nv.prerelease = nil

	case ReleasePre:
		if err := nv.bumpPre(opts); err != nil {
			return nil, err
		}

	default:
		return nil, argErrorf("inc: unknown release kind %q", release)
	}

	nv.raw = nv.String()
	return nv, nil
}

// bumpPre implements the "pre" transition in place on the (already cloned)
// receiver.
func (v *Version) bumpPre(opts PreReleaseOptions) error {
	base := opts.base()

	if len(v.prerelease) == 0 {
		v.prerelease = []ident{{kind: identNumber, num: base}}
	} else {
		found := false
		for i := len(v.prerelease) - 1; i >= 0; i-- {
			if v.prerelease[i].kind == identNumber {
				v.prerelease[i].num++
				found = true
				break
			}
		}
		if !found {
			if opts.Identifier != "" && opts.Identifier == v.Prerelease() && opts.isExplicitFalse() {
				return argErrorf("pre: identifier already exists")
			}
			v.prerelease = append(v.prerelease, ident{kind: identNumber, num: base})
		}
	}

	if opts.Identifier != "" {
		candidate := []ident{{kind: identString, str: opts.Identifier}, {kind: identNumber, num: base}}
		if opts.isExplicitFalse() {
			candidate = []ident{{kind: identString, str: opts.Identifier}}
		}
		leadMatches := len(v.prerelease) > 0 && v.prerelease[0].kind == identString && v.prerelease[0].str == opts.Identifier
		if leadMatches {
			if len(v.prerelease) < 2 || v.prerelease[1].kind != identNumber {
				v.prerelease = candidate
			}
		} else {
			v.prerelease = candidate
		}
	}

	return nil
}
