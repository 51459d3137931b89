package semver

import (
	"sort"
	"strings"
)

// Range is a disjunction of alternatives, each alternative a conjunction of
// Comparators to be ANDed together (spec 4.3-4.7). It is produced once by
// parsing/desugaring a range expression and never mutated afterward.
type Range struct {
	set     [][]*Comparator
	raw     string
	options Options
}

// partial is an intermediate parse of a (possibly wildcarded) version
// fragment used while desugaring hyphen/tilde/caret/x-range tokens. level
// counts how many of major/minor/patch were given explicitly: 0 means the
// whole thing was a wildcard ("*", "x", or ""), 3 means a fully concrete
// version (with optional pre-release/build).
type partial struct {
	level               int
	major, minor, patch uint64
	prerelease          []ident
	build               []string
}

func parsePartial(s string, loose bool) (*partial, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" || s == "x" || s == "X" {
		return &partial{level: 0}, nil
	}

	re := rePartial
	if loose {
		re = rePartialLoose
	}
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil, parseErrorf("invalid partial version %q", s)
	}

	p := &partial{}
	if isWildcardToken(m[1]) {
		return p, nil
	}
	maj, err := parseNumericField(m[1])
	if err != nil {
		return nil, err
	}
	p.major = maj

	if isWildcardToken(m[2]) {
		p.level = 1
		return p, nil
	}
	min, err := parseNumericField(m[2])
	if err != nil {
		return nil, err
	}
	p.minor = min

	if isWildcardToken(m[3]) {
		p.level = 2
		return p, nil
	}
	pat, err := parseNumericField(m[3])
	if err != nil {
		return nil, err
	}
	p.patch = pat
	p.level = 3

	if m[4] != "" {
		for _, part := range strings.Split(m[4], ".") {
			id := parseIdent(part)
			if id.kind == identNumber && id.num > maxSafeInteger {
				return nil, rangeErrorf("pre-release identifier %q overflows safe integer range", part)
			}
			p.prerelease = append(p.prerelease, id)
		}
	}
	if m[5] != "" {
		p.build = strings.Split(m[5], ".")
	}
	return p, nil
}

func isWildcardToken(s string) bool {
	return s == "" || s == "x" || s == "X" || s == "*"
}

func mkVer(major, minor, patch uint64, withZeroPre bool, opts Options) *Version {
	v := &Version{major: major, minor: minor, patch: patch, options: opts}
	if withZeroPre {
		v.prerelease = []ident{{kind: identNumber, num: 0}}
	}
	v.raw = v.String()
	return v
}

func mkVerFull(major, minor, patch uint64, prerelease []ident, opts Options) *Version {
	v := &Version{major: major, minor: minor, patch: patch, options: opts}
	if len(prerelease) > 0 {
		v.prerelease = append([]ident(nil), prerelease...)
	}
	v.raw = v.String()
	return v
}

func mkComparator(op string, v *Version, opts Options) *Comparator {
	return &Comparator{operator: op, version: v, options: opts}
}

func pairComparators(lower, upper *Version, opts Options) []*Comparator {
	return []*Comparator{mkComparator(">=", lower, opts), mkComparator("<", upper, opts)}
}

func anyVersionComparators(opts Options) []*Comparator {
	v := mkVer(0, 0, 0, opts.IncludePrerelease, opts)
	return []*Comparator{mkComparator(">=", v, opts)}
}

// expandWildcardComparator implements spec 4.3 components 2 and 5: a bare
// comparator (or no comparator at all) applied to a partial version with a
// wildcard component. Wildcards are zero-filled for inclusive/lower-facing
// operators and bumped to the next unit for operators that must step
// outside the wildcarded bucket entirely.
func expandWildcardComparator(op string, p *partial, opts Options) ([]*Comparator, error) {
	if p.level == 0 {
		return anyVersionComparators(opts), nil
	}
	if p.level == 3 {
		v := mkVerFull(p.major, p.minor, p.patch, p.prerelease, opts)
		return []*Comparator{mkComparator(op, v, opts)}, nil
	}

	zmaj, zmin := p.major, p.minor
	nmaj, nmin := p.major, p.minor
	if p.level == 1 {
		nmaj++
	} else {
		nmin++
	}

	switch op {
	case "", "=":
		zero := mkVer(zmaj, zmin, 0, false, opts)
		next := mkVer(nmaj, nmin, 0, true, opts)
		return pairComparators(zero, next, opts), nil
	case ">=":
		return []*Comparator{mkComparator(">=", mkVer(zmaj, zmin, 0, false, opts), opts)}, nil
	case "<":
		return []*Comparator{mkComparator("<", mkVer(zmaj, zmin, 0, true, opts), opts)}, nil
	case ">":
		return []*Comparator{mkComparator(">=", mkVer(nmaj, nmin, 0, false, opts), opts)}, nil
	case "<=":
		return []*Comparator{mkComparator("<", mkVer(nmaj, nmin, 0, true, opts), opts)}, nil
	}
	return nil, parseErrorf("unsupported operator %q on partial version", op)
}

// expandTilde implements spec 4.3 component 3.
func expandTilde(p *partial, opts Options) ([]*Comparator, error) {
	if p.level == 0 {
		return anyVersionComparators(opts), nil
	}
	if p.level == 1 {
		lower := mkVer(p.major, 0, 0, false, opts)
		upper := mkVer(p.major+1, 0, 0, true, opts)
		return pairComparators(lower, upper, opts), nil
	}
	patch := uint64(0)
	var pre []ident
	if p.level == 3 {
		patch = p.patch
		pre = p.prerelease
	}
	lower := mkVerFull(p.major, p.minor, patch, pre, opts)
	upper := mkVer(p.major, p.minor+1, 0, true, opts)
	return pairComparators(lower, upper, opts), nil
}

// expandCaret implements spec 4.3 component 4.
func expandCaret(p *partial, opts Options) ([]*Comparator, error) {
	if p.level == 0 {
		return anyVersionComparators(opts), nil
	}
	if p.level == 1 {
		lower := mkVer(p.major, 0, 0, false, opts)
		upper := mkVer(p.major+1, 0, 0, true, opts)
		return pairComparators(lower, upper, opts), nil
	}
	if p.level == 2 {
		lower := mkVer(p.major, p.minor, 0, false, opts)
		var upper *Version
		if p.major == 0 {
			upper = mkVer(0, p.minor+1, 0, true, opts)
		} else {
			upper = mkVer(p.major+1, 0, 0, true, opts)
		}
		return pairComparators(lower, upper, opts), nil
	}
	lower := mkVerFull(p.major, p.minor, p.patch, p.prerelease, opts)
	var upper *Version
	switch {
	case p.major != 0:
		upper = mkVer(p.major+1, 0, 0, true, opts)
	case p.minor != 0:
		upper = mkVer(0, p.minor+1, 0, true, opts)
	default:
		upper = mkVer(0, 0, p.patch+1, true, opts)
	}
	return pairComparators(lower, upper, opts), nil
}

// expandHyphen implements spec 4.3 component 1.
func expandHyphen(lowS, highS string, opts Options) ([]*Comparator, error) {
	low, err := parsePartial(lowS, opts.Loose)
	if err != nil {
		return nil, err
	}
	high, err := parsePartial(highS, opts.Loose)
	if err != nil {
		return nil, err
	}

	var lowerVer *Version
	if low.level == 0 {
		lowerVer = mkVer(0, 0, 0, false, opts)
	} else {
		patch := uint64(0)
		var pre []ident
		if low.level == 3 {
			patch = low.patch
			pre = low.prerelease
		}
		lowerVer = mkVerFull(low.major, low.minor, patch, pre, opts)
	}

	if high.level == 0 {
		return []*Comparator{mkComparator(">=", lowerVer, opts)}, nil
	}

	var upperCmp *Comparator
	switch high.level {
	case 1:
		upperCmp = mkComparator("<", mkVer(high.major+1, 0, 0, true, opts), opts)
	case 2:
		upperCmp = mkComparator("<", mkVer(high.major, high.minor+1, 0, true, opts), opts)
	default:
		// Explicit pre-release upper bound behaves as <=, inclusive of the
		// pre-release as written (see DESIGN.md's Open Question decision).
		upperCmp = mkComparator("<=", mkVerFull(high.major, high.minor, high.patch, high.prerelease, opts), opts)
	}
	return []*Comparator{mkComparator(">=", lowerVer, opts), upperCmp}, nil
}

func expandToken(tok string, opts Options) ([]*Comparator, error) {
	if m := reCaretTilde.FindStringSubmatch(tok); m != nil {
		marker := m[1]
		rest := strings.TrimSpace(tok[len(marker):])
		p, err := parsePartial(rest, opts.Loose)
		if err != nil {
			return nil, err
		}
		if marker == "~" {
			return expandTilde(p, opts)
		}
		return expandCaret(p, opts)
	}

	op := ""
	rest := tok
	if m := reOperator.FindString(tok); m != "" {
		op = m
		rest = tok[len(m):]
	}
	if op == "=" {
		op = ""
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return anyVersionComparators(opts), nil
	}

	p, err := parsePartial(rest, opts.Loose)
	if err != nil {
		return nil, err
	}
	return expandWildcardComparator(op, p, opts)
}

func splitAlternatives(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{""}
	}
	parts := strings.Split(s, "||")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

func parseAlternative(altStr string, opts Options) ([]*Comparator, error) {
	altStr = strings.TrimSpace(altStr)
	if altStr == "" {
		return anyVersionComparators(opts), nil
	}

	normalized := reWhitespace.ReplaceAllString(altStr, " ")
	normalized = reOpSpace.ReplaceAllString(normalized, "$1")
	normalized = strings.TrimSpace(normalized)

	partialRe := rePartial
	if opts.Loose {
		partialRe = rePartialLoose
	}
	if loc := reHyphenSplit.FindStringIndex(normalized); loc != nil {
		left := normalized[:loc[0]]
		right := normalized[loc[1]:]
		if partialRe.MatchString(left) && partialRe.MatchString(right) {
			return expandHyphen(left, right, opts)
		}
	}

	var comparators []*Comparator
	for _, tok := range strings.Split(normalized, " ") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		cmps, err := expandToken(tok, opts)
		if err != nil {
			return nil, err
		}
		comparators = append(comparators, cmps...)
	}
	if len(comparators) == 0 {
		return anyVersionComparators(opts), nil
	}
	return comparators, nil
}

// ParseRange parses a range expression into its canonical two-level
// alternative/comparator structure (spec 4.3). An empty string desugars to
// a single ">=0.0.0" alternative.
func ParseRange(s string, opts Options) (*Range, error) {
	raw := s
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > maxLength {
		return nil, rangeErrorf("range string exceeds max length %d", maxLength)
	}

	var set [][]*Comparator
	for _, altStr := range splitAlternatives(trimmed) {
		alt, err := parseAlternative(altStr, opts)
		if err != nil {
			return nil, err
		}
		set = append(set, alt)
	}

	return &Range{set: set, raw: raw, options: opts}, nil
}

// String returns the canonicalized form: alternatives joined by " || ",
// each alternative's comparators joined by a single space.
func (r *Range) String() string {
	alts := make([]string, len(r.set))
	for i, alt := range r.set {
		parts := make([]string, 0, len(alt))
		for _, c := range alt {
			if s := c.String(); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			alts[i] = ">=0.0.0"
		} else {
			alts[i] = strings.Join(parts, " ")
		}
	}
	return strings.Join(alts, " || ")
}

func testAlternative(alt []*Comparator, v *Version) bool {
	for _, c := range alt {
		if !c.Test(v) {
			return false
		}
	}
	return true
}

func altAdmitsPrerelease(alt []*Comparator, v *Version) bool {
	for _, c := range alt {
		if c.any || c.version == nil {
			continue
		}
		if c.version.IsPrerelease() &&
			c.version.major == v.major && c.version.minor == v.minor && c.version.patch == v.patch {
			return true
		}
	}
	return false
}

// Test reports whether v satisfies the range: some alternative's
// comparators all hold, and, unless IncludePrerelease is set, the
// pre-release gate (spec 4.4) admits v when v is itself a pre-release.
func (r *Range) Test(v *Version) bool {
	for _, alt := range r.set {
		if !testAlternative(alt, v) {
			continue
		}
		if r.options.IncludePrerelease || !v.IsPrerelease() {
			return true
		}
		if altAdmitsPrerelease(alt, v) {
			return true
		}
	}
	return false
}

// nextRelease computes the minimal version strictly greater than v, per
// spec 4.5: always bump patch; additionally pin the pre-release to its
// lowest possible identifier ([0]) when v itself was not a pre-release, so
// the result is the infimum of "anything with a higher patch".
func nextRelease(v *Version) *Version {
	nv := v.clone()
	nv.patch++
	if !v.IsPrerelease() {
		nv.prerelease = []ident{{kind: identNumber, num: 0}}
	}
	nv.raw = nv.String()
	return nv
}

func minVersionForAlt(alt []*Comparator, opts Options) (*Version, bool) {
	min := mkVer(0, 0, 0, false, opts)
	var pinned *Version

	for _, c := range alt {
		if c.any || c.version == nil {
			continue
		}
		switch c.operator {
		case ">=":
			if c.version.Compare(min) > 0 {
				min = c.version
			}
		case ">":
			next := nextRelease(c.version)
			if next.Compare(min) > 0 {
				min = next
			}
		case "":
			if pinned != nil && pinned.Compare(c.version) != 0 {
				return nil, false
			}
			pinned = c.version
			if c.version.Compare(min) > 0 {
				min = c.version
			}
		}
	}

	for _, c := range alt {
		if c.any || c.version == nil {
			continue
		}
		if c.operator == "<" || c.operator == "<=" {
			if !c.Test(min) {
				return nil, false
			}
		}
	}
	if pinned != nil && pinned.Compare(min) != 0 {
		return nil, false
	}
	return min, true
}

// MinVersion returns the lowest version satisfying the range, if one
// exists (spec 4.5). Each alternative's own minimum is computed
// independently; the range's overall minimum is the smallest across
// alternatives, since satisfying any one of them is sufficient.
func (r *Range) MinVersion() (*Version, bool) {
	var best *Version
	for _, alt := range r.set {
		v, ok := minVersionForAlt(alt, r.options)
		if !ok {
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

func altExcludes(alt []*Comparator, v *Version, high bool) bool {
	for _, c := range alt {
		if c.any || c.version == nil {
			continue
		}
		if high && (c.operator == "<" || c.operator == "<=") && !c.Test(v) {
			return true
		}
		if !high && (c.operator == ">" || c.operator == ">=") && !c.Test(v) {
			return true
		}
	}
	return false
}

// Outside reports whether v falls entirely outside the range on the given
// side: every alternative has at least one comparator that excludes v in
// that direction (spec 4.6). high=true tests "too high" (Gtr); high=false
// tests "too low" (Ltr).
func (r *Range) Outside(v *Version, high bool) bool {
	for _, alt := range r.set {
		if !altExcludes(alt, v, high) {
			return false
		}
	}
	return true
}

// Gtr reports whether v is greater than every version the range could
// satisfy.
func (r *Range) Gtr(v *Version) bool { return r.Outside(v, true) }

// Ltr reports whether v is lower than every version the range could
// satisfy.
func (r *Range) Ltr(v *Version) bool { return r.Outside(v, false) }

func altIntersectsAlt(a, b []*Comparator) bool {
	for _, ca := range a {
		for _, cb := range b {
			if !ca.Intersects(cb) {
				return false
			}
		}
	}
	return true
}

// Intersects reports whether some version could satisfy both ranges: some
// alternative of r intersects some alternative of o, checked pairwise at
// the comparator level (spec 4.2/4.7).
func (r *Range) Intersects(o *Range) bool {
	for _, a := range r.set {
		for _, b := range o.set {
			if altIntersectsAlt(a, b) {
				return true
			}
		}
	}
	return false
}

// interval is the reduced lower/upper-bound view of one alternative, used
// by Subset (spec 4.7).
type interval struct {
	lowVer, highVer *Version
	lowOp, highOp   string
	empty           bool
}

func lowerBoundTighter(op string, v *Version, iv *interval) bool {
	if iv.lowVer == nil {
		return true
	}
	c := v.Compare(iv.lowVer)
	if c != 0 {
		return c > 0
	}
	return op == ">" && iv.lowOp == ">="
}

func upperBoundTighter(op string, v *Version, iv *interval) bool {
	if iv.highVer == nil {
		return true
	}
	c := v.Compare(iv.highVer)
	if c != 0 {
		return c < 0
	}
	return op == "<" && iv.highOp == "<="
}

func reduceAlt(alt []*Comparator) *interval {
	iv := &interval{}
	var pinned *Version
	for _, c := range alt {
		if c.isEmptySet() {
			iv.empty = true
		}
		if c.any || c.version == nil {
			continue
		}
		switch c.operator {
		case ">", ">=":
			if lowerBoundTighter(c.operator, c.version, iv) {
				iv.lowVer, iv.lowOp = c.version, c.operator
			}
		case "<", "<=":
			if upperBoundTighter(c.operator, c.version, iv) {
				iv.highVer, iv.highOp = c.version, c.operator
			}
		case "":
			pinned = c.version
		}
	}
	if pinned != nil {
		iv.lowVer, iv.lowOp = pinned, ">="
		iv.highVer, iv.highOp = pinned, "<="
	}
	if iv.lowVer != nil && iv.highVer != nil {
		c := iv.lowVer.Compare(iv.highVer)
		if c > 0 || (c == 0 && (iv.lowOp == ">" || iv.highOp == "<")) {
			iv.empty = true
		}
	}
	return iv
}

func lowerWithinLower(sub, sup *interval) bool {
	if sup.lowVer == nil {
		return true
	}
	if sub.lowVer == nil {
		return false
	}
	c := sub.lowVer.Compare(sup.lowVer)
	if c != 0 {
		return c > 0
	}
	return !(sup.lowOp == ">" && sub.lowOp == ">=")
}

func upperWithinUpper(sub, sup *interval) bool {
	if sup.highVer == nil {
		return true
	}
	if sub.highVer == nil {
		return false
	}
	c := sub.highVer.Compare(sup.highVer)
	if c != 0 {
		return c < 0
	}
	return !(sup.highOp == "<" && sub.highOp == "<=")
}

// isZeroPreSentinel reports whether v's pre-release is exactly the
// synthetic "-0" marker the range desugaring attaches to exclusive
// upper bounds (the algebraic infimum of a bucket, not a real version a
// caller could ever hold). Gating a Subset decision on it would reject
// perfectly ordinary non-prerelease sub-ranges purely because their
// desugared upper bound happens to carry this marker.
func isZeroPreSentinel(v *Version) bool {
	return len(v.prerelease) == 1 && v.prerelease[0].kind == identNumber && v.prerelease[0].num == 0
}

func supAdmitsTuple(supAlt []*Comparator, v *Version) bool {
	for _, c := range supAlt {
		if c.any || c.version == nil {
			continue
		}
		if c.version.IsPrerelease() &&
			c.version.major == v.major && c.version.minor == v.minor && c.version.patch == v.patch {
			return true
		}
	}
	return false
}

func subsetAltVsAlt(subAlt, supAlt []*Comparator, opts Options) bool {
	subIv := reduceAlt(subAlt)
	supIv := reduceAlt(supAlt)
	if subIv.empty {
		return true
	}
	if supIv.empty {
		return false
	}
	if !lowerWithinLower(subIv, supIv) {
		return false
	}
	if !upperWithinUpper(subIv, supIv) {
		return false
	}
	if opts.IncludePrerelease {
		return true
	}
	if subIv.lowVer != nil && subIv.lowVer.IsPrerelease() && !isZeroPreSentinel(subIv.lowVer) &&
		!supAdmitsTuple(supAlt, subIv.lowVer) {
		return false
	}
	if subIv.highVer != nil && subIv.highVer.IsPrerelease() && !isZeroPreSentinel(subIv.highVer) &&
		!supAdmitsTuple(supAlt, subIv.highVer) {
		return false
	}
	return true
}

// Subset reports whether every version satisfying the receiver also
// satisfies sup: every alternative of the receiver must be a subset of
// some alternative of sup (spec 4.7).
func (sub *Range) Subset(sup *Range) bool {
	for _, subAlt := range sub.set {
		ok := false
		for _, supAlt := range sup.set {
			if subsetAltVsAlt(subAlt, supAlt, sub.options) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// simplifyVersions collapses versions satisfying r into contiguous runs
// (by sorted order) and renders each run as a single version or a hyphen
// range, joined by " || ". This mirrors the common node-semver "simplify"
// shape: a shorter, equivalent range over the specific set of versions a
// caller cares about, rather than a general minimal-DNF search.
func simplifyVersions(versions []*Version, r *Range) string {
	sorted := append([]*Version(nil), versions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Compare(sorted[j]) < 0 })

	var runs [][]*Version
	var cur []*Version
	for _, v := range sorted {
		if r.Test(v) {
			cur = append(cur, v)
		} else if len(cur) > 0 {
			runs = append(runs, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	if len(runs) == 0 {
		return r.String()
	}

	parts := make([]string, len(runs))
	for i, run := range runs {
		if len(run) == 1 {
			parts[i] = run[0].String()
		} else {
			parts[i] = run[0].String() + " - " + run[len(run)-1].String()
		}
	}
	return strings.Join(parts, " || ")
}
