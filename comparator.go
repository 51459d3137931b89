package semver

import "strings"

// Comparator is a single primitive "op + version" predicate: one term of a
// Range alternative. any marks the ANY sentinel (spec 4.2): a tagged flag
// rather than a nil-Version check, so "no operand" is an explicit state
// instead of an implicit one callers could forget to guard.
type Comparator struct {
	operator string // "", "<", "<=", ">=", ">"
	version  *Version
	any      bool
	options  Options
}

// ParseComparator parses a single range token such as ">=1.2.3" or "1.2.3"
// into a Comparator. An empty operand (a bare operator, or an empty token)
// yields the ANY sentinel, which matches every version.
func ParseComparator(token string, opts Options) (*Comparator, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return &Comparator{any: true, options: opts}, nil
	}

	op := ""
	rest := token
	if m := reOperator.FindString(token); m != "" {
		op = m
		rest = strings.TrimSpace(token[len(m):])
	}
	if op == "=" {
		op = ""
	}

	if rest == "" {
		return &Comparator{operator: op, any: true, options: opts}, nil
	}

	ver, err := ParseVersion(rest, opts)
	if err != nil {
		return nil, err
	}
	return &Comparator{operator: op, version: ver, options: opts}, nil
}

// String returns the canonical "op+version" form, or "" for the ANY
// sentinel.
func (c *Comparator) String() string {
	if c.any {
		return ""
	}
	return c.operator + c.version.String()
}

func (c *Comparator) isGTFamily() bool {
	return c.operator == ">" || c.operator == ">="
}

func (c *Comparator) isLTFamily() bool {
	return c.operator == "<" || c.operator == "<="
}

func (c *Comparator) inclusive() bool {
	return c.operator == "" || c.operator == ">=" || c.operator == "<="
}

// isEmptySet reports whether this comparator can never be satisfied by any
// version. "<0.0.0-0" is the canonical unsatisfiable sentinel (nothing
// sorts below the lowest possible pre-release of 0.0.0); without
// IncludePrerelease, any other "<0.0.0..." comparator is equally
// unsatisfiable since no release version exists below 0.0.0 and no
// pre-release of it would be admitted by the gate anyway.
func (c *Comparator) isEmptySet() bool {
	if c.any || c.operator != "<" {
		return false
	}
	v := c.version
	if v.major != 0 || v.minor != 0 || v.patch != 0 {
		return false
	}
	if v.IsPrerelease() {
		if v.Prerelease() == "0" && len(v.prerelease) == 1 {
			return true
		}
		return !c.options.IncludePrerelease
	}
	return !c.options.IncludePrerelease
}

// Test reports whether v satisfies this comparator.
func (c *Comparator) Test(v *Version) bool {
	if c.any || v == nil {
		return true
	}
	cmp := v.Compare(c.version)
	switch c.operator {
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case "":
		return cmp == 0
	case ">=":
		return cmp >= 0
	case ">":
		return cmp > 0
	}
	return false
}

// Intersects decides whether some version could satisfy both c and o,
// following the pairwise operator table in spec 4.2.
func (c *Comparator) Intersects(o *Comparator) bool {
	if c.isEmptySet() || o.isEmptySet() {
		return false
	}
	if c.any || o.any {
		return true
	}

	switch {
	case c.isGTFamily() && o.isGTFamily():
		return true
	case c.isLTFamily() && o.isLTFamily():
		return true
	}

	cmp := c.version.Compare(o.version)

	switch {
	case cmp == 0 && c.inclusive() && o.inclusive():
		return true
	case c.isGTFamily() && o.isLTFamily():
		return cmp < 0
	case c.isLTFamily() && o.isGTFamily():
		return cmp > 0
	case c.operator == "":
		return o.Test(c.version)
	case o.operator == "":
		return c.Test(o.version)
	}
	return false
}
