package semver

import (
	"fmt"
	"testing"

	. "github.com/franela/goblin"
)

func rangeTest(r, v string, opts Options) bool {
	rng, err := ParseRange(r, opts)
	if err != nil {
		panic(err)
	}
	ver, err := ParseVersion(v, opts)
	if err != nil {
		panic(err)
	}
	return rng.Test(ver)
}

func TestRangeTildeAndCaret(t *testing.T) {
	g := Goblin(t)
	g.Describe("Range tilde and caret desugaring", func() {
		g.It("~1.2.3 should admit patch bumps but not minor bumps", func() {
			g.Assert(rangeTest("~1.2.3", "1.2.4", Options{})).IsTrue()
			g.Assert(rangeTest("~1.2.3", "1.3.0", Options{})).IsFalse()
		})

		g.It("^0.2.3 should admit patch bumps but not minor bumps", func() {
			g.Assert(rangeTest("^0.2.3", "0.2.4", Options{})).IsTrue()
			g.Assert(rangeTest("^0.2.3", "0.3.0", Options{})).IsFalse()
		})

		g.It("^1.2.3 should admit minor and patch bumps but not major bumps", func() {
			g.Assert(rangeTest("^1.2.3", "1.9.0", Options{})).IsTrue()
			g.Assert(rangeTest("^1.2.3", "2.0.0", Options{})).IsFalse()
		})

		g.It("^0.0.3 should only admit the exact patch", func() {
			g.Assert(rangeTest("^0.0.3", "0.0.3", Options{})).IsTrue()
			g.Assert(rangeTest("^0.0.3", "0.0.4", Options{})).IsFalse()
		})

		g.It("^1.x should expand to the whole major line", func() {
			r, _ := ParseRange("^1.x", Options{})
			g.Assert(r.String()).Equal(">=1.0.0 <2.0.0-0")
		})

		g.It("^0.x should expand to the whole major line starting at 0", func() {
			r, _ := ParseRange("^0.x", Options{})
			g.Assert(r.String()).Equal(">=0.0.0 <1.0.0-0")
		})
	})
}

func TestRangeXWildcards(t *testing.T) {
	g := Goblin(t)
	g.Describe("Range x-range desugaring", func() {
		g.It("1.x should expand to the whole major line", func() {
			r, _ := ParseRange("1.x", Options{})
			g.Assert(r.String()).Equal(">=1.0.0 <2.0.0-0")
		})

		g.It("1.2.x should expand to the whole minor line", func() {
			r, _ := ParseRange("1.2.x", Options{})
			g.Assert(r.String()).Equal(">=1.2.0 <1.3.0-0")
		})

		g.It(">1.x should exclude the whole major line", func() {
			r, _ := ParseRange(">1.x", Options{})
			g.Assert(r.String()).Equal(">=2.0.0")
		})

		g.It("<=1.x should include the whole major line", func() {
			r, _ := ParseRange("<=1.x", Options{})
			g.Assert(r.String()).Equal("<2.0.0-0")
		})

		g.It("<1.2.x should exclude the whole minor line", func() {
			r, _ := ParseRange("<1.2.x", Options{})
			g.Assert(r.String()).Equal("<1.2.0-0")
		})

		g.It("an empty range should match everything", func() {
			g.Assert(rangeTest("", "123.456.789", Options{})).IsTrue()
		})
	})
}

func TestRangeHyphen(t *testing.T) {
	g := Goblin(t)
	g.Describe("Range hyphen ranges", func() {
		g.It("1.2.3 - 2.3.4 should be an inclusive closed interval", func() {
			r, _ := ParseRange("1.2.3 - 2.3.4", Options{})
			g.Assert(r.String()).Equal(">=1.2.3 <=2.3.4")
		})

		g.It("1.2 - 2.3.4 should zero-fill the low side", func() {
			r, _ := ParseRange("1.2 - 2.3.4", Options{})
			g.Assert(r.String()).Equal(">=1.2.0 <=2.3.4")
		})

		g.It("1.2.3 - 2.3 should bump the high side to the next minor", func() {
			r, _ := ParseRange("1.2.3 - 2.3", Options{})
			g.Assert(r.String()).Equal(">=1.2.3 <2.4.0-0")
		})

		g.It("a hyphen upper bound with an explicit pre-release should be inclusive", func() {
			r, _ := ParseRange("1.2.3 - 2.3.4-beta.2", Options{})
			g.Assert(r.String()).Equal(">=1.2.3 <=2.3.4-beta.2")
			g.Assert(rangeTest("1.2.3 - 2.3.4-beta.2", "2.3.4-beta.2", Options{})).IsTrue()
		})
	})
}

func TestRangeUnion(t *testing.T) {
	g := Goblin(t)
	g.Describe("Range || unions", func() {
		g.It("should satisfy a version matching either side", func() {
			g.Assert(rangeTest("1.x || 3.x", "1.5.0", Options{})).IsTrue()
			g.Assert(rangeTest("1.x || 3.x", "3.0.0", Options{})).IsTrue()
			g.Assert(rangeTest("1.x || 3.x", "2.0.0", Options{})).IsFalse()
		})
	})
}

func TestRangePrereleaseGating(t *testing.T) {
	g := Goblin(t)
	g.Describe("Range pre-release gating", func() {
		g.It("should not admit a pre-release whose tuple isn't named explicitly", func() {
			g.Assert(rangeTest("^1.2.3", "1.2.4-beta", Options{})).IsFalse()
		})

		g.It("should admit a pre-release whose tuple is named explicitly", func() {
			g.Assert(rangeTest(">=1.2.3-alpha <2.0.0", "1.2.3-beta", Options{})).IsTrue()
		})

		g.It("should admit any pre-release under IncludePrerelease", func() {
			g.Assert(rangeTest("^1.2.3", "1.2.4-beta", Options{IncludePrerelease: true})).IsTrue()
		})
	})
}

func TestRangeMinVersion(t *testing.T) {
	g := Goblin(t)
	g.Describe("Range.MinVersion", func() {
		g.It("should find the minimum of a simple lower bound", func() {
			r, _ := ParseRange(">=1.2.3", Options{})
			v, ok := r.MinVersion()
			g.Assert(ok).IsTrue()
			g.Assert(v.String()).Equal("1.2.3")
		})

		g.It("should find the minimum across alternatives", func() {
			r, _ := ParseRange("3.x || 1.x", Options{})
			v, ok := r.MinVersion()
			g.Assert(ok).IsTrue()
			g.Assert(v.String()).Equal("1.0.0")
		})

		g.It("should find the infimum just above an exclusive bound", func() {
			r, _ := ParseRange(">1.2.3", Options{})
			v, ok := r.MinVersion()
			g.Assert(ok).IsTrue()
			g.Assert(v.String()).Equal("1.2.4-0")
		})

		g.It("should report no minimum for an unsatisfiable range", func() {
			r, _ := ParseRange(">=2.0.0 <1.0.0", Options{})
			_, ok := r.MinVersion()
			g.Assert(ok).IsFalse()
		})
	})
}

func TestRangeOutside(t *testing.T) {
	g := Goblin(t)
	g.Describe("Range.Gtr and Range.Ltr", func() {
		g.It("should report Gtr for a version above every alternative", func() {
			r, _ := ParseRange("1.x || 2.x", Options{})
			g.Assert(r.Gtr(mustVersion("3.0.0"))).IsTrue()
			g.Assert(r.Gtr(mustVersion("1.5.0"))).IsFalse()
		})

		g.It("should report Ltr for a version below every alternative", func() {
			r, _ := ParseRange("1.x || 2.x", Options{})
			g.Assert(r.Ltr(mustVersion("0.5.0"))).IsTrue()
			g.Assert(r.Ltr(mustVersion("1.5.0"))).IsFalse()
		})
	})
}

func TestRangeSubset(t *testing.T) {
	g := Goblin(t)
	g.Describe("Range.Subset", func() {
		g.It("^1.2.3 should be a subset of >=1.0.0", func() {
			sub, _ := ParseRange("^1.2.3", Options{})
			sup, _ := ParseRange(">=1.0.0", Options{})
			g.Assert(sub.Subset(sup)).IsTrue()
		})

		g.It(">=1.0.0 should not be a subset of ^1.2.3", func() {
			sub, _ := ParseRange(">=1.0.0", Options{})
			sup, _ := ParseRange("^1.2.3", Options{})
			g.Assert(sub.Subset(sup)).IsFalse()
		})

		g.It("an empty-set range should be a subset of anything", func() {
			sub, _ := ParseRange("<0.0.0-0", Options{})
			sup, _ := ParseRange("^1.2.3", Options{})
			g.Assert(sub.Subset(sup)).IsTrue()
		})

		g.It("a range should be a subset of itself", func() {
			r, _ := ParseRange("~1.2.3", Options{})
			g.Assert(r.Subset(r)).IsTrue()
		})
	})
}

func TestRangeIntersects(t *testing.T) {
	g := Goblin(t)
	g.Describe("Range.Intersects", func() {
		g.It("should intersect overlapping ranges", func() {
			a, _ := ParseRange("^1.2.3", Options{})
			b, _ := ParseRange(">=1.5.0", Options{})
			g.Assert(a.Intersects(b)).IsTrue()
		})

		g.It("should not intersect disjoint ranges", func() {
			a, _ := ParseRange("1.x", Options{})
			b, _ := ParseRange("2.x", Options{})
			g.Assert(a.Intersects(b)).IsFalse()
		})
	})
}

func ExampleParseRange() {
	r, _ := ParseRange("^1.2.3", Options{})
	fmt.Println(r.String())
	// Output: >=1.2.3 <2.0.0-0
}
