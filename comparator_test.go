package semver

import (
	"fmt"
	"testing"

	. "github.com/franela/goblin"
)

func TestParseComparator(t *testing.T) {
	g := Goblin(t)
	g.Describe("ParseComparator", func() {
		g.It("Should parse an operator and version", func() {
			c, err := ParseComparator(">=1.2.3", Options{})
			g.Assert(err).Equal(nil)
			g.Assert(c.String()).Equal(">=1.2.3")
		})

		g.It("Should treat a bare version as exact equality", func() {
			c, _ := ParseComparator("1.2.3", Options{})
			g.Assert(c.Test(mustVersion("1.2.3"))).IsTrue()
			g.Assert(c.Test(mustVersion("1.2.4"))).IsFalse()
		})

		g.It("Should treat a bare token as the ANY sentinel", func() {
			c, err := ParseComparator("", Options{})
			g.Assert(err).Equal(nil)
			g.Assert(c.Test(mustVersion("9.9.9"))).IsTrue()
			g.Assert(c.String()).Equal("")
		})

		g.It("Should strip a redundant = operator", func() {
			c, _ := ParseComparator("=1.2.3", Options{})
			g.Assert(c.String()).Equal("1.2.3")
		})
	})
}

func mustVersion(s string) *Version {
	v, err := ParseVersion(s, Options{})
	if err != nil {
		panic(err)
	}
	return v
}

func TestComparatorTest(t *testing.T) {
	g := Goblin(t)
	g.Describe("Comparator.Test", func() {
		g.It("Should evaluate <", func() {
			c, _ := ParseComparator("<1.2.3", Options{})
			g.Assert(c.Test(mustVersion("1.2.2"))).IsTrue()
			g.Assert(c.Test(mustVersion("1.2.3"))).IsFalse()
		})
		g.It("Should evaluate >=", func() {
			c, _ := ParseComparator(">=1.2.3", Options{})
			g.Assert(c.Test(mustVersion("1.2.3"))).IsTrue()
			g.Assert(c.Test(mustVersion("1.2.2"))).IsFalse()
		})
	})
}

func TestComparatorIntersects(t *testing.T) {
	g := Goblin(t)
	g.Describe("Comparator.Intersects", func() {
		g.It("Should intersect two overlapping bounds", func() {
			a, _ := ParseComparator(">=1.0.0", Options{})
			b, _ := ParseComparator("<2.0.0", Options{})
			g.Assert(a.Intersects(b)).IsTrue()
		})

		g.It("Should not intersect two disjoint bounds", func() {
			a, _ := ParseComparator("<1.0.0", Options{})
			b, _ := ParseComparator(">=2.0.0", Options{})
			g.Assert(a.Intersects(b)).IsFalse()
		})

		g.It("Should treat two same-family lower bounds as always intersecting", func() {
			a, _ := ParseComparator(">=1.0.0", Options{})
			b, _ := ParseComparator(">5.0.0", Options{})
			g.Assert(a.Intersects(b)).IsTrue()
		})

		g.It("Should treat <0.0.0-0 as the empty set", func() {
			a, _ := ParseComparator("<0.0.0-0", Options{})
			b, _ := ParseComparator(">=0.0.0", Options{})
			g.Assert(a.Intersects(b)).IsFalse()
		})

		g.It("Should intersect at a shared inclusive boundary", func() {
			a, _ := ParseComparator("<=1.2.3", Options{})
			b, _ := ParseComparator(">=1.2.3", Options{})
			g.Assert(a.Intersects(b)).IsTrue()
		})

		g.It("Should not intersect at a shared exclusive boundary", func() {
			a, _ := ParseComparator("<1.2.3", Options{})
			b, _ := ParseComparator(">=1.2.3", Options{})
			g.Assert(a.Intersects(b)).IsFalse()
		})
	})
}

func ExampleComparator_Test() {
	c, _ := ParseComparator(">=1.2.3", Options{})
	fmt.Println(c.Test(mustVersion("1.3.0")))
	// Output: true
}
