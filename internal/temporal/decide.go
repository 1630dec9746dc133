// Package temporal implements per-frame selection between two candidate
// streams with single-frame noise rejection: the smallest symmetric window
// of neighbor comparisons that agrees decides the frame, and only when no
// window is stable does the naive center comparison apply.
package temporal

import "fmt"

// DefaultRadius is the domain-tuned window radius the decision rule was
// designed around.
const DefaultRadius = 3

// Decision selects a candidate for one output frame: false surfaces
// candidate A, true surfaces candidate B.
type Decision bool

// PickB reports whether the decision selects candidate B.
func (d Decision) PickB() bool { return bool(d) }

// Sample carries the statistic pairs for offsets -Radius..+Radius around one
// frame index. It is transient: owned by a single decision evaluation and
// not retained. Index i of A/B holds offset i-Radius.
type Sample struct {
	Radius int
	A, B   []float64
}

// NewSample allocates a Sample for the given radius.
func NewSample(radius int) Sample {
	if radius < 1 {
		panic(fmt.Sprintf("temporal: radius %d < 1", radius))
	}
	n := 2*radius + 1
	return Sample{Radius: radius, A: make([]float64, n), B: make([]float64, n)}
}

// Set stores the statistic pair at the given offset in -Radius..+Radius.
func (s Sample) Set(offset int, a, b float64) {
	s.A[offset+s.Radius] = a
	s.B[offset+s.Radius] = b
}

// cmp is the per-offset comparison: candidate A's statistic strictly above
// candidate B's.
func (s Sample) cmp(offset int) bool {
	i := offset + s.Radius
	return s.A[i] > s.B[i]
}

// Decide picks a candidate from one materialized window.
//
// For r = 1..Radius ascending: when the two symmetric neighbors at distance
// r agree (cmp(-r) == cmp(+r)), that shared value is the decision: the
// narrowest stable window wins, regardless of what wider radii say. When no
// radius agrees the decision degrades to cmp(0), the immediate comparison at
// the frame itself.
//
// Decide is a pure function of the sample: it has no memory of previous
// calls and is safe to evaluate out of order or in parallel. A sample whose
// slices don't match its radius is an integration bug and panics.
func Decide(s Sample) Decision {
	want := 2*s.Radius + 1
	if s.Radius < 1 || len(s.A) != want || len(s.B) != want {
		panic(fmt.Sprintf("temporal: malformed sample: radius=%d len(a)=%d len(b)=%d",
			s.Radius, len(s.A), len(s.B)))
	}

	for r := 1; r <= s.Radius; r++ {
		prev, next := s.cmp(-r), s.cmp(+r)
		if prev == next {
			return Decision(prev)
		}
	}
	return Decision(s.cmp(0))
}
