// Package frameranges implements the "maps" frame-range format: an ordered
// list of specs, each either a single frame index or an inclusive
// (start, end) interval. Range lists drive frame substitution and report
// exclusion filtering.
package frameranges

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Spec is one entry of a range list: the inclusive interval [Start, End].
// A single frame index n is represented as [n, n]. An inverted interval
// (Start > End) is legal and contributes no frames.
type Spec struct {
	Start int
	End   int
}

// Single returns the Spec for one frame index.
func Single(n int) Spec {
	return Spec{Start: n, End: n}
}

// Interval returns the Spec for the inclusive interval [start, end].
func Interval(start, end int) Spec {
	return Spec{Start: start, End: end}
}

// Len returns the number of frames the spec expands to.
func (s Spec) Len() int {
	if s.Start > s.End {
		return 0
	}
	return s.End - s.Start + 1
}

// Contains reports whether n falls inside the spec.
func (s Spec) Contains(n int) bool {
	return n >= s.Start && n <= s.End
}

func (s Spec) String() string {
	if s.Start == s.End {
		return fmt.Sprintf("%d", s.Start)
	}
	return fmt.Sprintf("(%d,%d)", s.Start, s.End)
}

// UnmarshalYAML accepts the two external forms: a scalar frame index, or a
// two-element sequence [start, end]. Anything else is rejected.
func (s *Spec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var n int
		if err := value.Decode(&n); err != nil {
			return fmt.Errorf("frame spec: %w", err)
		}
		*s = Single(n)
		return nil
	case yaml.SequenceNode:
		var pair []int
		if err := value.Decode(&pair); err != nil {
			return fmt.Errorf("frame spec: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("frame spec: interval needs exactly 2 elements, got %d", len(pair))
		}
		*s = Interval(pair[0], pair[1])
		return nil
	default:
		return fmt.Errorf("frame spec: expected int or [start, end], got %s node", kindName(value.Kind))
	}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.DocumentNode:
		return "document"
	case yaml.AliasNode:
		return "alias"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Flatten expands an ordered spec list into an explicit index list. Specs
// are processed in input order and concatenated; intervals expand ascending.
// No sorting and no de-duplication happens: a frame listed twice appears
// twice, matching the simplest possible semantics of the external format.
func Flatten(specs []Spec) []int {
	total := 0
	for _, s := range specs {
		total += s.Len()
	}
	out := make([]int, 0, total)
	for _, s := range specs {
		for n := s.Start; n <= s.End; n++ {
			out = append(out, n)
		}
	}
	return out
}

// Set answers membership queries against a spec list without expanding it.
// Used to exclude already-known frames from further processing.
type Set struct {
	specs []Spec
}

// NewSet copies specs into a Set. The copy keeps the Set valid even if the
// caller later mutates its slice.
func NewSet(specs []Spec) *Set {
	cp := make([]Spec, len(specs))
	copy(cp, specs)
	return &Set{specs: cp}
}

// Contains reports whether frame n is covered by any spec in the set.
func (s *Set) Contains(n int) bool {
	for _, sp := range s.specs {
		if sp.Contains(n) {
			return true
		}
	}
	return false
}

// Specs returns a copy of the underlying spec list.
func (s *Set) Specs() []Spec {
	cp := make([]Spec, len(s.specs))
	copy(cp, s.specs)
	return cp
}

// Group collapses a sorted run of indices back into minimal Spec form:
// consecutive indices become one interval, isolated indices stay single.
// The input must be ascending; duplicates are preserved as-is.
func Group(frames []int) []Spec {
	var specs []Spec
	for i := 0; i < len(frames); {
		j := i
		for j+1 < len(frames) && frames[j+1] == frames[j]+1 {
			j++
		}
		specs = append(specs, Interval(frames[i], frames[j]))
		i = j + 1
	}
	return specs
}
