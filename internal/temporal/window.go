package temporal

import (
	"context"

	"github.com/backmassage/framescript/internal/clip"
	"github.com/backmassage/framescript/internal/stats"
)

// Materialize builds the Sample for frame n by pulling 2*radius+1 statistic
// pairs from prov. Offsets that fall outside [0, total) are clamped to the
// stream edge, so the first and last frames reuse their boundary neighbors.
// Materialization is the only part of a decision that may block (on upstream
// stat computation); Decide itself never does.
func Materialize(ctx context.Context, prov stats.Provider, tagA, tagB stats.Tag, n, radius, total int) (Sample, error) {
	s := NewSample(radius)
	for offset := -radius; offset <= radius; offset++ {
		idx := clampIndex(n+offset, total)
		a, err := prov.Stat(ctx, tagA, idx)
		if err != nil {
			return Sample{}, err
		}
		b, err := prov.Stat(ctx, tagB, idx)
		if err != nil {
			return Sample{}, err
		}
		s.Set(offset, a, b)
	}
	return s, nil
}

func clampIndex(n, total int) int {
	if n < 0 {
		return 0
	}
	if n >= total {
		return total - 1
	}
	return n
}

// Selector builds the output stream of the temporal decision engine: frame n
// is candidate A's or candidate B's frame n, chosen by Decide over a lazily
// materialized window. Candidates must already be aligned; the mismatch is
// reported here, before any frame is produced.
func Selector(a, b clip.Clip, prov stats.Provider, tagA, tagB stats.Tag, radius int) (clip.Clip, error) {
	if err := clip.CheckAligned(a, b); err != nil {
		return nil, err
	}
	total := a.NumFrames()
	return &clip.FuncClip{
		N: total,
		Fn: func(ctx context.Context, n int) (*clip.Frame, error) {
			s, err := Materialize(ctx, prov, tagA, tagB, n, radius, total)
			if err != nil {
				return nil, err
			}
			if Decide(s).PickB() {
				return b.Frame(ctx, n)
			}
			return a.Frame(ctx, n)
		},
	}, nil
}
