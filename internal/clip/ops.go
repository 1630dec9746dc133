package clip

import (
	"context"
	"fmt"

	"github.com/backmassage/framescript/internal/frameranges"
)

// ReplaceRanges returns a stream that surfaces repl's frame at every index
// covered by specs and base's frame everywhere else. Alignment is checked
// eagerly; the specs list is captured as an immutable set.
func ReplaceRanges(base, repl Clip, specs []frameranges.Spec) (Clip, error) {
	if err := CheckAligned(base, repl); err != nil {
		return nil, err
	}
	set := frameranges.NewSet(specs)
	return &FuncClip{
		N: base.NumFrames(),
		Fn: func(ctx context.Context, n int) (*Frame, error) {
			if set.Contains(n) {
				return repl.Frame(ctx, n)
			}
			return base.Frame(ctx, n)
		},
	}, nil
}

// Trim returns the inclusive sub-stream [start, end] of c.
func Trim(c Clip, start, end int) (Clip, error) {
	if start < 0 || end >= c.NumFrames() || start > end {
		return nil, fmt.Errorf("trim [%d, %d] out of range for %d frames", start, end, c.NumFrames())
	}
	return &FuncClip{
		N: end - start + 1,
		Fn: func(ctx context.Context, n int) (*Frame, error) {
			return c.Frame(ctx, start+n)
		},
	}, nil
}

// Splice concatenates parts into one stream in order.
func Splice(parts ...Clip) Clip {
	total := 0
	for _, p := range parts {
		total += p.NumFrames()
	}
	return &FuncClip{
		N: total,
		Fn: func(ctx context.Context, n int) (*Frame, error) {
			for _, p := range parts {
				if n < p.NumFrames() {
					return p.Frame(ctx, n)
				}
				n -= p.NumFrames()
			}
			return nil, fmt.Errorf("frame %d past end of splice", n)
		},
	}
}

// Interleave alternates frames from equally long clips (preview-style
// comparison: output frame n comes from clip n mod k). All clips must be
// aligned.
func Interleave(clips ...Clip) (Clip, error) {
	if len(clips) == 0 {
		return nil, fmt.Errorf("interleave needs at least one clip")
	}
	for _, c := range clips[1:] {
		if err := CheckAligned(clips[0], c); err != nil {
			return nil, err
		}
	}
	k := len(clips)
	return &FuncClip{
		N: clips[0].NumFrames() * k,
		Fn: func(ctx context.Context, n int) (*Frame, error) {
			return clips[n%k].Frame(ctx, n/k)
		},
	}, nil
}
