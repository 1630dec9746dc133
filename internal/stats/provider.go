// Package stats defines the frame-statistic provider contract and its two
// stock implementations: a JSON-lines dump reader for stats produced by the
// external native layer, and a SQLite-backed read-through cache.
//
// Statistic computation is the expensive part of the system and lives
// outside this repository; everything here only addresses precomputed
// scalars by (source tag, frame index), with no side effects.
package stats

import (
	"context"
	"fmt"

	"github.com/backmassage/framescript/internal/clip"
)

// Tag identifies one statistic stream: a candidate source plus the metric
// it carries (e.g. "a/plane_avg", "b/plane_avg").
type Tag string

// Tagf builds a Tag from a candidate label and metric name.
func Tagf(candidate, metric string) Tag {
	return Tag(candidate + "/" + metric)
}

// Provider returns the scalar statistic of frame n under tag. Lookups must
// be repeatable (same inputs, same value) and free of side effects; they may
// block on upstream materialization but perform no retries themselves.
type Provider interface {
	Stat(ctx context.Context, tag Tag, n int) (float64, error)
}

// MissingResourceError reports that a referenced external asset (a stat
// dump, a cached intermediate, a named mask) is absent when required. It is
// surfaced to the caller; the only documented soft fallbacks live in the
// profile layer.
type MissingResourceError struct {
	Resource string
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("missing resource: %s", e.Resource)
}

// PlaneAverage returns the mean luma sample of a frame. This is the one
// statistic computed locally, so self-contained runs and tests don't need a
// native stat dump.
func PlaneAverage(f *clip.Frame) float64 {
	p := f.Luma()
	if len(p.Pix) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range p.Pix {
		sum += float64(v)
	}
	return sum / float64(len(p.Pix))
}

// ClipProvider adapts a clip to the Provider contract by computing the
// plane-average of the requested frame. Tags are ignored: the clip is one
// candidate source.
type ClipProvider struct {
	Clip clip.Clip
}

// Stat implements [Provider].
func (c ClipProvider) Stat(ctx context.Context, _ Tag, n int) (float64, error) {
	f, err := c.Clip.Frame(ctx, n)
	if err != nil {
		return 0, err
	}
	return PlaneAverage(f), nil
}

// Func adapts a plain function to the Provider contract.
type Func func(ctx context.Context, tag Tag, n int) (float64, error)

// Stat implements [Provider].
func (f Func) Stat(ctx context.Context, tag Tag, n int) (float64, error) {
	return f(ctx, tag, n)
}
