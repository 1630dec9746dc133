// Package report compares two statistic streams of the same length and
// reports the frames where they differ beyond a threshold, grouped back into
// range form. It is the audit step run after assembling a hybrid stream from
// two sources, to find the sections that still disagree.
package report

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/backmassage/framescript/internal/clip"
	"github.com/backmassage/framescript/internal/display"
	"github.com/backmassage/framescript/internal/frameranges"
	"github.com/backmassage/framescript/internal/stats"
)

// DefaultThreshold is the minimum absolute difference that counts as a
// differing frame.
const DefaultThreshold = 72

// Options configures one comparison run.
type Options struct {
	// Threshold is the minimum |a-b| for a frame to be reported. Zero means
	// DefaultThreshold.
	Threshold float64
	// Exclude drops already-known frames from the result (typically the
	// ranges that were deliberately substituted).
	Exclude *frameranges.Set
	// Name labels the run in the report file, usually an episode name.
	Name string
}

// Result is the outcome of one comparison run.
type Result struct {
	RunID  uuid.UUID
	Name   string
	Total  int
	Frames []int              // differing frames, ascending, exclusions removed
	Specs  []frameranges.Spec // Frames collapsed into range form

	// Summary over |a-b| across all compared frames, not only differing ones.
	Mean   float64
	StdDev float64
	Max    float64
}

// Compare walks frames 0..total-1, pulls both statistic streams from prov,
// and collects the frames whose absolute difference reaches the threshold.
// The two streams must cover the same frame count; the caller passes both
// lengths so the mismatch surfaces here, before any statistic is pulled.
func Compare(ctx context.Context, prov stats.Provider, tagA, tagB stats.Tag, lenA, lenB int, opts Options) (*Result, error) {
	if lenA != lenB {
		return nil, &clip.AlignmentError{LenA: lenA, LenB: lenB}
	}
	thr := opts.Threshold
	if thr == 0 {
		thr = DefaultThreshold
	}

	res := &Result{
		RunID: uuid.New(),
		Name:  opts.Name,
		Total: lenA,
	}

	diffs := make([]float64, 0, lenA)
	for n := 0; n < lenA; n++ {
		a, err := prov.Stat(ctx, tagA, n)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", n, err)
		}
		b, err := prov.Stat(ctx, tagB, n)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", n, err)
		}
		d := math.Abs(a - b)
		diffs = append(diffs, d)

		if d < thr {
			continue
		}
		if opts.Exclude != nil && opts.Exclude.Contains(n) {
			continue
		}
		res.Frames = append(res.Frames, n)
	}

	if len(diffs) > 0 {
		res.Mean = stat.Mean(diffs, nil)
		res.StdDev = stat.StdDev(diffs, nil)
		for _, d := range diffs {
			if d > res.Max {
				res.Max = d
			}
		}
	}
	res.Specs = frameranges.Group(res.Frames)
	return res, nil
}

// Write appends one run section to w in the report file format.
func Write(w io.Writer, res *Result) error {
	if _, err := fmt.Fprintf(w, "# run %s %s\n", res.RunID, time.Now().Format(time.RFC3339)); err != nil {
		return err
	}
	label := ""
	if res.Name != "" {
		label = res.Name + "="
	}
	if len(res.Specs) == 0 {
		if _, err := fmt.Fprintf(w, "%sno differences found\n", label); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "%s%s\n", label, display.FormatSpecs(res.Specs)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "# frames=%d differing=%d mean=%.3f stddev=%.3f max=%.3f\n\n",
		res.Total, len(res.Frames), res.Mean, res.StdDev, res.Max)
	return err
}

// Append opens (creating if needed) the report file at path and appends one
// run section.
func Append(path string, res *Result) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open report %q: %w", path, err)
	}
	defer f.Close()
	return Write(f, res)
}
