// Package maskfold refines a mask or clip by folding an ordered list of zone
// configurations into it. Each zone contributes a candidate frame and a
// per-pixel weight; the fold blends the candidate into the running
// accumulator wherever the weight is high and keeps what earlier zones
// produced wherever it is low. This is a sequential override fold, not a
// normalized average: reordering the zones changes the result.
package maskfold

import (
	"context"
	"fmt"

	"github.com/backmassage/framescript/internal/clip"
)

// PlaneSelect chooses which planes a zone's blend touches.
type PlaneSelect int

const (
	// LumaOnly blends the first plane and leaves chroma untouched.
	LumaOnly PlaneSelect = iota
	// AllPlanes blends every plane of the accumulator.
	AllPlanes
)

// CandidateFunc produces a zone's candidate frame for the frame being folded.
// The base frame is supplied so candidates derived from the input (masked
// variants, filtered copies) don't need to re-pull it.
type CandidateFunc func(ctx context.Context, base *clip.Frame) (*clip.Frame, error)

// WeightFunc produces a zone's per-pixel weight plane for the frame being
// folded. Weights outside [0, 1] are clamped before blending.
type WeightFunc func(ctx context.Context, base *clip.Frame) (*clip.Plane, error)

// PostExpr is a pure post-processing step applied to the folded result, such
// as a final sharpening expression. It must not mutate its input.
type PostExpr func(*clip.Frame) *clip.Frame

// ZoneBlend is one ordered entry of a fold. DetailThreshold and LumaScaling
// parameterize the default weight source; a zone with an explicit Weight
// ignores them.
type ZoneBlend struct {
	DetailThreshold float64
	LumaScaling     float64
	Planes          PlaneSelect
	Candidate       CandidateFunc
	Weight          WeightFunc
}

func (z ZoneBlend) weightFunc() WeightFunc {
	if z.Weight != nil {
		return z.Weight
	}
	return DetailWeight(z.DetailThreshold, z.LumaScaling)
}

// DetailWeight builds the default weight source: weight rises as base luma
// falls below thr, scaled by scaling and clamped to [0, 1]. Dark flat regions
// get the most of the candidate; bright detailed regions keep the
// accumulator.
func DetailWeight(thr, scaling float64) WeightFunc {
	return func(_ context.Context, base *clip.Frame) (*clip.Plane, error) {
		luma := base.Luma()
		w := clip.NewPlane(luma.W, luma.H)
		if thr <= 0 {
			return w, nil
		}
		for i, y := range luma.Pix {
			w.Pix[i] = clampWeight(float32((thr - float64(y)) * scaling / thr))
		}
		return w, nil
	}
}

// Fold runs the zone list in order over one frame: acc starts as base and
// each zone blends its candidate in under its weight,
// acc = acc*(1-w) + candidate*w per sample on the selected planes. An empty
// zone list returns base unchanged. Candidate and weight dimensions that
// don't match the accumulator are an integration bug and panic; Fold itself
// raises no domain errors.
func Fold(ctx context.Context, base *clip.Frame, zones []ZoneBlend, post PostExpr) (*clip.Frame, error) {
	if len(zones) == 0 && post == nil {
		return base, nil
	}

	acc := base.Clone()
	for i, z := range zones {
		cand, err := z.Candidate(ctx, base)
		if err != nil {
			return nil, fmt.Errorf("zone %d candidate: %w", i, err)
		}
		w, err := z.weightFunc()(ctx, base)
		if err != nil {
			return nil, fmt.Errorf("zone %d weight: %w", i, err)
		}
		blendFrame(acc, cand, w, z.Planes)
	}

	if post != nil {
		acc = post(acc)
	}
	return acc, nil
}

func blendFrame(acc, cand *clip.Frame, w *clip.Plane, sel PlaneSelect) {
	n := 1
	if sel == AllPlanes {
		n = len(acc.Planes)
	}
	if len(cand.Planes) < n {
		panic(fmt.Sprintf("maskfold: candidate has %d planes, need %d", len(cand.Planes), n))
	}
	for p := 0; p < n; p++ {
		blendPlane(acc.Planes[p], cand.Planes[p], w)
	}
}

func blendPlane(acc, cand, w *clip.Plane) {
	if !acc.SameSize(cand) || !acc.SameSize(w) {
		panic(fmt.Sprintf("maskfold: plane size mismatch: acc %dx%d cand %dx%d weight %dx%d",
			acc.W, acc.H, cand.W, cand.H, w.W, w.H))
	}
	for i := range acc.Pix {
		wv := clampWeight(w.Pix[i])
		acc.Pix[i] = acc.Pix[i]*(1-wv) + cand.Pix[i]*wv
	}
}

func clampWeight(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
