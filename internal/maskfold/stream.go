package maskfold

import (
	"context"
	"fmt"

	"github.com/backmassage/framescript/internal/clip"
)

// StreamZone is one ordered entry of a stream-level fold: a candidate stream
// plus the weight parameters applied to each of its frames.
type StreamZone struct {
	Candidate       clip.Clip
	DetailThreshold float64
	LumaScaling     float64
	Planes          PlaneSelect
	Weight          WeightFunc
}

// Stream lifts Fold over an entire clip: output frame n folds every zone's
// candidate frame n into base frame n. Every candidate must be aligned with
// the base; mismatches are reported here, before any frame is produced.
func Stream(base clip.Clip, zones []StreamZone, post PostExpr) (clip.Clip, error) {
	for i, z := range zones {
		if err := clip.CheckAligned(base, z.Candidate); err != nil {
			return nil, fmt.Errorf("zone %d: %w", i, err)
		}
	}
	return &clip.FuncClip{
		N: base.NumFrames(),
		Fn: func(ctx context.Context, n int) (*clip.Frame, error) {
			bf, err := base.Frame(ctx, n)
			if err != nil {
				return nil, err
			}
			frameZones := make([]ZoneBlend, len(zones))
			for i, z := range zones {
				cand := z.Candidate
				frameZones[i] = ZoneBlend{
					DetailThreshold: z.DetailThreshold,
					LumaScaling:     z.LumaScaling,
					Planes:          z.Planes,
					Weight:          z.Weight,
					Candidate: func(ctx context.Context, _ *clip.Frame) (*clip.Frame, error) {
						return cand.Frame(ctx, n)
					},
				}
			}
			return Fold(ctx, bf, frameZones, post)
		},
	}, nil
}
