package clip

import (
	"context"
	"fmt"
)

// Clip is a frame-indexed stream. Frames are requested by index, on demand,
// potentially from many goroutines at once and in no particular order;
// implementations must not rely on call ordering or carry hidden mutable
// state across calls.
type Clip interface {
	NumFrames() int
	Frame(ctx context.Context, n int) (*Frame, error)
}

// AlignmentError reports that two streams intended to be merged or compared
// differ in total frame count. It is raised once, before any frame is
// produced, never per frame.
type AlignmentError struct {
	LenA, LenB int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("frame count mismatch: %d vs %d", e.LenA, e.LenB)
}

// CheckAligned verifies that a and b have equal frame counts. Every caller
// that merges or compares two streams must call this before streaming.
func CheckAligned(a, b Clip) error {
	if a.NumFrames() != b.NumFrames() {
		return &AlignmentError{LenA: a.NumFrames(), LenB: b.NumFrames()}
	}
	return nil
}

// MemClip is an in-memory clip backed by a frame slice.
type MemClip struct {
	frames []*Frame
}

// NewMem wraps frames in a MemClip. The slice is not copied.
func NewMem(frames ...*Frame) *MemClip {
	return &MemClip{frames: frames}
}

// NumFrames implements [Clip].
func (m *MemClip) NumFrames() int { return len(m.frames) }

// Frame implements [Clip].
func (m *MemClip) Frame(_ context.Context, n int) (*Frame, error) {
	if n < 0 || n >= len(m.frames) {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", n, len(m.frames))
	}
	return m.frames[n], nil
}

// FuncClip adapts a pure function to the Clip contract. Used to lift
// external filter collaborators and derived streams into the frame graph.
type FuncClip struct {
	N  int
	Fn func(ctx context.Context, n int) (*Frame, error)
}

// NumFrames implements [Clip].
func (f *FuncClip) NumFrames() int { return f.N }

// Frame implements [Clip].
func (f *FuncClip) Frame(ctx context.Context, n int) (*Frame, error) {
	return f.Fn(ctx, n)
}
