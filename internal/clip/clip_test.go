package clip

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/framescript/internal/frameranges"
)

// solid builds a clip of n single-plane frames, frame i filled with vals[i].
func solid(n int, base float32) *MemClip {
	frames := make([]*Frame, n)
	for i := range frames {
		frames[i] = NewGray(2, 2)
		frames[i].Luma().Fill(base + float32(i))
	}
	return NewMem(frames...)
}

// countingClip wraps a clip and counts frame pulls.
type countingClip struct {
	inner Clip
	pulls atomic.Int64
}

func (c *countingClip) NumFrames() int { return c.inner.NumFrames() }
func (c *countingClip) Frame(ctx context.Context, n int) (*Frame, error) {
	c.pulls.Add(1)
	return c.inner.Frame(ctx, n)
}

func TestCheckAligned(t *testing.T) {
	require.NoError(t, CheckAligned(solid(100, 0), solid(100, 1)))

	err := CheckAligned(solid(100, 0), solid(101, 1))
	require.Error(t, err)

	var alignErr *AlignmentError
	require.True(t, errors.As(err, &alignErr))
	assert.Equal(t, 100, alignErr.LenA)
	assert.Equal(t, 101, alignErr.LenB)
}

func TestReplaceRanges_MisalignedFailsBeforeAnyFrame(t *testing.T) {
	base := &countingClip{inner: solid(100, 0)}
	repl := &countingClip{inner: solid(101, 100)}

	_, err := ReplaceRanges(base, repl, []frameranges.Spec{frameranges.Single(3)})
	var alignErr *AlignmentError
	require.True(t, errors.As(err, &alignErr))

	assert.Zero(t, base.pulls.Load(), "no frame may be pulled before the alignment check fails")
	assert.Zero(t, repl.pulls.Load())
}

func TestReplaceRanges(t *testing.T) {
	ctx := context.Background()
	base := solid(10, 0)    // frame i has value i
	repl := solid(10, 100)  // frame i has value 100+i

	out, err := ReplaceRanges(base, repl, []frameranges.Spec{
		frameranges.Single(2),
		frameranges.Interval(5, 7),
	})
	require.NoError(t, err)
	require.Equal(t, 10, out.NumFrames())

	replaced := map[int]bool{2: true, 5: true, 6: true, 7: true}
	for n := 0; n < 10; n++ {
		f, err := out.Frame(ctx, n)
		require.NoError(t, err)
		want := float32(n)
		if replaced[n] {
			want = 100 + float32(n)
		}
		assert.Equal(t, want, f.Luma().Pix[0], "frame %d", n)
	}
}

func TestTrim(t *testing.T) {
	ctx := context.Background()
	c, err := Trim(solid(10, 0), 3, 6)
	require.NoError(t, err)
	assert.Equal(t, 4, c.NumFrames())

	f, err := c.Frame(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(3), f.Luma().Pix[0])

	_, err = Trim(solid(10, 0), 8, 12)
	assert.Error(t, err)
	_, err = Trim(solid(10, 0), 6, 3)
	assert.Error(t, err)
}

func TestSplice(t *testing.T) {
	ctx := context.Background()
	c := Splice(solid(3, 0), solid(2, 100))
	require.Equal(t, 5, c.NumFrames())

	f, err := c.Frame(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, float32(101), f.Luma().Pix[0])
}

func TestInterleave(t *testing.T) {
	ctx := context.Background()
	c, err := Interleave(solid(3, 0), solid(3, 100))
	require.NoError(t, err)
	require.Equal(t, 6, c.NumFrames())

	want := []float32{0, 100, 1, 101, 2, 102}
	for n, w := range want {
		f, err := c.Frame(ctx, n)
		require.NoError(t, err)
		assert.Equal(t, w, f.Luma().Pix[0], "frame %d", n)
	}

	_, err = Interleave(solid(3, 0), solid(4, 0))
	var alignErr *AlignmentError
	assert.True(t, errors.As(err, &alignErr))
}

func TestMemClip_OutOfRange(t *testing.T) {
	_, err := solid(3, 0).Frame(context.Background(), 3)
	assert.Error(t, err)
}
