package stats

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/framescript/internal/clip"
)

func TestPlaneAverage(t *testing.T) {
	f := clip.NewGray(2, 2)
	copy(f.Luma().Pix, []float32{0, 0.5, 0.5, 1})
	assert.InDelta(t, 0.5, PlaneAverage(f), 1e-9)

	assert.Equal(t, 0.0, PlaneAverage(&clip.Frame{Planes: []*clip.Plane{{W: 0, H: 0}}}))
}

func TestClipProvider(t *testing.T) {
	f := clip.NewGray(2, 2)
	f.Luma().Fill(0.25)
	p := ClipProvider{Clip: clip.NewMem(f)}

	v, err := p.Stat(context.Background(), "a/plane_avg", 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, v, 1e-6)

	_, err = p.Stat(context.Background(), "a/plane_avg", 1)
	assert.Error(t, err)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.jsonl")
	dump := `{"tag":"a/plane_avg","frame":0,"value":0.11}
{"tag":"a/plane_avg","frame":1,"value":0.22}

{"tag":"b/plane_avg","frame":0,"value":0.33}
`
	require.NoError(t, os.WriteFile(path, []byte(dump), 0o644))

	p, err := OpenFile(path)
	require.NoError(t, err)

	ctx := context.Background()
	v, err := p.Stat(ctx, "a/plane_avg", 1)
	require.NoError(t, err)
	assert.Equal(t, 0.22, v)

	assert.Equal(t, 2, p.Frames("a/plane_avg"))
	assert.Equal(t, 1, p.Frames("b/plane_avg"))

	_, err = p.Stat(ctx, "a/plane_avg", 5)
	var missing *MissingResourceError
	require.True(t, errors.As(err, &missing))

	_, err = p.Stat(ctx, "c/plane_avg", 0)
	require.True(t, errors.As(err, &missing))
}

func TestOpenFile_Missing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "nope.jsonl"))
	var missing *MissingResourceError
	require.True(t, errors.As(err, &missing))
}

func TestOpenFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{broken\n"), 0o644))

	_, err := OpenFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestCache_ReadThrough(t *testing.T) {
	var calls atomic.Int64
	inner := Func(func(_ context.Context, _ Tag, n int) (float64, error) {
		calls.Add(1)
		return float64(n) * 2, nil
	})

	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"), inner)
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()

	v, err := cache.Stat(ctx, "a/plane_avg", 3)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
	assert.Equal(t, int64(1), calls.Load())

	// Second lookup is served from SQLite.
	v, err = cache.Stat(ctx, "a/plane_avg", 3)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
	assert.Equal(t, int64(1), calls.Load())

	// Distinct tags don't collide on the same frame index.
	_, err = cache.Stat(ctx, "b/plane_avg", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestCache_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	cache, err := OpenCache(path, Func(func(context.Context, Tag, int) (float64, error) {
		return 0.5, nil
	}))
	require.NoError(t, err)
	_, err = cache.Stat(ctx, "a/plane_avg", 0)
	require.NoError(t, err)
	require.NoError(t, cache.Close())

	failing := Func(func(context.Context, Tag, int) (float64, error) {
		return 0, errors.New("inner must not be called on a warm cache")
	})
	cache, err = OpenCache(path, failing)
	require.NoError(t, err)
	defer cache.Close()

	v, err := cache.Stat(ctx, "a/plane_avg", 0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)
}

func TestCache_InnerErrorNotCached(t *testing.T) {
	fail := true
	inner := Func(func(context.Context, Tag, int) (float64, error) {
		if fail {
			return 0, errors.New("upstream not ready")
		}
		return 1.5, nil
	})

	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"), inner)
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	_, err = cache.Stat(ctx, "a/plane_avg", 0)
	require.Error(t, err)

	fail = false
	v, err := cache.Stat(ctx, "a/plane_avg", 0)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
}
