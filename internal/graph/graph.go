// Package graph evaluates frame-indexed streams: a worker pool pulls output
// frames on demand, potentially many at once and in no guaranteed order. The
// per-frame functions it drives are pure, so the only coordination here is
// handing out indices and collecting results.
package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/backmassage/framescript/internal/clip"
)

// DefaultWorkers is the pool size used when the caller passes zero.
const DefaultWorkers = 4

// Render evaluates every frame of c and returns them in index order.
// Evaluation order across workers is unspecified.
func Render(ctx context.Context, c clip.Clip, workers int) ([]*clip.Frame, error) {
	if c.NumFrames() == 0 {
		return nil, nil
	}
	return Range(ctx, c, 0, c.NumFrames()-1, workers)
}

// Range evaluates frames start..end inclusive and returns them in index
// order. The first frame error cancels the remaining work and is returned;
// no partial result is produced.
func Range(ctx context.Context, c clip.Clip, start, end, workers int) ([]*clip.Frame, error) {
	if start < 0 || end >= c.NumFrames() || start > end {
		return nil, fmt.Errorf("render range [%d, %d] outside stream of %d frames", start, end, c.NumFrames())
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	if n := end - start + 1; workers > n {
		workers = n
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := make([]*clip.Frame, end-start+1)
	indices := make(chan int)

	var (
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range indices {
				f, err := c.Frame(ctx, n)
				if err != nil {
					fail(fmt.Errorf("frame %d: %w", n, err))
					return
				}
				out[n-start] = f
			}
		}()
	}

feed:
	for n := start; n <= end; n++ {
		select {
		case indices <- n:
		case <-ctx.Done():
			break feed
		}
	}
	close(indices)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
