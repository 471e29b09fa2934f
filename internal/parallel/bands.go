// Package parallel splits per-row image work into horizontal bands and runs
// them concurrently.
//
// Bands are processed by at most GOMAXPROCS goroutines. Work functions must
// only touch the rows of their own band; no other synchronization is done.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MinBandRows is the smallest band handed to a single goroutine.
// Smaller bands cost more in scheduling than they gain.
const MinBandRows = 16

// BandFunc processes rows [y0, y1).
type BandFunc func(y0, y1 int)

// Bands splits [0, rows) into bands and calls fn for each band concurrently.
// It returns ctx.Err() if the context is cancelled before all bands start;
// bands already running are allowed to finish.
func Bands(ctx context.Context, rows int, fn BandFunc) error {
	if rows <= 0 {
		return ctx.Err()
	}

	workers := runtime.GOMAXPROCS(0)
	size := BandSize(rows, workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for y0 := 0; y0 < rows; y0 += size {
		y1 := min(y0+size, rows)
		if err := gctx.Err(); err != nil {
			break
		}
		y0 := y0
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(y0, y1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// BandSize returns the number of rows per band for the given worker count.
// Four bands per worker keep the load balanced when rows differ in cost.
func BandSize(rows, workers int) int {
	if workers <= 0 {
		workers = 1
	}
	size := rows / (workers * 4)
	if size < MinBandRows {
		size = MinBandRows
	}
	return size
}
