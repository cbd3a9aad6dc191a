// Package parallel splits index ranges into contiguous chunks and runs them
// on a bounded set of goroutines.
//
// Calls block until every chunk has finished. There is no cancellation and
// no goroutine outlives a call.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Range is the half-open index interval [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of indices in r.
func (r Range) Len() int { return r.End - r.Start }

// Executor runs work over index ranges with at most Workers goroutines.
type Executor struct {
	workers int
}

// New returns an Executor with the given worker count. workers <= 0 uses
// runtime.GOMAXPROCS(0).
func New(workers int) *Executor {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Executor{workers: workers}
}

// Serial returns a single-worker Executor that runs everything inline.
func Serial() *Executor { return &Executor{workers: 1} }

// Workers returns the worker count.
func (e *Executor) Workers() int {
	if e == nil {
		return 1
	}
	return e.workers
}

// Chunks splits [0, n) into at most parts contiguous, ordered, non-empty
// ranges whose lengths differ by at most one.
func Chunks(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	parts = max(min(parts, n), 1)
	out := make([]Range, parts)
	size, rem := n/parts, n%parts
	start := 0
	for i := range out {
		end := start + size
		if i < rem {
			end++
		}
		out[i] = Range{Start: start, End: end}
		start = end
	}
	return out
}

// Run calls fn once per chunk of [0, n) and waits for all of them. With a
// single worker fn runs on the calling goroutine. The first error is
// returned after every chunk has completed.
func (e *Executor) Run(n int, fn func(r Range) error) error {
	chunks := Chunks(n, e.Workers())
	if len(chunks) <= 1 {
		for _, r := range chunks {
			if err := fn(r); err != nil {
				return err
			}
		}
		return nil
	}
	var g errgroup.Group
	g.SetLimit(e.Workers())
	for _, r := range chunks {
		g.Go(func() error { return fn(r) })
	}
	return g.Wait()
}

// ForEach calls fn for every index in [0, n), partitioned as in Run.
// Indices inside one chunk are visited in ascending order.
func (e *Executor) ForEach(n int, fn func(i int) error) error {
	return e.Run(n, func(r Range) error {
		for i := r.Start; i < r.End; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	})
}
