// Package parallel splits independent per-index work across goroutines.
//
// Each index is handled by exactly one call and callers write only their own
// slot, so the result of For never depends on the worker count or on
// scheduling: parallel and sequential runs are bit-identical. Array gradients
// rely on this to stay reproducible.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Upper bound on goroutines per call.
	MinChunkSize int  // Minimum indices per goroutine; smaller jobs run inline.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 16,
	}
}

// Sequential returns a Config that always runs inline.
func Sequential() Config {
	return Config{}
}

// For calls f(i) for every i in [0, n).
//
// f must be safe to call concurrently for distinct i. For returns after
// every call has finished. Work runs inline when parallelism is disabled or
// n is below MinChunkSize.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
