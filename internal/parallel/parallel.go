// Package parallel splits independent per-row work across goroutines.
package parallel

import (
	"runtime"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Config controls how rows are spread over goroutines.
type Config struct {
	Enabled      bool // Run blocks concurrently
	NumWorkers   int  // Upper bound on concurrent blocks
	MinChunkSize int  // Smallest block worth a goroutine
}

// DefaultConfig uses one worker per physical core, capped by GOMAXPROCS,
// and blocks of at least 512 rows.
func DefaultConfig() Config {
	n := Workers()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 512,
	}
}

// Workers returns the number of physical cores available to the process.
func Workers() int {
	n := cpuid.CPU.PhysicalCores
	if n < 1 {
		n = runtime.NumCPU()
	}
	return max(min(n, runtime.GOMAXPROCS(0)), 1)
}

// Sequential returns a config that always runs on the calling goroutine.
func Sequential() Config {
	return Config{NumWorkers: 1}
}

// blocks returns the block length for n rows, or n when the work should
// stay on the calling goroutine.
func (c Config) blocks(n int) int {
	if !c.Enabled || c.NumWorkers < 2 || n < 2*max(c.MinChunkSize, 1) {
		return n
	}
	return max((n+c.NumWorkers-1)/c.NumWorkers, c.MinChunkSize)
}

// Range calls f on consecutive half-open blocks [lo, hi) covering [0, n).
// Blocks run concurrently when cfg allows it, and f must only touch state
// owned by its own rows. Range returns once every block is done.
func Range(n int, f func(lo, hi int), cfg Config) {
	if n <= 0 {
		return
	}
	size := cfg.blocks(n)
	if size >= n {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += size {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			f(lo, hi)
		}(lo, min(lo+size, n))
	}
	wg.Wait()
}

// For calls f(i) for every i in [0, n), using Range to split the work.
func For(n int, f func(i int), cfg Config) {
	Range(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f(i)
		}
	}, cfg)
}
