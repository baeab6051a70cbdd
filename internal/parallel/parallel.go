// Package parallel spreads independent index ranges across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Workers returns the number of goroutines to use when the caller does not
// specify one.
func Workers() int {
	return runtime.GOMAXPROCS(0)
}

// For runs fn for every index in [start, end), split contiguously across at
// most workers goroutines. fn must not depend on execution order.
func For(start, end, workers int, fn func(i int)) {
	Blocks(start, end, workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(i)
		}
	})
}

// Blocks splits [start, end) into one contiguous block per worker and runs
// fn once per block. Useful when fn wants per-block scratch space.
func Blocks(start, end, workers int, fn func(lo, hi int)) {
	total := end - start
	if total <= 0 {
		return
	}
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		fn(start, end)
		return
	}

	size := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := start; lo < end; lo += size {
		hi := min(lo+size, end)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
