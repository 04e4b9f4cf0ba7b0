package body

import (
	"runtime"
	"sync"
)

// ParallelFor executes fn over [0, n) split into contiguous chunks, one per
// worker. Chunks never overlap, so fn may write to per-index slots without
// synchronization. Ranges shorter than minChunk run on the calling goroutine.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	workers := chunkWorkers(n, minChunk)
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelSum reduces [0, n) with fn returning a partial count per chunk and
// sums the partials. The combine is an integer sum, so any chunking yields
// the same result.
func ParallelSum(n, minChunk int, fn func(start, end int) int) int {
	workers := chunkWorkers(n, minChunk)
	if workers <= 1 {
		return fn(0, n)
	}

	chunkSize := (n + workers - 1) / workers
	partials := make([]int, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		go func(w, s, e int) {
			defer wg.Done()
			partials[w] = fn(s, e)
		}(w, start, end)
	}
	wg.Wait()

	total := 0
	for _, c := range partials {
		total += c
	}
	return total
}

func chunkWorkers(n, minChunk int) int {
	if minChunk < 1 {
		minChunk = 1
	}
	workers := runtime.NumCPU()
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
