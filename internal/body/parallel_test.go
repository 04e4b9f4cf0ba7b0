package body

import (
	"sync/atomic"
	"testing"
)

func TestParallelForCoversRange(t *testing.T) {
	const n = 1000
	seen := make([]int32, n)

	ParallelFor(n, 16, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}

func TestParallelSumMatchesSerial(t *testing.T) {
	const n = 777
	count := func(start, end int) int {
		c := 0
		for i := start; i < end; i++ {
			if i%3 == 0 {
				c++
			}
		}
		return c
	}

	want := count(0, n)
	for _, minChunk := range []int{1, 16, 100, n, 2 * n} {
		if got := ParallelSum(n, minChunk, count); got != want {
			t.Errorf("minChunk %d: expected %d, got %d", minChunk, want, got)
		}
	}
}

func TestParallelSumSmallRange(t *testing.T) {
	got := ParallelSum(3, 64, func(start, end int) int { return end - start })
	if got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}
