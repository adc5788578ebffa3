package concurrent

import (
	"runtime"
	"sync"
)

// Workers returns the default parallelism for the row loops.
func Workers() int {
	return runtime.GOMAXPROCS(0)
}

// ForEach calls body for every index in [0, length) using at most limit goroutines.
// Indices are handed out in contiguous chunks, one per goroutine.
func ForEach(length, limit int, body func(i int)) {
	if length <= 0 {
		return
	}
	if limit <= 0 {
		limit = 1
	}
	if limit > length {
		limit = length
	}

	chunk := (length + limit - 1) / limit

	var wg sync.WaitGroup
	for w := 0; w < limit; w++ {
		start := w * chunk
		end := start + chunk
		if end > length {
			end = length
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				body(i)
			}
		}(start, end)
	}
	wg.Wait()
}
