package concurrent

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForEach(t *testing.T) {

	type test struct {
		length int
		limit  int
	}

	tests := map[string]test{
		"empty":        {length: 0, limit: 4},
		"single":       {length: 1, limit: 4},
		"more-workers": {length: 3, limit: 8},
		"uneven":       {length: 103, limit: 7},
		"no-limit":     {length: 10, limit: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			visited := make([]int, tt.length)
			ForEach(tt.length, tt.limit, func(i int) {
				visited[i]++
			})
			for i, v := range visited {
				assert.Equal(t, 1, v, "index %d", i)
			}
		})
	}
}

func TestCounter(t *testing.T) {

	wg := new(sync.WaitGroup)
	wg.Add(10)
	counter := NewCounter(wg)

	for i := 0; i < 10; i++ {
		go counter.Track()
	}
	wg.Wait()

	assert.Equal(t, 10, counter.Get())
}
