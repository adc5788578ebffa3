package kernel

import (
	"encoding/binary"
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru"
)

// Cached memoizes the kernel evaluations of the wrapped kernel.
// Kernels are symmetric, so the cache key does not depend on the argument order.
type Cached struct {
	kernel Kernel
	cache  *lru.Cache
}

// NewCached wraps the kernel with an lru cache holding up to size evaluations.
func NewCached(k Kernel, size int) (*Cached, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("could not create kernel cache of size %d: %w", size, err)
	}
	return &Cached{
		kernel: k,
		cache:  cache,
	}, nil
}

func (c *Cached) Eval(x, y []float64) float64 {
	key := pairKey(x, y)
	if v, ok := c.cache.Get(key); ok {
		return v.(float64)
	}
	v := c.kernel.Eval(x, y)
	c.cache.Add(key, v)
	return v
}

func (c *Cached) Spec() Spec {
	return c.kernel.Spec()
}

// Unwrap returns the underlying kernel.
func (c *Cached) Unwrap() Kernel {
	return c.kernel
}

// Len returns the number of cached evaluations.
func (c *Cached) Len() int {
	return c.cache.Len()
}

// pairKey is the exact bit representation of both samples, length prefixed,
// the smaller encoding first.
func pairKey(x, y []float64) string {
	kx, ky := encode(x), encode(y)
	if kx > ky {
		kx, ky = ky, kx
	}
	return kx + ky
}

func encode(v []float64) string {
	b := make([]byte, 8*(len(v)+1))
	binary.LittleEndian.PutUint64(b, uint64(len(v)))
	for i, f := range v {
		binary.LittleEndian.PutUint64(b[8*(i+1):], math.Float64bits(f))
	}
	return string(b)
}
