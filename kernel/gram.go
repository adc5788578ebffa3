package kernel

import (
	"github.com/drakos74/klearn/internal/concurrent"
	"gonum.org/v1/gonum/mat"
)

// Gram computes the symmetric kernel matrix of the given samples.
// Rows are filled in parallel, each row only computes the upper triangle.
func Gram(k Kernel, x [][]float64) *mat.SymDense {
	n := len(x)
	g := mat.NewSymDense(n, nil)
	if n == 0 {
		return g
	}
	concurrent.ForEach(n, concurrent.Workers(), func(i int) {
		for j := i; j < n; j++ {
			// each (i,j) with j >= i is owned by row i only
			g.SetSym(i, j, k.Eval(x[i], x[j]))
		}
	})
	return g
}

// Cross computes the len(x) x len(y) kernel matrix between the two sets.
func Cross(k Kernel, x, y [][]float64) *mat.Dense {
	if len(x) == 0 || len(y) == 0 {
		return &mat.Dense{}
	}
	c := mat.NewDense(len(x), len(y), nil)
	concurrent.ForEach(len(x), concurrent.Workers(), func(i int) {
		for j := range y {
			c.Set(i, j, k.Eval(x[i], y[j]))
		}
	})
	return c
}
