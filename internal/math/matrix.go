package math

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// EmptyErr is returned for operations on a set without samples.
	EmptyErr = errors.New("empty set")
	// DimensionErr is returned when samples of different dimension are found.
	DimensionErr = errors.New("dimension mismatch")
	// FactorizeErr is returned when a decomposition fails.
	FactorizeErr = errors.New("could not factorize")
)

// Dimension returns the dimension of the vectors in a set of samples.
// Returns an error if vectors of different dimension are found or there are no vectors.
func Dimension(x [][]float64) (int, error) {
	if len(x) == 0 {
		return 0, EmptyErr
	}
	n := len(x[0])
	for _, xi := range x {
		if n != len(xi) {
			return 0, fmt.Errorf("vector dims: found %d and %d: %w", n, len(xi), DimensionErr)
		}
	}
	return n, nil
}

// Copy deep copies the given rows.
func Copy(x [][]float64) [][]float64 {
	cc := make([][]float64, len(x))
	for i, row := range x {
		cc[i] = append([]float64(nil), row...)
	}
	return cc
}

// CenterGram double-centres a gram matrix in feature space
// Kc = K - 1K - K1 + 1K1
// it returns the centred matrix along with the column means and the total mean of K,
// needed to centre new kernel rows against the same statistics.
func CenterGram(k mat.Symmetric) (*mat.SymDense, []float64, float64) {
	n := k.Symmetric()
	means := make([]float64, n)
	total := 0.0
	for i := 0; i < n; i++ {
		s := 0.0
		for j := 0; j < n; j++ {
			s += k.At(i, j)
		}
		means[i] = s / float64(n)
		total += s
	}
	total /= float64(n * n)

	c := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c.SetSym(i, j, k.At(i, j)-means[i]-means[j]+total)
		}
	}
	return c, means, total
}

// CenterRow centres a kernel row k(x, X) against the training statistics of CenterGram.
func CenterRow(row []float64, means []float64, total float64) []float64 {
	m := floats.Sum(row) / float64(len(row))
	c := make([]float64, len(row))
	for i, v := range row {
		c[i] = v - m - means[i] + total
	}
	return c
}

// EigenSym decomposes the symmetric matrix and returns the eigenvalues in descending order,
// with the corresponding eigenvectors as columns of the returned matrix.
func EigenSym(s mat.Symmetric) ([]float64, *mat.Dense, error) {
	var es mat.EigenSym
	if ok := es.Factorize(s, true); !ok {
		return nil, nil, fmt.Errorf("eigen decomposition: %w", FactorizeErr)
	}
	values := es.Values(nil)
	var vectors mat.Dense
	es.VectorsTo(&vectors)

	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})

	sorted := make([]float64, n)
	r, _ := vectors.Dims()
	out := mat.NewDense(r, n, nil)
	for i, o := range order {
		sorted[i] = values[o]
		for j := 0; j < r; j++ {
			out.Set(j, i, vectors.At(j, o))
		}
	}
	return sorted, out, nil
}
